package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tienda-pos/internal/domain"
	"tienda-pos/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	// BcryptCost is the cost factor for bcrypt hashing
	BcryptCost = 10

	// AccessTokenExpiration bounds how long a terminal login stays valid
	AccessTokenExpiration = 8 * time.Hour
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
)

// AuthService defines the interface for operator authentication
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, operator *domain.Operator, err error)
	ValidateToken(tokenString string) (*Claims, error)
	GetOperatorByID(ctx context.Context, operatorID uuid.UUID) (*domain.Operator, error)
}

// Claims represents the JWT claims issued at login
type Claims struct {
	OperatorID uuid.UUID `json:"operator_id"`
	Role       string    `json:"role"`
	jwt.RegisteredClaims
}

type authService struct {
	operatorRepo repository.OperatorRepository
	jwtSecret    string
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(operatorRepo repository.OperatorRepository, jwtSecret string) AuthService {
	return &authService{
		operatorRepo: operatorRepo,
		jwtSecret:    jwtSecret,
	}
}

// Login authenticates an operator and returns a signed JWT
func (s *authService) Login(ctx context.Context, email, password string) (string, *domain.Operator, error) {
	operator, err := s.operatorRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == repository.ErrOperatorNotFound {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("failed to find operator: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(operator.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(operator)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return token, operator, nil
}

// ValidateToken validates a JWT token and returns the claims
func (s *authService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// GetOperatorByID retrieves an operator by ID
func (s *authService) GetOperatorByID(ctx context.Context, operatorID uuid.UUID) (*domain.Operator, error) {
	operator, err := s.operatorRepo.FindByID(ctx, operatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to get operator: %w", err)
	}
	return operator, nil
}

// HashPassword hashes a password using bcrypt. Used when seeding operators.
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *authService) generateToken(operator *domain.Operator) (string, error) {
	expirationTime := time.Now().Add(AccessTokenExpiration)
	claims := &Claims{
		OperatorID: operator.ID,
		Role:       operator.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}
