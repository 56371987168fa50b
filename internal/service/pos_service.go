package service

import (
	"context"
	"fmt"

	"tienda-pos/internal/pos"
	"tienda-pos/internal/repository"

	"github.com/google/uuid"
)

// CartView is a read snapshot of a session's cart for the transport layer.
type CartView struct {
	Lines []pos.CartLine `json:"lines"`
	Total int64          `json:"total"`
}

// POSService defines the interface for point-of-sale business logic. Each
// terminal session owns its cart; operations against different sessions are
// fully independent.
type POSService interface {
	OpenSession(ctx context.Context) (*pos.Session, error)
	CloseSession(ctx context.Context, sessionID uuid.UUID) error
	AddToCart(ctx context.Context, sessionID, productID uuid.UUID) (*CartView, error)
	RemoveFromCart(ctx context.Context, sessionID, productID uuid.UUID) (*CartView, error)
	ViewCart(ctx context.Context, sessionID uuid.UUID) (*CartView, error)
	Checkout(ctx context.Context, sessionID uuid.UUID) (*pos.Sale, error)
	Receipt(ctx context.Context, sessionID uuid.UUID) (string, error)
}

type posService struct {
	sessions    *pos.SessionManager
	productRepo repository.ProductRepository
}

// NewPOSService creates a new instance of POSService
func NewPOSService(sessions *pos.SessionManager, productRepo repository.ProductRepository) POSService {
	return &posService{
		sessions:    sessions,
		productRepo: productRepo,
	}
}

// OpenSession starts a new terminal session with an empty cart
func (s *posService) OpenSession(ctx context.Context) (*pos.Session, error) {
	return s.sessions.Open(), nil
}

// CloseSession tears down a terminal session and discards its cart
func (s *posService) CloseSession(ctx context.Context, sessionID uuid.UUID) error {
	return s.sessions.Close(sessionID)
}

// AddToCart resolves the product from the catalog and adds one unit of it to
// the session's cart. The cart line keeps the product as fetched here, so a
// later price edit does not change lines already in the cart.
func (s *posService) AddToCart(ctx context.Context, sessionID, productID uuid.UUID) (*CartView, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve product for cart: %w", err)
	}

	session.Cart().Add(*product)
	return cartViewOf(session), nil
}

// RemoveFromCart drops the product's line from the session's cart, if present
func (s *posService) RemoveFromCart(ctx context.Context, sessionID, productID uuid.UUID) (*CartView, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	session.Cart().Remove(productID)
	return cartViewOf(session), nil
}

// ViewCart returns the current lines and running total of the session's cart
func (s *posService) ViewCart(ctx context.Context, sessionID uuid.UUID) (*CartView, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	return cartViewOf(session), nil
}

// Checkout finalizes the session's cart into an immutable sale. Fails with
// pos.ErrEmptyCart when the cart has no lines, leaving everything untouched.
func (s *posService) Checkout(ctx context.Context, sessionID uuid.UUID) (*pos.Sale, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, err
	}

	return session.Checkout()
}

// Receipt renders the session's last captured sale as a text ticket
func (s *posService) Receipt(ctx context.Context, sessionID uuid.UUID) (string, error) {
	session, err := s.sessions.Get(sessionID)
	if err != nil {
		return "", err
	}

	sale, err := session.LastSale()
	if err != nil {
		return "", err
	}

	return pos.FormatReceipt(sale), nil
}

func cartViewOf(session *pos.Session) *CartView {
	return &CartView{
		Lines: session.Cart().Lines(),
		Total: session.Cart().Total(),
	}
}
