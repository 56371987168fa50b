package pos

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestSessionManager_OpenGetClose(t *testing.T) {
	manager := NewSessionManager()

	session := manager.Open()
	if session.Cart().Len() != 0 {
		t.Fatal("new session should start with an empty cart")
	}

	got, err := manager.Get(session.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != session {
		t.Error("Get returned a different session")
	}

	if err := manager.Close(session.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := manager.Get(session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after close, got %v", err)
	}
	if err := manager.Close(session.ID); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound on double close, got %v", err)
	}
}

func TestSessionManager_UnknownSession(t *testing.T) {
	manager := NewSessionManager()

	if _, err := manager.Get(uuid.New()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionManager_SessionsAreIndependent(t *testing.T) {
	manager := NewSessionManager()

	first := manager.Open()
	second := manager.Open()

	first.Cart().Add(testProduct("Burger", 5000))

	if second.Cart().Len() != 0 {
		t.Error("adding to one session's cart leaked into another")
	}
}

func TestSession_CheckoutRetainsLastSale(t *testing.T) {
	manager := NewSessionManager()
	session := manager.Open()

	if _, err := session.LastSale(); !errors.Is(err, ErrNoSale) {
		t.Fatalf("expected ErrNoSale before checkout, got %v", err)
	}

	session.Cart().Add(testProduct("Burger", 5000))
	sale, err := session.Checkout()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	last, err := session.LastSale()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if last != sale {
		t.Error("LastSale should return the captured sale")
	}
}

func TestSession_FailedCheckoutKeepsPriorSale(t *testing.T) {
	manager := NewSessionManager()
	session := manager.Open()

	session.Cart().Add(testProduct("Burger", 5000))
	sale, err := session.Checkout()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Cart is now empty, the second checkout must fail and keep the sale
	if _, err := session.Checkout(); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}

	last, err := session.LastSale()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if last != sale {
		t.Error("failed checkout must not replace the prior sale")
	}
}
