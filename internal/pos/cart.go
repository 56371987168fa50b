package pos

import (
	"sync"

	"tienda-pos/internal/domain"

	"github.com/google/uuid"
)

// CartLine is one product-quantity pairing. The product is a snapshot taken
// when the line was created, so later catalog edits never reach back into a
// cart or a captured sale.
type CartLine struct {
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Subtotal returns quantity × unit price for the line.
func (l CartLine) Subtotal() int64 {
	return int64(l.Quantity) * l.Product.Price
}

// Cart is the working set of items for one terminal session. Lines keep
// insertion order; adding an already-present product merges into its
// existing line instead of appending a duplicate.
//
// A cart is owned by exactly one session. The mutex serializes the session's
// own calls when they arrive on different goroutines (e.g. concurrent HTTP
// requests for the same terminal); carts are never shared across sessions.
type Cart struct {
	mu    sync.Mutex
	lines []CartLine
}

// NewCart creates an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// Add puts one unit of the product into the cart. If a line for the same
// product id already exists its quantity is incremented, otherwise a new
// line is appended at the end.
func (c *Cart) Add(product domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Product.ID == product.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, CartLine{Product: product, Quantity: 1})
}

// Remove drops the line for the given product id. Removing a product that
// is not in the cart is a no-op.
func (c *Cart) Remove(productID uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Total sums quantity × price over all lines in insertion order.
func (c *Cart) Total() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return totalOf(c.lines)
}

// Len returns the number of distinct lines in the cart.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Lines returns a copy of the cart's lines. Mutating the returned slice
// does not affect the cart.
func (c *Cart) Lines() []CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return copyLines(c.lines)
}

// takeAndReset atomically removes and returns every line together with the
// total computed from those same lines. Holding the lock across the
// read-compute-clear sequence is what keeps finalization atomic: no Add or
// Remove can interleave between the snapshot and the reset.
func (c *Cart) takeAndReset() ([]CartLine, int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	taken := c.lines
	c.lines = nil
	return taken, totalOf(taken)
}

func totalOf(lines []CartLine) int64 {
	var total int64
	for _, l := range lines {
		total += l.Subtotal()
	}
	return total
}

func copyLines(lines []CartLine) []CartLine {
	out := make([]CartLine, len(lines))
	copy(out, lines)
	return out
}
