package pos

import (
	"errors"
	"time"
)

var (
	// ErrEmptyCart is returned when finalizing a cart with no lines.
	ErrEmptyCart = errors.New("cart is empty, nothing to finalize")
)

// Sale is the immutable record of a completed transaction. It owns its own
// copy of the lines and its total is fixed at capture time; a later price
// change to a product never alters a past sale.
type Sale struct {
	Items      []CartLine `json:"items"`
	Total      int64      `json:"total"`
	CapturedAt time.Time  `json:"captured_at"`
}

// Finalize converts the cart's current contents into a Sale and empties the
// cart. The snapshot and the reset happen under the cart's lock, so the
// sale reflects exactly the pre-finalize cart state and nothing added
// mid-finalize can be dropped or double-counted.
//
// Finalizing an empty cart fails with ErrEmptyCart and leaves the cart
// untouched. Each call consumes the cart contents exactly once, so a second
// Finalize with no intervening Add fails the same way.
func Finalize(cart *Cart) (*Sale, error) {
	lines, total := cart.takeAndReset()
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	return &Sale{
		Items:      lines,
		Total:      total,
		CapturedAt: time.Now(),
	}, nil
}
