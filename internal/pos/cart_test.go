package pos

import (
	"testing"

	"tienda-pos/internal/domain"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func testProduct(name string, price int64) domain.Product {
	return domain.Product{
		ID:    uuid.New(),
		Name:  name,
		Price: price,
	}
}

func TestProperty_AddMergesSameProductIntoOneLine(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("adding the same product N times yields one line with quantity N", prop.ForAll(
		func(n int, price int64) bool {
			cart := NewCart()
			product := testProduct("Burger", price)

			for i := 0; i < n; i++ {
				cart.Add(product)
			}

			lines := cart.Lines()
			if len(lines) != 1 {
				t.Logf("FAIL: Expected 1 line, got %d", len(lines))
				return false
			}
			if lines[0].Quantity != n {
				t.Logf("FAIL: Expected quantity %d, got %d", n, lines[0].Quantity)
				return false
			}
			return cart.Total() == int64(n)*price
		},
		gen.IntRange(1, 50),
		gen.Int64Range(0, 1_000_000),
	))

	properties.Property("line count never exceeds distinct product count", prop.ForAll(
		func(adds []int) bool {
			// A small pool of products, indexed by the generated values
			pool := []domain.Product{
				testProduct("A", 100),
				testProduct("B", 250),
				testProduct("C", 900),
				testProduct("D", 40),
			}

			cart := NewCart()
			distinct := make(map[uuid.UUID]bool)
			for _, idx := range adds {
				p := pool[idx%len(pool)]
				cart.Add(p)
				distinct[p.ID] = true
			}

			if cart.Len() != len(distinct) {
				t.Logf("FAIL: Expected %d lines, got %d", len(distinct), cart.Len())
				return false
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 100)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_TotalMatchesSumOfLines(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("total equals the sum of quantity times price over all lines", prop.ForAll(
		func(prices []int64) bool {
			cart := NewCart()
			var want int64

			for _, price := range prices {
				product := testProduct("P", price)
				cart.Add(product)
				cart.Add(product)
				want += 2 * price
			}

			if got := cart.Total(); got != want {
				t.Logf("FAIL: Expected total %d, got %d", want, got)
				return false
			}
			return true
		},
		gen.SliceOf(gen.Int64Range(0, 500_000)),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestCart_PreservesInsertionOrder(t *testing.T) {
	cart := NewCart()
	first := testProduct("Burger", 5000)
	second := testProduct("Fries", 2000)
	third := testProduct("Soda", 1500)

	cart.Add(first)
	cart.Add(second)
	cart.Add(third)
	cart.Add(first) // merges, must not move the line

	lines := cart.Lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}

	want := []uuid.UUID{first.ID, second.ID, third.ID}
	for i, id := range want {
		if lines[i].Product.ID != id {
			t.Errorf("line %d: expected product %s, got %s", i, id, lines[i].Product.ID)
		}
	}
	if lines[0].Quantity != 2 {
		t.Errorf("expected merged quantity 2 for first line, got %d", lines[0].Quantity)
	}
}

func TestCart_RemoveDropsLine(t *testing.T) {
	cart := NewCart()
	burger := testProduct("Burger", 5000)
	fries := testProduct("Fries", 2000)

	cart.Add(burger)
	cart.Add(fries)

	cart.Remove(burger.ID)

	if cart.Len() != 1 {
		t.Fatalf("expected 1 line after remove, got %d", cart.Len())
	}
	if got := cart.Total(); got != 2000 {
		t.Errorf("expected total 2000 after remove, got %d", got)
	}
}

func TestCart_RemoveMissingProductIsNoOp(t *testing.T) {
	cart := NewCart()
	cart.Add(testProduct("Burger", 5000))

	cart.Remove(uuid.New())

	if cart.Len() != 1 {
		t.Errorf("expected cart unchanged, got %d lines", cart.Len())
	}
	if cart.Total() != 5000 {
		t.Errorf("expected total unchanged, got %d", cart.Total())
	}
}

func TestCart_LinesReturnsCopy(t *testing.T) {
	cart := NewCart()
	cart.Add(testProduct("Burger", 5000))

	lines := cart.Lines()
	lines[0].Quantity = 99

	if got := cart.Lines()[0].Quantity; got != 1 {
		t.Errorf("mutating the returned slice leaked into the cart: quantity %d", got)
	}
}
