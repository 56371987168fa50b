package pos

import (
	"fmt"
	"strings"
)

const (
	receiptHeader      = "TICKET DE VENTA"
	receiptTimeLayout  = "02/01/2006 15:04:05"
	uncategorizedLabel = "Sin categoría"
)

// FormatReceipt renders a sale as a printable text ticket. It is a pure
// function over the sale value: it never mutates the sale and holds no
// reference back into any live cart.
func FormatReceipt(sale *Sale) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", receiptHeader)
	fmt.Fprintf(&b, "Fecha: %s\n", sale.CapturedAt.Format(receiptTimeLayout))
	b.WriteString("--------------------------------\n")

	for _, item := range sale.Items {
		category := item.Product.CategoryName
		if category == "" {
			category = uncategorizedLabel
		}
		fmt.Fprintf(&b, "%s (%d) - %s - Gs. %d\n",
			item.Product.Name, item.Quantity, category, item.Subtotal())
	}

	b.WriteString("--------------------------------\n")
	fmt.Fprintf(&b, "Total: Gs. %d\n", sale.Total)

	return b.String()
}
