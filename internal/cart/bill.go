package cart

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var taxRate = decimal.New(5, -2)

// Bill holds exact amounts. Rounding to cents happens only when rendering.
type Bill struct {
	ItemTotal decimal.Decimal
	Taxes     decimal.Decimal
	Total     decimal.Decimal
}

// ComputeBill sums price × quantity and adds a flat 5% tax.
func ComputeBill(s State) Bill {
	itemTotal := decimal.Zero
	for _, it := range s {
		itemTotal = itemTotal.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	taxes := itemTotal.Mul(taxRate)

	return Bill{
		ItemTotal: itemTotal,
		Taxes:     taxes,
		Total:     itemTotal.Add(taxes),
	}
}

func (b Bill) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-16s %10s\n", "Item Total", b.ItemTotal.StringFixed(2))
	fmt.Fprintf(&sb, "%-16s %10s\n", "Taxes & Charges", b.Taxes.StringFixed(2))
	fmt.Fprintf(&sb, "%-16s %10s\n", "TO PAY", b.Total.StringFixed(2))
	return sb.String()
}
