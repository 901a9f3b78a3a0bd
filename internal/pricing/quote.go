// Package pricing turns a set of cart lines plus a point in time into a
// payable amount. Compute is a pure function: time is an explicit
// parameter, never an implicit clock read, so every rule is
// deterministic under test.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/snackshop/storefront/internal/cart"
	"github.com/snackshop/storefront/internal/catalog"
)

var (
	weekendSurchargeFactor = decimal.NewFromFloat(1.15)
	bulkDiscountFactor     = decimal.NewFromFloat(0.90)
	mondayDiscountRate     = decimal.NewFromFloat(0.10)

	shippingBase = decimal.NewFromInt(25)
	shippingRate = decimal.NewFromFloat(0.10)

	// invoiceLimit is the highest displayed grand total that may still
	// be paid by invoice.
	invoiceLimit = decimal.NewFromInt(800)
)

// LineQuote is the priced form of one cart line.
type LineQuote struct {
	ProductID     int64
	Name          string
	Category      catalog.Category
	Quantity      int
	BaseUnitPrice decimal.Decimal
	// UnitPrice is the effective unit price: surcharge applied first,
	// bulk discount second, multiplicatively.
	UnitPrice    decimal.Decimal
	BulkDiscount bool
	Subtotal     decimal.Decimal
}

// Quote is the full pricing result. It is derived on demand and never
// stored; every cart mutation recomputes it from scratch. All amounts
// are unrounded — rounding to two decimals happens only at display
// boundaries and in the invoice predicate.
type Quote struct {
	Lines              []LineQuote
	CategoryQuantities map[catalog.Category]int
	ItemCount          int

	WeekendSurcharge bool
	MondayDiscount   bool

	// CartTotal is the sum of line subtotals after surcharge and bulk
	// discount, before the Monday discount.
	CartTotal          decimal.Decimal
	DiscountAmount     decimal.Decimal
	TotalAfterDiscount decimal.Decimal
	Shipping           decimal.Decimal
	GrandTotal         decimal.Decimal
}

// DisplayGrandTotal is the grand total as shown to the user.
func (q Quote) DisplayGrandTotal() decimal.Decimal {
	return q.GrandTotal.Round(2)
}

// InvoiceEligible gates the invoice payment option. It compares the
// displayed, rounded grand total against the limit so that what the
// user sees and what is enforced never diverge.
func (q Quote) InvoiceEligible() bool {
	return q.DisplayGrandTotal().LessThanOrEqual(invoiceLimit)
}

// Compute prices the cart at the given time. Lines referencing products
// missing from the catalog contribute nothing; they are skipped, not
// failed, matching the no-op policy for stale references.
func Compute(cat *catalog.Catalog, lines []cart.Line, now time.Time) Quote {
	q := Quote{
		CategoryQuantities: make(map[catalog.Category]int),
		WeekendSurcharge:   weekendSurchargeActive(now),
		MondayDiscount:     mondayDiscountActive(now),
		CartTotal:          decimal.Zero,
		DiscountAmount:     decimal.Zero,
		Shipping:           decimal.Zero,
	}

	// Aggregate category quantities before pricing any line: the bulk
	// discount keys off the category total, not the line's own count.
	for _, line := range lines {
		p, ok := cat.Lookup(line.ProductID)
		if !ok {
			continue
		}
		q.CategoryQuantities[p.Category] += line.Quantity
		q.ItemCount += line.Quantity
	}

	for _, line := range lines {
		p, ok := cat.Lookup(line.ProductID)
		if !ok {
			continue
		}

		unit := p.UnitPrice
		if q.WeekendSurcharge {
			unit = unit.Mul(weekendSurchargeFactor)
		}
		bulk := q.CategoryQuantities[p.Category] >= bulkThreshold
		if bulk {
			unit = unit.Mul(bulkDiscountFactor)
		}

		subtotal := unit.Mul(decimal.NewFromInt(int64(line.Quantity)))
		q.Lines = append(q.Lines, LineQuote{
			ProductID:     p.ID,
			Name:          p.Name,
			Category:      p.Category,
			Quantity:      line.Quantity,
			BaseUnitPrice: p.UnitPrice,
			UnitPrice:     unit,
			BulkDiscount:  bulk,
			Subtotal:      subtotal,
		})
		q.CartTotal = q.CartTotal.Add(subtotal)
	}

	if q.MondayDiscount {
		q.DiscountAmount = q.CartTotal.Mul(mondayDiscountRate)
	}
	q.TotalAfterDiscount = q.CartTotal.Sub(q.DiscountAmount)

	switch {
	case q.ItemCount > freeShippingItemCount:
		// free shipping for large orders
	case q.ItemCount > 0:
		q.Shipping = shippingBase.Add(q.TotalAfterDiscount.Mul(shippingRate))
	}

	q.GrandTotal = q.TotalAfterDiscount.Add(q.Shipping)
	return q
}
