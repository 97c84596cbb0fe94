// Package order turns a completed Selection into a priced order summary.
// Generation is a pure function of the selection, the catalog and the
// pricing table; nothing is stored.
package order

import (
	"strings"

	"github.com/alexanderramin/ordersheet/internal/domain"
	"github.com/alexanderramin/ordersheet/internal/pricing"
)

// Reference is the catalog lookup the generator needs.
type Reference interface {
	Entry(cat domain.Category, p domain.Product, id string) (domain.Entry, bool)
	PassageCount(textbook string, lessons []string) int
}

// Policies resolves the discount policy of a product.
type Policies interface {
	For(p domain.Product) pricing.Policy
}

// Line is one priced component of an order: a question type, an exam
// section, a workbook package or a production material.
type Line struct {
	ID          string
	Name        string
	Description string
	SubTypes    []string
	UnitPrice   int64
	Quantity    int
	Subtotal    int64
	Free        bool
}

// Order is the priced result of a selection together with its rendered text.
type Order struct {
	Product domain.Product
	Email   string

	TotalCount int
	// TextCount is the passage multiplier of workbook and production orders.
	TextCount int

	BasePrice      int64
	RateBps        int
	Threshold      int
	DiscountAmount int64
	FinalPrice     int64
	Policy         pricing.Policy

	Lines []Line
	Text  string
}

// ValidationError lists every reason a selection cannot become an order.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "\n")
}

// Generate validates the selection and builds the order. Validation
// failures return a *ValidationError and no order.
func Generate(sel *domain.Selection, ref Reference, policies Policies) (*Order, error) {
	if msgs := Validate(sel, ref); len(msgs) > 0 {
		return nil, &ValidationError{Messages: msgs}
	}
	o := compute(sel, ref, policies.For(sel.Product))
	o.Text = render(sel, o)
	return o, nil
}

// Preview prices the selection as it stands, without validation, for the
// live summary shown while the user is still choosing.
func Preview(sel *domain.Selection, ref Reference, policies Policies) pricing.Quote {
	o := compute(sel, ref, policies.For(sel.Product))
	return pricing.Quote{
		Count:     o.TotalCount,
		Base:      o.BasePrice,
		RateBps:   o.RateBps,
		Discount:  o.DiscountAmount,
		Final:     o.FinalPrice,
		Threshold: o.Threshold,
	}
}
