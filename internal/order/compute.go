package order

import (
	"github.com/alexanderramin/ordersheet/internal/domain"
	"github.com/alexanderramin/ordersheet/internal/pricing"
)

// compute applies the count and price formula of the selection's product.
func compute(sel *domain.Selection, ref Reference, policy pricing.Policy) *Order {
	o := &Order{Product: sel.Product, Email: sel.Email, Policy: policy}

	switch sel.Product {
	case domain.ProductTextbookVariant:
		passages := sel.Count(domain.CategoryPassage)
		per := sel.QuantityPerType * passages
		for _, e := range entries(sel, ref, domain.CategoryQuestionType) {
			o.addLine(e, per)
		}
		o.TotalCount = len(o.Lines) * per

	case domain.ProductMockExamSections:
		exams := sel.Count(domain.CategoryExam)
		for _, e := range entries(sel, ref, domain.CategorySection) {
			o.addLine(e, e.Count()*exams*sel.QuantityPerType)
			o.TotalCount += e.Count() * exams * sel.QuantityPerType
		}

	case domain.ProductWorkbookTextbook, domain.ProductWorkbookMockExam:
		// Packages are priced per passage; the tier counts passages only.
		o.TextCount = textCount(sel, ref)
		for _, e := range entries(sel, ref, domain.CategoryPackage) {
			o.addLine(e, o.TextCount)
		}
		o.TotalCount = o.TextCount

	case domain.ProductNumberProduction:
		o.TextCount = sel.Count(domain.CategoryNumber)
		for _, e := range entries(sel, ref, domain.CategoryMaterial) {
			o.addLine(e, o.TextCount)
		}
		o.TotalCount = len(o.Lines) * o.TextCount
	}

	for _, l := range o.Lines {
		o.BasePrice += l.Subtotal
	}
	q := policy.Apply(o.BasePrice, o.TotalCount)
	o.RateBps = q.RateBps
	o.Threshold = q.Threshold
	o.DiscountAmount = q.Discount
	o.FinalPrice = q.Final
	return o
}

func (o *Order) addLine(e domain.Entry, qty int) {
	price := e.EffectivePrice()
	o.Lines = append(o.Lines, Line{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		SubTypes:    e.SubTypes,
		UnitPrice:   price,
		Quantity:    qty,
		Subtotal:    price * int64(qty),
		Free:        e.Free,
	})
}

// textCount is the number of passages a workbook covers.
func textCount(sel *domain.Selection, ref Reference) int {
	if sel.Product == domain.ProductWorkbookTextbook {
		return ref.PassageCount(sel.Textbook, sel.Chosen(domain.CategoryLesson))
	}
	return sel.Count(domain.CategoryNumber)
}

// entries resolves the chosen IDs of a category, skipping unknown ones.
func entries(sel *domain.Selection, ref Reference, cat domain.Category) []domain.Entry {
	ids := sel.Chosen(cat)
	out := make([]domain.Entry, 0, len(ids))
	for _, id := range ids {
		if e, ok := ref.Entry(cat, sel.Product, id); ok {
			out = append(out, e)
		}
	}
	return out
}

// uniformUnit returns the per-question price when every line shares it.
func (o *Order) uniformUnit() (int64, bool) {
	if len(o.Lines) == 0 || o.TotalCount == 0 {
		return 0, false
	}
	unit := o.Lines[0].UnitPrice
	for _, l := range o.Lines[1:] {
		if l.UnitPrice != unit {
			return 0, false
		}
	}
	return unit, true
}
