package domain

import (
	"fmt"
	"slices"
	"strings"
)

// ExclusionRule declares two entries of one category that may not be chosen
// together. Choosing either side drops the other.
type ExclusionRule struct {
	Category Category
	A        string
	B        string
}

// DefaultExclusions: the blank-writing package already contains the keyword
// blank exercise.
var DefaultExclusions = []ExclusionRule{
	{Category: CategoryPackage, A: "blank_package", B: "keyword_blank"},
}

// PackageBundle is what "select all" picks among workbook packages.
var PackageBundle = []string{"blank_package", "word_arrangement"}

// Selection accumulates the user's choices for one order. It lives in
// memory only and is discarded on Reset.
type Selection struct {
	Product  Product
	Textbook string
	// Grade is a mock-exam grade key such as "고1모의고사".
	Grade    string
	Year     string
	Month    string
	MockExam string

	QuantityPerType int `validate:"min=1,max=3"`
	Round           int `validate:"min=1,max=3"`
	Email           string

	picks      map[Category][]string
	exclusions []ExclusionRule
}

// NewSelection returns an empty selection for the product with default
// quantities and the default exclusion rules.
func NewSelection(p Product) *Selection {
	return &Selection{
		Product:         p,
		QuantityPerType: DefaultQuantityPerType,
		Round:           DefaultRound,
		picks:           make(map[Category][]string),
		exclusions:      DefaultExclusions,
	}
}

// WithExclusions replaces the exclusion rules.
func (s *Selection) WithExclusions(rules []ExclusionRule) *Selection {
	s.exclusions = rules
	return s
}

// Chosen returns the chosen IDs of a category in the order they were picked.
func (s *Selection) Chosen(c Category) []string {
	return slices.Clone(s.picks[c])
}

// Count returns how many IDs of a category are chosen.
func (s *Selection) Count(c Category) int {
	return len(s.picks[c])
}

// Has reports whether id is chosen in category c.
func (s *Selection) Has(c Category, id string) bool {
	return slices.Contains(s.picks[c], id)
}

// Select toggles id in category c. Adding an entry removes any entry it is
// mutually exclusive with.
func (s *Selection) Select(c Category, id string) {
	if s.Has(c, id) {
		s.remove(c, id)
		return
	}
	s.add(c, id)
}

// Blocked reports whether id is unchosen because a chosen entry excludes it.
func (s *Selection) Blocked(c Category, id string) bool {
	return !s.Has(c, id) && len(s.conflicts(c, id)) > 0
}

// SelectAll chooses every id that is not blocked by an exclusion rule, or
// clears the category when everything selectable is already chosen.
func (s *Selection) SelectAll(c Category, ids []string) {
	if s.allChosen(c, ids) {
		delete(s.picks, c)
		return
	}
	for _, id := range ids {
		if s.Has(c, id) || len(s.conflicts(c, id)) > 0 {
			continue
		}
		s.push(c, id)
	}
}

// ToggleGroup selects a whole group (a lesson's passages) or clears it when
// every member is already chosen.
func (s *Selection) ToggleGroup(c Category, ids []string) {
	if len(ids) == 0 {
		return
	}
	all := true
	for _, id := range ids {
		if !s.Has(c, id) {
			all = false
			break
		}
	}
	for _, id := range ids {
		s.remove(c, id)
	}
	if all {
		return
	}
	for _, id := range ids {
		s.add(c, id)
	}
}

// SetChosen replaces the chosen IDs of a category, applying exclusion rules
// in order so the first of two conflicting IDs wins.
func (s *Selection) SetChosen(c Category, ids []string) {
	delete(s.picks, c)
	for _, id := range ids {
		if s.Has(c, id) || len(s.conflicts(c, id)) > 0 {
			continue
		}
		s.push(c, id)
	}
}

func (s *Selection) SetQuantity(n int) { s.QuantityPerType = n }
func (s *Selection) SetRound(n int)    { s.Round = n }
func (s *Selection) SetTextbook(name string) {
	s.Textbook = name
}

// SetEmail stores the contact address without surrounding whitespace.
func (s *Selection) SetEmail(email string) {
	s.Email = strings.TrimSpace(email)
}

// SetExam fixes the mock exam used by number-based production.
func (s *Selection) SetExam(grade, year, month string) {
	s.Grade = GradeKey(grade)
	s.Year = year
	s.Month = month
}

// ExamName returns the "고1_2024_03월" style name of the production exam.
func (s *Selection) ExamName() string {
	if s.Grade == "" || s.Year == "" || s.Month == "" {
		return ""
	}
	return fmt.Sprintf("%s_%s_%s", GradeLabel(s.Grade), s.Year, s.Month)
}

// MaterialOrder returns the chosen materials in the user's order.
func (s *Selection) MaterialOrder() []string {
	return s.Chosen(CategoryMaterial)
}

// HasVariantMaterial reports whether any chosen material needs a round.
func (s *Selection) HasVariantMaterial() bool {
	return slices.ContainsFunc(s.picks[CategoryMaterial], IsVariantMaterial)
}

// MoveMaterial swaps the material at index with its neighbour. It returns
// false when the move would leave the list.
func (s *Selection) MoveMaterial(index int, dir MoveDirection) bool {
	list := s.picks[CategoryMaterial]
	target := index - 1
	if dir == MoveDown {
		target = index + 1
	}
	if index < 0 || index >= len(list) || target < 0 || target >= len(list) {
		return false
	}
	list[index], list[target] = list[target], list[index]
	return true
}

// Clear resets the fields owned by a single step.
func (s *Selection) Clear(step Step) {
	if c, ok := CategoryOf(step); ok {
		delete(s.picks, c)
		return
	}
	switch step {
	case StepTextbook:
		s.Textbook = ""
	case StepGrade:
		s.Grade = ""
	case StepMockExam:
		s.MockExam = ""
	case StepYear:
		s.Year = ""
	case StepMonth:
		s.Month = ""
	case StepQuantity:
		s.QuantityPerType = DefaultQuantityPerType
	case StepRound:
		s.Round = DefaultRound
	case StepEmail:
		s.Email = ""
	}
}

// Back rewinds the selection to step: everything owned by later steps of
// the product's flow is cleared. A step outside the flow clears them all.
func (s *Selection) Back(step Step) {
	flow := FlowFor(s.Product)
	start := slices.Index(flow, step) + 1
	for _, later := range flow[start:] {
		s.Clear(later)
	}
}

// Reset empties the selection, including the product.
func (s *Selection) Reset() {
	exclusions := s.exclusions
	*s = *NewSelection("")
	s.exclusions = exclusions
}

func (s *Selection) add(c Category, id string) {
	for _, other := range s.conflicts(c, id) {
		s.remove(c, other)
	}
	s.push(c, id)
}

func (s *Selection) push(c Category, id string) {
	if s.picks == nil {
		s.picks = make(map[Category][]string)
	}
	s.picks[c] = append(s.picks[c], id)
}

func (s *Selection) remove(c Category, id string) {
	if !s.Has(c, id) {
		return
	}
	s.picks[c] = slices.DeleteFunc(s.picks[c], func(v string) bool { return v == id })
	if len(s.picks[c]) == 0 {
		delete(s.picks, c)
	}
}

// conflicts returns the chosen IDs that may not coexist with id.
func (s *Selection) conflicts(c Category, id string) []string {
	var out []string
	for _, r := range s.exclusions {
		if r.Category != c {
			continue
		}
		switch id {
		case r.A:
			if s.Has(c, r.B) {
				out = append(out, r.B)
			}
		case r.B:
			if s.Has(c, r.A) {
				out = append(out, r.A)
			}
		}
	}
	return out
}

// allChosen reports whether every id is either chosen or blocked by a
// chosen partner, and at least one is chosen.
func (s *Selection) allChosen(c Category, ids []string) bool {
	if s.Count(c) == 0 {
		return false
	}
	for _, id := range ids {
		if !s.Has(c, id) && len(s.conflicts(c, id)) == 0 {
			return false
		}
	}
	return true
}
