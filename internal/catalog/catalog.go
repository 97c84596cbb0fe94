// Package catalog loads the static reference data the order wizard offers:
// textbooks with their lessons and passages, mock exams, priced options
// and informational links.
package catalog

import (
	"errors"
	"regexp"
	"slices"
	"strings"

	"github.com/alexanderramin/ordersheet/internal/domain"
	"golang.org/x/text/unicode/norm"
)

// ErrNotFound is returned by lookups of unknown names.
var ErrNotFound = errors.New("not found")

type Textbook struct {
	Name    string
	Lessons []Lesson
}

type Lesson struct {
	Name string
	// Passages holds passage numbers such as "3번".
	Passages []string
}

// PassageIDs returns "{lesson} {number}" IDs, the form the variant order lists.
func (l Lesson) PassageIDs() []string {
	ids := make([]string, len(l.Passages))
	for i, p := range l.Passages {
		ids[i] = l.Name + " " + p
	}
	return ids
}

type Link struct {
	URL         string `json:"kyoboUrl"`
	Description string `json:"description"`
}

type GradeExams struct {
	Grade string
	Exams []string
}

// Catalog is immutable after Load.
type Catalog struct {
	textbooks []Textbook
	mockExams []GradeExams
	links     map[string]Link
	samples   map[string]string
	options   options
}

// Empty returns a catalog with nothing in it.
func Empty() *Catalog {
	return &Catalog{links: map[string]Link{}, samples: map[string]string{}}
}

// Textbooks returns textbook names in file order.
func (c *Catalog) Textbooks() []string {
	names := make([]string, len(c.textbooks))
	for i, t := range c.textbooks {
		names[i] = t.Name
	}
	return names
}

// Textbook returns a textbook by name.
func (c *Catalog) Textbook(name string) (Textbook, error) {
	name = normalize(name)
	for _, t := range c.textbooks {
		if t.Name == name {
			return t, nil
		}
	}
	return Textbook{}, ErrNotFound
}

// AllTextbooks returns every textbook with its lessons.
func (c *Catalog) AllTextbooks() []Textbook {
	return slices.Clone(c.textbooks)
}

// Lessons returns a textbook's lessons in file order.
func (c *Catalog) Lessons(textbook string) []Lesson {
	t, err := c.Textbook(textbook)
	if err != nil {
		return nil
	}
	return t.Lessons
}

// Passages returns the passage IDs of one lesson.
func (c *Catalog) Passages(textbook, lesson string) []string {
	for _, l := range c.Lessons(textbook) {
		if l.Name == normalize(lesson) {
			return l.PassageIDs()
		}
	}
	return nil
}

// PassageCount sums the passages of the given lessons.
func (c *Catalog) PassageCount(textbook string, lessons []string) int {
	want := make(map[string]bool, len(lessons))
	for _, l := range lessons {
		want[normalize(l)] = true
	}
	n := 0
	for _, l := range c.Lessons(textbook) {
		if want[l.Name] {
			n += len(l.Passages)
		}
	}
	return n
}

// MockExamGrades returns grade keys such as "고1모의고사" in file order.
func (c *Catalog) MockExamGrades() []string {
	out := make([]string, len(c.mockExams))
	for i, g := range c.mockExams {
		out[i] = g.Grade
	}
	return out
}

// MockExams returns the exams of a grade key.
func (c *Catalog) MockExams(grade string) []string {
	grade = normalize(domain.GradeKey(grade))
	for _, g := range c.mockExams {
		if g.Grade == grade {
			return slices.Clone(g.Exams)
		}
	}
	return nil
}

// AllMockExams returns every exam name across grades.
func (c *Catalog) AllMockExams() []string {
	var out []string
	for _, g := range c.mockExams {
		out = append(out, g.Exams...)
	}
	return out
}

// AllGradeExams returns every grade with its exams.
func (c *Catalog) AllGradeExams() []GradeExams {
	return slices.Clone(c.mockExams)
}

var (
	yearPattern  = regexp.MustCompile(`_(\d{4})_`)
	monthPattern = regexp.MustCompile(`_(\d{2}월[^_]*)`)
)

// Years returns the distinct exam years of a grade, newest first.
func (c *Catalog) Years(grade string) []string {
	seen := map[string]bool{}
	var years []string
	for _, e := range c.MockExams(grade) {
		m := yearPattern.FindStringSubmatch(e)
		if m == nil || seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		years = append(years, m[1])
	}
	slices.SortFunc(years, func(a, b string) int { return strings.Compare(b, a) })
	return years
}

// Months returns the months offered for a grade and year, in file order.
func (c *Catalog) Months(grade, year string) []string {
	seen := map[string]bool{}
	var months []string
	for _, e := range c.MockExams(grade) {
		if !strings.Contains(e, "_"+year+"_") {
			continue
		}
		m := monthPattern.FindStringSubmatch(e)
		if m == nil || seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		months = append(months, m[1])
	}
	return months
}

// TextbookLink returns the bookstore link of a textbook.
func (c *Catalog) TextbookLink(name string) (Link, bool) {
	l, ok := c.links[normalize(name)]
	return l, ok
}

// SampleLink returns the sample URL of a question type.
func (c *Catalog) SampleLink(typeName string) (string, bool) {
	u, ok := c.samples[normalize(typeName)]
	return u, ok
}

// ExamNumbers returns the selectable mock-exam question numbers.
func (c *Catalog) ExamNumbers() []domain.Entry {
	out := make([]domain.Entry, len(c.options.ExamNumbers))
	for i, n := range c.options.ExamNumbers {
		out[i] = domain.Entry{ID: n, Name: NumberLabel(n)}
	}
	return out
}

// NumberLabel renders "18" as "18번" and "41-42" as "41~42번".
func NumberLabel(n string) string {
	return strings.ReplaceAll(n, "-", "~") + "번"
}

// Entries returns the priced entries of a category as offered for a
// product. Packages that are free on mock exams come back with Free set
// for workbook_mockexam.
func (c *Catalog) Entries(cat domain.Category, p domain.Product) []domain.Entry {
	var src []optionEntry
	switch cat {
	case domain.CategoryQuestionType:
		src = c.options.QuestionTypes
	case domain.CategorySection:
		src = c.options.ExamSections
	case domain.CategoryPackage:
		src = c.options.Packages
	case domain.CategoryMaterial:
		src = c.options.Materials
	case domain.CategoryNumber:
		return c.ExamNumbers()
	default:
		return nil
	}
	out := make([]domain.Entry, len(src))
	for i, o := range src {
		out[i] = o.entry()
		if p == domain.ProductWorkbookMockExam && o.FreeForMockExam {
			out[i].Free = true
		}
	}
	return out
}

// Entry finds one entry of a category by ID.
func (c *Catalog) Entry(cat domain.Category, p domain.Product, id string) (domain.Entry, bool) {
	for _, e := range c.Entries(cat, p) {
		if e.ID == id {
			return e, true
		}
	}
	return domain.Entry{}, false
}

func normalize(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}
