package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/ordersheet/internal/catalog"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

// TextbookSummary is one row of the textbook listing.
type TextbookSummary struct {
	Name         string
	LessonCount  int
	PassageCount int
	Link         catalog.Link
}

// LessonRow is a lesson with its passage numbers in catalog order.
type LessonRow struct {
	Name     string
	Passages []string
}

type MockExamRow struct {
	Grade string
	Name  string
}

// CatalogRepo is the SQLite index of the reference catalog.
type CatalogRepo interface {
	ReplaceAll(ctx context.Context, cat *catalog.Catalog) error
	ListTextbooks(ctx context.Context) ([]TextbookSummary, error)
	ListLessons(ctx context.Context, textbook string) ([]LessonRow, error)
	CountPassages(ctx context.Context, textbook string, lessons []string) (int, error)
	ListMockExams(ctx context.Context, grade string) ([]MockExamRow, error)
	GetTextbookLink(ctx context.Context, name string) (catalog.Link, error)
	PutMeta(ctx context.Context, key, value string) error
	GetMeta(ctx context.Context, key string) (string, error)
}
