package service

import (
	"context"

	"github.com/alexanderramin/ordersheet/internal/catalog"
	"github.com/alexanderramin/ordersheet/internal/clipboard"
	"github.com/alexanderramin/ordersheet/internal/domain"
	"github.com/alexanderramin/ordersheet/internal/order"
	"github.com/alexanderramin/ordersheet/internal/pricing"
	"github.com/alexanderramin/ordersheet/internal/repository"
)

// TextbookDetail is a textbook with its indexed lessons.
type TextbookDetail struct {
	repository.TextbookSummary
	Lessons []repository.LessonRow
}

// ImportResult reports a merge of new textbooks into the catalog directory.
type ImportResult struct {
	Added    []string
	Replaced []string
	Path     string
}

type CatalogService interface {
	// Catalog returns the loaded reference data.
	Catalog() *catalog.Catalog
	Reindex(ctx context.Context) error
	ListTextbooks(ctx context.Context) ([]repository.TextbookSummary, error)
	ShowTextbook(ctx context.Context, name string) (*TextbookDetail, error)
	ListMockExams(ctx context.Context, grade string) ([]repository.MockExamRow, error)
	Import(ctx context.Context, src string) (*ImportResult, error)
}

type OrderService interface {
	Generate(ctx context.Context, sel *domain.Selection) (*order.Order, error)
	Preview(sel *domain.Selection) pricing.Quote
	Copy(ctx context.Context, text string) (clipboard.Method, error)
	Policies() []PolicyBinding
}

// PolicyBinding pairs a pricing policy with the products it prices.
type PolicyBinding struct {
	Policy   pricing.Policy
	Products []domain.Product
}

// Copier places text on the clipboard.
type Copier interface {
	Copy(text string) (clipboard.Method, error)
}
