package testutil

import (
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/alexanderramin/ordersheet/internal/catalog"
	"github.com/alexanderramin/ordersheet/internal/domain"
	"github.com/alexanderramin/ordersheet/internal/pricing"
	"github.com/rs/zerolog"
)

// Bundled catalog facts the tests rely on.
const (
	SuneungTextbook = "2025 수능특강 영어"
	OlympusTextbook = "올림포스 영어독해의 기본 1"
	TestEmail       = "teacher@example.com"
)

// NewTestCatalog loads the bundled reference data.
func NewTestCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	return catalog.Load(catalog.Bundled(), zerolog.Nop())
}

// NewSmallCatalog loads a two-lesson textbook, one grade of exams and the
// bundled options.
func NewSmallCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	options, err := fs.ReadFile(catalog.Bundled(), "options.json")
	if err != nil {
		t.Fatalf("reading bundled options: %v", err)
	}
	fsys := fstest.MapFS{
		"textbooks.json": {Data: []byte(`{
  "작은 교재": {"부교재": {"작은 교재": {
    "1강": [{"번호": "1번"}, {"번호": "2번"}],
    "2강": [{"번호": "1번"}]
  }}}
}`)},
		"mock-exams.json":            {Data: []byte(`{"고1모의고사": ["고1_2024_03월", "고1_2024_06월"]}`)},
		"textbook-links.json":        {Data: []byte(`{"작은 교재": {"kyoboUrl": "https://example.com/small", "description": "테스트"}}`)},
		"options.json":               {Data: options},
		"question-type-samples.json": {Data: []byte(`{}`)},
	}
	return catalog.Load(fsys, zerolog.Nop())
}

// NewTestPolicies returns the embedded pricing table.
func NewTestPolicies(t *testing.T) *pricing.Table {
	t.Helper()
	table, err := pricing.Default()
	if err != nil {
		t.Fatalf("loading default pricing table: %v", err)
	}
	return table
}

// Selection options
type SelectionOption func(*domain.Selection)

func WithEmail(email string) SelectionOption {
	return func(s *domain.Selection) { s.SetEmail(email) }
}

func WithQuantity(n int) SelectionOption {
	return func(s *domain.Selection) { s.SetQuantity(n) }
}

// NewVariantSelection builds a complete textbook-variant selection of the
// first two passages of 1강 with the 주제 and 제목 types.
func NewVariantSelection(opts ...SelectionOption) *domain.Selection {
	s := domain.NewSelection(domain.ProductTextbookVariant)
	s.SetTextbook(SuneungTextbook)
	s.Select(domain.CategoryPassage, "1강 1번")
	s.Select(domain.CategoryPassage, "1강 2번")
	s.Select(domain.CategoryQuestionType, "주제")
	s.Select(domain.CategoryQuestionType, "제목")
	s.SetEmail(TestEmail)
	for _, opt := range opts {
		opt(s)
	}
	return s
}
