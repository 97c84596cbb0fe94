package pricing

import (
	"strings"
	"testing"

	"github.com/alexanderramin/ordersheet/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateFor_StepFunction(t *testing.T) {
	p := Policy{Name: "t", Style: StylePercent, Tiers: []Tier{{50, 1000}, {100, 2000}}}

	tests := []struct {
		count int
		want  int
	}{
		{0, 0}, {49, 0}, {50, 1000}, {99, 1000}, {100, 2000}, {5000, 2000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.RateFor(tt.count), "count=%d", tt.count)
	}
}

func TestRateFor_NonDecreasing(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	for _, p := range table.Policies() {
		prev := 0
		for n := 0; n <= 1000; n++ {
			r := p.RateFor(n)
			require.GreaterOrEqual(t, r, prev, "policy %s count %d", p.Name, n)
			prev = r
		}
	}
}

func TestApply(t *testing.T) {
	p := Policy{Name: "percent-100-200", Style: StylePercent, Tiers: []Tier{{100, 1000}, {200, 2000}}}

	q := p.Apply(8000, 100)
	assert.Equal(t, 1000, q.RateBps)
	assert.Equal(t, int64(800), q.Discount)
	assert.Equal(t, int64(7200), q.Final)
	assert.Equal(t, 100, q.Threshold)

	q = p.Apply(7920, 99)
	assert.Equal(t, 0, q.RateBps)
	assert.Equal(t, int64(0), q.Discount)
	assert.Equal(t, int64(7920), q.Final)
}

func TestApply_RoundsDown(t *testing.T) {
	p := Policy{Name: "p", Style: StylePercent, Tiers: []Tier{{1, 1000}}}
	q := p.Apply(1999, 1)
	assert.Equal(t, int64(199), q.Discount)
	assert.Equal(t, int64(1800), q.Final)
}

func TestApply_UnitPricePolicies(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	variant := table.For(domain.ProductTextbookVariant)
	q := variant.Apply(100*80, 100)
	assert.Equal(t, int64(6000), q.Final, "80 won drops to 60 won per question")

	sections := table.For(domain.ProductMockExamSections)
	q = sections.Apply(112*80, 112)
	assert.Equal(t, int64(112*50), q.Final, "80 won drops to 50 won per question")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		want   string
	}{
		{"missing name", Policy{Style: StylePercent}, "name is required"},
		{"bad style", Policy{Name: "p", Style: "fancy"}, "invalid style"},
		{"rate too high", Policy{Name: "p", Style: StylePercent, Tiers: []Tier{{1, 10001}}}, "out of range"},
		{"decreasing rate", Policy{Name: "p", Style: StylePercent, Tiers: []Tier{{50, 2000}, {100, 1000}}}, "lower than previous"},
		{"unsorted tiers", Policy{Name: "p", Style: StylePercent, Tiers: []Tier{{100, 1000}, {50, 2000}}}, "must be greater than"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.policy.Validate()
			require.NotEmpty(t, errs)
			assert.Contains(t, errs[0].Error(), tt.want)
		})
	}

	ok := Policy{Name: "p", Style: StylePercent, Tiers: []Tier{{50, 1000}, {100, 1000}}}
	assert.Empty(t, ok.Validate())
}

func TestLoad_Default(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	names := make([]string, 0)
	for _, p := range table.Policies() {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"question-80-60", "question-80-50", "percent-50-100", "percent-100-200", "none"}, names)
	assert.Equal(t, "percent-50-100", table.BindingName(domain.ProductWorkbookTextbook))
	assert.Equal(t, "none", table.For(domain.ProductNumberProduction).Name)
}

func TestLoad_RejectsDecreasingRates(t *testing.T) {
	doc := `
policies:
  - name: broken
    style: percent
    tiers:
      - {min_count: 50, rate_bps: 2000}
      - {min_count: 100, rate_bps: 1000}
bindings:
  textbook_variant: broken
  mockexam_sections: broken
  workbook_textbook: broken
  workbook_mockexam: broken
  number_production: broken
`
	_, err := Load(strings.NewReader(doc))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lower than previous")
}

func TestLoad_RejectsUnknownBindingAndFields(t *testing.T) {
	_, err := Load(strings.NewReader("policies: []\nbindings:\n  textbook_variant: nope\n"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownPolicy)
	assert.Contains(t, err.Error(), `product "number_production" has no policy`)

	_, err = Load(strings.NewReader("policies: []\nextra: 1\n"))
	require.Error(t, err)
}

func TestBind(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	require.NoError(t, table.Bind(domain.ProductTextbookVariant, "percent-100-200"))
	assert.Equal(t, "percent-100-200", table.For(domain.ProductTextbookVariant).Name)

	assert.ErrorIs(t, table.Bind(domain.ProductTextbookVariant, "missing"), ErrUnknownPolicy)
}

func TestSummaryAndFormatPercent(t *testing.T) {
	assert.Equal(t, "10", FormatPercent(1000))
	assert.Equal(t, "37.5", FormatPercent(3750))
	assert.Equal(t, "할인 없음", Policy{}.Summary())
	p := Policy{Tiers: []Tier{{100, 1000}, {200, 2000}}}
	assert.Equal(t, "100+ 10%, 200+ 20%", p.Summary())
}
