// Package pricing holds the volume-discount tables applied to orders.
//
// Rates are stored in basis points (1/100 of a percent) so every discount
// is computed on integers: discount = base * bps / 10000, rounded down.
package pricing

import (
	"fmt"
	"strconv"
	"strings"
)

// BpsDenominator is the basis-point scale: 10000 bps is 100%.
const BpsDenominator = 10000

type Style string

const (
	// StyleUnitPrice shows the discount as a reduced per-item price.
	StyleUnitPrice Style = "unit_price"
	// StylePercent shows the discount as a percentage of the base price.
	StylePercent Style = "percent"
)

// Tier applies RateBps once the order count reaches MinCount.
type Tier struct {
	MinCount int `yaml:"min_count"`
	RateBps  int `yaml:"rate_bps"`
}

// Policy is a named, ordered list of tiers.
type Policy struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Style       Style  `yaml:"style"`
	Tiers       []Tier `yaml:"tiers"`
}

// Quote is the result of applying a policy.
type Quote struct {
	Count    int
	Base     int64
	RateBps  int
	Discount int64
	Final    int64
	// Threshold is the MinCount of the tier that applied, 0 when none did.
	Threshold int
}

// RateFor returns the rate of the highest tier whose MinCount is reached.
func (p Policy) RateFor(count int) int {
	_, rate := p.tierFor(count)
	return rate
}

func (p Policy) tierFor(count int) (int, int) {
	threshold, rate := 0, 0
	for _, t := range p.Tiers {
		if count >= t.MinCount {
			threshold, rate = t.MinCount, t.RateBps
		}
	}
	return threshold, rate
}

// Apply computes the discount for a base price and order count.
func (p Policy) Apply(base int64, count int) Quote {
	threshold, rate := p.tierFor(count)
	q := Quote{Count: count, Base: base, RateBps: rate, Threshold: threshold}
	if base > 0 && rate > 0 {
		q.Discount = base * int64(rate) / BpsDenominator
	}
	q.Final = base - q.Discount
	return q
}

// Validate checks tier ordering and rate bounds.
func (p Policy) Validate() []error {
	var errs []error
	if p.Name == "" {
		errs = append(errs, fmt.Errorf("policy name is required"))
	}
	switch p.Style {
	case StyleUnitPrice, StylePercent:
	default:
		errs = append(errs, fmt.Errorf("policy %q: invalid style %q", p.Name, p.Style))
	}
	for i, t := range p.Tiers {
		if t.MinCount < 0 {
			errs = append(errs, fmt.Errorf("policy %q: tier %d: min_count must be >= 0", p.Name, i))
		}
		if t.RateBps < 0 || t.RateBps > BpsDenominator {
			errs = append(errs, fmt.Errorf("policy %q: tier %d: rate_bps %d out of range [0, %d]", p.Name, i, t.RateBps, BpsDenominator))
		}
		if i == 0 {
			continue
		}
		prev := p.Tiers[i-1]
		if t.MinCount <= prev.MinCount {
			errs = append(errs, fmt.Errorf("policy %q: tier %d: min_count %d must be greater than %d", p.Name, i, t.MinCount, prev.MinCount))
		}
		if t.RateBps < prev.RateBps {
			errs = append(errs, fmt.Errorf("policy %q: tier %d: rate_bps %d is lower than previous tier %d", p.Name, i, t.RateBps, prev.RateBps))
		}
	}
	return errs
}

// Summary renders the tiers as "100+ 10%, 200+ 20%".
func (p Policy) Summary() string {
	if len(p.Tiers) == 0 {
		return "할인 없음"
	}
	parts := make([]string, 0, len(p.Tiers))
	for _, t := range p.Tiers {
		parts = append(parts, fmt.Sprintf("%d+ %s%%", t.MinCount, FormatPercent(t.RateBps)))
	}
	return strings.Join(parts, ", ")
}

// FormatPercent renders basis points as a percentage without trailing
// zeros: 1000 -> "10", 3750 -> "37.5".
func FormatPercent(bps int) string {
	return strconv.FormatFloat(float64(bps)/100, 'f', -1, 64)
}
