package formatter

import (
	"strings"

	"github.com/alexanderramin/ordersheet/internal/service"
)

// FormatPolicies renders every pricing policy with its tiers and the
// products bound to it.
func FormatPolicies(bindings []service.PolicyBinding) string {
	rows := make([][]string, len(bindings))
	for i, pb := range bindings {
		products := Dim("-")
		if len(pb.Products) > 0 {
			labels := make([]string, len(pb.Products))
			for j, p := range pb.Products {
				labels[j] = p.Label()
			}
			products = strings.Join(labels, ", ")
		}
		rows[i] = []string{Bold(pb.Policy.Name), pb.Policy.Summary(), products}
	}
	return RenderTable([]string{"정책", "할인 구간", "적용 상품"}, rows)
}
