package order

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ordersheet/internal/catalog"
	"github.com/alexanderramin/ordersheet/internal/domain"
	"github.com/alexanderramin/ordersheet/internal/pricing"
	"github.com/dustin/go-humanize"
)

// Won formats an amount with thousands separators: 12000 -> "12,000원".
func Won(n int64) string {
	return humanize.Comma(n) + "원"
}

func render(sel *domain.Selection, o *Order) string {
	var b strings.Builder
	switch sel.Product {
	case domain.ProductTextbookVariant:
		renderTextbookVariant(&b, sel, o)
	case domain.ProductMockExamSections:
		renderMockExamSections(&b, sel, o)
	case domain.ProductWorkbookTextbook, domain.ProductWorkbookMockExam:
		renderWorkbook(&b, sel, o)
	case domain.ProductNumberProduction:
		renderProduction(&b, sel, o)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderTextbookVariant(b *strings.Builder, sel *domain.Selection, o *Order) {
	fmt.Fprintf(b, "교재: %s\n\n", sel.Textbook)
	section(b, 1, "필요하신 강과 번호", strings.Join(sel.Chosen(domain.CategoryPassage), ", "))
	section(b, 2, "문제 유형", joinNames(o.Lines))
	section(b, 3, "유형별로 필요한 문제수", fmt.Sprintf("%d문항씩", sel.QuantityPerType))
	section(b, 4, "가격", questionPrice(o))
	section(b, 5, "자료 받으실 이메일 주소", o.Email)
}

func renderMockExamSections(b *strings.Builder, sel *domain.Selection, o *Order) {
	b.WriteString("모의고사 주문서\n\n")
	section(b, 1, "학년/유형", sel.Grade)
	section(b, 2, "선택된 모의고사", strings.Join(sel.Chosen(domain.CategoryExam), ", "))
	section(b, 3, "선택된 구간", joinNames(o.Lines))
	section(b, 4, "구간별 문항 수", fmt.Sprintf("%d문항씩", sel.QuantityPerType))
	section(b, 5, "총 문항 수", fmt.Sprintf("%d문항", o.TotalCount))
	section(b, 6, "가격", questionPrice(o))
	section(b, 7, "자료 받으실 이메일 주소", o.Email)
}

func renderWorkbook(b *strings.Builder, sel *domain.Selection, o *Order) {
	b.WriteString("워크북 주문서\n\n")
	fmt.Fprintf(b, "자료 받으실 이메일 주소: %s\n\n", o.Email)

	if sel.Product == domain.ProductWorkbookTextbook {
		lessons := sel.Chosen(domain.CategoryLesson)
		fmt.Fprintf(b, "교재: %s\n\n", sel.Textbook)
		fmt.Fprintf(b, "1. 선택된 강 (%d개)\n: %s\n\n", len(lessons), strings.Join(lessons, ", "))
	} else {
		numbers := sel.Chosen(domain.CategoryNumber)
		fmt.Fprintf(b, "교재: %s\n\n", sel.MockExam)
		fmt.Fprintf(b, "1. 선택된 번호 (%d개)\n: %s\n\n", len(numbers), numberLabels(numbers))
	}

	fmt.Fprintf(b, "2. 선택된 워크북 패키지\n: %s\n\n", joinNames(o.Lines))
	fmt.Fprintf(b, "3. 총 지문 수\n: %d지문\n\n", o.TextCount)

	b.WriteString("4. 패키지별 세부 내용\n")
	for _, l := range o.Lines {
		price := fmt.Sprintf("지문당 %s", Won(l.UnitPrice))
		if l.Free {
			price = "무료"
		}
		fmt.Fprintf(b, "   • %s (%s)\n", l.Name, price)
		if l.Description != "" {
			fmt.Fprintf(b, "     - %s\n", l.Description)
		}
		if len(l.SubTypes) > 0 {
			fmt.Fprintf(b, "     - 포함 유형: %s\n", strings.Join(l.SubTypes, ", "))
		}
	}
	b.WriteString("\n")

	b.WriteString("5. 가격 계산\n")
	for _, l := range o.Lines {
		if l.Free {
			fmt.Fprintf(b, "   • %s: 무료\n", l.Name)
			continue
		}
		fmt.Fprintf(b, "   • %s: %s × %d지문 = %s\n", l.Name, Won(l.UnitPrice), l.Quantity, Won(l.Subtotal))
	}
	b.WriteString("\n")
	fmt.Fprintf(b, "   기본 금액: %s\n", Won(o.BasePrice))
	if o.RateBps > 0 {
		fmt.Fprintf(b, "   할인 적용: %s%% 할인 (-%s)\n", pricing.FormatPercent(o.RateBps), Won(o.DiscountAmount))
	}
	fmt.Fprintf(b, "   최종 금액: %s\n", Won(o.FinalPrice))
}

func renderProduction(b *strings.Builder, sel *domain.Selection, o *Order) {
	numbers := sel.Chosen(domain.CategoryNumber)

	b.WriteString("번호별 교재 제작 주문서\n\n")
	fmt.Fprintf(b, "자료 받으실 이메일 주소: %s\n\n", o.Email)
	fmt.Fprintf(b, "모의고사: %s\n\n", sel.ExamName())
	fmt.Fprintf(b, "1. 선택된 번호 (%d개)\n: %s\n\n", len(numbers), numberLabels(numbers))

	fmt.Fprintf(b, "2. 교재 구성 (%d개)\n", len(o.Lines))
	for i, l := range o.Lines {
		name := l.Name
		if domain.IsVariantMaterial(l.ID) {
			name = fmt.Sprintf("%s (%d회차)", name, sel.Round)
		}
		fmt.Fprintf(b, "   %d. %s\n", i+1, name)
		if l.Description != "" {
			fmt.Fprintf(b, "      - %s\n", l.Description)
		}
		fmt.Fprintf(b, "      - 가격: %s × %d개 = %s\n", Won(l.UnitPrice), l.Quantity, Won(l.Subtotal))
	}
	b.WriteString("\n")

	b.WriteString("3. 가격 계산\n")
	fmt.Fprintf(b, "   기본 금액: %s\n", Won(o.BasePrice))
	fmt.Fprintf(b, "   총 교재 수: %d개 × %d종류 = %d세트\n", o.TextCount, len(o.Lines), o.TotalCount)
	if o.RateBps > 0 {
		fmt.Fprintf(b, "   할인 적용: %s%% 할인 (-%s)\n", pricing.FormatPercent(o.RateBps), Won(o.DiscountAmount))
	}
	b.WriteString("\n")
	fmt.Fprintf(b, "4. 최종 금액: %s\n", Won(o.FinalPrice))
}

func section(b *strings.Builder, n int, title, body string) {
	fmt.Fprintf(b, "%d. %s\n: %s\n", n, title, body)
}

// questionPrice renders "6,000원 (총 100문항 × 60원 - 100문항 이상 할인 적용)".
// A unit-price policy shows the reduced per-question price when it divides
// evenly; otherwise the discount is shown as a percentage.
func questionPrice(o *Order) string {
	detail := fmt.Sprintf("총 %d문항", o.TotalCount)
	unit, uniform := o.uniformUnit()

	switch {
	case o.RateBps == 0:
		if uniform {
			detail += " × " + Won(unit)
		}
	case o.Policy.Style == pricing.StyleUnitPrice && uniform && o.FinalPrice%int64(o.TotalCount) == 0:
		detail += fmt.Sprintf(" × %s - %d문항 이상 할인 적용", Won(o.FinalPrice/int64(o.TotalCount)), o.Threshold)
	default:
		if uniform {
			detail += " × " + Won(unit)
		}
		detail += fmt.Sprintf(" - %s%% 할인 적용, -%s", pricing.FormatPercent(o.RateBps), Won(o.DiscountAmount))
	}
	return fmt.Sprintf("%s (%s)", Won(o.FinalPrice), detail)
}

func joinNames(lines []Line) string {
	names := make([]string, len(lines))
	for i, l := range lines {
		names[i] = l.Name
	}
	return strings.Join(names, ", ")
}

func numberLabels(ids []string) string {
	labels := make([]string, len(ids))
	for i, id := range ids {
		labels[i] = catalog.NumberLabel(id)
	}
	return strings.Join(labels, ", ")
}
