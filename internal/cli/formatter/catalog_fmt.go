package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ordersheet/internal/domain"
	"github.com/alexanderramin/ordersheet/internal/repository"
	"github.com/alexanderramin/ordersheet/internal/service"
)

// FormatTextbookList renders the indexed textbooks as a table.
func FormatTextbookList(books []repository.TextbookSummary) string {
	if len(books) == 0 {
		return Dim("등록된 교재가 없습니다.") + "\n"
	}
	rows := make([][]string, len(books))
	for i, b := range books {
		rows[i] = []string{
			Bold(b.Name),
			fmt.Sprintf("%d강", b.LessonCount),
			fmt.Sprintf("%d지문", b.PassageCount),
			Dim(b.Link.Description),
		}
	}
	return RenderTable([]string{"교재", "강", "지문", "설명"}, rows)
}

// FormatTextbookDetail renders one textbook with its lessons and passages.
func FormatTextbookDetail(d *service.TextbookDetail) string {
	var b strings.Builder
	b.WriteString(Header(d.Name) + "\n")
	if d.Link.Description != "" {
		b.WriteString(d.Link.Description + "\n")
	}
	if d.Link.URL != "" {
		b.WriteString(StyleBlue.Render(d.Link.URL) + "\n")
	}
	b.WriteString(fmt.Sprintf("\n%d강 · %d지문\n\n", d.LessonCount, d.PassageCount))

	rows := make([][]string, len(d.Lessons))
	for i, l := range d.Lessons {
		rows[i] = []string{l.Name, fmt.Sprintf("%d", len(l.Passages)), strings.Join(l.Passages, ", ")}
	}
	b.WriteString(RenderTable([]string{"강", "지문 수", "번호"}, rows))
	return b.String()
}

// FormatMockExams groups exams under their grade label.
func FormatMockExams(exams []repository.MockExamRow) string {
	if len(exams) == 0 {
		return Dim("등록된 모의고사가 없습니다.") + "\n"
	}
	var b strings.Builder
	grade := ""
	for _, e := range exams {
		if e.Grade != grade {
			if grade != "" {
				b.WriteString("\n")
			}
			grade = e.Grade
			b.WriteString(StyleHeader.Render(domain.GradeLabel(grade)) + "\n")
		}
		b.WriteString("  " + e.Name + "\n")
	}
	return b.String()
}

// FormatImportResult summarises a textbook import.
func FormatImportResult(r *service.ImportResult) string {
	var b strings.Builder
	b.WriteString(StyleGreen.Render("교재 데이터를 가져왔습니다: ") + r.Path + "\n")
	if len(r.Added) > 0 {
		b.WriteString(fmt.Sprintf("  추가: %s\n", strings.Join(r.Added, ", ")))
	}
	if len(r.Replaced) > 0 {
		b.WriteString(fmt.Sprintf("  갱신: %s\n", strings.Join(r.Replaced, ", ")))
	}
	return b.String()
}
