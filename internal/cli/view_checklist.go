package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/alexanderramin/ordersheet/internal/cli/formatter"
	"github.com/alexanderramin/ordersheet/internal/domain"
	"github.com/alexanderramin/ordersheet/internal/order"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// checkItem is one selectable row of a checklist step.
type checkItem struct {
	id    string
	label string
	// group is the lesson a passage belongs to; empty elsewhere.
	group string
	entry *domain.Entry
}

// checklistView is a multi-select wizard step: passages, lessons, question
// types, exams, sections, numbers, packages or materials. A running price
// estimate is shown under the list.
type checklistView struct {
	state    *SharedState
	index    int
	step     domain.Step
	category domain.Category
	items    []checkItem
	cursor   int
	errs     []string
}

func newChecklistView(state *SharedState, index int) *checklistView {
	step := domain.FlowFor(state.Selection.Product)[index]
	cat, _ := domain.CategoryOf(step)
	v := &checklistView{state: state, index: index, step: step, category: cat}
	v.items = checklistItems(state, cat)
	return v
}

// checklistItems lists what the category offers for the current selection.
func checklistItems(state *SharedState, cat domain.Category) []checkItem {
	sel := state.Selection
	c := state.App.Catalogs.Catalog()

	var items []checkItem
	switch cat {
	case domain.CategoryPassage:
		for _, l := range c.Lessons(sel.Textbook) {
			for _, id := range l.PassageIDs() {
				items = append(items, checkItem{id: id, label: id, group: l.Name})
			}
		}
	case domain.CategoryLesson:
		for _, l := range c.Lessons(sel.Textbook) {
			items = append(items, checkItem{id: l.Name, label: fmt.Sprintf("%s (%d지문)", l.Name, len(l.Passages))})
		}
	case domain.CategoryExam:
		for _, name := range c.MockExams(sel.Grade) {
			items = append(items, checkItem{id: name, label: name})
		}
	default:
		for _, e := range c.Entries(cat, sel.Product) {
			e := e
			items = append(items, checkItem{id: e.ID, label: e.Name, entry: &e})
		}
	}
	return items
}

func (v *checklistView) Init() tea.Cmd { return nil }

func (v *checklistView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}
	sel := v.state.Selection

	switch keyMsg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(v.items)-1 {
			v.cursor++
		}
	case " ", "x":
		if it, ok := v.current(); ok {
			sel.Select(v.category, it.id)
			v.errs = nil
		}
	case "a":
		ids := v.ids()
		if v.category == domain.CategoryPackage {
			ids = domain.PackageBundle
		}
		sel.SelectAll(v.category, ids)
		v.errs = nil
	case "g":
		if it, ok := v.current(); ok && it.group != "" {
			sel.ToggleGroup(v.category, v.groupIDs(it.group))
			v.errs = nil
		}
	case "K", "J":
		v.moveMaterial(keyMsg.String() == "J")
	case "enter":
		next, errs := advance(v.state, v.index)
		v.errs = errs
		return v, next
	case "esc":
		return v, retreat(v.state, v.index)
	}
	return v, nil
}

func (v *checklistView) current() (checkItem, bool) {
	if v.cursor < 0 || v.cursor >= len(v.items) {
		return checkItem{}, false
	}
	return v.items[v.cursor], true
}

func (v *checklistView) ids() []string {
	ids := make([]string, len(v.items))
	for i, it := range v.items {
		ids[i] = it.id
	}
	return ids
}

func (v *checklistView) groupIDs(group string) []string {
	var ids []string
	for _, it := range v.items {
		if it.group == group {
			ids = append(ids, it.id)
		}
	}
	return ids
}

// moveMaterial shifts the material under the cursor within the chosen order.
func (v *checklistView) moveMaterial(down bool) {
	if v.category != domain.CategoryMaterial {
		return
	}
	it, ok := v.current()
	if !ok {
		return
	}
	pos := slices.Index(v.state.Selection.MaterialOrder(), it.id)
	dir := domain.MoveUp
	if down {
		dir = domain.MoveDown
	}
	v.state.Selection.MoveMaterial(pos, dir)
}

func (v *checklistView) View() string {
	sel := v.state.Selection
	c := v.state.App.Catalogs.Catalog()

	var b strings.Builder
	b.WriteString("\n")
	if sel.Product == domain.ProductTextbookVariant || sel.Product == domain.ProductWorkbookTextbook {
		b.WriteString(formatter.Dim("교재: "+sel.Textbook) + "\n")
	}
	b.WriteString(formatter.Header(v.step.Title()) + "\n\n")

	if len(v.items) == 0 {
		b.WriteString("  " + formatter.Dim("선택할 수 있는 항목이 없습니다.") + "\n")
	}

	from, to := v.window()
	group := ""
	for i := from; i < to; i++ {
		it := v.items[i]
		if it.group != "" && it.group != group {
			group = it.group
			b.WriteString("  " + formatter.StyleYellow.Render(group) + "\n")
		}

		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
		}
		box := formatter.Checkbox(sel.Has(v.category, it.id), sel.Blocked(v.category, it.id))
		line := fmt.Sprintf("%s%s %s", cursor, box, nameStyle.Render(it.label))
		if it.entry != nil {
			line = fmt.Sprintf("%s%s %s  %s", cursor, box,
				nameStyle.Render(formatter.PadRight(it.label, 24)), formatter.Dim(entryPrice(*it.entry)))
		}
		b.WriteString(line + "\n")

		if i == v.cursor && it.entry != nil {
			b.WriteString(entryDetail(*it.entry, c.SampleLink, v.state.Width-6))
		}
	}

	if v.category == domain.CategoryMaterial && sel.Count(domain.CategoryMaterial) > 0 {
		b.WriteString("\n" + formatter.Dim("교재 구성 순서") + "\n")
		for i, id := range sel.MaterialOrder() {
			b.WriteString(fmt.Sprintf("  %d. %s\n", i+1, v.label(id)))
		}
	}

	b.WriteString(fmt.Sprintf("\n%s\n", formatter.Dim(fmt.Sprintf("선택됨: %d개", sel.Count(v.category)))))
	b.WriteString(formatter.FormatQuote(v.state.App.Orders.Preview(sel)) + "\n")

	if len(v.errs) > 0 {
		b.WriteString("\n" + formatter.Errors(v.errs) + "\n")
	}
	return b.String()
}

func (v *checklistView) label(id string) string {
	for _, it := range v.items {
		if it.id == id {
			return it.label
		}
	}
	return id
}

// window returns the slice of items that fits the content area, keeping
// the cursor visible.
func (v *checklistView) window() (int, int) {
	rows := v.state.ContentHeight() - 10
	if v.state.Height == 0 || rows >= len(v.items) {
		return 0, len(v.items)
	}
	rows = max(rows, 5)
	from := max(v.cursor-rows/2, 0)
	to := min(from+rows, len(v.items))
	from = max(to-rows, 0)
	return from, to
}

func entryPrice(e domain.Entry) string {
	if e.Free {
		return "무료"
	}
	if e.UnitPrice == 0 {
		return ""
	}
	return order.Won(e.UnitPrice)
}

func entryDetail(e domain.Entry, sample func(string) (string, bool), width int) string {
	var b strings.Builder
	if e.Description != "" {
		desc := e.Description
		if width > 0 {
			desc = formatter.Truncate(desc, width)
		}
		b.WriteString("      " + formatter.Dim(desc) + "\n")
	}
	if len(e.SubTypes) > 0 {
		b.WriteString("      " + formatter.Dim("포함 유형: "+strings.Join(e.SubTypes, ", ")) + "\n")
	}
	if url, ok := sample(e.Name); ok {
		b.WriteString("      " + formatter.Dim("샘플: "+url) + "\n")
	}
	return b.String()
}

func (v *checklistView) ID() ViewID { return ViewChecklist }
func (v *checklistView) Title() string {
	return stepTitle(v.state.Selection, v.index)
}

func (v *checklistView) ShortHelp() []key.Binding {
	hints := []key.Binding{
		key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all")),
	}
	switch v.category {
	case domain.CategoryPassage:
		hints = append(hints, key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "lesson")))
	case domain.CategoryMaterial:
		hints = append(hints, key.NewBinding(key.WithKeys("K", "J"), key.WithHelp("K/J", "reorder")))
	}
	return append(hints,
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	)
}
