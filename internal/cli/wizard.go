package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/ordersheet/internal/cli/formatter"
	"github.com/alexanderramin/ordersheet/internal/domain"
	"github.com/alexanderramin/ordersheet/internal/order"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ordersheetHuhTheme returns a custom huh theme using the Gruvbox palette.
func ordersheetHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// ── flow navigation ─────────────────────────────────────────────────────────

// skipStep reports steps that do not apply to the selection as it stands:
// the round only matters once a variant material is chosen.
func skipStep(sel *domain.Selection, step domain.Step) bool {
	return step == domain.StepRound && !sel.HasVariantMaterial()
}

// resolveStep moves index in direction dir past skipped steps. The result
// may fall outside the flow.
func resolveStep(sel *domain.Selection, index, dir int) int {
	flow := domain.FlowFor(sel.Product)
	for index >= 0 && index < len(flow) && skipStep(sel, flow[index]) {
		index += dir
	}
	return index
}

// stepView builds the view of the flow step at index.
func stepView(state *SharedState, index int) View {
	step := domain.FlowFor(state.Selection.Product)[index]
	if _, ok := domain.CategoryOf(step); ok {
		return newChecklistView(state, index)
	}
	return newFormStepView(state, index)
}

// startWizard opens the first step of the selection's flow.
func startWizard(state *SharedState) tea.Cmd {
	return pushView(stepView(state, resolveStep(state.Selection, 0, 1)))
}

// advance validates the step at index and moves to the next one, or to the
// order view after the last step. On failure it returns the messages to
// show above the step and no command.
func advance(state *SharedState, index int) (tea.Cmd, []string) {
	sel := state.Selection
	flow := domain.FlowFor(sel.Product)
	if msgs := order.ValidateStep(sel, state.App.Catalogs.Catalog(), flow[index]); len(msgs) > 0 {
		return nil, msgs
	}

	next := resolveStep(sel, index+1, 1)
	if next < len(flow) {
		return replaceView(stepView(state, next)), nil
	}

	o, err := state.App.Orders.Generate(state.Context(), sel)
	if err != nil {
		var verr *order.ValidationError
		if errors.As(err, &verr) {
			return nil, verr.Messages
		}
		return nil, []string{err.Error()}
	}
	return replaceView(newOrderView(state, o)), nil
}

// retreat goes back from the step at index: the previous step keeps its
// value and everything after it is cleared. Leaving the first step
// abandons the order and returns to the menu.
func retreat(state *SharedState, index int) tea.Cmd {
	sel := state.Selection
	prev := resolveStep(sel, index-1, -1)
	if prev < 0 {
		state.ClearOrder()
		return popView()
	}
	sel.Back(domain.FlowFor(sel.Product)[prev])
	return replaceView(stepView(state, prev))
}

// stepTitle is the breadcrumb of a step: "부교재 워크북 › 강 선택 (2/4)".
func stepTitle(sel *domain.Selection, index int) string {
	flow := domain.FlowFor(sel.Product)
	return fmt.Sprintf("%s › %s (%d/%d)", sel.Product.Label(), flow[index].Title(), index+1, len(flow))
}

// ── single-value step forms ─────────────────────────────────────────────────

// stepForm builds the huh form of a single-value step. apply copies the
// form's values into the selection once the form completes. A nil form
// means there is nothing to choose from.
func stepForm(state *SharedState, step domain.Step) (*huh.Form, func()) {
	sel := state.Selection
	cat := state.App.Catalogs.Catalog()

	switch step {
	case domain.StepTextbook:
		value := sel.Textbook
		opts := make([]huh.Option[string], 0)
		for _, name := range cat.Textbooks() {
			label := name
			if link, ok := cat.TextbookLink(name); ok && link.Description != "" {
				label = fmt.Sprintf("%s (%s)", name, link.Description)
			}
			opts = append(opts, huh.NewOption(label, name))
		}
		return selectForm(step, opts, &value), func() { sel.SetTextbook(value) }

	case domain.StepGrade:
		value := sel.Grade
		opts := make([]huh.Option[string], 0)
		for _, key := range cat.MockExamGrades() {
			opts = append(opts, huh.NewOption(domain.GradeLabel(key), key))
		}
		return selectForm(step, opts, &value), func() { sel.Grade = value }

	case domain.StepYear:
		value := sel.Year
		opts := make([]huh.Option[string], 0)
		for _, y := range cat.Years(sel.Grade) {
			opts = append(opts, huh.NewOption(y+"년", y))
		}
		return selectForm(step, opts, &value), func() { sel.Year = value }

	case domain.StepMonth:
		value := sel.Month
		opts := make([]huh.Option[string], 0)
		for _, m := range cat.Months(sel.Grade, sel.Year) {
			opts = append(opts, huh.NewOption(m, m))
		}
		return selectForm(step, opts, &value), func() { sel.Month = value }

	case domain.StepMockExam:
		value := sel.MockExam
		opts := make([]huh.Option[string], 0)
		for _, name := range cat.AllMockExams() {
			opts = append(opts, huh.NewOption(name, name))
		}
		return selectForm(step, opts, &value), func() { sel.MockExam = value }

	case domain.StepQuantity:
		value := sel.QuantityPerType
		opts := make([]huh.Option[int], 0, domain.MaxQuantityPerType)
		for n := domain.MinQuantityPerType; n <= domain.MaxQuantityPerType; n++ {
			opts = append(opts, huh.NewOption(fmt.Sprintf("%d문항", n), n))
		}
		return selectForm(step, opts, &value), func() { sel.SetQuantity(value) }

	case domain.StepRound:
		value := sel.Round
		opts := make([]huh.Option[int], 0, domain.MaxRound)
		for n := domain.MinRound; n <= domain.MaxRound; n++ {
			opts = append(opts, huh.NewOption(fmt.Sprintf("%d회차", n), n))
		}
		return selectForm(step, opts, &value), func() { sel.SetRound(value) }

	case domain.StepEmail:
		value := sel.Email
		f := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title(step.Title()).
					Placeholder("example@email.com").
					Value(&value).
					Validate(func(s string) error {
						if msg := order.EmailMessage(strings.TrimSpace(s)); msg != "" {
							return errors.New(msg)
						}
						return nil
					}),
			),
		).WithTheme(ordersheetHuhTheme()).WithShowHelp(false)
		return f, func() { sel.SetEmail(value) }
	}
	return nil, func() {}
}

func selectForm[T comparable](step domain.Step, opts []huh.Option[T], value *T) *huh.Form {
	if len(opts) == 0 {
		return nil
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[T]().
				Title(step.Title()).
				Options(opts...).
				Value(value),
		),
	).WithTheme(ordersheetHuhTheme()).WithShowHelp(false)
}
