package cli

import (
	"strings"

	"github.com/alexanderramin/ordersheet/internal/cli/formatter"
	"github.com/alexanderramin/ordersheet/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// formStepView wraps the huh.Form of a single-value wizard step. When the
// form completes, its value is applied to the selection and the wizard
// advances; a failed check rebuilds the form with the messages above it.
type formStepView struct {
	state *SharedState
	index int
	form  *huh.Form
	apply func()
	errs  []string
}

func newFormStepView(state *SharedState, index int) *formStepView {
	v := &formStepView{state: state, index: index}
	v.build()
	return v
}

func (v *formStepView) build() {
	step := domain.FlowFor(v.state.Selection.Product)[v.index]
	v.form, v.apply = stepForm(v.state, step)
}

func (v *formStepView) Init() tea.Cmd {
	if v.form == nil {
		return nil
	}
	return v.form.Init()
}

func (v *formStepView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Escape goes back one step.
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return v, retreat(v.state, v.index)
	}
	if v.form == nil {
		return v, nil
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	if v.form.State == huh.StateCompleted {
		v.apply()
		next, errs := advance(v.state, v.index)
		if len(errs) > 0 {
			v.errs = errs
			v.build()
			return v, v.form.Init()
		}
		return v, tea.Batch(cmd, next)
	}

	return v, cmd
}

func (v *formStepView) View() string {
	var b strings.Builder
	b.WriteString("\n")
	if len(v.errs) > 0 {
		b.WriteString(formatter.Errors(v.errs) + "\n\n")
	}
	if v.form == nil {
		b.WriteString("  " + formatter.Dim("선택할 수 있는 항목이 없습니다.") + "\n")
		return b.String()
	}
	b.WriteString(v.form.View())
	return b.String()
}

func (v *formStepView) ID() ViewID { return ViewForm }
func (v *formStepView) Title() string {
	return stepTitle(v.state.Selection, v.index)
}
func (v *formStepView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}
