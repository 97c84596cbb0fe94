package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ordersheet/internal/cli/formatter"
	"github.com/alexanderramin/ordersheet/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// menuView lists the products an order can be built for.
type menuView struct {
	state  *SharedState
	cursor int
}

func newMenuView(state *SharedState) *menuView {
	return &menuView{state: state}
}

func (v *menuView) ID() ViewID    { return ViewMenu }
func (v *menuView) Title() string { return "" }

func (v *menuView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		key.NewBinding(key.WithKeys("up", "k", "down", "j"), key.WithHelp("↑↓", "move")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

func (v *menuView) Init() tea.Cmd { return nil }

func (v *menuView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return v, nil
	}

	switch keyMsg.String() {
	case "up", "k":
		if v.cursor > 0 {
			v.cursor--
		}
	case "down", "j":
		if v.cursor < len(domain.Products)-1 {
			v.cursor++
		}
	case "enter":
		v.state.StartOrder(domain.Products[v.cursor])
		return v, startWizard(v.state)
	case "q", "esc":
		return v, quit()
	}
	return v, nil
}

func (v *menuView) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(formatter.Header("주문할 상품을 선택해주세요") + "\n\n")

	for i, p := range domain.Products {
		cursor := "  "
		nameStyle := formatter.StyleFg
		if i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
			nameStyle = formatter.StyleBold
		}
		b.WriteString(fmt.Sprintf("  %s%d. %s\n", cursor, i+1, nameStyle.Render(p.Label())))
	}

	return b.String()
}
