package cli

import (
	"time"

	"github.com/alexanderramin/ordersheet/internal/cli/formatter"
	"github.com/alexanderramin/ordersheet/internal/clipboard"
	"github.com/alexanderramin/ordersheet/internal/domain"
	"github.com/alexanderramin/ordersheet/internal/order"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// copiedMsg reports the outcome of a clipboard copy.
type copiedMsg struct {
	method clipboard.Method
	err    error
}

// copyExpiredMsg hides the copy confirmation.
type copyExpiredMsg struct{}

// orderView shows the generated order in a scrollable viewport.
type orderView struct {
	state  *SharedState
	order  *order.Order
	vp     viewport.Model
	notice string
}

func newOrderView(state *SharedState, o *order.Order) *orderView {
	vp := viewport.New(state.Width, state.ContentHeight()-2)
	vp.KeyMap = orderViewportKeyMap()
	vp.SetContent(formatter.FormatOrder(o, state.App.MessageURL))
	return &orderView{state: state, order: o, vp: vp}
}

func (v *orderView) Init() tea.Cmd { return nil }

func (v *orderView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.vp.Width = msg.Width
		v.vp.Height = v.state.ContentHeight() - 2
		return v, nil

	case copiedMsg:
		if msg.err != nil {
			v.notice = formatter.StyleRed.Render("복사하지 못했습니다: " + msg.err.Error())
			return v, nil
		}
		v.notice = formatter.StyleGreen.Render("✓ 주문서가 복사되었습니다")
		if msg.method == clipboard.MethodOSC52 {
			v.notice += formatter.Dim(" (터미널 클립보드)")
		}
		return v, tea.Tick(v.copiedFor(), func(time.Time) tea.Msg { return copyExpiredMsg{} })

	case copyExpiredMsg:
		v.notice = ""
		return v, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "c":
			return v, v.copy()
		case "n":
			v.state.ClearOrder()
			return v, popView()
		case "q":
			return v, quit()
		case "esc":
			flow := domain.FlowFor(v.state.Selection.Product)
			return v, retreat(v.state, len(flow))
		}
	}

	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return v, cmd
}

func (v *orderView) copy() tea.Cmd {
	orders := v.state.App.Orders
	ctx := v.state.Context()
	text := v.order.Text
	return func() tea.Msg {
		method, err := orders.Copy(ctx, text)
		return copiedMsg{method: method, err: err}
	}
}

func (v *orderView) copiedFor() time.Duration {
	if d := v.state.App.CopiedFor; d > 0 {
		return d
	}
	return 2 * time.Second
}

func (v *orderView) View() string {
	content := v.vp.View()
	if v.state.Height == 0 {
		content = formatter.FormatOrder(v.order, v.state.App.MessageURL)
	}
	return "\n" + content + "\n" + v.notice
}

func (v *orderView) ID() ViewID    { return ViewOrder }
func (v *orderView) Title() string { return v.order.Product.Label() + " › 주문서" }

func (v *orderView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
		key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new order")),
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "scroll")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

// orderViewportKeyMap leaves letter keys free for the view's own actions.
func orderViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up")),
		Down:         key.NewBinding(key.WithKeys("down")),
	}
}
