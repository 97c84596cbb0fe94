package cli

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// cmdTimeout separates message factories, which return at once, from timer
// commands (copy-notice expiry, input cursor blink), which are dropped.
const cmdTimeout = 10 * time.Millisecond

// maxSteps bounds one drain so a command that keeps re-queuing itself fails
// the test instead of hanging it.
const maxSteps = 200

// TestDriver runs the wizard's appModel without a tea.Program: every key is
// fed through Update and the returned commands are executed in place until
// none are left.
type TestDriver struct {
	t     *testing.T
	model appModel
	quit  bool
}

// NewTestDriver builds the app model at 120x60 and drains its Init command.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()
	d := &TestDriver{t: t, model: newAppModel(app)}
	d.send(tea.WindowSizeMsg{Width: 120, Height: 60})
	d.drain(d.model.Init())
	return d
}

func (d *TestDriver) send(msg tea.Msg) {
	d.t.Helper()
	if d.quit {
		return
	}
	d.drain(d.update(msg))
}

func (d *TestDriver) update(msg tea.Msg) tea.Cmd {
	next, cmd := d.model.Update(msg)
	d.model = next.(appModel)
	return cmd
}

// drain executes commands depth first: the follow-up of a message runs
// before the rest of the batch it came from, as it would under a program.
func (d *TestDriver) drain(cmd tea.Cmd) {
	d.t.Helper()
	stack := []tea.Cmd{cmd}
	for steps := 0; len(stack) > 0; steps++ {
		if steps == maxSteps {
			d.t.Fatalf("commands still pending after %d steps", maxSteps)
		}
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if c == nil {
			continue
		}

		switch msg := runCmd(c).(type) {
		case nil:
		case tea.BatchMsg:
			for i := len(msg) - 1; i >= 0; i-- {
				stack = append(stack, msg[i])
			}
		case tea.QuitMsg:
			d.quit = true
			return
		default:
			if strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink") {
				continue
			}
			stack = append(stack, d.update(msg))
		}
	}
}

// runCmd returns nil for commands that do not finish within cmdTimeout.
func runCmd(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// Keys

func (d *TestDriver) pressType(k tea.KeyType) {
	d.t.Helper()
	d.send(tea.KeyMsg{Type: k})
}

func (d *TestDriver) PressKey(r rune) {
	d.t.Helper()
	d.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func (d *TestDriver) PressEnter() { d.t.Helper(); d.pressType(tea.KeyEnter) }
func (d *TestDriver) PressEsc()   { d.t.Helper(); d.pressType(tea.KeyEsc) }
func (d *TestDriver) PressCtrlC() { d.t.Helper(); d.pressType(tea.KeyCtrlC) }

// Type enters s one rune at a time, as into a form input.
func (d *TestDriver) Type(s string) {
	d.t.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

// StartProduct moves the menu cursor to the product at index and opens it.
func (d *TestDriver) StartProduct(index int) {
	d.t.Helper()
	for i := 0; i < index; i++ {
		d.pressType(tea.KeyDown)
	}
	d.PressEnter()
}

// Toggle presses space on the checklist row under the cursor.
func (d *TestDriver) Toggle() {
	d.t.Helper()
	d.send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
}

// Inspection

func (d *TestDriver) View() string { return d.model.View() }

// ActiveViewID is -1 when the stack is empty.
func (d *TestDriver) ActiveViewID() ViewID {
	if v := d.model.activeView(); v != nil {
		return v.ID()
	}
	return ViewID(-1)
}

func (d *TestDriver) ActiveViewTitle() string {
	if v := d.model.activeView(); v != nil {
		return v.Title()
	}
	return ""
}

func (d *TestDriver) ViewStackLen() int { return len(d.model.viewStack) }

func (d *TestDriver) State() *SharedState { return d.model.state }

// IsQuitting covers both a quitMsg handled by the model and a bare tea.Quit.
func (d *TestDriver) IsQuitting() bool { return d.model.quitting || d.quit }
