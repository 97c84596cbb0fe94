package cli

import (
	"context"

	"github.com/alexanderramin/ordersheet/internal/domain"
	"github.com/alexanderramin/ordersheet/internal/service"
	"github.com/google/uuid"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Selection is the order being built. It is replaced when the user
	// picks a product from the menu and reset after "new order".
	Selection *domain.Selection

	// Session tags the log lines of one wizard run.
	Session string

	// Terminal dimensions
	Width  int
	Height int
}

// StartOrder begins a fresh selection for product p under a new session.
func (s *SharedState) StartOrder(p domain.Product) {
	s.Selection = domain.NewSelection(p)
	s.Session = uuid.New().String()
}

// ClearOrder drops the current selection, keeping nothing of it.
func (s *SharedState) ClearOrder() {
	if s.Selection != nil {
		s.Selection.Reset()
	}
	s.Session = ""
}

// Context returns a context carrying the wizard session ID.
func (s *SharedState) Context() context.Context {
	return service.ContextWithSession(context.Background(), s.Session)
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and
// status bar (2 lines: separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
