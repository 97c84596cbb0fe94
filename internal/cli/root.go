package cli

import (
	"time"

	"github.com/alexanderramin/ordersheet/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Catalogs service.CatalogService
	Orders   service.OrderService

	// MessageURL is the chat room orders are sent to.
	MessageURL string
	// CopiedFor is how long the copy confirmation stays on screen.
	CopiedFor time.Duration

	// IsInteractive reports whether stdin is a terminal. Nil means no.
	IsInteractive func() bool
	// RunProgram runs the wizard model. Nil uses a full-screen tea.Program.
	RunProgram func(m tea.Model) error
}

// NewRootCmd creates the top-level "ordersheet" command and registers all
// subcommands against the provided App. Without arguments on a terminal
// the root command runs the wizard.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "ordersheet",
		Short:         "Order-form wizard for English exam materials",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && app.IsInteractive() {
				return runWizard(app)
			}
			return cmd.Help()
		},
	}

	root.AddCommand(
		newWizardCmd(app),
		newQuoteCmd(app),
		newCatalogCmd(app),
		newPolicyCmd(app),
	)

	return root
}
