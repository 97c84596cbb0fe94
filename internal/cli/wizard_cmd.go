package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newWizardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "wizard",
		Short: "Build an order step by step",
		Long: `Start the interactive order wizard: pick a product, walk through its
steps and get an order text ready to copy into the chat room.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWizard(app)
		},
	}
}

func runWizard(app *App) error {
	m := newAppModel(app)
	if app.RunProgram != nil {
		return app.RunProgram(m)
	}
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running wizard: %w", err)
	}
	return nil
}
