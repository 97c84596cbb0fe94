package cli

import (
	"fmt"

	"github.com/alexanderramin/ordersheet/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPolicyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "policy",
		Short: "Inspect pricing policies",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List discount policies and the products they price",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPolicies(app.Orders.Policies()))
			return nil
		},
	})

	return cmd
}
