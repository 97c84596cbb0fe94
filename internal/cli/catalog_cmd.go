package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/ordersheet/internal/cli/formatter"
	"github.com/alexanderramin/ordersheet/internal/repository"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect and extend the textbook and mock-exam catalog",
	}

	cmd.AddCommand(
		newCatalogListCmd(app),
		newCatalogShowCmd(app),
		newCatalogExamsCmd(app),
		newCatalogImportCmd(app),
	)

	return cmd
}

func newCatalogListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List textbooks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			books, err := app.Catalogs.ListTextbooks(context.Background())
			if err != nil {
				return err
			}

			if len(books) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No textbooks found.")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTextbookList(books))
			return nil
		},
	}
}

func newCatalogShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Show a textbook's lessons and passages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := app.Catalogs.ShowTextbook(context.Background(), args[0])
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("textbook not found: %q", args[0])
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTextbookDetail(d))
			return nil
		},
	}
}

func newCatalogExamsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "exams [GRADE]",
		Short: "List mock exams, optionally for one grade",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			grade := ""
			if len(args) == 1 {
				grade = args[0]
			}

			exams, err := app.Catalogs.ListMockExams(context.Background(), grade)
			if err != nil {
				return err
			}

			if len(exams) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No mock exams found.")
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatMockExams(exams))
			return nil
		},
	}
}

func newCatalogImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Merge textbooks from a JSON file into the catalog directory",
		Long: `Merge the textbooks of FILE into textbooks.json of the catalog directory.
Textbooks already present are replaced, new ones are appended, and the
catalog is reloaded.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Catalogs.Import(context.Background(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatImportResult(res))
			return nil
		},
	}
}
