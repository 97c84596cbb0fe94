package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/ordersheet/internal/catalog"
	"github.com/alexanderramin/ordersheet/internal/domain"
	"github.com/alexanderramin/ordersheet/internal/order"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// selectionFlags mirrors the wizard steps as command-line flags.
type selectionFlags struct {
	product  string
	textbook string
	lessons  []string
	passages []string
	types    []string
	perType  int
	grade    string
	exams    []string
	sections []string
	numbers  []string
	packages []string
	material []string
	round    int
	email    string
	year     string
	month    string
	mockExam string
}

func (f *selectionFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.product, "product", "", "Product: "+productList())
	fs.StringVar(&f.textbook, "textbook", "", "Textbook name")
	fs.StringSliceVar(&f.lessons, "lesson", nil, "Lesson names (workbook), or every passage of a lesson (variant)")
	fs.StringArrayVar(&f.passages, "passage", nil, `Passage ID such as "1강 3번" (repeatable)`)
	fs.StringSliceVar(&f.types, "type", nil, "Question types")
	fs.IntVar(&f.perType, "per-type", domain.DefaultQuantityPerType, "Questions per type or section (1-3)")
	fs.StringVar(&f.grade, "grade", "", `Mock-exam grade such as "고1"`)
	fs.StringSliceVar(&f.exams, "exam", nil, "Mock exams")
	fs.StringSliceVar(&f.sections, "section", nil, "Mock-exam sections")
	fs.StringSliceVar(&f.numbers, "number", nil, `Question numbers such as "18" or "41-42"`)
	fs.StringSliceVar(&f.packages, "package", nil, "Workbook packages")
	fs.StringSliceVar(&f.material, "material", nil, "Production materials, in binding order")
	fs.IntVar(&f.round, "round", domain.DefaultRound, "Variant round (1-3)")
	fs.StringVar(&f.email, "email", "", "Contact email")
	fs.StringVar(&f.year, "year", "", "Mock-exam year")
	fs.StringVar(&f.month, "month", "", `Mock-exam month such as "03월"`)
	fs.StringVar(&f.mockExam, "mock-exam", "", "Mock exam a workbook is built from")
}

// selection builds the order selection the flags describe. Entries may be
// given by ID or by display name.
func (f *selectionFlags) selection(cat *catalog.Catalog) (*domain.Selection, error) {
	p := domain.Product(f.product)
	if !domain.ValidProducts[f.product] {
		return nil, fmt.Errorf("unknown product %q (want one of %s)", f.product, productList())
	}

	sel := domain.NewSelection(p)
	sel.SetTextbook(f.textbook)
	if f.grade != "" {
		sel.Grade = domain.GradeKey(f.grade)
	}
	sel.Year = f.year
	sel.Month = f.month
	sel.MockExam = f.mockExam
	sel.SetQuantity(f.perType)
	sel.SetRound(f.round)
	sel.SetEmail(f.email)

	passages := f.passages
	if p == domain.ProductTextbookVariant {
		for _, l := range f.lessons {
			passages = append(passages, cat.Passages(f.textbook, l)...)
		}
	} else {
		sel.SetChosen(domain.CategoryLesson, f.lessons)
	}
	sel.SetChosen(domain.CategoryPassage, passages)
	sel.SetChosen(domain.CategoryExam, f.exams)
	sel.SetChosen(domain.CategoryQuestionType, entryIDs(cat, domain.CategoryQuestionType, p, f.types))
	sel.SetChosen(domain.CategorySection, entryIDs(cat, domain.CategorySection, p, f.sections))
	sel.SetChosen(domain.CategoryNumber, entryIDs(cat, domain.CategoryNumber, p, f.numbers))
	sel.SetChosen(domain.CategoryPackage, entryIDs(cat, domain.CategoryPackage, p, f.packages))
	sel.SetChosen(domain.CategoryMaterial, entryIDs(cat, domain.CategoryMaterial, p, f.material))
	return sel, nil
}

// entryIDs maps display names to entry IDs, leaving unknown values as given
// so validation can report them.
func entryIDs(cat *catalog.Catalog, c domain.Category, p domain.Product, values []string) []string {
	entries := cat.Entries(c, p)
	out := make([]string, 0, len(values))
	for _, v := range values {
		id := v
		for _, e := range entries {
			if e.ID == v || e.Name == v {
				id = e.ID
				break
			}
		}
		out = append(out, id)
	}
	return out
}

func productList() string {
	names := make([]string, len(domain.Products))
	for i, p := range domain.Products {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

func newQuoteCmd(app *App) *cobra.Command {
	var flags selectionFlags
	var copyText bool

	cmd := &cobra.Command{
		Use:   "quote",
		Short: "Generate an order without the wizard",
		Example: `  ordersheet quote --product textbook_variant --textbook "2025 수능특강 영어" \
    --passage "1강 1번" --passage "1강 2번" --type 주제 --type 제목 --email me@example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			sel, err := flags.selection(app.Catalogs.Catalog())
			if err != nil {
				return err
			}

			o, err := app.Orders.Generate(ctx, sel)
			if err != nil {
				var verr *order.ValidationError
				if errors.As(err, &verr) {
					return fmt.Errorf("order is incomplete:\n  %s", strings.Join(verr.Messages, "\n  "))
				}
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), o.Text)

			if copyText {
				method, err := app.Orders.Copy(ctx, o.Text)
				if err != nil {
					return fmt.Errorf("copying order: %w", err)
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Copied to clipboard (%s).\n", method)
			}
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().BoolVar(&copyText, "copy", false, "Also copy the order text to the clipboard")
	_ = cmd.MarkFlagRequired("product")

	return cmd
}
