package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mmynk/spendwise/internal/calculator"
	"github.com/mmynk/spendwise/internal/form"
	"github.com/mmynk/spendwise/internal/models"
)

// splitOptions are the form fields settable from flags.
type splitOptions struct {
	title    string
	total    string
	mode     string
	paidBy   string
	category string
	date     string
	exclude  []string
	amounts  []string
}

func (o *splitOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.title, "title", "", "Expense title")
	cmd.Flags().StringVar(&o.total, "total", "", "Expense total")
	cmd.Flags().StringVar(&o.mode, "mode", "equal", "Split mode: equal or manual")
	cmd.Flags().StringVar(&o.paidBy, "paid-by", "", "Member ID or name who paid (default: you)")
	cmd.Flags().StringVar(&o.category, "category", models.DefaultCategory.String(), "Expense category")
	cmd.Flags().StringVar(&o.date, "date", "", "Expense date as YYYY-MM-DD (default: today)")
	cmd.Flags().StringSliceVar(&o.exclude, "exclude", nil, "Members to leave out of the split")
	cmd.Flags().StringArrayVar(&o.amounts, "amount", nil, "Manual share as member=amount (repeatable)")
}

// apply replays the options onto f in the order a user fills the form:
// mode, exclusions, manual amounts, then the total.
func (o *splitOptions) apply(f *form.ExpenseForm) error {
	mode, err := models.ParseSplitMode(o.mode)
	if err != nil {
		return err
	}
	f.SetMode(mode)

	members := f.Members()
	for _, ref := range o.exclude {
		id, err := resolveMember(members, ref)
		if err != nil {
			return err
		}
		if err := f.ToggleMember(id, false); err != nil {
			return err
		}
	}

	for _, pair := range o.amounts {
		ref, amount, ok := strings.Cut(pair, "=")
		if !ok {
			return fmt.Errorf("invalid --amount %q: want member=amount", pair)
		}
		id, err := resolveMember(members, ref)
		if err != nil {
			return err
		}
		if err := f.SetMemberAmountText(id, amount); err != nil {
			return err
		}
	}

	f.SetTotal(o.total)
	f.SetTitle(o.title)

	if o.paidBy != "" {
		id, err := resolveMember(members, o.paidBy)
		if err != nil {
			return err
		}
		f.SetPaidBy(id)
	}
	if err := f.SetCategory(o.category); err != nil {
		return err
	}
	if o.date != "" {
		d, err := time.Parse(time.DateOnly, o.date)
		if err != nil {
			return fmt.Errorf("invalid --date %q: %w", o.date, err)
		}
		f.SetDate(d)
	}
	return nil
}

// resolveMember matches ref against member IDs first, then names.
func resolveMember(members []models.Member, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	for _, m := range members {
		if m.ID == ref {
			return m.ID, nil
		}
	}
	for _, m := range members {
		if strings.EqualFold(m.Name, ref) {
			return m.ID, nil
		}
	}
	return "", fmt.Errorf("%w: %q", calculator.ErrUnknownMember, ref)
}

func newSplitCmd() *cobra.Command {
	opts := &splitOptions{}
	var names []string

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Preview how an expense splits, without contacting the backend",
		Long: `Runs the split allocator over a list of members and prints each share.
The first member is treated as you.

Example:
  spendwise split --total 100 --member Alice --member Bob --member Carol
  spendwise split --total 100 --mode manual --member Alice --member Bob --amount Alice=70`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(names) == 0 {
				return fmt.Errorf("at least one --member is required")
			}
			group := make([]models.GroupMember, len(names))
			for i, n := range names {
				group[i] = models.GroupMember{UserID: n, Name: n}
			}

			f := form.New(group, group[0].UserID)
			if opts.title == "" {
				opts.title = "Preview"
			}
			if err := opts.apply(f); err != nil {
				return err
			}

			printShares(cmd.OutOrStdout(), f.State())
			if _, err := f.Payload("preview"); err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "\nNot submittable: %v\n", err)
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "\nSplit is valid.")
			return nil
		},
	}
	opts.bind(cmd)
	cmd.Flags().StringArrayVar(&names, "member", nil, "Group member name (repeatable)")
	return cmd
}

func printShares(w io.Writer, s form.State) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "MEMBER\tINCLUDED\tSHARE\n")
	for _, m := range s.Members {
		name := m.Name
		if m.IsMe {
			name += " (you)"
		}
		fmt.Fprintf(tw, "%s\t%t\t%s\n", name, m.Included, calculator.FormatAmount(m.Amount))
	}
	fmt.Fprintf(tw, "TOTAL\t\t%s of %s\n",
		calculator.FormatAmount(calculator.AssignedTotal(s.Members)),
		calculator.FormatAmount(calculator.ParseTotal(s.Total)))
	_ = tw.Flush()
}
