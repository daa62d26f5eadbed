package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	partnerapp "github.com/mveges/grocery/internal/application/partner"
	"github.com/mveges/grocery/internal/bootstrap"
	"github.com/spf13/cobra"
)

func newCustomerCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customer",
		Short: "Register, list and show customers",
	}
	cmd.AddCommand(
		newCustomerRegisterCmd(flags),
		newCustomerListCmd(flags),
		newCustomerGetCmd(flags),
	)
	return cmd
}

func newCustomerRegisterCmd(flags *globalFlags) *cobra.Command {
	var req partnerapp.RegisterCustomerRequest

	cmd := &cobra.Command{
		Use:     "register",
		Short:   "Register a new customer",
		Example: `  storectl customer register --name "Amina Njeri" --email amina@example.com --age 28 --membership premium`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), cmd, flags, func(app *bootstrap.App) error {
				resp, err := app.Customers.Register(cmd.Context(), req)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), flags, resp, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "%s\nRegistered %s (ID: %s)\nMembership: %s (%d%% discount)\nAge bracket: %s\n",
						resp.WelcomeMessage, resp.Name, resp.ID, resp.MembershipLabel, resp.DiscountPercent, resp.AgeBracket)
					return err
				})
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.Name, "name", "", "customer name (at least 2 characters)")
	f.StringVar(&req.Email, "email", "", "email address")
	f.StringVar(&req.Age, "age", "", "age in years (1-120)")
	f.StringVar(&req.Membership, "membership", "", "membership tier: basic, premium or gold")
	return cmd
}

func newCustomerListCmd(flags *globalFlags) *cobra.Command {
	var (
		filter partnerapp.CustomerListFilter
		desc   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List customers in registration order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if desc {
				filter.OrderDir = "desc"
			}
			return withApp(cmd.Context(), cmd, flags, func(app *bootstrap.App) error {
				customers, total, err := app.Customers.List(cmd.Context(), filter)
				if err != nil {
					return err
				}
				payload := map[string]any{"customers": customers, "total": total}
				return render(cmd.OutOrStdout(), flags, payload, func(w io.Writer) error {
					return customerTable(w, customers, total)
				})
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&filter.Search, "search", "", "match name or email")
	f.StringVar(&filter.Membership, "membership", "", "only this membership tier")
	f.IntVar(&filter.Page, "page", 1, "page number")
	f.IntVar(&filter.PageSize, "page-size", 20, "customers per page")
	f.BoolVar(&desc, "desc", false, "newest first")
	return cmd
}

func newCustomerGetCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), cmd, flags, func(app *bootstrap.App) error {
				customer, err := app.Customers.GetByID(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), flags, customer, func(w io.Writer) error {
					return customerTable(w, []partnerapp.CustomerResponse{*customer}, 1)
				})
			})
		},
	}
}

func customerTable(w io.Writer, customers []partnerapp.CustomerResponse, total int64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL\tAGE\tMEMBERSHIP\tREGISTERED")
	for _, c := range customers {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			c.ID, c.Name, c.Email, c.Age, c.Membership, c.RegisteredAt.Format("2006-01-02 15:04"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d customer(s)\n", total)
	return err
}
