package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mveges/grocery/internal/bootstrap"
	"github.com/spf13/cobra"
)

func newStoreCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "store",
		Short: "Show the store overview",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "info",
		Short: "Show settings, counters and membership discounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), cmd, flags, func(app *bootstrap.App) error {
				info, err := app.Store.Info(cmd.Context())
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), flags, info, func(w io.Writer) error {
					s := info.Settings
					fmt.Fprintf(w, "%s, %s (%s)\nCurrency: %s\nCustomers: %d\nProducts: %d\n\n",
						s.Name, s.Location, s.Status, s.Currency, info.Stats.TotalCustomers, info.Stats.TotalProducts)

					tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
					fmt.Fprintln(tw, "MEMBERSHIP\tDISCOUNT")
					for _, d := range info.Discounts {
						fmt.Fprintf(tw, "%s\t%d%%\n", d.Label, d.Percent)
					}
					return tw.Flush()
				})
			})
		},
	})
	return cmd
}
