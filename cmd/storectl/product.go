package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	catalogapp "github.com/mveges/grocery/internal/application/catalog"
	"github.com/mveges/grocery/internal/bootstrap"
	"github.com/spf13/cobra"
)

func newProductCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Add, list and show products",
	}
	cmd.AddCommand(
		newProductAddCmd(flags),
		newProductListCmd(flags),
		newProductGetCmd(flags),
	)
	return cmd
}

func newProductAddCmd(flags *globalFlags) *cobra.Command {
	var req catalogapp.AddProductRequest

	cmd := &cobra.Command{
		Use:     "add",
		Short:   "Add a product to the inventory",
		Example: `  storectl product add --name Tomatoes --price 120.50 --quantity 10 --category Vegetables`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd.Context(), cmd, flags, func(app *bootstrap.App) error {
				resp, err := app.Products.Add(cmd.Context(), req)
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), flags, resp, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Added %s (ID: %s) at %s, %d in stock\n",
						resp.Name, resp.ID, resp.DisplayPrice, resp.Quantity)
					return err
				})
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&req.Name, "name", "", "product name")
	f.StringVar(&req.Price, "price", "", "unit price, greater than zero")
	f.StringVar(&req.Quantity, "quantity", "", "units in stock, zero or more")
	f.StringVar(&req.Category, "category", "", "product category")
	return cmd
}

func newProductListCmd(flags *globalFlags) *cobra.Command {
	var (
		filter catalogapp.ProductListFilter
		desc   bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List products in the order they were added",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if desc {
				filter.OrderDir = "desc"
			}
			return withApp(cmd.Context(), cmd, flags, func(app *bootstrap.App) error {
				products, total, err := app.Products.List(cmd.Context(), filter)
				if err != nil {
					return err
				}
				payload := map[string]any{"products": products, "total": total}
				return render(cmd.OutOrStdout(), flags, payload, func(w io.Writer) error {
					return productTable(w, products, total)
				})
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&filter.Search, "search", "", "match name or category")
	f.StringVar(&filter.Category, "category", "", "only this category")
	f.IntVar(&filter.Page, "page", 1, "page number")
	f.IntVar(&filter.PageSize, "page-size", 20, "products per page")
	f.BoolVar(&desc, "desc", false, "newest first")
	return cmd
}

func newProductGetCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), cmd, flags, func(app *bootstrap.App) error {
				product, err := app.Products.GetByID(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return render(cmd.OutOrStdout(), flags, product, func(w io.Writer) error {
					return productTable(w, []catalogapp.ProductResponse{*product}, 1)
				})
			})
		},
	}
}

func productTable(w io.Writer, products []catalogapp.ProductResponse, total int64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tQTY\tCATEGORY\tADDED")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\n",
			p.ID, p.Name, p.DisplayPrice, p.Quantity, p.Category, p.AddedAt.Format("2006-01-02 15:04"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d product(s)\n", total)
	return err
}
