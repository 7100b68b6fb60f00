package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"trolley/internal/app"
)

func newStoresCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "stores",
		Short: "List stores",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			stores, err := a.Catalog.Stores(cmd.Context())
			if err != nil {
				return err
			}
			for _, s := range stores {
				fmt.Fprintf(cmd.OutOrStdout(), "%4d  %-24s %s\n", s.ID, s.Name, s.Location)
			}
			return nil
		},
	}
}

func newBrowseCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "browse STORE_ID",
		Short: "Show a store and its products",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("store id", args[0])
			if err != nil {
				return err
			}
			view, err := a.Catalog.Storefront(cmd.Context(), id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (%s)\n", view.Store.Name, view.Store.Location)
			for _, p := range view.Products {
				fmt.Fprintf(out, "%4d  %-28s %8.2f  #%s\n", p.ID, p.Name, p.Price, p.Barcode)
			}
			return nil
		},
	}
}

func newSearchCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "search QUERY [STORE_ID]",
		Short: "Search products by name",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var storeID int64
			if len(args) > 1 {
				id, err := parseID("store id", args[1])
				if err != nil {
					return err
				}
				storeID = id
			}
			products, err := a.Catalog.Search(cmd.Context(), args[0], storeID)
			if err != nil {
				return err
			}
			for _, p := range products {
				fmt.Fprintf(cmd.OutOrStdout(), "%4d  %-28s %8.2f\n", p.ID, p.Name, p.Price)
			}
			return nil
		},
	}
}

func newScanCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "scan BARCODE",
		Short: "Look up a product by barcode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.Catalog.ProductByBarcode(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d  %s  %.2f\n", p.ID, p.Name, p.Price)
			return nil
		},
	}
}
