package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"trolley/internal/app"
	"trolley/internal/cart"
)

func newCartCmd(a *app.App) *cobra.Command {
	cartCmd := &cobra.Command{
		Use:   "cart",
		Short: "Show and edit the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snapshot, err := a.Cart.Fetch(cmd.Context())
			if err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), snapshot)
			return nil
		},
	}
	cartCmd.AddCommand(
		newCartAddCmd(a),
		newCartSetCmd(a),
		newCartRemoveCmd(a),
		newCartClearCmd(a),
	)
	return cartCmd
}

func newCartAddCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "add PRODUCT_ID [QUANTITY]",
		Short: "Add a product",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			productID, err := parseID("product id", args[0])
			if err != nil {
				return err
			}
			qty := 1
			if len(args) > 1 {
				if qty, err = parseQuantity(args[1]); err != nil {
					return err
				}
			}
			snapshot, err := a.Cart.AddItem(cmd.Context(), productID, qty)
			if err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), snapshot)
			return nil
		},
	}
}

func newCartSetCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "set ITEM_ID QUANTITY",
		Short: "Change a line's quantity",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := parseID("item id", args[0])
			if err != nil {
				return err
			}
			qty, err := parseQuantity(args[1])
			if err != nil {
				return err
			}
			snapshot, err := a.Cart.SetQuantity(cmd.Context(), itemID, qty)
			if err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), snapshot)
			return nil
		},
	}
}

func newCartRemoveCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ITEM_ID",
		Short: "Remove a line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := parseID("item id", args[0])
			if err != nil {
				return err
			}
			snapshot, err := a.Cart.RemoveItem(cmd.Context(), itemID)
			if err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), snapshot)
			return nil
		},
	}
}

func newCartClearCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Empty the cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "empty the whole cart?") {
				fmt.Fprintln(cmd.OutOrStdout(), "kept")
				return nil
			}
			snapshot, err := a.Cart.Clear(cmd.Context())
			if err != nil {
				return err
			}
			printCart(cmd.OutOrStdout(), snapshot)
			return nil
		},
	}
}

func printCart(w io.Writer, c cart.Cart) {
	if len(c.Items) == 0 {
		fmt.Fprintln(w, "cart is empty")
		return
	}
	for _, item := range c.Items {
		fmt.Fprintf(w, "%4d  %-28s x%-3d %8.2f\n",
			item.ID, item.Product.Name, item.Quantity, item.Product.Price)
	}
	fmt.Fprintf(w, "total %.2f\n", c.TotalPrice)
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N] ", prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
