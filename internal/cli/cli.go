// Package cli defines the trolley command tree. Commands stay thin:
// argument parsing and output formatting only. Session, cart and
// catalog semantics live in their own packages.
package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"trolley/internal/app"
)

// New builds the root command over a wired App.
func New(a *app.App) *cobra.Command {
	root := &cobra.Command{
		Use:           "trolley",
		Short:         "Store shopping client",
		Long:          "trolley browses stores, searches products and manages the signed-in user's cart.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newLoginCmd(a),
		newRegisterCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newStoresCmd(a),
		newBrowseCmd(a),
		newSearchCmd(a),
		newScanCmd(a),
		newCartCmd(a),
	)
	return root
}

func parseID(what, raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad %s %q", what, raw)
	}
	return id, nil
}

func parseQuantity(raw string) (int, error) {
	qty, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("bad quantity %q", raw)
	}
	return qty, nil
}
