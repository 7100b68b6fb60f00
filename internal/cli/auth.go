package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"trolley/internal/app"
)

func newLoginCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "login EMAIL PASSWORD",
		Short: "Sign in and remember the session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Session.Login(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			ident, _ := a.Session.CurrentIdentity()
			fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s <%s>\n", ident.FullName, ident.Email)
			return nil
		},
	}
}

func newRegisterCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "register EMAIL PASSWORD FULL_NAME",
		Short: "Create an account and sign in",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.Session.Register(cmd.Context(), args[0], args[1], args[2]); err != nil {
				return err
			}
			ident, _ := a.Session.CurrentIdentity()
			fmt.Fprintf(cmd.OutOrStdout(), "account created, signed in as %s <%s>\n", ident.FullName, ident.Email)
			return nil
		},
	}
}

func newLogoutCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a.Session.Logout()
			a.Cart.Reset()
			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return nil
		},
	}
}

func newWhoamiCmd(a *app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			ident, ok := a.Session.CurrentIdentity()
			if !ok {
				fmt.Fprintln(out, "not signed in")
				return nil
			}
			fmt.Fprintf(out, "%s <%s> (id %d)\n", ident.FullName, ident.Email, ident.ID)
			if claims, ok := a.Session.Claims(); ok && !claims.ExpiresAt.IsZero() {
				fmt.Fprintf(out, "session expires %s\n", claims.ExpiresAt.Local())
			}
			return nil
		},
	}
}
