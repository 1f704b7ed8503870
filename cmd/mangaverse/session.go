package cmd

import (
	"fmt"

	"github.com/kerbaras/mangaverse/pkg/data"
	"github.com/spf13/cobra"
)

var (
	loginName  string
	loginEmail string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with a local profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, controller, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer controller.Close()

		profile := data.Profile{Name: loginName, Email: loginEmail}
		if err := controller.Session().Login(cmd.Context(), profile); err != nil {
			return err
		}
		p := controller.Session().Profile()
		fmt.Printf("Logged in as %s <%s>\n", p.Name, p.Email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, controller, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer controller.Close()

		if !controller.Session().LoggedIn() {
			fmt.Println("Not logged in")
			return nil
		}
		if err := controller.Session().Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Logged out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged in profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, controller, err := setup(cmd.Context())
		if err != nil {
			return err
		}
		defer controller.Close()

		p := controller.Session().Profile()
		if p == nil {
			fmt.Println("Not logged in")
			return nil
		}
		fmt.Printf("%s <%s>\n", p.Name, p.Email)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVarP(&loginName, "name", "n", "", "display name")
	loginCmd.Flags().StringVarP(&loginEmail, "email", "e", "", "email address")
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd)
}
