package commands

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/meltforce/liftlog/internal/api"
)

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Log in and store the access token",
	Args:  cobra.MaximumNArgs(1),
	RunE: runApp(func(a *app, cmd *cobra.Command, args []string) error {
		email, password, err := promptCredentials(args)
		if err != nil {
			return err
		}

		tok, err := a.client.Login(cmd.Context(), email, password)
		if err != nil {
			return fmt.Errorf("login failed: %s", api.Detail(err, "server error"))
		}

		if err := a.tokens.Save(tok.AccessToken); err != nil {
			return fmt.Errorf("saving token: %w", err)
		}

		fmt.Printf("✓ Logged in as %s\n", email)
		return nil
	}),
}

var registerCmd = &cobra.Command{
	Use:   "register [email]",
	Short: "Create an account and log in",
	Args:  cobra.MaximumNArgs(1),
	RunE: runApp(func(a *app, cmd *cobra.Command, args []string) error {
		email, password, err := promptCredentials(args)
		if err != nil {
			return err
		}

		tok, err := a.client.Register(cmd.Context(), email, password)
		if err != nil {
			return fmt.Errorf("registration failed: %s", api.Detail(err, "server error"))
		}

		if err := a.tokens.Save(tok.AccessToken); err != nil {
			return fmt.Errorf("saving token: %w", err)
		}

		fmt.Printf("✓ Account created for %s\n", email)
		return nil
	}),
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in account",
	Args:  cobra.NoArgs,
	RunE: runAuthed(func(a *app, cmd *cobra.Command, args []string) error {
		user, err := a.client.Me(cmd.Context())
		if err != nil {
			return fmt.Errorf("fetching account: %s", api.Detail(err, "server error"))
		}
		fmt.Printf("%s (account #%d, since %s)\n", user.Email, user.ID, user.CreatedAt.Format("Jan 2006"))
		return nil
	}),
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored access token",
	Args:  cobra.NoArgs,
	RunE: runApp(func(a *app, cmd *cobra.Command, args []string) error {
		if err := a.tokens.Clear(); err != nil {
			return err
		}
		fmt.Println("✓ Logged out")
		return nil
	}),
}

// promptCredentials takes the email from args or stdin, and always reads
// the password without echo.
func promptCredentials(args []string) (email, password string, err error) {
	reader := bufio.NewReader(os.Stdin)

	if len(args) > 0 {
		email = args[0]
	} else {
		fmt.Print("Email: ")
		line, err := reader.ReadString('\n')
		if err != nil {
			return "", "", err
		}
		email = strings.TrimSpace(line)
	}
	if email == "" {
		return "", "", fmt.Errorf("email is required")
	}

	fmt.Print("Password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", "", err
	}
	password = string(raw)
	if password == "" {
		return "", "", fmt.Errorf("password is required")
	}

	return email, password, nil
}
