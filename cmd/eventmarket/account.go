package main

import (
	"bufio"
	"event-market/auth"
	"event-market/domain"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newLoginCmd(a *app) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Log in with an existing account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				var err error
				if password, err = a.readPassword("Password: "); err != nil {
					return err
				}
			}
			profile, kind, err := a.auth.Login(cmd.Context(), args[0], password)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Welcome %s (%s)\n", profile.Name, kind)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "password, prompted when omitted")
	return cmd
}

func newRegisterCmd(a *app) *cobra.Command {
	var r auth.RegisterRequest
	var kind string
	cmd := &cobra.Command{
		Use:   "register <email>",
		Short: "Create a client, organizer or provider account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := domain.ParseAccountKind(kind)
			if err != nil {
				return err
			}
			r.Kind = parsed
			r.Email = args[0]
			if r.Password == "" {
				if r.Password, err = a.readPassword("Password: "); err != nil {
					return err
				}
			}
			profile, err := a.auth.Register(cmd.Context(), r)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Registered %s as %s\n", profile.Email, parsed)
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", string(domain.Client), "cliente, organizador or proveedor")
	cmd.Flags().StringVar(&r.Name, "name", "", "display name")
	cmd.Flags().StringVarP(&r.Password, "password", "p", "", "password, prompted when omitted")
	cmd.Flags().StringVar(&r.Location, "location", "", "city or address")
	cmd.Flags().StringVar(&r.Phone, "phone", "", "phone number")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored profile and contract draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.auth.Logout()
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			me, err := a.profile.Me(cmd.Context())
			if err != nil {
				return err
			}
			renderAccounts(a.out, []domain.Account{me})
			draft, err := a.session.LoadDraft()
			if err != nil {
				return err
			}
			if draft != (domain.ContractDraft{}) {
				fmt.Fprintf(a.out, "Draft: organizer=%s client=%s provider=%s\n",
					draft.OrganizerID, draft.ClientID, draft.ProviderID)
			}
			return nil
		},
	}
}

func newServicesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "services",
		Short: "Manage the services offered by the logged in provider",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add <service>",
		Short: "Offer a new service",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			services, err := a.profile.AddService(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Services: %s\n", strings.Join(services, ", "))
			return nil
		},
	})
	return cmd
}

// readPassword hides the input on a terminal and reads a plain line
// otherwise.
func (a *app) readPassword(prompt string) (string, error) {
	if f, ok := a.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(a.out, prompt)
		password, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(a.out)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(password), nil
	}
	line, err := bufio.NewReader(a.in).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
