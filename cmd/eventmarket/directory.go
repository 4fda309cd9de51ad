package main

import (
	"event-market/domain"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newDirectoryCmd(a *app, use, short string, kind domain.AccountKind) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts, err := a.directory.List(cmd.Context(), kind)
			if err != nil {
				return err
			}
			renderAccounts(a.out, accounts)
			return nil
		},
	}
}

func newSearchCmd(a *app) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <kind> [terms...]",
		Short: "Search a directory by name, location or service",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := domain.ParseAccountKind(args[0])
			if err != nil {
				return err
			}
			if limit <= 0 {
				limit = a.config.SearchLimit
			}
			accounts, err := a.directory.Search(cmd.Context(), kind, strings.Join(args[1:], " "), limit)
			if err != nil {
				return err
			}
			renderAccounts(a.out, accounts)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of results")
	return cmd
}

func newContractCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "contract <organizer|provider> <email>",
		Short: "Pick the organizer or provider of the next event",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := domain.ParseAccountKind(args[0])
			if err != nil {
				return err
			}
			draft, err := a.directory.StartContract(cmd.Context(), kind, args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Draft: organizer=%s client=%s provider=%s\n",
				draft.OrganizerID, draft.ClientID, draft.ProviderID)
			return nil
		},
	}
}
