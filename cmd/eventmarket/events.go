package main

import (
	"event-market/services"
	"fmt"

	"github.com/spf13/cobra"
)

func newEventsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "List and manage the events you take part in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := a.events.List(cmd.Context())
			if err != nil {
				return err
			}
			renderEvents(a.out, events)
			return nil
		},
	}

	var details services.EventDetails
	create := &cobra.Command{
		Use:   "create",
		Short: "Book an event with the organizer of the current draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			event, err := a.events.Create(cmd.Context(), details)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Event %s on %s created with %s\n", event.Type, event.Date, event.OrganizerID)
			return nil
		},
	}
	create.Flags().StringVar(&details.Status, "status", "Pendiente", "status")
	create.Flags().StringVar(&details.Date, "date", "", "date, YYYY-MM-DD")
	create.Flags().StringVar(&details.Time, "time", "", "time, HH:MM")
	create.Flags().StringVar(&details.Price, "price", "", "price")
	create.Flags().StringVar(&details.Type, "type", "", "kind of event")
	create.Flags().StringVar(&details.Location, "location", "", "venue")

	assign := &cobra.Command{
		Use:   "assign <event-id>",
		Short: "Assign the provider of the current draft to an event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.events.AssignProvider(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Provider assigned to event %s\n", args[0])
			return nil
		},
	}

	remove := &cobra.Command{
		Use:     "delete <event-id>",
		Aliases: []string{"rm"},
		Short:   "Delete an event",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.events.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Event %s deleted\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(create, assign, remove)
	return cmd
}
