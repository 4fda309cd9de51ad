package main

import (
	"event-market/domain"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
)

func newTable(out io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(out)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func renderAccounts(out io.Writer, accounts []domain.Account) {
	table := newTable(out, "Name", "Email", "Kind", "Location", "Phone", "Services")
	for _, a := range accounts {
		table.Append([]string{a.Name, a.Email, string(a.Kind), a.Location, a.Phone, strings.Join(a.Services, ", ")})
	}
	table.Render()
}

func renderEvents(out io.Writer, events []domain.Event) {
	table := newTable(out, "ID", "Type", "Status", "Date", "Time", "Price", "Location", "Organizer", "Client", "Provider")
	for _, e := range events {
		table.Append([]string{
			e.ID, e.Type, e.Status, e.Date, e.Time, e.Price, e.Location,
			e.OrganizerID, e.ClientID, lo.Ternary(e.ProviderID == "", "-", e.ProviderID),
		})
	}
	table.Render()
}

func renderConversations(out io.Writer, conversations []domain.Conversation) {
	table := newTable(out, "#", "Counterpart", "Messages", "Last", "At")
	for i, c := range conversations {
		last, ok := c.Last()
		at := ""
		if ok {
			at = formatInstant(last.SentAt)
		}
		table.Append([]string{
			fmt.Sprint(i + 1), c.Counterpart, fmt.Sprint(len(c.Messages)), preview(last.Body), at,
		})
	}
	table.Render()
}

func formatInstant(t time.Time) string {
	if t.IsZero() {
		return "?"
	}
	return t.Local().Format(time.DateTime)
}

func preview(body string) string {
	runes := []rune(strings.ReplaceAll(body, "\n", " "))
	if len(runes) <= 40 {
		return string(runes)
	}
	return string(runes[:39]) + "…"
}

// formatMessage renders one chat line, own messages on the right colour.
func formatMessage(identity string, m domain.Message) string {
	at := formatInstant(m.SentAt)
	if m.Sender == identity {
		return color.FgCyan.Render(fmt.Sprintf("[%s] me: %s", at, m.Body))
	}
	return color.FgGreen.Render(fmt.Sprintf("[%s] %s: %s", at, m.Sender, m.Body))
}
