package domain

// Event is a booking between a client, an organizer and optionally a provider.
type Event struct {
	ID          string
	Status      string
	Date        string
	Time        string
	Price       string
	Type        string
	Location    string
	OrganizerID string
	ClientID    string
	ProviderID  string
}

// Involves reports whether identity takes part in the event in any role.
func (e Event) Involves(identity string) bool {
	return e.OrganizerID == identity || e.ProviderID == identity || e.ClientID == identity
}
