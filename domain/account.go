package domain

import (
	"fmt"
	"strings"
)

// AccountKind is the role a user registered with.
type AccountKind string

const (
	Client    AccountKind = "Cliente"
	Organizer AccountKind = "Organizador"
	Provider  AccountKind = "Proveedor"
)

// AccountKinds lists the kinds in login probing order.
var AccountKinds = []AccountKind{Client, Organizer, Provider}

// ParseAccountKind accepts the backend name or the english one, in any case.
func ParseAccountKind(s string) (AccountKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cliente", "client", "usuario", "usuarios":
		return Client, nil
	case "organizador", "organizer":
		return Organizer, nil
	case "proveedor", "provider":
		return Provider, nil
	}
	return "", fmt.Errorf("unknown account kind %q", s)
}

// Account is a directory entry of any kind.
type Account struct {
	Name     string
	Email    string
	Password string
	Location string
	Phone    string
	Kind     AccountKind
	Services []string // providers only
}

// Profile is what the session keeps about the logged in user.
// Email is the local identity used everywhere else.
type Profile struct {
	Name  string
	Email string
}

// ContractDraft carries the parties chosen while browsing the directories
// until an event is created or a provider is assigned.
type ContractDraft struct {
	OrganizerID string
	ClientID    string
	ProviderID  string
}
