//go:generate go run go.uber.org/mock/mockgen -source=event.go -destination=../mocks/mock_event_repository.go -package=mocks
package repositories

import (
	"context"
	"encoding/json"
	"event-market/domain"
	"event-market/infrastructure/rest"
	"net/url"

	"github.com/samber/lo"
)

const eventsPath = "/evento"

type IEventRepository interface {
	List(ctx context.Context) ([]domain.Event, error)
	Create(ctx context.Context, event domain.Event) error
	AssignProvider(ctx context.Context, eventID, providerID string) error
	Delete(ctx context.Context, eventID string) error
}

type EventRepository struct {
	client *rest.Client
}

func NewEventRepository(client *rest.Client) EventRepository {
	return EventRepository{client: client}
}

type wireEvent struct {
	ID          flexibleString `json:"id,omitempty"`
	Status      string         `json:"estado"`
	Date        string         `json:"fecha"`
	Time        string         `json:"hora"`
	Price       flexibleString `json:"precio"`
	Type        string         `json:"tipoEvento"`
	Location    string         `json:"ubicacion"`
	OrganizerID string         `json:"idOrganizador,omitempty"`
	ClientID    string         `json:"idUsuario,omitempty"`
	ProviderID  string         `json:"idProveedor,omitempty"`
}

type wireProviderAssignment struct {
	ProviderID string `json:"idProveedor"`
}

func (e EventRepository) List(ctx context.Context) ([]domain.Event, error) {
	var wire []wireEvent
	if err := e.client.GetJSON(ctx, eventsPath, &wire); err != nil {
		return nil, err
	}
	return lo.Map(wire, func(w wireEvent, _ int) domain.Event {
		return toEvent(w)
	}), nil
}

func (e EventRepository) Create(ctx context.Context, event domain.Event) error {
	return e.client.PostJSON(ctx, eventsPath, fromEvent(event))
}

func (e EventRepository) AssignProvider(ctx context.Context, eventID, providerID string) error {
	return e.client.PutJSON(ctx, eventPath(eventID), wireProviderAssignment{ProviderID: providerID})
}

func (e EventRepository) Delete(ctx context.Context, eventID string) error {
	return e.client.Delete(ctx, eventPath(eventID))
}

func eventPath(id string) string {
	return eventsPath + "/" + url.PathEscape(id)
}

// flexibleString accepts values the backend sends either as JSON strings or numbers.
type flexibleString string

func (f *flexibleString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = flexibleString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexibleString(n.String())
	return nil
}

func toEvent(w wireEvent) domain.Event {
	return domain.Event{
		ID:          string(w.ID),
		Status:      w.Status,
		Date:        w.Date,
		Time:        w.Time,
		Price:       string(w.Price),
		Type:        w.Type,
		Location:    w.Location,
		OrganizerID: w.OrganizerID,
		ClientID:    w.ClientID,
		ProviderID:  w.ProviderID,
	}
}

func fromEvent(event domain.Event) wireEvent {
	return wireEvent{
		ID:          flexibleString(event.ID),
		Status:      event.Status,
		Date:        event.Date,
		Time:        event.Time,
		Price:       flexibleString(event.Price),
		Type:        event.Type,
		Location:    event.Location,
		OrganizerID: event.OrganizerID,
		ClientID:    event.ClientID,
		ProviderID:  event.ProviderID,
	}
}
