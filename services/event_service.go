package services

import (
	"context"
	"event-market/domain"
	"event-market/errors"
	"event-market/repositories"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
)

var validateEvent = validator.New(validator.WithRequiredStructEnabled())

// EventDetails is what the user types when booking an event. The parties
// come from the contract draft.
type EventDetails struct {
	Status   string `validate:"required,max=40"`
	Date     string `validate:"required,datetime=2006-01-02"`
	Time     string `validate:"required,datetime=15:04"`
	Price    string `validate:"required,numeric"`
	Type     string `validate:"required,max=80"`
	Location string `validate:"required,max=200"`
}

type IEventService interface {
	List(ctx context.Context) ([]domain.Event, error)
	Create(ctx context.Context, details EventDetails) (domain.Event, error)
	AssignProvider(ctx context.Context, eventID string) error
	Delete(ctx context.Context, eventID string) error
}

type EventService struct {
	events  repositories.IEventRepository
	session repositories.ISessionRepository
	log     *slog.Logger
}

func NewEventService(events repositories.IEventRepository, session repositories.ISessionRepository, log *slog.Logger) *EventService {
	return &EventService{events: events, session: session, log: log}
}

// List returns the events the logged in profile takes part in.
func (s *EventService) List(ctx context.Context) ([]domain.Event, error) {
	profile, err := s.session.LoadProfile()
	if err != nil {
		return nil, err
	}
	events, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}
	return lo.Filter(events, func(e domain.Event, _ int) bool {
		return e.Involves(profile.Email)
	}), nil
}

func (s *EventService) Create(ctx context.Context, details EventDetails) (domain.Event, error) {
	details = details.trimmed()
	if err := validateEvent.Struct(details); err != nil {
		return domain.Event{}, fmt.Errorf("%w: %w", errors.ErrInvalidEvent, err)
	}
	draft, err := s.session.LoadDraft()
	if err != nil {
		return domain.Event{}, err
	}

	event := domain.Event{
		Status:      details.Status,
		Date:        details.Date,
		Time:        details.Time,
		Price:       details.Price,
		Type:        details.Type,
		Location:    details.Location,
		OrganizerID: draft.OrganizerID,
		ClientID:    draft.ClientID,
	}
	if err = s.events.Create(ctx, event); err != nil {
		return domain.Event{}, fmt.Errorf("failed to create event: %w", err)
	}
	s.log.Info("Event created", "organizer", event.OrganizerID, "client", event.ClientID, "date", event.Date)
	return event, nil
}

// AssignProvider sets the provider of the draft on the event.
func (s *EventService) AssignProvider(ctx context.Context, eventID string) error {
	draft, err := s.session.LoadDraft()
	if err != nil {
		return err
	}
	if draft.ProviderID == "" {
		return errors.ErrNoProviderSelected
	}
	if err = s.events.AssignProvider(ctx, eventID, draft.ProviderID); err != nil {
		return fmt.Errorf("failed to assign provider to event %s: %w", eventID, err)
	}
	s.log.Info("Provider assigned", "event", eventID, "provider", draft.ProviderID)
	return nil
}

func (s *EventService) Delete(ctx context.Context, eventID string) error {
	if err := s.events.Delete(ctx, eventID); err != nil {
		return fmt.Errorf("failed to delete event %s: %w", eventID, err)
	}
	s.log.Info("Event deleted", "event", eventID)
	return nil
}

func (d EventDetails) trimmed() EventDetails {
	return EventDetails{
		Status:   strings.TrimSpace(d.Status),
		Date:     strings.TrimSpace(d.Date),
		Time:     strings.TrimSpace(d.Time),
		Price:    strings.TrimSpace(d.Price),
		Type:     strings.TrimSpace(d.Type),
		Location: strings.TrimSpace(d.Location),
	}
}
