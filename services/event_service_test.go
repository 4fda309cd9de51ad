package services

import (
	"context"
	goerrors "errors"
	"event-market/domain"
	"event-market/errors"
	"event-market/mocks"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newEvents(t *testing.T) (*EventService, *mocks.MockIEventRepository, *mocks.MockISessionRepository) {
	ctrl := gomock.NewController(t)
	events := mocks.NewMockIEventRepository(ctrl)
	session := mocks.NewMockISessionRepository(ctrl)
	return NewEventService(events, session, slog.Default()), events, session
}

func validDetails() EventDetails {
	return EventDetails{
		Status:   "Pendiente",
		Date:     "2024-12-24",
		Time:     "20:30",
		Price:    "1500",
		Type:     "Boda",
		Location: " Lima ",
	}
}

func TestEventService_List_OnlyInvolvingMe(t *testing.T) {
	req := require.New(t)
	service, events, session := newEvents(t)

	session.EXPECT().LoadProfile().Return(domain.Profile{Email: alice}, nil)
	events.EXPECT().List(gomock.Any()).Return([]domain.Event{
		{ID: "1", OrganizerID: alice},
		{ID: "2", OrganizerID: bob, ClientID: carol},
		{ID: "3", OrganizerID: bob, ProviderID: alice},
	}, nil)

	list, err := service.List(context.Background())

	req.NoError(err)
	req.Len(list, 2)
	req.Equal("1", list[0].ID)
	req.Equal("3", list[1].ID)
}

func TestEventService_Create_UsesDraftParties(t *testing.T) {
	req := require.New(t)
	service, events, session := newEvents(t)

	session.EXPECT().LoadDraft().Return(domain.ContractDraft{OrganizerID: bob, ClientID: alice, ProviderID: carol}, nil)
	events.EXPECT().Create(gomock.Any(), domain.Event{
		Status:      "Pendiente",
		Date:        "2024-12-24",
		Time:        "20:30",
		Price:       "1500",
		Type:        "Boda",
		Location:    "Lima",
		OrganizerID: bob,
		ClientID:    alice,
	}).Return(nil)

	event, err := service.Create(context.Background(), validDetails())

	req.NoError(err)
	req.Empty(event.ProviderID)
}

func TestEventService_Create_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*EventDetails)
	}{
		{name: "missing status", mutate: func(d *EventDetails) { d.Status = " " }},
		{name: "bad date", mutate: func(d *EventDetails) { d.Date = "24/12/2024" }},
		{name: "bad time", mutate: func(d *EventDetails) { d.Time = "8pm" }},
		{name: "price not numeric", mutate: func(d *EventDetails) { d.Price = "mil" }},
		{name: "missing location", mutate: func(d *EventDetails) { d.Location = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, events, session := newEvents(t)
			session.EXPECT().LoadDraft().Times(0)
			events.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

			details := validDetails()
			tt.mutate(&details)
			_, err := service.Create(context.Background(), details)

			require.ErrorIs(t, err, errors.ErrInvalidEvent)
		})
	}
}

func TestEventService_AssignProvider(t *testing.T) {
	req := require.New(t)
	service, events, session := newEvents(t)

	session.EXPECT().LoadDraft().Return(domain.ContractDraft{ProviderID: carol}, nil)
	events.EXPECT().AssignProvider(gomock.Any(), "7", carol).Return(nil)

	req.NoError(service.AssignProvider(context.Background(), "7"))
}

func TestEventService_AssignProvider_NoneSelected(t *testing.T) {
	req := require.New(t)
	service, events, session := newEvents(t)

	session.EXPECT().LoadDraft().Return(domain.ContractDraft{OrganizerID: bob}, nil)
	events.EXPECT().AssignProvider(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	req.ErrorIs(service.AssignProvider(context.Background(), "7"), errors.ErrNoProviderSelected)
}

func TestEventService_Delete(t *testing.T) {
	req := require.New(t)
	service, events, _ := newEvents(t)
	gone := goerrors.New("404")

	events.EXPECT().Delete(gomock.Any(), "7").Return(nil)
	events.EXPECT().Delete(gomock.Any(), "8").Return(gone)

	req.NoError(service.Delete(context.Background(), "7"))
	req.ErrorIs(service.Delete(context.Background(), "8"), gone)
}
