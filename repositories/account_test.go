package repositories

import (
	"context"
	"event-market/domain"
	"event-market/errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAccountRepository_List(t *testing.T) {
	tests := []struct {
		kind domain.AccountKind
		path string
	}{
		{kind: domain.Client, path: "/usuarios"},
		{kind: domain.Organizer, path: "/organizador"},
		{kind: domain.Provider, path: "/proveedor"},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			req := require.New(t)
			backend, client := newFakeBackend(t)
			backend.on(http.MethodGet, tt.path, http.StatusOK, `[
				{"nombre":"Ana","correo":"ana@mail.com","password":"pw","ubicacion":"Lima","telefono":"123","servicios":["catering"]}
			]`)
			repository := NewAccountRepository(client)

			accounts, err := repository.List(context.Background(), tt.kind)

			req.NoError(err)
			req.Equal([]domain.Account{{
				Name:     "Ana",
				Email:    "ana@mail.com",
				Password: "pw",
				Location: "Lima",
				Phone:    "123",
				Kind:     tt.kind,
				Services: []string{"catering"},
			}}, accounts)
		})
	}
}

func TestAccountRepository_List_UnknownKind(t *testing.T) {
	req := require.New(t)
	_, client := newFakeBackend(t)
	_, err := NewAccountRepository(client).List(context.Background(), domain.AccountKind("admin"))
	req.Error(err)
}

func TestAccountRepository_Create_ClientGoesToCliente(t *testing.T) {
	req := require.New(t)
	backend, client := newFakeBackend(t)
	backend.on(http.MethodPost, "/cliente", http.StatusCreated, "")
	repository := NewAccountRepository(client)

	err := repository.Create(context.Background(), domain.Account{
		Name: "Ana", Email: "ana@mail.com", Password: "pw", Kind: domain.Client,
	})

	req.NoError(err)
	calls := backend.recorded()
	req.Len(calls, 1)
	req.Equal("/cliente", calls[0].Path)
	req.Equal("Cliente", calls[0].Body["tipo"])
	req.Equal("ana@mail.com", calls[0].Body["correo"])
}

func TestAccountRepository_Create_Rejected(t *testing.T) {
	req := require.New(t)
	backend, client := newFakeBackend(t)
	backend.on(http.MethodPost, "/proveedor", http.StatusOK, "")

	err := NewAccountRepository(client).Create(context.Background(), domain.Account{Kind: domain.Provider})

	req.ErrorIs(err, errors.ErrUnexpectedStatus)
}

func TestAccountRepository_AddService(t *testing.T) {
	req := require.New(t)
	backend, client := newFakeBackend(t)
	backend.on(http.MethodPost, "/servicios", http.StatusCreated, "")

	err := NewAccountRepository(client).AddService(context.Background(), "p@mail.com", "sonido")

	req.NoError(err)
	req.Equal(map[string]any{"correo": "p@mail.com", "servicio": "sonido"}, backend.recorded()[0].Body)
}
