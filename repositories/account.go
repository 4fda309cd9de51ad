//go:generate go run go.uber.org/mock/mockgen -source=account.go -destination=../mocks/mock_account_repository.go -package=mocks
package repositories

import (
	"context"
	"event-market/domain"
	"event-market/infrastructure/rest"
	"fmt"
	"net/http"

	"github.com/samber/lo"
)

const servicesPath = "/servicios"

type IAccountRepository interface {
	List(ctx context.Context, kind domain.AccountKind) ([]domain.Account, error)
	Create(ctx context.Context, account domain.Account) error
	AddService(ctx context.Context, email, service string) error
}

type AccountRepository struct {
	client *rest.Client
}

func NewAccountRepository(client *rest.Client) AccountRepository {
	return AccountRepository{client: client}
}

type wireAccount struct {
	Name     string   `json:"nombre"`
	Email    string   `json:"correo"`
	Password string   `json:"password"`
	Location string   `json:"ubicacion"`
	Phone    string   `json:"telefono"`
	Kind     string   `json:"tipo,omitempty"`
	Services []string `json:"servicios,omitempty"`
}

type wireService struct {
	Email   string `json:"correo"`
	Service string `json:"servicio"`
}

// Clients are read from /usuarios but created on /cliente.
func listPath(kind domain.AccountKind) (string, error) {
	switch kind {
	case domain.Client:
		return "/usuarios", nil
	case domain.Organizer:
		return "/organizador", nil
	case domain.Provider:
		return "/proveedor", nil
	}
	return "", fmt.Errorf("no directory for kind %q", kind)
}

func createPath(kind domain.AccountKind) (string, error) {
	switch kind {
	case domain.Client:
		return "/cliente", nil
	case domain.Organizer:
		return "/organizador", nil
	case domain.Provider:
		return "/proveedor", nil
	}
	return "", fmt.Errorf("no directory for kind %q", kind)
}

func (a AccountRepository) List(ctx context.Context, kind domain.AccountKind) ([]domain.Account, error) {
	path, err := listPath(kind)
	if err != nil {
		return nil, err
	}
	var wire []wireAccount
	if err = a.client.GetJSON(ctx, path, &wire); err != nil {
		return nil, err
	}
	return lo.Map(wire, func(w wireAccount, _ int) domain.Account {
		return toAccount(w, kind)
	}), nil
}

func (a AccountRepository) Create(ctx context.Context, account domain.Account) error {
	path, err := createPath(account.Kind)
	if err != nil {
		return err
	}
	return a.client.PostJSON(ctx, path, fromAccount(account), http.StatusCreated)
}

func (a AccountRepository) AddService(ctx context.Context, email, service string) error {
	return a.client.PostJSON(ctx, servicesPath, wireService{Email: email, Service: service}, http.StatusCreated)
}

func toAccount(w wireAccount, kind domain.AccountKind) domain.Account {
	return domain.Account{
		Name:     w.Name,
		Email:    w.Email,
		Password: w.Password,
		Location: w.Location,
		Phone:    w.Phone,
		Kind:     kind,
		Services: w.Services,
	}
}

func fromAccount(account domain.Account) wireAccount {
	return wireAccount{
		Name:     account.Name,
		Email:    account.Email,
		Password: account.Password,
		Location: account.Location,
		Phone:    account.Phone,
		Kind:     string(account.Kind),
	}
}
