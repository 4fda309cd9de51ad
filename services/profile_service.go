package services

import (
	"context"
	"event-market/domain"
	"event-market/errors"
	"event-market/repositories"
	"fmt"
	"log/slog"
	"strings"
)

type IProfileService interface {
	Me(ctx context.Context) (domain.Account, error)
	AddService(ctx context.Context, service string) ([]string, error)
}

type ProfileService struct {
	accounts repositories.IAccountRepository
	session  repositories.ISessionRepository
	log      *slog.Logger
}

func NewProfileService(accounts repositories.IAccountRepository, session repositories.ISessionRepository, log *slog.Logger) *ProfileService {
	return &ProfileService{accounts: accounts, session: session, log: log}
}

// Me returns the directory entry of the logged in profile.
func (s *ProfileService) Me(ctx context.Context) (domain.Account, error) {
	profile, err := s.session.LoadProfile()
	if err != nil {
		return domain.Account{}, err
	}
	account, found, err := findAccount(ctx, s.accounts, profile.Email)
	if err != nil {
		return domain.Account{}, err
	}
	if !found {
		return domain.Account{}, fmt.Errorf("%w: %s", errors.ErrAccountNotFound, profile.Email)
	}
	account.Password = ""
	return account, nil
}

// AddService publishes a new service of the logged in provider and returns
// the list it now expects, without re-reading the directory.
func (s *ProfileService) AddService(ctx context.Context, service string) ([]string, error) {
	service = strings.TrimSpace(service)
	if service == "" {
		return nil, errors.ErrEmptyService
	}
	account, err := s.Me(ctx)
	if err != nil {
		return nil, err
	}
	if account.Kind != domain.Provider {
		return nil, fmt.Errorf("%w: only providers offer services", errors.ErrUnsupportedKind)
	}
	if err = s.accounts.AddService(ctx, account.Email, service); err != nil {
		return nil, fmt.Errorf("failed to add service: %w", err)
	}
	s.log.Info("Service added", "provider", account.Email, "service", service)
	return append(account.Services, service), nil
}
