package services

import (
	"context"
	"event-market/auth"
	"event-market/domain"
	"event-market/errors"
	"event-market/repositories"
	"fmt"
	"log/slog"
	"strings"

	"github.com/samber/lo"
)

type IAuthService interface {
	Login(ctx context.Context, email, password string) (domain.Profile, domain.AccountKind, error)
	Register(ctx context.Context, req auth.RegisterRequest) (domain.Profile, error)
	Logout() error
	CurrentProfile() (domain.Profile, error)
}

// AuthService checks credentials against the three directories and keeps
// the logged in profile in the session store.
type AuthService struct {
	accounts repositories.IAccountRepository
	session  repositories.ISessionRepository
	log      *slog.Logger
}

func NewAuthService(accounts repositories.IAccountRepository, session repositories.ISessionRepository, log *slog.Logger) *AuthService {
	return &AuthService{accounts: accounts, session: session, log: log}
}

// Login probes clients, organizers then providers. The first account whose
// e-mail and password match wins.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Profile, domain.AccountKind, error) {
	email = strings.TrimSpace(email)
	if err := auth.ValidateCredentials(auth.Credentials{Email: email, Password: password}); err != nil {
		return domain.Profile{}, "", fmt.Errorf("%w: %w", errors.ErrInvalidCredentials, err)
	}

	for _, kind := range domain.AccountKinds {
		accounts, err := s.accounts.List(ctx, kind)
		if err != nil {
			return domain.Profile{}, "", fmt.Errorf("failed to list %s accounts: %w", kind, err)
		}
		account, ok := lo.Find(accounts, func(a domain.Account) bool {
			return sameEmail(a.Email, email) && a.Password == password
		})
		if !ok {
			continue
		}
		profile := domain.Profile{Name: account.Name, Email: account.Email}
		if err = s.session.SaveProfile(profile); err != nil {
			return domain.Profile{}, "", err
		}
		s.log.Info("Logged in", "email", profile.Email, "kind", kind)
		return profile, kind, nil
	}

	s.log.Debug("Login rejected", "email", email)
	return domain.Profile{}, "", errors.ErrInvalidCredentials
}

func (s *AuthService) Register(ctx context.Context, req auth.RegisterRequest) (domain.Profile, error) {
	req = req.Normalize()
	if err := auth.ValidateRegister(req); err != nil {
		return domain.Profile{}, fmt.Errorf("%w: %w", errors.ErrInvalidAccount, err)
	}

	_, found, err := findAccount(ctx, s.accounts, req.Email)
	if err != nil {
		return domain.Profile{}, err
	}
	if found {
		return domain.Profile{}, errors.ErrEmailAlreadyRegistered
	}

	account := domain.Account{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Location: req.Location,
		Phone:    req.Phone,
		Kind:     req.Kind,
	}
	if err = s.accounts.Create(ctx, account); err != nil {
		return domain.Profile{}, fmt.Errorf("failed to register %s: %w", req.Kind, err)
	}

	profile := domain.Profile{Name: account.Name, Email: account.Email}
	if err = s.session.SaveProfile(profile); err != nil {
		return domain.Profile{}, err
	}
	s.log.Info("Account registered", "email", profile.Email, "kind", req.Kind)
	return profile, nil
}

func (s *AuthService) Logout() error {
	return s.session.Clear()
}

func (s *AuthService) CurrentProfile() (domain.Profile, error) {
	return s.session.LoadProfile()
}

// findAccount looks email up in every directory, in login probing order.
func findAccount(ctx context.Context, accounts repositories.IAccountRepository, email string) (domain.Account, bool, error) {
	for _, kind := range domain.AccountKinds {
		list, err := accounts.List(ctx, kind)
		if err != nil {
			return domain.Account{}, false, fmt.Errorf("failed to list %s accounts: %w", kind, err)
		}
		if account, ok := lo.Find(list, func(a domain.Account) bool { return sameEmail(a.Email, email) }); ok {
			return account, true, nil
		}
	}
	return domain.Account{}, false, nil
}

func sameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
