package services

import (
	"context"
	"event-market/domain"
	"event-market/errors"
	"event-market/infrastructure/search"
	"event-market/repositories"
	"fmt"
	"log/slog"

	"github.com/samber/lo"
)

type IDirectoryService interface {
	List(ctx context.Context, kind domain.AccountKind) ([]domain.Account, error)
	Search(ctx context.Context, kind domain.AccountKind, terms string, limit int) ([]domain.Account, error)
	StartContract(ctx context.Context, kind domain.AccountKind, counterpart string) (domain.ContractDraft, error)
	MessageTarget(ctx context.Context, kind domain.AccountKind, email string) (string, error)
}

// DirectoryService browses organizers and providers and records the
// parties of the contract being drafted.
type DirectoryService struct {
	accounts repositories.IAccountRepository
	session  repositories.ISessionRepository
	index    *search.DirectoryIndex
	log      *slog.Logger
}

func NewDirectoryService(
	accounts repositories.IAccountRepository,
	session repositories.ISessionRepository,
	index *search.DirectoryIndex,
	log *slog.Logger,
) *DirectoryService {
	return &DirectoryService{accounts: accounts, session: session, index: index, log: log}
}

// List never exposes passwords.
func (s *DirectoryService) List(ctx context.Context, kind domain.AccountKind) ([]domain.Account, error) {
	accounts, err := s.accounts.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	return lo.Map(accounts, func(a domain.Account, _ int) domain.Account {
		a.Password = ""
		return a
	}), nil
}

// Search refreshes the index from the current directory then ranks it.
func (s *DirectoryService) Search(ctx context.Context, kind domain.AccountKind, terms string, limit int) ([]domain.Account, error) {
	accounts, err := s.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	if err = s.index.Index(kind, accounts); err != nil {
		return nil, err
	}
	hits, err := s.index.Search(ctx, kind, terms, limit)
	if err != nil {
		return nil, err
	}

	byEmail := lo.SliceToMap(accounts, func(a domain.Account) (string, domain.Account) {
		return a.Email, a
	})
	return lo.FilterMap(hits, func(h search.Hit, _ int) (domain.Account, bool) {
		account, ok := byEmail[h.Email]
		return account, ok
	}), nil
}

// StartContract records counterpart in the draft. Choosing an organizer
// starts a new draft for the logged in client. Choosing a provider keeps
// the organizer and client already chosen.
func (s *DirectoryService) StartContract(ctx context.Context, kind domain.AccountKind, counterpart string) (domain.ContractDraft, error) {
	if kind != domain.Organizer && kind != domain.Provider {
		return domain.ContractDraft{}, fmt.Errorf("%w: %s", errors.ErrUnsupportedKind, kind)
	}
	profile, err := s.session.LoadProfile()
	if err != nil {
		return domain.ContractDraft{}, err
	}
	account, err := s.lookup(ctx, kind, counterpart)
	if err != nil {
		return domain.ContractDraft{}, err
	}

	var draft domain.ContractDraft
	switch kind {
	case domain.Organizer:
		draft = domain.ContractDraft{OrganizerID: account.Email, ClientID: profile.Email}
	case domain.Provider:
		if draft, err = s.session.LoadDraft(); err != nil {
			return domain.ContractDraft{}, err
		}
		draft.ProviderID = account.Email
	}

	if err = s.session.SaveDraft(draft); err != nil {
		return domain.ContractDraft{}, err
	}
	s.log.Info("Contract draft updated", "kind", kind, "counterpart", account.Email)
	return draft, nil
}

// MessageTarget resolves the identity to open a conversation with from a
// directory entry.
func (s *DirectoryService) MessageTarget(ctx context.Context, kind domain.AccountKind, email string) (string, error) {
	account, err := s.lookup(ctx, kind, email)
	if err != nil {
		return "", err
	}
	return account.Email, nil
}

func (s *DirectoryService) lookup(ctx context.Context, kind domain.AccountKind, email string) (domain.Account, error) {
	accounts, err := s.accounts.List(ctx, kind)
	if err != nil {
		return domain.Account{}, err
	}
	account, ok := lo.Find(accounts, func(a domain.Account) bool { return sameEmail(a.Email, email) })
	if !ok {
		return domain.Account{}, fmt.Errorf("%w: %s %s", errors.ErrAccountNotFound, kind, email)
	}
	return account, nil
}
