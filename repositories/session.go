//go:generate go run go.uber.org/mock/mockgen -source=session.go -destination=../mocks/mock_session_repository.go -package=mocks
package repositories

import (
	"encoding/json"
	goerrors "errors"
	"event-market/domain"
	"event-market/errors"

	"github.com/dgraph-io/badger/v4"
)

const (
	profileKey = "session:profile"
	draftKey   = "session:draft"
)

// ISessionRepository keeps the state shared between screens on the device:
// the logged in profile and the parties of the contract being drafted.
type ISessionRepository interface {
	SaveProfile(profile domain.Profile) error
	LoadProfile() (domain.Profile, error)
	SaveDraft(draft domain.ContractDraft) error
	LoadDraft() (domain.ContractDraft, error)
	Clear() error
}

type SessionRepository struct {
	db *badger.DB
}

func NewSessionRepository(db *badger.DB) SessionRepository {
	return SessionRepository{db: db}
}

type storedProfile struct {
	Name  string `json:"nombre"`
	Email string `json:"correo"`
}

type storedDraft struct {
	OrganizerID string `json:"idOrganizador"`
	ClientID    string `json:"idUsuario"`
	ProviderID  string `json:"idProveedor"`
}

func (s SessionRepository) SaveProfile(profile domain.Profile) error {
	return s.put(profileKey, storedProfile{Name: profile.Name, Email: profile.Email})
}

// LoadProfile returns ErrNoProfile when nobody is logged in.
func (s SessionRepository) LoadProfile() (domain.Profile, error) {
	var stored storedProfile
	found, err := s.get(profileKey, &stored)
	if err != nil {
		return domain.Profile{}, err
	}
	if !found {
		return domain.Profile{}, errors.ErrNoProfile
	}
	return domain.Profile{Name: stored.Name, Email: stored.Email}, nil
}

func (s SessionRepository) SaveDraft(draft domain.ContractDraft) error {
	return s.put(draftKey, storedDraft(draft))
}

// LoadDraft returns an empty draft when none was started.
func (s SessionRepository) LoadDraft() (domain.ContractDraft, error) {
	var stored storedDraft
	if _, err := s.get(draftKey, &stored); err != nil {
		return domain.ContractDraft{}, err
	}
	return domain.ContractDraft(stored), nil
}

func (s SessionRepository) Clear() error {
	return s.db.Update(func(txn *badger.Txn) error {
		for _, key := range []string{profileKey, draftKey} {
			if err := txn.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s SessionRepository) put(key string, value any) error {
	bytes, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), bytes)
	})
}

func (s SessionRepository) get(key string, out any) (bool, error) {
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, out)
		})
	})
	if goerrors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	return err == nil, err
}
