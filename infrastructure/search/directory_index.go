// Package search indexes directory accounts for full text lookup.
package search

import (
	"context"
	"event-market/domain"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/blugelabs/bluge"
	"github.com/samber/lo"
)

const (
	fieldKind     = "kind"
	fieldEmail    = "email"
	fieldName     = "name"
	fieldLocation = "location"
	fieldServices = "services"

	DefaultLimit = 20
)

var searchableFields = []string{fieldName, fieldLocation, fieldServices}

// Hit is a ranked search result.
type Hit struct {
	Kind  domain.AccountKind
	Email string
	Score float64
}

// DirectoryIndex is an in-memory bluge index over directory accounts.
// Index replaces the accounts of a kind so a fresh list always wins.
type DirectoryIndex struct {
	log    *slog.Logger
	mu     sync.Mutex
	writer *bluge.Writer
	ids    map[domain.AccountKind][]string
}

func NewDirectoryIndex(log *slog.Logger) (*DirectoryIndex, error) {
	writer, err := bluge.OpenWriter(bluge.InMemoryOnlyConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to open bluge writer: %w", err)
	}
	return &DirectoryIndex{
		log:    log,
		writer: writer,
		ids:    make(map[domain.AccountKind][]string),
	}, nil
}

func documentID(kind domain.AccountKind, email string) string {
	return string(kind) + ":" + email
}

// Index drops every document previously indexed for kind and indexes
// accounts instead.
func (d *DirectoryIndex) Index(kind domain.AccountKind, accounts []domain.Account) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	batch := bluge.NewBatch()
	for _, id := range d.ids[kind] {
		batch.Delete(bluge.Identifier(id))
	}

	ids := make([]string, 0, len(accounts))
	for _, account := range accounts {
		id := documentID(kind, account.Email)
		doc := bluge.NewDocument(id).
			AddField(bluge.NewKeywordField(fieldKind, string(kind))).
			AddField(bluge.NewKeywordField(fieldEmail, account.Email).StoreValue()).
			AddField(bluge.NewTextField(fieldName, account.Name)).
			AddField(bluge.NewTextField(fieldLocation, account.Location)).
			AddField(bluge.NewTextField(fieldServices, strings.Join(account.Services, " ")))
		batch.Update(doc.ID(), doc)
		ids = append(ids, id)
	}

	if err := d.writer.Batch(batch); err != nil {
		return fmt.Errorf("failed to index %s directory: %w", kind, err)
	}
	d.ids[kind] = lo.Uniq(ids)
	d.log.Debug("Directory indexed", "kind", kind, "count", len(accounts))
	return nil
}

// Search ranks the accounts of kind matching terms on name, location and
// services. Each word matches as a whole term or as a prefix. Empty terms
// return every account of the kind.
func (d *DirectoryIndex) Search(ctx context.Context, kind domain.AccountKind, terms string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	query := bluge.NewBooleanQuery().
		AddMust(bluge.NewTermQuery(string(kind)).SetField(fieldKind))
	for _, word := range strings.Fields(strings.ToLower(terms)) {
		query.AddMust(wordQuery(word))
	}

	d.mu.Lock()
	reader, err := d.writer.Reader()
	d.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to open bluge reader: %w", err)
	}
	defer func() { _ = reader.Close() }()

	iterator, err := reader.Search(ctx, bluge.NewTopNSearch(limit, query))
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	var hits []Hit
	match, err := iterator.Next()
	for err == nil && match != nil {
		hit := Hit{Kind: kind, Score: match.Score}
		err = match.VisitStoredFields(func(field string, value []byte) bool {
			if field == fieldEmail {
				hit.Email = string(value)
			}
			return true
		})
		if err != nil {
			break
		}
		hits = append(hits, hit)
		match, err = iterator.Next()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read search results: %w", err)
	}
	return hits, nil
}

func wordQuery(word string) bluge.Query {
	query := bluge.NewBooleanQuery().SetMinShould(1)
	for _, field := range searchableFields {
		query.AddShould(
			bluge.NewMatchQuery(word).SetField(field),
			bluge.NewPrefixQuery(word).SetField(field),
		)
	}
	return query
}

func (d *DirectoryIndex) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.writer.Close()
}
