// Package store owns the tracked company and contact records and their
// persistence. The whole state is serialized as one snapshot; every
// mutating operation is followed by a Save so a restart never observes
// partial progress.
//
// The calling host serializes operations, so the store assumes a single
// logical caller and takes no locks.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/JAlbertCode/event-tracker/internal/diff"
	"github.com/JAlbertCode/event-tracker/internal/types"
)

// Backend abstracts where the snapshot bytes live.
type Backend interface {
	// Read returns the persisted snapshot, or (nil, nil) when none exists yet.
	Read(ctx context.Context) ([]byte, error)
	// Write replaces the snapshot with all-or-nothing visibility.
	Write(ctx context.Context, data []byte) error
}

// snapshot is the persisted wire form of the tracker state.
type snapshot struct {
	Companies map[string]types.Company `json:"companies"`
	Contacts  map[string]types.Contact `json:"contacts"`
	LastCheck *time.Time               `json:"last_check"`
	LastURL   string                   `json:"last_url,omitempty"`
}

// Store holds the tracker state: companies keyed by name, contacts
// keyed by Apollo ID, and the timestamp and URL of the last scan.
type Store struct {
	backend   Backend
	log       zerolog.Logger
	companies map[string]types.Company
	contacts  map[string]types.Contact
	lastCheck *time.Time
	lastURL   string
}

// New creates an empty store on the given backend. Call Load before use.
func New(backend Backend, log zerolog.Logger) *Store {
	return &Store{
		backend:   backend,
		log:       log,
		companies: make(map[string]types.Company),
		contacts:  make(map[string]types.Contact),
	}
}

// Load reads the persisted snapshot into memory. An absent snapshot
// yields an empty state; a malformed one fails with DeserializationError
// and never silently degrades to empty.
func (s *Store) Load(ctx context.Context) error {
	data, err := s.backend.Read(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	if data == nil {
		s.log.Debug().Msg("no snapshot found, starting with empty state")
		return nil
	}

	if err := validateSnapshotSchema(data); err != nil {
		return err
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return &DeserializationError{Reason: "snapshot JSON does not match schema", Cause: err}
	}

	for name, company := range snap.Companies {
		if err := types.ValidateCompany(company); err != nil {
			return &DeserializationError{Reason: fmt.Sprintf("company %q", name), Cause: err}
		}
	}
	for id, contact := range snap.Contacts {
		if err := types.ValidateContact(contact); err != nil {
			return &DeserializationError{Reason: fmt.Sprintf("contact %q", id), Cause: err}
		}
	}

	s.companies = snap.Companies
	if s.companies == nil {
		s.companies = make(map[string]types.Company)
	}
	s.contacts = snap.Contacts
	if s.contacts == nil {
		s.contacts = make(map[string]types.Contact)
	}
	s.lastCheck = snap.LastCheck
	s.lastURL = snap.LastURL

	s.log.Debug().
		Int("companies", len(s.companies)).
		Int("contacts", len(s.contacts)).
		Msg("snapshot loaded")
	return nil
}

// Save serializes the full state and replaces the persisted snapshot.
// A failed write leaves the previous snapshot intact.
func (s *Store) Save(ctx context.Context) error {
	data, err := json.Marshal(snapshot{
		Companies: s.companies,
		Contacts:  s.contacts,
		LastCheck: s.lastCheck,
		LastURL:   s.lastURL,
	})
	if err != nil {
		return fmt.Errorf("serialize snapshot: %w", err)
	}
	if err := s.backend.Write(ctx, data); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// MergeCompanies folds an observed batch into the tracked set. Known
// companies only advance last_seen; new ones are inserted with
// first_seen = last_seen = now. The last-check timestamp is set to now.
// The full observed batch is returned for caller reporting.
func (s *Store) MergeCompanies(observed []types.Company, now time.Time) []types.Company {
	for _, company := range observed {
		if existing, ok := s.companies[company.Name]; ok {
			existing.LastSeen = now
			s.companies[company.Name] = existing
			continue
		}
		company.FirstSeen = now
		company.LastSeen = now
		s.companies[company.Name] = company
	}
	s.lastCheck = &now
	return observed
}

// MergeContacts inserts or overwrites contacts by Apollo ID (latest
// wins) and returns only the newly discovered ones, deduplicated by ID
// within the batch. Records without an ID are dropped.
func (s *Store) MergeContacts(observed []types.Contact) []types.Contact {
	var fresh []types.Contact
	for _, contact := range observed {
		if contact.ApolloID == "" {
			s.log.Warn().Str("contact", contact.Name).Msg("dropping contact without id")
			continue
		}
		_, existed := s.contacts[contact.ApolloID]
		s.contacts[contact.ApolloID] = contact
		if !existed {
			fresh = append(fresh, contact)
		}
	}
	return fresh
}

// DiffSinceLast compares the currently observed names with the tracked
// set. It fails with ErrNoPriorData when no scan has completed yet.
func (s *Store) DiffSinceLast(observedNames []string) (diff.Changes, error) {
	if s.lastCheck == nil {
		return diff.Changes{}, ErrNoPriorData
	}
	return diff.Compute(s.CompanyNames(), observedNames), nil
}

// Companies returns the tracked companies ordered by name.
func (s *Store) Companies() []types.Company {
	names := s.CompanyNames()
	companies := make([]types.Company, 0, len(names))
	for _, name := range names {
		companies = append(companies, s.companies[name])
	}
	return companies
}

// CompanyNames returns the tracked company names, sorted.
func (s *Store) CompanyNames() []string {
	names := make([]string, 0, len(s.companies))
	for name := range s.companies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Company looks up a tracked company by name.
func (s *Store) Company(name string) (types.Company, bool) {
	company, ok := s.companies[name]
	return company, ok
}

// Contact looks up a tracked contact by Apollo ID.
func (s *Store) Contact(id string) (types.Contact, bool) {
	contact, ok := s.contacts[id]
	return contact, ok
}

// ContactCount returns the number of tracked contacts.
func (s *Store) ContactCount() int {
	return len(s.contacts)
}

// LastCheck returns the time of the last successful scan, or nil if
// none has happened yet.
func (s *Store) LastCheck() *time.Time {
	if s.lastCheck == nil {
		return nil
	}
	t := *s.lastCheck
	return &t
}

// LastURL returns the most recently scanned event URL, if any.
func (s *Store) LastURL() string {
	return s.lastURL
}

// SetLastURL records the event URL a scan ran against, so later change
// queries can re-extract from the same page.
func (s *Store) SetLastURL(url string) {
	s.lastURL = url
}
