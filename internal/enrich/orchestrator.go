// Package enrich drives the contact enrichment pipeline: for every
// tracked company it runs a rate-limited contact search, merges the
// results into the store, and enrolls newly discovered contacts into
// an outbound sequence in one batch.
package enrich

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/JAlbertCode/event-tracker/internal/apollo"
	"github.com/JAlbertCode/event-tracker/internal/ratelimit"
	"github.com/JAlbertCode/event-tracker/internal/store"
	"github.com/JAlbertCode/event-tracker/internal/types"
)

// DefaultSearchDelay is the minimum pause between successive searches.
const DefaultSearchDelay = time.Second

// DefaultSeniorityLevels is the seniority filter applied when the
// caller supplies none.
var DefaultSeniorityLevels = []string{"director", "executive", "vp"}

// ContactSearcher finds contact candidates at a company.
type ContactSearcher interface {
	SearchPeople(ctx context.Context, companyName string, seniorityLevels []string) ([]apollo.Person, error)
}

// SequenceEnroller adds contacts to an outbound sequence.
type SequenceEnroller interface {
	AddToSequence(ctx context.Context, sequenceID string, contactIDs []string) error
}

// Orchestrator runs the enrichment pass over the tracked companies.
type Orchestrator struct {
	store     *store.Store
	searcher  ContactSearcher
	enroller  SequenceEnroller
	pacer     *ratelimit.Interval
	seniority []string
	log       zerolog.Logger
}

// New creates an orchestrator. A zero searchDelay disables pacing;
// empty seniority levels fall back to DefaultSeniorityLevels.
func New(st *store.Store, searcher ContactSearcher, enroller SequenceEnroller, searchDelay time.Duration, seniority []string, log zerolog.Logger) *Orchestrator {
	if len(seniority) == 0 {
		seniority = DefaultSeniorityLevels
	}
	return &Orchestrator{
		store:     st,
		searcher:  searcher,
		enroller:  enroller,
		pacer:     ratelimit.NewInterval(searchDelay),
		seniority: seniority,
		log:       log,
	}
}

// Run enriches every tracked company and returns the number of distinct
// newly merged contacts. A failed search skips only that company; a
// failed enrollment is logged and not re-raised. The store is saved
// unconditionally at the end so merged contacts persist either way.
func (o *Orchestrator) Run(ctx context.Context, sequenceID string) (int, error) {
	log := o.log.With().
		Str("run_id", uuid.NewString()).
		Str("sequence_id", sequenceID).
		Logger()

	var newIDs []string
	for _, company := range o.store.Companies() {
		if err := o.pacer.Wait(ctx); err != nil {
			return len(newIDs), err
		}

		people, err := o.searcher.SearchPeople(ctx, company.Name, o.seniority)
		if err != nil {
			log.Error().Err(err).Str("company", company.Name).Msg("contact search failed")
			continue
		}

		contacts := make([]types.Contact, 0, len(people))
		for _, person := range people {
			contacts = append(contacts, types.Contact{
				Name:     person.Name,
				Title:    person.Title,
				Company:  company.Name,
				Email:    person.Email,
				ApolloID: person.ID,
			})
		}

		for _, contact := range o.store.MergeContacts(contacts) {
			newIDs = append(newIDs, contact.ApolloID)
		}
	}

	if len(newIDs) > 0 {
		if err := o.enroller.AddToSequence(ctx, sequenceID, newIDs); err != nil {
			log.Error().Err(err).Int("contacts", len(newIDs)).Msg("sequence enrollment failed")
		} else {
			log.Info().Int("contacts", len(newIDs)).Msg("contacts enrolled in sequence")
		}
	}

	if err := o.store.Save(ctx); err != nil {
		return len(newIDs), err
	}
	return len(newIDs), nil
}
