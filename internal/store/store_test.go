package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JAlbertCode/event-tracker/internal/types"
)

// memBackend keeps the snapshot in memory and can be told to fail writes.
type memBackend struct {
	data      []byte
	failWrite bool
}

func (b *memBackend) Read(_ context.Context) ([]byte, error) {
	return b.data, nil
}

func (b *memBackend) Write(_ context.Context, data []byte) error {
	if b.failWrite {
		return errors.New("disk full")
	}
	b.data = data
	return nil
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(&memBackend{}, zerolog.Nop())
}

func sponsor(name string) types.Company {
	return types.Company{Name: name, Website: "https://" + name + ".example.com", Type: types.Sponsor}
}

func TestLoad_NoSnapshotStartsEmpty(t *testing.T) {
	st := New(NewFileBackend(filepath.Join(t.TempDir(), "event_data.json")), zerolog.Nop())

	require.NoError(t, st.Load(context.Background()))
	assert.Empty(t, st.CompanyNames())
	assert.Zero(t, st.ContactCount())
	assert.Nil(t, st.LastCheck())
}

func TestLoad_MalformedJSONFailsWithDeserializationError(t *testing.T) {
	st := New(&memBackend{data: []byte("{not json")}, zerolog.Nop())

	err := st.Load(context.Background())
	require.Error(t, err)

	var deserr *DeserializationError
	assert.True(t, errors.As(err, &deserr))
}

func TestLoad_SchemaViolationFailsWithDeserializationError(t *testing.T) {
	tests := []struct {
		name     string
		snapshot string
	}{
		{"companies is an array", `{"companies": [], "contacts": {}, "last_check": null}`},
		{"company missing type", `{"companies": {"Acme": {"name": "Acme", "first_seen": "2025-01-01T00:00:00Z", "last_seen": "2025-01-01T00:00:00Z"}}, "contacts": {}, "last_check": null}`},
		{"company type out of enum", `{"companies": {"Acme": {"name": "Acme", "type": "vendor", "first_seen": "2025-01-01T00:00:00Z", "last_seen": "2025-01-01T00:00:00Z"}}, "contacts": {}, "last_check": null}`},
		{"contact missing apollo_id", `{"companies": {}, "contacts": {"c1": {"name": "Ada"}}, "last_check": null}`},
		{"missing contacts key", `{"companies": {}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := New(&memBackend{data: []byte(tt.snapshot)}, zerolog.Nop())

			err := st.Load(context.Background())
			require.Error(t, err)

			var deserr *DeserializationError
			assert.True(t, errors.As(err, &deserr), "expected DeserializationError, got %v", err)
		})
	}
}

func TestLoad_NeverDegradesToEmptyState(t *testing.T) {
	st := New(&memBackend{data: []byte(`{"companies": 42}`)}, zerolog.Nop())

	err := st.Load(context.Background())
	require.Error(t, err)
	// The prior in-memory state is untouched on a failed load.
	assert.Empty(t, st.CompanyNames())
}

func TestMergeCompanies_InsertsWithFirstSeenEqualLastSeen(t *testing.T) {
	st := newTestStore(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	merged := st.MergeCompanies([]types.Company{sponsor("Acme")}, now)
	require.Len(t, merged, 1)

	company, ok := st.Company("Acme")
	require.True(t, ok)
	assert.Equal(t, now, company.FirstSeen)
	assert.Equal(t, now, company.LastSeen)
}

func TestMergeCompanies_FirstSeenIsImmutable(t *testing.T) {
	st := newTestStore(t)
	first := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	later := first.Add(48 * time.Hour)

	st.MergeCompanies([]types.Company{sponsor("Acme")}, first)
	st.MergeCompanies([]types.Company{sponsor("Acme")}, later)
	st.MergeCompanies([]types.Company{sponsor("Acme")}, later.Add(time.Hour))

	company, ok := st.Company("Acme")
	require.True(t, ok)
	assert.Equal(t, first, company.FirstSeen, "first_seen must never change on re-observation")
	assert.Equal(t, later.Add(time.Hour), company.LastSeen)
}

func TestMergeCompanies_WebsiteAndTypeImmutable(t *testing.T) {
	st := newTestStore(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	st.MergeCompanies([]types.Company{sponsor("Acme")}, now)
	st.MergeCompanies([]types.Company{{
		Name:    "Acme",
		Website: "https://changed.example.com",
		Type:    types.Attendee,
	}}, now.Add(time.Hour))

	company, _ := st.Company("Acme")
	assert.Equal(t, "https://Acme.example.com", company.Website)
	assert.Equal(t, types.Sponsor, company.Type)
}

func TestMergeCompanies_SetsLastCheckAndReturnsFullBatch(t *testing.T) {
	st := newTestStore(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	st.MergeCompanies([]types.Company{sponsor("Acme")}, now)
	merged := st.MergeCompanies([]types.Company{sponsor("Acme"), sponsor("Globex")}, now.Add(time.Hour))

	// The full observed batch comes back, not just new entries.
	require.Len(t, merged, 2)
	require.NotNil(t, st.LastCheck())
	assert.Equal(t, now.Add(time.Hour), *st.LastCheck())
}

func TestMergeContacts_ReturnsOnlyNewlyDiscovered(t *testing.T) {
	st := newTestStore(t)

	fresh := st.MergeContacts([]types.Contact{
		{ApolloID: "c1", Name: "Ada", Company: "Acme"},
		{ApolloID: "c2", Name: "Grace", Company: "Acme"},
	})
	require.Len(t, fresh, 2)

	fresh = st.MergeContacts([]types.Contact{
		{ApolloID: "c2", Name: "Grace", Company: "Acme"},
		{ApolloID: "c3", Name: "Edsger", Company: "Globex"},
	})
	require.Len(t, fresh, 1)
	assert.Equal(t, "c3", fresh[0].ApolloID)
	assert.Equal(t, 3, st.ContactCount())
}

func TestMergeContacts_DeduplicatesWithinBatch(t *testing.T) {
	st := newTestStore(t)

	fresh := st.MergeContacts([]types.Contact{
		{ApolloID: "c1", Name: "Ada"},
		{ApolloID: "c1", Name: "Ada Updated"},
	})

	require.Len(t, fresh, 1)
	assert.Equal(t, 1, st.ContactCount())

	// Latest wins on overwrite.
	contact, ok := st.Contact("c1")
	require.True(t, ok)
	assert.Equal(t, "Ada Updated", contact.Name)
}

func TestMergeContacts_DropsRecordsWithoutID(t *testing.T) {
	st := newTestStore(t)

	fresh := st.MergeContacts([]types.Contact{{Name: "No ID"}})

	assert.Empty(t, fresh)
	assert.Zero(t, st.ContactCount())
}

func TestDiffSinceLast_NoPriorData(t *testing.T) {
	st := newTestStore(t)

	_, err := st.DiffSinceLast([]string{"Acme"})
	assert.ErrorIs(t, err, ErrNoPriorData)
}

func TestDiffSinceLast_AddedAndRemoved(t *testing.T) {
	st := newTestStore(t)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	st.MergeCompanies([]types.Company{sponsor("A"), sponsor("B")}, now)

	changes, err := st.DiffSinceLast([]string{"B", "C"})
	require.NoError(t, err)
	assert.Equal(t, []string{"C"}, changes.Added)
	assert.Equal(t, []string{"A"}, changes.Removed)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event_data.json")
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	st := New(NewFileBackend(path), zerolog.Nop())
	require.NoError(t, st.Load(context.Background()))
	st.MergeCompanies([]types.Company{sponsor("Acme"), sponsor("Globex")}, now)
	st.MergeContacts([]types.Contact{{ApolloID: "c1", Name: "Ada", Title: "CTO", Company: "Acme", Email: "ada@acme.example.com"}})
	st.SetLastURL("https://conf.example.com/sponsors")
	require.NoError(t, st.Save(context.Background()))

	// Simulated restart: a fresh store on the same file.
	restored := New(NewFileBackend(path), zerolog.Nop())
	require.NoError(t, restored.Load(context.Background()))

	assert.Equal(t, st.CompanyNames(), restored.CompanyNames())
	assert.Equal(t, st.ContactCount(), restored.ContactCount())
	assert.Equal(t, "https://conf.example.com/sponsors", restored.LastURL())
	require.NotNil(t, restored.LastCheck())
	assert.True(t, st.LastCheck().Equal(*restored.LastCheck()))

	original, _ := st.Company("Acme")
	reloaded, ok := restored.Company("Acme")
	require.True(t, ok)
	assert.Equal(t, original, reloaded)

	contact, ok := restored.Contact("c1")
	require.True(t, ok)
	assert.Equal(t, "Ada", contact.Name)
}

func TestSave_WriteFailureLeavesPriorSnapshotIntact(t *testing.T) {
	backend := &memBackend{}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	st := New(backend, zerolog.Nop())
	st.MergeCompanies([]types.Company{sponsor("Acme")}, now)
	require.NoError(t, st.Save(context.Background()))

	backend.failWrite = true
	st.MergeCompanies([]types.Company{sponsor("Globex")}, now.Add(time.Hour))
	require.Error(t, st.Save(context.Background()))

	// A later load still sees the last successful snapshot.
	backend.failWrite = false
	restored := New(backend, zerolog.Nop())
	require.NoError(t, restored.Load(context.Background()))
	assert.Equal(t, []string{"Acme"}, restored.CompanyNames())
}

func TestFileBackend_AtomicReplace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "event_data.json")
	backend := NewFileBackend(path)
	ctx := context.Background()

	require.NoError(t, backend.Write(ctx, []byte(`{"companies":{},"contacts":{},"last_check":null}`)))
	require.NoError(t, backend.Write(ctx, []byte(`{"companies":{},"contacts":{},"last_check":"2025-06-01T12:00:00Z"}`)))

	data, err := backend.Read(ctx)
	require.NoError(t, err)
	assert.Contains(t, string(data), "2025-06-01T12:00:00Z")

	// No temp files left behind.
	matches, err := filepath.Glob(filepath.Join(filepath.Dir(path), ".snapshot-*"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestFileBackend_WriteFailureKeepsOldFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "event_data.json")
	backend := NewFileBackend(path)
	ctx := context.Background()

	require.NoError(t, backend.Write(ctx, []byte(`{"companies":{},"contacts":{}}`)))

	// Pointing a backend at a missing directory makes the temp file
	// creation fail before the original is touched.
	broken := NewFileBackend(filepath.Join(dir, "missing", "event_data.json"))
	require.Error(t, broken.Write(ctx, []byte("new")))

	data, err := backend.Read(ctx)
	require.NoError(t, err)
	assert.Contains(t, string(data), "companies")
}
