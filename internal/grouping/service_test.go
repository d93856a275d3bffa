package grouping

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kwtaxonomy/internal/cache"
	"kwtaxonomy/internal/db"
	"kwtaxonomy/internal/keywords"
	"kwtaxonomy/internal/metrics"
	"kwtaxonomy/internal/models"
)

type fakeSource struct {
	mu       sync.Mutex
	calls    int
	records  map[uuid.UUID][]models.KeywordRecord
	versions map[uuid.UUID]time.Time

	// afterFetch runs once the records have been read, outside the lock.
	afterFetch func()
}

func (f *fakeSource) FetchKeywordRecords(_ context.Context, id uuid.UUID) ([]models.KeywordRecord, error) {
	f.mu.Lock()
	f.calls++
	records, ok := f.records[id]
	hook := f.afterFetch
	f.afterFetch = nil
	f.mu.Unlock()

	if !ok {
		return nil, db.ErrProjectNotFound
	}
	if hook != nil {
		hook()
	}
	return records, nil
}

func (f *fakeSource) ProjectVersion(_ context.Context, id uuid.UUID) (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[id]; !ok {
		return time.Time{}, db.ErrProjectNotFound
	}
	return f.versions[id], nil
}

// importRecords appends records and moves the project version forward, as a
// committed import does.
func (f *fakeSource) importRecords(id uuid.UUID, records ...models.KeywordRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[id] = append(append([]models.KeywordRecord(nil), f.records[id]...), records...)
	f.versions[id] = f.versions[id].Add(time.Second)
}

type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memStore) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *memStore) Set(key string, val []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = val
	return nil
}

func vol(v int64) *int64 { return &v }

func newTestService(t *testing.T, withCache bool) (*Service, *fakeSource, uuid.UUID) {
	t.Helper()

	id := uuid.New()
	source := &fakeSource{
		records: map[uuid.UUID][]models.KeywordRecord{
			id: {
				{Keyword: "petlas 205/55 r16 fiyat", SearchVolume: vol(500)},
				{Keyword: "Petlas 205/55 R16 fiyat", SearchVolume: vol(50)},
				{Keyword: "oto lastik", SearchVolume: vol(900)},
			},
		},
		versions: map[uuid.UUID]time.Time{id: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)},
	}

	var results *cache.Results
	if withCache {
		results = cache.New(&memStore{data: map[string][]byte{}}, time.Minute)
	}

	svc := NewService(
		keywords.NewPipeline(keywords.DefaultLexicons()),
		source,
		results,
		metrics.NewRecorder(prometheus.NewRegistry()),
	)
	return svc, source, id
}

func TestService_Group(t *testing.T) {
	svc, _, _ := newTestService(t, false)

	result, err := svc.Group([]models.KeywordRecord{{Keyword: "lassa vs petlas", SearchVolume: vol(10)}})
	require.NoError(t, err)
	assert.Equal(t, 1, result.UniqueCount)

	_, err = svc.Group([]models.KeywordRecord{{Keyword: "  "}})
	assert.ErrorIs(t, err, keywords.ErrInvalidRecord)
}

func TestService_ProjectGroups_CacheAside(t *testing.T) {
	svc, source, id := newTestService(t, true)
	ctx := context.Background()

	first, err := svc.ProjectGroups(ctx, id)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, 3, first.InputCount)
	assert.Equal(t, 2, first.UniqueCount)

	second, err := svc.ProjectGroups(ctx, id)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Summary, second.Summary)
	assert.Equal(t, 1, source.calls, "second read should be served from cache")

	source.importRecords(id, models.KeywordRecord{Keyword: "lassa yaz lastiği", SearchVolume: vol(40)})
	third, err := svc.ProjectGroups(ctx, id)
	require.NoError(t, err)
	assert.False(t, third.Cached, "an import must retire the cached entry")
	assert.Equal(t, 4, third.InputCount)
	assert.Equal(t, 2, source.calls)
}

func TestService_ProjectGroups_ImportDuringCompute(t *testing.T) {
	svc, source, id := newTestService(t, true)
	ctx := context.Background()

	// The import commits after this read fetched its records but before it
	// writes the cache.
	source.afterFetch = func() {
		source.importRecords(id, models.KeywordRecord{Keyword: "lassa yaz lastiği", SearchVolume: vol(40)})
	}

	stale, err := svc.ProjectGroups(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 3, stale.InputCount)

	fresh, err := svc.ProjectGroups(ctx, id)
	require.NoError(t, err)
	assert.False(t, fresh.Cached, "result computed before the import must not be served after it")
	assert.Equal(t, 4, fresh.InputCount)

	cached, err := svc.ProjectGroups(ctx, id)
	require.NoError(t, err)
	assert.True(t, cached.Cached)
	assert.Equal(t, 4, cached.InputCount)
	assert.Equal(t, 2, source.calls)
}

func TestService_ProjectGroups_NoCache(t *testing.T) {
	svc, source, id := newTestService(t, false)

	for i := 0; i < 2; i++ {
		resp, err := svc.ProjectGroups(context.Background(), id)
		require.NoError(t, err)
		assert.False(t, resp.Cached)
	}
	assert.Equal(t, 2, source.calls)
}

func TestService_ProjectGroups_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t, true)

	_, err := svc.ProjectGroups(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, db.ErrProjectNotFound))
}

func TestService_Refresh(t *testing.T) {
	svc, source, id := newTestService(t, true)
	ctx := context.Background()

	require.NoError(t, svc.Refresh(ctx, id))

	resp, err := svc.ProjectGroups(ctx, id)
	require.NoError(t, err)
	assert.True(t, resp.Cached)
	assert.Equal(t, 1, source.calls)
}
