package cache

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kwtaxonomy/internal/models"
)

type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
	exp  map[string]time.Duration
	err  error
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}, exp: map[string]time.Duration{}}
}

func (m *memStore) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return m.data[key], nil
}

func (m *memStore) Set(key string, val []byte, exp time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.data[key] = val
	m.exp[key] = exp
	return nil
}

func sampleGroups() []models.Group {
	vol := int64(120)
	return []models.Group{{
		ID:          models.GroupBrands,
		Name:        "Brands",
		TotalVolume: 120,
		Keywords:    []models.KeywordRecord{{Keyword: "petlas lastik", SearchVolume: &vol}},
		Subgroups: []models.Subgroup{{
			ID:          "brand-petlas",
			Name:        "Petlas",
			TotalVolume: 120,
			Keywords:    []models.KeywordRecord{{Keyword: "petlas lastik", SearchVolume: &vol}},
		}},
	}}
}

var v1 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestResults_PutGet(t *testing.T) {
	store := newMemStore()
	results := New(store, 10*time.Minute)
	id := uuid.New()

	_, ok, err := results.Get(id, v1)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, results.Put(id, v1, Entry{Groups: sampleGroups(), InputCount: 2, UniqueCount: 1}))
	assert.Equal(t, 10*time.Minute, store.exp[Key(id, v1)])

	entry, ok, err := results.Get(id, v1)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, entry.InputCount)
	assert.Equal(t, 1, entry.UniqueCount)
	assert.False(t, entry.StoredAt.IsZero())
	require.Len(t, entry.Groups, 1)
	assert.Equal(t, "brand-petlas", entry.Groups[0].Subgroups[0].ID)
	assert.Equal(t, int64(120), entry.Groups[0].Keywords[0].Volume())
}

func TestResults_NewVersionMisses(t *testing.T) {
	results := New(newMemStore(), time.Minute)
	id := uuid.New()
	v2 := v1.Add(time.Microsecond)

	require.NoError(t, results.Put(id, v1, Entry{Groups: sampleGroups()}))

	_, ok, err := results.Get(id, v2)
	require.NoError(t, err)
	assert.False(t, ok, "entry written for an older version must not be served")

	// a late write for the old version stays invisible at the new one
	require.NoError(t, results.Put(id, v1, Entry{Groups: sampleGroups()}))
	_, ok, err = results.Get(id, v2)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = results.Get(id, v1)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestResults_StoreErrors(t *testing.T) {
	store := newMemStore()
	store.err = errors.New("connection reset")
	results := New(store, time.Minute)

	_, ok, err := results.Get(uuid.New(), v1)
	assert.Error(t, err)
	assert.False(t, ok)
	assert.Error(t, results.Put(uuid.New(), v1, Entry{}))
}

func TestResults_CorruptEntry(t *testing.T) {
	store := newMemStore()
	id := uuid.New()
	store.data[Key(id, v1)] = []byte("{not json")

	_, ok, err := New(store, time.Minute).Get(id, v1)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestResults_NilIsDisabled(t *testing.T) {
	var results *Results

	assert.False(t, results.Enabled())
	_, ok, err := results.Get(uuid.New(), v1)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, results.Put(uuid.New(), v1, Entry{}))
}

func TestKey(t *testing.T) {
	id := uuid.MustParse("8f14e45f-ceea-467f-a0e6-0b3c2b1f9a11")
	assert.Equal(t, "groups:8f14e45f-ceea-467f-a0e6-0b3c2b1f9a11:1772366400000000000", Key(id, v1))
}
