package repositories

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"warranty-console/pkg/config"
)

type row struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type fakeSource struct {
	calls   atomic.Int32
	mu      sync.Mutex
	records []row
	err     error
	delay   time.Duration
}

func (f *fakeSource) fetch(ctx context.Context, token string) ([]row, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	return append([]row(nil), f.records...), nil
}

func (f *fakeSource) set(records []row, err error) {
	f.mu.Lock()
	f.records, f.err = records, err
	f.mu.Unlock()
}

func newTestStore(t *testing.T, src *fakeSource) (*RecordStore[row], *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := NewRecordStore[row](
		"rows",
		src.fetch,
		func(r row) string { return r.ID },
		NewRedisCacheRepository(client),
		config.StoreConfig{TTL: time.Hour, RefreshAfter: time.Minute},
		zap.NewNop(),
	)
	return store, mr
}

func TestRecordStore_CachesWithinRefreshInterval(t *testing.T) {
	src := &fakeSource{records: []row{{ID: "1", Status: "pending"}}}
	store, mr := newTestStore(t, src)
	ctx := context.Background()

	first, err := store.Load(ctx, "admin-1", "tok", false)
	require.NoError(t, err)
	assert.Len(t, first.Records, 1)
	assert.False(t, first.Stale)

	_, err = store.Load(ctx, "admin-1", "tok", false)
	require.NoError(t, err)
	assert.Equal(t, int32(1), src.calls.Load())
	assert.True(t, mr.Exists("console:store:rows:admin-1"))
}

func TestRecordStore_ForceRefetches(t *testing.T) {
	src := &fakeSource{records: []row{{ID: "1"}}}
	store, _ := newTestStore(t, src)
	ctx := context.Background()

	_, err := store.Load(ctx, "admin-1", "tok", false)
	require.NoError(t, err)

	src.set([]row{{ID: "1"}, {ID: "2"}}, nil)
	snap, err := store.Load(ctx, "admin-1", "tok", true)
	require.NoError(t, err)
	assert.Len(t, snap.Records, 2)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestRecordStore_OwnersAreSeparate(t *testing.T) {
	src := &fakeSource{records: []row{{ID: "1"}}}
	store, _ := newTestStore(t, src)
	ctx := context.Background()

	_, err := store.Load(ctx, "admin-1", "tok", false)
	require.NoError(t, err)
	_, err = store.Load(ctx, "admin-2", "tok", false)
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestRecordStore_ServesStaleSnapshotOnFailure(t *testing.T) {
	src := &fakeSource{records: []row{{ID: "1"}}}
	store, _ := newTestStore(t, src)
	ctx := context.Background()

	_, err := store.Load(ctx, "admin-1", "tok", false)
	require.NoError(t, err)

	src.set(nil, errors.New("connection refused"))
	snap, err := store.Load(ctx, "admin-1", "tok", true)
	require.NoError(t, err)
	assert.True(t, snap.Stale)
	assert.NotEmpty(t, snap.Warning)
	assert.Equal(t, []row{{ID: "1"}}, snap.Records)
}

func TestRecordStore_FailureWithoutSnapshot(t *testing.T) {
	src := &fakeSource{err: errors.New("connection refused")}
	store, _ := newTestStore(t, src)

	_, err := store.Load(context.Background(), "admin-1", "tok", false)
	assert.Error(t, err)
}

func TestRecordStore_ReadsSharedCache(t *testing.T) {
	src := &fakeSource{records: []row{{ID: "1"}}}
	store, mr := newTestStore(t, src)
	ctx := context.Background()

	_, err := store.Load(ctx, "admin-1", "tok", false)
	require.NoError(t, err)

	// a second instance sharing the same redis
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()
	other := NewRecordStore[row]("rows", src.fetch, func(r row) string { return r.ID },
		NewRedisCacheRepository(client), config.StoreConfig{TTL: time.Hour, RefreshAfter: time.Minute}, zap.NewNop())

	snap, err := other.Load(ctx, "admin-1", "tok", false)
	require.NoError(t, err)
	assert.Len(t, snap.Records, 1)
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestRecordStore_CollapsesConcurrentLoads(t *testing.T) {
	src := &fakeSource{records: []row{{ID: "1"}}, delay: 50 * time.Millisecond}
	store, _ := newTestStore(t, src)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap, err := store.Load(context.Background(), "admin-1", "tok", false)
			assert.NoError(t, err)
			assert.Len(t, snap.Records, 1)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestRecordStore_PatchAndRemove(t *testing.T) {
	src := &fakeSource{records: []row{{ID: "1", Status: "pending"}, {ID: "2", Status: "pending"}}}
	store, _ := newTestStore(t, src)
	ctx := context.Background()

	_, err := store.Load(ctx, "admin-1", "tok", false)
	require.NoError(t, err)

	assert.True(t, store.Patch(ctx, "admin-1", "2", func(r *row) { r.Status = "validated" }))
	assert.False(t, store.Patch(ctx, "admin-1", "9", func(r *row) { r.Status = "validated" }))
	assert.True(t, store.Remove(ctx, "admin-1", "1"))
	assert.False(t, store.Remove(ctx, "admin-1", "1"))

	snap, err := store.Load(ctx, "admin-1", "tok", false)
	require.NoError(t, err)
	assert.Equal(t, []row{{ID: "2", Status: "validated"}}, snap.Records)
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestRecordStore_Invalidate(t *testing.T) {
	src := &fakeSource{records: []row{{ID: "1"}}}
	store, mr := newTestStore(t, src)
	ctx := context.Background()

	_, err := store.Load(ctx, "admin-1", "tok", false)
	require.NoError(t, err)
	store.Invalidate(ctx, "admin-1")
	assert.False(t, mr.Exists("console:store:rows:admin-1"))

	_, err = store.Load(ctx, "admin-1", "tok", false)
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestRecordStore_ConcurrentPatchesAllLand(t *testing.T) {
	const n = 50
	records := make([]row, n)
	for i := range records {
		records[i] = row{ID: strconv.Itoa(i), Status: "pending"}
	}
	src := &fakeSource{records: records}
	store, _ := newTestStore(t, src)
	ctx := context.Background()

	_, err := store.Load(ctx, "admin-1", "tok", false)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			store.Patch(ctx, "admin-1", id, func(r *row) {
				time.Sleep(time.Millisecond)
				r.Status = "validated"
			})
		}(strconv.Itoa(i))
	}
	wg.Wait()

	snap, err := store.Load(ctx, "admin-1", "tok", false)
	require.NoError(t, err)
	require.Len(t, snap.Records, n)
	for _, r := range snap.Records {
		assert.Equal(t, "validated", r.Status, "record %s", r.ID)
	}
	assert.Equal(t, int32(1), src.calls.Load())
}

func TestRecordStore_ConcurrentRemovesAllLand(t *testing.T) {
	const n = 20
	records := make([]row, n)
	for i := range records {
		records[i] = row{ID: strconv.Itoa(i)}
	}
	store, _ := newTestStore(t, &fakeSource{records: records})
	ctx := context.Background()

	_, err := store.Load(ctx, "admin-1", "tok", false)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < n; i += 2 {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			store.Remove(ctx, "admin-1", id)
		}(strconv.Itoa(i))
	}
	wg.Wait()

	snap, err := store.Load(ctx, "admin-1", "tok", false)
	require.NoError(t, err)
	assert.Len(t, snap.Records, n/2)
}
