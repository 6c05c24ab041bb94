package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"warranty-console/pkg/config"
	"warranty-console/pkg/metrics"
)

// Fetcher loads the full record list of a view on behalf of one caller.
type Fetcher[T any] func(ctx context.Context, token string) ([]T, error)

// Snapshot is the record list of one view as last fetched for an owner.
type Snapshot[T any] struct {
	Records   []T       `json:"records"`
	FetchedAt time.Time `json:"fetched_at"`

	// Stale is set when a refresh failed and the previous snapshot is
	// served instead; Warning then explains it.
	Stale   bool   `json:"-"`
	Warning string `json:"-"`
}

// RecordStore keeps one snapshot per (view, owner) in process and in the
// shared cache. Concurrent cold loads for the same owner share one fetch.
type RecordStore[T any] struct {
	view         string
	fetch        Fetcher[T]
	id           func(T) string
	cache        CacheRepositoryInterface
	ttl          time.Duration
	refreshAfter time.Duration
	now          func() time.Time
	logger       *zap.Logger

	mu    sync.RWMutex
	local map[string]Snapshot[T]
	group singleflight.Group
	// writeMu serialises read-modify-write of snapshots.
	writeMu sync.Mutex
}

func NewRecordStore[T any](
	view string,
	fetch Fetcher[T],
	id func(T) string,
	cache CacheRepositoryInterface,
	cfg config.StoreConfig,
	logger *zap.Logger,
) *RecordStore[T] {
	return &RecordStore[T]{
		view:         view,
		fetch:        fetch,
		id:           id,
		cache:        cache,
		ttl:          cfg.TTL,
		refreshAfter: cfg.RefreshAfter,
		now:          time.Now,
		logger:       logger.Named("store").With(zap.String("view", view)),
		local:        make(map[string]Snapshot[T]),
	}
}

func (s *RecordStore[T]) View() string {
	return s.view
}

func (s *RecordStore[T]) cacheKey(owner string) string {
	return fmt.Sprintf("console:store:%s:%s", s.view, owner)
}

// Load returns the owner's snapshot, refetching it when it is older than
// the refresh interval or when force is set. A failed refetch falls back
// to the previous snapshot marked stale; without one the error is
// returned.
func (s *RecordStore[T]) Load(ctx context.Context, owner, token string, force bool) (Snapshot[T], error) {
	prev, found := s.lookup(ctx, owner)
	if found && !force && s.now().Sub(prev.FetchedAt) < s.refreshAfter {
		return prev, nil
	}

	v, err, shared := s.group.Do(owner, func() (interface{}, error) {
		records, err := s.fetch(context.WithoutCancel(ctx), token)
		metrics.UpstreamFetch(s.view, err)
		if err != nil {
			return nil, err
		}
		if records == nil {
			records = make([]T, 0)
		}
		snap := Snapshot[T]{Records: records, FetchedAt: s.now()}
		s.writeMu.Lock()
		s.save(ctx, owner, snap)
		s.writeMu.Unlock()
		return snap, nil
	})
	if err != nil {
		if !found || errors.Is(err, context.Canceled) {
			return Snapshot[T]{}, err
		}
		s.logger.Warn("refresh failed, serving previous snapshot",
			zap.String("owner", owner),
			zap.Time("fetched_at", prev.FetchedAt),
			zap.Error(err),
		)
		metrics.StaleServe(s.view)
		prev.Stale = true
		prev.Warning = fmt.Sprintf("Could not refresh %s, showing data from %s", s.view, prev.FetchedAt.UTC().Format(time.RFC3339))
		return prev, nil
	}

	snap := v.(Snapshot[T])
	if shared {
		snap.Records = slices.Clone(snap.Records)
	}
	return snap, nil
}

// Patch applies fn to every record whose id matches and rewrites the
// snapshot. It reports whether a record was found.
func (s *RecordStore[T]) Patch(ctx context.Context, owner, id string, fn func(*T)) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	snap, found := s.lookup(ctx, owner)
	if !found {
		return false
	}
	records := slices.Clone(snap.Records)
	patched := false
	for i := range records {
		if s.id(records[i]) == id {
			fn(&records[i])
			patched = true
		}
	}
	if patched {
		snap.Records = records
		s.save(ctx, owner, snap)
	}
	return patched
}

// Remove drops the records with the given id from the snapshot.
func (s *RecordStore[T]) Remove(ctx context.Context, owner, id string) bool {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	snap, found := s.lookup(ctx, owner)
	if !found {
		return false
	}
	records := slices.DeleteFunc(slices.Clone(snap.Records), func(r T) bool { return s.id(r) == id })
	if len(records) == len(snap.Records) {
		return false
	}
	snap.Records = records
	s.save(ctx, owner, snap)
	return true
}

// Invalidate forgets the owner's snapshot everywhere.
func (s *RecordStore[T]) Invalidate(ctx context.Context, owner string) {
	s.mu.Lock()
	delete(s.local, owner)
	s.mu.Unlock()
	if s.cache != nil {
		if err := s.cache.Del(ctx, s.cacheKey(owner)); err != nil {
			s.logger.Warn("cache delete failed", zap.Error(err))
		}
	}
}

func (s *RecordStore[T]) lookup(ctx context.Context, owner string) (Snapshot[T], bool) {
	s.mu.RLock()
	snap, ok := s.local[owner]
	s.mu.RUnlock()
	if ok {
		return snap, true
	}
	if s.cache == nil {
		return Snapshot[T]{}, false
	}

	raw, err := s.cache.Get(ctx, s.cacheKey(owner))
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			s.logger.Warn("cache read failed", zap.Error(err))
		}
		return Snapshot[T]{}, false
	}
	if err := json.Unmarshal(raw, &snap); err != nil {
		s.logger.Warn("cached snapshot is unreadable", zap.Error(err))
		return Snapshot[T]{}, false
	}

	s.mu.Lock()
	s.local[owner] = snap
	s.mu.Unlock()
	return snap, true
}

func (s *RecordStore[T]) save(ctx context.Context, owner string, snap Snapshot[T]) {
	snap.Stale, snap.Warning = false, ""
	s.mu.Lock()
	s.local[owner] = snap
	s.mu.Unlock()

	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		s.logger.Warn("snapshot is not serialisable", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, s.cacheKey(owner), raw, s.ttl); err != nil {
		s.logger.Warn("cache write failed", zap.Error(err))
	}
}
