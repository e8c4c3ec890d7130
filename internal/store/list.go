package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
)

// ListKey is the reserved key of the denormalized list blob inside each
// collection. It never refers to an individual record.
const ListKey = "_list"

// ListConfig describes how a collection's records participate in its list
// blob: identity, recency ordering and the validity check applied while
// rebuilding from individually-keyed records.
type ListConfig[T any] struct {
	Collection  string
	Key         func(T) string
	SubmittedAt func(T) time.Time
	Valid       func(T) bool
	// Status is optional; when set, Rebuild reports a per-status breakdown.
	Status func(T) string
}

// List maintains the denormalized list blob for one collection. The list is
// a cache over the individually-keyed records: writes to it are best-effort
// and a lost update is repaired by an explicit Rebuild, never automatically.
type List[T any] struct {
	store  Store
	cfg    ListConfig[T]
	logger *zap.Logger
}

type RebuildSummary struct {
	Recovered    int            `json:"recovered"`
	Skipped      int            `json:"skipped"`
	StatusCounts map[string]int `json:"statusCounts,omitempty"`
}

func NewList[T any](s Store, cfg ListConfig[T], logger *zap.Logger) *List[T] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &List[T]{store: s, cfg: cfg, logger: logger}
}

// Load reads the list blob. An absent or malformed blob yields an empty
// slice rather than an error; callers needing authority run Rebuild.
func (l *List[T]) Load(ctx context.Context) ([]T, error) {
	body, err := l.store.Get(ctx, l.cfg.Collection, ListKey)
	if err != nil {
		return nil, err
	}
	if body == nil {
		return []T{}, nil
	}

	var entries []T
	if err := json.Unmarshal(body, &entries); err != nil {
		l.logger.Warn("list blob malformed, treating as empty",
			zap.String("collection", l.cfg.Collection),
			zap.Error(err))
		return []T{}, nil
	}
	return entries, nil
}

// Save overwrites the list blob with the given entries.
func (l *List[T]) Save(ctx context.Context, entries []T) error {
	body, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode %s list: %w", l.cfg.Collection, err)
	}
	return l.store.Set(ctx, l.cfg.Collection, ListKey, body)
}

// AppendOrUpdate persists the individual record and then syncs the list
// entry with the same id. The record write is authoritative: only its
// failure is returned. A failed list sync is logged and swallowed.
func (l *List[T]) AppendOrUpdate(ctx context.Context, record T) error {
	body, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode %s record: %w", l.cfg.Collection, err)
	}
	if err := l.store.Set(ctx, l.cfg.Collection, l.cfg.Key(record), body); err != nil {
		return err
	}

	l.syncEntry(ctx, record)
	return nil
}

func (l *List[T]) syncEntry(ctx context.Context, record T) {
	entries, err := l.Load(ctx)
	if err != nil {
		l.warnSyncFailure(record, err)
		return
	}

	id := l.cfg.Key(record)
	replaced := false
	for i, entry := range entries {
		if l.cfg.Key(entry) == id {
			entries[i] = record
			replaced = true
			break
		}
	}
	if !replaced {
		entries = append(entries, record)
	}

	if err := l.Save(ctx, entries); err != nil {
		l.warnSyncFailure(record, err)
	}
}

// Remove deletes the individual record and best-effort drops its list entry.
func (l *List[T]) Remove(ctx context.Context, id string) error {
	if err := l.store.Delete(ctx, l.cfg.Collection, id); err != nil {
		return err
	}

	entries, err := l.Load(ctx)
	if err != nil {
		l.logger.Warn("list sync failed after delete",
			zap.String("collection", l.cfg.Collection),
			zap.String("id", id),
			zap.Error(err))
		return nil
	}

	kept := entries[:0]
	for _, entry := range entries {
		if l.cfg.Key(entry) != id {
			kept = append(kept, entry)
		}
	}
	if len(kept) == len(entries) {
		return nil
	}

	if err := l.Save(ctx, kept); err != nil {
		l.logger.Warn("list sync failed after delete",
			zap.String("collection", l.cfg.Collection),
			zap.String("id", id),
			zap.Error(err))
	}
	return nil
}

// Rebuild re-derives the list blob from every individually-keyed record in
// the collection, silently discarding records that fail to parse or fail
// the validity check, and overwrites the list sorted by recency descending.
// This is an explicit administrative recovery action; it costs O(N) reads.
func (l *List[T]) Rebuild(ctx context.Context) (RebuildSummary, error) {
	keys, err := l.store.ListKeys(ctx, l.cfg.Collection)
	if err != nil {
		return RebuildSummary{}, err
	}

	summary := RebuildSummary{}
	if l.cfg.Status != nil {
		summary.StatusCounts = make(map[string]int)
	}

	recovered := make([]T, 0, len(keys))
	for _, key := range keys {
		if key == ListKey {
			continue
		}

		body, err := l.store.Get(ctx, l.cfg.Collection, key)
		if err != nil {
			return RebuildSummary{}, err
		}
		if body == nil {
			continue
		}

		var record T
		if err := json.Unmarshal(body, &record); err != nil {
			summary.Skipped++
			continue
		}
		if l.cfg.Valid != nil && !l.cfg.Valid(record) {
			summary.Skipped++
			continue
		}

		recovered = append(recovered, record)
		if l.cfg.Status != nil {
			summary.StatusCounts[l.cfg.Status(record)]++
		}
	}

	sort.SliceStable(recovered, func(i, j int) bool {
		return l.cfg.SubmittedAt(recovered[i]).After(l.cfg.SubmittedAt(recovered[j]))
	})

	if err := l.Save(ctx, recovered); err != nil {
		return RebuildSummary{}, err
	}

	summary.Recovered = len(recovered)
	l.logger.Info("list rebuilt",
		zap.String("collection", l.cfg.Collection),
		zap.Int("recovered", summary.Recovered),
		zap.Int("skipped", summary.Skipped))
	return summary, nil
}

func (l *List[T]) warnSyncFailure(record T, err error) {
	l.logger.Warn("best-effort list sync failed",
		zap.String("collection", l.cfg.Collection),
		zap.String("id", l.cfg.Key(record)),
		zap.Error(err))
}

// RecordTime parses an RFC3339 timestamp, falling back to the Unix epoch
// when the field is missing or unparseable so rebuild ordering stays total.
func RecordTime(value string) time.Time {
	if value == "" {
		return time.Unix(0, 0).UTC()
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Unix(0, 0).UTC()
	}
	return t
}
