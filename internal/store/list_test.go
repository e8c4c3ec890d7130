package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type note struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

func noteListConfig() ListConfig[note] {
	return ListConfig[note]{
		Collection: "notes",
		Key: func(n note) string {
			return n.ID
		},
		SubmittedAt: func(n note) time.Time {
			return RecordTime(n.CreatedAt)
		},
		Valid: func(n note) bool {
			return n.Text != ""
		},
	}
}

func TestAppendOrUpdateWritesRecordAndList(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStore()
	list := NewList(mem, noteListConfig(), nil)

	n := note{ID: "n1", Text: "hello", CreatedAt: "2026-01-02T03:04:05Z"}
	require.NoError(t, list.AppendOrUpdate(ctx, n))

	body, err := mem.Get(ctx, "notes", "n1")
	require.NoError(t, err)
	require.NotNil(t, body)

	entries, err := list.Load(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "hello", entries[0].Text)

	n.Text = "updated"
	require.NoError(t, list.AppendOrUpdate(ctx, n))

	entries, err = list.Load(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "updated", entries[0].Text)
}

func TestLoadTreatsMalformedBlobAsEmpty(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStore()
	require.NoError(t, mem.Set(ctx, "notes", ListKey, []byte("{not json")))

	list := NewList(mem, noteListConfig(), nil)
	entries, err := list.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestRemoveDropsRecordAndListEntry(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStore()
	list := NewList(mem, noteListConfig(), nil)

	require.NoError(t, list.AppendOrUpdate(ctx, note{ID: "n1", Text: "a", CreatedAt: "2026-01-01T00:00:00Z"}))
	require.NoError(t, list.AppendOrUpdate(ctx, note{ID: "n2", Text: "b", CreatedAt: "2026-01-02T00:00:00Z"}))

	require.NoError(t, list.Remove(ctx, "n1"))

	body, err := mem.Get(ctx, "notes", "n1")
	require.NoError(t, err)
	require.Nil(t, body)

	entries, err := list.Load(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "n2", entries[0].ID)
}

func TestRebuildRestoresLostList(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStore()
	list := NewList(mem, noteListConfig(), nil)

	require.NoError(t, list.AppendOrUpdate(ctx, note{ID: "n1", Text: "oldest", CreatedAt: "2026-01-01T00:00:00Z"}))
	require.NoError(t, list.AppendOrUpdate(ctx, note{ID: "n2", Text: "newest", CreatedAt: "2026-01-03T00:00:00Z"}))
	require.NoError(t, list.AppendOrUpdate(ctx, note{ID: "n3", Text: "middle", CreatedAt: "2026-01-02T00:00:00Z"}))

	// Simulate a lost list blob plus one malformed and one invalid record.
	require.NoError(t, mem.Delete(ctx, "notes", ListKey))
	require.NoError(t, mem.Set(ctx, "notes", "broken", []byte("{not json")))
	require.NoError(t, mem.Set(ctx, "notes", "n4", []byte(`{"id":"n4","text":"","createdAt":"2026-01-04T00:00:00Z"}`)))

	summary, err := list.Rebuild(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, summary.Recovered)
	require.Equal(t, 2, summary.Skipped)

	entries, err := list.Load(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	require.Equal(t, []string{"n2", "n3", "n1"}, []string{entries[0].ID, entries[1].ID, entries[2].ID})
}

func TestRebuildIsIdempotent(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStore()
	list := NewList(mem, noteListConfig(), nil)

	require.NoError(t, list.AppendOrUpdate(ctx, note{ID: "n1", Text: "a", CreatedAt: "2026-01-01T00:00:00Z"}))

	first, err := list.Rebuild(ctx)
	require.NoError(t, err)
	second, err := list.Rebuild(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)

	entries, err := list.Load(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestRebuildReportsStatusCounts(t *testing.T) {
	ctx := context.Background()
	mem := NewMemoryStore()

	cfg := noteListConfig()
	cfg.Status = func(n note) string {
		if n.Text == "done" {
			return "done"
		}
		return "open"
	}
	list := NewList(mem, cfg, nil)

	require.NoError(t, list.AppendOrUpdate(ctx, note{ID: "n1", Text: "done", CreatedAt: "2026-01-01T00:00:00Z"}))
	require.NoError(t, list.AppendOrUpdate(ctx, note{ID: "n2", Text: "todo", CreatedAt: "2026-01-02T00:00:00Z"}))

	summary, err := list.Rebuild(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"done": 1, "open": 1}, summary.StatusCounts)
}
