package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcon-dev/fake-vcons/internal/testutil"
	"github.com/vcon-dev/fake-vcons/store"
	"github.com/vcon-dev/fake-vcons/vcon"
)

// Interface compliance (compile-time assertion)
var _ store.Store = (*Store)(nil)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "vcons.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newTestVcon(subject string) *vcon.Vcon {
	return testutil.NewVconBuilder().
		Subject(subject).
		Agent("Agent", "+14155550100").
		TextTurn(0, "hello, how can I help?").
		Build()
}

func TestOpenRequiresPath(t *testing.T) {
	_, err := Open(" ")
	assert.Error(t, err)
}

func TestSaveGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	v := newTestVcon("Order status call")
	require.NoError(t, s.Save(ctx, v))

	out, err := s.Get(ctx, v.UUID)
	require.NoError(t, err)
	assert.Equal(t, v.UUID, out.UUID)
	assert.Equal(t, v.Subject, out.Subject)
	assert.Equal(t, v.Parties, out.Parties)
	assert.Equal(t, v.Dialog[0].Parties.Values(), out.Dialog[0].Parties.Values())
}

func TestSaveUpserts(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	v := newTestVcon("original subject")
	require.NoError(t, s.Save(ctx, v))
	v.Subject = "revised subject"
	require.NoError(t, s.Save(ctx, v))

	out, err := s.Get(ctx, v.UUID)
	require.NoError(t, err)
	assert.Equal(t, "revised subject", out.Subject)

	ids, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, ids, 1)
}

func TestGetNotFound(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Get(context.Background(), "missing-uuid")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestListOrderedByCreation(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	a := newTestVcon("first")
	a.CreatedAt = "2024-01-01T00:00:00Z"
	b := newTestVcon("second")
	b.CreatedAt = "2024-06-01T00:00:00Z"
	require.NoError(t, s.Save(ctx, b))
	require.NoError(t, s.Save(ctx, a))

	ids, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.Equal(t, a.UUID, ids[0])
	assert.Equal(t, b.UUID, ids[1])
}

func TestSearchSubject(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.Save(ctx, newTestVcon("Billing dispute")))
	require.NoError(t, s.Save(ctx, newTestVcon("Shipping delay")))

	hits, err := s.Search(ctx, "billing")
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Billing dispute", hits[0].Subject)

	none, err := s.Search(ctx, "no such subject")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	v := newTestVcon("to delete")
	require.NoError(t, s.Save(ctx, v))
	require.NoError(t, s.Delete(ctx, v.UUID))
	assert.ErrorIs(t, s.Delete(ctx, v.UUID), store.ErrNotFound)
}

func TestReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "vcons.db")

	s, err := Open(path)
	require.NoError(t, err)
	v := newTestVcon("persisted")
	require.NoError(t, s.Save(ctx, v))
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()
	out, err := s2.Get(ctx, v.UUID)
	require.NoError(t, err)
	assert.Equal(t, "persisted", out.Subject)
}
