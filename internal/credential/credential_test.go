package credential

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/opsdash/internal/store"
	"github.com/roach88/opsdash/internal/testutil"
)

func openMemory(t *testing.T) (*Store, *testutil.MemoryBackend) {
	t.Helper()
	b := testutil.NewMemoryBackend()
	s, err := Open(context.Background(), b)
	require.NoError(t, err)
	return s, b
}

func TestOpen_MissingRecordIsEmpty(t *testing.T) {
	s, _ := openMemory(t)
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Exists("a@x.com"))
}

func TestOpen_LoadsExistingList(t *testing.T) {
	b := testutil.NewMemoryBackend()
	b.Set(DefaultKey, []byte(`[{"name":"A","email":"a@x.com","password":"pw1"}]`))

	s, err := Open(context.Background(), b)
	require.NoError(t, err)
	assert.True(t, s.Exists("a@x.com"))

	rec, ok := s.Find("a@x.com", "pw1")
	require.True(t, ok)
	assert.Equal(t, "A", rec.Name)
}

func TestOpen_CorruptRecord(t *testing.T) {
	b := testutil.NewMemoryBackend()
	b.Set(DefaultKey, []byte(`{not json`))

	_, err := Open(context.Background(), b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode credentials")
}

func TestOpen_CustomKey(t *testing.T) {
	b := testutil.NewMemoryBackend()
	b.Set("other", []byte(`[{"name":"B","email":"b@x.com","password":"p"}]`))

	s, err := Open(context.Background(), b, WithKey("other"))
	require.NoError(t, err)
	assert.True(t, s.Exists("b@x.com"))
}

func TestInsert_PersistsFullList(t *testing.T) {
	s, b := openMemory(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, Record{Name: "A", Email: "a@x.com", Password: "pw1"}))
	require.NoError(t, s.Insert(ctx, Record{Name: "B", Email: "b@x.com", Password: "pw2"}))

	raw, ok, err := b.Get(ctx, DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `[
		{"name":"A","email":"a@x.com","password":"pw1"},
		{"name":"B","email":"b@x.com","password":"pw2"}
	]`, string(raw))
	assert.Equal(t, 2, b.Puts())
}

func TestInsert_DuplicateEmail(t *testing.T) {
	s, b := openMemory(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, Record{Name: "A", Email: "a@x.com", Password: "pw1"}))
	err := s.Insert(ctx, Record{Name: "A2", Email: "a@x.com", Password: "pw2"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAlreadyExists))

	// Failed inserts do not write.
	assert.Equal(t, 1, b.Puts())
	assert.Equal(t, 1, s.Len())

	_, ok := s.Find("a@x.com", "pw2")
	assert.False(t, ok)
}

func TestInsert_WriteFailureIsNotApplied(t *testing.T) {
	b := testutil.NewFailingBackend()
	s, err := Open(context.Background(), b)
	require.NoError(t, err)

	err = s.Insert(context.Background(), Record{Name: "A", Email: "a@x.com", Password: "pw1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, testutil.ErrInjected))
	assert.False(t, s.Exists("a@x.com"))

	// Once writes recover the same email can register.
	b.SetFail(false)
	require.NoError(t, s.Insert(context.Background(), Record{Name: "A", Email: "a@x.com", Password: "pw1"}))
	assert.True(t, s.Exists("a@x.com"))
}

func TestFind_ExactMatchOnly(t *testing.T) {
	s, _ := openMemory(t)
	require.NoError(t, s.Insert(context.Background(), Record{Name: "A", Email: "a@x.com", Password: "pw1"}))

	tests := []struct {
		name     string
		email    string
		password string
		found    bool
	}{
		{"exact", "a@x.com", "pw1", true},
		{"wrong password", "a@x.com", "wrong", false},
		{"email case differs", "A@x.com", "pw1", false},
		{"password case differs", "a@x.com", "PW1", false},
		{"unknown email", "z@x.com", "pw1", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := s.Find(tt.email, tt.password)
			assert.Equal(t, tt.found, ok)
		})
	}
}

func TestSQLiteBackend_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds.db")
	ctx := context.Background()

	st, err := store.Open(path)
	require.NoError(t, err)
	s, err := Open(ctx, st)
	require.NoError(t, err)
	require.NoError(t, s.Insert(ctx, Record{Name: "A", Email: "a@x.com", Password: "pw1"}))
	require.NoError(t, st.Close())

	st2, err := store.Open(path)
	require.NoError(t, err)
	defer st2.Close()
	s2, err := Open(ctx, st2)
	require.NoError(t, err)

	rec, ok := s2.Find("a@x.com", "pw1")
	require.True(t, ok)
	assert.Equal(t, "A", rec.Name)

	rev, err := st2.Revision(ctx, DefaultKey)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rev)
}
