package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/toomanytabs/internal/common"
	"github.com/dmitrijs2005/toomanytabs/internal/server/models"
	"github.com/dmitrijs2005/toomanytabs/internal/server/repositories/entries"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------- test fakes --------

type fakeEntriesRepo struct {
	entries.Repository

	list    []models.DbEntry
	getHit  models.DbEntry
	found   bool
	newID   int64
	touched int64
	err     error

	gotID    int64
	gotEntry models.Entry
}

func (f *fakeEntriesRepo) List(ctx context.Context) ([]models.DbEntry, error) {
	return f.list, f.err
}

func (f *fakeEntriesRepo) Get(ctx context.Context, id int64) (models.DbEntry, bool, error) {
	f.gotID = id
	return f.getHit, f.found, f.err
}

func (f *fakeEntriesRepo) Create(ctx context.Context, e models.Entry) (int64, error) {
	f.gotEntry = e
	return f.newID, f.err
}

func (f *fakeEntriesRepo) Update(ctx context.Context, id int64, e models.Entry) (int64, error) {
	f.gotID, f.gotEntry = id, e
	return f.touched, f.err
}

func (f *fakeEntriesRepo) Delete(ctx context.Context, id int64) (int64, error) {
	f.gotID = id
	return f.touched, f.err
}

// -------- tests --------

func TestEntryService_List(t *testing.T) {
	want := []models.DbEntry{{ID: 2}, {ID: 1}}
	s := NewEntryService(&fakeEntriesRepo{list: want})

	got, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestEntryService_Get(t *testing.T) {
	ctx := context.Background()
	hit := models.DbEntry{ID: 3, Title: "t", CreatedAt: time.Unix(0, 0).UTC()}

	t.Run("found", func(t *testing.T) {
		repo := &fakeEntriesRepo{getHit: hit, found: true}
		got, err := NewEntryService(repo).Get(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, hit, got)
		assert.Equal(t, int64(3), repo.gotID)
	})

	t.Run("absent", func(t *testing.T) {
		_, err := NewEntryService(&fakeEntriesRepo{}).Get(ctx, 3)
		require.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("repo error passes through", func(t *testing.T) {
		_, err := NewEntryService(&fakeEntriesRepo{err: common.ErrDecode}).Get(ctx, 3)
		require.ErrorIs(t, err, common.ErrDecode)
		assert.NotErrorIs(t, err, common.ErrNotFound)
	})
}

func TestEntryService_Create(t *testing.T) {
	repo := &fakeEntriesRepo{newID: 11}
	in := models.Entry{URL: "u", Title: "t", Notes: "n"}

	id, err := NewEntryService(repo).Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	assert.Equal(t, in, repo.gotEntry)
}

func TestEntryService_AffectedCounts(t *testing.T) {
	tests := []struct {
		name    string
		touched int64
		repoErr error
		wantErr error
	}{
		{name: "one row", touched: 1},
		{name: "no rows", touched: 0, wantErr: common.ErrNotFound},
		{name: "many rows", touched: 2, wantErr: common.ErrInvariant},
		{name: "repo error", repoErr: common.ErrInvalidInput, wantErr: common.ErrInvalidInput},
	}

	ops := map[string]func(s *EntryService) error{
		"update": func(s *EntryService) error {
			return s.Update(context.Background(), 5, models.Entry{Title: "x"})
		},
		"delete": func(s *EntryService) error {
			return s.Delete(context.Background(), 5)
		},
	}

	for opName, op := range ops {
		for _, tt := range tests {
			t.Run(opName+"/"+tt.name, func(t *testing.T) {
				repo := &fakeEntriesRepo{touched: tt.touched, err: tt.repoErr}
				err := op(NewEntryService(repo))
				assert.Equal(t, int64(5), repo.gotID)
				if tt.wantErr == nil {
					require.NoError(t, err)
					return
				}
				require.ErrorIs(t, err, tt.wantErr)
			})
		}
	}
}

func TestCheckAffected_Message(t *testing.T) {
	err := checkAffected(9, 3)
	require.True(t, errors.Is(err, common.ErrInvariant))
	assert.Contains(t, err.Error(), "3 rows affected")
}
