// Package services implements the operations the HTTP layer calls, on top
// of the entry repository.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/toomanytabs/internal/common"
	"github.com/dmitrijs2005/toomanytabs/internal/server/models"
	"github.com/dmitrijs2005/toomanytabs/internal/server/repositories/entries"
)

// EntryService turns repository results into the common error kinds.
type EntryService struct {
	repo entries.Repository
}

func NewEntryService(repo entries.Repository) *EntryService {
	return &EntryService{repo: repo}
}

// List returns every entry, newest first.
func (s *EntryService) List(ctx context.Context) ([]models.DbEntry, error) {
	return s.repo.List(ctx)
}

// Get returns entry id or common.ErrNotFound.
func (s *EntryService) Get(ctx context.Context, id int64) (models.DbEntry, error) {
	e, found, err := s.repo.Get(ctx, id)
	if err != nil {
		return models.DbEntry{}, err
	}
	if !found {
		return models.DbEntry{}, fmt.Errorf("entry %d: %w", id, common.ErrNotFound)
	}
	return e, nil
}

// Create stores e and returns its id.
func (s *EntryService) Create(ctx context.Context, e models.Entry) (int64, error) {
	return s.repo.Create(ctx, e)
}

// Update replaces the fields of entry id.
func (s *EntryService) Update(ctx context.Context, id int64, e models.Entry) error {
	n, err := s.repo.Update(ctx, id, e)
	if err != nil {
		return err
	}
	return checkAffected(id, n)
}

// Delete removes entry id.
func (s *EntryService) Delete(ctx context.Context, id int64) error {
	n, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	return checkAffected(id, n)
}

func checkAffected(id, n int64) error {
	switch n {
	case 1:
		return nil
	case 0:
		return fmt.Errorf("entry %d: %w", id, common.ErrNotFound)
	default:
		return fmt.Errorf("entry %d: %d rows affected: %w", id, n, common.ErrInvariant)
	}
}
