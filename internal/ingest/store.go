package ingest

import (
	"context"
	"fmt"

	"github.com/angelmondragon/sportomic-backend/internal/repo"
	"github.com/angelmondragon/sportomic-backend/pkg/db"
	"github.com/angelmondragon/sportomic-backend/pkg/db/models"
	"github.com/angelmondragon/sportomic-backend/pkg/enums"
	"gorm.io/gorm/clause"
)

// lookupChunk keeps IN lists under SQLite's bound-variable limit.
const lookupChunk = 500

// Store is the batch-write primitive the engine drives.
type Store interface {
	ExistingIDs(ctx context.Context, dataset enums.Dataset, ids []string) (map[string]struct{}, error)
	// Upsert replaces the whole row keyed by its id, inserting it when absent.
	Upsert(ctx context.Context, row any) error
	Insert(ctx context.Context, row any) error
}

type gormStore struct {
	repo.Base
}

// NewStore builds the GORM-backed Store.
func NewStore(conn db.Conn) Store {
	return &gormStore{Base: repo.NewBase(conn)}
}

func (s *gormStore) ExistingIDs(ctx context.Context, dataset enums.Dataset, ids []string) (map[string]struct{}, error) {
	found := make(map[string]struct{}, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	model, err := modelFor(dataset)
	if err != nil {
		return nil, err
	}
	conn, err := s.DB(ctx)
	if err != nil {
		return nil, err
	}

	for start := 0; start < len(ids); start += lookupChunk {
		end := min(start+lookupChunk, len(ids))
		var chunk []string
		if err := conn.Model(model).Where("id IN ?", ids[start:end]).Pluck("id", &chunk).Error; err != nil {
			return nil, fmt.Errorf("looking up %s ids: %w", dataset, err)
		}
		for _, id := range chunk {
			found[id] = struct{}{}
		}
	}
	return found, nil
}

func (s *gormStore) Upsert(ctx context.Context, row any) error {
	conn, err := s.DB(ctx)
	if err != nil {
		return err
	}
	return conn.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(row).Error
}

func (s *gormStore) Insert(ctx context.Context, row any) error {
	conn, err := s.DB(ctx)
	if err != nil {
		return err
	}
	return conn.Create(row).Error
}

func modelFor(dataset enums.Dataset) (any, error) {
	switch dataset {
	case enums.DatasetVenues:
		return &models.Venue{}, nil
	case enums.DatasetMembers:
		return &models.Member{}, nil
	case enums.DatasetBookings:
		return &models.Booking{}, nil
	case enums.DatasetTransactions:
		return &models.Transaction{}, nil
	}
	return nil, fmt.Errorf("unknown dataset %q", dataset)
}
