package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stitts-dev/catdraft/internal/draft"
	"github.com/stitts-dev/catdraft/pkg/utils"
)

// DraftState is one persisted draft board per season
type DraftState struct {
	Season    int            `gorm:"primaryKey;autoIncrement:false" json:"season"`
	State     datatypes.JSON `gorm:"not null" json:"state"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (DraftState) TableName() string {
	return "draft_state"
}

// DraftStateStore persists live draft snapshots. Get returns utils.ErrNotFound
// for a season that was never saved.
type DraftStateStore interface {
	Get(ctx context.Context, season int) (*draft.Snapshot, error)
	Save(ctx context.Context, season int, snap *draft.Snapshot) error
}

type GormDraftStateStore struct {
	db *gorm.DB
}

func NewGormDraftStateStore(db *gorm.DB) *GormDraftStateStore {
	return &GormDraftStateStore{db: db}
}

func (s *GormDraftStateStore) Get(ctx context.Context, season int) (*draft.Snapshot, error) {
	var row DraftState
	err := s.db.WithContext(ctx).
		Where("season = ?", season).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("draft state for season %d: %w", season, utils.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load draft state: %w", err)
	}

	var snap draft.Snapshot
	if err := json.Unmarshal(row.State, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode draft state for season %d: %w", season, err)
	}
	return &snap, nil
}

// Save upserts the season's snapshot
func (s *GormDraftStateStore) Save(ctx context.Context, season int, snap *draft.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode draft state: %w", err)
	}

	row := DraftState{Season: season, State: datatypes.JSON(data), UpdatedAt: time.Now().UTC()}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "season"}},
			DoUpdates: clause.AssignmentColumns([]string{"state", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save draft state: %w", err)
	}
	return nil
}

// MemoryDraftStateStore keeps snapshots as encoded JSON so callers never share
// slices with the store
type MemoryDraftStateStore struct {
	mu     sync.RWMutex
	states map[int][]byte
}

func NewMemoryDraftStateStore() *MemoryDraftStateStore {
	return &MemoryDraftStateStore{states: make(map[int][]byte)}
}

func (s *MemoryDraftStateStore) Get(ctx context.Context, season int) (*draft.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	data, ok := s.states[season]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("draft state for season %d: %w", season, utils.ErrNotFound)
	}

	var snap draft.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *MemoryDraftStateStore) Save(ctx context.Context, season int, snap *draft.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to encode draft state: %w", err)
	}
	s.mu.Lock()
	s.states[season] = data
	s.mu.Unlock()
	return nil
}
