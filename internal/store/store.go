// Package store persists roster snapshots. One snapshot covers exactly
// one calendar month; uploading a new roster for a month replaces any
// stored snapshot for that month rather than merging with it.
package store

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	"go.uber.org/zap"

	"brigade/internal/models"
)

// Store wraps the snapshot table.
type Store struct {
	db  *gorm.DB
	log *zap.Logger
}

// New creates a snapshot store.
func New(db *gorm.DB, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{db: db, log: log}
}

// Save replaces the stored snapshot for the result's month. Prior
// snapshots with the same month label are deleted first so the roster
// model always represents a single upload.
func (s *Store) Save(month string, result models.ParseResult, rawRows [][]string) (*models.RosterSnapshot, error) {
	snap := &models.RosterSnapshot{
		SnapshotID:   uuid.NewString(),
		Month:        month,
		Format:       result.Metadata.Format,
		TotalRecords: result.Metadata.TotalRecords,
		UniqueStaff:  result.Metadata.UniqueStaff,
	}
	if err := snap.SetStaff(result.Staff); err != nil {
		return nil, fmt.Errorf("failed to serialize staff: %w", err)
	}
	if err := snap.SetSchedules(result.Schedules); err != nil {
		return nil, fmt.Errorf("failed to serialize schedules: %w", err)
	}
	if rawRows != nil {
		raw, err := json.Marshal(rawRows)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize raw rows: %w", err)
		}
		snap.RawJSON = string(raw)
	}

	tx := s.db.Begin()
	if err := tx.Error; err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := tx.Where("month = ?", month).Delete(&models.RosterSnapshot{}).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to replace prior snapshot: %w", err)
	}
	if err := tx.Create(snap).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to store snapshot: %w", err)
	}
	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("failed to commit snapshot: %w", err)
	}

	s.log.Info("roster snapshot stored",
		zap.String("snapshot_id", snap.SnapshotID),
		zap.String("month", month),
		zap.Int("staff", snap.UniqueStaff),
		zap.Int("records", snap.TotalRecords))
	return snap, nil
}

// LoadLatest returns the most recently stored snapshot with its staff
// and schedules decoded. A missing snapshot is reported as (nil, nil):
// callers treat it as "no data", not as a failure.
func (s *Store) LoadLatest() (*models.RosterSnapshot, error) {
	var snap models.RosterSnapshot
	err := s.db.Order("created_at desc").First(&snap).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	if _, err := snap.GetStaff(); err != nil {
		return nil, fmt.Errorf("failed to decode staff: %w", err)
	}
	if _, err := snap.GetSchedules(); err != nil {
		return nil, fmt.Errorf("failed to decode schedules: %w", err)
	}
	return &snap, nil
}

// LoadMonth returns the snapshot stored for one month label, nil when
// none exists.
func (s *Store) LoadMonth(month string) (*models.RosterSnapshot, error) {
	var snap models.RosterSnapshot
	err := s.db.Where("month = ?", month).Order("created_at desc").First(&snap).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot: %w", err)
	}
	if _, err := snap.GetStaff(); err != nil {
		return nil, fmt.Errorf("failed to decode staff: %w", err)
	}
	if _, err := snap.GetSchedules(); err != nil {
		return nil, fmt.Errorf("failed to decode schedules: %w", err)
	}
	return &snap, nil
}
