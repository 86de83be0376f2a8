package models

import (
	"encoding/json"

	"github.com/jinzhu/gorm"
)

// RosterSnapshot is the persisted form of one uploaded roster, scoped to a
// single calendar month. Staff and schedules are serialized into text
// columns; the decoded slices are transient and rebuilt on load.
type RosterSnapshot struct {
	gorm.Model
	SnapshotID    string `gorm:"column:snapshot_id;unique_index"`
	Month         string `gorm:"index"`
	Format        string
	TotalRecords  int
	UniqueStaff   int
	StaffJSON     string `gorm:"type:text"`
	SchedulesJSON string `gorm:"type:text"`
	RawJSON       string `gorm:"type:text"`
	// Transient fields (ignored by GORM)
	Staff     []Employee       `gorm:"-" json:"staff"`
	Schedules []ScheduleRecord `gorm:"-" json:"schedules"`
}

// SetStaff serializes the employee roster into the stored column.
func (s *RosterSnapshot) SetStaff(staff []Employee) error {
	data, err := json.Marshal(staff)
	if err != nil {
		return err
	}
	s.StaffJSON = string(data)
	s.Staff = staff
	return nil
}

// GetStaff decodes the stored employee roster.
func (s *RosterSnapshot) GetStaff() ([]Employee, error) {
	if s.StaffJSON == "" {
		return nil, nil
	}
	var staff []Employee
	if err := json.Unmarshal([]byte(s.StaffJSON), &staff); err != nil {
		return nil, err
	}
	s.Staff = staff
	return staff, nil
}

// SetSchedules serializes the schedule records into the stored column.
func (s *RosterSnapshot) SetSchedules(records []ScheduleRecord) error {
	data, err := json.Marshal(records)
	if err != nil {
		return err
	}
	s.SchedulesJSON = string(data)
	s.Schedules = records
	return nil
}

// GetSchedules decodes the stored schedule records.
func (s *RosterSnapshot) GetSchedules() ([]ScheduleRecord, error) {
	if s.SchedulesJSON == "" {
		return nil, nil
	}
	var records []ScheduleRecord
	if err := json.Unmarshal([]byte(s.SchedulesJSON), &records); err != nil {
		return nil, err
	}
	s.Schedules = records
	return records, nil
}
