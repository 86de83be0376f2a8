package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brigade/internal/database"
	"brigade/internal/models"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open("sqlite3", filepath.Join(t.TempDir(), "roster.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return New(db, nil)
}

func sampleResult() models.ParseResult {
	records := []models.ScheduleRecord{
		{EmployeeName: "Ana Ruiz", Weekday: "Monday", ShiftText: "OFF", DerivedStatus: models.StatusOff, Role: "Commi 1", Department: models.DeptHotKitchen},
		{EmployeeName: "Ana Ruiz", Weekday: "Tuesday", ShiftText: "8AM-6PM", DerivedStatus: models.StatusScheduled, Role: "Commi 1", Department: models.DeptHotKitchen},
	}
	return models.ParseResult{
		Success: true,
		Staff: []models.Employee{
			{Name: "Ana Ruiz", Role: "Commi 1", Department: models.DeptHotKitchen, Schedule: records},
		},
		Schedules: records,
		Metadata: models.ParseMetadata{
			TotalRecords: 2,
			UniqueStaff:  1,
			Format:       "week-columns",
		},
	}
}

func TestSaveAndLoadLatest(t *testing.T) {
	s := testStore(t)

	saved, err := s.Save("2025-06", sampleResult(), [][]string{{"NAME", "MON"}, {"Ana Ruiz", "OFF"}})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.SnapshotID)
	assert.Equal(t, "2025-06", saved.Month)

	snap, err := s.LoadLatest()
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, saved.SnapshotID, snap.SnapshotID)
	assert.Equal(t, "week-columns", snap.Format)
	assert.Equal(t, 2, snap.TotalRecords)
	assert.Equal(t, 1, snap.UniqueStaff)
	assert.NotEmpty(t, snap.RawJSON)

	staff, err := snap.GetStaff()
	require.NoError(t, err)
	require.Len(t, staff, 1)
	assert.Equal(t, "Ana Ruiz", staff[0].Name)
	assert.Len(t, staff[0].Schedule, 2)

	schedules, err := snap.GetSchedules()
	require.NoError(t, err)
	require.Len(t, schedules, 2)
	assert.Equal(t, "OFF", schedules[0].ShiftText)
}

func TestSaveReplacesSameMonth(t *testing.T) {
	s := testStore(t)

	first, err := s.Save("2025-06", sampleResult(), nil)
	require.NoError(t, err)

	second := sampleResult()
	second.Metadata.TotalRecords = 5
	replaced, err := s.Save("2025-06", second, nil)
	require.NoError(t, err)
	assert.NotEqual(t, first.SnapshotID, replaced.SnapshotID)

	snap, err := s.LoadMonth("2025-06")
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, replaced.SnapshotID, snap.SnapshotID)
	assert.Equal(t, 5, snap.TotalRecords)

	var count int
	require.NoError(t, s.db.Model(&models.RosterSnapshot{}).Where("month = ?", "2025-06").Count(&count).Error)
	assert.Equal(t, 1, count)
}

func TestMonthsAreIndependent(t *testing.T) {
	s := testStore(t)

	_, err := s.Save("2025-05", sampleResult(), nil)
	require.NoError(t, err)
	_, err = s.Save("2025-06", sampleResult(), nil)
	require.NoError(t, err)

	may, err := s.LoadMonth("2025-05")
	require.NoError(t, err)
	require.NotNil(t, may)
	assert.Equal(t, "2025-05", may.Month)

	june, err := s.LoadMonth("2025-06")
	require.NoError(t, err)
	require.NotNil(t, june)
	assert.NotEqual(t, may.SnapshotID, june.SnapshotID)
}

func TestLoadMissingIsNotAnError(t *testing.T) {
	s := testStore(t)

	snap, err := s.LoadLatest()
	assert.NoError(t, err)
	assert.Nil(t, snap)

	snap, err = s.LoadMonth("2030-01")
	assert.NoError(t, err)
	assert.Nil(t, snap)
}
