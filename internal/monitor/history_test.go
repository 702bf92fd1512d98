package monitor

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHistoryDB(t *testing.T) *HistoryDB {
	t.Helper()
	db, err := NewHistoryDB(filepath.Join(t.TempDir(), "history.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestHistoryDBRecordAndRead(t *testing.T) {
	db := newTestHistoryDB(t)

	start := time.Date(2025, 10, 7, 14, 0, 0, 0, time.UTC)
	require.NoError(t, db.RecordCycle(CycleRecord{
		CycleStart: start,
		CycleEnd:   start.Add(3 * time.Second),
		Status:     CycleStatusStarted,
		TotalUnits: 5,
		Notified:   true,
	}))
	require.NoError(t, db.RecordCycle(CycleRecord{
		CycleStart: start.Add(20 * time.Second),
		CycleEnd:   start.Add(22 * time.Second),
		Status:     CycleStatusOK,
		TotalUnits: 6,
		AddedUnits: 1,
		Notified:   true,
	}))
	require.NoError(t, db.RecordCycle(CycleRecord{
		CycleStart:   start.Add(40 * time.Second),
		CycleEnd:     start.Add(55 * time.Second),
		Status:       CycleStatusScrapeFailed,
		ErrorSummary: "timeout waiting for unit cards",
	}))

	records, err := db.RecentCycles(10)
	require.NoError(t, err)
	require.Len(t, records, 3)

	// Newest first.
	assert.Equal(t, CycleStatusScrapeFailed, records[0].Status)
	assert.Equal(t, "timeout waiting for unit cards", records[0].ErrorSummary)
	assert.False(t, records[0].Notified)

	assert.Equal(t, CycleStatusOK, records[1].Status)
	assert.Equal(t, 6, records[1].TotalUnits)
	assert.Equal(t, 1, records[1].AddedUnits)
	assert.True(t, records[1].Notified)

	assert.Equal(t, CycleStatusStarted, records[2].Status)
	assert.True(t, records[2].CycleStart.Equal(start))
}

func TestHistoryDBRecentCyclesLimit(t *testing.T) {
	db := newTestHistoryDB(t)

	now := time.Now().UTC()
	for i := 0; i < 5; i++ {
		require.NoError(t, db.RecordCycle(CycleRecord{
			CycleStart: now, CycleEnd: now, Status: CycleStatusOK,
		}))
	}

	records, err := db.RecentCycles(2)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestHistoryDBNilReceiverIsSafe(t *testing.T) {
	var db *HistoryDB

	assert.NoError(t, db.RecordCycle(CycleRecord{Status: CycleStatusOK}))
	assert.NoError(t, db.Close())

	records, err := db.RecentCycles(10)
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestHistoryDBSchemaIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	db1, err := NewHistoryDB(path, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, db1.RecordCycle(CycleRecord{
		CycleStart: time.Now(), CycleEnd: time.Now(), Status: CycleStatusStarted,
	}))
	require.NoError(t, db1.Close())

	// Reopening must keep the existing rows.
	db2, err := NewHistoryDB(path, zerolog.Nop())
	require.NoError(t, err)
	defer db2.Close()

	records, err := db2.RecentCycles(10)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}
