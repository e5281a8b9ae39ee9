package postgres

import (
	"database/sql"
	"io/fs"
	"testing"

	"studyPlanner/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rowStub copies fixed values into Scan destinations.
type rowStub []any

func (r rowStub) Scan(dest ...any) error {
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r[i].(int64)
		case *string:
			*p = r[i].(string)
		case *models.EventState:
			*p = models.EventState(r[i].(string))
		case *models.EventType:
			*p = models.EventType(r[i].(string))
		case *sql.NullInt64:
			if r[i] != nil {
				*p = sql.NullInt64{Int64: r[i].(int64), Valid: true}
			}
		case *sql.NullString:
			if r[i] != nil {
				*p = sql.NullString{String: r[i].(string), Valid: true}
			}
		}
	}
	return nil
}

func TestScanPendingEvent(t *testing.T) {
	t.Parallel()

	e, err := scanPendingEvent(rowStub{
		int64(1), int64(7), "Study", "desc", "alice",
		int64(100), int64(200), int64(50),
		int64(4), "OPEN", nil, int64(10), int64(3),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), e.ID)
	assert.Equal(t, models.StateOpen, e.State)
	require.NotNil(t, e.ParticipantLimit)
	assert.Equal(t, 4, *e.ParticipantLimit)
	assert.Nil(t, e.FinalizedEventID)
	assert.Equal(t, int64(3), e.VoteVersion)

	e, err = scanPendingEvent(rowStub{
		int64(2), int64(7), "Study", "", "alice",
		int64(100), int64(200), int64(50),
		nil, "FINALIZED", int64(9), int64(10), int64(0),
	})
	require.NoError(t, err)

	assert.Nil(t, e.ParticipantLimit)
	require.NotNil(t, e.FinalizedEventID)
	assert.Equal(t, int64(9), *e.FinalizedEventID)
}

func TestScanFinalizedEvent(t *testing.T) {
	t.Parallel()

	e, err := scanFinalizedEvent(rowStub{
		int64(3), "alice", "Study", "", nil, int64(100), int64(200), int64(1), "custom",
	})
	require.NoError(t, err)
	assert.Nil(t, e.Location)
	assert.Equal(t, models.EventTypeCustom, e.Type)

	e, err = scanFinalizedEvent(rowStub{
		int64(3), "alice", "Study", "", "Library", int64(100), int64(200), int64(1), "class",
	})
	require.NoError(t, err)
	require.NotNil(t, e.Location)
	assert.Equal(t, "Library", *e.Location)
}

func TestMigrationsEmbedded(t *testing.T) {
	t.Parallel()

	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	assert.Contains(t, files, "migrations/000001_init.up.sql")
	assert.Contains(t, files, "migrations/000001_init.down.sql")
	assert.Contains(t, files, "migrations/000002_vote_version.up.sql")
}

func TestTableMaps(t *testing.T) {
	t.Parallel()

	for _, kind := range []models.OptionKind{models.OptionTime, models.OptionLocation} {
		assert.NotEmpty(t, optionTables[kind].options)
		assert.NotEmpty(t, optionTables[kind].votes)
	}
	for _, scope := range []models.Scope{models.ScopePending, models.ScopeFinalized} {
		assert.NotEmpty(t, moderationTables[scope].bans)
		assert.NotEmpty(t, moderationTables[scope].mutes)
	}
}
