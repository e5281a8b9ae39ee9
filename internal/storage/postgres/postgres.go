package postgres

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"studyPlanner/internal/config"
	"studyPlanner/internal/lib/lifecycle"
	"studyPlanner/internal/models"
	"studyPlanner/internal/storage"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/lib/pq"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type Storage struct {
	DB   *sql.DB
	opts storage.Options
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func InitDB(dbCfg *config.Database, opts ...storage.Option) (*Storage, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbCfg.Host,
		dbCfg.Port,
		dbCfg.User,
		dbCfg.Password,
		dbCfg.DBName,
		dbCfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to the database: %w", err)
	}

	s := New(db, opts...)

	if dbCfg.Migrations {
		if err = s.Migrate(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

func New(db *sql.DB, opts ...storage.Option) *Storage {
	return &Storage{DB: db, opts: storage.BuildOptions(opts...)}
}

// Migrate applies the embedded schema migrations.
func (s *Storage) Migrate() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	driver, err := migratepg.WithInstance(s.DB, &migratepg.Config{})
	if err != nil {
		return fmt.Errorf("failed to init migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}

	if err = m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}

func (s *Storage) now() int64 {
	return storage.Millis(s.opts.Now())
}

func (s *Storage) CreatePendingEvent(ctx context.Context, e models.PendingEvent) (int64, error) {
	const op = "storage.postgres.CreatePendingEvent"

	now := s.now()
	if err := lifecycle.ValidateNewPendingEvent(e, now); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO pending_events (group_id, title, description, event_creator_id,
			possible_start_time, possible_end_time, registration_deadline,
			participant_limit, state, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'OPEN', $9)
		RETURNING id`

	var id int64
	err = tx.QueryRowContext(ctx, query,
		e.GroupID,
		e.Title,
		e.Description,
		e.EventCreatorID,
		e.PossibleStartTime,
		e.PossibleEndTime,
		e.RegistrationDeadline,
		e.ParticipantLimit,
		now,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to create event: %w", op, err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO pending_participants (pending_event_id, user_id, joined_at) VALUES ($1, $2, $3)`,
		id, e.EventCreatorID, now)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to add creator: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

const pendingColumns = `id, group_id, title, description, event_creator_id,
	possible_start_time, possible_end_time, registration_deadline,
	participant_limit, state, finalized_event_id, created_at, vote_version`

type scanner interface {
	Scan(dest ...any) error
}

func scanPendingEvent(row scanner) (*models.PendingEvent, error) {
	var (
		e           models.PendingEvent
		limit       sql.NullInt64
		finalizedID sql.NullInt64
	)

	err := row.Scan(
		&e.ID,
		&e.GroupID,
		&e.Title,
		&e.Description,
		&e.EventCreatorID,
		&e.PossibleStartTime,
		&e.PossibleEndTime,
		&e.RegistrationDeadline,
		&limit,
		&e.State,
		&finalizedID,
		&e.CreatedAt,
		&e.VoteVersion,
	)
	if err != nil {
		return nil, err
	}

	if limit.Valid {
		l := int(limit.Int64)
		e.ParticipantLimit = &l
	}
	if finalizedID.Valid {
		e.FinalizedEventID = &finalizedID.Int64
	}

	return &e, nil
}

// lockPendingEvent loads the event row with FOR UPDATE so every call touching
// the same event is serialized until its transaction ends.
func lockPendingEvent(ctx context.Context, tx *sql.Tx, id int64) (*models.PendingEvent, error) {
	row := tx.QueryRowContext(ctx, `SELECT `+pendingColumns+` FROM pending_events WHERE id = $1 FOR UPDATE`, id)

	e, err := scanPendingEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	return e, nil
}

// withEvent runs fn inside a transaction holding the event's row lock. An
// open event past its deadline is finalized and committed first, whatever fn
// does afterwards. With requireOpen set a terminal event is rejected with
// ErrAlreadyFinalized.
func (s *Storage) withEvent(ctx context.Context, id int64, requireOpen bool, fn func(tx *sql.Tx, e *models.PendingEvent) error) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	e, err := lockPendingEvent(ctx, tx, id)
	if err != nil {
		return err
	}

	if lifecycle.Expired(*e, s.now()) {
		res, err := s.finalizeTx(ctx, tx, e)
		if err != nil {
			return err
		}
		if err = tx.Commit(); err != nil {
			return err
		}
		s.opts.Finalized(id, res, true)

		if requireOpen {
			return storage.ErrAlreadyFinalized
		}
		// the event is terminal now, so the retry cannot expire it again
		return s.withEvent(ctx, id, requireOpen, fn)
	}

	if requireOpen && e.State.Terminal() {
		return storage.ErrAlreadyFinalized
	}

	if err = fn(tx, e); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Storage) GetPendingEvent(ctx context.Context, id int64) (*models.PendingEventDetails, error) {
	const op = "storage.postgres.GetPendingEvent"

	var details *models.PendingEventDetails

	err := s.withEvent(ctx, id, false, func(tx *sql.Tx, e *models.PendingEvent) error {
		times, err := listTimeOptions(ctx, tx, id)
		if err != nil {
			return err
		}
		locations, err := listLocationOptions(ctx, tx, id)
		if err != nil {
			return err
		}
		participants, err := listMembers(ctx, tx,
			`SELECT pending_event_id, user_id, joined_at FROM pending_participants
			 WHERE pending_event_id = $1 ORDER BY joined_at, user_id`, id)
		if err != nil {
			return err
		}

		details = &models.PendingEventDetails{
			Event:           *e,
			TimeOptions:     times,
			LocationOptions: locations,
			Participants:    participants,
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return details, nil
}

func (s *Storage) ListPendingEvents(ctx context.Context, groupID int64) ([]models.PendingEvent, error) {
	const op = "storage.postgres.ListPendingEvents"

	// expired events of the group are finalized one by one before listing
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id FROM pending_events
		WHERE group_id = $1 AND state = 'OPEN' AND registration_deadline <= $2`,
		groupID, s.now())
	if err != nil {
		return nil, fmt.Errorf("%s: failed to find expired events: %w", op, err)
	}

	var expired []int64
	for rows.Next() {
		var id int64
		if err = rows.Scan(&id); err != nil {
			rows.Close()
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		expired = append(expired, id)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, id := range expired {
		err = s.withEvent(ctx, id, false, func(*sql.Tx, *models.PendingEvent) error { return nil })
		if err != nil && !errors.Is(err, storage.ErrEventNotFound) {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	rows, err = s.DB.QueryContext(ctx, `
		SELECT `+pendingColumns+` FROM pending_events
		WHERE group_id = $1
		ORDER BY possible_start_time, id`, groupID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get events: %w", op, err)
	}
	defer rows.Close()

	events := make([]models.PendingEvent, 0)
	for rows.Next() {
		e, err := scanPendingEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to scan event: %w", op, err)
		}
		events = append(events, *e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: error iterating events: %w", op, err)
	}

	return events, nil
}

func (s *Storage) DeletePendingEvent(ctx context.Context, id int64, userID string) error {
	const op = "storage.postgres.DeletePendingEvent"

	err := s.withEvent(ctx, id, true, func(tx *sql.Tx, e *models.PendingEvent) error {
		if e.EventCreatorID != userID {
			return storage.ErrForbidden
		}

		// options, votes, participants, bans and mutes cascade
		if _, err := tx.ExecContext(ctx, `DELETE FROM pending_events WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete event: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) Finalize(ctx context.Context, id int64, userID string) (*models.FinalizeResult, error) {
	const op = "storage.postgres.Finalize"

	var res *models.FinalizeResult

	err := s.withEvent(ctx, id, true, func(tx *sql.Tx, e *models.PendingEvent) error {
		if e.EventCreatorID != userID {
			return storage.ErrForbidden
		}

		var err error
		res, err = s.finalizeTx(ctx, tx, e)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.opts.Finalized(id, res, false)

	return res, nil
}

// finalizeTx converts a locked open event and updates e in place. The
// conditional OPEN -> FINALIZING update is the single point where concurrent
// finalizers are told apart.
func (s *Storage) finalizeTx(ctx context.Context, tx *sql.Tx, e *models.PendingEvent) (*models.FinalizeResult, error) {
	res, err := tx.ExecContext(ctx,
		`UPDATE pending_events SET state = 'FINALIZING' WHERE id = $1 AND state = 'OPEN'`, e.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to start finalization: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, storage.ErrAlreadyFinalized
	}

	times, err := listTimeOptions(ctx, tx, e.ID)
	if err != nil {
		return nil, err
	}
	locations, err := listLocationOptions(ctx, tx, e.ID)
	if err != nil {
		return nil, err
	}

	d := lifecycle.Decide(times, locations, s.opts.RequireVotes)
	if d.Outcome == models.OutcomeExpiredNoWinner {
		_, err = tx.ExecContext(ctx,
			`UPDATE pending_events SET state = 'EXPIRED_NO_WINNER' WHERE id = $1`, e.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to expire event: %w", err)
		}
		e.State = models.StateExpiredNoWinner
		return &models.FinalizeResult{Outcome: d.Outcome}, nil
	}

	now := s.now()
	fe := lifecycle.FinalizedFrom(*e, d, now)

	err = tx.QueryRowContext(ctx, `
		INSERT INTO finalized_events (event_creator_id, title, description, location,
			start_time, end_time, created_at, type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		fe.EventCreatorID, fe.Title, fe.Description, fe.Location,
		fe.StartTime, fe.EndTime, fe.CreatedAt, fe.Type,
	).Scan(&fe.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to create finalized event: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO finalized_participants (event_id, user_id, joined_at)
		SELECT $1, user_id, $2 FROM pending_participants WHERE pending_event_id = $3`,
		fe.ID, now, e.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate participants: %w", err)
	}

	cleanup := []string{
		`DELETE FROM time_options WHERE pending_event_id = $1`,
		`DELETE FROM location_options WHERE pending_event_id = $1`,
		`DELETE FROM pending_participants WHERE pending_event_id = $1`,
	}
	for _, q := range cleanup {
		if _, err = tx.ExecContext(ctx, q, e.ID); err != nil {
			return nil, fmt.Errorf("failed to archive event: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE pending_events SET state = 'FINALIZED', finalized_event_id = $2 WHERE id = $1`,
		e.ID, fe.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to mark event finalized: %w", err)
	}

	e.State = models.StateFinalized
	e.FinalizedEventID = &fe.ID

	return &models.FinalizeResult{Outcome: models.OutcomeFinalized, Event: &fe}, nil
}

func listMembers(ctx context.Context, q querier, query string, id int64) ([]models.Participant, error) {
	rows, err := q.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	out := make([]models.Participant, 0)
	for rows.Next() {
		var p models.Participant
		if err = rows.Scan(&p.EventID, &p.UserID, &p.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		out = append(out, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating participants: %w", err)
	}

	return out, nil
}

func listTimeOptions(ctx context.Context, q querier, eventID int64) ([]models.TimeOption, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT o.id, o.pending_event_id, o.start_time, o.end_time, o.created_by, o.created_at,
			COALESCE(array_agg(v.user_id ORDER BY v.user_id) FILTER (WHERE v.user_id IS NOT NULL), '{}')
		FROM time_options o
		LEFT JOIN time_votes v ON v.option_id = o.id
		WHERE o.pending_event_id = $1
		GROUP BY o.id
		ORDER BY o.created_at, o.id`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get time options: %w", err)
	}
	defer rows.Close()

	opts := make([]models.TimeOption, 0)
	for rows.Next() {
		var (
			o      models.TimeOption
			voters pq.StringArray
		)
		err = rows.Scan(&o.ID, &o.EventID, &o.StartTime, &o.EndTime, &o.CreatedBy, &o.CreatedAt, &voters)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time option: %w", err)
		}
		o.Voters = []string(voters)
		o.Votes = len(voters)
		opts = append(opts, o)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating time options: %w", err)
	}

	return opts, nil
}

func listLocationOptions(ctx context.Context, q querier, eventID int64) ([]models.LocationOption, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT o.id, o.pending_event_id, o.location, o.created_by, o.created_at,
			COALESCE(array_agg(v.user_id ORDER BY v.user_id) FILTER (WHERE v.user_id IS NOT NULL), '{}')
		FROM location_options o
		LEFT JOIN location_votes v ON v.option_id = o.id
		WHERE o.pending_event_id = $1
		GROUP BY o.id
		ORDER BY o.created_at, o.id`, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to get location options: %w", err)
	}
	defer rows.Close()

	opts := make([]models.LocationOption, 0)
	for rows.Next() {
		var (
			o      models.LocationOption
			voters pq.StringArray
		)
		err = rows.Scan(&o.ID, &o.EventID, &o.Location, &o.CreatedBy, &o.CreatedAt, &voters)
		if err != nil {
			return nil, fmt.Errorf("failed to scan location option: %w", err)
		}
		o.Voters = []string(voters)
		o.Votes = len(voters)
		opts = append(opts, o)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating location options: %w", err)
	}

	return opts, nil
}
