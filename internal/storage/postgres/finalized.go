package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"studyPlanner/internal/lib/lifecycle"
	"studyPlanner/internal/models"
	"studyPlanner/internal/storage"

	"github.com/lib/pq"
)

const finalizedColumns = `e.id, e.event_creator_id, e.title, e.description, e.location,
	e.start_time, e.end_time, e.created_at, e.type`

func scanFinalizedEvent(row scanner) (*models.FinalizedEvent, error) {
	var (
		e        models.FinalizedEvent
		location sql.NullString
	)

	err := row.Scan(
		&e.ID,
		&e.EventCreatorID,
		&e.Title,
		&e.Description,
		&location,
		&e.StartTime,
		&e.EndTime,
		&e.CreatedAt,
		&e.Type,
	)
	if err != nil {
		return nil, err
	}

	if location.Valid {
		e.Location = &location.String
	}

	return &e, nil
}

func (s *Storage) CreateFinalizedEvent(ctx context.Context, e models.FinalizedEvent) (int64, error) {
	const op = "storage.postgres.CreateFinalizedEvent"

	if err := lifecycle.ValidateFinalizedEvent(e); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to begin transaction: %w", op, err)
	}
	defer tx.Rollback()

	now := s.now()

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO finalized_events (event_creator_id, title, description, location,
			start_time, end_time, created_at, type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		e.EventCreatorID, e.Title, e.Description, e.Location,
		e.StartTime, e.EndTime, now, e.Type,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to create event: %w", op, err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO finalized_participants (event_id, user_id, joined_at) VALUES ($1, $2, $3)`,
		id, e.EventCreatorID, now)
	if err != nil {
		return 0, fmt.Errorf("%s: failed to add creator: %w", op, err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) GetFinalizedEvent(ctx context.Context, id int64) (*models.FinalizedEventDetails, error) {
	const op = "storage.postgres.GetFinalizedEvent"

	row := s.DB.QueryRowContext(ctx, `SELECT `+finalizedColumns+` FROM finalized_events e WHERE e.id = $1`, id)

	e, err := scanFinalizedEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrEventNotFound)
		}
		return nil, fmt.Errorf("%s: failed to get event: %w", op, err)
	}

	participants, err := listMembers(ctx, s.DB,
		`SELECT event_id, user_id, joined_at FROM finalized_participants
		 WHERE event_id = $1 ORDER BY joined_at, user_id`, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.FinalizedEventDetails{Event: *e, Participants: participants}, nil
}

func (s *Storage) ListUserEvents(ctx context.Context, userID string) ([]models.FinalizedEvent, error) {
	const op = "storage.postgres.ListUserEvents"

	rows, err := s.DB.QueryContext(ctx, `
		SELECT `+finalizedColumns+`
		FROM finalized_events e
		JOIN finalized_participants p ON p.event_id = e.id
		WHERE p.user_id = $1
		ORDER BY e.start_time, e.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get events: %w", op, err)
	}
	defer rows.Close()

	events := make([]models.FinalizedEvent, 0)
	for rows.Next() {
		e, err := scanFinalizedEvent(rows)
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

func (s *Storage) JoinFinalized(ctx context.Context, id int64, userID string) error {
	const op = "storage.postgres.JoinFinalized"

	err := s.withFinalized(ctx, id, func(tx *sql.Tx, _ string) error {
		banned, err := isBanned(ctx, tx, models.ScopeFinalized, id, userID)
		if err != nil {
			return err
		}
		if banned {
			return storage.ErrBanned
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO finalized_participants (event_id, user_id, joined_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (event_id, user_id) DO NOTHING`, id, userID, s.now())
		if err != nil {
			return fmt.Errorf("failed to join: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) LeaveFinalized(ctx context.Context, id int64, userID string) error {
	const op = "storage.postgres.LeaveFinalized"

	err := s.withFinalized(ctx, id, func(tx *sql.Tx, _ string) error {
		_, err := tx.ExecContext(ctx,
			`DELETE FROM finalized_participants WHERE event_id = $1 AND user_id = $2`, id, userID)
		if err != nil {
			return fmt.Errorf("failed to leave: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) BusyIntervals(ctx context.Context, userIDs []string, window models.Interval) ([]models.Interval, error) {
	const op = "storage.postgres.BusyIntervals"

	rows, err := s.DB.QueryContext(ctx, `
		SELECT DISTINCT e.id, e.start_time, e.end_time
		FROM finalized_events e
		JOIN finalized_participants p ON p.event_id = e.id
		WHERE p.user_id = ANY($1) AND e.start_time < $3 AND e.end_time > $2`,
		pq.Array(userIDs), window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get busy time: %w", op, err)
	}
	defer rows.Close()

	busy := make([]models.Interval, 0)
	for rows.Next() {
		var (
			id int64
			i  models.Interval
		)
		if err = rows.Scan(&id, &i.Start, &i.End); err != nil {
			return nil, fmt.Errorf("%s: failed to scan interval: %w", op, err)
		}
		busy = append(busy, i)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: error iterating intervals: %w", op, err)
	}

	return busy, nil
}
