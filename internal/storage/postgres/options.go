package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"studyPlanner/internal/lib/lifecycle"
	"studyPlanner/internal/models"
	"studyPlanner/internal/storage"
)

// optionTables maps an option kind to its option and vote tables.
var optionTables = map[models.OptionKind]struct{ options, votes string }{
	models.OptionTime:     {options: "time_options", votes: "time_votes"},
	models.OptionLocation: {options: "location_options", votes: "location_votes"},
}

func requireParticipant(ctx context.Context, tx *sql.Tx, eventID int64, userID string) error {
	var ok bool
	err := tx.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM pending_participants
			WHERE pending_event_id = $1 AND user_id = $2
		)`, eventID, userID).Scan(&ok)
	if err != nil {
		return fmt.Errorf("failed to check participant: %w", err)
	}
	if !ok {
		return storage.ErrNotParticipant
	}
	return nil
}

func (s *Storage) AddTimeOption(ctx context.Context, eventID int64, userID string, start, end int64) (int64, error) {
	const op = "storage.postgres.AddTimeOption"

	var id int64

	err := s.withEvent(ctx, eventID, true, func(tx *sql.Tx, e *models.PendingEvent) error {
		if err := lifecycle.ValidateTimeOption(*e, start, end); err != nil {
			return err
		}
		if err := requireParticipant(ctx, tx, eventID, userID); err != nil {
			return err
		}

		err := tx.QueryRowContext(ctx, `
			INSERT INTO time_options (pending_event_id, start_time, end_time, created_by, created_at)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id`,
			eventID, start, end, userID, s.now(),
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to add time option: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

func (s *Storage) AddLocationOption(ctx context.Context, eventID int64, userID, location string) (int64, error) {
	const op = "storage.postgres.AddLocationOption"

	if err := lifecycle.ValidateLocation(location); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	var id int64

	err := s.withEvent(ctx, eventID, true, func(tx *sql.Tx, e *models.PendingEvent) error {
		if err := requireParticipant(ctx, tx, eventID, userID); err != nil {
			return err
		}

		err := tx.QueryRowContext(ctx, `
			INSERT INTO location_options (pending_event_id, location, created_by, created_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			eventID, location, userID, s.now(),
		).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to add location option: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// optionCreator returns the proposer of an option that belongs to eventID.
func optionCreator(ctx context.Context, tx *sql.Tx, eventID int64, kind models.OptionKind, optionID int64) (string, error) {
	tables, ok := optionTables[kind]
	if !ok {
		return "", storage.ErrOptionNotFound
	}

	var createdBy string
	err := tx.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT created_by FROM %s WHERE id = $1 AND pending_event_id = $2`, tables.options),
		optionID, eventID,
	).Scan(&createdBy)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", storage.ErrOptionNotFound
		}
		return "", fmt.Errorf("failed to get option: %w", err)
	}

	return createdBy, nil
}

func (s *Storage) DeleteOption(ctx context.Context, eventID int64, kind models.OptionKind, optionID int64, userID string) error {
	const op = "storage.postgres.DeleteOption"

	err := s.withEvent(ctx, eventID, true, func(tx *sql.Tx, e *models.PendingEvent) error {
		createdBy, err := optionCreator(ctx, tx, eventID, kind, optionID)
		if err != nil {
			return err
		}
		if userID != createdBy && userID != e.EventCreatorID {
			return storage.ErrForbidden
		}

		// votes cascade
		_, err = tx.ExecContext(ctx,
			fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, optionTables[kind].options), optionID)
		if err != nil {
			return fmt.Errorf("failed to delete option: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// bumpVoteVersion advances the event's vote version. The caller holds the
// event's row lock, so versions follow commit order.
func bumpVoteVersion(ctx context.Context, tx *sql.Tx, eventID int64) (int64, error) {
	var version int64
	err := tx.QueryRowContext(ctx,
		`UPDATE pending_events SET vote_version = vote_version + 1 WHERE id = $1 RETURNING vote_version`,
		eventID,
	).Scan(&version)
	if err != nil {
		return 0, fmt.Errorf("failed to bump vote version: %w", err)
	}
	return version, nil
}

// Vote records the caller's vote and returns the event's new vote version,
// or 0 when the vote already existed.
func (s *Storage) Vote(ctx context.Context, eventID int64, kind models.OptionKind, optionID int64, userID string) (int64, error) {
	const op = "storage.postgres.Vote"

	var version int64

	err := s.withEvent(ctx, eventID, true, func(tx *sql.Tx, e *models.PendingEvent) error {
		if _, err := optionCreator(ctx, tx, eventID, kind, optionID); err != nil {
			return err
		}
		if err := requireParticipant(ctx, tx, eventID, userID); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx,
			fmt.Sprintf(`INSERT INTO %s (option_id, user_id, created_at) VALUES ($1, $2, $3)
				ON CONFLICT (option_id, user_id) DO NOTHING`, optionTables[kind].votes),
			optionID, userID, s.now())
		if err != nil {
			return fmt.Errorf("failed to vote: %w", err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to vote: %w", err)
		}
		if n == 0 {
			return nil
		}

		version, err = bumpVoteVersion(ctx, tx, eventID)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return version, nil
}

func (s *Storage) Unvote(ctx context.Context, eventID int64, kind models.OptionKind, optionID int64, userID string) (int64, error) {
	const op = "storage.postgres.Unvote"

	var version int64

	err := s.withEvent(ctx, eventID, true, func(tx *sql.Tx, e *models.PendingEvent) error {
		if _, err := optionCreator(ctx, tx, eventID, kind, optionID); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx,
			fmt.Sprintf(`DELETE FROM %s WHERE option_id = $1 AND user_id = $2`, optionTables[kind].votes),
			optionID, userID)
		if err != nil {
			return fmt.Errorf("failed to unvote: %w", err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to unvote: %w", err)
		}
		if n == 0 {
			return nil
		}

		version, err = bumpVoteVersion(ctx, tx, eventID)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return version, nil
}
