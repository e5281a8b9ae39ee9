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

// moderationTables maps a scope to its event table, event key column and
// ban/mute tables.
var moderationTables = map[models.Scope]struct{ key, bans, mutes string }{
	models.ScopePending:   {key: "pending_event_id", bans: "pending_bans", mutes: "pending_mutes"},
	models.ScopeFinalized: {key: "event_id", bans: "finalized_bans", mutes: "finalized_mutes"},
}

func isBanned(ctx context.Context, q querier, scope models.Scope, eventID int64, userID string) (bool, error) {
	t := moderationTables[scope]

	var banned bool
	err := q.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND user_id = $2)`, t.bans, t.key),
		eventID, userID,
	).Scan(&banned)
	if err != nil {
		return false, fmt.Errorf("failed to check ban: %w", err)
	}

	return banned, nil
}

func (s *Storage) JoinPending(ctx context.Context, eventID int64, userID string) error {
	const op = "storage.postgres.JoinPending"

	err := s.withEvent(ctx, eventID, true, func(tx *sql.Tx, e *models.PendingEvent) error {
		var joined bool
		var count int
		err := tx.QueryRowContext(ctx, `
			SELECT COALESCE(bool_or(user_id = $2), false), COUNT(*)
			FROM pending_participants
			WHERE pending_event_id = $1`, eventID, userID,
		).Scan(&joined, &count)
		if err != nil {
			return fmt.Errorf("failed to count participants: %w", err)
		}
		if joined {
			return nil
		}

		banned, err := isBanned(ctx, tx, models.ScopePending, eventID, userID)
		if err != nil {
			return err
		}
		if err = lifecycle.CanJoin(*e, banned, count); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO pending_participants (pending_event_id, user_id, joined_at)
			VALUES ($1, $2, $3)`, eventID, userID, s.now())
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

func (s *Storage) LeavePending(ctx context.Context, eventID int64, actorID, targetID string) error {
	const op = "storage.postgres.LeavePending"

	err := s.withEvent(ctx, eventID, true, func(tx *sql.Tx, e *models.PendingEvent) error {
		if actorID != targetID && actorID != e.EventCreatorID {
			return storage.ErrForbidden
		}

		_, err := tx.ExecContext(ctx,
			`DELETE FROM pending_participants WHERE pending_event_id = $1 AND user_id = $2`,
			eventID, targetID)
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

func (s *Storage) Moderate(ctx context.Context, scope models.Scope, eventID int64, actorID, targetID string, action models.ModerationAction) ([]models.VoteRef, error) {
	const op = "storage.postgres.Moderate"

	var purged []models.VoteRef
	var err error

	switch scope {
	case models.ScopePending:
		err = s.withEvent(ctx, eventID, true, func(tx *sql.Tx, e *models.PendingEvent) error {
			if actorID != e.EventCreatorID || targetID == e.EventCreatorID {
				return storage.ErrForbidden
			}
			var mErr error
			purged, mErr = s.moderateTx(ctx, tx, scope, eventID, targetID, action)
			return mErr
		})
	case models.ScopeFinalized:
		err = s.withFinalized(ctx, eventID, func(tx *sql.Tx, creator string) error {
			if actorID != creator || targetID == creator {
				return storage.ErrForbidden
			}
			var mErr error
			purged, mErr = s.moderateTx(ctx, tx, scope, eventID, targetID, action)
			return mErr
		})
	default:
		err = models.NewValidationError("scope", "unknown scope")
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return purged, nil
}

func (s *Storage) moderateTx(ctx context.Context, tx *sql.Tx, scope models.Scope, eventID int64, targetID string, action models.ModerationAction) ([]models.VoteRef, error) {
	t := moderationTables[scope]
	now := s.now()

	var query string
	switch action {
	case models.ActionBan:
		query = fmt.Sprintf(`INSERT INTO %s (%s, user_id, created_at) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`, t.bans, t.key)
	case models.ActionUnban:
		query = fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND user_id = $2`, t.bans, t.key)
	case models.ActionMute:
		query = fmt.Sprintf(`INSERT INTO %s (%s, user_id, created_at) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING`, t.mutes, t.key)
	case models.ActionUnmute:
		query = fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND user_id = $2`, t.mutes, t.key)
	default:
		return nil, models.NewValidationError("action", "unknown action")
	}

	args := []any{eventID, targetID}
	if action == models.ActionBan || action == models.ActionMute {
		args = append(args, now)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return nil, fmt.Errorf("failed to %s user: %w", action, err)
	}

	if action != models.ActionBan {
		return nil, nil
	}

	if scope == models.ScopeFinalized {
		_, err := tx.ExecContext(ctx,
			`DELETE FROM finalized_participants WHERE event_id = $1 AND user_id = $2`, eventID, targetID)
		if err != nil {
			return nil, fmt.Errorf("failed to remove participant: %w", err)
		}
		return nil, nil
	}

	_, err := tx.ExecContext(ctx,
		`DELETE FROM pending_participants WHERE pending_event_id = $1 AND user_id = $2`, eventID, targetID)
	if err != nil {
		return nil, fmt.Errorf("failed to remove participant: %w", err)
	}

	return purgeVotes(ctx, tx, eventID, targetID)
}

// purgeVotes deletes every vote of userID on the event's options and returns
// what was removed, stamped with one shared vote version.
func purgeVotes(ctx context.Context, tx *sql.Tx, eventID int64, userID string) ([]models.VoteRef, error) {
	var purged []models.VoteRef

	for _, kind := range []models.OptionKind{models.OptionTime, models.OptionLocation} {
		t := optionTables[kind]
		rows, err := tx.QueryContext(ctx, fmt.Sprintf(`
			DELETE FROM %s v USING %s o
			WHERE v.option_id = o.id AND o.pending_event_id = $1 AND v.user_id = $2
			RETURNING v.option_id`, t.votes, t.options), eventID, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to purge votes: %w", err)
		}

		for rows.Next() {
			ref := models.VoteRef{EventID: eventID, Kind: kind, UserID: userID}
			if err = rows.Scan(&ref.OptionID); err != nil {
				rows.Close()
				return nil, fmt.Errorf("failed to scan purged vote: %w", err)
			}
			purged = append(purged, ref)
		}
		rows.Close()
		if err = rows.Err(); err != nil {
			return nil, fmt.Errorf("error iterating purged votes: %w", err)
		}
	}

	if len(purged) == 0 {
		return nil, nil
	}

	version, err := bumpVoteVersion(ctx, tx, eventID)
	if err != nil {
		return nil, err
	}
	for i := range purged {
		purged[i].Seq = version
	}

	return purged, nil
}

func (s *Storage) IsMuted(ctx context.Context, scope models.Scope, eventID int64, userID string) (bool, error) {
	const op = "storage.postgres.IsMuted"

	t, ok := moderationTables[scope]
	if !ok {
		return false, fmt.Errorf("%s: %w", op, models.NewValidationError("scope", "unknown scope"))
	}

	var muted bool
	err := s.DB.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND user_id = $2)`, t.mutes, t.key),
		eventID, userID,
	).Scan(&muted)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return muted, nil
}

// withFinalized runs fn in a transaction holding the finalized event's row
// lock.
func (s *Storage) withFinalized(ctx context.Context, id int64, fn func(tx *sql.Tx, creator string) error) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var creator string
	err = tx.QueryRowContext(ctx,
		`SELECT event_creator_id FROM finalized_events WHERE id = $1 FOR UPDATE`, id).Scan(&creator)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.ErrEventNotFound
		}
		return fmt.Errorf("failed to get event: %w", err)
	}

	if err = fn(tx, creator); err != nil {
		return err
	}

	return tx.Commit()
}
