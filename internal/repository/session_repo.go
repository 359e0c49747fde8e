package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"reconnect-backend/internal/models"
)

type SessionRepo struct {
	pool *pgxpool.Pool
}

func NewSessionRepo(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

const sessionColumns = `
	id, user_id, protocol_id,
	pre_calm, pre_clarity, pre_energy,
	post_calm, post_clarity, post_energy,
	completed, created_at, completed_at
`

func scanSession(row pgx.Row) (*models.Session, error) {
	var s models.Session
	err := row.Scan(
		&s.ID, &s.UserID, &s.ProtocolID,
		&s.PreCalm, &s.PreClarity, &s.PreEnergy,
		&s.PostCalm, &s.PostClarity, &s.PostEnergy,
		&s.Completed, &s.CreatedAt, &s.CompletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserts a fresh session with pre ratings only; post ratings
// stay null until Complete.
func (r *SessionRepo) Create(ctx context.Context, userID uuid.UUID, protocolID string, preCalm, preClarity, preEnergy int) (*models.Session, error) {
	query := `
		INSERT INTO sessions (user_id, protocol_id, pre_calm, pre_clarity, pre_energy)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + sessionColumns
	return scanSession(r.pool.QueryRow(ctx, query, userID, protocolID, preCalm, preClarity, preEnergy))
}

// Complete sets the post ratings, completed flag and completion time in
// one statement, and only on a row that is not already completed. A
// second call matches nothing and reports pgx.ErrNoRows.
func (r *SessionRepo) Complete(ctx context.Context, sessionID, userID uuid.UUID, postCalm, postClarity, postEnergy int) (*models.Session, error) {
	query := `
		UPDATE sessions
		SET post_calm = $3,
			post_clarity = $4,
			post_energy = $5,
			completed = TRUE,
			completed_at = NOW()
		WHERE id = $1
		  AND user_id = $2
		  AND completed = FALSE
		RETURNING ` + sessionColumns
	return scanSession(r.pool.QueryRow(ctx, query, sessionID, userID, postCalm, postClarity, postEnergy))
}

// ListByUser returns one user's sessions, most recent first. limit <= 0
// means no limit.
func (r *SessionRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]models.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE user_id = $1 ORDER BY created_at DESC`
	args := []interface{}{userID}
	if limit > 0 {
		query += " LIMIT $2"
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSessions(rows)
}

// ListAll returns the full session corpus, most recent first. Admin
// aggregation path.
func (r *SessionRepo) ListAll(ctx context.Context) ([]models.Session, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+sessionColumns+` FROM sessions ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectSessions(rows)
}

func collectSessions(rows pgx.Rows) ([]models.Session, error) {
	var sessions []models.Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	return sessions, rows.Err()
}
