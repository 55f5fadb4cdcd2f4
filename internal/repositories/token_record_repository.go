package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4"

	"github.com/spawlov/auth-service/internal/models"
)

// TokenRecordRepository is the durable revocation store. Every issued token
// gets a row here at mint time; revocation flips revoked_at/reason and never
// deletes the row (rows only cascade away with their owning user, or age out
// via CleanupExpired once the token itself can no longer verify).
type TokenRecordRepository interface {
	// Create inserts the record for a freshly minted token and fills in
	// the generated ID and CreatedAt.
	Create(ctx context.Context, record *models.TokenRecord) error

	// GetByJTI returns nil if no record matches.
	GetByJTI(ctx context.Context, jti string) (*models.TokenRecord, error)

	// RevokeByJTI marks a single record revoked. Returns the number of rows
	// updated (0 when the jti is unknown or already revoked).
	RevokeByJTI(ctx context.Context, jti string, reason string) (int64, error)

	// RevokeAllByUserID marks every live record of the user revoked in one
	// statement and returns the affected jtis (both token types).
	RevokeAllByUserID(ctx context.Context, userID int64, reason string) ([]string, error)

	// CleanupExpired deletes records created before the cutoff. Safe because
	// any token older than the refresh window fails expiry verification
	// before the store is ever consulted.
	CleanupExpired(ctx context.Context, cutoff time.Time) error
}

type tokenRecordRepository struct {
	db DB
}

func NewTokenRecordRepository(db DB) TokenRecordRepository {
	return &tokenRecordRepository{db: db}
}

func (r *tokenRecordRepository) Create(ctx context.Context, record *models.TokenRecord) error {
	query := `
        INSERT INTO token_records (jti, user_id, token_type, ip_address, user_agent, created_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
        RETURNING id, created_at
    `
	return r.db.QueryRow(ctx, query,
		record.JTI,
		record.UserID,
		record.TokenType,
		record.IPAddress,
		record.UserAgent,
	).Scan(&record.ID, &record.CreatedAt)
}

func (r *tokenRecordRepository) GetByJTI(ctx context.Context, jti string) (*models.TokenRecord, error) {
	query := `
        SELECT id, jti, user_id, token_type, reason, ip_address, user_agent, created_at, revoked_at
        FROM token_records
        WHERE jti = $1
    `
	row := r.db.QueryRow(ctx, query, jti)

	var rec models.TokenRecord
	err := row.Scan(
		&rec.ID,
		&rec.JTI,
		&rec.UserID,
		&rec.TokenType,
		&rec.Reason,
		&rec.IPAddress,
		&rec.UserAgent,
		&rec.CreatedAt,
		&rec.RevokedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (r *tokenRecordRepository) RevokeByJTI(ctx context.Context, jti string, reason string) (int64, error) {
	query := `
        UPDATE token_records
        SET reason = $2, revoked_at = NOW()
        WHERE jti = $1 AND revoked_at IS NULL
    `
	tag, err := r.db.Exec(ctx, query, jti, reason)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *tokenRecordRepository) RevokeAllByUserID(ctx context.Context, userID int64, reason string) ([]string, error) {
	// Single bounded statement: no per-record round trips, no partial
	// revocation under failure.
	query := `
        UPDATE token_records
        SET reason = $2, revoked_at = NOW()
        WHERE user_id = $1 AND revoked_at IS NULL
        RETURNING jti
    `
	rows, err := r.db.Query(ctx, query, userID, reason)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jtis []string
	for rows.Next() {
		var jti string
		if err := rows.Scan(&jti); err != nil {
			return nil, err
		}
		jtis = append(jtis, jti)
	}
	return jtis, rows.Err()
}

func (r *tokenRecordRepository) CleanupExpired(ctx context.Context, cutoff time.Time) error {
	query := `DELETE FROM token_records WHERE created_at < $1`
	_, err := r.db.Exec(ctx, query, cutoff)
	return err
}
