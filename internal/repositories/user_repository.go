package repositories

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/spawlov/auth-service/internal/models"
	"github.com/spawlov/auth-service/internal/utils"
)

type UserRepository interface {
	// Create inserts the user and fills in the generated ID.
	// Unique-constraint violations are mapped to utils.ErrNicknameTaken
	// or utils.ErrEmailTaken.
	Create(ctx context.Context, user *models.User) error

	// GetByNickname returns nil if no user matches.
	GetByNickname(ctx context.Context, nickname string) (*models.User, error)

	// GetByID returns nil if no user matches.
	GetByID(ctx context.Context, id int64) (*models.User, error)

	GetAll(ctx context.Context) ([]*models.User, error)
}

type userRepository struct {
	db DB
}

func NewUserRepository(db DB) UserRepository {
	return &userRepository{db: db}
}

const baseSelectUser = `
    SELECT id, nickname, password, first_name, last_name, email, is_active, is_superuser
    FROM users
`

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
        INSERT INTO users (nickname, password, first_name, last_name, email, is_active, is_superuser)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
	err := r.db.QueryRow(ctx, query,
		user.Nickname,
		user.Password,
		user.FirstName,
		user.LastName,
		user.Email,
		user.IsActive,
		user.IsSuperuser,
	).Scan(&user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch {
			case strings.Contains(pgErr.ConstraintName, "nickname"):
				return utils.ErrNicknameTaken
			case strings.Contains(pgErr.ConstraintName, "email"):
				return utils.ErrEmailTaken
			}
		}
		return err
	}
	return nil
}

func (r *userRepository) GetByNickname(ctx context.Context, nickname string) (*models.User, error) {
	row := r.db.QueryRow(ctx, baseSelectUser+" WHERE nickname = $1", nickname)
	return scanUser(row)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	row := r.db.QueryRow(ctx, baseSelectUser+" WHERE id = $1", id)
	return scanUser(row)
}

func (r *userRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, baseSelectUser+" ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID,
			&u.Nickname,
			&u.Password,
			&u.FirstName,
			&u.LastName,
			&u.Email,
			&u.IsActive,
			&u.IsSuperuser,
		); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Nickname,
		&u.Password,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.IsActive,
		&u.IsSuperuser,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
