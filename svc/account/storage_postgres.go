package account

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/simonta/simonta-api/pkg/pg"
)

// DB is the subset of *pgxpool.Pool used by PostgresStorage.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStorage stores accounts in the users table created by Migrations.
type PostgresStorage struct {
	db DB
}

func NewPostgresStorage(db DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

const (
	queryCreateUser = `
INSERT INTO users (nama, username, email, password, role, no_telepon, alamat, id_desa)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, created_at, updated_at`

	selectUser = `
SELECT id, nama, username, email, password, role, no_telepon, alamat, id_desa, created_at, updated_at
FROM users`

	queryGetUser           = selectUser + ` WHERE id = $1`
	queryGetUserByUsername = selectUser + ` WHERE username = $1`

	queryUpdateUser = `
UPDATE users
SET nama = $2, email = $3, password = $4, no_telepon = $5, alamat = $6, id_desa = $7, updated_at = now()
WHERE id = $1
RETURNING username, role, created_at, updated_at`
)

// Constraint names assigned by the users migration.
const (
	constraintUsername = "users_username_key"
	constraintEmail    = "users_email_key"
)

func (s *PostgresStorage) CreateUser(ctx context.Context, u *StoredUser) error {
	err := s.db.QueryRow(ctx, queryCreateUser,
		u.Nama, u.Username, u.Email, u.PasswordHash, u.Role, u.NoTelepon, u.Alamat, u.IDDesa,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	return constraintError(err)
}

func (s *PostgresStorage) GetUser(ctx context.Context, id int64) (*StoredUser, error) {
	return s.scanUser(s.db.QueryRow(ctx, queryGetUser, id))
}

func (s *PostgresStorage) GetUserByUsername(ctx context.Context, username string) (*StoredUser, error) {
	return s.scanUser(s.db.QueryRow(ctx, queryGetUserByUsername, username))
}

func (s *PostgresStorage) UpdateUser(ctx context.Context, u *StoredUser) error {
	err := s.db.QueryRow(ctx, queryUpdateUser,
		u.ID, u.Nama, u.Email, u.PasswordHash, u.NoTelepon, u.Alamat, u.IDDesa,
	).Scan(&u.Username, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	return constraintError(err)
}

func (s *PostgresStorage) scanUser(row pgx.Row) (*StoredUser, error) {
	var u StoredUser
	err := row.Scan(
		&u.ID, &u.Nama, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
		&u.NoTelepon, &u.Alamat, &u.IDDesa, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, constraintError(err)
	}
	return &u, nil
}

// constraintError maps Postgres errors onto the Storage sentinels.
func constraintError(err error) error {
	if err == nil {
		return nil
	}
	if pg.IsNotFoundError(err) {
		return ErrUserNotFound
	}
	if name, ok := pg.DuplicateKeyConstraint(err); ok {
		switch name {
		case constraintUsername:
			return errors.Join(ErrDuplicateUsername, err)
		case constraintEmail:
			return errors.Join(ErrDuplicateEmail, err)
		}
	}
	if pg.IsForeignKeyViolationError(err) {
		return errors.Join(ErrDesaNotFound, err)
	}
	return err
}
