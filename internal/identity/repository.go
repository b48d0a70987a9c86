package identity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrMemberNotFound indicates no member matches the lookup.
var ErrMemberNotFound = errors.New("member not found")

// Repository persists household members.
type Repository interface {
	Create(ctx context.Context, member Member) error
	FindByUsername(ctx context.Context, username string) (Member, error)
	FindByID(ctx context.Context, id string) (Member, error)
	UpdateTokenVersion(ctx context.Context, id string, version int) error
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
}

// PostgresRepository implements Repository using PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a Postgres-backed member repository.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a new member.
func (r *PostgresRepository) Create(ctx context.Context, member Member) error {
	memberID, err := uuid.Parse(member.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO members (id, username, pin_hash, token_version, created_at)
        VALUES ($1, $2, $3, $4, $5)`, memberID, member.Username, member.PINHash, member.TokenVersion, member.CreatedAt.UTC())
	return err
}

// FindByUsername fetches a member by username.
func (r *PostgresRepository) FindByUsername(ctx context.Context, username string) (Member, error) {
	row := r.db.QueryRow(ctx, `SELECT id, username, pin_hash, token_version, created_at, last_login
        FROM members WHERE username = $1`, username)
	return scanMember(row)
}

// FindByID fetches a member by identifier.
func (r *PostgresRepository) FindByID(ctx context.Context, id string) (Member, error) {
	memberID, err := uuid.Parse(id)
	if err != nil {
		return Member{}, ErrMemberNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, username, pin_hash, token_version, created_at, last_login
        FROM members WHERE id = $1`, memberID)
	return scanMember(row)
}

// UpdateTokenVersion bumps the token version, invalidating older tokens.
func (r *PostgresRepository) UpdateTokenVersion(ctx context.Context, id string, version int) error {
	memberID, err := uuid.Parse(id)
	if err != nil {
		return ErrMemberNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE members SET token_version = $1 WHERE id = $2`, version, memberID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrMemberNotFound
	}
	return nil
}

// TouchLastLogin records the most recent successful login.
func (r *PostgresRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	memberID, err := uuid.Parse(id)
	if err != nil {
		return ErrMemberNotFound
	}
	_, err = r.db.Exec(ctx, `UPDATE members SET last_login = $1 WHERE id = $2`, at.UTC(), memberID)
	return err
}

func scanMember(row pgx.Row) (Member, error) {
	var (
		id        uuid.UUID
		member    Member
		createdAt time.Time
		lastLogin *time.Time
	)
	if err := row.Scan(&id, &member.Username, &member.PINHash, &member.TokenVersion, &createdAt, &lastLogin); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Member{}, ErrMemberNotFound
		}
		return Member{}, err
	}
	member.ID = id.String()
	member.CreatedAt = createdAt.UTC()
	if lastLogin != nil {
		member.LastLogin = lastLogin.UTC()
	}
	return member, nil
}
