package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/smallbiznis/codegrant/internal/domain"
	"github.com/smallbiznis/codegrant/internal/domain/oauth"
)

// Compile-time interface assertions.
var (
	_ ClientRepository = (*PostgresClientRepo)(nil)
	_ UserRepository   = (*PostgresUserRepo)(nil)
)

// PostgresClientRepo implements ClientRepository.
type PostgresClientRepo struct {
	db *pgxpool.Pool
}

func NewPostgresClientRepo(pool *pgxpool.Pool) *PostgresClientRepo {
	return &PostgresClientRepo{db: pool}
}

const selectClientSQL = `SELECT id, name, allowed_scopes, redirect_uris, secret
FROM clients
WHERE id = $1`

func (r *PostgresClientRepo) GetClientByID(ctx context.Context, clientID uint32) (domain.Client, error) {
	var (
		id           int64
		name         string
		scopes       []string
		redirectURIs []string
		secret       string
	)
	err := r.db.QueryRow(ctx, selectClientSQL, int64(clientID)).Scan(&id, &name, &scopes, &redirectURIs, &secret)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Client{}, oauth.ErrClientNotFound
		}
		return domain.Client{}, fmt.Errorf("get client: %w", err)
	}

	return domain.Client{
		ID:            uint32(id),
		Name:          name,
		AllowedScopes: append([]string{}, scopes...),
		RedirectURIs:  append([]string{}, redirectURIs...),
		Secret:        secret,
	}, nil
}

const clientExistsSQL = `SELECT id FROM clients WHERE id = $1`

func (r *PostgresClientRepo) ClientExists(ctx context.Context, clientID uint32) (bool, error) {
	var id int64
	if err := r.db.QueryRow(ctx, clientExistsSQL, int64(clientID)).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("client exists: %w", err)
	}
	return true, nil
}

// PostgresUserRepo implements UserRepository.
type PostgresUserRepo struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepo(pool *pgxpool.Pool) *PostgresUserRepo {
	return &PostgresUserRepo{db: pool}
}

const selectUserByEmailSQL = `SELECT id, email, password, created_at
FROM users
WHERE email = $1
LIMIT 1`

func (r *PostgresUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var user domain.User
	err := r.db.QueryRow(ctx, selectUserByEmailSQL, email).Scan(&user.ID, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, oauth.ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

const insertUserSQL = `INSERT INTO users (id, email, password)
VALUES ($1, $2, $3)
RETURNING id, email, password, created_at`

func (r *PostgresUserRepo) Create(ctx context.Context, user domain.User) (domain.User, error) {
	var inserted domain.User
	if err := r.db.QueryRow(ctx, insertUserSQL, user.ID, user.Email, user.PasswordHash).Scan(
		&inserted.ID,
		&inserted.Email,
		&inserted.PasswordHash,
		&inserted.CreatedAt,
	); err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return inserted, nil
}
