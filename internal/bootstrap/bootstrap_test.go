package bootstrap

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/smallbiznis/codegrant/internal/config"
	"github.com/smallbiznis/codegrant/internal/domain"
	"github.com/smallbiznis/codegrant/internal/domain/oauth"
	"github.com/smallbiznis/codegrant/internal/password"
)

type recordingExecer struct {
	stmts []string
	err   error
}

func (r *recordingExecer) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	r.stmts = append(r.stmts, sql)
	return pgconn.CommandTag{}, r.err
}

func TestEnsureSchemaCreatesTables(t *testing.T) {
	db := &recordingExecer{}
	require.NoError(t, ensureSchema(context.Background(), db))
	require.Len(t, db.stmts, 2)
	require.True(t, strings.Contains(db.stmts[0], "clients"))
	require.True(t, strings.Contains(db.stmts[1], "users"))
}

func TestEnsureSchemaStopsOnError(t *testing.T) {
	db := &recordingExecer{err: errors.New("permission denied")}
	err := ensureSchema(context.Background(), db)
	require.ErrorContains(t, err, "permission denied")
	require.Len(t, db.stmts, 1)
}

type memoryUsers struct {
	users     map[string]domain.User
	lookupErr error
}

func (m *memoryUsers) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	if m.lookupErr != nil {
		return domain.User{}, m.lookupErr
	}
	u, ok := m.users[email]
	if !ok {
		return domain.User{}, oauth.ErrUserNotFound
	}
	return u, nil
}

func (m *memoryUsers) Create(ctx context.Context, user domain.User) (domain.User, error) {
	m.users[user.Email] = user
	return user, nil
}

func newNode(t *testing.T) *snowflake.Node {
	t.Helper()
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	return node
}

func TestEnsureAdminSeedsMissingUser(t *testing.T) {
	users := &memoryUsers{users: map[string]domain.User{}}
	cfg := config.Config{AdminEmail: "root@example.com", AdminPassword: "changeme"}

	require.NoError(t, ensureAdmin(context.Background(), cfg, users, newNode(t), zap.NewNop()))

	u, ok := users.users["root@example.com"]
	require.True(t, ok)
	require.NotZero(t, u.ID)
	match, err := password.Verify("changeme", u.PasswordHash)
	require.NoError(t, err)
	require.True(t, match)
}

func TestEnsureAdminKeepsExistingUser(t *testing.T) {
	existing := domain.User{ID: 7, Email: "root@example.com", PasswordHash: "kept"}
	users := &memoryUsers{users: map[string]domain.User{existing.Email: existing}}
	cfg := config.Config{AdminEmail: "root@example.com", AdminPassword: "changeme"}

	require.NoError(t, ensureAdmin(context.Background(), cfg, users, newNode(t), zap.NewNop()))
	require.Equal(t, existing, users.users["root@example.com"])
}

func TestEnsureAdminLookupFailure(t *testing.T) {
	users := &memoryUsers{users: map[string]domain.User{}, lookupErr: errors.New("db down")}
	cfg := config.Config{AdminEmail: "root@example.com", AdminPassword: "changeme"}

	err := ensureAdmin(context.Background(), cfg, users, newNode(t), zap.NewNop())
	require.ErrorContains(t, err, "db down")
	require.Empty(t, users.users)
}
