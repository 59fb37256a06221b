package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finconsgroup/zooadmin/internal/sandbox/domain"
	"github.com/finconsgroup/zooadmin/internal/sandbox/store/sqlite"
	"github.com/finconsgroup/zooadmin/pkg/cryptox"
	"github.com/finconsgroup/zooadmin/pkg/zoosdk"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()

	st, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "zoo.db"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	hash, err := cryptox.HashPassword("operator123")
	require.NoError(t, err)

	op := zoosdk.OperatorZookeeper
	_, err = st.Users().Create(context.Background(), domain.User{
		Name:         "Otto",
		LastName:     "Rossi",
		Username:     "operator",
		PasswordHash: hash,
		Role:         zoosdk.RoleOperator,
		OperatorType: &op,
	})
	require.NoError(t, err)

	return &AuthService{Store: st}
}

func TestLogin(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t)
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		u, err := svc.Login(ctx, "operator", "operator123")
		require.NoError(t, err)
		assert.Equal(t, "operator", u.Username)
		assert.Equal(t, zoosdk.RoleOperator, u.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "operator", "wrong")
		assert.ErrorIs(t, err, ErrInvalidLogin)
	})

	t.Run("unknown username gets the same error", func(t *testing.T) {
		_, err := svc.Login(ctx, "ghost", "operator123")
		assert.ErrorIs(t, err, ErrInvalidLogin)
	})
}

func TestVerifyBasic(t *testing.T) {
	t.Parallel()

	svc := newAuthService(t)
	ctx := context.Background()

	identity, err := svc.VerifyBasic(ctx, "operator", "operator123")
	require.NoError(t, err)
	assert.NotZero(t, identity.ID)
	assert.Equal(t, "operator", identity.Username)
	assert.Equal(t, zoosdk.RoleOperator, identity.Role)
	require.NotNil(t, identity.OperatorType)
	assert.Equal(t, zoosdk.OperatorZookeeper, *identity.OperatorType)

	_, err = svc.VerifyBasic(ctx, "operator", "wrong")
	assert.ErrorIs(t, err, ErrInvalidLogin)
}

func TestSeedRunsOnce(t *testing.T) {
	t.Parallel()

	st, err := sqlite.NewStore("file:" + filepath.Join(t.TempDir(), "zoo.db"))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	seed := &SeedService{Store: st}
	ctx := context.Background()

	require.NoError(t, seed.Run(ctx))
	users, err := st.Users().List(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, users)

	// A second run against a populated database must not duplicate.
	require.NoError(t, seed.Run(ctx))
	again, err := st.Users().List(ctx)
	require.NoError(t, err)
	assert.Len(t, again, len(users))
}
