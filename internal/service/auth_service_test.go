package service_test

import (
	"context"
	"testing"

	"github.com/lovico/lovico-server/internal/domain"
	"github.com/lovico/lovico-server/internal/repository/postgres"
	"github.com/lovico/lovico-server/internal/schema"
	"github.com/lovico/lovico-server/internal/service"
	"github.com/lovico/lovico-server/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Register(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, repos.Session, cfg)
	ctx := context.Background()

	tests := []struct {
		name      string
		input     schema.CreateUser
		setup     func()
		wantErr   error
		checkUser bool
	}{
		{
			name: "successful registration",
			input: schema.CreateUser{
				Email:    "new@example.com",
				Username: "newuser",
				Password: "password123",
			},
			checkUser: true,
		},
		{
			name: "email and username are normalized",
			input: schema.CreateUser{
				Email:    "  MiXeD@Example.COM ",
				Username: " MixedUser ",
				Password: "password123",
			},
			checkUser: true,
		},
		{
			name: "duplicate email",
			input: schema.CreateUser{
				Email:    "taken@example.com",
				Username: "freshname",
				Password: "password123",
			},
			setup: func() {
				testutil.NewUserBuilder().WithEmail("taken@example.com").Build(t, testDB.DB)
			},
			wantErr: service.ErrEmailExists,
		},
		{
			name: "duplicate username",
			input: schema.CreateUser{
				Email:    "fresh@example.com",
				Username: "takenname",
				Password: "password123",
			},
			setup: func() {
				testutil.NewUserBuilder().WithUsername("takenname").Build(t, testDB.DB)
			},
			wantErr: service.ErrUsernameExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Clean up between tests
			testDB.Truncate(t)

			if tt.setup != nil {
				tt.setup()
			}

			result, err := authService.Register(ctx, tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.NotNil(t, result.User)
			assert.NotEmpty(t, result.AccessToken)
			assert.NotEmpty(t, result.RefreshToken)
			assert.Equal(t, domain.RoleUser, result.User.Role)
			assert.Equal(t, domain.UserStatusActive, result.User.Status)
			// Stored identity is lowercase and trimmed
			assert.Regexp(t, `^[a-z0-9@._-]+$`, result.User.Email)
			assert.NotContains(t, result.User.Username, " ")
		})
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, repos.Session, cfg)
	ctx := context.Background()

	tests := []struct {
		name  string
		input schema.CreateUser
	}{
		{
			name:  "malformed email",
			input: schema.CreateUser{Email: "not-an-email", Username: "validname", Password: "password123"},
		},
		{
			name:  "short password",
			input: schema.CreateUser{Email: "a@example.com", Username: "validname", Password: "short"},
		},
		{
			name:  "illegal username chars",
			input: schema.CreateUser{Email: "a@example.com", Username: "bad name!", Password: "password123"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testDB.Truncate(t)

			_, err := authService.Register(ctx, tt.input)

			var verr *schema.ValidationError
			require.ErrorAs(t, err, &verr)

			// No user row survives a rejected registration
			var count int64
			testDB.DB.Model(&domain.User{}).Count(&count)
			assert.Zero(t, count)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, repos.Session, cfg)
	ctx := context.Background()

	t.Run("successful login", func(t *testing.T) {
		testDB.Truncate(t)
		user, password := testutil.NewUserBuilder().Build(t, testDB.DB)

		result, err := authService.Login(ctx, schema.Login{Email: user.Email, Password: password})
		require.NoError(t, err)
		assert.Equal(t, user.ID, result.User.ID)
		assert.NotEmpty(t, result.AccessToken)
		assert.NotNil(t, result.User.LastLoginAt)
	})

	t.Run("wrong password", func(t *testing.T) {
		testDB.Truncate(t)
		user, _ := testutil.NewUserBuilder().Build(t, testDB.DB)

		_, err := authService.Login(ctx, schema.Login{Email: user.Email, Password: "wrongpassword"})
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		testDB.Truncate(t)

		_, err := authService.Login(ctx, schema.Login{Email: "ghost@example.com", Password: "password123"})
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("suspended account", func(t *testing.T) {
		testDB.Truncate(t)
		user, password := testutil.NewUserBuilder().Build(t, testDB.DB)
		require.NoError(t, testDB.DB.Model(user).Update("status", domain.UserStatusSuspended).Error)

		_, err := authService.Login(ctx, schema.Login{Email: user.Email, Password: password})
		assert.ErrorIs(t, err, service.ErrAccountDisabled)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, repos.Session, cfg)
	ctx := context.Background()

	t.Run("rotation", func(t *testing.T) {
		testDB.Truncate(t)
		user, password := testutil.NewUserBuilder().Build(t, testDB.DB)

		first, err := authService.Login(ctx, schema.Login{Email: user.Email, Password: password})
		require.NoError(t, err)

		second, err := authService.Refresh(ctx, user.ID, first.RefreshToken)
		require.NoError(t, err)
		assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

		// The rotated-out token is rejected
		_, err = authService.Refresh(ctx, user.ID, first.RefreshToken)
		assert.ErrorIs(t, err, service.ErrInvalidSession)

		// The new one still works
		_, err = authService.Refresh(ctx, user.ID, second.RefreshToken)
		assert.NoError(t, err)
	})

	t.Run("logout invalidates session", func(t *testing.T) {
		testDB.Truncate(t)
		user, password := testutil.NewUserBuilder().Build(t, testDB.DB)

		result, err := authService.Login(ctx, schema.Login{Email: user.Email, Password: password})
		require.NoError(t, err)

		require.NoError(t, authService.Logout(ctx, user.ID))

		_, err = authService.Refresh(ctx, user.ID, result.RefreshToken)
		assert.ErrorIs(t, err, service.ErrInvalidSession)
	})
}

func TestAuthService_ValidateToken(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	repos := postgres.NewRepositories(testDB.DB)
	cfg := testutil.TestConfig()
	authService := service.NewAuthService(repos.User, repos.Session, cfg)
	ctx := context.Background()

	user, password := testutil.NewUserBuilder().Build(t, testDB.DB)
	result, err := authService.Login(ctx, schema.Login{Email: user.Email, Password: password})
	require.NoError(t, err)

	claims, err := authService.ValidateToken(result.AccessToken)
	require.NoError(t, err)
	sub, err := (*claims).GetSubject()
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), sub)

	_, err = authService.ValidateToken("not.a.token")
	assert.Error(t, err)
}
