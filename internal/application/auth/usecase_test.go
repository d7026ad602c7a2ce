package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stockroom-api/internal/application/auth"
	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/infrastructure/memory"
	"github.com/jhoicas/stockroom-api/pkg/jwt"
	"github.com/jhoicas/stockroom-api/pkg/password"
)

const testSecret = "test-secret-key-for-unit-tests"

func newAuthUC(t *testing.T) (*auth.AuthUseCase, *memory.UserRepo) {
	t.Helper()
	repo := memory.NewUserRepository(memory.NewDB())
	uc := auth.NewAuthUseCase(repo, password.NewHasher(bcrypt.MinCost), auth.JWTConfig{
		Secret: testSecret,
		Issuer: "stockroom-test",
	})
	return uc, repo
}

func TestRegisterUser(t *testing.T) {
	uc, repo := newAuthUC(t)
	ctx := context.Background()

	out, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "alice", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "alice", out.Username)

	stored, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, entity.RoleUser, stored.Role, "el registro público nunca crea admins")
	assert.NotEqual(t, "s3cret", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret")))
}

func TestRegisterUser_Duplicado(t *testing.T) {
	uc, _ := newAuthUC(t)
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "alice", Password: "a"})
	require.NoError(t, err)
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Username: "alice", Password: "b"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegisterUser_UsernameNormalizadoNFC(t *testing.T) {
	uc, _ := newAuthUC(t)
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "jos\u00e9", Password: "x"})
	require.NoError(t, err)
	// misma grafía con "e" + acento combinante
	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Username: " jose\u0301 ", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegisterUser_CamposRequeridos(t *testing.T) {
	uc, _ := newAuthUC(t)

	_, err := uc.RegisterUser(context.Background(), dto.RegisterRequest{Username: "  "})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "username")
	assert.Contains(t, verr.Fields, "password")
}

func TestLogin_TokenConIDyRol(t *testing.T) {
	uc, _ := newAuthUC(t)
	ctx := context.Background()
	reg, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", out.TokenType)
	assert.WithinDuration(t, time.Now().Add(auth.TokenTTL), out.ExpiresAt, time.Minute)

	claims, err := jwt.Parse(testSecret, out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, reg.ID, claims.UserID)
	assert.Equal(t, entity.RoleUser, claims.Role)
	assert.Equal(t, "stockroom-test", claims.Issuer)
}

func TestLogin_CredencialesIndistinguibles(t *testing.T) {
	uc, _ := newAuthUC(t)
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "alice", Password: "pw"})
	require.NoError(t, err)

	_, errWrongPass := uc.Login(ctx, dto.LoginRequest{Username: "alice", Password: "otra"})
	_, errUnknown := uc.Login(ctx, dto.LoginRequest{Username: "bob", Password: "pw"})

	require.ErrorIs(t, errWrongPass, domain.ErrInvalidCredentials)
	require.ErrorIs(t, errUnknown, domain.ErrInvalidCredentials)
	assert.Equal(t, errWrongPass.Error(), errUnknown.Error())
}

func TestEnsureAdmin_Idempotente(t *testing.T) {
	uc, repo := newAuthUC(t)
	ctx := context.Background()

	created, err := uc.EnsureAdmin(ctx, "admin", "adminpw")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = uc.EnsureAdmin(ctx, "admin", "otra")
	require.NoError(t, err)
	assert.False(t, created)

	admin, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, admin.Role)

	// la segunda llamada no cambia la contraseña
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "adminpw"})
	assert.NoError(t, err)
}
