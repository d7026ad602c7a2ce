package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/stockroom-api/internal/application/dto"
	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
	"github.com/jhoicas/stockroom-api/pkg/jwt"
)

// TokenTTL vigencia fija de los tokens emitidos.
const TokenTTL = 24 * time.Hour

// JWTConfig configuración para generación y validación de tokens.
type JWTConfig struct {
	Secret string
	Issuer string
}

// PasswordHasher puerto del hasher de contraseñas (lo implementa *password.Hasher).
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hashed string) bool
}

// AuthUseCase casos de uso de autenticación: registro, login y bootstrap del admin.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	hasher    PasswordHasher
	jwtCfg    JWTConfig
	dummyHash string
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, hasher PasswordHasher, jwtCfg JWTConfig) *AuthUseCase {
	// Hash contra el que se compara cuando el usuario no existe, para que el tiempo
	// de respuesta no revele si el username está registrado.
	dummy, _ := hasher.Hash(uuid.NewString())
	return &AuthUseCase{userRepo: userRepo, hasher: hasher, jwtCfg: jwtCfg, dummyHash: dummy}
}

// NormalizeUsername recorta espacios y normaliza a NFC.
func NormalizeUsername(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

func validateCredentials(username, password string) error {
	verr := domain.NewValidationError()
	if username == "" {
		verr.Add("username", "es requerido")
	}
	if password == "" {
		verr.Add("password", "es requerido")
	}
	return verr.OrNil()
}

// RegisterUser crea un usuario con rol user. Devuelve domain.ErrConflict si el username ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	username := NormalizeUsername(in.Username)
	if err := validateCredentials(username, in.Password); err != nil {
		return nil, err
	}
	user, err := uc.createUser(ctx, username, in.Password, entity.RoleUser)
	if err != nil {
		return nil, err
	}
	return &dto.RegisterResponse{
		Message:  "usuario registrado correctamente",
		ID:       user.ID,
		Username: user.Username,
	}, nil
}

// Login verifica username/password y emite un JWT con id y rol.
// Usuario inexistente y password incorrecto devuelven el mismo ErrInvalidCredentials.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := NormalizeUsername(in.Username)
	if err := validateCredentials(username, in.Password); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		uc.hasher.Verify(in.Password, uc.dummyHash)
		return nil, domain.ErrInvalidCredentials
	}
	if !uc.hasher.Verify(in.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	expiresAt := time.Now().Add(TokenTTL)
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, TokenTTL)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Message:     "login exitoso",
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt.UTC().Truncate(time.Second),
	}, nil
}

// EnsureAdmin crea el usuario admin si no existe. Es idempotente: si el username
// ya está registrado no lo modifica y devuelve created=false.
func (uc *AuthUseCase) EnsureAdmin(ctx context.Context, username, password string) (created bool, err error) {
	username = NormalizeUsername(username)
	if err := validateCredentials(username, password); err != nil {
		return false, err
	}
	_, err = uc.createUser(ctx, username, password, entity.RoleAdmin)
	if errors.Is(err, domain.ErrConflict) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (uc *AuthUseCase) createUser(ctx context.Context, username, password, role string) (*entity.User, error) {
	existing, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrConflict
	}
	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	// El índice único del store resuelve la carrera entre dos registros simultáneos.
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
