package auth

import (
	"context"
	"strings"

	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
	"github.com/jhoicas/stockroom-api/pkg/jwt"
)

// Identity es la identidad autenticada que se adjunta a la petición (sin hash).
type Identity struct {
	UserID   string
	Username string
	Role     string
}

// Gate autentica bearer tokens y aplica el control por rol.
//
// Flujo por petición:
//
//	sin header        -> domain.ErrMissingToken
//	token inválido    -> domain.ErrInvalidToken
//	sujeto inexistente -> domain.ErrUnauthorized
//	rol insuficiente  -> domain.ErrForbidden (solo en Authorize)
type Gate struct {
	users  repository.UserRepository
	secret string
}

// NewGate construye el gate con el store de credenciales y el secreto JWT.
func NewGate(users repository.UserRepository, secret string) *Gate {
	return &Gate{users: users, secret: secret}
}

// Authenticate valida el header Authorization ("Bearer <token>") y resuelve el
// sujeto del token contra el store. El rol devuelto es el del registro vivo.
func (g *Gate) Authenticate(ctx context.Context, authorization string) (*Identity, error) {
	if strings.TrimSpace(authorization) == "" {
		return nil, domain.ErrMissingToken
	}
	scheme, token, _ := strings.Cut(strings.TrimLeft(authorization, " "), " ")
	if !strings.EqualFold(scheme, "Bearer") {
		return nil, domain.ErrInvalidToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, domain.ErrMissingToken
	}
	claims, err := jwt.Parse(g.secret, token)
	if err != nil {
		return nil, domain.ErrInvalidToken
	}
	user, err := g.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	return &Identity{UserID: user.ID, Username: user.Username, Role: user.Role}, nil
}

// Authorize exige que la identidad tenga uno de los roles indicados.
func (g *Gate) Authorize(id *Identity, roles ...string) error {
	if id == nil {
		return domain.ErrUnauthorized
	}
	for _, r := range roles {
		if id.Role == r {
			return nil
		}
	}
	return domain.ErrForbidden
}
