// Package password encapsula el hash de contraseñas con bcrypt.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost factor bcrypt por defecto (10).
const DefaultCost = bcrypt.DefaultCost

// Hasher calcula y verifica hashes bcrypt. La sal es aleatoria por llamada
// y queda embebida en el hash resultante.
type Hasher struct {
	cost int
}

// NewHasher construye el hasher. Un cost fuera de rango usa DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash devuelve el hash bcrypt de plain.
func (h *Hasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("password: hash: %w", err)
	}
	return string(b), nil
}

// Verify compara plain contra hashed en tiempo constante.
func (h *Hasher) Verify(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
