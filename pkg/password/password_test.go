package password_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/stockroom-api/pkg/password"
)

func TestHash_SalDistintaEnCadaLlamada(t *testing.T) {
	h := password.NewHasher(bcrypt.MinCost)

	a, err := h.Hash("pw1")
	require.NoError(t, err)
	b, err := h.Hash("pw1")
	require.NoError(t, err)

	assert.NotEqual(t, a, b, "el mismo input debe producir hashes distintos")
	assert.NotContains(t, a, "pw1")
}

func TestVerify(t *testing.T) {
	h := password.NewHasher(bcrypt.MinCost)
	hashed, err := h.Hash("correcta")
	require.NoError(t, err)

	assert.True(t, h.Verify("correcta", hashed))
	assert.False(t, h.Verify("incorrecta", hashed))
	assert.False(t, h.Verify("correcta", "no-es-un-hash"))
}

func TestNewHasher_CostFueraDeRango(t *testing.T) {
	h := password.NewHasher(99)
	hashed, err := h.Hash("x")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, password.DefaultCost, cost)
}
