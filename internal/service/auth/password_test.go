package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptVerifier_HashAndCompare(t *testing.T) {
	t.Parallel()

	v := NewBcryptVerifier(bcrypt.MinCost)

	hashed, err := v.Hash("senha-secreta")
	require.NoError(t, err)
	assert.NotEqual(t, "senha-secreta", hashed)

	cost, err := bcrypt.Cost([]byte(hashed))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	assert.NoError(t, v.Compare(hashed, "senha-secreta"))
	assert.ErrorIs(t, v.Compare(hashed, "outra-senha"), bcrypt.ErrMismatchedHashAndPassword)
}

func TestNewBcryptVerifier_InvalidCostFallsBack(t *testing.T) {
	t.Parallel()

	assert.Equal(t, bcrypt.DefaultCost, NewBcryptVerifier(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcryptVerifier(99).cost)
	assert.Equal(t, 12, NewBcryptVerifier(12).cost)
}

func TestBcryptVerifier_HashTooLong(t *testing.T) {
	t.Parallel()

	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}

	_, err := NewBcryptVerifier(bcrypt.MinCost).Hash(string(long))
	assert.Error(t, err)
}
