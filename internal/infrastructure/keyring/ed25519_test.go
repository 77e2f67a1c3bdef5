package keyring

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"

	"github.com/altuslabsxyz/suideploy/internal/domain/deploy"
)

const testSeedHex = "4ec5a9eefc0bb86027a6f3ba718793c813505acc25ed09447caf6a069accdd4b"

func TestFromHex(t *testing.T) {
	id, err := FromHex(testSeedHex)
	require.NoError(t, err)

	t.Run("deterministic", func(t *testing.T) {
		again, err := FromHex(testSeedHex)
		require.NoError(t, err)
		assert.Equal(t, id.Address(), again.Address())
	})

	t.Run("0x prefix", func(t *testing.T) {
		prefixed, err := FromHex("0x" + testSeedHex)
		require.NoError(t, err)
		assert.Equal(t, id.Address(), prefixed.Address())
	})

	t.Run("64-byte layout", func(t *testing.T) {
		full := testSeedHex + hex.EncodeToString(id.PublicKey())
		long, err := FromHex(full)
		require.NoError(t, err)
		assert.Equal(t, id.Address(), long.Address())
	})

	t.Run("address format", func(t *testing.T) {
		s := id.Address().String()
		assert.True(t, strings.HasPrefix(s, "0x"))
		assert.Len(t, s, 66)
		assert.Equal(t, AddressFromPublicKey(id.PublicKey()), id.Address())
	})
}

func TestFromHex_Errors(t *testing.T) {
	tests := []struct {
		name   string
		secret string
	}{
		{name: "unset", secret: ""},
		{name: "unset sentinel", secret: "empty"},
		{name: "not hex", secret: "zz" + testSeedHex[2:]},
		{name: "odd length", secret: testSeedHex[1:]},
		{name: "too short", secret: "abcd"},
		{name: "too long", secret: testSeedHex + "00"},
		{name: "mismatched public half", secret: testSeedHex + strings.Repeat("11", 32)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := FromHex(tt.secret)
			assert.Nil(t, id)

			var kerr *deploy.KeyError
			require.ErrorAs(t, err, &kerr)
		})
	}
}

func TestSignTransaction(t *testing.T) {
	id, err := FromHex(testSeedHex)
	require.NoError(t, err)

	tx := []byte{0x00, 0x00, 0x02, 0x01, 0x00}
	sig, err := id.SignTransaction(tx)
	require.NoError(t, err)

	ok, err := verifyTransaction(tx, sig)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = verifyTransaction(append(tx, 0x01), sig)
	require.NoError(t, err)
	assert.False(t, ok, "signature must not verify for different bytes")

	again, err := id.SignTransaction(tx)
	require.NoError(t, err)
	assert.Equal(t, sig, again, "ed25519 signatures are deterministic")

	_, err = id.SignTransaction(nil)
	assert.Error(t, err)
}

func TestVerifyTransaction_Malformed(t *testing.T) {
	_, err := verifyTransaction([]byte{1}, "!!!")
	assert.Error(t, err)

	_, err = verifyTransaction([]byte{1}, "AAAA")
	assert.Error(t, err)
}

// verifyTransaction checks a serialized signature produced by SignTransaction.
func verifyTransaction(txBytes []byte, signature string) (bool, error) {
	raw, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false, fmt.Errorf("signature is not base64: %w", err)
	}
	if len(raw) != 1+ed25519.SignatureSize+ed25519.PublicKeySize || raw[0] != SchemeEd25519 {
		return false, fmt.Errorf("not an ed25519 signature")
	}
	sig := raw[1 : 1+ed25519.SignatureSize]
	pub := ed25519.PublicKey(raw[1+ed25519.SignatureSize:])

	msg := append(append([]byte{}, transactionIntent...), txBytes...)
	digest := blake2b.Sum256(msg)
	return ed25519.Verify(pub, digest[:], sig), nil
}
