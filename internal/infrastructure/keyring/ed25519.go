// Package keyring derives the deployer's signing identity.
package keyring

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/altuslabsxyz/suideploy/internal/domain/deploy"
)

// SchemeEd25519 is Sui's signature scheme flag for Ed25519.
const SchemeEd25519 byte = 0x00

// transactionIntent is the intent prefix for transaction data:
// scope TransactionData, version V0, app id Sui.
var transactionIntent = []byte{0, 0, 0}

// unsetSentinel is what an unset PRIVATE_KEY used to default to.
const unsetSentinel = "empty"

// Ed25519Identity is a Sui Ed25519 keypair. It implements ports.Signer.
type Ed25519Identity struct {
	priv    ed25519.PrivateKey
	pub     ed25519.PublicKey
	address deploy.Address
}

// FromHex derives an identity from a hex encoded secret. Both the 32-byte
// seed and the 64-byte seed||public key layouts are accepted, with or without
// a 0x prefix.
func FromHex(secretHex string) (*Ed25519Identity, error) {
	s := strings.TrimSpace(secretHex)
	if s == "" || s == unsetSentinel {
		return nil, &deploy.KeyError{Message: "PRIVATE_KEY is not set"}
	}
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")

	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, &deploy.KeyError{Message: "secret is not valid hex"}
	}
	return FromBytes(raw)
}

// FromBytes derives an identity from raw secret bytes.
func FromBytes(raw []byte) (*Ed25519Identity, error) {
	var priv ed25519.PrivateKey
	switch len(raw) {
	case ed25519.SeedSize:
		priv = ed25519.NewKeyFromSeed(raw)
	case ed25519.PrivateKeySize:
		priv = ed25519.NewKeyFromSeed(raw[:ed25519.SeedSize])
		if !priv.Public().(ed25519.PublicKey).Equal(ed25519.PublicKey(raw[ed25519.SeedSize:])) {
			return nil, &deploy.KeyError{Message: "public half of the 64-byte secret does not match its seed"}
		}
	default:
		return nil, &deploy.KeyError{
			Message: fmt.Sprintf("secret must be %d or %d bytes, got %d", ed25519.SeedSize, ed25519.PrivateKeySize, len(raw)),
		}
	}

	pub := priv.Public().(ed25519.PublicKey)
	return &Ed25519Identity{
		priv:    priv,
		pub:     pub,
		address: AddressFromPublicKey(pub),
	}, nil
}

// AddressFromPublicKey computes blake2b-256(flag || pubkey).
func AddressFromPublicKey(pub ed25519.PublicKey) deploy.Address {
	buf := make([]byte, 0, 1+len(pub))
	buf = append(buf, SchemeEd25519)
	buf = append(buf, pub...)
	return deploy.Address(blake2b.Sum256(buf))
}

// Address returns the Sui address of the key.
func (k *Ed25519Identity) Address() deploy.Address {
	return k.address
}

// PublicKey returns the raw public key.
func (k *Ed25519Identity) PublicKey() ed25519.PublicKey {
	return k.pub
}

// SignTransaction signs BCS transaction data. The signed message is
// blake2b-256(intent || txBytes) and the result is base64(flag || sig || pubkey).
func (k *Ed25519Identity) SignTransaction(txBytes []byte) (string, error) {
	if len(txBytes) == 0 {
		return "", fmt.Errorf("empty transaction")
	}
	msg := make([]byte, 0, len(transactionIntent)+len(txBytes))
	msg = append(msg, transactionIntent...)
	msg = append(msg, txBytes...)
	digest := blake2b.Sum256(msg)

	sig := ed25519.Sign(k.priv, digest[:])

	serialized := make([]byte, 0, 1+len(sig)+len(k.pub))
	serialized = append(serialized, SchemeEd25519)
	serialized = append(serialized, sig...)
	serialized = append(serialized, k.pub...)
	return base64.StdEncoding.EncodeToString(serialized), nil
}
