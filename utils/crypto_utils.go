package utils

import (
	"crypto/sha256"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/pkg/errors"
)

// Length of a hex encoded SHA256 digest.
const DIGEST_HEX_LENGTH = sha256.Size * 2

var (
	ErrInvalidDigest     = errors.New("digest must be 32 bytes")
	ErrInvalidPrivateKey = errors.New("invalid private key")
	ErrInvalidPublicKey  = errors.New("invalid public key")
)

// GenerateKeyPair generates a new secp256k1 key pair.
func GenerateKeyPair() (*btcec.PrivateKey, *btcec.PublicKey, error) {
	sk, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, nil, errors.Wrap(err, "generate key pair")
	}
	return sk, sk.PubKey(), nil
}

// PrivateKeyToBytes returns the 32 byte scalar of the private key.
func PrivateKeyToBytes(sk *btcec.PrivateKey) []byte {
	return sk.Serialize()
}

// BytesToPrivateKey restores a private key from its 32 byte scalar.
func BytesToPrivateKey(b []byte) (*btcec.PrivateKey, error) {
	if len(b) != btcec.PrivKeyBytesLen {
		return nil, ErrInvalidPrivateKey
	}
	sk, _ := btcec.PrivKeyFromBytes(b)
	return sk, nil
}

// PublicKeyToHex encodes the compressed public key. This is also the address of its owner.
func PublicKeyToHex(pk *btcec.PublicKey) string {
	return BytesToHex(pk.SerializeCompressed())
}

// HexToPublicKey parses an address back into a public key.
func HexToPublicKey(s string) (*btcec.PublicKey, error) {
	b, err := HexToBytes(s)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidPublicKey, err.Error())
	}
	pk, err := btcec.ParsePubKey(b)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidPublicKey, err.Error())
	}
	return pk, nil
}

// Hash message using SHA256
func SHA256(msg []byte) []byte {
	digest := sha256.Sum256(msg)
	return digest[:]
}

// HashFields digests the fields in the given order. Every field is prefixed with its length so
// that moving bytes from one field into its neighbour changes the digest.
func HashFields(fields ...[]byte) string {
	h := sha256.New()
	for _, f := range fields {
		h.Write(Int64ToBytes(int64(len(f))))
		h.Write(f)
	}
	return BytesToHex(h.Sum(nil))
}

// Sign a 32 byte digest with provided private key. The signature is DER encoded.
func Sign(digest []byte, sk *btcec.PrivateKey) ([]byte, error) {
	if len(digest) != sha256.Size {
		return nil, ErrInvalidDigest
	}
	if sk == nil {
		return nil, ErrInvalidPrivateKey
	}
	return ecdsa.Sign(sk, digest).Serialize(), nil
}

// Verify the given signature matches the digest. Any malformed input yields false.
func Verify(digest []byte, pk *btcec.PublicKey, signature []byte) bool {
	if pk == nil || len(digest) != sha256.Size || len(signature) == 0 {
		return false
	}
	sig, err := ecdsa.ParseDERSignature(signature)
	if err != nil {
		return false
	}
	return sig.Verify(digest, pk)
}
