package types

import (
	"bytes"
	"encoding/binary"

	sdkmath "cosmossdk.io/math"
	"golang.org/x/crypto/sha3"
)

const (
	// ModuleName is the codespace and store namespace of the ledger.
	ModuleName = "bridge"
)

var (
	// TransferKeyPrefix is the store prefix for transfer records.
	TransferKeyPrefix = []byte{0x01}

	// NonceKey stores the monotonically incrementing initiation nonce.
	NonceKey = []byte{0x02}

	// ParamsKey stores the ledger parameters.
	ParamsKey = []byte{0x03}
)

// TransferKey returns the store key for a transfer record.
func TransferKey(id TransferID) []byte {
	return append(TransferKeyPrefix, id[:]...)
}

// NewTransferID derives a transfer identifier from the initiation tuple and
// the ledger nonce. The nonce makes replays of identical economic parameters
// collide-free, and including the originator keeps the id unpredictable
// before the initiating call lands.
func NewTransferID(originator string, recipient RecipientID, hashLock Hash, nonce uint64, amount sdkmath.Int) TransferID {
	var nonceBz [8]byte
	binary.BigEndian.PutUint64(nonceBz[:], nonce)

	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(originator))
	h.Write(recipient[:])
	h.Write(hashLock[:])
	h.Write(nonceBz[:])
	h.Write(amount.BigInt().Bytes())

	var id TransferID
	copy(id[:], h.Sum(nil))
	return id
}

// HashSecret returns the keccak-256 commitment for a secret.
func HashSecret(secret []byte) Hash {
	h := sha3.NewLegacyKeccak256()
	h.Write(secret)
	var out Hash
	copy(out[:], h.Sum(nil))
	return out
}

// VerifySecret reports whether a secret hashes to the given commitment.
func VerifySecret(secret []byte, lock Hash) bool {
	sum := HashSecret(secret)
	return bytes.Equal(sum[:], lock[:])
}
