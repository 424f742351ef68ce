// Package types defines the data model, messages, errors and collaborator
// interfaces of the bridge transfer ledger.
package types

import (
	"encoding/hex"
	"fmt"

	sdkmath "cosmossdk.io/math"
)

// TransferState is the lifecycle state of a bridge transfer.
type TransferState byte

const (
	StateUnspecified TransferState = iota

	// StateInitialized means funds are locked and the transfer is waiting
	// for a secret reveal or a timelock expiry.
	StateInitialized

	// StateCompleted and StateRefunded are terminal.
	StateCompleted
	StateRefunded
)

func (s TransferState) String() string {
	switch s {
	case StateInitialized:
		return "INITIALIZED"
	case StateCompleted:
		return "COMPLETED"
	case StateRefunded:
		return "REFUNDED"
	default:
		return "UNSPECIFIED"
	}
}

// IsTerminal reports whether no further transition is possible.
func (s TransferState) IsTerminal() bool {
	return s == StateCompleted || s == StateRefunded
}

func (s TransferState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *TransferState) UnmarshalText(text []byte) error {
	switch string(text) {
	case "INITIALIZED":
		*s = StateInitialized
	case "COMPLETED":
		*s = StateCompleted
	case "REFUNDED":
		*s = StateRefunded
	case "UNSPECIFIED":
		*s = StateUnspecified
	default:
		return fmt.Errorf("unknown transfer state %q", text)
	}
	return nil
}

// TransferID is the keccak-derived identifier of a transfer.
type TransferID [32]byte

func (id TransferID) String() string { return hex.EncodeToString(id[:]) }

func (id TransferID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *TransferID) UnmarshalText(text []byte) error {
	return decode32(id[:], string(text), "transfer id")
}

// TransferIDFromHex parses a hex-encoded 32-byte transfer identifier.
func TransferIDFromHex(s string) (TransferID, error) {
	var id TransferID
	err := decode32(id[:], s, "transfer id")
	return id, err
}

// Hash is a 32-byte keccak-256 commitment.
type Hash [32]byte

func (h Hash) String() string { return hex.EncodeToString(h[:]) }

func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hash) UnmarshalText(text []byte) error {
	return decode32(h[:], string(text), "hash")
}

// HashFromHex parses a hex-encoded 32-byte hash.
func HashFromHex(s string) (Hash, error) {
	var h Hash
	err := decode32(h[:], s, "hash")
	return h, err
}

// RecipientID is the opaque 32-byte identifier of the intended unlocking
// party. It is not assumed to be an address on any particular chain; the
// custodian side resolves it to a payable identity.
type RecipientID [32]byte

func (r RecipientID) String() string { return hex.EncodeToString(r[:]) }

func (r RecipientID) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *RecipientID) UnmarshalText(text []byte) error {
	return decode32(r[:], string(text), "recipient")
}

// RecipientIDFromHex parses a hex-encoded 32-byte recipient identifier.
func RecipientIDFromHex(s string) (RecipientID, error) {
	var r RecipientID
	err := decode32(r[:], s, "recipient")
	return r, err
}

func decode32(dst []byte, s, name string) error {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	bz, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("invalid %s %q: %w", name, s, err)
	}
	if len(bz) != 32 {
		return fmt.Errorf("invalid %s length: got %d bytes, want 32", name, len(bz))
	}
	copy(dst, bz)
	return nil
}

// TransferRecord is the ledger entry for a single bridge transfer. Records
// are created by Initiate, mutated exactly once by Complete or Refund, and
// never deleted.
type TransferRecord struct {
	// Id is the keccak-derived transfer identifier.
	Id TransferID `json:"id" yaml:"id"`

	// Amount is the total locked value, the sum of the pre-approved and
	// attached components of the initiating call.
	Amount sdkmath.Int `json:"amount" yaml:"amount"`

	// Originator is the identity that locked the funds and receives them
	// back on refund.
	Originator string `json:"originator" yaml:"originator"`

	// Recipient is the opaque identifier of the intended unlocking party.
	Recipient RecipientID `json:"recipient" yaml:"recipient"`

	// HashLock is the keccak-256 commitment to the secret.
	HashLock Hash `json:"hash_lock" yaml:"hash_lock"`

	// TimeLock is the absolute expiry, in clock units, after which the
	// transfer becomes refundable.
	TimeLock uint64 `json:"time_lock" yaml:"time_lock"`

	// State is the lifecycle state.
	State TransferState `json:"state" yaml:"state"`
}

// Validate performs stateless sanity checks on a record.
func (r TransferRecord) Validate() error {
	if r.Id == (TransferID{}) {
		return fmt.Errorf("transfer id cannot be empty")
	}
	if r.Amount.IsNil() || !r.Amount.IsPositive() {
		return fmt.Errorf("transfer %s: amount must be positive", r.Id)
	}
	if r.Originator == "" {
		return fmt.Errorf("transfer %s: originator cannot be empty", r.Id)
	}
	if r.TimeLock == 0 {
		return fmt.Errorf("transfer %s: time lock cannot be zero", r.Id)
	}
	switch r.State {
	case StateInitialized, StateCompleted, StateRefunded:
	default:
		return fmt.Errorf("transfer %s: unknown state %d", r.Id, r.State)
	}
	return nil
}
