package types

import (
	sdkmath "cosmossdk.io/math"
)

// Custodian is the value-custody collaborator. It holds the pooled balance
// backing all initialized transfers and moves funds on the ledger's behalf.
// Every mutation happens inside the same serialized operation as the state
// transition that triggers it.
type Custodian interface {
	// BalanceOf returns the wrapped balance held for an identity.
	BalanceOf(identity string) sdkmath.Int

	// PullFrom moves a pre-approved amount from an identity's wrapped
	// balance into the custody pool. It requires a prior Approve by the
	// identity and fails without side effects otherwise.
	PullFrom(identity string, amount sdkmath.Int) error

	// Wrap credits natively attached value into the custody pool and
	// returns the credited amount.
	Wrap(nativeAmount sdkmath.Int) sdkmath.Int

	// PayOut moves an amount from the custody pool to an identity's
	// wrapped balance.
	PayOut(identity string, amount sdkmath.Int) error
}

// RecipientResolver maps an opaque 32-byte recipient identifier to the
// payable identity the custodian understands. Addressing is a collaborator
// concern; the ledger only triggers payouts.
type RecipientResolver interface {
	Resolve(recipient RecipientID) (string, error)
}

// Clock is a monotonic, non-decreasing time source. The unit is opaque to
// the ledger; timelocks are stored and compared in the same unit.
type Clock interface {
	Now() uint64
}
