package types

import (
	"fmt"
)

// DefaultTimeLockMultiplier leaves caller-supplied lock durations untouched.
// Operators can widen the refund window by raising it.
const DefaultTimeLockMultiplier = 1

// Params are the ledger-level parameters fixed at construction (or genesis).
type Params struct {
	// Owner is the privileged identity allowed to issue refunds. Refunds
	// are deliberately not originator-operated; the owner acts on behalf
	// of originators once timelocks expire.
	Owner string `json:"owner" yaml:"owner"`

	// TimeLockMultiplier scales caller-supplied lock durations before the
	// absolute expiry is computed.
	TimeLockMultiplier uint64 `json:"time_lock_multiplier" yaml:"time_lock_multiplier"`
}

// NewParams constructs ledger parameters.
func NewParams(owner string, timeLockMultiplier uint64) Params {
	return Params{Owner: owner, TimeLockMultiplier: timeLockMultiplier}
}

// DefaultParams returns parameters with no owner set. An owner must be
// configured before refunds can succeed.
func DefaultParams() Params {
	return Params{TimeLockMultiplier: DefaultTimeLockMultiplier}
}

// Validate checks parameter well-formedness.
func (p Params) Validate() error {
	if p.TimeLockMultiplier == 0 {
		return fmt.Errorf("time lock multiplier must be at least 1")
	}
	return nil
}
