// Package custody implements the pooled value custodian backing the bridge
// ledger: per-identity wrapped balances, allowances toward the ledger, a
// wrap path for natively attached value, and payouts from the pool.
package custody

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"

	"github.com/atomiclabs/bridge/x/bridge/types"
)

const codespace = "custody"

var (
	ErrInsufficientAllowance      = errorsmod.Register(codespace, 2, "insufficient allowance")
	ErrInsufficientBalance        = errorsmod.Register(codespace, 3, "insufficient balance")
	ErrInsufficientCustodyBalance = errorsmod.Register(codespace, 4, "insufficient custody balance")
)

// storePrefix namespaces custodian keys; the custodian usually shares its
// database with the ledger keeper, whose keys occupy the raw single-byte
// prefixes.
var storePrefix = []byte("s/custody/")

var (
	balanceKeyPrefix   = []byte{0x01}
	allowanceKeyPrefix = []byte{0x02}
	poolKey            = []byte{0x03}
)

func balanceKey(identity string) []byte {
	return append(balanceKeyPrefix, []byte(identity)...)
}

func allowanceKey(identity string) []byte {
	return append(allowanceKeyPrefix, []byte(identity)...)
}

// Custodian holds and moves the fungible value backing transfers. All value
// is a single wrapped denomination; natively attached value is wrapped 1:1.
//
// It implements types.Custodian. Mutations are only ever driven by the
// ledger inside its serialized execution, so no internal locking is done.
type Custodian struct {
	db dbm.DB
}

var _ types.Custodian = (*Custodian)(nil)

// New creates a custodian over the given database. Keys are kept under the
// custodian's own namespace, so the database may be shared with the ledger.
func New(db dbm.DB) *Custodian {
	return &Custodian{db: dbm.NewPrefixDB(db, storePrefix)}
}

// BalanceOf returns the wrapped balance held for an identity.
func (c *Custodian) BalanceOf(identity string) sdkmath.Int {
	return c.getInt(balanceKey(identity))
}

// Allowance returns the amount an identity has authorized the ledger to pull.
func (c *Custodian) Allowance(identity string) sdkmath.Int {
	return c.getInt(allowanceKey(identity))
}

// PoolBalance returns the pooled custody balance backing all initialized
// transfers.
func (c *Custodian) PoolBalance() sdkmath.Int {
	return c.getInt(poolKey)
}

// Mint credits wrapped value to an identity. Used to seed balances from
// genesis and in tests; a production deployment credits balances through
// Wrap and PayOut only.
func (c *Custodian) Mint(identity string, amount sdkmath.Int) {
	c.setInt(balanceKey(identity), c.BalanceOf(identity).Add(amount))
}

// Approve authorizes the ledger to pull up to amount from the identity's
// wrapped balance. The allowance is absolute, not additive.
func (c *Custodian) Approve(identity string, amount sdkmath.Int) {
	c.setInt(allowanceKey(identity), amount)
}

// PullFrom moves amount from the identity's wrapped balance into the pool,
// consuming allowance. It fails without any side effect if either the
// allowance or the balance cannot cover the amount.
func (c *Custodian) PullFrom(identity string, amount sdkmath.Int) error {
	allowance := c.Allowance(identity)
	if allowance.LT(amount) {
		return errorsmod.Wrapf(ErrInsufficientAllowance, "identity %s: allowance %s, need %s", identity, allowance, amount)
	}
	balance := c.BalanceOf(identity)
	if balance.LT(amount) {
		return errorsmod.Wrapf(ErrInsufficientBalance, "identity %s: balance %s, need %s", identity, balance, amount)
	}

	c.setInt(allowanceKey(identity), allowance.Sub(amount))
	c.setInt(balanceKey(identity), balance.Sub(amount))
	c.setInt(poolKey, c.PoolBalance().Add(amount))
	return nil
}

// Wrap credits natively attached value into the pool 1:1 and returns the
// credited amount.
func (c *Custodian) Wrap(nativeAmount sdkmath.Int) sdkmath.Int {
	c.setInt(poolKey, c.PoolBalance().Add(nativeAmount))
	return nativeAmount
}

// PayOut moves amount from the pool to the identity's wrapped balance.
// A shortfall here means a ledger invariant was broken upstream.
func (c *Custodian) PayOut(identity string, amount sdkmath.Int) error {
	pool := c.PoolBalance()
	if pool.LT(amount) {
		return errorsmod.Wrapf(ErrInsufficientCustodyBalance, "pool %s, need %s", pool, amount)
	}
	c.setInt(poolKey, pool.Sub(amount))
	c.setInt(balanceKey(identity), c.BalanceOf(identity).Add(amount))
	return nil
}

func (c *Custodian) getInt(key []byte) sdkmath.Int {
	bz, err := c.db.Get(key)
	if err != nil {
		panic(fmt.Errorf("custody store read: %w", err))
	}
	if bz == nil {
		return sdkmath.ZeroInt()
	}
	var v sdkmath.Int
	if err := v.Unmarshal(bz); err != nil {
		panic(fmt.Errorf("custody store corrupt at %x: %w", key, err))
	}
	return v
}

func (c *Custodian) setInt(key []byte, v sdkmath.Int) {
	bz, err := v.Marshal()
	if err != nil {
		panic(fmt.Errorf("custody store encode: %w", err))
	}
	if err := c.db.Set(key, bz); err != nil {
		panic(fmt.Errorf("custody store write: %w", err))
	}
}
