// Package keeper implements the bridge transfer ledger: record storage,
// nonce management and the initiate/complete/refund state transitions.
package keeper

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	dbm "github.com/cosmos/cosmos-db"

	"github.com/atomiclabs/bridge/x/bridge/types"
)

// Keeper owns the transfer ledger. It is not safe for concurrent use; the
// hosting service serializes every operation (see server.Service).
type Keeper struct {
	db        dbm.DB
	custodian types.Custodian
	resolver  types.RecipientResolver
	clock     types.Clock
	logger    log.Logger
	emitter   types.EventEmitter
}

// Option configures optional keeper collaborators.
type Option func(*Keeper)

// WithEventEmitter routes ledger events to the given emitter.
func WithEventEmitter(emitter types.EventEmitter) Option {
	return func(k *Keeper) { k.emitter = emitter }
}

// NewKeeper constructs a ledger keeper over the given database and
// collaborators.
func NewKeeper(db dbm.DB, custodian types.Custodian, resolver types.RecipientResolver, clock types.Clock, logger log.Logger, opts ...Option) *Keeper {
	k := &Keeper{
		db:        db,
		custodian: custodian,
		resolver:  resolver,
		clock:     clock,
		logger:    logger.With("module", "x/"+types.ModuleName),
		emitter:   nopEmitter{},
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

type nopEmitter struct{}

func (nopEmitter) EmitEvent(types.Event) {}

// Logger returns the keeper's logger.
func (k *Keeper) Logger() log.Logger { return k.logger }

// SetParams stores the ledger parameters.
func (k *Keeper) SetParams(params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	bz, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("marshal params: %w", err)
	}
	return k.db.Set(types.ParamsKey, bz)
}

// GetParams returns the stored ledger parameters, or defaults if none were
// ever set.
func (k *Keeper) GetParams() types.Params {
	bz, err := k.db.Get(types.ParamsKey)
	if err != nil {
		panic(fmt.Errorf("params read: %w", err))
	}
	if bz == nil {
		return types.DefaultParams()
	}
	var params types.Params
	if err := json.Unmarshal(bz, &params); err != nil {
		panic(fmt.Errorf("params corrupt: %w", err))
	}
	return params
}

// GetTransfer returns the record for a transfer id.
func (k *Keeper) GetTransfer(id types.TransferID) (types.TransferRecord, error) {
	bz, err := k.db.Get(types.TransferKey(id))
	if err != nil {
		return types.TransferRecord{}, fmt.Errorf("transfer read: %w", err)
	}
	if bz == nil {
		return types.TransferRecord{}, errorsmod.Wrapf(types.ErrTransferNotFound, "id %s", id)
	}
	var record types.TransferRecord
	if err := json.Unmarshal(bz, &record); err != nil {
		return types.TransferRecord{}, fmt.Errorf("transfer %s corrupt: %w", id, err)
	}
	return record, nil
}

// HasTransfer reports whether a record exists for the id.
func (k *Keeper) HasTransfer(id types.TransferID) bool {
	ok, err := k.db.Has(types.TransferKey(id))
	if err != nil {
		panic(fmt.Errorf("transfer read: %w", err))
	}
	return ok
}

func (k *Keeper) setTransfer(record types.TransferRecord) error {
	bz, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal transfer %s: %w", record.Id, err)
	}
	return k.db.Set(types.TransferKey(record.Id), bz)
}

// IterateTransfers calls fn for every stored record until fn returns true.
func (k *Keeper) IterateTransfers(fn func(types.TransferRecord) bool) error {
	it, err := k.db.Iterator(types.TransferKeyPrefix, prefixEnd(types.TransferKeyPrefix))
	if err != nil {
		return fmt.Errorf("transfer iterator: %w", err)
	}
	defer it.Close()
	for ; it.Valid(); it.Next() {
		var record types.TransferRecord
		if err := json.Unmarshal(it.Value(), &record); err != nil {
			return fmt.Errorf("transfer at %x corrupt: %w", it.Key(), err)
		}
		if fn(record) {
			break
		}
	}
	return it.Error()
}

// GetNonce returns the next initiation nonce without consuming it.
func (k *Keeper) GetNonce() uint64 {
	bz, err := k.db.Get(types.NonceKey)
	if err != nil {
		panic(fmt.Errorf("nonce read: %w", err))
	}
	if bz == nil {
		return 0
	}
	return binary.BigEndian.Uint64(bz)
}

func (k *Keeper) setNonce(batch dbm.Batch, nonce uint64) error {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, nonce)
	return batch.Set(types.NonceKey, bz)
}

// prefixEnd returns the key immediately past every key with the prefix.
func prefixEnd(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		if end[i] < 0xff {
			end[i]++
			return end[:i+1]
		}
	}
	return nil
}
