package keeper

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	errorsmod "cosmossdk.io/errors"

	"github.com/atomiclabs/bridge/x/bridge/types"
)

// Initiate locks value under a hash commitment and stores a new transfer
// record. The locked total combines the pre-approved secondary amount pulled
// from the originator's custodian balance and any natively attached amount,
// normalized into one pooled balance before locking.
//
// Fund pulls happen before any ledger write, so a custodian failure leaves
// both the ledger and the caller's funds untouched.
func (k *Keeper) Initiate(msg *types.MsgInitiateTransfer) (types.TransferID, error) {
	if err := msg.ValidateBasic(); err != nil {
		return types.TransferID{}, err
	}

	params := k.GetParams()
	now := k.clock.Now()
	if msg.LockDuration > (math.MaxUint64-now)/params.TimeLockMultiplier {
		return types.TransferID{}, errorsmod.Wrapf(types.ErrInvalidTimeLock,
			"lock duration %d with multiplier %d overflows the timelock", msg.LockDuration, params.TimeLockMultiplier)
	}
	timeLock := now + params.TimeLockMultiplier*msg.LockDuration

	total := msg.SecondaryAmount.Add(msg.AttachedAmount)
	if msg.SecondaryAmount.IsPositive() {
		if err := k.custodian.PullFrom(msg.Originator, msg.SecondaryAmount); err != nil {
			return types.TransferID{}, err
		}
	}
	if msg.AttachedAmount.IsPositive() {
		credited := k.custodian.Wrap(msg.AttachedAmount)
		total = msg.SecondaryAmount.Add(credited)
	}

	nonce := k.GetNonce()
	id := types.NewTransferID(msg.Originator, msg.Recipient, msg.HashLock, nonce, total)

	record := types.TransferRecord{
		Id:         id,
		Amount:     total,
		Originator: msg.Originator,
		Recipient:  msg.Recipient,
		HashLock:   msg.HashLock,
		TimeLock:   timeLock,
		State:      types.StateInitialized,
	}

	// Funds are already pooled; a failed ledger write here would strand
	// them, so backend write errors are fatal. Nonce and record land in one
	// batch.
	batch := k.db.NewBatch()
	defer batch.Close()
	if err := k.setNonce(batch, nonce+1); err != nil {
		panic(fmt.Errorf("nonce write: %w", err))
	}
	bz, err := json.Marshal(record)
	if err != nil {
		panic(fmt.Errorf("marshal transfer %s: %w", id, err))
	}
	if err := batch.Set(types.TransferKey(id), bz); err != nil {
		panic(fmt.Errorf("transfer write: %w", err))
	}
	if err := batch.Write(); err != nil {
		panic(fmt.Errorf("transfer write: %w", err))
	}

	k.emitter.EmitEvent(types.NewEvent(
		types.EventTypeTransferInitiated,
		types.NewAttribute(types.AttributeKeyTransferID, id.String()),
		types.NewAttribute(types.AttributeKeyAmount, total.String()),
		types.NewAttribute(types.AttributeKeyOriginator, msg.Originator),
		types.NewAttribute(types.AttributeKeyRecipient, msg.Recipient.String()),
		types.NewAttribute(types.AttributeKeyHashLock, msg.HashLock.String()),
		types.NewAttribute(types.AttributeKeyTimeLock, strconv.FormatUint(record.TimeLock, 10)),
	))
	k.logger.Info("transfer initiated",
		"id", id.String(),
		"amount", total.String(),
		"originator", msg.Originator,
		"time_lock", record.TimeLock,
	)
	return id, nil
}

// Complete transitions an initialized transfer to COMPLETED and pays the
// locked amount out toward the recipient. The secret is checked against the
// stored commitment before any state or fund movement, so a mismatch cannot
// leave partial execution behind. Any caller may complete; knowledge of the
// secret is the authorization.
func (k *Keeper) Complete(id types.TransferID, secret []byte) error {
	record, err := k.GetTransfer(id)
	if err != nil {
		return err
	}
	if record.State != types.StateInitialized {
		return errorsmod.Wrapf(types.ErrInvalidState, "transfer %s is %s", id, record.State)
	}
	if !types.VerifySecret(secret, record.HashLock) {
		return errorsmod.Wrapf(types.ErrHashLockMismatch, "transfer %s", id)
	}

	payee, err := k.resolver.Resolve(record.Recipient)
	if err != nil {
		return fmt.Errorf("resolve recipient of transfer %s: %w", id, err)
	}

	record.State = types.StateCompleted
	if err := k.setTransfer(record); err != nil {
		return err
	}
	// A payout shortfall is unreachable if the custody invariant holds;
	// should one happen, restore the record so the transfer stays claimable.
	if err := k.custodian.PayOut(payee, record.Amount); err != nil {
		record.State = types.StateInitialized
		if rbErr := k.setTransfer(record); rbErr != nil {
			panic(fmt.Errorf("rollback of transfer %s: %w", id, rbErr))
		}
		return err
	}

	k.emitter.EmitEvent(types.NewEvent(
		types.EventTypeTransferCompleted,
		types.NewAttribute(types.AttributeKeyTransferID, id.String()),
		types.NewAttribute(types.AttributeKeySecret, hex.EncodeToString(secret)),
	))
	k.logger.Info("transfer completed", "id", id.String(), "payee", payee, "amount", record.Amount.String())
	return nil
}

// Refund transitions an expired initialized transfer to REFUNDED and pays
// the locked amount back to the originator. Only the configured ledger owner
// may refund. The originator cannot self-refund; the owner issues refunds
// on originators' behalf once timelocks expire.
func (k *Keeper) Refund(caller string, id types.TransferID) error {
	params := k.GetParams()
	if params.Owner == "" || caller != params.Owner {
		return errorsmod.Wrapf(types.ErrUnauthorized, "caller %s is not the ledger owner", caller)
	}
	record, err := k.GetTransfer(id)
	if err != nil {
		return err
	}
	if record.State != types.StateInitialized {
		return errorsmod.Wrapf(types.ErrInvalidState, "transfer %s is %s", id, record.State)
	}
	now := k.clock.Now()
	if now <= record.TimeLock {
		return errorsmod.Wrapf(types.ErrTimeLockNotExpired, "transfer %s: now %d, expires %d", id, now, record.TimeLock)
	}

	record.State = types.StateRefunded
	if err := k.setTransfer(record); err != nil {
		return err
	}
	if err := k.custodian.PayOut(record.Originator, record.Amount); err != nil {
		record.State = types.StateInitialized
		if rbErr := k.setTransfer(record); rbErr != nil {
			panic(fmt.Errorf("rollback of transfer %s: %w", id, rbErr))
		}
		return err
	}

	k.emitter.EmitEvent(types.NewEvent(
		types.EventTypeTransferRefunded,
		types.NewAttribute(types.AttributeKeyTransferID, id.String()),
	))
	k.logger.Info("transfer refunded", "id", id.String(), "originator", record.Originator, "amount", record.Amount.String())
	return nil
}
