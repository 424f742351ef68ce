package types

import (
	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
)

const (
	TypeMsgInitiateTransfer = "initiate_transfer"
	TypeMsgCompleteTransfer = "complete_transfer"
	TypeMsgRefundTransfer   = "refund_transfer"
)

// MsgInitiateTransfer locks value under a hash commitment and a deadline.
// The locked total is the sum of a pre-approved wrapped amount pulled from
// the originator's custodian balance and value attached natively to the call.
type MsgInitiateTransfer struct {
	Originator      string      `json:"originator" yaml:"originator"`
	Recipient       RecipientID `json:"recipient" yaml:"recipient"`
	HashLock        Hash        `json:"hash_lock" yaml:"hash_lock"`
	SecondaryAmount sdkmath.Int `json:"secondary_amount" yaml:"secondary_amount"`
	AttachedAmount  sdkmath.Int `json:"attached_amount" yaml:"attached_amount"`
	LockDuration    uint64      `json:"lock_duration" yaml:"lock_duration"`
}

func NewMsgInitiateTransfer(originator string, recipient RecipientID, hashLock Hash, secondary, attached sdkmath.Int, lockDuration uint64) *MsgInitiateTransfer {
	return &MsgInitiateTransfer{
		Originator:      originator,
		Recipient:       recipient,
		HashLock:        hashLock,
		SecondaryAmount: secondary,
		AttachedAmount:  attached,
		LockDuration:    lockDuration,
	}
}

func (msg *MsgInitiateTransfer) Type() string { return TypeMsgInitiateTransfer }

// ValidateBasic performs stateless checks. The hash lock is caller-supplied
// and deliberately not validated for entropy; the recipient identifier is
// accepted without an existence check.
func (msg *MsgInitiateTransfer) ValidateBasic() error {
	if msg.Originator == "" {
		return errorsmod.Wrap(ErrInvalidOriginator, "originator cannot be empty")
	}
	if msg.SecondaryAmount.IsNil() || msg.SecondaryAmount.IsNegative() {
		return errorsmod.Wrap(ErrInvalidAmount, "secondary amount cannot be negative or nil")
	}
	if msg.AttachedAmount.IsNil() || msg.AttachedAmount.IsNegative() {
		return errorsmod.Wrap(ErrInvalidAmount, "attached amount cannot be negative or nil")
	}
	if !msg.SecondaryAmount.Add(msg.AttachedAmount).IsPositive() {
		return errorsmod.Wrap(ErrInvalidAmount, "total locked value must be positive")
	}
	if msg.LockDuration == 0 {
		return errorsmod.Wrap(ErrInvalidTimeLock, "lock duration must be positive")
	}
	return nil
}

type MsgInitiateTransferResponse struct {
	Id TransferID `json:"id" yaml:"id"`
}

// MsgCompleteTransfer unlocks an initialized transfer by revealing the
// secret. Any caller may complete; knowledge of the secret is the
// authorization.
type MsgCompleteTransfer struct {
	Caller string     `json:"caller" yaml:"caller"`
	Id     TransferID `json:"id" yaml:"id"`
	Secret []byte     `json:"secret" yaml:"secret"`
}

func NewMsgCompleteTransfer(caller string, id TransferID, secret []byte) *MsgCompleteTransfer {
	return &MsgCompleteTransfer{Caller: caller, Id: id, Secret: secret}
}

func (msg *MsgCompleteTransfer) Type() string { return TypeMsgCompleteTransfer }

// ValidateBasic performs stateless checks. The secret is an arbitrary byte
// sequence, empty included; only the hash comparison decides whether it
// unlocks the transfer.
func (msg *MsgCompleteTransfer) ValidateBasic() error {
	if msg.Id == (TransferID{}) {
		return errorsmod.Wrap(ErrTransferNotFound, "transfer id cannot be empty")
	}
	return nil
}

type MsgCompleteTransferResponse struct{}

// MsgRefundTransfer reclaims an expired transfer to its originator. Only the
// configured ledger owner may refund.
type MsgRefundTransfer struct {
	Caller string     `json:"caller" yaml:"caller"`
	Id     TransferID `json:"id" yaml:"id"`
}

func NewMsgRefundTransfer(caller string, id TransferID) *MsgRefundTransfer {
	return &MsgRefundTransfer{Caller: caller, Id: id}
}

func (msg *MsgRefundTransfer) Type() string { return TypeMsgRefundTransfer }

func (msg *MsgRefundTransfer) ValidateBasic() error {
	if msg.Caller == "" {
		return errorsmod.Wrap(ErrUnauthorized, "caller cannot be empty")
	}
	if msg.Id == (TransferID{}) {
		return errorsmod.Wrap(ErrTransferNotFound, "transfer id cannot be empty")
	}
	return nil
}

type MsgRefundTransferResponse struct{}
