package keeper

import (
	"context"

	"github.com/atomiclabs/bridge/x/bridge/types"
)

// MsgServer is the message-level entrypoint surface of the ledger.
type MsgServer interface {
	InitiateTransfer(ctx context.Context, msg *types.MsgInitiateTransfer) (*types.MsgInitiateTransferResponse, error)
	CompleteTransfer(ctx context.Context, msg *types.MsgCompleteTransfer) (*types.MsgCompleteTransferResponse, error)
	RefundTransfer(ctx context.Context, msg *types.MsgRefundTransfer) (*types.MsgRefundTransferResponse, error)
}

type msgServer struct {
	*Keeper
}

// NewMsgServerImpl returns the MsgServer implementation backed by the keeper.
func NewMsgServerImpl(k *Keeper) MsgServer {
	return &msgServer{Keeper: k}
}

func (m *msgServer) InitiateTransfer(_ context.Context, msg *types.MsgInitiateTransfer) (*types.MsgInitiateTransferResponse, error) {
	id, err := m.Initiate(msg)
	if err != nil {
		return nil, err
	}
	return &types.MsgInitiateTransferResponse{Id: id}, nil
}

func (m *msgServer) CompleteTransfer(_ context.Context, msg *types.MsgCompleteTransfer) (*types.MsgCompleteTransferResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := m.Complete(msg.Id, msg.Secret); err != nil {
		return nil, err
	}
	return &types.MsgCompleteTransferResponse{}, nil
}

func (m *msgServer) RefundTransfer(_ context.Context, msg *types.MsgRefundTransfer) (*types.MsgRefundTransferResponse, error) {
	if err := msg.ValidateBasic(); err != nil {
		return nil, err
	}
	if err := m.Refund(msg.Caller, msg.Id); err != nil {
		return nil, err
	}
	return &types.MsgRefundTransferResponse{}, nil
}
