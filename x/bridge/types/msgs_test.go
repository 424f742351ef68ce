package types_test

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/atomiclabs/bridge/x/bridge/types"
)

func TestMsgInitiateTransferValidateBasic(t *testing.T) {
	recipient := types.RecipientID{0x01}
	hashLock := types.HashSecret([]byte("s"))

	tests := []struct {
		name    string
		msg     *types.MsgInitiateTransfer
		wantErr error
	}{
		{
			name: "valid combined funding",
			msg:  types.NewMsgInitiateTransfer("alice", recipient, hashLock, sdkmath.NewInt(50), sdkmath.NewInt(25), 3600),
		},
		{
			name: "valid attached only",
			msg:  types.NewMsgInitiateTransfer("alice", recipient, hashLock, sdkmath.ZeroInt(), sdkmath.NewInt(1), 1),
		},
		{
			name: "zero hash lock accepted",
			msg:  types.NewMsgInitiateTransfer("alice", recipient, types.Hash{}, sdkmath.NewInt(1), sdkmath.ZeroInt(), 1),
		},
		{
			name:    "empty originator",
			msg:     types.NewMsgInitiateTransfer("", recipient, hashLock, sdkmath.NewInt(1), sdkmath.ZeroInt(), 1),
			wantErr: types.ErrInvalidOriginator,
		},
		{
			name:    "zero total",
			msg:     types.NewMsgInitiateTransfer("alice", recipient, hashLock, sdkmath.ZeroInt(), sdkmath.ZeroInt(), 1),
			wantErr: types.ErrInvalidAmount,
		},
		{
			name:    "negative secondary",
			msg:     types.NewMsgInitiateTransfer("alice", recipient, hashLock, sdkmath.NewInt(-1), sdkmath.NewInt(2), 1),
			wantErr: types.ErrInvalidAmount,
		},
		{
			name:    "nil attached",
			msg:     types.NewMsgInitiateTransfer("alice", recipient, hashLock, sdkmath.NewInt(1), sdkmath.Int{}, 1),
			wantErr: types.ErrInvalidAmount,
		},
		{
			name:    "zero lock duration",
			msg:     types.NewMsgInitiateTransfer("alice", recipient, hashLock, sdkmath.NewInt(1), sdkmath.ZeroInt(), 0),
			wantErr: types.ErrInvalidTimeLock,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.msg.ValidateBasic()
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestMsgCompleteTransferValidateBasic(t *testing.T) {
	msg := types.NewMsgCompleteTransfer("anyone", types.TransferID{0x01}, []byte("secret"))
	require.NoError(t, msg.ValidateBasic())

	msg = types.NewMsgCompleteTransfer("anyone", types.TransferID{}, []byte("secret"))
	require.ErrorIs(t, msg.ValidateBasic(), types.ErrTransferNotFound)

	// the empty byte sequence is a legal secret
	msg = types.NewMsgCompleteTransfer("anyone", types.TransferID{0x01}, nil)
	require.NoError(t, msg.ValidateBasic())
}

func TestMsgRefundTransferValidateBasic(t *testing.T) {
	msg := types.NewMsgRefundTransfer("owner", types.TransferID{0x01})
	require.NoError(t, msg.ValidateBasic())

	msg = types.NewMsgRefundTransfer("", types.TransferID{0x01})
	require.ErrorIs(t, msg.ValidateBasic(), types.ErrUnauthorized)

	msg = types.NewMsgRefundTransfer("owner", types.TransferID{})
	require.ErrorIs(t, msg.ValidateBasic(), types.ErrTransferNotFound)
}
