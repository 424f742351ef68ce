package keeper_test

import (
	"errors"
	"testing"

	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/stretchr/testify/require"

	"github.com/atomiclabs/bridge/x/bridge/keeper"
	"github.com/atomiclabs/bridge/x/bridge/types"
)

func mockFixture(t *testing.T, custodian types.Custodian, resolver types.RecipientResolver) (*keeper.Keeper, *manualClock) {
	t.Helper()
	clock := &manualClock{now: 1_000_000}
	k := keeper.NewKeeper(dbm.NewMemDB(), custodian, resolver, clock, log.NewNopLogger())
	require.NoError(t, k.SetParams(types.NewParams(owner, 1)))
	return k, clock
}

func TestInitiatePullsExactSecondaryAmount(t *testing.T) {
	var pulledFrom string
	var pulled sdkmath.Int
	wrapped := false

	custodian := &custodianMock{
		PullFromFunc: func(identity string, amount sdkmath.Int) error {
			pulledFrom, pulled = identity, amount
			return nil
		},
		WrapFunc: func(nativeAmount sdkmath.Int) sdkmath.Int {
			wrapped = true
			return nativeAmount
		},
	}
	k, _ := mockFixture(t, custodian, &resolverMock{})

	_, err := k.Initiate(types.NewMsgInitiateTransfer(
		originator, recipient, types.HashSecret(secret),
		sdkmath.NewInt(42), sdkmath.ZeroInt(), 60,
	))
	require.NoError(t, err)
	require.Equal(t, originator, pulledFrom)
	require.Equal(t, sdkmath.NewInt(42), pulled)
	// nothing attached, nothing wrapped
	require.False(t, wrapped)
}

func TestInitiateSkipsPullWhenNoSecondary(t *testing.T) {
	custodian := &custodianMock{
		PullFromFunc: func(string, sdkmath.Int) error {
			t.Fatal("PullFrom must not be called for zero secondary amount")
			return nil
		},
	}
	k, _ := mockFixture(t, custodian, &resolverMock{})

	_, err := k.Initiate(types.NewMsgInitiateTransfer(
		originator, recipient, types.HashSecret(secret),
		sdkmath.ZeroInt(), sdkmath.NewInt(5), 60,
	))
	require.NoError(t, err)
}

func TestInitiatePropagatesCustodianError(t *testing.T) {
	pullErr := errors.New("custodian unavailable")
	k, _ := mockFixture(t, &custodianMock{
		PullFromFunc: func(string, sdkmath.Int) error { return pullErr },
	}, &resolverMock{})

	_, err := k.Initiate(types.NewMsgInitiateTransfer(
		originator, recipient, types.HashSecret(secret),
		sdkmath.NewInt(1), sdkmath.ZeroInt(), 60,
	))
	require.ErrorIs(t, err, pullErr)
	require.Equal(t, uint64(0), k.GetNonce())
}

func TestCompleteRollsBackStateOnPayoutFailure(t *testing.T) {
	payErr := errors.New("pool unavailable")
	failPayout := true
	custodian := &custodianMock{
		PayOutFunc: func(string, sdkmath.Int) error {
			if failPayout {
				return payErr
			}
			return nil
		},
	}
	k, _ := mockFixture(t, custodian, &resolverMock{})

	id, err := k.Initiate(types.NewMsgInitiateTransfer(
		originator, recipient, types.HashSecret(secret),
		sdkmath.ZeroInt(), sdkmath.NewInt(1), 60,
	))
	require.NoError(t, err)

	require.ErrorIs(t, k.Complete(id, secret), payErr)

	// the transition rolled back with the failed payout
	record, getErr := k.GetTransfer(id)
	require.NoError(t, getErr)
	require.Equal(t, types.StateInitialized, record.State)

	// still claimable once the payout path recovers
	failPayout = false
	require.NoError(t, k.Complete(id, secret))
}

func TestRefundRollsBackStateOnPayoutFailure(t *testing.T) {
	payErr := errors.New("pool unavailable")
	k, clock := mockFixture(t, &custodianMock{
		PayOutFunc: func(string, sdkmath.Int) error { return payErr },
	}, &resolverMock{})

	id, err := k.Initiate(types.NewMsgInitiateTransfer(
		originator, recipient, types.HashSecret(secret),
		sdkmath.ZeroInt(), sdkmath.NewInt(1), 60,
	))
	require.NoError(t, err)
	clock.now += 61

	require.ErrorIs(t, k.Refund(owner, id), payErr)

	record, getErr := k.GetTransfer(id)
	require.NoError(t, getErr)
	require.Equal(t, types.StateInitialized, record.State)
}

func TestCompleteLeavesStateOnResolverFailure(t *testing.T) {
	resolveErr := errors.New("no payable identity")
	k, _ := mockFixture(t, &custodianMock{}, &resolverMock{
		ResolveFunc: func(types.RecipientID) (string, error) { return "", resolveErr },
	})

	id, err := k.Initiate(types.NewMsgInitiateTransfer(
		originator, recipient, types.HashSecret(secret),
		sdkmath.ZeroInt(), sdkmath.NewInt(1), 60,
	))
	require.NoError(t, err)

	err = k.Complete(id, secret)
	require.ErrorIs(t, err, resolveErr)

	record, getErr := k.GetTransfer(id)
	require.NoError(t, getErr)
	require.Equal(t, types.StateInitialized, record.State)
}
