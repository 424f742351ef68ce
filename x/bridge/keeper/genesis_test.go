package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/atomiclabs/bridge/x/bridge/types"
)

func TestGenesisRoundTrip(t *testing.T) {
	f := defaultFixture(t)
	a := f.initiate(t, 0, 10, 60)
	b := f.initiate(t, 0, 20, 60)
	require.NoError(t, f.k.Complete(a, secret))

	exported, err := f.k.ExportGenesis()
	require.NoError(t, err)
	require.Equal(t, uint64(2), exported.Nonce)
	require.Len(t, exported.Transfers, 2)
	require.NoError(t, exported.Validate())

	// load into a fresh ledger
	g := setupKeeper(t, types.DefaultParams())
	require.NoError(t, g.k.InitGenesis(*exported))

	require.Equal(t, exported.Nonce, g.k.GetNonce())
	require.Equal(t, exported.Params, g.k.GetParams())

	restored, err := g.k.GetTransfer(a)
	require.NoError(t, err)
	require.Equal(t, types.StateCompleted, restored.State)

	restored, err = g.k.GetTransfer(b)
	require.NoError(t, err)
	require.Equal(t, types.StateInitialized, restored.State)
}

func TestInitGenesisRejectsInvalidState(t *testing.T) {
	f := defaultFixture(t)
	gs := types.NewGenesisState(types.NewParams("owner", 0), 0, nil)
	require.Error(t, f.k.InitGenesis(*gs))
}
