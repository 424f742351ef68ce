package watcher_test

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/require"

	"github.com/atomiclabs/bridge/relayer/watcher"
	"github.com/atomiclabs/bridge/x/bridge/types"
)

func TestParseReveal(t *testing.T) {
	var id types.TransferID
	id[0] = 0xaa
	secret := make([]byte, 32)
	secret[31] = 0x07

	lg := ethtypes.Log{
		Topics: []common.Hash{{}, common.BytesToHash(id[:])},
		Data:   secret,
	}

	gotID, gotSecret, err := watcher.ParseReveal(lg)
	require.NoError(t, err)
	require.Equal(t, id, gotID)
	require.Equal(t, secret, gotSecret)
}

func TestParseRevealRejectsMalformedLogs(t *testing.T) {
	_, _, err := watcher.ParseReveal(ethtypes.Log{})
	require.Error(t, err)

	_, _, err = watcher.ParseReveal(ethtypes.Log{
		Topics: []common.Hash{{}, {}},
		Data:   []byte{0x01},
	})
	require.Error(t, err)
}
