package types_test

import (
	"encoding/json"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/atomiclabs/bridge/x/bridge/types"
)

func validRecord() types.TransferRecord {
	return types.TransferRecord{
		Id:         types.TransferID{0x01},
		Amount:     sdkmath.NewInt(100),
		Originator: "originator",
		Recipient:  types.RecipientID{0x02},
		HashLock:   types.HashSecret([]byte("secret")),
		TimeLock:   1000,
		State:      types.StateInitialized,
	}
}

func TestTransferStateString(t *testing.T) {
	require.Equal(t, "INITIALIZED", types.StateInitialized.String())
	require.Equal(t, "COMPLETED", types.StateCompleted.String())
	require.Equal(t, "REFUNDED", types.StateRefunded.String())
	require.Equal(t, "UNSPECIFIED", types.StateUnspecified.String())
}

func TestTransferStateTerminal(t *testing.T) {
	require.False(t, types.StateInitialized.IsTerminal())
	require.True(t, types.StateCompleted.IsTerminal())
	require.True(t, types.StateRefunded.IsTerminal())
}

func TestTransferIDHexRoundTrip(t *testing.T) {
	id := types.TransferID{0xde, 0xad, 0xbe, 0xef}
	parsed, err := types.TransferIDFromHex(id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)

	parsed, err = types.TransferIDFromHex("0x" + id.String())
	require.NoError(t, err)
	require.Equal(t, id, parsed)

	_, err = types.TransferIDFromHex("abcd")
	require.Error(t, err)
	_, err = types.TransferIDFromHex("zz")
	require.Error(t, err)
}

func TestRecordJSONRoundTrip(t *testing.T) {
	record := validRecord()
	bz, err := json.Marshal(record)
	require.NoError(t, err)
	require.Contains(t, string(bz), `"INITIALIZED"`)

	var decoded types.TransferRecord
	require.NoError(t, json.Unmarshal(bz, &decoded))
	require.Equal(t, record, decoded)
}

func TestRecordValidate(t *testing.T) {
	require.NoError(t, validRecord().Validate())

	record := validRecord()
	record.Id = types.TransferID{}
	require.Error(t, record.Validate())

	record = validRecord()
	record.Amount = sdkmath.ZeroInt()
	require.Error(t, record.Validate())

	record = validRecord()
	record.Originator = ""
	require.Error(t, record.Validate())

	record = validRecord()
	record.TimeLock = 0
	require.Error(t, record.Validate())

	record = validRecord()
	record.State = types.StateUnspecified
	require.Error(t, record.Validate())
}
