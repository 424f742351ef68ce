package keeper

import (
	"github.com/atomiclabs/bridge/x/bridge/types"
)

// ListTransfers returns every stored transfer record, terminal ones
// included.
func (k *Keeper) ListTransfers() ([]types.TransferRecord, error) {
	var records []types.TransferRecord
	err := k.IterateTransfers(func(record types.TransferRecord) bool {
		records = append(records, record)
		return false
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}
