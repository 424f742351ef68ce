package keeper

import (
	"github.com/atomiclabs/bridge/x/bridge/types"
)

// InitGenesis loads a validated genesis state into the ledger store.
func (k *Keeper) InitGenesis(gs types.GenesisState) error {
	if err := gs.Validate(); err != nil {
		return err
	}
	if err := k.SetParams(gs.Params); err != nil {
		return err
	}
	batch := k.db.NewBatch()
	defer batch.Close()
	if err := k.setNonce(batch, gs.Nonce); err != nil {
		return err
	}
	if err := batch.Write(); err != nil {
		return err
	}
	for _, record := range gs.Transfers {
		if err := k.setTransfer(record); err != nil {
			return err
		}
	}
	return nil
}

// ExportGenesis exports the full ledger state, terminal records included.
func (k *Keeper) ExportGenesis() (*types.GenesisState, error) {
	records, err := k.ListTransfers()
	if err != nil {
		return nil, err
	}
	return types.NewGenesisState(k.GetParams(), k.GetNonce(), records), nil
}
