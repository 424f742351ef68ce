package types

import (
	"fmt"
)

// GenesisState is the full exportable state of the ledger: parameters, the
// initiation nonce and every transfer record, terminal ones included.
type GenesisState struct {
	Params    Params           `json:"params" yaml:"params"`
	Nonce     uint64           `json:"nonce" yaml:"nonce"`
	Transfers []TransferRecord `json:"transfers" yaml:"transfers"`
}

// NewGenesisState constructs a genesis state.
func NewGenesisState(params Params, nonce uint64, transfers []TransferRecord) *GenesisState {
	return &GenesisState{Params: params, Nonce: nonce, Transfers: transfers}
}

// DefaultGenesis returns an empty ledger with default parameters.
func DefaultGenesis() *GenesisState {
	return NewGenesisState(DefaultParams(), 0, nil)
}

// Validate performs basic genesis state validation returning an error upon
// any failure.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}
	seen := make(map[TransferID]struct{}, len(gs.Transfers))
	for _, record := range gs.Transfers {
		if err := record.Validate(); err != nil {
			return err
		}
		if _, ok := seen[record.Id]; ok {
			return fmt.Errorf("duplicate transfer id %s", record.Id)
		}
		seen[record.Id] = struct{}{}
	}
	if gs.Nonce < uint64(len(gs.Transfers)) {
		return fmt.Errorf("nonce %d lower than transfer count %d", gs.Nonce, len(gs.Transfers))
	}
	return nil
}
