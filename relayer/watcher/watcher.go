// Package watcher follows the counterparty EVM chain for secret reveals and
// completes the corresponding local transfers.
package watcher

import (
	"context"
	"fmt"
	"math/big"
	"time"

	errorsmod "cosmossdk.io/errors"
	"github.com/cenkalti/backoff/v4"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	ethtypes "github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"github.com/atomiclabs/bridge/relayer/config"
	"github.com/atomiclabs/bridge/x/bridge/types"
)

// revealTopic is the signature topic of the counterparty completion event:
// topic[1] carries the transfer id, the data word carries the secret.
var revealTopic = crypto.Keccak256Hash([]byte("BridgeTransferCompleted(bytes32,bytes32)"))

// Completer submits a completion to the local ledger.
type Completer interface {
	Complete(id types.TransferID, secret []byte) error
}

// Watcher polls counterparty logs and relays revealed secrets. A reveal on
// the counterparty side proves the recipient there has claimed, so the local
// leg is completable with the same secret.
type Watcher struct {
	client        *ethclient.Client
	contract      common.Address
	completer     Completer
	logger        *zap.Logger
	pollInterval  time.Duration
	confirmations uint64
	nextBlock     uint64
}

// New dials the counterparty RPC endpoint and builds a watcher.
func New(cfg config.WatcherConfig, completer Completer, logger *zap.Logger) (*Watcher, error) {
	client, err := ethclient.Dial(cfg.RPCEndpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to counterparty node: %w", err)
	}
	return &Watcher{
		client:        client,
		contract:      common.HexToAddress(cfg.ContractAddress),
		completer:     completer,
		logger:        logger,
		pollInterval:  cfg.PollInterval,
		confirmations: cfg.Confirmations,
		nextBlock:     cfg.StartBlock,
	}, nil
}

// Run polls until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	w.logger.Info("watcher started",
		zap.String("contract", w.contract.Hex()),
		zap.Uint64("from_block", w.nextBlock))

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.client.Close()
			return ctx.Err()
		case <-ticker.C:
			if err := w.poll(ctx); err != nil {
				w.logger.Warn("poll failed", zap.Error(err))
			}
		}
	}
}

func (w *Watcher) poll(ctx context.Context) error {
	head, err := w.blockNumber(ctx)
	if err != nil {
		return err
	}
	if head < w.confirmations {
		return nil
	}
	safe := head - w.confirmations
	if safe < w.nextBlock {
		return nil
	}

	query := ethereum.FilterQuery{
		FromBlock: new(big.Int).SetUint64(w.nextBlock),
		ToBlock:   new(big.Int).SetUint64(safe),
		Addresses: []common.Address{w.contract},
		Topics:    [][]common.Hash{{revealTopic}},
	}
	logs, err := w.client.FilterLogs(ctx, query)
	if err != nil {
		return fmt.Errorf("filter logs [%d, %d]: %w", w.nextBlock, safe, err)
	}

	if err := w.relay(logs); err != nil {
		// leave nextBlock so the range is polled again
		return err
	}

	w.nextBlock = safe + 1
	return nil
}

// relay submits revealed secrets to the local ledger. Reveals for transfers
// already in a terminal state are expected on replays and skipped; any other
// submission failure aborts so the remaining logs are retried next poll.
func (w *Watcher) relay(logs []ethtypes.Log) error {
	for _, lg := range logs {
		id, secret, err := ParseReveal(lg)
		if err != nil {
			w.logger.Warn("malformed reveal log",
				zap.Uint64("block", lg.BlockNumber),
				zap.Error(err))
			continue
		}
		if err := w.completer.Complete(id, secret); err != nil {
			if errorsmod.IsOf(err, types.ErrInvalidState) {
				w.logger.Debug("reveal for settled transfer",
					zap.String("transfer_id", id.String()))
				continue
			}
			return fmt.Errorf("complete transfer %s: %w", id, err)
		}
		w.logger.Info("completed transfer from counterparty reveal",
			zap.String("transfer_id", id.String()),
			zap.Uint64("block", lg.BlockNumber))
	}
	return nil
}

func (w *Watcher) blockNumber(ctx context.Context) (uint64, error) {
	var head uint64
	op := func() error {
		h, err := w.client.BlockNumber(ctx)
		if err != nil {
			return err
		}
		head = h
		return nil
	}
	bo := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 5), ctx)
	if err := backoff.Retry(op, bo); err != nil {
		return 0, fmt.Errorf("block number: %w", err)
	}
	return head, nil
}

// ParseReveal extracts the transfer id and secret from a completion log.
func ParseReveal(lg ethtypes.Log) (types.TransferID, []byte, error) {
	if len(lg.Topics) < 2 {
		return types.TransferID{}, nil, fmt.Errorf("expected 2 topics, got %d", len(lg.Topics))
	}
	if len(lg.Data) < 32 {
		return types.TransferID{}, nil, fmt.Errorf("expected 32 data bytes, got %d", len(lg.Data))
	}
	var id types.TransferID
	copy(id[:], lg.Topics[1].Bytes())
	secret := make([]byte, 32)
	copy(secret, lg.Data[:32])
	return id, secret, nil
}
