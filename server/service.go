// Package server hosts the bridge ledger behind a strictly serialized
// service and exposes it over REST, a websocket event stream and prometheus
// metrics.
package server

import (
	"sync"

	"go.uber.org/zap"

	"github.com/atomiclabs/bridge/x/bridge/keeper"
	"github.com/atomiclabs/bridge/x/bridge/types"
)

// Service serializes every ledger operation behind one mutex. Each operation
// runs to completion before the next begins; ordering follows submission
// order into the mutex.
type Service struct {
	mu      sync.Mutex
	keeper  *keeper.Keeper
	logger  *zap.Logger
	metrics *Metrics
}

// NewService wraps a keeper. metrics may be nil.
func NewService(k *keeper.Keeper, logger *zap.Logger, metrics *Metrics) *Service {
	return &Service{keeper: k, logger: logger, metrics: metrics}
}

// Initiate locks funds and creates a transfer record.
func (s *Service) Initiate(msg *types.MsgInitiateTransfer) (types.TransferID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := s.keeper.Initiate(msg)
	s.metrics.observe("initiate", err)
	return id, err
}

// Complete unlocks a transfer with its secret.
func (s *Service) Complete(id types.TransferID, secret []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.keeper.Complete(id, secret)
	s.metrics.observe("complete", err)
	return err
}

// Refund reclaims an expired transfer to its originator.
func (s *Service) Refund(caller string, id types.TransferID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.keeper.Refund(caller, id)
	s.metrics.observe("refund", err)
	return err
}

// GetTransfer returns a single transfer record.
func (s *Service) GetTransfer(id types.TransferID) (types.TransferRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keeper.GetTransfer(id)
}

// ListTransfers returns all transfer records.
func (s *Service) ListTransfers() ([]types.TransferRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keeper.ListTransfers()
}
