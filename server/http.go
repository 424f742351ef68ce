package server

import (
	"encoding/hex"
	"encoding/json"
	"net/http"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/atomiclabs/bridge/x/bridge/custody"
	"github.com/atomiclabs/bridge/x/bridge/types"
)

// InitiateRequest is the wire form of an initiating call. Amounts are
// decimal strings; empty means zero. The attached amount stands in for value
// sent natively alongside the call.
type InitiateRequest struct {
	Originator      string `json:"originator"`
	Recipient       string `json:"recipient"`
	HashLock        string `json:"hash_lock"`
	SecondaryAmount string `json:"secondary_amount"`
	AttachedAmount  string `json:"attached_amount"`
	LockDuration    uint64 `json:"lock_duration"`
}

// InitiateResponse carries the derived transfer identifier.
type InitiateResponse struct {
	Id string `json:"id"`
}

// CompleteRequest carries the hex-encoded secret.
type CompleteRequest struct {
	Secret string `json:"secret"`
}

// RefundRequest names the caller claiming refund authority.
type RefundRequest struct {
	Caller string `json:"caller"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewRouter builds the REST/websocket/metrics surface over a service.
func NewRouter(svc *Service, hub *Hub, reg *prometheus.Registry) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/v1/transfers", handleInitiate(svc)).Methods(http.MethodPost)
	r.HandleFunc("/v1/transfers", handleList(svc)).Methods(http.MethodGet)
	r.HandleFunc("/v1/transfers/{id}", handleGet(svc)).Methods(http.MethodGet)
	r.HandleFunc("/v1/transfers/{id}/complete", handleComplete(svc)).Methods(http.MethodPost)
	r.HandleFunc("/v1/transfers/{id}/refund", handleRefund(svc)).Methods(http.MethodPost)
	if hub != nil {
		r.HandleFunc("/v1/events", hub.HandleWS).Methods(http.MethodGet)
	}
	if reg != nil {
		r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}
	return r
}

func handleInitiate(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req InitiateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}
		msg, err := req.toMsg()
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}
		id, err := svc.Initiate(msg)
		if err != nil {
			writeLedgerError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, InitiateResponse{Id: id.String()})
	}
}

func (req InitiateRequest) toMsg() (*types.MsgInitiateTransfer, error) {
	recipient, err := types.RecipientIDFromHex(req.Recipient)
	if err != nil {
		return nil, err
	}
	hashLock, err := types.HashFromHex(req.HashLock)
	if err != nil {
		return nil, err
	}
	secondary, err := parseAmount(req.SecondaryAmount)
	if err != nil {
		return nil, err
	}
	attached, err := parseAmount(req.AttachedAmount)
	if err != nil {
		return nil, err
	}
	return types.NewMsgInitiateTransfer(req.Originator, recipient, hashLock, secondary, attached, req.LockDuration), nil
}

func parseAmount(s string) (sdkmath.Int, error) {
	if s == "" {
		return sdkmath.ZeroInt(), nil
	}
	v, ok := sdkmath.NewIntFromString(s)
	if !ok {
		return sdkmath.Int{}, errorsmod.Wrapf(types.ErrInvalidAmount, "cannot parse %q", s)
	}
	return v, nil
}

func handleGet(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := types.TransferIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}
		record, err := svc.GetTransfer(id)
		if err != nil {
			writeLedgerError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, record)
	}
}

func handleList(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := svc.ListTransfers()
		if err != nil {
			writeLedgerError(w, err)
			return
		}
		if records == nil {
			records = []types.TransferRecord{}
		}
		writeJSON(w, http.StatusOK, records)
	}
}

func handleComplete(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := types.TransferIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}
		var req CompleteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}
		secret, err := hex.DecodeString(trimHexPrefix(req.Secret))
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}
		if err := svc.Complete(id, secret); err != nil {
			writeLedgerError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleRefund(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := types.TransferIDFromHex(mux.Vars(r)["id"])
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}
		var req RefundRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}
		if err := svc.Refund(req.Caller, id); err != nil {
			writeLedgerError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func trimHexPrefix(s string) string {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		return s[2:]
	}
	return s
}

func writeLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errorsmod.IsOf(err, types.ErrTransferNotFound):
		writeJSONError(w, http.StatusNotFound, err)
	case errorsmod.IsOf(err, types.ErrUnauthorized):
		writeJSONError(w, http.StatusForbidden, err)
	case errorsmod.IsOf(err, types.ErrInvalidState):
		writeJSONError(w, http.StatusConflict, err)
	case errorsmod.IsOf(err,
		types.ErrInvalidAmount, types.ErrHashLockMismatch, types.ErrTimeLockNotExpired,
		types.ErrInvalidTimeLock, types.ErrInvalidOriginator, types.ErrInvalidSecret,
		custody.ErrInsufficientAllowance, custody.ErrInsufficientBalance):
		writeJSONError(w, http.StatusBadRequest, err)
	default:
		writeJSONError(w, http.StatusInternalServerError, err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
