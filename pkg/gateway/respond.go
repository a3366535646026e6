package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pokt-network/chaingate/pkg/assets"
	"github.com/pokt-network/chaingate/pkg/client/cosmos"
	"github.com/pokt-network/chaingate/pkg/crypto/passphrase"
	"github.com/pokt-network/chaingate/pkg/crypto/vault"
	"github.com/pokt-network/chaingate/pkg/polylog"
	"github.com/pokt-network/chaingate/pkg/txcache"
	"github.com/pokt-network/chaingate/pkg/wallet"
)

// errorResponse is the body of every non-2xx response.
type errorResponse struct {
	Error string `json:"error"`
}

// StatusForError maps the error kinds of the chain clients to HTTP status
// codes.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, txcache.ErrTransactionNotFound),
		errors.Is(err, wallet.ErrWalletNotFound):
		return http.StatusNotFound

	case errors.Is(err, passphrase.ErrMissingPassphrase),
		errors.Is(err, cosmos.ErrProviderNotInitialized):
		return http.StatusServiceUnavailable

	case errors.Is(err, vault.ErrDecryption):
		return http.StatusUnauthorized

	case errors.Is(err, ErrBadRequest),
		errors.Is(err, cosmos.ErrUnsupportedChain),
		errors.Is(err, assets.ErrTokenNotSupported),
		errors.Is(err, vault.ErrInvalidPrivateKey),
		errors.Is(err, vault.ErrInvalidMnemonic),
		errors.Is(err, wallet.ErrInvalidAddress):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(logger polylog.Logger, res http.ResponseWriter, status int, body any) {
	res.Header().Set("Content-Type", "application/json")
	res.WriteHeader(status)
	if err := json.NewEncoder(res).Encode(body); err != nil {
		logger.Error().Err(err).Msg("unable to write response")
	}
}

func respondError(logger polylog.Logger, res http.ResponseWriter, err error) {
	status := StatusForError(err)
	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Int("status", status).Msg("request failed")
	} else {
		logger.Debug().Err(err).Int("status", status).Msg("request rejected")
	}
	respondJSON(logger, res, status, errorResponse{Error: err.Error()})
}

// decodeBody decodes a JSON request body into dst.
func decodeBody(req *http.Request, dst any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, req.Body, maxRequestBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return ErrBadRequest.Wrapf("decoding request body: %v", err)
	}
	return nil
}
