package gateway

import (
	"net/http"

	"github.com/pokt-network/chaingate/pkg/client/cosmos"
	"github.com/pokt-network/chaingate/pkg/polylog"
)

type chainRequest struct {
	Chain   string `json:"chain"`
	Network string `json:"network"`
}

type balancesRequest struct {
	chainRequest
	Address      string   `json:"address"`
	TokenSymbols []string `json:"tokenSymbols"`
}

type balancesResponse struct {
	Network  string            `json:"network"`
	Balances map[string]string `json:"balances"`
}

type pollRequest struct {
	chainRequest
	TxHash string `json:"txHash"`
}

type addWalletRequest struct {
	chainRequest
	PrivateKey string `json:"privateKey"`
}

type walletResponse struct {
	Address string `json:"address"`
}

type removeWalletRequest struct {
	Chain   string `json:"chain"`
	Address string `json:"address"`
}

type listWalletsResponse struct {
	Chain     string   `json:"chain"`
	Addresses []string `json:"addresses"`
}

func (srv *Server) handleHealth(res http.ResponseWriter, _ *http.Request) {
	respondJSON(srv.logger, res, http.StatusOK, map[string]any{
		"status": "ok",
		"chains": srv.registry.Keys(),
	})
}

func (srv *Server) handleBalances(res http.ResponseWriter, req *http.Request) {
	var body balancesRequest
	if err := decodeBody(req, &body); err != nil {
		respondError(srv.logger, res, err)
		return
	}
	if body.Address == "" {
		respondError(srv.logger, res, ErrBadRequest.Wrap("address is required"))
		return
	}
	logger := srv.logger.With(polylog.FieldChain, body.Chain, polylog.FieldAddress, body.Address)

	chain, err := srv.readyChain(req.Context(), body.Chain, body.Network)
	if err != nil {
		respondError(logger, res, err)
		return
	}

	symbols := body.TokenSymbols
	if len(symbols) == 0 {
		for _, token := range chain.StoredTokenList() {
			symbols = append(symbols, token.Symbol)
		}
	}

	balances, err := chain.Balances(req.Context(), body.Address, symbols)
	if err != nil {
		respondError(logger, res, err)
		return
	}
	respondJSON(logger, res, http.StatusOK, balancesResponse{
		Network:  body.Network,
		Balances: balances,
	})
}

func (srv *Server) handlePoll(res http.ResponseWriter, req *http.Request) {
	var body pollRequest
	if err := decodeBody(req, &body); err != nil {
		respondError(srv.logger, res, err)
		return
	}
	if body.TxHash == "" {
		respondError(srv.logger, res, ErrBadRequest.Wrap("txHash is required"))
		return
	}
	logger := srv.logger.With(polylog.FieldChain, body.Chain, polylog.FieldTxHash, body.TxHash)

	chain, err := srv.readyChain(req.Context(), body.Chain, body.Network)
	if err != nil {
		respondError(logger, res, err)
		return
	}

	result, err := chain.Poll(req.Context(), body.TxHash)
	if err != nil {
		respondError(logger, res, err)
		return
	}
	respondJSON(logger, res, http.StatusOK, result)
}

func (srv *Server) handleTokens(res http.ResponseWriter, req *http.Request) {
	query := req.URL.Query()
	chain, err := srv.readyChain(req.Context(), query.Get("chain"), query.Get("network"))
	if err != nil {
		respondError(srv.logger, res, err)
		return
	}
	respondJSON(srv.logger, res, http.StatusOK, chain.StoredTokenList())
}

func (srv *Server) handleAddWallet(res http.ResponseWriter, req *http.Request) {
	var body addWalletRequest
	if err := decodeBody(req, &body); err != nil {
		respondError(srv.logger, res, err)
		return
	}
	if body.PrivateKey == "" {
		respondError(srv.logger, res, ErrBadRequest.Wrap("privateKey is required"))
		return
	}

	// Adding a wallet needs no node connection, only the chain's prefix.
	chain, err := srv.registry.Get(body.Chain, body.Network)
	if err != nil {
		respondError(srv.logger, res, err)
		return
	}

	address, err := chain.AddWallet(req.Context(), body.PrivateKey)
	if err != nil {
		respondError(srv.logger, res, err)
		return
	}
	respondJSON(srv.logger, res, http.StatusOK, walletResponse{Address: address})
}

func (srv *Server) handleListWallets(res http.ResponseWriter, req *http.Request) {
	chain := req.URL.Query().Get("chain")
	if !cosmos.IsSupportedChain(chain) {
		respondError(srv.logger, res, cosmos.ErrUnsupportedChain.Wrapf("chain %q", chain))
		return
	}

	addresses, err := srv.wallets.List(chain)
	if err != nil {
		respondError(srv.logger, res, err)
		return
	}
	respondJSON(srv.logger, res, http.StatusOK, listWalletsResponse{Chain: chain, Addresses: addresses})
}

func (srv *Server) handleRemoveWallet(res http.ResponseWriter, req *http.Request) {
	var body removeWalletRequest
	if err := decodeBody(req, &body); err != nil {
		respondError(srv.logger, res, err)
		return
	}
	if !cosmos.IsSupportedChain(body.Chain) {
		respondError(srv.logger, res, cosmos.ErrUnsupportedChain.Wrapf("chain %q", body.Chain))
		return
	}

	if err := srv.wallets.Remove(body.Chain, body.Address); err != nil {
		respondError(srv.logger, res, err)
		return
	}
	res.WriteHeader(http.StatusNoContent)
}
