package cosmos

import (
	"context"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	txtypes "github.com/cosmos/cosmos-sdk/types/tx"

	"github.com/pokt-network/chaingate/pkg/polylog"
	"github.com/pokt-network/chaingate/pkg/store"
	"github.com/pokt-network/chaingate/pkg/txcache"
)

// PollResult reports the outcome of a committed transaction.
type PollResult struct {
	Network      string           `json:"network"`
	Status       txcache.TxStatus `json:"status"`
	Timestamp    int64            `json:"timestamp"`
	TxHash       string           `json:"txHash"`
	CurrentBlock int64            `json:"currentBlock"`
	TxBlock      int64            `json:"txBlock"`
	GasUsed      int64            `json:"gasUsed"`
	GasWanted    int64            `json:"gasWanted"`
	TxData       *TxData          `json:"txData,omitempty"`
}

// TxData summarizes the body and auth info of a raw transaction.
type TxData struct {
	Memo       string   `json:"memo"`
	Messages   []string `json:"messages"`
	Fee        string   `json:"fee"`
	GasLimit   uint64   `json:"gasLimit"`
	Signatures int      `json:"signatures"`
}

// GetCurrentBlockNumber returns the latest block height known to the node.
func (c *Chain) GetCurrentBlockNumber(ctx context.Context) (int64, error) {
	conn, err := c.readyConn()
	if err != nil {
		return 0, err
	}
	status, err := conn.rpcClient.Status(ctx)
	if err != nil {
		return 0, err
	}
	return status.SyncInfo.LatestBlockHeight, nil
}

// GetChainID returns the chain ID resolved on Init.
func (c *Chain) GetChainID(context.Context) (string, error) {
	conn, err := c.readyConn()
	if err != nil {
		return "", err
	}
	return conn.chainID, nil
}

// GetTransaction returns the committed transaction hash, from cache when
// possible.
func (c *Chain) GetTransaction(ctx context.Context, hash string) (*txcache.TxRecord, error) {
	conn, err := c.readyConn()
	if err != nil {
		return nil, err
	}
	return conn.txCache.GetTransaction(ctx, hash)
}

// GetTransactionStatus maps the result code of hash to a TxStatus.
func (c *Chain) GetTransactionStatus(ctx context.Context, hash string) (txcache.TxStatus, error) {
	conn, err := c.readyConn()
	if err != nil {
		return txcache.TxStatusFailure, err
	}
	return conn.txCache.GetTransactionStatus(ctx, hash)
}

// CacheTransaction stores record in the transaction cache.
func (c *Chain) CacheTransaction(ctx context.Context, record *txcache.TxRecord) error {
	conn, err := c.readyConn()
	if err != nil {
		return err
	}
	return conn.txCache.CacheTransaction(ctx, record)
}

// RetrieveTransaction reads hash from the transaction cache only.
func (c *Chain) RetrieveTransaction(ctx context.Context, hash string) (*txcache.TxRecord, error) {
	conn, err := c.readyConn()
	if err != nil {
		return nil, err
	}
	return conn.txCache.RetrieveTransaction(ctx, hash)
}

// Poll looks up hash and reports its outcome against the current height.
// Successful transactions are recorded in the tx history.
func (c *Chain) Poll(ctx context.Context, hash string) (*PollResult, error) {
	record, err := c.GetTransaction(ctx, hash)
	if err != nil {
		return nil, err
	}
	currentBlock, err := c.GetCurrentBlockNumber(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	result := &PollResult{
		Network:      c.cfg.Network,
		Status:       record.Status(),
		Timestamp:    now.UnixMilli(),
		TxHash:       hash,
		CurrentBlock: currentBlock,
		TxBlock:      record.Height,
		GasUsed:      record.GasUsed,
		GasWanted:    record.GasWanted,
	}

	txData, err := DecodeTxData(record.Tx)
	if err != nil {
		c.logger.Debug().Err(err).Str(polylog.FieldTxHash, hash).Msg("unable to decode raw transaction")
	} else {
		result.TxData = txData
	}

	if result.Status == txcache.TxStatusSuccess {
		c.recordTx(ctx, hash, now)
	}
	return result, nil
}

func (c *Chain) recordTx(ctx context.Context, hash string, at time.Time) {
	if c.storage == nil {
		return
	}
	chainID, err := c.GetChainID(ctx)
	if err != nil {
		return
	}
	if err := c.storage.SaveTx(c.cfg.Chain, chainID, hash, at); err != nil {
		c.logger.Warn().Err(err).Str(polylog.FieldTxHash, hash).Msg("unable to record transaction history")
	}
}

// TxHistory lists the transactions recorded for this chain network.
func (c *Chain) TxHistory(ctx context.Context) ([]store.TxEntry, error) {
	if c.storage == nil {
		return nil, nil
	}
	chainID, err := c.GetChainID(ctx)
	if err != nil {
		return nil, err
	}
	return c.storage.GetTxs(c.cfg.Chain, chainID)
}

// DecodeTxData summarizes raw protobuf transaction bytes. Messages are
// reported by type URL only, so unregistered message types decode fine.
func DecodeTxData(raw []byte) (*TxData, error) {
	var txRaw txtypes.TxRaw
	if err := txRaw.Unmarshal(raw); err != nil {
		return nil, err
	}
	var body txtypes.TxBody
	if err := body.Unmarshal(txRaw.BodyBytes); err != nil {
		return nil, err
	}
	var authInfo txtypes.AuthInfo
	if err := authInfo.Unmarshal(txRaw.AuthInfoBytes); err != nil {
		return nil, err
	}

	txData := &TxData{
		Memo:       body.Memo,
		Messages:   make([]string, 0, len(body.Messages)),
		Signatures: len(txRaw.Signatures),
	}
	for _, msg := range body.Messages {
		txData.Messages = append(txData.Messages, msg.TypeUrl)
	}
	if authInfo.Fee != nil {
		txData.Fee = sdk.Coins(authInfo.Fee.Amount).String()
		txData.GasLimit = authInfo.Fee.GasLimit
	}
	return txData, nil
}
