package txcache

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"sort"
	"strconv"

	abci "github.com/cometbft/cometbft/abci/types"
	coretypes "github.com/cometbft/cometbft/rpc/core/types"
)

// TxStatus is the outcome of a committed transaction. It is serialized as
// 1 for success and 0 for failure.
type TxStatus int

const (
	TxStatusFailure TxStatus = 0
	TxStatusSuccess TxStatus = 1
)

func (s TxStatus) String() string {
	if s == TxStatusSuccess {
		return "success"
	}
	return "failure"
}

// StatusForCode maps an ABCI result code to a TxStatus: 0 is success and
// anything else is failure.
func StatusForCode(code uint32) TxStatus {
	if code == abci.CodeTypeOK {
		return TxStatusSuccess
	}
	return TxStatusFailure
}

// TxRecord is the cacheable projection of a committed transaction.
type TxRecord struct {
	Height    int64        `json:"height"`
	TxIndex   uint32       `json:"txIndex"`
	Hash      string       `json:"hash"`
	Code      uint32       `json:"code"`
	Codespace string       `json:"codespace,omitempty"`
	RawLog    string       `json:"rawLog,omitempty"`
	Events    []abci.Event `json:"events,omitempty"`
	Tx        TxBytes      `json:"tx"`
	GasUsed   int64        `json:"gasUsed"`
	GasWanted int64        `json:"gasWanted"`
}

// Status maps the record's result code to a TxStatus.
func (r *TxRecord) Status() TxStatus {
	return StatusForCode(r.Code)
}

// NewTxRecord projects an RPC tx result onto a TxRecord.
func NewTxRecord(res *coretypes.ResultTx) *TxRecord {
	return &TxRecord{
		Height:    res.Height,
		TxIndex:   res.Index,
		Hash:      res.Hash.String(),
		Code:      res.TxResult.Code,
		Codespace: res.TxResult.Codespace,
		RawLog:    res.TxResult.Log,
		Events:    res.TxResult.Events,
		Tx:        TxBytes(res.Tx),
		GasUsed:   res.TxResult.GasUsed,
		GasWanted: res.TxResult.GasWanted,
	}
}

// EncodeTxRecord serializes record for a text cache.
func EncodeTxRecord(record *TxRecord) (string, error) {
	bz, err := json.Marshal(record)
	if err != nil {
		return "", ErrTxRecordCodec.Wrapf("encoding %s: %v", record.Hash, err)
	}
	return string(bz), nil
}

// DecodeTxRecord is the inverse of EncodeTxRecord.
func DecodeTxRecord(value string) (*TxRecord, error) {
	record := new(TxRecord)
	if err := json.Unmarshal([]byte(value), record); err != nil {
		return nil, ErrTxRecordCodec.Wrapf("decoding: %v", err)
	}
	return record, nil
}

// TxBytes is raw transaction bytes. It is written to JSON as a base64 string.
// On read it also accepts a numeric array or an index-keyed object such as
// {"0":10,"1":250}, the shape binary buffers take once they pass through a
// generic JSON serializer.
type TxBytes []byte

func (b TxBytes) MarshalJSON() ([]byte, error) {
	return json.Marshal(base64.StdEncoding.EncodeToString(b))
}

func (b *TxBytes) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*b = nil
		return nil
	}

	switch data[0] {
	case '"':
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return err
		}
		decoded, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			return ErrTxRecordCodec.Wrapf("tx is not valid base64: %v", err)
		}
		*b = decoded
		return nil

	case '[':
		var values []int
		if err := json.Unmarshal(data, &values); err != nil {
			return ErrTxRecordCodec.Wrapf("tx array: %v", err)
		}
		out := make([]byte, len(values))
		for i, value := range values {
			if err := checkByte(value); err != nil {
				return err
			}
			out[i] = byte(value)
		}
		*b = out
		return nil

	case '{':
		var indexed map[string]int
		if err := json.Unmarshal(data, &indexed); err != nil {
			return ErrTxRecordCodec.Wrapf("tx object: %v", err)
		}
		return b.fromIndexed(indexed)

	default:
		return ErrTxRecordCodec.Wrapf("unsupported tx encoding %q", data[0])
	}
}

func (b *TxBytes) fromIndexed(indexed map[string]int) error {
	indices := make([]int, 0, len(indexed))
	for key := range indexed {
		idx, err := strconv.Atoi(key)
		if err != nil || idx < 0 {
			return ErrTxRecordCodec.Wrapf("tx object has non-index key %q", key)
		}
		indices = append(indices, idx)
	}
	sort.Ints(indices)

	out := make([]byte, len(indices))
	for i, idx := range indices {
		if idx != i {
			return ErrTxRecordCodec.Wrapf("tx object is missing index %d", i)
		}
		value := indexed[strconv.Itoa(idx)]
		if err := checkByte(value); err != nil {
			return err
		}
		out[i] = byte(value)
	}
	*b = out
	return nil
}

func checkByte(value int) error {
	if value < 0 || value > 0xff {
		return ErrTxRecordCodec.Wrapf("tx element %d is out of byte range", value)
	}
	return nil
}
