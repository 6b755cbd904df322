package ledger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// EthLedger resolves ERC-20 transfers through an Ethereum JSON-RPC node.
type EthLedger struct {
	rpcURL string
	client *http.Client
	log    *zap.Logger
}

func NewEthLedger(rpcURL string, log *zap.Logger) *EthLedger {
	return &EthLedger{
		rpcURL: rpcURL,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log.With(zap.String("ledger", "eth")),
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
	ID      int    `json:"id"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type ethTx struct {
	Hash  string `json:"hash"`
	To    string `json:"to"`
	Input string `json:"input"`
}

type ethReceipt struct {
	Status string `json:"status"`
}

func (e *EthLedger) call(ctx context.Context, method string, params []any, result any) error {
	payload, err := json.Marshal(rpcRequest{
		JSONRPC: "2.0",
		Method:  method,
		Params:  params,
		ID:      1,
	})
	if err != nil {
		return fmt.Errorf("marshal rpc request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.rpcURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build rpc request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("call eth node %s: %w", method, err)
	}
	defer resp.Body.Close()

	var envelope struct {
		Result json.RawMessage `json:"result"`
		Error  *rpcError       `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return fmt.Errorf("decode rpc response: %w", err)
	}
	if envelope.Error != nil {
		return fmt.Errorf("eth node error %d: %s", envelope.Error.Code, envelope.Error.Message)
	}
	if string(envelope.Result) == "null" {
		return ErrTxNotFound
	}

	if err := json.Unmarshal(envelope.Result, result); err != nil {
		return fmt.Errorf("unmarshal rpc result: %w", err)
	}

	return nil
}

func (e *EthLedger) Lookup(ctx context.Context, txID string) (*Transaction, error) {
	var tx ethTx
	if err := e.call(ctx, "eth_getTransactionByHash", []any{txID}, &tx); err != nil {
		return nil, err
	}

	var receipt ethReceipt
	if err := e.call(ctx, "eth_getTransactionReceipt", []any{txID}, &receipt); err != nil {
		return nil, err
	}

	transfer, err := DecodeTransferCall(tx.Input)
	if err != nil {
		e.log.Warn("Failed to decode eth transfer calldata",
			zap.Error(err),
			zap.String("tx_id", txID),
		)
		return nil, fmt.Errorf("decode eth transfer %s: %w", txID, err)
	}

	return &Transaction{
		ID:        txID,
		Succeeded: receipt.Status == "0x1",
		To:        "0x" + transfer.To,
		Amount:    transfer.Amount,
	}, nil
}
