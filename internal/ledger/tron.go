package ledger

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// TronLedger resolves TRC-20 transfers through the TronGrid HTTP API.
type TronLedger struct {
	apiURL string
	client *http.Client
	log    *zap.Logger
}

func NewTronLedger(apiURL string, log *zap.Logger) *TronLedger {
	return &TronLedger{
		apiURL: apiURL,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log.With(zap.String("ledger", "tron")),
	}
}

type tronTxInfoResponse struct {
	ID      string `json:"id"`
	Receipt struct {
		Result string `json:"result"`
	} `json:"receipt"`
}

type tronTxResponse struct {
	TxID    string `json:"txID"`
	RawData struct {
		Contract []struct {
			Parameter struct {
				Value struct {
					Data            string `json:"data"`
					ContractAddress string `json:"contract_address"`
					OwnerAddress    string `json:"owner_address"`
				} `json:"value"`
			} `json:"parameter"`
			Type string `json:"type"`
		} `json:"contract"`
	} `json:"raw_data"`
}

func (t *TronLedger) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.apiURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("call trongrid %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("trongrid %s returned %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode trongrid response: %w", err)
	}

	return nil
}

func (t *TronLedger) Lookup(ctx context.Context, txID string) (*Transaction, error) {
	body := map[string]string{"value": txID}

	var info tronTxInfoResponse
	if err := t.post(ctx, "/wallet/gettransactioninfobyid", body, &info); err != nil {
		return nil, err
	}
	if info.ID == "" {
		return nil, ErrTxNotFound
	}

	var tx tronTxResponse
	if err := t.post(ctx, "/wallet/gettransactionbyid", body, &tx); err != nil {
		return nil, err
	}
	if tx.TxID == "" || len(tx.RawData.Contract) == 0 {
		return nil, ErrTxNotFound
	}

	transfer, err := DecodeTransferCall(tx.RawData.Contract[0].Parameter.Value.Data)
	if err != nil {
		t.log.Warn("Failed to decode tron transfer calldata",
			zap.Error(err),
			zap.String("tx_id", txID),
		)
		return nil, fmt.Errorf("decode tron transfer %s: %w", txID, err)
	}

	// Tron addresses carry a 0x41 version byte before the EVM address
	receiver, err := tronAddressFromHex("41" + transfer.To)
	if err != nil {
		return nil, fmt.Errorf("encode tron address for %s: %w", txID, err)
	}

	return &Transaction{
		ID:        txID,
		Succeeded: info.Receipt.Result == "SUCCESS",
		To:        receiver,
		Amount:    transfer.Amount,
	}, nil
}

const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// tronAddressFromHex converts a 41-prefixed hex address to the base58check
// form suppliers configure in the wallet table.
func tronAddressFromHex(hexAddr string) (string, error) {
	raw, err := hex.DecodeString(hexAddr)
	if err != nil {
		return "", fmt.Errorf("decode hex address: %w", err)
	}

	first := sha256.Sum256(raw)
	second := sha256.Sum256(first[:])
	payload := append(raw, second[:4]...)

	// base58 encode
	x := new(big.Int).SetBytes(payload)
	base := big.NewInt(58)
	mod := new(big.Int)
	var encoded []byte
	for x.Sign() > 0 {
		x.DivMod(x, base, mod)
		encoded = append(encoded, base58Alphabet[mod.Int64()])
	}
	for _, b := range payload {
		if b != 0 {
			break
		}
		encoded = append(encoded, base58Alphabet[0])
	}

	// reverse
	for i, j := 0, len(encoded)-1; i < j; i, j = i+1, j-1 {
		encoded[i], encoded[j] = encoded[j], encoded[i]
	}

	return string(encoded), nil
}
