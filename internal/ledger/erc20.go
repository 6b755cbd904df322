package ledger

import (
	"fmt"
	"math/big"
	"strings"
)

// transferMethodID is the 4-byte selector of transfer(address,uint256).
const transferMethodID = "a9059cbb"

const (
	selectorLen = 8   // hex chars
	wordLen     = 64  // hex chars per ABI word
	transferLen = selectorLen + 2*wordLen
)

// TransferCall is a decoded ERC-20/TRC-20 transfer(address,uint256) call.
type TransferCall struct {
	To     string // lowercase hex address without 0x prefix, 40 chars
	Amount *big.Int
}

// DecodeTransferCall decodes token transfer calldata. It validates the
// method selector and the ABI word padding instead of slicing the payload
// at fixed offsets blindly.
func DecodeTransferCall(input string) (*TransferCall, error) {
	data := strings.TrimPrefix(strings.ToLower(input), "0x")

	if len(data) < transferLen {
		return nil, fmt.Errorf("calldata too short: %d hex chars, want %d", len(data), transferLen)
	}

	if data[:selectorLen] != transferMethodID {
		return nil, fmt.Errorf("not a transfer call: selector %s", data[:selectorLen])
	}

	addressWord := data[selectorLen : selectorLen+wordLen]
	// An ABI-encoded address is left-padded with 12 zero bytes
	if addressWord[:24] != strings.Repeat("0", 24) {
		return nil, fmt.Errorf("malformed address word: %s", addressWord)
	}
	to := addressWord[24:]

	amountWord := data[selectorLen+wordLen : transferLen]
	amount, ok := new(big.Int).SetString(amountWord, 16)
	if !ok {
		return nil, fmt.Errorf("malformed amount word: %s", amountWord)
	}

	return &TransferCall{To: to, Amount: amount}, nil
}
