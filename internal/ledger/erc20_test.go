package ledger

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transferCalldata(addr string, amount *big.Int) string {
	amountWord := amount.Text(16)
	return "0x" + transferMethodID +
		strings.Repeat("0", 24) + addr +
		strings.Repeat("0", 64-len(amountWord)) + amountWord
}

func TestDecodeTransferCall(t *testing.T) {
	addr := "5aae886f8b8c46bdcf52f0d40e23f61a9bd4f6b3"
	amount := big.NewInt(165000000) // 165 USDT in smallest units

	transfer, err := DecodeTransferCall(transferCalldata(addr, amount))
	require.NoError(t, err)

	assert.Equal(t, addr, transfer.To)
	assert.Equal(t, 0, transfer.Amount.Cmp(amount))
}

func TestDecodeTransferCall_UppercaseHex(t *testing.T) {
	addr := "5AAE886F8B8C46BDCF52F0D40E23F61A9BD4F6B3"
	amount := big.NewInt(1000000)

	transfer, err := DecodeTransferCall(transferCalldata(addr, amount))
	require.NoError(t, err)

	assert.Equal(t, strings.ToLower(addr), transfer.To)
}

func TestDecodeTransferCall_WrongSelector(t *testing.T) {
	data := "0x" + "deadbeef" + strings.Repeat("0", 128)

	_, err := DecodeTransferCall(data)
	assert.ErrorContains(t, err, "not a transfer call")
}

func TestDecodeTransferCall_TooShort(t *testing.T) {
	_, err := DecodeTransferCall("0x" + transferMethodID + "00ff")
	assert.ErrorContains(t, err, "too short")
}

func TestDecodeTransferCall_BadPadding(t *testing.T) {
	data := "0x" + transferMethodID +
		"ff" + strings.Repeat("0", 22) + strings.Repeat("a", 40) +
		strings.Repeat("0", 64)

	_, err := DecodeTransferCall(data)
	assert.ErrorContains(t, err, "malformed address word")
}

func TestTronAddressFromHex(t *testing.T) {
	// The USDT TRC-20 contract address, a well-known fixed point
	address, err := tronAddressFromHex("41a614f803b6fd780986a42c78ec9c7f77e6ded13c")
	require.NoError(t, err)

	assert.Equal(t, "TR7NHqjeKQxGTCi8q8ZY4pL8otSzgjLj6t", address)
}
