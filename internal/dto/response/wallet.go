package response

type WalletTransactionResponse struct {
	TransactionID string `json:"transaction_id"`
	Used          bool   `json:"used"`
}

type WalletAddressResponse struct {
	Network string `json:"network"`
	Address string `json:"address"`
}
