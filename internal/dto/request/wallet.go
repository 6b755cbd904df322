package request

type CheckWalletTransactionRequest struct {
	TransactionID string `json:"transaction_id" validate:"required,min=16"`
}

type UpsertWalletRequest struct {
	Network string `json:"network" validate:"required,oneof=TRX ETH"`
	Address string `json:"address" validate:"required,min=10,max=64"`
}
