package entity

type Network string

const (
	NetworkTRX Network = "TRX"
	NetworkETH Network = "ETH"
)

// Wallet is the configured receiving address for one blockchain network.
type Wallet struct {
	BaseNoDelete
	Network Network `db:"network"`
	Address string  `db:"address"`
}
