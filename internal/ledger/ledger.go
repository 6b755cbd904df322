// Package ledger looks up blockchain transactions for wallet payment
// reconciliation. One client per supported network, all behind the same
// capability interface so the reconciliation flow never talks to a chain
// directly.
package ledger

import (
	"context"
	"errors"
	"math/big"

	"car-rental-booking/internal/data/entity"
)

// ErrTxNotFound is returned when the network has no record of the
// transaction ID.
var ErrTxNotFound = errors.New("transaction not found on ledger")

// Transaction is the normalized view of a token transfer: whether it
// succeeded, where the tokens went and how many smallest units moved.
type Transaction struct {
	ID        string
	Succeeded bool
	To        string
	Amount    *big.Int
}

type Ledger interface {
	Lookup(ctx context.Context, txID string) (*Transaction, error)
}

// Registry maps networks to their ledger clients.
type Registry map[entity.Network]Ledger

func (r Registry) Get(network entity.Network) (Ledger, bool) {
	l, ok := r[network]
	return l, ok
}
