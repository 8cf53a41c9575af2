package ports

import (
	"context"
	"errors"

	"github.com/blind-mentorship/mentorship-wallet/pkg/ledger"
)

// ErrInsufficientFunds is returned when the spendable coins of a wallet
// can't cover a transfer.
var ErrInsufficientFunds = errors.New("insufficient funds")

// WalletKeys are handed to the wallet engine when a session starts. They
// identify the unshielded coins the engine tracks and spends, no secret is
// ever handed over.
type WalletKeys struct {
	Address   string
	PublicKey []byte
}

// WalletEngine tracks the state of a wallet and computes balancing recipes
// for it. Recipe computation locks the selected coins until the resulting
// transaction is either submitted or rejected.
type WalletEngine interface {
	Start(ctx context.Context, keys WalletKeys) error
	Stop()
	IsSynced() bool
	Balances(ctx context.Context) (map[string]uint64, error)
	TransferRecipe(ctx context.Context, outs []TxOutput) (*ledger.Recipe, error)
	BalanceRecipe(
		ctx context.Context, tx *ledger.Transaction,
	) (*ledger.Recipe, error)
	FinalizeRecipe(
		ctx context.Context, recipe *ledger.Recipe,
	) (*ledger.FinalizedTransaction, error)
	SubmitTransaction(
		ctx context.Context, tx *ledger.FinalizedTransaction,
	) (string, error)
}
