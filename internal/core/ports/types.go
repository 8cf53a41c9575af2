package ports

// TxOutput is a receiver of a transfer.
type TxOutput interface {
	GetAddress() string
	GetAmount() uint64
	GetTokenType() string
}

// Utxo is an unshielded output owned by the wallet.
type Utxo interface {
	GetIntentHash() string
	GetOutputNo() uint32
	GetOwner() string
	GetValue() uint64
	GetTokenType() string
}
