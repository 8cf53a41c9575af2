package application

// WalletInfo ...
type WalletInfo struct {
	NetworkID string
	Address   string
	PublicKey string
	IsSynced  bool
}

// ShieldedAddresses are the hex encoded public keys other parties need to
// send shielded coins to the wallet.
type ShieldedAddresses struct {
	CoinPublicKey       string
	EncryptionPublicKey string
}

// TransferRequest is a single receiver of a transfer. TokenType defaults to
// the native token if empty.
type TransferRequest struct {
	Address   string
	Amount    uint64
	TokenType string
}
