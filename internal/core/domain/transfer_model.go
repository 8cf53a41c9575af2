package domain

const (
	// TransferStatusCodeUnbalanced is the status of a transfer just requested
	// by the caller.
	TransferStatusCodeUnbalanced = iota
	// TransferStatusCodeRecipe is the status of a transfer whose balancing
	// recipe has been computed by the wallet engine.
	TransferStatusCodeRecipe
	// TransferStatusCodeSigned is the status of a transfer whose intents have
	// all been signed.
	TransferStatusCodeSigned
	// TransferStatusCodeFinalized is the status of a transfer combined into
	// a single submittable transaction.
	TransferStatusCodeFinalized
	// TransferStatusCodeSubmitted is the status of a transfer accepted by the
	// network.
	TransferStatusCodeSubmitted
)

const (
	// TransferKindSend identifies transfers requested by the wallet owner.
	TransferKindSend = "send"
	// TransferKindBalance identifies dapp transactions balanced and signed on
	// behalf of a connected dapp.
	TransferKindBalance = "balance"
)

var statusToString = map[int]string{
	TransferStatusCodeUnbalanced: "Unbalanced",
	TransferStatusCodeRecipe:     "Recipe",
	TransferStatusCodeSigned:     "Signed",
	TransferStatusCodeFinalized:  "Finalized",
	TransferStatusCodeSubmitted:  "Submitted",
}

// TransferStatus represents the different statuses that a transfer can
// assume.
type TransferStatus struct {
	Code   int
	Failed bool
}

func (s TransferStatus) String() string {
	str, ok := statusToString[s.Code]
	if !ok {
		str = "Unknown"
	}
	if s.Failed {
		return str + "Failed"
	}
	return str
}

// TransferOutput is a single receiver of a transfer.
type TransferOutput struct {
	Address   string
	Amount    uint64
	TokenType string
}

// GetAddress ...
func (o TransferOutput) GetAddress() string {
	return o.Address
}

// GetAmount ...
func (o TransferOutput) GetAmount() uint64 {
	return o.Amount
}

// GetTokenType ...
func (o TransferOutput) GetTokenType() string {
	return o.TokenType
}

func (o TransferOutput) validate() error {
	if len(o.Address) <= 0 {
		return ErrTransferInvalidAddress
	}
	if o.Amount == 0 {
		return ErrTransferInvalidAmount
	}
	if len(o.TokenType) <= 0 {
		return ErrTransferInvalidTokenType
	}
	return nil
}
