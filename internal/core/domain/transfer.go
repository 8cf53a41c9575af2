package domain

import (
	"fmt"
	"math/bits"
	"time"

	"github.com/google/uuid"
)

// Transfer tracks the progress of a transaction through the balancing
// workflow. Only metadata is recorded, key-bound material like signatures
// never ends up here.
type Transfer struct {
	Id                string
	Kind              string
	Outputs           []TransferOutput
	Status            TransferStatus
	PrimarySegments   []uint16
	BalancingSegments []uint16
	TxId              string
	TxHash            string
	FailureReason     string
	CreatedAt         int64
	UpdatedAt         int64
}

// NewTransfer returns a transfer in Unbalanced status. Outputs are
// mandatory only for TransferKindSend transfers.
func NewTransfer(kind string, outputs []TransferOutput) (*Transfer, error) {
	switch kind {
	case TransferKindSend:
		if len(outputs) <= 0 {
			return nil, ErrTransferNullOutputs
		}
	case TransferKindBalance:
	default:
		return nil, ErrTransferUnknownKind
	}
	for _, out := range outputs {
		if err := out.validate(); err != nil {
			return nil, err
		}
	}
	if _, err := totalAmountPerToken(outputs); err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	return &Transfer{
		Id:        uuid.New().String(),
		Kind:      kind,
		Outputs:   append([]TransferOutput{}, outputs...),
		Status:    TransferStatus{Code: TransferStatusCodeUnbalanced},
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Recipe brings an Unbalanced transfer to the Recipe status recording the
// segments of the primary and, if any, of the balancing transaction.
func (t *Transfer) Recipe(primarySegments, balancingSegments []uint16) error {
	if t.Status.Failed {
		return ErrTransferFailed
	}
	if t.Status.Code >= TransferStatusCodeRecipe {
		return nil
	}

	t.PrimarySegments = append([]uint16{}, primarySegments...)
	if len(balancingSegments) > 0 {
		t.BalancingSegments = append([]uint16{}, balancingSegments...)
	}
	t.setStatus(TransferStatusCodeRecipe)
	return nil
}

// Sign brings the transfer from the Recipe to the Signed status.
func (t *Transfer) Sign() error {
	if t.Status.Failed {
		return ErrTransferFailed
	}
	if t.Status.Code >= TransferStatusCodeSigned {
		return nil
	}
	if !t.IsRecipe() {
		return ErrTransferMustBeRecipe
	}

	t.setStatus(TransferStatusCodeSigned)
	return nil
}

// Finalize brings the transfer from the Signed to the Finalized status and
// records the id of the finalized transaction.
func (t *Transfer) Finalize(txid string) error {
	if t.Status.Failed {
		return ErrTransferFailed
	}
	if t.Status.Code >= TransferStatusCodeFinalized {
		return nil
	}
	if !t.IsSigned() {
		return ErrTransferMustBeSigned
	}
	if len(txid) <= 0 {
		return ErrTransferNullTxId
	}

	t.TxId = txid
	t.setStatus(TransferStatusCodeFinalized)
	return nil
}

// Submit brings the transfer from the Finalized to the Submitted status and
// records the hash returned by the network.
func (t *Transfer) Submit(txHash string) error {
	if t.Status.Failed {
		return ErrTransferFailed
	}
	if t.Status.Code >= TransferStatusCodeSubmitted {
		return nil
	}
	if !t.IsFinalized() {
		return ErrTransferMustBeFinalized
	}

	t.TxHash = txHash
	t.setStatus(TransferStatusCodeSubmitted)
	return nil
}

// Fail marks the current status of the transfer as failed. There is no way
// back from a failed status.
func (t *Transfer) Fail(reason string) {
	if t.Status.Failed {
		return
	}
	t.Status.Failed = true
	t.FailureReason = reason
	t.UpdatedAt = time.Now().Unix()
}

// IsUnbalanced ...
func (t *Transfer) IsUnbalanced() bool {
	return t.Status.Code == TransferStatusCodeUnbalanced
}

// IsRecipe ...
func (t *Transfer) IsRecipe() bool {
	return t.Status.Code == TransferStatusCodeRecipe
}

// IsSigned ...
func (t *Transfer) IsSigned() bool {
	return t.Status.Code == TransferStatusCodeSigned
}

// IsFinalized ...
func (t *Transfer) IsFinalized() bool {
	return t.Status.Code == TransferStatusCodeFinalized
}

// IsSubmitted ...
func (t *Transfer) IsSubmitted() bool {
	return t.Status.Code == TransferStatusCodeSubmitted
}

// IsFailed ...
func (t *Transfer) IsFailed() bool {
	return t.Status.Failed
}

// TotalAmountPerToken returns the amount requested by the transfer outputs
// grouped by token type. It fails with ErrTransferAmountOverflow if any total
// does not fit a uint64.
func (t *Transfer) TotalAmountPerToken() (map[string]uint64, error) {
	return totalAmountPerToken(t.Outputs)
}

func totalAmountPerToken(outputs []TransferOutput) (map[string]uint64, error) {
	totals := make(map[string]uint64)
	for _, out := range outputs {
		total, carry := bits.Add64(totals[out.TokenType], out.Amount, 0)
		if carry != 0 {
			return nil, fmt.Errorf("%w: token %s", ErrTransferAmountOverflow, out.TokenType)
		}
		totals[out.TokenType] = total
	}
	return totals, nil
}

func (t *Transfer) setStatus(code int) {
	t.Status.Code = code
	t.UpdatedAt = time.Now().Unix()
}
