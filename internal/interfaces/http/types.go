package httpinterface

import "github.com/blind-mentorship/mentorship-wallet/internal/core/domain"

type receiver struct {
	Address   string `json:"address" binding:"required"`
	Amount    uint64 `json:"amount,string" binding:"required"`
	TokenType string `json:"token_type"`
}

type transferRequest struct {
	Receivers []receiver `json:"receivers" binding:"required,min=1,dive"`
}

type txRequest struct {
	Tx string `json:"tx" binding:"required,hexadecimal"`
}

type infoResponse struct {
	NetworkID string `json:"network_id"`
	Address   string `json:"address"`
	PublicKey string `json:"public_key"`
	IsSynced  bool   `json:"is_synced"`
}

type balanceResponse struct {
	TokenType string `json:"token_type,omitempty"`
	Balance   string `json:"balance,omitempty"`
	// Balances is set only if no token type is requested.
	Balances map[string]string `json:"balances,omitempty"`
}

type addressesResponse struct {
	Addresses []string `json:"addresses"`
}

type shieldedAddressesResponse struct {
	ShieldedCoinPublicKey       string `json:"shieldedCoinPublicKey"`
	ShieldedEncryptionPublicKey string `json:"shieldedEncryptionPublicKey"`
}

type txResponse struct {
	Tx     string `json:"tx,omitempty"`
	TxHash string `json:"tx_hash,omitempty"`
}

type transferOutput struct {
	Address   string `json:"address"`
	Amount    string `json:"amount"`
	TokenType string `json:"token_type"`
}

type transferResponse struct {
	Id                string           `json:"id"`
	Kind              string           `json:"kind"`
	Status            string           `json:"status"`
	Outputs           []transferOutput `json:"outputs,omitempty"`
	PrimarySegments   []uint16         `json:"primary_segments,omitempty"`
	BalancingSegments []uint16         `json:"balancing_segments,omitempty"`
	TxId              string           `json:"tx_id,omitempty"`
	TxHash            string           `json:"tx_hash,omitempty"`
	FailureReason     string           `json:"failure_reason,omitempty"`
	CreatedAt         int64            `json:"created_at"`
	UpdatedAt         int64            `json:"updated_at"`
}

func toTransferResponse(t *domain.Transfer) transferResponse {
	outputs := make([]transferOutput, 0, len(t.Outputs))
	for _, out := range t.Outputs {
		outputs = append(outputs, transferOutput{
			Address:   out.Address,
			Amount:    formatAmount(out.Amount),
			TokenType: out.TokenType,
		})
	}
	return transferResponse{
		Id:                t.Id,
		Kind:              t.Kind,
		Status:            t.Status.String(),
		Outputs:           outputs,
		PrimarySegments:   t.PrimarySegments,
		BalancingSegments: t.BalancingSegments,
		TxId:              t.TxId,
		TxHash:            t.TxHash,
		FailureReason:     t.FailureReason,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}
