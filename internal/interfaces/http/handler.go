package httpinterface

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/blind-mentorship/mentorship-wallet/internal/core/application"
	"github.com/blind-mentorship/mentorship-wallet/internal/core/domain"
	"github.com/blind-mentorship/mentorship-wallet/pkg/keystore"
	"github.com/blind-mentorship/mentorship-wallet/pkg/ledger"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

type walletHandler struct {
	walletSvc application.WalletService
}

func (h *walletHandler) getInfo(c *gin.Context) {
	info, err := h.walletSvc.Info(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": infoResponse{
		NetworkID: info.NetworkID,
		Address:   info.Address,
		PublicKey: info.PublicKey,
		IsSynced:  info.IsSynced,
	}})
}

func (h *walletHandler) getBalance(c *gin.Context) {
	ctx := c.Request.Context()

	if tokenType := c.Query("token_type"); len(tokenType) > 0 {
		balance, err := h.walletSvc.Balance(ctx, tokenType)
		if err != nil {
			respondWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": balanceResponse{
			TokenType: tokenType,
			Balance:   formatAmount(balance),
		}})
		return
	}

	balances, err := h.walletSvc.Balances(ctx)
	if err != nil {
		respondWithError(c, err)
		return
	}
	res := make(map[string]string, len(balances))
	for token, amount := range balances {
		res[token] = formatAmount(amount)
	}
	c.JSON(http.StatusOK, gin.H{"data": balanceResponse{Balances: res}})
}

func (h *walletHandler) getAddresses(c *gin.Context) {
	addr, err := h.walletSvc.Address(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": addressesResponse{
		Addresses: []string{addr},
	}})
}

func (h *walletHandler) getShieldedAddresses(c *gin.Context) {
	addresses, err := h.walletSvc.ShieldedAddresses(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": shieldedAddressesResponse{
		ShieldedCoinPublicKey:       addresses.CoinPublicKey,
		ShieldedEncryptionPublicKey: addresses.EncryptionPublicKey,
	}})
}

func (h *walletHandler) transfer(c *gin.Context) {
	var req transferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	receivers := make([]application.TransferRequest, 0, len(req.Receivers))
	for _, r := range req.Receivers {
		receivers = append(receivers, application.TransferRequest{
			Address:   r.Address,
			Amount:    r.Amount,
			TokenType: r.TokenType,
		})
	}

	transfer, err := h.walletSvc.Transfer(c.Request.Context(), receivers)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": toTransferResponse(transfer)})
}

func (h *walletHandler) balanceTransaction(c *gin.Context) {
	var req txRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tx, err := h.walletSvc.BalanceTransaction(c.Request.Context(), req.Tx)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": txResponse{Tx: tx}})
}

func (h *walletHandler) submitTransaction(c *gin.Context) {
	var req txRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	txHash, err := h.walletSvc.SubmitTransaction(c.Request.Context(), req.Tx)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": txResponse{TxHash: txHash}})
}

func (h *walletHandler) listTransfers(c *gin.Context) {
	transfers, err := h.walletSvc.ListTransfers(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	res := make([]transferResponse, 0, len(transfers))
	for _, t := range transfers {
		res = append(res, toTransferResponse(t))
	}
	c.JSON(http.StatusOK, gin.H{"data": res})
}

var badRequestErrors = []error{
	keystore.ErrInvalidAddress,
	keystore.ErrNetworkMismatch,
	ledger.ErrInvalidTokenType,
	ledger.ErrAmountOverflow,
	application.ErrInvalidTransaction,
	domain.ErrTransferNullOutputs,
	domain.ErrTransferInvalidAmount,
	domain.ErrTransferInvalidAddress,
	domain.ErrTransferInvalidTokenType,
	domain.ErrTransferAmountOverflow,
}

var unprocessableErrors = []error{
	application.ErrInsufficientFunds,
	application.ErrMissingRecipe,
	application.ErrFinalization,
	application.ErrSubmissionRejected,
}

func respondWithError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, application.ErrSessionNotStarted):
		status = http.StatusServiceUnavailable
	case isOneOf(err, badRequestErrors):
		status = http.StatusBadRequest
	case isOneOf(err, unprocessableErrors):
		status = http.StatusUnprocessableEntity
	}

	if status >= http.StatusInternalServerError {
		log.WithError(err).Warnf("%s %s failed", c.Request.Method, c.FullPath())
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func isOneOf(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// amounts are encoded as strings since they may exceed the JSON safe integer
// range.
func formatAmount(amount uint64) string {
	return strconv.FormatUint(amount, 10)
}
