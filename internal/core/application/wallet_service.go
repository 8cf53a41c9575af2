package application

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/blind-mentorship/mentorship-wallet/internal/core/domain"
	"github.com/blind-mentorship/mentorship-wallet/internal/core/ports"
	"github.com/blind-mentorship/mentorship-wallet/pkg/keystore"
	"github.com/blind-mentorship/mentorship-wallet/pkg/ledger"
	"github.com/blind-mentorship/mentorship-wallet/pkg/ledger/signer"
	log "github.com/sirupsen/logrus"
)

// submitTimeout bounds the submission of a transfer, which runs detached
// from the caller's context.
const submitTimeout = 30 * time.Second

// WalletService drives transactions through the balancing workflow:
// Unbalanced -> Recipe -> Signed -> Finalized -> Submitted.
// None of the steps is retried, a failed transfer must be requested again.
type WalletService interface {
	Info(ctx context.Context) (*WalletInfo, error)
	Address(ctx context.Context) (string, error)
	ShieldedAddresses(ctx context.Context) (*ShieldedAddresses, error)
	Balance(ctx context.Context, tokenType string) (uint64, error)
	Balances(ctx context.Context) (map[string]uint64, error)
	Transfer(
		ctx context.Context, receivers []TransferRequest,
	) (*domain.Transfer, error)
	BalanceTransaction(ctx context.Context, txHex string) (string, error)
	SubmitTransaction(ctx context.Context, txHex string) (string, error)
	ListTransfers(ctx context.Context) ([]*domain.Transfer, error)
}

type walletService struct {
	session *Session
	repo    domain.TransferRepository
}

// NewWalletService returns a WalletService operating on the given session.
func NewWalletService(
	session *Session, repo domain.TransferRepository,
) (WalletService, error) {
	if session == nil {
		return nil, ErrSessionNotStarted
	}
	if repo == nil {
		return nil, ErrNullTransferRepository
	}
	return &walletService{session, repo}, nil
}

func (w *walletService) Info(ctx context.Context) (*WalletInfo, error) {
	return &WalletInfo{
		NetworkID: w.session.NetworkID(),
		Address:   w.session.Address(),
		PublicKey: w.session.PublicKey(),
		IsSynced:  w.session.IsStarted() && w.session.Engine().IsSynced(),
	}, nil
}

func (w *walletService) Address(ctx context.Context) (string, error) {
	return w.session.Address(), nil
}

func (w *walletService) ShieldedAddresses(
	ctx context.Context,
) (*ShieldedAddresses, error) {
	coinPubkey, encPubkey := w.session.ShieldedKeys()
	return &ShieldedAddresses{
		CoinPublicKey:       coinPubkey,
		EncryptionPublicKey: encPubkey,
	}, nil
}

func (w *walletService) Balance(
	ctx context.Context, tokenType string,
) (uint64, error) {
	token, err := parseTokenType(tokenType)
	if err != nil {
		return 0, err
	}
	balances, err := w.Balances(ctx)
	if err != nil {
		return 0, err
	}
	return balances[token], nil
}

func (w *walletService) Balances(ctx context.Context) (map[string]uint64, error) {
	if !w.session.IsStarted() {
		return nil, ErrSessionNotStarted
	}
	return w.session.Engine().Balances(ctx)
}

func (w *walletService) Transfer(
	ctx context.Context, receivers []TransferRequest,
) (*domain.Transfer, error) {
	if !w.session.IsStarted() {
		return nil, ErrSessionNotStarted
	}

	outputs, err := w.parseReceivers(receivers)
	if err != nil {
		return nil, err
	}
	transfer, err := domain.NewTransfer(domain.TransferKindSend, outputs)
	if err != nil {
		return nil, err
	}

	balances, err := w.session.Engine().Balances(ctx)
	if err != nil {
		return nil, err
	}
	totals, err := transfer.TotalAmountPerToken()
	if err != nil {
		return nil, err
	}
	for token, amount := range totals {
		if balances[token] < amount {
			return nil, fmt.Errorf(
				"%w: token %s, requested %d, available %d",
				ErrInsufficientFunds, token, amount, balances[token],
			)
		}
	}

	if err := w.repo.AddTransfer(ctx, transfer); err != nil {
		return nil, err
	}

	txOuts := make([]ports.TxOutput, 0, len(transfer.Outputs))
	for _, out := range transfer.Outputs {
		txOuts = append(txOuts, out)
	}

	log.WithField("transfer", transfer.Id).Debug("fetching transfer recipe")
	recipe, err := w.session.fetchRecipe(func() (*ledger.Recipe, error) {
		return w.session.Engine().TransferRecipe(ctx, txOuts)
	})
	if err != nil {
		return nil, w.fail(ctx, transfer, err)
	}

	// Once a recipe is in hand the workflow must run to completion or fail
	// explicitly.
	ctx = context.WithoutCancel(ctx)

	finalized, err := w.signAndFinalize(ctx, transfer, recipe)
	if err != nil {
		return nil, err
	}

	if err := w.submit(ctx, transfer, finalized); err != nil {
		return nil, err
	}
	return transfer, nil
}

func (w *walletService) BalanceTransaction(
	ctx context.Context, txHex string,
) (string, error) {
	if !w.session.IsStarted() {
		return "", ErrSessionNotStarted
	}

	buf, err := hex.DecodeString(txHex)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidTransaction, err)
	}
	tx, err := ledger.DeserializeTransaction(
		ledger.SignatureEnabled, ledger.Proof, ledger.PreBinding, buf,
	)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidTransaction, err)
	}
	if tx.NetworkID != w.session.NetworkID() {
		return "", fmt.Errorf(
			"%w: network %s, expected %s",
			ErrInvalidTransaction, tx.NetworkID, w.session.NetworkID(),
		)
	}

	transfer, err := domain.NewTransfer(domain.TransferKindBalance, nil)
	if err != nil {
		return "", err
	}
	if err := w.repo.AddTransfer(ctx, transfer); err != nil {
		return "", err
	}

	log.WithField("transfer", transfer.Id).Debug("fetching balancing recipe")
	recipe, err := w.session.fetchRecipe(func() (*ledger.Recipe, error) {
		return w.session.Engine().BalanceRecipe(ctx, tx)
	})
	if err != nil {
		return "", w.fail(ctx, transfer, err)
	}

	ctx = context.WithoutCancel(ctx)

	finalized, err := w.signAndFinalize(ctx, transfer, recipe)
	if err != nil {
		return "", err
	}
	finalizedBuf, err := finalized.Serialize()
	if err != nil {
		return "", w.fail(ctx, transfer, err)
	}

	recordOutcome(transfer.Kind, outcomeFinalized)
	return hex.EncodeToString(finalizedBuf), nil
}

func (w *walletService) SubmitTransaction(
	ctx context.Context, txHex string,
) (string, error) {
	if !w.session.IsStarted() {
		return "", ErrSessionNotStarted
	}

	buf, err := hex.DecodeString(txHex)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrInvalidTransaction, err)
	}
	finalized, err := ledger.DeserializeFinalized(buf)
	if err != nil {
		if errors.Is(err, ledger.ErrFinalization) {
			return "", fmt.Errorf("%w: %w", ErrFinalization, err)
		}
		return "", fmt.Errorf("%w: %s", ErrInvalidTransaction, err)
	}

	txid, err := finalized.ID()
	if err != nil {
		return "", err
	}
	transfer, err := w.repo.GetTransferByTxId(ctx, txid)
	if err != nil && !errors.Is(err, domain.ErrTransferNotFound) {
		return "", err
	}
	// only transactions finalized by this wallet are tracked.
	if transfer == nil || !transfer.IsFinalized() {
		return w.session.Engine().SubmitTransaction(ctx, finalized)
	}

	if err := w.submit(ctx, transfer, finalized); err != nil {
		return "", err
	}
	return transfer.TxHash, nil
}

func (w *walletService) ListTransfers(
	ctx context.Context,
) ([]*domain.Transfer, error) {
	return w.repo.GetAllTransfers(ctx)
}

// signAndFinalize signs the primary transaction of the recipe with the
// proof marker and the balancing one, if any, with the pre-proof marker.
// The signed recipe is then combined into a finalized transaction.
func (w *walletService) signAndFinalize(
	ctx context.Context, transfer *domain.Transfer, recipe *ledger.Recipe,
) (*ledger.FinalizedTransaction, error) {
	var balancingSegments []uint16
	if recipe.HasBalancing() {
		balancingSegments = recipe.Balancing.Segments()
	}
	if err := transfer.Recipe(
		recipe.Primary.Segments(), balancingSegments,
	); err != nil {
		return nil, w.fail(ctx, transfer, err)
	}
	w.updateTransfer(ctx, transfer)

	if err := signer.SignIntents(
		recipe.Primary, w.session.sign, ledger.Proof,
	); err != nil {
		return nil, w.fail(ctx, transfer, fmt.Errorf("primary transaction: %w", err))
	}
	signedIntentsTotal.WithLabelValues(string(ledger.Proof)).
		Add(float64(len(recipe.Primary.Intents)))

	if recipe.HasBalancing() {
		if err := signer.SignIntents(
			recipe.Balancing, w.session.sign, ledger.PreProof,
		); err != nil {
			return nil, w.fail(
				ctx, transfer, fmt.Errorf("balancing transaction: %w", err),
			)
		}
		signedIntentsTotal.WithLabelValues(string(ledger.PreProof)).
			Add(float64(len(recipe.Balancing.Intents)))
	}

	if err := transfer.Sign(); err != nil {
		return nil, w.fail(ctx, transfer, err)
	}
	w.updateTransfer(ctx, transfer)

	finalized, err := w.session.Engine().FinalizeRecipe(ctx, recipe)
	if err != nil {
		return nil, w.fail(ctx, transfer, fmt.Errorf("%w: %w", ErrFinalization, err))
	}
	txid, err := finalized.ID()
	if err != nil {
		return nil, w.fail(ctx, transfer, err)
	}
	if err := transfer.Finalize(txid); err != nil {
		return nil, w.fail(ctx, transfer, err)
	}
	w.updateTransfer(ctx, transfer)

	log.WithFields(log.Fields{
		"transfer": transfer.Id,
		"txid":     txid,
	}).Debug("transaction finalized")
	return finalized, nil
}

func (w *walletService) submit(
	ctx context.Context, transfer *domain.Transfer,
	finalized *ledger.FinalizedTransaction,
) error {
	submitCtx, cancel := context.WithTimeout(ctx, submitTimeout)
	defer cancel()

	txHash, err := w.session.Engine().SubmitTransaction(submitCtx, finalized)
	if err != nil {
		return w.fail(ctx, transfer, err)
	}
	if err := transfer.Submit(txHash); err != nil {
		return w.fail(ctx, transfer, err)
	}
	w.updateTransfer(ctx, transfer)
	recordOutcome(transfer.Kind, outcomeSubmitted)

	log.WithFields(log.Fields{
		"transfer": transfer.Id,
		"txhash":   txHash,
	}).Info("transaction submitted")
	return nil
}

func (w *walletService) fail(
	ctx context.Context, transfer *domain.Transfer, err error,
) error {
	transfer.Fail(err.Error())
	w.updateTransfer(ctx, transfer)
	recordOutcome(transfer.Kind, outcomeFailed)

	log.WithError(err).WithFields(log.Fields{
		"transfer": transfer.Id,
		"status":   transfer.Status.String(),
	}).Warn("transfer failed")
	return err
}

func (w *walletService) updateTransfer(
	ctx context.Context, transfer *domain.Transfer,
) {
	if err := w.repo.UpdateTransfer(
		ctx, transfer.Id, func(_ *domain.Transfer) (*domain.Transfer, error) {
			return transfer, nil
		},
	); err != nil {
		log.WithError(err).Warnf("failed to update transfer %s", transfer.Id)
	}
}

func (w *walletService) parseReceivers(
	receivers []TransferRequest,
) ([]domain.TransferOutput, error) {
	outputs := make([]domain.TransferOutput, 0, len(receivers))
	for i, r := range receivers {
		if _, err := keystore.ParseAddress(r.Address, w.session.NetworkID()); err != nil {
			return nil, fmt.Errorf("receiver %d: %w", i, err)
		}
		token, err := parseTokenType(r.TokenType)
		if err != nil {
			return nil, fmt.Errorf("receiver %d: %w", i, err)
		}
		outputs = append(outputs, domain.TransferOutput{
			Address:   r.Address,
			Amount:    r.Amount,
			TokenType: token,
		})
	}
	return outputs, nil
}

func parseTokenType(tokenType string) (string, error) {
	if len(tokenType) <= 0 {
		return ledger.NativeToken().String(), nil
	}
	token := ledger.TokenType(tokenType)
	if err := token.Validate(); err != nil {
		return "", err
	}
	return token.String(), nil
}
