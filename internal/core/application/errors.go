package application

import (
	"errors"

	"github.com/blind-mentorship/mentorship-wallet/internal/core/ports"
	"github.com/blind-mentorship/mentorship-wallet/pkg/hdwallet"
)

var (
	// ErrInvalidSeed is returned when a session can't be built from the
	// given seed.
	ErrInvalidSeed = hdwallet.ErrInvalidSeed
	// ErrDerivation ...
	ErrDerivation = hdwallet.ErrDerivation
	// ErrInsufficientFunds is returned by the pre-flight check of a transfer,
	// before asking the wallet engine for a recipe.
	ErrInsufficientFunds = ports.ErrInsufficientFunds
	// ErrMissingRecipe is returned when the wallet engine has nothing to
	// offer for a balancing request.
	ErrMissingRecipe = errors.New("wallet engine returned no recipe")
	// ErrFinalization is returned when a signed recipe can't be turned into
	// a submittable transaction.
	ErrFinalization = errors.New("failed to finalize transaction")
	// ErrSubmissionRejected ...
	ErrSubmissionRejected = ports.ErrSubmissionRejected
	// ErrInvalidTransaction ...
	ErrInvalidTransaction = errors.New("transaction is malformed")
	// ErrNullWalletEngine ...
	ErrNullWalletEngine = errors.New("wallet engine must not be null")
	// ErrNullTransferRepository ...
	ErrNullTransferRepository = errors.New("transfer repository must not be null")
	// ErrSessionNotStarted ...
	ErrSessionNotStarted = errors.New("wallet session is not started")
	// ErrSessionStopped is returned when trying to restart a stopped session.
	// Key material is wiped on stop, a new session must be created.
	ErrSessionStopped = errors.New("wallet session has been stopped")
)
