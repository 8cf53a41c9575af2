package hdwallet

import "errors"

var (
	// ErrInvalidSeed is returned when the seed can't initialize the
	// derivation tree, either for its length or because the resulting master
	// key is unusable.
	ErrInvalidSeed = errors.New("seed can not initialize hd wallet")
	// ErrDerivation is returned when keys can't be derived for the requested
	// account, roles and index.
	ErrDerivation = errors.New("failed to derive keys")
	// ErrNullRoles ...
	ErrNullRoles = errors.New("role list must not be empty")
	// ErrWalletCleared ...
	ErrWalletCleared = errors.New("hd wallet has been cleared")
	// ErrInvalidEntropySize ...
	ErrInvalidEntropySize = errors.New(
		"entropy size must be a multiple of 32 in the range [128,256]",
	)
	// ErrInvalidMnemonic ...
	ErrInvalidMnemonic = errors.New("mnemonic is invalid")
)
