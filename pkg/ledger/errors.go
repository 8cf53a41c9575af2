package ledger

import "errors"

var (
	// ErrInvalidHeader ...
	ErrInvalidHeader = errors.New("serialized data has an invalid header")
	// ErrUnknownMarker ...
	ErrUnknownMarker = errors.New("unknown marker")
	// ErrIncompatibleMarker is returned when re-tagging would downgrade an
	// irreversible marker, like turning a bound intent into a pre-binding one.
	ErrIncompatibleMarker = errors.New("serialized data is not compatible with requested markers")
	// ErrInvalidTokenType ...
	ErrInvalidTokenType = errors.New("token type must be a 32 byte array in hex format")
	// ErrSignatureCount ...
	ErrSignatureCount = errors.New("number of signatures must match number of offer inputs")
	// ErrNullRecipe ...
	ErrNullRecipe = errors.New("recipe must contain a primary transaction")
	// ErrFinalization is returned when a recipe still has unsigned inputs or
	// its intents are not tagged as required.
	ErrFinalization = errors.New("transaction can't be finalized")
	// ErrWrongProofMarker is returned when finalizing a recipe whose primary
	// intents are not signed as proof or whose balancing intents are not
	// signed as pre-proof.
	ErrWrongProofMarker = errors.New("intent is signed with the wrong proof marker")
	// ErrAmountOverflow ...
	ErrAmountOverflow = errors.New("sum of amounts overflows")
	// ErrSegmentCollision ...
	ErrSegmentCollision = errors.New("balancing transaction uses a segment already taken by the primary transaction")
	// ErrNetworkMismatch ...
	ErrNetworkMismatch = errors.New("transactions belong to different networks")
	// ErrNullTransaction ...
	ErrNullTransaction = errors.New("transaction must not be null")
)
