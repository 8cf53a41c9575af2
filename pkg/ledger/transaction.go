package ledger

import (
	"encoding/hex"
	"fmt"
	"sort"

	"golang.org/x/crypto/blake2b"
)

// Transaction is a set of intents keyed by segment index. Segment keys are
// unique, their order is not significant.
type Transaction struct {
	NetworkID string             `cbor:"1,keyasint"`
	Intents   map[uint16]*Intent `cbor:"2,keyasint"`

	Markers Markers `cbor:"-"`
}

// NewTransaction returns an unproven, unbound transaction without intents.
func NewTransaction(networkID string) *Transaction {
	return &Transaction{
		NetworkID: networkID,
		Intents:   make(map[uint16]*Intent),
		Markers:   Markers{SignatureEnabled, PreProof, PreBinding},
	}
}

// Serialize encodes the transaction. Intents are encoded without their own
// markers and inherit the transaction's ones when read back.
func (t *Transaction) Serialize() ([]byte, error) {
	return encode(kindTransaction, t.Markers, t)
}

// DeserializeTransaction decodes a transaction and tags it, and every one of
// its intents, with the requested markers.
func DeserializeTransaction(
	sig SignatureMarker, proof ProofMarker, binding BindingMarker, data []byte,
) (*Transaction, error) {
	current, body, err := parseHeader(kindTransaction, data)
	if err != nil {
		return nil, err
	}
	markers, err := retag(current, Markers{sig, proof, binding})
	if err != nil {
		return nil, err
	}

	tx := &Transaction{}
	if err := decMode.Unmarshal(body, tx); err != nil {
		return nil, err
	}
	if tx.Intents == nil {
		tx.Intents = make(map[uint16]*Intent)
	}
	tx.Markers = markers
	for _, intent := range tx.Intents {
		if intent != nil {
			intent.Markers = markers
		}
	}
	return tx, nil
}

// Segments returns the segment indexes of the transaction in ascending
// order.
func (t *Transaction) Segments() []uint16 {
	segments := make([]uint16, 0, len(t.Intents))
	for s := range t.Intents {
		segments = append(segments, s)
	}
	sort.Slice(segments, func(i, j int) bool { return segments[i] < segments[j] })
	return segments
}

// NextSegment returns the first free segment index greater than zero.
func (t *Transaction) NextSegment() uint16 {
	var next uint16 = 1
	for _, s := range t.Segments() {
		if s >= next {
			next = s + 1
		}
	}
	return next
}

// Totals returns the amounts spent and created by the transaction's
// unshielded offers, grouped by token type. Token types are normalized to
// lowercase. It fails with ErrAmountOverflow if any total does not fit a
// uint64.
func (t *Transaction) Totals() (map[TokenType]uint64, map[TokenType]uint64, error) {
	ins := make(map[TokenType]uint64)
	outs := make(map[TokenType]uint64)
	for _, segment := range t.Segments() {
		intent := t.Intents[segment]
		if intent == nil {
			continue
		}
		for _, offer := range intent.Offers() {
			for _, in := range offer.Inputs {
				if err := addTokenAmount(ins, TokenType(in.Type.String()), in.Value); err != nil {
					return nil, nil, fmt.Errorf("segment %d inputs: %w", segment, err)
				}
			}
			for _, out := range offer.Outputs {
				if err := addTokenAmount(outs, TokenType(out.Type.String()), out.Value); err != nil {
					return nil, nil, fmt.Errorf("segment %d outputs: %w", segment, err)
				}
			}
		}
	}
	return ins, outs, nil
}

// Clone ...
func (t *Transaction) Clone() *Transaction {
	if t == nil {
		return nil
	}
	tx := &Transaction{
		NetworkID: t.NetworkID,
		Intents:   make(map[uint16]*Intent, len(t.Intents)),
		Markers:   t.Markers,
	}
	for s, intent := range t.Intents {
		tx.Intents[s] = intent.Clone()
	}
	return tx
}

// checkMarkers makes sure that every intent has been signed with the given
// proof marker.
func (t *Transaction) checkMarkers(proof ProofMarker) error {
	for _, segment := range t.Segments() {
		intent := t.Intents[segment]
		if intent == nil {
			continue
		}
		if intent.Markers.Signature != SignatureEnabled || intent.Markers.Proof != proof {
			return fmt.Errorf(
				"%w: %w: segment %d is %s, expected %s",
				ErrFinalization, ErrWrongProofMarker, segment, intent.Markers, Markers{
					SignatureEnabled, proof, intent.Markers.Binding,
				},
			)
		}
	}
	return nil
}

// checkSignatures makes sure that every input of every offer of every intent
// has a signature.
func (t *Transaction) checkSignatures() error {
	for _, segment := range t.Segments() {
		intent := t.Intents[segment]
		if intent == nil {
			continue
		}
		if offer := intent.GuaranteedUnshieldedOffer; offer != nil {
			if i := offer.firstUnsigned(); i >= 0 {
				return fmt.Errorf(
					"%w: segment %d, guaranteed offer input %d", ErrFinalization, segment, i,
				)
			}
		}
		if offer := intent.FallibleUnshieldedOffer; offer != nil {
			if i := offer.firstUnsigned(); i >= 0 {
				return fmt.Errorf(
					"%w: segment %d, fallible offer input %d", ErrFinalization, segment, i,
				)
			}
		}
	}
	return nil
}

// Recipe is the outcome of a wallet balancing step: the primary transaction
// and, optionally, a separate transaction used to cover fees and change.
type Recipe struct {
	Primary   *Transaction
	Balancing *Transaction
}

// HasBalancing ...
func (r *Recipe) HasBalancing() bool {
	return r != nil && r.Balancing != nil
}

// FinalizedTransaction is a fully signed, bound transaction ready to be
// submitted to the network.
type FinalizedTransaction struct {
	tx *Transaction
}

// Finalize combines the transactions of a fully signed recipe into one
// proven and bound transaction. It fails with ErrFinalization if any input is
// missing its signature, or if the intents of the primary transaction are not
// signed as Proof and those of the balancing one as PreProof.
func Finalize(recipe *Recipe) (*FinalizedTransaction, error) {
	if recipe == nil || recipe.Primary == nil {
		return nil, ErrNullRecipe
	}
	if err := recipe.Primary.checkSignatures(); err != nil {
		return nil, fmt.Errorf("primary transaction: %w", err)
	}
	if err := recipe.Primary.checkMarkers(Proof); err != nil {
		return nil, fmt.Errorf("primary transaction: %w", err)
	}

	tx := recipe.Primary.Clone()
	if recipe.Balancing != nil {
		if err := recipe.Balancing.checkSignatures(); err != nil {
			return nil, fmt.Errorf("balancing transaction: %w", err)
		}
		if err := recipe.Balancing.checkMarkers(PreProof); err != nil {
			return nil, fmt.Errorf("balancing transaction: %w", err)
		}
		if recipe.Balancing.NetworkID != tx.NetworkID {
			return nil, ErrNetworkMismatch
		}
		for segment, intent := range recipe.Balancing.Intents {
			if _, ok := tx.Intents[segment]; ok {
				return nil, fmt.Errorf("%w: %d", ErrSegmentCollision, segment)
			}
			tx.Intents[segment] = intent.Clone()
		}
	}

	tx.Markers = Markers{SignatureEnabled, Proof, Binding}
	for _, intent := range tx.Intents {
		if intent != nil {
			intent.Markers = tx.Markers
		}
	}
	return &FinalizedTransaction{tx}, nil
}

// DeserializeFinalized decodes a finalized transaction and verifies that it
// is fully signed.
func DeserializeFinalized(data []byte) (*FinalizedTransaction, error) {
	tx, err := DeserializeTransaction(SignatureEnabled, Proof, Binding, data)
	if err != nil {
		return nil, err
	}
	if err := tx.checkSignatures(); err != nil {
		return nil, err
	}
	return &FinalizedTransaction{tx}, nil
}

// Serialize ...
func (f *FinalizedTransaction) Serialize() ([]byte, error) {
	return f.tx.Serialize()
}

// ID returns the hex encoded blake2b-256 hash of the serialized transaction.
func (f *FinalizedTransaction) ID() (string, error) {
	buf, err := f.Serialize()
	if err != nil {
		return "", err
	}
	h := blake2b.Sum256(buf)
	return hex.EncodeToString(h[:]), nil
}

// Transaction returns a copy of the underlying transaction.
func (f *FinalizedTransaction) Transaction() *Transaction {
	return f.tx.Clone()
}
