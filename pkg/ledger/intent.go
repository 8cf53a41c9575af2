package ledger

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

const intentSignatureDomain = "midnight:sig-intent:"

// Intent is an atomic, independently signable fragment of a transaction. It
// is identified by its segment index inside the owning transaction.
type Intent struct {
	// GuaranteedUnshieldedOffer groups spends that must succeed.
	GuaranteedUnshieldedOffer *UnshieldedOffer `cbor:"1,keyasint,omitempty"`
	// FallibleUnshieldedOffer groups spends the network may drop without
	// invalidating the intent.
	FallibleUnshieldedOffer *UnshieldedOffer `cbor:"2,keyasint,omitempty"`
	// TTL is the unix time after which the intent is no longer valid.
	TTL int64 `cbor:"3,keyasint"`

	Markers Markers `cbor:"-"`
}

// NewIntent returns an empty intent ready to be signed.
func NewIntent(ttl int64) *Intent {
	return &Intent{
		TTL:     ttl,
		Markers: Markers{SignatureEnabled, PreProof, PreBinding},
	}
}

// Serialize encodes the intent with its markers in the header.
func (i *Intent) Serialize() ([]byte, error) {
	return encode(kindIntent, i.Markers, i)
}

// DeserializeIntent decodes an intent and tags it with the requested
// markers. The content is preserved exactly, only the markers change.
func DeserializeIntent(
	sig SignatureMarker, proof ProofMarker, binding BindingMarker, data []byte,
) (*Intent, error) {
	current, body, err := parseHeader(kindIntent, data)
	if err != nil {
		return nil, err
	}
	markers, err := retag(current, Markers{sig, proof, binding})
	if err != nil {
		return nil, err
	}

	intent := &Intent{}
	if err := decMode.Unmarshal(body, intent); err != nil {
		return nil, err
	}
	intent.Markers = markers
	return intent, nil
}

// SignatureData returns the digest to be signed for the intent placed at
// the given segment. Signatures and markers are not part of the digest while
// the segment is, so that a signature can't be replayed on another segment.
func (i *Intent) SignatureData(segment uint16) ([]byte, error) {
	body := &Intent{
		GuaranteedUnshieldedOffer: i.GuaranteedUnshieldedOffer.unsigned(),
		FallibleUnshieldedOffer:   i.FallibleUnshieldedOffer.unsigned(),
		TTL:                       i.TTL,
	}
	buf, err := encMode.Marshal(body)
	if err != nil {
		return nil, err
	}

	h, _ := blake2b.New256(nil)
	h.Write([]byte(intentSignatureDomain))
	seg := make([]byte, 2)
	binary.BigEndian.PutUint16(seg, segment)
	h.Write(seg)
	h.Write(buf)
	return h.Sum(nil), nil
}

// Offers returns the non-nil offers of the intent, guaranteed first.
func (i *Intent) Offers() []*UnshieldedOffer {
	offers := make([]*UnshieldedOffer, 0, 2)
	if i.GuaranteedUnshieldedOffer != nil {
		offers = append(offers, i.GuaranteedUnshieldedOffer)
	}
	if i.FallibleUnshieldedOffer != nil {
		offers = append(offers, i.FallibleUnshieldedOffer)
	}
	return offers
}

// Clone ...
func (i *Intent) Clone() *Intent {
	if i == nil {
		return nil
	}
	return &Intent{
		GuaranteedUnshieldedOffer: i.GuaranteedUnshieldedOffer.Clone(),
		FallibleUnshieldedOffer:   i.FallibleUnshieldedOffer.Clone(),
		TTL:                       i.TTL,
		Markers:                   i.Markers,
	}
}
