package ledger

import "fmt"

// Signature is an opaque signature over an intent's signable digest.
type Signature []byte

// UtxoSpend is an unshielded output being spent by an offer.
type UtxoSpend struct {
	Value uint64 `cbor:"1,keyasint"`
	// Owner is the x-only public key allowed to spend the output.
	Owner      []byte    `cbor:"2,keyasint"`
	Type       TokenType `cbor:"3,keyasint"`
	IntentHash []byte    `cbor:"4,keyasint"`
	OutputNo   uint32    `cbor:"5,keyasint"`
}

// UtxoOutput is an unshielded output created by an offer.
type UtxoOutput struct {
	Value uint64 `cbor:"1,keyasint"`
	// Owner is the 32 byte address payload of the receiver.
	Owner []byte    `cbor:"2,keyasint"`
	Type  TokenType `cbor:"3,keyasint"`
}

// UnshieldedOffer holds an ordered list of inputs and a parallel list of
// signatures, one slot per input.
type UnshieldedOffer struct {
	Inputs     []UtxoSpend  `cbor:"1,keyasint"`
	Outputs    []UtxoOutput `cbor:"2,keyasint"`
	Signatures []Signature  `cbor:"3,keyasint"`
}

// AddSignatures returns a copy of the offer with the given signatures. The
// list must have one entry per input.
func (o *UnshieldedOffer) AddSignatures(sigs []Signature) (*UnshieldedOffer, error) {
	if len(sigs) != len(o.Inputs) {
		return nil, fmt.Errorf(
			"%w: got %d, expected %d", ErrSignatureCount, len(sigs), len(o.Inputs),
		)
	}
	offer := o.Clone()
	offer.Signatures = make([]Signature, 0, len(sigs))
	for _, s := range sigs {
		offer.Signatures = append(offer.Signatures, cloneBytes(s))
	}
	return offer, nil
}

// IsFullySigned returns whether every input has a non-empty signature.
func (o *UnshieldedOffer) IsFullySigned() bool {
	return o.firstUnsigned() < 0
}

func (o *UnshieldedOffer) firstUnsigned() int {
	for i := range o.Inputs {
		if i >= len(o.Signatures) || len(o.Signatures[i]) <= 0 {
			return i
		}
	}
	return -1
}

// Clone ...
func (o *UnshieldedOffer) Clone() *UnshieldedOffer {
	if o == nil {
		return nil
	}
	offer := &UnshieldedOffer{}
	if o.Inputs != nil {
		offer.Inputs = make([]UtxoSpend, 0, len(o.Inputs))
		for _, in := range o.Inputs {
			in.Owner = cloneBytes(in.Owner)
			in.IntentHash = cloneBytes(in.IntentHash)
			offer.Inputs = append(offer.Inputs, in)
		}
	}
	if o.Outputs != nil {
		offer.Outputs = make([]UtxoOutput, 0, len(o.Outputs))
		for _, out := range o.Outputs {
			out.Owner = cloneBytes(out.Owner)
			offer.Outputs = append(offer.Outputs, out)
		}
	}
	if o.Signatures != nil {
		offer.Signatures = make([]Signature, 0, len(o.Signatures))
		for _, s := range o.Signatures {
			offer.Signatures = append(offer.Signatures, cloneBytes(s))
		}
	}
	return offer
}

func (o *UnshieldedOffer) unsigned() *UnshieldedOffer {
	if o == nil {
		return nil
	}
	offer := o.Clone()
	offer.Signatures = nil
	return offer
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte{}, b...)
}
