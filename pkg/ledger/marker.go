package ledger

import "fmt"

// SignatureMarker tells whether an intent carries signatures.
type SignatureMarker string

// ProofMarker tells the proof state of an intent.
type ProofMarker string

// BindingMarker tells whether an intent has been bound into a final
// transaction.
type BindingMarker string

const (
	SignatureEnabled SignatureMarker = "signature"
	SignatureErased  SignatureMarker = "signature-erased"

	// Proof marks intents whose validity proofs are attached (or will be
	// attached) by the caller.
	Proof ProofMarker = "proof"
	// PreProof marks intents whose proof is generated later in the balancing
	// pipeline.
	PreProof ProofMarker = "pre-proof"
	NoProof  ProofMarker = "no-proof"

	PreBinding BindingMarker = "pre-binding"
	Binding    BindingMarker = "binding"
)

// Markers groups the three tags serialized in front of every intent and
// transaction.
type Markers struct {
	Signature SignatureMarker
	Proof     ProofMarker
	Binding   BindingMarker
}

func (m Markers) validate() error {
	if err := m.Signature.Validate(); err != nil {
		return err
	}
	if err := m.Proof.Validate(); err != nil {
		return err
	}
	return m.Binding.Validate()
}

func (m Markers) String() string {
	return fmt.Sprintf("%s,%s,%s", m.Signature, m.Proof, m.Binding)
}

// Validate ...
func (m SignatureMarker) Validate() error {
	switch m {
	case SignatureEnabled, SignatureErased:
		return nil
	default:
		return fmt.Errorf("%w: signature marker '%s'", ErrUnknownMarker, m)
	}
}

// Validate ...
func (m ProofMarker) Validate() error {
	switch m {
	case Proof, PreProof, NoProof:
		return nil
	default:
		return fmt.Errorf("%w: proof marker '%s'", ErrUnknownMarker, m)
	}
}

// Validate ...
func (m BindingMarker) Validate() error {
	switch m {
	case PreBinding, Binding:
		return nil
	default:
		return fmt.Errorf("%w: binding marker '%s'", ErrUnknownMarker, m)
	}
}

// retag returns the markers to apply when data serialized with the current
// markers is read back with the requested ones.
func retag(current, requested Markers) (Markers, error) {
	if err := requested.validate(); err != nil {
		return Markers{}, err
	}
	if current.Binding == Binding && requested.Binding != Binding {
		return Markers{}, fmt.Errorf(
			"%w: cannot read %s data as %s", ErrIncompatibleMarker,
			current.Binding, requested.Binding,
		)
	}
	return requested, nil
}
