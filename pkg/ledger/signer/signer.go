// Package signer co-signs the intents of a transaction with an unshielded
// key, preserving signatures already contributed by other parties.
package signer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/blind-mentorship/mentorship-wallet/pkg/ledger"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNullSignFn ...
	ErrNullSignFn = errors.New("sign function must not be null")
	// ErrEmptySignature ...
	ErrEmptySignature = errors.New("sign function returned an empty signature")
)

// SignFn signs an arbitrary payload. It must be safe for concurrent use.
type SignFn func(payload []byte) (ledger.Signature, error)

// SignIntents signs every intent of the transaction and replaces each one
// with its re-signed clone. Intents are re-tagged with the given proof
// marker before computing their signable digest. Nothing is changed in case
// of error.
func SignIntents(
	tx *ledger.Transaction, signFn SignFn, marker ledger.ProofMarker,
) error {
	if tx == nil || len(tx.Intents) <= 0 {
		return nil
	}
	if signFn == nil {
		return ErrNullSignFn
	}
	if err := marker.Validate(); err != nil {
		return err
	}

	lock := &sync.Mutex{}
	signed := make(map[uint16]*ledger.Intent, len(tx.Intents))
	eg := &errgroup.Group{}

	for segment, intent := range tx.Intents {
		if intent == nil {
			continue
		}
		segment, intent := segment, intent
		eg.Go(func() error {
			cloned, err := signIntent(segment, intent, signFn, marker)
			if err != nil {
				return fmt.Errorf("segment %d: %w", segment, err)
			}
			lock.Lock()
			signed[segment] = cloned
			lock.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for segment, intent := range signed {
		tx.Intents[segment] = intent
	}
	return nil
}

// MergeSignatures returns a list of n signatures where every slot holds the
// existing signature at the same index, if any, or the computed one.
// Existing non-empty signatures are never overwritten.
func MergeSignatures(
	n int, existing []ledger.Signature, computed ledger.Signature,
) []ledger.Signature {
	sigs := make([]ledger.Signature, 0, n)
	for i := 0; i < n; i++ {
		if i < len(existing) && len(existing[i]) > 0 {
			sigs = append(sigs, existing[i])
			continue
		}
		sigs = append(sigs, computed)
	}
	return sigs
}

func signIntent(
	segment uint16, intent *ledger.Intent,
	signFn SignFn, marker ledger.ProofMarker,
) (*ledger.Intent, error) {
	buf, err := intent.Serialize()
	if err != nil {
		return nil, err
	}
	cloned, err := ledger.DeserializeIntent(
		ledger.SignatureEnabled, marker, ledger.PreBinding, buf,
	)
	if err != nil {
		return nil, err
	}

	sigData, err := cloned.SignatureData(segment)
	if err != nil {
		return nil, err
	}
	signature, err := signFn(sigData)
	if err != nil {
		return nil, err
	}
	if len(signature) <= 0 {
		return nil, ErrEmptySignature
	}

	if offer := cloned.GuaranteedUnshieldedOffer; offer != nil {
		sigs := MergeSignatures(len(offer.Inputs), offer.Signatures, signature)
		if cloned.GuaranteedUnshieldedOffer, err = offer.AddSignatures(sigs); err != nil {
			return nil, err
		}
	}
	if offer := cloned.FallibleUnshieldedOffer; offer != nil {
		sigs := MergeSignatures(len(offer.Inputs), offer.Signatures, signature)
		if cloned.FallibleUnshieldedOffer, err = offer.AddSignatures(sigs); err != nil {
			return nil, err
		}
	}
	return cloned, nil
}
