package ledger

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fxamacker/cbor/v2"
)

const (
	headerPrefix  = "midnight:"
	headerVersion = "v1"

	kindIntent      = "intent"
	kindTransaction = "transaction"
)

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	if encMode, err = cbor.CoreDetEncOptions().EncMode(); err != nil {
		panic(err)
	}
	if decMode, err = (cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}).DecMode(); err != nil {
		panic(err)
	}
}

// header returns the ascii prefix written in front of serialized data, in
// the form midnight:<kind>[v1](<signature>,<proof>,<binding>):
func header(kind string, m Markers) []byte {
	return []byte(fmt.Sprintf("%s%s[%s](%s):", headerPrefix, kind, headerVersion, m))
}

// parseHeader splits serialized data into the markers found in its header
// and the cbor encoded body.
func parseHeader(kind string, data []byte) (Markers, []byte, error) {
	prefix := []byte(fmt.Sprintf("%s%s[%s](", headerPrefix, kind, headerVersion))
	if !bytes.HasPrefix(data, prefix) {
		return Markers{}, nil, fmt.Errorf("%w: expected %s", ErrInvalidHeader, kind)
	}
	rest := data[len(prefix):]
	end := bytes.Index(rest, []byte("):"))
	if end < 0 {
		return Markers{}, nil, ErrInvalidHeader
	}

	tags := strings.Split(string(rest[:end]), ",")
	if len(tags) != 3 {
		return Markers{}, nil, ErrInvalidHeader
	}
	m := Markers{
		Signature: SignatureMarker(tags[0]),
		Proof:     ProofMarker(tags[1]),
		Binding:   BindingMarker(tags[2]),
	}
	if err := m.validate(); err != nil {
		return Markers{}, nil, err
	}
	return m, rest[end+2:], nil
}

func encode(kind string, m Markers, body interface{}) ([]byte, error) {
	buf, err := encMode.Marshal(body)
	if err != nil {
		return nil, err
	}
	return append(header(kind, m), buf...), nil
}
