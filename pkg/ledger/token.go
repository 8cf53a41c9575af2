package ledger

import (
	"encoding/hex"
	"strings"
)

const nativeTokenHex = "0000000000000000000000000000000000000000000000000000000000000000"

// TokenType identifies an unshielded token by its 32 byte raw type, hex
// encoded.
type TokenType string

// NativeToken returns the token type of the ledger's native token.
func NativeToken() TokenType {
	return TokenType(nativeTokenHex)
}

// Validate ...
func (t TokenType) Validate() error {
	buf, err := hex.DecodeString(string(t))
	if err != nil || len(buf) != 32 {
		return ErrInvalidTokenType
	}
	return nil
}

// IsNative ...
func (t TokenType) IsNative() bool {
	return strings.ToLower(string(t)) == nativeTokenHex
}

func (t TokenType) String() string {
	return strings.ToLower(string(t))
}
