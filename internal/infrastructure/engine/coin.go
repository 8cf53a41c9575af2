package engine

import (
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/blind-mentorship/mentorship-wallet/internal/core/ports"
	"github.com/blind-mentorship/mentorship-wallet/pkg/ledger"
)

// coin is an unshielded output owned by the wallet.
type coin struct {
	intentHash []byte
	outputNo   uint32
	value      uint64
	tokenType  ledger.TokenType
}

func newCoin(u ports.Utxo) (coin, error) {
	intentHash, err := hex.DecodeString(strings.TrimPrefix(u.GetIntentHash(), "0x"))
	if err != nil || len(intentHash) <= 0 {
		return coin{}, fmt.Errorf("invalid intent hash %s", u.GetIntentHash())
	}
	token := ledger.TokenType(strings.TrimPrefix(u.GetTokenType(), "0x"))
	if err := token.Validate(); err != nil {
		return coin{}, err
	}
	return coin{
		intentHash: intentHash,
		outputNo:   u.GetOutputNo(),
		value:      u.GetValue(),
		tokenType:  ledger.TokenType(token.String()),
	}, nil
}

func (c coin) key() string {
	return coinKey(c.intentHash, c.outputNo)
}

func (c coin) toSpend(owner []byte) ledger.UtxoSpend {
	return ledger.UtxoSpend{
		Value:      c.value,
		Owner:      append([]byte{}, owner...),
		Type:       c.tokenType,
		IntentHash: append([]byte{}, c.intentHash...),
		OutputNo:   c.outputNo,
	}
}

func coinKey(intentHash []byte, outputNo uint32) string {
	return fmt.Sprintf("%x:%d", intentHash, outputNo)
}

// spentCoinKeys returns the keys of the inputs of the transaction owned by
// the given public key.
func spentCoinKeys(owner []byte, txs ...*ledger.Transaction) []string {
	keys := make([]string, 0)
	for _, tx := range txs {
		if tx == nil {
			continue
		}
		for _, intent := range tx.Intents {
			if intent == nil {
				continue
			}
			for _, offer := range intent.Offers() {
				for _, in := range offer.Inputs {
					if string(in.Owner) == string(owner) {
						keys = append(keys, coinKey(in.IntentHash, in.OutputNo))
					}
				}
			}
		}
	}
	return keys
}

func sortedTokens(amounts map[ledger.TokenType]uint64) []ledger.TokenType {
	tokens := make([]ledger.TokenType, 0, len(amounts))
	for token := range amounts {
		tokens = append(tokens, token)
	}
	sort.Slice(tokens, func(i, j int) bool { return tokens[i] < tokens[j] })
	return tokens
}
