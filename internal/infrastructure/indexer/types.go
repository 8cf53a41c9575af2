package indexer

const (
	unshieldedUtxosQuery = `query UnshieldedUtxos($address: UnshieldedAddress!) {
  unshieldedUtxos(address: $address) {
    owner
    intentHash
    outputIndex
    value
    tokenType
  }
}`
	blockHeightQuery = `query BlockHeight {
  block {
    height
  }
}`
)

// Utxo is an unshielded output as returned by the indexer.
type Utxo struct {
	Owner       string `json:"owner"`
	IntentHash  string `json:"intentHash"`
	OutputIndex uint32 `json:"outputIndex"`
	// Value is serialized as a string since it may exceed the JSON safe
	// integer range.
	Value     uint64 `json:"value,string"`
	TokenType string `json:"tokenType"`
}

func (u Utxo) GetIntentHash() string {
	return u.IntentHash
}

func (u Utxo) GetOutputNo() uint32 {
	return u.OutputIndex
}

func (u Utxo) GetOwner() string {
	return u.Owner
}

func (u Utxo) GetValue() uint64 {
	return u.Value
}

func (u Utxo) GetTokenType() string {
	return u.TokenType
}

type unshieldedUtxosResult struct {
	UnshieldedUtxos []Utxo `json:"unshieldedUtxos"`
}

type blockHeightResult struct {
	Block *struct {
		Height uint64 `json:"height"`
	} `json:"block"`
}
