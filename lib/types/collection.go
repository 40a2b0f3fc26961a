package types

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/fxamacker/cbor/v2"
)

// Collection is an item contract hosted by the node.
// key: collection/address; value: cbor
type Collection struct {
	Address  common.Address
	Name     string
	Symbol   string
	Standard Standard
	Owner    common.Address
	Signer   common.Address // trusted mint signer
	Operator common.Address
	Treasury common.Address // receives mint payments
	BaseURI  string
}

func (c *Collection) Serialize() ([]byte, error) {
	return cbor.Marshal(c)
}

func (c *Collection) Deserialize(b []byte) error {
	return cbor.Unmarshal(b, c)
}
