package tx

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/artwhale/go-artwhale/lib/types"
)

// Receipt records an applied message. Failed messages leave no receipt.
type Receipt struct {
	ID     types.MsgID
	Method MsgType
	Height uint64 // number of messages applied before this one
	Root   types.MsgID
	Return []byte // cbor of the method result, if any
}

func (r *Receipt) Serialize() ([]byte, error) {
	return cbor.Marshal(r)
}

func (r *Receipt) Deserialize(b []byte) error {
	return cbor.Unmarshal(b, r)
}

func (r *Receipt) DecodeReturn(v interface{}) error {
	return cbor.Unmarshal(r.Return, v)
}
