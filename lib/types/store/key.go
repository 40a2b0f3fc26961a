package store

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

const KeySep = "/"

// NewKey joins the parts with KeySep. Integers are zero padded and big
// integers are fixed width hex, so byte order of keys follows numeric order.
func NewKey(parts ...interface{}) []byte {
	var sb strings.Builder
	for i, p := range parts {
		if i > 0 {
			sb.WriteString(KeySep)
		}
		sb.WriteString(keyPart(p))
	}
	return []byte(sb.String())
}

// NewPrefix is NewKey with a trailing separator, for prefix iteration.
func NewPrefix(parts ...interface{}) []byte {
	return append(NewKey(parts...), KeySep...)
}

func keyPart(p interface{}) string {
	switch v := p.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case uint64:
		return fmt.Sprintf("%020d", v)
	case uint8:
		return fmt.Sprintf("%03d", v)
	case int:
		return fmt.Sprintf("%020d", v)
	case common.Address:
		return strings.ToLower(v.Hex()[2:])
	case *big.Int:
		return fmt.Sprintf("%064x", v)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
