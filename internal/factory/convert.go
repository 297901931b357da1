package factory

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

func asAddress(value interface{}) (common.Address, error) {
	switch v := value.(type) {
	case common.Address:
		return v, nil
	case *common.Address:
		return *v, nil
	default:
		return common.Address{}, fmt.Errorf("unsupported address type %T", value)
	}
}

func asUint16(value interface{}) (uint16, error) {
	switch v := value.(type) {
	case uint8:
		return uint16(v), nil
	case uint16:
		return v, nil
	case uint32:
		return uint16(v), nil
	case uint64:
		return uint16(v), nil
	case *big.Int:
		if !v.IsUint64() || v.Uint64() > 0xffff {
			return 0, fmt.Errorf("uint16 overflow: %s", v)
		}
		return uint16(v.Uint64()), nil
	default:
		return 0, fmt.Errorf("unsupported uint16 type %T", value)
	}
}

func asBool(value interface{}) (bool, error) {
	v, ok := value.(bool)
	if !ok {
		return false, fmt.Errorf("unsupported bool type %T", value)
	}
	return v, nil
}

func int24ToBig(value int) (*big.Int, error) {
	if value < -1<<23 || value > (1<<23)-1 {
		return nil, fmt.Errorf("int24 overflow: %d", value)
	}
	return big.NewInt(int64(value)), nil
}
