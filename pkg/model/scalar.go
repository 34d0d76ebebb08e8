package model

import "fmt"

// ScalarType enumerates the sample value types carried by a data column.
type ScalarType int

const (
	TypeUnknown ScalarType = iota
	TypeBool
	TypeInt32
	TypeInt64
	TypeFloat32
	TypeFloat64
	TypeString
	TypeImage
)

func (t ScalarType) String() string {
	switch t {
	case TypeBool:
		return "bool"
	case TypeInt32:
		return "int32"
	case TypeInt64:
		return "int64"
	case TypeFloat32:
		return "float32"
	case TypeFloat64:
		return "float64"
	case TypeString:
		return "string"
	case TypeImage:
		return "image"
	default:
		return "unknown"
	}
}

// ZeroValue returns the fill value used for an empty time series of this type.
func (t ScalarType) ZeroValue() interface{} {
	switch t {
	case TypeBool:
		return false
	case TypeInt32:
		return int32(0)
	case TypeInt64:
		return int64(0)
	case TypeFloat32:
		return float32(0)
	case TypeFloat64:
		return float64(0)
	case TypeString:
		return ""
	case TypeImage:
		return []byte(nil)
	default:
		return nil
	}
}

// CheckValue reports whether v is a legal sample for this type. A nil sample
// is always legal and stands for a missing cell.
func (t ScalarType) CheckValue(v interface{}) error {
	if v == nil {
		return nil
	}

	ok := false
	switch t {
	case TypeBool:
		_, ok = v.(bool)
	case TypeInt32:
		_, ok = v.(int32)
	case TypeInt64:
		_, ok = v.(int64)
	case TypeFloat32:
		_, ok = v.(float32)
	case TypeFloat64:
		_, ok = v.(float64)
	case TypeString:
		_, ok = v.(string)
	case TypeImage:
		_, ok = v.([]byte)
	}
	if !ok {
		return fmt.Errorf("value %T is not assignable to scalar type %s", v, t)
	}
	return nil
}
