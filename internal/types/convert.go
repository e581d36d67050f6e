package types

import (
	"fmt"

	"github.com/goccy/go-json"
	reflect "github.com/goccy/go-reflect"
)

// ToInt normalizes loosely typed numeric values (JSON bodies, YAML config)
// into int, rejecting fractional values. json.Number is handled before the
// kind switch because its underlying kind is string.
func ToInt(value any) (int, error) {
	if n, ok := value.(json.Number); ok {
		v, err := n.Int64()
		if err != nil {
			return 0, err
		}
		return int(v), nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if f != float64(int(f)) {
			return 0, fmt.Errorf("not an integer value: %v", f)
		}
		return int(f), nil
	default:
		return 0, fmt.Errorf("not a numeric value: %T", value)
	}
}
