package delta

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// maxExactFloat is the largest magnitude below which every integer is
// exactly representable as a float64.
const maxExactFloat = 1 << 53

// normalizeValue converts a decoded value into the JSON value model: nil,
// bool, int64, uint64, float64, string, []any and map[string]any.
//
// Integers stay exact. Signed and unsigned integers that fit in int64 become
// int64, larger ones uint64. A float64 holding an integer below 2^53 becomes
// int64 too, so JSON 1, YAML 1 and 1.0 compare equal. Containers are copied,
// so the result never aliases v.
func normalizeValue(v any) any {
	switch t := v.(type) {
	case nil, bool, string, int64:
		return t
	case float64:
		return normalizeFloat(t)
	case float32:
		return normalizeFloat(float64(t))
	case json.Number:
		return normalizeNumber(t)
	case int:
		return int64(t)
	case int8:
		return int64(t)
	case int16:
		return int64(t)
	case int32:
		return int64(t)
	case uint:
		return normalizeUint(uint64(t))
	case uint8:
		return int64(t)
	case uint16:
		return int64(t)
	case uint32:
		return int64(t)
	case uint64:
		return normalizeUint(t)
	case []byte:
		return string(t)
	case time.Time:
		return t.Format(time.RFC3339Nano)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = normalizeValue(e)
		}

		return out
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = normalizeValue(e)
		}

		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = normalizeValue(e)
		}

		return out
	default:
		return t
	}
}

func normalizeFloat(f float64) any {
	if f == math.Trunc(f) && math.Abs(f) < maxExactFloat {
		return int64(f)
	}

	return f
}

func normalizeUint(u uint64) any {
	if u <= math.MaxInt64 {
		return int64(u)
	}

	return u
}

// normalizeNumber parses a JSON number literal without going through float64
// when it is an integer.
func normalizeNumber(n json.Number) any {
	if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
		return i
	}

	if u, err := strconv.ParseUint(n.String(), 10, 64); err == nil {
		return u
	}

	f, err := n.Float64()
	if err != nil {
		return n.String()
	}

	return normalizeFloat(f)
}

// ValuesEqual reports structural equality of two values after normalization.
// Empty and nil containers compare equal.
func ValuesEqual(a, b any) bool {
	return cmp.Equal(normalizeValue(a), normalizeValue(b), cmpopts.EquateEmpty())
}
