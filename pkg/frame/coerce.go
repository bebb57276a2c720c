package frame

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gnames/gnlib"
	"github.com/gnames/symbdb/pkg/schema"
)

var errNull = errors.New("NULL value in a non-nullable field")

// coerce converts a raw value coming from a database driver to nil, int64,
// float64 or string according to the field descriptor.
func coerce(f schema.Field, v any) (any, error) {
	if b, ok := v.([]byte); ok {
		if b == nil {
			v = nil
		} else {
			v = string(b)
		}
	}
	if v == nil {
		if !f.Nullable {
			return nil, errNull
		}
		return nil, nil
	}

	switch f.Kind {
	case schema.Int:
		return toInt(f, v)
	case schema.Float:
		return toFloat(f, v)
	case schema.String:
		return toString(v)
	default:
		return nil, fmt.Errorf("unknown kind %s", f.Kind)
	}
}

func toInt(f schema.Field, v any) (any, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case int16:
		return int64(n), nil
	case int8:
		return int64(n), nil
	case uint32:
		return int64(n), nil
	case uint16:
		return int64(n), nil
	case uint8:
		return int64(n), nil
	case uint64:
		if n > math.MaxInt64 {
			return nil, fmt.Errorf("%d overflows int64", n)
		}
		return int64(n), nil
	case float64:
		if math.IsInf(n, 0) || n != math.Trunc(n) {
			return nil, fmt.Errorf("%v is not an integer", n)
		}
		// float64(math.MaxInt64) rounds up to 2^63
		if n >= math.MaxInt64 || n < math.MinInt64 {
			return nil, fmt.Errorf("%v overflows int64", n)
		}
		return int64(n), nil
	case bool:
		if n {
			return int64(1), nil
		}
		return int64(0), nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return emptyValue(f)
		}
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return nil, err
		}
		return i, nil
	default:
		return nil, fmt.Errorf("cannot convert %T to %s", v, f.Kind)
	}
}

func toFloat(f schema.Field, v any) (any, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int32:
		return float64(n), nil
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return emptyValue(f)
		}
		fl, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		return fl, nil
	default:
		return nil, fmt.Errorf("cannot convert %T to %s", v, f.Kind)
	}
}

func toString(v any) (any, error) {
	switch s := v.(type) {
	case string:
		return gnlib.FixUtf8(s), nil
	case time.Time:
		return s.Format(time.DateTime), nil
	case int64:
		return strconv.FormatInt(s, 10), nil
	case int:
		return strconv.Itoa(s), nil
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(s), nil
	case fmt.Stringer:
		return gnlib.FixUtf8(s.String()), nil
	default:
		return nil, fmt.Errorf("cannot convert %T to string", v)
	}
}

// emptyValue treats an empty text in a numeric field as NULL.
// MySQL returns empty strings for some legacy numeric columns.
func emptyValue(f schema.Field) (any, error) {
	if !f.Nullable {
		return nil, errNull
	}
	return nil, nil
}
