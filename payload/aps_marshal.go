package payload

import (
	"encoding/json"
	"errors"
	"strconv"
	"sync"

	"github.com/takimoto3/appdelegate/notification"
)

// ErrInvalidType is returned when a value cannot be encoded by EncodeValue.
var ErrInvalidType = errors.New("invalid type for payload value")

var apsBufSize = 256

var apsPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, apsBufSize)
		return &b
	},
}

// MarshalJSON implements json.Marshaler using the canonical `aps` layout.
func (aps APS) MarshalJSON() ([]byte, error) {
	return aps.MarshalJSONFast()
}

// MarshalJSONFast renders the parsed dictionary back to its canonical JSON
// form. Presence flags are written as the integer 1.
func (aps APS) MarshalJSONFast() ([]byte, error) {
	ptr := apsPool.Get().(*[]byte)
	b := (*ptr)[:0]
	defer func() {
		*ptr = b
		apsPool.Put(ptr)
	}()

	b = append(b, '{')
	first := true
	addComma := func() {
		if !first {
			b = append(b, ',')
		} else {
			first = false
		}
	}

	if aps.Alert != nil {
		addComma()
		b = append(b, `"alert":`...)
		tmp, err := aps.Alert.MarshalJSONFast()
		if err != nil {
			return nil, err
		}
		b = append(b, tmp...)
	}

	if aps.Badge != nil {
		addComma()
		b = append(b, `"badge":`...)
		b = strconv.AppendInt(b, int64(*aps.Badge), 10)
	}

	if aps.Sound != nil {
		addComma()
		b = append(b, `"sound":`...)
		tmp, err := aps.Sound.MarshalJSONFast()
		if err != nil {
			return nil, err
		}
		b = append(b, tmp...)
	}

	if aps.ContentAvailable {
		addComma()
		b = append(b, `"content-available":1`...)
	}

	if aps.MutableContent {
		addComma()
		b = append(b, `"mutable-content":1`...)
	}

	if aps.Category != nil {
		addComma()
		b = append(b, `"category":`...)
		b = appendQuote(b, *aps.Category)
	}

	if aps.ThreadID != "" {
		addComma()
		b = append(b, `"thread-id":`...)
		b = appendQuote(b, aps.ThreadID)
	}

	b = append(b, '}')
	return append([]byte(nil), b...), nil
}

// appendQuote writes val as a JSON string, escaping quotes, backslashes and
// control characters.
func appendQuote(b []byte, val string) []byte {
	b = append(b, '"')
	for i := 0; i < len(val); i++ {
		c := val[i]
		switch {
		case c == '"' || c == '\\':
			b = append(b, '\\', c)
		case c <= 0x1F:
			b = append(b, '\\', 'u', '0', '0')
			b = append(b, hex[c>>4], hex[c&0xF])
		default:
			b = append(b, c)
		}
	}
	return append(b, '"')
}

// EncodeValue is a helper function that recursively encodes a value into a JSON byte slice.
// It supports basic types (string, int, float, bool), as well as nested maps and slices,
// which covers the user info of notifications and launch options.
func EncodeValue(b []byte, v any) ([]byte, error) {
	switch val := v.(type) {
	case string:
		b = strconv.AppendQuote(b, val)
	case int:
		b = strconv.AppendInt(b, int64(val), 10)
	case int32:
		b = strconv.AppendInt(b, int64(val), 10)
	case int64:
		b = strconv.AppendInt(b, val, 10)
	case uint64:
		b = strconv.AppendUint(b, val, 10)
	case float64:
		b = strconv.AppendFloat(b, val, 'f', -1, 64)
	case bool:
		b = strconv.AppendBool(b, val)
	case nil:
		b = append(b, "null"...)
	case []byte:
		b = strconv.AppendQuote(b, string(val))
	case notification.EpochTime:
		b = strconv.AppendInt(b, int64(val), 10)
	case *notification.EpochTime:
		b = strconv.AppendInt(b, int64(*val), 10)
	case []string:
		b = append(b, '[')
		for i, v2 := range val {
			if i > 0 {
				b = append(b, ',')
			}
			b = strconv.AppendQuote(b, v2)
		}
		b = append(b, ']')
	case []int:
		b = append(b, '[')
		for i, v2 := range val {
			if i > 0 {
				b = append(b, ',')
			}
			b = strconv.AppendInt(b, int64(v2), 10)
		}
		b = append(b, ']')
	case json.Marshaler:
		marshaled, err := val.MarshalJSON()
		if err != nil {
			return nil, err
		}
		b = append(b, marshaled...)
	case map[string]any:
		b = append(b, '{')
		first := true
		for k2, v2 := range val {
			if !first {
				b = append(b, ',')
			} else {
				first = false
			}
			b = strconv.AppendQuote(b, k2)
			b = append(b, ':')
			var err error
			b, err = EncodeValue(b, v2)
			if err != nil {
				return nil, err
			}
		}
		b = append(b, '}')
	case map[any]any:
		m, ok := asMap(val)
		if !ok {
			return nil, ErrInvalidType
		}
		return EncodeValue(b, m)
	case []any:
		b = append(b, '[')
		for i, v2 := range val {
			if i > 0 {
				b = append(b, ',')
			}
			var err error
			b, err = EncodeValue(b, v2)
			if err != nil {
				return nil, err
			}
		}
		b = append(b, ']')
	default:
		return nil, ErrInvalidType
	}
	return b, nil
}
