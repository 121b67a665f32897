package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// IsNull reports whether a scanned cell carries no value. Callers decide
// how a NULL is spelled: the tabular renderer prints <NULL>, the insert
// renderer the unquoted literal NULL. NULL cells never reach Format.
func IsNull(cell any) bool {
	return cell == nil
}

// Format converts a non-NULL cell to its canonical text. Numeric values
// are rendered with strconv so the output is locale-invariant: decimal
// point, no grouping separators. Everything else falls back to its natural
// representation.
//
// Two display truncations may then apply, in order. If noNewlines is set
// and the text contains a CR-LF pair, everything from the first pair on is
// dropped. Independent of the flag, text is cut at the first embedded NUL,
// which fixed-width driver types use as padding. Both truncations are
// silently lossy; re-formatting an already truncated string is a no-op.
func Format(cell any, noNewlines bool) string {
	var s string
	switch v := cell.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	case bool:
		s = strconv.FormatBool(v)
	case int:
		s = strconv.FormatInt(int64(v), 10)
	case int8:
		s = strconv.FormatInt(int64(v), 10)
	case int16:
		s = strconv.FormatInt(int64(v), 10)
	case int32:
		s = strconv.FormatInt(int64(v), 10)
	case int64:
		s = strconv.FormatInt(v, 10)
	case uint:
		s = strconv.FormatUint(uint64(v), 10)
	case uint8:
		s = strconv.FormatUint(uint64(v), 10)
	case uint16:
		s = strconv.FormatUint(uint64(v), 10)
	case uint32:
		s = strconv.FormatUint(uint64(v), 10)
	case uint64:
		s = strconv.FormatUint(v, 10)
	case float32:
		s = strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		s = v.Format(time.RFC3339)
	default:
		s = fmt.Sprint(v)
	}

	if noNewlines {
		if i := strings.Index(s, "\r\n"); i >= 0 {
			s = s[:i]
		}
	}
	if i := strings.IndexByte(s, 0); i >= 0 {
		s = s[:i]
	}
	return s
}
