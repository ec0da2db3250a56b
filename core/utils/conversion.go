package utils

import (
	"fmt"
	"strconv"
	"time"
)

// SQLTimeLayout is the text form of date/time column values.
const SQLTimeLayout = "2006-01-02 15:04:05"

// ToString converts a scanned database value to the text form records are compared in.
// NULL becomes "", floats use the shortest exact decimal form and timestamps use
// SQLTimeLayout (with fractional seconds only when present).
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(v)
	case time.Time:
		if v.Nanosecond() != 0 {
			return v.Format(SQLTimeLayout + ".999999999")
		}
		return v.Format(SQLTimeLayout)
	default:
		return fmt.Sprintf("%v", v)
	}
}
