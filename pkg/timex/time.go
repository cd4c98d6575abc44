// Package timex wraps time.Time with the JSON layout used by the API
// Package timex 封装 time.Time，统一 API 中的 JSON 时间格式
package timex

import (
	"strings"
	"time"
)

// Layout RFC 3339 with fixed millisecond precision
// Layout 固定毫秒精度的 RFC 3339 格式
const Layout = "2006-01-02T15:04:05.000Z07:00"

type Time time.Time

// Now 当前时间（截断到毫秒）
func Now() Time {
	return Time(time.Now().Truncate(time.Millisecond))
}

func (t Time) Time() time.Time {
	return time.Time(t)
}

func (t Time) Unix() int64 {
	return time.Time(t).Unix()
}

func (t Time) UnixMilli() int64 {
	return time.Time(t).UnixMilli()
}

func (t Time) UnixMicro() int64 {
	return time.Time(t).UnixMicro()
}

func (t Time) UnixNano() int64 {
	return time.Time(t).UnixNano()
}

func (t Time) String() string {
	return time.Time(t).Format(Layout)
}

func (t Time) MarshalJSON() ([]byte, error) {
	if time.Time(t).IsZero() {
		return []byte("null"), nil
	}
	b := make([]byte, 0, len(Layout)+2)
	b = append(b, '"')
	b = time.Time(t).AppendFormat(b, Layout)
	b = append(b, '"')
	return b, nil
}

func (t *Time) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*t = Time{}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return err
	}
	*t = Time(parsed)
	return nil
}
