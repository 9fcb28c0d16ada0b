package utils

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

func StrPositive(value string) bool {
	value = strings.ToLower(value)
	return value == "1" || value == "on" || value == "true"
}
func StrNegative(value string) bool {
	value = strings.ToLower(value)

	return value == "" || value == "0" || value == "off" || value == "false"
}

// 分享链接里的 allowInsecure / insecure 之类的参数都用这个判断
func QueryPositive(query url.Values, key string) bool {
	nStr := query.Get(key)
	return StrPositive(nStr)
}

func AnyToBool(a any) (v bool, ok bool) {
	ok = true
	switch value := a.(type) {
	case bool:
		v = value
	case int:
		v = value != 0
	case int64:
		v = value != 0
	case string:
		if b, e := strconv.ParseBool(value); e == nil {
			v = b
		} else {
			if StrNegative(value) {
				v = false
			} else if StrPositive(value) {
				v = true
			} else {
				ok = false
			}
		}

	default:
		var i64 int64
		i64, ok = AnyToInt64(a)
		if ok {
			v, ok = AnyToBool(i64)
			return
		}
		ok = false
	}

	return
}

// yaml 解出来的数字可能是 int 也可能是 string, 比如 port: "443"
func AnyToInt64(a any) (int64, bool) {
	switch value := a.(type) {
	case int64:
		return value, true
	case int:
		return int64(value), true
	case uint:
		return int64(value), true
	case int32:
		return int64(value), true
	case uint64:
		return int64(value), true
	case uint32:
		return int64(value), true
	case uint16:
		return int64(value), true
	case float64:
		return int64(value), true
	case string:
		v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err == nil {
			return v, true
		}
	}
	return 0, false
}

func AnyToString(a any) string {
	switch value := a.(type) {
	case nil:
		return ""
	case string:
		return value
	case []byte:
		return string(value)
	case fmt.Stringer:
		return value.String()
	default:
		return fmt.Sprint(value)
	}
}
