package service

import (
	"bytes"

	"github.com/tidwall/gjson"
)

// isEmptyResult treats null, false, 0, "" and empty arrays or objects as "no results".
func isEmptyResult(body []byte) bool {
	result := gjson.ParseBytes(body)

	switch result.Type {
	case gjson.Null, gjson.False:
		return true
	case gjson.Number:
		return result.Num == 0
	case gjson.String:
		return result.Str == ""
	case gjson.JSON:
		empty := true
		result.ForEach(func(_, _ gjson.Result) bool {
			empty = false
			return false
		})
		return empty
	}

	return false
}

// renameLonToLng rewrites each object of a JSON array so that its lon key
// becomes lng, keeping key order and every other raw value untouched.
// Anything that is not an array is returned as is.
func renameLonToLng(body []byte) []byte {
	result := gjson.ParseBytes(body)
	if !result.IsArray() {
		return body
	}

	var buf bytes.Buffer
	buf.WriteByte('[')

	first := true
	result.ForEach(func(_, item gjson.Result) bool {
		if !first {
			buf.WriteByte(',')
		}
		first = false

		writeItem(&buf, item)
		return true
	})

	buf.WriteByte(']')
	return buf.Bytes()
}

func writeItem(buf *bytes.Buffer, item gjson.Result) {
	if !item.IsObject() || !hasKey(item, "lon") {
		buf.WriteString(item.Raw)
		return
	}

	buf.WriteByte('{')

	first := true
	item.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		// lon overwrites any lng already present
		if name == "lng" {
			return true
		}

		if !first {
			buf.WriteByte(',')
		}
		first = false

		if name == "lon" {
			buf.WriteString(`"lng"`)
		} else {
			buf.WriteString(key.Raw)
		}
		buf.WriteByte(':')
		buf.WriteString(value.Raw)
		return true
	})

	buf.WriteByte('}')
}

func hasKey(object gjson.Result, name string) bool {
	found := false
	object.ForEach(func(key, _ gjson.Result) bool {
		if key.String() == name {
			found = true
			return false
		}
		return true
	})
	return found
}
