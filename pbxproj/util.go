package pbxproj

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/soapywu/pbxpkg/pegparser"
)

func isObject(obj interface{}) bool {
	_, ok := obj.(pegparser.Object)
	return ok
}

func toObject(obj interface{}) pegparser.Object {
	return obj.(pegparser.Object)
}

func isArray(obj interface{}) bool {
	_, ok := obj.([]interface{})
	return ok
}

func toArray(obj interface{}) []interface{} {
	return obj.([]interface{})
}

func isString(obj interface{}) bool {
	_, ok := obj.(string)
	return ok
}

func toString(obj interface{}) string {
	return obj.(string)
}

func isInt(obj interface{}) bool {
	switch obj.(type) {
	case int, int8, int16, int32, int64:
		return true
	}
	return false
}

func toIntString(obj interface{}) string {
	switch obj.(type) {
	case int, int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(obj).Int(), 10)
	}

	return ""
}

func toCommentKey(key string) string {
	return pegparser.ToCommentKey(key)
}

func isCommentKey(key string) bool {
	return pegparser.IsCommentKey(key)
}

func nonCommentsFilter(key string, v interface{}) bool {
	return !onlyCommentsFilter(key, v)
}

func onlyCommentsFilter(key string, _ interface{}) bool {
	return isCommentKey(key)
}

// unquoted strips the surrounding quotes the parser keeps on quoted strings.
func unquoted(text string) string {
	if len(text) >= 2 && strings.HasPrefix(text, `"`) && strings.HasSuffix(text, `"`) {
		return text[1 : len(text)-1]
	}
	return text
}

// addToObjectList appends val to the list stored under key, creating the
// list when it is missing.
func addToObjectList(obj pegparser.Object, key string, val interface{}) {
	if obj.SliceMap == nil {
		return
	}
	list, ok := obj.GetArray(key)
	if !ok {
		list = []interface{}{}
	}
	obj.Set(key, append(list, val))
}

// replaceInValue rewrites every string inside v, recursing into lists and
// objects. Comment keys are values too and get rewritten as well.
func replaceInValue(v interface{}, old, new string) interface{} {
	switch v := v.(type) {
	case string:
		return strings.ReplaceAll(v, old, new)
	case pegparser.Object:
		v.Foreach(func(key string, val interface{}) pegparser.IterateActionType {
			v.Set(key, replaceInValue(val, old, new))
			return pegparser.IterateActionContinue
		})
		return v
	case []interface{}:
		for i, item := range v {
			v[i] = replaceInValue(item, old, new)
		}
		return v
	default:
		return v
	}
}
