package pegparser

import (
	"encoding/json"
	"reflect"
	"strings"
)

type IterateActionType = int8

const (
	IterateActionContinue IterateActionType = iota
	IterateActionBreak
)

// CommentKeySuffix marks the key holding the /* comment */ that follows
// another key or its value, e.g. "productRef_comment".
const CommentKeySuffix = "_comment"

type ObjectItem = SliceItem

// Object is an ordered dictionary of a parsed pbxproj document. Values are
// string, int, []interface{} or Object.
type Object struct {
	*SliceMap
}

type ObjectWithUUID struct {
	Object
	UUID string
}

func NewObjectItem(key string, value interface{}) ObjectItem {
	return SliceItem{key, value}
}

func NewObject() Object {
	return Object{
		SliceMap: NewSliceMap(),
	}
}

func NewObjectWithData(items []ObjectItem) Object {
	o := NewObject()
	for _, item := range items {
		o.Set(item.key, item.data)
	}

	return o
}

func ToCommentKey(key string) string {
	return key + CommentKeySuffix
}

func IsCommentKey(key string) bool {
	return strings.HasSuffix(key, CommentKeySuffix)
}

func (o Object) toMarshalJSONData() map[string]interface{} {
	dataMap := make(map[string]interface{})
	o.Foreach(func(key string, val interface{}) IterateActionType {
		obj, ok := val.(Object)
		if ok {
			dataMap[key] = obj.toMarshalJSONData()
		} else {
			dataMap[key] = val
		}
		return IterateActionContinue
	})
	return dataMap
}

func (o Object) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.toMarshalJSONData())
}

func (o Object) IsEmpty() bool {
	if o.SliceMap == nil || o.sl == nil {
		return true
	}
	return o.Size() == 0
}

func (o Object) GetObject(key string) Object {
	if o.SliceMap == nil {
		return NewObject()
	}
	if value, ok := o.Get(key); ok {
		if obj, ok := value.(Object); ok {
			return obj
		}
	}
	return NewObject()
}

func (o Object) GetString(key string) string {
	if o.SliceMap == nil {
		return ""
	}
	if value, ok := o.Get(key); ok {
		switch v := value.(type) {
		case string:
			return v
		default:
			return ""
		}
	}
	return ""
}

func (o Object) GetInt(key string) int {
	if o.SliceMap == nil {
		return 0
	}
	if value, ok := o.Get(key); ok {
		switch value.(type) {
		case int, int8, int16, int32, int64:
			return int(reflect.ValueOf(value).Int())
		}
	}
	return 0
}

// GetArray returns the list stored under key and whether it was present.
func (o Object) GetArray(key string) ([]interface{}, bool) {
	if o.SliceMap == nil {
		return nil, false
	}
	value, ok := o.Get(key)
	if !ok {
		return nil, false
	}
	arr, ok := value.([]interface{})
	return arr, ok
}

// GetComment returns the comment recorded for key, if any.
func (o Object) GetComment(key string) string {
	return o.GetString(ToCommentKey(key))
}

// SetWithComment stores value under key and, when comment is not empty,
// the comment under the matching comment key.
func (o Object) SetWithComment(key string, value interface{}, comment string) {
	o.Set(key, value)
	if comment != "" {
		o.Set(ToCommentKey(key), comment)
	}
}

// Clone returns a deep copy. Strings and ints are shared, lists and
// objects are copied.
func (o Object) Clone() Object {
	c := NewObject()
	if o.IsEmpty() {
		return c
	}
	for _, item := range o.Items() {
		c.Set(item.key, cloneValue(item.data))
	}
	return c
}

func cloneValue(v interface{}) interface{} {
	switch v := v.(type) {
	case Object:
		return v.Clone()
	case []interface{}:
		arr := make([]interface{}, len(v))
		for i, item := range v {
			arr[i] = cloneValue(item)
		}
		return arr
	default:
		return v
	}
}

type ApplyFunc = func(key string, val interface{}) IterateActionType
type FilterFunc = func(key string, val interface{}) bool

func (o Object) Foreach(apply ApplyFunc) {
	if o.IsEmpty() {
		return
	}
	for _, item := range o.Items() {
		if item.data == nil {
			continue
		}
		action := apply(item.key.(string), item.data)
		if action == IterateActionBreak {
			break
		}
	}
}

func (o Object) ForeachWithFilter(apply ApplyFunc, filter FilterFunc) {
	if o.IsEmpty() {
		return
	}
	for _, item := range o.Items() {
		key := item.key.(string)
		val := item.data
		if val == nil {
			continue
		}
		if filter(key, val) {
			action := apply(key, val)
			if action == IterateActionBreak {
				break
			}
		}
	}
}

func (o Object) Filter(f func(key string, val interface{}) bool) Object {
	newObj := NewObject()
	if o.IsEmpty() {
		return newObj
	}
	for _, item := range o.Items() {
		key := item.key.(string)
		val := item.data
		if f(key, val) {
			newObj.Set(key, val)
		}
	}
	return newObj
}
