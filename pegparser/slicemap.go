package pegparser

type mapItem struct {
	data interface{}
	idx  int
}

// SliceItem is one key/value pair of a SliceMap, in insertion order.
type SliceItem struct {
	key  interface{}
	data interface{}
}

func (i SliceItem) Key() interface{} {
	return i.key
}

func (i SliceItem) Value() interface{} {
	return i.data
}

// SliceMap is a map that remembers the order its keys were inserted in.
// pbxproj sections are written back in that order.
type SliceMap struct {
	mp map[interface{}]*mapItem
	sl []*SliceItem
}

func NewSliceMap() *SliceMap {
	return &SliceMap{
		mp: make(map[interface{}]*mapItem),
		sl: make([]*SliceItem, 0),
	}
}

func (m *SliceMap) ForceGet(key interface{}) interface{} {
	v, found := m.mp[key]
	if found {
		return v.data
	}
	return nil
}

func (m *SliceMap) Get(key interface{}) (interface{}, bool) {
	v, found := m.mp[key]
	if found {
		return v.data, true
	}
	return nil, false
}

// Set replaces the value of an existing key in place, or appends a new key.
func (m *SliceMap) Set(key, v interface{}) {
	old, found := m.mp[key]
	if found {
		old.data = v
		m.sl[old.idx] = &SliceItem{key: key, data: v}
		return
	}
	m.sl = append(m.sl, &SliceItem{key: key, data: v})
	m.mp[key] = &mapItem{data: v, idx: len(m.sl) - 1}
}

// InsertAfter places key directly behind after. When after is missing the
// key is appended; when key already exists its value is replaced in place.
func (m *SliceMap) InsertAfter(after, key, v interface{}) {
	if _, found := m.mp[key]; found {
		m.Set(key, v)
		return
	}
	prev, found := m.mp[after]
	if !found {
		m.Set(key, v)
		return
	}
	at := prev.idx + 1
	m.sl = append(m.sl, nil)
	copy(m.sl[at+1:], m.sl[at:])
	m.sl[at] = &SliceItem{key: key, data: v}
	m.mp[key] = &mapItem{data: v, idx: at}
	m.reindex(at + 1)
}

func (m *SliceMap) Has(key interface{}) bool {
	_, found := m.mp[key]
	return found
}

func (m *SliceMap) Delete(key interface{}) {
	old, found := m.mp[key]
	if !found {
		return
	}
	m.sl = append(m.sl[:old.idx], m.sl[old.idx+1:]...)
	delete(m.mp, key)
	m.reindex(old.idx)
}

func (m *SliceMap) Clear() {
	m.mp = make(map[interface{}]*mapItem)
	m.sl = make([]*SliceItem, 0)
}

func (m *SliceMap) Size() int {
	return len(m.sl)
}

func (m *SliceMap) Items() []*SliceItem {
	return m.sl
}

func (m *SliceMap) GetAt(idx int) (interface{}, bool) {
	if idx < 0 || idx >= len(m.sl) {
		return nil, false
	}
	return m.sl[idx].data, true
}

func (m *SliceMap) DeleteAt(idx int) {
	if idx < 0 || idx >= len(m.sl) {
		return
	}
	m.Delete(m.sl[idx].key)
}

// reindex fixes the positions recorded in mp for every item from idx on.
func (m *SliceMap) reindex(idx int) {
	for i := idx; i < len(m.sl); i++ {
		m.mp[m.sl[i].key].idx = i
	}
}
