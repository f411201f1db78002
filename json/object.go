package json

// Object JSON 对象: 键唯一，重复键后写覆盖
//
// 两种实现由 Options.Ordered 在解析开始时选定，并用于所有嵌套对象:
//   - NewOrderedObject: 按键首次插入顺序迭代
//   - NewHashObject: 迭代顺序不确定
type Object interface {
	// Get 查找键
	Get(key string) (*Value, bool)
	// Set 插入或覆盖键。覆盖不改变有序实现中键的位置。
	Set(key string, v *Value)
	// Len 键数量
	Len() int
	// Keys 按迭代顺序返回全部键
	Keys() []string
	// Range 遍历键值对，fn 返回 false 停止
	Range(fn func(key string, v *Value) bool)
	// Ordered 迭代顺序是否为插入顺序
	Ordered() bool
}

// NewObject 按 ordered 选择实现
func NewObject(ordered bool) Object {
	if ordered {
		return NewOrderedObject()
	}
	return NewHashObject()
}

// ─── 有序实现 ───

// orderedObject 有序键值对 + 键索引
//
// kvs 保存插入顺序，index 把重复键的覆盖和查找降到 O(1)。
type orderedObject struct {
	kvs   []kv
	index map[string]int
}

type kv struct {
	k string
	v *Value
}

// NewOrderedObject 创建保持插入顺序的对象
func NewOrderedObject() Object {
	return &orderedObject{index: make(map[string]int)}
}

func (o *orderedObject) Get(key string) (*Value, bool) {
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.kvs[i].v, true
}

func (o *orderedObject) Set(key string, v *Value) {
	if i, ok := o.index[key]; ok {
		o.kvs[i].v = v
		return
	}
	o.index[key] = len(o.kvs)
	o.kvs = append(o.kvs, kv{k: key, v: v})
}

func (o *orderedObject) Len() int { return len(o.kvs) }

func (o *orderedObject) Keys() []string {
	keys := make([]string, len(o.kvs))
	for i := range o.kvs {
		keys[i] = o.kvs[i].k
	}
	return keys
}

func (o *orderedObject) Range(fn func(key string, v *Value) bool) {
	for i := range o.kvs {
		if !fn(o.kvs[i].k, o.kvs[i].v) {
			return
		}
	}
}

func (o *orderedObject) Ordered() bool { return true }

// ─── 哈希实现 ───

type hashObject map[string]*Value

// NewHashObject 创建迭代顺序不确定的对象
func NewHashObject() Object {
	return hashObject{}
}

func (o hashObject) Get(key string) (*Value, bool) {
	v, ok := o[key]
	return v, ok
}

func (o hashObject) Set(key string, v *Value) { o[key] = v }

func (o hashObject) Len() int { return len(o) }

func (o hashObject) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	return keys
}

func (o hashObject) Range(fn func(key string, v *Value) bool) {
	for k, v := range o {
		if !fn(k, v) {
			return
		}
	}
}

func (o hashObject) Ordered() bool { return false }
