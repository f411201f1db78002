package json

import (
	"math"
	"math/big"
	"strconv"
)

// Type JSON 值类型
type Type uint8

const (
	TypeNull   Type = iota // null 或缺失值
	TypeBool               // true / false
	TypeInt                // 整数字面量（无小数点、无指数）
	TypeFloat              // 浮点字面量
	TypeString             // 字符串
	TypeArray              // 数组
	TypeObject             // 对象
)

// String 返回类型名称
func (t Type) String() string {
	switch t {
	case TypeNull:
		return "null"
	case TypeBool:
		return "bool"
	case TypeInt:
		return "int"
	case TypeFloat:
		return "float"
	case TypeString:
		return "string"
	case TypeArray:
		return "array"
	case TypeObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value JSON 值（标签联合）
//
// nil *Value 表示缺失值，所有方法对 nil 安全并视为 TypeNull。
// 子节点由父节点独占，树中不存在共享或环。
//   - o: 对象
//   - a: 数组元素
//   - s: 已解转义的字符串
//   - n: 数字的原始字面量
//   - i/f/bi: 解码后的数字，bi 仅在整数超出 int64 时使用
//   - t: 值类型
//   - b: 布尔值
type Value struct {
	o  Object
	a  []*Value
	s  string
	n  string
	bi *big.Int
	i  int64
	f  float64
	t  Type
	b  bool
}

// ─── 全局单例: true/false/null ───

var (
	valueTrue  = &Value{t: TypeBool, b: true}
	valueFalse = &Value{t: TypeBool, b: false}
	valueNull  = &Value{t: TypeNull}
)

// ─── 构造 ───

// NullValue 返回 null
func NullValue() *Value { return valueNull }

// BoolValue 返回布尔值
func BoolValue(b bool) *Value {
	if b {
		return valueTrue
	}
	return valueFalse
}

// IntValue 构造整数值
func IntValue(n int64) *Value {
	return &Value{t: TypeInt, i: n, n: strconv.FormatInt(n, 10)}
}

// FloatValue 构造浮点值
func FloatValue(f float64) *Value {
	return &Value{t: TypeFloat, f: f, n: strconv.FormatFloat(f, 'g', -1, 64)}
}

// StringValue 构造字符串值
func StringValue(s string) *Value {
	return &Value{t: TypeString, s: s}
}

// ArrayValue 构造数组值
func ArrayValue(elems ...*Value) *Value {
	return &Value{t: TypeArray, a: elems}
}

// ObjectValue 构造对象值，o 为 nil 时创建空的有序对象
func ObjectValue(o Object) *Value {
	if o == nil {
		o = NewOrderedObject()
	}
	return &Value{t: TypeObject, o: o}
}

// ─── 类型判断 ───

// Type 返回值类型
func (v *Value) Type() Type {
	if v == nil {
		return TypeNull
	}
	return v.t
}

// IsNull 是否为 null（含缺失值）
func (v *Value) IsNull() bool { return v == nil || v.t == TypeNull }

// IsNumber 是否为整数或浮点数
func (v *Value) IsNumber() bool { return v != nil && (v.t == TypeInt || v.t == TypeFloat) }

// ─── 值获取（类型不匹配返回零值） ───

// Bool 布尔值
func (v *Value) Bool() bool { return v != nil && v.t == TypeBool && v.b }

// Int64 整数值。ok 为 false 表示不是整数或超出 int64。
func (v *Value) Int64() (n int64, ok bool) {
	if v == nil || v.t != TypeInt || v.bi != nil {
		return 0, false
	}
	return v.i, true
}

// BigInt 整数值的精确表示（任意大小）
func (v *Value) BigInt() *big.Int {
	if v == nil || v.t != TypeInt {
		return nil
	}
	if v.bi != nil {
		return new(big.Int).Set(v.bi)
	}
	return big.NewInt(v.i)
}

// Float64 数值（整数会转换为浮点）
func (v *Value) Float64() float64 {
	if v == nil {
		return 0
	}
	switch v.t {
	case TypeFloat:
		return v.f
	case TypeInt:
		if v.bi != nil {
			f, _ := new(big.Float).SetInt(v.bi).Float64()
			return f
		}
		return float64(v.i)
	}
	return 0
}

// Str 字符串值
func (v *Value) Str() string {
	if v == nil || v.t != TypeString {
		return ""
	}
	return v.s
}

// Raw 数字的原始字面量
func (v *Value) Raw() string {
	if v == nil || (v.t != TypeInt && v.t != TypeFloat) {
		return ""
	}
	return v.n
}

// Array 数组元素（不拷贝）
func (v *Value) Array() []*Value {
	if v == nil || v.t != TypeArray {
		return nil
	}
	return v.a
}

// Object 对象
func (v *Value) Object() Object {
	if v == nil || v.t != TypeObject {
		return nil
	}
	return v.o
}

// Len 返回数组或对象的元素数量
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	switch v.t {
	case TypeArray:
		return len(v.a)
	case TypeObject:
		return v.o.Len()
	default:
		return 0
	}
}

// Get 按路径获取嵌套值
//
//	v.Get("user", "name")  // {"user":{"name":"..."}} 中的 name
//	v.Get("items", "0")    // 数组第 0 个元素
func (v *Value) Get(keys ...string) *Value {
	for _, key := range keys {
		if v == nil {
			return nil
		}
		switch v.t {
		case TypeObject:
			v, _ = v.o.Get(key)
		case TypeArray:
			idx, ok := parseIdx(key)
			if !ok || idx >= len(v.a) {
				return nil
			}
			v = v.a[idx]
		default:
			return nil
		}
	}
	return v
}

// GetString 按路径获取字符串值
func (v *Value) GetString(keys ...string) string { return v.Get(keys...).Str() }

// GetInt64 按路径获取整数值
func (v *Value) GetInt64(keys ...string) int64 {
	n, _ := v.Get(keys...).Int64()
	return n
}

// GetFloat64 按路径获取数值
func (v *Value) GetFloat64(keys ...string) float64 { return v.Get(keys...).Float64() }

// GetBool 按路径获取布尔值
func (v *Value) GetBool(keys ...string) bool { return v.Get(keys...).Bool() }

// ArrayEach 遍历数组元素，返回 false 停止遍历
func (v *Value) ArrayEach(fn func(i int, val *Value) bool) {
	for i, elem := range v.Array() {
		if !fn(i, elem) {
			return
		}
	}
}

// ObjectEach 遍历对象键值对，返回 false 停止遍历
func (v *Value) ObjectEach(fn func(key string, val *Value) bool) {
	if o := v.Object(); o != nil {
		o.Range(fn)
	}
}

// Interface 转换为 Go 原生值
//
//	null   → nil
//	bool   → bool
//	int    → int64，超出范围时 *big.Int
//	float  → float64
//	string → string
//	array  → []any
//	object → map[string]any
func (v *Value) Interface() any {
	if v == nil {
		return nil
	}
	switch v.t {
	case TypeBool:
		return v.b
	case TypeInt:
		if v.bi != nil {
			return new(big.Int).Set(v.bi)
		}
		return v.i
	case TypeFloat:
		return v.f
	case TypeString:
		return v.s
	case TypeArray:
		out := make([]any, len(v.a))
		for i, e := range v.a {
			out[i] = e.Interface()
		}
		return out
	case TypeObject:
		out := make(map[string]any, v.o.Len())
		v.o.Range(func(k string, e *Value) bool {
			out[k] = e.Interface()
			return true
		})
		return out
	}
	return nil
}

// Equal 结构相等（忽略对象键顺序和数字字面量写法）
func (v *Value) Equal(w *Value) bool {
	if v.Type() != w.Type() {
		return false
	}
	switch v.Type() {
	case TypeNull:
		return true
	case TypeBool:
		return v.b == w.b
	case TypeInt:
		if v.bi == nil && w.bi == nil {
			return v.i == w.i
		}
		return v.BigInt().Cmp(w.BigInt()) == 0
	case TypeFloat:
		return v.f == w.f || (math.IsNaN(v.f) && math.IsNaN(w.f))
	case TypeString:
		return v.s == w.s
	case TypeArray:
		if len(v.a) != len(w.a) {
			return false
		}
		for i := range v.a {
			if !v.a[i].Equal(w.a[i]) {
				return false
			}
		}
		return true
	case TypeObject:
		if v.o.Len() != w.o.Len() {
			return false
		}
		eq := true
		v.o.Range(func(k string, e *Value) bool {
			f, ok := w.o.Get(k)
			eq = ok && e.Equal(f)
			return eq
		})
		return eq
	}
	return false
}

// ─── 辅助函数 ───

func parseIdx(s string) (int, bool) {
	if len(s) == 0 || len(s) > 10 {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
		if n < 0 {
			return 0, false // 溢出保护（32 位平台）
		}
	}
	return n, true
}
