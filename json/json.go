// Package json 将完整的 JSON 文本解析为内存中的值树
//
// 设计原则:
//   - 单遍递归下降: 一个 cursor 单调前进，不回退
//   - 游标独占: 每次 Parse 创建自己的 cursor，Parser 只保存只读配置，可并发复用
//   - 无部分结果: 第一个错误立即中止整个解析，错误携带行号、片段和 caret
//   - 嵌套深度上限: 防止恶意输入耗尽调用栈
//
// 用法:
//
//	v, err := json.Parse(`{"name":"yak","version":1}`)
//	name := v.GetString("name")  // "yak"
//	ver  := v.GetInt64("version") // 1
//
//	// 保持键顺序
//	p := json.Parser{Options: json.Options{Ordered: true}}
//	v, err = p.Parse(`{"b":1,"a":2}`)
//	keys := v.Object().Keys() // ["b", "a"]
package json

// MaxDepth 默认的容器嵌套最大深度（防栈溢出攻击）
const MaxDepth = 512

// Options 解析配置，零值可用
type Options struct {
	// Ordered 为 true 时所有对象保持键的首次插入顺序，否则顺序不确定。
	Ordered bool

	// MaxDepth 容器嵌套最大深度。<= 0 时使用包级 MaxDepth。
	MaxDepth int

	// DisallowEmpty 为 true 时空输入（或仅含空白）返回 ErrEmptyInput，
	// 否则返回 nil 值且无错误。
	DisallowEmpty bool

	// Strict 严格 JSON 语法:
	//   - 空白仅限空格、\t、\n、\r
	//   - 键与 ':' 之间仅允许空白
	//   - 数字不接受前导 '+'、f/F 指数标记和空小数部分
	Strict bool
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return MaxDepth
	}
	return o.MaxDepth
}
