package json

// Parser JSON 解析器
//
// Parser 只保存只读配置，每次 Parse 创建独立的 cursor，
// 因此同一个 Parser 可以被多个 goroutine 并发使用。
//
// 用法:
//
//	p := json.Parser{Options: json.Options{Ordered: true}}
//	v, err := p.Parse(`{"key":"value"}`)
//	fmt.Println(v.GetString("key")) // "value"
type Parser struct {
	Options Options
}

// Parse 使用默认配置解析 JSON 文本
func Parse(s string) (*Value, error) {
	var p Parser
	return p.Parse(s)
}

// ParseBytes 使用默认配置解析 JSON 字节切片
func ParseBytes(b []byte) (*Value, error) {
	var p Parser
	return p.ParseBytes(b)
}

// Parse 解析 JSON 文本，返回根 Value
//
// 空输入（或仅含空白）返回 nil 且无错误，除非设置了 DisallowEmpty。
// 顶层值之后只允许空白。失败时返回 *SyntaxError。
func (p *Parser) Parse(s string) (*Value, error) {
	st := state{
		c:        newCursor(s, p.Options.Strict),
		ordered:  p.Options.Ordered,
		maxDepth: p.Options.maxDepth(),
	}
	c := st.c
	c.skipWS()
	if !c.more() {
		if p.Options.DisallowEmpty {
			return nil, c.fail(ErrEmptyInput, "")
		}
		return nil, nil
	}
	v, err := st.parseValue(0)
	if err != nil {
		return nil, err
	}
	c.skipWS()
	if c.more() {
		return nil, c.fail(ErrUnexpectedCharacter, "trailing data after top-level value")
	}
	return v, nil
}

// ParseBytes 解析 JSON 字节切片（会拷贝一次为 string，结果不引用 b）
func (p *Parser) ParseBytes(b []byte) (*Value, error) {
	return p.Parse(string(b))
}

// state 单次解析的全部可变状态，随 Parse 调用创建和丢弃
type state struct {
	c        *cursor
	ordered  bool
	maxDepth int
}

// ─── 核心解析引擎 ───

// parseValue 根据下一个有效字符分派到对应的扫描器
//
// depth 为当前已进入的容器层数。
func (st *state) parseValue(depth int) (*Value, error) {
	c := st.c
	c.skipWS()
	switch ch := c.peek(); ch {
	case eof:
		return nil, c.fail(ErrUnexpectedCharacter, "unexpected end of input")
	case '"':
		s, err := scanString(c)
		if err != nil {
			return nil, err
		}
		return &Value{t: TypeString, s: s}, nil
	case '{':
		return st.parseObject(depth + 1)
	case '[':
		return st.parseArray(depth + 1)
	case 't':
		return st.parseLiteral("true", valueTrue)
	case 'f':
		return st.parseLiteral("false", valueFalse)
	case 'n':
		return st.parseLiteral("null", valueNull)
	default:
		if ch == '-' || ch == '+' || (ch >= '0' && ch <= '9') {
			return scanNumber(c)
		}
		return nil, c.fail(ErrUnknownValue, "")
	}
}

// parseLiteral 完整比较关键字（不只看单个区分字符）
//
// 关键字后紧跟标识符字符同样视为未知值，"falsy"、"nullable" 均被拒绝。
func (st *state) parseLiteral(lit string, v *Value) (*Value, error) {
	c := st.c
	if !c.hasPrefix(lit) {
		return nil, c.fail(ErrUnknownValue, "")
	}
	if next := c.pos + len(lit); next < c.end && isIdentByte(c.s[next]) {
		return nil, c.fail(ErrUnknownValue, "")
	}
	c.pos += len(lit)
	return v, nil
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// parseArray 解析 JSON 数组（当前字符为 '['）
func (st *state) parseArray(depth int) (*Value, error) {
	c := st.c
	if depth > st.maxDepth {
		return nil, c.fail(ErrNestingTooDeep, "")
	}
	c.advance() // skip '['
	v := &Value{t: TypeArray, a: []*Value{}}
	c.skipWS()
	if c.peek() == ']' {
		c.advance()
		return v, nil
	}
	for {
		elem, err := st.parseValue(depth)
		if err != nil {
			return nil, err
		}
		v.a = append(v.a, elem)
		c.skipWS()
		switch c.peek() {
		case ',':
			c.advance()
		case ']':
			c.advance()
			return v, nil
		case eof:
			return nil, c.fail(ErrUnexpectedCharacter, "unexpected end of input in array")
		default:
			return nil, c.fail(ErrUnexpectedCharacter, "expected ',' or ']' in array")
		}
	}
}

// parseObject 解析 JSON 对象（当前字符为 '{'）
//
// 重复键后写覆盖。键与 ':' 之间的任意字符被跳过（Strict 模式仅允许空白）。
func (st *state) parseObject(depth int) (*Value, error) {
	c := st.c
	if depth > st.maxDepth {
		return nil, c.fail(ErrNestingTooDeep, "")
	}
	c.advance() // skip '{'
	obj := NewObject(st.ordered)
	v := &Value{t: TypeObject, o: obj}
	c.skipWS()
	if c.peek() == '}' {
		c.advance()
		return v, nil
	}
	for {
		c.skipWS()
		key, err := scanString(c)
		if err != nil {
			return nil, err
		}
		if err := st.scanSeparator(); err != nil {
			return nil, err
		}
		val, err := st.parseValue(depth)
		if err != nil {
			return nil, err
		}
		obj.Set(key, val)
		c.skipWS()
		switch c.peek() {
		case ',':
			c.advance()
		case '}':
			c.advance()
			return v, nil
		case eof:
			return nil, c.fail(ErrUnexpectedCharacter, "unexpected end of input in object")
		default:
			return nil, c.fail(ErrUnexpectedCharacter, "expected ',' or '}' in object")
		}
	}
}

// scanSeparator 前进到 ':' 之后
func (st *state) scanSeparator() error {
	c := st.c
	if c.strict {
		c.skipWS()
		if c.peek() != ':' {
			return c.fail(ErrSeparatorNotFound, "")
		}
		c.advance()
		return nil
	}
	for c.more() {
		if c.peek() == ':' {
			c.advance()
			return nil
		}
		c.advance()
	}
	return c.fail(ErrSeparatorNotFound, "")
}
