package json

import (
	"errors"
	"math/big"
	"strconv"
	"strings"

	"github.com/valyala/fastjson/fastfloat"
)

// scanNumber 单遍词法扫描数字字面量，区分整数与浮点
//
// 前置: 当前字符为 '0'-'9'、'-' 或 '+'。
//
//	number = [ '-' | '+' ] int [ frac ] [ exp ]
//	int    = '0' | [1-9] digit*          // '0' 之后不再吃数字
//	frac   = '.' digit*
//	exp    = ( 'e' | 'E' | 'f' | 'F' ) [ '-' | '+' ] digit*
//
// 出现小数点或指数即为浮点。f/F 指数是非标准扩展，Strict 模式下不识别。
func scanNumber(c *cursor) (*Value, error) {
	s := c.s
	start := c.pos
	if s[c.pos] == '-' || s[c.pos] == '+' {
		if s[c.pos] == '+' && c.strict {
			return nil, c.fail(ErrInvalidNumber, "leading '+'")
		}
		c.pos++
	}

	float := false
	switch {
	case c.pos < c.end && s[c.pos] == '0':
		c.pos++
	case c.pos < c.end && s[c.pos] >= '1' && s[c.pos] <= '9':
		c.pos++
		c.skipDigits()
	default:
		return nil, c.fail(ErrInvalidNumber, "missing digit")
	}

	if c.pos < c.end && s[c.pos] == '.' {
		float = true
		c.pos++
		fs := c.pos
		c.skipDigits()
		if c.strict && c.pos == fs {
			return nil, c.fail(ErrInvalidNumber, "missing digit after '.'")
		}
	}

	if c.pos < c.end && isExpMarker(s[c.pos], c.strict) {
		float = true
		c.pos++
		if c.pos < c.end && (s[c.pos] == '+' || s[c.pos] == '-') {
			c.pos++
		}
		c.skipDigits()
	}

	lit := s[start:c.pos]
	if float {
		f, err := parseFloatLit(lit)
		if err != nil {
			return nil, c.fail(ErrInvalidNumber, "invalid floating point number "+strconv.Quote(lit))
		}
		return &Value{t: TypeFloat, f: f, n: lit}, nil
	}

	v := &Value{t: TypeInt, n: lit}
	digits := strings.TrimPrefix(lit, "+")
	n, err := fastfloat.ParseInt64(digits)
	if err == nil {
		v.i = n
		return v, nil
	}
	// 超出 int64: 保留精确值
	bi, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, c.fail(ErrInvalidNumber, "invalid integer "+strconv.Quote(lit))
	}
	v.bi = bi
	return v, nil
}

func (c *cursor) skipDigits() {
	for c.pos < c.end && c.s[c.pos] >= '0' && c.s[c.pos] <= '9' {
		c.pos++
	}
}

func isExpMarker(b byte, strict bool) bool {
	switch b {
	case 'e', 'E':
		return true
	case 'f', 'F':
		return !strict
	}
	return false
}

// parseFloatLit 十进制浮点字面量 → float64（正确舍入）
//
// 超出 float64 范围时返回 ±Inf 而非错误，字面量本身是合法的。
func parseFloatLit(lit string) (float64, error) {
	lit = strings.Map(func(r rune) rune {
		if r == 'f' || r == 'F' {
			return 'e'
		}
		return r
	}, lit)
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	return f, nil
}
