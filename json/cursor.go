package json

import (
	"unicode"
	"unicode/utf8"
)

// eof peek 越界时的返回值
const eof rune = -1

// cursor 输入文本上的位置游标
//
// 不变量: 0 <= pos <= end <= len(s)。
// 每次 Parse 独占一个 cursor，只前进不回退，解析结束即丢弃。
type cursor struct {
	s      string
	pos    int
	end    int
	strict bool // 仅 JSON 空白
}

func newCursor(s string, strict bool) *cursor {
	return &cursor{s: s, end: len(s), strict: strict}
}

// more 是否还有输入
func (c *cursor) more() bool { return c.pos < c.end }

// peek 返回当前字符（按 UTF-8 解码），越界返回 eof
func (c *cursor) peek() rune {
	if c.pos >= c.end {
		return eof
	}
	if b := c.s[c.pos]; b < utf8.RuneSelf {
		return rune(b)
	}
	r, _ := utf8.DecodeRuneInString(c.s[c.pos:c.end])
	return r
}

// advance 前进一个完整字符（不会切开多字节序列）
//
// 调用方需先确认 more()。
func (c *cursor) advance() {
	if c.s[c.pos] < utf8.RuneSelf {
		c.pos++
		return
	}
	_, sz := utf8.DecodeRuneInString(c.s[c.pos:c.end])
	c.pos += sz
}

// skipWS 跳过空白
func (c *cursor) skipWS() {
	for c.pos < c.end {
		b := c.s[c.pos]
		// 快速路径: ASCII
		if b < utf8.RuneSelf {
			if !c.isSpaceByte(b) {
				return
			}
			c.pos++
			continue
		}
		if c.strict {
			return
		}
		r, sz := utf8.DecodeRuneInString(c.s[c.pos:c.end])
		if !unicode.IsSpace(r) {
			return
		}
		c.pos += sz
	}
}

func (c *cursor) isSpaceByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	case '\v', '\f', '\b':
		return !c.strict
	}
	return false
}

// hasPrefix 当前位置是否以 lit 开头
func (c *cursor) hasPrefix(lit string) bool {
	return c.end-c.pos >= len(lit) && c.s[c.pos:c.pos+len(lit)] == lit
}
