package json

import "unicode/utf8"

// scanString 解析引号字符串，返回解转义后的内容
//
// 前置: 当前字符应为 '"'，否则 ErrMissingOpeningQuote。
// 结束后 cursor 位于闭合引号之后。
//
// 无转义的连续片段直接切片，仅在遇到第一个 '\' 时才建立缓冲区。
func scanString(c *cursor) (string, error) {
	if c.peek() != '"' {
		return "", c.fail(ErrMissingOpeningQuote, "")
	}
	c.pos++ // skip opening '"'
	s := c.s
	start := c.pos
	var buf []byte // nil 表示尚未遇到转义

	for c.pos < c.end {
		switch s[c.pos] {
		case '"':
			var out string
			if buf == nil {
				out = s[start:c.pos]
			} else {
				out = string(append(buf, s[start:c.pos]...))
			}
			c.pos++ // skip closing '"'
			return out, nil
		case '\\':
			if buf == nil {
				buf = make([]byte, 0, c.pos-start+16)
			}
			buf = append(buf, s[start:c.pos]...)
			var err error
			if buf, err = scanEscape(c, buf); err != nil {
				return "", err
			}
			start = c.pos
		default:
			// 多字节 UTF-8 的后续字节都 >= 0x80，不会被误判为 '"' 或 '\'
			c.pos++
		}
	}
	return "", c.fail(ErrUnterminatedString, "")
}

// scanEscape 解码一个转义序列并追加到 buf
//
// 前置: c.s[c.pos] == '\\'。结束后 cursor 位于转义序列之后。
func scanEscape(c *cursor, buf []byte) ([]byte, error) {
	c.pos++ // skip '\'
	if c.pos >= c.end {
		return buf, c.fail(ErrUnterminatedString, "")
	}
	e := c.s[c.pos]
	switch e {
	case '"', '\\', '/':
		buf = append(buf, e)
	case 'b':
		buf = append(buf, '\b')
	case 'f':
		buf = append(buf, '\f')
	case 'n':
		buf = append(buf, '\n')
	case 'r':
		buf = append(buf, '\r')
	case 't':
		buf = append(buf, '\t')
	case 'u':
		c.pos++
		r, err := scanUnicode(c)
		if err != nil {
			return buf, err
		}
		return utf8.AppendRune(buf, r), nil
	default:
		return buf, c.fail(ErrUnrecognizedEscape, "\\"+string(c.peek()))
	}
	c.pos++
	return buf, nil
}

// scanUnicode 解析 \u 之后的 4 位十六进制数，高代理项须紧跟 \uXXXX 低代理项
//
// 前置: cursor 位于 'u' 之后。结束后 cursor 位于最后一个十六进制数字之后。
// 孤立的低代理项解码为 U+FFFD。
func scanUnicode(c *cursor) (rune, error) {
	r1, err := scanHex4(c)
	if err != nil {
		return 0, err
	}
	if r1 < 0xD800 || r1 > 0xDFFF {
		return r1, nil
	}
	if r1 > 0xDBFF {
		return utf8.RuneError, nil
	}
	if !c.hasPrefix(`\u`) {
		return 0, c.fail(ErrUnmatchedSurrogate, "high surrogate not followed by \\u")
	}
	c.pos += 2
	r2, err := scanHex4(c)
	if err != nil {
		return 0, err
	}
	if r2 < 0xDC00 || r2 > 0xDFFF {
		return 0, c.fail(ErrUnmatchedSurrogate, "invalid low surrogate")
	}
	return 0x10000 + (r1-0xD800)<<10 + (r2 - 0xDC00), nil
}

// scanHex4 读取恰好 4 位十六进制数
func scanHex4(c *cursor) (rune, error) {
	if c.end-c.pos < 4 {
		c.pos = c.end
		return 0, c.fail(ErrUnterminatedString, "truncated unicode escape")
	}
	var r rune
	for i := 0; i < 4; i++ {
		ch := c.s[c.pos]
		r <<= 4
		switch {
		case ch >= '0' && ch <= '9':
			r |= rune(ch - '0')
		case ch >= 'a' && ch <= 'f':
			r |= rune(ch - 'a' + 10)
		case ch >= 'A' && ch <= 'F':
			r |= rune(ch - 'A' + 10)
		default:
			return 0, c.fail(ErrUnrecognizedEscape, "invalid hex digit in unicode escape")
		}
		c.pos++
	}
	return r, nil
}
