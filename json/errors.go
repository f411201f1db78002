package json

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// jsonError 错误类别常量（errors.Is 比较目标）
type jsonError string

func (e jsonError) Error() string { return string(e) }

const (
	ErrSeparatorNotFound   jsonError = "json: separator not found"
	ErrUnmatchedSurrogate  jsonError = "json: unmatched surrogate"
	ErrUnrecognizedEscape  jsonError = "json: unrecognized escape character"
	ErrUnterminatedString  jsonError = "json: unterminated string"
	ErrUnexpectedCharacter jsonError = "json: unexpected character"
	ErrUnknownValue        jsonError = "json: unknown value"
	ErrInvalidNumber       jsonError = "json: invalid number"
	ErrMissingOpeningQuote jsonError = "json: missing opening quote"
	ErrNestingTooDeep      jsonError = "json: nesting too deep"
	ErrEmptyInput          jsonError = "json: empty input"
)

// snippetRadius 片段在失败位置前后各保留的字符数
const snippetRadius = 20

// SyntaxError 解析失败的完整描述
//
// 只在失败点一次性构造，所有字段都已填充。
type SyntaxError struct {
	Err     error  // 错误类别，ErrXxx 之一
	Msg     string // 具体描述
	Line    int    // 1 起始的行号
	Offset  int    // 失败位置的字节偏移
	Snippet string // 失败位置附近的文本，空白与控制字符替换为空格
	Caret   int    // '^' 在 Snippet 中的字符列（0 起始）
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	b.WriteString(e.Msg)
	b.WriteString(" at line ")
	b.WriteString(strconv.Itoa(e.Line))
	b.WriteByte('\n')
	b.WriteString(e.Snippet)
	b.WriteByte('\n')
	b.WriteString(e.CaretLine())
	return b.String()
}

// Unwrap 返回错误类别，支持 errors.Is(err, json.ErrXxx)
func (e *SyntaxError) Unwrap() error { return e.Err }

// CaretLine 返回与 Snippet 对齐的 caret 行
func (e *SyntaxError) CaretLine() string {
	return strings.Repeat(" ", e.Caret) + "^"
}

// fail 在当前位置构造 SyntaxError
func (c *cursor) fail(kind jsonError, msg string) *SyntaxError {
	if msg == "" {
		msg = string(kind)
	} else {
		msg = string(kind) + ": " + msg
	}
	snippet, caret := c.snippet()
	return &SyntaxError{
		Err:     kind,
		Msg:     msg,
		Line:    1 + strings.Count(c.s[:c.pos], "\n"),
		Offset:  c.pos,
		Snippet: snippet,
		Caret:   caret,
	}
}

// snippet 截取失败位置前后各 snippetRadius 个字符
//
// 按字符而非字节计数，空白与控制字符一对一替换为空格，caret 列不受影响。
func (c *cursor) snippet() (string, int) {
	start := c.pos
	for n := 0; n < snippetRadius && start > 0; n++ {
		_, sz := utf8.DecodeLastRuneInString(c.s[:start])
		start -= sz
	}
	stop := c.pos
	for n := 0; n < snippetRadius && stop < len(c.s); n++ {
		_, sz := utf8.DecodeRuneInString(c.s[stop:])
		stop += sz
	}

	var b strings.Builder
	b.Grow(stop - start)
	caret := 0
	for i, r := range c.s[start:stop] {
		if start+i < c.pos {
			caret++
		}
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			b.WriteByte(' ')
			continue
		}
		b.WriteRune(r)
	}
	return b.String(), caret
}
