package json_test

import (
	"errors"
	"math"
	"math/big"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uniyakcom/jtree/json"
)

func mustParse(t *testing.T, s string, opts ...json.Options) *json.Value {
	t.Helper()
	var p json.Parser
	if len(opts) > 0 {
		p.Options = opts[0]
	}
	v, err := p.Parse(s)
	require.NoError(t, err, "input %q", s)
	return v
}

func parseErr(t *testing.T, s string, opts ...json.Options) *json.SyntaxError {
	t.Helper()
	var p json.Parser
	if len(opts) > 0 {
		p.Options = opts[0]
	}
	v, err := p.Parse(s)
	require.Error(t, err, "input %q", s)
	require.Nil(t, v)
	var se *json.SyntaxError
	require.True(t, errors.As(err, &se), "want *SyntaxError, got %T", err)
	return se
}

func TestParseEmpty(t *testing.T) {
	for _, in := range []string{"", "   ", "\n\t\r "} {
		v, err := json.Parse(in)
		require.NoError(t, err)
		assert.Nil(t, v)
		assert.True(t, v.IsNull())
		assert.Equal(t, json.TypeNull, v.Type())
	}

	se := parseErr(t, "  ", json.Options{DisallowEmpty: true})
	assert.ErrorIs(t, se, json.ErrEmptyInput)
}

func TestParseLiterals(t *testing.T) {
	assert.Equal(t, json.TypeBool, mustParse(t, "true").Type())
	assert.True(t, mustParse(t, "true").Bool())
	assert.False(t, mustParse(t, " false ").Bool())
	assert.Equal(t, json.TypeBool, mustParse(t, "false").Type())

	v := mustParse(t, "null")
	require.NotNil(t, v)
	assert.True(t, v.IsNull())

	for _, in := range []string{"falsy", "tru", "nul", "nullable", "t", "True", "NULL"} {
		se := parseErr(t, in)
		assert.ErrorIs(t, se, json.ErrUnknownValue, "input %q", in)
	}
}

func TestParseArray(t *testing.T) {
	v := mustParse(t, "[1,2,3]")
	require.Equal(t, json.TypeArray, v.Type())
	require.Equal(t, 3, v.Len())
	for i, e := range v.Array() {
		assert.Equal(t, json.TypeInt, e.Type())
		n, ok := e.Int64()
		assert.True(t, ok)
		assert.Equal(t, int64(i+1), n)
	}

	empty := mustParse(t, "[ ]")
	assert.Equal(t, json.TypeArray, empty.Type())
	assert.Equal(t, 0, empty.Len())
	assert.NotNil(t, empty.Array())

	nested := mustParse(t, `[[], [1, [true, null]], "x"]`)
	assert.Equal(t, []any{[]any{}, []any{int64(1), []any{true, nil}}, "x"}, nested.Interface())
}

func TestParseObject(t *testing.T) {
	v := mustParse(t, `{"name":"yak","version":1,"tags":["a","b"],"meta":{"ok":true}}`)
	require.Equal(t, json.TypeObject, v.Type())
	assert.Equal(t, 4, v.Len())
	assert.Equal(t, "yak", v.GetString("name"))
	assert.Equal(t, int64(1), v.GetInt64("version"))
	assert.Equal(t, "b", v.GetString("tags", "1"))
	assert.True(t, v.GetBool("meta", "ok"))
	assert.Nil(t, v.Get("missing"))
	assert.Nil(t, v.Get("tags", "2"))
	assert.Nil(t, v.Get("name", "x"))

	empty := mustParse(t, "{ }")
	assert.Equal(t, json.TypeObject, empty.Type())
	assert.Equal(t, 0, empty.Len())
}

func TestParseOrdered(t *testing.T) {
	v := mustParse(t, `{"a":1,"b":2}`, json.Options{Ordered: true})
	assert.Equal(t, []string{"a", "b"}, v.Object().Keys())
	assert.True(t, v.Object().Ordered())

	v = mustParse(t, `{"z":1,"m":{"y":1,"b":2,"x":3},"a":2}`, json.Options{Ordered: true})
	assert.Equal(t, []string{"z", "m", "a"}, v.Object().Keys())
	// 嵌套对象同样有序
	assert.Equal(t, []string{"y", "b", "x"}, v.Get("m").Object().Keys())

	var keys []string
	v.ObjectEach(func(k string, _ *json.Value) bool {
		keys = append(keys, k)
		return k != "m"
	})
	assert.Equal(t, []string{"z", "m"}, keys)

	unordered := mustParse(t, `{"z":1,"m":{"y":1}}`)
	assert.False(t, unordered.Object().Ordered())
	assert.False(t, unordered.Get("m").Object().Ordered())
	assert.ElementsMatch(t, []string{"z", "m"}, unordered.Object().Keys())
}

func TestParseDuplicateKeys(t *testing.T) {
	for _, ordered := range []bool{false, true} {
		v := mustParse(t, `{"a":1,"b":0,"a":2}`, json.Options{Ordered: ordered})
		assert.Equal(t, 2, v.Len())
		assert.Equal(t, int64(2), v.GetInt64("a"))
		if ordered {
			// 覆盖不改变键位置
			assert.Equal(t, []string{"a", "b"}, v.Object().Keys())
		}
	}
}

func TestParseStrings(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`""`, ""},
		{`"plain"`, "plain"},
		{`"A"`, "A"},
		{`"ßé"`, "ßé"},
		{`"😀"`, "😀"},
		{`"a😀b"`, "a😀b"},
		{`"\"\\\/\b\f\n\r\t"`, "\"\\/\b\f\n\r\t"},
		{`"hello\nworld"`, "hello\nworld"},
		{`"日本語 ok"`, "日本語 ok"},
		{"\"raw\ttab\"", "raw\ttab"},
		{`"\uDE00"`, "�"},
		{`"\u0041"`, "A"},
		{`"\uD83D\uDE00"`, "😀"},
		{`"\ud83d\ude00x"`, "😀x"},
		{`"a\u00e9\n"`, "aé\n"},
		{`"\u65e5\u672c"`, "日本"},
		{`"x\\"`, `x\`},
	}
	for _, tc := range cases {
		v := mustParse(t, tc.in)
		assert.Equal(t, json.TypeString, v.Type(), "input %s", tc.in)
		assert.Equal(t, tc.want, v.Str(), "input %s", tc.in)
	}
}

func TestParseSurrogatePair(t *testing.T) {
	v := mustParse(t, `"\uD83D\uDE00"`)
	assert.Equal(t, 1, utf8.RuneCountInString(v.Str()))
	assert.Equal(t, '\U0001F600', []rune(v.Str())[0])
	assert.Len(t, v.Str(), 4)
}

func TestParseBackspaceWhitespace(t *testing.T) {
	assert.Equal(t, int64(1), mustParse(t, "\b1").GetInt64())
	v := mustParse(t, "[1,\b2]")
	assert.Equal(t, 2, v.Len())
	assert.Equal(t, int64(2), v.GetInt64("1"))

	p := json.Parser{Options: json.Options{Strict: true}}
	_, err := p.Parse("\b1")
	assert.ErrorIs(t, err, json.ErrUnknownValue)
}

func TestParseStringErrors(t *testing.T) {
	cases := []struct {
		in   string
		want error
	}{
		{`"abc`, json.ErrUnterminatedString},
		{`"abc\`, json.ErrUnterminatedString},
		{`"\u12`, json.ErrUnterminatedString},
		{`"\uD83D"`, json.ErrUnmatchedSurrogate},
		{`"\uD83Dx"`, json.ErrUnmatchedSurrogate},
		{`"\uD83DA"`, json.ErrUnmatchedSurrogate},
		{`"\uD83D\n"`, json.ErrUnmatchedSurrogate},
		{`"\uD83D\u0041"`, json.ErrUnmatchedSurrogate},
		{`"\x"`, json.ErrUnrecognizedEscape},
		{`"\u12G4"`, json.ErrUnrecognizedEscape},
		{`"\'"`, json.ErrUnrecognizedEscape},
		{`{1:2}`, json.ErrMissingOpeningQuote},
		{`{"a":1,}`, json.ErrMissingOpeningQuote},
	}
	for _, tc := range cases {
		se := parseErr(t, tc.in)
		assert.ErrorIs(t, se, tc.want, "input %s: %v", tc.in, se)
	}
}

func TestParseNumbers(t *testing.T) {
	ints := map[string]int64{
		"42":                   42,
		"-7":                   -7,
		"0":                    0,
		"-0":                   0,
		"+5":                   5,
		"9223372036854775807":  math.MaxInt64,
		"-9223372036854775808": math.MinInt64,
	}
	for in, want := range ints {
		v := mustParse(t, in)
		require.Equal(t, json.TypeInt, v.Type(), "input %s", in)
		n, ok := v.Int64()
		assert.True(t, ok, "input %s", in)
		assert.Equal(t, want, n, "input %s", in)
		assert.Equal(t, in, v.Raw())
	}

	floats := map[string]float64{
		"3.14e10": 3.14e10,
		"0.5":     0.5,
		"-0.25":   -0.25,
		"1e3":     1000,
		"1E-2":    0.01,
		"2e+2":    200,
		"1.5f2":   150,
		"1F1":     10,
		"1.":      1,
		"0.0":     0,
		"1e400":   math.Inf(1),
		"-1e400":  math.Inf(-1),
	}
	for in, want := range floats {
		v := mustParse(t, in)
		require.Equal(t, json.TypeFloat, v.Type(), "input %s", in)
		assert.Equal(t, want, v.Float64(), "input %s", in)
		_, ok := v.Int64()
		assert.False(t, ok)
	}
}

func TestParseBigInt(t *testing.T) {
	in := "123456789012345678901234567890"
	v := mustParse(t, in)
	require.Equal(t, json.TypeInt, v.Type())
	_, ok := v.Int64()
	assert.False(t, ok)

	want, _ := new(big.Int).SetString(in, 10)
	assert.Equal(t, 0, want.Cmp(v.BigInt()))
	assert.Equal(t, in, v.Raw())
	assert.InDelta(t, 1.2345678901234568e29, v.Float64(), 1e15)

	neg := mustParse(t, "-9223372036854775809")
	assert.Equal(t, "-9223372036854775809", neg.BigInt().String())
}

func TestParseNumberErrors(t *testing.T) {
	cases := []struct {
		in   string
		want error
	}{
		{"-", json.ErrInvalidNumber},
		{"-a", json.ErrInvalidNumber},
		{"+", json.ErrInvalidNumber},
		{"1e", json.ErrInvalidNumber},
		{"1e+", json.ErrInvalidNumber},
		{"-.5", json.ErrInvalidNumber},
		{".5", json.ErrUnknownValue},
		{"01", json.ErrUnexpectedCharacter},
		{"[01]", json.ErrUnexpectedCharacter},
		{"1.2.3", json.ErrUnexpectedCharacter},
	}
	for _, tc := range cases {
		se := parseErr(t, tc.in)
		assert.ErrorIs(t, se, tc.want, "input %s: %v", tc.in, se)
	}

	// "01": '0' 被消费后 '1' 成为非法的新 token
	se := parseErr(t, "01")
	assert.Equal(t, 1, se.Offset)
}

func TestParseStrict(t *testing.T) {
	strict := json.Options{Strict: true}

	v := mustParse(t, " [1, 2.5e1, \"x\"]\r\n", strict)
	assert.Equal(t, 3, v.Len())

	cases := []struct {
		in   string
		want error
	}{
		{"+1", json.ErrInvalidNumber},
		{"1.", json.ErrInvalidNumber},
		{"1f2", json.ErrUnexpectedCharacter},
		{"\v1", json.ErrUnknownValue},
		{"[1,\f2]", json.ErrUnknownValue},
		{`{"a" x : 1}`, json.ErrSeparatorNotFound},
		{"\u00a01", json.ErrUnknownValue},
	}
	for _, tc := range cases {
		se := parseErr(t, tc.in, strict)
		assert.ErrorIs(t, se, tc.want, "input %q: %v", tc.in, se)
	}

	// 非严格模式下上述输入均可接受
	assert.Equal(t, int64(1), mustParse(t, "+1").GetInt64())
	assert.Equal(t, 100.0, mustParse(t, "1f2").Float64())
	assert.Equal(t, int64(1), mustParse(t, "\v1").GetInt64())
	assert.Equal(t, int64(1), mustParse(t, "\u00a01\u2003").GetInt64())
	assert.Equal(t, int64(1), mustParse(t, `{"a" x : 1}`).GetInt64("a"))
}

func TestParseSeparator(t *testing.T) {
	se := parseErr(t, `{"a" 1}`)
	assert.ErrorIs(t, se, json.ErrSeparatorNotFound)

	se = parseErr(t, `{"a"`)
	assert.ErrorIs(t, se, json.ErrSeparatorNotFound)
}

func TestParseStructuralErrors(t *testing.T) {
	cases := []struct {
		in   string
		want error
	}{
		{"[1,2", json.ErrUnexpectedCharacter},
		{"[1,", json.ErrUnexpectedCharacter},
		{"[", json.ErrUnexpectedCharacter},
		{"[1 2]", json.ErrUnexpectedCharacter},
		{"[1,]", json.ErrUnknownValue},
		{`{"a":1`, json.ErrUnexpectedCharacter},
		{`{"a":1 "b":2}`, json.ErrUnexpectedCharacter},
		{`{"a":}`, json.ErrUnknownValue},
		{`{"a":`, json.ErrUnexpectedCharacter},
		{"1 2", json.ErrUnexpectedCharacter},
		{"@", json.ErrUnknownValue},
		{"]", json.ErrUnknownValue},
	}
	for _, tc := range cases {
		se := parseErr(t, tc.in)
		assert.ErrorIs(t, se, tc.want, "input %s: %v", tc.in, se)
	}
}

func TestSyntaxErrorReport(t *testing.T) {
	se := parseErr(t, "[1,2")
	assert.ErrorIs(t, se, json.ErrUnexpectedCharacter)
	assert.Equal(t, 1, se.Line)
	assert.Equal(t, 4, se.Offset)
	assert.NotEmpty(t, se.Snippet)
	assert.Equal(t, "[1,2", se.Snippet)
	assert.Equal(t, "    ^", se.CaretLine())

	src := "{\n  \"a\": [1, 2],\n  \"b\": tru\n}"
	se = parseErr(t, src)
	assert.ErrorIs(t, se, json.ErrUnknownValue)
	assert.Equal(t, 3, se.Line)
	assert.Equal(t, strings.Index(src, "tru"), se.Offset)
	assert.Equal(t, 't', []rune(se.Snippet)[se.Caret])

	msg := se.Error()
	lines := strings.Split(msg, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "json: unknown value at line 3", lines[0])
	assert.Equal(t, se.Snippet, lines[1])
	assert.Equal(t, strings.Repeat(" ", se.Caret)+"^", lines[2])
}

func TestParseMaxDepth(t *testing.T) {
	opts := json.Options{MaxDepth: 3}
	mustParse(t, "[[[1]]]", opts)
	mustParse(t, `{"a":[{"b":1}]}`, opts)

	se := parseErr(t, "[[[[1]]]]", opts)
	assert.ErrorIs(t, se, json.ErrNestingTooDeep)
	assert.Equal(t, 3, se.Offset)

	se = parseErr(t, `{"a":{"b":{"c":{}}}}`, opts)
	assert.ErrorIs(t, se, json.ErrNestingTooDeep)

	deep := strings.Repeat("[", json.MaxDepth+1) + strings.Repeat("]", json.MaxDepth+1)
	se = parseErr(t, deep)
	assert.ErrorIs(t, se, json.ErrNestingTooDeep)

	ok := strings.Repeat("[", json.MaxDepth) + strings.Repeat("]", json.MaxDepth)
	mustParse(t, ok)
}

func TestParseBytesCopies(t *testing.T) {
	b := []byte(`{"k":"value"}`)
	v, err := json.ParseBytes(b)
	require.NoError(t, err)
	copy(b, `{"k":"XXXXX"}`)
	assert.Equal(t, "value", v.GetString("k"))
}

func TestParserConcurrentUse(t *testing.T) {
	p := json.Parser{Options: json.Options{Ordered: true}}
	done := make(chan error, 8)
	for g := 0; g < 8; g++ {
		go func() {
			for i := 0; i < 200; i++ {
				v, err := p.Parse(`{"x":[1,2,{"y":"z"}],"w":false}`)
				if err != nil {
					done <- err
					return
				}
				if v.GetString("x", "2", "y") != "z" {
					done <- errors.New("wrong value")
					return
				}
			}
			done <- nil
		}()
	}
	for g := 0; g < 8; g++ {
		require.NoError(t, <-done)
	}
}

func TestValueInterface(t *testing.T) {
	v := mustParse(t, `{"s":"x","i":-3,"f":1.5,"b":true,"n":null,"a":[1,"2"],"o":{}}`)
	want := map[string]any{
		"s": "x",
		"i": int64(-3),
		"f": 1.5,
		"b": true,
		"n": nil,
		"a": []any{int64(1), "2"},
		"o": map[string]any{},
	}
	if diff := cmp.Diff(want, v.Interface()); diff != "" {
		t.Errorf("Interface() mismatch (-want +got):\n%s", diff)
	}
}
