package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/uniyakcom/jtree/batch"
	"github.com/uniyakcom/jtree/json"
)

// printer 输出格式化，color 关闭时输出纯文本
type printer struct {
	w     io.Writer
	ok    *color.Color
	bad   *color.Color
	caret *color.Color
	dim   *color.Color
}

func newPrinter(w io.Writer, noColor bool) *printer {
	p := &printer{
		w:     w,
		ok:    color.New(color.FgGreen),
		bad:   color.New(color.FgRed, color.Bold),
		caret: color.New(color.FgRed, color.Bold),
		dim:   color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.ok, p.bad, p.caret, p.dim} {
		if noColor {
			c.DisableColor()
		} else {
			c.EnableColor()
		}
	}
	return p
}

// result 输出单个文档的检查结果
func (p *printer) result(r batch.Result) {
	size := humanize.Bytes(uint64(r.Size))
	if r.Err == nil {
		fmt.Fprintf(p.w, "%s %s (%s)\n", p.ok.Sprint("ok"), r.Name, size)
		return
	}
	fmt.Fprintf(p.w, "%s %s (%s)\n", p.bad.Sprint("FAIL"), r.Name, size)

	var se *json.SyntaxError
	if !errors.As(r.Err, &se) {
		fmt.Fprintf(p.w, "    %v\n", r.Err)
		return
	}
	fmt.Fprintf(p.w, "    %s at line %d (offset %d)\n", se.Msg, se.Line, se.Offset)
	fmt.Fprintf(p.w, "    %s\n", se.Snippet)
	fmt.Fprintf(p.w, "    %s%s\n", strings.Repeat(" ", se.Caret), p.caret.Sprint("^"))
}

// summary 输出汇总行
func (p *printer) summary(results []batch.Result) {
	var failed, total int
	for _, r := range results {
		total += r.Size
		if r.Err != nil {
			failed++
		}
	}
	line := fmt.Sprintf("%d checked, %d failed, %s total", len(results), failed, humanize.Bytes(uint64(total)))
	if failed > 0 {
		fmt.Fprintln(p.w, p.bad.Sprint(line))
		return
	}
	fmt.Fprintln(p.w, p.ok.Sprint(line))
}

// tree 输出值树的缩进大纲（类型 + 标量值），不是 JSON 文本
//
//	object (2)
//	  "name": string "yak"
//	  "tags": array (2)
//	    [0]: string "a"
func (p *printer) tree(v *json.Value) {
	p.node("", v, 0)
}

func (p *printer) node(label string, v *json.Value, depth int) {
	indent := strings.Repeat("  ", depth)
	if label != "" {
		label += ": "
	}
	switch v.Type() {
	case json.TypeArray:
		fmt.Fprintf(p.w, "%s%sarray %s\n", indent, label, p.dim.Sprintf("(%d)", v.Len()))
		v.ArrayEach(func(i int, e *json.Value) bool {
			p.node("["+strconv.Itoa(i)+"]", e, depth+1)
			return true
		})
	case json.TypeObject:
		o := v.Object()
		fmt.Fprintf(p.w, "%s%sobject %s\n", indent, label, p.dim.Sprintf("(%d)", o.Len()))
		keys := o.Keys()
		if !o.Ordered() {
			sort.Strings(keys)
		}
		for _, k := range keys {
			e, _ := o.Get(k)
			p.node(strconv.Quote(k), e, depth+1)
		}
	default:
		fmt.Fprintf(p.w, "%s%s%s %s\n", indent, label, v.Type(), scalar(v))
	}
}

func scalar(v *json.Value) string {
	switch v.Type() {
	case json.TypeBool:
		return strconv.FormatBool(v.Bool())
	case json.TypeInt, json.TypeFloat:
		return v.Raw()
	case json.TypeString:
		return strconv.Quote(v.Str())
	default:
		return "null"
	}
}
