// Package jtree 统一API入口
//
// 把完整的 JSON 文本解析为值树:
//
//	v, err := jtree.Parse(`{"name":"yak","tags":["a","b"]}`)
//	v.GetString("tags", "1") // "b"
//
// 引擎位于 json 子包，并发批量解析位于 batch 子包。
package jtree

import (
	"context"

	"github.com/uniyakcom/jtree/batch"
	"github.com/uniyakcom/jtree/json"
)

// Value 导出Value类型
type Value = json.Value

// Object 导出Object接口
type Object = json.Object

// Options 导出解析配置
type Options = json.Options

// SyntaxError 导出解析错误
type SyntaxError = json.SyntaxError

// Doc 导出批量解析的输入文档
type Doc = batch.Doc

// Result 导出批量解析结果
type Result = batch.Result

// ═══════════════════════════════════════════════════════════════════
// 第一层：零配置
// ═══════════════════════════════════════════════════════════════════

// Parse 解析 JSON 文本（对象键顺序不确定）
//
// 空输入返回 nil 且无错误。
func Parse(text string) (*Value, error) {
	return json.Parse(text)
}

// ParseBytes 解析 JSON 字节切片
func ParseBytes(b []byte) (*Value, error) {
	return json.ParseBytes(b)
}

// ParseOrdered 解析 JSON 文本，所有对象保持键的插入顺序
func ParseOrdered(text string) (*Value, error) {
	return ParseWith(text, Options{Ordered: true})
}

// ═══════════════════════════════════════════════════════════════════
// 第二层：Options 完全控制
// ═══════════════════════════════════════════════════════════════════

// ParseWith 使用指定配置解析
func ParseWith(text string, opts Options) (*Value, error) {
	p := json.Parser{Options: opts}
	return p.Parse(text)
}

// ParseAll 并发解析多个独立文档（使用 runtime.NumCPU() 个 worker）
//
// 结果顺序与 docs 相同。频繁调用时请直接复用 batch.Pool。
func ParseAll(ctx context.Context, docs []Doc, opts Options) ([]Result, error) {
	p, err := batch.New(0, batch.Config{Options: opts})
	if err != nil {
		return nil, err
	}
	defer p.Release()
	return p.ParseAll(ctx, docs)
}
