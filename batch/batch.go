// Package batch 在 goroutine 池上并发解析多个独立的 JSON 文档。
//
// 每个文档由一个 worker 完整解析（独占自己的 cursor），
// 并发只发生在文档之间，单个文档的解析仍是单线程的。
//
//	p, _ := batch.New(8, batch.Config{Options: json.Options{Ordered: true}})
//	defer p.Release()
//	results, err := p.ParseAll(ctx, docs)
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/uniyakcom/jtree/json"
)

// Doc 待解析文档
type Doc struct {
	Name string
	Data []byte
}

// Result 单个文档的解析结果，与输入 Doc 一一对应
type Result struct {
	Name  string
	Size  int
	Value *json.Value
	Err   error
}

// Config 池配置
type Config struct {
	// Options 每个文档使用的解析配置
	Options json.Options
	// Logger 自定义日志。为 nil 时使用 slog.Default()。
	Logger *slog.Logger
}

// PanicError 包装 worker 内 panic 恢复值
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("batch: parse panic: %v", e.Value)
}

// Pool 并发解析池
type Pool struct {
	pool   *ants.Pool
	parser json.Parser
	logger *slog.Logger
}

// New 创建解析池，size <= 0 时使用 runtime.NumCPU()。
func New(size int, cfg ...Config) (*Pool, error) {
	var c Config
	if len(cfg) > 0 {
		c = cfg[0]
	}
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if size <= 0 {
		size = runtime.NumCPU()
	}
	pool, err := ants.NewPool(size, ants.WithLogger(printfLogger{logger}))
	if err != nil {
		return nil, fmt.Errorf("batch: create pool: %w", err)
	}
	return &Pool{
		pool:   pool,
		parser: json.Parser{Options: c.Options},
		logger: logger,
	}, nil
}

// ParseAll 解析全部文档，结果顺序与 docs 相同
//
// ctx 取消后不再提交新任务，未开始的文档以 ctx.Err() 作为错误，
// 此时 ParseAll 也返回 ctx.Err()。单个文档的解析错误只记录在 Result.Err 中。
func (p *Pool) ParseAll(ctx context.Context, docs []Doc) ([]Result, error) {
	results := make([]Result, len(docs))
	var wg sync.WaitGroup
	for i := range docs {
		results[i].Name = docs[i].Name
		results[i].Size = len(docs[i].Data)
		if err := ctx.Err(); err != nil {
			results[i].Err = err
			continue
		}
		wg.Add(1)
		r := &results[i]
		d := docs[i]
		err := p.pool.Submit(func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				r.Err = err
				return
			}
			r.Value, r.Err = safeParse(func() (*json.Value, error) {
				return p.parser.ParseBytes(d.Data)
			})
			p.logResult(r)
		})
		if err != nil {
			wg.Done()
			r.Err = fmt.Errorf("batch: submit %q: %w", d.Name, err)
		}
	}
	wg.Wait()
	return results, ctx.Err()
}

// Running 当前正在执行的 worker 数
func (p *Pool) Running() int { return p.pool.Running() }

// Cap 池容量
func (p *Pool) Cap() int { return p.pool.Cap() }

// Release 关闭池。之后的 ParseAll 中每个文档都会得到提交错误。
func (p *Pool) Release() {
	p.pool.Release()
}

func (p *Pool) logResult(r *Result) {
	if r.Err == nil {
		return
	}
	if pe, ok := r.Err.(*PanicError); ok {
		p.logger.Error("document parse panicked", "name", r.Name, "panic", pe.Value)
		return
	}
	p.logger.Debug("document parse failed", "name", r.Name, "size", r.Size, "error", r.Err)
}

// safeParse 将 fn 内的 panic 转为 *PanicError
func safeParse(fn func() (*json.Value, error)) (v *json.Value, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			v = nil
			err = &PanicError{Value: rec}
		}
	}()
	return fn()
}

// printfLogger 把 ants 的 Printf 日志转到 slog
type printfLogger struct {
	l *slog.Logger
}

func (l printfLogger) Printf(format string, args ...any) {
	l.l.Warn(fmt.Sprintf(format, args...), "component", "ants")
}
