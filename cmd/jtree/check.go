package main

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/pkg/errors"

	"github.com/uniyakcom/jtree/batch"
)

// errFailed 至少一个文档解析失败
var errFailed = errors.New("one or more documents failed to parse")

// checkCommand 解析每个文件并报告错误位置
type checkCommand struct {
	g     *globalFlags
	files *[]string
	out   io.Writer
	stdin io.Reader
}

func addCheckCommand(app *kingpin.Application, g *globalFlags) {
	cmd := &checkCommand{g: g, out: os.Stdout, stdin: os.Stdin}
	c := app.Command("check", "Parse JSON files and report syntax errors.").Action(cmd.run)
	cmd.files = c.Arg("file", "Files to check, '-' for stdin.").Required().Strings()
}

func (cmd *checkCommand) run(_ *kingpin.ParseContext) error {
	cfg, err := cmd.g.resolve()
	if err != nil {
		return err
	}
	return cmd.check(context.Background(), cfg, *cmd.files)
}

func (cmd *checkCommand) check(ctx context.Context, cfg Config, files []string) error {
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	docs, err := readDocs(files, cmd.stdin)
	if err != nil {
		return err
	}

	pool, err := batch.New(cfg.Workers, batch.Config{Options: cfg.Options(), Logger: logger})
	if err != nil {
		return err
	}
	defer pool.Release()

	results, err := pool.ParseAll(ctx, docs)
	if err != nil {
		return errors.Wrap(err, "parse")
	}

	p := newPrinter(cmd.out, cfg.NoColor)
	failed := false
	for _, r := range results {
		p.result(r)
		failed = failed || r.Err != nil
	}
	p.summary(results)
	if failed {
		return errFailed
	}
	return nil
}

// readDocs 读取所有输入，"-" 表示 stdin（只读取一次）
func readDocs(files []string, stdin io.Reader) ([]batch.Doc, error) {
	docs := make([]batch.Doc, 0, len(files))
	var stdinData []byte
	stdinRead := false
	for _, name := range files {
		if name == "-" {
			if !stdinRead {
				b, err := io.ReadAll(stdin)
				if err != nil {
					return nil, errors.Wrap(err, "read stdin")
				}
				stdinData, stdinRead = b, true
			}
			docs = append(docs, batch.Doc{Name: "<stdin>", Data: stdinData})
			continue
		}
		b, err := os.ReadFile(name)
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", name)
		}
		docs = append(docs, batch.Doc{Name: name, Data: b})
	}
	return docs, nil
}
