package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kingpin/v2"

	"github.com/uniyakcom/jtree/json"
)

// treeCommand 输出单个文件解析后的值树大纲
type treeCommand struct {
	g     *globalFlags
	file  *string
	out   io.Writer
	stdin io.Reader
}

func addTreeCommand(app *kingpin.Application, g *globalFlags) {
	cmd := &treeCommand{g: g, out: os.Stdout, stdin: os.Stdin}
	c := app.Command("tree", "Print an outline of the parsed value tree.").Action(cmd.run)
	cmd.file = c.Arg("file", "File to parse, '-' for stdin.").Required().String()
}

func (cmd *treeCommand) run(_ *kingpin.ParseContext) error {
	cfg, err := cmd.g.resolve()
	if err != nil {
		return err
	}
	return cmd.tree(cfg, *cmd.file)
}

func (cmd *treeCommand) tree(cfg Config, file string) error {
	docs, err := readDocs([]string{file}, cmd.stdin)
	if err != nil {
		return err
	}
	p := json.Parser{Options: cfg.Options()}
	v, err := p.ParseBytes(docs[0].Data)
	if err != nil {
		return err
	}
	if v == nil {
		fmt.Fprintln(cmd.out, "(empty)")
		return nil
	}
	newPrinter(cmd.out, cfg.NoColor).tree(v)
	return nil
}
