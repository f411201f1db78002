// Command jtree 检查 JSON 文件语法并输出值树大纲。
//
//	jtree check a.json b.json
//	jtree --ordered tree config.json
//	cat x.json | jtree --strict check -
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kingpin/v2"
)

func main() {
	app := kingpin.New("jtree", "Check JSON files and inspect parsed value trees.")
	app.HelpFlag.Short('h')

	g := registerGlobalFlags(app)
	addCheckCommand(app, g)
	addTreeCommand(app, g)

	if _, err := app.Parse(os.Args[1:]); err != nil {
		exitWithErr(err)
	}
}

func exitWithErr(err error) {
	if !errors.Is(err, errFailed) {
		fmt.Fprintf(os.Stderr, "jtree: %v\n", err)
	}
	os.Exit(1)
}
