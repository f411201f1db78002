package main

import (
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kingpin/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/uniyakcom/jtree/json"
)

// Config 命令行工具配置，可来自 YAML 文件，命令行 flag 优先
type Config struct {
	Ordered       bool   `yaml:"ordered"`
	Strict        bool   `yaml:"strict"`
	MaxDepth      int    `yaml:"max_depth"`
	DisallowEmpty bool   `yaml:"disallow_empty"`
	Workers       int    `yaml:"workers"`
	LogLevel      string `yaml:"log_level"`
	NoColor       bool   `yaml:"no_color"`
}

// Options 转为解析配置
func (c Config) Options() json.Options {
	return json.Options{
		Ordered:       c.Ordered,
		Strict:        c.Strict,
		MaxDepth:      c.MaxDepth,
		DisallowEmpty: c.DisallowEmpty,
	}
}

// loadConfig 读取 YAML 配置文件，未知字段视为错误
func loadConfig(path string) (Config, error) {
	var cfg Config
	f, err := os.Open(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "open config %s", path)
	}
	defer func() { _ = f.Close() }()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, errors.Wrapf(err, "decode config %s", path)
	}
	return cfg, nil
}

// globalFlags 所有子命令共享的 flag
type globalFlags struct {
	configFile string
	flags      Config
	set        map[string]*bool
}

func registerGlobalFlags(app *kingpin.Application) *globalFlags {
	g := &globalFlags{set: make(map[string]*bool)}
	flag := func(name, help string) *kingpin.FlagClause {
		b := new(bool)
		g.set[name] = b
		return app.Flag(name, help).IsSetByUser(b)
	}
	app.Flag("config", "YAML config file.").StringVar(&g.configFile)
	flag("ordered", "Keep object keys in source order.").BoolVar(&g.flags.Ordered)
	flag("strict", "Strict JSON grammar (JSON whitespace only, no '+' or f/F exponents).").BoolVar(&g.flags.Strict)
	flag("max-depth", "Maximum container nesting depth.").Default("512").IntVar(&g.flags.MaxDepth)
	flag("disallow-empty", "Treat empty input as an error.").BoolVar(&g.flags.DisallowEmpty)
	flag("workers", "Number of concurrent parse workers (0 = NumCPU).").Default("0").IntVar(&g.flags.Workers)
	flag("log-level", "Log level: debug, info, warn, error.").Default("warn").EnumVar(&g.flags.LogLevel, "debug", "info", "warn", "error")
	flag("no-color", "Disable colored output.").BoolVar(&g.flags.NoColor)
	return g
}

// resolve 合并配置文件与命令行，命令行显式设置的 flag 覆盖文件
func (g *globalFlags) resolve() (Config, error) {
	if g.configFile == "" {
		return g.flags, nil
	}
	cfg, err := loadConfig(g.configFile)
	if err != nil {
		return cfg, err
	}
	return mergeConfig(cfg, g.flags, g.isSet), nil
}

func (g *globalFlags) isSet(name string) bool {
	b, ok := g.set[name]
	return ok && *b
}

// mergeConfig file 为基础，isSet 为 true 的字段取 flags 的值。
// 文件中未出现的数值字段回落到 flags 的默认值。
func mergeConfig(file, flags Config, isSet func(string) bool) Config {
	out := file
	if isSet("ordered") {
		out.Ordered = flags.Ordered
	}
	if isSet("strict") {
		out.Strict = flags.Strict
	}
	if isSet("max-depth") || out.MaxDepth == 0 {
		out.MaxDepth = flags.MaxDepth
	}
	if isSet("disallow-empty") {
		out.DisallowEmpty = flags.DisallowEmpty
	}
	if isSet("workers") {
		out.Workers = flags.Workers
	}
	if isSet("log-level") || out.LogLevel == "" {
		out.LogLevel = flags.LogLevel
	}
	if isSet("no-color") {
		out.NoColor = flags.NoColor
	}
	return out
}

// newLogger 构造写 stderr 的文本日志
func newLogger(level string) (*slog.Logger, error) {
	if level == "" {
		level = "warn"
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", level)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}
