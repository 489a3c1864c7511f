// Command compdoc generates Markdown reference pages for Vue single-file
// components and keeps a categorized component index.
package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	mcpserver "github.com/ursazoo/compdoc/pkg/mcp"
	"github.com/ursazoo/compdoc/pkg/util"
)

var version = "0.1.0-dev"

// CLI is the root command line.
type CLI struct {
	Config    string           `short:"c" help:"Configuration file path (default: .compdoc.yaml when present)" type:"path"`
	Verbose   bool             `short:"v" help:"Enable debug logging"`
	LogFormat string           `name:"log-format" help:"Log format: text or json"`
	Version   kong.VersionFlag `name:"version" help:"Show version and exit"`

	All       AllCmd       `cmd:"" help:"Generate docs for every component and rebuild the index"`
	Component ComponentCmd `cmd:"" help:"Generate docs for one component and rebuild the index"`
	Staged    StagedCmd    `cmd:"" help:"Generate docs for component files staged in git"`
	Watch     WatchCmd     `cmd:"" help:"Regenerate docs whenever a component changes"`
	Check     CheckCmd     `cmd:"" help:"Report components whose docs are out of date"`
	Show      ShowCmd      `cmd:"" help:"Render a generated page in the terminal"`
	Serve     ServeCmd     `cmd:"" help:"Start the MCP server on stdio"`
	Setup     SetupCmd     `cmd:"" help:"Register the MCP server with detected AI agents"`

	project *ProjectConfig `kong:"-"`
	logger  *slog.Logger   `kong:"-"`
}

// AfterApply loads the project configuration and sets up logging once.
func (c *CLI) AfterApply() error {
	// A missing .env is fine.
	_ = godotenv.Load()

	cfg, err := loadProjectConfig(c.Config)
	if err != nil {
		return err
	}
	if c.Verbose {
		cfg.LogLevel = string(util.LevelDebug)
	}
	if c.LogFormat != "" {
		cfg.LogFormat = c.LogFormat
	}
	level, err := util.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	format, err := util.ParseLogFormat(cfg.LogFormat)
	if err != nil {
		return err
	}

	logCfg := util.DefaultLoggerConfig()
	logCfg.Level = level
	logCfg.Format = format

	c.project = cfg
	c.logger = util.NewLogger(logCfg)
	util.SetDefault(c.logger)
	return nil
}

func main() {
	mcpserver.Version = version

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("compdoc"),
		kong.Description("Generate Markdown documentation for Vue single-file components."),
		kong.UsageOnError(),
		kong.Vars{"version": "compdoc " + version},
	)
	if err := ctx.Run(&cli); err != nil {
		slog.Error("command failed", "command", ctx.Command(), "error", err)
		os.Exit(1)
	}
}
