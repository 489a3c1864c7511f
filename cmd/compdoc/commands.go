package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/ursazoo/compdoc/pkg/discovery"
	"github.com/ursazoo/compdoc/pkg/docstore"
	mcpserver "github.com/ursazoo/compdoc/pkg/mcp"
	"github.com/ursazoo/compdoc/pkg/mcplog"
	"github.com/ursazoo/compdoc/pkg/metrics"
	"github.com/ursazoo/compdoc/pkg/pipeline"
	"github.com/ursazoo/compdoc/pkg/watcher"
)

// errRunFailed signals a report that was already printed.
var errRunFailed = errors.New("documentation run failed")

func runReport(report *pipeline.Report, store *docstore.FSStore) error {
	printReport(os.Stdout, report, store.Path)
	if !report.Success() {
		return errRunFailed
	}
	return nil
}

// AllCmd implements the 'all' command.
type AllCmd struct{}

func (c *AllCmd) Run(cli *CLI) error {
	a, err := newApp(cli.project, cli.logger, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := a.service.All()
	if err != nil {
		return err
	}
	return runReport(report, a.store)
}

// ComponentCmd implements the 'component' command.
type ComponentCmd struct {
	Name string `arg:"" help:"Component file name without extension, e.g. Button"`
}

func (c *ComponentCmd) Run(cli *CLI) error {
	a, err := newApp(cli.project, cli.logger, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := a.service.Component(c.Name)
	if errors.Is(err, discovery.ErrComponentNotFound) {
		fmt.Fprintln(os.Stdout, styleFailure.Render("component not found: "+c.Name))
		return err
	}
	if err != nil {
		return err
	}
	return runReport(report, a.store)
}

// StagedCmd implements the 'staged' command.
type StagedCmd struct{}

func (c *StagedCmd) Run(cli *CLI) error {
	a, err := newApp(cli.project, cli.logger, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := a.service.Staged()
	if err != nil {
		return err
	}
	return runReport(report, a.store)
}

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Addr    string `help:"Serve generated docs and Prometheus /metrics on this address, e.g. :3333"`
	Initial bool   `help:"Generate all docs before watching" default:"true" negatable:""`
}

func (c *WatchCmd) Run(cli *CLI) error {
	cfg := cli.project
	recorder := metrics.NewPrometheusRecorder(nil)
	a, err := newApp(cfg, cli.logger, recorder)
	if err != nil {
		return err
	}
	defer a.Close()

	if c.Initial {
		report, err := a.service.All()
		if err != nil {
			return err
		}
		printReport(os.Stdout, report, a.store.Path)
	}

	fw, err := watcher.NewFileWatcher(func(path string) {
		recorder.IncWatchEvent()
		printReport(os.Stdout, a.service.Changed(path), a.store.Path)
	}, watcher.Options{Debounce: cfg.Debounce(), Filter: cfg.Filter()}, cli.logger)
	if err != nil {
		return err
	}
	if err := fw.Start(cfg.ComponentsDir); err != nil {
		return err
	}
	defer fw.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if c.Addr != "" {
		srv := docsServer(c.Addr, cfg.OutputDir, recorder)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				cli.logger.Error("docs server failed", "addr", c.Addr, "error", err)
				stop()
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
		cli.logger.Info("serving docs", "addr", c.Addr, "dir", cfg.OutputDir)
	}

	cli.logger.Info("watching components", "dir", cfg.ComponentsDir, "debounce", cfg.Debounce())
	<-ctx.Done()
	stats := a.service.Pipeline().CacheStats()
	cli.logger.Info("stopping watcher",
		"dir", a.service.Config().ComponentsDir,
		"cache_hits", stats.Hits,
		"cache_misses", stats.Misses,
		"cache_hit_rate", stats.HitRate)
	return nil
}

// docsServer serves the output directory and the metrics endpoint.
func docsServer(addr, dir string, recorder *metrics.PrometheusRecorder) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(recorder.Registry()))
	mux.Handle("/", http.FileServer(http.Dir(dir)))
	return &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}
}

// CheckCmd implements the 'check' command.
type CheckCmd struct {
	Diff bool `help:"Print unified diffs of stale pages"`
}

func (c *CheckCmd) Run(cli *CLI) error {
	a, err := newApp(cli.project, cli.logger, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	report, err := a.service.Check()
	if err != nil {
		return err
	}
	stale := printCheck(os.Stdout, report, c.Diff)
	if stale > 0 || !report.Success() {
		return fmt.Errorf("%d component docs out of date", stale)
	}
	return nil
}

// ShowCmd implements the 'show' command.
type ShowCmd struct {
	Name  string `arg:"" help:"Component name"`
	Raw   bool   `help:"Print the Markdown source"`
	Width int    `help:"Word wrap width" default:"100"`
}

func (c *ShowCmd) Run(cli *CLI) error {
	a, err := newApp(cli.project, cli.logger, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	doc, err := a.service.Document(c.Name)
	if err != nil {
		return err
	}
	if c.Raw {
		fmt.Fprint(os.Stdout, doc)
		return nil
	}
	out, err := renderMarkdown(doc, c.Width)
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stdout, out)
	return nil
}

// renderMarkdown renders doc for the terminal.
func renderMarkdown(doc string, width int) (string, error) {
	opts := []glamour.TermRendererOption{glamour.WithAutoStyle()}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := renderer.Render(doc)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return out, nil
}

// ServeCmd implements the 'serve' command.
type ServeCmd struct{}

func (c *ServeCmd) Run(cli *CLI) error {
	calls, err := mcplog.NewLogger(cli.project.MCPLogPath)
	if err != nil {
		return err
	}
	defer calls.Close()

	a, err := newApp(cli.project, cli.logger, nil)
	if err != nil {
		return err
	}
	defer a.Close()

	return mcpserver.NewServer(a.service, calls, cli.logger).ServeStdio()
}

// SetupCmd implements the 'setup' command.
type SetupCmd struct {
	Auto bool `help:"Configure every detected agent without prompting"`
}

func (c *SetupCmd) Run(cli *CLI) error {
	executeSetup(os.Stdin, os.Stdout, setupOptions{auto: c.Auto, configPath: cli.Config})
	return nil
}
