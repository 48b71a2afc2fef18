package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sadopc/msghist/internal/app"
	"github.com/sadopc/msghist/internal/config"
	"github.com/sadopc/msghist/internal/logging"
	httpclient "github.com/sadopc/msghist/internal/protocol/http"
	"github.com/sadopc/msghist/pkg/version"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "list":
			listCmd()
			return
		case "mock":
			mockCmd()
			return
		case "completion":
			completionCmd()
			return
		case "version":
			fmt.Printf("msghist %s (%s) built %s\n", version.Version, version.Commit, version.Date)
			return
		case "help":
			printHelp()
			return
		}
	}
	tuiCmd()
}

func printHelp() {
	fmt.Fprintf(os.Stderr, `msghist - Browse messenger delivery history in the terminal

Usage:
  msghist [flags]                    Launch TUI (interactive mode)
  msghist <command> [flags]          Run a subcommand

Commands:
  list        Print one page of history records
  mock        Start a mock /v1/histories server backed by SQLite
  completion  Generate shell completion scripts (bash, zsh, fish)
  version     Print version information
  help        Show this help message

TUI Flags:
  --base-url <url>    History API base URL
  --theme <name>      Color theme
  --config <path>     Config file (default ~/.config/msghist/config.yaml)
  --version           Print version and exit

Examples:
  msghist                                     Launch TUI
  msghist --base-url http://localhost:8888    Launch TUI against a local server
  msghist list --sender grafana --status false
  msghist list --start "2024-01-01 00:00" --end "2024-01-02 00:00" --output json
  msghist mock --seed 200 --port 8888
`)
}

// loadConfig reads path when given and the default config file otherwise.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Load(), nil
	}
	return config.LoadFile(path)
}

// newClient builds the history API client from cfg.
func newClient(cfg config.Config) (*httpclient.Client, error) {
	c := httpclient.New(cfg.BaseURL)
	c.SetTimeout(cfg.DefaultTimeout)
	c.SetProxy(cfg.ProxyURL, cfg.NoProxy)
	for k, v := range cfg.Headers {
		c.SetHeader(k, v)
	}
	if !cfg.TLS.IsEmpty() {
		tlsCfg, err := cfg.TLS.Build()
		if err != nil {
			return nil, fmt.Errorf("tls config: %w", err)
		}
		c.SetTLSConfig(tlsCfg)
	}
	return c, nil
}

func tuiCmd() {
	versionFlag := flag.Bool("version", false, "Print version and exit")
	baseURLFlag := flag.String("base-url", "", "History API base URL")
	themeFlag := flag.String("theme", "", "Color theme")
	configFlag := flag.String("config", "", "Path to a config.yaml file")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("msghist %s (%s) built %s\n", version.Version, version.Commit, version.Date)
		os.Exit(0)
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *baseURLFlag != "" {
		cfg.BaseURL = *baseURLFlag
	}
	if *themeFlag != "" {
		cfg.Theme = *themeFlag
	}

	logFile := cfg.LogFile
	if logFile == "" {
		logFile = config.DefaultLogFile()
	}
	logger, closeLog := logging.OpenOrDiscard(logFile, cfg.LogLevel)
	defer closeLog()

	client, err := newClient(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("starting", "version", version.Version, "base_url", client.BaseURL())

	p := tea.NewProgram(
		app.New(cfg, client, logger),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		logger.Error("tui exited", "err", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeLog()
		os.Exit(1)
	}
}
