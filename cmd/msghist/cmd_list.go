package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/sadopc/msghist/internal/core/history"
	"github.com/sadopc/msghist/internal/runner"
)

type listOptions struct {
	page    int
	size    int
	sender  string
	content string
	status  string
	start   string
	end     string
	sort    string
}

// buildQuery validates the list flags and turns them into a query.
func buildQuery(o listOptions, loc *time.Location) (history.Query, error) {
	if o.page < 1 {
		return history.Query{}, fmt.Errorf("page must be at least 1")
	}
	if o.size < 1 {
		return history.Query{}, fmt.Errorf("size must be at least 1")
	}
	statuses, err := history.ParseStatuses(o.status)
	if err != nil {
		return history.Query{}, err
	}
	rng, err := history.ParseRange(o.start, o.end, loc)
	if err != nil {
		return history.Query{}, err
	}
	sort, err := history.ParseSort(o.sort)
	if err != nil {
		return history.Query{}, err
	}
	return history.Query{
		PageIndex: o.page,
		PageSize:  o.size,
		Sender:    o.sender,
		Content:   o.content,
		Statuses:  statuses,
		Range:     rng,
		Sort:      sort,
	}, nil
}

func listCmd() {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	var o listOptions
	fs.IntVar(&o.page, "page", 1, "Page index (1-based)")
	fs.IntVar(&o.size, "size", 0, "Page size (default from config)")
	fs.StringVar(&o.sender, "sender", "", "Filter by sender substring")
	fs.StringVar(&o.content, "content", "", "Filter by content substring")
	fs.StringVar(&o.status, "status", "", "Filter by status: true, false or true,false")
	fs.StringVar(&o.start, "start", "", "Range start, "+history.DateTimeLayout)
	fs.StringVar(&o.end, "end", "", "Range end, "+history.DateTimeLayout)
	fs.StringVar(&o.sort, "sort", "", "Sort: +field or -field (id, created_at, received_at)")
	outputFlag := fs.String("output", "text", "Output format: text, json")
	detailFlag := fs.Bool("detail", false, "Print message, request, response and error per record")
	baseURLFlag := fs.String("base-url", "", "History API base URL")
	localeFlag := fs.String("locale", "", "Label locale: zh, en")
	timeoutFlag := fs.Duration("timeout", 0, "Request timeout (e.g., 5s)")
	configFlag := fs.String("config", "", "Path to a config.yaml file")
	curlFlag := fs.Bool("curl", false, "Print the request as a curl command instead of sending it")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: msghist list [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Fetch one page of history records and print it.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  msghist list --page 2 --size 50\n")
		fmt.Fprintf(os.Stderr, "  msghist list --sender grafana --status false --detail\n")
		fmt.Fprintf(os.Stderr, "  msghist list --sort -received_at --output json\n")
		fmt.Fprintf(os.Stderr, "  msghist list --status false --curl\n")
	}

	if err := fs.Parse(os.Args[2:]); err != nil {
		os.Exit(2)
	}

	cfg, err := loadConfig(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(2)
	}
	if *baseURLFlag != "" {
		cfg.BaseURL = *baseURLFlag
	}
	if *localeFlag != "" {
		cfg.Locale = *localeFlag
	}
	if *timeoutFlag > 0 {
		cfg.DefaultTimeout = *timeoutFlag
	}
	if o.size == 0 {
		o.size = cfg.PageSize
	}

	if *outputFlag != "text" && *outputFlag != "json" {
		fmt.Fprintf(os.Stderr, "Error: unsupported output format %q (use text or json)\n", *outputFlag)
		os.Exit(2)
	}

	loc := cfg.Location()
	q, err := buildQuery(o, loc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	client, err := newClient(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	if *curlFlag {
		cmd, err := client.AsCurl(q)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(2)
		}
		fmt.Println(cmd)
		return
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	labels := history.LabelsFor(cfg.Locale)
	n := history.NewNormalizer(labels, loc, cfg.TimeLayout)
	res, err := runner.Run(ctx, client, n, q)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		cancel()
		os.Exit(1)
	}

	switch *outputFlag {
	case "json":
		if err := runner.PrintJSON(os.Stdout, res, labels, *detailFlag); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
			cancel()
			os.Exit(2)
		}
	default:
		runner.PrintText(os.Stdout, res, labels, *detailFlag)
	}
}
