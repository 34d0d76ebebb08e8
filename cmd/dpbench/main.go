package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-kit/log/level"
	dslog "github.com/grafana/dskit/log"
	"github.com/olekukonko/tablewriter"

	"github.com/scigrid/dpclient/pkg/assemble"
	"github.com/scigrid/dpclient/pkg/config"
	"github.com/scigrid/dpclient/pkg/dperror"
	"github.com/scigrid/dpclient/pkg/perf"
	"github.com/scigrid/dpclient/pkg/recovery"
	"github.com/scigrid/dpclient/pkg/util/log"
)

const toolName = "dpbench"

// exit codes
const (
	exitOK       = 0
	exitConfig   = 1
	exitRecovery = 2
	exitAssembly = 3
	exitIO       = 4
)

var (
	configPath    string
	suitePath     string
	outputDir     string
	logLevel      string
	requestFilter string
	props         = map[string]string{}
)

func init() {
	flag.StringVar(&configPath, "config", "", "Path to the client YAML config file.")
	flag.StringVar(&suitePath, "suite", "", "Path to the test suite YAML file. Required.")
	flag.StringVar(&outputDir, "output-dir", "", "Directory for the result file. Overrides the config value.")
	flag.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error. Overrides the config value.")
	flag.StringVar(&requestFilter, "request", "", "Run only the suite request with this id.")
	flag.Func("prop", "Config override as KEY=VALUE, repeatable. Highest precedence.", func(s string) error {
		k, v, ok := strings.Cut(s, "=")
		if !ok {
			return fmt.Errorf("expected KEY=VALUE, got %q", s)
		}
		props[k] = v
		return nil
	})
}

func main() {
	flag.Parse()
	os.Exit(run())
}

func run() int {
	if suitePath == "" {
		fmt.Fprintln(os.Stderr, "dpbench: -suite is required")
		return exitConfig
	}

	cfg, err := config.Load(configPath, props)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dpbench: %v\n", err)
		return exitConfig
	}
	if outputDir != "" {
		cfg.Bench.OutputDir = outputDir
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	var lvl dslog.Level
	if err := lvl.Set(cfg.LogLevel); err != nil {
		fmt.Fprintf(os.Stderr, "dpbench: %v\n", err)
		return exitConfig
	}
	logger := log.InitLogger(cfg.LogFormat, lvl)

	suite, err := loadSuite(suitePath)
	if err != nil {
		level.Error(logger).Log("msg", "failed to load suite", "err", err)
		return exitConfig
	}

	conn, err := recovery.Dial(cfg.Assembler.Recovery.Dial)
	if err != nil {
		level.Error(logger).Log("msg", "failed to open client connection", "addr", cfg.Assembler.Recovery.Dial.Address, "err", err)
		return exitRecovery
	}
	defer conn.Close()

	assembler := assemble.New(recovery.NewGRPCTransport(conn), cfg.Assembler, logger)

	start := time.Now()
	summary := perf.NewSummary(cfg.Bench.TargetMBps)
	board := perf.NewScoreBoard(cfg.Bench.TargetMBps)

	var out bytes.Buffer
	fmt.Fprintf(&out, "%s run %s\n", toolName, start.UTC().Format(time.RFC3339))
	fmt.Fprintf(&out, "suite          : %s\n", suitePath)
	fmt.Fprintf(&out, "target         : %s\n\n", cfg.Assembler.Recovery.Dial.Address)

	code := exitOK
	ran := 0
	for _, sr := range suite.Requests {
		if requestFilter != "" && sr.ID != requestFilter {
			continue
		}
		if len(sr.Sources) == 0 {
			sr.Sources = cfg.Bench.Sources
		}
		if cfg.Bench.Strict {
			sr.StrictDomains = true
		}

		req, err := sr.toRequest()
		if err != nil {
			level.Error(logger).Log("msg", "invalid suite request", "request", sr.ID, "err", err)
			if code == exitOK {
				code = exitConfig
			}
			continue
		}

		for i := 0; i < cfg.Bench.Repeat; i++ {
			aggregate, res, err := assembler.Process(context.Background(), req)
			if err != nil {
				level.Error(logger).Log("msg", "request failed", "request", req.ID, "run", i, "err", err)
				fmt.Fprintf(&out, "request        : %s\nerror          : %v\n\n", req.ID, err)
				if code == exitOK {
					code = classify(err)
				}
				continue
			}

			ran++
			res.PrintOut(&out)
			summary.Observe(res)
			board.Observe(sr.configName(), res)

			level.Info(logger).Log("msg", "request complete", "request", req.ID, "run", i,
				"blocks", aggregate.BlockCount(), "samples", aggregate.SampleCount(),
				"bytes", res.RecoveredBytes, "rate_mbps", fmt.Sprintf("%.3f", res.DataRateMBps),
				"partial", aggregate.Partial)
		}
	}

	fmt.Fprintln(&out, "--- summary ---")
	summary.PrintOut(&out)

	fileName := fmt.Sprintf("%s-%s.txt", toolName, start.UTC().Format("20060102T150405Z"))
	path := filepath.Join(cfg.Bench.OutputDir, fileName)
	if err := os.WriteFile(path, out.Bytes(), 0o644); err != nil {
		level.Error(logger).Log("msg", "failed to write result file", "path", path, "err", err)
		return exitIO
	}
	level.Info(logger).Log("msg", "results written", "path", path, "runs", ran)

	printScores(board, summary)
	return code
}

// printScores renders the per-configuration table to stdout.
func printScores(board *perf.ScoreBoard, summary *perf.Summary) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"configuration", "runs", "hits", "min", "avg", "max"})

	rows := [][]string{}
	for _, s := range board.ByRate() {
		rows = append(rows, []string{
			s.Name,
			fmt.Sprintf("%d", s.Runs),
			fmt.Sprintf("%d", s.Hits),
			rate(s.MinRateMBps),
			rate(s.AvgRateMBps()),
			rate(s.MaxRateMBps),
		})
	}
	table.AppendBulk(rows)
	table.Render()

	fmt.Printf("total recovered: %s in %d runs (%d partial)\n",
		humanize.Bytes(uint64(summary.TotalBytes)), summary.Count, summary.TotalPartial)
}

func rate(mbps float64) string {
	return fmt.Sprintf("%.2f MB/s", mbps)
}

// classify maps a pipeline error to the tool's exit code.
func classify(err error) int {
	switch dperror.KindOf(err) {
	case dperror.KindConfig, dperror.KindInvalidRequest:
		return exitConfig
	case dperror.KindOrderingViolation, dperror.KindDomainCollision,
		dperror.KindDuplicateSource, dperror.KindInconsistentColumnSize,
		dperror.KindUnsupportedType, dperror.KindMissingResource:
		return exitAssembly
	default:
		return exitRecovery
	}
}
