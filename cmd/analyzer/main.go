package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	logrusr "github.com/bombsimon/logrusr/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"github.com/konveyor/java-arch-analyzer/internal/classify"
	"github.com/konveyor/java-arch-analyzer/internal/graph"
	"github.com/konveyor/java-arch-analyzer/internal/orchestrator"
	"github.com/konveyor/java-arch-analyzer/internal/progress"
	"github.com/konveyor/java-arch-analyzer/tracing"
)

const exitOnErrorCode = 3

var (
	repoPaths      []string
	outputFile     string
	configFile     string
	logLevel       int
	enableJaeger   bool
	errorOnFailed  bool
	progressOutput string

	rootCmd = &cobra.Command{
		Use:   "analyze",
		Short: "Extract a Spring Boot application's architecture graph from source",
		Run: func(c *cobra.Command, args []string) {
			run()
		},
	}
)

func init() {
	rootCmd.Flags().StringArrayVar(&repoPaths, "repo", nil, "path to a repository to analyze (repeatable)")
	rootCmd.Flags().StringVar(&outputFile, "output-file", "analysis.jsonl", "filepath to store the emitted node/edge batches, one JSON object per line")
	rootCmd.Flags().StringVar(&configFile, "config", "", "path to a classification config file (optional, falls back to built-in defaults)")
	rootCmd.Flags().IntVar(&logLevel, "verbose", 5, "level for logging output")
	rootCmd.Flags().BoolVar(&enableJaeger, "enable-jaeger", false, "enable tracer exports to a local jaeger collector")
	rootCmd.Flags().BoolVar(&errorOnFailed, "error-on-failed", false, "exit with 3 if any analyzed application has FAILED status")
	rootCmd.Flags().StringVar(&progressOutput, "progress-output", "none", "progress event format written to stderr: none, text, or json")

	rootCmd.AddCommand(SchemaCmd())
	rootCmd.AddCommand(MCPCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

func run() {
	if err := validateFlags(); err != nil {
		fmt.Printf("%v\n", err)
		os.Exit(1)
	}

	logrusLog := logrus.New()
	logrusLog.SetOutput(os.Stdout)
	logrusLog.SetFormatter(&logrus.TextFormatter{})
	logrusLog.SetLevel(logrus.Level(logLevel))
	log := logrusr.New(logrusLog)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if enableJaeger {
		tp, err := tracing.InitTracerProvider(log)
		if err != nil {
			log.Error(err, "failed to initialize tracing")
			os.Exit(1)
		}
		defer tracing.Shutdown(ctx, log, tp)

		var span trace.Span
		ctx, span = tracing.StartNewSpan(ctx, "analyze")
		defer span.End()
	}

	cfg := classify.NewDefaultConfigStore()
	if configFile != "" {
		loaded, err := classify.LoadConfigStore(configFile)
		if err != nil {
			log.Error(err, "unable to load classification config")
			os.Exit(1)
		}
		cfg = loaded
	}

	var reporter progress.Reporter
	switch progressOutput {
	case "text":
		reporter = progress.NewTextReporter(os.Stderr)
	case "json":
		reporter = progress.NewJSONReporter(os.Stderr)
	}

	results, err := orchestrator.AnalyzeRepositories(ctx, repoPaths, cfg, log, orchestrator.WithReporter(reporter))
	if err != nil {
		log.Error(err, "analysis failed")
		os.Exit(1)
	}

	sink := graph.NewJSONLSink(outputFile)
	anyFailed := false
	var statusLines []string
	for _, r := range results {
		for _, app := range r.Applications {
			progress.Report(reporter, progress.Event{Stage: progress.StageEmission, Message: app.AppKey()})
			batch := graph.Emit(app)
			if err := sink.UpsertNodes(ctx, batch.Nodes); err != nil {
				log.Error(err, "failed to write nodes", "repo", r.RepoPath)
				os.Exit(1)
			}
			if err := sink.UpsertEdges(ctx, batch.Edges); err != nil {
				log.Error(err, "failed to write edges", "repo", r.RepoPath)
				os.Exit(1)
			}
			status := r.Status[app.AppKey()]
			if status == orchestrator.StatusFailed {
				anyFailed = true
			}
			statusLines = append(statusLines, fmt.Sprintf("%s\t%s\t%s", r.RepoPath, app.AppKey(), status))
		}
	}

	sort.Strings(statusLines)
	for _, line := range statusLines {
		fmt.Println(line)
	}

	if errorOnFailed && anyFailed {
		os.Exit(exitOnErrorCode)
	}
}

func validateFlags() error {
	if len(repoPaths) == 0 {
		return fmt.Errorf("at least one --repo path is required")
	}
	for _, p := range repoPaths {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("unable to find repository path %s: %w", p, err)
		}
	}
	return nil
}
