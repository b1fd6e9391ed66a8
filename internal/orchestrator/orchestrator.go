// Package orchestrator drives the full pipeline for a repository: parsing
// every Java source, discovering legacy XML bean
// contexts, classifying and building one ParsedApplication per
// @SpringBootApplication class (or a single aggregate when none exists),
// running Pass 2 resolution, and finally (across every repository handed to
// AnalyzeRepositories together) cross-application resolution. Cancellation
// is checked between files within a repository and between repositories.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/konveyor/java-arch-analyzer/internal/astfrontend"
	"github.com/konveyor/java-arch-analyzer/internal/classify"
	"github.com/konveyor/java-arch-analyzer/internal/component"
	"github.com/konveyor/java-arch-analyzer/internal/crossapp"
	"github.com/konveyor/java-arch-analyzer/internal/fsdiscovery"
	"github.com/konveyor/java-arch-analyzer/internal/model"
	"github.com/konveyor/java-arch-analyzer/internal/progress"
	"github.com/konveyor/java-arch-analyzer/internal/properties"
	"github.com/konveyor/java-arch-analyzer/internal/resolver"
	"github.com/konveyor/java-arch-analyzer/internal/valuefields"
	"github.com/konveyor/java-arch-analyzer/internal/xmlbeans"
)

// Option configures optional AnalyzeRepository/AnalyzeRepositories behavior.
type Option func(*options)

type options struct {
	reporter progress.Reporter
}

// WithReporter reports pipeline stage events to r as analysis proceeds. A
// nil Reporter (the default, when no WithReporter option is given) reports
// nothing.
func WithReporter(r progress.Reporter) Option {
	return func(o *options) { o.reporter = r }
}

func resolveOptions(opts []Option) *options {
	o := &options{}
	for _, fn := range opts {
		fn(o)
	}
	return o
}

// Status is the per-application analysis outcome: never an aborted run,
// always a reported degree of success.
type Status string

const (
	StatusSuccess        Status = "SUCCESS"
	StatusPartialSuccess Status = "PARTIAL_SUCCESS"
	StatusFailed         Status = "FAILED"
)

// Result is one repository's pipeline output: every ParsedApplication it
// produced (cross-application fields unresolved until ResolveAcrossApps
// runs) plus a Status per application, keyed by AppKey.
type Result struct {
	RepoPath     string
	Applications []*model.ParsedApplication
	Status       map[string]Status
}

// stats tracks per-application skip counts used to derive Status.
type stats struct {
	parsed  int
	skipped int
}

// AnalyzeRepository runs file discovery, Java parsing, property/value-field
// resolution, component classification, Pass 1 capture and Pass 2 DI
// resolution over one repository. Canonical id generation and graph
// emission happen downstream of this function, not here. It never returns
// an error for a per-file or per-type failure — those are logged and
// skipped — only when ctx is cancelled or the package selector cannot be
// built. A root path that does not exist yields a single aggregate
// application with Status FAILED.
func AnalyzeRepository(ctx context.Context, repoPath string, cfg *classify.ConfigStore, log logr.Logger, opts ...Option) (*Result, error) {
	o := resolveOptions(opts)
	walker := fsdiscovery.NewWalker(log)

	progress.Report(o.reporter, progress.Event{Stage: progress.StageDiscovery, Message: repoPath})
	units, skippedFiles := parseJavaSources(ctx, walker, repoPath, log)
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	progress.Report(o.reporter, progress.Event{Stage: progress.StageParsing, Message: repoPath, Current: len(units), Total: len(units)})

	props := properties.Load(ctx, walker, log, repoPath)
	properties.NormalizeLegacyKeys(props)

	selector, err := classify.NewPackageSelector(cfg.PackageSelectorExpr())
	if err != nil {
		return nil, fmt.Errorf("compiling package selector: %w", err)
	}

	typeIndex := component.BuildTypeIndex(units)
	feignClients := component.CollectFeignClients(units)

	xmlBeanComponents := scanXMLBeanContexts(ctx, walker, repoPath, log)

	boundaries := springBootBoundaries(units)

	result := &Result{RepoPath: repoPath, Status: map[string]Status{}}
	for _, b := range boundaries {
		appStats := &stats{skipped: skippedFiles}
		app := buildApplication(ctx, b, repoPath, units, props, cfg, selector, typeIndex, feignClients, xmlBeanComponents, appStats, log)
		progress.Report(o.reporter, progress.Event{Stage: progress.StageClassification, Message: app.AppKey()})
		resolver.Resolve(app, log)
		progress.Report(o.reporter, progress.Event{Stage: progress.StageResolution, Message: app.AppKey()})
		result.Applications = append(result.Applications, app)
		result.Status[app.AppKey()] = deriveStatus(app, appStats)
	}
	return result, nil
}

// AnalyzeRepositories runs AnalyzeRepository over every repoPath in
// parallel, then performs cross-application resolution once across every
// application from every repository, since an external call or Kafka topic
// may cross a repository boundary.
func AnalyzeRepositories(ctx context.Context, repoPaths []string, cfg *classify.ConfigStore, log logr.Logger, opts ...Option) ([]*Result, error) {
	o := resolveOptions(opts)
	results := make([]*Result, len(repoPaths))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range repoPaths {
		i, path := i, path
		g.Go(func() error {
			r, err := AnalyzeRepository(gctx, path, cfg, log, opts...)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var allApps []*model.ParsedApplication
	for _, r := range results {
		allApps = append(allApps, r.Applications...)
	}

	progress.Report(o.reporter, progress.Event{Stage: progress.StageCrossApp, Total: len(allApps)})
	registry := crossapp.BuildEndpointRegistry(allApps)
	crossapp.ResolveExternalCalls(allApps, registry, log)
	consumers := crossapp.BuildConsumerRegistry(allApps)
	crossapp.ResolveKafkaCalls(allApps, consumers, cfg, log)

	progress.Report(o.reporter, progress.Event{Stage: progress.StageComplete, Total: len(allApps)})
	return results, nil
}

func parseJavaSources(ctx context.Context, walker *fsdiscovery.Walker, root string, log logr.Logger) ([]*astfrontend.CompilationUnit, int) {
	files := walker.ByExtension(ctx, root, ".java")
	sort.Strings(files)

	parser := astfrontend.NewParser()
	var units []*astfrontend.CompilationUnit
	skipped := 0
	for _, f := range files {
		if ctx.Err() != nil {
			break
		}
		src, err := os.ReadFile(f)
		if err != nil {
			log.V(2).Info("skipping unreadable source file", "file", f, "error", err)
			skipped++
			continue
		}
		cu, err := parser.Parse(ctx, f, src)
		if err != nil {
			log.V(2).Info("skipping file that failed to parse", "file", f, "error", err)
			skipped++
			continue
		}
		units = append(units, cu)
	}
	return units, skipped
}

func scanXMLBeanContexts(ctx context.Context, walker *fsdiscovery.Walker, root string, log logr.Logger) []*model.ParsedComponent {
	var out []*model.ParsedComponent
	for _, f := range walker.AllFiles(ctx, root) {
		if ctx.Err() != nil {
			break
		}
		if !fsdiscovery.LooksLikeXMLBeanContext(f) {
			continue
		}
		c, err := xmlbeans.Scan(f, "")
		if err != nil {
			log.V(2).Info("skipping malformed xml bean context", "file", f, "error", err)
			continue
		}
		out = append(out, c)
	}
	return out
}

// boundary is one @SpringBootApplication class found across the
// repository's compilation units, or the implicit non-Spring aggregate
// when none was found.
type boundary struct {
	mainClassSimpleName string
	mainClassPackage    string
	isSpringBoot        bool
	lineRange           model.LineRange
}

func springBootBoundaries(units []*astfrontend.CompilationUnit) []boundary {
	var found []boundary
	for _, cu := range units {
		for _, td := range cu.Types {
			if astfrontend.HasAnnotation(td.Annotations, "SpringBootApplication") {
				found = append(found, boundary{
					mainClassSimpleName: td.Name,
					mainClassPackage:    cu.Package,
					isSpringBoot:        true,
					lineRange:           td.LineRange,
				})
			}
		}
	}
	if len(found) == 0 {
		return []boundary{{isSpringBoot: false}}
	}
	return found
}

func buildApplication(
	ctx context.Context,
	b boundary,
	repoPath string,
	units []*astfrontend.CompilationUnit,
	props properties.Properties,
	cfg *classify.ConfigStore,
	selector *classify.PackageSelector,
	typeIndex map[string]*astfrontend.TypeDecl,
	feignClients map[string]*astfrontend.TypeDecl,
	xmlBeanComponents []*model.ParsedComponent,
	st *stats,
	log logr.Logger,
) *model.ParsedApplication {
	app := model.NewParsedApplication()
	app.MainClassSimpleName = b.mainClassSimpleName
	app.MainClassPackage = b.mainClassPackage
	app.IsSpringBoot = b.isSpringBoot
	app.LineRange = b.lineRange
	app.RootPath = repoPath

	valueFields := valuefields.Build(units, props, b.mainClassPackage)

	for _, cu := range units {
		if ctx.Err() != nil {
			break
		}
		for _, td := range cu.Types {
			if !classify.InBasePackage(td.QualifiedName, b.mainClassPackage) {
				continue
			}
			ctype := classify.Classify(td)
			if ctype == model.Unknown {
				continue
			}
			c := component.Build(ctype, td, cu, b.mainClassPackage, cfg, selector, valueFields, typeIndex, feignClients)
			app.AddComponent(c)
			st.parsed++
		}
	}

	for _, c := range xmlBeanComponents {
		app.AddComponent(c)
	}

	return app
}

func deriveStatus(app *model.ParsedApplication, st *stats) Status {
	if len(app.ComponentsInOrder()) == 0 {
		return StatusFailed
	}
	if st.skipped > 0 {
		return StatusPartialSuccess
	}
	return StatusSuccess
}
