// Command rnavar drives the RNA-seq variant-calling workflow for one or more
// samples under a shared project root.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	arg "github.com/alexflint/go-arg"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/seqtools/rnavar/internal/execute"
	"github.com/seqtools/rnavar/internal/journal"
	"github.com/seqtools/rnavar/internal/preflight"
	"github.com/seqtools/rnavar/pkg/pipeline"
	"github.com/seqtools/rnavar/pkg/pipeline/drawer"
	"github.com/seqtools/rnavar/pkg/pipeline/measure"
	"github.com/seqtools/rnavar/pkg/pipeline/model"
	"github.com/seqtools/rnavar/pkg/rnaseq"
)

type cliArgs struct {
	Samples  []string `arg:"positional,required" help:"sample names; each needs <sample>_1.fq.gz and <sample>_2.fq.gz under raw_data/"`
	Workroot string   `arg:"-w,--workroot" default:"." help:"project root holding raw_data/, working_data/ and result/"`
	Config   string   `arg:"-c,--config" default:"rnavar.toml" help:"reference bundle and tool path configuration"`
	Procs    int      `arg:"-p,--procs" default:"1" help:"number of samples processed in parallel"`
	DryRun   bool     `arg:"--dry-run" help:"print the commands that would run, without launching them"`
	Plot     string   `arg:"--plot" help:"write the stage graph as Graphviz DOT to this file and exit"`
	Resume   bool     `arg:"--resume" help:"skip stages already recorded as completed in the journal"`
}

func (cliArgs) Description() string {
	return "rnavar runs QC, trimming, two-pass STAR alignment, GATK variant calling and ANNOVAR annotation for paired-end RNA-seq samples."
}

var (
	okMark   = color.New(color.FgGreen).SprintFunc()
	failMark = color.New(color.FgRed).SprintFunc()
	warnMark = color.New(color.FgYellow).SprintFunc()
	dimMark  = color.New(color.Faint).SprintFunc()
)

func main() {
	var a cliArgs
	arg.MustParse(&a)

	logger := log.New(os.Stderr, "[rnavar] ", log.Ldate|log.Ltime)

	err := run(&a, logger)
	if err != nil {
		logger.Printf("error: %v", err)
		os.Exit(1)
	}
}

func run(a *cliArgs, logger *log.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := rnaseq.LoadConfig(a.Config)
	if err != nil {
		return err
	}
	layout := rnaseq.Layout{Root: a.Workroot}

	if a.Plot != "" {
		return plot(a.Samples[0], layout, cfg, a.Plot, logger)
	}

	err = checkTools(cfg, a.DryRun, logger)
	if err != nil {
		return err
	}

	err = checkReferences(cfg, a.DryRun, logger)
	if err != nil {
		return err
	}

	completed := map[string]struct{}{}
	if a.Resume {
		completed, err = journal.Completed(layout.JournalPath())
		if err != nil {
			return errors.Wrap(err, "unable to read journal")
		}
		logger.Printf("resume: %d stage(s) recorded as completed", len(completed))
	}

	type outcome struct {
		sample string
		res    *pipeline.Result
		err    error
	}

	var (
		mu       sync.Mutex
		outcomes []outcome
	)

	grp := &errgroup.Group{}
	grp.SetLimit(a.Procs)
	for _, sample := range a.Samples {
		sample := sample
		grp.Go(func() error {
			res, runErr := runSample(ctx, sample, layout, cfg, a, completed, logger)
			mu.Lock()
			outcomes = append(outcomes, outcome{sample: sample, res: res, err: runErr})
			mu.Unlock()

			// a failing sample must not abort its siblings
			return nil
		})
	}
	_ = grp.Wait()

	failures := 0
	for _, oc := range outcomes {
		if oc.res != nil {
			printSummary(oc.sample, oc.res)
		}
		if oc.err != nil {
			failures++
			reportFailure(oc.sample, oc.err, logger)
		}
	}

	if failures > 0 {
		return errors.Errorf("%d of %d sample(s) failed", failures, len(a.Samples))
	}
	logger.Printf("all %d sample(s) completed", len(a.Samples))

	return nil
}

// runSample builds and runs the full stage chain for one sample.
func runSample(ctx context.Context, sample string, layout rnaseq.Layout, cfg *rnaseq.Config, a *cliArgs, completed map[string]struct{}, logger *log.Logger) (*pipeline.Result, error) {
	if !a.DryRun {
		err := checkFastq(sample, layout)
		if err != nil {
			return nil, err
		}
	}

	j, err := journal.Open(layout.JournalPath(), sample)
	if err != nil {
		return nil, errors.Wrap(err, "unable to open journal")
	}
	defer j.Close()

	p, err := rnaseq.Build(sample, layout, cfg, journal.PipelineJournal(j))
	if err != nil {
		return nil, err
	}

	if a.Resume {
		p.Skip = func(stageName string) bool {
			_, done := completed[journal.Key(sample, stageName)]

			return done
		}
	}
	if a.DryRun {
		p.Runner = execute.DryRun{W: os.Stdout}
	}

	logger.Printf("%s: starting run %s (%d stages)", sample, j.Run(), len(p.Stages()))

	return p.Run(ctx)
}

// plot renders the stage graph of a single sample without launching anything.
func plot(sample string, layout rnaseq.Layout, cfg *rnaseq.Config, dotFile string, logger *log.Logger) error {
	msr := measure.NewDefaultMeasure()
	opts := []model.PipelineOption{
		measure.PipelineMeasure(msr),
		drawer.PipelineDrawer(drawer.NewDOTDrawer(dotFile), msr),
	}

	p, err := rnaseq.Build(sample, layout, cfg, opts...)
	if err != nil {
		return err
	}
	p.Runner = execute.DryRun{W: io.Discard}

	_, err = p.Run(context.Background())
	if err != nil {
		return err
	}
	logger.Printf("stage graph written to %s", dotFile)

	return nil
}

// checkTools prints a checklist of the external tools and fails when any is
// missing, unless this is a dry run.
func checkTools(cfg *rnaseq.Config, dryRun bool, logger *log.Logger) error {
	statuses := preflight.Tools(cfg.Tools.Resolved())
	for _, st := range statuses {
		if st.Found {
			fmt.Fprintf(os.Stderr, " %s %-16s %s\n", okMark("✓"), st.Name, dimMark(st.Path))
		} else {
			fmt.Fprintf(os.Stderr, " %s %-16s %s\n", failMark("✗"), st.Name, failMark("not found"))
		}
	}

	missing := preflight.MissingTools(statuses)
	if len(missing) == 0 {
		return nil
	}
	if dryRun {
		logger.Printf("%s missing tool(s): %v", warnMark("warning:"), missing)

		return nil
	}

	return errors.Errorf("missing tool(s): %v", missing)
}

// checkReferences verifies the reference bundle exists before any stage
// launches. A missing bundle is a configuration problem, not a tool failure.
func checkReferences(cfg *rnaseq.Config, dryRun bool, logger *log.Logger) error {
	err := preflight.References(cfg.Reference.Files())
	if err == nil {
		return nil
	}
	if dryRun {
		logger.Printf("%s %v", warnMark("warning:"), err)

		return nil
	}

	return err
}

func checkFastq(sample string, layout rnaseq.Layout) error {
	for _, fq := range []string{layout.FastqR1(sample), layout.FastqR2(sample)} {
		err := preflight.FastqGzip(fq)
		if err != nil {
			return errors.Wrapf(err, "sample %s", sample)
		}
	}

	return nil
}

func printSummary(sample string, res *pipeline.Result) {
	fmt.Fprintf(os.Stderr, "%s (%s)\n", sample, res.Duration)
	for _, sr := range res.Stages {
		mark := okMark("✓")
		detail := sr.Duration.String()

		switch sr.Status {
		case model.StatusFailed:
			mark = failMark("✗")
			detail = sr.Err.Error()
		case model.StatusSkipped:
			mark = warnMark("-")
			detail = "skipped"
		case model.StatusNotRun:
			mark = dimMark("·")
			detail = "not run"
		}

		fmt.Fprintf(os.Stderr, " %s %-18s %s\n", mark, sr.Name, detail)
	}
}

// reportFailure prints the failing stage together with the exit status of its
// child process when one is available.
func reportFailure(sample string, err error, logger *log.Logger) {
	var exErr *execute.Error
	if errors.As(err, &exErr) {
		logger.Printf("%s: stage %s (%s) exited with status %d", sample, exErr.Stage, exErr.Tool(), exErr.ExitCode)
		if exErr.Stderr != "" {
			logger.Printf("%s: last stderr output:\n%s", sample, exErr.Stderr)
		}

		return
	}

	logger.Printf("%s: %v", sample, err)
}
