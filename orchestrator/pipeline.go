package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
	"golang.org/x/sync/errgroup"

	cfg "github.com/maastricht-university/labrefine/config"
	"github.com/maastricht-university/labrefine/phoneme"
	"github.com/maastricht-university/labrefine/refine"
)

var ErrInputMissing = errors.New("input directory does not exist")

type Pipeline struct {
	cfg    *cfg.Root
	log    logrus.FieldLogger
	merger *refine.Merger

	// progress bar sink; stderr unless replaced
	progressOut io.Writer
}

// NewPipeline loads the configured phoneme table once; all sources share it.
func NewPipeline(c *cfg.Root, log logrus.FieldLogger) (*Pipeline, error) {
	table := phoneme.Default()
	if c.Refine.PhonemeTable != "" {
		t, err := phoneme.LoadTableFile(c.Refine.PhonemeTable)
		if err != nil {
			return nil, fmt.Errorf("phoneme table: %w", err)
		}
		table = t
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Pipeline{
		cfg:         c,
		log:         log,
		merger:      refine.NewMerger(table, c.Refine.MaxGapSeconds),
		progressOut: os.Stderr,
	}, nil
}

// Run refines every matching label file in inputDir. Per-file failures are
// recorded in the report and never abort the batch; only setup errors and
// ctx cancellation are returned.
func (p *Pipeline) Run(ctx context.Context, inputDir string) (*Report, error) {
	st, err := os.Stat(inputDir)
	if err != nil || !st.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrInputMissing, inputDir)
	}

	outDir := resolveOutputDir(inputDir, p.cfg.Paths.Outputs)
	rep := &Report{
		InputDir:      inputDir,
		OutputDir:     outDir,
		MaxGapSeconds: p.cfg.Refine.MaxGapSeconds,
	}

	files, err := discover(inputDir, p.cfg.Refine.Pattern)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", inputDir, err)
	}
	if len(files) == 0 {
		p.log.WithFields(logrus.Fields{"dir": inputDir, "pattern": p.cfg.Refine.Pattern}).Warn("no label files found")
		rep.GeneratedAt = time.Now()
		return rep, nil
	}
	if err := mkOutputDir(outDir); err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}
	p.log.WithFields(logrus.Fields{"count": len(files), "output": outDir}).Info("found label files")

	var bar *mpb.Bar
	var progress *mpb.Progress
	if p.cfg.Pipeline.Progress {
		progress = mpb.NewWithContext(ctx, mpb.WithWidth(64), mpb.WithOutput(p.progressOut))
		bar = progress.AddBar(int64(len(files)),
			mpb.PrependDecorators(
				decor.Name("Refining: "),
				decor.CountersNoUnit("%d / %d"),
			),
			mpb.AppendDecorators(decor.Percentage()),
		)
	}

	results := make([]FileResult, len(files))
	g := new(errgroup.Group)
	g.SetLimit(p.cfg.Pipeline.Workers)
	for i, path := range files {
		if ctx.Err() != nil {
			break
		}
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = RefineSource(p.merger, path, outDir)
			p.logResult(results[i])
			if bar != nil {
				bar.Increment()
			}
			return nil
		})
	}
	runErr := g.Wait()
	if progress != nil {
		if runErr != nil || ctx.Err() != nil {
			bar.Abort(false)
		}
		progress.Wait()
	}
	if runErr == nil {
		runErr = ctx.Err()
	}

	for _, r := range results {
		if r.Name != "" {
			rep.Files = append(rep.Files, r)
		}
	}
	rep.tally()
	rep.GeneratedAt = time.Now()

	if p.cfg.Refine.WriteReport {
		path, err := persist(rep)
		if err != nil {
			p.log.WithError(err).Error("write report")
		} else {
			p.log.WithField("path", path).Info("report saved")
		}
	}

	p.log.WithFields(logrus.Fields{
		"processed": rep.Processed,
		"empty":     rep.Empty,
		"failed":    rep.Failed,
		"output":    outDir,
	}).Info("merging completed")
	return rep, runErr
}

func (p *Pipeline) logResult(r FileResult) {
	l := p.log.WithField("file", r.Name)
	switch r.Status {
	case StatusOK:
		l.WithFields(logrus.Fields{
			"original": r.Original,
			"merged":   r.Merged,
			"saved":    r.Output,
		}).Info("refined")
	case StatusEmpty:
		l.Warn("empty file")
	case StatusFailed:
		l.WithField("error", r.Err).Error("processing failed")
	}
}
