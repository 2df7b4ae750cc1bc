// File: pkg/concat/combine.go
package concat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PatternPrompt is shown in interactive mode when no pattern was supplied.
const PatternPrompt = "Enter a file pattern (or 'all' for every file): "

// Runner sequences one concatenation run.
type Runner struct {
	Prompter LinePrompter // Required in interactive mode.
	Sink     MessageSink
	Logger   *zap.Logger
}

// Run executes the pipeline for opts:
//
//  1. resolve the output target
//  2. pre-flight: conflict check, parent creation, output creation
//  3. interactive pattern prompt when no patterns were given
//  4. match and build the file set
//  5. interactive per-file confirmation
//  6. write
//  7. report the summary
//
// EmptySelection removes the output created in step 2 before returning.
// Declining every file interactively is not an error: the output then holds
// only the end marker.
func (r *Runner) Run(ctx context.Context, opts RunOptions) (Summary, error) {
	var summary Summary
	startTime := time.Now()

	sink := r.Sink
	if sink == nil {
		sink = discardSink{}
	}
	logger := orNop(r.Logger).With(zap.String("runID", uuid.NewString()))
	if opts.Interactive && r.Prompter == nil {
		return summary, fmt.Errorf("interactive mode requires a prompter")
	}

	target, err := ResolveOutput(opts.Output)
	if err != nil {
		return summary, fmt.Errorf("failed to resolve output path: %w", err)
	}
	logger.Info("Starting concatenation",
		zap.String("output", target.Path),
		zap.Strings("patterns", opts.Patterns),
		zap.Bool("interactive", opts.Interactive),
		zap.Bool("describe", opts.Describe))

	writer := NewConcatWriter(target, opts.Describe, sink, logger)
	if err := writer.Preflight(); err != nil {
		return summary, err
	}

	patterns := opts.Patterns
	if opts.Interactive && len(patterns) == 0 {
		answer, err := r.Prompter.Prompt(PatternPrompt)
		if err != nil {
			_ = writer.Abort()
			return summary, promptError(err, "", "failed to read pattern")
		}
		if !IsAllSentinel(answer) {
			patterns = []string{strings.TrimSpace(answer)}
		}
	}

	set, built, err := r.collect(patterns, target, opts.Exclude, sink, logger)
	summary.SkippedSelf = built.SelfExcluded
	if err != nil {
		_ = writer.Abort()
		return summary, err
	}
	summary.Matched = len(set)
	summary.Selected = len(set)

	if opts.Interactive {
		set, summary.Declined, err = FilterSelection(set, r.Prompter, logger)
		if err != nil {
			_ = writer.Abort()
			return summary, err
		}
		summary.Selected = len(set)
		if len(set) == 0 {
			sink.Info("No files selected; nothing to concatenate.")
		}
	}

	stats, err := writer.Write(ctx, set)
	summary.Written = stats.Written
	summary.SkippedSelf += stats.SkippedSelf
	summary.SkippedUnreadable = stats.SkippedUnreadable
	summary.Partial = stats.Partial
	summary.Bytes = stats.Bytes
	if closeErr := writer.Close(); closeErr != nil && err == nil {
		err = newError(ErrOutputWrite, target.Path, closeErr, "failed to close output %s", target.Path)
	}
	if err != nil {
		return summary, err
	}

	sink.Success(fmt.Sprintf("Wrote %d file(s) to %s (%d skipped)",
		summary.Written, target.Path, summary.SkippedSelf+summary.SkippedUnreadable))
	logger.Info("Concatenation completed",
		zap.Int("matched", summary.Matched),
		zap.Int("selected", summary.Selected),
		zap.Int("declined", summary.Declined),
		zap.Int("written", summary.Written),
		zap.Int("skippedSelf", summary.SkippedSelf),
		zap.Int("skippedUnreadable", summary.SkippedUnreadable),
		zap.Int("partial", summary.Partial),
		zap.Duration("elapsed", time.Since(startTime)))
	return summary, nil
}

// collect resolves patterns (or every file when there are none) and builds
// the file set. Pattern directory problems are reported and skipped.
func (r *Runner) collect(patterns []string, target OutputTarget, exclude []string, sink MessageSink, logger *zap.Logger) (FileSet, BuildStats, error) {
	var groups [][]string
	if len(patterns) == 0 {
		paths, err := ListAll(logger)
		if err != nil {
			sink.Warn(err.Error())
		}
		groups = append(groups, paths)
	} else {
		for _, raw := range patterns {
			paths, err := MatchPattern(ParsePattern(raw), logger)
			if err != nil {
				sink.Warn(fmt.Sprintf("Pattern %q skipped: %v", raw, err))
				logger.Warn("Pattern skipped", zap.String("pattern", raw), zap.Error(err))
				continue
			}
			groups = append(groups, paths)
		}
	}

	set, stats, err := NewFileSetBuilder(target, exclude, logger).Build(groups...)
	if stats.SelfExcluded > 0 {
		sink.Info(fmt.Sprintf("Excluding output file %s from the selection", target.Path))
	}
	return set, stats, err
}
