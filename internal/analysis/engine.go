// Package analysis runs the full estimation pipeline over one set of raw
// counters: aggregation, posterior, ratios, variance verdict and conclusion.
package analysis

import (
	"context"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"slotsense/domain/evidence"
	"slotsense/domain/stats"
	"slotsense/internal/aggregator"
	"slotsense/internal/conclusion"
	"slotsense/internal/estimator"
	"slotsense/internal/logging"
	"slotsense/internal/rates"
	"slotsense/internal/ratio"
	"slotsense/internal/session"
	"slotsense/internal/variance"
)

// Engine is stateless apart from its rate table and is safe for concurrent use
type Engine struct {
	rates     rates.Table
	estimator *estimator.Estimator
	judge     *variance.Judge
	logger    *zap.Logger
	workers   int
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the engine logger
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = logging.OrNop(l) }
}

// WithBatchWorkers bounds AnalyzeBatch concurrency
func WithBatchWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// NewEngine creates an engine over the given rate table
func NewEngine(table rates.Table, opts ...Option) *Engine {
	e := &Engine{
		rates:     table,
		estimator: estimator.New(table),
		judge:     variance.New(table),
		logger:    zap.NewNop(),
		workers:   runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rates returns the table the engine was built with
func (e *Engine) Rates() rates.Table {
	return e.rates
}

// Analyze computes a fresh result from the complete counters. The same
// counters always produce the same result, fingerprint included.
func (e *Engine) Analyze(c evidence.Counters) stats.AnalysisResult {
	set := aggregator.Aggregate(c)

	posterior := e.estimator.Posterior(set)
	verdict := e.judge.Judge(set)

	result := stats.AnalysisResult{
		Posterior:  posterior,
		Ratios:     ratio.Report(posterior),
		Variance:   verdict,
		Conclusion: conclusion.Synthesize(posterior, verdict),
		Channels:   set.Channels(),
		State:      session.Resolve(c.Game),
	}

	fp, err := result.ComputeFingerprint()
	if err != nil {
		e.logger.Warn("failed to fingerprint analysis result", zap.Error(err))
	} else {
		result.Fingerprint = fp
	}

	e.logger.Debug("analysis complete",
		zap.Int("channels", len(result.Channels)),
		zap.String("most_likely", result.Conclusion.MostLikelySetting.String()),
		zap.Float64("max_probability", result.Conclusion.MaxProbability),
		zap.String("recommendation", string(result.Conclusion.Recommendation)),
		zap.Float64("variance_ratio", verdict.OverallRatio),
	)

	return result
}

// AnalyzeBatch analyzes every input concurrently and returns results in
// input order. It stops early when ctx is cancelled.
func (e *Engine) AnalyzeBatch(ctx context.Context, inputs []evidence.Counters) ([]stats.AnalysisResult, error) {
	results := make([]stats.AnalysisResult, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i := range inputs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = e.Analyze(inputs[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.logger.Info("batch analysis complete", zap.Int("count", len(inputs)))
	return results, nil
}
