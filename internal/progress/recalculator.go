// Package progress derives a project's progress from its tasks and pushes
// the result to the Project Service.
package progress

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"teamtrack/internal/metrics"
	"teamtrack/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// Push outcomes reported to metrics, in addition to the models.ProgressState values.
const pushFailed = "failed"

// maxConcurrentPushes bounds RecalculateAll.
const maxConcurrentPushes = 4

// TotalsReader sums task progress for a project.
type TotalsReader interface {
	ProgressTotals(ctx context.Context, projectID primitive.ObjectID) (sum, count int64, err error)
}

// Pusher stores a computed progress value on the owning project.
type Pusher interface {
	SetProgress(ctx context.Context, projectID primitive.ObjectID, progress int, version int64) (*models.ProgressResult, error)
}

// Mean returns the rounded mean of count values summing to sum, or 0 when
// there are no values. Halves round away from zero.
func Mean(sum, count int64) int {
	if count <= 0 {
		return 0
	}
	return int(math.Round(float64(sum) / float64(count)))
}

// Recalculator recomputes project progress.
type Recalculator struct {
	seq     Sequencer
	tasks   TotalsReader
	pusher  Pusher
	log     *slog.Logger
	metrics *metrics.Metrics
}

// NewRecalculator creates a Recalculator.
func NewRecalculator(seq Sequencer, tasks TotalsReader, pusher Pusher, log *slog.Logger, m *metrics.Metrics) *Recalculator {
	return &Recalculator{
		seq:     seq,
		tasks:   tasks,
		pusher:  pusher,
		log:     log,
		metrics: m,
	}
}

// Recalculate recomputes and pushes the progress of one project.
//
// The version is drawn before task state is read, so a push carrying a
// higher version never reflects older task state than a lower one.
//
// A stale answer whose stored version is not below the drawn one means the
// sequence fell behind the project, e.g. after the counter was lost. The
// sequence is then lifted past the stored version and the push retried once.
func (r *Recalculator) Recalculate(ctx context.Context, projectID primitive.ObjectID) (*models.ProgressResult, error) {
	result, version, err := r.push(ctx, projectID)
	if err != nil {
		r.metrics.ProgressPush(pushFailed)
		return nil, err
	}

	if !result.Applied() && result.Version >= version {
		raised, err := r.seq.Advance(ctx, projectID, result.Version)
		if err != nil {
			r.metrics.ProgressPush(pushFailed)
			return nil, err
		}
		if raised {
			r.log.WarnContext(ctx, "progress sequence behind stored version, resynced",
				"project_id", projectID.Hex(),
				"version", version,
				"stored_version", result.Version,
			)
			result, version, err = r.push(ctx, projectID)
			if err != nil {
				r.metrics.ProgressPush(pushFailed)
				return nil, err
			}
		}
	}

	r.metrics.ProgressPush(string(result.State))
	if !result.Applied() {
		r.log.InfoContext(ctx, "stale progress push discarded",
			"project_id", projectID.Hex(),
			"version", version,
			"stored_version", result.Version,
		)
	}
	return result, nil
}

// push draws a version, reads the task totals and sends the mean.
func (r *Recalculator) push(ctx context.Context, projectID primitive.ObjectID) (*models.ProgressResult, int64, error) {
	version, err := r.seq.Next(ctx, projectID)
	if err != nil {
		return nil, 0, err
	}

	sum, count, err := r.tasks.ProgressTotals(ctx, projectID)
	if err != nil {
		return nil, 0, fmt.Errorf("read task progress: %w", err)
	}

	result, err := r.pusher.SetProgress(ctx, projectID, Mean(sum, count), version)
	if err != nil {
		return nil, 0, fmt.Errorf("push progress: %w", err)
	}
	return result, version, nil
}

// RecalculateAll recomputes every project in ids concurrently and returns
// the first error after all pushes finished.
func (r *Recalculator) RecalculateAll(ctx context.Context, ids []primitive.ObjectID) error {
	var g errgroup.Group
	g.SetLimit(maxConcurrentPushes)
	for _, id := range ids {
		g.Go(func() error {
			_, err := r.Recalculate(ctx, id)
			if err != nil {
				return fmt.Errorf("project %s: %w", id.Hex(), err)
			}
			return nil
		})
	}
	return g.Wait()
}
