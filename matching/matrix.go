package matching

import (
	"context"
	"fmt"
	"runtime"

	"github.com/dmavani25/teammatch-system/models"
	"golang.org/x/sync/errgroup"
)

// ScoreMatrix is an n×n table of pairwise compatibility scores over an
// ordered participant list. The diagonal is zero and the matrix is symmetric
// because every scorer component is a symmetric comparison. Once built it is
// read-only.
type ScoreMatrix struct {
	cells [][]float64
}

func (m ScoreMatrix) Size() int {
	return len(m.cells)
}

func (m ScoreMatrix) At(i, j int) float64 {
	return m.cells[i][j]
}

// Cells returns the underlying table for serialization. Callers must not
// mutate it.
func (m ScoreMatrix) Cells() [][]float64 {
	return m.cells
}

// MatrixBuilder computes a ScoreMatrix by summing the configured scorer
// components per participant pair. Rows are sharded across Workers
// goroutines; every worker writes a disjoint set of rows, so no locking is
// needed and the result is identical for any worker count.
type MatrixBuilder struct {
	Scorers  []PairScorer
	Workers  int
	Reporter ProgressReporter
}

func NewMatrixBuilder(scorers ...PairScorer) *MatrixBuilder {
	return &MatrixBuilder{
		Scorers:  scorers,
		Workers:  runtime.NumCPU(),
		Reporter: NopReporter{},
	}
}

func (b *MatrixBuilder) Build(ctx context.Context, participants []*models.Participant) (ScoreMatrix, error) {
	n := len(participants)
	cells := make([][]float64, n)
	for i := range cells {
		cells[i] = make([]float64, n)
	}
	matrix := ScoreMatrix{cells: cells}

	if n == 0 {
		b.reporter().Report(ProgressEvent{Stage: StageScoring, Message: "no participants to score"})
		return matrix, nil
	}

	workers := b.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	b.reporter().Report(ProgressEvent{
		Stage:   StageScoring,
		Message: fmt.Sprintf("scoring %d participants across %d workers", n, workers),
		Total:   n,
	})

	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		g.Go(func() error {
			for i := w; i < n; i += workers {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}
				for j := 0; j < n; j++ {
					if i == j {
						continue
					}
					var total float64
					for _, scorer := range b.Scorers {
						total += scorer.Score(participants[i], participants[j])
					}
					cells[i][j] = total
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ScoreMatrix{}, fmt.Errorf("score matrix build failed: %w", err)
	}

	b.reporter().Report(ProgressEvent{Stage: StageScoring, Message: "score matrix complete", Done: n, Total: n})
	return matrix, nil
}

func (b *MatrixBuilder) reporter() ProgressReporter {
	if b.Reporter == nil {
		return NopReporter{}
	}
	return b.Reporter
}
