package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/lumentrace/lumen/pkg/engine"
	"github.com/lumentrace/lumen/pkg/pipeline"
)

// stageReporter prints pipeline stage lines and drives the sampling bar
// on the command's stdout.
type stageReporter struct {
	w   io.Writer
	bar *progressBar
}

// newStageReporter creates a terminal stage reporter writing to w.
func newStageReporter(w io.Writer) *stageReporter {
	return &stageReporter{w: w}
}

// Stage prints a "[i/N] message" line.
func (r *stageReporter) Stage(index, total int, message string) {
	fmt.Fprintf(r.w, "%s %s\n",
		styleStage.Render(fmt.Sprintf("[%d/%d]", index, total)),
		message)
}

// StartSampling creates the terminal bar for the sampling loop.
func (r *stageReporter) StartSampling(totalPixels int) engine.ProgressSink {
	r.bar = newProgressBar(r.w, totalPixels)
	return r.bar
}

// FinishSampling completes and clears the bar.
func (r *stageReporter) FinishSampling() {
	if r.bar != nil {
		r.bar.finish()
		r.bar = nil
	}
}

var _ pipeline.StageReporter = (*stageReporter)(nil)

// =============================================================================
// Progress Bar
// =============================================================================

// barWidth is the number of cells in the rendered bar.
const barWidth = 40

// progressBar renders completion of a bounded counter. Add is called from
// every render worker, so the counter is atomic and only the goroutine that
// crosses a redraw threshold writes to the terminal (under the mutex).
type progressBar struct {
	w     io.Writer
	total int64
	step  int64
	count atomic.Int64
	mu    sync.Mutex
}

// newProgressBar creates a bar bounded by total increments. The redraw step
// is total/1000 so terminal writes stay negligible next to sampling work.
func newProgressBar(w io.Writer, total int) *progressBar {
	if total < 1 {
		total = 1
	}
	step := int64(total) / 1000
	if step < 1 {
		step = 1
	}
	b := &progressBar{w: w, total: int64(total), step: step}
	b.draw(0)
	return b
}

// Add advances the bar by n completed units.
func (b *progressBar) Add(n int) {
	count := b.count.Add(int64(n))
	if count%b.step == 0 || count == b.total {
		b.draw(count)
	}
}

// finish draws the full bar and moves to the next line.
func (b *progressBar) finish() {
	b.draw(b.total)
	b.mu.Lock()
	defer b.mu.Unlock()
	fmt.Fprintln(b.w)
}

func (b *progressBar) draw(count int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	filled := int(count * barWidth / b.total)
	if filled > barWidth {
		filled = barWidth
	}
	percent := count * 100 / b.total

	bar := styleBarFill.Render(strings.Repeat("█", filled)) +
		StyleDim.Render(strings.Repeat("░", barWidth-filled))
	fmt.Fprintf(b.w, "\r  %s %s", bar, StyleDim.Render(fmt.Sprintf("%3d%%", percent)))
}

var _ engine.ProgressSink = (*progressBar)(nil)
