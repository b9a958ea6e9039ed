package output

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// ProgressBar shows how many kernels of a run have finished.
type ProgressBar struct {
	w       io.Writer
	title   string
	total   int
	current int
	label   string
	width   int
	mu      sync.Mutex
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(w io.Writer, title string) *ProgressBar {
	return &ProgressBar{
		w:     w,
		title: title,
		width: 30,
	}
}

// Update records that done of total kernels finished, the last being label.
func (p *ProgressBar) Update(done, total int, label string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = done
	p.total = total
	p.label = label
	p.render()
}

// Finish ends the bar's line.
func (p *ProgressBar) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprint(p.w, "\r\033[K")
}

func (p *ProgressBar) render() {
	if p.total <= 0 {
		fmt.Fprintf(p.w, "\r\033[K%s %d %s", p.title, p.current, p.label)
		return
	}

	frac := float64(p.current) / float64(p.total)
	if frac > 1 {
		frac = 1
	}
	filled := int(float64(p.width) * frac)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", p.width-filled)

	fmt.Fprintf(p.w, "\r\033[K%s [%s] %d/%d %s", p.title, bar, p.current, p.total, p.label)
}
