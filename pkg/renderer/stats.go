package renderer

import "sync/atomic"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels    int     // Total number of pixels rendered
	TotalBounces   int     // Total number of surface hits across all reflection chains
	AverageBounces float64 // Average surface hits per pixel
	MaxBouncesUsed int     // Longest reflection chain of any pixel
	MissedPixels   int     // Pixels whose primary ray hit nothing
}

// merge folds tile statistics into the running total
func (rs *RenderStats) merge(other RenderStats) {
	rs.TotalPixels += other.TotalPixels
	rs.TotalBounces += other.TotalBounces
	rs.MissedPixels += other.MissedPixels
	rs.MaxBouncesUsed = max(rs.MaxBouncesUsed, other.MaxBouncesUsed)
}

// finalize calculates derived statistics after all pixels are rendered
func (rs *RenderStats) finalize() {
	if rs.TotalPixels > 0 {
		rs.AverageBounces = float64(rs.TotalBounces) / float64(rs.TotalPixels)
	}
}

// Progress counts finished pixels. Workers add to it without coordinating with each other.
type Progress struct {
	done  atomic.Int64
	total int64
}

// NewProgress creates a counter for total pixels
func NewProgress(total int) *Progress {
	return &Progress{total: int64(total)}
}

// Add records n more finished pixels
func (p *Progress) Add(n int) {
	p.done.Add(int64(n))
}

// Done returns the number of finished pixels
func (p *Progress) Done() int {
	return int(p.done.Load())
}

// Fraction returns the finished share in [0, 1]
func (p *Progress) Fraction() float64 {
	if p.total == 0 {
		return 1
	}
	return float64(p.done.Load()) / float64(p.total)
}
