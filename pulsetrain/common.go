package pulsetrain

import (
	"math"

	"github.com/sdrcore/rfsense/bitbuf"
)

// gapBoundary reports what a segment's gap duration implies for the
// row/buffer, per the shared §4.5 finalisation contract: a gap beyond
// ResetLimit (or the terminating infinite gap) finalises the whole
// buffer; a gap beyond GapLimit (but within ResetLimit) closes the
// current row via an implicit sync.
type gapAction int

const (
	gapContinue gapAction = iota
	gapSync
	gapFinalize
)

func gapBoundary(gapUS float64, p Params) gapAction {
	if math.IsInf(gapUS, 1) || gapUS > p.ResetLimit {
		return gapFinalize
	}
	if p.GapLimit > 0 && gapUS > p.GapLimit {
		return gapSync
	}
	return gapContinue
}

// applyGapBoundary performs the common end-of-segment bookkeeping
// shared by every decoder that doesn't itself consume the gap as a
// data symbol: it syncs or finalizes the buffer per gapBoundary, and
// reports whether the caller should stop processing further segments.
func applyGapBoundary(gapUS float64, p Params, buf *bitbuf.Buffer) (stop bool) {
	switch gapBoundary(gapUS, p) {
	case gapFinalize:
		return true
	case gapSync:
		buf.AddSync()
	}
	return false
}

func roundDiv(a, b float64) int {
	if b <= 0 {
		return 0
	}
	return int(a/b + 0.5)
}
