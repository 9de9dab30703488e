package tracer

import "math"

// The BlockScheduler interface is implemented by all block scheduling algorithms.
type BlockScheduler interface {
	// Split frame into blocks of variable height and assign to the pool
	// of tracers using feedback collected from previous frames.
	//
	// This function returns the block height assignment for each tracer
	// in the input list. The assigned heights always add up to frameH.
	Schedule(tracers []Tracer, frameH uint32) []uint32
}

// The naive scheduler splits the frame rows in proportion to each tracer's
// speed estimate.
type naiveScheduler struct {
	blockAssignment []uint32
}

// Create a new naive scheduler instance.
func NaiveScheduler() BlockScheduler {
	return &naiveScheduler{}
}

func (sch *naiveScheduler) Schedule(tracers []Tracer, frameH uint32) []uint32 {
	if len(sch.blockAssignment) != len(tracers) {
		sch.blockAssignment = make([]uint32, len(tracers))
	}
	return assignBySpeed(sch.blockAssignment, tracers, frameH)
}

// The perfect scheduler assumes that the volume of tracing work between two
// subsequent frames is approximately the same.
type perfectScheduler struct {
	blockAssignment []uint32
}

// Create a new perfect scheduler instance
func PerfectScheduler() BlockScheduler {
	return &perfectScheduler{}
}

// Split frame into blocks of variable height and assign to the pool
// of tracers using feedback collected from previous frames.
//
// When previous frame information is available the scheduler uses the
// following formula for estimating the workload for tracer w and frame i+1:
// w_i, f_i+1 = (blockH,w_i / time,w_i) / Σ(blockH_i-1 / time,i-1)
func (sch *perfectScheduler) Schedule(tracers []Tracer, frameH uint32) []uint32 {
	// If this is the first time we try to schedule or the number of tracers
	// has changed we need to reset the block assignments
	if len(sch.blockAssignment) != len(tracers) {
		sch.blockAssignment = make([]uint32, len(tracers))
		return assignBySpeed(sch.blockAssignment, tracers, frameH)
	}

	// Use last frame statistics. Tracers that were assigned no rows in the
	// previous frame did not render it, so their stats are stale; they are
	// credited with the mean rate of the tracers that did.
	rates := make([]float64, len(tracers))
	var known float64 = 0.0
	var numKnown int
	for idx, tr := range tracers {
		stats := tr.Stats()
		if sch.blockAssignment[idx] == 0 || stats.BlockH == 0 {
			rates[idx] = -1
			continue
		}
		rates[idx] = rowsPerNs(stats)
		known += rates[idx]
		numKnown++
	}
	if known == 0 {
		return assignBySpeed(sch.blockAssignment, tracers, frameH)
	}

	mean := known / float64(numKnown)
	var total float64 = 0.0
	for idx := range rates {
		if rates[idx] < 0 {
			rates[idx] = mean
		}
		total += rates[idx]
	}

	scaler := float64(frameH) / total
	for idx := range tracers {
		sch.blockAssignment[idx] = uint32(math.Max(1.0, math.Floor(rates[idx]*scaler)))
	}

	return fitRows(sch.blockAssignment, frameH)
}

// Distribute rows according to each tracer's speed estimate.
func assignBySpeed(blockAssignment []uint32, tracers []Tracer, frameH uint32) []uint32 {
	if len(tracers) == 0 {
		return blockAssignment
	}

	var total float64 = 0.0
	for _, tr := range tracers {
		total += float64(tr.Speed())
	}
	if total == 0 {
		total = float64(len(tracers))
	}
	scaler := float64(frameH) / total

	for idx, tr := range tracers {
		speed := float64(tr.Speed())
		if speed == 0 {
			speed = 1
		}
		blockAssignment[idx] = uint32(math.Max(1.0, math.Floor(speed*scaler)))
	}

	return fitRows(blockAssignment, frameH)
}

// Adjust the block assignment so that it adds up to frameH. Missing rows are
// appended to the first tracer; excess rows are taken away from the largest
// blocks.
func fitRows(blockAssignment []uint32, frameH uint32) []uint32 {
	var scheduledRows uint32 = 0
	for _, rows := range blockAssignment {
		scheduledRows += rows
	}

	if scheduledRows <= frameH {
		blockAssignment[0] += frameH - scheduledRows
		return blockAssignment
	}

	for ; scheduledRows > frameH; scheduledRows-- {
		largest := 0
		for idx, rows := range blockAssignment {
			if rows > blockAssignment[largest] {
				largest = idx
			}
		}
		blockAssignment[largest]--
	}
	return blockAssignment
}

// Rows per nanosecond achieved by a tracer in the previous frame.
func rowsPerNs(stats *Stats) float64 {
	renderTime := stats.RenderTime.Nanoseconds()
	if renderTime <= 0 {
		renderTime = 1
	}
	return float64(stats.BlockH) / float64(renderTime)
}
