package cpu

import (
	"fmt"
	"sync"
	"time"

	"github.com/achilleasa/diorama/log"
	"github.com/achilleasa/diorama/tracer"
)

// The default speed estimate reported by cpu tracers.
const DefaultSpeed uint32 = 1

type cpuTracer struct {
	logger log.Logger

	sync.Mutex
	wg sync.WaitGroup

	// The tracer's id.
	id string

	// Relative speed estimate.
	speed uint32

	// A channel for receiving block requests from the renderer.
	blockReqChan chan tracer.BlockRequest

	// A channel for signaling the worker to exit.
	closeChan chan struct{}

	// Statistics for the last processed block.
	stats *tracer.Stats
}

// Create a new cpu tracer and start its worker goroutine.
func NewTracer(id string, speed uint32) tracer.Tracer {
	tr := &cpuTracer{
		logger:       log.New(fmt.Sprintf("cpu tracer (%s)", id)),
		id:           id,
		speed:        speed,
		blockReqChan: make(chan tracer.BlockRequest, 1),
		closeChan:    make(chan struct{}),
		stats:        &tracer.Stats{},
	}
	tr.startWorker()
	return tr
}

// Get tracer id.
func (tr *cpuTracer) Id() string {
	return tr.id
}

// Get speed estimate.
func (tr *cpuTracer) Speed() uint32 {
	return tr.speed
}

// Retrieve last frame statistics.
func (tr *cpuTracer) Stats() *tracer.Stats {
	return tr.stats
}

// Shutdown the tracer and wait for its worker to exit.
func (tr *cpuTracer) Close() {
	tr.Lock()
	defer tr.Unlock()

	if tr.closeChan == nil {
		return
	}

	close(tr.closeChan)
	tr.wg.Wait()
	tr.closeChan = nil
}

// Enqueue block request.
func (tr *cpuTracer) Enqueue(blockReq tracer.BlockRequest) {
	select {
	case tr.blockReqChan <- blockReq:
	default:
		tr.logger.Error("request processor did not receive block request")
		if blockReq.ErrChan != nil {
			blockReq.ErrChan <- ErrTracerBusy
		}
	}
}

func (tr *cpuTracer) startWorker() {
	readyChan := make(chan struct{})
	closeChan := tr.closeChan

	tr.wg.Add(1)
	go func() {
		defer tr.wg.Done()
		var blockReq tracer.BlockRequest
		var startTime time.Time
		close(readyChan)
		for {
			select {
			case blockReq = <-tr.blockReqChan:
				if blockReq.Frame == nil || blockReq.Target == nil {
					if blockReq.ErrChan != nil {
						blockReq.ErrChan <- ErrNoFrameData
					}
					continue
				}

				startTime = time.Now()
				blockReq.Frame.RenderRows(blockReq.Target, blockReq.BlockY, blockReq.BlockH)

				tr.stats.BlockH = blockReq.BlockH
				tr.stats.RenderTime = time.Since(startTime)
				tr.logger.Debugf("rendered rows [%d, %d) in %s", blockReq.BlockY, blockReq.BlockY+blockReq.BlockH, tr.stats.RenderTime)

				if blockReq.DoneChan != nil {
					blockReq.DoneChan <- blockReq.BlockH
				}
			case <-closeChan:
				return
			}
		}
	}()

	// Wait for worker goroutine to start
	<-readyChan
}
