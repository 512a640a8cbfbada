package fluid

import (
	"runtime"
	"sync"
)

// parallelThreshold is the minimum particle count to use parallel passes.
// Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 256

// passKind selects which pass a work chunk executes.
type passKind uint8

const (
	passDensityPressure passKind = iota
	passForces
	passIntegrate
)

// workChunk is a range of particle indices for one worker to process.
// Within a pass each index writes only its own output slot, so disjoint
// chunks never race; the dispatcher waits for every chunk before the next
// pass starts, which is the barrier the pass ordering requires.
type workChunk struct {
	pass       passKind
	start, end int
	dt         float32
}

// workerPool holds persistent worker goroutines and per-worker scratch.
type workerPool struct {
	sim        *Simulation
	numWorkers int
	scratches  [][]Neighbor

	workChan chan workChunk
	doneChan chan struct{}
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
}

func newWorkerPool(sim *Simulation, workers int) *workerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	scratches := make([][]Neighbor, workers)
	for i := range scratches {
		scratches[i] = make([]Neighbor, 0, 64)
	}
	return &workerPool{
		sim:        sim,
		numWorkers: workers,
		scratches:  scratches,
	}
}

// start launches the persistent workers.
func (p *workerPool) start() {
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// stop signals all workers to exit and waits for them.
func (p *workerPool) stop() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker processes chunks until stopped.
func (p *workerPool) worker(id int) {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk, ok := <-p.workChan:
			if !ok {
				return
			}
			p.runChunk(chunk, &p.scratches[id])
			p.doneChan <- struct{}{}
		}
	}
}

func (p *workerPool) runChunk(c workChunk, scratch *[]Neighbor) {
	switch c.pass {
	case passDensityPressure:
		p.sim.densityPressureRange(c.start, c.end, scratch)
	case passForces:
		p.sim.forceRange(c.start, c.end, scratch)
	case passIntegrate:
		p.sim.integrateRange(c.start, c.end, c.dt)
	}
}

// runPass executes one pass over all particles and returns once every chunk
// has completed.
func (p *workerPool) runPass(pass passKind, dt float32) {
	n := p.sim.store.count

	if n < parallelThreshold || p.numWorkers == 1 {
		p.runChunk(workChunk{pass: pass, start: 0, end: n, dt: dt}, &p.scratches[0])
		return
	}

	if !p.running {
		p.start()
	}

	chunkSize := (n + p.numWorkers - 1) / p.numWorkers

	dispatched := 0
	for w := 0; w < p.numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}
		p.workChan <- workChunk{pass: pass, start: start, end: end, dt: dt}
		dispatched++
	}

	for i := 0; i < dispatched; i++ {
		<-p.doneChan
	}
}
