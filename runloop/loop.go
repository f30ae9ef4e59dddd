package runloop

import "sync"

// Config configures the loop's task buffer.
type Config struct {
	// Buffer is the task queue depth. Default: 64.
	Buffer int
}

// Loop is a serial executor: one goroutine consuming a task queue in FIFO
// order.
//
// Contract:
// - Concurrency: Post and Sync are safe from any goroutine; tasks themselves
//   run strictly one at a time on the loop goroutine.
// - Shutdown: after Close, submissions become no-ops and queued tasks may be
//   dropped. Close is idempotent.
type Loop struct {
	tasks chan func()
	done  chan struct{}
	once  sync.Once
}

// New creates and starts a loop.
func New(config ...Config) *Loop {
	cfg := Config{Buffer: 64}
	if len(config) > 0 {
		cfg = config[0]
		if cfg.Buffer <= 0 {
			cfg.Buffer = 64
		}
	}

	l := &Loop{
		tasks: make(chan func(), cfg.Buffer),
		done:  make(chan struct{}),
	}
	go l.run()
	return l
}

// Post schedules fn on the loop goroutine. It blocks while the queue is full
// and is a no-op after Close.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	select {
	case <-l.done:
	case l.tasks <- fn:
	}
}

// Sync schedules fn and waits until it has run. If the loop is closed before
// fn runs, Sync returns without executing it.
func (l *Loop) Sync(fn func()) {
	ran := make(chan struct{})
	l.Post(func() {
		fn()
		close(ran)
	})
	select {
	case <-ran:
	case <-l.done:
	}
}

// Close stops the loop. Tasks already running complete; queued tasks may be
// dropped.
func (l *Loop) Close() {
	l.once.Do(func() { close(l.done) })
}

func (l *Loop) run() {
	for {
		select {
		case <-l.done:
			return
		case fn := <-l.tasks:
			fn()
		}
	}
}
