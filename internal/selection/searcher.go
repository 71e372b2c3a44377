package selection

import (
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Searcher smooths raw query input before it reaches a search.
//
// Input is coalesced with a trailing debounce, and emitted queries are spaced
// at least one cooldown apart. The last query typed is always emitted
// eventually, so results converge on the final input.
type Searcher struct {
	debounce time.Duration
	limiter  *rate.Limiter
	emit     func(query string)

	input     chan string
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
}

// NewSearcher starts a searcher calling emit from its own goroutine.
// A zero cooldown disables the spacing between emissions.
func NewSearcher(debounce, cooldown time.Duration, emit func(query string)) *Searcher {
	limit := rate.Inf
	if cooldown > 0 {
		limit = rate.Every(cooldown)
	}

	s := &Searcher{
		debounce: debounce,
		limiter:  rate.NewLimiter(limit, 1),
		emit:     emit,
		input:    make(chan string),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go s.run()
	return s
}

// Input records a raw keystroke state. It returns immediately after Close.
func (s *Searcher) Input(query string) {
	select {
	case s.input <- query:
	case <-s.done:
	}
}

// Close stops the searcher and waits for its goroutine. Pending input is dropped.
func (s *Searcher) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	<-s.stopped
}

func (s *Searcher) run() {
	defer close(s.stopped)

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	var pending string
	var reservation *rate.Reservation

	for {
		select {
		case q := <-s.input:
			pending = q
			if reservation != nil {
				reservation.Cancel()
				reservation = nil
			}
			timer.Reset(s.debounce)

		case <-timer.C:
			if reservation == nil {
				r := s.limiter.Reserve()
				if d := r.Delay(); d > 0 {
					// still cooling down; fire again once the slot opens
					reservation = r
					timer.Reset(d)
					continue
				}
			}
			reservation = nil
			s.emit(pending)

		case <-s.done:
			return
		}
	}
}
