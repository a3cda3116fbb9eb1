package main

import "sync"

// Decision is the outcome of observing one raw detection. It is a value,
// not an error: an unconfirmed detection is a normal result.
type Decision struct {
	Confirmed bool
	Reason    string
	History   int
}

const (
	reasonLowConfidence = "low confidence"
	reasonNotPersistent = "insufficient temporal consistency"
)

// ConfirmationFilter keeps a bounded, most-recent-first history of confidence
// scores per event type and confirms a detection once the type has persisted
// across enough recent observations. A single high-confidence blip never
// confirms; sustained detection does.
//
// Observations below the minimum confidence never enter the history. The
// history only decays by sample count: old samples age out when newer ones
// push them past the window capacity.
type ConfirmationFilter struct {
	mu            sync.Mutex
	minConfidence float64
	window        int
	threshold     int
	history       map[string][]float64
}

func newConfirmationFilter(minConfidence float64, window, threshold int) *ConfirmationFilter {
	return &ConfirmationFilter{
		minConfidence: minConfidence,
		window:        window,
		threshold:     threshold,
		history:       make(map[string][]float64),
	}
}

// Observe records one detection for eventType and decides whether it should
// be confirmed. Confidence values are taken as-is; range validation belongs
// to the caller.
func (f *ConfirmationFilter) Observe(eventType string, confidence float64) Decision {
	f.mu.Lock()
	defer f.mu.Unlock()

	if confidence < f.minConfidence {
		return Decision{Reason: reasonLowConfidence, History: len(f.history[eventType])}
	}

	h := append(f.history[eventType], confidence)
	if len(h) > f.window {
		h = h[len(h)-f.window:]
	}
	f.history[eventType] = h

	if len(h) < f.threshold {
		return Decision{Reason: reasonNotPersistent, History: len(h)}
	}

	return Decision{Confirmed: true, History: len(h)}
}
