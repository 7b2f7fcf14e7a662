package gesture

import (
	"context"
	"sync"
	"time"

	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/logger"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/models"
)

const (
	// DefaultThreshold is the minimum winning confidence before a
	// prediction acts on the session.
	DefaultThreshold = 0.85
	// DefaultInterval is the polling cadence.
	DefaultInterval = 200 * time.Millisecond
	// DefaultAckTTL is how long the cosmetic gesture acknowledgement stays
	// visible before auto-clearing.
	DefaultAckTTL = 500 * time.Millisecond
	// predictK is the neighbour count passed to the classifier.
	predictK = 3
)

// Session is the slice of the review session the poller drives.
type Session interface {
	Active() bool
	AnswerVisible() bool
	Seq() uint64
	RequestHint()
	Respond(ctx context.Context, rating models.Rating) error
}

// Poller runs the gesture polling loop: one inference per tick, strictly
// sequential (a tick never starts while the previous inference is still
// running), acting on predictions that clear the confidence threshold.
type Poller struct {
	classifier Classifier
	camera     FrameSource
	session    Session
	threshold  float64
	interval   time.Duration
	ackTTL     time.Duration
	log        *logger.Logger

	mu        sync.Mutex
	current   *Prediction
	ack       string
	ackTimer  *time.Timer
	lastLabel string
	lastSeq   uint64
	acted     bool

	stopOnce sync.Once
	cancel   context.CancelFunc
	done     chan struct{}
}

// PollerOption configures a Poller.
type PollerOption func(*Poller)

// WithThreshold overrides the confidence threshold.
func WithThreshold(threshold float64) PollerOption {
	return func(p *Poller) { p.threshold = threshold }
}

// WithInterval overrides the polling cadence.
func WithInterval(interval time.Duration) PollerOption {
	return func(p *Poller) { p.interval = interval }
}

// WithAckTTL overrides how long gesture acknowledgements linger.
func WithAckTTL(ttl time.Duration) PollerOption {
	return func(p *Poller) { p.ackTTL = ttl }
}

// NewPoller wires a classifier and camera to a session.
func NewPoller(classifier Classifier, camera FrameSource, session Session, opts ...PollerOption) *Poller {
	p := &Poller{
		classifier: classifier,
		camera:     camera,
		session:    session,
		threshold:  DefaultThreshold,
		interval:   DefaultInterval,
		ackTTL:     DefaultAckTTL,
		log:        logger.Default().WithPrefix("gesture"),
		done:       make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start runs the polling loop in its own goroutine until Stop is called or
// ctx is cancelled. The loop body runs inference synchronously, so ticks
// cannot overlap; slow inference simply drops ticks.
func (p *Poller) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.log.Debug("polling started: interval=%s, threshold=%.2f", p.interval, p.threshold)
	go func() {
		defer close(p.done)
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.Step(ctx)
			}
		}
	}()
}

// Stop synchronously halts the polling loop and releases the camera. It is
// idempotent and safe to call from session teardown.
func (p *Poller) Stop() {
	p.stopOnce.Do(func() {
		if p.cancel != nil {
			p.cancel()
			<-p.done
		}
		p.mu.Lock()
		if p.ackTimer != nil {
			p.ackTimer.Stop()
		}
		p.current = nil
		p.ack = ""
		p.mu.Unlock()
		if err := p.camera.Close(); err != nil {
			p.log.Warn("failed to release camera: %v", err)
		}
		p.log.Debug("polling stopped, camera released")
	})
}

// Step runs one poll tick: capture, infer, predict, and maybe act. Any
// classifier or camera error yields a neutral no-prediction result; the
// session keeps running on manual input.
func (p *Poller) Step(ctx context.Context) {
	if !p.session.Active() {
		return
	}

	pred := p.poll(ctx)

	p.mu.Lock()
	p.current = pred
	seq := p.session.Seq()
	if seq != p.lastSeq {
		// New card or sub-state: previous action no longer holds.
		p.lastSeq = seq
		p.acted = false
		p.lastLabel = ""
	}
	actionable := pred != nil &&
		pred.Confidence() >= p.threshold &&
		!(p.acted && pred.Label == p.lastLabel)
	p.mu.Unlock()

	if !actionable {
		return
	}

	if p.act(ctx, pred.Label) {
		p.mu.Lock()
		// Reset to neutral so the same high-confidence frame cannot
		// re-trigger on the next tick before a fresh prediction arrives.
		p.current = nil
		p.acted = true
		p.lastLabel = pred.Label
		p.lastSeq = p.session.Seq()
		p.setAckLocked(pred.Label)
		p.mu.Unlock()
	}
}

func (p *Poller) poll(ctx context.Context) *Prediction {
	frame, err := p.camera.Frame(ctx)
	if err != nil {
		p.log.Debug("frame capture failed: %v", err)
		return nil
	}
	features, err := p.classifier.InferOnFrame(ctx, frame)
	if err != nil {
		p.log.Debug("inference failed: %v", err)
		return nil
	}
	pred, err := p.classifier.Predict(ctx, features, predictK)
	if err != nil {
		p.log.Debug("prediction failed: %v", err)
		return nil
	}
	return pred
}

// act maps a recognized label onto a session action for the current
// sub-state. Labels with no mapping are ignored.
func (p *Poller) act(ctx context.Context, label string) bool {
	if p.session.AnswerVisible() {
		switch label {
		case LabelYes:
			if err := p.session.Respond(ctx, models.RatingCorrect); err != nil {
				p.log.Warn("gesture respond failed: %v", err)
			}
			return true
		case LabelNo:
			if err := p.session.Respond(ctx, models.RatingIncorrect); err != nil {
				p.log.Warn("gesture respond failed: %v", err)
			}
			return true
		}
		return false
	}
	if label == LabelHint {
		p.session.RequestHint()
		return true
	}
	return false
}

// setAckLocked records the cosmetic acknowledgement and arms its auto-clear.
// The ack never gates action logic.
func (p *Poller) setAckLocked(label string) {
	p.ack = label
	if p.ackTimer != nil {
		p.ackTimer.Stop()
	}
	p.ackTimer = time.AfterFunc(p.ackTTL, func() {
		p.mu.Lock()
		p.ack = ""
		p.mu.Unlock()
	})
}

// Ack returns the label of the most recently acted-on gesture, or "" once
// the acknowledgement has auto-cleared.
func (p *Poller) Ack() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ack
}

// Current returns the latest polled prediction, nil when neutral.
func (p *Poller) Current() *Prediction {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}
