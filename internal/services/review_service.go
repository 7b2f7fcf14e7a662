package services

import (
	"context"
	"sync"
	"time"

	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/gesture"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/logger"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/models"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/repository"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/review"
)

// ReviewCard is the presented slice of a card. The answer only appears once
// the session reveals it.
type ReviewCard struct {
	ID    string `json:"id"`
	Front string `json:"front"`
	Back  string `json:"back,omitempty"`
}

// ReviewSnapshot is the popup-facing view of the review session.
type ReviewSnapshot struct {
	State        string       `json:"state"`
	Phase        string       `json:"phase"`
	Position     int          `json:"position"`
	Total        int          `json:"total"`
	Stats        review.Stats `json:"stats"`
	Card         *ReviewCard  `json:"card,omitempty"`
	HintText     string       `json:"hint_text,omitempty"`
	HintImageURL string       `json:"hint_image_url,omitempty"`
	HintUsed     bool         `json:"hint_used"`
	Message      string       `json:"message,omitempty"`
	GestureAck   string       `json:"gesture_ack,omitempty"`
}

// ReviewService runs the review session engine together with its gesture
// input loop: one session, one polling loop per session, camera released on
// teardown.
type ReviewService interface {
	Start(ctx context.Context, deckID string) (ReviewSnapshot, error)
	Hint(ctx context.Context) ReviewSnapshot
	Reveal(ctx context.Context) ReviewSnapshot
	Respond(ctx context.Context, rating models.Rating) (ReviewSnapshot, error)
	Reset(ctx context.Context) ReviewSnapshot
	Snapshot(ctx context.Context) ReviewSnapshot
	PushFrame(frame gesture.Frame)
}

type reviewService struct {
	session    *review.Session
	classifier gesture.Classifier
	camera     gesture.FrameBuffer
	threshold  float64
	interval   time.Duration
	limit      int
	log        *logger.Logger

	mu     sync.Mutex
	poller *gesture.Poller
}

// ReviewOption configures a ReviewService.
type ReviewOption func(*reviewService)

// WithSessionLimit caps the session queue; 0 means no cap.
func WithSessionLimit(limit int) ReviewOption {
	return func(s *reviewService) { s.limit = limit }
}

// WithGestureThreshold overrides the gesture confidence threshold.
func WithGestureThreshold(threshold float64) ReviewOption {
	return func(s *reviewService) { s.threshold = threshold }
}

// WithGesturePollInterval overrides the gesture polling cadence.
func WithGesturePollInterval(interval time.Duration) ReviewOption {
	return func(s *reviewService) { s.interval = interval }
}

// NewReviewService creates a ReviewService. The classifier may be nil, which
// leaves sessions unstartable until a model is configured; a nil camera gets
// a fresh push-fed source.
func NewReviewService(cards repository.CardRepository, logs repository.ReviewLogRepository, classifier gesture.Classifier, camera gesture.FrameBuffer, opts ...ReviewOption) ReviewService {
	s := &reviewService{
		classifier: classifier,
		camera:     camera,
		threshold:  gesture.DefaultThreshold,
		interval:   gesture.DefaultInterval,
		log:        logger.Default().WithPrefix("review"),
	}
	if s.camera == nil {
		s.camera = gesture.NewPushSource()
	}
	for _, opt := range opts {
		opt(s)
	}

	var gate review.Classifier
	if classifier != nil {
		gate = classifier
	}
	s.session = review.NewSession(cards, logs, gate,
		review.WithLimit(s.limit),
		review.WithTeardown(s.stopPoller))
	return s
}

func (s *reviewService) Start(ctx context.Context, deckID string) (ReviewSnapshot, error) {
	if err := s.session.Start(ctx, deckID); err != nil {
		return s.snapshot(), err
	}

	s.mu.Lock()
	if s.poller == nil && s.classifier != nil && s.session.Active() {
		p := gesture.NewPoller(s.classifier, s.camera, pollerSession{s},
			gesture.WithThreshold(s.threshold),
			gesture.WithInterval(s.interval))
		// The loop outlives the request that started the session.
		p.Start(context.Background())
		s.poller = p
		s.log.Debug("gesture polling attached to session")
	}
	s.mu.Unlock()
	return s.snapshot(), nil
}

func (s *reviewService) Hint(ctx context.Context) ReviewSnapshot {
	s.session.RequestHint()
	return s.snapshot()
}

func (s *reviewService) Reveal(ctx context.Context) ReviewSnapshot {
	s.session.RevealAnswer()
	return s.snapshot()
}

func (s *reviewService) Respond(ctx context.Context, rating models.Rating) (ReviewSnapshot, error) {
	err := s.session.Respond(ctx, rating)
	if s.session.State() == review.StateComplete {
		s.stopPoller()
	}
	return s.snapshot(), err
}

func (s *reviewService) Reset(ctx context.Context) ReviewSnapshot {
	s.session.Reset()
	return s.snapshot()
}

func (s *reviewService) Snapshot(ctx context.Context) ReviewSnapshot {
	return s.snapshot()
}

func (s *reviewService) PushFrame(frame gesture.Frame) {
	s.camera.Push(frame)
}

// stopPoller detaches and stops the current polling loop. The stop itself
// runs off-goroutine: a gesture finishing the last card arrives FROM the
// polling loop, which cannot wait for its own exit.
func (s *reviewService) stopPoller() {
	s.mu.Lock()
	p := s.poller
	s.poller = nil
	s.mu.Unlock()
	if p != nil {
		go p.Stop()
	}
}

func (s *reviewService) snapshot() ReviewSnapshot {
	snap := ReviewSnapshot{
		State:    s.session.State().String(),
		Phase:    s.session.Phase().String(),
		Stats:    s.session.Stats(),
		Message:  s.session.Message(),
		HintUsed: s.session.HintUsed(),
	}
	snap.Position, snap.Total = s.session.Progress()
	snap.HintText, snap.HintImageURL = s.session.Hint()

	if card, ok := s.session.Current(); ok {
		rc := &ReviewCard{ID: card.ID, Front: card.Front}
		if s.session.AnswerVisible() {
			rc.Back = card.Back
		}
		snap.Card = rc
	}

	s.mu.Lock()
	if s.poller != nil {
		snap.GestureAck = s.poller.Ack()
	}
	s.mu.Unlock()
	return snap
}

// pollerSession routes gesture actions through the service so a gesture that
// finishes the session also tears the polling loop down.
type pollerSession struct {
	svc *reviewService
}

func (p pollerSession) Active() bool        { return p.svc.session.Active() }
func (p pollerSession) AnswerVisible() bool { return p.svc.session.AnswerVisible() }
func (p pollerSession) Seq() uint64         { return p.svc.session.Seq() }
func (p pollerSession) RequestHint()        { p.svc.session.RequestHint() }

func (p pollerSession) Respond(ctx context.Context, rating models.Rating) error {
	_, err := p.svc.Respond(ctx, rating)
	return err
}
