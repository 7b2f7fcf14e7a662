// Package review drives a spaced-repetition review session: it selects the
// due set for a deck, walks the card queue, handles hint progression and
// answer reveal, and persists each scheduling update before advancing.
package review

import (
	"context"
	"fmt"
	"sync"
	"time"

	apperrors "github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/errors"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/logger"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/models"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/repository"
	"github.com/sTreLeCa/flashcard-ai-extension-sub000/internal/scheduler"
)

// State is the session's top-level state.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateActive
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateActive:
		return "active"
	case StateComplete:
		return "complete"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Phase is the sub-state of the card currently presented.
type Phase int

const (
	PhaseQuestion Phase = iota
	PhaseHint
	PhaseAnswer
)

func (p Phase) String() string {
	switch p {
	case PhaseQuestion:
		return "question"
	case PhaseHint:
		return "hint"
	case PhaseAnswer:
		return "answer"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Stats accumulates raw user ratings over one session. Hint downgrades apply
// only to persisted scheduling, never to these counts.
type Stats struct {
	Correct   int `json:"correct"`
	Hard      int `json:"hard"`
	Incorrect int `json:"incorrect"`
}

// Total returns the number of responses recorded.
func (s Stats) Total() int {
	return s.Correct + s.Hard + s.Incorrect
}

// Classifier is the slice of the gesture classifier the session needs to
// gate session start: review may only begin once at least one gesture class
// has been trained.
type Classifier interface {
	NumTrainedClasses() int
}

// Session is the review session state machine. All methods are safe for
// concurrent use; manual and gesture inputs serialize on one lock, so both
// can never fire for the same transition.
type Session struct {
	cards    repository.CardRepository
	logs     repository.ReviewLogRepository
	gate     Classifier
	limit    int
	now      func() time.Time
	teardown func()
	log      *logger.Logger

	mu         sync.Mutex
	state      State
	queue      []models.Flashcard
	idx        int
	phase      Phase
	hintUsed   bool
	hintText   string
	hintImage  string
	responding bool
	epoch      uint64
	stats      Stats
	message    string
	seq        uint64
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithLimit caps the session queue; 0 means no cap.
func WithLimit(limit int) SessionOption {
	return func(s *Session) { s.limit = limit }
}

// WithClock overrides the session clock.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Session) { s.now = now }
}

// WithTeardown registers a hook invoked synchronously on Reset, used to stop
// the gesture polling loop and release the camera.
func WithTeardown(fn func()) SessionOption {
	return func(s *Session) { s.teardown = fn }
}

// NewSession creates an idle session. The review log repository may be nil;
// history is then not recorded.
func NewSession(cards repository.CardRepository, logs repository.ReviewLogRepository, gate Classifier, opts ...SessionOption) *Session {
	s := &Session{
		cards: cards,
		logs:  logs,
		gate:  gate,
		now:   time.Now,
		log:   logger.Default().WithPrefix("session"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the due set for a deck and begins the session. It is rejected,
// with no state change, when no deck is chosen, when the session is already
// running, or when the gesture classifier has no trained classes.
func (s *Session) Start(ctx context.Context, deckID string) error {
	s.mu.Lock()

	if deckID == "" {
		s.mu.Unlock()
		return apperrors.NewValidationError("deck", "choose a deck before starting a review")
	}
	if s.state != StateIdle {
		s.mu.Unlock()
		return apperrors.NewValidationError("session", "a review session is already in progress")
	}
	if s.gate == nil || s.gate.NumTrainedClasses() == 0 {
		s.mu.Unlock()
		return apperrors.NewUnavailableError("gesture classifier", "train at least one gesture before reviewing")
	}

	s.state = StateLoading
	s.seq++
	s.mu.Unlock()

	s.log.Debug("loading due set: deck_id=%s", deckID)
	all, err := s.cards.ListByDeck(ctx, deckID)
	if err != nil {
		s.mu.Lock()
		s.state = StateIdle
		s.seq++
		s.mu.Unlock()
		s.log.Error("failed to load deck cards: %v", err)
		return apperrors.NewInternalError(err)
	}

	queue, msg := SelectDue(all, s.now(), s.limit)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = queue
	s.idx = 0
	s.stats = Stats{}
	s.message = msg
	s.resetCardStateLocked()
	if len(queue) == 0 {
		s.state = StateComplete
	} else {
		s.state = StateActive
	}
	s.epoch++
	s.seq++
	s.log.Info("session started: deck_id=%s, %s", deckID, msg)
	return nil
}

func (s *Session) resetCardStateLocked() {
	s.phase = PhaseQuestion
	s.hintUsed = false
	s.hintText = ""
	s.hintImage = ""
}

// Current returns a copy of the card being presented.
func (s *Session) Current() (models.Flashcard, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive || s.idx >= len(s.queue) {
		return models.Flashcard{}, false
	}
	return s.queue[s.idx], true
}

// RequestHint progresses the hint ladder. The first request reveals an image
// hint when the card has one, otherwise a masked text hint. For image-hint
// cards a second request adds the masked text; once the text hint is shown,
// the next request gives up the answer. Any hint marks the presentation as
// hint-used, which downgrades a later correct response.
func (s *Session) RequestHint() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive {
		return
	}

	switch s.phase {
	case PhaseQuestion:
		card := s.queue[s.idx]
		if card.HintImageURL != "" {
			s.hintImage = card.HintImageURL
		} else {
			s.hintText = MaskAnswer(card.Back)
		}
		s.hintUsed = true
		s.phase = PhaseHint
		s.seq++
	case PhaseHint:
		if s.hintText == "" {
			s.hintText = MaskAnswer(s.queue[s.idx].Back)
			s.seq++
			return
		}
		s.phase = PhaseAnswer
		s.seq++
	}
}

// RevealAnswer shows the answer, bypassing any further hints.
func (s *Session) RevealAnswer() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateActive || s.phase == PhaseAnswer {
		return
	}
	s.phase = PhaseAnswer
	s.seq++
}

// Respond records the user's rating for the current card, persists the
// scheduling update, and advances. The raw rating feeds the session stats;
// the persisted update uses the hint-adjusted effective rating. A store
// failure surfaces as an error but never blocks the session: the queue
// advances regardless.
func (s *Session) Respond(ctx context.Context, rating models.Rating) error {
	s.mu.Lock()
	if s.state != StateActive || s.phase != PhaseAnswer || s.responding {
		s.mu.Unlock()
		return apperrors.NewValidationError("session", "no answer is awaiting a response")
	}
	if !rating.Valid() {
		s.mu.Unlock()
		return apperrors.NewValidationError("rating", "must be correct, hard or incorrect")
	}

	// Claim the presentation before releasing the lock for store I/O, so a
	// manual click and a gesture racing on the same answer act exactly once.
	s.responding = true
	epoch := s.epoch
	card := s.queue[s.idx]
	hintUsed := s.hintUsed
	s.mu.Unlock()

	effective := scheduler.EffectiveRating(rating, hintUsed)
	persistErr := s.persist(ctx, card, rating, effective)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.responding = false

	if s.state != StateActive || s.epoch != epoch {
		// Reset raced the store write; there is nothing left to advance.
		if persistErr != nil {
			return apperrors.NewInternalError(persistErr)
		}
		return nil
	}

	switch rating {
	case models.RatingCorrect:
		s.stats.Correct++
	case models.RatingHard:
		s.stats.Hard++
	case models.RatingIncorrect:
		s.stats.Incorrect++
	}

	s.idx++
	s.resetCardStateLocked()
	if s.idx >= len(s.queue) {
		s.state = StateComplete
		s.log.Info("session complete: %d reviewed", s.stats.Total())
	}
	s.seq++

	if persistErr != nil {
		s.message = "couldn't save that review, moving on"
		s.log.Error("failed to persist review for card %s: %v", card.ID, persistErr)
		return apperrors.NewInternalError(persistErr)
	}
	return nil
}

// persist applies the scheduler to the latest stored record and writes it
// back. The session is the sole writer during a review, so plain
// read-modify-write is safe.
func (s *Session) persist(ctx context.Context, card models.Flashcard, raw, effective models.Rating) error {
	now := s.now()

	latest, err := s.cards.Get(ctx, card.ID)
	if err != nil {
		return err
	}
	if latest == nil {
		return fmt.Errorf("card %s vanished mid-session", card.ID)
	}

	updated := scheduler.Schedule(*latest, effective, now)
	if err := s.cards.Update(ctx, updated); err != nil {
		return err
	}

	if s.logs != nil {
		entry := models.ReviewLog{
			CardID:          card.ID,
			Rating:          raw,
			EffectiveRating: effective,
			ReviewedAt:      now,
		}
		if _, err := s.logs.Insert(ctx, entry); err != nil {
			// History is best-effort; the review itself already saved.
			s.log.Warn("failed to record review history: %v", err)
		}
	}
	return nil
}

// Reset returns the session to Idle from any state, clearing the queue,
// stats, and per-card state, and synchronously releasing gesture resources
// via the teardown hook.
func (s *Session) Reset() {
	s.mu.Lock()
	s.state = StateIdle
	s.queue = nil
	s.idx = 0
	s.stats = Stats{}
	s.message = ""
	s.resetCardStateLocked()
	s.epoch++
	s.seq++
	teardown := s.teardown
	s.mu.Unlock()

	if teardown != nil {
		teardown()
	}
	s.log.Debug("session reset")
}

// State returns the session's top-level state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Phase returns the current card's sub-state.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Active reports whether a card is being presented.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateActive
}

// AnswerVisible reports whether the current card's answer is revealed.
func (s *Session) AnswerVisible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == StateActive && s.phase == PhaseAnswer
}

// Hint returns the revealed text and image hints for the current card.
func (s *Session) Hint() (text, imageURL string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hintText, s.hintImage
}

// HintUsed reports whether a hint was consumed for the current presentation.
func (s *Session) HintUsed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hintUsed
}

// Stats returns the accumulated session statistics.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Message returns the most recent user-facing status message.
func (s *Session) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Progress returns the 1-based position of the current card and the queue
// length.
func (s *Session) Progress() (current, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pos := s.idx + 1
	if pos > len(s.queue) {
		pos = len(s.queue)
	}
	return pos, len(s.queue)
}

// Seq returns a counter that increments on every presentation change. Input
// adapters use it to avoid acting twice on one sub-state from a single held
// gesture.
func (s *Session) Seq() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}
