package interview

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mohit31102002/SmartHire-AI-interview-Platform/internal/logger"

	"go.uber.org/zap"
)

var (
	ErrInvalidRole = errors.New("interview: unknown job role")
	ErrEmptyAnswer = errors.New("interview: answer must not be empty")
)

// scoreThreshold is the minimum trimmed answer length counted as acceptable.
const scoreThreshold = 50

// QuestionSource produces question and feedback text for the controller.
// Implementations must be resilient: a returned error means the caller
// falls back to deterministic text, never that the lifecycle stalls.
type QuestionSource interface {
	Feedback(ctx context.Context, role string, answers []Answer, score int) (string, error)
}

// Lifecycle owns every state transition of an interview session. It is the
// single authority for the false→true completed transition, which can be
// triggered by the last answer, the tab-switch limit, or timer expiry, with
// at-most-once effect.
type Lifecycle struct {
	store       Store
	source      QuestionSource
	maxDuration int // seconds
}

func NewLifecycle(store Store, source QuestionSource, maxDurationSec int) *Lifecycle {
	return &Lifecycle{
		store:       store,
		source:      source,
		maxDuration: maxDurationSec,
	}
}

// Start creates a fresh session for role: no answers, counters at zero.
func (l *Lifecycle) Start(ctx context.Context, role string) (*Interview, error) {
	if !ValidRole(role) {
		return nil, ErrInvalidRole
	}
	return l.store.Create(ctx, role)
}

// Get returns the current session state.
func (l *Lifecycle) Get(ctx context.Context, id string) (*Interview, error) {
	return l.store.Get(ctx, id)
}

// SubmitAnswer records (question, answer) for the current question and
// advances the session. Empty or whitespace-only answers are rejected and
// change nothing. Answering the last question finalizes the session.
// Submissions against a completed session are ignored.
func (l *Lifecycle) SubmitAnswer(ctx context.Context, id, question, answer string) (*Interview, error) {
	if strings.TrimSpace(answer) == "" {
		return nil, ErrEmptyAnswer
	}

	iv, err := l.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if iv.Completed {
		return iv, nil
	}

	answers := append(append([]Answer(nil), iv.Answers...), Answer{
		Question: question,
		Answer:   answer,
	})

	iv, err = l.store.Update(ctx, id, Patch{Answers: answers})
	if err != nil {
		return nil, err
	}

	if len(iv.Answers) >= QuestionCount {
		return l.Finalize(ctx, id)
	}
	return iv, nil
}

// RecordTabSwitch increments the proctoring counter. Reaching the limit
// terminates the session regardless of progress; the returned flag reports
// that the session was ended for a policy violation.
func (l *Lifecycle) RecordTabSwitch(ctx context.Context, id string) (*Interview, bool, error) {
	iv, err := l.store.Get(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if iv.Completed {
		return iv, false, nil
	}

	count := iv.TabSwitches + 1
	iv, err = l.store.Update(ctx, id, Patch{TabSwitches: &count})
	if err != nil {
		return nil, false, err
	}

	if iv.TabSwitches >= TabSwitchLimit {
		iv, err = l.Finalize(ctx, id)
		return iv, true, err
	}
	return iv, false, nil
}

// Tick advances the elapsed duration to elapsedSec. Duration is monotonic:
// a report lower than the stored value is ignored. Reaching the configured
// ceiling finalizes the session.
func (l *Lifecycle) Tick(ctx context.Context, id string, elapsedSec int) (*Interview, error) {
	iv, err := l.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if iv.Completed {
		return iv, nil
	}

	if elapsedSec > l.maxDuration {
		elapsedSec = l.maxDuration
	}
	if elapsedSec > iv.Duration {
		iv, err = l.store.Update(ctx, id, Patch{Duration: &elapsedSec})
		if err != nil {
			return nil, err
		}
	}

	if iv.Duration >= l.maxDuration {
		return l.Finalize(ctx, id)
	}
	return iv, nil
}

// Finalize is the single authoritative completion transition. It is
// idempotent: a completed session is returned unchanged. The score is the
// count of answers whose trimmed length exceeds the threshold; feedback
// comes from the question source, degrading to a deterministic template on
// failure. Finalization never fails to terminate a session because of the
// generative model.
func (l *Lifecycle) Finalize(ctx context.Context, id string) (*Interview, error) {
	iv, err := l.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if iv.Completed {
		return iv, nil
	}

	score := Score(iv.Answers)

	feedback, err := l.source.Feedback(ctx, iv.Role, iv.Answers, score)
	if err != nil || strings.TrimSpace(feedback) == "" {
		if err != nil {
			logger.Warn("feedback generation failed, using fallback",
				zap.String("interview_id", id), zap.Error(err))
		}
		feedback = FallbackFeedback(score)
	}

	completed := true
	return l.store.Update(ctx, id, Patch{
		Score:     &score,
		Feedback:  &feedback,
		Completed: &completed,
	})
}

// Score counts the answers whose trimmed length exceeds the acceptance
// threshold.
func Score(answers []Answer) int {
	score := 0
	for _, a := range answers {
		if len(strings.TrimSpace(a.Answer)) > scoreThreshold {
			score++
		}
	}
	return score
}

// FallbackFeedback is the deterministic feedback used when the generative
// call fails. It always embeds the numeric score.
func FallbackFeedback(score int) string {
	return fmt.Sprintf(
		"You completed the interview with a score of %d out of %d. "+
			"Answers with more depth and concrete detail score higher; "+
			"review the questions you answered briefly and practice expanding on them.",
		score, QuestionCount,
	)
}
