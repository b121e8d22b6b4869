// Package question supplies interview question and feedback text, backed
// by a generative model with deterministic fallbacks. Retrieval never
// fails: every path degrades to bank text rather than surfacing an error
// from the external call.
package question

import (
	"context"
	"fmt"

	"github.com/mohit31102002/SmartHire-AI-interview-Platform/internal/interview"
)

// Kind tags how a question is meant to be answered. It is decided at
// generation time; nothing downstream infers it from the prompt text.
type Kind string

const (
	KindText Kind = "text"
	KindCode Kind = "code"
)

// Question is one interview question ready for display.
type Question struct {
	Kind   Kind   `json:"kind"`
	Prompt string `json:"question"`
}

// Source produces question and feedback text for a role.
type Source interface {
	// Question returns the question at index (0..9) for role. Index 0 is
	// always the fixed introductory prompt.
	Question(ctx context.Context, role string, index int) (Question, error)
	// Feedback produces a short critique of the finished interview.
	Feedback(ctx context.Context, role string, answers []interview.Answer, score int) (string, error)
}

// Intro is the fixed first question for every session. It is never
// delegated to the generative model.
func Intro(role string) Question {
	return Question{
		Kind:   KindText,
		Prompt: "Tell me about yourself and your experience in " + role,
	}
}

// GenericFallback is used when a role is missing from the fallback table.
func GenericFallback(role string) Question {
	return Question{
		Kind:   KindText,
		Prompt: fmt.Sprintf("What are your strengths and weaknesses as a %s?", role),
	}
}
