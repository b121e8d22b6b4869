package question

import (
	"context"
	"errors"
	"testing"

	"github.com/mohit31102002/SmartHire-AI-interview-Platform/internal/interview"

	"github.com/stretchr/testify/require"
)

// geminiWith builds a Gemini source whose model call is replaced, so the
// fallback paths can be exercised without network access.
func geminiWith(t *testing.T, generate generateFunc) *Gemini {
	t.Helper()
	bank, err := LoadBank()
	require.NoError(t, err)
	return &Gemini{generate: generate, bank: bank}
}

func TestGeminiQuestionFallsBackOnError(t *testing.T) {
	g := geminiWith(t, func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("quota exceeded")
	})

	for i := 1; i < interview.QuestionCount; i++ {
		q, err := g.Question(context.Background(), "Python Developer", i)
		require.NoError(t, err)
		require.Equal(t, g.bank.Fallback("Python Developer"), q)
	}
}

func TestGeminiQuestionFallsBackOnEmptyResponse(t *testing.T) {
	g := geminiWith(t, func(ctx context.Context, prompt string) (string, error) {
		return "   \n", nil
	})

	q, err := g.Question(context.Background(), "Web Developer", 3)
	require.NoError(t, err)
	require.Equal(t, g.bank.Fallback("Web Developer"), q)
}

func TestGeminiQuestionIntroSkipsModel(t *testing.T) {
	g := geminiWith(t, func(ctx context.Context, prompt string) (string, error) {
		t.Fatal("model must not be called for the intro")
		return "", nil
	})

	q, err := g.Question(context.Background(), "Data Analyst", 0)
	require.NoError(t, err)
	require.Equal(t, Intro("Data Analyst"), q)
}

func TestGeminiQuestionTagsCodeChallenges(t *testing.T) {
	g := geminiWith(t, func(ctx context.Context, prompt string) (string, error) {
		return codeMarker + " Write a function that reverses a linked list.", nil
	})

	q, err := g.Question(context.Background(), "Java Developer", 5)
	require.NoError(t, err)
	require.Equal(t, KindCode, q.Kind)
	require.Equal(t, "Write a function that reverses a linked list.", q.Prompt)
}

func TestGeminiFeedbackFallsBackOnError(t *testing.T) {
	g := geminiWith(t, func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("model unavailable")
	})

	fb, err := g.Feedback(context.Background(), "Backend Developer", nil, 6)
	require.NoError(t, err)
	require.Equal(t, interview.FallbackFeedback(6), fb)
}

func TestQuestionPromptMentionsRoleAndIndex(t *testing.T) {
	prompt := buildQuestionPrompt("Backend Developer", 4)

	require.Contains(t, prompt, "Backend Developer")
	require.Contains(t, prompt, "Question number: 4")
	require.Contains(t, prompt, codeMarker)
}

func TestFeedbackPromptIncludesDialogue(t *testing.T) {
	prompt := buildFeedbackPrompt("Data Scientist", nil, 3)
	require.Contains(t, prompt, "Data Scientist")
	require.Contains(t, prompt, "scored 3")
}
