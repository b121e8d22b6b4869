package question

import (
	"context"
	"fmt"
	"strings"

	"github.com/mohit31102002/SmartHire-AI-interview-Platform/internal/interview"
	"github.com/mohit31102002/SmartHire-AI-interview-Platform/internal/logger"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

// codeMarker is the prefix the model is instructed to emit for coding
// challenges. It is stripped before display; only the Kind tag survives.
const codeMarker = "CODE:"

// generateFunc produces the model's text completion for a prompt.
type generateFunc func(ctx context.Context, prompt string) (string, error)

// Gemini generates questions and feedback with the Google Gemini API.
// Every failure path falls back to the static bank, so retrieval never
// propagates the external call's error to the caller.
type Gemini struct {
	generate generateFunc
	bank     *Bank
}

func NewGemini(ctx context.Context, apiKey, model string, bank *Bank) (*Gemini, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("question: gemini api key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("question: create gemini client: %w", err)
	}

	generate := func(ctx context.Context, prompt string) (string, error) {
		resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
		if err != nil {
			return "", err
		}
		return resp.Text(), nil
	}

	return &Gemini{generate: generate, bank: bank}, nil
}

func (g *Gemini) Question(ctx context.Context, role string, index int) (Question, error) {
	if index == 0 {
		return Intro(role), nil
	}

	prompt := buildQuestionPrompt(role, index)

	raw, err := g.generate(ctx, prompt)
	if err != nil {
		logger.Warn("question generation failed, using bank fallback",
			zap.String("role", role), zap.Int("index", index), zap.Error(err))
		return g.bank.Fallback(role), nil
	}

	text := strings.TrimSpace(raw)
	if text == "" {
		return g.bank.Fallback(role), nil
	}

	kind := KindText
	if rest, ok := strings.CutPrefix(text, codeMarker); ok {
		kind = KindCode
		text = strings.TrimSpace(rest)
	}

	return Question{Kind: kind, Prompt: text}, nil
}

func (g *Gemini) Feedback(ctx context.Context, role string, answers []interview.Answer, score int) (string, error) {
	prompt := buildFeedbackPrompt(role, answers, score)

	raw, err := g.generate(ctx, prompt)
	if err != nil {
		logger.Warn("feedback generation failed, using template",
			zap.String("role", role), zap.Error(err))
		return interview.FallbackFeedback(score), nil
	}

	text := strings.TrimSpace(raw)
	if text == "" {
		return interview.FallbackFeedback(score), nil
	}
	return text, nil
}

func buildQuestionPrompt(role string, index int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate a relevant technical interview question for a %s position.\n", role)
	b.WriteString("The question should:\n")
	b.WriteString("- Be specific to the role's technical requirements\n")
	b.WriteString("- Be clear and concise\n")
	b.WriteString("- Be challenging but answerable in 2-3 minutes\n")
	b.WriteString("- Not be a yes/no question\n")
	b.WriteString("- Focus on practical knowledge and experience\n")
	b.WriteString("- If appropriate, include a small coding challenge (e.g., \"Write a function that...\")\n")
	b.WriteString("- Avoid questions that are too theoretical or academic\n")
	b.WriteString("- Be appropriate for a real interview setting\n\n")
	fmt.Fprintf(&b, "Question number: %d (out of %d)\n\n", index, interview.QuestionCount)
	b.WriteString("For coding questions, keep them simple enough to be implemented in 2-3 minutes ")
	b.WriteString("and start your response with the exact prefix \"" + codeMarker + "\".\n")
	b.WriteString("For non-coding questions, focus on real-world scenarios and problem-solving.\n\n")
	b.WriteString("Return only the question text, without any additional formatting or numbering.")

	return b.String()
}

func buildFeedbackPrompt(role string, answers []interview.Answer, score int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an experienced technical interviewer. A candidate just finished a mock interview for a %s position ", role)
	fmt.Fprintf(&b, "and scored %d out of %d.\n\n", score, interview.QuestionCount)

	b.WriteString("QUESTIONS AND ANSWERS:\n")
	for i, qa := range answers {
		fmt.Fprintf(&b, "%d. Question: %s\n", i+1, qa.Question)
		fmt.Fprintf(&b, "   Answer: %s\n\n", qa.Answer)
	}

	b.WriteString("Write a short, constructive critique (3-5 sentences) of the candidate's performance: ")
	b.WriteString("what was strong, what was weak, and the single most useful thing to improve. ")
	b.WriteString("Address the candidate directly. Return plain text only.")

	return b.String()
}
