package question

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"github.com/mohit31102002/SmartHire-AI-interview-Platform/internal/interview"

	"gopkg.in/yaml.v3"
)

//go:embed bank.yaml
var bankYAML []byte

var ErrUnknownRole = errors.New("question: unknown job role")

type bankEntry struct {
	Prompt string `yaml:"prompt"`
	Kind   Kind   `yaml:"kind"`
}

type bankRole struct {
	Fallback  bankEntry   `yaml:"fallback"`
	Questions []bankEntry `yaml:"questions"`
}

type bankData struct {
	Roles map[string]bankRole `yaml:"roles"`
}

// Bank is the static question source: the fixed intro followed by nine
// ordered questions per role plus a per-role fallback, loaded from the
// embedded YAML. It is deterministic and restartable, serves directly when
// no generative model is configured, and is the fallback target for every
// generative failure.
type Bank struct {
	roles map[string]bankRole
}

var (
	loadOnce sync.Once
	loaded   *Bank
	loadErr  error
)

// LoadBank parses the embedded question bank. The result is cached.
func LoadBank() (*Bank, error) {
	loadOnce.Do(func() {
		var data bankData
		if err := yaml.Unmarshal(bankYAML, &data); err != nil {
			loadErr = fmt.Errorf("question: parse bank: %w", err)
			return
		}
		// Index 0 is the intro, so each role stores one question fewer.
		for role, entry := range data.Roles {
			if len(entry.Questions) != interview.QuestionCount-1 {
				loadErr = fmt.Errorf("question: role %q has %d questions, want %d",
					role, len(entry.Questions), interview.QuestionCount-1)
				return
			}
		}
		loaded = &Bank{roles: data.Roles}
	})
	return loaded, loadErr
}

func (e bankEntry) question() Question {
	kind := e.Kind
	if kind == "" {
		kind = KindText
	}
	return Question{Kind: kind, Prompt: e.Prompt}
}

func (b *Bank) Question(ctx context.Context, role string, index int) (Question, error) {
	if index == 0 {
		return Intro(role), nil
	}

	entry, ok := b.roles[role]
	if !ok {
		return Question{}, ErrUnknownRole
	}
	if index < 0 || index > len(entry.Questions) {
		return Question{}, fmt.Errorf("question: index %d out of range", index)
	}
	return entry.Questions[index-1].question(), nil
}

// Fallback returns the per-role fallback question, or a generic prompt
// referencing the role when the role is missing from the table. It cannot
// fail.
func (b *Bank) Fallback(role string) Question {
	if entry, ok := b.roles[role]; ok {
		return entry.Fallback.question()
	}
	return GenericFallback(role)
}

// Feedback produces the deterministic feedback template. The bank has no
// generative capability so the template always embeds the numeric score.
func (b *Bank) Feedback(ctx context.Context, role string, answers []interview.Answer, score int) (string, error) {
	return interview.FallbackFeedback(score), nil
}
