package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vitafit/backend/internal/telemetry/tracing"
)

// ErrNotInitialized - the assistant was constructed without its required
// collaborators, the process should have refused to start instead
var ErrNotInitialized = errors.New("assistant not initialized")

// GenerationError wraps a retrieval or generation failure for an
// otherwise valid question.
type GenerationError struct {
	Stage string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("assistant %s failed: %s", e.Stage, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}

const retrievedChunksLimit = 3

type llmClient interface {
	ChatCompletion(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
	Embed(ctx context.Context, text string) ([]float32, error)
}

type vectorIndex interface {
	Search(ctx context.Context, vector []float32, limit int) ([]string, error)
}

// ChatResult carries the answer and whether the topic gate rejected the
// question before any retrieval happened.
type ChatResult struct {
	Answer   string
	OffTopic bool
}

// Assistant answers health questions with retrieval augmented
// generation. Chat questions pass through a topic gate first; the
// overview flow is grounded in the user's own data and skips the gate.
type Assistant struct {
	llm   llmClient
	index vectorIndex
}

func NewAssistant(llm llmClient, index vectorIndex) (*Assistant, error) {
	if llm == nil || index == nil {
		return nil, ErrNotInitialized
	}
	return &Assistant{
		llm:   llm,
		index: index,
	}, nil
}

// Chat answers a free-form question. Off-topic questions are rejected
// with the fixed refusal message without touching retrieval or the main
// generation.
func (a *Assistant) Chat(ctx context.Context, question string) (ChatResult, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "assistant.Chat")
	defer span.End()

	if !a.checkOnTopic(ctx, question) {
		return ChatResult{Answer: OffTopicRefusal, OffTopic: true}, nil
	}

	answer, err := a.retrieveAndGenerate(ctx, question)
	if err != nil {
		return ChatResult{}, err
	}
	return ChatResult{Answer: answer}, nil
}

// Overview produces a health overview conditioned on the user's own
// session data, serialized by the caller.
func (a *Assistant) Overview(ctx context.Context, userDataContext string) (string, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "assistant.Overview")
	defer span.End()

	overviewPrompt := fmt.Sprintf(
		`Based on the following user's fitness and diet data, provide a concise and encouraging health overview.
Highlight key aspects, progress, and general recommendations.

User Data:
%s

Health Overview:`,
		userDataContext,
	)

	return a.retrieveAndGenerate(ctx, overviewPrompt)
}

// checkOnTopic asks the classifier the yes/no domain question and fails
// open: a classifier error must never block the chat.
func (a *Assistant) checkOnTopic(ctx context.Context, question string) bool {
	gatePrompt := fmt.Sprintf(
		"Does the following question strictly fall under health, fitness, nutrition, wellness, or exercise science? "+
			"Answer with only 'YES' or 'NO'.\nQuestion: '%s'\nAnswer:",
		question,
	)

	classifierResponse, err := a.llm.ChatCompletion(ctx, gatePrompt, 10, 0)
	if err != nil {
		log.Errorf("topic gate classifier: %s", err)
		return true
	}

	onTopic := IsOnTopic(classifierResponse)
	log.Debugf("topic gate: %q -> %v", strings.TrimSpace(classifierResponse), onTopic)
	return onTopic
}

func (a *Assistant) retrieveAndGenerate(ctx context.Context, question string) (string, error) {
	questionVector, err := a.llm.Embed(ctx, question)
	if err != nil {
		return "", &GenerationError{Stage: "embedding", Err: err}
	}

	retrievedChunks, err := a.index.Search(ctx, questionVector, retrievedChunksLimit)
	if err != nil {
		return "", &GenerationError{Stage: "retrieval", Err: err}
	}

	generationPrompt := fmt.Sprintf(
		`You are VitaFit, a friendly and knowledgeable fitness assistant.
Answer the user's question based on the following retrieved context, using your own words.
- Be concise, supportive, and clear.
- Summarize the key points instead of copying them.
- Do not use paragraph numbers, serials like "1.", or formatting from the original source.
- Focus only on health, diet, nutrition, exercise, and wellness advice.
- Respond like a coach or health advisor.

User Report or Question:
%s

Retrieved Knowledge Base Context:
%s

Answer:`,
		question,
		strings.Join(retrievedChunks, "\n\n"),
	)

	rawAnswer, err := a.llm.ChatCompletion(ctx, generationPrompt, 256, 0.3)
	if err != nil {
		return "", &GenerationError{Stage: "generation", Err: err}
	}

	return CleanResponse(rawAnswer), nil
}
