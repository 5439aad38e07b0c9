package assistant

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeLLM struct {
	gateResponse   string
	gateErr        error
	answerResponse string
	answerErr      error
	embedErr       error

	chatPrompts []string
	embedded    []string
}

func (f *fakeLLM) ChatCompletion(_ context.Context, prompt string, _ int, _ float64) (string, error) {
	f.chatPrompts = append(f.chatPrompts, prompt)
	if strings.Contains(prompt, "Answer with only 'YES' or 'NO'") {
		return f.gateResponse, f.gateErr
	}
	return f.answerResponse, f.answerErr
}

func (f *fakeLLM) Embed(_ context.Context, text string) ([]float32, error) {
	f.embedded = append(f.embedded, text)
	if f.embedErr != nil {
		return nil, f.embedErr
	}
	return []float32{0.1, 0.2}, nil
}

type fakeIndex struct {
	chunks    []string
	searchErr error
	lastLimit int
}

func (f *fakeIndex) Search(_ context.Context, _ []float32, limit int) ([]string, error) {
	f.lastLimit = limit
	return f.chunks, f.searchErr
}

func TestAssistant_Chat_OnTopic(t *testing.T) {
	llm := &fakeLLM{
		gateResponse:   "YES",
		answerResponse: "1. Eat more protein\n2) Sleep well",
	}
	index := &fakeIndex{chunks: []string{"protein chunk", "sleep chunk"}}

	a, err := NewAssistant(llm, index)
	require.NoError(t, err)

	result, err := a.Chat(context.Background(), "how much protein do I need?")
	require.NoError(t, err)
	assert.False(t, result.OffTopic)
	assert.Equal(t, "Eat more protein\nSleep well", result.Answer)

	assert.Equal(t, 3, index.lastLimit)
	assert.Equal(t, []string{"how much protein do I need?"}, llm.embedded)
	// the generation prompt carries the retrieved context
	require.Len(t, llm.chatPrompts, 2)
	assert.Contains(t, llm.chatPrompts[1], "protein chunk")
	assert.Contains(t, llm.chatPrompts[1], "sleep chunk")
}

func TestAssistant_Chat_OffTopic(t *testing.T) {
	llm := &fakeLLM{gateResponse: "NO"}
	index := &fakeIndex{}

	a, err := NewAssistant(llm, index)
	require.NoError(t, err)

	result, err := a.Chat(context.Background(), "what is the capital of France?")
	require.NoError(t, err)
	assert.True(t, result.OffTopic)
	assert.Equal(t, OffTopicRefusal, result.Answer)

	// rejection happens before retrieval and generation
	assert.Empty(t, llm.embedded)
	assert.Len(t, llm.chatPrompts, 1)
}

func TestAssistant_Chat_GateFailsOpen(t *testing.T) {
	llm := &fakeLLM{
		gateErr:        errors.New("classifier down"),
		answerResponse: "an answer",
	}
	index := &fakeIndex{chunks: []string{"chunk"}}

	a, err := NewAssistant(llm, index)
	require.NoError(t, err)

	result, err := a.Chat(context.Background(), "does sleep matter?")
	require.NoError(t, err)
	assert.False(t, result.OffTopic)
	assert.Equal(t, "an answer", result.Answer)
}

func TestAssistant_Chat_RetrievalError(t *testing.T) {
	llm := &fakeLLM{gateResponse: "YES"}
	index := &fakeIndex{searchErr: errors.New("qdrant down")}

	a, err := NewAssistant(llm, index)
	require.NoError(t, err)

	_, err = a.Chat(context.Background(), "how much protein?")
	require.Error(t, err)

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, "retrieval", genErr.Stage)
}

func TestAssistant_Overview_SkipsGate(t *testing.T) {
	llm := &fakeLLM{answerResponse: "you are doing great"}
	index := &fakeIndex{chunks: []string{"chunk"}}

	a, err := NewAssistant(llm, index)
	require.NoError(t, err)

	overview, err := a.Overview(context.Background(), `{"age": 30}`)
	require.NoError(t, err)
	assert.Equal(t, "you are doing great", overview)

	// a single completion call: no gate question was asked
	require.Len(t, llm.chatPrompts, 1)
	assert.Contains(t, llm.chatPrompts[0], `{"age": 30}`)
}

func TestNewAssistant_NotInitialized(t *testing.T) {
	_, err := NewAssistant(nil, nil)
	assert.ErrorIs(t, err, ErrNotInitialized)

	_, err = NewAssistant(&fakeLLM{}, nil)
	assert.ErrorIs(t, err, ErrNotInitialized)
}
