package session

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VictorTPhan/ella-app/internal/content"
	"github.com/VictorTPhan/ella-app/internal/gateway"
	"github.com/VictorTPhan/ella-app/internal/llm"
)

type fakeTopics struct {
	calls  int
	topics []string
	err    error
}

func (f *fakeTopics) Topic(context.Context) (*content.TopicInfo, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	t := f.topics[(f.calls-1)%len(f.topics)]
	return &content.TopicInfo{Topic: t, Tutorial: "how to say " + t}, nil
}

// fakeProvider builds stage data from a gateway backed by canned replies.
type fakeProvider struct {
	calls  int
	topics []string
	err    error
	kind   content.Kind
}

func (f *fakeProvider) Provide(ctx context.Context, topic string) (*content.StageData, error) {
	f.calls++
	f.topics = append(f.topics, topic)
	if f.err != nil {
		return nil, f.err
	}
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"mutation_1":"a-peul","mutation_2":"ap-eu","mutation_3":"a-pool"}`),
	})
	set, err := content.NewAnswerBuilder(gateway.New(mock), rand.New(rand.NewPCG(1, 1))).
		Build(ctx, "ap-eul", "because")
	if err != nil {
		return nil, err
	}
	return &content.StageData{Kind: f.kind, Prompt: topic, AnswerSet: *set}, nil
}

type fixture struct {
	topics    *fakeTopics
	providers map[Stage]*fakeProvider
	events    []Event
	s         *Session
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		topics: &fakeTopics{topics: []string{"apple", "sea"}},
		providers: map[Stage]*fakeProvider{
			StageHangul:    {kind: content.KindHangul},
			StageEnglish:   {kind: content.KindEnglish},
			StageFillBlank: {kind: content.KindFillBlank},
		},
	}
	table := map[Stage]content.Provider{}
	for st, p := range f.providers {
		table[st] = p
	}
	f.s = New(f.topics, table, WithID("test-session"), WithObserver(func(e Event) {
		f.events = append(f.events, e)
	}))
	return f
}

func (f *fixture) generated() int {
	n := f.topics.calls
	for _, p := range f.providers {
		n += p.calls
	}
	return n
}

func TestNew(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, StageTopic, f.s.Stage())
	assert.Equal(t, "test-session", f.s.ID())
	assert.Equal(t, 1, f.s.Round())
	assert.False(t, f.s.Ended())
	_, ok := f.s.Topic()
	assert.False(t, ok)
	require.Len(t, f.events, 1)
	assert.Equal(t, EventStart, f.events[0].Kind)

	assert.NotEmpty(t, New(f.topics, nil).ID(), "generated ID")
}

func TestEnterStage_TopicIsMemoized(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.s.EnterStage(ctx))
	require.NoError(t, f.s.EnterStage(ctx))

	info, ok := f.s.Topic()
	require.True(t, ok)
	assert.Equal(t, "apple", info.Topic)
	assert.Equal(t, 1, f.topics.calls)
}

func TestEnterStage_QuizStagesAreMemoized(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.s.EnterStage(ctx))

	for _, st := range QuizStages {
		require.NoError(t, f.s.Advance())
		require.Equal(t, st, f.s.Stage())
		require.NoError(t, f.s.EnterStage(ctx))

		data, ok := f.s.StageData(st)
		require.True(t, ok)
		choices := data.Choices()
		assert.Len(t, choices, content.ChoiceCount)
		n := 0
		for _, c := range choices {
			if c == data.CorrectAnswer {
				n++
			}
		}
		assert.Equal(t, 1, n, "correct answer appears exactly once")

		before := f.generated()
		require.NoError(t, f.s.EnterStage(ctx))
		again, _ := f.s.StageData(st)
		assert.Equal(t, choices, again.Choices(), "choices stable across re-entry")
		assert.Equal(t, before, f.generated(), "re-entry makes no generation call")
		assert.Equal(t, []string{"apple"}, f.providers[st].topics)
	}
}

func TestEnterStage_ContinueIsNoop(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.s.EnterStage(ctx))
	for range 4 {
		require.NoError(t, f.s.Advance())
	}
	require.Equal(t, StageContinue, f.s.Stage())

	before := f.generated()
	require.NoError(t, f.s.EnterStage(ctx))
	assert.Equal(t, before, f.generated())
}

func TestEnterStage_FailureLeavesNoMemo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.s.EnterStage(ctx))
	require.NoError(t, f.s.Advance())

	genErr := &gateway.GenerationError{Contract: "hangul-phonetics", Err: &gateway.MissingKeyError{Key: "final_sequence"}}
	f.providers[StageHangul].err = genErr

	err := f.s.EnterStage(ctx)
	var got *gateway.GenerationError
	require.ErrorAs(t, err, &got)
	_, ok := f.s.StageData(StageHangul)
	assert.False(t, ok)
	assert.Equal(t, StageHangul, f.s.Stage())

	f.providers[StageHangul].err = nil
	require.NoError(t, f.s.EnterStage(ctx))
	_, ok = f.s.StageData(StageHangul)
	assert.True(t, ok)
}

func TestEnterStage_TopicFailure(t *testing.T) {
	f := newFixture(t)
	f.topics.err = &gateway.GenerationError{Contract: "topic", Err: errors.New("offline")}

	err := f.s.EnterStage(context.Background())
	assert.True(t, gateway.IsGenerationError(err))
	_, ok := f.s.Topic()
	assert.False(t, ok)
}

func TestEnterStage_QuizStageWithoutTopic(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.s.Advance())

	err := f.s.EnterStage(context.Background())
	var inv *InvalidTransitionError
	require.ErrorAs(t, err, &inv)
	assert.Equal(t, StageHangul, inv.Stage)
	assert.Zero(t, f.providers[StageHangul].calls)
}

func TestCheckAnswer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.s.EnterStage(ctx))
	require.NoError(t, f.s.Advance())
	require.NoError(t, f.s.EnterStage(ctx))

	tests := []struct {
		chosen string
		want   bool
	}{
		{"ap-eul", true},
		{"a-peul", false},
		{"ap-eul ", false},
		{"AP-EUL", false},
		{"", false},
	}
	for _, tt := range tests {
		v, err := f.s.CheckAnswer(StageHangul, tt.chosen)
		require.NoError(t, err)
		assert.Equal(t, tt.want, v.Correct, "chosen %q", tt.chosen)
		assert.Equal(t, "ap-eul", v.CorrectAnswer)
		assert.Equal(t, "because", v.Explanation)
	}
	assert.Equal(t, StageHangul, f.s.Stage(), "checking does not move the stage")
}

func TestCheckAnswer_InvalidStages(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.s.EnterStage(context.Background()))

	for _, st := range []Stage{StageTopic, StageHangul, StageContinue, Stage(9)} {
		_, err := f.s.CheckAnswer(st, "ap-eul")
		var inv *InvalidTransitionError
		assert.ErrorAs(t, err, &inv, "stage %s", st)
	}
}

func TestAdvance_IsMonotonicAndBounded(t *testing.T) {
	f := newFixture(t)
	prev := f.s.Stage()
	for range 10 {
		require.NoError(t, f.s.Advance())
		cur := f.s.Stage()
		assert.GreaterOrEqual(t, int(cur), int(prev))
		assert.LessOrEqual(t, int(cur), int(StageContinue))
		prev = cur
	}
	assert.Equal(t, StageContinue, f.s.Stage())
}

func TestReset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.s.EnterStage(ctx))
	require.NoError(t, f.s.Advance())
	require.NoError(t, f.s.EnterStage(ctx))

	require.NoError(t, f.s.Reset())
	assert.Equal(t, StageTopic, f.s.Stage())
	assert.Equal(t, 2, f.s.Round())
	_, ok := f.s.Topic()
	assert.False(t, ok)
	_, ok = f.s.StageData(StageHangul)
	assert.False(t, ok)

	require.NoError(t, f.s.EnterStage(ctx))
	assert.Equal(t, 2, f.topics.calls)
	info, _ := f.s.Topic()
	assert.Equal(t, "sea", info.Topic)
}

func TestEnd(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.s.EnterStage(ctx))
	require.NoError(t, f.s.End())
	assert.True(t, f.s.Ended())

	assert.ErrorIs(t, f.s.EnterStage(ctx), ErrSessionEnded)
	_, err := f.s.CheckAnswer(StageHangul, "x")
	assert.ErrorIs(t, err, ErrSessionEnded)
	assert.ErrorIs(t, f.s.Advance(), ErrSessionEnded)
	assert.ErrorIs(t, f.s.Reset(), ErrSessionEnded)
	assert.ErrorIs(t, f.s.End(), ErrSessionEnded)

	info, ok := f.s.Topic()
	assert.True(t, ok, "accessors work after end")
	assert.Equal(t, "apple", info.Topic)
}

func TestObserverEvents(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.s.EnterStage(ctx))
	require.NoError(t, f.s.EnterStage(ctx)) // no-op, no event
	require.NoError(t, f.s.Advance())
	require.NoError(t, f.s.EnterStage(ctx))
	_, err := f.s.CheckAnswer(StageHangul, "a-peul")
	require.NoError(t, err)
	require.NoError(t, f.s.Reset())
	require.NoError(t, f.s.End())

	kinds := make([]EventKind, 0, len(f.events))
	for _, e := range f.events {
		kinds = append(kinds, e.Kind)
		assert.Equal(t, "test-session", e.SessionID)
	}
	assert.Equal(t, []EventKind{EventStart, EventEnter, EventAdvance, EventEnter, EventAnswer, EventReset, EventEnd}, kinds)

	answer := f.events[4]
	assert.Equal(t, StageHangul, answer.Stage)
	assert.Equal(t, "apple", answer.Topic)
	assert.Equal(t, "a-peul", answer.Chosen)
	assert.False(t, answer.Verdict.Correct)
	assert.Equal(t, 2, f.events[5].Round)
}

func TestSnapshotIsACopy(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.s.EnterStage(ctx))
	require.NoError(t, f.s.Advance())
	require.NoError(t, f.s.EnterStage(ctx))

	snap := f.s.Snapshot()
	snap.TopicInfo.Topic = "changed"
	delete(snap.Memo, StageHangul)

	info, _ := f.s.Topic()
	assert.Equal(t, "apple", info.Topic)
	_, ok := f.s.StageData(StageHangul)
	assert.True(t, ok)
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "fill-blank", StageFillBlank.String())
	assert.Equal(t, "stage(7)", Stage(7).String())
	assert.True(t, StageEnglish.IsQuiz())
	assert.False(t, StageContinue.IsQuiz())
}
