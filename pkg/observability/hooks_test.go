package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

type event struct {
	stage, subject string
	done           bool
	count          int
	err            error
}

type testPipelineHooks struct {
	events []event
}

func (h *testPipelineHooks) OnStageStart(_ context.Context, stage, subject string) {
	h.events = append(h.events, event{stage: stage, subject: subject})
}

func (h *testPipelineHooks) OnStageComplete(_ context.Context, stage, subject string, count int, _ time.Duration, err error) {
	h.events = append(h.events, event{stage: stage, subject: subject, done: true, count: count, err: err})
}

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()
	p := NoopPipelineHooks{}
	p.OnStageStart(ctx, StagePlan, "puppies")
	p.OnStageComplete(ctx, StagePlan, "puppies", 3, time.Second, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	if Pipeline() != custom {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)
	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should keep the previous hooks")
	}
}

func TestTrack(t *testing.T) {
	Reset()
	defer Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)

	boom := errors.New("boom")
	done := Track(context.Background(), StagePopulate, "kittens")
	done(2, boom)

	if len(custom.events) != 2 {
		t.Fatalf("events = %d, want 2", len(custom.events))
	}
	start, end := custom.events[0], custom.events[1]
	if start.done || start.stage != StagePopulate || start.subject != "kittens" {
		t.Errorf("start event = %+v", start)
	}
	if !end.done || end.count != 2 || end.err != boom {
		t.Errorf("complete event = %+v", end)
	}
}
