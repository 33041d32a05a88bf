package activity

import (
	"context"
	"testing"
)

type recordingHook struct {
	events []Event
}

func (h *recordingHook) Notify(_ context.Context, evt Event) error {
	h.events = append(h.events, evt)
	return nil
}

func TestEmitterDefaultsChannelAndEmits(t *testing.T) {
	hook := &recordingHook{}
	em := NewEmitter(Hooks{hook}, Config{Enabled: true})
	if !em.Enabled() {
		t.Fatalf("expected emitter enabled")
	}
	err := em.Emit(context.Background(), Event{
		Verb:       "verb",
		ObjectType: "object",
		ObjectID:   "id",
	})
	if err != nil {
		t.Fatalf("emit returned error: %v", err)
	}
	if len(hook.events) != 1 {
		t.Fatalf("expected event emitted, got %d", len(hook.events))
	}
	if hook.events[0].Channel != DefaultChannel {
		t.Fatalf("expected default channel sales, got %q", hook.events[0].Channel)
	}
}

func TestEmitterDisabledWithoutHooks(t *testing.T) {
	em := NewEmitter(nil, Config{Enabled: true})
	if em.Enabled() {
		t.Fatalf("expected emitter disabled without hooks")
	}
}

func TestEmitterKeepsExplicitChannel(t *testing.T) {
	hook := &recordingHook{}
	em := NewEmitter(Hooks{hook}, Config{Enabled: true, Channel: "ferry"})
	_ = em.Emit(context.Background(), Event{Verb: "v", ObjectType: "o", ObjectID: "1", Channel: "cli"})
	_ = em.Emit(context.Background(), Event{Verb: "v", ObjectType: "o", ObjectID: "2"})
	if len(hook.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(hook.events))
	}
	if hook.events[0].Channel != "cli" || hook.events[1].Channel != "ferry" {
		t.Fatalf("unexpected channels %q %q", hook.events[0].Channel, hook.events[1].Channel)
	}
}

func TestEmitterDisabledByConfig(t *testing.T) {
	hook := &recordingHook{}
	em := NewEmitter(Hooks{hook}, Config{})
	_ = em.Emit(context.Background(), Event{Verb: "v", ObjectType: "o", ObjectID: "1"})
	if len(hook.events) != 0 {
		t.Fatalf("disabled emitter should not forward events")
	}
}
