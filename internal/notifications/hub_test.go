package notifications

import (
	"strings"
	"testing"
)

func TestHubBroadcast(t *testing.T) {
	hub := NewHub()
	id1, ch1 := hub.Register()
	_, ch2 := hub.Register()

	if hub.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", hub.Len())
	}

	hub.Emit("order_created", map[string]interface{}{"orderId": 1, "tableId": 2})

	for i, ch := range []<-chan []byte{ch1, ch2} {
		select {
		case frame := <-ch:
			got := string(frame)
			if !strings.HasPrefix(got, "event: order_created\n") {
				t.Errorf("listener %d frame = %q, want order_created event line", i, got)
			}
			if !strings.Contains(got, `"orderId":1`) {
				t.Errorf("listener %d frame missing payload: %q", i, got)
			}
			if !strings.HasSuffix(got, "\n\n") {
				t.Errorf("listener %d frame not terminated: %q", i, got)
			}
		default:
			t.Errorf("listener %d received nothing", i)
		}
	}

	hub.Unregister(id1)
	if hub.Len() != 1 {
		t.Errorf("Len() = %d after unregister, want 1", hub.Len())
	}
}

func TestHubNoReplayForLateListeners(t *testing.T) {
	hub := NewHub()
	hub.Emit("table_updated", map[string]interface{}{"tableId": 1})

	_, ch := hub.Register()
	select {
	case frame := <-ch:
		t.Errorf("late listener received %q, want nothing", frame)
	default:
	}
}

func TestHubSlowListenerDoesNotBlockOthers(t *testing.T) {
	hub := NewHub()
	_, slow := hub.Register()
	_, healthy := hub.Register()

	// Saturate the slow listener's buffer, then keep emitting.
	for i := 0; i < 32; i++ {
		hub.Emit("table_updated", map[string]interface{}{"seq": i})
	}

	drained := 0
	for {
		select {
		case <-healthy:
			drained++
			continue
		default:
		}
		break
	}
	if drained == 0 {
		t.Error("healthy listener starved by a slow one")
	}
	if len(slow) == 0 {
		t.Error("expected the slow listener's buffer to hold frames")
	}
}

func TestHubSequenceIDsAreUnique(t *testing.T) {
	hub := NewHub()
	seen := make(map[uint64]bool)
	for i := 0; i < 10; i++ {
		id, _ := hub.Register()
		if seen[id] {
			t.Fatalf("duplicate listener id %d", id)
		}
		seen[id] = true
	}
}
