package picker

import (
	"errors"
	"testing"
)

func TestSelectionStateTransitions(t *testing.T) {
	t.Parallel()

	state := NewSelectionState()
	if state.Phase() != PhaseEmpty {
		t.Fatalf("expected empty phase, got %s", state.Phase())
	}

	first := mustParseDate(t, "2024-06-20")
	state.SelectDate(first)
	if state.Phase() != PhaseDateOnly {
		t.Fatalf("expected date_only phase, got %s", state.Phase())
	}

	if err := state.SelectTime("14:00"); err != nil {
		t.Fatalf("select time: %v", err)
	}
	if state.Phase() != PhaseComplete {
		t.Fatalf("expected complete phase, got %s", state.Phase())
	}

	if err := state.SelectTime("15:00"); err != nil {
		t.Fatalf("replace time: %v", err)
	}
	draft, err := state.ToDraft()
	if err != nil {
		t.Fatalf("to draft: %v", err)
	}
	if draft.Date != first || draft.Time != "15:00" {
		t.Fatalf("expected last-set pair, got %+v", draft)
	}

	state.SelectDate(mustParseDate(t, "2024-06-21"))
	if state.Phase() != PhaseDateOnly {
		t.Fatalf("expected new date to invalidate time, got %s", state.Phase())
	}
	if _, ok := state.Time(); ok {
		t.Fatal("expected time to be absent after date change")
	}
}

func TestSelectTimeWithoutDateLeavesStateUnchanged(t *testing.T) {
	t.Parallel()

	state := NewSelectionState()
	if err := state.SelectTime("10:00"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if state.Phase() != PhaseEmpty {
		t.Fatalf("expected state to stay empty, got %s", state.Phase())
	}
	if _, ok := state.Time(); ok {
		t.Fatal("expected time to stay absent")
	}
}

func TestSelectTimeRejectsBlankLabel(t *testing.T) {
	t.Parallel()

	state := NewSelectionState()
	state.SelectDate(mustParseDate(t, "2024-06-20"))
	if err := state.SelectTime("  "); !errors.Is(err, ErrEmptySlotLabel) {
		t.Fatalf("expected ErrEmptySlotLabel, got %v", err)
	}
	if state.Phase() != PhaseDateOnly {
		t.Fatalf("expected date_only phase, got %s", state.Phase())
	}
}

func TestToDraftRequiresBothFields(t *testing.T) {
	t.Parallel()

	state := NewSelectionState()
	if _, err := state.ToDraft(); !errors.Is(err, ErrIncompleteSelection) {
		t.Fatalf("expected ErrIncompleteSelection on empty state, got %v", err)
	}

	state.SelectDate(mustParseDate(t, "2024-06-20"))
	state.SelectDate(mustParseDate(t, "2024-06-21"))
	if _, err := state.ToDraft(); !errors.Is(err, ErrIncompleteSelection) {
		t.Fatalf("expected ErrIncompleteSelection after reselecting date, got %v", err)
	}
}

func TestSelectDateAlwaysClearsTime(t *testing.T) {
	t.Parallel()

	date := mustParseDate(t, "2024-06-20")
	state := NewSelectionState()
	state.SelectDate(date)
	if err := state.SelectTime("09:00"); err != nil {
		t.Fatalf("select time: %v", err)
	}

	state.SelectDate(date)
	if _, ok := state.Time(); ok {
		t.Fatal("expected reselecting the same date to clear time")
	}
}

func TestSelectDateNotifiesSubscribersWithIncreasingSequence(t *testing.T) {
	t.Parallel()

	state := NewSelectionState()
	received := make([]DateSelected, 0, 2)
	state.Subscribe(func(event DateSelected) {
		received = append(received, event)
	})

	first := state.SelectDate(mustParseDate(t, "2024-06-20"))
	second := state.SelectDate(mustParseDate(t, "2024-06-20"))

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if received[0] != first || received[1] != second {
		t.Fatalf("expected subscriber events to match returned events, got %+v", received)
	}
	if second.Seq <= first.Seq {
		t.Fatalf("expected increasing sequence, got %d then %d", first.Seq, second.Seq)
	}
	if state.IsCurrent(first) {
		t.Fatal("expected first event to be stale")
	}
	if !state.IsCurrent(second) {
		t.Fatal("expected second event to be current")
	}
}

func TestDraftPayloadRoundTrip(t *testing.T) {
	t.Parallel()

	state := NewSelectionState()
	state.SelectDate(mustParseDate(t, "2024-06-05"))
	if err := state.SelectTime("09:30"); err != nil {
		t.Fatalf("select time: %v", err)
	}
	draft, err := state.ToDraft()
	if err != nil {
		t.Fatalf("to draft: %v", err)
	}

	payload, err := draft.Payload()
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	if string(payload) != `{"date":"2024-06-05","time":"09:30"}` {
		t.Fatalf("unexpected payload %s", payload)
	}

	decoded, err := DecodeDraftPayload(payload)
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if decoded != draft {
		t.Fatalf("expected %+v, got %+v", draft, decoded)
	}

	if _, err := DecodeDraftPayload([]byte(`{"date":"2024-06-05"}`)); !errors.Is(err, ErrIncompleteSelection) {
		t.Fatalf("expected partial payload to be rejected, got %v", err)
	}
}
