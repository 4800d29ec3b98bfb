package picker

import "strings"

type Phase int

const (
	PhaseEmpty Phase = iota
	PhaseDateOnly
	PhaseComplete
)

func (phase Phase) String() string {
	switch phase {
	case PhaseEmpty:
		return "empty"
	case PhaseDateOnly:
		return "date_only"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// DateSelected is emitted on every SelectDate call. Seq increases by one per
// selection, so an availability result can be matched against the selection it
// was requested for even when the same date is picked twice.
type DateSelected struct {
	Date Date
	Seq  uint64
}

// SelectionState holds the booking draft for one session. A time is only
// meaningful for the date it was fetched against, so selecting a date always
// drops the time.
type SelectionState struct {
	date      Date
	hasDate   bool
	time      string
	hasTime   bool
	seq       uint64
	listeners []func(DateSelected)
}

func NewSelectionState() *SelectionState {
	return &SelectionState{}
}

// Subscribe registers listener for DateSelected events. Listeners run
// synchronously inside SelectDate, in registration order.
func (state *SelectionState) Subscribe(listener func(DateSelected)) {
	if listener == nil {
		return
	}
	state.listeners = append(state.listeners, listener)
}

func (state *SelectionState) SelectDate(date Date) DateSelected {
	state.date = date
	state.hasDate = true
	state.time = ""
	state.hasTime = false
	state.seq++

	event := DateSelected{Date: date, Seq: state.seq}
	for _, listener := range state.listeners {
		listener(event)
	}
	return event
}

func (state *SelectionState) SelectTime(label string) error {
	if !state.hasDate {
		return ErrInvalidState
	}
	if strings.TrimSpace(label) == "" {
		return ErrEmptySlotLabel
	}
	state.time = label
	state.hasTime = true
	return nil
}

func (state *SelectionState) Date() (Date, bool) {
	return state.date, state.hasDate
}

func (state *SelectionState) Time() (string, bool) {
	return state.time, state.hasTime
}

func (state *SelectionState) Phase() Phase {
	switch {
	case state.hasDate && state.hasTime:
		return PhaseComplete
	case state.hasDate:
		return PhaseDateOnly
	default:
		return PhaseEmpty
	}
}

func (state *SelectionState) IsComplete() bool {
	return state.Phase() == PhaseComplete
}

// IsCurrent reports whether event still describes the live selection.
func (state *SelectionState) IsCurrent(event DateSelected) bool {
	return state.hasDate && state.seq == event.Seq && state.date == event.Date
}

func (state *SelectionState) ToDraft() (Draft, error) {
	if !state.IsComplete() {
		return Draft{}, ErrIncompleteSelection
	}
	return Draft{Date: state.date, Time: state.time}, nil
}
