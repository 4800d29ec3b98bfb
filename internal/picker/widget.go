package picker

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

type SlotsStatus int

const (
	SlotsIdle SlotsStatus = iota
	SlotsLoading
	SlotsReady
	SlotsEmpty
	SlotsFailed
)

func (status SlotsStatus) String() string {
	switch status {
	case SlotsIdle:
		return "idle"
	case SlotsLoading:
		return "loading"
	case SlotsReady:
		return "ready"
	case SlotsEmpty:
		return "empty"
	case SlotsFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// TimeSlotsView is what the time section should currently show.
type TimeSlotsView struct {
	Status  SlotsStatus
	Date    Date
	Options []TimeSlotOption
	Message string
	Err     error
}

type Options struct {
	Location *time.Location
	Messages map[string]string
	Now      func() time.Time
	Logger   *zap.Logger
}

// Widget drives one picker session: calendar, selection, slot loading and
// confirmation. Methods are safe to call from the goroutine that completes an
// availability fetch.
type Widget struct {
	mu           sync.Mutex
	state        *SelectionState
	availability AvailabilityClient
	submitter    BookingSubmitter
	location     *time.Location
	messages     map[string]string
	now          func() time.Time
	logger       *zap.Logger
	view         TimeSlotsView
}

func NewWidget(availability AvailabilityClient, submitter BookingSubmitter, options Options) (*Widget, error) {
	if availability == nil {
		return nil, errors.New("availability client is required")
	}
	if submitter == nil {
		return nil, errors.New("booking submitter is required")
	}

	location := options.Location
	if location == nil {
		location = time.Local
	}
	now := options.Now
	if now == nil {
		now = time.Now
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	widget := &Widget{
		state:        NewSelectionState(),
		availability: availability,
		submitter:    submitter,
		location:     location,
		messages:     options.Messages,
		now:          now,
		logger:       logger,
	}
	widget.state.Subscribe(widget.markLoading)
	return widget, nil
}

// markLoading resets the slot view for a new selection. It runs inside
// SelectDate with mu held.
func (widget *Widget) markLoading(event DateSelected) {
	widget.view = TimeSlotsView{
		Status:  SlotsLoading,
		Date:    event.Date,
		Message: translateMessage(widget.messages, MessageLoading),
	}
	widget.logger.Debug("date selected", zap.String("date", event.Date.String()), zap.Uint64("seq", event.Seq))
}

func (widget *Widget) Today() Date {
	return DateOf(widget.now().In(widget.location))
}

func (widget *Widget) Calendar() []CalendarCell {
	return Generate(widget.Today())
}

// SelectDate makes date the live selection and returns the request that
// LoadTimes must be called with. Dates that are past or not on the current
// grid are rejected without touching state.
func (widget *Widget) SelectDate(date Date) (DateSelected, error) {
	if date.IsZero() {
		return DateSelected{}, ErrInvalidDate
	}
	cell, ok := FindCell(widget.Calendar(), date)
	if !ok || !cell.IsSelectable {
		return DateSelected{}, ErrDateNotSelectable
	}

	widget.mu.Lock()
	defer widget.mu.Unlock()

	return widget.state.SelectDate(date), nil
}

// LoadTimes fetches slots for request and applies them to the view. It returns
// false when the selection moved on while the fetch was in flight; the result
// is then dropped.
func (widget *Widget) LoadTimes(ctx context.Context, request DateSelected) bool {
	options, err := widget.availability.FetchAvailableTimes(ctx, request.Date)

	widget.mu.Lock()
	defer widget.mu.Unlock()

	if !widget.state.IsCurrent(request) {
		widget.logger.Debug("discarding stale availability result",
			zap.String("date", request.Date.String()),
			zap.Uint64("seq", request.Seq),
		)
		return false
	}

	if err != nil {
		widget.logger.Warn("load available times failed",
			zap.String("date", request.Date.String()),
			zap.Error(err),
		)
		widget.view = TimeSlotsView{
			Status:  SlotsFailed,
			Date:    request.Date,
			Message: UserMessage(widget.messages, err),
			Err:     err,
		}
		return true
	}

	options = DedupeSlotOptions(options)
	if len(options) == 0 {
		widget.view = TimeSlotsView{
			Status:  SlotsEmpty,
			Date:    request.Date,
			Options: []TimeSlotOption{},
			Message: translateMessage(widget.messages, MessageNoSlots),
		}
		return true
	}

	widget.view = TimeSlotsView{
		Status:  SlotsReady,
		Date:    request.Date,
		Options: options,
	}
	return true
}

// SelectDateAndLoad runs SelectDate and LoadTimes back to back.
func (widget *Widget) SelectDateAndLoad(ctx context.Context, date Date) (TimeSlotsView, error) {
	request, err := widget.SelectDate(date)
	if err != nil {
		return TimeSlotsView{}, err
	}
	widget.LoadTimes(ctx, request)
	return widget.View(), nil
}

// SelectTime accepts only a label offered for the selected date.
func (widget *Widget) SelectTime(label string) error {
	widget.mu.Lock()
	defer widget.mu.Unlock()

	if _, ok := widget.state.Date(); !ok {
		return ErrInvalidState
	}
	if widget.view.Status != SlotsReady || !containsSlot(widget.view.Options, label) {
		return ErrUnknownSlot
	}
	return widget.state.SelectTime(label)
}

func (widget *Widget) View() TimeSlotsView {
	widget.mu.Lock()
	defer widget.mu.Unlock()

	view := widget.view
	if view.Options != nil {
		view.Options = append([]TimeSlotOption(nil), view.Options...)
	}
	return view
}

func (widget *Widget) Phase() Phase {
	widget.mu.Lock()
	defer widget.mu.Unlock()
	return widget.state.Phase()
}

// Selection returns whatever is selected so far, complete or not.
func (widget *Widget) Selection() Draft {
	widget.mu.Lock()
	defer widget.mu.Unlock()

	date, _ := widget.state.Date()
	label, _ := widget.state.Time()
	return Draft{Date: date, Time: label}
}

// Confirm submits the draft. ErrIncompleteSelection means the user has to be
// prompted (see Prompt) and nothing was sent.
func (widget *Widget) Confirm(ctx context.Context) error {
	widget.mu.Lock()
	draft, err := widget.state.ToDraft()
	widget.mu.Unlock()
	if err != nil {
		return err
	}

	return widget.submitter.Submit(ctx, draft)
}

func (widget *Widget) Prompt() string {
	return translateMessage(widget.messages, MessageSelectPrompt)
}

// Message looks up key in the widget's catalog, falling back to the key.
func (widget *Widget) Message(key string) string {
	return translateMessage(widget.messages, key)
}

func containsSlot(options []TimeSlotOption, label string) bool {
	for _, option := range options {
		if option.Label == label {
			return true
		}
	}
	return false
}
