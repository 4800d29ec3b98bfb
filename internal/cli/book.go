package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/terraincognita07/slotpicker/internal/picker"
)

var errBookingAborted = errors.New("booking aborted")

// RunBookCommand walks one booking through the widget on a terminal: pick a
// date from the printed calendar, pick one of the offered times, confirm.
func RunBookCommand(ctx context.Context, widget *picker.Widget, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	RenderCalendar(out, widget.Calendar())

	for {
		view, err := chooseDate(ctx, widget, reader, out)
		if err != nil {
			return err
		}
		if view.Status != picker.SlotsReady {
			fmt.Fprintln(out, view.Message)
			continue
		}

		chosen, err := chooseTime(widget, view, reader, out)
		if err != nil {
			return err
		}
		if chosen {
			break
		}
	}

	if err := widget.Confirm(ctx); err != nil {
		fmt.Fprintln(out, widget.Message(picker.ErrorMessageKey(err)))
		return fmt.Errorf("confirm booking: %w", err)
	}

	draft := widget.Selection()
	fmt.Fprintf(out, "%s: %s %s\n", widget.Message(picker.MessageSubmitted), draft.Date, draft.Time)
	return nil
}

func chooseDate(ctx context.Context, widget *picker.Widget, reader *bufio.Reader, out io.Writer) (picker.TimeSlotsView, error) {
	for {
		line, err := readPromptLine(reader, out, "Date (YYYY-MM-DD): ")
		if err != nil {
			return picker.TimeSlotsView{}, err
		}

		date, err := picker.ParseDate(line)
		if err != nil {
			fmt.Fprintln(out, "Use the YYYY-MM-DD format.")
			continue
		}

		view, err := widget.SelectDateAndLoad(ctx, date)
		if errors.Is(err, picker.ErrDateNotSelectable) {
			if date.Before(widget.Today()) {
				fmt.Fprintln(out, "That date has already passed.")
			} else {
				fmt.Fprintln(out, "That date is not on the calendar.")
			}
			continue
		}
		if err != nil {
			return picker.TimeSlotsView{}, err
		}
		return view, nil
	}
}

// chooseTime returns false when the user asks to go back to the date prompt.
func chooseTime(widget *picker.Widget, view picker.TimeSlotsView, reader *bufio.Reader, out io.Writer) (bool, error) {
	for index, option := range view.Options {
		fmt.Fprintf(out, "%3d) %s\n", index+1, option.Label)
	}

	for {
		line, err := readPromptLine(reader, out, "Time (number or label, empty for another date): ")
		if err != nil {
			return false, err
		}
		if line == "" {
			return false, nil
		}

		label := line
		if number, convErr := strconv.Atoi(line); convErr == nil && number >= 1 && number <= len(view.Options) {
			label = view.Options[number-1].Label
		}
		if err := widget.SelectTime(label); err != nil {
			fmt.Fprintf(out, "%q is not one of the offered times.\n", line)
			continue
		}
		return true, nil
	}
}

func readPromptLine(reader *bufio.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if errors.Is(err, io.EOF) && line == "" {
		fmt.Fprintln(out)
		return "", errBookingAborted
	}
	return strings.TrimSpace(line), nil
}
