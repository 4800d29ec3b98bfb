package picker

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Draft is the payload handed to the host on confirmation:
// {"date":"YYYY-MM-DD","time":"<label>"}.
type Draft struct {
	Date Date   `json:"date"`
	Time string `json:"time"`
}

func (draft Draft) IsComplete() bool {
	return !draft.Date.IsZero() && strings.TrimSpace(draft.Time) != ""
}

func (draft Draft) Payload() ([]byte, error) {
	if !draft.IsComplete() {
		return nil, ErrIncompleteSelection
	}
	return json.Marshal(draft)
}

// DecodeDraftPayload parses a payload produced by Payload and rejects partial
// drafts.
func DecodeDraftPayload(raw []byte) (Draft, error) {
	var draft Draft
	if err := json.Unmarshal(raw, &draft); err != nil {
		return Draft{}, fmt.Errorf("decode draft payload: %w", err)
	}
	if !draft.IsComplete() {
		return Draft{}, ErrIncompleteSelection
	}
	return draft, nil
}
