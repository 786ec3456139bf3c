package conversation

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrUnparseable is returned when a generated answer does not contain the
// JSON the prompt asked for.
var ErrUnparseable = errors.New("could not parse generated output")

// flexString accepts JSON numbers and strings alike. The extraction
// capability frequently answers {"amount":10} instead of {"amount":"10"}.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var value string
		if err := json.Unmarshal(data, &value); err != nil {
			return err
		}

		*s = flexString(value)
		return nil
	}

	var value json.Number
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}

	*s = flexString(value.String())
	return nil
}

func (s flexString) String() string {
	return string(s)
}

// lineItem is one extracted transaction from a tracking message.
type lineItem struct {
	Item     flexString `json:"item"`
	Amount   flexString `json:"amount"`
	Location flexString `json:"location"`
	Date     flexString `json:"date"`
}

// parseLineItems decodes the JSON list an extraction answer should consist
// of, tolerating prose around the list itself.
func parseLineItems(raw string) ([]lineItem, error) {
	snippet, err := clip(raw, '[', ']')
	if err != nil {
		return nil, err
	}

	var items []lineItem
	if err := json.Unmarshal([]byte(snippet), &items); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnparseable, err)
	}

	return items, nil
}

// budgetEdit is the decoded answer to a budget modification request: the
// complete new category mapping plus a confirmation for the user.
type budgetEdit struct {
	Categories map[string]flexString `json:"categories"`
	Response   string                `json:"response"`
}

// parseBudgetEdit decodes a budget edit answer, tolerating prose around the
// JSON object.
func parseBudgetEdit(raw string) (budgetEdit, error) {
	var edit budgetEdit

	snippet, err := clip(raw, '{', '}')
	if err != nil {
		return edit, err
	}

	if err := json.Unmarshal([]byte(snippet), &edit); err != nil {
		return edit, fmt.Errorf("%w: %s", ErrUnparseable, err)
	}

	if edit.Categories == nil {
		return edit, fmt.Errorf("%w: missing categories", ErrUnparseable)
	}

	return edit, nil
}

// clip cuts raw down to the substring between the first opening and the
// last closing byte, inclusive.
func clip(raw string, opening, closing byte) (string, error) {
	start := strings.IndexByte(raw, opening)
	end := strings.LastIndexByte(raw, closing)

	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("%w: no %c...%c found in %q", ErrUnparseable, opening, closing, raw)
	}

	return raw[start : end+1], nil
}
