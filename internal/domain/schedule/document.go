package schedule

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrMalformed means the stored document did not decode to a
	// day -> hour -> bool mapping.
	ErrMalformed = errors.New("malformed schedule document")

	ErrUnknownDay  = errors.New("unknown day")
	ErrUnknownHour = errors.New("unknown hour")
	ErrSlotTaken   = errors.New("slot already taken")
)

// Weekdays is the canonical rendering order for day codes.
var Weekdays = []string{"mon", "tue", "wed", "thu", "fri", "sat", "sun"}

// DayNames maps day codes to display labels for the booking page.
var DayNames = map[string]string{
	"mon": "Monday",
	"tue": "Tuesday",
	"wed": "Wednesday",
	"thu": "Thursday",
	"fri": "Friday",
	"sat": "Saturday",
	"sun": "Sunday",
}

// Document is a weekly availability grid: day code -> hour label -> free.
type Document map[string]map[string]bool

// Decode parses a stored schedule document.
func Decode(raw []byte) (Document, error) {
	if len(raw) == 0 {
		return Document{}, nil
	}
	var d Document
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return d, nil
}

func (d Document) Encode() ([]byte, error) {
	return json.Marshal(d)
}

// Reserve marks one cell unavailable. A slot that is already taken is
// rejected rather than silently re-flipped, and missing keys are hard
// errors; Reserve never grows the document.
func (d Document) Reserve(day, hour string) error {
	hours, ok := d[day]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDay, day)
	}
	free, ok := hours[hour]
	if !ok {
		return fmt.Errorf("%w: %s %s", ErrUnknownHour, day, hour)
	}
	if !free {
		return ErrSlotTaken
	}
	hours[hour] = false
	return nil
}

// Hours returns the hour labels of a day in ascending order. Labels are
// zero-padded 24h times, so lexicographic order is chronological.
func (d Document) Hours(day string) []string {
	hours := make([]string, 0, len(d[day]))
	for h := range d[day] {
		hours = append(hours, h)
	}
	sort.Strings(hours)
	return hours
}
