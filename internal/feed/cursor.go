package feed

import (
	"fmt"
	"strconv"
	"time"
)

// EncodeCursor builds the opaque pagination token for a page whose last
// emitted item was created at t.
func EncodeCursor(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}

// DecodeCursor parses a pagination token. An empty token means first page
// and decodes to nil. Re-querying with a cursor returns only items strictly
// older than it, so a page boundary never repeats an item.
func DecodeCursor(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor %q: %w", s, err)
	}
	t := time.UnixMilli(ms).UTC()
	return &t, nil
}
