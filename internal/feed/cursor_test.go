package feed

import (
	"testing"
	"time"
)

func TestCursorRoundTrip(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 30, 45, 123000000, time.UTC)

	token := EncodeCursor(ts)
	decoded, err := DecodeCursor(token)
	if err != nil {
		t.Fatalf("DecodeCursor(%q) failed: %v", token, err)
	}
	if decoded == nil {
		t.Fatal("DecodeCursor() returned nil for non-empty token")
	}
	if !decoded.Equal(ts) {
		t.Errorf("round trip = %v, want %v", decoded, ts)
	}
}

func TestDecodeCursor_EmptyMeansFirstPage(t *testing.T) {
	decoded, err := DecodeCursor("")
	if err != nil {
		t.Fatalf("DecodeCursor(\"\") failed: %v", err)
	}
	if decoded != nil {
		t.Errorf("DecodeCursor(\"\") = %v, want nil", decoded)
	}
}

func TestDecodeCursor_Malformed(t *testing.T) {
	for _, token := range []string{"abc", "12.5", "2024-05-01T00:00:00Z"} {
		if _, err := DecodeCursor(token); err == nil {
			t.Errorf("DecodeCursor(%q) succeeded, want error", token)
		}
	}
}
