package bills

import (
	"testing"
	"time"
)

func TestCursorRoundTrip(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 4, 2, 14, 0, 0, 0, time.UTC)
	bill := Bill{
		Number:            "H0042",
		CosponsorCount:    7,
		TestimonyCount:    3,
		LatestTestimonyAt: at,
		NextHearingAt:     at,
	}

	for _, sort := range []Sort{SortByNumber, SortByCosponsors, SortByLatestTestimony, SortByTestimonyCount, SortByNextHearing} {
		t.Run(string(sort), func(t *testing.T) {
			t.Parallel()

			original := ExtractCursor(bill, sort)
			token, err := Encode(original)
			if err != nil {
				t.Fatalf("Encode() unexpected error: %v", err)
			}

			decoded, err := Decode(token, sort)
			if err != nil {
				t.Fatalf("Decode() unexpected error: %v", err)
			}
			if decoded.Sort != sort || decoded.Number != original.Number {
				t.Errorf("decoded = %+v, want %+v", decoded, original)
			}
			if original.Count != nil && (decoded.Count == nil || *decoded.Count != *original.Count) {
				t.Errorf("Count = %v, want %v", decoded.Count, *original.Count)
			}
			if original.Time != nil && (decoded.Time == nil || !decoded.Time.Equal(*original.Time)) {
				t.Errorf("Time = %v, want %v", decoded.Time, *original.Time)
			}
		})
	}
}

func TestDecodeRejectsForeignSortMode(t *testing.T) {
	t.Parallel()

	token, err := Encode(ExtractCursor(Bill{Number: "H1", CosponsorCount: 2}, SortByCosponsors))
	if err != nil {
		t.Fatalf("Encode() unexpected error: %v", err)
	}
	if _, err := Decode(token, SortByNumber); err == nil {
		t.Error("Decode() accepted a cursor minted under another sort mode")
	}
}

func TestDecodeRejectsBadTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "not base64", token: "%%%"},
		{name: "not json", token: "bm90LWpzb24="},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := Decode(tt.token, SortByNumber); err == nil {
				t.Errorf("Decode(%q) accepted a bad token", tt.token)
			}
		})
	}
}
