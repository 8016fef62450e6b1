package bills

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"
)

// Cursor marks a position in a sorted bill listing: the order-field values of
// the last item on a page. A cursor is tagged with the sort mode that
// produced it and decodes only for that mode.
type Cursor struct {
	Sort   Sort       `json:"sort"`
	Number string     `json:"number,omitempty"`
	Count  *int       `json:"count,omitempty"`
	Time   *time.Time `json:"time,omitempty"`
}

// ExtractCursor produces the cursor that resumes a listing strictly after
// the given bill, for the given sort mode.
func ExtractCursor(b Bill, sort Sort) Cursor {
	c := Cursor{Sort: sort, Number: b.Number}
	switch sort {
	case SortByCosponsors:
		count := b.CosponsorCount
		c.Count = &count
	case SortByTestimonyCount:
		count := b.TestimonyCount
		c.Count = &count
	case SortByLatestTestimony:
		t := b.LatestTestimonyAt
		c.Time = &t
	case SortByNextHearing:
		t := b.NextHearingAt
		c.Time = &t
	}
	return c
}

// keyFor returns the cursor's value for one order field, aligned with the
// clause list produced by orderClauses for the same sort mode.
func (c *Cursor) keyFor(field string) interface{} {
	switch field {
	case "cosponsor_count", "testimony_count":
		if c.Count != nil {
			return *c.Count
		}
		return 0
	case "latest_testimony_at", "next_hearing_at":
		if c.Time != nil {
			return *c.Time
		}
		return time.Time{}
	default:
		return c.Number
	}
}

// keys returns the cursor values in clause order.
func (c *Cursor) keys(clauses []orderClause) []interface{} {
	keys := make([]interface{}, 0, len(clauses))
	for _, clause := range clauses {
		keys = append(keys, c.keyFor(clause.field))
	}
	return keys
}

// Encode encodes a cursor to an opaque base64 token.
func Encode(c Cursor) (string, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal cursor: %w", err)
	}
	return base64.URLEncoding.EncodeToString(data), nil
}

// Decode decodes an opaque token, rejecting tokens minted under a different
// sort mode.
func Decode(token string, sort Sort) (*Cursor, error) {
	if token == "" {
		return nil, fmt.Errorf("empty token")
	}
	data, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("decode base64: %w", err)
	}
	var c Cursor
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshal cursor: %w", err)
	}
	if c.Sort != sort {
		return nil, fmt.Errorf("cursor was created under sort %q, not %q", c.Sort, sort)
	}
	return &c, nil
}
