package bills

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"
)

// makeBills builds n bills numbered sequentially from start.
func makeBills(start, n int) []Bill {
	items := make([]Bill, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, Bill{
			Court:          "House",
			Number:         fmt.Sprintf("H%04d", start+i),
			CosponsorCount: 100 - (start + i),
		})
	}
	return items
}

func TestPagerNextBlockedUntilCursorKnown(t *testing.T) {
	t.Parallel()

	p := NewPager(SortByNumber, 2)
	if p.HasNext() {
		t.Error("HasNext() = true before any fetch")
	}
	if p.Next() {
		t.Error("Next() moved without a known cursor")
	}
	if p.Page() != 0 {
		t.Errorf("Page() = %d, want 0", p.Page())
	}
}

func TestPagerNextAdvancesAfterFullPage(t *testing.T) {
	t.Parallel()

	p := NewPager(SortByNumber, 2)
	p.RecordPage(makeBills(1, 2), SortByNumber)

	if !p.HasNext() {
		t.Fatal("HasNext() = false after a full page")
	}
	if !p.Next() {
		t.Fatal("Next() did not advance")
	}
	if p.Page() != 1 || p.DisplayPage() != 2 {
		t.Errorf("Page() = %d, DisplayPage() = %d, want 1 and 2", p.Page(), p.DisplayPage())
	}
	cur := p.Cursor()
	if cur == nil || cur.Number != "H0002" {
		t.Errorf("Cursor() = %+v, want cursor at H0002", cur)
	}
	if !p.HasPrev() {
		t.Error("HasPrev() = false on page two")
	}
}

func TestPagerShortPageMeansNoFurtherPage(t *testing.T) {
	t.Parallel()

	p := NewPager(SortByNumber, 5)
	p.RecordPage(makeBills(1, 3), SortByNumber)

	if p.HasNext() {
		t.Error("HasNext() = true after a short page")
	}
	if p.Next() {
		t.Error("Next() advanced past the last page")
	}
}

func TestPagerSortChangeResets(t *testing.T) {
	t.Parallel()

	p := NewPager(SortByNumber, 2)
	p.RecordPage(makeBills(1, 2), SortByNumber)
	p.Next()
	p.RecordPage(makeBills(3, 2), SortByNumber)

	if changed := p.SetSort(SortByNumber); changed {
		t.Error("SetSort with unchanged mode reported a change")
	}
	if p.Page() != 1 {
		t.Errorf("unchanged sort moved the pager to page %d", p.Page())
	}

	if changed := p.SetSort(SortByCosponsors); !changed {
		t.Fatal("SetSort with a new mode reported no change")
	}
	if p.Page() != 0 {
		t.Errorf("Page() = %d after sort change, want 0", p.Page())
	}
	if p.HasNext() || p.HasPrev() {
		t.Error("cursor cache not cleared by sort change")
	}
	if p.Cursor() != nil {
		t.Errorf("Cursor() = %+v after reset, want nil start", p.Cursor())
	}
}

func TestPagerFilterChangeAlwaysResets(t *testing.T) {
	t.Parallel()

	p := NewPager(SortByNumber, 2)
	p.RecordPage(makeBills(1, 2), SortByNumber)
	p.Next()

	p.SetFilter(&Filter{Field: FilterByCity, Value: "Boston"})
	if p.Page() != 0 {
		t.Errorf("Page() = %d after filter change, want 0", p.Page())
	}
	if p.HasNext() {
		t.Error("cursor cache not cleared by filter change")
	}

	// Clearing the filter resets too.
	p.RecordPage(makeBills(1, 2), SortByNumber)
	p.Next()
	p.SetFilter(nil)
	if p.Page() != 0 {
		t.Errorf("Page() = %d after clearing filter, want 0", p.Page())
	}
}

func TestPagerRecordErrorKeepsPosition(t *testing.T) {
	t.Parallel()

	p := NewPager(SortByNumber, 2)
	p.RecordPage(makeBills(1, 2), SortByNumber)
	p.Next()

	fetchErr := errors.New("boom")
	p.RecordError(fetchErr)
	if p.Page() != 1 {
		t.Errorf("Page() = %d after error, want 1", p.Page())
	}
	if !errors.Is(p.Err(), fetchErr) {
		t.Errorf("Err() = %v, want recorded error", p.Err())
	}

	// A later success clears the error.
	p.RecordPage(makeBills(3, 1), SortByNumber)
	if p.Err() != nil {
		t.Errorf("Err() = %v after success, want nil", p.Err())
	}
}

// fakeQuerier pages through a fixed ordered dataset, honoring the number
// cursor. It can be told to fail.
type fakeQuerier struct {
	bills   []Bill
	fetches int
	err     error
	// lastSort and lastFilter record the most recent request.
	lastSort   Sort
	lastFilter *Filter
}

func (q *fakeQuerier) FetchPage(_ context.Context, sort Sort, filter *Filter, pageSize int, after *Cursor) ([]Bill, error) {
	q.fetches++
	q.lastSort = sort
	q.lastFilter = filter
	if q.err != nil {
		return nil, q.err
	}

	start := 0
	if after != nil {
		for i, b := range q.bills {
			if b.Number == after.Number {
				start = i + 1
				break
			}
		}
	}
	end := start + pageSize
	if end > len(q.bills) {
		end = len(q.bills)
	}
	page := make([]Bill, end-start)
	copy(page, q.bills[start:end])
	return page, nil
}

func TestBrowserPagesForwardAndBack(t *testing.T) {
	t.Parallel()

	q := &fakeQuerier{bills: makeBills(1, 5)}
	b := NewBrowser(q, SortByNumber, 2)

	if err := b.Load(context.Background()); err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if len(b.Items()) != 2 || b.Items()[0].Number != "H0001" {
		t.Fatalf("page 1 items = %v", b.Items())
	}
	if !b.HasNext() || b.HasPrev() {
		t.Errorf("page 1 navigation: next=%v prev=%v", b.HasNext(), b.HasPrev())
	}

	if err := b.Next(context.Background()); err != nil {
		t.Fatalf("Next() unexpected error: %v", err)
	}
	if b.DisplayPage() != 2 || b.Items()[0].Number != "H0003" {
		t.Fatalf("page 2: display=%d items=%v", b.DisplayPage(), b.Items())
	}

	if err := b.Next(context.Background()); err != nil {
		t.Fatalf("Next() unexpected error: %v", err)
	}
	// Final page is short: one item, no further page.
	if len(b.Items()) != 1 || b.HasNext() {
		t.Fatalf("page 3: items=%v hasNext=%v", b.Items(), b.HasNext())
	}

	// Next past the end is a no-op with no fetch.
	fetches := q.fetches
	if err := b.Next(context.Background()); err != nil {
		t.Fatalf("Next() past end unexpected error: %v", err)
	}
	if q.fetches != fetches || b.DisplayPage() != 3 {
		t.Errorf("Next past end fetched or moved: fetches=%d page=%d", q.fetches, b.DisplayPage())
	}

	if err := b.Prev(context.Background()); err != nil {
		t.Fatalf("Prev() unexpected error: %v", err)
	}
	if b.DisplayPage() != 2 || b.Items()[0].Number != "H0003" {
		t.Fatalf("back to page 2: display=%d items=%v", b.DisplayPage(), b.Items())
	}
}

func TestBrowserSortChangeRestartsListing(t *testing.T) {
	t.Parallel()

	q := &fakeQuerier{bills: makeBills(1, 5)}
	b := NewBrowser(q, SortByNumber, 2)
	if err := b.Load(context.Background()); err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if err := b.Next(context.Background()); err != nil {
		t.Fatalf("Next() unexpected error: %v", err)
	}

	if err := b.SetSort(context.Background(), SortByCosponsors); err != nil {
		t.Fatalf("SetSort() unexpected error: %v", err)
	}
	if b.DisplayPage() != 1 {
		t.Errorf("DisplayPage() = %d after sort change, want 1", b.DisplayPage())
	}
	if q.lastSort != SortByCosponsors {
		t.Errorf("refetch used sort %q, want cosponsors", q.lastSort)
	}

	// Unchanged sort does not refetch.
	fetches := q.fetches
	if err := b.SetSort(context.Background(), SortByCosponsors); err != nil {
		t.Fatalf("SetSort() unexpected error: %v", err)
	}
	if q.fetches != fetches {
		t.Error("unchanged sort triggered a refetch")
	}
}

func TestBrowserFilterChangeRefetches(t *testing.T) {
	t.Parallel()

	q := &fakeQuerier{bills: makeBills(1, 3)}
	b := NewBrowser(q, SortByNumber, 2)
	if err := b.Load(context.Background()); err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	filter := &Filter{Field: FilterByCommittee, Value: "J33"}
	if err := b.SetFilter(context.Background(), filter); err != nil {
		t.Fatalf("SetFilter() unexpected error: %v", err)
	}
	if q.lastFilter != filter {
		t.Errorf("refetch used filter %+v, want %+v", q.lastFilter, filter)
	}
	if b.DisplayPage() != 1 {
		t.Errorf("DisplayPage() = %d after filter change, want 1", b.DisplayPage())
	}
}

func TestBrowserRecordsFetchError(t *testing.T) {
	t.Parallel()

	q := &fakeQuerier{bills: makeBills(1, 3), err: errors.New("store unavailable")}
	b := NewBrowser(q, SortByNumber, 2)

	if err := b.Load(context.Background()); err == nil {
		t.Fatal("Load() error = nil, want fetch error")
	}
	if b.Err() == nil {
		t.Error("Err() = nil, want recorded fetch error")
	}

	// Recovery clears the recorded error.
	q.err = nil
	if err := b.Load(context.Background()); err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}
	if b.Err() != nil {
		t.Errorf("Err() = %v after recovery, want nil", b.Err())
	}
}

func TestExtractCursorPerSortMode(t *testing.T) {
	t.Parallel()

	testimonyAt := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	hearingAt := time.Date(2026, 4, 2, 14, 0, 0, 0, time.UTC)
	bill := Bill{
		Number:            "H0042",
		CosponsorCount:    7,
		TestimonyCount:    3,
		LatestTestimonyAt: testimonyAt,
		NextHearingAt:     hearingAt,
	}

	tests := []struct {
		sort      Sort
		wantCount *int
		wantTime  *time.Time
	}{
		{sort: SortByNumber},
		{sort: SortByCosponsors, wantCount: intPtr(7)},
		{sort: SortByTestimonyCount, wantCount: intPtr(3)},
		{sort: SortByLatestTestimony, wantTime: &testimonyAt},
		{sort: SortByNextHearing, wantTime: &hearingAt},
	}

	for _, tt := range tests {
		t.Run(string(tt.sort), func(t *testing.T) {
			t.Parallel()

			c := ExtractCursor(bill, tt.sort)
			if c.Sort != tt.sort || c.Number != "H0042" {
				t.Errorf("cursor = %+v, want sort %q and number H0042", c, tt.sort)
			}
			if tt.wantCount != nil && (c.Count == nil || *c.Count != *tt.wantCount) {
				t.Errorf("Count = %v, want %d", c.Count, *tt.wantCount)
			}
			if tt.wantTime != nil && (c.Time == nil || !c.Time.Equal(*tt.wantTime)) {
				t.Errorf("Time = %v, want %v", c.Time, *tt.wantTime)
			}
		})
	}
}

func intPtr(i int) *int { return &i }
