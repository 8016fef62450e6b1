package bills

import (
	"context"
)

// DefaultPageSize is the listing page size when none is requested.
const DefaultPageSize = 10

// cursorSlot records what is known about the cursor for one page index.
// Unresolved means no fetch has reached far enough to know it. A resolved
// slot with a nil cursor means the page does not exist (the previous page
// came back short), except at index zero where nil is the start of results.
type cursorSlot struct {
	resolved bool
	cursor   *Cursor
}

// Pager is the pagination state machine for a bill listing: sort mode,
// filter, the cursors of every page discovered so far, and the current page
// index. All transitions are pure state updates; fetching is the Browser's
// job.
type Pager struct {
	sort     Sort
	filter   *Filter
	pageSize int
	cursors  []cursorSlot
	page     int
	err      error
}

// NewPager creates a pager positioned on the first page.
func NewPager(sort Sort, pageSize int) *Pager {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Pager{
		sort:     sort,
		pageSize: pageSize,
		cursors:  []cursorSlot{{resolved: true}},
	}
}

// reset returns to the first page, forgetting every cursor.
func (p *Pager) reset() {
	p.cursors = []cursorSlot{{resolved: true}}
	p.page = 0
}

func (p *Pager) slot(index int) cursorSlot {
	if index < 0 || index >= len(p.cursors) {
		return cursorSlot{}
	}
	return p.cursors[index]
}

// reachable reports whether the cursor for a page index is known, so the
// pager may move there.
func (p *Pager) reachable(index int) bool {
	if index < 0 {
		return false
	}
	s := p.slot(index)
	if !s.resolved {
		return false
	}
	return index == 0 || s.cursor != nil
}

// Next advances one page if the next page's cursor is known. Otherwise the
// state is unchanged.
func (p *Pager) Next() bool {
	if !p.reachable(p.page + 1) {
		return false
	}
	p.page++
	return true
}

// Prev moves back one page if possible.
func (p *Pager) Prev() bool {
	if !p.reachable(p.page - 1) {
		return false
	}
	p.page--
	return true
}

// SetSort adopts a new sort mode and resets to the first page. A no-op when
// the sort is unchanged.
func (p *Pager) SetSort(sort Sort) bool {
	if sort == p.sort {
		return false
	}
	p.sort = sort
	p.reset()
	return true
}

// SetFilter adopts a new filter (or clears it with nil) and always resets to
// the first page.
func (p *Pager) SetFilter(filter *Filter) {
	p.filter = filter
	p.reset()
}

// RecordPage applies a successful fetch of the current page. A full page
// stores the cursor of its last item as the next page's cursor, computed
// under the sort mode the request was issued with; a short page records that
// no further page exists.
func (p *Pager) RecordPage(items []Bill, sortAtRequest Sort) {
	for len(p.cursors) <= p.page+1 {
		p.cursors = append(p.cursors, cursorSlot{})
	}
	if len(items) >= p.pageSize {
		c := ExtractCursor(items[len(items)-1], sortAtRequest)
		p.cursors[p.page+1] = cursorSlot{resolved: true, cursor: &c}
	} else {
		p.cursors[p.page+1] = cursorSlot{resolved: true}
	}
	p.err = nil
}

// RecordError stores a fetch error for display without moving the pager.
func (p *Pager) RecordError(err error) {
	p.err = err
}

// Cursor returns the cursor that fetches the current page; nil on the first
// page.
func (p *Pager) Cursor() *Cursor { return p.slot(p.page).cursor }

// Page returns the zero-based page index.
func (p *Pager) Page() int { return p.page }

// DisplayPage returns the one-based page number shown to users.
func (p *Pager) DisplayPage() int { return p.page + 1 }

// HasNext reports whether the next page's cursor is known.
func (p *Pager) HasNext() bool { return p.reachable(p.page + 1) }

// HasPrev reports whether a previous page exists.
func (p *Pager) HasPrev() bool { return p.reachable(p.page - 1) }

// Sort returns the current sort mode.
func (p *Pager) Sort() Sort { return p.sort }

// Filter returns the current filter, nil when unfiltered.
func (p *Pager) Filter() *Filter { return p.filter }

// PageSize returns the page size.
func (p *Pager) PageSize() int { return p.pageSize }

// Err returns the last fetch error, nil after a successful fetch.
func (p *Pager) Err() error { return p.err }

// Querier is the paged-query collaborator: up to pageSize bills under the
// resolved sort and filter, starting strictly after the cursor when one is
// given.
type Querier interface {
	FetchPage(ctx context.Context, sort Sort, filter *Filter, pageSize int, after *Cursor) ([]Bill, error)
}

// Browser drives a Pager against a Querier and holds the current page's
// items. Fetch errors are recorded in the pager state rather than
// interrupting navigation; callers inspect Err.
type Browser struct {
	pager   *Pager
	querier Querier
	items   []Bill
}

// NewBrowser creates a browser positioned on the first page. Call Load to
// fetch it.
func NewBrowser(querier Querier, sort Sort, pageSize int) *Browser {
	return &Browser{pager: NewPager(sort, pageSize), querier: querier}
}

// refresh fetches the current page and applies the result. The sort mode at
// request time is carried into RecordPage so a response is keyed under the
// mode it was requested with.
func (b *Browser) refresh(ctx context.Context) error {
	sortAtRequest := b.pager.Sort()
	items, err := b.querier.FetchPage(ctx, sortAtRequest, b.pager.Filter(), b.pager.PageSize(), b.pager.Cursor())
	if err != nil {
		b.pager.RecordError(err)
		return err
	}
	b.items = items
	b.pager.RecordPage(items, sortAtRequest)
	return nil
}

// Load fetches the current page.
func (b *Browser) Load(ctx context.Context) error {
	return b.refresh(ctx)
}

// Next moves to the next page when its cursor is known; otherwise nothing
// changes.
func (b *Browser) Next(ctx context.Context) error {
	if !b.pager.Next() {
		return nil
	}
	return b.refresh(ctx)
}

// Prev moves to the previous page when possible.
func (b *Browser) Prev(ctx context.Context) error {
	if !b.pager.Prev() {
		return nil
	}
	return b.refresh(ctx)
}

// SetSort switches sort modes, resetting to the first page. A no-op when
// unchanged.
func (b *Browser) SetSort(ctx context.Context, sort Sort) error {
	if !b.pager.SetSort(sort) {
		return nil
	}
	return b.refresh(ctx)
}

// SetFilter applies or clears a filter and refetches from the first page.
func (b *Browser) SetFilter(ctx context.Context, filter *Filter) error {
	b.pager.SetFilter(filter)
	return b.refresh(ctx)
}

// Items returns the current page's bills.
func (b *Browser) Items() []Bill { return b.items }

// DisplayPage returns the one-based page number.
func (b *Browser) DisplayPage() int { return b.pager.DisplayPage() }

// HasNext reports whether forward navigation is available.
func (b *Browser) HasNext() bool { return b.pager.HasNext() }

// HasPrev reports whether backward navigation is available.
func (b *Browser) HasPrev() bool { return b.pager.HasPrev() }

// Err returns the last fetch error.
func (b *Browser) Err() error { return b.pager.Err() }
