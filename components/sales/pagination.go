package sales

// DefaultPageSize is the number of rows per page.
const DefaultPageSize = 10

// Pager slices the filtered and sorted rows into fixed-size pages.
type Pager struct {
	index int
	size  int
}

// NewPager builds a pager; non-positive sizes fall back to DefaultPageSize.
func NewPager(size int) *Pager {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Pager{size: size}
}

func (p *Pager) Index() int { return p.index }

func (p *Pager) Size() int { return p.size }

// PageCount is ceil(total/size); zero rows yield zero pages.
func (p *Pager) PageCount(total int) int {
	if total <= 0 {
		return 0
	}
	return (total + p.size - 1) / p.size
}

// CanNext reports whether another page follows the current one.
func (p *Pager) CanNext(total int) bool {
	return (p.index+1)*p.size < total
}

// CanPrevious reports whether the current page is past the first.
func (p *Pager) CanPrevious() bool {
	return p.index > 0
}

// Next advances one page; out of bounds it is a no-op.
func (p *Pager) Next(total int) bool {
	if !p.CanNext(total) {
		return false
	}
	p.index++
	return true
}

// Previous goes back one page; on the first page it is a no-op.
func (p *Pager) Previous() bool {
	if !p.CanPrevious() {
		return false
	}
	p.index--
	return true
}

// Reset returns to the first page.
func (p *Pager) Reset() {
	p.index = 0
}

// Clamp moves the index back to the last page when total shrank below it.
func (p *Pager) Clamp(total int) {
	last := p.PageCount(total) - 1
	if last < 0 {
		last = 0
	}
	if p.index > last {
		p.index = last
	}
}

// Page returns the rows of the current page.
func (p *Pager) Page(rows []Sale) []Sale {
	start := p.index * p.size
	if start >= len(rows) {
		return []Sale{}
	}
	end := min(start+p.size, len(rows))
	return append([]Sale(nil), rows[start:end]...)
}
