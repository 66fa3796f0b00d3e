package collection

// DefaultPageSize - размер страницы списка по умолчанию
const DefaultPageSize = 6

// Pager хранит номер текущей страницы (с единицы) и размер страницы.
// Номер страницы всегда находится в [1, max(1, TotalPages)] для последнего
// переданного количества записей.
type Pager struct {
	size    int
	current int
}

func NewPager(size int) *Pager {
	if size < 1 {
		size = DefaultPageSize
	}
	return &Pager{size: size, current: 1}
}

// TotalPages возвращает max(1, ceil(total/size)).
func TotalPages(total, size int) int {
	if size < 1 {
		size = DefaultPageSize
	}
	pages := (total + size - 1) / size
	if pages < 1 {
		return 1
	}
	return pages
}

func (p *Pager) Size() int {
	return p.size
}

func (p *Pager) Current() int {
	return p.current
}

func (p *Pager) TotalPages(total int) int {
	return TotalPages(total, p.size)
}

// Paginate переходит на страницу n, ограничивая ее допустимым диапазоном.
func (p *Pager) Paginate(n, total int) int {
	last := p.TotalPages(total)
	switch {
	case n < 1:
		n = 1
	case n > last:
		n = last
	}
	p.current = n
	return n
}

// Clamp возвращает текущую страницу в допустимый диапазон после изменения
// количества записей.
func (p *Pager) Clamp(total int) int {
	return p.Paginate(p.current, total)
}

// Last переходит на последнюю страницу.
func (p *Pager) Last(total int) int {
	return p.Paginate(p.TotalPages(total), total)
}

func (p *Pager) HasPrev() bool {
	return p.current > 1
}

func (p *Pager) HasNext(total int) bool {
	return p.current < p.TotalPages(total)
}

// Window возвращает записи текущей страницы:
// items[(current-1)*size : current*size].
func Window[T any](items []T, page, size int) []T {
	if size < 1 {
		size = DefaultPageSize
	}
	start := (page - 1) * size
	if start < 0 || start >= len(items) {
		return []T{}
	}
	end := min(start+size, len(items))
	return items[start:end]
}

// PageRange возвращает номера страниц для навигации. Позиции многоточия
// обозначены -1.
func PageRange(current, total int) []int {
	if total <= 7 {
		pages := make([]int, total)
		for i := range pages {
			pages[i] = i + 1
		}
		return pages
	}

	pages := []int{1}

	start := max(current-1, 2)
	end := min(current+1, total-1)

	if start > 2 {
		pages = append(pages, -1)
	}
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	if end < total-1 {
		pages = append(pages, -1)
	}

	return append(pages, total)
}
