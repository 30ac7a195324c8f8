// Package paginator режет упорядоченную ленту на страницы фиксированного размера.
// Некорректный номер страницы не ошибка: пустой или нечисловой дает первую страницу,
// выход за границы - последнюю.
package paginator

import (
	"strconv"
	"strings"
)

// PostsPerPage - размер страницы всех лент
const PostsPerPage = 10

type Page struct {
	Number   int
	NumPages int
	Total    int
	Size     int
}

// Resolve вычисляет страницу по общему числу элементов и запрошенному номеру
func Resolve(total, size int, raw string) Page {
	if size < 1 {
		size = PostsPerPage
	}
	if total < 0 {
		total = 0
	}

	numPages := (total + size - 1) / size
	if numPages == 0 {
		// пустая лента - одна пустая страница
		numPages = 1
	}

	number, err := strconv.Atoi(strings.TrimSpace(raw))
	switch {
	case err != nil:
		number = 1
	case number < 1 || number > numPages:
		number = numPages
	}

	return Page{Number: number, NumPages: numPages, Total: total, Size: size}
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Count - сколько элементов попадает на эту страницу
func (p Page) Count() int {
	rest := p.Total - p.Offset()
	if rest < 0 {
		return 0
	}
	if rest > p.Size {
		return p.Size
	}
	return rest
}

func (p Page) HasNext() bool {
	return p.Number < p.NumPages
}

func (p Page) HasPrevious() bool {
	return p.Number > 1
}

func (p Page) HasOtherPages() bool {
	return p.HasNext() || p.HasPrevious()
}

func (p Page) NextNumber() int {
	if !p.HasNext() {
		return p.Number
	}
	return p.Number + 1
}

func (p Page) PreviousNumber() int {
	if !p.HasPrevious() {
		return p.Number
	}
	return p.Number - 1
}

// Range - номера всех страниц для навигации в шаблоне
func (p Page) Range() []int {
	pages := make([]int, p.NumPages)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// Slice вырезает окно offset/limit из уже упорядоченного среза
func Slice[T any](items []T, offset, limit int) []T {
	if offset < 0 || offset >= len(items) || limit <= 0 {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
