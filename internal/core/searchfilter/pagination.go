package searchfilter

import "listing-service/internal/core/domain"

const maxPageButtons = 7

// TotalPages всегда не меньше 1.
func TotalPages(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}

// ClampPage приводит номер страницы к диапазону [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return page
}

// PageRange строит номера страниц для пагинации, не больше семи элементов:
// 1 … c-1 c c+1 … N.
func PageRange(current, total int) []domain.PageMarker {
	if total <= maxPageButtons {
		pages := make([]domain.PageMarker, 0, total)
		for i := 1; i <= total; i++ {
			pages = append(pages, domain.PageMarker{Page: i})
		}
		return pages
	}

	pages := []domain.PageMarker{{Page: 1}}
	if current > 3 {
		pages = append(pages, domain.PageMarker{Ellipsis: true})
	}

	start := max(2, current-1)
	end := min(total-1, current+1)
	for i := start; i <= end; i++ {
		pages = append(pages, domain.PageMarker{Page: i})
	}

	if current < total-2 {
		pages = append(pages, domain.PageMarker{Ellipsis: true})
	}
	return append(pages, domain.PageMarker{Page: total})
}

// Paginate возвращает срез объявлений для страницы.
func Paginate(listings []domain.Listing, page, perPage int) []domain.Listing {
	start := (page - 1) * perPage
	if start >= len(listings) || start < 0 {
		return []domain.Listing{}
	}
	end := min(start+perPage, len(listings))
	return listings[start:end]
}
