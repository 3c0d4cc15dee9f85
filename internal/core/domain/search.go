package domain

// PageMarker - элемент диапазона страниц; Ellipsis означает "...".
type PageMarker struct {
	Page     int
	Ellipsis bool
}

// SearchResult - одна страница результатов поиска.
type SearchResult struct {
	Listings   []Listing
	Total      int
	Page       int
	PerPage    int
	TotalPages int
	PageRange  []PageMarker
	Heading    string
	CountLabel string
	MetaTitle  string
	Query      string
	Sort       SortKey
}

func (r *SearchResult) Empty() bool { return r.Total == 0 }

func (r *SearchResult) HasPrev() bool { return r.Page > 1 }

func (r *SearchResult) HasNext() bool { return r.Page < r.TotalPages }
