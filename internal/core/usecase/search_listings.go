package usecase

import (
	"context"
	"fmt"
	"net/url"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"listing-service/internal/contextkeys"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"listing-service/internal/core/searchfilter"
	"listing-service/internal/core/stationmatch"
)

const (
	siteName          = "ホームナビ"
	DefaultPerPage    = 10
	nationwideHeading = "全国"
)

type SearchListingsUseCase struct {
	catalog port.ListingCatalogPort
	matcher *stationmatch.Matcher
	perPage int
	printer *message.Printer
}

func NewSearchListingsUseCase(catalog port.ListingCatalogPort, matcher *stationmatch.Matcher, perPage int) *SearchListingsUseCase {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	return &SearchListingsUseCase{
		catalog: catalog,
		matcher: matcher,
		perPage: perPage,
		printer: message.NewPrinter(language.Japanese),
	}
}

// Execute выполняет поиск: разбор условий, фильтрация, сортировка и выдача одной страницы.
// Отсутствие результатов не является ошибкой.
func (uc *SearchListingsUseCase) Execute(ctx context.Context, values url.Values) (*domain.SearchResult, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "SearchListings",
		"query":    values.Encode(),
	})

	ucLogger.Info("Use case started", nil)

	d := searchfilter.ParseFilterParams(values)
	filtered := searchfilter.FilterProperties(uc.catalog.All(ctx), d, uc.matcher)
	sorted := searchfilter.SortProperties(filtered, d.Sort)

	total := len(sorted)
	totalPages := searchfilter.TotalPages(total, uc.perPage)
	page := searchfilter.ClampPage(d.Page, totalPages)
	if page != d.Page {
		ucLogger.Debug("Requested page is out of range, clamped", port.Fields{
			"requested_page": d.Page,
			"page":           page,
		})
	}
	d.Page = page

	heading := searchfilter.AreaHeading(values, uc.matcher)
	result := &domain.SearchResult{
		Listings:   searchfilter.Paginate(sorted, page, uc.perPage),
		Total:      total,
		Page:       page,
		PerPage:    uc.perPage,
		TotalPages: totalPages,
		PageRange:  searchfilter.PageRange(page, totalPages),
		Heading:    heading,
		CountLabel: uc.countLabel(heading, total),
		MetaTitle:  metaTitle(heading),
		Query:      searchfilter.Serialize(d).Encode(),
		Sort:       d.Sort,
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total":       total,
		"page":        page,
		"total_pages": totalPages,
	})
	return result, nil
}

// countLabel: "東京都の賃貸物件 1,234件".
func (uc *SearchListingsUseCase) countLabel(heading string, total int) string {
	return fmt.Sprintf("%sの賃貸物件 %s件", heading, uc.printer.Sprintf("%d", total))
}

func metaTitle(heading string) string {
	if heading == nationwideHeading {
		return "賃貸物件一覧｜" + siteName
	}
	return heading + "の賃貸物件一覧｜" + siteName
}
