package factory

import (
	"fmt"
	"regexp"
	"strconv"
)

var yearRe = regexp.MustCompile(`(\d{4})年`)

// ExtractYear возвращает год постройки из строки вида "2023年6月" или 0.
func ExtractYear(buildDate string) int {
	m := yearRe.FindStringSubmatch(buildDate)
	if m == nil {
		return 0
	}
	year, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return year
}

// BuildAge возвращает подпись возраста здания.
func BuildAge(buildDate string, currentYear int) string {
	year := ExtractYear(buildDate)
	if buildDate == "" || year == 0 {
		return unknownAgeLabel
	}
	y := currentYear - year
	if y <= 0 {
		return brandNewAgeLabel
	}
	return fmt.Sprintf("築%d年", y)
}

// CalcAgeYears - возраст в годах для фильтра и сортировки, 99 если дата не разобрана.
func CalcAgeYears(buildDate string, currentYear int) int {
	year := ExtractYear(buildDate)
	if year == 0 {
		return unknownAgeYears
	}
	return currentYear - year
}
