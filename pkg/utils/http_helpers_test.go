package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilterFromQueryDefaults(t *testing.T) {
	filter := ParseFilterFromQuery(url.Values{})

	assert.Equal(t, 1, filter.Page)
	assert.Equal(t, DefaultLimit, filter.Limit)
	assert.True(t, filter.WithPagination)
	assert.Empty(t, filter.Filter)
	assert.Empty(t, filter.Sort)
}

func TestParseFilterFromQueryBrackets(t *testing.T) {
	values := url.Values{
		"page":                {"3"},
		"limit":               {"50"},
		"search":              {"иван"},
		"filter[orderStatus]": {"Новая"},
		"filter[master]":      {"7"},
		"sort[createdAt]":     {"DESC"},
		"sort[bogus]":         {"sideways"},
		"date_from":           {"2026-01-01"},
		"date_to":             {"2026-02-01"},
	}

	filter := ParseFilterFromQuery(values)

	assert.Equal(t, 3, filter.Page)
	assert.Equal(t, 50, filter.Limit)
	assert.Equal(t, "иван", filter.Search)
	assert.Equal(t, "Новая", filter.Filter["orderStatus"])
	assert.Equal(t, "7", filter.Filter["master"])
	assert.Equal(t, "desc", filter.Sort["createdAt"])
	assert.NotContains(t, filter.Sort, "bogus", "кривое направление сортировки отбрасывается")
	assert.Equal(t, "2026-01-01", filter.DateFrom)
	assert.Equal(t, "2026-02-01", filter.DateTo)
}

func TestParseFilterFromQueryLimitCap(t *testing.T) {
	filter := ParseFilterFromQuery(url.Values{"limit": {"100000"}})
	assert.Equal(t, MaxLimit, filter.Limit)

	filter = ParseFilterFromQuery(url.Values{"limit": {"-5"}})
	assert.Equal(t, DefaultLimit, filter.Limit)
}

func TestNormalizePhone(t *testing.T) {
	cases := map[string]string{
		"+7 (900) 123-45-67": "9001234567",
		"79001234567":        "9001234567",
		"8-900-123-45-67":    "9001234567",
		"123":                "123",
		"":                   "",
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizePhone(input), "вход: %q", input)
	}
}
