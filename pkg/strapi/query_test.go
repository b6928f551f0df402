package strapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryEncodeSimple(t *testing.T) {
	q := NewQuery().Where("orderStatus", OpEq, "Выдан")

	assert.Equal(t,
		"filters%5B%24and%5D%5B0%5D%5BorderStatus%5D%5B%24eq%5D=%D0%92%D1%8B%D0%B4%D0%B0%D0%BD",
		q.Encode(),
	)
}

func TestQueryEncodeNestedPath(t *testing.T) {
	q := NewQuery().Where("client.phone", OpContainsI, "555")

	assert.Contains(t, q.Encode(), "%5Bclient%5D%5Bphone%5D%5B%24containsi%5D=555")
}

// Структурно равные фильтры обязаны давать байт-в-байт одинаковую строку:
// она же ключ кеша.
func TestQueryEncodeCanonical(t *testing.T) {
	a := NewQuery().
		Where("orderStatus", OpEq, "Новая").
		Where("master.id", OpEq, "7").
		Populate("client", "master").
		Sort("createdAt:desc")

	b := NewQuery().
		Where("master.id", OpEq, "7").
		Where("orderStatus", OpEq, "Новая").
		Populate("client", "master").
		Sort("createdAt:desc")

	assert.Equal(t, a.Encode(), b.Encode())
}

func TestQueryEncodeOrGroupNestedInAnd(t *testing.T) {
	q := NewQuery().
		Where("blocked", OpEq, "false").
		WhereOr("name", OpContainsI, "иван").
		WhereOr("email", OpContainsI, "иван")

	encoded := q.Encode()
	// Группа $or идет после единственного $and-условия, под индексом 1.
	assert.Contains(t, encoded, "filters%5B%24and%5D%5B0%5D%5Bblocked%5D")
	assert.Contains(t, encoded, "filters%5B%24and%5D%5B1%5D%5B%24or%5D%5B0%5D%5Bemail%5D")
	assert.Contains(t, encoded, "filters%5B%24and%5D%5B1%5D%5B%24or%5D%5B1%5D%5Bname%5D")
}

func TestQueryEncodeOrGroupWithCompoundArm(t *testing.T) {
	q := NewQuery().WhereOrGroup(
		[]Cond{{Field: "createdDate", Op: OpGte, Value: "2026-01-01"}},
		[]Cond{
			{Field: "createdDate", Op: OpNull, Value: "true"},
			{Field: "createdAt", Op: OpGte, Value: "2026-01-01"},
		},
	)

	// Составная ветвь кодируется вложенной конъюнкцией и после канонизации
	// идёт первой.
	assert.Equal(t,
		"filters%5B%24and%5D%5B0%5D%5B%24or%5D%5B0%5D%5B%24and%5D%5B0%5D%5BcreatedAt%5D%5B%24gte%5D=2026-01-01"+
			"&filters%5B%24and%5D%5B0%5D%5B%24or%5D%5B0%5D%5B%24and%5D%5B1%5D%5BcreatedDate%5D%5B%24null%5D=true"+
			"&filters%5B%24and%5D%5B0%5D%5B%24or%5D%5B1%5D%5BcreatedDate%5D%5B%24gte%5D=2026-01-01",
		q.Encode())
}

// Две границы периода - две независимые группы $or под разными индексами
// $and, а порядок их добавления не влияет на строку.
func TestQueryEncodeMultipleOrGroupsCanonical(t *testing.T) {
	from := func(q *Query) *Query {
		return q.WhereOrGroup(
			[]Cond{{Field: "createdDate", Op: OpGte, Value: "2026-01-01"}},
			[]Cond{
				{Field: "createdDate", Op: OpNull, Value: "true"},
				{Field: "createdAt", Op: OpGte, Value: "2026-01-01"},
			},
		)
	}
	to := func(q *Query) *Query {
		return q.WhereOrGroup(
			[]Cond{{Field: "createdDate", Op: OpLte, Value: "2026-02-01"}},
			[]Cond{
				{Field: "createdDate", Op: OpNull, Value: "true"},
				{Field: "createdAt", Op: OpLte, Value: "2026-02-01"},
			},
		)
	}

	first := to(from(NewQuery())).Encode()
	second := from(to(NewQuery())).Encode()
	assert.Equal(t, first, second)
	assert.Contains(t, first, "filters%5B%24and%5D%5B0%5D%5B%24or%5D")
	assert.Contains(t, first, "filters%5B%24and%5D%5B1%5D%5B%24or%5D")
}

func TestQueryEncodeWhereIn(t *testing.T) {
	q := NewQuery().WhereIn("type", "income", "outcome")

	encoded := q.Encode()
	assert.Contains(t, encoded, "%5Btype%5D%5B%24in%5D%5B0%5D=income")
	assert.Contains(t, encoded, "%5Btype%5D%5B%24in%5D%5B1%5D=outcome")
}

func TestQueryEncodePopulateAndSortOrder(t *testing.T) {
	q := NewQuery().
		Populate("client", "master").
		Sort("createdAt:desc", "id:asc")

	assert.Equal(t,
		"populate%5B0%5D=client&populate%5B1%5D=master&sort%5B0%5D=createdAt%3Adesc&sort%5B1%5D=id%3Aasc",
		q.Encode(),
	)
}

func TestQueryEncodeEmpty(t *testing.T) {
	assert.Equal(t, "", NewQuery().Encode())
}

func TestPaginationParams(t *testing.T) {
	assert.Equal(t, "pagination[page]=3&pagination[pageSize]=25", PaginationParams(3, 25))
}
