// Package strapi инкапсулирует общение с удалённой CMS: построение
// query-строк в её скобочном синтаксисе и HTTP-транспорт.
package strapi

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Op - оператор фильтрации CMS.
type Op string

const (
	OpEq        Op = "$eq"
	OpNe        Op = "$ne"
	OpIn        Op = "$in"
	OpGt        Op = "$gt"
	OpGte       Op = "$gte"
	OpLt        Op = "$lt"
	OpLte       Op = "$lte"
	OpContainsI Op = "$containsi"
	OpNull      Op = "$null"
	OpNotNull   Op = "$notNull"
)

type clause struct {
	field  string // путь через точку: "client.phone"
	op     Op
	values []string
}

// Query - построитель query-строки для list-запросов CMS.
// Encode() детерминирован: структурно равные запросы дают байт-в-байт
// одинаковую строку независимо от порядка добавления условий. Эта строка
// и есть ключ кеша, поэтому канонизация здесь принципиальна.
type Query struct {
	and      []clause
	or       []clause
	groups   [][][]clause
	populate []string
	sorts    []string
}

func NewQuery() *Query {
	return &Query{}
}

// Where добавляет условие в группу $and.
func (q *Query) Where(field string, op Op, value string) *Query {
	q.and = append(q.and, clause{field: field, op: op, values: []string{value}})
	return q
}

// WhereIn добавляет условие $in со списком значений.
func (q *Query) WhereIn(field string, values ...string) *Query {
	q.and = append(q.and, clause{field: field, op: OpIn, values: values})
	return q
}

// WhereOr добавляет условие в единственную группу $or (используется для
// поиска по нескольким полям сразу). Группа вкладывается в $and.
func (q *Query) WhereOr(field string, op Op, value string) *Query {
	q.or = append(q.or, clause{field: field, op: op, values: []string{value}})
	return q
}

// Cond - условие для ветвей WhereOrGroup.
type Cond struct {
	Field string
	Op    Op
	Value string
}

// WhereOrGroup добавляет отдельную группу $or: запись попадает в выборку,
// если выполняется хотя бы одна ветвь. Ветвь из нескольких условий
// кодируется вложенной конъюнкцией.
func (q *Query) WhereOrGroup(arms ...[]Cond) *Query {
	group := make([][]clause, 0, len(arms))
	for _, arm := range arms {
		clauses := make([]clause, 0, len(arm))
		for _, c := range arm {
			clauses = append(clauses, clause{field: c.Field, op: c.Op, values: []string{c.Value}})
		}
		sortClauses(clauses)
		group = append(group, clauses)
	}
	sortArms(group)
	q.groups = append(q.groups, group)
	return q
}

// Populate указывает связи, которые CMS должна вложить в ответ.
func (q *Query) Populate(relations ...string) *Query {
	q.populate = append(q.populate, relations...)
	return q
}

// Sort добавляет сортировку в виде "field:asc" / "field:desc".
func (q *Query) Sort(sorts ...string) *Query {
	q.sorts = append(q.sorts, sorts...)
	return q
}

// Encode собирает каноническую query-строку без пагинации.
func (q *Query) Encode() string {
	var pairs []string
	appendPair := func(key, value string) {
		pairs = append(pairs, url.QueryEscape(key)+"="+url.QueryEscape(value))
	}

	and := append([]clause(nil), q.and...)
	sortClauses(and)
	or := append([]clause(nil), q.or...)
	sortClauses(or)

	idx := 0
	for _, c := range and {
		base := fmt.Sprintf("filters[$and][%d]%s[%s]", idx, bracketPath(c.field), c.op)
		appendClauseValues(appendPair, base, c)
		idx++
	}
	if len(or) > 0 {
		for j, c := range or {
			base := fmt.Sprintf("filters[$and][%d][$or][%d]%s[%s]", idx, j, bracketPath(c.field), c.op)
			appendClauseValues(appendPair, base, c)
		}
		idx++
	}

	groups := append([][][]clause(nil), q.groups...)
	sortGroups(groups)
	for _, group := range groups {
		for j, arm := range group {
			if len(arm) == 1 {
				c := arm[0]
				base := fmt.Sprintf("filters[$and][%d][$or][%d]%s[%s]", idx, j, bracketPath(c.field), c.op)
				appendClauseValues(appendPair, base, c)
				continue
			}
			for k, c := range arm {
				base := fmt.Sprintf("filters[$and][%d][$or][%d][$and][%d]%s[%s]", idx, j, k, bracketPath(c.field), c.op)
				appendClauseValues(appendPair, base, c)
			}
		}
		idx++
	}

	for i, p := range q.populate {
		appendPair(fmt.Sprintf("populate[%d]", i), p)
	}
	for i, s := range q.sorts {
		appendPair(fmt.Sprintf("sort[%d]", i), s)
	}

	return strings.Join(pairs, "&")
}

func appendClauseValues(appendPair func(key, value string), base string, c clause) {
	if c.op == OpIn {
		for vi, v := range c.values {
			appendPair(fmt.Sprintf("%s[%d]", base, vi), v)
		}
		return
	}
	appendPair(base, c.values[0])
}

// PaginationParams кодирует параметры страницы в синтаксисе CMS.
func PaginationParams(page, pageSize int) string {
	return "pagination[page]=" + strconv.Itoa(page) +
		"&pagination[pageSize]=" + strconv.Itoa(pageSize)
}

func bracketPath(field string) string {
	var b strings.Builder
	for _, part := range strings.Split(field, ".") {
		b.WriteString("[")
		b.WriteString(part)
		b.WriteString("]")
	}
	return b.String()
}

func armKey(arm []clause) string {
	parts := make([]string, 0, len(arm))
	for _, c := range arm {
		parts = append(parts, c.field+string(c.op)+strings.Join(c.values, ","))
	}
	return strings.Join(parts, "|")
}

func sortArms(arms [][]clause) {
	sort.SliceStable(arms, func(i, j int) bool {
		return armKey(arms[i]) < armKey(arms[j])
	})
}

func sortGroups(groups [][][]clause) {
	sort.SliceStable(groups, func(i, j int) bool {
		return groupKey(groups[i]) < groupKey(groups[j])
	})
}

func groupKey(group [][]clause) string {
	parts := make([]string, 0, len(group))
	for _, arm := range group {
		parts = append(parts, armKey(arm))
	}
	return strings.Join(parts, "||")
}

func sortClauses(clauses []clause) {
	sort.SliceStable(clauses, func(i, j int) bool {
		if clauses[i].field != clauses[j].field {
			return clauses[i].field < clauses[j].field
		}
		if clauses[i].op != clauses[j].op {
			return clauses[i].op < clauses[j].op
		}
		return strings.Join(clauses[i].values, ",") < strings.Join(clauses[j].values, ",")
	})
}
