package repository

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"time"

	"creai_edu_backend/internal/util"
)

type PageParams struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string
}

// Normalize 填充默认值：page=1, limit=10, 按 order 升序
func (p PageParams) Normalize() PageParams {
	if p.Page < 1 {
		p.Page = util.DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = util.DefaultLimit
	}
	if p.Limit > util.MaxLimit {
		p.Limit = util.MaxLimit
	}
	// Offset()+Limit 不能溢出 int
	if maxPage := math.MaxInt / p.Limit; p.Page > maxPage {
		p.Page = maxPage
	}
	if _, ok := sortColumns[p.SortBy]; !ok {
		p.SortBy = "order"
	}
	if strings.ToLower(p.SortOrder) == "desc" {
		p.SortOrder = "desc"
	} else {
		p.SortOrder = "asc"
	}
	return p
}

func (p PageParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
	HasNext    bool  `json:"hasNext"`
	HasPrev    bool  `json:"hasPrev"`
}

// NewPagination p 必须已 Normalize
func NewPagination(p PageParams, total int64) Pagination {
	end := int64(p.Offset() + p.Limit)
	return Pagination{
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: int((total + int64(p.Limit) - 1) / int64(p.Limit)),
		HasNext:    end < total,
		HasPrev:    p.Page > 1,
	}
}

type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// 排序字段 -> 数据库列
var sortColumns = map[string]string{
	"order":     "sort_order",
	"title":     "title",
	"createdAt": "created_at",
}

func orderClause(p PageParams) string {
	return sortColumns[p.SortBy] + " " + p.SortOrder
}

type sortKey struct {
	order     int
	title     string
	createdAt time.Time
}

func compareKeys(p PageParams, a, b sortKey) int {
	var c int
	switch p.SortBy {
	case "title":
		c = strings.Compare(a.title, b.title)
	case "createdAt":
		c = a.createdAt.Compare(b.createdAt)
	}
	if c == 0 {
		c = cmp.Compare(a.order, b.order)
	}
	if p.SortOrder == "desc" {
		return -c
	}
	return c
}

// paginate 对已过滤的切片排序并截取当前页
func paginate[T any](items []T, p PageParams, key func(T) sortKey) Page[T] {
	p = p.Normalize()
	slices.SortStableFunc(items, func(a, b T) int {
		return compareKeys(p, key(a), key(b))
	})

	total := int64(len(items))
	start := p.Offset()
	if start > len(items) {
		start = len(items)
	}
	end := start + p.Limit
	if end > len(items) {
		end = len(items)
	}

	data := make([]T, end-start)
	copy(data, items[start:end])
	return Page[T]{Data: data, Pagination: NewPagination(p, total)}
}
