package entity

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Параметры пагинации списков
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Поля, по которым разрешена сортировка списка товаров
var allowedOrderings = map[string]string{
	"name":           "name",
	"price":          "price",
	"created_at":     "created_at",
	"stock_quantity": "stock_quantity",
}

// ProductFilter - типизированный набор фильтров списка товаров
// Nil-поля означают "фильтр не применяется". Все фильтры комбинируются
// через AND, порядок применения на результат не влияет
type ProductFilter struct {
	CategoryID    *uuid.UUID // точное совпадение категории
	CategoryName  string     // подстрока имени категории (без учета регистра)
	MinPrice      *float64
	MaxPrice      *float64
	InStock       *bool
	MinStock      *int
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	SearchTerms   []string // каждый терм должен совпасть хотя бы с одним полем
	LowStockOnly  bool

	OrderBy    string // колонка из allowedOrderings
	Descending bool

	Page     int
	PageSize int
}

// ParseProductFilter разбирает query-параметры в ProductFilter
// Неразборчивые значения молча игнорируются: эндпоинт листинга
// всегда отвечает 200 с "best effort" фильтрацией
func ParseProductFilter(values url.Values) *ProductFilter {
	f := &ProductFilter{
		OrderBy:    "created_at",
		Descending: true,
		Page:       1,
		PageSize:   DefaultPageSize,
	}

	if category := values.Get("category"); category != "" {
		// UUID трактуем как идентификатор категории,
		// любое другое значение - как подстроку имени
		if id, err := uuid.Parse(category); err == nil {
			f.CategoryID = &id
		} else {
			f.CategoryName = category
		}
	}

	if v := values.Get("min_price"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			f.MinPrice = &p
		}
	}
	if v := values.Get("max_price"); v != "" {
		if p, err := strconv.ParseFloat(v, 64); err == nil {
			f.MaxPrice = &p
		}
	}

	switch values.Get("in_stock") {
	case "true":
		t := true
		f.InStock = &t
	case "false":
		fl := false
		f.InStock = &fl
	}

	if v := values.Get("min_stock"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			f.MinStock = &n
		}
	}

	if v := values.Get("created_after"); v != "" {
		if t, ok := parseTimestamp(v); ok {
			f.CreatedAfter = &t
		}
	}
	if v := values.Get("created_before"); v != "" {
		if t, ok := parseTimestamp(v); ok {
			f.CreatedBefore = &t
		}
	}

	if search := strings.TrimSpace(values.Get("search")); search != "" {
		f.SearchTerms = strings.Fields(search)
	}

	if ordering := values.Get("ordering"); ordering != "" {
		field := ordering
		desc := false
		if strings.HasPrefix(ordering, "-") {
			field = ordering[1:]
			desc = true
		}
		if column, ok := allowedOrderings[field]; ok {
			f.OrderBy = column
			f.Descending = desc
		}
	}

	if v := values.Get("page"); v != "" {
		if page, err := strconv.Atoi(v); err == nil && page >= 1 {
			f.Page = page
		}
	}
	if v := values.Get("page_size"); v != "" {
		if size, err := strconv.Atoi(v); err == nil && size >= 1 {
			if size > MaxPageSize {
				size = MaxPageSize
			}
			f.PageSize = size
		}
	}

	return f
}

// Offset возвращает смещение для SQL запроса
func (f *ProductFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// parseTimestamp принимает ISO-8601 метку времени или дату
func parseTimestamp(v string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
