package listing

import (
	"sort"

	"emptycup-directory/internal/domain"
)

type SortField string

const (
	FieldExperience SortField = "experience"
	FieldPriceRange SortField = "priceRange"
	FieldProjects   SortField = "projects"
	FieldRating     SortField = "rating"
	FieldID         SortField = "id"
	FieldName       SortField = "name"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

type SortOption struct {
	Label string    `json:"label"`
	Field SortField `json:"field"`
	Order Direction `json:"order"`
}

var (
	SortByExperience = SortOption{Label: "Sort by Experience", Field: FieldExperience, Order: Desc}
	SortByPrice      = SortOption{Label: "Sort by Price", Field: FieldPriceRange, Order: Asc}
	SortByProjects   = SortOption{Label: "Sort by Projects", Field: FieldProjects, Order: Desc}

	DefaultSort = SortByExperience
)

// SortOptions 界面上可选的排序项（顺序即展示顺序）
func SortOptions() []SortOption {
	return []SortOption{SortByExperience, SortByPrice, SortByProjects}
}

// FindSortOption 按 label 查找
func FindSortOption(label string) (SortOption, bool) {
	for _, o := range SortOptions() {
		if o.Label == label {
			return o, true
		}
	}
	return SortOption{}, false
}

// Set 整数 id 集合
type Set map[int64]struct{}

func NewSet(ids ...int64) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s Set) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

// DeriveVisible 先去掉隐藏项，再按需只保留收藏项，最后稳定排序。不修改入参。
func DeriveVisible(profiles []domain.Profile, hidden, shortlist Set, onlyShortlisted bool, opt SortOption) []domain.Profile {
	out := make([]domain.Profile, 0, len(profiles))
	for _, p := range profiles {
		if hidden.Has(p.ID) {
			continue
		}
		if onlyShortlisted && !shortlist.Has(p.ID) {
			continue
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return compare(out[i], out[j], opt) < 0
	})
	return out
}

// compare 返回负数表示 a 排在 b 前；无法比较的字段一律视为相等
func compare(a, b domain.Profile, opt SortOption) int {
	av, aok := sortKey(a, opt.Field)
	bv, bok := sortKey(b, opt.Field)
	if !aok || !bok {
		return 0
	}
	var d float64
	if opt.Order == Desc {
		d = bv - av
	} else {
		d = av - bv
	}
	switch {
	case d < 0:
		return -1
	case d > 0:
		return 1
	}
	return 0
}

func sortKey(p domain.Profile, f SortField) (float64, bool) {
	switch f {
	case FieldPriceRange:
		return float64(p.PriceRange.Ordinal()), true
	case FieldExperience:
		return float64(p.Experience), true
	case FieldProjects:
		return float64(p.Projects), true
	case FieldRating:
		return p.Rating, true
	case FieldID:
		return float64(p.ID), true
	}
	return 0, false
}
