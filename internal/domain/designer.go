package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// PriceTier 价格档位，序列化为 "$" / "$$" / "$$$"
type PriceTier string

const (
	PriceLow    PriceTier = "$"
	PriceMedium PriceTier = "$$"
	PriceHigh   PriceTier = "$$$"
)

var priceOrdinal = map[PriceTier]int{
	PriceLow:    1,
	PriceMedium: 2,
	PriceHigh:   3,
}

// Ordinal 未知档位返回 0（排序时视为最低）
func (p PriceTier) Ordinal() int { return priceOrdinal[p] }

func (p PriceTier) Valid() bool { return p.Ordinal() > 0 }

// Profile 设计师档案（加载后只读）
type Profile struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Rating      float64   `json:"rating"`
	Description string    `json:"description"`
	Projects    int       `json:"projects"`
	Experience  int       `json:"experience"`
	PriceRange  PriceTier `json:"priceRange"`
	Phone1      string    `json:"phone1"`
	Phone2      string    `json:"phone2"`
	Location    string    `json:"location"`
	Specialties []string  `json:"specialties"`
	Portfolio   []string  `json:"portfolio"`
}

// UnmarshalJSON 兼容后端返回的 price_range 字段
func (p *Profile) UnmarshalJSON(b []byte) error {
	type plain Profile
	aux := struct {
		*plain
		PriceRangeSnake PriceTier `json:"price_range"`
	}{plain: (*plain)(p)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if p.PriceRange == "" {
		p.PriceRange = aux.PriceRangeSnake
	}
	return nil
}

var (
	ErrDesignerNotFound = errors.New("designer not found")
)

// ValidationError 聚合全部字段错误
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string { return strings.Join(e.Problems, "; ") }

// ValidateProfile 检查必填项与取值范围；fields 为原始 JSON key 集合（nil 表示不检查缺失）
func ValidateProfile(p Profile, fields map[string]json.RawMessage) error {
	var problems []string
	if fields != nil {
		for _, k := range requiredFields {
			if _, ok := fields[k]; ok {
				continue
			}
			if k == "priceRange" {
				if _, ok := fields["price_range"]; ok {
					continue
				}
			}
			problems = append(problems, "missing required field: "+k)
		}
	}
	if strings.TrimSpace(p.Name) == "" {
		problems = append(problems, "name must not be empty")
	}
	if p.Rating < 0 || p.Rating > 5 {
		problems = append(problems, "rating must be between 0 and 5")
	}
	if !p.PriceRange.Valid() {
		problems = append(problems, "price range must be $, $$, or $$$")
	}
	if p.Projects < 0 {
		problems = append(problems, "projects must not be negative")
	}
	if p.Experience < 0 {
		problems = append(problems, "experience must not be negative")
	}
	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

var requiredFields = []string{
	"name", "rating", "description", "projects", "experience",
	"priceRange", "phone1", "phone2", "location", "specialties", "portfolio",
}

// DecodeProfiles 解析单个对象或数组，并逐条校验
func DecodeProfiles(raw []byte) ([]Profile, error) {
	trimmed := strings.TrimSpace(string(raw))
	var items []json.RawMessage
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, &ValidationError{Problems: []string{"invalid JSON: " + err.Error()}}
		}
	} else {
		items = []json.RawMessage{json.RawMessage(raw)}
	}

	out := make([]Profile, 0, len(items))
	var problems []string
	for i, item := range items {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(item, &fields); err != nil {
			problems = append(problems, fmt.Sprintf("designer %d: not an object", i+1))
			continue
		}
		var p Profile
		if err := json.Unmarshal(item, &p); err != nil {
			problems = append(problems, fmt.Sprintf("designer %d: %v", i+1, err))
			continue
		}
		if err := ValidateProfile(p, fields); err != nil {
			var ve *ValidationError
			if errors.As(err, &ve) {
				for _, m := range ve.Problems {
					problems = append(problems, fmt.Sprintf("designer %d: %s", i+1, m))
				}
			}
			continue
		}
		out = append(out, p)
	}
	if len(problems) > 0 {
		return nil, &ValidationError{Problems: problems}
	}
	return out, nil
}

// DecodeProfile 解析单个档案对象，必填字段与批量导入一致
func DecodeProfile(raw []byte) (Profile, error) {
	if !strings.HasPrefix(strings.TrimSpace(string(raw)), "{") {
		return Profile{}, &ValidationError{Problems: []string{"designer must be a JSON object"}}
	}
	ps, err := DecodeProfiles(raw)
	if err != nil {
		return Profile{}, err
	}
	return ps[0], nil
}

type DesignerRepository interface {
	List(ctx context.Context) ([]Profile, error)
	FindByID(ctx context.Context, id int64) (*Profile, error)
	Create(ctx context.Context, p *Profile) error
	CreateBatch(ctx context.Context, ps []Profile) (int, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
	Recent(ctx context.Context, n int) ([]Profile, error)
}
