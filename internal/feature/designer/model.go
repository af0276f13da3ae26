package designer

import (
	"time"

	"emptycup-directory/internal/domain"
)

type DesignerModel struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	Name        string  `gorm:"size:255;not null"`
	Rating      float64 `gorm:"not null"`
	Description string  `gorm:"type:text;not null"`
	Projects    int     `gorm:"not null"`
	Experience  int     `gorm:"not null;index"`
	PriceRange  string  `gorm:"size:10;not null"`
	Phone1      string  `gorm:"size:20;not null"`
	Phone2      string  `gorm:"size:20;not null"`
	Location    string  `gorm:"size:100;not null"`

	Specialties []string `gorm:"type:text;serializer:json;not null"`
	Portfolio   []string `gorm:"type:text;serializer:json;not null"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (DesignerModel) TableName() string { return "designers" }

func FromProfile(p domain.Profile) DesignerModel {
	return DesignerModel{
		ID:          p.ID,
		Name:        p.Name,
		Rating:      p.Rating,
		Description: p.Description,
		Projects:    p.Projects,
		Experience:  p.Experience,
		PriceRange:  string(p.PriceRange),
		Phone1:      p.Phone1,
		Phone2:      p.Phone2,
		Location:    p.Location,
		Specialties: nonNil(p.Specialties),
		Portfolio:   nonNil(p.Portfolio),
	}
}

func (m DesignerModel) Profile() domain.Profile {
	return domain.Profile{
		ID:          m.ID,
		Name:        m.Name,
		Rating:      m.Rating,
		Description: m.Description,
		Projects:    m.Projects,
		Experience:  m.Experience,
		PriceRange:  domain.PriceTier(m.PriceRange),
		Phone1:      m.Phone1,
		Phone2:      m.Phone2,
		Location:    m.Location,
		Specialties: nonNil(m.Specialties),
		Portfolio:   nonNil(m.Portfolio),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
