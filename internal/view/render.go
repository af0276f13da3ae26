package view

import (
	"math"

	"emptycup-directory/internal/domain"
	"emptycup-directory/internal/listing"
)

const (
	EmptyMessage      = "No designers found"
	UndoBannerMessage = "Designer hidden"
)

// 图库占位图
var galleryImages = []string{
	"https://images.unsplash.com/photo-1586023492125-27b2c045efd7?w=400",
	"https://images.unsplash.com/photo-1522708323590-d24dbb6b0267?w=400",
	"https://images.unsplash.com/photo-1560448204-e02f11c3d0e2?w=400",
	"https://images.unsplash.com/photo-1618221195710-dd6b41faaea8?w=400",
}

type Stars struct {
	Full  int  `json:"full"`
	Half  bool `json:"half"`
	Empty int  `json:"empty"`
}

// StarsFor 满星 = floor，有小数部分补半星，其余为空星
func StarsFor(rating float64) Stars {
	rating = math.Max(0, math.Min(5, rating))
	full := int(math.Floor(rating))
	return Stars{
		Full:  full,
		Half:  rating != math.Floor(rating),
		Empty: 5 - int(math.Ceil(rating)),
	}
}

type Card struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Rating      float64  `json:"rating"`
	Stars       Stars    `json:"stars"`
	Description string   `json:"description"`
	Projects    int      `json:"projects"`
	Years       int      `json:"years"`
	Price       string   `json:"price"`
	Phones      []string `json:"phones"`
	Shortlisted bool     `json:"shortlisted"`
}

type UndoBanner struct {
	DesignerID int64  `json:"designerId"`
	Message    string `json:"message"`
}

type SortMenu struct {
	Open    bool                 `json:"open"`
	Active  string               `json:"active"`
	Options []listing.SortOption `json:"options"`
}

type Details struct {
	Profile     domain.Profile `json:"profile"`
	Stars       Stars          `json:"stars"`
	RatingLabel float64        `json:"ratingOutOfFive"`
	Contacts    []string       `json:"contacts"`
}

type DialogView struct {
	Kind    Dialog   `json:"kind"`
	Title   string   `json:"title"`
	Message string   `json:"message,omitempty"`
	Images  []string `json:"images,omitempty"`
	Details *Details `json:"details,omitempty"`
	Reasons []string `json:"reasons,omitempty"`
}

type Page struct {
	Tab             Tab         `json:"tab"`
	OnlyShortlisted bool        `json:"onlyShortlisted"`
	Cards           []Card      `json:"cards"`
	Empty           string      `json:"empty,omitempty"`
	Undo            *UndoBanner `json:"undo,omitempty"`
	SortMenu        SortMenu    `json:"sortMenu"`
	Dialog          *DialogView `json:"dialog,omitempty"`
	Notices         []Notice    `json:"notices,omitempty"`
}

// Render 生成当前视图；待展示的提示取出后清空
func (c *Controller) Render() Page {
	visible := c.store.Visible()
	undoID, armed := c.store.UndoTarget()
	sortOpt := c.store.Sort()

	c.mu.Lock()
	defer c.mu.Unlock()

	page := Page{
		Tab:             c.tab,
		OnlyShortlisted: c.store.OnlyShortlisted(),
		Cards:           make([]Card, 0, len(visible)),
		SortMenu: SortMenu{
			Open:    c.sortOpen,
			Active:  sortOpt.Label,
			Options: listing.SortOptions(),
		},
	}
	for _, p := range visible {
		page.Cards = append(page.Cards, Card{
			ID:          p.ID,
			Name:        p.Name,
			Rating:      p.Rating,
			Stars:       StarsFor(p.Rating),
			Description: p.Description,
			Projects:    p.Projects,
			Years:       p.Experience,
			Price:       string(p.PriceRange),
			Phones:      []string{p.Phone1, p.Phone2},
			Shortlisted: c.store.IsShortlisted(p.ID),
		})
	}
	if len(page.Cards) == 0 {
		page.Empty = EmptyMessage
	}
	if armed {
		page.Undo = &UndoBanner{DesignerID: undoID, Message: UndoBannerMessage}
	}
	page.Dialog = c.dialogView()
	if len(c.notices) > 0 {
		page.Notices = c.notices
		c.notices = nil
	}
	return page
}

func (c *Controller) dialogView() *DialogView {
	switch c.dialog {
	case DialogSchedule:
		return &DialogView{Kind: c.dialog, Title: "Schedule Appointment",
			Message: "Booking functionality coming soon. Stay tuned!"}
	case DialogGallery:
		return &DialogView{Kind: c.dialog, Title: "Sample Portfolio",
			Images: append([]string(nil), galleryImages...)}
	case DialogMap:
		return &DialogView{Kind: c.dialog, Title: "Designer Locations",
			Message: "Location services are currently disabled. Enable them to view designer locations."}
	case DialogDetails:
		if c.selected == nil {
			return nil
		}
		p := *c.selected
		return &DialogView{Kind: c.dialog, Title: p.Name, Details: &Details{
			Profile:     p,
			Stars:       StarsFor(p.Rating),
			RatingLabel: p.Rating,
			Contacts:    []string{p.Phone1, p.Phone2, p.Location},
		}}
	case DialogReport:
		return &DialogView{Kind: c.dialog, Title: "Report Designer",
			Reasons: append([]string(nil), ReportReasons...)}
	}
	return nil
}
