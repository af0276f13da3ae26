// Package view 把用户操作映射到 listing.Store，并管理纯界面状态（弹窗、选中项、标签页、提示）。
package view

import (
	"sync"

	"emptycup-directory/internal/domain"
	"emptycup-directory/internal/listing"
)

// Dialog 同一时刻最多一个弹窗
type Dialog string

const (
	DialogNone     Dialog = "none"
	DialogSchedule Dialog = "schedule"
	DialogGallery  Dialog = "gallery"
	DialogMap      Dialog = "map"
	DialogDetails  Dialog = "details"
	DialogReport   Dialog = "report"
)

func ParseDialog(s string) (Dialog, bool) {
	switch d := Dialog(s); d {
	case DialogNone, DialogSchedule, DialogGallery, DialogMap, DialogDetails, DialogReport:
		return d, true
	}
	return DialogNone, false
}

// needsProfile 详情/举报需要选中某个设计师
func (d Dialog) needsProfile() bool { return d == DialogDetails || d == DialogReport }

type Tab string

const (
	TabListings Tab = "listings"
	TabGallery  Tab = "gallery"
	TabMap      Tab = "map"
)

func ParseTab(s string) (Tab, bool) {
	switch t := Tab(s); t {
	case TabListings, TabGallery, TabMap:
		return t, true
	}
	return TabListings, false
}

var ReportReasons = []string{"Inappropriate content", "Fake profile", "Spam", "Other"}

type Notice struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Controller struct {
	mu sync.Mutex

	store *listing.Store

	dialog   Dialog
	selected *domain.Profile
	tab      Tab
	sortOpen bool
	notices  []Notice
}

func NewController(store *listing.Store) *Controller {
	return &Controller{store: store, dialog: DialogNone, tab: TabListings}
}

func (c *Controller) Store() *listing.Store { return c.store }

func (c *Controller) ToggleSortMenu() {
	c.mu.Lock()
	c.sortOpen = !c.sortOpen
	c.mu.Unlock()
}

// SelectSort 应用排序并收起菜单；未知 label 忽略
func (c *Controller) SelectSort(label string) bool {
	opt, ok := listing.FindSortOption(label)
	if !ok {
		return false
	}
	c.store.SetSort(opt)
	c.mu.Lock()
	c.sortOpen = false
	c.mu.Unlock()
	return true
}

func (c *Controller) SwitchTab(t Tab) {
	c.mu.Lock()
	c.tab = t
	c.mu.Unlock()
}

func (c *Controller) ToggleShortlistedOnly() bool {
	v := !c.store.OnlyShortlisted()
	c.store.SetOnlyShortlisted(v)
	return v
}

// OpenDialog 打开弹窗；详情/举报时 id 不存在则保持关闭
func (c *Controller) OpenDialog(d Dialog, profileID int64) bool {
	var sel *domain.Profile
	if d.needsProfile() {
		p, ok := c.store.Profile(profileID)
		if !ok {
			return false
		}
		sel = &p
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dialog = d
	if sel != nil {
		c.selected = sel
	}
	return true
}

func (c *Controller) CloseDialog() {
	c.mu.Lock()
	c.dialog = DialogNone
	c.mu.Unlock()
}

func (c *Controller) ToggleShortlist(id int64) bool { return c.store.ToggleShortlist(id) }

func (c *Controller) Hide(id int64) { c.store.Hide(id) }

func (c *Controller) Undo() (int64, bool) { return c.store.Undo() }

// Report 提交的举报内容，不落库
type Report struct {
	DesignerID  int64  `json:"designerId"`
	Reason      string `json:"reason"`
	Description string `json:"description"`
}

// SubmitReport 只在举报弹窗打开时生效：关闭弹窗并给出提示
func (c *Controller) SubmitReport(reason, description string) (Report, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dialog != DialogReport || c.selected == nil {
		return Report{}, false
	}
	rep := Report{
		DesignerID:  c.selected.ID,
		Reason:      normalizeReason(reason),
		Description: description,
	}
	c.dialog = DialogNone
	c.notices = append(c.notices, Notice{
		Title:       "Report submitted",
		Description: "Thank you for your feedback. We'll review this report.",
	})
	return rep, true
}

func normalizeReason(r string) string {
	if r == "" {
		return ReportReasons[0]
	}
	for _, known := range ReportReasons {
		if r == known {
			return r
		}
	}
	return "Other"
}
