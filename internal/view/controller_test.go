package view

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emptycup-directory/internal/domain"
	"emptycup-directory/internal/listing"
)

type sliceSource []domain.Profile

func (s sliceSource) Fetch(context.Context) ([]domain.Profile, error) { return s, nil }

func newController(t *testing.T) *Controller {
	t.Helper()
	store := listing.NewStore(listing.Options{})
	t.Cleanup(store.Close)
	store.Load(context.Background(), sliceSource{
		{ID: 1, Name: "Epic Designs", Rating: 3.5, Experience: 8, Projects: 57, PriceRange: domain.PriceMedium, Location: "Bangalore"},
		{ID: 2, Name: "Studio - D3", Rating: 4.5, Experience: 6, Projects: 43, PriceRange: domain.PriceHigh},
		{ID: 3, Name: "House of designs", Rating: 4, Experience: 5, Projects: 32, PriceRange: domain.PriceLow},
	})
	return NewController(store)
}

func cardIDs(p Page) []int64 {
	var out []int64
	for _, c := range p.Cards {
		out = append(out, c.ID)
	}
	return out
}

func TestRender_Defaults(t *testing.T) {
	c := newController(t)
	page := c.Render()

	assert.Equal(t, TabListings, page.Tab)
	assert.Equal(t, []int64{1, 2, 3}, cardIDs(page))
	assert.Equal(t, "Sort by Experience", page.SortMenu.Active)
	assert.False(t, page.SortMenu.Open)
	assert.Nil(t, page.Dialog)
	assert.Nil(t, page.Undo)
	assert.Empty(t, page.Empty)
}

func TestSelectSortClosesMenu(t *testing.T) {
	c := newController(t)
	c.ToggleSortMenu()
	require.True(t, c.Render().SortMenu.Open)

	require.True(t, c.SelectSort("Sort by Price"))
	page := c.Render()
	assert.False(t, page.SortMenu.Open)
	assert.Equal(t, []int64{3, 1, 2}, cardIDs(page))

	assert.False(t, c.SelectSort("Sort by Magic"))
	assert.Equal(t, "Sort by Price", c.Render().SortMenu.Active)
}

func TestOnlyOneDialogAtATime(t *testing.T) {
	c := newController(t)
	require.True(t, c.OpenDialog(DialogSchedule, 0))
	require.True(t, c.OpenDialog(DialogMap, 0))

	page := c.Render()
	require.NotNil(t, page.Dialog)
	assert.Equal(t, DialogMap, page.Dialog.Kind)
	assert.Equal(t, "Designer Locations", page.Dialog.Title)

	c.CloseDialog()
	assert.Nil(t, c.Render().Dialog)
}

func TestDetailsDialog(t *testing.T) {
	c := newController(t)
	assert.False(t, c.OpenDialog(DialogDetails, 42))
	assert.Nil(t, c.Render().Dialog)

	require.True(t, c.OpenDialog(DialogDetails, 1))
	d := c.Render().Dialog
	require.NotNil(t, d)
	require.NotNil(t, d.Details)
	assert.Equal(t, "Epic Designs", d.Title)
	assert.Equal(t, Stars{Full: 3, Half: true, Empty: 1}, d.Details.Stars)
	assert.Contains(t, d.Details.Contacts, "Bangalore")
}

func TestSubmitReport(t *testing.T) {
	c := newController(t)

	_, ok := c.SubmitReport("Spam", "")
	assert.False(t, ok, "report dialog not open")

	require.True(t, c.OpenDialog(DialogReport, 2))
	assert.Equal(t, ReportReasons, c.Render().Dialog.Reasons)

	rep, ok := c.SubmitReport("", "looks fake")
	require.True(t, ok)
	assert.Equal(t, int64(2), rep.DesignerID)
	assert.Equal(t, "Inappropriate content", rep.Reason)

	page := c.Render()
	assert.Nil(t, page.Dialog)
	require.Len(t, page.Notices, 1)
	assert.Equal(t, "Report submitted", page.Notices[0].Title)

	// 提示只展示一次
	assert.Empty(t, c.Render().Notices)
}

func TestNormalizeReason(t *testing.T) {
	assert.Equal(t, "Spam", normalizeReason("Spam"))
	assert.Equal(t, "Other", normalizeReason("rude"))
	assert.Equal(t, "Inappropriate content", normalizeReason(""))
}

func TestHideShowsUndoBanner(t *testing.T) {
	c := newController(t)
	c.Hide(2)

	page := c.Render()
	require.NotNil(t, page.Undo)
	assert.Equal(t, int64(2), page.Undo.DesignerID)
	assert.Equal(t, UndoBannerMessage, page.Undo.Message)
	assert.Equal(t, []int64{1, 3}, cardIDs(page))

	_, ok := c.Undo()
	require.True(t, ok)
	page = c.Render()
	assert.Nil(t, page.Undo)
	assert.Equal(t, []int64{1, 2, 3}, cardIDs(page))
}

func TestShortlistedOnlyEmptyState(t *testing.T) {
	c := newController(t)
	assert.True(t, c.ToggleShortlistedOnly())

	page := c.Render()
	assert.Empty(t, page.Cards)
	assert.Equal(t, EmptyMessage, page.Empty)
	assert.True(t, page.OnlyShortlisted)

	assert.True(t, c.ToggleShortlist(3))
	page = c.Render()
	assert.Equal(t, []int64{3}, cardIDs(page))
	assert.True(t, page.Cards[0].Shortlisted)
}

func TestSwitchTab(t *testing.T) {
	c := newController(t)
	c.SwitchTab(TabGallery)
	assert.Equal(t, TabGallery, c.Render().Tab)

	_, ok := ParseTab("calendar")
	assert.False(t, ok)
	d, ok := ParseDialog("report")
	assert.True(t, ok)
	assert.Equal(t, DialogReport, d)
}

func TestStarsFor(t *testing.T) {
	assert.Equal(t, Stars{Full: 4, Empty: 1}, StarsFor(4))
	assert.Equal(t, Stars{Full: 0, Empty: 5}, StarsFor(0))
	assert.Equal(t, Stars{Full: 5, Empty: 0}, StarsFor(5))
	assert.Equal(t, Stars{Full: 2, Half: true, Empty: 2}, StarsFor(2.3))
	assert.Equal(t, Stars{Full: 5, Empty: 0}, StarsFor(7.5), "clamped to five")
	assert.Equal(t, Stars{Full: 0, Empty: 5}, StarsFor(-1))
}
