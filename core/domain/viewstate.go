// ABOUTME: View state for the analysis tab group
// ABOUTME: Tab selection is a pure transition producing a new ViewState

package domain

// Tab is one button in the .nav-tabs group.
type Tab struct {
	ID    string
	Label string
}

// ViewState owns the active tab of the page.
type ViewState struct {
	Tabs        []Tab
	ActiveTabID string
}

// DefaultTabs are the tabs of the analysis page.
var DefaultTabs = []Tab{
	{ID: "text", Label: "Text Analysis"},
	{ID: "url", Label: "URL Analysis"},
	{ID: "media", Label: "Deepfake Detection"},
}

// DefaultViewState returns the initial state with the first tab active.
func DefaultViewState() ViewState {
	return ViewState{Tabs: DefaultTabs, ActiveTabID: DefaultTabs[0].ID}
}

// HasTab reports whether id names a tab in the group.
func (v ViewState) HasTab(id string) bool {
	for _, t := range v.Tabs {
		if t.ID == id {
			return true
		}
	}
	return false
}

// Select returns the state with id active. Unknown ids leave the state unchanged.
func (v ViewState) Select(id string) ViewState {
	if !v.HasTab(id) {
		return v
	}
	v.ActiveTabID = id
	return v
}

// IsActive reports whether id is the active tab.
func (v ViewState) IsActive(id string) bool {
	return v.ActiveTabID == id
}
