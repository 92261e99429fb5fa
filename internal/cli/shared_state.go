package cli

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Active project context
	ActiveProjectID   string
	ActiveShortID     string
	ActiveProjectName string

	// Active WBS item context
	ActiveItemID    string
	ActiveItemTitle string
	ActiveItemSeq   int

	// Terminal dimensions
	Width  int
	Height int
}

// ClearItemContext resets only the active item state.
func (s *SharedState) ClearItemContext() {
	s.ActiveItemID = ""
	s.ActiveItemTitle = ""
	s.ActiveItemSeq = 0
}

// SetActiveProject sets the active project context. Views that only have a
// portfolio row pass the display ID they already show.
func (s *SharedState) SetActiveProject(id, shortID, name string) {
	s.ActiveProjectID = id
	s.ActiveShortID = shortID
	s.ActiveProjectName = name
}

// SetActiveItem sets the active WBS item context.
func (s *SharedState) SetActiveItem(id, title string, seq int) {
	s.ActiveItemID = id
	s.ActiveItemTitle = title
	s.ActiveItemSeq = seq
}

// ContentHeight returns the available height for view content, accounting
// for the header (2 lines: title + separator) and the status bar (2 lines:
// separator + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
