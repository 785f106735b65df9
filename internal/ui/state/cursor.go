package state

// MoveCursorHome moves the cursor to the first row.
func (s *Sidebar) MoveCursorHome() bool {
	if len(s.Items) == 0 {
		s.Cursor = 0
		return false
	}
	old := s.Cursor
	s.Cursor = 0
	return old != s.Cursor
}

// MoveCursorEnd moves the cursor to the last row.
func (s *Sidebar) MoveCursorEnd() bool {
	n := len(s.Items)
	if n == 0 {
		s.Cursor = 0
		return false
	}
	old := s.Cursor
	s.Cursor = n - 1
	return old != s.Cursor
}

// MoveCursorUp moves the cursor one row up.
func (s *Sidebar) MoveCursorUp() bool {
	return s.moveCursorBy(-1)
}

// MoveCursorDown moves the cursor one row down.
func (s *Sidebar) MoveCursorDown() bool {
	return s.moveCursorBy(1)
}

// MoveCursorPageUp moves the cursor up by the given page size.
func (s *Sidebar) MoveCursorPageUp(maxVisible int) bool {
	return s.moveCursorBy(-s.pageSize(maxVisible))
}

// MoveCursorPageDown moves the cursor down by the given page size.
func (s *Sidebar) MoveCursorPageDown(maxVisible int) bool {
	return s.moveCursorBy(s.pageSize(maxVisible))
}

func (s *Sidebar) moveCursorBy(delta int) bool {
	if len(s.Items) == 0 {
		s.Cursor = 0
		return false
	}
	old := s.Cursor
	if s.Cursor < 0 {
		s.Cursor = 0
	}
	s.Cursor += delta
	if s.Cursor < 0 {
		s.Cursor = 0
	}
	if s.Cursor >= len(s.Items) {
		s.Cursor = len(s.Items) - 1
	}
	return s.Cursor != old
}

func (s *Sidebar) pageSize(maxVisible int) int {
	total := len(s.Items)
	if total == 0 {
		return 0
	}
	size := maxVisible
	if size <= 0 || size > total {
		size = total
	}
	if size < 1 {
		size = 1
	}
	return size
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays visible.
func (s *Sidebar) EnsureCursorVisible(maxVisible int) {
	if len(s.Items) == 0 {
		s.Cursor = 0
		s.ViewportOffset = 0
		return
	}
	if s.Cursor < 0 {
		s.Cursor = 0
	}
	if s.Cursor >= len(s.Items) {
		s.Cursor = len(s.Items) - 1
	}
	if maxVisible <= 0 {
		s.ViewportOffset = 0
		return
	}
	maxOffset := len(s.Items) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.ViewportOffset > maxOffset {
		s.ViewportOffset = maxOffset
	}
	if s.ViewportOffset < 0 {
		s.ViewportOffset = 0
	}
	if s.Cursor < s.ViewportOffset {
		s.ViewportOffset = s.Cursor
	}
	upper := s.ViewportOffset + maxVisible - 1
	if s.Cursor > upper {
		s.ViewportOffset = s.Cursor - maxVisible + 1
		if s.ViewportOffset < 0 {
			s.ViewportOffset = 0
		}
		if s.ViewportOffset > maxOffset {
			s.ViewportOffset = maxOffset
		}
	}
}
