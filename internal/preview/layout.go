package preview

// paneWidths returns content widths for the raw diff pane and the Markdown
// pane. Each pane has a one-column border on both sides.
func paneWidths(totalWidth int, desiredLeft int, hideLeft bool) (int, int) {
	if hideLeft {
		available := totalWidth - 2
		if available < 1 {
			return 0, 1
		}
		return 0, available
	}

	available := totalWidth - 4
	if available < 2 {
		return 1, 1
	}

	left := desiredLeft
	if left < 1 {
		left = 1
	}
	if left > available-1 {
		left = available - 1
	}
	return left, available - left
}
