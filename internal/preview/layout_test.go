package preview

import "testing"

func TestPaneWidthsWithBothPanes(t *testing.T) {
	left, right := paneWidths(120, 40, false)
	if left != 40 || right != 76 {
		t.Fatalf("paneWidths() = (%d,%d), want (40,76)", left, right)
	}
}

func TestPaneWidthsWithHiddenRawPane(t *testing.T) {
	left, right := paneWidths(120, 40, true)
	if left != 0 || right != 118 {
		t.Fatalf("paneWidths(hidden) = (%d,%d), want (0,118)", left, right)
	}
}

func TestPaneWidthsClampsLeft(t *testing.T) {
	left, right := paneWidths(20, 40, false)
	if left != 15 || right != 1 {
		t.Fatalf("paneWidths(narrow) = (%d,%d), want (15,1)", left, right)
	}
}

func TestPaneWidthsTinyTerminal(t *testing.T) {
	if left, right := paneWidths(3, 1, false); left != 1 || right != 1 {
		t.Fatalf("paneWidths(3) = (%d,%d), want (1,1)", left, right)
	}
	if left, right := paneWidths(2, 1, true); left != 0 || right != 1 {
		t.Fatalf("paneWidths(2, hidden) = (%d,%d), want (0,1)", left, right)
	}
}
