// Package scrollsync keeps a scrolled list and the selection in step: it
// centres a chosen item with a spring animation and reports which item sits
// under the reading line as the user scrolls.
package scrollsync

// CenterOffset returns the scroll offset that puts the item's middle in the
// middle of the viewport, clamped so the viewport never runs past the content.
func CenterOffset(itemTop, itemHeight, viewportHeight, contentHeight int) int {
	if viewportHeight <= 0 {
		return 0
	}
	off := itemTop + itemHeight/2 - viewportHeight/2
	maxOff := contentHeight - viewportHeight
	if maxOff < 0 {
		maxOff = 0
	}
	if off > maxOff {
		off = maxOff
	}
	if off < 0 {
		off = 0
	}
	return off
}

// Rect is the visible window in content lines.
type Rect struct {
	Top    int
	Height int
}

// Item is one row block in content lines; Bottom is exclusive.
type Item struct {
	ID     string
	Top    int
	Bottom int
}

// Stack lays out items top to bottom with gap blank lines between them.
// ids and heights must be the same length.
func Stack(ids []string, heights []int, gap int) []Item {
	out := make([]Item, 0, len(ids))
	y := 0
	for i, id := range ids {
		h := 0
		if i < len(heights) {
			h = heights[i]
		}
		out = append(out, Item{ID: id, Top: y, Bottom: y + h})
		y += h + gap
	}
	return out
}

// Find returns the item with id.
func Find(items []Item, id string) (Item, bool) {
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}
