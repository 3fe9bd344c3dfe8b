package scrollsync

// Tracker reports the item under the reading line, one third of the way down
// the visible window. When nothing crosses the line it keeps reporting the last
// item it saw, as long as that item is still in the list.
type Tracker struct {
	last     string
	detached bool
}

// Observe scans items in list order and returns the first one that starts
// above the reading line and ends below the top of the window.
func (t *Tracker) Observe(container Rect, items []Item) (string, bool) {
	if t == nil || t.detached {
		return "", false
	}
	ref := container.Top + container.Height/3
	for _, it := range items {
		if it.Top < ref && it.Bottom > container.Top {
			t.last = it.ID
			return it.ID, true
		}
	}
	if t.last == "" {
		return "", false
	}
	if _, ok := Find(items, t.last); !ok {
		return "", false
	}
	return t.last, true
}

func (t *Tracker) Last() string {
	if t == nil {
		return ""
	}
	return t.last
}

// Detach stops all reporting. The owning view calls it when it goes away.
func (t *Tracker) Detach() {
	if t == nil {
		return
	}
	t.detached = true
	t.last = ""
}
