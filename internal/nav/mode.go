// Package nav owns what the session is showing: the active view mode, the
// selected tip, per-mode selectors and side-panel visibility. Views read from a
// Controller and ask for changes by dispatching intents; nothing else writes
// this state.
package nav

type ViewMode int

const (
	ModeTimeline ViewMode = iota
	ModeStock
	ModePortfolio
	ModePost
	ModeJournal
	ModeAuthor
	ModeAbout
	ModeAuth

	modeCount
)

var modeNames = [modeCount]string{
	ModeTimeline:  "timeline",
	ModeStock:     "stock",
	ModePortfolio: "portfolio",
	ModePost:      "post",
	ModeJournal:   "journal",
	ModeAuthor:    "author",
	ModeAbout:     "about",
	ModeAuth:      "auth",
}

func (m ViewMode) String() string {
	if m < 0 || m >= modeCount {
		return "unknown"
	}
	return modeNames[m]
}

func (m ViewMode) Valid() bool { return m >= 0 && m < modeCount }
