package nav

// PanelFlags is the side-panel state of one view mode.
//
// MobileShowingList only matters for the timeline, where a narrow layout shows
// either the tip list or the selected tip's detail.
type PanelFlags struct {
	PanelOpen          bool `json:"panelOpen"`
	MobileShowingPanel bool `json:"mobileShowingPanel"`
	MobileShowingList  bool `json:"mobileShowingList"`
}

type PanelEvent int

const (
	// EventEnter fires when a mode becomes active.
	EventEnter PanelEvent = iota
	// EventLeave fires on the mode being left when the session returns to the timeline.
	EventLeave
	EventToggle
	EventOpen
	EventClose
	// EventPanelBack leaves a full-screen mobile panel without closing it.
	EventPanelBack
	EventShowDetail
	EventShowList
)

func (e PanelEvent) String() string {
	switch e {
	case EventEnter:
		return "enter"
	case EventLeave:
		return "leave"
	case EventToggle:
		return "toggle"
	case EventOpen:
		return "open"
	case EventClose:
		return "close"
	case EventPanelBack:
		return "panel-back"
	case EventShowDetail:
		return "show-detail"
	case EventShowList:
		return "show-list"
	}
	return "unknown"
}

// Panels keeps one PanelFlags per mode and changes them only through Apply.
type Panels struct {
	flags [modeCount]PanelFlags
}

func NewPanels() Panels {
	var p Panels
	p.flags[ModeTimeline] = PanelFlags{PanelOpen: true, MobileShowingList: true}
	return p
}

func (p *Panels) Get(m ViewMode) PanelFlags {
	if !m.Valid() {
		return PanelFlags{}
	}
	return p.flags[m]
}

type panelRule func(p *Panels, m ViewMode, mobile bool)

// anyMode marks a rule that applies to every mode.
const anyMode ViewMode = -1

type panelKey struct {
	ev   PanelEvent
	mode ViewMode
}

// panelRules is the whole transition table. Apply runs the anyMode rule for an
// event first and then the mode-specific one, if either exists. Events with no
// rule leave the flags alone.
var panelRules = map[panelKey]panelRule{
	{EventEnter, ModeStock}: openDocked,
	{EventEnter, ModePost}:  openDocked,
	{EventEnter, ModeAbout}: closeAll,
	{EventEnter, ModeAuth}:  closeAll,

	{EventLeave, anyMode}: func(p *Panels, _ ViewMode, _ bool) {
		p.flags[ModeTimeline].MobileShowingList = true
	},
	{EventLeave, ModeStock}: closePanel,
	{EventLeave, ModePost}:  closePanel,

	{EventToggle, anyMode}: func(p *Panels, m ViewMode, mobile bool) {
		f := &p.flags[m]
		if !mobile {
			f.PanelOpen = !f.PanelOpen
			f.MobileShowingPanel = false
			return
		}
		if f.PanelOpen && f.MobileShowingPanel {
			f.MobileShowingPanel = false
			return
		}
		f.PanelOpen = true
		f.MobileShowingPanel = true
	},
	{EventOpen, anyMode}: func(p *Panels, m ViewMode, mobile bool) {
		p.flags[m].PanelOpen = true
		p.flags[m].MobileShowingPanel = mobile
	},
	{EventClose, anyMode}: closePanel,
	{EventPanelBack, anyMode}: func(p *Panels, m ViewMode, _ bool) {
		p.flags[m].MobileShowingPanel = false
	},

	{EventShowDetail, ModeTimeline}: func(p *Panels, _ ViewMode, _ bool) {
		p.flags[ModeTimeline].MobileShowingList = false
	},
	{EventShowList, ModeTimeline}: func(p *Panels, _ ViewMode, _ bool) {
		p.flags[ModeTimeline] = PanelFlags{MobileShowingList: true}
	},
}

func openDocked(p *Panels, m ViewMode, _ bool) {
	p.flags[m].PanelOpen = true
	p.flags[m].MobileShowingPanel = false
}

func closePanel(p *Panels, m ViewMode, _ bool) {
	p.flags[m].PanelOpen = false
	p.flags[m].MobileShowingPanel = false
}

func closeAll(p *Panels, _ ViewMode, _ bool) {
	for i := range p.flags {
		p.flags[i].PanelOpen = false
		p.flags[i].MobileShowingPanel = false
	}
}

// Apply runs ev against mode m. It reports whether any flag changed.
func (p *Panels) Apply(ev PanelEvent, m ViewMode, mobile bool) bool {
	if !m.Valid() {
		return false
	}
	before := p.flags
	if r, ok := panelRules[panelKey{ev, anyMode}]; ok {
		r(p, m, mobile)
	}
	if r, ok := panelRules[panelKey{ev, m}]; ok {
		r(p, m, mobile)
	}
	return before != p.flags
}
