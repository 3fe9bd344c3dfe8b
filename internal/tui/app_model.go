package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/rs/zerolog"

	"tipdesk/internal/model"
	"tipdesk/internal/nav"
	"tipdesk/internal/scrollsync"
	"tipdesk/internal/store"
)

const (
	scrollerTimeline = iota + 1

	tipCardH   = 5 // 3 inner lines + border
	tipCardGap = 1

	minibufferAutoClearAfter = 4 * time.Second
)

// changeInbox collects controller notifications. It is shared by pointer so
// every copy of appModel drains the same queue.
type changeInbox struct {
	pending []nav.Change
}

type appModel struct {
	ctl  *nav.Controller
	log  zerolog.Logger
	keys keyMap
	help help.Model

	inbox *changeInbox

	width      int
	height     int
	breakpoint int

	// Timeline: cards on the left, detail in the middle, notes on the right.
	listVP     viewport.Model
	listItems  []scrollsync.Item
	listScroll *scrollsync.Scroller
	detailVP   viewport.Model
	detailTip  string
	panelVP    viewport.Model

	// Stock and post pages share the scroll-tracking setup.
	stockVP    viewport.Model
	stockItems []scrollsync.Item
	stockTrack *scrollsync.Tracker
	postVP     viewport.Model
	postItems  []scrollsync.Item
	postTrack  *scrollsync.Tracker

	aboutVP viewport.Model

	portfolioList   list.Model
	portfolioFilter store.PortfolioFilter
	authorList      list.Model
	authorKind      model.SourceKind
	journalIdx      int

	form *form
	auth *form

	showFullHelp bool

	search     *searchBox
	searchPick *searchPick

	minibufferText string
	minibufferSeq  int
}

type Options struct {
	Controller       *nav.Controller
	Logger           zerolog.Logger
	MobileBreakpoint int
	MarkdownStyle    string
	Theme            string
	Glyphs           string
}

func newAppModel(opts Options) appModel {
	if opts.Controller == nil {
		opts.Controller = nav.NewController(nil, nil, nav.Options{Logger: opts.Logger})
	}
	if opts.MobileBreakpoint <= 0 {
		opts.MobileBreakpoint = 100
	}
	setMarkdownStyle(opts.MarkdownStyle)
	applyGlyphPreference(opts.Glyphs)

	m := appModel{
		ctl:             opts.Controller,
		log:             opts.Logger,
		keys:            defaultKeyMap(),
		help:            help.New(),
		inbox:           &changeInbox{},
		breakpoint:      opts.MobileBreakpoint,
		listVP:          viewport.New(0, 0),
		listScroll:      scrollsync.NewScroller(scrollerTimeline),
		detailVP:        viewport.New(0, 0),
		panelVP:         viewport.New(0, 0),
		stockVP:         viewport.New(0, 0),
		postVP:          viewport.New(0, 0),
		aboutVP:         viewport.New(0, 0),
		portfolioList:   newRowList(),
		portfolioFilter: store.PortfolioAll,
		authorList:      newRowList(),
	}
	inbox := m.inbox
	m.ctl.Subscribe(func(ch nav.Change) { inbox.pending = append(inbox.pending, ch) })
	return m
}

func (m appModel) mobile() bool { return m.ctl.Mobile() }

// bodyHeight is what's left after the header line and the two footer lines.
func (m appModel) bodyHeight() int {
	h := m.height - 3
	if h < 3 {
		h = 3
	}
	return h
}

func (m appModel) timelineColumns() columns {
	if m.mobile() {
		return columns{main: m.width}
	}
	return desktopColumns(m.width, true, m.ctl.Panel().PanelOpen)
}

func (m appModel) pageColumns() columns {
	if m.mobile() {
		return columns{main: m.width}
	}
	return desktopColumns(m.width, false, m.ctl.Panel().PanelOpen)
}

func (m *appModel) showMinibuffer(text string) {
	m.minibufferText = text
	m.minibufferSeq++
}
