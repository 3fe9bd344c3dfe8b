package tui

import (
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tipdesk/internal/journal"
	"tipdesk/internal/model"
	"tipdesk/internal/nav"
	"tipdesk/internal/scrollsync"
	"tipdesk/internal/store"
)

type minibufferClearMsg struct{ seq int }

type recenterMode int

const (
	recenterNone recenterMode = iota
	recenterJump
	recenterAnimate
)

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	seq := m.minibufferSeq
	recenter := recenterNone

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.dispatch(nav.SetLayout{Mobile: msg.Width < m.breakpoint})
		recenter = recenterJump

	case scrollsync.TickMsg:
		if ok, cmd := m.listScroll.Update(msg); ok {
			m.listVP.SetYOffset(m.listScroll.Offset())
			return m, cmd
		}
		return m, nil

	case minibufferClearMsg:
		if msg.seq == m.minibufferSeq {
			m.minibufferText = ""
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.form == nil && m.search == nil && m.ctl.Mode() != nav.ModeAuth && key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
		before := m.ctl.CurrentTipID()
		cmd := m.handleKey(msg)
		cmds = append(cmds, cmd)
		if m.ctl.Mode() == nav.ModeTimeline && m.ctl.CurrentTipID() != before {
			recenter = recenterAnimate
		}
	}

	if m.drainChanges() && recenter == recenterNone {
		recenter = recenterJump
	}
	m.refresh()
	switch recenter {
	case recenterJump:
		m.centerTimeline(false)
	case recenterAnimate:
		cmds = append(cmds, m.centerTimeline(true))
	}
	if m.minibufferSeq != seq && m.minibufferText != "" {
		s := m.minibufferSeq
		cmds = append(cmds, tea.Tick(minibufferAutoClearAfter, func(time.Time) tea.Msg {
			return minibufferClearMsg{seq: s}
		}))
	}
	return m, tea.Batch(cmds...)
}

// dispatch sends an intent to the controller and surfaces a rejection in the
// minibuffer.
func (m *appModel) dispatch(in nav.Intent) (nav.Change, bool) {
	ch, err := m.ctl.Dispatch(in)
	if err != nil {
		m.showMinibuffer(errorText(err))
		return ch, false
	}
	return ch, true
}

func errorText(err error) string {
	switch {
	case errors.Is(err, nav.ErrNoStock):
		return "No stock selected"
	case errors.Is(err, nav.ErrEmailRequired):
		return "Email is required"
	}
	return err.Error()
}

// drainChanges reacts to mode switches reported by the controller. It reports
// whether the timeline was (re)entered.
func (m *appModel) drainChanges() bool {
	pending := m.inbox.pending
	m.inbox.pending = nil
	enteredTimeline := false
	for _, ch := range pending {
		if !ch.ModeChanged() {
			continue
		}
		m.form = nil
		m.leaveMode(ch.From)
		m.enterMode(ch.Mode)
		if ch.Mode == nav.ModeTimeline {
			enteredTimeline = true
		}
	}
	return enteredTimeline
}

func (m *appModel) leaveMode(mode nav.ViewMode) {
	switch mode {
	case nav.ModeStock:
		m.stockTrack.Detach()
	case nav.ModePost:
		m.postTrack.Detach()
	case nav.ModeAuth:
		m.auth = nil
	}
}

func (m *appModel) enterMode(mode nav.ViewMode) {
	m.panelVP.GotoTop()
	switch mode {
	case nav.ModeStock:
		m.stockTrack = &scrollsync.Tracker{}
		m.stockVP.GotoTop()
	case nav.ModePost:
		m.postTrack = &scrollsync.Tracker{}
		m.postVP.GotoTop()
	case nav.ModePortfolio:
		m.portfolioList.Select(0)
	case nav.ModeAuthor:
		m.authorKind = ""
		m.authorList.Select(0)
	case nav.ModeJournal:
		m.journalIdx = 0
	case nav.ModeAbout:
		m.aboutVP.GotoTop()
	case nav.ModeAuth:
		m.auth = newAuthForm(formLogin)
	case nav.ModeTimeline:
		m.detailVP.GotoTop()
	}
}

// centerTimeline scrolls the card list so the selected card sits in the
// middle of the list pane.
func (m *appModel) centerTimeline(animate bool) tea.Cmd {
	if m.ctl.Mode() != nav.ModeTimeline {
		return nil
	}
	it, ok := scrollsync.Find(m.listItems, m.ctl.CurrentTipID())
	if !ok {
		return nil
	}
	contentH := 0
	if n := len(m.listItems); n > 0 {
		contentH = m.listItems[n-1].Bottom
	}
	target := scrollsync.CenterOffset(it.Top, it.Bottom-it.Top, m.listVP.Height, contentH)
	if !animate {
		m.listScroll.Jump(target)
		m.listVP.SetYOffset(target)
		return nil
	}
	return m.listScroll.ScrollTo(target)
}

func (m *appModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.form != nil {
		return m.handleFormKey(msg)
	}
	if m.search != nil {
		return m.handleSearchKey(msg)
	}
	if m.ctl.Mode() == nav.ModeAuth {
		return m.handleAuthKey(msg)
	}
	if m.showFullHelp {
		m.showFullHelp = false
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Help):
		m.showFullHelp = true
		return nil
	case key.Matches(msg, m.keys.Back):
		m.dispatch(nav.Back{})
		return nil
	case key.Matches(msg, m.keys.Search):
		m.search = newSearchBox()
		return textinput.Blink
	case key.Matches(msg, m.keys.ClearPick):
		m.searchPick = nil
		return nil
	case key.Matches(msg, m.keys.Home):
		m.dispatch(nav.GoHome{})
		return nil
	case key.Matches(msg, m.keys.Portfolio):
		m.dispatch(nav.OpenPortfolio{})
		return nil
	case key.Matches(msg, m.keys.About):
		m.dispatch(nav.OpenAbout{})
		return nil
	case key.Matches(msg, m.keys.Login):
		m.dispatch(nav.OpenAuth{})
		return nil
	case key.Matches(msg, m.keys.Notes):
		switch m.ctl.Mode() {
		case nav.ModeTimeline, nav.ModeStock, nav.ModePost:
			m.dispatch(nav.TogglePanel{})
		}
		return nil
	}

	switch m.ctl.Mode() {
	case nav.ModeTimeline:
		m.timelineKey(msg)
	case nav.ModeStock:
		m.stockKey(msg)
	case nav.ModePost:
		m.postKey(msg)
	case nav.ModePortfolio:
		m.portfolioKey(msg)
	case nav.ModeJournal:
		m.journalKey(msg)
	case nav.ModeAuthor:
		m.authorKey(msg)
	case nav.ModeAbout:
		scrollViewport(&m.aboutVP, msg, m.keys)
	}
	return nil
}

func (m *appModel) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.form = nil
		return nil
	case key.Matches(msg, m.keys.Submit):
		f := m.form
		if _, ok := m.dispatch(f.intent()); !ok {
			return nil
		}
		m.form = nil
		switch f.kind {
		case formNote:
			m.showMinibuffer("Note added")
			if !m.ctl.Panel().PanelOpen && m.ctl.Mode() != nav.ModeJournal {
				m.dispatch(nav.OpenPanel{})
			}
		case formConviction:
			m.showMinibuffer("Conviction saved")
		case formTrade:
			m.showMinibuffer("Trade logged")
			m.journalIdx = 0
		}
		return nil
	}
	return m.form.update(msg, m.keys)
}

func (m *appModel) handleAuthKey(msg tea.KeyMsg) tea.Cmd {
	if m.auth == nil {
		m.auth = newAuthForm(formLogin)
	}
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.dispatch(nav.Back{})
		return nil
	case key.Matches(msg, m.keys.SwitchTab):
		if m.auth.kind == formLogin {
			m.auth = newAuthForm(formSignup)
		} else {
			m.auth = newAuthForm(formLogin)
		}
		return nil
	case key.Matches(msg, m.keys.Google):
		if _, ok := m.dispatch(nav.SubmitAuth{Method: nav.AuthGoogle}); ok {
			m.showMinibuffer("Continuing with Google")
			m.dispatch(nav.GoHome{})
		}
		return nil
	case key.Matches(msg, m.keys.Enter), key.Matches(msg, m.keys.Submit):
		if !m.auth.passwordsMatch() {
			m.showMinibuffer("Passwords don't match")
			return nil
		}
		in := m.auth.intent().(nav.SubmitAuth)
		if _, ok := m.dispatch(in); ok {
			m.showMinibuffer("Signed in as " + in.Email)
			m.dispatch(nav.GoHome{})
		}
		return nil
	}
	return m.auth.update(msg, m.keys)
}

// scrollViewport handles line and page movement shared by the scrollable
// screens. It reports whether the key was a scroll key.
func scrollViewport(vp interface {
	LineDown(int) []string
	LineUp(int) []string
	HalfViewDown() []string
	HalfViewUp() []string
}, msg tea.KeyMsg, keys keyMap) bool {
	switch {
	case key.Matches(msg, keys.Down):
		vp.LineDown(1)
	case key.Matches(msg, keys.Up):
		vp.LineUp(1)
	case key.Matches(msg, keys.PageDown):
		vp.HalfViewDown()
	case key.Matches(msg, keys.PageUp):
		vp.HalfViewUp()
	default:
		return false
	}
	return true
}

func assessmentFor(msg tea.KeyMsg, keys keyMap) (model.Assessment, bool) {
	switch {
	case key.Matches(msg, keys.Agree):
		return model.AssessmentAgree, true
	case key.Matches(msg, keys.Neutral):
		return model.AssessmentNeutral, true
	case key.Matches(msg, keys.Disagree):
		return model.AssessmentDisagree, true
	}
	return "", false
}

func (m *appModel) timelineKey(msg tea.KeyMsg) {
	tip, hasTip := m.ctl.CurrentTip()
	switch {
	case key.Matches(msg, m.keys.Down):
		m.dispatch(nav.MoveSelection{Delta: 1})
	case key.Matches(msg, m.keys.Up):
		m.dispatch(nav.MoveSelection{Delta: -1})
	case key.Matches(msg, m.keys.PageDown):
		m.detailVP.HalfViewDown()
	case key.Matches(msg, m.keys.PageUp):
		m.detailVP.HalfViewUp()
	case key.Matches(msg, m.keys.Enter):
		if m.mobile() {
			m.dispatch(nav.ShowDetail{})
		}
	}
	if !hasTip {
		return
	}
	if v, ok := assessmentFor(msg, m.keys); ok {
		m.dispatch(nav.ToggleAssessment{TipID: tip.ID, Value: v})
		return
	}
	switch {
	case key.Matches(msg, m.keys.Stock):
		m.dispatch(nav.OpenStock{Symbol: tip.Symbol})
	case key.Matches(msg, m.keys.Post):
		m.dispatch(nav.OpenPost{PostID: store.PostIDOf(tip)})
	case key.Matches(msg, m.keys.Author):
		m.dispatch(nav.OpenAuthor{Name: tip.Source.Name})
	case key.Matches(msg, m.keys.AddNote):
		m.form = newNoteForm(journal.TipScope(tip.ID), "Add note · "+tip.Title)
	case key.Matches(msg, m.keys.Conviction):
		scope := journal.TipScope(tip.ID)
		m.form = newConvictionForm(scope, "Conviction · "+tip.Title, m.ctl.Conviction(scope, tip.Sentiment))
	case key.Matches(msg, m.keys.Copy):
		if err := clipboardWrite(tipClipboardText(tip)); err != nil {
			m.log.Warn().Err(err).Str("tip", tip.ID).Msg("copy tip")
			m.showMinibuffer("Copy failed: " + err.Error())
			return
		}
		m.showMinibuffer("Copied tip")
	}
}

func (m *appModel) stockKey(msg tea.KeyMsg) {
	sym := m.ctl.StockSymbol()
	if scrollViewport(&m.stockVP, msg, m.keys) {
		m.observe(m.stockTrack, m.stockVP.YOffset, m.stockVP.Height, m.stockItems, m.ctl.ActiveStockTipID())
		return
	}
	active := m.ctl.ActiveStockTipID()
	if v, ok := assessmentFor(msg, m.keys); ok && active != "" {
		m.dispatch(nav.ToggleAssessment{TipID: active, Value: v})
		return
	}
	switch {
	case key.Matches(msg, m.keys.Enter):
		if active != "" {
			m.dispatch(nav.SelectTip{ID: active})
		}
	case key.Matches(msg, m.keys.Journal):
		m.dispatch(nav.OpenJournal{Symbol: sym})
	case key.Matches(msg, m.keys.AddNote):
		m.form = newNoteForm(journal.StockScope(sym), "Add note · "+sym)
	case key.Matches(msg, m.keys.Conviction):
		m.form = m.stockConvictionForm(sym)
	}
}

func (m *appModel) stockConvictionForm(sym string) *form {
	scope := journal.StockScope(sym)
	fallback := model.SentimentBullish
	if tips := m.ctl.Tips().FilterByStock(sym); len(tips) > 0 {
		fallback = tips[0].Sentiment
	}
	return newConvictionForm(scope, "Conviction · "+sym, m.ctl.Conviction(scope, fallback))
}

// observe feeds the scroll position to a tracker and reports a newly visible
// tip to the controller.
func (m *appModel) observe(tr *scrollsync.Tracker, top, height int, items []scrollsync.Item, current string) {
	id, ok := tr.Observe(scrollsync.Rect{Top: top, Height: height}, items)
	if !ok || id == current {
		return
	}
	m.dispatch(nav.ItemVisible{ID: id})
}

func (m *appModel) postKey(msg tea.KeyMsg) {
	if scrollViewport(&m.postVP, msg, m.keys) {
		m.observe(m.postTrack, m.postVP.YOffset, m.postVP.Height, m.postItems, m.postTrack.Last())
		return
	}
	pd, ok := m.ctl.Catalog().PostData(m.ctl.PostID())
	if !ok {
		return
	}
	visible := m.postTrack.Last()
	if visible == "" && len(pd.Tips) > 0 {
		visible = pd.Tips[0].ID
	}
	sym := m.ctl.ActivePostSymbol()
	switch {
	case key.Matches(msg, m.keys.Enter):
		if visible != "" {
			m.dispatch(nav.SelectTip{ID: visible})
		}
	case key.Matches(msg, m.keys.Stock):
		m.dispatch(nav.OpenStock{Symbol: sym})
	case key.Matches(msg, m.keys.Author):
		m.dispatch(nav.OpenAuthor{Name: pd.Post.Author})
	case key.Matches(msg, m.keys.AddNote):
		if sym != "" {
			m.form = newNoteForm(journal.StockScope(sym), "Add note · "+sym)
		}
	}
}

func (m *appModel) portfolioKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.portfolioList.CursorDown()
	case key.Matches(msg, m.keys.Up):
		m.portfolioList.CursorUp()
	case key.Matches(msg, m.keys.Enter):
		if sym := selectedRowKey(m.portfolioList); sym != "" {
			m.dispatch(nav.OpenStock{Symbol: sym})
		}
	case key.Matches(msg, m.keys.Journal):
		if sym := selectedRowKey(m.portfolioList); sym != "" {
			m.dispatch(nav.OpenJournal{Symbol: sym})
		}
	case key.Matches(msg, m.keys.Filter):
		switch m.portfolioFilter {
		case store.PortfolioAll:
			m.portfolioFilter = store.PortfolioGainers
		case store.PortfolioGainers:
			m.portfolioFilter = store.PortfolioLosers
		default:
			m.portfolioFilter = store.PortfolioAll
		}
		m.portfolioList.Select(0)
	}
}

func (m *appModel) journalKey(msg tea.KeyMsg) {
	sym := m.ctl.StockSymbol()
	trades := m.ctl.Trades(sym)
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.journalIdx < len(trades)-1 {
			m.journalIdx++
		}
	case key.Matches(msg, m.keys.Up):
		if m.journalIdx > 0 {
			m.journalIdx--
		}
	case key.Matches(msg, m.keys.LogTrade):
		m.form = newTradeForm(sym, m.ctl.Now().Format(time.DateOnly))
	case key.Matches(msg, m.keys.DelTrade):
		if m.journalIdx < len(trades) {
			if _, ok := m.dispatch(nav.DeleteTrade{Symbol: sym, ID: trades[m.journalIdx].ID}); ok {
				m.showMinibuffer("Trade deleted")
				if m.journalIdx >= len(trades)-1 && m.journalIdx > 0 {
					m.journalIdx--
				}
			}
		}
	case key.Matches(msg, m.keys.AddNote):
		m.form = newNoteForm(journal.StockScope(sym), "Add note · "+sym)
	case key.Matches(msg, m.keys.Conviction):
		m.form = m.stockConvictionForm(sym)
	}
}

func (m *appModel) authorKey(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.authorList.CursorDown()
	case key.Matches(msg, m.keys.Up):
		m.authorList.CursorUp()
	case key.Matches(msg, m.keys.Enter):
		if id := selectedRowKey(m.authorList); id != "" {
			m.dispatch(nav.OpenPost{PostID: id})
		}
	case key.Matches(msg, m.keys.Filter):
		switch m.authorKind {
		case "":
			m.authorKind = model.SourceVideo
		case model.SourceVideo:
			m.authorKind = model.SourceArticle
		default:
			m.authorKind = ""
		}
		m.authorList.Select(0)
	}
}
