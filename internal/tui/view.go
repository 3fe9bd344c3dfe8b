package tui

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"

	"tipdesk/internal/journal"
	"tipdesk/internal/model"
	"tipdesk/internal/nav"
	"tipdesk/internal/scrollsync"
	"tipdesk/internal/store"
)

//go:embed about.md
var aboutMD string

// refresh sizes the active screen's viewports and rebuilds their content
// from the controller. Scroll offsets are kept.
func (m *appModel) refresh() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	bodyH := m.bodyHeight()
	m.help.Width = m.width
	switch m.ctl.Mode() {
	case nav.ModeTimeline:
		m.refreshTimeline(bodyH)
	case nav.ModeStock:
		m.refreshStock(bodyH)
	case nav.ModePost:
		m.refreshPost(bodyH)
	case nav.ModePortfolio:
		m.refreshPortfolio(bodyH)
	case nav.ModeAuthor:
		m.refreshAuthor(bodyH)
	case nav.ModeAbout:
		w := m.width
		if w > 84 {
			w = 84
		}
		refill(&m.aboutVP, w, bodyH, renderMarkdown(aboutMD, w, false))
	}
}

// refill resizes vp and swaps its content while keeping the scroll offset.
func refill(vp *viewport.Model, width, height int, content string) {
	off := vp.YOffset
	vp.Width, vp.Height = width, height
	vp.SetContent(content)
	vp.SetYOffset(off)
}

func (m appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	bodyH := m.bodyHeight()
	var body string
	switch {
	case m.showFullHelp:
		body = "\n" + m.help.FullHelpView(m.keys.FullHelp())
	case m.form != nil:
		w := m.width - 4
		if w > 64 {
			w = 64
		}
		body = lipgloss.Place(m.width, bodyH, lipgloss.Center, lipgloss.Center, m.form.view(w))
	case m.search != nil:
		w := m.width - 4
		if w > 48 {
			w = 48
		}
		body = lipgloss.Place(m.width, bodyH, lipgloss.Center, lipgloss.Top, m.search.view(m.ctl.Catalog(), w))
	default:
		body = m.viewBody(bodyH)
	}
	return strings.Join([]string{
		m.viewHeader(),
		normalizePane(body, m.width, bodyH),
		m.viewMinibuffer(),
		m.viewHelpLine(),
	}, "\n")
}

func (m appModel) viewHeader() string {
	left := styleAccent().Render("tipdesk") + styleMuted().Render(" › ") + styleHeading().Render(m.breadcrumb())
	if m.searchPick != nil {
		left += "  " + lipgloss.NewStyle().Foreground(colorAccent).Render("["+m.searchPick.label()+"]")
	}
	right := ""
	if m.ctl.Mode() == nav.ModeTimeline {
		tips := m.ctl.Tips().All()
		s := m.ctl.AssessmentSummary(tips)
		right = styleMuted().Render(fmt.Sprintf("%d tips · %d agree · %d neutral · %d disagree",
			len(tips), s.Agree, s.Neutral, s.Disagree))
	}
	return fitLine(spread(left, right, m.width), m.width)
}

func (m appModel) breadcrumb() string {
	switch m.ctl.Mode() {
	case nav.ModeStock:
		return "Stock · " + m.ctl.StockSymbol()
	case nav.ModeJournal:
		return "Journal · " + m.ctl.StockSymbol()
	case nav.ModePost:
		if p, ok := m.ctl.Catalog().PostData(m.ctl.PostID()); ok {
			return "Post · " + p.Post.Title
		}
		return "Post"
	case nav.ModeAuthor:
		return "Author · " + m.ctl.AuthorName()
	case nav.ModePortfolio:
		return "Portfolio"
	case nav.ModeAbout:
		return "About"
	case nav.ModeAuth:
		return "Account"
	}
	return "Timeline"
}

func (m appModel) viewMinibuffer() string {
	if m.minibufferText == "" {
		return ""
	}
	return fitLine(lipgloss.NewStyle().Foreground(colorErrorFg).Render(m.minibufferText), m.width)
}

func (m appModel) viewHelpLine() string {
	bindings := m.keys.modeHelp(m.ctl.Mode(), m.mobile())
	switch {
	case m.form != nil:
		bindings = m.keys.formHelp()
	case m.search != nil:
		bindings = m.keys.searchHelp()
	}
	return fitLine(m.help.ShortHelpView(bindings), m.width)
}

func (m appModel) viewBody(bodyH int) string {
	switch m.ctl.Mode() {
	case nav.ModeTimeline:
		return m.viewTimeline(bodyH)
	case nav.ModeStock:
		return m.viewPage(bodyH, m.viewStockMain())
	case nav.ModePost:
		return m.viewPage(bodyH, m.viewPostMain())
	case nav.ModeJournal:
		return m.viewJournal()
	case nav.ModePortfolio:
		return m.viewPortfolio()
	case nav.ModeAuthor:
		return m.viewAuthor()
	case nav.ModeAbout:
		return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, m.aboutVP.View())
	case nav.ModeAuth:
		return m.viewAuth(bodyH)
	}
	return ""
}

// viewPage lays out a stock or post page: the main column plus the notes
// panel, or one of them on a narrow layout.
func (m appModel) viewPage(bodyH int, main string) string {
	f := m.ctl.Panel()
	if m.mobile() {
		if f.MobileShowingPanel {
			return m.panelVP.View()
		}
		return main
	}
	cols := m.pageColumns()
	return joinColumns(bodyH,
		pane{body: main, width: cols.main},
		pane{body: panelFrame(m.panelVP.View(), bodyH), width: cols.panel},
	)
}

// panelWidth is the usable width inside the side panel.
func (m appModel) panelWidth(cols columns) int {
	if m.mobile() {
		return m.width
	}
	return cols.panel - 2
}

func (m appModel) mainWidth(cols columns) int {
	if m.mobile() {
		return m.width
	}
	return cols.main
}

// Timeline.

func (m *appModel) refreshTimeline(bodyH int) {
	cols := m.timelineColumns()
	listW := cols.list
	if m.mobile() {
		listW = m.width
	}
	tips := m.ctl.Tips().All()
	cur := m.ctl.CurrentTipID()
	cards := make([]string, len(tips))
	ids := make([]string, len(tips))
	heights := make([]int, len(tips))
	for i, t := range tips {
		cards[i] = renderTipCard(t, listW, t.ID == cur)
		ids[i] = t.ID
		heights[i] = tipCardH
	}
	m.listItems = scrollsync.Stack(ids, heights, tipCardGap)
	m.listVP.Width, m.listVP.Height = listW, bodyH
	m.listVP.SetContent(strings.Join(cards, strings.Repeat("\n", tipCardGap+1)))
	m.listVP.SetYOffset(m.listScroll.Offset())

	if cur != m.detailTip {
		m.detailTip = cur
		m.detailVP.GotoTop()
	}
	mainW := m.mainWidth(cols)
	refill(&m.detailVP, mainW, bodyH, m.renderTipDetail(mainW))

	pw := m.panelWidth(cols)
	refill(&m.panelVP, pw, bodyH, m.renderTipPanel(pw))
}

func (m appModel) viewTimeline(bodyH int) string {
	f := m.ctl.Panel()
	if m.mobile() {
		switch {
		case f.MobileShowingPanel:
			return m.panelVP.View()
		case f.MobileShowingList:
			return m.listVP.View()
		}
		return m.detailVP.View()
	}
	cols := m.timelineColumns()
	return joinColumns(bodyH,
		pane{body: m.listVP.View(), width: cols.list},
		pane{body: m.detailVP.View(), width: cols.main},
		pane{body: panelFrame(m.panelVP.View(), bodyH), width: cols.panel},
	)
}

func (m appModel) renderTipDetail(width int) string {
	t, ok := m.ctl.CurrentTip()
	if !ok {
		return styleMuted().Render("Select a tip to view details")
	}
	head := styleHeading().Render(t.Symbol) + "  " + styleMuted().Render(t.StockName)
	lines := []string{
		spread(head, sentimentBadge(string(t.Sentiment)), width),
		wrap(styleHeading().Render(t.Title), width),
		wrap(sourceLine(t), width),
	}
	if ml := metricsLine(t.Metrics); ml != "" {
		lines = append(lines, wrap(ml, width))
	}
	lines = append(lines, "")
	if md := renderMarkdown(tipMarkdown(t), width, false); md != "" {
		lines = append(lines, md, "")
	}
	lines = append(lines,
		assessmentLine(m.ctl.Assessment(t.ID)),
		"",
		styleMuted().Render("s stock · o post · u author · i note · c conviction"),
	)
	return strings.Join(lines, "\n")
}

func (m appModel) renderTipPanel(width int) string {
	t, ok := m.ctl.CurrentTip()
	if !ok {
		return styleMuted().Render("No tip selected")
	}
	scope := journal.TipScope(t.ID)
	notes := m.ctl.Notes(scope)
	return strings.Join([]string{
		sectionTitle("Notes"),
		wrap(styleMuted().Render(t.Symbol+" · "+t.Title), width),
		"",
		styleHeading().Render("Conviction"),
		renderConviction(m.ctl.Conviction(scope, t.Sentiment), width),
		"",
		styleHeading().Render(fmt.Sprintf("Notes (%d)", len(notes))),
		renderNotes(notes, width),
	}, "\n")
}

// Stock.

func (m appModel) stockHeader(sd *store.StockData, width int) string {
	head := styleHeading().Render(sd.Symbol) + "  " + styleMuted().Render(sd.StockName)
	scope := journal.StockScope(sd.Symbol)
	fallback := model.SentimentBullish
	if len(sd.Tips) > 0 {
		fallback = sd.Tips[0].Sentiment
	}
	s := m.ctl.AssessmentSummary(sd.Tips)
	return strings.Join([]string{
		spread(head, renderQuote(sd.Quote), width),
		renderPosition(sd.Position, width),
		styleMuted().Render("Conviction  ") + convictionLine(m.ctl.Conviction(scope, fallback)),
		styleMuted().Render(fmt.Sprintf("%d tips · %d agree · %d neutral · %d disagree", len(sd.Tips), s.Agree, s.Neutral, s.Disagree)),
	}, "\n")
}

func (m *appModel) refreshStock(bodyH int) {
	cols := m.pageColumns()
	mainW := m.mainWidth(cols)
	sd, ok := m.ctl.Catalog().StockData(m.ctl.StockSymbol())
	if !ok {
		return
	}
	header := m.stockHeader(sd, mainW)
	active := m.ctl.ActiveStockTipID()
	blocks := make([]string, len(sd.Tips))
	ids := make([]string, len(sd.Tips))
	heights := make([]int, len(sd.Tips))
	for i, t := range sd.Tips {
		heading := styleMuted().Render(t.Period+" "+glyphBullet()+" ") + t.Source.Name
		blocks[i] = renderTipBlock(t, heading, m.ctl.Assessment(t.ID), mainW, t.ID == active)
		ids[i] = t.ID
		heights[i] = lipgloss.Height(blocks[i])
	}
	m.stockItems = scrollsync.Stack(ids, heights, 1)
	content := strings.Join(blocks, "\n\n")
	if len(blocks) == 0 {
		content = styleMuted().Render("No tips for " + sd.Symbol)
	}
	refill(&m.stockVP, mainW, scrollAreaHeight(bodyH, header), content)

	pw := m.panelWidth(cols)
	refill(&m.panelVP, pw, bodyH, m.renderStockPanel(sd, active, pw))
}

func scrollAreaHeight(bodyH int, header string) int {
	h := bodyH - lipgloss.Height(header) - 1
	if h < 3 {
		h = 3
	}
	return h
}

func (m appModel) viewStockMain() string {
	sd, ok := m.ctl.Catalog().StockData(m.ctl.StockSymbol())
	if !ok {
		return styleMuted().Render("No stock selected")
	}
	w := m.mainWidth(m.pageColumns())
	return m.stockHeader(sd, w) + "\n\n" + m.stockVP.View()
}

func (m appModel) renderStockPanel(sd *store.StockData, active string, width int) string {
	scope := journal.StockScope(sd.Symbol)
	notes := m.ctl.Notes(scope)
	lines := []string{
		sectionTitle("Notes · " + sd.Symbol),
		"",
		styleHeading().Render(fmt.Sprintf("Stock notes (%d)", len(notes))),
		renderNotes(notes, width),
		"",
		styleHeading().Render("Tips"),
	}
	for _, t := range sd.Tips {
		tn := m.ctl.Notes(journal.TipScope(t.ID))
		title := fmt.Sprintf("%s (%d)", t.Title, len(tn))
		if t.ID == active {
			lines = append(lines, wrap(lipgloss.NewStyle().Bold(true).Foreground(colorSelectedBorder).Render(glyphPointer()+" "+title), width))
		} else {
			lines = append(lines, wrap(styleMuted().Render("  "+title), width))
		}
		if len(tn) > 0 {
			lines = append(lines, renderNotes(tn, width))
		}
	}
	return strings.Join(lines, "\n")
}

// Post.

func (m appModel) postHeader(pd *store.PostData, width int) string {
	meta := []string{pd.Post.Author, string(pd.Post.Kind)}
	if pd.Post.Date != "" {
		meta = append(meta, pd.Post.Date)
	}
	if pd.Post.Quarter != "" {
		meta = append(meta, pd.Post.Quarter)
	}
	lines := []string{
		wrap(styleHeading().Render(pd.Post.Title), width),
		styleMuted().Render(strings.Join(meta, glyphSep())),
	}
	if s := strings.TrimSpace(pd.Post.Summary); s != "" {
		lines = append(lines, wrap(s, width))
	}
	return strings.Join(lines, "\n")
}

// postVisibleTip is the tip under the reading line, or the first tip before
// the reader has scrolled.
func (m appModel) postVisibleTip(pd *store.PostData) string {
	if id := m.postTrack.Last(); id != "" {
		return id
	}
	if len(pd.Tips) > 0 {
		return pd.Tips[0].ID
	}
	return ""
}

func (m *appModel) refreshPost(bodyH int) {
	cols := m.pageColumns()
	mainW := m.mainWidth(cols)
	pd, ok := m.ctl.Catalog().PostData(m.ctl.PostID())
	if !ok {
		return
	}
	header := m.postHeader(pd, mainW)
	visible := m.postVisibleTip(pd)
	blocks := make([]string, len(pd.Tips))
	ids := make([]string, len(pd.Tips))
	heights := make([]int, len(pd.Tips))
	for i, t := range pd.Tips {
		heading := styleHeading().Render(t.Symbol) + " " + styleMuted().Render(t.StockName)
		blocks[i] = renderTipBlock(t, heading, m.ctl.Assessment(t.ID), mainW, t.ID == visible)
		ids[i] = t.ID
		heights[i] = lipgloss.Height(blocks[i])
	}
	m.postItems = scrollsync.Stack(ids, heights, 1)
	content := strings.Join(blocks, "\n\n")
	if len(blocks) == 0 {
		content = styleMuted().Render("No tips in this post")
	}
	refill(&m.postVP, mainW, scrollAreaHeight(bodyH, header), content)

	pw := m.panelWidth(cols)
	refill(&m.panelVP, pw, bodyH, m.renderPostPanel(pd, pw))
}

func (m appModel) viewPostMain() string {
	pd, ok := m.ctl.Catalog().PostData(m.ctl.PostID())
	if !ok {
		return styleMuted().Render("Post not found")
	}
	w := m.mainWidth(m.pageColumns())
	return m.postHeader(pd, w) + "\n\n" + m.postVP.View()
}

func (m appModel) renderPostPanel(pd *store.PostData, width int) string {
	active := m.ctl.ActivePostSymbol()
	lines := []string{sectionTitle("Stocks in this post"), ""}
	seen := map[string]bool{}
	for _, t := range pd.Tips {
		if seen[t.Symbol] {
			continue
		}
		seen[t.Symbol] = true
		scope := journal.StockScope(t.Symbol)
		notes := m.ctl.Notes(scope)
		head := fmt.Sprintf("%s (%d)", t.Symbol, len(notes))
		if t.Symbol == active {
			head = lipgloss.NewStyle().Bold(true).Foreground(colorSelectedBorder).Render(glyphPointer() + " " + head)
		} else {
			head = styleHeading().Render("  " + head)
		}
		lines = append(lines, spread(head, convictionLine(m.ctl.Conviction(scope, t.Sentiment)), width))
		if t.Symbol == active {
			lines = append(lines, renderNotes(notes, width))
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// Journal.

func (m appModel) viewJournal() string {
	sym := m.ctl.StockSymbol()
	sd, ok := m.ctl.Catalog().StockData(sym)
	if !ok {
		return styleMuted().Render("No stock selected")
	}
	w := m.width
	trades := m.ctl.Trades(sym)
	lines := []string{
		m.stockHeader(sd, w),
		"",
		styleHeading().Render(fmt.Sprintf("Trades (%d)", len(trades))),
	}
	if len(trades) == 0 {
		lines = append(lines, styleMuted().Render("No trades logged yet. Press l to log one."))
	} else {
		lines = append(lines, styleMuted().Render(tradeRow("Date", "Action", "Qty", "Price", "Fees", "Account", "Reason")))
		for i, t := range trades {
			row := tradeRow(t.Date, string(t.Action), quantity(t.Quantity), decimalMoney(t.Price), decimalMoney(t.Fees), t.Account, t.Reason)
			if i == m.journalIdx {
				row = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("› " + row)
			} else {
				row = "  " + row
			}
			lines = append(lines, fitLine(row, w))
		}
	}
	notes := m.ctl.Notes(journal.StockScope(sym))
	lines = append(lines, "", styleHeading().Render(fmt.Sprintf("Notes (%d)", len(notes))), renderNotes(notes, w))
	return strings.Join(lines, "\n")
}

func tradeRow(date, action, qty, price, fees, account, reason string) string {
	return fmt.Sprintf("%-10s  %-6s  %8s  %12s  %9s  %-10s  %s", date, action, qty, price, fees, account, reason)
}

// Portfolio.

func (m *appModel) refreshPortfolio(bodyH int) {
	data := m.ctl.Catalog().Portfolio(m.portfolioFilter)
	items := make([]list.Item, 0, len(data.Holdings))
	for _, h := range data.Holdings {
		desc := fmt.Sprintf("%s · %d trades · added %s", money(h.Value), h.Trades, h.AddedDate)
		if h.ReviewPrompt {
			desc += " · review"
		}
		items = append(items, rowItem{
			key:   h.Symbol,
			title: h.Symbol + "  " + h.Name,
			desc:  desc,
			right: changeStyle(h.PLPercent).Render(signedPercent(h.PLPercent)),
		})
	}
	idx := m.portfolioList.Index()
	m.portfolioList.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		m.portfolioList.Select(idx)
	}
	m.portfolioList.SetSize(m.width, bodyH-4)
}

func (m appModel) viewPortfolio() string {
	s := m.ctl.Catalog().Portfolio(m.portfolioFilter).Summary
	summary := strings.Join([]string{
		styleMuted().Render("Total value ") + styleHeading().Render(money(s.TotalValue)),
		styleMuted().Render("P/L ") + changeStyle(s.TotalPL).Render(signedMoney(s.TotalPL)),
		styleMuted().Render("Holdings ") + fmt.Sprint(s.Holdings),
		styleMuted().Render("Open positions ") + fmt.Sprint(s.OpenPositions),
	}, "   ")
	tabs := tabLine([]string{"All", "Gainers", "Losers"}, map[store.PortfolioFilter]int{
		store.PortfolioAll: 0, store.PortfolioGainers: 1, store.PortfolioLosers: 2,
	}[m.portfolioFilter])
	body := m.portfolioList.View()
	if len(m.portfolioList.Items()) == 0 {
		body = styleMuted().Render("No holdings match this filter")
	}
	return strings.Join([]string{summary, "", tabs, "", body}, "\n")
}

func tabLine(labels []string, active int) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		if i == active {
			parts[i] = styleAccent().Render("[" + l + "]")
		} else {
			parts[i] = styleMuted().Render(" " + l + " ")
		}
	}
	return strings.Join(parts, " ") + styleMuted().Render("   f to filter")
}

// Author.

func (m *appModel) refreshAuthor(bodyH int) {
	ad, ok := m.ctl.Catalog().AuthorData(m.ctl.AuthorName())
	if !ok {
		return
	}
	counts := map[string]int{}
	for _, t := range ad.Tips {
		counts[store.PostIDOf(t)]++
	}
	items := make([]list.Item, 0, len(ad.Posts))
	for _, p := range ad.Posts {
		if m.authorKind != "" && p.Kind != m.authorKind {
			continue
		}
		meta := []string{string(p.Kind)}
		if p.Date != "" {
			meta = append(meta, p.Date)
		}
		if p.Quarter != "" {
			meta = append(meta, p.Quarter)
		}
		items = append(items, rowItem{
			key:   p.ID,
			title: p.Title,
			desc:  strings.Join(meta, glyphSep()),
			right: styleMuted().Render(fmt.Sprintf("%d tips", counts[p.ID])),
		})
	}
	idx := m.authorList.Index()
	m.authorList.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		m.authorList.Select(idx)
	}
	header := m.authorHeader(ad)
	m.authorList.SetSize(m.width, bodyH-lipgloss.Height(header)-3)
}

func (m appModel) authorHeader(ad *store.AuthorData) string {
	lines := []string{styleHeading().Render(ad.Author.Name)}
	if b := strings.TrimSpace(ad.Author.Bio); b != "" {
		lines = append(lines, wrap(styleMuted().Render(b), m.width))
	}
	lines = append(lines, fmt.Sprintf("%d posts · %d tips", len(ad.Posts), len(ad.Tips)))
	return strings.Join(lines, "\n")
}

func (m appModel) viewAuthor() string {
	ad, ok := m.ctl.Catalog().AuthorData(m.ctl.AuthorName())
	if !ok {
		return styleMuted().Render("Author not found")
	}
	active := map[model.SourceKind]int{"": 0, model.SourceVideo: 1, model.SourceArticle: 2}[m.authorKind]
	body := m.authorList.View()
	if len(m.authorList.Items()) == 0 {
		body = styleMuted().Render("No posts")
	}
	return strings.Join([]string{
		m.authorHeader(ad),
		"",
		tabLine([]string{"All", "Videos", "Articles"}, active),
		"",
		body,
	}, "\n")
}

// Auth.

func (m appModel) viewAuth(bodyH int) string {
	if m.auth == nil {
		return ""
	}
	w := m.width - 4
	if w > 56 {
		w = 56
	}
	hint := "ctrl+t sign up · ctrl+g continue with Google"
	if m.auth.kind == formSignup {
		hint = "ctrl+t log in · ctrl+g continue with Google"
	}
	box := m.auth.view(w) + "\n" + styleMuted().Render(hint)
	return lipgloss.Place(m.width, bodyH, lipgloss.Center, lipgloss.Center, box)
}
