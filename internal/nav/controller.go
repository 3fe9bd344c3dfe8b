package nav

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"tipdesk/internal/journal"
	"tipdesk/internal/model"
	"tipdesk/internal/store"

	"github.com/rs/zerolog"
)

var (
	ErrUnknownTip    = errors.New("unknown tip")
	ErrUnknownPost   = errors.New("unknown post")
	ErrUnknownAuthor = errors.New("unknown author")
	ErrUnknownTrade  = errors.New("unknown trade")
	ErrNoStock       = errors.New("no stock selected")
	ErrEmailRequired = errors.New("email is required")
	ErrUnknownIntent = errors.New("unknown intent")
)

// Change describes what a successful Dispatch did.
type Change struct {
	Intent Intent
	From   ViewMode
	Mode   ViewMode
	// TipID is the selected tip after the intent ran.
	TipID string
	// Moved is set when MoveSelection actually moved the cursor.
	Moved bool
	// PanelsChanged is set when any panel flag changed.
	PanelsChanged bool
}

func (c Change) ModeChanged() bool { return c.From != c.Mode }

type Options struct {
	Logger zerolog.Logger
	// Now defaults to time.Now; tests pin it.
	Now    func() time.Time
	Mobile bool
}

// Controller is the single writer of session state. It is not safe for
// concurrent use; the TUI drives it from its update loop only.
type Controller struct {
	catalog *store.Catalog
	journal *journal.Journal
	sel     *Selection
	panels  Panels

	mode   ViewMode
	mobile bool

	stockSymbol      string
	stockActiveTipID string
	postID           string
	postActiveSymbol string
	authorName       string

	subs   map[int]func(Change)
	nextID int

	log zerolog.Logger
	now func() time.Time
}

func NewController(cat *store.Catalog, j *journal.Journal, opts Options) *Controller {
	if cat == nil {
		cat = store.NewCatalog(nil)
	}
	if j == nil {
		j = journal.New()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Controller{
		catalog: cat,
		journal: j,
		sel:     NewSelection(cat.Tips()),
		panels:  NewPanels(),
		mode:    ModeTimeline,
		mobile:  opts.Mobile,
		subs:    map[int]func(Change){},
		log:     opts.Logger,
		now:     now,
	}
}

// modeSpec declares per-mode behavior so adding a mode is one table entry.
type modeSpec struct {
	// back is where Back goes from this mode.
	back ViewMode
	// ready reports why the mode can't be entered yet; nil means it can.
	ready func(c *Controller) error
	// leave clears the selectors this mode owns when the session returns to the timeline.
	leave func(c *Controller)
}

var modeSpecs = [modeCount]modeSpec{
	ModeTimeline:  {back: ModeTimeline},
	ModeStock:     {back: ModeTimeline, ready: needStock, leave: clearStock},
	ModePortfolio: {back: ModeTimeline},
	ModePost: {
		back: ModeTimeline,
		ready: func(c *Controller) error {
			if c.postID == "" {
				return ErrUnknownPost
			}
			return nil
		},
		leave: func(c *Controller) {
			c.postID = ""
			c.postActiveSymbol = ""
		},
	},
	ModeJournal: {back: ModeStock, ready: needStock, leave: clearStock},
	ModeAuthor: {
		back: ModeTimeline,
		ready: func(c *Controller) error {
			if c.authorName == "" {
				return ErrUnknownAuthor
			}
			return nil
		},
		leave: func(c *Controller) { c.authorName = "" },
	},
	ModeAbout: {back: ModeTimeline},
	ModeAuth:  {back: ModeTimeline},
}

func needStock(c *Controller) error {
	if c.stockSymbol == "" {
		return ErrNoStock
	}
	return nil
}

func clearStock(c *Controller) {
	c.stockSymbol = ""
	c.stockActiveTipID = ""
}

func (c *Controller) setMode(to ViewMode) error {
	if !to.Valid() {
		return fmt.Errorf("mode %d: %w", to, ErrUnknownIntent)
	}
	spec := modeSpecs[to]
	if spec.ready != nil {
		if err := spec.ready(c); err != nil {
			return fmt.Errorf("enter %s: %w", to, err)
		}
	}
	from := c.mode
	if to == ModeTimeline && from != ModeTimeline {
		if leave := modeSpecs[from].leave; leave != nil {
			leave(c)
		}
		c.panels.Apply(EventLeave, from, c.mobile)
	}
	c.mode = to
	c.panels.Apply(EventEnter, to, c.mobile)
	return nil
}

// Subscribe registers fn to run after every successful Dispatch. The returned
// func removes it.
func (c *Controller) Subscribe(fn func(Change)) func() {
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	return func() { delete(c.subs, id) }
}

// Dispatch applies one intent. On error the session state is unchanged.
func (c *Controller) Dispatch(in Intent) (Change, error) {
	if in == nil {
		return Change{}, ErrUnknownIntent
	}
	before := c.panels
	ch := Change{Intent: in, From: c.mode}

	if err := c.apply(in, &ch); err != nil {
		c.log.Warn().Err(err).Str("intent", in.intentName()).Str("mode", c.mode.String()).Msg("intent rejected")
		return Change{}, err
	}

	ch.Mode = c.mode
	ch.TipID = c.sel.CurrentID()
	ch.PanelsChanged = before != c.panels
	c.log.Debug().
		Str("intent", in.intentName()).
		Str("from", ch.From.String()).
		Str("mode", ch.Mode.String()).
		Str("tip", ch.TipID).
		Msg("dispatch")

	for _, fn := range c.subs {
		fn(ch)
	}
	return ch, nil
}

func (c *Controller) apply(in Intent, ch *Change) error {
	switch v := in.(type) {
	case SelectTip:
		if _, ok := c.sel.tips.ByID(v.ID); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownTip, v.ID)
		}
		c.sel.SelectByID(v.ID)
		if c.mode != ModeTimeline {
			if err := c.setMode(ModeTimeline); err != nil {
				return err
			}
			c.panels.Apply(EventShowDetail, ModeTimeline, c.mobile)
		} else if c.mobile {
			c.panels.Apply(EventShowDetail, ModeTimeline, c.mobile)
		}

	case MoveSelection:
		_, ch.Moved = c.sel.MoveRelative(v.Delta)

	case ItemVisible:
		t, ok := c.sel.tips.ByID(v.ID)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownTip, v.ID)
		}
		switch c.mode {
		case ModeStock:
			c.stockActiveTipID = t.ID
		case ModePost:
			c.postActiveSymbol = t.Symbol
		}

	case OpenStock:
		sym := strings.TrimSpace(v.Symbol)
		if sym == "" {
			return ErrNoStock
		}
		prevSym, prevTip := c.stockSymbol, c.stockActiveTipID
		c.stockSymbol = sym
		c.stockActiveTipID = ""
		if tips := c.catalog.Tips().FilterByStock(sym); len(tips) > 0 {
			c.stockActiveTipID = tips[0].ID
		}
		if err := c.setMode(ModeStock); err != nil {
			c.stockSymbol, c.stockActiveTipID = prevSym, prevTip
			return err
		}

	case OpenPost:
		pd, ok := c.catalog.PostData(v.PostID)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownPost, v.PostID)
		}
		c.postID = pd.Post.ID
		c.postActiveSymbol = ""
		if len(pd.Tips) > 0 {
			c.postActiveSymbol = pd.Tips[0].Symbol
		}
		return c.setMode(ModePost)

	case OpenAuthor:
		ad, ok := c.catalog.AuthorData(v.Name)
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownAuthor, v.Name)
		}
		c.authorName = ad.Author.Name
		return c.setMode(ModeAuthor)

	case OpenJournal:
		sym := strings.TrimSpace(v.Symbol)
		if sym == "" {
			sym = c.stockSymbol
		}
		if sym == "" {
			return ErrNoStock
		}
		c.stockSymbol = sym
		return c.setMode(ModeJournal)

	case OpenPortfolio:
		return c.setMode(ModePortfolio)
	case OpenAbout:
		return c.setMode(ModeAbout)
	case OpenAuth:
		return c.setMode(ModeAuth)
	case GoHome:
		return c.setMode(ModeTimeline)

	case Back:
		return c.back()

	case TogglePanel:
		c.panels.Apply(EventToggle, c.mode, c.mobile)
	case OpenPanel:
		c.panels.Apply(EventOpen, c.mode, c.mobile)
	case ClosePanel:
		c.panels.Apply(EventClose, c.mode, c.mobile)
	case PanelBack:
		c.panels.Apply(EventPanelBack, c.mode, c.mobile)
	case ShowList:
		c.panels.Apply(EventShowList, ModeTimeline, c.mobile)
	case ShowDetail:
		c.panels.Apply(EventShowDetail, ModeTimeline, c.mobile)
	case SetLayout:
		c.mobile = v.Mobile

	case ToggleAssessment:
		if _, ok := c.sel.tips.ByID(v.TipID); !ok {
			return fmt.Errorf("%w: %q", ErrUnknownTip, v.TipID)
		}
		if _, ok := model.ParseAssessment(string(v.Value)); !ok {
			return fmt.Errorf("assessment %q: %w", v.Value, ErrUnknownIntent)
		}
		c.journal.Assessments.Toggle(v.TipID, v.Value)

	case AddNote:
		if _, err := c.journal.Notes.Add(v.Scope, v.Input, c.now()); err != nil {
			return err
		}
	case SaveConviction:
		return c.journal.Convictions.Save(v.Scope, v.Conviction)
	case LogTrade:
		sym := strings.TrimSpace(v.Symbol)
		if sym == "" {
			return ErrNoStock
		}
		if _, err := c.journal.Trades.Log(sym, v.Input, c.now()); err != nil {
			return err
		}
	case DeleteTrade:
		if !c.journal.Trades.Delete(v.Symbol, v.ID) {
			return fmt.Errorf("%w: %q", ErrUnknownTrade, v.ID)
		}

	case SubmitAuth:
		email := strings.TrimSpace(v.Email)
		if v.Method != AuthGoogle && email == "" {
			return ErrEmailRequired
		}
		c.log.Info().Str("method", string(v.Method)).Str("email", email).Msg("auth submitted")

	default:
		return fmt.Errorf("%T: %w", in, ErrUnknownIntent)
	}
	return nil
}

// back steps out of the current screen. On a narrow layout a full-screen panel
// or the timeline's detail pane is dismissed first.
func (c *Controller) back() error {
	f := c.panels.Get(c.mode)
	if c.mobile && f.MobileShowingPanel {
		c.panels.Apply(EventPanelBack, c.mode, c.mobile)
		return nil
	}
	if c.mode == ModeTimeline {
		if c.mobile && !f.MobileShowingList {
			c.panels.Apply(EventShowList, ModeTimeline, c.mobile)
		}
		return nil
	}
	return c.setMode(modeSpecs[c.mode].back)
}

func (c *Controller) Mode() ViewMode    { return c.mode }
func (c *Controller) Mobile() bool      { return c.mobile }
func (c *Controller) Now() time.Time    { return c.now() }
func (c *Controller) Panel() PanelFlags { return c.panels.Get(c.mode) }

func (c *Controller) PanelFor(m ViewMode) PanelFlags { return c.panels.Get(m) }

func (c *Controller) Catalog() *store.Catalog { return c.catalog }

func (c *Controller) Tips() *store.TipStore { return c.catalog.Tips() }

func (c *Controller) CurrentTipID() string { return c.sel.CurrentID() }

func (c *Controller) CurrentTip() (model.Tip, bool) { return c.sel.Current() }

func (c *Controller) SelectedIndex() int { return c.sel.Index() }

func (c *Controller) StockSymbol() string      { return c.stockSymbol }
func (c *Controller) ActiveStockTipID() string { return c.stockActiveTipID }
func (c *Controller) PostID() string           { return c.postID }
func (c *Controller) ActivePostSymbol() string { return c.postActiveSymbol }
func (c *Controller) AuthorName() string       { return c.authorName }

// Journal reads. Writes go through Dispatch.

func (c *Controller) Assessment(tipID string) model.Assessment {
	return c.journal.Assessments.Get(tipID)
}

func (c *Controller) AssessmentSummary(tips []model.Tip) journal.AssessmentSummary {
	return c.journal.Assessments.Summary(tips)
}

func (c *Controller) Notes(scope journal.Scope) []model.Note { return c.journal.Notes.List(scope) }

func (c *Controller) Conviction(scope journal.Scope, fallback model.Sentiment) model.Conviction {
	return c.journal.Convictions.GetOrDefault(scope, fallback)
}

func (c *Controller) Trades(symbol string) []model.Trade { return c.journal.Trades.List(symbol) }
