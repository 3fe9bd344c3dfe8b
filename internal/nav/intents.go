package nav

import (
	"tipdesk/internal/journal"
	"tipdesk/internal/model"
)

// Intent is a request from a view. Every state change in a session goes
// through Controller.Dispatch with one of the types below.
type Intent interface {
	intentName() string
}

type (
	// SelectTip focuses a tip in the timeline. Dispatched from any other mode it
	// also returns to the timeline and shows the tip's detail.
	SelectTip struct{ ID string }
	// MoveSelection steps the timeline cursor by Delta, clamped to the list.
	MoveSelection struct{ Delta int }
	// ItemVisible reports the tip currently under the reading line of a scrolled list.
	ItemVisible struct{ ID string }

	OpenStock     struct{ Symbol string }
	OpenPost      struct{ PostID string }
	OpenAuthor    struct{ Name string }
	OpenPortfolio struct{}
	// OpenJournal shows the trade journal for Symbol, or for the active stock when empty.
	OpenJournal struct{ Symbol string }
	OpenAbout   struct{}
	OpenAuth    struct{}
	GoHome      struct{}
	Back        struct{}

	TogglePanel struct{}
	OpenPanel   struct{}
	PanelBack   struct{}
	ClosePanel  struct{}
	ShowList    struct{}
	ShowDetail  struct{}
	SetLayout   struct{ Mobile bool }

	ToggleAssessment struct {
		TipID string
		Value model.Assessment
	}
	AddNote struct {
		Scope journal.Scope
		Input journal.NoteInput
	}
	SaveConviction struct {
		Scope      journal.Scope
		Conviction model.Conviction
	}
	LogTrade struct {
		Symbol string
		Input  journal.TradeInput
	}
	DeleteTrade struct {
		Symbol string
		ID     string
	}
	// SubmitAuth is accepted and logged; there is no account backend.
	SubmitAuth struct {
		Method AuthMethod
		Email  string
	}
)

type AuthMethod string

const (
	AuthLogin  AuthMethod = "login"
	AuthSignup AuthMethod = "signup"
	AuthGoogle AuthMethod = "google"
)

func (SelectTip) intentName() string        { return "select-tip" }
func (MoveSelection) intentName() string    { return "move-selection" }
func (ItemVisible) intentName() string      { return "item-visible" }
func (OpenStock) intentName() string        { return "open-stock" }
func (OpenPost) intentName() string         { return "open-post" }
func (OpenAuthor) intentName() string       { return "open-author" }
func (OpenPortfolio) intentName() string    { return "open-portfolio" }
func (OpenJournal) intentName() string      { return "open-journal" }
func (OpenAbout) intentName() string        { return "open-about" }
func (OpenAuth) intentName() string         { return "open-auth" }
func (GoHome) intentName() string           { return "go-home" }
func (Back) intentName() string             { return "back" }
func (TogglePanel) intentName() string      { return "toggle-panel" }
func (OpenPanel) intentName() string        { return "open-panel" }
func (PanelBack) intentName() string        { return "panel-back" }
func (ClosePanel) intentName() string       { return "close-panel" }
func (ShowList) intentName() string         { return "show-list" }
func (ShowDetail) intentName() string       { return "show-detail" }
func (SetLayout) intentName() string        { return "set-layout" }
func (ToggleAssessment) intentName() string { return "toggle-assessment" }
func (AddNote) intentName() string          { return "add-note" }
func (SaveConviction) intentName() string   { return "save-conviction" }
func (LogTrade) intentName() string         { return "log-trade" }
func (DeleteTrade) intentName() string      { return "delete-trade" }
func (SubmitAuth) intentName() string       { return "submit-auth" }
