package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tipdesk/internal/journal"
	"tipdesk/internal/model"
	"tipdesk/internal/nav"
)

type formKind int

const (
	formNote formKind = iota
	formConviction
	formTrade
	formLogin
	formSignup
)

// formField is one of: a single-line input, a multi-line area, or a choice
// cycled with ctrl+n / left / right.
type formField struct {
	label   string
	input   *textinput.Model
	area    *textarea.Model
	options []string
	choice  int
}

func (f *formField) value() string {
	switch {
	case f.area != nil:
		return f.area.Value()
	case f.input != nil:
		return f.input.Value()
	case len(f.options) > 0:
		return f.options[f.choice]
	}
	return ""
}

func (f *formField) focus() tea.Cmd {
	switch {
	case f.area != nil:
		return f.area.Focus()
	case f.input != nil:
		return f.input.Focus()
	}
	return nil
}

func (f *formField) blur() {
	if f.area != nil {
		f.area.Blur()
	}
	if f.input != nil {
		f.input.Blur()
	}
}

type form struct {
	kind   formKind
	title  string
	scope  journal.Scope
	symbol string
	fields []formField
	focus  int
}

func inputField(label, placeholder, value string) formField {
	ti := textinput.New()
	ti.Prompt = ""
	ti.Placeholder = placeholder
	ti.CharLimit = 200
	ti.SetValue(value)
	return formField{label: label, input: &ti}
}

func areaField(label, placeholder, value string) formField {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = false
	ta.SetHeight(4)
	ta.SetValue(value)
	return formField{label: label, area: &ta}
}

func choiceField(label string, options []string, current string) formField {
	f := formField{label: label, options: options}
	for i, o := range options {
		if o == current {
			f.choice = i
		}
	}
	return f
}

var sentimentOptions = []string{string(model.SentimentBullish), string(model.SentimentBearish), string(model.SentimentNeutral)}

func newNoteForm(scope journal.Scope, title string) *form {
	return newForm(&form{
		kind:  formNote,
		title: title,
		scope: scope,
		fields: []formField{
			areaField("Note", "What did you notice?", ""),
			choiceField("Sentiment", append([]string{"none"}, sentimentOptions...), "none"),
			inputField("Target price", "$0.00", ""),
		},
	})
}

func newConvictionForm(scope journal.Scope, title string, cur model.Conviction) *form {
	return newForm(&form{
		kind:  formConviction,
		title: title,
		scope: scope,
		fields: []formField{
			choiceField("Sentiment", sentimentOptions, string(cur.Sentiment)),
			choiceField("Conviction", []string{string(model.ConvictionHigh), string(model.ConvictionMedium), string(model.ConvictionLow)}, string(cur.Level)),
			inputField("Target price", "$0.00", cur.TargetPrice),
			areaField("Rationale", "Why do you hold this view?", cur.Rationale),
		},
	})
}

func newTradeForm(symbol, today string) *form {
	actions := make([]string, 0, len(model.TradeActions))
	for _, a := range model.TradeActions {
		actions = append(actions, string(a))
	}
	return newForm(&form{
		kind:   formTrade,
		title:  "Log trade · " + symbol,
		symbol: symbol,
		fields: []formField{
			inputField("Date", "YYYY-MM-DD", today),
			choiceField("Action", actions, string(model.TradeBuy)),
			inputField("Quantity", "0", ""),
			inputField("Price", "$0.00", ""),
			inputField("Fees", "$0.00", ""),
			inputField("Account", "optional", ""),
			inputField("Reason", "optional", ""),
		},
	})
}

func newAuthForm(kind formKind) *form {
	f := &form{kind: kind}
	email := inputField("Email", "you@example.com", "")
	pass := inputField("Password", "", "")
	pass.input.EchoMode = textinput.EchoPassword
	f.fields = []formField{email, pass}
	if kind == formSignup {
		f.title = "Sign up"
		confirm := inputField("Confirm password", "", "")
		confirm.input.EchoMode = textinput.EchoPassword
		f.fields = append(f.fields, confirm)
	} else {
		f.title = "Log in"
	}
	return newForm(f)
}

func newForm(f *form) *form {
	f.fields[0].focus()
	return f
}

func (f *form) field(label string) string {
	for i := range f.fields {
		if f.fields[i].label == label {
			return strings.TrimSpace(f.fields[i].value())
		}
	}
	return ""
}

func (f *form) move(delta int) tea.Cmd {
	f.fields[f.focus].blur()
	f.focus = (f.focus + delta + len(f.fields)) % len(f.fields)
	return f.fields[f.focus].focus()
}

// update routes a key to the focused field. Submit and cancel are handled by
// the caller.
func (f *form) update(msg tea.KeyMsg, keys keyMap) tea.Cmd {
	switch {
	case key.Matches(msg, keys.NextField):
		return f.move(1)
	case key.Matches(msg, keys.PrevField):
		return f.move(-1)
	}
	cur := &f.fields[f.focus]
	if len(cur.options) > 0 {
		switch msg.String() {
		case "ctrl+n", "right", "l", " ":
			cur.choice = (cur.choice + 1) % len(cur.options)
		case "left", "h":
			cur.choice = (cur.choice - 1 + len(cur.options)) % len(cur.options)
		}
		return nil
	}
	var cmd tea.Cmd
	switch {
	case cur.area != nil:
		*cur.area, cmd = cur.area.Update(msg)
	case cur.input != nil:
		*cur.input, cmd = cur.input.Update(msg)
	}
	return cmd
}

// intent turns the form into the dispatchable request.
func (f *form) intent() nav.Intent {
	switch f.kind {
	case formNote:
		s := f.field("Sentiment")
		if s == "none" {
			s = ""
		}
		return nav.AddNote{Scope: f.scope, Input: journal.NoteInput{
			Content:     f.field("Note"),
			Sentiment:   model.Sentiment(s),
			TargetPrice: f.field("Target price"),
		}}
	case formConviction:
		return nav.SaveConviction{Scope: f.scope, Conviction: model.Conviction{
			Sentiment:   model.Sentiment(f.field("Sentiment")),
			Level:       model.ConvictionLevel(f.field("Conviction")),
			TargetPrice: f.field("Target price"),
			Rationale:   f.field("Rationale"),
		}}
	case formTrade:
		return nav.LogTrade{Symbol: f.symbol, Input: journal.TradeInput{
			Date:     f.field("Date"),
			Action:   model.TradeAction(f.field("Action")),
			Quantity: f.field("Quantity"),
			Price:    f.field("Price"),
			Fees:     f.field("Fees"),
			Account:  f.field("Account"),
			Reason:   f.field("Reason"),
		}}
	case formLogin:
		return nav.SubmitAuth{Method: nav.AuthLogin, Email: f.field("Email")}
	case formSignup:
		return nav.SubmitAuth{Method: nav.AuthSignup, Email: f.field("Email")}
	}
	return nil
}

// passwordsMatch is the only check the sign-up form does locally.
func (f *form) passwordsMatch() bool {
	if f.kind != formSignup {
		return true
	}
	return f.field("Password") == f.field("Confirm password")
}

func (f *form) view(width int) string {
	if width < 20 {
		width = 20
	}
	inner := width - 4
	var b strings.Builder
	b.WriteString(styleHeading().Render(f.title))
	b.WriteString("\n\n")
	for i := range f.fields {
		fl := &f.fields[i]
		label := styleMuted().Render(fl.label)
		if i == f.focus {
			label = styleAccent().Render("› " + fl.label)
		}
		b.WriteString(label)
		b.WriteString("\n")
		switch {
		case fl.area != nil:
			fl.area.SetWidth(inner)
			b.WriteString(fl.area.View())
		case fl.input != nil:
			fl.input.Width = inner
			b.WriteString(fl.input.View())
		default:
			parts := make([]string, len(fl.options))
			for j, o := range fl.options {
				if j == fl.choice {
					parts[j] = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render("[" + o + "]")
				} else {
					parts[j] = styleMuted().Render(" " + o + " ")
				}
			}
			b.WriteString(strings.Join(parts, " "))
		}
		b.WriteString("\n\n")
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Padding(0, 1).
		Width(width - 2).
		Render(strings.TrimRight(b.String(), "\n"))
}
