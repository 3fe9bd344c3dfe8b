package journal

import (
	"fmt"
	"strings"

	"tipdesk/internal/model"
)

type Convictions struct {
	byScope map[Scope]model.Conviction
}

func NewConvictions() *Convictions {
	return &Convictions{byScope: map[Scope]model.Conviction{}}
}

func (c *Convictions) Get(scope Scope) (model.Conviction, bool) {
	v, ok := c.byScope[scope]
	return v, ok
}

// GetOrDefault returns the saved conviction or the placeholder shown before the
// user has saved one: the given sentiment at medium level.
func (c *Convictions) GetOrDefault(scope Scope, sentiment model.Sentiment) model.Conviction {
	if v, ok := c.byScope[scope]; ok {
		return v
	}
	return model.Conviction{Sentiment: sentiment, Level: model.ConvictionMedium}
}

// Save overwrites the scope's conviction wholesale.
func (c *Convictions) Save(scope Scope, v model.Conviction) error {
	if !scope.valid() {
		return ErrEmptyScope
	}
	switch v.Sentiment {
	case model.SentimentBullish, model.SentimentBearish, model.SentimentNeutral:
	default:
		return fmt.Errorf("sentiment %q: %w", v.Sentiment, ErrInvalidConviction)
	}
	switch v.Level {
	case model.ConvictionHigh, model.ConvictionMedium, model.ConvictionLow:
	default:
		return fmt.Errorf("level %q: %w", v.Level, ErrInvalidConviction)
	}
	v.TargetPrice = strings.TrimSpace(v.TargetPrice)
	v.Rationale = strings.TrimSpace(v.Rationale)
	c.byScope[scope] = v
	return nil
}
