package journal

import "tipdesk/internal/model"

// Assessments maps tip id to the user's tri-state reaction.
type Assessments struct {
	byTip map[string]model.Assessment
}

func NewAssessments(initial map[string]model.Assessment) *Assessments {
	a := &Assessments{byTip: map[string]model.Assessment{}}
	for id, v := range initial {
		if v != model.AssessmentUnset {
			a.byTip[id] = v
		}
	}
	return a
}

func (a *Assessments) Get(tipID string) model.Assessment {
	return a.byTip[tipID]
}

// Toggle applies the user's choice: picking the active value clears it,
// anything else replaces it. Returns the resulting value.
func (a *Assessments) Toggle(tipID string, v model.Assessment) model.Assessment {
	if v == model.AssessmentUnset || a.byTip[tipID] == v {
		delete(a.byTip, tipID)
		return model.AssessmentUnset
	}
	a.byTip[tipID] = v
	return v
}

// Snapshot returns a copy of the set entries.
func (a *Assessments) Snapshot() map[string]model.Assessment {
	out := make(map[string]model.Assessment, len(a.byTip))
	for k, v := range a.byTip {
		out[k] = v
	}
	return out
}

type AssessmentSummary struct {
	Agree    int `json:"agree"`
	Neutral  int `json:"neutral"`
	Disagree int `json:"disagree"`
}

func (a *Assessments) Summary(tips []model.Tip) AssessmentSummary {
	var s AssessmentSummary
	for _, t := range tips {
		switch a.byTip[t.ID] {
		case model.AssessmentAgree:
			s.Agree++
		case model.AssessmentNeutral:
			s.Neutral++
		case model.AssessmentDisagree:
			s.Disagree++
		}
	}
	return s
}
