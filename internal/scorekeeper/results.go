package scorekeeper

import "adventcal/internal/model"

// ResultsParams are the inputs the results screen is derived from
type ResultsParams struct {
	FirstAttempt bool
	CurrentScore int
	Previous     *model.ScoreRecord
	Saved        bool
	Err          string
}

// ResultsView is what the results screen renders. On a practice replay the
// displayed score is the stored one, never the freshly computed value, so
// the player is not misled about what counts.
type ResultsView struct {
	DisplayScore  int    `json:"displayScore"`
	CurrentScore  int    `json:"currentScore"`
	Practice      bool   `json:"practice"`
	Saved         bool   `json:"saved"`
	Err           string `json:"error,omitempty"`
	PreviousScore int    `json:"previousScore,omitempty"`
}

// BuildResults derives the results view. Pure function of its parameters.
func BuildResults(p ResultsParams) ResultsView {
	v := ResultsView{
		CurrentScore: p.CurrentScore,
		DisplayScore: p.CurrentScore,
		Saved:        p.Saved,
		Err:          p.Err,
	}
	if !p.FirstAttempt {
		v.Practice = true
		if p.Previous != nil {
			v.DisplayScore = p.Previous.Score
			v.PreviousScore = p.Previous.Score
		}
	}
	return v
}
