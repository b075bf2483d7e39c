package scorekeeper

import (
	"testing"

	"adventcal/internal/model"
)

func TestBuildResultsFirstAttempt(t *testing.T) {
	v := BuildResults(ResultsParams{
		FirstAttempt: true,
		CurrentScore: 680,
		Saved:        true,
	})
	if v.Practice {
		t.Error("First attempt must not be practice")
	}
	if v.DisplayScore != 680 {
		t.Errorf("Expected display score 680, got %d", v.DisplayScore)
	}
	if !v.Saved || v.Err != "" {
		t.Errorf("Unexpected save flags: saved=%v err=%q", v.Saved, v.Err)
	}
}

func TestBuildResultsPracticeShowsStoredScore(t *testing.T) {
	v := BuildResults(ResultsParams{
		FirstAttempt: false,
		CurrentScore: 950,
		Previous:     &model.ScoreRecord{Score: 600},
	})
	if !v.Practice {
		t.Error("Expected practice view")
	}
	if v.DisplayScore != 600 {
		t.Errorf("Expected the stored score 600 to be displayed, got %d", v.DisplayScore)
	}
	if v.CurrentScore != 950 {
		t.Errorf("Current score must still carry the fresh value, got %d", v.CurrentScore)
	}
	if v.PreviousScore != 600 {
		t.Errorf("Expected previous score 600, got %d", v.PreviousScore)
	}
}

func TestBuildResultsPracticeWithoutStoredRecord(t *testing.T) {
	v := BuildResults(ResultsParams{
		FirstAttempt: false,
		CurrentScore: 400,
	})
	if !v.Practice {
		t.Error("Expected practice view")
	}
	// nothing stored to fall back to
	if v.DisplayScore != 400 {
		t.Errorf("Expected fresh score 400, got %d", v.DisplayScore)
	}
}

func TestBuildResultsSaveError(t *testing.T) {
	v := BuildResults(ResultsParams{
		FirstAttempt: true,
		CurrentScore: 500,
		Err:          "save failed: connection refused",
	})
	if v.Saved {
		t.Error("Expected saved=false")
	}
	if v.Err == "" {
		t.Error("Expected the error string to surface")
	}
	if v.DisplayScore != 500 {
		t.Errorf("Score must still display on save failure, got %d", v.DisplayScore)
	}
}
