package review

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"deckwright/internal/deck"
	"deckwright/internal/testsupport"
)

var input = deck.UserInput{Topic: "Bees", DurationMinutes: 5, Audience: "kids", Language: "English"}

func draft() deck.Manuscript {
	return deck.Manuscript{Title: "Bees", Sections: []deck.ManuscriptSection{
		{Name: "Introduction", Content: "Bees make honey."},
		{Name: "Conclusion", Content: "Thank the bees."},
	}}
}

var evaluate = testsupport.ModelIs("eval")
var rewrite = testsupport.ModelIs("rewrite")

func TestReviewApprovesAtThreshold(t *testing.T) {
	fake := testsupport.NewFakeGenerator().On(evaluate, `{"score": 8, "strengths": ["clear"]}`)
	gate := New(fake, Models{Evaluate: "eval", Rewrite: "rewrite"}, nil)

	res := gate.Review(context.Background(), draft(), input)
	if res.Outcome != OutcomeApproved || res.Score != 8 || res.Err != nil {
		t.Fatalf("unexpected result %+v", res)
	}
	if diff := cmp.Diff(draft(), res.Manuscript); diff != "" {
		t.Fatalf("approved manuscript must be unchanged (-want +got):\n%s", diff)
	}
	if fake.CallCount(rewrite) != 0 {
		t.Fatal("approved manuscript must not be rewritten")
	}
}

func TestReviewRewritesOnceBelowThreshold(t *testing.T) {
	fake := testsupport.NewFakeGenerator().
		On(evaluate, `{"score": 5, "weaknesses": ["too short"], "missing_topics": ["pollination"], "improvement_suggestions": ["add examples"]}`).
		On(rewrite, `{"title": "Bees, improved", "sections": [{"name": "Introduction", "content": "Bees pollinate flowers."}]}`)
	gate := New(fake, Models{Evaluate: "eval", Rewrite: "rewrite"}, nil)

	res := gate.Review(context.Background(), draft(), input)
	if res.Outcome != OutcomeRewritten || res.Score != 5 {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.Manuscript.Title != "Bees, improved" {
		t.Fatalf("expected rewritten manuscript, got %+v", res.Manuscript)
	}
	if fake.CallCount(evaluate) != 1 || fake.CallCount(rewrite) != 1 {
		t.Fatalf("expected one evaluation and one rewrite, got %d/%d", fake.CallCount(evaluate), fake.CallCount(rewrite))
	}
	prompt := fake.Calls()[1].Prompt
	for _, want := range []string{"too short", "pollination", "add examples"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("rewrite prompt missing %q", want)
		}
	}
}

func TestReviewEvaluationFailureDegrades(t *testing.T) {
	fake := testsupport.NewFakeGenerator().Fail(evaluate, errors.New("boom"))
	gate := New(fake, Models{Evaluate: "eval", Rewrite: "rewrite"}, nil)

	res := gate.Review(context.Background(), draft(), input)
	if res.Outcome != OutcomeDegraded || res.Score != 0 || res.Err == nil {
		t.Fatalf("unexpected result %+v", res)
	}
	if !res.Manuscript.Equal(draft()) {
		t.Fatal("degraded result must carry the original manuscript")
	}
}

func TestReviewRewriteFailureDegrades(t *testing.T) {
	fake := testsupport.NewFakeGenerator().
		On(evaluate, `{"score": 3}`).
		On(rewrite, `{"title": ""}`)
	gate := New(fake, Models{Evaluate: "eval", Rewrite: "rewrite"}, nil)

	res := gate.Review(context.Background(), draft(), input)
	if res.Outcome != OutcomeDegraded || res.Score != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
	if !res.Manuscript.Equal(draft()) {
		t.Fatal("degraded result must carry the original manuscript")
	}
}

func TestReviewOutOfRangeScoreDegrades(t *testing.T) {
	fake := testsupport.NewFakeGenerator().On(evaluate, `{"score": 11}`)
	gate := New(fake, Models{Evaluate: "eval", Rewrite: "rewrite"}, nil)
	if res := gate.Review(context.Background(), draft(), input); res.Outcome != OutcomeDegraded {
		t.Fatalf("expected degraded outcome for score 11, got %+v", res)
	}
}

func TestProgressLabel(t *testing.T) {
	if got := ProgressLabel(9); got != "Manuscript approved (9/10)" {
		t.Fatalf("unexpected label %q", got)
	}
}
