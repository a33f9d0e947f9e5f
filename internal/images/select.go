package images

import (
	"deckwright/internal/services/unsplash"
)

// MinWidth is the narrowest photo metadata selection accepts on its first pass.
const MinWidth = 800

// maxCandidates bounds how many search results are considered per slide.
const maxCandidates = 3

// Evaluation is the vision model's verdict on one candidate.
type Evaluation struct {
	Score                int    `json:"score"`
	Reason               string `json:"reason"`
	SuitableAsBackground bool   `json:"suitable_as_background"`
}

type candidate struct {
	url    string
	width  int
	height int
}

type scored struct {
	candidate
	eval Evaluation
}

// parseCandidates keeps photos with a URL that are not taller than wide. When
// that leaves nothing, every photo with a URL is used regardless of shape.
func parseCandidates(photos []unsplash.Photo) []candidate {
	out := make([]candidate, 0, len(photos))
	for _, photo := range photos {
		url := photo.URL()
		if url == "" || photo.Width < photo.Height {
			continue
		}
		out = append(out, candidate{url: url, width: photo.Width, height: photo.Height})
	}
	if len(out) > 0 {
		return out
	}
	for _, photo := range photos {
		if url := photo.URL(); url != "" {
			out = append(out, candidate{url: url, width: photo.Width, height: photo.Height})
		}
	}
	return out
}

// rank orders evaluations by the background-weighted score, then the raw score.
func rank(eval Evaluation, preferBackground bool) (int, int) {
	weighted := eval.Score
	if preferBackground && eval.SuitableAsBackground {
		weighted += 2
	}
	return weighted, eval.Score
}

// selectByVision returns the URL of the best evaluated candidate. Ties keep
// the earliest candidate in search order.
func selectByVision(evaluated []scored, preferBackground bool) (string, bool) {
	if len(evaluated) == 0 {
		return "", false
	}
	best := evaluated[0]
	bestWeighted, bestScore := rank(best.eval, preferBackground)
	for _, item := range evaluated[1:] {
		weighted, score := rank(item.eval, preferBackground)
		if weighted > bestWeighted || (weighted == bestWeighted && score > bestScore) {
			best, bestWeighted, bestScore = item, weighted, score
		}
	}
	return best.url, true
}

// selectByMetadata takes the first photo that is not portrait and at least
// MinWidth wide, else the first photo with any URL.
func selectByMetadata(photos []unsplash.Photo) (string, bool) {
	for _, photo := range photos {
		if photo.IsPortrait() || photo.Width < MinWidth {
			continue
		}
		if url := photo.URL(); url != "" {
			return url, true
		}
	}
	for _, photo := range photos {
		if url := photo.URL(); url != "" {
			return url, true
		}
	}
	return "", false
}
