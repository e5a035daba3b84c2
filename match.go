package abbr

// Match is a ranked fuzzy-match candidate. Score is in [0, 1]: 0 is a
// perfect match, 1 the worst admitted match.
type Match struct {
	Abbreviation string  `json:"abbreviation"`
	Score        float64 `json:"score"`
}

// Similarity converts the score into the percentage shown to users.
func (m Match) Similarity() float64 {
	return (1 - m.Score) * 100
}
