package entities

// RankingGroup is one category block on a ranking page: an ordered,
// deduplicated run of treatments with its aggregates and composite score.
type RankingGroup struct {
	GroupKey      string       `json:"group_key"`
	Items         []*Treatment `json:"items"`
	AverageRating float64      `json:"average_rating"`
	TotalReviews  int          `json:"total_reviews"`
	Score         float64      `json:"score"`
}

// RankingPage is the assembled response for a ranking endpoint: the ordered
// groups plus the hospitals referenced by their treatments.
type RankingPage struct {
	Groups    []*RankingGroup      `json:"groups"`
	Hospitals map[string]*Hospital `json:"hospitals"`
	GlobalAvg float64              `json:"global_average_rating"`
}
