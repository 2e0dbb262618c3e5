package response_models

// BetFields is the normalized field set pulled from one slip image.
// Everything stays a string: odds and stake keep whatever format the
// bookmaker printed, and "Unknown" marks fields the model could not read.
type BetFields struct {
	Teams           string `json:"teams"`
	Sport           string `json:"sport"`
	League          string `json:"league"`
	BetType         string `json:"bet_type"`
	Selection       string `json:"selection"`
	Odds            string `json:"odds"`
	Stake           string `json:"stake"`
	PotentialReturn string `json:"potential_return"`
	Bookmaker       string `json:"bookmaker"`
	Status          string `json:"status"`
	Date            string `json:"date"`
	Confidence      string `json:"confidence"`
	Notes           string `json:"notes,omitempty"`
}

type BetRecord struct {
	ID string `json:"id"`
	BetFields
	SyncedToSheets bool   `json:"synced_to_sheets"`
	ProcessedAt    string `json:"processed_at"`
}

type UsageSnapshot struct {
	Count     int `json:"count"`
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`
}

type ProcessBetResult struct {
	Bet   BetRecord     `json:"bet"`
	Usage UsageSnapshot `json:"usage"`
}
