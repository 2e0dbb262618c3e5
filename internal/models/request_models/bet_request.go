package request_models

import "bettrack/internal/models/response_models"

// Region is the pixel rectangle the user dragged in the page. The crop is
// done client-side; the server only echoes it back for bookkeeping.
type Region struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

type ProcessBetRequest struct {
	ImageData string  `json:"imageData" binding:"required"`
	Selection *Region `json:"selection"`
}

type SyncBetRequest struct {
	BetData response_models.BetFields `json:"betData" binding:"required"`
}
