package response_models

type HistoryPage struct {
	Items      []BetRecord `json:"items"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	Total      int64       `json:"total"`
	TotalPages int64       `json:"totalPages"`
}
