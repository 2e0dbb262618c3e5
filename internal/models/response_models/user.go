package response_models

type UserInfo struct {
	ID              string `json:"id"`
	Email           string `json:"email"`
	Name            string `json:"name"`
	Plan            string `json:"plan"`
	UsageCount      int    `json:"usage_count"`
	UsageLimit      int    `json:"usage_limit"`
	UsageResetDate  string `json:"usage_reset_date"`
	SheetsConnected bool   `json:"sheets_connected"`
	CreatedAt       int64  `json:"created_at"`
}

type LoginResult struct {
	Token string   `json:"token"`
	User  UserInfo `json:"user"`
}
