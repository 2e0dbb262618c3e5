package response_models

type SheetsStatus struct {
	IsAuthenticated bool   `json:"isAuthenticated"`
	HasSpreadsheet  bool   `json:"hasSpreadsheet"`
	SpreadsheetURL  string `json:"spreadsheetUrl,omitempty"`
	IsSetupComplete bool   `json:"isSetupComplete"`
}

type SheetLink struct {
	SpreadsheetID  string `json:"spreadsheetId"`
	SpreadsheetURL string `json:"spreadsheetUrl"`
}
