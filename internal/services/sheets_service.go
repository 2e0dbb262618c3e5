package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"bettrack/internal/infra"
	"bettrack/internal/models/db_models"
	"bettrack/internal/models/response_models"
	"bettrack/internal/repositories"
	"bettrack/pkg/utils"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// betLogColumns is the canonical "Bet Log" layout, version 1. Appended
// rows must follow this order exactly; changing it means a new template
// version, not a re-derivation.
var betLogColumns = []string{
	"Date", "Time", "Teams/Event", "Sport", "League", "Bet Type", "Selection",
	"Odds Format", "Odds", "Stake", "Potential Return", "Actual Return",
	"Profit/Loss", "ROI %", "Bookmaker", "Status", "Settlement Date", "Notes", "Confidence",
}

// BetLogRow maps one bet onto the Bet Log column order. Settlement
// columns stay blank until a future editing flow fills them in.
func BetLogRow(fields response_models.BetFields, processedAt time.Time) []interface{} {
	return []interface{}{
		fields.Date,
		processedAt.UTC().Format("15:04:05"),
		fields.Teams,
		fields.Sport,
		fields.League,
		fields.BetType,
		fields.Selection,
		"Decimal",
		fields.Odds,
		fields.Stake,
		fields.PotentialReturn,
		"", // Actual Return
		"", // Profit/Loss
		"", // ROI %
		fields.Bookmaker,
		fields.Status,
		"", // Settlement Date
		fields.Notes,
		fields.Confidence,
	}
}

// NewGoogleOAuthConfig builds the OAuth client shared by sign-in and
// sheet sync. drive.file keeps access scoped to spreadsheets this app
// created.
func NewGoogleOAuthConfig(cfg *infra.Config) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		Endpoint:     google.Endpoint,
		Scopes: []string{
			"profile",
			"email",
			"https://www.googleapis.com/auth/spreadsheets",
			"https://www.googleapis.com/auth/drive.file",
		},
	}
}

type SheetsServiceInterface interface {
	Status(ctx context.Context, userID uuid.UUID) (response_models.SheetsStatus, error)

	// EnsureLinked is idempotent: an already-linked user gets the
	// existing link back without any spreadsheet-creation call.
	EnsureLinked(ctx context.Context, userID uuid.UUID) (response_models.SheetLink, error)

	// Append pushes one bet row for an already-loaded user. Used by the
	// extraction pipeline's fire-and-forget step.
	Append(ctx context.Context, user *db_models.User, fields response_models.BetFields, processedAt time.Time) error

	// SyncBet is the on-demand /sheets/sync-bet flavor of Append.
	SyncBet(ctx context.Context, userID uuid.UUID, fields response_models.BetFields) error

	// Unlink clears the link but keeps the OAuth grant for a later
	// re-link.
	Unlink(ctx context.Context, userID uuid.UUID) error
}

// spreadsheetAPI is the thin seam over the Sheets HTTP surface, so the
// service logic stays testable without Google credentials.
type spreadsheetAPI interface {
	CreateTemplate(ctx context.Context, user *db_models.User, title string) (id, url string, err error)
	AppendRow(ctx context.Context, user *db_models.User, spreadsheetID string, row []interface{}) error
}

type sheetsService struct {
	api   spreadsheetAPI
	users repositories.UserRepository
}

func NewSheetsService(oauth *oauth2.Config, users repositories.UserRepository) SheetsServiceInterface {
	return &sheetsService{
		api:   &googleSheetsAPI{oauth: oauth},
		users: users,
	}
}

func (s *sheetsService) loadUser(ctx context.Context, userID uuid.UUID) (*db_models.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if user == nil {
		return nil, utils.ErrAccountNotFound
	}
	return user, nil
}

func (s *sheetsService) Status(ctx context.Context, userID uuid.UUID) (response_models.SheetsStatus, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return response_models.SheetsStatus{}, err
	}

	status := response_models.SheetsStatus{
		IsAuthenticated: user.GoogleAccessToken != nil,
		HasSpreadsheet:  user.SpreadsheetID != nil,
	}
	if user.SpreadsheetURL != nil {
		status.SpreadsheetURL = *user.SpreadsheetURL
	}
	status.IsSetupComplete = status.IsAuthenticated && status.HasSpreadsheet && user.SheetsConnected
	return status, nil
}

func (s *sheetsService) EnsureLinked(ctx context.Context, userID uuid.UUID) (response_models.SheetLink, error) {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return response_models.SheetLink{}, err
	}

	if user.SheetsConnected && user.SpreadsheetID != nil {
		link := response_models.SheetLink{SpreadsheetID: *user.SpreadsheetID}
		if user.SpreadsheetURL != nil {
			link.SpreadsheetURL = *user.SpreadsheetURL
		}
		return link, nil
	}

	if user.GoogleAccessToken == nil {
		return response_models.SheetLink{}, utils.ErrSheetsAuthExpired
	}

	title := "Bet Tracker Pro - " + user.Email
	if user.Name != "" {
		title = "Bet Tracker Pro - " + user.Name
	}

	id, url, err := s.api.CreateTemplate(ctx, user, title)
	if err != nil {
		return response_models.SheetLink{}, translateSheetsError(err)
	}

	if err := s.users.SetSheetLink(ctx, user.ID, id, url); err != nil {
		return response_models.SheetLink{}, utils.ErrDatabaseError
	}

	return response_models.SheetLink{SpreadsheetID: id, SpreadsheetURL: url}, nil
}

func (s *sheetsService) Append(ctx context.Context, user *db_models.User, fields response_models.BetFields, processedAt time.Time) error {
	if user.SpreadsheetID == nil || !user.SheetsConnected {
		return utils.ErrSheetsNotLinked
	}
	if user.GoogleAccessToken == nil {
		return utils.ErrSheetsAuthExpired
	}

	err := s.api.AppendRow(ctx, user, *user.SpreadsheetID, BetLogRow(fields, processedAt))
	if err != nil {
		return translateSheetsError(err)
	}
	return nil
}

func (s *sheetsService) SyncBet(ctx context.Context, userID uuid.UUID, fields response_models.BetFields) error {
	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return err
	}
	return s.Append(ctx, user, fields, time.Now().UTC())
}

func (s *sheetsService) Unlink(ctx context.Context, userID uuid.UUID) error {
	if err := s.users.ClearSheetLink(ctx, userID); err != nil {
		return utils.ErrDatabaseError
	}
	return nil
}

// translateSheetsError folds every Sheets failure into the categories
// the extension can act on: reconnect, re-setup, missing sheet, or
// sharing problem.
func translateSheetsError(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case 401:
			return utils.ErrSheetsAuthExpired
		case 403:
			return utils.ErrSheetsPermissionDenied
		case 404:
			return utils.ErrSheetsNotFound
		}
	}

	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) || strings.Contains(err.Error(), "invalid_grant") {
		return utils.ErrSheetsAuthExpired
	}

	return fmt.Errorf("%w: sheets: %v", utils.ErrUpstreamUnavailable, err)
}

// ────────────────────────────────────────────────────────────────
// Google-backed implementation
// ────────────────────────────────────────────────────────────────

type googleSheetsAPI struct {
	oauth *oauth2.Config
}

func (g *googleSheetsAPI) service(ctx context.Context, user *db_models.User) (*sheets.Service, error) {
	token := &oauth2.Token{}
	if user.GoogleAccessToken != nil {
		token.AccessToken = *user.GoogleAccessToken
	}
	if user.GoogleRefreshToken != nil {
		token.RefreshToken = *user.GoogleRefreshToken
		// Force a refresh so long-idle users do not ride a stale
		// access token into a 401.
		token.Expiry = time.Now().Add(-time.Minute)
	}

	return sheets.NewService(ctx, option.WithTokenSource(g.oauth.TokenSource(ctx, token)))
}

func (g *googleSheetsAPI) CreateTemplate(ctx context.Context, user *db_models.User, title string) (string, string, error) {
	svc, err := g.service(ctx, user)
	if err != nil {
		return "", "", err
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    title,
			Locale:   "en_US",
			TimeZone: "UTC",
		},
		Sheets: []*sheets.Sheet{
			{Properties: &sheets.SheetProperties{
				Title:          "Bet Log",
				GridProperties: &sheets.GridProperties{RowCount: 1000, ColumnCount: 20, FrozenRowCount: 1},
			}},
			{Properties: &sheets.SheetProperties{
				Title:          "Monthly Summary",
				GridProperties: &sheets.GridProperties{RowCount: 50, ColumnCount: 15},
			}},
			{Properties: &sheets.SheetProperties{
				Title:          "Settings",
				GridProperties: &sheets.GridProperties{RowCount: 50, ColumnCount: 5},
			}},
		},
	}

	created, err := svc.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", "", err
	}

	header := make([]interface{}, len(betLogColumns))
	for i, col := range betLogColumns {
		header[i] = col
	}
	_, err = svc.Spreadsheets.Values.Update(created.SpreadsheetId, "Bet Log!A1:S1", &sheets.ValueRange{
		Values: [][]interface{}{header},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return "", "", err
	}

	return created.SpreadsheetId, created.SpreadsheetUrl, nil
}

func (g *googleSheetsAPI) AppendRow(ctx context.Context, user *db_models.User, spreadsheetID string, row []interface{}) error {
	svc, err := g.service(ctx, user)
	if err != nil {
		return err
	}

	_, err = svc.Spreadsheets.Values.Append(spreadsheetID, "Bet Log!A:S", &sheets.ValueRange{
		Values: [][]interface{}{row},
	}).ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	return err
}
