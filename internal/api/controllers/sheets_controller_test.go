package controllers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"bettrack/internal/models/db_models"
	"bettrack/internal/models/response_models"
	"bettrack/pkg/middleware"
	"bettrack/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type stubSheetsService struct {
	status     response_models.SheetsStatus
	link       response_models.SheetLink
	ensureErr  error
	syncErr    error
	unlinkErr  error
	unlinkedID uuid.UUID
}

func (s *stubSheetsService) Status(context.Context, uuid.UUID) (response_models.SheetsStatus, error) {
	return s.status, nil
}

func (s *stubSheetsService) EnsureLinked(context.Context, uuid.UUID) (response_models.SheetLink, error) {
	return s.link, s.ensureErr
}

func (s *stubSheetsService) Append(context.Context, *db_models.User, response_models.BetFields, time.Time) error {
	return nil
}

func (s *stubSheetsService) SyncBet(context.Context, uuid.UUID, response_models.BetFields) error {
	return s.syncErr
}

func (s *stubSheetsService) Unlink(_ context.Context, userID uuid.UUID) error {
	s.unlinkedID = userID
	return s.unlinkErr
}

func newSheetsRouter(svc *stubSheetsService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	controller := NewSheetsController(svc)
	authed := r.Group("/sheets")
	authed.Use(middleware.JWTAuthMiddleware())
	authed.GET("/status", controller.Status)
	authed.POST("/create-template", controller.CreateTemplate)
	authed.POST("/sync-bet", controller.SyncBet)
	authed.POST("/disconnect", controller.Disconnect)
	return r
}

func TestSheetsStatus(t *testing.T) {
	svc := &stubSheetsService{status: response_models.SheetsStatus{
		IsAuthenticated: true,
		HasSpreadsheet:  true,
		SpreadsheetURL:  "https://docs.google.com/spreadsheets/d/ss-1",
		IsSetupComplete: true,
	}}
	r := newSheetsRouter(svc)

	w := doRequest(r, http.MethodGet, "/sheets/status", bearerFor(t), "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"isSetupComplete":true`)
}

func TestCreateTemplateReturnsLink(t *testing.T) {
	svc := &stubSheetsService{link: response_models.SheetLink{
		SpreadsheetID:  "ss-1",
		SpreadsheetURL: "https://docs.google.com/spreadsheets/d/ss-1",
	}}
	r := newSheetsRouter(svc)

	w := doRequest(r, http.MethodPost, "/sheets/create-template", bearerFor(t), "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"spreadsheetId":"ss-1"`)
}

func TestCreateTemplateAuthExpired(t *testing.T) {
	r := newSheetsRouter(&stubSheetsService{ensureErr: utils.ErrSheetsAuthExpired})

	w := doRequest(r, http.MethodPost, "/sheets/create-template", bearerFor(t), "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "reconnect")
}

func TestSyncBetErrorMapping(t *testing.T) {
	body := `{"betData":{"teams":"Arsenal vs Chelsea"}}`

	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"not linked", utils.ErrSheetsNotLinked, http.StatusBadRequest},
		{"auth expired", utils.ErrSheetsAuthExpired, http.StatusUnauthorized},
		{"permission denied", utils.ErrSheetsPermissionDenied, http.StatusForbidden},
		{"sheet deleted", utils.ErrSheetsNotFound, http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newSheetsRouter(&stubSheetsService{syncErr: tc.err})
			w := doRequest(r, http.MethodPost, "/sheets/sync-bet", bearerFor(t), body)
			require.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestDisconnect(t *testing.T) {
	svc := &stubSheetsService{}
	r := newSheetsRouter(svc)

	w := doRequest(r, http.MethodPost, "/sheets/disconnect", bearerFor(t), "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotEqual(t, uuid.Nil, svc.unlinkedID)
}
