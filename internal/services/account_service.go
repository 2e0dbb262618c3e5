package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bettrack/internal/models/db_models"
	"bettrack/internal/models/request_models"
	"bettrack/internal/models/response_models"
	"bettrack/internal/repositories"
	"bettrack/pkg/utils"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	oauth2api "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
	"gorm.io/gorm"
)

type AccountServiceInterface interface {
	Register(ctx context.Context, req request_models.SignUpRequest) (response_models.UserInfo, error)
	Login(ctx context.Context, req request_models.LoginRequest) (response_models.LoginResult, error)

	GoogleAuthURL(state string) string
	// HandleGoogleCallback exchanges the provider code, upserts the
	// user and issues a session token.
	HandleGoogleCallback(ctx context.Context, code string) (response_models.LoginResult, error)

	// UserInfo applies the monthly usage reset before reporting counts.
	UserInfo(ctx context.Context, userID uuid.UUID) (response_models.UserInfo, error)
}

type accountService struct {
	users  repositories.UserRepository
	ledger UsageLedgerInterface
	oauth  *oauth2.Config
}

func NewAccountService(users repositories.UserRepository, ledger UsageLedgerInterface, oauth *oauth2.Config) AccountServiceInterface {
	return &accountService{
		users:  users,
		ledger: ledger,
		oauth:  oauth,
	}
}

func (a *accountService) Register(ctx context.Context, req request_models.SignUpRequest) (response_models.UserInfo, error) {
	existing, err := a.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return response_models.UserInfo{}, utils.ErrDatabaseError
	}
	if existing != nil {
		return response_models.UserInfo{}, utils.ErrEmailAlreadyExists
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return response_models.UserInfo{}, utils.ErrDatabaseError
	}

	user := &db_models.User{
		Email:          req.Email,
		Name:           req.DisplayName,
		PasswordHash:   hashed,
		Plan:           db_models.PlanFree,
		UsageResetDate: NextMonthStart(time.Now()),
	}

	if err := a.users.Insert(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response_models.UserInfo{}, utils.ErrEmailAlreadyExists
		}
		return response_models.UserInfo{}, utils.ErrDatabaseError
	}

	return ToUserInfo(user), nil
}

func (a *accountService) Login(ctx context.Context, req request_models.LoginRequest) (response_models.LoginResult, error) {
	user, err := a.users.FindByEmail(ctx, req.Email)
	if err != nil {
		return response_models.LoginResult{}, utils.ErrDatabaseError
	}
	if user == nil || user.PasswordHash == "" {
		return response_models.LoginResult{}, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(user.PasswordHash, req.Password); err != nil {
		return response_models.LoginResult{}, utils.ErrInvalidCredentials
	}

	token, err := utils.CreateToken(user.ID, user.Email)
	if err != nil {
		return response_models.LoginResult{}, utils.ErrInvalidCredentials
	}

	return response_models.LoginResult{Token: token, User: ToUserInfo(user)}, nil
}

func (a *accountService) GoogleAuthURL(state string) string {
	return a.oauth.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"))
}

func (a *accountService) HandleGoogleCallback(ctx context.Context, code string) (response_models.LoginResult, error) {
	token, err := a.oauth.Exchange(ctx, code)
	if err != nil {
		return response_models.LoginResult{}, fmt.Errorf("%w: oauth exchange: %v", utils.ErrUpstreamUnavailable, err)
	}

	svc, err := oauth2api.NewService(ctx, option.WithTokenSource(a.oauth.TokenSource(ctx, token)))
	if err != nil {
		return response_models.LoginResult{}, fmt.Errorf("%w: userinfo: %v", utils.ErrUpstreamUnavailable, err)
	}
	profile, err := svc.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return response_models.LoginResult{}, fmt.Errorf("%w: userinfo: %v", utils.ErrUpstreamUnavailable, err)
	}

	user, err := a.users.FindByGoogleID(ctx, profile.Id)
	if err != nil {
		return response_models.LoginResult{}, utils.ErrDatabaseError
	}

	if user == nil {
		googleID := profile.Id
		user = &db_models.User{
			Email:          profile.Email,
			Name:           profile.Name,
			GoogleID:       &googleID,
			Plan:           db_models.PlanFree,
			UsageResetDate: NextMonthStart(time.Now()),
		}
		if token.AccessToken != "" {
			user.GoogleAccessToken = &token.AccessToken
		}
		if token.RefreshToken != "" {
			user.GoogleRefreshToken = &token.RefreshToken
		}
		if err := a.users.Insert(ctx, user); err != nil {
			return response_models.LoginResult{}, utils.ErrDatabaseError
		}
	} else {
		user.Name = profile.Name
		user.Email = profile.Email
		if err := a.users.Update(ctx, user); err != nil {
			return response_models.LoginResult{}, utils.ErrDatabaseError
		}
		if err := a.users.SetGoogleTokens(ctx, user.ID, token.AccessToken, token.RefreshToken); err != nil {
			return response_models.LoginResult{}, utils.ErrDatabaseError
		}
	}

	sessionToken, err := utils.CreateToken(user.ID, user.Email)
	if err != nil {
		return response_models.LoginResult{}, utils.ErrDatabaseError
	}

	return response_models.LoginResult{Token: sessionToken, User: ToUserInfo(user)}, nil
}

func (a *accountService) UserInfo(ctx context.Context, userID uuid.UUID) (response_models.UserInfo, error) {
	user, err := a.users.FindByID(ctx, userID)
	if err != nil {
		return response_models.UserInfo{}, utils.ErrDatabaseError
	}
	if user == nil {
		return response_models.UserInfo{}, utils.ErrAccountNotFound
	}

	if err := a.ledger.EnsureCurrent(ctx, user); err != nil {
		return response_models.UserInfo{}, err
	}

	return ToUserInfo(user), nil
}

func ToUserInfo(user *db_models.User) response_models.UserInfo {
	return response_models.UserInfo{
		ID:              user.ID.String(),
		Email:           user.Email,
		Name:            user.Name,
		Plan:            string(user.Plan),
		UsageCount:      user.UsageCount,
		UsageLimit:      PlanCeiling(user.Plan),
		UsageResetDate:  user.UsageResetDate.UTC().Format(time.RFC3339),
		SheetsConnected: user.SheetsConnected,
		CreatedAt:       user.CreatedAt,
	}
}
