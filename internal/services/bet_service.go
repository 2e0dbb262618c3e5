package services

import (
	"context"
	"log"
	"time"

	"bettrack/internal/models/db_models"
	"bettrack/internal/models/request_models"
	"bettrack/internal/models/response_models"
	"bettrack/internal/repositories"
	"bettrack/pkg/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type BetServiceInterface interface {
	// ProcessBet runs the full pipeline: quota check, extraction,
	// usage consumption, durable save, then a fire-and-forget sheet
	// sync that never affects the returned result.
	ProcessBet(ctx context.Context, userID uuid.UUID, req request_models.ProcessBetRequest) (response_models.ProcessBetResult, error)

	History(ctx context.Context, userID uuid.UUID, page, pageSize int) (response_models.HistoryPage, error)
}

type betService struct {
	users     repositories.UserRepository
	bets      repositories.BetRepository
	ledger    UsageLedgerInterface
	extractor ExtractionClientInterface
	sheets    SheetsServiceInterface

	syncTimeout time.Duration
	// test seam: observes the outcome of the async sheet sync
	afterSync func(err error)
}

func NewBetService(
	users repositories.UserRepository,
	bets repositories.BetRepository,
	ledger UsageLedgerInterface,
	extractor ExtractionClientInterface,
	sheets SheetsServiceInterface,
) BetServiceInterface {
	return &betService{
		users:       users,
		bets:        bets,
		ledger:      ledger,
		extractor:   extractor,
		sheets:      sheets,
		syncTimeout: 30 * time.Second,
	}
}

func (s *betService) ProcessBet(ctx context.Context, userID uuid.UUID, req request_models.ProcessBetRequest) (response_models.ProcessBetResult, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return response_models.ProcessBetResult{}, utils.ErrDatabaseError
	}
	if user == nil {
		return response_models.ProcessBetResult{}, utils.ErrAccountNotFound
	}

	// Roll the month over before judging the ceiling, otherwise a
	// request at the boundary is rejected that should have been reset.
	if err := s.ledger.EnsureCurrent(ctx, user); err != nil {
		return response_models.ProcessBetResult{}, err
	}
	if !Admit(*user) {
		return response_models.ProcessBetResult{}, utils.ErrQuotaExceeded
	}

	fields, raw, err := s.extractor.ExtractBetSlip(ctx, req.ImageData)
	if err != nil {
		return response_models.ProcessBetResult{}, err
	}

	if err := s.ledger.Consume(ctx, user); err != nil {
		return response_models.ProcessBetResult{}, err
	}

	bet := &db_models.Bet{
		UserID:          user.ID,
		Teams:           fields.Teams,
		Sport:           fields.Sport,
		League:          fields.League,
		BetType:         fields.BetType,
		Selection:       fields.Selection,
		Odds:            fields.Odds,
		Stake:           fields.Stake,
		PotentialReturn: fields.PotentialReturn,
		Bookmaker:       fields.Bookmaker,
		Status:          db_models.BetStatusPending,
		Date:            fields.Date,
		Confidence:      fields.Confidence,
		RawExtraction:   datatypes.JSON(raw),
		ProcessedAt:     time.Now().UTC(),
	}
	if err := s.bets.Insert(ctx, bet); err != nil {
		return response_models.ProcessBetResult{}, utils.ErrDatabaseError
	}

	// The bet is processed once persisted; the spreadsheet push must
	// not delay or fail this response.
	go s.syncAfterSave(*user, bet.ID, fields, bet.ProcessedAt)

	limit := PlanCeiling(user.Plan)
	return response_models.ProcessBetResult{
		Bet: toBetRecord(bet),
		Usage: response_models.UsageSnapshot{
			Count:     user.UsageCount,
			Limit:     limit,
			Remaining: limit - user.UsageCount,
		},
	}, nil
}

func (s *betService) syncAfterSave(user db_models.User, betID uuid.UUID, fields response_models.BetFields, processedAt time.Time) {
	if !user.SheetsConnected || user.SpreadsheetID == nil {
		if s.afterSync != nil {
			s.afterSync(nil)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.syncTimeout)
	defer cancel()

	err := s.sheets.Append(ctx, &user, fields, processedAt)
	if err != nil {
		log.Printf("Sheet sync failed for bet %s: %v", betID, err)
	} else if markErr := s.bets.MarkSynced(ctx, betID); markErr != nil {
		log.Printf("Failed to flag bet %s as synced: %v", betID, markErr)
	}

	if s.afterSync != nil {
		s.afterSync(err)
	}
}

func (s *betService) History(ctx context.Context, userID uuid.UUID, page, pageSize int) (response_models.HistoryPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > 100 {
		pageSize = 100
	}

	bets, total, err := s.bets.HistoryPage(ctx, userID, page, pageSize)
	if err != nil {
		return response_models.HistoryPage{}, utils.ErrDatabaseError
	}

	items := make([]response_models.BetRecord, 0, len(bets))
	for i := range bets {
		items = append(items, toBetRecord(&bets[i]))
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	return response_models.HistoryPage{
		Items:      items,
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

func toBetRecord(bet *db_models.Bet) response_models.BetRecord {
	return response_models.BetRecord{
		ID: bet.ID.String(),
		BetFields: response_models.BetFields{
			Teams:           bet.Teams,
			Sport:           bet.Sport,
			League:          bet.League,
			BetType:         bet.BetType,
			Selection:       bet.Selection,
			Odds:            bet.Odds,
			Stake:           bet.Stake,
			PotentialReturn: bet.PotentialReturn,
			Bookmaker:       bet.Bookmaker,
			Status:          string(bet.Status),
			Date:            bet.Date,
			Confidence:      bet.Confidence,
			Notes:           bet.Notes,
		},
		SyncedToSheets: bet.SyncedToSheets,
		ProcessedAt:    bet.ProcessedAt.UTC().Format(time.RFC3339),
	}
}
