package service

import (
	"errors"
	"time"

	"go-pos-ws/internal/model"
	"go-pos-ws/internal/repository"
	"go-pos-ws/internal/ws"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ShiftService owns the open -> closed lifecycle. A closed shift is
// terminal; resuming work means opening a new one.
type ShiftService interface {
	OpenShift(userID uuid.UUID, startCash decimal.Decimal) (*model.Shift, error)
	GetActiveShift(userID uuid.UUID) (*model.Shift, error)
	GetUserShifts(userID uuid.UUID) ([]model.Shift, error)
	CloseShift(shiftID uuid.UUID, endCash decimal.Decimal, requesterID uuid.UUID) (*model.Shift, error)
}

type shiftService struct {
	shiftRepo repository.ShiftRepository
	wsHub     *ws.Hub
}

func NewShiftService(shiftRepo repository.ShiftRepository, hub *ws.Hub) ShiftService {
	return &shiftService{
		shiftRepo: shiftRepo,
		wsHub:     hub,
	}
}

func (s *shiftService) OpenShift(userID uuid.UUID, startCash decimal.Decimal) (*model.Shift, error) {
	// One open shift per user at any time
	existing, err := s.shiftRepo.FindActiveByUser(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrOpenShiftExists
	}

	shift := &model.Shift{
		UserID:           userID,
		StartTime:        time.Now(),
		StartCash:        startCash,
		TotalSales:       decimal.Zero,
		TransactionCount: 0,
		Status:           model.ShiftOpen,
	}

	if err := s.shiftRepo.Create(shift); err != nil {
		return nil, err
	}

	if s.wsHub != nil {
		go s.wsHub.BroadcastEvent("shift_opened", shift)
	}

	return shift, nil
}

func (s *shiftService) GetActiveShift(userID uuid.UUID) (*model.Shift, error) {
	return s.shiftRepo.FindActiveByUser(userID)
}

func (s *shiftService) GetUserShifts(userID uuid.UUID) ([]model.Shift, error) {
	return s.shiftRepo.FindByUser(userID)
}

func (s *shiftService) CloseShift(shiftID uuid.UUID, endCash decimal.Decimal, requesterID uuid.UUID) (*model.Shift, error) {
	shift, err := s.shiftRepo.FindByID(shiftID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShiftNotFound
		}
		return nil, err
	}

	if shift.UserID != requesterID {
		return nil, ErrShiftNotOwned
	}
	if !shift.IsOpen() {
		return nil, ErrShiftClosed
	}

	// End cash is recorded as counted. Any discrepancy against
	// start_cash + total_sales is informational and never blocks closing.
	now := time.Now()
	shift.Status = model.ShiftClosed
	shift.EndTime = &now
	shift.EndCash = &endCash

	if err := s.shiftRepo.Update(shift); err != nil {
		return nil, err
	}

	if s.wsHub != nil {
		go s.wsHub.BroadcastEvent("shift_closed", shift)
	}

	return shift, nil
}
