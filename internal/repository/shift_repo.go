package repository

import (
	"errors"

	"go-pos-ws/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ShiftRepository interface {
	Create(shift *model.Shift) error
	Update(shift *model.Shift) error
	FindByID(id uuid.UUID) (*model.Shift, error)

	// FindActiveByUser returns the user's open shift, or nil when the
	// user has none. "No active shift" is a normal answer, not an error.
	FindActiveByUser(userID uuid.UUID) (*model.Shift, error)

	FindByUser(userID uuid.UUID) ([]model.Shift, error)

	// ApplySale menerima *gorm.DB (tx) agar bisa berjalan dalam transaksi
	ApplySale(tx *gorm.DB, shiftID uuid.UUID, total decimal.Decimal) error
}

type shiftRepo struct {
	db *gorm.DB
}

func NewShiftRepo(db *gorm.DB) ShiftRepository {
	return &shiftRepo{db}
}

func (r *shiftRepo) Create(shift *model.Shift) error {
	return r.db.Create(shift).Error
}

func (r *shiftRepo) Update(shift *model.Shift) error {
	return r.db.Save(shift).Error
}

func (r *shiftRepo) FindByID(id uuid.UUID) (*model.Shift, error) {
	var shift model.Shift
	if err := r.db.First(&shift, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepo) FindActiveByUser(userID uuid.UUID) (*model.Shift, error) {
	var shift model.Shift
	err := r.db.Where("user_id = ? AND status = ?", userID, model.ShiftOpen).First(&shift).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &shift, nil
}

func (r *shiftRepo) FindByUser(userID uuid.UUID) ([]model.Shift, error) {
	var shifts []model.Shift
	if err := r.db.Where("user_id = ?", userID).
		Order("start_time DESC").
		Find(&shifts).Error; err != nil {
		return nil, err
	}
	return shifts, nil
}

func (r *shiftRepo) ApplySale(tx *gorm.DB, shiftID uuid.UUID, total decimal.Decimal) error {
	return tx.Model(&model.Shift{}).
		Where("id = ?", shiftID).
		Updates(map[string]interface{}{
			"total_sales":       gorm.Expr("total_sales + ?", total),
			"transaction_count": gorm.Expr("transaction_count + ?", 1),
		}).Error
}
