package repository

import (
	"errors"
	"strings"

	"github.com/partnerconnector/internal/constants"
	"github.com/partnerconnector/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommissionRepository is the commission payment data access interface.
type CommissionRepository interface {
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) CommissionRepository

	GetPaymentByID(id uint) (*models.CommissionPayment, error)
	GetPaymentByIDForUpdate(id uint) (*models.CommissionPayment, error)
	GetAnchorPaymentByDeal(dealID uint) (*models.CommissionPayment, error)
	ListPaymentsByDeal(dealID uint) ([]models.CommissionPayment, error)
	CountActivePaymentsByDeal(dealID uint) (int64, error)
	CreatePayment(payment *models.CommissionPayment) error
	CreatePayments(payments []models.CommissionPayment) error
	UpdatePayment(payment *models.CommissionPayment) error
	ListPayments(filter PaymentListFilter) ([]models.CommissionPayment, int64, error)

	CreateSplits(splits []models.PaymentSplit) error
	ListSplitsByPayment(paymentID uint) ([]models.PaymentSplit, error)
	ListSplitsByPaymentForUpdate(paymentID uint) ([]models.PaymentSplit, error)
	HasSplitsByPayment(paymentID uint) (bool, error)
	CountSplitsByDeal(dealID uint) (int64, error)
	UpdateSplitStatusByPayment(paymentID uint, fromStatus, toStatus string) (int64, error)
	DeleteSplitsByPayment(paymentID uint) (int64, error)
	ListSplits(filter SplitListFilter) ([]models.PaymentSplit, int64, error)

	CreateAuditLog(entry *models.CommissionAuditLog) error
	ListAuditLogs(filter AuditLogListFilter) ([]models.CommissionAuditLog, int64, error)
}

// GormCommissionRepository is the GORM commission repository.
type GormCommissionRepository struct {
	db *gorm.DB
}

// NewCommissionRepository creates a commission repository.
func NewCommissionRepository(db *gorm.DB) *GormCommissionRepository {
	return &GormCommissionRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormCommissionRepository) WithTx(tx *gorm.DB) CommissionRepository {
	if tx == nil {
		return r
	}
	return &GormCommissionRepository{db: tx}
}

// Transaction runs fn inside a database transaction.
func (r *GormCommissionRepository) Transaction(fn func(tx *gorm.DB) error) error {
	if fn == nil {
		return nil
	}
	return r.db.Transaction(fn)
}

// GetPaymentByID fetches a payment by ID.
func (r *GormCommissionRepository) GetPaymentByID(id uint) (*models.CommissionPayment, error) {
	if id == 0 {
		return nil, nil
	}
	var payment models.CommissionPayment
	if err := r.db.Preload("Recipient").First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

// GetPaymentByIDForUpdate fetches a payment by ID with a row lock.
func (r *GormCommissionRepository) GetPaymentByIDForUpdate(id uint) (*models.CommissionPayment, error) {
	if id == 0 {
		return nil, nil
	}
	var payment models.CommissionPayment
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&payment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

// GetAnchorPaymentByDeal fetches the deal's level-0 payment record. Rejected
// records are history, not anchors.
func (r *GormCommissionRepository) GetAnchorPaymentByDeal(dealID uint) (*models.CommissionPayment, error) {
	if dealID == 0 {
		return nil, nil
	}
	var payment models.CommissionPayment
	if err := r.db.Where("deal_id = ? AND level = 0 AND approval_status <> ?", dealID, constants.ApprovalStatusRejected).
		Order("id asc").
		First(&payment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

// ListPaymentsByDeal fetches all payment records of a deal.
func (r *GormCommissionRepository) ListPaymentsByDeal(dealID uint) ([]models.CommissionPayment, error) {
	if dealID == 0 {
		return []models.CommissionPayment{}, nil
	}
	var rows []models.CommissionPayment
	if err := r.db.Where("deal_id = ?", dealID).Order("level asc, id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CountActivePaymentsByDeal counts non-rejected payment records of a deal.
func (r *GormCommissionRepository) CountActivePaymentsByDeal(dealID uint) (int64, error) {
	if dealID == 0 {
		return 0, nil
	}
	var total int64
	if err := r.db.Model(&models.CommissionPayment{}).
		Where("deal_id = ? AND approval_status <> ?", dealID, constants.ApprovalStatusRejected).
		Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// CreatePayment creates a payment record.
func (r *GormCommissionRepository) CreatePayment(payment *models.CommissionPayment) error {
	return r.db.Create(payment).Error
}

// CreatePayments creates payment records in one batch.
func (r *GormCommissionRepository) CreatePayments(payments []models.CommissionPayment) error {
	if len(payments) == 0 {
		return nil
	}
	return r.db.Create(&payments).Error
}

// UpdatePayment persists a payment record.
func (r *GormCommissionRepository) UpdatePayment(payment *models.CommissionPayment) error {
	return r.db.Save(payment).Error
}

// ListPayments queries the payment list.
func (r *GormCommissionRepository) ListPayments(filter PaymentListFilter) ([]models.CommissionPayment, int64, error) {
	query := r.db.Model(&models.CommissionPayment{}).Preload("Recipient").Preload("Deal")
	if filter.DealID != 0 {
		query = query.Where("commission_payments.deal_id = ?", filter.DealID)
	}
	if filter.RecipientID != 0 {
		query = query.Where("commission_payments.recipient_id = ?", filter.RecipientID)
	}
	if status := strings.TrimSpace(filter.ApprovalStatus); status != "" {
		query = query.Where("commission_payments.approval_status = ?", status)
	}
	if status := strings.TrimSpace(filter.PaymentStatus); status != "" {
		query = query.Where("commission_payments.payment_status = ?", status)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("commission_payments.created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("commission_payments.created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var rows []models.CommissionPayment
	if err := query.Order("commission_payments.id desc").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// CreateSplits creates split rows in one batch.
func (r *GormCommissionRepository) CreateSplits(splits []models.PaymentSplit) error {
	if len(splits) == 0 {
		return nil
	}
	return r.db.Create(&splits).Error
}

// ListSplitsByPayment fetches the splits of a payment, level ascending.
func (r *GormCommissionRepository) ListSplitsByPayment(paymentID uint) ([]models.PaymentSplit, error) {
	if paymentID == 0 {
		return []models.PaymentSplit{}, nil
	}
	var rows []models.PaymentSplit
	if err := r.db.Where("payment_id = ?", paymentID).Order("level asc, id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListSplitsByPaymentForUpdate fetches and locks the splits of a payment.
func (r *GormCommissionRepository) ListSplitsByPaymentForUpdate(paymentID uint) ([]models.PaymentSplit, error) {
	if paymentID == 0 {
		return []models.PaymentSplit{}, nil
	}
	var rows []models.PaymentSplit
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("payment_id = ?", paymentID).
		Order("level asc, id asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// HasSplitsByPayment reports whether any split rows exist for a payment.
func (r *GormCommissionRepository) HasSplitsByPayment(paymentID uint) (bool, error) {
	if paymentID == 0 {
		return false, nil
	}
	var total int64
	if err := r.db.Model(&models.PaymentSplit{}).Where("payment_id = ?", paymentID).Count(&total).Error; err != nil {
		return false, err
	}
	return total > 0, nil
}

// CountSplitsByDeal counts split rows of a deal.
func (r *GormCommissionRepository) CountSplitsByDeal(dealID uint) (int64, error) {
	if dealID == 0 {
		return 0, nil
	}
	var total int64
	if err := r.db.Model(&models.PaymentSplit{}).Where("deal_id = ?", dealID).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// UpdateSplitStatusByPayment moves all splits of a payment from one status to another.
func (r *GormCommissionRepository) UpdateSplitStatusByPayment(paymentID uint, fromStatus, toStatus string) (int64, error) {
	if paymentID == 0 {
		return 0, nil
	}
	result := r.db.Model(&models.PaymentSplit{}).
		Where("payment_id = ? AND status = ?", paymentID, fromStatus).
		Update("status", toStatus)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// DeleteSplitsByPayment removes all split rows of a payment. Used when a
// pending payout is rejected so the deal can be distributed again.
func (r *GormCommissionRepository) DeleteSplitsByPayment(paymentID uint) (int64, error) {
	if paymentID == 0 {
		return 0, nil
	}
	result := r.db.Where("payment_id = ?", paymentID).Delete(&models.PaymentSplit{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ListSplits queries the split list.
func (r *GormCommissionRepository) ListSplits(filter SplitListFilter) ([]models.PaymentSplit, int64, error) {
	query := r.db.Model(&models.PaymentSplit{}).Preload("Beneficiary")
	if filter.PaymentID != 0 {
		query = query.Where("payment_splits.payment_id = ?", filter.PaymentID)
	}
	if filter.DealID != 0 {
		query = query.Where("payment_splits.deal_id = ?", filter.DealID)
	}
	if filter.BeneficiaryUserID != 0 {
		query = query.Where("payment_splits.beneficiary_user_id = ?", filter.BeneficiaryUserID)
	}
	if status := strings.TrimSpace(filter.Status); status != "" {
		query = query.Where("payment_splits.status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var rows []models.PaymentSplit
	if err := query.Order("payment_splits.level asc, payment_splits.id asc").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// CreateAuditLog creates a commission audit entry.
func (r *GormCommissionRepository) CreateAuditLog(entry *models.CommissionAuditLog) error {
	return r.db.Create(entry).Error
}

// ListAuditLogs queries the audit log list.
func (r *GormCommissionRepository) ListAuditLogs(filter AuditLogListFilter) ([]models.CommissionAuditLog, int64, error) {
	query := r.db.Model(&models.CommissionAuditLog{})
	if filter.DealID != 0 {
		query = query.Where("deal_id = ?", filter.DealID)
	}
	if filter.PaymentID != 0 {
		query = query.Where("payment_id = ?", filter.PaymentID)
	}
	if filter.ActorAdminID != 0 {
		query = query.Where("actor_admin_id = ?", filter.ActorAdminID)
	}
	if action := strings.TrimSpace(filter.Action); action != "" {
		query = query.Where("action = ?", action)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var rows []models.CommissionAuditLog
	if err := query.Order("id desc").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
