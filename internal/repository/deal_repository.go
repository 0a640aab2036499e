package repository

import (
	"errors"
	"strings"

	"github.com/partnerconnector/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DealRepository is the deal data access interface.
type DealRepository interface {
	WithTx(tx *gorm.DB) DealRepository

	GetByID(id uint) (*models.Deal, error)
	GetByIDForUpdate(id uint) (*models.Deal, error)
	GetByDealNo(dealNo string) (*models.Deal, error)
	Create(deal *models.Deal) error
	Update(deal *models.Deal) error
	UpdateFields(id uint, updates map[string]interface{}) error
	List(filter DealListFilter) ([]models.Deal, int64, error)
	CountByReferrer(referrerID uint) (int64, error)
}

// GormDealRepository is the GORM deal repository.
type GormDealRepository struct {
	db *gorm.DB
}

// NewDealRepository creates a deal repository.
func NewDealRepository(db *gorm.DB) *GormDealRepository {
	return &GormDealRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormDealRepository) WithTx(tx *gorm.DB) DealRepository {
	if tx == nil {
		return r
	}
	return &GormDealRepository{db: tx}
}

// GetByID fetches a deal by ID.
func (r *GormDealRepository) GetByID(id uint) (*models.Deal, error) {
	if id == 0 {
		return nil, nil
	}
	var deal models.Deal
	if err := r.db.Preload("Referrer").First(&deal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &deal, nil
}

// GetByIDForUpdate fetches a deal by ID with a row lock.
func (r *GormDealRepository) GetByIDForUpdate(id uint) (*models.Deal, error) {
	if id == 0 {
		return nil, nil
	}
	var deal models.Deal
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&deal, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &deal, nil
}

// GetByDealNo fetches a deal by its deal number.
func (r *GormDealRepository) GetByDealNo(dealNo string) (*models.Deal, error) {
	normalized := strings.TrimSpace(dealNo)
	if normalized == "" {
		return nil, nil
	}
	var deal models.Deal
	if err := r.db.Preload("Referrer").Where("deal_no = ?", normalized).First(&deal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &deal, nil
}

// Create creates a deal.
func (r *GormDealRepository) Create(deal *models.Deal) error {
	return r.db.Create(deal).Error
}

// Update persists a deal.
func (r *GormDealRepository) Update(deal *models.Deal) error {
	return r.db.Save(deal).Error
}

// UpdateFields updates selected deal columns.
func (r *GormDealRepository) UpdateFields(id uint, updates map[string]interface{}) error {
	if id == 0 || len(updates) == 0 {
		return nil
	}
	return r.db.Model(&models.Deal{}).Where("id = ?", id).Updates(updates).Error
}

// List queries the deal list.
func (r *GormDealRepository) List(filter DealListFilter) ([]models.Deal, int64, error) {
	query := r.db.Model(&models.Deal{}).Preload("Referrer")
	if filter.ReferrerID != 0 {
		query = query.Where("deals.referrer_id = ?", filter.ReferrerID)
	}
	if stage := strings.TrimSpace(filter.Stage); stage != "" {
		query = query.Where("deals.stage = ?", stage)
	}
	if dealNo := strings.TrimSpace(filter.DealNo); dealNo != "" {
		query = query.Where("deals.deal_no LIKE ?", "%"+dealNo+"%")
	}
	if keyword := strings.TrimSpace(filter.Keyword); keyword != "" {
		like := "%" + keyword + "%"
		query = query.Where("(deals.business_name LIKE ? OR deals.contact_name LIKE ? OR deals.contact_email LIKE ?)", like, like, like)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("deals.created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("deals.created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	query = applyPagination(query, filter.Page, filter.PageSize)

	var rows []models.Deal
	if err := query.Order("deals.id desc").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// CountByReferrer counts deals submitted by a partner.
func (r *GormDealRepository) CountByReferrer(referrerID uint) (int64, error) {
	if referrerID == 0 {
		return 0, nil
	}
	var total int64
	if err := r.db.Model(&models.Deal{}).Where("referrer_id = ?", referrerID).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}
