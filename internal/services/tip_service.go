package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/validator"
)

// tipService manages the financial tip catalogue.
type tipService struct {
	db *gorm.DB
}

// NewTipService creates a new TipServicer.
func NewTipService(db *gorm.DB) TipServicer {
	return &tipService{db: db}
}

// Create adds a tip to the catalogue.
func (s *tipService) Create(tip *models.FinancialTip) (*models.FinancialTip, error) {
	if err := validator.Struct(tip); err != nil {
		return nil, err
	}

	if err := s.db.Create(tip).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tip, nil
}

// List returns a page of tips, optionally restricted to one category.
func (s *tipService) List(page pagination.PageRequest, category *models.TipCategory) (*pagination.PageResponse[models.FinancialTip], error) {
	page.Defaults()

	base := s.db.Model(&models.FinancialTip{})
	if category != nil {
		base = base.Where("category = ?", *category)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var tips []models.FinancialTip
	if err := base.Order("created_at DESC").Scopes(pagination.Paginate(page)).Find(&tips).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(tips, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// Get returns a tip by ID.
func (s *tipService) Get(id string) (*models.FinancialTip, error) {
	var tip models.FinancialTip
	if err := s.db.Where("id = ?", id).First(&tip).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTipNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &tip, nil
}

// Update replaces the title, content and category of a tip.
func (s *tipService) Update(id string, tip *models.FinancialTip) (*models.FinancialTip, error) {
	if err := validator.Struct(tip); err != nil {
		return nil, err
	}

	existing, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"advice_title":   tip.Title,
		"advice_content": tip.Content,
		"category":       tip.Category,
	}
	if err := s.db.Model(existing).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return s.Get(id)
}

// Delete removes a tip.
func (s *tipService) Delete(id string) error {
	tip, err := s.Get(id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(tip).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
