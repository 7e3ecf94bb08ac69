package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/validator"
)

// entryModel is satisfied by pointers to the entry models.
type entryModel[T any] interface {
	*T
	models.Entry
}

// entryService handles the entries of a financial status. Writes lock the
// parent, persist the entry and recompute the parent aggregate in one
// transaction.
type entryService[T any, P entryModel[T]] struct {
	db *gorm.DB
}

// NewEntryService creates an EntryServicer for one entry model, for example
// NewEntryService[models.IncomeSource](db).
func NewEntryService[T any, P entryModel[T]](db *gorm.DB) EntryServicer[T] {
	return &entryService[T, P]{db: db}
}

// Create validates entry, attaches it to the user's financial status and
// recomputes the matching aggregate.
func (s *entryService[T, P]) Create(userID string, entry *T) (*T, error) {
	if err := prepareEntry(P(entry)); err != nil {
		return nil, err
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		status, err := lockStatus(tx, userID)
		if err != nil {
			return err
		}

		P(entry).SetFinancialStatusID(status.ID)
		if err := tx.Create(entry).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		_, err = recomputeAggregate(tx, status, P(entry).Aggregate())
		return err
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// List returns a page of the user's entries, oldest first.
func (s *entryService[T, P]) List(userID string, page pagination.PageRequest) (*pagination.PageResponse[T], error) {
	page.Defaults()

	status, err := s.status(userID)
	if err != nil {
		return nil, err
	}

	var totalItems int64
	base := s.db.Model(new(T)).Where("financial_status_id = ?", status.ID)
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var entries []T
	if err := base.Order("created_at ASC, id ASC").Scopes(pagination.Paginate(page)).Find(&entries).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(entries, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// Get returns a single entry if it belongs to the user's financial status.
func (s *entryService[T, P]) Get(userID, entryID string) (*T, error) {
	status, err := s.status(userID)
	if err != nil {
		return nil, err
	}
	return findEntry[T](s.db, status.ID, entryID)
}

// Update replaces the user-editable fields of an entry and recomputes the
// matching aggregate.
func (s *entryService[T, P]) Update(userID, entryID string, entry *T) (*T, error) {
	if err := prepareEntry(P(entry)); err != nil {
		return nil, err
	}

	var updated *T
	err := s.db.Transaction(func(tx *gorm.DB) error {
		status, err := lockStatus(tx, userID)
		if err != nil {
			return err
		}

		existing, err := findEntry[T](tx, status.ID, entryID)
		if err != nil {
			return err
		}

		err = tx.Model(existing).
			Select("*").
			Omit("ID", "CreatedAt", "FinancialStatusID").
			Updates(entry).Error
		if err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		if _, err := recomputeAggregate(tx, status, P(existing).Aggregate()); err != nil {
			return err
		}

		updated, err = findEntry[T](tx, status.ID, entryID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes an entry and recomputes the matching aggregate, so the
// parent total never overstates what is left.
func (s *entryService[T, P]) Delete(userID, entryID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		status, err := lockStatus(tx, userID)
		if err != nil {
			return err
		}

		existing, err := findEntry[T](tx, status.ID, entryID)
		if err != nil {
			return err
		}

		if err := tx.Delete(existing).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		_, err = recomputeAggregate(tx, status, P(existing).Aggregate())
		return err
	})
}

func (s *entryService[T, P]) status(userID string) (*models.FinancialStatus, error) {
	var status models.FinancialStatus
	if err := s.db.Where("user_id = ?", userID).First(&status).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFinancialStatusNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &status, nil
}

func findEntry[T any](db *gorm.DB, statusID, entryID string) (*T, error) {
	entry := new(T)
	if err := db.Where("id = ? AND financial_status_id = ?", entryID, statusID).First(entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrEntryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return entry, nil
}

// prepareEntry fills defaults and validates an entry before it reaches the
// database.
func prepareEntry(entry models.Entry) error {
	if d, ok := entry.(models.Defaulter); ok {
		d.ApplyDefaults()
	}
	return validator.Struct(entry)
}
