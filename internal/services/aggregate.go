package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/validator"
)

// lockStatus loads the caller's financial status and locks its row for the
// rest of the transaction, so concurrent entry writes against the same
// parent recompute one after another. SQLite ignores the lock clause and
// serializes writers on its own.
func lockStatus(tx *gorm.DB, userID string) (*models.FinancialStatus, error) {
	var status models.FinancialStatus
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&status).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFinancialStatusNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &status, nil
}

// recomputeAggregate sums the rule's column over every entry of status and
// writes the result into the rule's target column. No other column of the
// parent is touched. A total that no longer fits the target column is an
// input error on the contributing field.
func recomputeAggregate(tx *gorm.DB, status *models.FinancialStatus, rule models.Aggregate) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := tx.Table(rule.Table).
		Select(fmt.Sprintf("COALESCE(SUM(%s), 0)", rule.Column)).
		Where("financial_status_id = ?", status.ID).
		Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	total = total.Round(2)
	if total.GreaterThanOrEqual(validator.MaxMoney) {
		return decimal.Zero, apperrors.WithField(apperrors.ErrInvalidInput, rule.Column,
			fmt.Sprintf("%s would exceed the maximum %s", rule.Column, rule.Target))
	}

	if err := tx.Model(status).Update(rule.Target, total).Error; err != nil {
		return decimal.Zero, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	status.SetAggregate(rule.Target, total)
	return total, nil
}

// recomputeAll refreshes every aggregate of status.
func recomputeAll(tx *gorm.DB, status *models.FinancialStatus) error {
	for _, rule := range models.Aggregates {
		if _, err := recomputeAggregate(tx, status, rule); err != nil {
			return err
		}
	}
	return nil
}

// deleteStatusCascade removes a financial status and all of its entries.
func deleteStatusCascade(tx *gorm.DB, statusID string) error {
	for _, rule := range models.Aggregates {
		if err := tx.Exec(fmt.Sprintf("DELETE FROM %s WHERE financial_status_id = ?", rule.Table), statusID).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}
	if err := tx.Where("id = ?", statusID).Delete(&models.FinancialStatus{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}
