package models

// FinancialTip is a piece of reference advice. It is not tied to any user.
type FinancialTip struct {
	Base
	Title    string      `gorm:"column:advice_title;size:500;not null" json:"advice_title" validate:"required,max=500"`
	Content  string      `gorm:"column:advice_content;type:text" json:"advice_content" validate:"max=10000"`
	Category TipCategory `gorm:"size:500;not null;index" json:"category" validate:"tip_category"`
}
