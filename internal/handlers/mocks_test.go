package handlers

import (
	"github.com/shopspring/decimal"

	"fintrack/internal/models"
	"fintrack/internal/pagination"
	"fintrack/internal/services"
)

// --- mock services ---

type mockUserService struct {
	createUserFn      func(email, firstName, lastName, password string) (*models.User, error)
	createSuperuserFn func(email, firstName, lastName, password string) (*models.User, error)
	authenticateFn    func(email, password string) (*models.User, error)
	getUserByEmailFn  func(email string) (*models.User, error)
	getUserByIDFn     func(id string) (*models.User, error)
	listUsersFn       func(page pagination.PageRequest) (*pagination.PageResponse[models.User], error)
	setActiveFn       func(id string, active bool) (*models.User, error)
	setTwoFactorFn    func(id string, enabled bool) (*models.User, error)
	deleteUserFn      func(id string) error
}

func (m *mockUserService) CreateUser(email, firstName, lastName, password string) (*models.User, error) {
	if m.createUserFn != nil {
		return m.createUserFn(email, firstName, lastName, password)
	}
	return &models.User{}, nil
}

func (m *mockUserService) CreateSuperuser(email, firstName, lastName, password string) (*models.User, error) {
	if m.createSuperuserFn != nil {
		return m.createSuperuserFn(email, firstName, lastName, password)
	}
	return &models.User{}, nil
}

func (m *mockUserService) Authenticate(email, password string) (*models.User, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(email, password)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByEmail(email string) (*models.User, error) {
	if m.getUserByEmailFn != nil {
		return m.getUserByEmailFn(email)
	}
	return &models.User{}, nil
}

func (m *mockUserService) GetUserByID(id string) (*models.User, error) {
	if m.getUserByIDFn != nil {
		return m.getUserByIDFn(id)
	}
	return &models.User{}, nil
}

func (m *mockUserService) ListUsers(page pagination.PageRequest) (*pagination.PageResponse[models.User], error) {
	if m.listUsersFn != nil {
		return m.listUsersFn(page)
	}
	result := pagination.NewPageResponse[models.User](nil, 1, 20, 0)
	return &result, nil
}

func (m *mockUserService) SetActive(id string, active bool) (*models.User, error) {
	if m.setActiveFn != nil {
		return m.setActiveFn(id, active)
	}
	return &models.User{}, nil
}

func (m *mockUserService) SetTwoFactor(id string, enabled bool) (*models.User, error) {
	if m.setTwoFactorFn != nil {
		return m.setTwoFactorFn(id, enabled)
	}
	return &models.User{}, nil
}

func (m *mockUserService) DeleteUser(id string) error {
	if m.deleteUserFn != nil {
		return m.deleteUserFn(id)
	}
	return nil
}

func (m *mockUserService) VerifyPassword(_ *models.User, _ string) bool { return true }

type mockFinancialStatusService struct {
	createFn      func(userID string, grossSalary decimal.Decimal) (*models.FinancialStatus, error)
	getForUserFn  func(userID string) (*models.FinancialStatus, error)
	updateFn      func(userID string, grossSalary decimal.Decimal) (*models.FinancialStatus, error)
	recalculateFn func(userID string) (*models.FinancialStatus, error)
	summaryFn     func(userID string) (*services.FinancialSummary, error)
	deleteFn      func(userID string) error
}

func (m *mockFinancialStatusService) Create(userID string, grossSalary decimal.Decimal) (*models.FinancialStatus, error) {
	if m.createFn != nil {
		return m.createFn(userID, grossSalary)
	}
	return &models.FinancialStatus{UserID: userID, GrossSalary: grossSalary}, nil
}

func (m *mockFinancialStatusService) GetForUser(userID string) (*models.FinancialStatus, error) {
	if m.getForUserFn != nil {
		return m.getForUserFn(userID)
	}
	return &models.FinancialStatus{UserID: userID}, nil
}

func (m *mockFinancialStatusService) UpdateGrossSalary(userID string, grossSalary decimal.Decimal) (*models.FinancialStatus, error) {
	if m.updateFn != nil {
		return m.updateFn(userID, grossSalary)
	}
	return &models.FinancialStatus{UserID: userID, GrossSalary: grossSalary}, nil
}

func (m *mockFinancialStatusService) Recalculate(userID string) (*models.FinancialStatus, error) {
	if m.recalculateFn != nil {
		return m.recalculateFn(userID)
	}
	return &models.FinancialStatus{UserID: userID}, nil
}

func (m *mockFinancialStatusService) Summary(userID string) (*services.FinancialSummary, error) {
	if m.summaryFn != nil {
		return m.summaryFn(userID)
	}
	return &services.FinancialSummary{Status: &models.FinancialStatus{UserID: userID}}, nil
}

func (m *mockFinancialStatusService) Delete(userID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(userID)
	}
	return nil
}

type mockEntryService[T any] struct {
	createFn func(userID string, entry *T) (*T, error)
	listFn   func(userID string, page pagination.PageRequest) (*pagination.PageResponse[T], error)
	getFn    func(userID, entryID string) (*T, error)
	updateFn func(userID, entryID string, entry *T) (*T, error)
	deleteFn func(userID, entryID string) error
}

func (m *mockEntryService[T]) Create(userID string, entry *T) (*T, error) {
	if m.createFn != nil {
		return m.createFn(userID, entry)
	}
	return entry, nil
}

func (m *mockEntryService[T]) List(userID string, page pagination.PageRequest) (*pagination.PageResponse[T], error) {
	if m.listFn != nil {
		return m.listFn(userID, page)
	}
	result := pagination.NewPageResponse[T](nil, 1, 20, 0)
	return &result, nil
}

func (m *mockEntryService[T]) Get(userID, entryID string) (*T, error) {
	if m.getFn != nil {
		return m.getFn(userID, entryID)
	}
	return new(T), nil
}

func (m *mockEntryService[T]) Update(userID, entryID string, entry *T) (*T, error) {
	if m.updateFn != nil {
		return m.updateFn(userID, entryID, entry)
	}
	return entry, nil
}

func (m *mockEntryService[T]) Delete(userID, entryID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(userID, entryID)
	}
	return nil
}

type mockTipService struct {
	createFn func(tip *models.FinancialTip) (*models.FinancialTip, error)
	listFn   func(page pagination.PageRequest, category *models.TipCategory) (*pagination.PageResponse[models.FinancialTip], error)
	getFn    func(id string) (*models.FinancialTip, error)
	updateFn func(id string, tip *models.FinancialTip) (*models.FinancialTip, error)
	deleteFn func(id string) error
}

func (m *mockTipService) Create(tip *models.FinancialTip) (*models.FinancialTip, error) {
	if m.createFn != nil {
		return m.createFn(tip)
	}
	return tip, nil
}

func (m *mockTipService) List(page pagination.PageRequest, category *models.TipCategory) (*pagination.PageResponse[models.FinancialTip], error) {
	if m.listFn != nil {
		return m.listFn(page, category)
	}
	result := pagination.NewPageResponse[models.FinancialTip](nil, 1, 20, 0)
	return &result, nil
}

func (m *mockTipService) Get(id string) (*models.FinancialTip, error) {
	if m.getFn != nil {
		return m.getFn(id)
	}
	return &models.FinancialTip{}, nil
}

func (m *mockTipService) Update(id string, tip *models.FinancialTip) (*models.FinancialTip, error) {
	if m.updateFn != nil {
		return m.updateFn(id, tip)
	}
	return tip, nil
}

func (m *mockTipService) Delete(id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(id)
	}
	return nil
}

type auditCall struct {
	userID, action, resourceType, resourceID string
}

type mockAuditService struct {
	calls []auditCall
}

func (m *mockAuditService) Log(userID, action, resourceType, resourceID, _ string, _ map[string]any) {
	m.calls = append(m.calls, auditCall{userID, action, resourceType, resourceID})
}
