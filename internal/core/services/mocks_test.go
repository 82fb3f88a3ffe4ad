package services_test

import (
	"context"
	"time"

	"github.com/campuslib/library_management_app/internal/core/domain"
	portsrepo "github.com/campuslib/library_management_app/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByRollNumber(ctx context.Context, rollNumber string) (*domain.User, error) {
	args := m.Called(ctx, rollNumber)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindFirstByRole(ctx context.Context, role domain.UserRole) (*domain.User, error) {
	args := m.Called(ctx, role)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUsersByRole(ctx context.Context, role domain.UserRole) ([]domain.User, error) {
	args := m.Called(ctx, role)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) FindStudents(ctx context.Context, filter portsrepo.StudentListFilter, limit, offset int) ([]domain.User, int64, error) {
	args := m.Called(ctx, filter, limit, offset)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Get(1).(int64), args.Error(2)
}

func (m *MockUserRepository) FindAllStudents(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	return users, args.Error(1)
}

func (m *MockUserRepository) FindStudentIDsByDepartment(ctx context.Context, departmentID string) ([]string, error) {
	args := m.Called(ctx, departmentID)
	var ids []string
	if args.Get(0) != nil {
		ids = args.Get(0).([]string)
	}
	return ids, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUserRole(ctx context.Context, userID string, role domain.UserRole, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, userID, role, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockUserRepository) DisableAccount(ctx context.Context, userID string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, userID, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockUserRepository) MarkUserDeleted(ctx context.Context, userID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, userID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Mock DepartmentRepository ---

type MockDepartmentRepository struct {
	mock.Mock
}

func (m *MockDepartmentRepository) FindDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error) {
	args := m.Called(ctx, departmentID)
	var dept *domain.Department
	if args.Get(0) != nil {
		dept = args.Get(0).(*domain.Department)
	}
	return dept, args.Error(1)
}

func (m *MockDepartmentRepository) FindDepartmentByName(ctx context.Context, name string) (*domain.Department, error) {
	args := m.Called(ctx, name)
	var dept *domain.Department
	if args.Get(0) != nil {
		dept = args.Get(0).(*domain.Department)
	}
	return dept, args.Error(1)
}

func (m *MockDepartmentRepository) FindDepartmentByHOD(ctx context.Context, hodUserID string) (*domain.Department, error) {
	args := m.Called(ctx, hodUserID)
	var dept *domain.Department
	if args.Get(0) != nil {
		dept = args.Get(0).(*domain.Department)
	}
	return dept, args.Error(1)
}

func (m *MockDepartmentRepository) FindDepartments(ctx context.Context, nameQuery string, limit, offset int) ([]domain.Department, int64, error) {
	args := m.Called(ctx, nameQuery, limit, offset)
	var depts []domain.Department
	if args.Get(0) != nil {
		depts = args.Get(0).([]domain.Department)
	}
	return depts, args.Get(1).(int64), args.Error(2)
}

func (m *MockDepartmentRepository) SaveDepartment(ctx context.Context, department domain.Department) error {
	args := m.Called(ctx, department)
	return args.Error(0)
}

func (m *MockDepartmentRepository) UpdateDepartment(ctx context.Context, department domain.Department) error {
	args := m.Called(ctx, department)
	return args.Error(0)
}

func (m *MockDepartmentRepository) ClearHODAssignments(ctx context.Context, hodUserID string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, hodUserID, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockDepartmentRepository) MarkDepartmentDeleted(ctx context.Context, departmentID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, departmentID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Mock BatchRepository ---

type MockBatchRepository struct {
	mock.Mock
}

func (m *MockBatchRepository) SaveBatch(ctx context.Context, batch domain.Batch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockBatchRepository) FindBatchByID(ctx context.Context, batchID string) (*domain.Batch, error) {
	args := m.Called(ctx, batchID)
	var batch *domain.Batch
	if args.Get(0) != nil {
		batch = args.Get(0).(*domain.Batch)
	}
	return batch, args.Error(1)
}

func (m *MockBatchRepository) FindBatchByName(ctx context.Context, name string) (*domain.Batch, error) {
	args := m.Called(ctx, name)
	var batch *domain.Batch
	if args.Get(0) != nil {
		batch = args.Get(0).(*domain.Batch)
	}
	return batch, args.Error(1)
}

func (m *MockBatchRepository) FindBatches(ctx context.Context, nameQuery string, limit, offset int) ([]domain.Batch, int64, error) {
	args := m.Called(ctx, nameQuery, limit, offset)
	var batches []domain.Batch
	if args.Get(0) != nil {
		batches = args.Get(0).([]domain.Batch)
	}
	return batches, args.Get(1).(int64), args.Error(2)
}

func (m *MockBatchRepository) UpdateBatch(ctx context.Context, batch domain.Batch) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}

func (m *MockBatchRepository) MarkBatchDeleted(ctx context.Context, batchID string, deletedAt time.Time, deletedBy string) error {
	args := m.Called(ctx, batchID, deletedAt, deletedBy)
	return args.Error(0)
}

// --- Mock ClearanceRepository ---

type MockClearanceRepository struct {
	mock.Mock
}

func (m *MockClearanceRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.ClearanceRequest, error) {
	args := m.Called(ctx, requestID)
	var request *domain.ClearanceRequest
	if args.Get(0) != nil {
		request = args.Get(0).(*domain.ClearanceRequest)
	}
	return request, args.Error(1)
}

func (m *MockClearanceRepository) FindLatestRequestByUser(ctx context.Context, userID string) (*domain.ClearanceRequest, error) {
	args := m.Called(ctx, userID)
	var request *domain.ClearanceRequest
	if args.Get(0) != nil {
		request = args.Get(0).(*domain.ClearanceRequest)
	}
	return request, args.Error(1)
}

func (m *MockClearanceRepository) FindRequestsByUser(ctx context.Context, userID string) ([]domain.ClearanceRequest, error) {
	args := m.Called(ctx, userID)
	var requests []domain.ClearanceRequest
	if args.Get(0) != nil {
		requests = args.Get(0).([]domain.ClearanceRequest)
	}
	return requests, args.Error(1)
}

func (m *MockClearanceRepository) FindRequestsByLibrarianStatus(ctx context.Context, status domain.ApprovalStatus, limit, offset int) ([]domain.ClearanceRequest, int64, error) {
	args := m.Called(ctx, status, limit, offset)
	var requests []domain.ClearanceRequest
	if args.Get(0) != nil {
		requests = args.Get(0).([]domain.ClearanceRequest)
	}
	return requests, args.Get(1).(int64), args.Error(2)
}

func (m *MockClearanceRepository) FindRequestsByHODStatus(ctx context.Context, status domain.ApprovalStatus, studentIDs []string, limit, offset int) ([]domain.ClearanceRequest, int64, error) {
	args := m.Called(ctx, status, studentIDs, limit, offset)
	var requests []domain.ClearanceRequest
	if args.Get(0) != nil {
		requests = args.Get(0).([]domain.ClearanceRequest)
	}
	return requests, args.Get(1).(int64), args.Error(2)
}

func (m *MockClearanceRepository) SaveRequest(ctx context.Context, request domain.ClearanceRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockClearanceRepository) RecordApproval(ctx context.Context, requestID string, role domain.UserRole, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, requestID, role, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockClearanceRepository) RecordRejection(ctx context.Context, requestID string, role domain.UserRole, reason string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, requestID, role, reason, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockClearanceRepository) PromoteToApproved(ctx context.Context, requestID string, updatedBy string, updatedAt time.Time) (bool, error) {
	args := m.Called(ctx, requestID, updatedBy, updatedAt)
	return args.Bool(0), args.Error(1)
}

func (m *MockClearanceRepository) SetPDFLink(ctx context.Context, requestID string, link string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, requestID, link, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock renderer and notifier ---

type MockCertificateRenderer struct {
	mock.Mock
}

func (m *MockCertificateRenderer) Render(ctx context.Context, data domain.CertificateData) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

type MockNotificationDispatcher struct {
	mock.Mock
}

func (m *MockNotificationDispatcher) Send(ctx context.Context, to, subject, textBody, htmlBody string) error {
	args := m.Called(ctx, to, subject, textBody, htmlBody)
	return args.Error(0)
}
