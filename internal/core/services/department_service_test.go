package services_test

import (
	"context"
	"testing"

	"github.com/campuslib/library_management_app/internal/apperrors"
	"github.com/campuslib/library_management_app/internal/core/domain"
	portssvc "github.com/campuslib/library_management_app/internal/core/ports/services"
	"github.com/campuslib/library_management_app/internal/core/services"
	"github.com/campuslib/library_management_app/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type DepartmentServiceTestSuite struct {
	suite.Suite
	mockDepartmentRepo *MockDepartmentRepository
	mockUserRepo       *MockUserRepository
	service            portssvc.DepartmentSvcFacade
}

func (suite *DepartmentServiceTestSuite) SetupTest() {
	suite.mockDepartmentRepo = new(MockDepartmentRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewDepartmentService(suite.mockDepartmentRepo, suite.mockUserRepo)
}

func (suite *DepartmentServiceTestSuite) TestCreateDepartment_PromotesTeacherToHOD() {
	ctx := context.Background()
	adminID := uuid.NewString()
	teacher := &domain.User{UserID: uuid.NewString(), Name: "Dr. Farhan Iqbal", Role: domain.RoleTeacher}
	req := dto.CreateDepartmentRequest{Name: "Computer Science", HODUserID: teacher.UserID}

	suite.mockDepartmentRepo.On("FindDepartmentByName", ctx, req.Name).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, teacher.UserID).Return(teacher, nil).Once()
	suite.mockDepartmentRepo.On("ClearHODAssignments", ctx, teacher.UserID, adminID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockUserRepo.On("UpdateUserRole", ctx, teacher.UserID, domain.RoleHOD, adminID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockDepartmentRepo.On("SaveDepartment", ctx, mock.MatchedBy(func(d domain.Department) bool {
		return d.Name == req.Name && d.HODUserID != nil && *d.HODUserID == teacher.UserID
	})).Return(nil).Once()

	department, err := suite.service.CreateDepartment(ctx, req, adminID)

	suite.Require().NoError(err)
	suite.Require().NotNil(department)
	suite.mockDepartmentRepo.AssertExpectations(suite.T())
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *DepartmentServiceTestSuite) TestCreateDepartment_RejectsStudentAsHOD() {
	ctx := context.Background()
	student := &domain.User{UserID: uuid.NewString(), Role: domain.RoleStudent}
	req := dto.CreateDepartmentRequest{Name: "Physics", HODUserID: student.UserID}

	suite.mockDepartmentRepo.On("FindDepartmentByName", ctx, req.Name).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, student.UserID).Return(student, nil).Once()

	_, err := suite.service.CreateDepartment(ctx, req, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockDepartmentRepo.AssertNotCalled(suite.T(), "SaveDepartment", mock.Anything, mock.Anything)
}

func (suite *DepartmentServiceTestSuite) TestCreateDepartment_DuplicateName() {
	ctx := context.Background()
	existing := &domain.Department{DepartmentID: uuid.NewString(), Name: "Computer Science"}

	suite.mockDepartmentRepo.On("FindDepartmentByName", ctx, existing.Name).Return(existing, nil).Once()

	_, err := suite.service.CreateDepartment(ctx, dto.CreateDepartmentRequest{
		Name:      existing.Name,
		HODUserID: uuid.NewString(),
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *DepartmentServiceTestSuite) TestUpdateDepartment_ChangingHODDemotesPrevious() {
	ctx := context.Background()
	adminID := uuid.NewString()
	previousHOD := uuid.NewString()
	newHOD := &domain.User{UserID: uuid.NewString(), Role: domain.RoleTeacher}
	department := &domain.Department{
		DepartmentID: uuid.NewString(),
		Name:         "Computer Science",
		HODUserID:    &previousHOD,
	}
	req := dto.UpdateDepartmentRequest{Name: department.Name, HODUserID: newHOD.UserID}

	suite.mockDepartmentRepo.On("FindDepartmentByID", ctx, department.DepartmentID).Return(department, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, newHOD.UserID).Return(newHOD, nil).Once()
	suite.mockDepartmentRepo.On("ClearHODAssignments", ctx, newHOD.UserID, adminID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockUserRepo.On("UpdateUserRole", ctx, newHOD.UserID, domain.RoleHOD, adminID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockDepartmentRepo.On("UpdateDepartment", ctx, mock.MatchedBy(func(d domain.Department) bool {
		return d.HODUserID != nil && *d.HODUserID == newHOD.UserID
	})).Return(nil).Once()
	// Previous head no longer leads any department and goes back to Teacher.
	suite.mockDepartmentRepo.On("FindDepartmentByHOD", ctx, previousHOD).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("UpdateUserRole", ctx, previousHOD, domain.RoleTeacher, adminID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.UpdateDepartment(ctx, department.DepartmentID, req, adminID)

	suite.Require().NoError(err)
	suite.Require().NotNil(updated)
	suite.Equal(newHOD.UserID, *updated.HODUserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
	suite.mockDepartmentRepo.AssertExpectations(suite.T())
}

func TestDepartmentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DepartmentServiceTestSuite))
}
