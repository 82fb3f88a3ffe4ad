package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/campuslib/library_management_app/internal/apperrors"
	"github.com/campuslib/library_management_app/internal/core/domain"
	portssvc "github.com/campuslib/library_management_app/internal/core/ports/services"
	"github.com/campuslib/library_management_app/internal/core/services"
	"github.com/campuslib/library_management_app/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ClearanceServiceTestSuite struct {
	suite.Suite
	mockClearanceRepo  *MockClearanceRepository
	mockUserRepo       *MockUserRepository
	mockDepartmentRepo *MockDepartmentRepository
	mockRenderer       *MockCertificateRenderer
	mockNotifier       *MockNotificationDispatcher
	service            portssvc.ClearanceSvcFacade

	departmentID string
	student      *domain.User
	hod          *domain.User
	admin        *domain.User
}

func (suite *ClearanceServiceTestSuite) SetupTest() {
	suite.mockClearanceRepo = new(MockClearanceRepository)
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockDepartmentRepo = new(MockDepartmentRepository)
	suite.mockRenderer = new(MockCertificateRenderer)
	suite.mockNotifier = new(MockNotificationDispatcher)
	suite.service = services.NewClearanceService(
		suite.mockClearanceRepo,
		suite.mockUserRepo,
		suite.mockDepartmentRepo,
		suite.mockRenderer,
		suite.mockNotifier,
	)

	suite.departmentID = uuid.NewString()
	suite.student = &domain.User{
		UserID:        uuid.NewString(),
		Name:          "Ayesha Khan",
		RollNumber:    "CS-2021-014",
		Email:         "ayesha@example.com",
		Role:          domain.RoleStudent,
		AccountStatus: domain.AccountActive,
		DepartmentID:  &suite.departmentID,
	}
	suite.hod = &domain.User{
		UserID: uuid.NewString(),
		Name:   "Dr. Farhan Iqbal",
		Email:  "farhan@example.com",
		Role:   domain.RoleHOD,
	}
	suite.admin = &domain.User{
		UserID: uuid.NewString(),
		Name:   "Saleem Raza",
		Email:  "saleem@example.com",
		Role:   domain.RoleAdmin,
	}
}

func (suite *ClearanceServiceTestSuite) department() *domain.Department {
	return &domain.Department{
		DepartmentID: suite.departmentID,
		Name:         "Computer Science",
		HODUserID:    &suite.hod.UserID,
	}
}

func (suite *ClearanceServiceTestSuite) pendingRequest() *domain.ClearanceRequest {
	return &domain.ClearanceRequest{
		RequestID:         uuid.NewString(),
		UserID:            suite.student.UserID,
		Type:              domain.ClearanceGraduation,
		LibrarianApproval: domain.ApprovalPending,
		HODApproval:       domain.ApprovalPending,
		Status:            domain.ApprovalPending,
	}
}

// --- SubmitRequest ---

func (suite *ClearanceServiceTestSuite) TestSubmitRequest_Success() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.student.UserID).Return(suite.student, nil).Once()
	suite.mockClearanceRepo.On("FindLatestRequestByUser", ctx, suite.student.UserID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockClearanceRepo.On("SaveRequest", ctx, mock.MatchedBy(func(r domain.ClearanceRequest) bool {
		return r.UserID == suite.student.UserID &&
			r.Type == domain.ClearanceGraduation &&
			r.LibrarianApproval == domain.ApprovalPending &&
			r.HODApproval == domain.ApprovalPending &&
			r.Status == domain.ApprovalPending
	})).Return(nil).Once()

	request, err := suite.service.SubmitRequest(ctx, suite.student.UserID, dto.SubmitClearanceRequest{Type: "Graduation"})

	suite.Require().NoError(err)
	suite.Require().NotNil(request)
	suite.NotEmpty(request.RequestID)
	suite.mockClearanceRepo.AssertExpectations(suite.T())
}

func (suite *ClearanceServiceTestSuite) TestSubmitRequest_ConflictsWhilePending() {
	ctx := context.Background()
	latest := suite.pendingRequest()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.student.UserID).Return(suite.student, nil).Once()
	suite.mockClearanceRepo.On("FindLatestRequestByUser", ctx, suite.student.UserID).Return(latest, nil).Once()

	request, err := suite.service.SubmitRequest(ctx, suite.student.UserID, dto.SubmitClearanceRequest{Type: "Graduation"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.Nil(request)
	suite.mockClearanceRepo.AssertNotCalled(suite.T(), "SaveRequest", mock.Anything, mock.Anything)
}

func (suite *ClearanceServiceTestSuite) TestSubmitRequest_ConflictsWhenApproved() {
	ctx := context.Background()
	latest := suite.pendingRequest()
	latest.LibrarianApproval = domain.ApprovalApproved
	latest.HODApproval = domain.ApprovalApproved
	latest.Status = domain.ApprovalApproved

	suite.mockUserRepo.On("FindUserByID", ctx, suite.student.UserID).Return(suite.student, nil).Once()
	suite.mockClearanceRepo.On("FindLatestRequestByUser", ctx, suite.student.UserID).Return(latest, nil).Once()

	_, err := suite.service.SubmitRequest(ctx, suite.student.UserID, dto.SubmitClearanceRequest{Type: "Transfer"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *ClearanceServiceTestSuite) TestSubmitRequest_AllowedAfterRejection() {
	ctx := context.Background()
	latest := suite.pendingRequest()
	latest.LibrarianApproval = domain.ApprovalRejected
	latest.Status = domain.ApprovalRejected
	latest.RejectedReason = "Books outstanding"

	suite.mockUserRepo.On("FindUserByID", ctx, suite.student.UserID).Return(suite.student, nil).Once()
	suite.mockClearanceRepo.On("FindLatestRequestByUser", ctx, suite.student.UserID).Return(latest, nil).Once()
	suite.mockClearanceRepo.On("SaveRequest", ctx, mock.AnythingOfType("domain.ClearanceRequest")).Return(nil).Once()

	request, err := suite.service.SubmitRequest(ctx, suite.student.UserID, dto.SubmitClearanceRequest{Type: "Graduation"})

	suite.Require().NoError(err)
	suite.NotNil(request)
	suite.mockClearanceRepo.AssertExpectations(suite.T())
}

func (suite *ClearanceServiceTestSuite) TestSubmitRequest_ForbiddenForStaff() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.admin.UserID).Return(suite.admin, nil).Once()

	_, err := suite.service.SubmitRequest(ctx, suite.admin.UserID, dto.SubmitClearanceRequest{Type: "Graduation"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- RecordDecision ---

func (suite *ClearanceServiceTestSuite) TestRecordDecision_ForbiddenRole() {
	ctx := context.Background()

	_, err := suite.service.RecordDecision(ctx, suite.student.UserID, domain.RoleStudent, dto.DecideClearanceRequest{
		ClearanceRequestID: uuid.NewString(),
		Status:             "Approved",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ClearanceServiceTestSuite) TestRecordDecision_RejectionRequiresReason() {
	ctx := context.Background()

	_, err := suite.service.RecordDecision(ctx, suite.admin.UserID, domain.RoleAdmin, dto.DecideClearanceRequest{
		ClearanceRequestID: uuid.NewString(),
		Status:             "Rejected",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockClearanceRepo.AssertNotCalled(suite.T(), "FindRequestByID", mock.Anything, mock.Anything)
}

func (suite *ClearanceServiceTestSuite) TestRecordDecision_TerminalRequestConflicts() {
	ctx := context.Background()
	request := suite.pendingRequest()
	request.LibrarianApproval = domain.ApprovalRejected
	request.Status = domain.ApprovalRejected

	suite.mockClearanceRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()

	_, err := suite.service.RecordDecision(ctx, suite.admin.UserID, domain.RoleAdmin, dto.DecideClearanceRequest{
		ClearanceRequestID: request.RequestID,
		Status:             "Approved",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *ClearanceServiceTestSuite) TestRecordDecision_PartialApprovalDoesNotFinalize() {
	ctx := context.Background()
	request := suite.pendingRequest()
	afterApproval := *request
	afterApproval.LibrarianApproval = domain.ApprovalApproved

	suite.mockClearanceRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.student.UserID).Return(suite.student, nil).Once()
	suite.mockClearanceRepo.On("RecordApproval", ctx, request.RequestID, domain.RoleAdmin, suite.admin.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockClearanceRepo.On("FindRequestByID", ctx, request.RequestID).Return(&afterApproval, nil).Once()

	updated, err := suite.service.RecordDecision(ctx, suite.admin.UserID, domain.RoleAdmin, dto.DecideClearanceRequest{
		ClearanceRequestID: request.RequestID,
		Status:             "Approved",
	})

	suite.Require().NoError(err)
	suite.Equal(domain.ApprovalApproved, updated.LibrarianApproval)
	suite.Equal(domain.ApprovalPending, updated.Status)
	suite.mockRenderer.AssertNotCalled(suite.T(), "Render", mock.Anything, mock.Anything)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "DisableAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClearanceServiceTestSuite) TestRecordDecision_RejectionNotifiesWithReason() {
	ctx := context.Background()
	request := suite.pendingRequest()
	rejected := *request
	rejected.HODApproval = domain.ApprovalRejected
	rejected.Status = domain.ApprovalRejected
	rejected.RejectedReason = "Two books still checked out"

	suite.mockClearanceRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.student.UserID).Return(suite.student, nil).Once()
	suite.mockDepartmentRepo.On("FindDepartmentByHOD", ctx, suite.hod.UserID).Return(suite.department(), nil).Once()
	suite.mockClearanceRepo.On("RecordRejection", ctx, request.RequestID, domain.RoleHOD, "Two books still checked out", suite.hod.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockClearanceRepo.On("FindRequestByID", ctx, request.RequestID).Return(&rejected, nil).Once()
	suite.mockNotifier.On("Send", ctx, suite.student.Email, mock.Anything, mock.MatchedBy(func(body string) bool {
		return len(body) > 0
	}), mock.Anything).Return(nil).Once()

	updated, err := suite.service.RecordDecision(ctx, suite.hod.UserID, domain.RoleHOD, dto.DecideClearanceRequest{
		ClearanceRequestID: request.RequestID,
		Status:             "Rejected",
		Reason:             "Two books still checked out",
	})

	suite.Require().NoError(err)
	suite.Equal(domain.ApprovalRejected, updated.Status)
	suite.Equal("Two books still checked out", updated.RejectedReason)
	suite.mockNotifier.AssertExpectations(suite.T())
	suite.mockRenderer.AssertNotCalled(suite.T(), "Render", mock.Anything, mock.Anything)
}

func (suite *ClearanceServiceTestSuite) TestRecordDecision_HODForOtherDepartmentForbidden() {
	ctx := context.Background()
	request := suite.pendingRequest()
	otherDept := &domain.Department{DepartmentID: uuid.NewString(), Name: "Physics"}

	suite.mockClearanceRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.student.UserID).Return(suite.student, nil).Once()
	suite.mockDepartmentRepo.On("FindDepartmentByHOD", ctx, suite.hod.UserID).Return(otherDept, nil).Once()

	_, err := suite.service.RecordDecision(ctx, suite.hod.UserID, domain.RoleHOD, dto.DecideClearanceRequest{
		ClearanceRequestID: request.RequestID,
		Status:             "Approved",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockClearanceRepo.AssertNotCalled(suite.T(), "RecordApproval", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClearanceServiceTestSuite) TestRecordDecision_FinalApprovalFinalizesOnce() {
	ctx := context.Background()
	request := suite.pendingRequest()
	request.LibrarianApproval = domain.ApprovalApproved

	bothApproved := *request
	bothApproved.HODApproval = domain.ApprovalApproved

	finalized := bothApproved
	finalized.Status = domain.ApprovalApproved
	finalized.PDFLink = "documents/" + request.RequestID + ".pdf"

	suite.mockClearanceRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.student.UserID).Return(suite.student, nil).Once()
	suite.mockDepartmentRepo.On("FindDepartmentByHOD", ctx, suite.hod.UserID).Return(suite.department(), nil).Once()
	suite.mockClearanceRepo.On("RecordApproval", ctx, request.RequestID, domain.RoleHOD, suite.hod.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockClearanceRepo.On("FindRequestByID", ctx, request.RequestID).Return(&bothApproved, nil).Once()

	// certificate data resolution
	suite.mockDepartmentRepo.On("FindDepartmentByID", ctx, suite.departmentID).Return(suite.department(), nil).Once()
	suite.mockUserRepo.On("FindFirstByRole", ctx, domain.RoleAdmin).Return(suite.admin, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.hod.UserID).Return(suite.hod, nil).Once()

	suite.mockRenderer.On("Render", ctx, mock.MatchedBy(func(data domain.CertificateData) bool {
		return data.RequestID == request.RequestID &&
			data.StudentName == suite.student.Name &&
			data.DepartmentName == "Computer Science" &&
			data.AdminName == suite.admin.Name &&
			data.HODName == suite.hod.Name
	})).Return(nil).Once()
	suite.mockClearanceRepo.On("SetPDFLink", ctx, request.RequestID, finalized.PDFLink, suite.hod.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockClearanceRepo.On("PromoteToApproved", ctx, request.RequestID, suite.hod.UserID, mock.AnythingOfType("time.Time")).Return(true, nil).Once()
	suite.mockUserRepo.On("DisableAccount", ctx, suite.student.UserID, suite.hod.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockNotifier.On("Send", ctx, suite.student.Email, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	suite.mockClearanceRepo.On("FindRequestByID", ctx, request.RequestID).Return(&finalized, nil).Once()

	final, err := suite.service.RecordDecision(ctx, suite.hod.UserID, domain.RoleHOD, dto.DecideClearanceRequest{
		ClearanceRequestID: request.RequestID,
		Status:             "Approved",
	})

	suite.Require().NoError(err)
	suite.Equal(domain.ApprovalApproved, final.Status)
	suite.Equal(finalized.PDFLink, final.PDFLink)
	suite.mockClearanceRepo.AssertExpectations(suite.T())
	suite.mockRenderer.AssertExpectations(suite.T())
	suite.mockNotifier.AssertExpectations(suite.T())
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *ClearanceServiceTestSuite) TestRecordDecision_RendererFailureAbortsFinalize() {
	ctx := context.Background()
	request := suite.pendingRequest()
	request.HODApproval = domain.ApprovalApproved

	bothApproved := *request
	bothApproved.LibrarianApproval = domain.ApprovalApproved

	suite.mockClearanceRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.student.UserID).Return(suite.student, nil).Once()
	suite.mockClearanceRepo.On("RecordApproval", ctx, request.RequestID, domain.RoleAdmin, suite.admin.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockClearanceRepo.On("FindRequestByID", ctx, request.RequestID).Return(&bothApproved, nil).Once()

	suite.mockDepartmentRepo.On("FindDepartmentByID", ctx, suite.departmentID).Return(suite.department(), nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.admin.UserID).Return(suite.admin, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.hod.UserID).Return(suite.hod, nil).Once()

	suite.mockRenderer.On("Render", ctx, mock.AnythingOfType("domain.CertificateData")).Return(assert.AnError).Once()

	_, err := suite.service.RecordDecision(ctx, suite.admin.UserID, domain.RoleAdmin, dto.DecideClearanceRequest{
		ClearanceRequestID: request.RequestID,
		Status:             "Approved",
	})

	suite.Require().Error(err)
	suite.mockClearanceRepo.AssertNotCalled(suite.T(), "SetPDFLink", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockClearanceRepo.AssertNotCalled(suite.T(), "PromoteToApproved", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "DisableAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockNotifier.AssertNotCalled(suite.T(), "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClearanceServiceTestSuite) TestRecordDecision_LostPromotionSkipsSideEffects() {
	ctx := context.Background()
	request := suite.pendingRequest()
	request.LibrarianApproval = domain.ApprovalApproved

	bothApproved := *request
	bothApproved.HODApproval = domain.ApprovalApproved

	finalized := bothApproved
	finalized.Status = domain.ApprovalApproved

	suite.mockClearanceRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.student.UserID).Return(suite.student, nil).Once()
	suite.mockDepartmentRepo.On("FindDepartmentByHOD", ctx, suite.hod.UserID).Return(suite.department(), nil).Once()
	suite.mockClearanceRepo.On("RecordApproval", ctx, request.RequestID, domain.RoleHOD, suite.hod.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockClearanceRepo.On("FindRequestByID", ctx, request.RequestID).Return(&bothApproved, nil).Once()

	suite.mockDepartmentRepo.On("FindDepartmentByID", ctx, suite.departmentID).Return(suite.department(), nil).Once()
	suite.mockUserRepo.On("FindFirstByRole", ctx, domain.RoleAdmin).Return(suite.admin, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.hod.UserID).Return(suite.hod, nil).Once()

	suite.mockRenderer.On("Render", ctx, mock.AnythingOfType("domain.CertificateData")).Return(nil).Once()
	suite.mockClearanceRepo.On("SetPDFLink", ctx, request.RequestID, mock.AnythingOfType("string"), suite.hod.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	// Another worker already promoted the request.
	suite.mockClearanceRepo.On("PromoteToApproved", ctx, request.RequestID, suite.hod.UserID, mock.AnythingOfType("time.Time")).Return(false, nil).Once()
	suite.mockClearanceRepo.On("FindRequestByID", ctx, request.RequestID).Return(&finalized, nil).Once()

	final, err := suite.service.RecordDecision(ctx, suite.hod.UserID, domain.RoleHOD, dto.DecideClearanceRequest{
		ClearanceRequestID: request.RequestID,
		Status:             "Approved",
	})

	suite.Require().NoError(err)
	suite.Equal(domain.ApprovalApproved, final.Status)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "DisableAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockNotifier.AssertNotCalled(suite.T(), "Send", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClearanceServiceTestSuite) TestRecordDecision_MissingLookupsRenderPlaceholders() {
	ctx := context.Background()
	orphan := &domain.User{
		UserID:        uuid.NewString(),
		Name:          "Bilal Ahmed",
		RollNumber:    "CS-2020-002",
		Email:         "bilal@example.com",
		Role:          domain.RoleStudent,
		AccountStatus: domain.AccountActive,
	}
	request := suite.pendingRequest()
	request.UserID = orphan.UserID
	request.HODApproval = domain.ApprovalApproved

	bothApproved := *request
	bothApproved.LibrarianApproval = domain.ApprovalApproved

	finalized := bothApproved
	finalized.Status = domain.ApprovalApproved
	finalized.PDFLink = "documents/" + request.RequestID + ".pdf"

	suite.mockClearanceRepo.On("FindRequestByID", ctx, request.RequestID).Return(request, nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, orphan.UserID).Return(orphan, nil).Once()
	suite.mockClearanceRepo.On("RecordApproval", ctx, request.RequestID, domain.RoleAdmin, suite.admin.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockClearanceRepo.On("FindRequestByID", ctx, request.RequestID).Return(&bothApproved, nil).Once()

	suite.mockUserRepo.On("FindUserByID", ctx, suite.admin.UserID).Return(suite.admin, nil).Once()

	// A student with no department still gets a complete form: unresolvable
	// names arrive at the renderer as the placeholder, never empty.
	suite.mockRenderer.On("Render", ctx, mock.MatchedBy(func(data domain.CertificateData) bool {
		return data.DepartmentName == "N/A" && data.HODName == "N/A" && data.AdminName == suite.admin.Name
	})).Return(nil).Once()
	suite.mockClearanceRepo.On("SetPDFLink", ctx, request.RequestID, finalized.PDFLink, suite.admin.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockClearanceRepo.On("PromoteToApproved", ctx, request.RequestID, suite.admin.UserID, mock.AnythingOfType("time.Time")).Return(true, nil).Once()
	suite.mockUserRepo.On("DisableAccount", ctx, orphan.UserID, suite.admin.UserID, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockNotifier.On("Send", ctx, orphan.Email, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()
	suite.mockClearanceRepo.On("FindRequestByID", ctx, request.RequestID).Return(&finalized, nil).Once()

	final, err := suite.service.RecordDecision(ctx, suite.admin.UserID, domain.RoleAdmin, dto.DecideClearanceRequest{
		ClearanceRequestID: request.RequestID,
		Status:             "Approved",
	})

	suite.Require().NoError(err)
	suite.Equal(domain.ApprovalApproved, final.Status)
	suite.mockRenderer.AssertExpectations(suite.T())
	suite.mockDepartmentRepo.AssertNotCalled(suite.T(), "FindDepartmentByID", mock.Anything, mock.Anything)
}

func (suite *ClearanceServiceTestSuite) TestRecordDecision_ConcurrentApprovalsFinalizeOnce() {
	ctx := context.Background()
	shared := suite.pendingRequest()
	reqID := shared.RequestID
	link := "documents/" + reqID + ".pdf"

	// The repo mocks mutate one shared record so whichever goroutine lands
	// second sees the first decision already recorded, as the database would.
	suite.mockClearanceRepo.On("FindRequestByID", ctx, reqID).Return(shared, nil)
	suite.mockUserRepo.On("FindUserByID", ctx, suite.student.UserID).Return(suite.student, nil)
	suite.mockDepartmentRepo.On("FindDepartmentByHOD", ctx, suite.hod.UserID).Return(suite.department(), nil)
	suite.mockClearanceRepo.On("RecordApproval", ctx, reqID, domain.RoleAdmin, suite.admin.UserID, mock.AnythingOfType("time.Time")).
		Run(func(mock.Arguments) { shared.LibrarianApproval = domain.ApprovalApproved }).Return(nil).Once()
	suite.mockClearanceRepo.On("RecordApproval", ctx, reqID, domain.RoleHOD, suite.hod.UserID, mock.AnythingOfType("time.Time")).
		Run(func(mock.Arguments) { shared.HODApproval = domain.ApprovalApproved }).Return(nil).Once()

	// Certificate lookups; either role can be the finalizer.
	suite.mockDepartmentRepo.On("FindDepartmentByID", ctx, suite.departmentID).Return(suite.department(), nil)
	suite.mockUserRepo.On("FindUserByID", ctx, suite.admin.UserID).Return(suite.admin, nil)
	suite.mockUserRepo.On("FindFirstByRole", ctx, domain.RoleAdmin).Return(suite.admin, nil)
	suite.mockUserRepo.On("FindUserByID", ctx, suite.hod.UserID).Return(suite.hod, nil)

	suite.mockRenderer.On("Render", ctx, mock.AnythingOfType("domain.CertificateData")).Return(nil).Once()
	suite.mockClearanceRepo.On("SetPDFLink", ctx, reqID, link, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Run(func(mock.Arguments) { shared.PDFLink = link }).Return(nil).Once()
	suite.mockClearanceRepo.On("PromoteToApproved", ctx, reqID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).
		Run(func(mock.Arguments) { shared.Status = domain.ApprovalApproved }).Return(true, nil).Once()
	suite.mockUserRepo.On("DisableAccount", ctx, suite.student.UserID, mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockNotifier.On("Send", ctx, suite.student.Email, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := suite.service.RecordDecision(ctx, suite.admin.UserID, domain.RoleAdmin, dto.DecideClearanceRequest{
			ClearanceRequestID: reqID,
			Status:             "Approved",
		})
		errs <- err
	}()
	go func() {
		defer wg.Done()
		_, err := suite.service.RecordDecision(ctx, suite.hod.UserID, domain.RoleHOD, dto.DecideClearanceRequest{
			ClearanceRequestID: reqID,
			Status:             "Approved",
		})
		errs <- err
	}()
	wg.Wait()
	close(errs)

	for err := range errs {
		suite.NoError(err)
	}
	suite.Equal(domain.ApprovalApproved, shared.Status)
	suite.mockRenderer.AssertNumberOfCalls(suite.T(), "Render", 1)
	suite.mockNotifier.AssertNumberOfCalls(suite.T(), "Send", 1)
	suite.mockClearanceRepo.AssertNumberOfCalls(suite.T(), "PromoteToApproved", 1)
	suite.mockUserRepo.AssertNumberOfCalls(suite.T(), "DisableAccount", 1)
}

// --- ListRequests ---

func (suite *ClearanceServiceTestSuite) TestListRequests_AdminFiltersLibrarianStatus() {
	ctx := context.Background()
	request := suite.pendingRequest()

	suite.mockClearanceRepo.On("FindRequestsByLibrarianStatus", ctx, domain.ApprovalPending, 10, 0).
		Return([]domain.ClearanceRequest{*request}, int64(1), nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.student.UserID).Return(suite.student, nil).Once()

	resp, err := suite.service.ListRequests(ctx, suite.admin.UserID, domain.RoleAdmin, dto.ListClearanceParams{
		Status: "Pending",
		Page:   1,
		Limit:  10,
	})

	suite.Require().NoError(err)
	suite.Len(resp.ClearanceRequests, 1)
	suite.Equal(int64(1), resp.TotalRecords)
	suite.Equal(1, resp.TotalPages)
	suite.Require().NotNil(resp.ClearanceRequests[0].Student)
	suite.Equal(suite.student.Name, resp.ClearanceRequests[0].Student.Name)
}

func (suite *ClearanceServiceTestSuite) TestListRequests_HODScopedToOwnDepartment() {
	ctx := context.Background()
	request := suite.pendingRequest()
	studentIDs := []string{suite.student.UserID}

	suite.mockDepartmentRepo.On("FindDepartmentByHOD", ctx, suite.hod.UserID).Return(suite.department(), nil).Once()
	suite.mockUserRepo.On("FindStudentIDsByDepartment", ctx, suite.departmentID).Return(studentIDs, nil).Once()
	suite.mockClearanceRepo.On("FindRequestsByHODStatus", ctx, domain.ApprovalPending, studentIDs, 10, 0).
		Return([]domain.ClearanceRequest{*request}, int64(1), nil).Once()
	suite.mockUserRepo.On("FindUserByID", ctx, suite.student.UserID).Return(suite.student, nil).Once()

	resp, err := suite.service.ListRequests(ctx, suite.hod.UserID, domain.RoleHOD, dto.ListClearanceParams{
		Status: "Pending",
		Page:   1,
		Limit:  10,
	})

	suite.Require().NoError(err)
	suite.Len(resp.ClearanceRequests, 1)
}

func (suite *ClearanceServiceTestSuite) TestListRequests_HODWithoutDepartmentSeesEmptyPage() {
	ctx := context.Background()

	suite.mockDepartmentRepo.On("FindDepartmentByHOD", ctx, suite.hod.UserID).Return(nil, apperrors.ErrNotFound).Once()

	resp, err := suite.service.ListRequests(ctx, suite.hod.UserID, domain.RoleHOD, dto.ListClearanceParams{
		Status: "Pending",
		Page:   1,
		Limit:  10,
	})

	suite.Require().NoError(err)
	suite.Empty(resp.ClearanceRequests)
	suite.Equal(int64(0), resp.TotalRecords)
	suite.mockClearanceRepo.AssertNotCalled(suite.T(), "FindRequestsByHODStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ClearanceServiceTestSuite) TestListRequests_StudentForbidden() {
	ctx := context.Background()

	_, err := suite.service.ListRequests(ctx, suite.student.UserID, domain.RoleStudent, dto.ListClearanceParams{
		Status: "Pending",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ClearanceServiceTestSuite) TestListOwnRequests() {
	ctx := context.Background()
	request := suite.pendingRequest()

	suite.mockClearanceRepo.On("FindRequestsByUser", ctx, suite.student.UserID).
		Return([]domain.ClearanceRequest{*request}, nil).Once()

	requests, err := suite.service.ListOwnRequests(ctx, suite.student.UserID)

	suite.Require().NoError(err)
	suite.Len(requests, 1)
}

func TestClearanceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ClearanceServiceTestSuite))
}
