package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/campuslib/library_management_app/internal/apperrors"
	"github.com/campuslib/library_management_app/internal/core/domain"
	portsrepo "github.com/campuslib/library_management_app/internal/core/ports/repositories"
	portssvc "github.com/campuslib/library_management_app/internal/core/ports/services"
	"github.com/campuslib/library_management_app/internal/dto"
	"github.com/campuslib/library_management_app/internal/platform/email"
	"github.com/campuslib/library_management_app/internal/utils"
	"github.com/google/uuid"
)

// missingLookupPlaceholder stands in for a department or HOD name that could
// not be resolved when the certificate input is assembled.
const missingLookupPlaceholder = "N/A"

type clearanceService struct {
	BaseService
	clearanceRepo  portsrepo.ClearanceRepositoryFacade
	userRepo       portsrepo.UserRepositoryFacade
	departmentRepo portsrepo.DepartmentRepositoryFacade
	renderer       portssvc.CertificateRenderer
	notifier       portssvc.NotificationDispatcher

	// requestLocks serialises decisions per request within this process.
	// The guarded repository writes keep storage consistent even without the
	// lock; the lock additionally guarantees the finalize side effects run
	// at most once per request here.
	mu           sync.Mutex
	requestLocks map[string]*sync.Mutex
}

// NewClearanceService creates a new clearance workflow service.
func NewClearanceService(
	clearanceRepo portsrepo.ClearanceRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
	departmentRepo portsrepo.DepartmentRepositoryFacade,
	renderer portssvc.CertificateRenderer,
	notifier portssvc.NotificationDispatcher,
) portssvc.ClearanceSvcFacade {
	return &clearanceService{
		clearanceRepo:  clearanceRepo,
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
		renderer:       renderer,
		notifier:       notifier,
		requestLocks:   make(map[string]*sync.Mutex),
	}
}

var _ portssvc.ClearanceSvcFacade = (*clearanceService)(nil)

func (s *clearanceService) lockFor(requestID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.requestLocks[requestID]
	if !ok {
		lock = &sync.Mutex{}
		s.requestLocks[requestID] = lock
	}
	return lock
}

// releaseLock drops the entry for a request that reached a terminal state.
// A goroutine still blocked on the old mutex, or one that recreates the
// entry, only ever re-reads the request and fails with a conflict: terminal
// requests accept no further writes, so the guarded SQL stays the backstop.
func (s *clearanceService) releaseLock(requestID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.requestLocks, requestID)
}

func (s *clearanceService) SubmitRequest(ctx context.Context, userID string, req dto.SubmitClearanceRequest) (*domain.ClearanceRequest, error) {
	student, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if student.Role != domain.RoleStudent {
		return nil, fmt.Errorf("only students can submit clearance requests: %w", apperrors.ErrForbidden)
	}

	latest, err := s.clearanceRepo.FindLatestRequestByUser(ctx, userID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing requests: %w", err)
	}
	if latest != nil && latest.Status != domain.ApprovalRejected {
		// A Pending request is still in flight; an Approved one means the
		// student is already cleared. Only a rejection opens the door again.
		return nil, fmt.Errorf("an active clearance request already exists: %w", apperrors.ErrDuplicate)
	}

	now := time.Now()
	request := domain.ClearanceRequest{
		RequestID:             uuid.NewString(),
		UserID:                userID,
		Type:                  domain.ClearanceType(req.Type),
		AdditionalInformation: req.AdditionalInformation,
		LibrarianApproval:     domain.ApprovalPending,
		HODApproval:           domain.ApprovalPending,
		Status:                domain.ApprovalPending,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.clearanceRepo.SaveRequest(ctx, request); err != nil {
		s.LogError(ctx, err, "Failed to save clearance request", "user_id", userID)
		return nil, fmt.Errorf("failed to save clearance request: %w", err)
	}

	s.LogInfo(ctx, "Clearance request submitted", "request_id", request.RequestID, "type", req.Type)
	return &request, nil
}

func (s *clearanceService) RecordDecision(ctx context.Context, actorUserID string, actorRole domain.UserRole, req dto.DecideClearanceRequest) (*domain.ClearanceRequest, error) {
	if !actorRole.CanDecideClearance() {
		return nil, fmt.Errorf("role %s cannot decide clearance requests: %w", actorRole, apperrors.ErrForbidden)
	}
	decision := domain.ApprovalStatus(req.Status)
	if decision == domain.ApprovalRejected && req.Reason == "" {
		return nil, fmt.Errorf("a rejection requires a reason: %w", apperrors.ErrValidation)
	}

	lock := s.lockFor(req.ClearanceRequestID)
	lock.Lock()
	defer lock.Unlock()

	request, err := s.clearanceRepo.FindRequestByID(ctx, req.ClearanceRequestID)
	if err != nil {
		return nil, err
	}
	if request.IsTerminal() {
		s.releaseLock(request.RequestID)
		return nil, fmt.Errorf("request already finalized: %w", apperrors.ErrDuplicate)
	}

	student, err := s.userRepo.FindUserByID(ctx, request.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load requesting student: %w", err)
	}

	if actorRole == domain.RoleHOD {
		if err := s.authorizeHOD(ctx, actorUserID, student); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	if decision == domain.ApprovalRejected {
		if err := s.clearanceRepo.RecordRejection(ctx, request.RequestID, actorRole, req.Reason, actorUserID, now); err != nil {
			return nil, err
		}
		updated, err := s.clearanceRepo.FindRequestByID(ctx, request.RequestID)
		if err != nil {
			return nil, err
		}
		s.LogInfo(ctx, "Clearance request rejected", "request_id", request.RequestID, "by_role", string(actorRole))
		s.notifyRejection(ctx, student, updated)
		s.releaseLock(request.RequestID)
		return updated, nil
	}

	if err := s.clearanceRepo.RecordApproval(ctx, request.RequestID, actorRole, actorUserID, now); err != nil {
		return nil, err
	}
	updated, err := s.clearanceRepo.FindRequestByID(ctx, request.RequestID)
	if err != nil {
		return nil, err
	}

	if domain.OverallStatus(updated.LibrarianApproval, updated.HODApproval) != domain.ApprovalApproved {
		s.LogInfo(ctx, "Clearance request partially approved",
			"request_id", request.RequestID, "by_role", string(actorRole))
		return updated, nil
	}

	// Both roles have approved; finalize. A renderer failure aborts before
	// any state flips, so a later decision call can retry the whole step.
	if err := s.finalizeApproval(ctx, actorUserID, actorRole, student, updated); err != nil {
		return nil, err
	}

	final, err := s.clearanceRepo.FindRequestByID(ctx, request.RequestID)
	if err != nil {
		return nil, err
	}
	s.releaseLock(request.RequestID)
	return final, nil
}

// authorizeHOD verifies the acting HOD heads the student's department.
func (s *clearanceService) authorizeHOD(ctx context.Context, actorUserID string, student *domain.User) error {
	department, err := s.departmentRepo.FindDepartmentByHOD(ctx, actorUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("no department assigned: %w", apperrors.ErrForbidden)
		}
		return fmt.Errorf("failed to resolve HOD department: %w", err)
	}
	if student.DepartmentID == nil || *student.DepartmentID != department.DepartmentID {
		return fmt.Errorf("student belongs to another department: %w", apperrors.ErrForbidden)
	}
	return nil
}

func (s *clearanceService) finalizeApproval(ctx context.Context, actorUserID string, actorRole domain.UserRole, student *domain.User, request *domain.ClearanceRequest) error {
	data, err := s.buildCertificateData(ctx, actorUserID, actorRole, student, request)
	if err != nil {
		return err
	}

	if err := s.renderer.Render(ctx, data); err != nil {
		s.LogError(ctx, err, "Failed to render certificate", "request_id", request.RequestID)
		return fmt.Errorf("failed to render certificate: %w", err)
	}

	now := time.Now()
	link := fmt.Sprintf("documents/%s.pdf", request.RequestID)
	if err := s.clearanceRepo.SetPDFLink(ctx, request.RequestID, link, actorUserID, now); err != nil {
		return err
	}

	promoted, err := s.clearanceRepo.PromoteToApproved(ctx, request.RequestID, actorUserID, now)
	if err != nil {
		return err
	}
	if !promoted {
		// Another worker won the promotion and owns the side effects.
		s.LogInfo(ctx, "Clearance promotion already performed elsewhere", "request_id", request.RequestID)
		return nil
	}

	if err := s.userRepo.DisableAccount(ctx, student.UserID, actorUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to disable student account", "user_id", student.UserID)
		return fmt.Errorf("failed to disable student account: %w", err)
	}

	s.LogInfo(ctx, "Clearance request approved", "request_id", request.RequestID, "pdf_link", link)

	msg, err := email.BuildClearanceApprovedEmail(student.Name, request.RequestID)
	if err != nil {
		s.LogError(ctx, err, "Failed to build approval email", "request_id", request.RequestID)
		return nil
	}
	if err := s.notifier.Send(ctx, student.Email, msg.Subject, msg.TextBody, msg.HTMLBody); err != nil {
		// Mail is best-effort: the approval has already landed.
		s.LogError(ctx, err, "Failed to send approval email", "request_id", request.RequestID)
	}
	return nil
}

func (s *clearanceService) buildCertificateData(ctx context.Context, actorUserID string, actorRole domain.UserRole, student *domain.User, request *domain.ClearanceRequest) (domain.CertificateData, error) {
	data := domain.CertificateData{
		RequestID:      request.RequestID,
		Type:           request.Type,
		StudentName:    student.Name,
		StudentRollNo:  student.RollNumber,
		DepartmentName: missingLookupPlaceholder,
		HODName:        missingLookupPlaceholder,
	}

	var department *domain.Department
	if student.DepartmentID != nil {
		dept, err := s.departmentRepo.FindDepartmentByID(ctx, *student.DepartmentID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return data, fmt.Errorf("failed to resolve student department: %w", err)
		}
		department = dept
	}
	if department != nil {
		data.DepartmentName = department.Name
	}

	// The admin signature slot carries whoever holds the librarian role. If
	// the final approver was the admin, use them directly.
	var admin *domain.User
	if actorRole == domain.RoleAdmin {
		actor, err := s.userRepo.FindUserByID(ctx, actorUserID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return data, fmt.Errorf("failed to resolve acting admin: %w", err)
		}
		admin = actor
	} else {
		first, err := s.userRepo.FindFirstByRole(ctx, domain.RoleAdmin)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return data, fmt.Errorf("failed to resolve library admin: %w", err)
		}
		admin = first
	}
	if admin != nil {
		data.AdminName = admin.Name
		data.AdminDesignation = "Librarian"
	}

	if department != nil && department.HODUserID != nil {
		hod, err := s.userRepo.FindUserByID(ctx, *department.HODUserID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return data, fmt.Errorf("failed to resolve HOD: %w", err)
		}
		if hod != nil {
			data.HODName = hod.Name
		}
	}

	return data, nil
}

func (s *clearanceService) notifyRejection(ctx context.Context, student *domain.User, request *domain.ClearanceRequest) {
	msg, err := email.BuildClearanceRejectedEmail(student.Name, request.RequestID, request.RejectedReason)
	if err != nil {
		s.LogError(ctx, err, "Failed to build rejection email", "request_id", request.RequestID)
		return
	}
	if err := s.notifier.Send(ctx, student.Email, msg.Subject, msg.TextBody, msg.HTMLBody); err != nil {
		s.LogError(ctx, err, "Failed to send rejection email", "request_id", request.RequestID)
	}
}

func (s *clearanceService) ListRequests(ctx context.Context, actorUserID string, actorRole domain.UserRole, params dto.ListClearanceParams) (*dto.ListClearanceResponse, error) {
	if !actorRole.CanDecideClearance() {
		return nil, fmt.Errorf("role %s cannot review clearance requests: %w", actorRole, apperrors.ErrForbidden)
	}

	limit, offset := utils.NormalizePagination(params.Page, params.Limit)
	status := domain.ApprovalStatus(params.Status)
	page := params.Page
	if page < 1 {
		page = 1
	}

	var (
		requests []domain.ClearanceRequest
		total    int64
		err      error
	)
	if actorRole == domain.RoleAdmin {
		requests, total, err = s.clearanceRepo.FindRequestsByLibrarianStatus(ctx, status, limit, offset)
	} else {
		department, deptErr := s.departmentRepo.FindDepartmentByHOD(ctx, actorUserID)
		if deptErr != nil {
			if errors.Is(deptErr, apperrors.ErrNotFound) {
				// An HOD without a department sees nothing rather than erroring.
				return &dto.ListClearanceResponse{
					ClearanceRequests: []dto.ClearanceResponse{},
					Page:              page,
					Limit:             limit,
				}, nil
			}
			return nil, fmt.Errorf("failed to resolve HOD department: %w", deptErr)
		}
		studentIDs, idsErr := s.userRepo.FindStudentIDsByDepartment(ctx, department.DepartmentID)
		if idsErr != nil {
			return nil, fmt.Errorf("failed to resolve department students: %w", idsErr)
		}
		requests, total, err = s.clearanceRepo.FindRequestsByHODStatus(ctx, status, studentIDs, limit, offset)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to list clearance requests")
		return nil, fmt.Errorf("failed to list clearance requests: %w", err)
	}

	responses := dto.ToClearanceResponseList(requests)
	for i := range requests {
		if student, err := s.userRepo.FindUserByID(ctx, requests[i].UserID); err == nil {
			studentResp := dto.ToUserResponse(student)
			responses[i].Student = &studentResp
		}
	}

	return &dto.ListClearanceResponse{
		ClearanceRequests: responses,
		Page:              page,
		Limit:             limit,
		TotalRecords:      total,
		TotalPages:        utils.TotalPages(total, limit),
	}, nil
}

func (s *clearanceService) ListOwnRequests(ctx context.Context, userID string) ([]domain.ClearanceRequest, error) {
	return s.clearanceRepo.FindRequestsByUser(ctx, userID)
}
