package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campuslib/library_management_app/internal/apperrors"
	"github.com/campuslib/library_management_app/internal/core/domain"
	portsrepo "github.com/campuslib/library_management_app/internal/core/ports/repositories"
	portssvc "github.com/campuslib/library_management_app/internal/core/ports/services"
	"github.com/campuslib/library_management_app/internal/dto"
	"github.com/campuslib/library_management_app/internal/utils"
	"github.com/google/uuid"
)

type departmentService struct {
	BaseService
	departmentRepo portsrepo.DepartmentRepositoryFacade
	userRepo       portsrepo.UserRepositoryFacade
}

// NewDepartmentService creates a new department service.
func NewDepartmentService(
	departmentRepo portsrepo.DepartmentRepositoryFacade,
	userRepo portsrepo.UserRepositoryFacade,
) portssvc.DepartmentSvcFacade {
	return &departmentService{departmentRepo: departmentRepo, userRepo: userRepo}
}

var _ portssvc.DepartmentSvcFacade = (*departmentService)(nil)

// resolveHOD validates that the given user exists and can hold a headship.
func (s *departmentService) resolveHOD(ctx context.Context, hodUserID string) (*domain.User, error) {
	hod, err := s.userRepo.FindUserByID(ctx, hodUserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("HOD user does not exist: %w", apperrors.ErrValidation)
		}
		return nil, fmt.Errorf("failed to verify HOD user: %w", err)
	}
	if hod.Role != domain.RoleTeacher && hod.Role != domain.RoleHOD {
		return nil, fmt.Errorf("only teachers can head a department: %w", apperrors.ErrValidation)
	}
	return hod, nil
}

// assignHOD moves the headship to the given user: any department they
// currently head lets go of them, and a Teacher is promoted to HOD.
func (s *departmentService) assignHOD(ctx context.Context, hod *domain.User, actorID string, now time.Time) error {
	if err := s.departmentRepo.ClearHODAssignments(ctx, hod.UserID, actorID, now); err != nil {
		return fmt.Errorf("failed to clear previous headship: %w", err)
	}
	if hod.Role != domain.RoleHOD {
		if err := s.userRepo.UpdateUserRole(ctx, hod.UserID, domain.RoleHOD, actorID, now); err != nil {
			return fmt.Errorf("failed to promote user to HOD: %w", err)
		}
	}
	return nil
}

// demoteHOD returns a previous head to the Teacher role once no department
// references them.
func (s *departmentService) demoteHOD(ctx context.Context, hodUserID string, actorID string, now time.Time) error {
	if _, err := s.departmentRepo.FindDepartmentByHOD(ctx, hodUserID); err == nil {
		// Still heads another department, keep the role.
		return nil
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to check remaining headships: %w", err)
	}
	if err := s.userRepo.UpdateUserRole(ctx, hodUserID, domain.RoleTeacher, actorID, now); err != nil {
		return fmt.Errorf("failed to demote previous HOD: %w", err)
	}
	return nil
}

func (s *departmentService) CreateDepartment(ctx context.Context, req dto.CreateDepartmentRequest, creatorUserID string) (*domain.Department, error) {
	if _, err := s.departmentRepo.FindDepartmentByName(ctx, req.Name); err == nil {
		return nil, fmt.Errorf("department name already in use: %w", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check department name: %w", err)
	}

	hod, err := s.resolveHOD(ctx, req.HODUserID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.assignHOD(ctx, hod, creatorUserID, now); err != nil {
		return nil, err
	}

	department := domain.Department{
		DepartmentID: uuid.NewString(),
		Name:         req.Name,
		HODUserID:    &hod.UserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.departmentRepo.SaveDepartment(ctx, department); err != nil {
		s.LogError(ctx, err, "Failed to save department", "name", req.Name)
		return nil, fmt.Errorf("failed to save department: %w", err)
	}

	s.LogInfo(ctx, "Department created", "department_id", department.DepartmentID, "hod_user_id", hod.UserID)
	return &department, nil
}

func (s *departmentService) GetDepartmentByID(ctx context.Context, departmentID string) (*domain.Department, error) {
	return s.departmentRepo.FindDepartmentByID(ctx, departmentID)
}

func (s *departmentService) GetDepartmentByHOD(ctx context.Context, hodUserID string) (*domain.Department, error) {
	return s.departmentRepo.FindDepartmentByHOD(ctx, hodUserID)
}

func (s *departmentService) ListDepartments(ctx context.Context, params dto.ListDepartmentsParams) (*dto.ListDepartmentsResponse, error) {
	limit, offset := utils.NormalizePagination(params.Page, params.Limit)

	departments, total, err := s.departmentRepo.FindDepartments(ctx, params.Query, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list departments")
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}

	responses := make([]dto.DepartmentResponse, 0, len(departments))
	for i := range departments {
		resp := dto.ToDepartmentResponse(&departments[i])
		if departments[i].HODUserID != nil {
			if hod, err := s.userRepo.FindUserByID(ctx, *departments[i].HODUserID); err == nil {
				hodResp := dto.ToUserResponse(hod)
				resp.HOD = &hodResp
			}
		}
		responses = append(responses, resp)
	}

	// The admin form needs the pool of users eligible for headship.
	teachers, err := s.userRepo.FindUsersByRole(ctx, domain.RoleTeacher)
	if err != nil {
		s.LogError(ctx, err, "Failed to list teachers for HOD assignment")
		teachers = nil
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	return &dto.ListDepartmentsResponse{
		Departments:  responses,
		Teachers:     dto.ToUserResponseList(teachers),
		Page:         page,
		Limit:        limit,
		TotalRecords: total,
		TotalPages:   utils.TotalPages(total, limit),
	}, nil
}

func (s *departmentService) UpdateDepartment(ctx context.Context, departmentID string, req dto.UpdateDepartmentRequest, requestingUserID string) (*domain.Department, error) {
	department, err := s.departmentRepo.FindDepartmentByID(ctx, departmentID)
	if err != nil {
		return nil, err
	}

	if req.Name != department.Name {
		if existing, err := s.departmentRepo.FindDepartmentByName(ctx, req.Name); err == nil && existing.DepartmentID != departmentID {
			return nil, fmt.Errorf("department name already in use: %w", apperrors.ErrDuplicate)
		} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check department name: %w", err)
		}
	}

	now := time.Now()
	previousHOD := department.HODUserID
	if previousHOD == nil || *previousHOD != req.HODUserID {
		hod, err := s.resolveHOD(ctx, req.HODUserID)
		if err != nil {
			return nil, err
		}
		if err := s.assignHOD(ctx, hod, requestingUserID, now); err != nil {
			return nil, err
		}
		department.HODUserID = &hod.UserID
	}

	department.Name = req.Name
	department.LastUpdatedAt = now
	department.LastUpdatedBy = requestingUserID

	if err := s.departmentRepo.UpdateDepartment(ctx, *department); err != nil {
		s.LogError(ctx, err, "Failed to update department", "department_id", departmentID)
		return nil, fmt.Errorf("failed to update department: %w", err)
	}

	if previousHOD != nil && *previousHOD != req.HODUserID {
		if err := s.demoteHOD(ctx, *previousHOD, requestingUserID, now); err != nil {
			s.LogError(ctx, err, "Failed to demote previous HOD", "user_id", *previousHOD)
		}
	}

	return department, nil
}

func (s *departmentService) DeleteDepartment(ctx context.Context, departmentID string, requestingUserID string) error {
	department, err := s.departmentRepo.FindDepartmentByID(ctx, departmentID)
	if err != nil {
		return err
	}

	now := time.Now()
	if err := s.departmentRepo.MarkDepartmentDeleted(ctx, departmentID, now, requestingUserID); err != nil {
		return err
	}
	if department.HODUserID != nil {
		if err := s.demoteHOD(ctx, *department.HODUserID, requestingUserID, now); err != nil {
			s.LogError(ctx, err, "Failed to demote HOD of deleted department", "user_id", *department.HODUserID)
		}
	}
	return nil
}
