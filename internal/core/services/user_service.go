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
	"github.com/campuslib/library_management_app/internal/platform/email"
	"github.com/campuslib/library_management_app/internal/utils"
	"github.com/google/uuid"
)

const tempPasswordLength = 10

type userService struct {
	BaseService
	userRepo       portsrepo.UserRepositoryFacade
	departmentRepo portsrepo.DepartmentRepositoryFacade
	batchRepo      portsrepo.BatchRepositoryFacade
	notifier       portssvc.NotificationDispatcher
}

// NewUserService creates a new user service.
func NewUserService(
	userRepo portsrepo.UserRepositoryFacade,
	departmentRepo portsrepo.DepartmentRepositoryFacade,
	batchRepo portsrepo.BatchRepositoryFacade,
	notifier portssvc.NotificationDispatcher,
) portssvc.UserSvcFacade {
	return &userService{
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
		batchRepo:      batchRepo,
		notifier:       notifier,
	}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.userRepo.FindUserByEmail(ctx, email)
}

func (s *userService) ListStudents(ctx context.Context, params dto.ListStudentsParams) (*dto.ListStudentsResponse, error) {
	limit, offset := utils.NormalizePagination(params.Page, params.Limit)
	filter := portsrepo.StudentListFilter{
		Name:       params.Name,
		Email:      params.Email,
		RollNumber: params.RollNumber,
	}

	students, total, err := s.userRepo.FindStudents(ctx, filter, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list students")
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	page := params.Page
	if page < 1 {
		page = 1
	}
	return &dto.ListStudentsResponse{
		Students:     dto.ToUserResponseList(students),
		Page:         page,
		Limit:        limit,
		TotalRecords: total,
		TotalPages:   utils.TotalPages(total, limit),
	}, nil
}

func (s *userService) CreateStudent(ctx context.Context, req dto.CreateStudentRequest, creatorUserID string) (*domain.User, error) {
	if _, err := s.userRepo.FindUserByEmail(ctx, req.Email); err == nil {
		return nil, fmt.Errorf("email already registered: %w", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if _, err := s.userRepo.FindUserByRollNumber(ctx, req.RollNumber); err == nil {
		return nil, fmt.Errorf("roll number already registered: %w", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check roll number uniqueness: %w", err)
	}

	if req.DepartmentID != nil {
		if _, err := s.departmentRepo.FindDepartmentByID(ctx, *req.DepartmentID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("department does not exist: %w", apperrors.ErrValidation)
			}
			return nil, fmt.Errorf("failed to verify department: %w", err)
		}
	}
	if req.BatchID != nil {
		if _, err := s.batchRepo.FindBatchByID(ctx, *req.BatchID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("batch does not exist: %w", apperrors.ErrValidation)
			}
			return nil, fmt.Errorf("failed to verify batch: %w", err)
		}
	}

	tempPassword, err := utils.GenerateTempPassword(tempPasswordLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate password: %w", err)
	}
	passwordHash, err := utils.HashPassword(tempPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	student := domain.User{
		UserID:        uuid.NewString(),
		Name:          req.Name,
		FatherName:    req.FatherName,
		RollNumber:    req.RollNumber,
		Email:         req.Email,
		PasswordHash:  passwordHash,
		Role:          domain.RoleStudent,
		AccountStatus: domain.AccountActive,
		DepartmentID:  req.DepartmentID,
		BatchID:       req.BatchID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, student); err != nil {
		s.LogError(ctx, err, "Failed to save student", "email", req.Email)
		return nil, fmt.Errorf("failed to save student: %w", err)
	}

	// Credentials go out best-effort; registration already succeeded.
	msg, err := email.BuildWelcomeEmail(student.Name, student.Email, tempPassword)
	if err != nil {
		s.LogError(ctx, err, "Failed to build welcome email", "user_id", student.UserID)
	} else if err := s.notifier.Send(ctx, student.Email, msg.Subject, msg.TextBody, msg.HTMLBody); err != nil {
		s.LogError(ctx, err, "Failed to send welcome email", "user_id", student.UserID)
	}

	s.LogInfo(ctx, "Student registered", "user_id", student.UserID)
	return &student, nil
}

func (s *userService) UpdateStudent(ctx context.Context, userID string, req dto.UpdateStudentRequest, requestingUserID string) (*domain.User, error) {
	student, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if student.Role != domain.RoleStudent {
		return nil, apperrors.ErrNotFound
	}

	if req.Email != nil && *req.Email != student.Email {
		if _, err := s.userRepo.FindUserByEmail(ctx, *req.Email); err == nil {
			return nil, fmt.Errorf("email already registered: %w", apperrors.ErrDuplicate)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
		}
		student.Email = *req.Email
	}
	if req.RollNumber != nil && *req.RollNumber != student.RollNumber {
		if _, err := s.userRepo.FindUserByRollNumber(ctx, *req.RollNumber); err == nil {
			return nil, fmt.Errorf("roll number already registered: %w", apperrors.ErrDuplicate)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("failed to check roll number uniqueness: %w", err)
		}
		student.RollNumber = *req.RollNumber
	}
	if req.Name != nil {
		student.Name = *req.Name
	}
	if req.FatherName != nil {
		student.FatherName = *req.FatherName
	}
	if req.DepartmentID != nil {
		if _, err := s.departmentRepo.FindDepartmentByID(ctx, *req.DepartmentID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("department does not exist: %w", apperrors.ErrValidation)
			}
			return nil, fmt.Errorf("failed to verify department: %w", err)
		}
		student.DepartmentID = req.DepartmentID
	}
	if req.BatchID != nil {
		if _, err := s.batchRepo.FindBatchByID(ctx, *req.BatchID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("batch does not exist: %w", apperrors.ErrValidation)
			}
			return nil, fmt.Errorf("failed to verify batch: %w", err)
		}
		student.BatchID = req.BatchID
	}

	student.LastUpdatedAt = time.Now()
	student.LastUpdatedBy = requestingUserID

	if err := s.userRepo.UpdateUser(ctx, *student); err != nil {
		s.LogError(ctx, err, "Failed to update student", "user_id", userID)
		return nil, fmt.Errorf("failed to update student: %w", err)
	}
	return student, nil
}

func (s *userService) DeleteStudent(ctx context.Context, userID string, requestingUserID string) error {
	student, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if student.Role != domain.RoleStudent {
		return apperrors.ErrNotFound
	}
	return s.userRepo.MarkUserDeleted(ctx, userID, time.Now(), requestingUserID)
}

func (s *userService) DisableAccount(ctx context.Context, userID string, requestingUserID string) error {
	return s.userRepo.DisableAccount(ctx, userID, requestingUserID, time.Now())
}

func (s *userService) AuthenticateUser(ctx context.Context, userEmail, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, userEmail)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	if user.AccountStatus == domain.AccountDisabled {
		return nil, fmt.Errorf("account is disabled: %w", apperrors.ErrUnauthorized)
	}
	return user, nil
}

func (s *userService) ExportStudents(ctx context.Context) ([]dto.StudentCSVRow, error) {
	students, err := s.userRepo.FindAllStudents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load students for export: %w", err)
	}

	departmentNames := map[string]string{}
	batchNames := map[string]string{}
	rows := make([]dto.StudentCSVRow, 0, len(students))
	for _, student := range students {
		row := dto.StudentCSVRow{
			Name:          student.Name,
			FatherName:    student.FatherName,
			RollNumber:    student.RollNumber,
			Email:         student.Email,
			AccountStatus: string(student.AccountStatus),
		}
		if student.DepartmentID != nil {
			name, ok := departmentNames[*student.DepartmentID]
			if !ok {
				if dept, err := s.departmentRepo.FindDepartmentByID(ctx, *student.DepartmentID); err == nil {
					name = dept.Name
				}
				departmentNames[*student.DepartmentID] = name
			}
			row.Department = name
		}
		if student.BatchID != nil {
			name, ok := batchNames[*student.BatchID]
			if !ok {
				if batch, err := s.batchRepo.FindBatchByID(ctx, *student.BatchID); err == nil {
					name = batch.Name
				}
				batchNames[*student.BatchID] = name
			}
			row.Batch = name
		}
		rows = append(rows, row)
	}
	return rows, nil
}
