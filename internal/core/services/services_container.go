package services

import (
	portsrepo "github.com/campuslib/library_management_app/internal/core/ports/repositories"
	portssvc "github.com/campuslib/library_management_app/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(
	repos portsrepo.RepositoryProvider,
	renderer portssvc.CertificateRenderer,
	notifier portssvc.NotificationDispatcher,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo, repos.DepartmentRepo, repos.BatchRepo, notifier)
	container.Department = NewDepartmentService(repos.DepartmentRepo, repos.UserRepo)
	container.Batch = NewBatchService(repos.BatchRepo)
	container.Category = NewCategoryService(repos.CategoryRepo)
	container.Clearance = NewClearanceService(repos.ClearanceRepo, repos.UserRepo, repos.DepartmentRepo, renderer, notifier)

	return container
}
