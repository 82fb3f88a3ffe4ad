package services

import (
	"context"

	"github.com/campuslib/library_management_app/internal/core/domain"
)

// CertificateRenderer writes the clearance certificate artifact for the given
// data to durable storage. The artifact's name is derived deterministically
// from data.RequestID by the caller; the renderer returns no link. Missing
// name fields render blank; only storage I/O failures return an error.
type CertificateRenderer interface {
	Render(ctx context.Context, data domain.CertificateData) error
}
