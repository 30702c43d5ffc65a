package usecases

import (
	"context"

	"github.com/civictrack/civictrack/internal/application/complaint/dto"
	"github.com/civictrack/civictrack/internal/domain/complaint"
	"github.com/civictrack/civictrack/internal/domain/user"
)

type CreateComplaintExecutor interface {
	Execute(ctx context.Context, cmd CreateComplaintCommand) (*dto.ComplaintDTO, error)
}

type ListComplaintsExecutor interface {
	Execute(ctx context.Context, query ListComplaintsQuery) (*ListComplaintsResult, error)
}

type GetComplaintExecutor interface {
	Execute(ctx context.Context, query GetComplaintQuery) (*dto.ComplaintDTO, error)
}

type UpdateComplaintStatusExecutor interface {
	Execute(ctx context.Context, cmd UpdateComplaintStatusCommand) (*dto.ComplaintDTO, error)
}

type RateComplaintExecutor interface {
	Execute(ctx context.Context, cmd RateComplaintCommand) (*dto.ComplaintDTO, error)
}

type DeleteComplaintExecutor interface {
	Execute(ctx context.Context, cmd DeleteComplaintCommand) error
}

type GetComplaintStatsExecutor interface {
	Execute(ctx context.Context, query GetComplaintStatsQuery) (*dto.StatsDTO, error)
}

// HumanIDGenerator allocates the human-readable complaint number.
type HumanIDGenerator interface {
	Generate(ctx context.Context) (string, error)
}

// TextSanitizer reduces user input to plain text.
type TextSanitizer interface {
	PlainText(input string) string
}

// StatusNotifier tells the citizen about the outcome of their complaint.
type StatusNotifier interface {
	NotifyStatusChanged(ctx context.Context, recipient *user.User, c *complaint.Complaint) error
}

// ImageStore moves inline complaint photos to external storage.
// Store returns the reference to persist in place of the payload.
type ImageStore interface {
	Store(ctx context.Context, complaintSID string, payload string) (string, error)
	Remove(ctx context.Context, complaintSID string) error
}
