package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/civictrack/civictrack/internal/domain/complaint"
	vo "github.com/civictrack/civictrack/internal/domain/complaint/valueobjects"
	"github.com/civictrack/civictrack/internal/infrastructure/persistence/mappers"
	"github.com/civictrack/civictrack/internal/infrastructure/persistence/models"
	"github.com/civictrack/civictrack/internal/shared/db"
)

type ComplaintRepository struct {
	db     *gorm.DB
	mapper mappers.ComplaintMapper
}

func NewComplaintRepository(db *gorm.DB) *ComplaintRepository {
	return &ComplaintRepository{
		db:     db,
		mapper: mappers.NewComplaintMapper(),
	}
}

func (r *ComplaintRepository) Create(ctx context.Context, c *complaint.Complaint) error {
	model := r.mapper.ToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to create complaint: %w", err)
	}

	return c.SetID(model.ID)
}

// UpdateStatusPatch writes only the columns the patch names, reading the new
// values from c. completed_at is written only when the patch resolves.
func (r *ComplaintRepository) UpdateStatusPatch(ctx context.Context, c *complaint.Complaint, patch complaint.StatusPatch) error {
	model := r.mapper.ToModel(c)
	columns := map[string]interface{}{"updated_at": model.UpdatedAt}

	if patch.Status != nil {
		columns["status"] = model.Status
		if *patch.Status == vo.StatusResolved {
			columns["completed_at"] = model.CompletedAt
		}
	}
	if patch.AssignedDepartment != nil {
		columns["assigned_department"] = model.AssignedDepartment
	}
	if patch.AssignedOfficerID != nil {
		columns["assigned_officer_id"] = model.AssignedOfficerID
	}
	if patch.ResolutionNotes != nil {
		columns["resolution_notes"] = model.ResolutionNotes
	}
	if patch.Priority != nil {
		columns["priority"] = model.Priority
	}

	return r.updateColumns(ctx, c.ID(), columns)
}

// UpdateRating writes the rating and feedback only.
func (r *ComplaintRepository) UpdateRating(ctx context.Context, c *complaint.Complaint) error {
	model := r.mapper.ToModel(c)
	return r.updateColumns(ctx, c.ID(), map[string]interface{}{
		"rating":     model.Rating,
		"feedback":   model.Feedback,
		"updated_at": model.UpdatedAt,
	})
}

func (r *ComplaintRepository) updateColumns(ctx context.Context, id uint, columns map[string]interface{}) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Model(&models.ComplaintModel{}).Where("id = ?", id).Updates(columns).Error; err != nil {
		return fmt.Errorf("failed to update complaint: %w", err)
	}

	// RowsAffected may be 0 on MySQL when nothing changed, so it is not checked.
	return nil
}

func (r *ComplaintRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Delete(&models.ComplaintModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete complaint: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return complaint.ErrComplaintNotFound
	}
	return nil
}

func (r *ComplaintRepository) GetByID(ctx context.Context, id uint) (*complaint.Complaint, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *ComplaintRepository) GetBySID(ctx context.Context, sid string) (*complaint.Complaint, error) {
	return r.first(ctx, "sid = ?", sid)
}

func (r *ComplaintRepository) first(ctx context.Context, query string, arg any) (*complaint.Complaint, error) {
	var model models.ComplaintModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where(query, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get complaint: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

// List returns one page, newest first. id breaks ties between equal timestamps
// so that pages never overlap.
func (r *ComplaintRepository) List(ctx context.Context, filter complaint.Filter) ([]*complaint.Complaint, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.ComplaintModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.IssueType != nil {
		query = query.Where("issue_type = ?", filter.IssueType.String())
	}
	if filter.CitizenID != nil {
		query = query.Where("citizen_id = ?", *filter.CitizenID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count complaints: %w", err)
	}
	if total == 0 {
		return []*complaint.Complaint{}, 0, nil
	}

	query = query.Order("created_at DESC").Order("id DESC")
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Limit(filter.PageSize).Offset((page - 1) * filter.PageSize)
	}

	var rows []models.ComplaintModel
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list complaints: %w", err)
	}

	complaints, err := r.mapper.ToDomainList(rows)
	if err != nil {
		return nil, 0, err
	}
	return complaints, total, nil
}

type groupCount struct {
	GroupKey string
	Total    int64
}

func (r *ComplaintRepository) Stats(ctx context.Context) (*complaint.Stats, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var byStatus []groupCount
	if err := tx.Model(&models.ComplaintModel{}).
		Select("status AS group_key, COUNT(*) AS total").
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return nil, fmt.Errorf("failed to count complaints by status: %w", err)
	}

	var byIssueType []groupCount
	if err := tx.Model(&models.ComplaintModel{}).
		Select("issue_type AS group_key, COUNT(*) AS total").
		Group("issue_type").
		Order("total DESC").
		Order("issue_type ASC").
		Scan(&byIssueType).Error; err != nil {
		return nil, fmt.Errorf("failed to count complaints by issue type: %w", err)
	}

	stats := &complaint.Stats{
		ByStatus:    make(map[vo.ComplaintStatus]int64, len(byStatus)),
		ByIssueType: make([]complaint.IssueTypeCount, 0, len(byIssueType)),
	}
	for _, row := range byStatus {
		stats.ByStatus[vo.ComplaintStatus(row.GroupKey)] = row.Total
		stats.Total += row.Total
	}
	for _, row := range byIssueType {
		stats.ByIssueType = append(stats.ByIssueType, complaint.IssueTypeCount{
			IssueType: vo.IssueType(row.GroupKey),
			Count:     row.Total,
		})
	}
	return stats, nil
}
