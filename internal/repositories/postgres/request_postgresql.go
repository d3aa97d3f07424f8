package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Hand2Hand-2025/volunteer-service/internal/models"
	"github.com/Hand2Hand-2025/volunteer-service/internal/repositories"
)

type RequestPostgreSQL struct {
	db *gorm.DB
}

func NewRequestPostgreSQL(db *gorm.DB) repositories.RequestRepository {
	return &RequestPostgreSQL{db: db}
}

func (r *RequestPostgreSQL) Create(ctx context.Context, tx *gorm.DB, request *models.SupportRequest) error {
	db := r.getDB(tx)
	return db.WithContext(ctx).Create(request).Error
}

func (r *RequestPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.SupportRequest, error) {
	db := r.getDB(tx)
	var request models.SupportRequest
	if err := db.WithContext(ctx).
		Preload("Student").
		Preload("Volunteer").
		First(&request, id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *RequestPostgreSQL) GetByStudent(ctx context.Context, tx *gorm.DB, studentID uint) ([]*models.SupportRequest, error) {
	db := r.getDB(tx)
	var requests []*models.SupportRequest
	if err := db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Preload("Volunteer").
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// GetVolunteerFeed returns requests assigned to the volunteer plus all
// unassigned pending ones, newest first.
func (r *RequestPostgreSQL) GetVolunteerFeed(ctx context.Context, tx *gorm.DB, volunteerID uint) ([]*models.SupportRequest, error) {
	db := r.getDB(tx)
	var requests []*models.SupportRequest
	if err := db.WithContext(ctx).
		Where("volunteer_id = ? OR (volunteer_id IS NULL AND status = ?)", volunteerID, models.RequestPending).
		Preload("Student").
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *RequestPostgreSQL) GetAssigned(ctx context.Context, tx *gorm.DB, volunteerID uint, statuses []models.RequestStatus) ([]*models.SupportRequest, error) {
	db := r.getDB(tx)
	query := db.WithContext(ctx).Where("volunteer_id = ?", volunteerID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	var requests []*models.SupportRequest
	if err := query.Preload("Student").Order("exam_date ASC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *RequestPostgreSQL) List(ctx context.Context, tx *gorm.DB, filters repositories.RequestFilters) ([]*models.SupportRequest, int64, error) {
	db := r.getDB(tx)
	var requests []*models.SupportRequest
	var total int64

	// apply filter first
	query := db.WithContext(ctx).Model(&models.SupportRequest{})
	query = r.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// then apply pagination and sorting
	query = r.applyPaginationAndSort(query, filters)

	if err := query.Preload("Student").Preload("Volunteer").Find(&requests).Error; err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

func (r *RequestPostgreSQL) Update(ctx context.Context, tx *gorm.DB, request *models.SupportRequest) error {
	db := r.getDB(tx)
	return db.WithContext(ctx).Save(request).Error
}

// AcceptIfPending assigns the volunteer and flips the status in a single
// conditional update. RowsAffected tells us whether the request was still
// pending when we got there.
func (r *RequestPostgreSQL) AcceptIfPending(ctx context.Context, tx *gorm.DB, id uint, volunteerID uint) (bool, error) {
	db := r.getDB(tx)
	result := db.WithContext(ctx).
		Model(&models.SupportRequest{}).
		Where("id = ? AND status = ?", id, models.RequestPending).
		Updates(map[string]interface{}{
			"volunteer_id": volunteerID,
			"status":       models.RequestAccepted,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to accept request: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *RequestPostgreSQL) UpdateStatusIf(ctx context.Context, tx *gorm.DB, id uint, expected []models.RequestStatus, to models.RequestStatus) (bool, error) {
	if len(expected) == 0 {
		return false, errors.New("expected status set is empty")
	}

	db := r.getDB(tx)
	result := db.WithContext(ctx).
		Model(&models.SupportRequest{}).
		Where("id = ? AND status IN ?", id, expected).
		Update("status", to)
	if result.Error != nil {
		return false, fmt.Errorf("failed to update request status: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// CancelIf cancels the request and clears the volunteer assignment in one
// conditional update. A volunteer stays attached only in accepted and
// completed states, so cancelling an accepted request must release them.
func (r *RequestPostgreSQL) CancelIf(ctx context.Context, tx *gorm.DB, id uint, expected []models.RequestStatus) (bool, error) {
	if len(expected) == 0 {
		return false, errors.New("expected status set is empty")
	}

	db := r.getDB(tx)
	result := db.WithContext(ctx).
		Model(&models.SupportRequest{}).
		Where("id = ? AND status IN ?", id, expected).
		Updates(map[string]interface{}{
			"status":       models.RequestCancelled,
			"volunteer_id": nil,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to cancel request: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *RequestPostgreSQL) CountByStatus(ctx context.Context, tx *gorm.DB) (*models.RequestStatistics, error) {
	db := r.getDB(tx)

	type statusCount struct {
		Status models.RequestStatus
		Count  int64
	}

	var counts []statusCount
	if err := db.WithContext(ctx).
		Model(&models.SupportRequest{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&counts).Error; err != nil {
		return nil, err
	}

	stats := &models.RequestStatistics{}
	for _, c := range counts {
		stats.Total += c.Count
		switch c.Status {
		case models.RequestPending:
			stats.Pending = c.Count
		case models.RequestAccepted:
			stats.Accepted = c.Count
		case models.RequestCompleted:
			stats.Completed = c.Count
		case models.RequestRejected:
			stats.Rejected = c.Count
		case models.RequestCancelled:
			stats.Cancelled = c.Count
		}
	}
	return stats, nil
}

func (r *RequestPostgreSQL) applyFilters(query *gorm.DB, filters repositories.RequestFilters) *gorm.DB {
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if filters.StudentID != nil {
		query = query.Where("student_id = ?", *filters.StudentID)
	}
	if filters.VolunteerID != nil {
		query = query.Where("volunteer_id = ?", *filters.VolunteerID)
	}
	return query
}

// applyPaginationAndSort applies pagination and sorting to a query
func (r *RequestPostgreSQL) applyPaginationAndSort(query *gorm.DB, filters repositories.RequestFilters) *gorm.DB {
	sortBy := "created_at"
	switch filters.SortBy {
	case "exam_date":
		sortBy = "exam_date"
	case "status":
		sortBy = "status"
	case "created_at", "":
		// default
	}

	sortOrder := "DESC"
	if filters.SortOrder == "asc" {
		sortOrder = "ASC"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}
	return query
}

func (r *RequestPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}
