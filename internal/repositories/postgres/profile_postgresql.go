package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Hand2Hand-2025/volunteer-service/internal/models"
	"github.com/Hand2Hand-2025/volunteer-service/internal/repositories"
)

type StudentProfilePostgreSQL struct {
	db *gorm.DB
}

func NewStudentProfilePostgreSQL(db *gorm.DB) repositories.StudentProfileRepository {
	return &StudentProfilePostgreSQL{db: db}
}

func (p *StudentProfilePostgreSQL) Create(ctx context.Context, tx *gorm.DB, profile *models.StudentProfile) error {
	db := p.getDB(tx)
	return db.WithContext(ctx).Create(profile).Error
}

func (p *StudentProfilePostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.StudentProfile, error) {
	db := p.getDB(tx)
	var profile models.StudentProfile
	if err := db.WithContext(ctx).First(&profile, id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (p *StudentProfilePostgreSQL) GetByUserID(ctx context.Context, tx *gorm.DB, userID string) (*models.StudentProfile, error) {
	db := p.getDB(tx)
	var profile models.StudentProfile
	if err := db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (p *StudentProfilePostgreSQL) ExistsByUserID(ctx context.Context, tx *gorm.DB, userID string) (bool, error) {
	db := p.getDB(tx)
	var count int64
	err := db.WithContext(ctx).
		Model(&models.StudentProfile{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count > 0, err
}

func (p *StudentProfilePostgreSQL) Update(ctx context.Context, tx *gorm.DB, profile *models.StudentProfile) error {
	db := p.getDB(tx)
	return db.WithContext(ctx).Save(profile).Error
}

func (p *StudentProfilePostgreSQL) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID string) error {
	db := p.getDB(tx)
	return db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.StudentProfile{}).Error
}

func (p *StudentProfilePostgreSQL) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	db := p.getDB(tx)
	var count int64
	err := db.WithContext(ctx).Model(&models.StudentProfile{}).Count(&count).Error
	return count, err
}

func (p *StudentProfilePostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return p.db
}

type VolunteerProfilePostgreSQL struct {
	db *gorm.DB
}

func NewVolunteerProfilePostgreSQL(db *gorm.DB) repositories.VolunteerProfileRepository {
	return &VolunteerProfilePostgreSQL{db: db}
}

func (p *VolunteerProfilePostgreSQL) Create(ctx context.Context, tx *gorm.DB, profile *models.VolunteerProfile) error {
	db := p.getDB(tx)
	return db.WithContext(ctx).Create(profile).Error
}

func (p *VolunteerProfilePostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.VolunteerProfile, error) {
	db := p.getDB(tx)
	var profile models.VolunteerProfile
	if err := db.WithContext(ctx).First(&profile, id).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (p *VolunteerProfilePostgreSQL) GetByUserID(ctx context.Context, tx *gorm.DB, userID string) (*models.VolunteerProfile, error) {
	db := p.getDB(tx)
	var profile models.VolunteerProfile
	if err := db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (p *VolunteerProfilePostgreSQL) Update(ctx context.Context, tx *gorm.DB, profile *models.VolunteerProfile) error {
	db := p.getDB(tx)
	return db.WithContext(ctx).Save(profile).Error
}

func (p *VolunteerProfilePostgreSQL) DeleteByUserID(ctx context.Context, tx *gorm.DB, userID string) error {
	db := p.getDB(tx)
	return db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.VolunteerProfile{}).Error
}

func (p *VolunteerProfilePostgreSQL) Search(ctx context.Context, tx *gorm.DB, filters repositories.VolunteerFilters) ([]*models.VolunteerProfile, int64, error) {
	db := p.getDB(tx)
	var profiles []*models.VolunteerProfile
	var total int64

	query := db.WithContext(ctx).Model(&models.VolunteerProfile{})
	if filters.VerifiedOnly {
		query = query.Where("is_verified = ?", true)
	}
	if filters.City != "" {
		query = query.Where("location_city ILIKE ?", filters.City)
	}
	if filters.State != "" {
		query = query.Where("location_state ILIKE ?", filters.State)
	}
	if filters.Subject != "" {
		// JSON array containment on the subjects column
		query = query.Where("subjects @> ?", fmt.Sprintf("[%q]", filters.Subject))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("rating DESC")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	if err := query.Find(&profiles).Error; err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

func (p *VolunteerProfilePostgreSQL) SetVerified(ctx context.Context, tx *gorm.DB, id uint, verified bool) error {
	db := p.getDB(tx)
	result := db.WithContext(ctx).
		Model(&models.VolunteerProfile{}).
		Where("id = ?", id).
		Update("is_verified", verified)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (p *VolunteerProfilePostgreSQL) IncrementCompletedExams(ctx context.Context, tx *gorm.DB, id uint) error {
	db := p.getDB(tx)
	result := db.WithContext(ctx).
		Model(&models.VolunteerProfile{}).
		Where("id = ?", id).
		Update("completed_exams", gorm.Expr("completed_exams + ?", 1))
	if result.Error != nil {
		return fmt.Errorf("failed to increment completed exams: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (p *VolunteerProfilePostgreSQL) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	db := p.getDB(tx)
	var count int64
	err := db.WithContext(ctx).Model(&models.VolunteerProfile{}).Count(&count).Error
	return count, err
}

func (p *VolunteerProfilePostgreSQL) CountVerified(ctx context.Context, tx *gorm.DB) (int64, error) {
	db := p.getDB(tx)
	var count int64
	err := db.WithContext(ctx).
		Model(&models.VolunteerProfile{}).
		Where("is_verified = ?", true).
		Count(&count).Error
	return count, err
}

func (p *VolunteerProfilePostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return p.db
}
