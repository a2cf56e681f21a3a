package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"nps/internal/models/db_models"
)

type CompanyRepository interface {
	Create(ctx context.Context, company *db_models.Company) error
	FindByID(ctx context.Context, id int64) (*db_models.Company, error)
	FindByNameCI(ctx context.Context, name string) (*db_models.Company, error)
	List(ctx context.Context) ([]db_models.Company, error)
	ListActiveByUser(ctx context.Context, userID int64) ([]db_models.Company, error)
	UpdateStatus(ctx context.Context, id int64, status db_models.CompanyStatus) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	CountEvaluations(ctx context.Context, id int64) (int64, error)
	// ListEmployees returns the active operational users linked to the company.
	ListEmployees(ctx context.Context, id int64) ([]db_models.User, error)
}

type companyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) Create(ctx context.Context, company *db_models.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *companyRepository) FindByID(ctx context.Context, id int64) (*db_models.Company, error) {
	var company db_models.Company
	err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) FindByNameCI(ctx context.Context, name string) (*db_models.Company, error) {
	var company db_models.Company
	err := r.db.WithContext(ctx).First(&company, "lower(name) = lower(?)", name).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) List(ctx context.Context) ([]db_models.Company, error) {
	var companies []db_models.Company
	err := r.db.WithContext(ctx).
		Where("status <> ?", db_models.CompanyDeleted).
		Order("name ASC, id ASC").
		Find(&companies).Error
	return companies, err
}

func (r *companyRepository) ListActiveByUser(ctx context.Context, userID int64) ([]db_models.Company, error) {
	var companies []db_models.Company
	err := r.db.WithContext(ctx).
		Joins("JOIN user_companies uc ON uc.company_id = companies.id").
		Where("uc.user_id = ? AND companies.status = ?", userID, db_models.CompanyActive).
		Order("companies.name ASC").
		Find(&companies).Error
	return companies, err
}

func (r *companyRepository) UpdateStatus(ctx context.Context, id int64, status db_models.CompanyStatus) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&db_models.Company{}).
		Where("id = ?", id).
		Update("status", status)
	return res.RowsAffected > 0, res.Error
}

func (r *companyRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&db_models.Company{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (r *companyRepository) CountEvaluations(ctx context.Context, id int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Evaluation{}).
		Where("company_id = ?", id).
		Count(&n).Error
	return n, err
}

func (r *companyRepository) ListEmployees(ctx context.Context, id int64) ([]db_models.User, error) {
	var users []db_models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN user_companies uc ON uc.user_id = users.id").
		Where("uc.company_id = ? AND users.role = ? AND users.status = ?",
			id, db_models.RoleOperational, db_models.UserActive).
		Order("users.name ASC, users.id ASC").
		Find(&users).Error
	return users, err
}
