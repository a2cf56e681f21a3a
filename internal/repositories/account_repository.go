package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"nps/internal/models/db_models"
)

type AccountRepository interface {
	InsertTx(ctx context.Context, user *db_models.User, companyIDs []int64) error
	UpdateTx(ctx context.Context, user *db_models.User, companyIDs *[]int64) error
	FindById(ctx context.Context, id int64) (*db_models.User, error)
	FindByEmail(ctx context.Context, email string) (*db_models.User, error)
	List(ctx context.Context) ([]db_models.User, error)
	UpdateStatus(ctx context.Context, id int64, status db_models.UserStatus) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
	CompanyIDsByUser(ctx context.Context, userIDs []int64) (map[int64][]int64, error)

	// Operational user lookups used by evaluation auto-assignment.
	FirstOperationalLinkedTo(ctx context.Context, companyID int64) (*db_models.User, error)
	FirstOperationalWithPrimary(ctx context.Context, companyID int64) (*db_models.User, error)
	ListOperational(ctx context.Context) ([]db_models.User, error)
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{
		db: db,
	}
}

func (a *accountRepository) InsertTx(ctx context.Context, user *db_models.User, companyIDs []int64) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return replaceLinks(tx, user.ID, companyIDs)
	})
}

func (a *accountRepository) UpdateTx(ctx context.Context, user *db_models.User, companyIDs *[]int64) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&db_models.User{}).
			Where("id = ?", user.ID).
			Updates(map[string]interface{}{
				"name":               user.Name,
				"email":              user.Email,
				"role":               user.Role,
				"password_hash":      user.PasswordHash,
				"primary_company_id": user.PrimaryCompanyID,
			}).Error
		if err != nil {
			return err
		}
		if companyIDs == nil {
			return nil
		}
		return replaceLinks(tx, user.ID, *companyIDs)
	})
}

func replaceLinks(tx *gorm.DB, userID int64, companyIDs []int64) error {
	if err := tx.Where("user_id = ?", userID).Delete(&db_models.UserCompany{}).Error; err != nil {
		return err
	}
	if len(companyIDs) == 0 {
		return nil
	}
	links := make([]db_models.UserCompany, 0, len(companyIDs))
	seen := make(map[int64]struct{}, len(companyIDs))
	for _, companyID := range companyIDs {
		if _, dup := seen[companyID]; dup {
			continue
		}
		seen[companyID] = struct{}{}
		links = append(links, db_models.UserCompany{UserID: userID, CompanyID: companyID})
	}
	return tx.Create(&links).Error
}

func (a *accountRepository) FindById(ctx context.Context, id int64) (*db_models.User, error) {
	var user db_models.User
	err := a.db.WithContext(ctx).First(&user, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (a *accountRepository) FindByEmail(ctx context.Context, email string) (*db_models.User, error) {
	var user db_models.User
	err := a.db.WithContext(ctx).First(&user, "email = ?", email).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

func (a *accountRepository) List(ctx context.Context) ([]db_models.User, error) {
	var users []db_models.User
	err := a.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&users).Error
	return users, err
}

func (a *accountRepository) UpdateStatus(ctx context.Context, id int64, status db_models.UserStatus) (bool, error) {
	res := a.db.WithContext(ctx).
		Model(&db_models.User{}).
		Where("id = ?", id).
		Update("status", status)
	return res.RowsAffected > 0, res.Error
}

func (a *accountRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res := a.db.WithContext(ctx).Delete(&db_models.User{}, "id = ?", id)
	return res.RowsAffected > 0, res.Error
}

func (a *accountRepository) CompanyIDsByUser(ctx context.Context, userIDs []int64) (map[int64][]int64, error) {
	out := make(map[int64][]int64, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	var links []db_models.UserCompany
	err := a.db.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Order("company_id ASC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}

	for _, l := range links {
		out[l.UserID] = append(out[l.UserID], l.CompanyID)
	}
	return out, nil
}

func (a *accountRepository) FirstOperationalLinkedTo(ctx context.Context, companyID int64) (*db_models.User, error) {
	var user db_models.User
	err := a.db.WithContext(ctx).
		Joins("JOIN user_companies uc ON uc.user_id = users.id").
		Where("uc.company_id = ? AND users.role = ?", companyID, db_models.RoleOperational).
		Order("users.id ASC").
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (a *accountRepository) FirstOperationalWithPrimary(ctx context.Context, companyID int64) (*db_models.User, error) {
	var user db_models.User
	err := a.db.WithContext(ctx).
		Where("primary_company_id = ? AND role = ?", companyID, db_models.RoleOperational).
		Order("id ASC").
		First(&user).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (a *accountRepository) ListOperational(ctx context.Context) ([]db_models.User, error) {
	var users []db_models.User
	err := a.db.WithContext(ctx).
		Where("role = ? AND status = ?", db_models.RoleOperational, db_models.UserActive).
		Order("name ASC, id ASC").
		Find(&users).Error
	return users, err
}
