package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"nps/internal/models/db_models"
)

// EvaluationQuery filters a listing. Zero values mean "no filter".
type EvaluationQuery struct {
	// Status is one of pending, resolved, approved, rejected. "pending" matches
	// evaluations still waiting on either the resolution or the decision.
	Status     string
	CompanyID  int64
	EmployeeID int64
	// ActiveCompaniesOnly hides evaluations whose company is no longer active.
	ActiveCompaniesOnly bool
	Page                int
	Limit               int
}

type EvaluationRepositoryInterface interface {
	Create(ctx context.Context, evaluation *db_models.Evaluation) error
	FindByID(ctx context.Context, id int64) (*db_models.Evaluation, error)
	List(ctx context.Context, q EvaluationQuery) ([]db_models.Evaluation, int64, error)
	// SaveResolution writes the resolution fields. When ownerID is set the
	// row must still be assigned to that user.
	SaveResolution(ctx context.Context, evaluation *db_models.Evaluation, ownerID *int64) (bool, error)
	// SaveDecision writes the decision only if the stored row is resolved
	// and still undecided. It reports whether a row was updated.
	SaveDecision(ctx context.Context, evaluation *db_models.Evaluation) (bool, error)
}

type EvaluationRepository struct {
	db *gorm.DB
}

func NewEvaluationRepository(db *gorm.DB) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

func (r *EvaluationRepository) Create(ctx context.Context, evaluation *db_models.Evaluation) error {
	return r.db.WithContext(ctx).Omit("Company", "Employee").Create(evaluation).Error
}

func (r *EvaluationRepository) FindByID(ctx context.Context, id int64) (*db_models.Evaluation, error) {
	var evaluation db_models.Evaluation
	err := r.db.WithContext(ctx).
		Preload("Company").
		Preload("Employee").
		First(&evaluation, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &evaluation, nil
}

func (r *EvaluationRepository) List(ctx context.Context, q EvaluationQuery) ([]db_models.Evaluation, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&db_models.Evaluation{}).
		Scopes(evaluationFilter(q)).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var evaluations []db_models.Evaluation
	err = r.db.WithContext(ctx).
		Scopes(evaluationFilter(q)).
		Preload("Company").
		Preload("Employee").
		Order("evaluations.created_at DESC, evaluations.id DESC").
		Limit(q.Limit).
		Offset((q.Page - 1) * q.Limit).
		Find(&evaluations).Error
	if err != nil {
		return nil, 0, err
	}

	return evaluations, total, nil
}

func evaluationFilter(q EvaluationQuery) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if q.ActiveCompaniesOnly {
			tx = tx.Joins("JOIN companies ON companies.id = evaluations.company_id AND companies.status = ?", db_models.CompanyActive)
		}
		switch q.Status {
		case "pending":
			tx = tx.Where("(evaluations.resolution_state = ? OR evaluations.approval_state = ?)",
				db_models.ResolutionPending, db_models.ApprovalPending)
		case "resolved":
			tx = tx.Where("evaluations.resolution_state = ?", db_models.ResolutionResolved)
		case "approved":
			tx = tx.Where("evaluations.approval_state = ?", db_models.ApprovalApproved)
		case "rejected":
			tx = tx.Where("evaluations.approval_state = ?", db_models.ApprovalRejected)
		}
		if q.CompanyID != 0 {
			tx = tx.Where("evaluations.company_id = ?", q.CompanyID)
		}
		if q.EmployeeID != 0 {
			tx = tx.Where("evaluations.employee_id = ?", q.EmployeeID)
		}
		return tx
	}
}

func (r *EvaluationRepository) SaveResolution(ctx context.Context, evaluation *db_models.Evaluation, ownerID *int64) (bool, error) {
	tx := r.db.WithContext(ctx).
		Model(&db_models.Evaluation{}).
		Where("id = ?", evaluation.ID)
	if ownerID != nil {
		tx = tx.Where("employee_id = ?", *ownerID)
	}

	res := tx.Updates(map[string]interface{}{
		"resolution_text":  evaluation.ResolutionText,
		"resolution_state": evaluation.ResolutionState,
		"updated_at":       evaluation.UpdatedAt,
	})
	return res.RowsAffected > 0, res.Error
}

func (r *EvaluationRepository) SaveDecision(ctx context.Context, evaluation *db_models.Evaluation) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&db_models.Evaluation{}).
		Where("id = ? AND resolution_state = ? AND approval_state = ?",
			evaluation.ID, db_models.ResolutionResolved, db_models.ApprovalPending).
		Updates(map[string]interface{}{
			"approval_state":   evaluation.ApprovalState,
			"approval_comment": evaluation.ApprovalComment,
			"rejection_reason": evaluation.RejectionReason,
			"updated_at":       evaluation.UpdatedAt,
		})
	return res.RowsAffected > 0, res.Error
}
