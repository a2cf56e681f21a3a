package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	dbm "nps/internal/models/db_models"
)

type DashboardRepository interface {
	// Summary and status counts over evaluations whose company is active or absent.
	Summary(ctx context.Context) (SummaryRow, error)
	StatusCounts(ctx context.Context) (StatusRow, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)

	// Per-group aggregates. Ranking order is decided by the caller.
	CompanyScores(ctx context.Context) ([]ScoreRow, error)
	EmployeeScores(ctx context.Context) ([]ScoreRow, error)
	CompanyVolumes(ctx context.Context, limit int) ([]ScoreRow, error)

	CountOperationalUsers(ctx context.Context) (int64, error)
	CountActiveCompanies(ctx context.Context) (int64, error)
}

type dashboardRepository struct {
	db *gorm.DB
}

func NewDashboardRepository(db *gorm.DB) DashboardRepository {
	return &dashboardRepository{db: db}
}

// ---------- Row helpers ----------
type SummaryRow struct {
	Total      int64   `gorm:"column:total"`
	Average    float64 `gorm:"column:average"`
	Promoters  int64   `gorm:"column:promoters"`
	Neutrals   int64   `gorm:"column:neutrals"`
	Detractors int64   `gorm:"column:detractors"`
}

type StatusRow struct {
	PendingResolution int64 `gorm:"column:pending_resolution"`
	Resolved          int64 `gorm:"column:resolved"`
	Approved          int64 `gorm:"column:approved"`
	Rejected          int64 `gorm:"column:rejected"`
}

type ScoreRow struct {
	ID         int64   `gorm:"column:id"`
	Name       string  `gorm:"column:name"`
	Total      int64   `gorm:"column:total"`
	Average    float64 `gorm:"column:average"`
	Promoters  int64   `gorm:"column:promoters"`
	Detractors int64   `gorm:"column:detractors"`
}

// ---------- Helpers ----------
const classCounts = `
	COUNT(e.id) AS total,
	COALESCE(AVG(e.score), 0) AS average,
	COUNT(e.id) FILTER (WHERE e.score >= 9) AS promoters,
	COUNT(e.id) FILTER (WHERE e.score BETWEEN 7 AND 8) AS neutrals,
	COUNT(e.id) FILTER (WHERE e.score <= 6) AS detractors`

// inScope limits evaluations to those whose company is active or gone.
func inScope(tx *gorm.DB) *gorm.DB {
	return tx.
		Joins("LEFT JOIN companies c ON c.id = e.company_id").
		Where("(c.id IS NULL OR c.status = ?)", dbm.CompanyActive)
}

// ---------- Summary ----------
func (r *dashboardRepository) Summary(ctx context.Context) (SummaryRow, error) {
	var row SummaryRow
	err := r.db.WithContext(ctx).
		Table("evaluations e").
		Select(classCounts).
		Scopes(inScope).
		Scan(&row).Error
	return row, err
}

func (r *dashboardRepository) StatusCounts(ctx context.Context) (StatusRow, error) {
	var row StatusRow
	err := r.db.WithContext(ctx).
		Table("evaluations e").
		Select(`
			COUNT(e.id) FILTER (WHERE e.resolution_state = ?) AS pending_resolution,
			COUNT(e.id) FILTER (WHERE e.resolution_state = ?) AS resolved,
			COUNT(e.id) FILTER (WHERE e.approval_state = ?) AS approved,
			COUNT(e.id) FILTER (WHERE e.approval_state = ?) AS rejected`,
			dbm.ResolutionPending, dbm.ResolutionResolved, dbm.ApprovalApproved, dbm.ApprovalRejected).
		Scopes(inScope).
		Scan(&row).Error
	return row, err
}

func (r *dashboardRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Table("evaluations e").
		Scopes(inScope).
		Where("e.created_at >= ?", since).
		Count(&n).Error
	return n, err
}

// ---------- Rankings ----------
func (r *dashboardRepository) CompanyScores(ctx context.Context) ([]ScoreRow, error) {
	var rows []ScoreRow
	err := r.db.WithContext(ctx).
		Table("companies c").
		Select("c.id, c.name,"+classCounts).
		Joins("LEFT JOIN evaluations e ON e.company_id = c.id").
		Where("c.status = ?", dbm.CompanyActive).
		Group("c.id, c.name").
		Find(&rows).Error
	return rows, err
}

func (r *dashboardRepository) EmployeeScores(ctx context.Context) ([]ScoreRow, error) {
	var rows []ScoreRow
	err := r.db.WithContext(ctx).
		Table("users u").
		Select("u.id, u.name,"+classCounts).
		Joins("JOIN evaluations e ON e.employee_id = u.id").
		Joins("LEFT JOIN companies c ON c.id = e.company_id").
		Where("u.role = ?", dbm.RoleOperational).
		Where("(c.id IS NULL OR c.status = ?)", dbm.CompanyActive).
		Group("u.id, u.name").
		Find(&rows).Error
	return rows, err
}

func (r *dashboardRepository) CompanyVolumes(ctx context.Context, limit int) ([]ScoreRow, error) {
	var rows []ScoreRow
	err := r.db.WithContext(ctx).
		Table("companies c").
		Select("c.id, c.name,"+classCounts).
		Joins("LEFT JOIN evaluations e ON e.company_id = c.id").
		Where("c.status = ?", dbm.CompanyActive).
		Group("c.id, c.name").
		Order("total DESC, c.id ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

// ---------- Counts ----------
func (r *dashboardRepository) CountOperationalUsers(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.User{}).
		Where("role = ? AND status = ?", dbm.RoleOperational, dbm.UserActive).
		Count(&n).Error
	return n, err
}

func (r *dashboardRepository) CountActiveCompanies(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&dbm.Company{}).
		Where("status = ?", dbm.CompanyActive).
		Count(&n).Error
	return n, err
}
