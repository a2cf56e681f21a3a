package services

import (
	"context"
	"time"

	resp "nps/internal/models/response_models"
	"nps/internal/repositories"
	"nps/pkg/utils"
)

type DashboardService interface {
	Statistics(ctx context.Context) (*resp.Statistics, error)
	Reports(ctx context.Context) (*resp.AdminReport, error)
}

type dashboardService struct {
	repo repositories.DashboardRepository
	now  func() time.Time
}

func NewDashboardService(repo repositories.DashboardRepository) DashboardService {
	return &dashboardService{repo: repo, now: time.Now}
}

func (s *dashboardService) summary(ctx context.Context) (resp.NPSSummary, error) {
	row, err := s.repo.Summary(ctx)
	if err != nil {
		return resp.NPSSummary{}, utils.NewDatabaseError(err)
	}
	return resp.NPSSummary{
		TotalEvaluations: row.Total,
		AverageScore:     roundTo(row.Average, 2),
		Promoters:        row.Promoters,
		Neutrals:         row.Neutrals,
		Detractors:       row.Detractors,
		NPSScore:         NPSScore(row.Promoters, row.Detractors, row.Total),
	}, nil
}

func (s *dashboardService) Statistics(ctx context.Context) (*resp.Statistics, error) {
	// ---------- Summary ----------
	summary, err := s.summary(ctx)
	if err != nil {
		return nil, err
	}

	// ---------- Status ----------
	status, err := s.repo.StatusCounts(ctx)
	if err != nil {
		return nil, utils.NewDatabaseError(err)
	}

	// ---------- Ranking ----------
	companyRows, err := s.repo.CompanyScores(ctx)
	if err != nil {
		return nil, utils.NewDatabaseError(err)
	}

	return &resp.Statistics{
		Summary: summary,
		Status: resp.StatusCounts{
			PendingResolution: status.PendingResolution,
			Resolved:          status.Resolved,
			Approved:          status.Approved,
			Rejected:          status.Rejected,
		},
		TopCompanies: RankCompanies(companyRows),
		UpdatedAt:    s.now(),
	}, nil
}

func (s *dashboardService) Reports(ctx context.Context) (*resp.AdminReport, error) {
	now := s.now()

	// ---------- Summary ----------
	summary, err := s.summary(ctx)
	if err != nil {
		return nil, err
	}

	// ---------- Employees ----------
	employeeRows, err := s.repo.EmployeeScores(ctx)
	if err != nil {
		return nil, utils.NewDatabaseError(err)
	}

	// ---------- Volume ----------
	volumeRows, err := s.repo.CompanyVolumes(ctx, rankingSize)
	if err != nil {
		return nil, utils.NewDatabaseError(err)
	}
	volumes := make([]resp.CompanyVolume, len(volumeRows))
	for i, r := range volumeRows {
		volumes[i] = resp.CompanyVolume{
			CompanyID:        r.ID,
			CompanyName:      r.Name,
			TotalEvaluations: r.Total,
			AverageScore:     roundTo(r.Average, 2),
		}
	}

	// ---------- Counts ----------
	today, err := s.repo.CountSince(ctx, utils.StartOfDayBR(now))
	if err != nil {
		return nil, utils.NewDatabaseError(err)
	}
	operational, err := s.repo.CountOperationalUsers(ctx)
	if err != nil {
		return nil, utils.NewDatabaseError(err)
	}
	activeCompanies, err := s.repo.CountActiveCompanies(ctx)
	if err != nil {
		return nil, utils.NewDatabaseError(err)
	}

	return &resp.AdminReport{
		Summary:              summary,
		TopEmployees:         RankEmployees(employeeRows),
		TopCompaniesByVolume: volumes,
		EvaluationsToday:     today,
		OperationalUsers:     operational,
		ActiveCompanies:      activeCompanies,
		GeneratedAt:          now,
	}, nil
}
