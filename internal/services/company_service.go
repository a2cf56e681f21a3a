package services

import (
	"context"
	"log/slog"
	"strings"

	"nps/internal/models/db_models"
	"nps/internal/models/request_models"
	"nps/internal/models/response_models"
	"nps/internal/repositories"
	"nps/pkg/id"
	"nps/pkg/utils"
)

type CompanyServiceInterface interface {
	List(ctx context.Context) ([]response_models.CompanyResponse, error)
	Create(ctx context.Context, request request_models.CreateCompanyRequest) (*response_models.CompanyResponse, error)
	SetStatus(ctx context.Context, id int64, status string) (*response_models.CompanyResponse, error)
	Delete(ctx context.Context, id int64, hard bool) error

	PublicInfo(ctx context.Context, id int64) (*response_models.PublicCompanyResponse, error)
	PublicEmployees(ctx context.Context, id int64) ([]response_models.PublicEmployeeResponse, error)
}

type CompanyService struct {
	companyRepo repositories.CompanyRepository
	accountRepo repositories.AccountRepository
}

func NewCompanyService(companyRepo repositories.CompanyRepository, accountRepo repositories.AccountRepository) CompanyServiceInterface {
	return &CompanyService{
		companyRepo: companyRepo,
		accountRepo: accountRepo,
	}
}

var errCompanyNotFound = utils.NewNotFoundError("company not found")

func (s *CompanyService) List(ctx context.Context) ([]response_models.CompanyResponse, error) {
	companies, err := s.companyRepo.List(ctx)
	if err != nil {
		return nil, utils.NewDatabaseError(err)
	}
	return toCompanyResponses(companies), nil
}

func (s *CompanyService) Create(ctx context.Context, request request_models.CreateCompanyRequest) (*response_models.CompanyResponse, error) {
	name := strings.TrimSpace(request.Name)
	if utils.TrimmedLen(name) < 2 {
		return nil, utils.NewValidationError("name", "name must have at least 2 characters")
	}

	existing, err := s.companyRepo.FindByNameCI(ctx, name)
	if err != nil {
		return nil, utils.NewDatabaseError(err)
	}
	if existing != nil {
		return nil, utils.NewConflictError("a company with this name already exists")
	}

	company := &db_models.Company{
		Name:   name,
		TaxID:  optionalText(request.TaxID),
		Status: db_models.CompanyActive,
	}
	if err := s.companyRepo.Create(ctx, company); err != nil {
		return nil, storeError(err, "a company with this name already exists")
	}

	slog.InfoContext(ctx, "company created", "company_id", company.ID)

	resp := toCompanyResponse(company)
	return &resp, nil
}

func (s *CompanyService) SetStatus(ctx context.Context, id int64, status string) (*response_models.CompanyResponse, error) {
	next := db_models.CompanyStatus(status)
	if next != db_models.CompanyActive && next != db_models.CompanyInactive {
		return nil, utils.NewValidationError("status", "status must be active or inactive")
	}

	updated, err := s.companyRepo.UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, utils.NewDatabaseError(err)
	}
	if !updated {
		return nil, errCompanyNotFound
	}

	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.NewDatabaseError(err)
	}
	if company == nil {
		return nil, errCompanyNotFound
	}

	resp := toCompanyResponse(company)
	return &resp, nil
}

// Delete marks the company deleted. A hard delete removes the row and is
// only allowed while the company has no evaluations.
func (s *CompanyService) Delete(ctx context.Context, id int64, hard bool) error {
	if !hard {
		updated, err := s.companyRepo.UpdateStatus(ctx, id, db_models.CompanyDeleted)
		if err != nil {
			return utils.NewDatabaseError(err)
		}
		if !updated {
			return errCompanyNotFound
		}
		return nil
	}

	count, err := s.companyRepo.CountEvaluations(ctx, id)
	if err != nil {
		return utils.NewDatabaseError(err)
	}
	if count > 0 {
		return utils.NewConflictError("company has evaluations and cannot be removed")
	}

	deleted, err := s.companyRepo.Delete(ctx, id)
	if err != nil {
		return utils.NewDatabaseError(err)
	}
	if !deleted {
		return errCompanyNotFound
	}

	slog.InfoContext(ctx, "company removed", "company_id", id)
	return nil
}

func (s *CompanyService) activeCompany(ctx context.Context, id int64) (*db_models.Company, error) {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.NewDatabaseError(err)
	}
	if company == nil {
		return nil, errCompanyNotFound
	}
	if !company.IsActive() {
		return nil, utils.NewConflictError("company is not active")
	}
	return company, nil
}

func (s *CompanyService) PublicInfo(ctx context.Context, id int64) (*response_models.PublicCompanyResponse, error) {
	company, err := s.activeCompany(ctx, id)
	if err != nil {
		return nil, err
	}
	return &response_models.PublicCompanyResponse{ID: company.ID, Name: company.Name}, nil
}

// PublicEmployees lists who can be picked on the feedback form. Companies
// without linked employees offer every active operational user.
func (s *CompanyService) PublicEmployees(ctx context.Context, id int64) ([]response_models.PublicEmployeeResponse, error) {
	if _, err := s.activeCompany(ctx, id); err != nil {
		return nil, err
	}

	users, err := s.companyRepo.ListEmployees(ctx, id)
	if err != nil {
		return nil, utils.NewDatabaseError(err)
	}
	if len(users) == 0 {
		users, err = s.accountRepo.ListOperational(ctx)
		if err != nil {
			return nil, utils.NewDatabaseError(err)
		}
	}

	out := make([]response_models.PublicEmployeeResponse, len(users))
	for i, u := range users {
		out[i] = response_models.PublicEmployeeResponse{ID: u.ID, Name: u.Name}
	}
	return out, nil
}

func idPtr(v *id.ID) *int64 {
	if v == nil {
		return nil
	}
	n := v.Int64()
	return &n
}
