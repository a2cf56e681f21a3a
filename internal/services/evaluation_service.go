package services

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"nps/internal/models/db_models"
	"nps/internal/models/request_models"
	"nps/internal/models/response_models"
	"nps/internal/repositories"
	"nps/pkg/logger"
	"nps/pkg/utils"
)

const notifyTimeout = 30 * time.Second

type EvaluationServiceInterface interface {
	Submit(ctx context.Context, request request_models.SubmitEvaluationRequest) (*response_models.EvaluationResponse, error)
	Resolve(ctx context.Context, actor Actor, id int64, text string) (*response_models.EvaluationResponse, error)
	Approve(ctx context.Context, actor Actor, id int64, comment string) (*response_models.EvaluationResponse, error)
	Reject(ctx context.Context, actor Actor, id int64, reason string) (*response_models.EvaluationResponse, error)
	List(ctx context.Context, actor Actor, query request_models.ListEvaluationsQuery) (*response_models.EvaluationPage, error)
	Get(ctx context.Context, actor Actor, id int64) (*response_models.EvaluationResponse, error)
}

type EvaluationService struct {
	evaluationRepo repositories.EvaluationRepositoryInterface
	companyRepo    repositories.CompanyRepository
	accountRepo    repositories.AccountRepository
	mail           IMailService
}

func NewEvaluationService(
	evaluationRepo repositories.EvaluationRepositoryInterface,
	companyRepo repositories.CompanyRepository,
	accountRepo repositories.AccountRepository,
	mail IMailService,
) EvaluationServiceInterface {
	return &EvaluationService{
		evaluationRepo: evaluationRepo,
		companyRepo:    companyRepo,
		accountRepo:    accountRepo,
		mail:           mail,
	}
}

func (s *EvaluationService) Submit(ctx context.Context, request request_models.SubmitEvaluationRequest) (*response_models.EvaluationResponse, error) {
	if request.Score == nil || *request.Score < db_models.MinScore || *request.Score > db_models.MaxScore {
		return nil, utils.NewValidationError("score", "score must be between 0 and 10")
	}

	company, err := s.companyRepo.FindByID(ctx, request.CompanyID.Int64())
	if err != nil {
		return nil, utils.NewDatabaseError(err)
	}
	if company == nil {
		return nil, utils.NewNotFoundError("company not found")
	}
	if !company.IsActive() {
		return nil, utils.NewConflictError("company is not accepting evaluations")
	}

	employee, err := s.pickEmployee(ctx, company.ID, request)
	if err != nil {
		return nil, err
	}

	evaluation := &db_models.Evaluation{
		CompanyID:       company.ID,
		Score:           *request.Score,
		CustomerComment: optionalText(request.Comment),
		CustomerName:    optionalText(request.CustomerName),
		CustomerEmail:   optionalText(request.CustomerEmail),
		ResolutionState: db_models.ResolutionPending,
		ApprovalState:   db_models.ApprovalPending,
	}
	if employee != nil {
		evaluation.EmployeeID = &employee.ID
	}
	if err := evaluation.Validate(); err != nil {
		return nil, err
	}

	if err := s.evaluationRepo.Create(ctx, evaluation); err != nil {
		return nil, utils.NewDatabaseError(err)
	}
	evaluation.Company = company
	evaluation.Employee = employee

	ctx = logger.WithLogFields(ctx, logger.LogFields{EvaluationID: &evaluation.ID, CompanyID: &company.ID})
	slog.InfoContext(ctx, "evaluation submitted", "score", evaluation.Score, "assigned", employee != nil)

	if employee != nil && Classify(evaluation.Score) == Detractor {
		s.notify(ctx, "detractor", func(ctx context.Context) error {
			return s.mail.NotifyDetractor(ctx, employee, evaluation)
		})
	}

	resp := toEvaluationResponse(evaluation)
	return &resp, nil
}

// pickEmployee validates an explicit assignment or falls back to the first
// operational user linked to the company, then to the first one whose
// primary company it is. No match leaves the evaluation unassigned.
func (s *EvaluationService) pickEmployee(ctx context.Context, companyID int64, request request_models.SubmitEvaluationRequest) (*db_models.User, error) {
	if request.EmployeeID != nil {
		employee, err := s.accountRepo.FindById(ctx, request.EmployeeID.Int64())
		if err != nil {
			return nil, utils.NewDatabaseError(err)
		}
		if employee == nil || !employee.IsOperational() || !employee.IsActive() {
			return nil, utils.NewValidationError("employee_id", "employee must be an active operational user")
		}
		return employee, nil
	}

	employee, err := s.accountRepo.FirstOperationalLinkedTo(ctx, companyID)
	if err != nil {
		return nil, utils.NewDatabaseError(err)
	}
	if employee != nil {
		return employee, nil
	}

	employee, err = s.accountRepo.FirstOperationalWithPrimary(ctx, companyID)
	if err != nil {
		return nil, utils.NewDatabaseError(err)
	}
	return employee, nil
}

func (s *EvaluationService) Resolve(ctx context.Context, actor Actor, id int64, text string) (*response_models.EvaluationResponse, error) {
	// Text is validated before the evaluation is looked up.
	if err := checkResolutionText(text); err != nil {
		return nil, err
	}

	evaluation, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeResolve(actor, evaluation); err != nil {
		return nil, err
	}
	if err := ApplyResolve(evaluation, text, time.Now()); err != nil {
		return nil, err
	}

	var owner *int64
	if !actor.IsAdmin() {
		owner = &actor.ID
	}
	updated, err := s.evaluationRepo.SaveResolution(ctx, evaluation, owner)
	if err != nil {
		return nil, utils.NewDatabaseError(err)
	}
	if !updated {
		return nil, errEvaluationNotFound
	}

	slog.InfoContext(logger.WithLogFields(ctx, logger.LogFields{EvaluationID: &evaluation.ID}), "evaluation resolved")

	resp := toEvaluationResponse(evaluation)
	return &resp, nil
}

func (s *EvaluationService) Approve(ctx context.Context, actor Actor, id int64, comment string) (*response_models.EvaluationResponse, error) {
	if err := authorizeDecision(actor); err != nil {
		return nil, err
	}

	evaluation, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ApplyApprove(evaluation, comment, time.Now()); err != nil {
		return nil, err
	}
	if err := s.saveDecision(ctx, evaluation); err != nil {
		return nil, err
	}

	slog.InfoContext(logger.WithLogFields(ctx, logger.LogFields{EvaluationID: &evaluation.ID}), "evaluation approved")

	resp := toEvaluationResponse(evaluation)
	return &resp, nil
}

func (s *EvaluationService) Reject(ctx context.Context, actor Actor, id int64, reason string) (*response_models.EvaluationResponse, error) {
	if err := authorizeDecision(actor); err != nil {
		return nil, err
	}

	evaluation, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ApplyReject(evaluation, reason, time.Now()); err != nil {
		return nil, err
	}
	if err := s.saveDecision(ctx, evaluation); err != nil {
		return nil, err
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{EvaluationID: &evaluation.ID})
	slog.InfoContext(ctx, "evaluation rejected")

	if employee := evaluation.Employee; employee != nil {
		s.notify(ctx, "rejection", func(ctx context.Context) error {
			return s.mail.NotifyRejection(ctx, employee, evaluation)
		})
	}

	resp := toEvaluationResponse(evaluation)
	return &resp, nil
}

// saveDecision persists a decision. When another decision landed first the
// caller gets the error matching the state that is stored now.
func (s *EvaluationService) saveDecision(ctx context.Context, evaluation *db_models.Evaluation) error {
	updated, err := s.evaluationRepo.SaveDecision(ctx, evaluation)
	if err != nil {
		return utils.NewDatabaseError(err)
	}
	if updated {
		return nil
	}

	current, err := s.load(ctx, evaluation.ID)
	if err != nil {
		return err
	}
	if err := checkDecidable(current); err != nil {
		return err
	}
	return utils.NewInvalidStateError("evaluation changed while it was being decided")
}

func (s *EvaluationService) List(ctx context.Context, actor Actor, query request_models.ListEvaluationsQuery) (*response_models.EvaluationPage, error) {
	q, err := scopeQuery(actor, query)
	if err != nil {
		return nil, err
	}

	evaluations, total, err := s.evaluationRepo.List(ctx, q)
	if err != nil {
		return nil, utils.NewDatabaseError(err)
	}

	items := make([]response_models.EvaluationResponse, len(evaluations))
	for i := range evaluations {
		items[i] = toEvaluationResponse(&evaluations[i])
	}

	return &response_models.EvaluationPage{
		Items: items,
		Pagination: response_models.Pagination{
			Page:       q.Page,
			Limit:      q.Limit,
			Total:      total,
			TotalPages: int(math.Ceil(float64(total) / float64(q.Limit))),
		},
	}, nil
}

func (s *EvaluationService) Get(ctx context.Context, actor Actor, id int64) (*response_models.EvaluationResponse, error) {
	evaluation, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorizeView(actor, evaluation); err != nil {
		return nil, err
	}

	resp := toEvaluationResponse(evaluation)
	return &resp, nil
}

func (s *EvaluationService) load(ctx context.Context, id int64) (*db_models.Evaluation, error) {
	evaluation, err := s.evaluationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, utils.NewDatabaseError(err)
	}
	if evaluation == nil {
		return nil, errEvaluationNotFound
	}
	return evaluation, nil
}

// notify sends a notification in the background. Failures are only logged.
func (s *EvaluationService) notify(ctx context.Context, kind string, send func(context.Context) error) {
	ctx = context.WithoutCancel(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(ctx, notifyTimeout)
		defer cancel()

		if err := send(ctx); err != nil {
			slog.WarnContext(ctx, "notification failed", "notification", kind, "error", err)
		}
	}()
}

func optionalText(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
