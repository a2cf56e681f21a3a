package services

import (
	"nps/internal/models/db_models"
	"nps/internal/models/request_models"
	"nps/internal/repositories"
	"nps/pkg/utils"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Actor is the authenticated caller of a service operation.
type Actor struct {
	ID   int64
	Role db_models.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == db_models.RoleAdmin
}

func (a Actor) IsOperational() bool {
	return a.Role == db_models.RoleOperational
}

var errEvaluationNotFound = utils.NewNotFoundError("evaluation not found")

// owns reports whether the evaluation is assigned to the actor.
func (a Actor) owns(e *db_models.Evaluation) bool {
	return e.EmployeeID != nil && *e.EmployeeID == a.ID
}

// authorizeView hides evaluations an operational user may not see behind a
// not-found error, so their existence is not leaked.
func authorizeView(actor Actor, e *db_models.Evaluation) error {
	switch {
	case actor.IsAdmin():
		return nil
	case actor.IsOperational():
		if !actor.owns(e) || (e.Company != nil && !e.Company.IsActive()) {
			return errEvaluationNotFound
		}
		return nil
	default:
		return utils.ErrInsufficientRole
	}
}

func authorizeResolve(actor Actor, e *db_models.Evaluation) error {
	switch {
	case actor.IsAdmin():
		return nil
	case actor.IsOperational():
		if !actor.owns(e) {
			return errEvaluationNotFound
		}
		return nil
	default:
		return utils.ErrInsufficientRole
	}
}

func authorizeDecision(actor Actor) error {
	if !actor.IsAdmin() {
		return utils.ErrInsufficientRole
	}
	return nil
}

// scopeQuery turns a caller filter into a store query. Operational users are
// pinned to their own evaluations of active companies.
func scopeQuery(actor Actor, f request_models.ListEvaluationsQuery) (repositories.EvaluationQuery, error) {
	q := repositories.EvaluationQuery{
		Status:     f.Status,
		CompanyID:  f.CompanyID,
		EmployeeID: f.EmployeeID,
		Page:       f.Page,
		Limit:      f.Limit,
	}

	switch {
	case actor.IsAdmin():
	case actor.IsOperational():
		q.EmployeeID = actor.ID
		q.ActiveCompaniesOnly = true
	default:
		return q, utils.ErrInsufficientRole
	}

	if q.Page < 1 {
		q.Page = 1
	}
	if q.Limit < 1 {
		q.Limit = defaultPageSize
	}
	if q.Limit > maxPageSize {
		q.Limit = maxPageSize
	}
	return q, nil
}
