package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"

	"nps/internal/models/request_models"
	"nps/internal/models/response_models"
	"nps/internal/services"
	"nps/pkg/middleware"
	"nps/pkg/utils"
)

type mockEvaluationService struct {
	submitFn  func(ctx context.Context, req request_models.SubmitEvaluationRequest) (*response_models.EvaluationResponse, error)
	resolveFn func(ctx context.Context, actor services.Actor, id int64, text string) (*response_models.EvaluationResponse, error)
	approveFn func(ctx context.Context, actor services.Actor, id int64, comment string) (*response_models.EvaluationResponse, error)
	rejectFn  func(ctx context.Context, actor services.Actor, id int64, reason string) (*response_models.EvaluationResponse, error)
	listFn    func(ctx context.Context, actor services.Actor, q request_models.ListEvaluationsQuery) (*response_models.EvaluationPage, error)
	getFn     func(ctx context.Context, actor services.Actor, id int64) (*response_models.EvaluationResponse, error)
}

func (m *mockEvaluationService) Submit(ctx context.Context, req request_models.SubmitEvaluationRequest) (*response_models.EvaluationResponse, error) {
	return m.submitFn(ctx, req)
}

func (m *mockEvaluationService) Resolve(ctx context.Context, actor services.Actor, id int64, text string) (*response_models.EvaluationResponse, error) {
	return m.resolveFn(ctx, actor, id, text)
}

func (m *mockEvaluationService) Approve(ctx context.Context, actor services.Actor, id int64, comment string) (*response_models.EvaluationResponse, error) {
	return m.approveFn(ctx, actor, id, comment)
}

func (m *mockEvaluationService) Reject(ctx context.Context, actor services.Actor, id int64, reason string) (*response_models.EvaluationResponse, error) {
	return m.rejectFn(ctx, actor, id, reason)
}

func (m *mockEvaluationService) List(ctx context.Context, actor services.Actor, q request_models.ListEvaluationsQuery) (*response_models.EvaluationPage, error) {
	return m.listFn(ctx, actor, q)
}

func (m *mockEvaluationService) Get(ctx context.Context, actor services.Actor, id int64) (*response_models.EvaluationResponse, error) {
	return m.getFn(ctx, actor, id)
}

type mockCompanyService struct {
	listFn            func(ctx context.Context) ([]response_models.CompanyResponse, error)
	createFn          func(ctx context.Context, req request_models.CreateCompanyRequest) (*response_models.CompanyResponse, error)
	setStatusFn       func(ctx context.Context, id int64, status string) (*response_models.CompanyResponse, error)
	deleteFn          func(ctx context.Context, id int64, hard bool) error
	publicInfoFn      func(ctx context.Context, id int64) (*response_models.PublicCompanyResponse, error)
	publicEmployeesFn func(ctx context.Context, id int64) ([]response_models.PublicEmployeeResponse, error)
}

func (m *mockCompanyService) List(ctx context.Context) ([]response_models.CompanyResponse, error) {
	return m.listFn(ctx)
}

func (m *mockCompanyService) Create(ctx context.Context, req request_models.CreateCompanyRequest) (*response_models.CompanyResponse, error) {
	return m.createFn(ctx, req)
}

func (m *mockCompanyService) SetStatus(ctx context.Context, id int64, status string) (*response_models.CompanyResponse, error) {
	return m.setStatusFn(ctx, id, status)
}

func (m *mockCompanyService) Delete(ctx context.Context, id int64, hard bool) error {
	return m.deleteFn(ctx, id, hard)
}

func (m *mockCompanyService) PublicInfo(ctx context.Context, id int64) (*response_models.PublicCompanyResponse, error) {
	return m.publicInfoFn(ctx, id)
}

func (m *mockCompanyService) PublicEmployees(ctx context.Context, id int64) ([]response_models.PublicEmployeeResponse, error) {
	return m.publicEmployeesFn(ctx, id)
}

// asActor stands in for the JWT middleware.
func asActor(actor services.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, actor.ID)
		c.Set(middleware.ContextRole, string(actor.Role))
		c.Next()
	}
}

func doRequest(router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, utils.APIResponse) {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		Expect(err).NotTo(HaveOccurred())
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp utils.APIResponse
	if w.Code != http.StatusNoContent {
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
	}
	return w, resp
}
