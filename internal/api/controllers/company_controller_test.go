package controllers_test

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"nps/internal/api/controllers"
	"nps/internal/models/request_models"
	"nps/internal/models/response_models"
	"nps/pkg/utils"
)

var _ = Describe("CompanyController", func() {
	var (
		svc    *mockCompanyService
		router *gin.Engine
	)

	BeforeEach(func() {
		svc = &mockCompanyService{}
		ctrl := controllers.NewCompanyController(svc)

		router = gin.New()
		router.GET("/public/companies/:id", ctrl.PublicInfo)
		router.GET("/public/companies/:id/employees", ctrl.PublicEmployees)
		router.POST("/admin/companies", ctrl.CreateCompany)
		router.PUT("/admin/companies/:id/status", ctrl.SetCompanyStatus)
		router.DELETE("/admin/companies/:id", ctrl.DeleteCompany)
	})

	It("creates companies with 201", func() {
		svc.createFn = func(_ context.Context, req request_models.CreateCompanyRequest) (*response_models.CompanyResponse, error) {
			Expect(req.Name).To(Equal("Padaria"))
			return &response_models.CompanyResponse{ID: 3, Name: "Padaria", Status: "active"}, nil
		}

		w, resp := doRequest(router, http.MethodPost, "/admin/companies", `{"name":"Padaria"}`)
		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(resp.Data).To(HaveKeyWithValue("id", "3"))
	})

	It("maps duplicate names to 409", func() {
		svc.createFn = func(context.Context, request_models.CreateCompanyRequest) (*response_models.CompanyResponse, error) {
			return nil, utils.NewConflictError("a company with this name already exists")
		}

		w, resp := doRequest(router, http.MethodPost, "/admin/companies", `{"name":"Padaria"}`)
		Expect(w.Code).To(Equal(http.StatusConflict))
		Expect(resp.Kind).To(Equal("conflict"))
	})

	It("only accepts active or inactive as status", func() {
		w, resp := doRequest(router, http.MethodPut, "/admin/companies/3/status", `{"status":"deleted"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(resp.Field).To(Equal("status"))
	})

	It("reads the hard flag from the query", func() {
		svc.deleteFn = func(_ context.Context, id int64, hard bool) error {
			Expect(id).To(Equal(int64(3)))
			Expect(hard).To(BeTrue())
			return utils.NewConflictError("company has evaluations and cannot be removed")
		}

		w, _ := doRequest(router, http.MethodDelete, "/admin/companies/3?hard=true", nil)
		Expect(w.Code).To(Equal(http.StatusConflict))
	})

	It("soft deletes by default", func() {
		svc.deleteFn = func(_ context.Context, _ int64, hard bool) error {
			Expect(hard).To(BeFalse())
			return nil
		}

		w, resp := doRequest(router, http.MethodDelete, "/admin/companies/3", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(resp.Status).To(Equal("success"))
	})

	It("serves the public employee list", func() {
		svc.publicEmployeesFn = func(context.Context, int64) ([]response_models.PublicEmployeeResponse, error) {
			return []response_models.PublicEmployeeResponse{{ID: 1, Name: "Ana"}}, nil
		}

		w, resp := doRequest(router, http.MethodGet, "/public/companies/3/employees", nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(resp.Data).To(HaveLen(1))
	})

	It("maps unknown companies to 404", func() {
		svc.publicInfoFn = func(context.Context, int64) (*response_models.PublicCompanyResponse, error) {
			return nil, utils.NewNotFoundError("company not found")
		}

		w, _ := doRequest(router, http.MethodGet, "/public/companies/3", nil)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})
})
