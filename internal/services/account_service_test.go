package services_test

import (
	"context"
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"

	"nps/internal/models/db_models"
	"nps/internal/models/request_models"
	"nps/internal/services"
	"nps/pkg/id"
	mem "nps/pkg/memcache"
	"nps/pkg/utils"
)

var _ = Describe("AccountService", func() {
	var (
		ctx       context.Context
		store     *memEvaluationStore
		companies *memCompanyStore
		accounts  *memAccountStore
		jwt       *utils.JWTManager
		revoked   *mem.RevokedTokens
		svc       services.AccountServiceInterface

		company *db_models.Company
		admin   *db_models.User
	)

	withPassword := func(u *db_models.User, password string) {
		hash, err := utils.HashPassword(password)
		Expect(err).NotTo(HaveOccurred())
		u.PasswordHash = hash
	}

	BeforeEach(func() {
		ctx = context.Background()
		store = newMemEvaluationStore()
		companies = newMemCompanyStore(store)
		accounts = &memAccountStore{evaluations: store, companies: companies}
		jwt = utils.NewJWTManager("test-secret", time.Hour)
		revoked = mem.NewRevokedTokens()
		svc = services.NewAccountService(accounts, companies, jwt, revoked)

		company = companies.add("Padaria Central", db_models.CompanyActive)
		admin = accounts.add("Chefe", "chefe@example.com", db_models.RoleAdmin, db_models.UserActive)
		withPassword(admin, "segredo123")
	})

	Describe("Login", func() {
		It("issues a token carrying the user's role", func() {
			resp, err := svc.Login(ctx, request_models.LoginRequest{Email: "  CHEFE@example.com ", Password: "segredo123"})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.User.ID).To(Equal(admin.ID))

			claims, err := jwt.ValidateToken(resp.Token)
			Expect(err).NotTo(HaveOccurred())
			Expect(claims.UserID).To(Equal(admin.ID))
			Expect(claims.Role).To(Equal("admin"))
			Expect(claims.ID).NotTo(BeEmpty())
		})

		It("lists the active companies of operational users", func() {
			closed := companies.add("Fechada", db_models.CompanyInactive)
			ana := accounts.add("Ana", "ana@example.com", db_models.RoleOperational, db_models.UserActive)
			withPassword(ana, "senha123")
			accounts.link(ana.ID, company.ID)
			accounts.link(ana.ID, closed.ID)

			resp, err := svc.Login(ctx, request_models.LoginRequest{Email: "ana@example.com", Password: "senha123"})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Companies).To(HaveLen(1))
			Expect(resp.Companies[0].ID).To(Equal(company.ID))
		})

		It("does not reveal whether the email exists", func() {
			_, unknown := svc.Login(ctx, request_models.LoginRequest{Email: "nobody@example.com", Password: "segredo123"})
			_, wrong := svc.Login(ctx, request_models.LoginRequest{Email: "chefe@example.com", Password: "errada"})

			Expect(unknown).To(MatchError(utils.ErrInvalidCredentials))
			Expect(wrong).To(MatchError(utils.ErrInvalidCredentials))
		})

		It("refuses inactive accounts", func() {
			admin.Status = db_models.UserInactive

			_, err := svc.Login(ctx, request_models.LoginRequest{Email: "chefe@example.com", Password: "segredo123"})
			Expect(err).To(MatchError(utils.ErrAccountInactive))
		})
	})

	Describe("Logout", func() {
		It("revokes the token id for its remaining lifetime", func() {
			resp, err := svc.Login(ctx, request_models.LoginRequest{Email: "chefe@example.com", Password: "segredo123"})
			Expect(err).NotTo(HaveOccurred())
			claims, err := jwt.ValidateToken(resp.Token)
			Expect(err).NotTo(HaveOccurred())

			Expect(svc.Logout(ctx, claims)).To(Succeed())

			isRevoked, err := revoked.IsRevoked(ctx, claims.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(isRevoked).To(BeTrue())
		})
	})

	Describe("CheckActive", func() {
		It("distinguishes unknown and inactive users", func() {
			Expect(svc.CheckActive(ctx, admin.ID)).To(Succeed())
			Expect(svc.CheckActive(ctx, 999)).To(MatchError(utils.ErrUnknownUser))

			admin.Status = db_models.UserInactive
			Expect(svc.CheckActive(ctx, admin.ID)).To(MatchError(utils.ErrAccountInactive))
		})
	})

	Describe("CreateUser", func() {
		It("creates an operational user linked to companies", func() {
			primary := id.ID(company.ID)
			resp, err := svc.CreateUser(ctx, request_models.CreateUserRequest{
				Name:             " Bruno ",
				Email:            "Bruno@Example.com",
				Password:         "senha123",
				PrimaryCompanyID: &primary,
				CompanyIDs:       id.List{company.ID},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Name).To(Equal("Bruno"))
			Expect(resp.Email).To(Equal("bruno@example.com"))
			Expect(resp.Role).To(Equal("operational"))
			Expect([]int64(resp.CompanyIDs)).To(ConsistOf(company.ID))

			stored, _ := accounts.FindById(ctx, resp.ID)
			Expect(utils.ComparePasswords(stored.PasswordHash, "senha123")).To(Succeed())
		})

		It("rejects a duplicate email", func() {
			_, err := svc.CreateUser(ctx, request_models.CreateUserRequest{
				Name: "Outro", Email: "chefe@example.com", Password: "senha123",
			})
			Expect(errors.Is(err, utils.ErrConflict)).To(BeTrue())
		})

		It("maps a unique violation from the store to a conflict", func() {
			accounts.insertFn = func(context.Context, *db_models.User, []int64) error {
				return gorm.ErrDuplicatedKey
			}

			_, err := svc.CreateUser(ctx, request_models.CreateUserRequest{
				Name: "Outro", Email: "outro@example.com", Password: "senha123",
			})
			Expect(errors.Is(err, utils.ErrConflict)).To(BeTrue())
		})

		It("rejects unknown companies", func() {
			_, err := svc.CreateUser(ctx, request_models.CreateUserRequest{
				Name: "Outro", Email: "outro@example.com", Password: "senha123",
				CompanyIDs: id.List{12345},
			})
			Expect(errors.Is(err, utils.ErrValidation)).To(BeTrue())

			var appErr *utils.AppError
			Expect(errors.As(err, &appErr)).To(BeTrue())
			Expect(appErr.Field).To(Equal("company_ids"))
		})
	})

	Describe("UpdateUser", func() {
		It("keeps the links when company_ids is omitted and clears them on an empty list", func() {
			ana := accounts.add("Ana", "ana@example.com", db_models.RoleOperational, db_models.UserActive)
			accounts.link(ana.ID, company.ID)

			resp, err := svc.UpdateUser(ctx, ana.ID, request_models.UpdateUserRequest{
				Name: "Ana Maria", Email: "ana@example.com", Role: "operational",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Name).To(Equal("Ana Maria"))
			Expect([]int64(resp.CompanyIDs)).To(ConsistOf(company.ID))

			empty := id.List{}
			resp, err = svc.UpdateUser(ctx, ana.ID, request_models.UpdateUserRequest{
				Name: "Ana Maria", Email: "ana@example.com", Role: "operational", CompanyIDs: &empty,
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.CompanyIDs).To(BeEmpty())
		})

		It("refuses an email owned by someone else", func() {
			ana := accounts.add("Ana", "ana@example.com", db_models.RoleOperational, db_models.UserActive)

			_, err := svc.UpdateUser(ctx, ana.ID, request_models.UpdateUserRequest{
				Name: "Ana", Email: "chefe@example.com", Role: "operational",
			})
			Expect(errors.Is(err, utils.ErrConflict)).To(BeTrue())
		})
	})

	Describe("DeleteUser and SetUserStatus", func() {
		var actor services.Actor

		BeforeEach(func() {
			actor = services.Actor{ID: admin.ID, Role: db_models.RoleAdmin}
		})

		It("protects the caller's own account", func() {
			Expect(errors.Is(svc.DeleteUser(ctx, actor, admin.ID), utils.ErrConflict)).To(BeTrue())

			_, err := svc.SetUserStatus(ctx, actor, admin.ID, "inactive")
			Expect(errors.Is(err, utils.ErrConflict)).To(BeTrue())
		})

		It("deactivates and deletes other users", func() {
			ana := accounts.add("Ana", "ana@example.com", db_models.RoleOperational, db_models.UserActive)

			resp, err := svc.SetUserStatus(ctx, actor, ana.ID, "inactive")
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Status).To(Equal("inactive"))

			Expect(svc.DeleteUser(ctx, actor, ana.ID)).To(Succeed())
			Expect(errors.Is(svc.DeleteUser(ctx, actor, ana.ID), utils.ErrNotFound)).To(BeTrue())
		})

		It("rejects unknown statuses", func() {
			_, err := svc.SetUserStatus(ctx, actor, 1, "deleted")
			Expect(errors.Is(err, utils.ErrValidation)).To(BeTrue())
		})
	})
})
