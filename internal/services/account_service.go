package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"nps/internal/models/db_models"
	"nps/internal/models/request_models"
	"nps/internal/models/response_models"
	"nps/internal/repositories"
	mem "nps/pkg/memcache"
	"nps/pkg/utils"
)

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error)
	Logout(ctx context.Context, claims *utils.Claims) error
	CheckActive(ctx context.Context, userID int64) error
	Me(ctx context.Context, userID int64) (*response_models.UserResponse, error)

	ListUsers(ctx context.Context) ([]response_models.UserResponse, error)
	CreateUser(ctx context.Context, request request_models.CreateUserRequest) (*response_models.UserResponse, error)
	UpdateUser(ctx context.Context, id int64, request request_models.UpdateUserRequest) (*response_models.UserResponse, error)
	DeleteUser(ctx context.Context, actor Actor, id int64) error
	SetUserStatus(ctx context.Context, actor Actor, id int64, status string) (*response_models.UserResponse, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	companyRepo repositories.CompanyRepository
	jwt         *utils.JWTManager
	revoked     mem.RevokedTokenStore
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	companyRepo repositories.CompanyRepository,
	jwt *utils.JWTManager,
	revoked mem.RevokedTokenStore,
) AccountServiceInterface {
	return &AccountService{
		accountRepo: accountRepo,
		companyRepo: companyRepo,
		jwt:         jwt,
		revoked:     revoked,
	}
}

var errUserNotFound = utils.NewNotFoundError("user not found")

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// storeError maps a unique violation to a conflict and anything else to a
// generic database error.
func storeError(err error, conflictMessage string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.NewConflictError(conflictMessage)
	}
	return utils.NewDatabaseError(err)
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest) (*response_models.AccountLoginResponse, error) {
	startTime := time.Now()

	user, err := a.accountRepo.FindByEmail(ctx, normalizeEmail(request.Email))
	if err != nil {
		return nil, utils.NewDatabaseError(err)
	}
	if user == nil {
		return nil, utils.ErrInvalidCredentials
	}

	if err := utils.ComparePasswords(user.PasswordHash, request.Password); err != nil {
		return nil, utils.ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, utils.ErrAccountInactive
	}

	token, claims, err := a.jwt.CreateToken(user.ID, string(user.Role), user.Name, user.Email)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	companies := []db_models.Company{}
	var companyIDs []int64
	if user.IsOperational() {
		companies, err = a.companyRepo.ListActiveByUser(ctx, user.ID)
		if err != nil {
			return nil, utils.NewDatabaseError(err)
		}
		for _, c := range companies {
			companyIDs = append(companyIDs, c.ID)
		}
	}

	slog.DebugContext(ctx, "login completed", "user_id", user.ID, "duration", time.Since(startTime))

	return &response_models.AccountLoginResponse{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		User:      toUserResponse(user, companyIDs),
		Companies: toCompanyResponses(companies),
	}, nil
}

// Logout revokes the token's jti for the rest of its lifetime.
func (a *AccountService) Logout(ctx context.Context, claims *utils.Claims) error {
	ttl := claims.Remaining(time.Now())
	if ttl <= 0 {
		return nil
	}
	if err := a.revoked.Revoke(ctx, claims.ID, ttl); err != nil {
		return utils.NewDatabaseError(err)
	}
	return nil
}

func (a *AccountService) CheckActive(ctx context.Context, userID int64) error {
	user, err := a.accountRepo.FindById(ctx, userID)
	if err != nil {
		return utils.NewDatabaseError(err)
	}
	if user == nil {
		return utils.ErrUnknownUser
	}
	if !user.IsActive() {
		return utils.ErrAccountInactive
	}
	return nil
}

func (a *AccountService) Me(ctx context.Context, userID int64) (*response_models.UserResponse, error) {
	return a.userResponse(ctx, userID)
}

func (a *AccountService) ListUsers(ctx context.Context) ([]response_models.UserResponse, error) {
	users, err := a.accountRepo.List(ctx)
	if err != nil {
		return nil, utils.NewDatabaseError(err)
	}

	ids := make([]int64, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	links, err := a.accountRepo.CompanyIDsByUser(ctx, ids)
	if err != nil {
		return nil, utils.NewDatabaseError(err)
	}

	out := make([]response_models.UserResponse, len(users))
	for i := range users {
		out[i] = toUserResponse(&users[i], links[users[i].ID])
	}
	return out, nil
}

func (a *AccountService) CreateUser(ctx context.Context, request request_models.CreateUserRequest) (*response_models.UserResponse, error) {
	email := normalizeEmail(request.Email)

	existing, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, utils.NewDatabaseError(err)
	}
	if existing != nil {
		return nil, utils.NewConflictError("email already registered")
	}

	primary := idPtr(request.PrimaryCompanyID)
	companyIDs := []int64(request.CompanyIDs)
	if err := a.checkCompanies(ctx, primary, companyIDs); err != nil {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(request.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := db_models.RoleOperational
	if request.Role != "" {
		role = db_models.Role(request.Role)
	}

	user := &db_models.User{
		Name:             strings.TrimSpace(request.Name),
		Email:            email,
		PasswordHash:     hashedPassword,
		Role:             role,
		Status:           db_models.UserActive,
		PrimaryCompanyID: primary,
	}

	if err := a.accountRepo.InsertTx(ctx, user, companyIDs); err != nil {
		return nil, storeError(err, "email already registered")
	}

	slog.InfoContext(ctx, "user created", "created_user_id", user.ID, "role", user.Role)
	return a.userResponse(ctx, user.ID)
}

func (a *AccountService) UpdateUser(ctx context.Context, id int64, request request_models.UpdateUserRequest) (*response_models.UserResponse, error) {
	user, err := a.accountRepo.FindById(ctx, id)
	if err != nil {
		return nil, utils.NewDatabaseError(err)
	}
	if user == nil {
		return nil, errUserNotFound
	}

	email := normalizeEmail(request.Email)
	other, err := a.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, utils.NewDatabaseError(err)
	}
	if other != nil && other.ID != user.ID {
		return nil, utils.NewConflictError("email already registered")
	}

	primary := idPtr(request.PrimaryCompanyID)
	var companyIDs *[]int64
	if request.CompanyIDs != nil {
		ids := []int64(*request.CompanyIDs)
		companyIDs = &ids
	}
	var toCheck []int64
	if companyIDs != nil {
		toCheck = *companyIDs
	}
	if err := a.checkCompanies(ctx, primary, toCheck); err != nil {
		return nil, err
	}

	user.Name = strings.TrimSpace(request.Name)
	user.Email = email
	user.Role = db_models.Role(request.Role)
	user.PrimaryCompanyID = primary
	if request.Password != nil {
		hashedPassword, err := utils.HashPassword(*request.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hashedPassword
	}

	if err := a.accountRepo.UpdateTx(ctx, user, companyIDs); err != nil {
		return nil, storeError(err, "email already registered")
	}

	return a.userResponse(ctx, user.ID)
}

func (a *AccountService) DeleteUser(ctx context.Context, actor Actor, id int64) error {
	if actor.ID == id {
		return utils.NewConflictError("you cannot delete your own account")
	}

	deleted, err := a.accountRepo.Delete(ctx, id)
	if err != nil {
		return utils.NewDatabaseError(err)
	}
	if !deleted {
		return errUserNotFound
	}

	slog.InfoContext(ctx, "user deleted", "deleted_user_id", id)
	return nil
}

func (a *AccountService) SetUserStatus(ctx context.Context, actor Actor, id int64, status string) (*response_models.UserResponse, error) {
	next := db_models.UserStatus(status)
	if next != db_models.UserActive && next != db_models.UserInactive {
		return nil, utils.NewValidationError("status", "status must be active or inactive")
	}
	if actor.ID == id && next == db_models.UserInactive {
		return nil, utils.NewConflictError("you cannot deactivate your own account")
	}

	updated, err := a.accountRepo.UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, utils.NewDatabaseError(err)
	}
	if !updated {
		return nil, errUserNotFound
	}

	return a.userResponse(ctx, id)
}

func (a *AccountService) userResponse(ctx context.Context, id int64) (*response_models.UserResponse, error) {
	user, err := a.accountRepo.FindById(ctx, id)
	if err != nil {
		return nil, utils.NewDatabaseError(err)
	}
	if user == nil {
		return nil, errUserNotFound
	}

	links, err := a.accountRepo.CompanyIDsByUser(ctx, []int64{id})
	if err != nil {
		return nil, utils.NewDatabaseError(err)
	}

	resp := toUserResponse(user, links[id])
	return &resp, nil
}

// checkCompanies makes sure every referenced company exists.
func (a *AccountService) checkCompanies(ctx context.Context, primary *int64, companyIDs []int64) error {
	if primary != nil {
		company, err := a.companyRepo.FindByID(ctx, *primary)
		if err != nil {
			return utils.NewDatabaseError(err)
		}
		if company == nil {
			return utils.NewValidationError("primary_company_id", "primary company not found")
		}
	}

	for _, companyID := range companyIDs {
		company, err := a.companyRepo.FindByID(ctx, companyID)
		if err != nil {
			return utils.NewDatabaseError(err)
		}
		if company == nil {
			return utils.NewValidationError("company_ids", fmt.Sprintf("company %d not found", companyID))
		}
	}
	return nil
}
