package service

import (
	"context"
	"errors"
	"strings"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/repository"
	"github.com/BerniceZTT/crm_api/utils"
)

// RegisterResult reports the new account and whether the welcome mail went out.
type RegisterResult struct {
	User         *models.User `json:"user"`
	Notification Notification `json:"notification"`
}

type UserService struct {
	users    UserStore
	tokens   *utils.TokenService
	notifier *Notifier
}

func NewUserService(users UserStore, tokens *utils.TokenService, notifier *Notifier) *UserService {
	return &UserService{users: users, tokens: tokens, notifier: notifier}
}

// Register is the public sign-up path. The requested role is ignored and
// every self-registered account starts as SALES_REP.
func (s *UserService) Register(ctx context.Context, req models.RegisterRequest) (*RegisterResult, error) {
	return s.create(ctx, req, models.UserRoleSALES_REP)
}

// CreateUser is the admin path and honours the requested role.
func (s *UserService) CreateUser(ctx context.Context, req models.RegisterRequest) (*RegisterResult, error) {
	role := req.Role
	if role == "" {
		role = models.UserRoleSALES_REP
	}
	return s.create(ctx, req, role)
}

func (s *UserService) create(ctx context.Context, req models.RegisterRequest, role models.UserRole) (*RegisterResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, utils.CreateConflictError("User with this email already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:         models.NewID(),
		Email:      email,
		Password:   hash,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Role:       role,
		Department: req.Department,
		IsActive:   true,
	}
	user.Touch(now())

	if err := s.users.Create(ctx, user); err != nil {
		return nil, conflict(err, "User with this email already exists")
	}

	utils.Logger.Info().Str("userId", user.ID).Str("role", string(user.Role)).Msg("user registered")
	return &RegisterResult{User: user, Notification: s.notifier.Queue(welcomeMessage(user))}, nil
}

// Login checks credentials and issues an access and refresh token pair.
// Unknown emails and bad passwords produce the same error.
func (s *UserService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	invalid := utils.CreateUnauthorizedError("Invalid credentials")

	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, invalid
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive || !utils.VerifyPassword(req.Password, user.Password) {
		return nil, invalid
	}

	access, err := s.tokens.GenerateAccessToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.ID)
	if err != nil {
		return nil, err
	}

	at := now()
	if err := s.users.TouchLogin(ctx, user.ID, at); err != nil {
		utils.LogError(err, map[string]interface{}{"userId": user.ID}, "update last login failed")
	} else {
		user.LastLoginAt = &at
	}

	return &models.LoginResponse{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.tokens.AccessTTL().Seconds()),
	}, nil
}

// Refresh exchanges a refresh token for a new access token. The role is
// read from the account so role changes apply on the next refresh.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*models.LoginResponse, error) {
	if refreshToken == "" {
		return nil, utils.CreateUnauthorizedError("Refresh token required")
	}
	claims, err := s.tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		return nil, utils.CreateUnauthorizedError("Invalid refresh token")
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, utils.CreateUnauthorizedError("Invalid refresh token")
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, utils.CreateUnauthorizedError("Account disabled")
	}

	access, err := s.tokens.GenerateAccessToken(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &models.LoginResponse{AccessToken: access, ExpiresIn: int64(s.tokens.AccessTTL().Seconds())}, nil
}

func (s *UserService) Profile(ctx context.Context, id string) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(err, "User")
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context, f models.UserFilter, page utils.PageParams) (utils.Paginated[models.User], error) {
	f.Search = page.Search
	users, total, err := s.users.List(ctx, f, page)
	if err != nil {
		return utils.Paginated[models.User]{}, err
	}
	return utils.NewPaginated(users, total, page.Page, page.Limit), nil
}

// Remove deletes an account. Users may only remove themselves.
func (s *UserService) Remove(ctx context.Context, caller *utils.LoginUser, id string) error {
	if caller.ID != id {
		return utils.CreateForbiddenError()
	}
	return notFound(s.users.Delete(ctx, id), "User")
}

// RequestPasswordReset mails a reset token and reports the delivery outcome.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) (Notification, error) {
	user, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return Notification{}, notFound(err, "User")
	}

	token, err := s.tokens.GenerateResetToken(user.ID, user.Password)
	if err != nil {
		return Notification{}, err
	}

	result := s.notifier.SendNow(ctx, passwordResetMessage(user, token))
	utils.Logger.Info().Str("userId", user.ID).Str("delivery", string(result.Status)).Msg("password reset requested")
	return result, nil
}

// ResetPassword sets a new password. A reset token stops working once the
// password it was issued against has changed.
func (s *UserService) ResetPassword(ctx context.Context, req models.ResetPasswordRequest) (Notification, error) {
	invalid := utils.CreateBadRequestError("Invalid or expired reset token")

	userID, err := s.tokens.ResetTokenSubject(req.Token)
	if err != nil {
		return Notification{}, invalid
	}
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return Notification{}, invalid
	}
	if err != nil {
		return Notification{}, err
	}
	if _, err := s.tokens.ParseResetToken(req.Token, user.Password); err != nil {
		return Notification{}, invalid
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return Notification{}, err
	}
	user.Password = hash
	user.Touch(now())
	if err := s.users.Update(ctx, user); err != nil {
		return Notification{}, notFound(err, "User")
	}

	return s.notifier.Queue(passwordChangedMessage(user)), nil
}

// FindByIDs indexes the users with the given ids by id.
func (s *UserService) FindByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	result := make(map[string]*models.User, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range users {
		result[users[i].ID] = &users[i]
	}
	return result, nil
}
