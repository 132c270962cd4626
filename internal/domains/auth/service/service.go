package service

import (
	"context"

	"campusroom/config"
	"campusroom/infras/jwt"
	"campusroom/infras/otel"
	"campusroom/internal/domains/auth/model/dto"
	userModel "campusroom/internal/domains/user/model"
	userRepo "campusroom/internal/domains/user/repository"
	"campusroom/shared"
	"campusroom/shared/constant"
	gDto "campusroom/shared/dto"
	"campusroom/shared/failure"
	"campusroom/shared/password"
	"campusroom/shared/timezone"

	"github.com/rs/zerolog/log"
)

const invalidCredentials = "invalid credentials"

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest) error
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) error
}

type serviceImpl struct {
	userRepo    userRepo.User
	allowedRepo userRepo.AllowedUser
	cfg         *config.Config
	otel        otel.Otel
	jwtService  jwt.JWT
}

func New(userRepo userRepo.User, allowedRepo userRepo.AllowedUser, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:    userRepo,
		allowedRepo: allowedRepo,
		cfg:         cfg,
		otel:        otel,
		jwtService:  jwt,
	}
}

func identityFilter(nationalID, role string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: userModel.FieldNationalID, Operator: gDto.FilterOperatorEq, Value: nationalID},
			gDto.Filter{Field: userModel.FieldRole, Operator: gDto.FilterOperatorEq, Value: role},
		},
	}
}

// Register creates an account for a whitelisted national id and role pair.
func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Register")
	defer scope.End()
	defer scope.TraceIfError(&err)

	allowed, err := s.allowedRepo.Get(ctx, identityFilter(req.NationalID, req.Role))
	if err != nil {
		log.Error().Err(err).Msg("failed to check registration whitelist")

		return failure.Persistence(err)
	}

	if allowed.NationalID == constant.Empty {
		log.Warn().Str("role", req.Role).Msg("registration attempt outside whitelist")

		return failure.Forbidden("national id and role are not allowed to register")
	}

	exists, err := s.userRepo.Exist(ctx, shared.FilterByID(req.NationalID, userModel.FieldNationalID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return failure.Persistence(err)
	}

	if exists {
		return failure.BadRequestFromString("user already registered, please log in")
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return failure.InternalError(err)
	}

	if err = s.userRepo.Insert(ctx, req.ToUserModel(allowed, hashedPassword)); err != nil {
		log.Error().Err(err).Msg("failed to create user")

		return failure.Persistence(err)
	}

	return nil
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.Login")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := identityFilter(req.NationalID, req.Role)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, failure.Persistence(err)
	}

	if user.ID == constant.Empty {
		log.Warn().Str("role", req.Role).Msg("login attempt with unknown national id")

		return res, failure.Unauthorized(invalidCredentials)
	}

	if err := password.Verify(req.Password, user.Password); err != nil {
		log.Warn().Str("user_id", user.ID).Msg("login attempt with wrong password")

		return res, failure.Unauthorized(invalidCredentials)
	}

	if !user.Active {
		return res, failure.Forbidden("user account is deactivated")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(user.ID, user.NationalID, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate tokens")

		return res, failure.InternalError(err)
	}

	fields := shared.TransformFields(dto.UpdateLastLoginRequest{LastLogin: timezone.Now()}, user.ID)

	if password.NeedsRehash(user.Password) {
		if rehashed, err := password.Hash(req.Password); err == nil {
			fields[userModel.FieldPassword] = rehashed
		}
	}

	if err := s.userRepo.Update(ctx, fields, shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to update last login")
	}

	res.FromTokenPair(tokenPair)
	res.Role = user.Role

	if user.FullName != nil {
		res.FullName = *user.FullName
	}

	return res, nil
}

func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(&err)

	tokenPair, err := s.jwtService.RefreshTokens(req.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("failed to refresh tokens")

		return res, failure.Unauthorized("invalid refresh token")
	}

	res.FromTokenPair(tokenPair)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".auth.ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(&err)

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(userID, userModel.FieldID, userModel.TableName)

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return failure.Persistence(err)
	}

	if user.ID == constant.Empty {
		return failure.NotFound("user not found")
	}

	if err := password.Verify(req.CurrentPassword, user.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect")
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash new password")

		return failure.InternalError(err)
	}

	updatePassword := dto.UpdatePasswordRequest{Password: hashedPassword}

	if err = s.userRepo.Update(ctx, shared.TransformFields(updatePassword, userID), filter); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return failure.Persistence(err)
	}

	return nil
}
