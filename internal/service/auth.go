package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"HerShield/config"
	"HerShield/internal/cache"
	"HerShield/internal/model"
	"HerShield/internal/model/dto"
	"HerShield/internal/repository"
	pkgerrors "HerShield/pkg/errors"
	"HerShield/pkg/logger"
	"HerShield/pkg/mail"
	"HerShield/pkg/snowflake"
	"HerShield/pkg/token"
	"HerShield/utils"
)

var (
	authService *AuthService
	authOnce    sync.Once
)

func Auth() *AuthService {
	authOnce.Do(func() {
		authService = &AuthService{
			users: repository.NewUserRepository(),
		}
	})

	return authService
}

type AuthService struct {
	users *repository.UserRepository
}

// Register 注册新用户，账号默认未激活，激活链接发到注册邮箱。
// 激活邮件发送失败只记日志，注册本身不回滚。
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.RegisterResponse, error) {
	taken, err := s.users.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, pkgerrors.UsernameTaken
	}

	taken, err = s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, pkgerrors.EmailTaken
	}

	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	publicID, err := snowflake.NextID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate public id: %w", err)
	}

	user := &model.User{
		PublicID:     publicID,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		Active:       false,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	activationToken := uuid.NewString()
	userIDStr := strconv.FormatInt(publicID, 10)

	if err := cache.SetActivationToken(ctx, activationToken, userIDStr); err != nil {
		return nil, fmt.Errorf("failed to store activation token: %w", err)
	}

	if err := s.sendActivationEmail(ctx, req.Email, req.Username, activationToken); err != nil {
		logger.Logger.Error("Failed to send activation email",
			zap.String("user_id", userIDStr),
			zap.Error(err),
		)
	}

	logger.Logger.Info("User registered",
		zap.String("user_id", userIDStr),
		zap.String("username", req.Username),
	)

	return &dto.RegisterResponse{
		PublicID: publicID,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

func (s *AuthService) sendActivationEmail(ctx context.Context, email, username, activationToken string) error {
	link := config.Cfg.BaseURL + "/v1/auth/activate?token=" + activationToken

	body := fmt.Sprintf(`<html>
<body>
<p>Hi %s,</p>
<p>Welcome to HerShield. Click the link below to activate your account:</p>
<p><a href="%s">%s</a></p>
<p>The link expires in %d hours.</p>
</body>
</html>`, username, link, link, config.Cfg.ActivationTTLHours)

	return mail.Send(ctx, email, "Activate your HerShield account", body)
}

// Activate 消费激活 token，将账号置为激活。token 一次性，用过即焚。
func (s *AuthService) Activate(ctx context.Context, activationToken string) error {
	userIDStr, err := cache.ConsumeActivationToken(ctx, activationToken)
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return pkgerrors.ActivationTokenInvalid
		}
		return fmt.Errorf("failed to consume activation token: %w", err)
	}

	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil {
		return pkgerrors.ActivationTokenInvalid
	}

	if err := s.users.UpdatesByPublicID(ctx, userID, map[string]interface{}{
		"active": true,
	}); err != nil {
		return err
	}

	logger.Logger.Info("Account activated", zap.String("user_id", userIDStr))

	return nil
}

// Login 支持用户名或邮箱登录。未激活账号拒绝登录。
// 用户不存在和密码错误返回同一个错误，不泄露账号是否存在。
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.TokenPairResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.UsernameOrEmail)
	if err != nil {
		if !errors.Is(err, pkgerrors.UserNotFound) {
			return nil, err
		}
		user, err = s.users.GetByEmail(ctx, req.UsernameOrEmail)
		if err != nil {
			if errors.Is(err, pkgerrors.UserNotFound) {
				return nil, pkgerrors.InvalidCredentials
			}
			return nil, err
		}
	}

	if !utils.CheckPassword(req.Password, user.PasswordHash) {
		return nil, pkgerrors.InvalidCredentials
	}

	if !user.Active {
		return nil, pkgerrors.AccountNotActive
	}

	userIDStr := strconv.FormatInt(user.PublicID, 10)

	accessToken, refreshToken, expiresIn, err := token.GenerateTokenPair(userIDStr)
	if err != nil {
		return nil, err
	}

	if err := cache.SetRefreshToken(ctx, userIDStr, refreshToken); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &dto.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
	}, nil
}

// Refresh 校验 refresh token 并轮换出新的 token 对
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairResponse, error) {
	userIDStr, err := token.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, pkgerrors.Unauthorized
	}

	if !cache.ValidateRefreshTokenExists(ctx, userIDStr, refreshToken) {
		return nil, pkgerrors.Unauthorized
	}

	accessToken, newRefreshToken, expiresIn, err := token.GenerateTokenPair(userIDStr)
	if err != nil {
		return nil, err
	}

	if err := cache.SetRefreshToken(ctx, userIDStr, newRefreshToken); err != nil {
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	return &dto.TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefreshToken,
		ExpiresIn:    expiresIn,
	}, nil
}

// ChangePassword 修改密码，旧密码校验通过后使 refresh token 失效
func (s *AuthService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	var userIDInt int64

	if _, err := fmt.Sscanf(userID, "%d", &userIDInt); err != nil {
		return pkgerrors.InvalidUserID
	}

	user, err := s.users.GetByPublicID(ctx, userIDInt)
	if err != nil {
		return err
	}

	if !utils.CheckPassword(req.OldPassword, user.PasswordHash) {
		return pkgerrors.InvalidCredentials
	}

	newHash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	if err := s.users.UpdatesByPublicID(ctx, userIDInt, map[string]interface{}{
		"password_hash": newHash,
	}); err != nil {
		return err
	}

	// 修改密码后强制重新登录
	if err := cache.DeleteRefreshToken(ctx, userID); err != nil {
		logger.Logger.Warn("Failed to delete refresh token after password change",
			zap.String("user_id", userID),
			zap.Error(err),
		)
	}

	return nil
}

// DeleteAccount 软删除账号并清理缓存里的 token 和位置
func (s *AuthService) DeleteAccount(ctx context.Context, userID string) error {
	var userIDInt int64

	if _, err := fmt.Sscanf(userID, "%d", &userIDInt); err != nil {
		return pkgerrors.InvalidUserID
	}

	if err := s.users.Delete(ctx, userIDInt); err != nil {
		return err
	}

	if err := cache.DeleteRefreshToken(ctx, userID); err != nil {
		logger.Logger.Warn("Failed to delete refresh token",
			zap.String("user_id", userID), zap.Error(err))
	}
	if err := cache.DeleteLocation(ctx, userID); err != nil {
		logger.Logger.Warn("Failed to delete cached location",
			zap.String("user_id", userID), zap.Error(err))
	}

	logger.Logger.Info("Account deleted", zap.String("user_id", userID))

	return nil
}

// UsernameExists 注册页可用性探测
func (s *AuthService) UsernameExists(ctx context.Context, username string) (bool, error) {
	return s.users.ExistsByUsername(ctx, username)
}

// EmailExists 注册页可用性探测
func (s *AuthService) EmailExists(ctx context.Context, email string) (bool, error) {
	return s.users.ExistsByEmail(ctx, email)
}
