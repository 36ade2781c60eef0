// Package auth はユーザー登録とトークン認証のドメインロジックを提供する。
// アクセストークンは不透明な文字列としてサーバー側で保管・失効管理する。
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/hitoshi/tunebox/internal/model"
	"github.com/hitoshi/tunebox/internal/repository"
)

// ServiceConfig は認証サービスの設定。
type ServiceConfig struct {
	// AccessTokenAge はアクセストークンの有効期間。
	AccessTokenAge time.Duration
}

// Service はユーザー登録・ログイン・ログアウトのサービス層。
type Service struct {
	userRepo  repository.UserRepository
	tokenRepo repository.TokenRepository
	config    ServiceConfig
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(userRepo repository.UserRepository, tokenRepo repository.TokenRepository, config ServiceConfig) *Service {
	return &Service{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		config:    config,
	}
}

// Register は新規ユーザーを登録し、生成したユーザーidを返す。
// ユーザー名が使用済みの場合は重複エラーを返す。パスワードはbcryptでハッシュ化して保存する。
func (s *Service) Register(ctx context.Context, username, password, fullname string) (string, error) {
	existing, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("ユーザー名の重複確認に失敗しました: %w", err)
	}
	if existing != nil {
		return "", model.NewDuplicateUsernameError(username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("パスワードのハッシュ化に失敗しました: %w", err)
	}

	user := &model.User{
		ID:       "user-" + uuid.NewString(),
		Username: username,
		Password: string(hash),
		Fullname: fullname,
	}

	id, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", model.NewStoreInvariantError("ユーザーの登録に失敗しました")
	}
	return id, nil
}

// Login は認証情報を検証し、新しいアクセストークンを発行して返す。
// ユーザーが存在しない場合とパスワード不一致は同じエラーにする（存在の探りを防ぐ）。
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", fmt.Errorf("ログイン時のユーザー検索に失敗しました: %w", err)
	}
	if user == nil {
		return "", model.NewInvalidCredentialsError()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", model.NewInvalidCredentialsError()
	}

	token := &model.AccessToken{
		Token:     uuid.NewString(),
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.config.AccessTokenAge),
	}

	if err := s.tokenRepo.Create(ctx, token); err != nil {
		return "", err
	}
	return token.Token, nil
}

// Logout は指定されたアクセストークンを失効させる。
func (s *Service) Logout(ctx context.Context, token string) error {
	if err := s.tokenRepo.DeleteByToken(ctx, token); err != nil {
		return fmt.Errorf("ログアウトに失敗しました: %w", err)
	}
	return nil
}
