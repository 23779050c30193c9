package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// TokenRepositoryTestSuite тестовый suite для Redis repository токенов
type TokenRepositoryTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	client    *redis.Client
	repo      TokenRepository
}

func TestTokenRepositorySuite(t *testing.T) {
	suite.Run(t, new(TokenRepositoryTestSuite))
}

func (s *TokenRepositoryTestSuite) SetupSuite() {
	var err error
	s.miniRedis, err = miniredis.Run()
	require.NoError(s.T(), err)

	s.client = redis.NewClient(&redis.Options{
		Addr: s.miniRedis.Addr(),
	})

	s.repo = NewRedisTokenRepository(s.client)
}

func (s *TokenRepositoryTestSuite) SetupTest() {
	s.miniRedis.FlushAll()
}

func (s *TokenRepositoryTestSuite) TearDownSuite() {
	s.client.Close()
	s.miniRedis.Close()
}

// ===================== Refresh Token Tests =====================

func (s *TokenRepositoryTestSuite) TestSaveAndGetRefreshToken() {
	ctx := context.Background()
	userID := uuid.New()

	// Act
	err := s.repo.SaveRefreshToken(ctx, userID, "token-abc", time.Now().Add(time.Hour))
	s.NoError(err)

	result, err := s.repo.GetRefreshToken(ctx, "token-abc")

	// Assert
	s.NoError(err)
	s.Equal(userID, result)
}

func (s *TokenRepositoryTestSuite) TestGetRefreshToken_NotFound() {
	ctx := context.Background()

	// Act
	result, err := s.repo.GetRefreshToken(ctx, "unknown")

	// Assert
	s.ErrorIs(err, ErrTokenNotFound)
	s.Equal(uuid.Nil, result)
}

func (s *TokenRepositoryTestSuite) TestSaveRefreshToken_AlreadyExpired() {
	ctx := context.Background()

	// Act - срок в прошлом
	err := s.repo.SaveRefreshToken(ctx, uuid.New(), "stale", time.Now().Add(-time.Minute))

	// Assert
	s.Error(err)
}

func (s *TokenRepositoryTestSuite) TestRefreshToken_Expiration() {
	ctx := context.Background()
	userID := uuid.New()

	err := s.repo.SaveRefreshToken(ctx, userID, "short-lived", time.Now().Add(time.Second))
	s.NoError(err)

	// Ждём истечения TTL (miniredis поддерживает FastForward)
	s.miniRedis.FastForward(2 * time.Second)

	// Assert
	_, err = s.repo.GetRefreshToken(ctx, "short-lived")
	s.ErrorIs(err, ErrTokenNotFound)
}

func (s *TokenRepositoryTestSuite) TestDeleteRefreshToken() {
	ctx := context.Background()
	userID := uuid.New()

	// Arrange
	err := s.repo.SaveRefreshToken(ctx, userID, "token-del", time.Now().Add(time.Hour))
	s.NoError(err)

	// Act
	err = s.repo.DeleteRefreshToken(ctx, "token-del")

	// Assert
	s.NoError(err)
	_, err = s.repo.GetRefreshToken(ctx, "token-del")
	s.ErrorIs(err, ErrTokenNotFound)
}

func (s *TokenRepositoryTestSuite) TestDeleteRefreshToken_Missing() {
	ctx := context.Background()

	// Удаление несуществующего токена не ошибка
	err := s.repo.DeleteRefreshToken(ctx, "ghost")
	s.NoError(err)
}

func (s *TokenRepositoryTestSuite) TestDeleteUserRefreshTokens() {
	ctx := context.Background()
	userID := uuid.New()
	otherID := uuid.New()

	// Arrange - два токена пользователя и один чужой
	s.NoError(s.repo.SaveRefreshToken(ctx, userID, "token-1", time.Now().Add(time.Hour)))
	s.NoError(s.repo.SaveRefreshToken(ctx, userID, "token-2", time.Now().Add(time.Hour)))
	s.NoError(s.repo.SaveRefreshToken(ctx, otherID, "token-other", time.Now().Add(time.Hour)))

	// Act
	err := s.repo.DeleteUserRefreshTokens(ctx, userID)

	// Assert - токены пользователя удалены, чужой остался
	s.NoError(err)
	_, err = s.repo.GetRefreshToken(ctx, "token-1")
	s.ErrorIs(err, ErrTokenNotFound)
	_, err = s.repo.GetRefreshToken(ctx, "token-2")
	s.ErrorIs(err, ErrTokenNotFound)

	result, err := s.repo.GetRefreshToken(ctx, "token-other")
	s.NoError(err)
	s.Equal(otherID, result)
}

func (s *TokenRepositoryTestSuite) TestDeleteUserRefreshTokens_NoTokens() {
	ctx := context.Background()

	// Act - у пользователя нет токенов
	err := s.repo.DeleteUserRefreshTokens(ctx, uuid.New())

	// Assert
	s.NoError(err)
}

// ===================== Blacklist Tests =====================

func (s *TokenRepositoryTestSuite) TestBlacklist() {
	ctx := context.Background()

	// Act
	err := s.repo.AddToBlacklist(ctx, "access-jwt", time.Now().Add(15*time.Minute))
	s.NoError(err)

	blacklisted, err := s.repo.IsBlacklisted(ctx, "access-jwt")

	// Assert
	s.NoError(err)
	s.True(blacklisted)
}

func (s *TokenRepositoryTestSuite) TestIsBlacklisted_CleanToken() {
	ctx := context.Background()

	// Act
	blacklisted, err := s.repo.IsBlacklisted(ctx, "never-seen")

	// Assert
	s.NoError(err)
	s.False(blacklisted)
}

func (s *TokenRepositoryTestSuite) TestBlacklist_ExpiredTokenSkipped() {
	ctx := context.Background()

	// Истёкший токен и так невалиден, запись не создаётся
	err := s.repo.AddToBlacklist(ctx, "expired-jwt", time.Now().Add(-time.Minute))
	s.NoError(err)

	blacklisted, err := s.repo.IsBlacklisted(ctx, "expired-jwt")
	s.NoError(err)
	s.False(blacklisted)
}

func (s *TokenRepositoryTestSuite) TestBlacklist_EntryExpires() {
	ctx := context.Background()

	err := s.repo.AddToBlacklist(ctx, "short-jwt", time.Now().Add(time.Second))
	s.NoError(err)

	s.miniRedis.FastForward(2 * time.Second)

	// Запись истекла вместе с самим токеном
	blacklisted, err := s.repo.IsBlacklisted(ctx, "short-jwt")
	s.NoError(err)
	s.False(blacklisted)
}

// ===================== Redis Key Format Tests =====================

func (s *TokenRepositoryTestSuite) TestRedisKeyFormat() {
	ctx := context.Background()
	userID := uuid.New()

	s.NoError(s.repo.SaveRefreshToken(ctx, userID, "fmt-token", time.Now().Add(time.Hour)))
	s.NoError(s.repo.AddToBlacklist(ctx, "fmt-jwt", time.Now().Add(time.Hour)))

	// Проверяем формат ключей: refresh_token:<token>, user_tokens:<uuid>, blacklist:<token>
	keys, err := s.client.Keys(ctx, "*").Result()
	s.NoError(err)
	s.Contains(keys, "refresh_token:fmt-token")
	s.Contains(keys, "user_tokens:"+userID.String())
	s.Contains(keys, "blacklist:fmt-jwt")
}
