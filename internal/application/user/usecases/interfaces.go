package usecases

import (
	"context"
	"time"

	"github.com/civictrack/civictrack/internal/application/user/dto"
	"github.com/civictrack/civictrack/internal/domain/user"
)

type RegisterExecutor interface {
	Execute(ctx context.Context, cmd RegisterCommand) (*dto.AuthResultDTO, error)
}

type LoginExecutor interface {
	Execute(ctx context.Context, cmd LoginCommand) (*dto.AuthResultDTO, error)
}

type GetCurrentUserExecutor interface {
	Execute(ctx context.Context, query GetCurrentUserQuery) (*dto.UserDTO, error)
}

type UpdateProfileExecutor interface {
	Execute(ctx context.Context, cmd UpdateProfileCommand) (*dto.UserDTO, error)
}

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Issue(u *user.User) (token string, expiresAt time.Time, err error)
}

func issueToken(tokens TokenIssuer, u *user.User) (*dto.AuthResultDTO, error) {
	token, expiresAt, err := tokens.Issue(u)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResultDTO{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.ToUserDTO(u),
	}, nil
}
