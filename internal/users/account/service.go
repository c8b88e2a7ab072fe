// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/taskboard/internal/platform/validate"
	"github.com/taibuivan/taskboard/internal/platform/whitelist"
	"github.com/taibuivan/taskboard/internal/users/auth"
	"github.com/taibuivan/taskboard/pkg/textnorm"
)

// # Service Layer

// Service implements the profile use cases.
type Service struct {
	accountRepository AccountRepository
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(accountRepo AccountRepository, logger *slog.Logger) *Service {
	return &Service{
		accountRepository: accountRepo,
		logger:            logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the caller's account.

Parameters:
  - ctx: context.Context
  - userID: string

Returns:
  - *auth.User: The account (serializes without the password hash)
  - error: apperr.NotFound "User not found" or storage failures
*/
func (service *Service) GetProfile(ctx context.Context, userID string) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}
	return user, nil
}

/*
UpdateProfile applies a whitelisted partial update to the caller's account.

Description: The body is checked against [ProfilePolicy] before anything is
loaded; a single foreign key rejects the whole update. Accepted values are
validated and normalized, then written in one statement.

Parameters:
  - ctx: context.Context
  - userID: string
  - requested: whitelist.Fields (the raw PATCH body)

Returns:
  - *auth.User: The updated account
  - error: apperr INVALID_UPDATE, VALIDATION_ERROR, CONFLICT, NOT_FOUND or storage failures
*/
func (service *Service) UpdateProfile(ctx context.Context, userID string, requested whitelist.Fields) (*auth.User, error) {
	permitted, err := ProfilePolicy.Apply(requested)
	if err != nil {
		return nil, err
	}

	var patch ProfilePatch
	if err := permitted.Decode(&patch); err != nil {
		return nil, err
	}

	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	user, err := service.accountRepository.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_lookup_failed: %w", err)
	}

	if patch.Name != nil {
		user.Name = textnorm.Text(*patch.Name)
	}
	if patch.Email != nil {
		user.Email = textnorm.Email(*patch.Email)
	}
	if patch.Country != nil {
		user.Country = textnorm.Text(*patch.Country)
	}

	if err := service.accountRepository.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.InfoContext(ctx, "user_profile_updated",
		slog.String("user_id", userID),
		slog.Any("fields", permitted.Keys()),
	)

	return user, nil
}

func validatePatch(patch ProfilePatch) error {
	v := &validate.Validator{}
	if patch.Name != nil {
		v.Required(auth.FieldName, *patch.Name).MaxLen(auth.FieldName, *patch.Name, auth.NameMaxLength)
	}
	if patch.Email != nil {
		v.Email(auth.FieldEmail, *patch.Email)
	}
	if patch.Country != nil {
		v.Required(auth.FieldCountry, *patch.Country).MaxLen(auth.FieldCountry, *patch.Country, auth.NameMaxLength)
	}
	return v.Err()
}
