package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=./mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"hotelops/infras/otel"
	"hotelops/infras/postgres"
	"hotelops/internal/domains/user/model"
	gDto "hotelops/shared/dto"
	gRepo "hotelops/shared/repository"
	"strings"

	"github.com/rs/zerolog/log"
)

// User manages operator profiles together with the credentials they sign in with.
type User interface {
	Create(ctx context.Context, credential model.Credential, user model.User) error
	EmailTaken(ctx context.Context, email string) (bool, error)
	Get(ctx context.Context, filter gDto.FilterGroup) (model.User, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.User, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, patch map[string]any, filter gDto.FilterGroup) error
	DeleteAccount(ctx context.Context, authID string) error
	GetCredential(ctx context.Context, authID string) (model.Credential, error)
	SetPassword(ctx context.Context, authID, passwordHash string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
	credentials gRepo.Repository[model.Credential]
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		Repository:  gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
		credentials: gRepo.NewRepository[model.Credential](model.CredentialEntityName, model.CredentialTableName, model.FieldID, db, otel),
	}
}

// Create writes the credential and the profile in one transaction.
func (r *repositoryImpl) Create(ctx context.Context, credential model.Credential, user model.User) (err error) {
	tx, err := r.credentials.Begin(ctx)
	if err != nil {
		return err //nolint:wrapcheck
	}

	defer func() {
		if err == nil {
			return
		}

		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Str("email", user.Email).Msg("failed to roll back user creation")
		}
	}()

	if err = r.credentials.InsertTx(ctx, tx, credential); err != nil {
		return err //nolint:wrapcheck
	}

	if err = r.Repository.InsertTx(ctx, tx, user); err != nil {
		return err //nolint:wrapcheck
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user creation: %w", err)
	}

	return nil
}

// EmailTaken matches case-insensitively, like sign-in does.
func (r *repositoryImpl) EmailTaken(ctx context.Context, email string) (bool, error) {
	return r.credentials.Exist(ctx, gDto.And(gDto.Eq(model.FieldEmail, strings.ToLower(strings.TrimSpace(email))))) //nolint:wrapcheck
}

// DeleteAccount removes the credential; the profile follows through the foreign key.
func (r *repositoryImpl) DeleteAccount(ctx context.Context, authID string) error {
	return r.credentials.Delete(ctx, gDto.And(gDto.Eq(model.FieldID, authID))) //nolint:wrapcheck
}

func (r *repositoryImpl) GetCredential(ctx context.Context, authID string) (model.Credential, error) {
	return r.credentials.Get(ctx, gDto.And(gDto.Eq(model.FieldID, authID))) //nolint:wrapcheck
}

func (r *repositoryImpl) SetPassword(ctx context.Context, authID, passwordHash string) error {
	return r.credentials.Update(ctx, map[string]any{model.FieldPasswordHash: passwordHash}, gDto.And(gDto.Eq(model.FieldID, authID))) //nolint:wrapcheck
}
