package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/userstorer/internal/common"
	"github.com/dmitrijs2005/userstorer/internal/server/auth"
	"github.com/dmitrijs2005/userstorer/internal/server/models"
	"github.com/dmitrijs2005/userstorer/internal/server/repositories/users"
)

// UserService manages the user lifecycle: registration with the
// uniqueness checks, lookups, listing, and deletion.
type UserService struct {
	repo   users.Repository
	hasher *auth.PasswordHasher
}

func NewUserService(repo users.Repository, hasher *auth.PasswordHasher) *UserService {
	return &UserService{repo: repo, hasher: hasher}
}

// Create registers a user. On input the PasswordHash field carries the
// plaintext password; it is hashed in place before the record is saved.
// When the caller supplies an id, both the id and the email are checked for
// duplicates; otherwise a fresh uuid is assigned and only the email is
// checked.
//
// The email check is read-then-write: the store has no multi-attribute
// unique constraint, so two concurrent Creates for the same email can both
// pass the gate. The window is accepted as a documented limitation (see
// DESIGN.md); reconciliation is an operational concern.
func (s *UserService) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user == nil {
		return nil, fmt.Errorf("%w: user cannot be nil", common.ErrInvalidInput)
	}

	if user.ID != "" {
		exists, err := s.repo.ExistsByID(ctx, user.ID)
		if err != nil {
			return nil, fmt.Errorf("error creating user: %w", err)
		}
		if exists {
			return nil, fmt.Errorf("error creating user: %w: user with id %s already exists", common.ErrAlreadyExists, user.ID)
		}
	}

	exists, err := s.repo.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("error creating user: %w: user with email %s already exists", common.ErrAlreadyExists, user.Email)
	}

	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	now := models.NowMillis()
	user.Created = now
	user.Modified = now

	hash, err := s.hasher.Hash(user.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	user.PasswordHash = hash

	saved, err := s.repo.Save(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return saved, nil
}

func (s *UserService) FindByID(ctx context.Context, id string) (*models.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repo.FindByEmail(ctx, email)
}

func (s *UserService) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.repo.FindByUsername(ctx, username)
}

// List returns one page of users and the cursor for the next page.
func (s *UserService) List(ctx context.Context, cursor string, limit int32) ([]models.User, string, error) {
	return s.repo.List(ctx, cursor, limit)
}

// FindAll accumulates the whole table in memory; use List for anything
// beyond small datasets.
func (s *UserService) FindAll(ctx context.Context) ([]models.User, error) {
	return s.repo.FindAll(ctx)
}

// Delete removes the user with the given id. The store's delete is never
// called for an id that does not exist.
func (s *UserService) Delete(ctx context.Context, id string) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return fmt.Errorf("%w: user with id %s does not exist", common.ErrNotFound, id)
		}
		return err
	}
	return s.repo.Delete(ctx, user)
}
