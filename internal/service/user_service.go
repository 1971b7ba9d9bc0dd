package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tiendax/internal/auth"
	"tiendax/internal/entity"
	"tiendax/internal/model"
)

// UserService is the admin back-office surface for managing accounts.
type UserService struct {
	repo     model.Repository
	activity *ActivityService
}

func NewUserService(repo model.Repository, activity *ActivityService) *UserService {
	return &UserService{repo: repo, activity: activity}
}

// List returns user summaries with pagination metadata.
func (s *UserService) List(ctx context.Context, params *entity.UserQuery) (*entity.UserListResponse, error) {
	users, meta, err := s.repo.ListUsers(ctx, params)
	if err != nil {
		return nil, err
	}
	summaries := make([]entity.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, Summarize(&users[i]))
	}
	return &entity.UserListResponse{Users: summaries, Meta: meta}, nil
}

// Get returns one user by id.
func (s *UserService) Get(ctx context.Context, id uint) (*entity.DbUser, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// Create adds an account on behalf of an administrator. Admin-created
// accounts skip verification unless the request says otherwise.
func (s *UserService) Create(ctx context.Context, actor *entity.DbUser, req *entity.UserCreateRequest) (*entity.DbUser, error) {
	if req.Role != entity.UserRoleAdmin && req.Role != entity.UserRoleCustomer {
		return nil, ErrValidation
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	verified := true
	if req.EmailVerified != nil {
		verified = *req.EmailVerified
	}
	user := &entity.DbUser{
		Email:         req.Email,
		PasswordHash:  hash,
		Name:          req.Name,
		Role:          req.Role,
		EmailVerified: verified,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}
	s.logAs(ctx, actor, "Usuario creado", user.Email)
	return user, nil
}

// Update applies a partial update. Changing the role of the protected store
// administrator is rejected.
func (s *UserService) Update(ctx context.Context, actor *entity.DbUser, id uint, req *entity.UserUpdateRequest) (*entity.DbUser, error) {
	target, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := entity.UserUpdates{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Role != nil {
		if target.Protected {
			return nil, ErrForbidden
		}
		if *req.Role != entity.UserRoleAdmin && *req.Role != entity.UserRoleCustomer {
			return nil, ErrValidation
		}
		updates["role"] = *req.Role
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		updates["password_hash"] = hash
	}
	if req.EmailVerified != nil {
		updates["email_verified"] = *req.EmailVerified
	}
	if len(updates) == 0 {
		return target, nil
	}
	if err := s.repo.UpdateUser(ctx, id, updates); err != nil {
		return nil, err
	}
	s.logAs(ctx, actor, "Usuario actualizado", target.Email)
	return s.Get(ctx, id)
}

// Delete removes an account. The protected store administrator can never be
// deleted.
func (s *UserService) Delete(ctx context.Context, actor *entity.DbUser, id uint) error {
	target, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if target.Protected {
		return ErrForbidden
	}
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.logAs(ctx, actor, "Usuario eliminado", target.Email)
	return nil
}

func (s *UserService) logAs(ctx context.Context, actor *entity.DbUser, action, details string) {
	var id uint
	var name string
	if actor != nil {
		id = actor.ID
		name = actor.Name
	}
	s.activity.Log(ctx, id, name, action, details)
}
