package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arzan03/TalentBridge/internal/models"
	"github.com/arzan03/TalentBridge/internal/repository"
	"github.com/arzan03/TalentBridge/internal/validation"
)

// UserFile names the single path field an upload patches.
type UserFile string

const (
	UserCV    UserFile = "cv_path"
	UserVideo UserFile = "video_path"
	UserPhoto UserFile = "photo_path"
)

// UserFiles are paths of files uploaded together with a new user.
type UserFiles struct {
	Photo string
	CV    string
	Video string
}

type UserService struct {
	users    repository.UserRepository
	notifier *Notifier
}

// NewUserService wires the user repository and the welcome mail notifier.
func NewUserService(repos *repository.Repositories, notifier *Notifier) *UserService {
	return &UserService{users: repos.Users, notifier: notifier}
}

// GetByUID looks a user up by identity provider uid.
func (s *UserService) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	return s.users.FindByUID(ctx, uid)
}

// GetByID returns the user whether or not it is active.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := parseID(id, "user")
	if err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, oid)
}

// ListByRole returns active users with role. An unknown role lists nothing.
func (s *UserService) ListByRole(ctx context.Context, role string) ([]models.User, error) {
	if !models.Role(role).Valid() {
		return []models.User{}, nil
	}
	return s.users.List(ctx, repository.UserFilter{Role: models.Role(role), ActiveOnly: true})
}

// Create registers the user for principalUID, which must match req.UID.
func (s *UserService) Create(ctx context.Context, principalUID string, req validation.CreateUserRequest, files UserFiles) (*models.User, error) {
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}
	if principalUID != req.UID {
		return nil, ErrIdentityMismatch
	}

	if _, err := s.users.FindByUID(ctx, req.UID); err == nil {
		return nil, fmt.Errorf("user uid %s: %w", req.UID, repository.ErrDuplicate)
	} else if !isNotFound(err) {
		return nil, err
	}

	user := &models.User{
		UID:            req.UID,
		Name:           req.Name,
		Email:          req.Email,
		Role:           models.Role(req.Role),
		Phone:          req.Phone,
		Location:       req.Location,
		Headline:       req.Headline,
		Bio:            req.Bio,
		Skills:         nonNil(req.Skills),
		Education:      nonNil(req.Education),
		Languages:      nonNil(req.Languages),
		EngagementMode: models.WorkMode(req.EngagementMode),
		PhotoPath:      files.Photo,
		CVPath:         files.CV,
		VideoPath:      files.Video,
		Active:         true,
		Companies:      []primitive.ObjectID{},
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.Welcome(user)
	}
	return user, nil
}

// Update applies a partial profile update. A current executive cannot leave
// the professional role.
func (s *UserService) Update(ctx context.Context, id string, req validation.UpdateUserRequest) (*models.User, error) {
	oid, err := parseID(id, "user")
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(&req); err != nil {
		return nil, err
	}

	if req.Role != nil && models.Role(*req.Role) != models.RoleProfessional {
		current, err := s.users.FindByID(ctx, oid)
		if err != nil {
			return nil, err
		}
		if len(current.Companies) > 0 {
			return nil, fmt.Errorf("user %s: %w", id, ErrExecutiveRole)
		}
	}

	updates := req.Updates()
	if len(updates) == 0 {
		return s.users.FindByID(ctx, oid)
	}
	return s.users.Update(ctx, oid, updates)
}

// Deactivate excludes the user from listings.
func (s *UserService) Deactivate(ctx context.Context, id string) (*models.User, error) {
	oid, err := parseID(id, "user")
	if err != nil {
		return nil, err
	}
	return s.users.Update(ctx, oid, bson.M{"active": false})
}

// SetFile records path on the field selected by kind.
func (s *UserService) SetFile(ctx context.Context, id string, kind UserFile, path string) (*models.User, error) {
	oid, err := parseID(id, "user")
	if err != nil {
		return nil, err
	}
	return s.users.Update(ctx, oid, bson.M{string(kind): path})
}
