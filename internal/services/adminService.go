package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/arzan03/TalentBridge/internal/models"
	"github.com/arzan03/TalentBridge/internal/repository"
)

type Stats struct {
	Users        int64 `json:"users"`
	ActiveUsers  int64 `json:"active_users"`
	Companies    int64 `json:"companies"`
	Jobs         int64 `json:"jobs"`
	Applications int64 `json:"applications"`
	Courses      int64 `json:"courses"`
}

type AdminService struct {
	repos *repository.Repositories
}

// NewAdminService builds the back-office service over every repository.
func NewAdminService(repos *repository.Repositories) *AdminService {
	return &AdminService{repos: repos}
}

// ListUsers includes inactive users.
func (s *AdminService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.repos.Users.List(ctx, repository.UserFilter{})
}

// ListCompanies includes inactive companies.
func (s *AdminService) ListCompanies(ctx context.Context) ([]models.Company, error) {
	return s.repos.Companies.List(ctx, false)
}

// Stats gathers the dashboard counters concurrently.
func (s *AdminService) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		st.Users, err = s.repos.Users.Count(ctx, repository.UserFilter{})
		return
	})
	g.Go(func() (err error) {
		st.ActiveUsers, err = s.repos.Users.Count(ctx, repository.UserFilter{ActiveOnly: true})
		return
	})
	g.Go(func() (err error) {
		st.Companies, err = s.repos.Companies.Count(ctx, false)
		return
	})
	g.Go(func() (err error) {
		st.Jobs, err = s.repos.Jobs.Count(ctx)
		return
	})
	g.Go(func() (err error) {
		st.Applications, err = s.repos.Applications.Count(ctx)
		return
	})
	g.Go(func() (err error) {
		st.Courses, err = s.repos.Courses.Count(ctx)
		return
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &st, nil
}
