package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/arzan03/TalentBridge/internal/models"
	"github.com/arzan03/TalentBridge/internal/repository"
)

var (
	ErrIdentityMismatch = errors.New("authenticated identity does not match payload uid")
	ErrNotProfessional  = errors.New("user must have the professional role")
	ErrExecutiveRole    = errors.New("executives must keep the professional role")
	ErrInvalidAction    = errors.New("action must be add or remove")
	ErrInvalidID        = errors.New("invalid id")
	ErrInvalidQuestions = errors.New("questions must be a JSON array")
	ErrForbidden        = errors.New("access denied")
)

// MissingError reports that a referenced entity does not exist.
type MissingError struct {
	Resource string
	Err      error
}

func (e *MissingError) Error() string { return e.Resource + " not found: " + e.Err.Error() }

func (e *MissingError) Unwrap() error { return e.Err }

// missing names the entity behind a not-found lookup. Other errors pass
// through unchanged.
func missing(resource string, err error) error {
	if isNotFound(err) {
		return &MissingError{Resource: resource, Err: err}
	}
	return err
}

func parseID(hex, what string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%s %q: %w", what, hex, ErrInvalidID)
	}
	return id, nil
}

// inTx runs fn in a transaction, or directly when the deployment has none.
func inTx(ctx context.Context, tx repository.Transactor, fn func(ctx context.Context) error) error {
	err := tx.WithTransaction(ctx, fn)
	if errors.Is(err, repository.ErrTxUnsupported) {
		log.Debug("Transactions unsupported, running without one")
		return fn(ctx)
	}
	return err
}

func summaries(users []models.User) map[primitive.ObjectID]models.UserSummary {
	out := make(map[primitive.ObjectID]models.UserSummary, len(users))
	for i := range users {
		out[users[i].ID] = users[i].Summary()
	}
	return out
}

func uniqueIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
