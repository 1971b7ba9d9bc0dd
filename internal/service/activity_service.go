package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"tiendax/internal/entity"
	"tiendax/internal/model"
)

// ActivityLogCap bounds the number of stored activity entries. Older
// entries are discarded once the cap is exceeded.
const ActivityLogCap = 100

type ActivityService struct {
	repo model.Repository
}

func NewActivityService(repo model.Repository) *ActivityService {
	return &ActivityService{repo: repo}
}

// Log records an activity entry best-effort. Logging must never fail the
// operation that triggered it, so errors are reported and swallowed.
func (s *ActivityService) Log(ctx context.Context, userID uint, userName, action, details string) {
	activity := &entity.DbActivity{
		UserID:   userID,
		UserName: userName,
		Action:   action,
		Details:  details,
	}
	if err := s.repo.CreateActivity(ctx, activity); err != nil {
		logrus.WithError(err).WithField("action", action).Warn("failed to record activity")
		return
	}
	if err := s.repo.TrimActivities(ctx, ActivityLogCap); err != nil {
		logrus.WithError(err).Warn("failed to trim activity log")
	}
}

// List returns the stored activity entries, newest first.
func (s *ActivityService) List(ctx context.Context) ([]entity.DbActivity, error) {
	return s.repo.ListActivities(ctx, ActivityLogCap)
}
