package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/lostfound/internal/client/models"
	"github.com/dmitrijs2005/lostfound/internal/client/storage"
	"github.com/dmitrijs2005/lostfound/internal/logging"
)

// NotificationOption configures a NotificationService.
type NotificationOption func(*NotificationService)

// WithClock overrides the time source used to stamp notifications.
func WithClock(now func() time.Time) NotificationOption {
	return func(s *NotificationService) { s.now = now }
}

// NotificationService keeps the local notice feed and the user's
// notification toggles. Every change is mirrored to storage immediately.
type NotificationService struct {
	repo storage.Repository
	log  logging.Logger
	now  func() time.Time

	mu     sync.Mutex
	loaded bool
	items  []models.NotificationItem
	lastID int64
}

func NewNotificationService(repo storage.Repository, log logging.Logger, opts ...NotificationOption) *NotificationService {
	s := &NotificationService{
		repo: repo,
		log:  log.With("component", "notifications"),
		now:  time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Preferences returns the stored toggles. Absent, null or unreadable settings
// are replaced with the defaults, which are persisted.
func (s *NotificationService) Preferences(ctx context.Context) (models.NotificationPreferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.repo.Get(ctx, storage.KeyNotificationSettings)
	if err != nil {
		return models.NotificationPreferences{}, fmt.Errorf("read notification settings: %w", err)
	}
	if raw != nil {
		var p *models.NotificationPreferences
		switch err := json.Unmarshal(raw, &p); {
		case err != nil:
			s.log.Warn(ctx, "stored notification settings are malformed, resetting to defaults")
		case p != nil:
			return *p, nil
		}
	}

	p := models.DefaultNotificationPreferences()
	if err := s.writePreferences(ctx, p); err != nil {
		return p, err
	}
	return p, nil
}

// SetPreferences overwrites the stored toggles.
func (s *NotificationService) SetPreferences(ctx context.Context, p models.NotificationPreferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writePreferences(ctx, p)
}

func (s *NotificationService) writePreferences(ctx context.Context, p models.NotificationPreferences) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal notification settings: %w", err)
	}
	if err := s.repo.Set(ctx, storage.KeyNotificationSettings, data); err != nil {
		return fmt.Errorf("write notification settings: %w", err)
	}
	return nil
}

// Append adds a notice stamped with the current time. Ids are strictly
// increasing for the lifetime of the service, including across Clear.
func (s *NotificationService) Append(ctx context.Context, message string) (models.NotificationItem, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return models.NotificationItem{}, &ValidationError{Field: "message", Message: "Required"}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return models.NotificationItem{}, err
	}

	item := models.NewNotificationItem(s.lastID+1, message, s.now())
	items := append(append([]models.NotificationItem(nil), s.items...), item)
	if err := s.persist(ctx, items); err != nil {
		return models.NotificationItem{}, err
	}
	s.items = items
	s.lastID = item.ID
	return item, nil
}

// List returns a copy of the feed, oldest first.
func (s *NotificationService) List(ctx context.Context) ([]models.NotificationItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	return append([]models.NotificationItem(nil), s.items...), nil
}

func (s *NotificationService) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureLoaded(ctx); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, storage.KeyNotifications); err != nil {
		return fmt.Errorf("clear notifications: %w", err)
	}
	s.items = nil
	return nil
}

func (s *NotificationService) ensureLoaded(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	raw, err := s.repo.Get(ctx, storage.KeyNotifications)
	if err != nil {
		return fmt.Errorf("read notifications: %w", err)
	}

	var items []models.NotificationItem
	if raw != nil {
		if err := json.Unmarshal(raw, &items); err != nil {
			s.log.Warn(ctx, "stored notifications are malformed, starting empty")
			items = nil
		}
	}
	for _, it := range items {
		if it.ID > s.lastID {
			s.lastID = it.ID
		}
	}
	s.items = items
	s.loaded = true
	return nil
}

func (s *NotificationService) persist(ctx context.Context, items []models.NotificationItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal notifications: %w", err)
	}
	if err := s.repo.Set(ctx, storage.KeyNotifications, data); err != nil {
		return fmt.Errorf("write notifications: %w", err)
	}
	return nil
}
