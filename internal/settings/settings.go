package settings

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/trimconnect/salon-booking-api/internal/cache"
	"github.com/trimconnect/salon-booking-api/internal/geo"
	"github.com/trimconnect/salon-booking-api/internal/models"
)

// Setting keys.
const (
	KeyMapProvider = "map_provider"
	KeySMSEnabled  = "sms_notifications_enabled"
)

const cacheKey = "platform:settings"

// Values is the typed view of the platform settings table.
type Values struct {
	MapProvider geo.MapProvider `json:"map_provider"`
	SMSEnabled  bool            `json:"sms_notifications_enabled"`
}

func defaults() Values {
	return Values{
		MapProvider: geo.ProviderOSM,
		SMSEnabled:  true,
	}
}

// Service reads platform settings from the database through a TTL cache.
// It replaces the module-level config singleton of the old client: settings
// are injected where needed and go stale for at most the cache TTL.
type Service struct {
	db    *gorm.DB
	cache cache.Cache
	ttl   time.Duration
}

func NewService(db *gorm.DB, c cache.Cache, ttl time.Duration) *Service {
	return &Service{db: db, cache: c, ttl: ttl}
}

// Get returns the current settings. A cache failure falls back to the
// database; a database failure falls back to defaults so reads never error.
func (s *Service) Get(ctx context.Context) Values {
	if raw, ok, err := s.cache.Get(ctx, cacheKey); err == nil && ok {
		var v Values
		if err := json.Unmarshal(raw, &v); err == nil {
			return v
		}
	}

	v := s.load(ctx)

	if raw, err := json.Marshal(v); err == nil {
		if err := s.cache.Set(ctx, cacheKey, raw, s.ttl); err != nil {
			log.Println("settings cache set:", err)
		}
	}

	return v
}

func (s *Service) load(ctx context.Context) Values {
	v := defaults()

	var rows []models.PlatformSetting
	if err := s.db.WithContext(ctx).Find(&rows).Error; err != nil {
		log.Println("settings load:", err)
		return v
	}

	for _, row := range rows {
		switch row.Key {
		case KeyMapProvider:
			if row.Value == string(geo.ProviderGoogle) {
				v.MapProvider = geo.ProviderGoogle
			} else {
				v.MapProvider = geo.ProviderOSM
			}
		case KeySMSEnabled:
			v.SMSEnabled = row.Value == "true"
		}
	}

	return v
}

// Set upserts one setting and invalidates the cache so the next read
// refreshes from the database.
func (s *Service) Set(ctx context.Context, key, value string) error {
	row := models.PlatformSetting{Key: key, Value: value}

	err := s.db.WithContext(ctx).Save(&row).Error
	if err != nil {
		return err
	}

	if err := s.cache.Delete(ctx, cacheKey); err != nil {
		log.Println("settings cache invalidate:", err)
	}
	return nil
}

// List returns the raw setting rows for the admin panel.
func (s *Service) List(ctx context.Context) ([]models.PlatformSetting, error) {
	var rows []models.PlatformSetting
	if err := s.db.WithContext(ctx).Order("key ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
