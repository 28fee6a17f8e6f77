// Package store persists the session conveniences that survive restarts:
// a TTL cache of fetched movie insights and a bounded history of confirmed
// bookings. Seat inventory is never persisted; every booking session starts
// from a fresh map.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"cinesphere/model"
)

const (
	insightCacheTTL   = 24 * time.Hour
	maxRecentBookings = 10
	appDirName        = "cinesphere"
)

type cacheEnvelope[T any] struct {
	UpdatedAt time.Time `json:"updated_at"`
	Data      T         `json:"data"`
}

// Receipt is one confirmed booking as kept in the local history.
type Receipt struct {
	Reference  string    `json:"reference"`
	MovieID    string    `json:"movie_id"`
	MovieTitle string    `json:"movie_title"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	Seats      []string  `json:"seats"`
	Total      float64   `json:"total"`
	BookedAt   time.Time `json:"booked_at"`
}

type bookingHistory struct {
	Bookings []Receipt `json:"bookings"`
}

// LoadInsightCache returns the cached insights for a movie and whether the
// entry is still fresh. A missing cache file is not an error.
func LoadInsightCache(movieID string) (model.Insights, bool, error) {
	path, err := cachePath(fmt.Sprintf("insights_%s.json", movieID))
	if err != nil {
		return model.Insights{}, false, err
	}
	cache, err := loadCache[model.Insights](path)
	if err != nil {
		return model.Insights{}, false, err
	}
	if cache.UpdatedAt.IsZero() {
		return model.Insights{}, false, nil
	}
	return cache.Data, time.Since(cache.UpdatedAt) <= insightCacheTTL, nil
}

func SaveInsightCache(movieID string, insights model.Insights) error {
	path, err := cachePath(fmt.Sprintf("insights_%s.json", movieID))
	if err != nil {
		return err
	}
	return saveCache(path, insights)
}

// LoadRecentBookings returns the booking history, most recent first.
func LoadRecentBookings() ([]Receipt, error) {
	path, err := configPath("bookings.json")
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var history bookingHistory
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, errors.New("invalid booking history format")
	}
	return history.Bookings, nil
}

// RememberBooking prepends a confirmed booking to the history, keeping it
// bounded.
func RememberBooking(receipt Receipt) error {
	history, _ := LoadRecentBookings()
	next := []Receipt{receipt}
	for _, existing := range history {
		if existing.Reference == receipt.Reference && existing.Reference != "" {
			continue
		}
		next = append(next, existing)
		if len(next) >= maxRecentBookings {
			break
		}
	}
	return saveRecentBookings(next)
}

func loadCache[T any](path string) (cacheEnvelope[T], error) {
	var cache cacheEnvelope[T]
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cache, nil
		}
		return cache, err
	}
	if err := json.Unmarshal(data, &cache); err != nil {
		return cache, err
	}
	return cache, nil
}

func saveCache[T any](path string, data T) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	cache := cacheEnvelope[T]{
		UpdatedAt: time.Now(),
		Data:      data,
	}
	payload, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func saveRecentBookings(bookings []Receipt) error {
	path, err := configPath("bookings.json")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	history := bookingHistory{Bookings: bookings}
	payload, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, payload, 0o644)
}

func configPath(name string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName, name), nil
}

func cachePath(name string) (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDirName, name), nil
}
