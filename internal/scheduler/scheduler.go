package scheduler

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"airea-platform/internal/config"
	"airea-platform/internal/database"
	"airea-platform/internal/models"
	"airea-platform/internal/search"
	"airea-platform/internal/snapshot"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the daily maintenance job: listing expiry, price
// snapshots and saved-search alerts.
type Scheduler struct {
	cron      *cron.Cron
	store     *database.GormDB
	snapshot  *snapshot.Service
	searcher  *search.SearchClient
	config    *config.Config
	isRunning bool
}

func NewScheduler(store *database.GormDB, searcher *search.SearchClient, cfg *config.Config) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		store:    store,
		snapshot: snapshot.NewService(store.DB()),
		searcher: searcher,
		config:   cfg,
	}
}

// Start registers the daily job and starts the cron loop.
func (s *Scheduler) Start() error {
	if !s.config.Scheduler.DailyRunEnabled {
		log.Println("Scheduler: daily run is disabled in configuration")
		return nil
	}

	cronSpec := s.parseDailyRunTime(s.config.Scheduler.DailyRunTime)

	_, err := s.cron.AddFunc(cronSpec, func() {
		log.Println("Scheduler: starting daily maintenance...")
		if err := s.runDailyMaintenance(); err != nil {
			log.Printf("Scheduler: daily maintenance failed: %v", err)
		} else {
			log.Println("Scheduler: daily maintenance completed")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.isRunning = true
	log.Printf("Scheduler: started with daily run at %s (cron: %s)", s.config.Scheduler.DailyRunTime, cronSpec)

	return nil
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	if s.isRunning {
		s.cron.Stop()
		s.isRunning = false
		log.Println("Scheduler: stopped")
	}
}

func (s *Scheduler) runDailyMaintenance() error {
	if err := s.expireListings(); err != nil {
		log.Printf("Scheduler: listing expiry failed: %v", err)
	}

	if err := s.snapshotListings(); err != nil {
		log.Printf("Scheduler: price snapshots failed: %v", err)
	}

	if err := s.sendSavedSearchAlerts(); err != nil {
		log.Printf("Scheduler: saved-search alerts failed: %v", err)
	}

	return nil
}

// expireListings moves listings online longer than the configured
// number of days to expired and drops them from the search index.
func (s *Scheduler) expireListings() error {
	days := s.config.Scheduler.ListingExpiryDays
	if days <= 0 {
		return nil
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	expired, err := s.store.ExpireOnlineListings(cutoff)
	if err != nil {
		return err
	}

	for i := range expired {
		if err := s.snapshot.RecordSnapshot(&expired[i]); err != nil {
			log.Printf("Scheduler: snapshot for expired listing %s failed: %v", expired[i].ID, err)
		}
		if s.searcher != nil {
			if err := s.searcher.RemoveProperty(expired[i].ID); err != nil {
				log.Printf("Scheduler: deindex of %s failed: %v", expired[i].ID, err)
			}
		}
	}

	log.Printf("Scheduler: expired %d listings older than %d days", len(expired), days)
	return nil
}

func (s *Scheduler) snapshotListings() error {
	properties, err := s.store.GetAllOnlineProperties()
	if err != nil {
		return err
	}

	count, err := s.snapshot.SnapshotAll(properties)
	if err != nil {
		return err
	}

	log.Printf("Scheduler: recorded %d price snapshots", count)
	return nil
}

// sendSavedSearchAlerts matches listings that went online in the last
// day against alert-enabled saved searches and notifies their owners.
func (s *Scheduler) sendSavedSearchAlerts() error {
	fresh, err := s.store.OnlinePropertiesSince(time.Now().Add(-24 * time.Hour))
	if err != nil {
		return err
	}
	if len(fresh) == 0 {
		return nil
	}

	searches, err := s.store.GetAlertableSearches()
	if err != nil {
		return err
	}

	alerted := 0
	for _, ss := range searches {
		var filters search.Filters
		if ss.FiltersJSON != "" {
			if err := json.Unmarshal([]byte(ss.FiltersJSON), &filters); err != nil {
				log.Printf("Scheduler: bad filters on saved search %d: %v", ss.ID, err)
				continue
			}
		}

		var matched []string
		for i := range fresh {
			if filters.Matches(&fresh[i]) {
				matched = append(matched, fresh[i].ID)
			}
		}
		if len(matched) == 0 {
			continue
		}

		payload, _ := json.Marshal(map[string]interface{}{
			"savedSearchId": ss.ID,
			"query":         ss.Query,
			"propertyIds":   matched,
		})
		n := &models.Notification{
			RecipientID: ss.UserID,
			Kind:        models.NotificationKindSavedSearch,
			Title:       fmt.Sprintf("%d new listings match \"%s\"", len(matched), ss.Query),
			Payload:     string(payload),
		}
		if err := s.store.CreateNotification(n); err != nil {
			log.Printf("Scheduler: notification for saved search %d failed: %v", ss.ID, err)
			continue
		}
		if err := s.store.TouchSavedSearch(ss.ID, time.Now()); err != nil {
			log.Printf("Scheduler: touch of saved search %d failed: %v", ss.ID, err)
		}
		alerted++
	}

	log.Printf("Scheduler: sent alerts for %d saved searches (%d new listings)", alerted, len(fresh))
	return nil
}

// RunNow immediately executes the maintenance job (for manual trigger)
func (s *Scheduler) RunNow() error {
	log.Println("Scheduler: manual trigger - starting maintenance...")
	return s.runDailyMaintenance()
}

// parseDailyRunTime converts HH:MM format to cron specification
// Example: "02:00" -> "0 2 * * *" (run at 2:00 AM every day)
func (s *Scheduler) parseDailyRunTime(timeStr string) string {
	var hour, minute int
	n, _ := fmt.Sscanf(timeStr, "%d:%d", &hour, &minute)
	if n == 2 && hour >= 0 && hour < 24 && minute >= 0 && minute < 60 {
		return fmt.Sprintf("%d %d * * *", minute, hour)
	}

	log.Printf("Scheduler: failed to parse time '%s', using default 02:00", timeStr)
	return "0 2 * * *"
}
