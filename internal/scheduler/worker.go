package scheduler

import (
	"context"
	"log"
	"time"

	"airea-platform/internal/database"
	"airea-platform/internal/geo"
	"airea-platform/internal/search"
)

// GeocodeWorker backfills coordinates for online listings that were
// created without them, then pushes the updated documents to the search
// index so radius queries can find them.
type GeocodeWorker struct {
	store        *database.GormDB
	geocoder     *geo.Geocoder
	searcher     *search.SearchClient
	stopChan     chan struct{}
	isRunning    bool
	pollInterval time.Duration
	batchSize    int
}

func NewGeocodeWorker(store *database.GormDB, geocoder *geo.Geocoder, searcher *search.SearchClient) *GeocodeWorker {
	return &GeocodeWorker{
		store:        store,
		geocoder:     geocoder,
		searcher:     searcher,
		stopChan:     make(chan struct{}),
		pollInterval: 30 * time.Second,
		batchSize:    10,
	}
}

// Start starts the worker loop.
func (w *GeocodeWorker) Start() {
	if w.isRunning {
		log.Println("GeocodeWorker: already running")
		return
	}

	w.isRunning = true
	log.Printf("GeocodeWorker: started (poll_interval=%v, batch_size=%d)", w.pollInterval, w.batchSize)

	go w.run()
}

// Stop stops the worker loop.
func (w *GeocodeWorker) Stop() {
	if !w.isRunning {
		return
	}

	log.Println("GeocodeWorker: stopping...")
	w.isRunning = false
	close(w.stopChan)
}

func (w *GeocodeWorker) run() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			log.Println("GeocodeWorker: stopped")
			return
		case <-ticker.C:
			w.processBatch()
		}
	}
}

func (w *GeocodeWorker) processBatch() {
	properties, err := w.store.PropertiesMissingCoordinates(w.batchSize)
	if err != nil {
		log.Printf("GeocodeWorker: fetching backlog failed: %v", err)
		return
	}
	if len(properties) == 0 {
		return
	}

	resolved := 0
	for i := range properties {
		p := &properties[i]

		// area resolves more reliably than the full street address
		target := p.Area
		if target == "" {
			target = p.Address
		}
		if target == "" {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		result, err := w.geocoder.Resolve(ctx, target)
		cancel()
		if err != nil {
			log.Printf("GeocodeWorker: geocode of %s (%q) failed: %v", p.ID, target, err)
			continue
		}
		if result == nil {
			log.Printf("GeocodeWorker: no coordinates for %s (%q)", p.ID, target)
			continue
		}

		if err := w.store.SetPropertyCoordinates(p.ID, result.Point.Latitude, result.Point.Longitude); err != nil {
			log.Printf("GeocodeWorker: saving coordinates for %s failed: %v", p.ID, err)
			continue
		}

		if w.searcher != nil {
			p.Latitude = &result.Point.Latitude
			p.Longitude = &result.Point.Longitude
			if err := w.searcher.IndexProperty(p); err != nil {
				log.Printf("GeocodeWorker: reindex of %s failed: %v", p.ID, err)
			}
		}

		resolved++
	}

	if resolved > 0 {
		log.Printf("GeocodeWorker: backfilled coordinates for %d/%d listings", resolved, len(properties))
	}
}
