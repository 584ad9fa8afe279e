package app

import (
	"log"

	"github.com/robfig/cron/v3"

	"growthpath-insight/personality"
	"growthpath-insight/realtime"
)

// PercentileRefresher re-ranks every analyzed user against the population on
// a cron schedule. Percentiles drift as other users get analyzed between a
// user's own runs; the nightly batch keeps the stored ranks honest.
type PercentileRefresher struct {
	engine   *personality.Engine
	broker   *realtime.Broker
	schedule string
	cron     *cron.Cron
}

// NewPercentileRefresher creates a new refresher with a cron expression
// (standard 5-field format, e.g. "0 3 * * *" for 03:00 daily)
func NewPercentileRefresher(engine *personality.Engine, broker *realtime.Broker, schedule string) *PercentileRefresher {
	return &PercentileRefresher{
		engine:   engine,
		broker:   broker,
		schedule: schedule,
		cron:     cron.New(),
	}
}

// Start registers the batch job and starts the scheduler
func (pr *PercentileRefresher) Start() error {
	_, err := pr.cron.AddFunc(pr.schedule, pr.refresh)
	if err != nil {
		return err
	}

	pr.cron.Start()
	log.Printf("🔄 Percentile refresher scheduled (%s)", pr.schedule)
	return nil
}

// Stop stops the scheduler, waiting for a running batch to finish
func (pr *PercentileRefresher) Stop() {
	ctx := pr.cron.Stop()
	<-ctx.Done()
	log.Println("🔄 Percentile refresher stopped")
}

// refresh runs one full recalculation pass
func (pr *PercentileRefresher) refresh() {
	log.Println("🔄 Running scheduled percentile recalculation...")

	if err := pr.engine.RecalculateAllPercentiles(); err != nil {
		log.Printf("⚠️ Scheduled percentile recalculation failed: %v", err)
		return
	}

	if pr.broker != nil {
		pr.broker.Broadcast(realtime.EventPercentileRefresh, map[string]string{"status": "complete"})
	}
}
