package scheduler

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/linesmerrill/car-rental-api/api"
	"github.com/linesmerrill/car-rental-api/databases"
	"github.com/linesmerrill/car-rental-api/models"
)

const (
	completionJob     = "complete_expired_orders"
	completionLockTTL = 10 * time.Minute
)

// Scheduler handles periodic background jobs for rental orders
type Scheduler struct {
	cron       *cron.Cron
	UODB       databases.UserOrderDatabase
	LockDB     databases.SchedulerLockDatabase
	Location   *time.Location
	Now        func() time.Time
	instanceID string
}

// NewScheduler creates a new scheduler instance running its jobs in loc
func NewScheduler(uoDB databases.UserOrderDatabase, lockDB databases.SchedulerLockDatabase, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	// Heroku sets DYNO to "web.1", "web.2", etc.
	instanceID := os.Getenv("DYNO")
	if instanceID == "" {
		instanceID = fmt.Sprintf("instance-%d", time.Now().UnixNano())
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(loc)),
		UODB:       uoDB,
		LockDB:     lockDB,
		Location:   loc,
		Now:        time.Now,
		instanceID: instanceID,
	}
}

// Start registers the completion job on schedule and starts the scheduler
func (s *Scheduler) Start(schedule string) error {
	if _, err := s.cron.AddFunc(schedule, s.completeExpiredOrders); err != nil {
		return fmt.Errorf("failed to register %s job: %w", completionJob, err)
	}
	s.cron.Start()
	zap.S().Infow("Order scheduler started", "schedule", schedule, "instance", s.instanceID)
	return nil
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("Order scheduler stopped")
}

func (s *Scheduler) completeExpiredOrders() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	acquired, err := s.LockDB.TryAcquireLock(ctx, completionJob, s.instanceID, completionLockTTL)
	if err != nil {
		zap.S().Errorw("failed to acquire lock for completion job", "error", err)
		return
	}
	if !acquired {
		zap.S().Debug("Completion job already running on another instance, skipping")
		return
	}
	defer s.LockDB.ReleaseLock(ctx, completionJob, s.instanceID)

	if _, err := s.CompleteExpiredOrders(ctx); err != nil {
		zap.S().Errorw("completion job failed", "error", err)
	}
}

// CompleteExpiredOrders marks every open order whose end date is before today
// as completed and returns the number of customer records touched
func (s *Scheduler) CompleteExpiredOrders(ctx context.Context) (int64, error) {
	y, m, d := s.Now().In(s.Location).Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, s.Location)

	filter, update, opts := completionUpdate(today)
	ctx, cancel := api.WithQueryTimeout(ctx)
	defer cancel()
	res, err := s.UODB.UpdateMany(ctx, filter, update, opts)
	if err != nil {
		return 0, fmt.Errorf("failed to complete expired orders: %w", err)
	}

	api.OrdersCompletedTotal.Add(float64(res.ModifiedCount))
	zap.S().Infow("Completed expired orders",
		"records", res.ModifiedCount,
		"before", today,
		"instance", s.instanceID,
	)
	return res.ModifiedCount, nil
}

func completionUpdate(today time.Time) (bson.M, bson.M, *options.UpdateOptions) {
	expired := bson.M{
		"status":  bson.M{"$in": models.OpenOrderStatuses()},
		"endDate": bson.M{"$lt": today},
	}
	filter := bson.M{"orders": bson.M{"$elemMatch": expired}}
	update := bson.M{
		"$set": bson.M{
			"orders.$[o].status": models.OrderStatusCompleted,
			"updatedAt":          time.Now().UTC(),
		},
	}
	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{
			"o.status":  bson.M{"$in": models.OpenOrderStatuses()},
			"o.endDate": bson.M{"$lt": today},
		}},
	})
	return filter, update, opts
}
