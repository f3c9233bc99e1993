package databases

//go generate: mockery --name SchedulerLockDatabase

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/car-rental-api/models"
)

const schedulerLockName = "schedulerLocks"

// SchedulerLockDatabase contains the methods to use with the scheduler lock database
type SchedulerLockDatabase interface {
	TryAcquireLock(ctx context.Context, name, owner string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, name, owner string) error
}

type schedulerLockDatabase struct {
	db DatabaseHelper
}

// NewSchedulerLockDatabase initializes a new instance of scheduler lock database with the provided db connection
func NewSchedulerLockDatabase(db DatabaseHelper) SchedulerLockDatabase {
	return &schedulerLockDatabase{
		db: db,
	}
}

// TryAcquireLock takes the named lock for owner when it is free, expired or
// already held by owner. A lock held by someone else makes the upsert collide
// on _id, which is reported as not acquired.
func (s *schedulerLockDatabase) TryAcquireLock(ctx context.Context, name, owner string, ttl time.Duration) (bool, error) {
	now := time.Now().UTC()
	filter := bson.M{
		"_id": name,
		"$or": []bson.M{
			{"expiresAt": bson.M{"$lt": now}},
			{"owner": owner},
		},
	}
	update := bson.M{
		"$set": bson.M{
			"owner":      owner,
			"acquiredAt": now,
			"expiresAt":  now.Add(ttl),
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	lock := &models.SchedulerLock{}
	err := s.db.Collection(schedulerLockName).FindOneAndUpdate(ctx, filter, update, opts).Decode(&lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) || errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return lock.Owner == owner, nil
}

// ReleaseLock drops the named lock if owner still holds it
func (s *schedulerLockDatabase) ReleaseLock(ctx context.Context, name, owner string) error {
	_, err := s.db.Collection(schedulerLockName).DeleteOne(ctx, bson.M{"_id": name, "owner": owner})
	return err
}
