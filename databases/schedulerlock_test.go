package databases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/linesmerrill/car-rental-api/databases"
	"github.com/linesmerrill/car-rental-api/databases/mocks"
	"github.com/linesmerrill/car-rental-api/models"
)

func lockDBReturning(decodeErr error, owner string) *mocks.DatabaseHelper {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}
	srHelper := &mocks.SingleResultHelper{}

	srHelper.On("Decode", mock.Anything).Return(decodeErr).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.SchedulerLock)
		(*arg).ID = "complete_expired_orders"
		(*arg).Owner = owner
	})
	collectionHelper.On("FindOneAndUpdate", context.Background(), mock.MatchedBy(func(filter bson.M) bool {
		return filter["_id"] == "complete_expired_orders"
	}), mock.Anything, mock.Anything).Return(srHelper)
	dbHelper.On("Collection", "schedulerLocks").Return(collectionHelper)
	return dbHelper
}

func TestSchedulerLockDatabase_TryAcquireLock(t *testing.T) {
	lockDB := databases.NewSchedulerLockDatabase(lockDBReturning(nil, "web.1"))

	ok, err := lockDB.TryAcquireLock(context.Background(), "complete_expired_orders", "web.1", time.Minute)

	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestSchedulerLockDatabase_TryAcquireLockHeldElsewhere(t *testing.T) {
	dupErr := mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}}}
	lockDB := databases.NewSchedulerLockDatabase(lockDBReturning(dupErr, ""))

	ok, err := lockDB.TryAcquireLock(context.Background(), "complete_expired_orders", "web.1", time.Minute)

	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestSchedulerLockDatabase_TryAcquireLockError(t *testing.T) {
	lockDB := databases.NewSchedulerLockDatabase(lockDBReturning(errors.New("mocked-error"), ""))

	ok, err := lockDB.TryAcquireLock(context.Background(), "complete_expired_orders", "web.1", time.Minute)

	assert.EqualError(t, err, "mocked-error")
	assert.False(t, ok)
}

func TestSchedulerLockDatabase_ReleaseLock(t *testing.T) {
	dbHelper := &mocks.DatabaseHelper{}
	collectionHelper := &mocks.CollectionHelper{}

	collectionHelper.On("DeleteOne", context.Background(), bson.M{"_id": "complete_expired_orders", "owner": "web.1"}).
		Return(&mongo.DeleteResult{DeletedCount: 1}, nil)
	dbHelper.On("Collection", "schedulerLocks").Return(collectionHelper)

	err := databases.NewSchedulerLockDatabase(dbHelper).ReleaseLock(context.Background(), "complete_expired_orders", "web.1")

	assert.NoError(t, err)
	collectionHelper.AssertExpectations(t)
}
