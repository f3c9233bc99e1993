package mocks

import (
	context "context"
	time "time"

	models "github.com/linesmerrill/car-rental-api/models"
	mock "github.com/stretchr/testify/mock"
	mongo "go.mongodb.org/mongo-driver/mongo"
	options "go.mongodb.org/mongo-driver/mongo/options"
)

// CarDatabase is an autogenerated mock type for the CarDatabase type
type CarDatabase struct {
	mock.Mock
}

// EnsureIndexes provides a mock function with given fields: ctx
func (_m *CarDatabase) EnsureIndexes(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

// Find provides a mock function with given fields: ctx, filter, opts
func (_m *CarDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Car, error) {
	ret := _m.Called(variadic([]interface{}{ctx, filter}, opts)...)

	var r0 []models.Car
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Car)
	}
	return r0, ret.Error(1)
}

// FindOne provides a mock function with given fields: ctx, filter
func (_m *CarDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Car, error) {
	ret := _m.Called(ctx, filter)

	var r0 *models.Car
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.Car)
	}
	return r0, ret.Error(1)
}

// Upsert provides a mock function with given fields: ctx, car
func (_m *CarDatabase) Upsert(ctx context.Context, car models.Car) (*mongo.UpdateResult, error) {
	ret := _m.Called(ctx, car)

	var r0 *mongo.UpdateResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*mongo.UpdateResult)
	}
	return r0, ret.Error(1)
}

// UserOrderDatabase is an autogenerated mock type for the UserOrderDatabase type
type UserOrderDatabase struct {
	mock.Mock
}

// EnsureIndexes provides a mock function with given fields: ctx
func (_m *UserOrderDatabase) EnsureIndexes(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

// Find provides a mock function with given fields: ctx, filter, opts
func (_m *UserOrderDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.UserOrder, error) {
	ret := _m.Called(variadic([]interface{}{ctx, filter}, opts)...)

	var r0 []models.UserOrder
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.UserOrder)
	}
	return r0, ret.Error(1)
}

// FindOne provides a mock function with given fields: ctx, filter
func (_m *UserOrderDatabase) FindOne(ctx context.Context, filter interface{}) (*models.UserOrder, error) {
	ret := _m.Called(ctx, filter)

	var r0 *models.UserOrder
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.UserOrder)
	}
	return r0, ret.Error(1)
}

// UpdateMany provides a mock function with given fields: ctx, filter, update, opts
func (_m *UserOrderDatabase) UpdateMany(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	ret := _m.Called(variadic([]interface{}{ctx, filter, update}, opts)...)

	var r0 *mongo.UpdateResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*mongo.UpdateResult)
	}
	return r0, ret.Error(1)
}

// UpdateOne provides a mock function with given fields: ctx, filter, update, opts
func (_m *UserOrderDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	ret := _m.Called(variadic([]interface{}{ctx, filter, update}, opts)...)

	var r0 *mongo.UpdateResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*mongo.UpdateResult)
	}
	return r0, ret.Error(1)
}

// UpsertOrder provides a mock function with given fields: ctx, customer, order
func (_m *UserOrderDatabase) UpsertOrder(ctx context.Context, customer models.Customer, order models.Order) (bool, error) {
	ret := _m.Called(ctx, customer, order)
	return ret.Bool(0), ret.Error(1)
}

// SchedulerLockDatabase is an autogenerated mock type for the SchedulerLockDatabase type
type SchedulerLockDatabase struct {
	mock.Mock
}

// ReleaseLock provides a mock function with given fields: ctx, name, owner
func (_m *SchedulerLockDatabase) ReleaseLock(ctx context.Context, name string, owner string) error {
	ret := _m.Called(ctx, name, owner)
	return ret.Error(0)
}

// TryAcquireLock provides a mock function with given fields: ctx, name, owner, ttl
func (_m *SchedulerLockDatabase) TryAcquireLock(ctx context.Context, name string, owner string, ttl time.Duration) (bool, error) {
	ret := _m.Called(ctx, name, owner, ttl)
	return ret.Bool(0), ret.Error(1)
}
