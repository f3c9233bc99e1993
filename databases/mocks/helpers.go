// Package mocks holds testify mocks for the databases interfaces.
package mocks

import (
	context "context"

	databases "github.com/linesmerrill/car-rental-api/databases"
	mock "github.com/stretchr/testify/mock"
	mongo "go.mongodb.org/mongo-driver/mongo"
	options "go.mongodb.org/mongo-driver/mongo/options"
)

// DatabaseHelper is an autogenerated mock type for the DatabaseHelper type
type DatabaseHelper struct {
	mock.Mock
}

// Client provides a mock function with given fields:
func (_m *DatabaseHelper) Client() databases.ClientHelper {
	ret := _m.Called()

	var r0 databases.ClientHelper
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(databases.ClientHelper)
	}
	return r0
}

// Collection provides a mock function with given fields: name
func (_m *DatabaseHelper) Collection(name string) databases.CollectionHelper {
	ret := _m.Called(name)

	var r0 databases.CollectionHelper
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(databases.CollectionHelper)
	}
	return r0
}

// ClientHelper is an autogenerated mock type for the ClientHelper type
type ClientHelper struct {
	mock.Mock
}

// Connect provides a mock function with given fields: ctx
func (_m *ClientHelper) Connect(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

// Database provides a mock function with given fields: _a0
func (_m *ClientHelper) Database(_a0 string) databases.DatabaseHelper {
	ret := _m.Called(_a0)

	var r0 databases.DatabaseHelper
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(databases.DatabaseHelper)
	}
	return r0
}

// Disconnect provides a mock function with given fields: ctx
func (_m *ClientHelper) Disconnect(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

// Ping provides a mock function with given fields: ctx
func (_m *ClientHelper) Ping(ctx context.Context) error {
	ret := _m.Called(ctx)
	return ret.Error(0)
}

// SingleResultHelper is an autogenerated mock type for the SingleResultHelper type
type SingleResultHelper struct {
	mock.Mock
}

// Decode provides a mock function with given fields: v
func (_m *SingleResultHelper) Decode(v interface{}) error {
	ret := _m.Called(v)
	return ret.Error(0)
}

// CursorHelper is an autogenerated mock type for the CursorHelper type
type CursorHelper struct {
	mock.Mock
}

// Decode provides a mock function with given fields: ctx, v
func (_m *CursorHelper) Decode(ctx context.Context, v interface{}) error {
	ret := _m.Called(ctx, v)
	return ret.Error(0)
}

// CollectionHelper is an autogenerated mock type for the CollectionHelper type
type CollectionHelper struct {
	mock.Mock
}

func variadic[T any](head []interface{}, opts []T) []interface{} {
	for _, o := range opts {
		head = append(head, o)
	}
	return head
}

// CreateIndex provides a mock function with given fields: _a0, _a1
func (_m *CollectionHelper) CreateIndex(_a0 context.Context, _a1 mongo.IndexModel) (string, error) {
	ret := _m.Called(_a0, _a1)
	return ret.String(0), ret.Error(1)
}

// DeleteOne provides a mock function with given fields: _a0, _a1, _a2
func (_m *CollectionHelper) DeleteOne(_a0 context.Context, _a1 interface{}, _a2 ...*options.DeleteOptions) (*mongo.DeleteResult, error) {
	ret := _m.Called(variadic([]interface{}{_a0, _a1}, _a2)...)

	var r0 *mongo.DeleteResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*mongo.DeleteResult)
	}
	return r0, ret.Error(1)
}

// Find provides a mock function with given fields: _a0, _a1, _a2
func (_m *CollectionHelper) Find(_a0 context.Context, _a1 interface{}, _a2 ...*options.FindOptions) (databases.CursorHelper, error) {
	ret := _m.Called(variadic([]interface{}{_a0, _a1}, _a2)...)

	var r0 databases.CursorHelper
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(databases.CursorHelper)
	}
	return r0, ret.Error(1)
}

// FindOne provides a mock function with given fields: _a0, _a1, _a2
func (_m *CollectionHelper) FindOne(_a0 context.Context, _a1 interface{}, _a2 ...*options.FindOneOptions) databases.SingleResultHelper {
	ret := _m.Called(variadic([]interface{}{_a0, _a1}, _a2)...)

	var r0 databases.SingleResultHelper
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(databases.SingleResultHelper)
	}
	return r0
}

// FindOneAndUpdate provides a mock function with given fields: _a0, _a1, _a2, _a3
func (_m *CollectionHelper) FindOneAndUpdate(_a0 context.Context, _a1 interface{}, _a2 interface{}, _a3 ...*options.FindOneAndUpdateOptions) databases.SingleResultHelper {
	ret := _m.Called(variadic([]interface{}{_a0, _a1, _a2}, _a3)...)

	var r0 databases.SingleResultHelper
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(databases.SingleResultHelper)
	}
	return r0
}

// ReplaceOne provides a mock function with given fields: _a0, _a1, _a2, _a3
func (_m *CollectionHelper) ReplaceOne(_a0 context.Context, _a1 interface{}, _a2 interface{}, _a3 ...*options.ReplaceOptions) (*mongo.UpdateResult, error) {
	ret := _m.Called(variadic([]interface{}{_a0, _a1, _a2}, _a3)...)

	var r0 *mongo.UpdateResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*mongo.UpdateResult)
	}
	return r0, ret.Error(1)
}

// UpdateMany provides a mock function with given fields: _a0, _a1, _a2, _a3
func (_m *CollectionHelper) UpdateMany(_a0 context.Context, _a1 interface{}, _a2 interface{}, _a3 ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	ret := _m.Called(variadic([]interface{}{_a0, _a1, _a2}, _a3)...)

	var r0 *mongo.UpdateResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*mongo.UpdateResult)
	}
	return r0, ret.Error(1)
}

// UpdateOne provides a mock function with given fields: _a0, _a1, _a2, _a3
func (_m *CollectionHelper) UpdateOne(_a0 context.Context, _a1 interface{}, _a2 interface{}, _a3 ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	ret := _m.Called(variadic([]interface{}{_a0, _a1, _a2}, _a3)...)

	var r0 *mongo.UpdateResult
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*mongo.UpdateResult)
	}
	return r0, ret.Error(1)
}
