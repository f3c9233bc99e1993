package databases

//go generate: mockery --name UserOrderDatabase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/car-rental-api/models"
)

const userOrderName = "userOrders"

// UserOrderDatabase contains the methods to use with the userOrder database
type UserOrderDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.UserOrder, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.UserOrder, error)
	UpsertOrder(ctx context.Context, customer models.Customer, order models.Order) (bool, error)
	UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	UpdateMany(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error)
	EnsureIndexes(ctx context.Context) error
}

type userOrderDatabase struct {
	db    DatabaseHelper
	newID func() string
}

// NewUserOrderDatabase initializes a new instance of userOrder database with the provided db connection
func NewUserOrderDatabase(db DatabaseHelper) UserOrderDatabase {
	return &userOrderDatabase{
		db:    db,
		newID: uuid.NewString,
	}
}

func (u *userOrderDatabase) FindOne(ctx context.Context, filter interface{}) (*models.UserOrder, error) {
	userOrder := &models.UserOrder{}
	err := u.db.Collection(userOrderName).FindOne(ctx, filter).Decode(&userOrder)
	if err != nil {
		return nil, err
	}
	userOrder.NormalizeStatuses()
	return userOrder, nil
}

func (u *userOrderDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.UserOrder, error) {
	cursor, err := u.db.Collection(userOrderName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var userOrders []models.UserOrder
	err = cursor.Decode(ctx, &userOrders)
	if err != nil {
		return nil, err
	}
	for i := range userOrders {
		userOrders[i].NormalizeStatuses()
	}
	return userOrders, nil
}

// UpsertOrder appends order to the record matching both the customer's email
// and name, creating the record when no document has that email yet. It is a
// single atomic write. When a record with the same email but another name
// exists, the insert collides with the unique userEmail index and a duplicate
// key error is returned (see mongo.IsDuplicateKeyError). The returned bool
// reports whether a new record was created.
func (u *userOrderDatabase) UpsertOrder(ctx context.Context, customer models.Customer, order models.Order) (bool, error) {
	now := time.Now().UTC()
	filter := bson.M{
		"userEmail": customer.Email,
		"userName":  customer.Name,
	}
	update := bson.M{
		"$setOnInsert": bson.M{
			"_id":         u.newID(),
			"phoneNumber": customer.Phone,
			"createdAt":   now,
		},
		"$push": bson.M{"orders": order},
		"$set":  bson.M{"updatedAt": now},
	}
	res, err := u.db.Collection(userOrderName).UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}

func (u *userOrderDatabase) UpdateOne(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	res, err := u.db.Collection(userOrderName).UpdateOne(ctx, filter, update, opts...)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (u *userOrderDatabase) UpdateMany(ctx context.Context, filter interface{}, update interface{}, opts ...*options.UpdateOptions) (*mongo.UpdateResult, error) {
	res, err := u.db.Collection(userOrderName).UpdateMany(ctx, filter, update, opts...)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// EnsureIndexes makes userEmail unique, which is what keeps a single record per email
func (u *userOrderDatabase) EnsureIndexes(ctx context.Context) error {
	_, err := u.db.Collection(userOrderName).CreateIndex(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userEmail", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("userEmail_unique"),
	})
	return err
}
