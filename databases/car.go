package databases

//go generate: mockery --name CarDatabase

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/linesmerrill/car-rental-api/models"
)

const carName = "cars"

// CarDatabase contains the methods to use with the car database
type CarDatabase interface {
	FindOne(ctx context.Context, filter interface{}) (*models.Car, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Car, error)
	Upsert(ctx context.Context, car models.Car) (*mongo.UpdateResult, error)
	EnsureIndexes(ctx context.Context) error
}

type carDatabase struct {
	db DatabaseHelper
}

// NewCarDatabase initializes a new instance of car database with the provided db connection
func NewCarDatabase(db DatabaseHelper) CarDatabase {
	return &carDatabase{
		db: db,
	}
}

func (c *carDatabase) FindOne(ctx context.Context, filter interface{}) (*models.Car, error) {
	car := &models.Car{}
	err := c.db.Collection(carName).FindOne(ctx, filter).Decode(&car)
	if err != nil {
		return nil, err
	}
	return car, nil
}

func (c *carDatabase) Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) ([]models.Car, error) {
	cursor, err := c.db.Collection(carName).Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	var cars []models.Car
	err = cursor.Decode(ctx, &cars)
	if err != nil {
		return nil, err
	}
	if cars == nil {
		cars = []models.Car{}
	}
	return cars, nil
}

// Upsert replaces the car with the same _id, inserting it when missing
func (c *carDatabase) Upsert(ctx context.Context, car models.Car) (*mongo.UpdateResult, error) {
	return c.db.Collection(carName).ReplaceOne(ctx, bson.M{"_id": car.ID}, car, options.Replace().SetUpsert(true))
}

// EnsureIndexes makes slug.current unique so it can serve as the lookup key
func (c *carDatabase) EnsureIndexes(ctx context.Context) error {
	_, err := c.db.Collection(carName).CreateIndex(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug.current", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("slug_current_unique"),
	})
	return err
}
