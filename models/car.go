package models

// Car holds the structure for the cars collection in mongo
type Car struct {
	ID              string   `json:"_id" bson:"_id"`
	Name            string   `json:"name" bson:"name"`
	Type            string   `json:"type" bson:"type"`
	PricePerDay     float64  `json:"pricePerDay" bson:"pricePerDay"`
	OriginalPrice   float64  `json:"originalPrice" bson:"originalPrice"`
	FuelCapacity    string   `json:"fuelCapacity" bson:"fuelCapacity"`
	Transmission    string   `json:"transmission" bson:"transmission"`
	SeatingCapacity string   `json:"seatingCapacity" bson:"seatingCapacity"`
	Brand           string   `json:"brand" bson:"brand"`
	Tags            []string `json:"tags" bson:"tags"`
	Image           Image    `json:"image" bson:"image"`
	Availability    bool     `json:"availability" bson:"availability"`
	Slug            Slug     `json:"slug" bson:"slug"`
}

// Slug is the URL-safe lookup key of a car
type Slug struct {
	Current string `json:"current" bson:"current"`
}

// Image is an opaque reference to an image asset. Resolving it to a URL is
// left to the image delivery service.
type Image struct {
	Asset Reference `json:"asset" bson:"asset"`
}

// Reference points at another document by id
type Reference struct {
	Type string `json:"_type" bson:"_type"`
	Ref  string `json:"_ref" bson:"_ref"`
}

// ReferenceType is the _type value stored on every Reference
const ReferenceType = "reference"

// NewReference returns a Reference to the document with the given id
func NewReference(id string) Reference {
	return Reference{Type: ReferenceType, Ref: id}
}

// CarSummary holds the car fields shown next to an order
type CarSummary struct {
	ID    string `json:"_id" bson:"_id"`
	Name  string `json:"name" bson:"name"`
	Brand string `json:"brand" bson:"brand"`
	Type  string `json:"type" bson:"type"`
	Image Image  `json:"image" bson:"image"`
}

// Summary projects the car onto the fields used by the order history
func (c Car) Summary() CarSummary {
	return CarSummary{
		ID:    c.ID,
		Name:  c.Name,
		Brand: c.Brand,
		Type:  c.Type,
		Image: c.Image,
	}
}
