package handlers_test

import (
	"encoding/json"

	"github.com/linesmerrill/car-rental-api/models"
)

func errorBody(message, err string) string {
	b, _ := json.Marshal(models.ErrorMessageResponse{Response: models.MessageError{Message: message, Error: err}})
	return string(b)
}

func testCatalog() []models.Car {
	return []models.Car{
		{ID: "c1", Name: "Koenigsegg", Type: "Sport", SeatingCapacity: "2 People", FuelCapacity: "90L", Slug: models.Slug{Current: "koenigsegg"}},
		{ID: "c2", Name: "Nissan GT-R", Type: "Sport", SeatingCapacity: "2 People", FuelCapacity: "80L", PricePerDay: 80, OriginalPrice: 100, Slug: models.Slug{Current: "nissan-gt-r"}},
		{ID: "c3", Name: "Rolls-Royce", Type: "Sedan", SeatingCapacity: "4 People", FuelCapacity: "70L", Slug: models.Slug{Current: "rolls-royce"}},
		{ID: "c4", Name: "CR-V", Type: "SUV", SeatingCapacity: "6 People", FuelCapacity: "80L", Slug: models.Slug{Current: "cr-v"}},
	}
}

func carIDs(cars []models.Car) []string {
	out := []string{}
	for _, c := range cars {
		out = append(out, c.ID)
	}
	return out
}
