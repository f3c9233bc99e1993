package models

import "time"

// OrderStatus represents the lifecycle state of a single rental order
type OrderStatus string

// Predefined OrderStatus values
const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// orderStatusShipped is the legacy name of OrderStatusConfirmed still present
// on older order documents.
const orderStatusShipped OrderStatus = "shipped"

// ValidOrderStatuses returns all valid OrderStatus values
func ValidOrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPending,
		OrderStatusConfirmed,
		OrderStatusCompleted,
		OrderStatusCancelled,
	}
}

// OpenOrderStatuses returns the stored status values of orders that have not
// finished yet, legacy values included
func OpenOrderStatuses() []OrderStatus {
	return []OrderStatus{
		OrderStatusPending,
		OrderStatusConfirmed,
		orderStatusShipped,
	}
}

// IsValid checks if the OrderStatus value is one of the predefined constants
func (s OrderStatus) IsValid() bool {
	for _, valid := range ValidOrderStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// Normalize maps legacy status values onto the canonical set. Unknown values
// are treated as pending.
func (s OrderStatus) Normalize() OrderStatus {
	if s == orderStatusShipped {
		return OrderStatusConfirmed
	}
	if !s.IsValid() {
		return OrderStatusPending
	}
	return s
}

// UserOrder holds the structure for the userOrders collection in mongo. There
// is at most one UserOrder per userEmail.
type UserOrder struct {
	ID          string    `json:"_id" bson:"_id"`
	UserName    string    `json:"userName" bson:"userName"`
	UserEmail   string    `json:"userEmail" bson:"userEmail"`
	PhoneNumber string    `json:"phoneNumber" bson:"phoneNumber"`
	Orders      []Order   `json:"orders" bson:"orders"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Order holds a single rental inside a UserOrder
type Order struct {
	Key        string      `json:"_key" bson:"_key"`
	Car        Reference   `json:"car" bson:"car"`
	StartDate  time.Time   `json:"startDate" bson:"startDate"`
	EndDate    time.Time   `json:"endDate" bson:"endDate"`
	TrackingID string      `json:"trackingId" bson:"trackingId"`
	Status     OrderStatus `json:"status" bson:"status"`
	CreatedAt  time.Time   `json:"createdAt" bson:"createdAt"`
}

// Customer identifies the renter a UserOrder belongs to
type Customer struct {
	Name  string
	Email string
	Phone string
}

// NormalizeStatuses rewrites every order status onto the canonical set
func (u *UserOrder) NormalizeStatuses() {
	for i := range u.Orders {
		u.Orders[i].Status = u.Orders[i].Status.Normalize()
	}
}

// FindOrder returns the order with the given tracking id
func (u *UserOrder) FindOrder(trackingID string) (Order, bool) {
	for _, o := range u.Orders {
		if o.TrackingID == trackingID {
			return o, true
		}
	}
	return Order{}, false
}

// CarIDs returns the distinct car ids referenced by the orders, in order of
// first appearance
func (u *UserOrder) CarIDs() []string {
	seen := make(map[string]bool, len(u.Orders))
	ids := make([]string, 0, len(u.Orders))
	for _, o := range u.Orders {
		if o.Car.Ref == "" || seen[o.Car.Ref] {
			continue
		}
		seen[o.Car.Ref] = true
		ids = append(ids, o.Car.Ref)
	}
	return ids
}

// OrderHistory is the read-only projection of a UserOrder returned to the renter
type OrderHistory struct {
	ID          string      `json:"_id"`
	UserName    string      `json:"userName"`
	UserEmail   string      `json:"userEmail"`
	PhoneNumber string      `json:"phoneNumber"`
	Orders      []OrderView `json:"orders"`
}

// OrderView is an Order with its car reference expanded. Car is nil when the
// referenced car no longer exists.
type OrderView struct {
	Key        string      `json:"_key"`
	TrackingID string      `json:"trackingId"`
	StartDate  time.Time   `json:"startDate"`
	EndDate    time.Time   `json:"endDate"`
	Status     OrderStatus `json:"status"`
	Car        *CarSummary `json:"car"`
}

// NewOrderHistory expands the car references of u using cars, keyed by car id.
// Rental dates are shown in loc, UTC when nil.
func NewOrderHistory(u UserOrder, cars map[string]CarSummary, loc *time.Location) OrderHistory {
	if loc == nil {
		loc = time.UTC
	}
	h := OrderHistory{
		ID:          u.ID,
		UserName:    u.UserName,
		UserEmail:   u.UserEmail,
		PhoneNumber: u.PhoneNumber,
		Orders:      make([]OrderView, 0, len(u.Orders)),
	}
	for _, o := range u.Orders {
		v := OrderView{
			Key:        o.Key,
			TrackingID: o.TrackingID,
			StartDate:  o.StartDate.In(loc),
			EndDate:    o.EndDate.In(loc),
			Status:     o.Status.Normalize(),
		}
		if c, ok := cars[o.Car.Ref]; ok {
			summary := c
			v.Car = &summary
		}
		h.Orders = append(h.Orders, v)
	}
	return h
}
