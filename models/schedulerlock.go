package models

import "time"

// SchedulerLock holds the structure for the schedulerLocks collection in mongo.
// A lock is held by Owner until ExpiresAt.
type SchedulerLock struct {
	ID         string    `json:"_id" bson:"_id"`
	Owner      string    `json:"owner" bson:"owner"`
	AcquiredAt time.Time `json:"acquiredAt" bson:"acquiredAt"`
	ExpiresAt  time.Time `json:"expiresAt" bson:"expiresAt"`
}
