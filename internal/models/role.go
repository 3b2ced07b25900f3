package models

import "time"

// Role is an access role that documents and users reference by id.
// Roles are created out-of-band (admin endpoints) and are not cascaded
// when deleted; documents keep the role id they were created with.
type Role struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Title     string    `bson:"title" json:"title"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
