package document

import "time"

// Document is the persistent document model. UserID and Role are foreign
// references validated at creation time; they are not re-validated on reads
// and there is no cascading delete when the referenced role or user goes away.
type Document struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	Title     string    `json:"title" bson:"title"`
	Content   string    `json:"content,omitempty" bson:"content,omitempty"`
	UserID    string    `json:"userId" bson:"userId"`
	Role      string    `json:"role" bson:"role"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Patch is an arbitrary-field update applied to an existing document.
// Only title, content and role are honored; unknown keys are ignored.
type Patch map[string]interface{}
