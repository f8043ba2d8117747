package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product statuses. Status only ever moves between these two values.
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Product represents a product in the catalog
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description" json:"description"`
	Brand       string             `bson:"brand" json:"brand"`
	Flavor      string             `bson:"flavor" json:"flavor"`
	Category    string             `bson:"category" json:"category"`
	Price       float64            `bson:"price" json:"price"`
	Status      string             `bson:"status" json:"status"`
	Image       string             `bson:"image" json:"image"`
	Images      []string           `bson:"images,omitempty" json:"images,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}

// Color represents a selectable product color
type Color struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name  string             `bson:"name" json:"name"`
	Value string             `bson:"value" json:"value"`
}
