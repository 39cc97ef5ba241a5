package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Blog struct {
	Id          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Image       string        `bson:"image" json:"image"`
	Heading     string        `bson:"heading" json:"heading"`
	Description string        `bson:"description" json:"description"`
	Link        string        `bson:"link" json:"link"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
}
