package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Client is a storefront "trusted by" logo entry managed from the admin panel.
type Client struct {
	Id        bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string        `bson:"name" json:"name"`
	Image     string        `bson:"image" json:"image"`
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
}
