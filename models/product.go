package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Product struct {
	Id            bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string        `bson:"name" json:"name"`
	Slug          string        `bson:"slug" json:"slug"`
	Description   string        `bson:"description" json:"description"`
	Price         float64       `bson:"price" json:"price"`
	Quantity      int           `bson:"quantity" json:"quantity"`
	CategoryId    bson.ObjectID `bson:"categoryId" json:"categoryId"`
	CategoryName  string        `bson:"categoryName" json:"categoryName"`
	Points        []string      `bson:"points" json:"points"`
	MaterialsCare string        `bson:"materialsCare" json:"materialsCare"`
	Dimensions    string        `bson:"dimensions" json:"dimensions"`
	Images        []string      `bson:"images" json:"images"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updatedAt" json:"updatedAt"`
}
