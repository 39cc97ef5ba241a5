package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Category struct {
	Id            bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string        `bson:"name" json:"name"`
	Slug          string        `bson:"slug" json:"slug"`
	BannerImage   string        `bson:"bannerImage" json:"bannerImage"`
	HeadingImage  string        `bson:"headingImage" json:"headingImage"`
	BannerHeading string        `bson:"bannerHeading" json:"bannerHeading"`
	Filters       []string      `bson:"filters" json:"filters"`
	CreatedAt     time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time     `bson:"updatedAt" json:"updatedAt"`
}
