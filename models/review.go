package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Review struct {
	Id          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserId      string        `bson:"userId" json:"userId"`
	Name        string        `bson:"name" json:"name"`
	CompanyName string        `bson:"companyName" json:"companyName"`
	Phone       string        `bson:"phone" json:"phone"`
	Email       string        `bson:"email" json:"email"`
	Review      string        `bson:"review" json:"review"`
	CreatedAt   time.Time     `bson:"createdAt" json:"createdAt"`
}
