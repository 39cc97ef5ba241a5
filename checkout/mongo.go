package checkout

import (
	"context"
	"errors"
	"time"

	"github.com/apsaracreations/apsarabackend/models"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

type MongoOrders struct {
	Col *mongo.Collection
}

func (s MongoOrders) MarkPaid(ctx context.Context, gatewayOrderId, paymentId, signature string, now time.Time) (*models.Order, error) {
	var order models.Order
	err := s.Col.FindOneAndUpdate(ctx,
		bson.M{"razorpayOrderId": gatewayOrderId, "status": models.OrderStatusPending},
		bson.M{"$set": bson.M{
			"razorpayPaymentId": paymentId,
			"razorpaySignature": signature,
			"status":            models.OrderStatusPaid,
			"updatedAt":         now,
		}},
	).Decode(&order)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

func (s MongoOrders) Exists(ctx context.Context, gatewayOrderId string) (bool, error) {
	count, err := s.Col.CountDocuments(ctx, bson.M{"razorpayOrderId": gatewayOrderId})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

type MongoProducts struct {
	Col *mongo.Collection
}

func (s MongoProducts) DecrementStock(ctx context.Context, productId bson.ObjectID, quantity int) error {
	_, err := s.Col.UpdateByID(ctx, productId,
		bson.M{"$inc": bson.M{"quantity": -quantity}})
	return err
}

type MongoCarts struct {
	Col *mongo.Collection
}

func (s MongoCarts) DeleteByUser(ctx context.Context, userId string) error {
	_, err := s.Col.DeleteOne(ctx, bson.M{"user": userId})
	return err
}
