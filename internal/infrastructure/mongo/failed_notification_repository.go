package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sngm3741/hairline-directory/api/internal/infrastructure/notify"
)

const failedNotificationTarget = "admin_notification"

// FailedNotificationDocument は配信に失敗したモデレーション通知。status=pending のものを再送対象とする。
type FailedNotificationDocument struct {
	Target      string    `bson:"target"`
	Kind        string    `bson:"kind"`
	ItemID      string    `bson:"itemId"`
	Text        string    `bson:"text"`
	Error       string    `bson:"error"`
	Attempts    int       `bson:"attempts"`
	Status      string    `bson:"status"`
	CreatedAt   time.Time `bson:"createdAt"`
	LastTriedAt time.Time `bson:"lastTriedAt"`
}

type FailedNotificationRepository struct {
	collection *mongo.Collection
}

var _ notify.FailureSink = (*FailedNotificationRepository)(nil)

func NewFailedNotificationRepository(db *mongo.Database, collectionName string) *FailedNotificationRepository {
	if collectionName == "" {
		collectionName = "failed_notifications"
	}
	return &FailedNotificationRepository{collection: db.Collection(collectionName)}
}

func (r *FailedNotificationRepository) RecordFailure(ctx context.Context, failure notify.FailedNotification) error {
	if _, err := r.collection.InsertOne(ctx, failedNotificationDocument(failure)); err != nil {
		return fmt.Errorf("insert failed notification: %w", err)
	}
	return nil
}

// CountPending returns the number of notifications waiting for replay.
func (r *FailedNotificationRepository) CountPending(ctx context.Context) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"target": failedNotificationTarget, "status": "pending"})
	if err != nil {
		return 0, fmt.Errorf("count failed notifications: %w", err)
	}
	return count, nil
}

func failedNotificationDocument(failure notify.FailedNotification) FailedNotificationDocument {
	occurred := failure.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now().UTC()
	}
	return FailedNotificationDocument{
		Target:      failedNotificationTarget,
		Kind:        failure.Kind,
		ItemID:      failure.ItemID,
		Text:        failure.Text,
		Error:       failure.Error,
		Attempts:    failure.Attempts,
		Status:      "pending",
		CreatedAt:   occurred,
		LastTriedAt: occurred,
	}
}
