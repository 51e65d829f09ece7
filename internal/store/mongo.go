package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sayantan007pal/Customer-Support-app-using-mindsdb/internal/models"
)

type conversationDoc struct {
	ConversationID string               `bson:"conversation_id"`
	UserID         string               `bson:"user_id,omitempty"`
	Messages       []models.ChatMessage `bson:"messages"`
	CreatedAt      time.Time            `bson:"created_at"`
	LastMessageAt  time.Time            `bson:"last_message_at"`
}

// MongoStore persists conversations across restarts, one document per
// conversation. $push keeps append order without read-modify-write.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{col: db.Collection("conversations")}
}

func (s *MongoStore) Append(ctx context.Context, conversationID, userID string, msg models.ChatMessage) error {
	now := time.Now().UTC()

	set := bson.M{"last_message_at": now}
	setOnInsert := bson.M{"created_at": now}
	if userID != "" {
		setOnInsert["user_id"] = userID
	}

	_, err := s.col.UpdateOne(ctx,
		bson.M{"conversation_id": conversationID},
		bson.M{
			"$push":        bson.M{"messages": msg},
			"$set":         set,
			"$setOnInsert": setOnInsert,
		},
		options.Update().SetUpsert(true),
	)
	return err
}

func (s *MongoStore) History(ctx context.Context, conversationID string) ([]models.ChatMessage, error) {
	var doc conversationDoc
	err := s.col.FindOne(ctx, bson.M{"conversation_id": conversationID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return []models.ChatMessage{}, nil
	}
	if err != nil {
		return nil, err
	}
	if doc.Messages == nil {
		return []models.ChatMessage{}, nil
	}
	return doc.Messages, nil
}

func (s *MongoStore) Clear(ctx context.Context, conversationID string) (bool, error) {
	res, err := s.col.DeleteOne(ctx, bson.M{"conversation_id": conversationID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (s *MongoStore) List(ctx context.Context, f Filter) ([]Summary, error) {
	filter := bson.M{}
	if f.UserID != "" {
		filter["user_id"] = f.UserID
	}

	cur, err := s.col.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "last_message_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := make([]Summary, 0)
	for cur.Next(ctx) {
		var doc conversationDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		sum := Summary{
			ConversationID: doc.ConversationID,
			UserID:         doc.UserID,
			MessageCount:   len(doc.Messages),
			LastMessageAt:  doc.LastMessageAt,
		}
		for _, m := range doc.Messages {
			if m.Metadata != nil && m.Metadata.Escalated {
				sum.Escalated = true
				break
			}
		}
		out = append(out, sum)
	}
	return out, cur.Err()
}
