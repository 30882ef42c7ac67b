package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/GregMSThompson/vehicle-dashboard/internal/errs"
	"github.com/GregMSThompson/vehicle-dashboard/internal/models"
)

const mongoCollection = "dashboard_layouts"

// MongoLayouts stores one document per owner, keyed by the owner id.
type MongoLayouts struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type mongoLayout struct {
	Owner     string    `bson:"_id"`
	Payload   string    `bson:"payload"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// NewMongoLayouts connects to uri and uses the given database.
func NewMongoLayouts(ctx context.Context, uri, database string) (*MongoLayouts, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errs.NewDatabaseError("connect", "failed to connect to mongo", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errs.NewDatabaseError("connect", "failed to reach mongo", err)
	}
	return &MongoLayouts{
		client: client,
		coll:   client.Database(database).Collection(mongoCollection),
	}, nil
}

func (s *MongoLayouts) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoLayouts) LoadLayout(ctx context.Context, owner string) ([]models.Widget, error) {
	var doc mongoLayout
	err := s.coll.FindOne(ctx, bson.M{"_id": owner}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.NewDatabaseError("read", "failed to get layout", err)
	}
	return decodeWidgets([]byte(doc.Payload))
}

func (s *MongoLayouts) SaveLayout(ctx context.Context, owner string, widgets []models.Widget) error {
	payload, err := encodeWidgets(widgets)
	if err != nil {
		return err
	}
	doc := mongoLayout{Owner: owner, Payload: string(payload), UpdatedAt: time.Now().UTC()}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": owner}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return errs.NewDatabaseError("update", "failed to save layout", err)
	}
	return nil
}
