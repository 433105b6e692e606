package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trezcool/skillboost/core"
)

// Collections
const (
	userColl       = "user"
	requestColl    = "request"
	courseColl     = "courses"
	assignmentColl = "assignments"
	submissionColl = "submission"
	reviewColl     = "reviews"
	classColl      = "submitClass"
	paymentColl    = "payments"
)

type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// Open connects to the cluster and waits for it to answer.
func Open(ctx context.Context, conf *core.Config) (*DB, error) {
	opts := options.Client().
		ApplyURI(conf.Database.MongoURI()).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(err, "connecting to mongo")
	}
	if err = ping(ctx, client); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return &DB{client: client, db: client.Database(conf.Database.Name)}, nil
}

// ping waits for the cluster to be ready. Waits 100ms longer between each attempt.
func ping(ctx context.Context, client *mongo.Client) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		if err = client.Ping(ctx, nil); err == nil {
			break
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "mongo ping")
		case <-time.After(time.Duration(attempts) * 100 * time.Millisecond):
		}
	}

	if err != nil {
		return errors.Wrap(err, "mongo ping timeout")
	}
	return nil
}

func (db *DB) Database() *mongo.Database {
	return db.db
}

func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the repositories rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(userColl).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return errors.Wrap(err, "creating user email index")
}

// objectID parses a hex id; ok is false when it cannot match any document.
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	return oid, err == nil
}

func findAll[D, T any](ctx context.Context, coll *mongo.Collection, conv func(D) T, opts ...*options.FindOptions) ([]T, error) {
	cur, err := coll.Find(ctx, bson.D{}, opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "querying %s", coll.Name())
	}
	var docs []D
	if err = cur.All(ctx, &docs); err != nil {
		return nil, errors.Wrapf(err, "reading %s", coll.Name())
	}

	items := make([]T, 0, len(docs))
	for _, doc := range docs {
		items = append(items, conv(doc))
	}
	return items, nil
}

// findOne returns notFound when no document matches.
func findOne[D, T any](ctx context.Context, coll *mongo.Collection, filter interface{}, conv func(D) T, notFound error) (T, error) {
	var doc D
	if err := coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		var zero T
		if errors.Is(err, mongo.ErrNoDocuments) {
			return zero, notFound
		}
		return zero, errors.Wrapf(err, "getting %s", coll.Name())
	}
	return conv(doc), nil
}

func findByID[D, T any](ctx context.Context, coll *mongo.Collection, id string, conv func(D) T, notFound error) (T, error) {
	oid, ok := objectID(id)
	if !ok {
		var zero T
		return zero, notFound
	}
	return findOne(ctx, coll, bson.M{"_id": oid}, conv, notFound)
}

func insertOne(ctx context.Context, coll *mongo.Collection, doc interface{}) error {
	_, err := coll.InsertOne(ctx, doc)
	return errors.Wrapf(err, "inserting into %s", coll.Name())
}

func updateResult(res *mongo.UpdateResult) core.UpdateResult {
	upd := core.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
	}
	if oid, ok := res.UpsertedID.(primitive.ObjectID); ok {
		hex := oid.Hex()
		upd.UpsertedID = &hex
	}
	return upd
}
