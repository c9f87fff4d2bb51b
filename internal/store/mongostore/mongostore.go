// Package mongostore implements the store repositories on MongoDB, the
// document store the favorites list was modelled after
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bitwise74/reelhub-api/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection    = "users"
	ratingsCollection  = "ratings"
	commentsCollection = "comments"
)

// Connect dials uri, checks the connection and returns a store using the
// given database. Indexes are created before returning.
func Connect(ctx context.Context, uri, database string) (*store.Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB, %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB, %w", err)
	}

	db := client.Database(database)
	if err := EnsureIndexes(ctx, db); err != nil {
		client.Disconnect(ctx)
		return nil, err
	}

	return New(db, client.Disconnect), nil
}

// New returns a store using db. closeFn is called by Store.Close.
func New(db *mongo.Database, closeFn func(context.Context) error) *store.Store {
	u := &users{c: db.Collection(usersCollection)}
	r := &ratings{c: db.Collection(ratingsCollection), users: u.c}
	c := &comments{c: db.Collection(commentsCollection), users: u.c}

	return store.New(u, r, c, closeFn)
}

// EnsureIndexes creates the unique indexes the repositories rely on
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		usersCollection: {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		ratingsCollection: {
			{
				Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "mediaId", Value: 1}, {Key: "mediaType", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "mediaId", Value: 1}, {Key: "mediaType", Value: 1}}},
		},
		commentsCollection: {
			{Keys: bson.D{{Key: "mediaId", Value: 1}, {Key: "mediaType", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "userId", Value: 1}}},
		},
	}

	for coll, models := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s, %w", coll, err)
		}
	}

	return nil
}

func newID() string {
	return primitive.NewObjectID().Hex()
}

// now is truncated to milliseconds, the precision BSON dates keep
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return store.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w, %w", store.ErrDuplicate, err)
	default:
		return err
	}
}

// orphanBatch caps the number of user ids sent in a single DeleteMany
const orphanBatch = 500

// deleteOrphans removes the documents of coll whose userId has no match in
// users. The orphan ids are resolved with a $lookup on the server, so a
// user created while the sweep runs is never part of the delete filter.
func deleteOrphans(ctx context.Context, coll, users *mongo.Collection) (int64, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": "$userId"}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         users.Name(),
			"localField":   "_id",
			"foreignField": "_id",
			"as":           "user",
		}}},
		{{Key: "$match", Value: bson.M{"user": bson.M{"$size": 0}}}},
		{{Key: "$project", Value: bson.M{"_id": 1}}},
	}

	cur, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to find orphaned user ids, %w", err)
	}

	var rows []struct {
		ID string `bson:"_id"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return 0, fmt.Errorf("failed to decode orphaned user ids, %w", err)
	}

	var deleted int64
	for start := 0; start < len(rows); start += orphanBatch {
		end := min(start+orphanBatch, len(rows))

		ids := make([]string, 0, end-start)
		for _, row := range rows[start:end] {
			ids = append(ids, row.ID)
		}

		res, err := coll.DeleteMany(ctx, bson.M{"userId": bson.M{"$in": ids}})
		if err != nil {
			return deleted, translate(err)
		}
		deleted += res.DeletedCount
	}

	return deleted, nil
}
