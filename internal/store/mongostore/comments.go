package mongostore

import (
	"context"

	"bitwise74/reelhub-api/internal/model"
	"bitwise74/reelhub-api/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type comments struct {
	c     *mongo.Collection
	users *mongo.Collection
}

func (r *comments) Create(ctx context.Context, c *model.Comment) error {
	if c.ID == "" {
		c.ID = newID()
	}

	t := now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = t
	}
	c.UpdatedAt = t

	_, err := r.c.InsertOne(ctx, c)
	return translate(err)
}

func (r *comments) ByID(ctx context.Context, id string) (*model.Comment, error) {
	var c model.Comment
	if err := r.c.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		return nil, translate(err)
	}

	return &c, nil
}

func (r *comments) ListByMedia(ctx context.Context, mediaID int, mediaType model.MediaType) ([]model.Comment, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	cur, err := r.c.Find(ctx, bson.M{"mediaId": mediaID, "mediaType": mediaType}, opts)
	if err != nil {
		return nil, translate(err)
	}

	out := []model.Comment{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, translate(err)
	}

	return out, nil
}

func (r *comments) Delete(ctx context.Context, id string) error {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}

	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}

	return nil
}

func (r *comments) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.c.DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, translate(err)
	}

	return res.DeletedCount, nil
}

func (r *comments) DeleteOrphans(ctx context.Context) (int64, error) {
	return deleteOrphans(ctx, r.c, r.users)
}
