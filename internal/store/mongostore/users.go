package mongostore

import (
	"context"

	"bitwise74/reelhub-api/internal/model"
	"bitwise74/reelhub-api/internal/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type users struct {
	c *mongo.Collection
}

func (r *users) Create(ctx context.Context, u *model.User) error {
	if u.ID == "" {
		u.ID = newID()
	}

	if u.Favorites == nil {
		u.Favorites = model.Favorites{}
	}

	t := now()
	u.CreatedAt, u.UpdatedAt = t, t

	_, err := r.c.InsertOne(ctx, u)
	return translate(err)
}

func (r *users) ByID(ctx context.Context, id string) (*model.User, error) {
	return r.first(ctx, bson.M{"_id": id})
}

func (r *users) ByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.first(ctx, bson.M{"email": email})
}

func (r *users) ByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.first(ctx, bson.M{"username": username})
}

func (r *users) first(ctx context.Context, filter bson.M) (*model.User, error) {
	var u model.User
	if err := r.c.FindOne(ctx, filter).Decode(&u); err != nil {
		return nil, translate(err)
	}

	if u.Favorites == nil {
		u.Favorites = model.Favorites{}
	}

	return &u, nil
}

func (r *users) SetFavorites(ctx context.Context, id string, f model.Favorites) error {
	if f == nil {
		f = model.Favorites{}
	}

	res, err := r.c.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"favorites": f, "updatedAt": now()}},
	)
	if err != nil {
		return translate(err)
	}

	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}

	return nil
}

func (r *users) Delete(ctx context.Context, id string) error {
	res, err := r.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}

	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}

	return nil
}
