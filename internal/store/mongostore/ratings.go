package mongostore

import (
	"context"

	"bitwise74/reelhub-api/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ratings struct {
	c     *mongo.Collection
	users *mongo.Collection
}

func ownerFilter(userID string, mediaID int, mediaType model.MediaType) bson.M {
	return bson.M{"userId": userID, "mediaId": mediaID, "mediaType": mediaType}
}

func (r *ratings) Upsert(ctx context.Context, rt *model.Rating) (bool, error) {
	t := now()

	res, err := r.c.UpdateOne(ctx,
		ownerFilter(rt.UserID, rt.MediaID, rt.MediaType),
		bson.M{
			"$set": bson.M{"rating": rt.Rating, "updatedAt": t},
			"$setOnInsert": bson.M{
				"_id":       newID(),
				"createdAt": t,
			},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, translate(err)
	}

	stored, err := r.Get(ctx, rt.UserID, rt.MediaID, rt.MediaType)
	if err != nil {
		return false, err
	}

	*rt = *stored
	return res.UpsertedCount == 1, nil
}

func (r *ratings) Get(ctx context.Context, userID string, mediaID int, mediaType model.MediaType) (*model.Rating, error) {
	var rt model.Rating
	if err := r.c.FindOne(ctx, ownerFilter(userID, mediaID, mediaType)).Decode(&rt); err != nil {
		return nil, translate(err)
	}

	return &rt, nil
}

type summaryDoc struct {
	Total float64 `bson:"total"`
	Count int     `bson:"count"`
}

func (r *ratings) Summary(ctx context.Context, mediaID int, mediaType model.MediaType) (model.RatingSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"mediaId": mediaID, "mediaType": mediaType}}},
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"total": bson.M{"$sum": "$rating"},
			"count": bson.M{"$sum": 1},
		}}},
	}

	cur, err := r.c.Aggregate(ctx, pipeline)
	if err != nil {
		return model.RatingSummary{}, translate(err)
	}
	defer cur.Close(ctx)

	var doc summaryDoc
	if cur.Next(ctx) {
		if err := cur.Decode(&doc); err != nil {
			return model.RatingSummary{}, err
		}
	}

	if err := cur.Err(); err != nil {
		return model.RatingSummary{}, translate(err)
	}

	return model.NewRatingSummary(mediaID, mediaType, doc.Total, doc.Count), nil
}

func (r *ratings) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	res, err := r.c.DeleteMany(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, translate(err)
	}

	return res.DeletedCount, nil
}

func (r *ratings) DeleteOrphans(ctx context.Context) (int64, error) {
	return deleteOrphans(ctx, r.c, r.users)
}
