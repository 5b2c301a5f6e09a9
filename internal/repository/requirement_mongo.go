package repository

import (
	"context"
	"errors"

	"github.com/umalmyha/leads/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const requirementsCollection = "requirements"

type mongoRequirementRepository struct {
	coll *mongo.Collection
}

// NewMongoRequirementRepository builds RequirementRepository on top of requirements collection of database
func NewMongoRequirementRepository(client *mongo.Client, database string) RequirementRepository {
	return &mongoRequirementRepository{coll: client.Database(database).Collection(requirementsCollection)}
}

func (r *mongoRequirementRepository) FindAll(ctx context.Context) ([]*model.Requirement, error) {
	// ulid ids break ties of equal createdAt
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})

	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}

	requirements := make([]*model.Requirement, 0)
	if err := cur.All(ctx, &requirements); err != nil {
		return nil, err
	}

	for _, req := range requirements {
		req.CreatedAt = req.CreatedAt.UTC()
	}
	return requirements, nil
}

func (r *mongoRequirementRepository) FindByID(ctx context.Context, id string) (*model.Requirement, error) {
	var req model.Requirement
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&req); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	req.CreatedAt = req.CreatedAt.UTC()
	return &req, nil
}

func (r *mongoRequirementRepository) Create(ctx context.Context, req *model.Requirement) error {
	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateRequirement
		}
		return err
	}
	return nil
}

func (r *mongoRequirementRepository) UpdateStatus(ctx context.Context, id string, from, to model.Status) (bool, error) {
	filter := bson.M{"_id": id, "status": from}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"status": to}})
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

func (r *mongoRequirementRepository) DeleteByID(ctx context.Context, id string) (bool, error) {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
