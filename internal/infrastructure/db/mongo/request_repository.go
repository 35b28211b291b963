package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/workdesk/request-system/internal/core/domain"
)

const requestsCollection = "requests"

type RequestRepository struct {
	coll *mongo.Collection
}

func NewRequestRepository(db *mongo.Database) *RequestRepository {
	return &RequestRepository{coll: db.Collection(requestsCollection)}
}

type mongoRequest struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Title        string             `bson:"title"`
	Description  string             `bson:"description"`
	Status       string             `bson:"status"`
	CreatedByID  string             `bson:"created_by_id"`
	AssignedToID string             `bson:"assigned_to_id"`
	CreatedAt    time.Time          `bson:"created_at"`
	UpdatedAt    time.Time          `bson:"updated_at"`
}

func (mr *mongoRequest) toDomain() *domain.Request {
	return &domain.Request{
		ID:           mr.ID.Hex(),
		Title:        mr.Title,
		Description:  mr.Description,
		Status:       domain.RequestStatus(mr.Status),
		CreatedByID:  mr.CreatedByID,
		AssignedToID: mr.AssignedToID,
		CreatedAt:    mr.CreatedAt.UTC(),
		UpdatedAt:    mr.UpdatedAt.UTC(),
	}
}

func (r *RequestRepository) Create(ctx context.Context, req *domain.Request) (*domain.Request, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoRequest{
		Title:        req.Title,
		Description:  req.Description,
		Status:       string(req.Status),
		CreatedByID:  req.CreatedByID,
		AssignedToID: req.AssignedToID,
		CreatedAt:    req.CreatedAt,
		UpdatedAt:    req.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert request: %w", err)
	}

	created := *req
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *RequestRepository) FindByID(ctx context.Context, id string) (*domain.Request, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRequestNotFound
	}

	var mr mongoRequest
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("find request: %w", err)
	}
	return mr.toDomain(), nil
}

// UpdateStatus compare-and-swaps the status: the update filter matches on
// both _id and the expected current status, so a concurrent writer who moved
// the status first makes this call fail with domain.ErrStatusConflict
// instead of silently overwriting.
func (r *RequestRepository) UpdateStatus(ctx context.Context, id string, from, to domain.RequestStatus) (*domain.Request, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRequestNotFound
	}

	filter := bson.M{"_id": oid, "status": string(from)}
	update := bson.M{"$set": bson.M{
		"status":     string(to),
		"updated_at": time.Now().UTC(),
	}}

	var mr mongoRequest
	err = r.coll.FindOneAndUpdate(ctx, filter, update,
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&mr)
	if err == nil {
		return mr.toDomain(), nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("update request status: %w", err)
	}

	// No match: distinguish a missing request from a lost status race.
	if cnt, cntErr := r.coll.CountDocuments(ctx, bson.M{"_id": oid}); cntErr == nil && cnt > 0 {
		return nil, domain.ErrStatusConflict
	}
	return nil, domain.ErrRequestNotFound
}

func (r *RequestRepository) ListByCreator(ctx context.Context, userID string) ([]*domain.Request, error) {
	return r.list(ctx, bson.M{"created_by_id": userID})
}

func (r *RequestRepository) ListByAssignee(ctx context.Context, userID string) ([]*domain.Request, error) {
	return r.list(ctx, bson.M{"assigned_to_id": userID})
}

func (r *RequestRepository) ListPendingByAssignees(ctx context.Context, assigneeIDs []string) ([]*domain.Request, error) {
	return r.list(ctx, bson.M{
		"status":         string(domain.StatusPendingApproval),
		"assigned_to_id": bson.M{"$in": assigneeIDs},
	})
}

func (r *RequestRepository) list(ctx context.Context, filter bson.M) ([]*domain.Request, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.coll.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer cur.Close(ctx)

	var requests []*domain.Request
	for cur.Next(ctx) {
		var mr mongoRequest
		if err := cur.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode request: %w", err)
		}
		requests = append(requests, mr.toDomain())
	}
	return requests, cur.Err()
}

// EnsureIndexes creates the indexes backing the list views.
func (r *RequestRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_by_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "assigned_to_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "assigned_to_id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
