package todos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/xyz-asif/kubertodo/pkg/errors"
)

const CollectionName = "todos"

// todoDocument is the stored shape; the wire id is the hex of _id.
type todoDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	IsCompleted bool               `bson:"isCompleted"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

func (d todoDocument) toTodo() Todo {
	return Todo{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		IsCompleted: d.IsCompleted,
		CreatedAt:   d.CreatedAt.UTC(),
	}
}

// Repository is the MongoDB-backed Store.
type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	return &Repository{collection: db.Collection(CollectionName)}
}

// EnsureIndexes creates the createdAt index that backs List ordering.
func (r *Repository) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("create createdAt index: %w", err)
	}
	return nil
}

// objectID reports false for ids that cannot name any stored document.
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

func (r *Repository) List(ctx context.Context) ([]Todo, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find todos: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []todoDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode todos: %w", err)
	}

	todos := make([]Todo, 0, len(docs))
	for _, d := range docs {
		todos = append(todos, d.toTodo())
	}
	return todos, nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Todo, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, apperrors.ErrNotFound
	}

	var doc todoDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("find todo %s: %w", id, err)
	}

	todo := doc.toTodo()
	return &todo, nil
}

// Create stores a new item. Any id or createdAt on the input is replaced.
func (r *Repository) Create(ctx context.Context, todo *Todo) (*Todo, error) {
	doc := todoDocument{
		Title:       todo.Title,
		IsCompleted: todo.IsCompleted,
		CreatedAt:   creationTime(),
	}

	result, err := r.collection.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert todo: unexpected id type %T", result.InsertedID)
	}
	doc.ID = oid

	created := doc.toTodo()
	return &created, nil
}

// Update replaces title and isCompleted of the item with the given id. The
// path id is forced onto the item; createdAt is never rewritten.
func (r *Repository) Update(ctx context.Context, id string, todo *Todo) (bool, error) {
	todo.ID = id
	oid, ok := objectID(id)
	if !ok {
		return false, nil
	}

	return r.updateOne(ctx, oid, bson.M{
		"title":       todo.Title,
		"isCompleted": todo.IsCompleted,
	})
}

func (r *Repository) MarkComplete(ctx context.Context, id string, isCompleted bool) (bool, error) {
	oid, ok := objectID(id)
	if !ok {
		return false, nil
	}

	return r.updateOne(ctx, oid, bson.M{"isCompleted": isCompleted})
}

func (r *Repository) updateOne(ctx context.Context, oid primitive.ObjectID, set bson.M) (bool, error) {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if errors.Is(err, mongo.ErrUnacknowledgedWrite) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("update todo %s: %w", oid.Hex(), err)
	}
	// matched, not modified: rewriting identical data still succeeds
	return result.MatchedCount > 0, nil
}

func (r *Repository) Remove(ctx context.Context, id string) (bool, error) {
	oid, ok := objectID(id)
	if !ok {
		return false, nil
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if errors.Is(err, mongo.ErrUnacknowledgedWrite) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("delete todo %s: %w", id, err)
	}
	return result.DeletedCount > 0, nil
}
