package mongo

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vaultkeep/notes-service/internal/core/domain"
)

const notesCollection = "notes"

// NoteRepository stores notes in MongoDB. Single-note queries always filter
// by _id AND owner in one statement (empty owner = admin, no owner filter),
// so the database itself cannot answer "does this foreign note exist".
type NoteRepository struct {
	col *mongo.Collection
}

func NewNoteRepository(db *mongo.Database) *NoteRepository {
	return &NoteRepository{col: db.Collection(notesCollection)}
}

type mongoNote struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Content   string             `bson:"content"`
	Owner     string             `bson:"owner"`
	CreatedAt int64              `bson:"created_at"`
	UpdatedAt int64              `bson:"updated_at"`
}

func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	doc := mongoNote{
		Title:     note.Title,
		Content:   note.Content,
		Owner:     note.Owner,
		CreatedAt: note.CreatedAt.Unix(),
		UpdatedAt: note.UpdatedAt.Unix(),
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}

	created := *note
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *NoteRepository) FindByIDAndOwner(ctx context.Context, id, owner string) (*domain.Note, error) {
	filter, err := idOwnerFilter(id, owner)
	if err != nil {
		return nil, err
	}

	var mn mongoNote
	if err := r.col.FindOne(ctx, filter).Decode(&mn); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("find note: %w", err)
	}
	return mn.toDomain(), nil
}

func (r *NoteRepository) ListByOwner(ctx context.Context, owner string) ([]*domain.Note, error) {
	filter := bson.M{}
	if owner != "" {
		filter["owner"] = owner
	}
	return r.find(ctx, filter)
}

// SearchByContent matches notes whose content contains query,
// case-insensitively. The query is passed through regexp.QuoteMeta and bound
// as a bson value, so user input can never alter the query structure.
func (r *NoteRepository) SearchByContent(ctx context.Context, query, owner string) ([]*domain.Note, error) {
	filter := bson.M{
		"content": bson.M{"$regex": regexp.QuoteMeta(query), "$options": "i"},
	}
	if owner != "" {
		filter["owner"] = owner
	}
	return r.find(ctx, filter)
}

func (r *NoteRepository) Update(ctx context.Context, note *domain.Note, owner string) (*domain.Note, error) {
	filter, err := idOwnerFilter(note.ID, owner)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{
		"title":      note.Title,
		"content":    note.Content,
		"updated_at": note.UpdatedAt.Unix(),
	}}

	var mn mongoNote
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	if err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&mn); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("update note: %w", err)
	}
	return mn.toDomain(), nil
}

func (r *NoteRepository) Delete(ctx context.Context, id, owner string) error {
	filter, err := idOwnerFilter(id, owner)
	if err != nil {
		return err
	}

	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

// EnsureIndexes creates the owner index used by every scoped query.
func (r *NoteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner", Value: 1}},
	})
	return err
}

// idOwnerFilter builds the id+owner filter. A malformed object id behaves
// like a nonexistent note rather than surfacing a parse error.
func idOwnerFilter(id, owner string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNoteNotFound
	}
	filter := bson.M{"_id": oid}
	if owner != "" {
		filter["owner"] = owner
	}
	return filter, nil
}

func (r *NoteRepository) find(ctx context.Context, filter bson.M) ([]*domain.Note, error) {
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find notes: %w", err)
	}
	defer cur.Close(ctx)

	var out []*domain.Note
	for cur.Next(ctx) {
		var mn mongoNote
		if err := cur.Decode(&mn); err != nil {
			return nil, fmt.Errorf("decode note: %w", err)
		}
		out = append(out, mn.toDomain())
	}
	return out, cur.Err()
}

func (mn *mongoNote) toDomain() *domain.Note {
	return &domain.Note{
		ID:        mn.ID.Hex(),
		Title:     mn.Title,
		Content:   mn.Content,
		Owner:     mn.Owner,
		CreatedAt: unixToTime(mn.CreatedAt),
		UpdatedAt: unixToTime(mn.UpdatedAt),
	}
}
