package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/notehub/notes-api/internal/core/domain"
)

const notesCollection = "notes"

// NoteRepository persists notes. Every document carries its owner's user id;
// owner-scoped queries filter on it directly.
type NoteRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewNoteRepository(db *mongo.Database) *NoteRepository {
	return &NoteRepository{db: db, coll: db.Collection(notesCollection)}
}

type mongoNote struct {
	ID        int64  `bson:"_id"`
	Title     string `bson:"title"`
	Content   string `bson:"content"`
	UserID    int64  `bson:"user_id"`
	CreatedAt int64  `bson:"created_at"`
	UpdatedAt int64  `bson:"updated_at"`
}

func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, notesCollection)
	if err != nil {
		return nil, err
	}

	doc := toMongoNote(note)
	doc.ID = id

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *NoteRepository) FindByID(ctx context.Context, id int64) (*domain.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mn mongoNote
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mn); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoteNotFound
		}
		return nil, fmt.Errorf("find note: %w", err)
	}
	return fromMongoNote(&mn), nil
}

// FindByOwner returns ownerID's notes in insertion order. The owner filter is
// part of the query so no other user's notes are ever fetched.
func (r *NoteRepository) FindByOwner(ctx context.Context, ownerID int64) ([]*domain.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{"user_id": ownerID}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer cursor.Close(ctx)

	notes := make([]*domain.Note, 0)
	for cursor.Next(ctx) {
		var mn mongoNote
		if err := cursor.Decode(&mn); err != nil {
			return nil, fmt.Errorf("decode note: %w", err)
		}
		notes = append(notes, fromMongoNote(&mn))
	}
	return notes, cursor.Err()
}

// Update persists title and content and refreshes updated_at. Ownership and
// created_at are immutable here.
func (r *NoteRepository) Update(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": note.ID}, bson.M{"$set": bson.M{
		"title":      note.Title,
		"content":    note.Content,
		"updated_at": time.Now().UTC().Unix(),
	}})
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrNoteNotFound
	}

	return r.FindByID(ctx, note.ID)
}

func (r *NoteRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}

// DeleteByOwner removes all of ownerID's notes. Zero deletions is not an
// error; the owner may simply have no notes.
func (r *NoteRepository) DeleteByOwner(ctx context.Context, ownerID int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.coll.DeleteMany(ctx, bson.M{"user_id": ownerID}); err != nil {
		return fmt.Errorf("delete notes by owner: %w", err)
	}
	return nil
}

// EnsureIndexes creates the owner lookup index.
func (r *NoteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	return err
}

func toMongoNote(n *domain.Note) *mongoNote {
	return &mongoNote{
		Title:     n.Title,
		Content:   n.Content,
		UserID:    n.UserID,
		CreatedAt: n.CreatedAt.Unix(),
		UpdatedAt: n.UpdatedAt.Unix(),
	}
}

func fromMongoNote(mn *mongoNote) *domain.Note {
	return &domain.Note{
		ID:        mn.ID,
		Title:     mn.Title,
		Content:   mn.Content,
		UserID:    mn.UserID,
		CreatedAt: unixToTime(mn.CreatedAt),
		UpdatedAt: unixToTime(mn.UpdatedAt),
	}
}
