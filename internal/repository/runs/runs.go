package runs

import (
	"context"
	"fmt"
	"log"
	"time"

	mg "passport_parser/internal/config/connections/mongo"
	"passport_parser/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	RunsCollection     = "parse_runs"
	RunItemsCollection = "parse_run_items"
)

type Record struct {
	ID        string    `bson:"_id" json:"id"`
	Source    string    `bson:"source" json:"source"`
	UserID    *string   `bson:"user_id,omitempty" json:"user_id,omitempty"`
	Status    string    `bson:"status" json:"status"`
	Documents int       `bson:"documents" json:"documents"`
	Extracted int       `bson:"extracted" json:"extracted"`
	Failed    int       `bson:"failed" json:"failed"`
	Errors    *string   `bson:"errors,omitempty" json:"errors,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

type Item struct {
	RunID     string    `bson:"run_id" json:"run_id"`
	Filename  string    `bson:"filename" json:"filename"`
	Status    string    `bson:"status" json:"status"`
	Errors    string    `bson:"errors" json:"errors"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

func InsertRun(ctx context.Context, m *mg.Mongo, rec Record) (*mongo.InsertOneResult, error) {
	if m == nil || m.Client == nil || m.Database == nil {
		return nil, mongo.ErrClientDisconnected
	}

	now := time.Now().UTC()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	rec.UpdatedAt = now
	if rec.Status == "" {
		rec.Status = "processing"
	}

	doc := bson.D{
		{Key: "_id", Value: rec.ID},
		{Key: "source", Value: rec.Source},
		{Key: "user_id", Value: rec.UserID},
		{Key: "status", Value: rec.Status},
		{Key: "documents", Value: rec.Documents},
		{Key: "extracted", Value: rec.Extracted},
		{Key: "failed", Value: rec.Failed},
		{Key: "errors", Value: rec.Errors},
		{Key: "created_at", Value: rec.CreatedAt},
		{Key: "updated_at", Value: rec.UpdatedAt},
	}

	return m.Database.Collection(RunsCollection).InsertOne(ctx, doc, options.InsertOne())
}

func InsertItem(ctx context.Context, m *mg.Mongo, item Item) (*mongo.InsertOneResult, error) {
	if m == nil || m.Client == nil || m.Database == nil {
		return nil, mongo.ErrClientDisconnected
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}

	doc := bson.D{
		{Key: "run_id", Value: item.RunID},
		{Key: "filename", Value: item.Filename},
		{Key: "status", Value: item.Status},
		{Key: "errors", Value: item.Errors},
		{Key: "created_at", Value: item.CreatedAt},
	}

	return m.Database.Collection(RunItemsCollection).InsertOne(ctx, doc, options.InsertOne())
}

func UpdateRun(ctx context.Context, m *mg.Mongo, rec Record) error {
	if m == nil || m.Database == nil {
		return mongo.ErrClientDisconnected
	}
	if rec.ID == "" {
		return fmt.Errorf("empty run id")
	}

	set := bson.M{
		"status":     rec.Status,
		"extracted":  rec.Extracted,
		"failed":     rec.Failed,
		"updated_at": time.Now().UTC(),
	}
	if rec.Errors != nil {
		set["errors"] = *rec.Errors
	}

	res, err := m.Database.Collection(RunsCollection).UpdateOne(ctx, bson.M{"_id": rec.ID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("no parse run found with id %s", rec.ID)
	}
	return nil
}

func FindRun(ctx context.Context, m *mg.Mongo, id string) (Record, error) {
	var out Record
	if m == nil || m.Database == nil {
		return out, mongo.ErrClientDisconnected
	}
	if err := m.Database.Collection(RunsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&out); err != nil {
		return out, fmt.Errorf("not found: %w", err)
	}
	return out, nil
}

// Journal writes parse runs to Mongo. A nil connection turns every call
// into a no-op.
type Journal struct {
	M *mg.Mongo
}

func NewJournal(m *mg.Mongo) *Journal { return &Journal{M: m} }

func (j *Journal) enabled() bool {
	return j != nil && j.M != nil && j.M.Database != nil
}

func (j *Journal) StartRun(ctx context.Context, run ports.Run) error {
	if !j.enabled() {
		return nil
	}
	_, err := InsertRun(ctx, j.M, toRecord(run))
	return err
}

func (j *Journal) LogItem(ctx context.Context, item ports.RunItem) {
	if !j.enabled() {
		return
	}
	if _, err := InsertItem(ctx, j.M, Item{
		RunID:    item.RunID,
		Filename: item.Filename,
		Status:   item.Status,
		Errors:   item.Errors,
	}); err != nil {
		log.Printf("[RUNS][MONGO][ERR] run=%s file=%q status=%s err=%v", item.RunID, item.Filename, item.Status, err)
	}
}

func (j *Journal) FinishRun(ctx context.Context, run ports.Run) error {
	if !j.enabled() {
		return nil
	}
	return UpdateRun(ctx, j.M, toRecord(run))
}

func toRecord(run ports.Run) Record {
	rec := Record{
		ID:        run.ID,
		Source:    run.Source,
		Status:    run.Status,
		Documents: run.Documents,
		Extracted: run.Extracted,
		Failed:    run.Failed,
	}
	if run.UserID != "" {
		uid := run.UserID
		rec.UserID = &uid
	}
	if run.Errors != "" {
		e := run.Errors
		rec.Errors = &e
	}
	return rec
}
