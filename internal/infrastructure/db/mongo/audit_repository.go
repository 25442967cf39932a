package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/FelisbertoSilva/RHProjeto/internal/core/domain"
)

const collectionAuditEvents = "audit_events"

// AuditRepository persists audit trail events in the audit_events collection.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAuditEvents)}
}

type mongoAuditEvent struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Actor    string             `bson:"actor"`
	Method   string             `bson:"method"`
	Path     string             `bson:"path"`
	Status   int                `bson:"status"`
	Occurred int64              `bson:"occurred"`
}

func toMongoAuditEvent(e domain.AuditEvent) mongoAuditEvent {
	return mongoAuditEvent{
		Actor:    e.Actor,
		Method:   e.Method,
		Path:     e.Path,
		Status:   e.Status,
		Occurred: e.Occurred.Unix(),
	}
}

func (me mongoAuditEvent) toDomain() domain.AuditEvent {
	return domain.AuditEvent{
		ID:       me.ID.Hex(),
		Actor:    me.Actor,
		Method:   me.Method,
		Path:     me.Path,
		Status:   me.Status,
		Occurred: unixToTime(me.Occurred),
	}
}

func (r *AuditRepository) Insert(ctx context.Context, event domain.AuditEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toMongoAuditEvent(event)); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

func (r *AuditRepository) FindByActor(ctx context.Context, actor string, from, to time.Time) ([]domain.AuditEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"actor":    actor,
		"occurred": bson.M{"$gte": from.Unix(), "$lt": to.Unix()},
	}
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "occurred", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find audit events: %w", err)
	}
	defer cur.Close(ctx)

	var events []domain.AuditEvent
	for cur.Next(ctx) {
		var me mongoAuditEvent
		if err := cur.Decode(&me); err != nil {
			return nil, fmt.Errorf("decode audit event: %w", err)
		}
		events = append(events, me.toDomain())
	}
	return events, cur.Err()
}

func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "actor", Value: 1}, {Key: "occurred", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
