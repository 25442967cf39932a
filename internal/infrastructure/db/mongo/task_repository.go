package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/FelisbertoSilva/RHProjeto/internal/core/domain"
)

const collectionTasks = "tasks"

// TaskRepository persists tasks in the tasks collection.
type TaskRepository struct {
	col *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{col: db.Collection(collectionTasks)}
}

type mongoTask struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	TaskName    string             `bson:"task_name"`
	Description string             `bson:"description"`
	LimitDate   time.Time          `bson:"limit_date"`
	IsCompleted bool               `bson:"is_completed"`
	AssignedTo  string             `bson:"assigned_to"`
	CreatedBy   string             `bson:"created_by"`
	CreatedAt   time.Time          `bson:"created_at"`
}

func (mt mongoTask) toDomain() *domain.Task {
	return &domain.Task{
		ID:          mt.ID.Hex(),
		TaskName:    mt.TaskName,
		Description: mt.Description,
		LimitDate:   mt.LimitDate.UTC(),
		IsCompleted: mt.IsCompleted,
		AssignedTo:  mt.AssignedTo,
		CreatedBy:   mt.CreatedBy,
		CreatedAt:   mt.CreatedAt.UTC(),
	}
}

func (r *TaskRepository) Insert(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, mongoTask{
		TaskName:    task.TaskName,
		Description: task.Description,
		LimitDate:   task.LimitDate,
		IsCompleted: task.IsCompleted,
		AssignedTo:  task.AssignedTo,
		CreatedBy:   task.CreatedBy,
		CreatedAt:   task.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	created := *task
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mt mongoTask
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *TaskRepository) findMany(ctx context.Context, filter bson.M) ([]*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}
	defer cur.Close(ctx)

	var tasks []*domain.Task
	for cur.Next(ctx) {
		var mt mongoTask
		if err := cur.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode task: %w", err)
		}
		tasks = append(tasks, mt.toDomain())
	}
	return tasks, cur.Err()
}

func (r *TaskRepository) FindAll(ctx context.Context) ([]*domain.Task, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *TaskRepository) FindByAssignee(ctx context.Context, username string) ([]*domain.Task, error) {
	return r.findMany(ctx, bson.M{"assigned_to": username})
}

func (r *TaskRepository) FindByAssignees(ctx context.Context, usernames []string) ([]*domain.Task, error) {
	if len(usernames) == 0 {
		return nil, nil
	}
	return r.findMany(ctx, bson.M{"assigned_to": bson.M{"$in": usernames}})
}

func (r *TaskRepository) FindDueBetween(ctx context.Context, from, to time.Time) ([]*domain.Task, error) {
	return r.findMany(ctx, bson.M{"limit_date": bson.M{"$gte": from, "$lt": to}})
}

func (r *TaskRepository) Update(ctx context.Context, task *domain.Task) error {
	oid, err := primitive.ObjectIDFromHex(task.ID)
	if err != nil {
		return domain.ErrTaskNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"task_name":    task.TaskName,
			"description":  task.Description,
			"limit_date":   task.LimitDate,
			"is_completed": task.IsCompleted,
		}},
	)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// EnsureIndexes creates the assignee and due-date indexes.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "assigned_to", Value: 1}}},
		{Keys: bson.D{{Key: "limit_date", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
