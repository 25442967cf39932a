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

	"github.com/FelisbertoSilva/RHProjeto/internal/core/domain"
)

const collectionDepartments = "departments"

// nameCollation makes name lookups case-insensitive, matching the unique
// index on the collection.
var nameCollation = &options.Collation{Locale: "en", Strength: 2}

// DepartmentRepository persists departments. All name-keyed queries use the
// case-insensitive collation.
type DepartmentRepository struct {
	col *mongo.Collection
}

func NewDepartmentRepository(db *mongo.Database) *DepartmentRepository {
	return &DepartmentRepository{col: db.Collection(collectionDepartments)}
}

type mongoDepartment struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Name            string             `bson:"name"`
	CanteenDiscount int                `bson:"canteen_discount"`
	ManagerUsername string             `bson:"manager_username,omitempty"`
	Employees       []string           `bson:"employees,omitempty"`
}

func (md mongoDepartment) toDomain() *domain.Department {
	return &domain.Department{
		ID:              md.ID.Hex(),
		Name:            md.Name,
		CanteenDiscount: md.CanteenDiscount,
		ManagerUsername: md.ManagerUsername,
		Employees:       md.Employees,
	}
}

func (r *DepartmentRepository) Insert(ctx context.Context, dept *domain.Department) (*domain.Department, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, mongoDepartment{
		Name:            dept.Name,
		CanteenDiscount: dept.CanteenDiscount,
		ManagerUsername: dept.ManagerUsername,
		Employees:       dept.Employees,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDepartmentExists
		}
		return nil, fmt.Errorf("insert department: %w", err)
	}

	return r.FindByName(ctx, dept.Name)
}

func (r *DepartmentRepository) FindByName(ctx context.Context, name string) (*domain.Department, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var md mongoDepartment
	err := r.col.FindOne(ctx, bson.M{"name": name},
		options.FindOne().SetCollation(nameCollation)).Decode(&md)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("find department: %w", err)
	}
	return md.toDomain(), nil
}

func (r *DepartmentRepository) findMany(ctx context.Context, filter bson.M) ([]*domain.Department, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find departments: %w", err)
	}
	defer cur.Close(ctx)

	var depts []*domain.Department
	for cur.Next(ctx) {
		var md mongoDepartment
		if err := cur.Decode(&md); err != nil {
			return nil, fmt.Errorf("decode department: %w", err)
		}
		depts = append(depts, md.toDomain())
	}
	return depts, cur.Err()
}

func (r *DepartmentRepository) FindAll(ctx context.Context) ([]*domain.Department, error) {
	return r.findMany(ctx, bson.M{})
}

func (r *DepartmentRepository) FindByManager(ctx context.Context, managerUsername string) ([]*domain.Department, error) {
	return r.findMany(ctx, bson.M{"manager_username": managerUsername})
}

func (r *DepartmentRepository) Update(ctx context.Context, name string, dept *domain.Department) (*domain.Department, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx,
		bson.M{"name": name},
		bson.M{"$set": bson.M{
			"name":             dept.Name,
			"canteen_discount": dept.CanteenDiscount,
			"manager_username": dept.ManagerUsername,
			"employees":        dept.Employees,
		}},
		options.Update().SetCollation(nameCollation),
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDepartmentExists
		}
		return nil, fmt.Errorf("update department: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrDepartmentNotFound
	}

	return r.FindByName(ctx, dept.Name)
}

func (r *DepartmentRepository) Delete(ctx context.Context, name string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"name": name},
		options.Delete().SetCollation(nameCollation))
	if err != nil {
		return fmt.Errorf("delete department: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrDepartmentNotFound
	}
	return nil
}

// EnsureIndexes creates the case-insensitive unique name index.
func (r *DepartmentRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true).SetCollation(nameCollation),
		},
		{Keys: bson.D{{Key: "manager_username", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
