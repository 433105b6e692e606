package mongodb

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/trezcool/skillboost/core"
	"github.com/trezcool/skillboost/core/user"
)

type (
	userDoc struct {
		ID        primitive.ObjectID `bson:"_id,omitempty"`
		Name      string             `bson:"name,omitempty"`
		Email     string             `bson:"email"`
		Photo     string             `bson:"photo,omitempty"`
		Role      string             `bson:"role,omitempty"`
		CreatedAt time.Time          `bson:"created_at,omitempty"`
	}

	requestDoc struct {
		ID         primitive.ObjectID `bson:"_id,omitempty"`
		Name       string             `bson:"name,omitempty"`
		Email      string             `bson:"email"`
		Image      string             `bson:"image,omitempty"`
		Title      string             `bson:"title"`
		Category   string             `bson:"category"`
		Experience string             `bson:"experience"`
		Status     string             `bson:"status"`
		CreatedAt  time.Time          `bson:"created_at,omitempty"`
	}
)

func (d userDoc) user() user.User {
	return user.User{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Photo:     d.Photo,
		Role:      user.Role(d.Role),
		CreatedAt: d.CreatedAt,
	}
}

func (d requestDoc) request() user.TeacherRequest {
	return user.TeacherRequest{
		ID:         d.ID.Hex(),
		Name:       d.Name,
		Email:      d.Email,
		Image:      d.Image,
		Title:      d.Title,
		Category:   d.Category,
		Experience: d.Experience,
		Status:     d.Status,
		CreatedAt:  d.CreatedAt,
	}
}

type userRepository struct {
	users    *mongo.Collection
	requests *mongo.Collection
}

func NewUserRepository(db *mongo.Database) user.Repository {
	return &userRepository{
		users:    db.Collection(userColl),
		requests: db.Collection(requestColl),
	}
}

func (repo *userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	doc := userDoc{
		ID:        primitive.NewObjectID(),
		Name:      usr.Name,
		Email:     usr.Email,
		Photo:     usr.Photo,
		Role:      string(usr.Role),
		CreatedAt: usr.CreatedAt,
	}
	if _, err := repo.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return doc.user(), nil
}

func (repo *userRepository) QueryAllUsers(ctx context.Context) ([]user.User, error) {
	return findAll(ctx, repo.users, userDoc.user)
}

func (repo *userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	return findByID(ctx, repo.users, id, userDoc.user, user.ErrNotFound)
}

func (repo *userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	return findOne(ctx, repo.users, bson.M{"email": email}, userDoc.user, user.ErrNotFound)
}

func (repo *userRepository) SetUserRole(ctx context.Context, id string, role user.Role) (core.UpdateResult, error) {
	oid, ok := objectID(id)
	if !ok {
		return core.UpdateResult{Acknowledged: true}, nil
	}
	res, err := repo.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"role": string(role)}})
	if err != nil {
		return core.UpdateResult{}, errors.Wrap(err, "updating user role")
	}
	return updateResult(res), nil
}

func (repo *userRepository) CreateTeacherRequest(ctx context.Context, req user.TeacherRequest) (user.TeacherRequest, error) {
	doc := requestDoc{
		ID:         primitive.NewObjectID(),
		Name:       req.Name,
		Email:      req.Email,
		Image:      req.Image,
		Title:      req.Title,
		Category:   req.Category,
		Experience: req.Experience,
		Status:     req.Status,
		CreatedAt:  req.CreatedAt,
	}
	if err := insertOne(ctx, repo.requests, doc); err != nil {
		return user.TeacherRequest{}, err
	}
	return doc.request(), nil
}

func (repo *userRepository) QueryAllTeacherRequests(ctx context.Context) ([]user.TeacherRequest, error) {
	return findAll(ctx, repo.requests, requestDoc.request)
}

func (repo *userRepository) GetTeacherRequestByID(ctx context.Context, id string) (user.TeacherRequest, error) {
	return findByID(ctx, repo.requests, id, requestDoc.request, user.ErrRequestNotFound)
}

func (repo *userRepository) DeleteTeacherRequest(ctx context.Context, id string) (core.DeleteResult, error) {
	oid, ok := objectID(id)
	if !ok {
		return core.DeleteResult{Acknowledged: true}, nil
	}
	res, err := repo.requests.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return core.DeleteResult{}, errors.Wrap(err, "deleting teacher request")
	}
	return core.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}
