package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/talentboard/jobboard/internal/core/domain"
)

const collectionApplications = "applications"

// ApplicationRepository implements ports.ApplicationRepository using MongoDB.
type ApplicationRepository struct {
	col *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{col: db.Collection(collectionApplications)}
}

type applicationDocument struct {
	ID          string    `bson:"_id"`
	JobID       string    `bson:"job_id"`
	UserID      string    `bson:"user_id"`
	CoverLetter string    `bson:"cover_letter"`
	Status      string    `bson:"status"`
	CreatedAt   time.Time `bson:"created_at"`
}

type applicationViewDocument struct {
	applicationDocument `bson:",inline"`
	Job                 []struct {
		Title    string `bson:"title"`
		Company  string `bson:"company"`
		Location string `bson:"location"`
	} `bson:"job"`
}

// Create inserts the application. The unique (job_id, user_id) index turns a
// second application into domain.ErrAlreadyApplied.
func (r *ApplicationRepository) Create(ctx context.Context, a *domain.Application) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := applicationDocument{
		ID:          a.ID,
		JobID:       a.JobID,
		UserID:      a.UserID,
		CoverLetter: a.CoverLetter,
		Status:      string(a.Status),
		CreatedAt:   a.CreatedAt.UTC(),
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyApplied
		}
		return err
	}
	return nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc applicationDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("find application: %w", err)
	}
	app := doc.toDomain()
	return &app, nil
}

// ListByUser joins each application with its job, newest first.
func (r *ApplicationRepository) ListByUser(ctx context.Context, userID string) ([]domain.ApplicationView, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"user_id": userID}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         collectionJobs,
			"localField":   "job_id",
			"foreignField": "_id",
			"as":           "job",
		}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate applications: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []applicationViewDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode applications: %w", err)
	}

	views := make([]domain.ApplicationView, 0, len(docs))
	for _, d := range docs {
		v := domain.ApplicationView{Application: d.toDomain()}
		if len(d.Job) > 0 {
			v.JobTitle = d.Job[0].Title
			v.JobCompany = d.Job[0].Company
			v.JobLocation = d.Job[0].Location
		}
		views = append(views, v)
	}
	return views, nil
}

func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, status domain.ApplicationStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": string(status)}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrApplicationNotFound
	}
	return nil
}

func (r *ApplicationRepository) DeleteByJob(ctx context.Context, jobID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"job_id": jobID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

func (d *applicationDocument) toDomain() domain.Application {
	return domain.Application{
		ID:          d.ID,
		JobID:       d.JobID,
		UserID:      d.UserID,
		CoverLetter: d.CoverLetter,
		Status:      domain.ApplicationStatus(d.Status),
		CreatedAt:   d.CreatedAt.UTC(),
	}
}
