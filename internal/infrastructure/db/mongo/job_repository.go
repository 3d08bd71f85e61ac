package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/talentboard/jobboard/internal/core/domain"
	"github.com/talentboard/jobboard/internal/core/ports"
)

const collectionJobs = "jobs"

// JobRepository implements ports.JobRepository using MongoDB.
type JobRepository struct {
	col *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{col: db.Collection(collectionJobs)}
}

type jobDocument struct {
	ID          string     `bson:"_id"`
	Title       string     `bson:"title"`
	Description string     `bson:"description"`
	SalaryRange string     `bson:"salary_range"`
	ExpiresAt   *time.Time `bson:"expires_at"`
	Status      string     `bson:"status"`
	Company     string     `bson:"company,omitempty"`
	Location    string     `bson:"location,omitempty"`
	Remote      bool       `bson:"remote"`
	Type        string     `bson:"type,omitempty"`
	CreatedAt   time.Time  `bson:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at"`
}

// List returns jobs matching q. Jobs without expiry sort first when ordering
// by expiry.
func (r *JobRepository) List(ctx context.Context, q ports.JobQuery) ([]domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{}
	if q.Status != "" {
		filter["status"] = string(q.Status)
	}
	if !q.ListedAt.IsZero() {
		filter["$or"] = bson.A{
			bson.M{"expires_at": nil},
			bson.M{"expires_at": bson.M{"$gte": q.ListedAt.UTC()}},
		}
	}

	sort := bson.D{{Key: "created_at", Value: -1}}
	if q.OrderByExpiry {
		sort = bson.D{{Key: "expires_at", Value: 1}, {Key: "created_at", Value: -1}}
	}

	cursor, err := r.col.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("find jobs: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []jobDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode jobs: %w", err)
	}

	jobs := make([]domain.Job, 0, len(docs))
	for i := range docs {
		jobs = append(jobs, *docs[i].toDomain())
	}
	return jobs, nil
}

func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc jobDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("find job: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *JobRepository) Create(ctx context.Context, j *domain.Job) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, fromDomainJob(j))
	return err
}

func (r *JobRepository) Update(ctx context.Context, j *domain.Job) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": j.ID}, fromDomainJob(j))
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func (r *JobRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

func fromDomainJob(j *domain.Job) jobDocument {
	doc := jobDocument{
		ID:          j.ID,
		Title:       j.Title,
		Description: j.Description,
		SalaryRange: j.SalaryRange,
		Status:      string(j.Status),
		Company:     j.Company,
		Location:    j.Location,
		Remote:      j.Remote,
		Type:        j.Type,
		CreatedAt:   j.CreatedAt.UTC(),
		UpdatedAt:   j.UpdatedAt.UTC(),
	}
	if j.ExpiresAt != nil {
		t := j.ExpiresAt.UTC()
		doc.ExpiresAt = &t
	}
	return doc
}

func (d *jobDocument) toDomain() *domain.Job {
	j := &domain.Job{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		SalaryRange: d.SalaryRange,
		Status:      domain.JobStatus(d.Status),
		Company:     d.Company,
		Location:    d.Location,
		Remote:      d.Remote,
		Type:        d.Type,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
	if d.ExpiresAt != nil {
		t := d.ExpiresAt.UTC()
		j.ExpiresAt = &t
	}
	return j
}
