package mongo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/talentboard/jobboard/internal/core/domain"
)

const avatarBucket = "avatars"

// AvatarStorage keeps avatar images in a GridFS bucket and serves them under
// <baseURL>/storage/avatars/<path>.
type AvatarStorage struct {
	bucket  *gridfs.Bucket
	baseURL string

	// openMu guards OpenUploadStream, which flips unsynchronised bucket state
	// on the first write.
	openMu     sync.Mutex
	openUpload func(path string, opts *options.UploadOptions) (uploadStream, error)
}

// uploadStream is the part of *gridfs.UploadStream an upload writes through.
type uploadStream interface {
	io.WriteCloser
	SetWriteDeadline(t time.Time) error
	Abort() error
}

func NewAvatarStorage(db *mongo.Database, baseURL string) (*AvatarStorage, error) {
	bucket, err := gridfs.NewBucket(db, options.GridFSBucket().SetName(avatarBucket))
	if err != nil {
		return nil, fmt.Errorf("gridfs bucket: %w", err)
	}
	s := &AvatarStorage{bucket: bucket, baseURL: strings.TrimRight(baseURL, "/")}
	s.openUpload = func(path string, opts *options.UploadOptions) (uploadStream, error) {
		return bucket.OpenUploadStream(path, opts)
	}
	return s, nil
}

// Upload stores content under path and returns its public URL. Each call
// writes through its own upload stream so concurrent uploads share no buffer.
func (s *AvatarStorage) Upload(ctx context.Context, path, contentType string, content io.Reader) (string, error) {
	opts := options.GridFSUpload().SetMetadata(bson.D{{Key: "content_type", Value: contentType}})
	s.openMu.Lock()
	stream, err := s.openUpload(path, opts)
	s.openMu.Unlock()
	if err != nil {
		return "", fmt.Errorf("gridfs open upload: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := stream.SetWriteDeadline(deadline); err != nil {
			_ = stream.Abort()
			return "", err
		}
	}

	if _, err := io.Copy(stream, content); err != nil {
		_ = stream.Abort()
		return "", fmt.Errorf("gridfs upload: %w", err)
	}
	if err := stream.Close(); err != nil {
		return "", fmt.Errorf("gridfs upload: %w", err)
	}
	return s.PublicURL(path), nil
}

// Open returns a reader over the stored file and its content type.
func (s *AvatarStorage) Open(ctx context.Context, path string) (io.ReadCloser, string, error) {
	stream, err := s.bucket.OpenDownloadStreamByName(path)
	if err != nil {
		if errors.Is(err, gridfs.ErrFileNotFound) {
			return nil, "", domain.ErrAvatarNotFound
		}
		return nil, "", fmt.Errorf("gridfs open: %w", err)
	}
	if deadline, ok := ctx.Deadline(); ok {
		if err := stream.SetReadDeadline(deadline); err != nil {
			_ = stream.Close()
			return nil, "", err
		}
	}

	contentType := "application/octet-stream"
	if f := stream.GetFile(); f != nil && len(f.Metadata) > 0 {
		if ct, ok := f.Metadata.Lookup("content_type").StringValueOK(); ok && ct != "" {
			contentType = ct
		}
	}
	return stream, contentType, nil
}

func (s *AvatarStorage) PublicURL(path string) string {
	return s.baseURL + "/storage/avatars/" + path
}
