package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// MaxImageSize is the upload cap, checked before any network call.
const MaxImageSize = 10 << 20 // 10 MiB

// ErrImageTooLarge is rejected client-side of the storage call; the message
// matches the size hint shown next to the upload control.
var ErrImageTooLarge = errors.New("a imagem deve ter menos de 10MB")

// UploadError wraps a storage failure after the pre-flight checks passed.
// The enclosing save must abort rather than persist a dangling reference.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("image upload failed: %v", e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// objectClient is the slice of the S3 API the service uses.
type objectClient interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, opts ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// ImageService stores image blobs under owner-scoped, timestamp-suffixed
// keys and resolves public URLs for them.
type ImageService struct {
	client objectClient
	bucket string
	now    func() time.Time
}

// NewImageService creates a new ImageService instance
func NewImageService(client objectClient, bucket string) *ImageService {
	return &ImageService{
		client: client,
		bucket: bucket,
		now:    time.Now,
	}
}

// Upload stores a recipe cover image and returns its public URL. Files over
// MaxImageSize are rejected before any network call.
func (s *ImageService) Upload(ctx context.Context, ownerID uuid.UUID, filename string, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("recipes/%s/%d_%s", ownerID, s.now().UnixMilli(), path.Base(filename))
	return s.put(ctx, key, data, contentType)
}

// UploadMemory stores a memory photo under the owner's memories prefix.
func (s *ImageService) UploadMemory(ctx context.Context, ownerID uuid.UUID, filename string, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("recipes/%s/memories/%d_%s", ownerID, s.now().UnixMilli(), path.Base(filename))
	return s.put(ctx, key, data, contentType)
}

// UploadProfilePhoto stores the profile picture at a fixed per-user key, so
// re-uploads replace it in place.
func (s *ImageService) UploadProfilePhoto(ctx context.Context, ownerID uuid.UUID, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("users/%s/profile.jpg", ownerID)
	return s.put(ctx, key, data, contentType)
}

func (s *ImageService) put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if len(data) > MaxImageSize {
		return "", ErrImageTooLarge
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", &UploadError{Err: err}
	}

	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key), nil
}

// DeleteByURL removes a previously uploaded blob. Best-effort: failures,
// including blobs that are already gone, are logged and swallowed — a
// dangling URL on the document beats blocking an edit or delete on storage
// cleanup.
func (s *ImageService) DeleteByURL(ctx context.Context, url string) {
	key, ok := s.keyFromURL(url)
	if !ok {
		return
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Printf("[ImageService] delete of %s failed (ignored): %v", key, err)
	}
}

func (s *ImageService) keyFromURL(url string) (string, bool) {
	prefix := fmt.Sprintf("https://%s.s3.amazonaws.com/", s.bucket)
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	return key, key != ""
}
