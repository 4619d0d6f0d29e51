package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/receitinhas/backend/internal/draft"
)

const draftTTL = 24 * time.Hour

// DraftService persists in-progress form sessions in redis so an unfinished
// recipe survives a page reload. Drafts expire after a day.
type DraftService struct {
	redis *redis.Client
}

func NewDraftService(redisClient *redis.Client) *DraftService {
	return &DraftService{redis: redisClient}
}

// SaveDraft stores a new draft and assigns its id.
func (s *DraftService) SaveDraft(ctx context.Context, d *draft.Draft) error {
	d.ID = uuid.New().String()
	d.CreatedAt = time.Now()
	d.UpdatedAt = time.Now()

	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	if err := s.redis.Set(ctx, draftKey(d.ID), data, draftTTL).Err(); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

// GetDraft retrieves a draft by id.
func (s *DraftService) GetDraft(ctx context.Context, id string) (*draft.Draft, error) {
	data, err := s.redis.Get(ctx, draftKey(id)).Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	var d draft.Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return &d, nil
}

// UpdateDraft rewrites an existing draft and refreshes its expiry.
func (s *DraftService) UpdateDraft(ctx context.Context, d *draft.Draft) error {
	d.UpdatedAt = time.Now()

	data, err := json.Marshal(d)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	if err := s.redis.Set(ctx, draftKey(d.ID), data, draftTTL).Err(); err != nil {
		return fmt.Errorf("failed to update draft: %w", err)
	}
	return nil
}

// DeleteDraft removes a draft.
func (s *DraftService) DeleteDraft(ctx context.Context, id string) error {
	if err := s.redis.Del(ctx, draftKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}

func draftKey(id string) string {
	return fmt.Sprintf("recipe:draft:%s", id)
}
