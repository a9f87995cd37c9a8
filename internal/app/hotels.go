package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"hotrodebabi/internal/domain"
)

// HotelService is the admin back-office over persisted hotel records.
// Reads go through the cache; every write invalidates the touched keys.
type HotelService struct {
	repo     domain.HotelRepository
	cache    domain.Cache
	cacheTTL time.Duration
	clock    func() time.Time
}

func NewHotelService(r domain.HotelRepository, c domain.Cache, ttl time.Duration) *HotelService {
	return &HotelService{repo: r, cache: c, cacheTTL: ttl, clock: time.Now}
}

func hotelKey(id string) string { return "hotel:" + id }

func (s *HotelService) Get(ctx context.Context, id string) (domain.Hotel, error) {
	var h domain.Hotel
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, hotelKey(id), &h); ok {
			return h, nil
		}
	}
	h, err := s.repo.GetHotel(ctx, id)
	if err != nil {
		return domain.Hotel{}, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, hotelKey(id), h, s.cacheTTL)
	}
	return h, nil
}

func (s *HotelService) List(ctx context.Context, status *domain.HotelStatus, limit int) ([]domain.Hotel, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.ListHotels(ctx, status, limit)
}

func (s *HotelService) Create(ctx context.Context, h domain.Hotel) (domain.Hotel, error) {
	if strings.TrimSpace(h.Name) == "" || strings.TrimSpace(h.Location) == "" {
		return domain.Hotel{}, fmt.Errorf("%w: name and location are required", domain.ErrValidation)
	}
	if h.Price <= 0 {
		return domain.Hotel{}, fmt.Errorf("%w: price must be positive", domain.ErrValidation)
	}
	h.ID = uuid.NewString()
	h.Status = domain.HotelPending
	now := s.clock()
	h.CreatedAt, h.UpdatedAt = now, now
	if err := s.repo.CreateHotel(ctx, h); err != nil {
		return domain.Hotel{}, err
	}
	return h, nil
}

func (s *HotelService) Update(ctx context.Context, h domain.Hotel) error {
	if h.ID == "" {
		return fmt.Errorf("%w: id is required", domain.ErrValidation)
	}
	h.UpdatedAt = s.clock()
	if err := s.repo.UpdateHotel(ctx, h); err != nil {
		return err
	}
	s.invalidate(ctx, h.ID)
	return nil
}

// SetStatus applies an admin lifecycle transition. approved_at is stamped on
// the first move into approved/active.
func (s *HotelService) SetStatus(ctx context.Context, id string, to domain.HotelStatus) error {
	h, err := s.repo.GetHotel(ctx, id)
	if err != nil {
		return err
	}
	if !h.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrTransition, h.Status, to)
	}
	var approvedAt *time.Time
	if (to == domain.HotelApproved || to == domain.HotelActive) && h.ApprovedAt == nil {
		now := s.clock()
		approvedAt = &now
	}
	if err := s.repo.UpdateHotelStatus(ctx, id, to, approvedAt); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *HotelService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteHotel(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *HotelService) invalidate(ctx context.Context, id string) {
	if s.cache != nil {
		_ = s.cache.Del(ctx, hotelKey(id))
	}
}
