package address

import (
	"context"
	"errors"
	"time"
)

var ErrInvalid = errors.New("label, line1, city and pincode are required")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List(ctx context.Context, userID int) ([]Address, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Add stores a new address. The user's first address becomes the
// default automatically.
func (s *Service) Add(ctx context.Context, a Address) (Address, error) {
	if err := validate(a); err != nil {
		return Address{}, err
	}
	existing, err := s.repo.ListByUser(ctx, a.UserID)
	if err != nil {
		return Address{}, err
	}
	a.IsDefault = len(existing) == 0
	now := time.Now().UTC().Format(time.RFC3339)
	a.CreatedAt = now
	a.UpdatedAt = now
	return s.repo.Create(ctx, a)
}

func (s *Service) Update(ctx context.Context, a Address) (Address, error) {
	if a.ID <= 0 {
		return Address{}, ErrNotFound
	}
	if err := validate(a); err != nil {
		return Address{}, err
	}
	a.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.Update(ctx, a)
}

func (s *Service) Delete(ctx context.Context, userID, addressID int) error {
	return s.repo.Delete(ctx, userID, addressID)
}

func (s *Service) SetDefault(ctx context.Context, userID, addressID int) error {
	return s.repo.SetDefault(ctx, userID, addressID)
}

func validate(a Address) error {
	if a.Label == "" || a.Line1 == "" || a.City == "" || a.Pincode == "" {
		return ErrInvalid
	}
	return nil
}
