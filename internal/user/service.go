package user

import (
	"context"

	"golang.org/x/crypto/bcrypt"
)

// ServiceInterface is what the order side of the system needs from the
// user package: identity lookups and the purchase counter.
type ServiceInterface interface {
	GetByID(ctx context.Context, id int) (User, error)
	AdjustPurchaseCount(ctx context.Context, id, delta int) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(ctx context.Context, id int) (User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) AdjustPurchaseCount(ctx context.Context, id, delta int) error {
	return s.repo.AdjustPurchaseCount(ctx, id, delta)
}

func (s *Service) Register(ctx context.Context, u User) (User, error) {
	if _, err := s.repo.GetByEmail(ctx, u.Email); err == nil {
		return User{}, ErrEmailExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	u.Password = string(hashed)
	if u.Role == "" {
		u.Role = RoleCustomer
	}
	return s.repo.Create(ctx, u)
}

func (s *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}
