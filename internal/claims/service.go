package claims

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"

	"claimdesk/internal/models"
	"claimdesk/internal/repo"
)

var (
	ErrPolicyNotFound  = errors.New("policy not found")
	ErrClaimNotFound   = errors.New("claim not found")
	ErrExceedsCoverage = errors.New("claim amount exceeds policy coverage")
	ErrNotOwner        = errors.New("claim belongs to another employee")
	ErrAlreadyResolved = errors.New("claim already resolved")
	ErrNotAssignedHr   = errors.New("claim assigned to another hr")
)

type ClaimStore interface {
	Create(ctx context.Context, c *models.Claim) error
	Save(ctx context.Context, c *models.Claim) error
	ByID(ctx context.Context, id uint) (*models.Claim, error)
	ByEmployee(ctx context.Context, employeeID uint) ([]models.Claim, error)
	ByStatus(ctx context.Context, status string) ([]models.Claim, error)
	ByAssignedHr(ctx context.Context, hrID uint) ([]models.Claim, error)
	All(ctx context.Context) ([]models.Claim, error)
	CountPending(ctx context.Context, hrID uint) (int64, error)
}

type PolicyGetter interface {
	ByID(ctx context.Context, id uint) (*models.Policy, error)
}

type HrLister interface {
	All(ctx context.Context) ([]models.Hr, error)
}

type Service struct {
	claims   ClaimStore
	policies PolicyGetter
	hrs      HrLister
	now      func() time.Time
}

func NewService(claims ClaimStore, policies PolicyGetter, hrs HrLister) *Service {
	return &Service{claims: claims, policies: policies, hrs: hrs, now: time.Now}
}

type SubmitInput struct {
	EmployeeID  uint
	PolicyID    uint
	Title       string
	Description string
	Amount      float64
	ClaimDate   *time.Time
	Documents   []string
}

// Submit создаёт Pending-заявку, проверяет покрытие (граница включительно:
// amount == coverage проходит) и один раз назначает наименее загруженного HR.
// Нет ни одного HR — заявка остаётся без назначения, создание не падает.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*models.Claim, error) {
	p, err := s.policies.ByID(ctx, in.PolicyID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, err
	}
	if in.Amount > p.CoverageAmount {
		return nil, ErrExceedsCoverage
	}

	now := s.now()
	c := &models.Claim{
		Title:       in.Title,
		Description: in.Description,
		Amount:      in.Amount,
		Status:      models.ClaimStatusPending,
		ClaimDate:   now,
		EmployeeID:  in.EmployeeID,
		PolicyID:    in.PolicyID,
		Documents:   datatypes.NewJSONSlice(in.Documents),
	}
	if in.ClaimDate != nil {
		c.ClaimDate = *in.ClaimDate
	}

	// Назначение: read-then-act, под конкурентными сабмитами две заявки
	// могут достаться одному HR — принимаем как eventual fairness,
	// транзакционной границы тут нет и в исходной системе не было.
	hrs, err := s.hrs.All(ctx)
	if err == nil {
		if hr := LeastLoaded(hrs, func(id uint) (int64, error) {
			return s.claims.CountPending(ctx, id)
		}); hr != nil {
			c.AssignedHrID = &hr.ID
		}
	}

	if err := s.claims.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// resolve — единственный путь из Pending; Approved/Rejected конечны.
// Строгая политика: назначенную заявку закрывает только её HR,
// заявку без назначения — любой HR.
func (s *Service) resolve(ctx context.Context, claimID, hrID uint, status, remarks string) (*models.Claim, error) {
	c, err := s.claims.ByID(ctx, claimID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrClaimNotFound
	}
	if err != nil {
		return nil, err
	}
	if c.Status != models.ClaimStatusPending {
		return nil, ErrAlreadyResolved
	}
	if c.AssignedHrID != nil && *c.AssignedHrID != hrID {
		return nil, ErrNotAssignedHr
	}
	c.Status = status
	c.Remarks = remarks
	c.UpdatedAt = s.now()
	if err := s.claims.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Approve(ctx context.Context, claimID, hrID uint, remarks string) (*models.Claim, error) {
	return s.resolve(ctx, claimID, hrID, models.ClaimStatusApproved, remarks)
}

func (s *Service) Reject(ctx context.Context, claimID, hrID uint, remarks string) (*models.Claim, error) {
	return s.resolve(ctx, claimID, hrID, models.ClaimStatusRejected, remarks)
}

type UpdateInput struct {
	Title       string
	Description string
	Amount      float64
}

// Update — правка владельцем, только пока заявка Pending; покрытие
// перепроверяется.
func (s *Service) Update(ctx context.Context, claimID, employeeID uint, in UpdateInput) (*models.Claim, error) {
	c, err := s.claims.ByID(ctx, claimID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrClaimNotFound
	}
	if err != nil {
		return nil, err
	}
	if c.EmployeeID != employeeID {
		return nil, ErrNotOwner
	}
	if c.Status != models.ClaimStatusPending {
		return nil, ErrAlreadyResolved
	}

	p, err := s.policies.ByID(ctx, c.PolicyID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, err
	}
	if in.Amount > p.CoverageAmount {
		return nil, ErrExceedsCoverage
	}

	c.Title = in.Title
	c.Description = in.Description
	c.Amount = in.Amount
	c.UpdatedAt = s.now()
	if err := s.claims.Save(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) ByEmployee(ctx context.Context, employeeID uint) ([]models.Claim, error) {
	return s.claims.ByEmployee(ctx, employeeID)
}

func (s *Service) ByAssignedHr(ctx context.Context, hrID uint) ([]models.Claim, error) {
	return s.claims.ByAssignedHr(ctx, hrID)
}

func (s *Service) ByStatus(ctx context.Context, status string) ([]models.Claim, error) {
	return s.claims.ByStatus(ctx, status)
}

func (s *Service) All(ctx context.Context) ([]models.Claim, error) {
	return s.claims.All(ctx)
}
