package accounts

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"claimdesk/internal/models"
	"claimdesk/internal/repo"
)

var (
	ErrEmailTaken      = errors.New("email already registered")
	ErrEmployeeIDTaken = errors.New("employee id already registered")
	ErrBadCredentials  = errors.New("bad credentials")
)

// Узкие интерфейсы поверх repo-сторов: сервису не нужен весь набор методов.

type EmployeeStore interface {
	Create(ctx context.Context, e *models.Employee) error
	ByEmail(ctx context.Context, email string) (*models.Employee, error)
	ByEmployeeID(ctx context.Context, code string) (*models.Employee, error)
	All(ctx context.Context) ([]models.Employee, error)
}

type AgentStore interface {
	Create(ctx context.Context, a *models.Agent) error
	ByEmail(ctx context.Context, email string) (*models.Agent, error)
}

type HrStore interface {
	Create(ctx context.Context, h *models.Hr) error
	ByEmail(ctx context.Context, email string) (*models.Hr, error)
}

type AdminStore interface {
	ByEmail(ctx context.Context, email string) (*models.Admin, error)
	UpsertSeed(ctx context.Context, email, passwordHash, name string) error
}

type TokenIssuer interface {
	Issue(subject string, role models.Role) (string, error)
}

// Session — результат успешного логина любой роли.
type Session struct {
	Token string      `json:"token"`
	Role  models.Role `json:"role"`
	ID    uint        `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
}

type Service struct {
	employees EmployeeStore
	agents    AgentStore
	hrs       HrStore
	admins    AdminStore
	issuer    TokenIssuer
}

func NewService(employees EmployeeStore, agents AgentStore, hrs HrStore, admins AdminStore, issuer TokenIssuer) *Service {
	return &Service{employees: employees, agents: agents, hrs: hrs, admins: admins, issuer: issuer}
}

func hashPassword(raw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	return string(b), err
}

func checkPassword(hash, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}

// -------- Регистрация --------

type RegisterEmployeeInput struct {
	Name       string
	Email      string
	EmployeeID string // корпоративный код, опционален
	Password   string
}

func (s *Service) RegisterEmployee(ctx context.Context, in RegisterEmployeeInput) (*models.Employee, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := s.employees.ByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	var code *string
	if c := strings.TrimSpace(in.EmployeeID); c != "" {
		if _, err := s.employees.ByEmployeeID(ctx, c); err == nil {
			return nil, ErrEmployeeIDTaken
		} else if !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
		code = &c
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	e := &models.Employee{
		Name:         in.Name,
		Email:        email,
		EmployeeID:   code,
		PasswordHash: hash,
		Role:         models.RoleEmployee,
	}
	if err := s.employees.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

type RegisterAgentInput struct {
	Name     string
	Email    string
	Password string
}

func (s *Service) RegisterAgent(ctx context.Context, in RegisterAgentInput) (*models.Agent, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := s.agents.ByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	a := &models.Agent{Name: in.Name, Email: email, PasswordHash: hash}
	if err := s.agents.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

type RegisterHrInput struct {
	Name        string
	Email       string
	Password    string
	HrID        string
	PhoneNumber string
}

func (s *Service) RegisterHr(ctx context.Context, in RegisterHrInput) (*models.Hr, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if _, err := s.hrs.ByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	h := &models.Hr{Name: in.Name, Email: email, PasswordHash: hash, HrID: in.HrID, PhoneNumber: in.PhoneNumber}
	if err := s.hrs.Create(ctx, h); err != nil {
		return nil, err
	}
	return h, nil
}

// SeedAdmin заводит/обновляет привилегированную учётку из конфига.
// Замена захардкоженной пары логин/пароль исходной системы.
func (s *Service) SeedAdmin(ctx context.Context, email, password, name string) error {
	hash, err := hashPassword(password)
	if err != nil {
		return err
	}
	return s.admins.UpsertSeed(ctx, strings.ToLower(strings.TrimSpace(email)), hash, name)
}

// -------- Логин --------

// LoginEmployee принимает email либо корпоративный код.
// Subject токена — всегда email учётки.
func (s *Service) LoginEmployee(ctx context.Context, identifier, password string) (*Session, error) {
	identifier = strings.TrimSpace(identifier)
	e, err := s.employees.ByEmail(ctx, strings.ToLower(identifier))
	if errors.Is(err, repo.ErrNotFound) {
		e, err = s.employees.ByEmployeeID(ctx, identifier)
	}
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if !checkPassword(e.PasswordHash, password) {
		return nil, ErrBadCredentials
	}
	tok, err := s.issuer.Issue(e.Email, models.RoleEmployee)
	if err != nil {
		return nil, err
	}
	return &Session{Token: tok, Role: models.RoleEmployee, ID: e.ID, Name: e.Name, Email: e.Email}, nil
}

func (s *Service) LoginAgent(ctx context.Context, email, password string) (*Session, error) {
	a, err := s.agents.ByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if !checkPassword(a.PasswordHash, password) {
		return nil, ErrBadCredentials
	}
	tok, err := s.issuer.Issue(a.Email, models.RoleAgent)
	if err != nil {
		return nil, err
	}
	return &Session{Token: tok, Role: models.RoleAgent, ID: a.ID, Name: a.Name, Email: a.Email}, nil
}

func (s *Service) LoginHr(ctx context.Context, email, password string) (*Session, error) {
	h, err := s.hrs.ByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if !checkPassword(h.PasswordHash, password) {
		return nil, ErrBadCredentials
	}
	tok, err := s.issuer.Issue(h.Email, models.RoleHr)
	if err != nil {
		return nil, err
	}
	return &Session{Token: tok, Role: models.RoleHr, ID: h.ID, Name: h.Name, Email: h.Email}, nil
}

func (s *Service) LoginAdmin(ctx context.Context, email, password string) (*Session, error) {
	a, err := s.admins.ByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if !checkPassword(a.PasswordHash, password) {
		return nil, ErrBadCredentials
	}
	tok, err := s.issuer.Issue(a.Email, models.RoleAdmin)
	if err != nil {
		return nil, err
	}
	return &Session{Token: tok, Role: models.RoleAdmin, ID: a.ID, Name: a.Name, Email: a.Email}, nil
}

func (s *Service) AllEmployees(ctx context.Context) ([]models.Employee, error) {
	return s.employees.All(ctx)
}
