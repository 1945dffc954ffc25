package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"cashdrawer/internal/config"
	"cashdrawer/internal/dto"
	"cashdrawer/internal/model"
	"cashdrawer/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type EmployeeService interface {
	Register(ctx context.Context, req dto.RegisterEmployeeRequest) (*dto.EmployeeResponse, error)
	Authenticate(ctx context.Context, document, secret string) (*model.Employee, error)
	// Login authenticates and issues a bearer token for the HTTP API.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Get(ctx context.Context, id uint) (*dto.EmployeeResponse, error)
}

type employeeService struct {
	repo repository.EmployeeRepository
	cfg  *config.Config
	// dummyHash is compared against when the document is unknown so both
	// failure paths cost one bcrypt comparison.
	dummyHash []byte
}

func NewEmployeeService(repo repository.EmployeeRepository, cfg *config.Config) EmployeeService {
	s := &employeeService{repo: repo, cfg: cfg}
	s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("cashdrawer-unknown-document"), s.cost())
	return s
}

// ── Register ──────────────────────────────────────────────────────────────────

func (s *employeeService) Register(ctx context.Context, req dto.RegisterEmployeeRequest) (*dto.EmployeeResponse, error) {
	name := strings.TrimSpace(req.Name)
	document := strings.TrimSpace(req.Document)
	if name == "" || document == "" || req.Secret == "" {
		return nil, invalid("name, document and secret are required")
	}

	if _, err := s.repo.FindByDocument(ctx, document); err == nil {
		return nil, ErrDuplicateDocument
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, storageErr("find employee", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Secret), s.cost())
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, invalid("secret is too long")
		}
		return nil, err
	}
	e := &model.Employee{
		Name:           name,
		Document:       document,
		CredentialHash: string(hash),
	}
	if err := s.repo.Create(ctx, e); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateDocument
		}
		return nil, storageErr("create employee", err)
	}

	log.Info().Uint("employee_id", e.ID).Msg("employee registered")
	return employeeToResponse(e), nil
}

// ── Authenticate ──────────────────────────────────────────────────────────────

func (s *employeeService) Authenticate(ctx context.Context, document, secret string) (*model.Employee, error) {
	e, err := s.repo.FindByDocument(ctx, strings.TrimSpace(document))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, storageErr("find employee", err)
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(secret))
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(e.CredentialHash), []byte(secret)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return e, nil
}

func (s *employeeService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	e, err := s.Authenticate(ctx, req.Document, req.Secret)
	if err != nil {
		return nil, err
	}
	token, err := s.generateToken(e, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   s.cfg.JWTExpirationHours * 3600,
		Employee:    *employeeToResponse(e),
	}, nil
}

func (s *employeeService) Get(ctx context.Context, id uint) (*dto.EmployeeResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr("find employee", err, ErrNotFound)
	}
	return employeeToResponse(e), nil
}

func (s *employeeService) cost() int {
	if s.cfg.BcryptCost < bcrypt.MinCost || s.cfg.BcryptCost > bcrypt.MaxCost {
		return bcrypt.DefaultCost
	}
	return s.cfg.BcryptCost
}

func (s *employeeService) generateToken(e *model.Employee, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"employee_id": e.ID,
		"name":        e.Name,
		"document":    e.Document,
		"exp":         now.Add(duration).Unix(),
		"iat":         now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func employeeToResponse(e *model.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{ID: e.ID, Name: e.Name, Document: e.Document}
}
