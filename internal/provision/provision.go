// Package provision creates staff accounts on behalf of an authenticated
// administrator and bootstraps the first admin of an empty studio.
package provision

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/nail-studio/internal/audit"
	domain "github.com/BruksfildServices01/nail-studio/internal/domain/appointment"
	"github.com/BruksfildServices01/nail-studio/internal/forms"
	"github.com/BruksfildServices01/nail-studio/internal/infra/repository"
	"github.com/BruksfildServices01/nail-studio/internal/models"
)

// Kind segue a taxonomia de erros da função de provisionamento.
type Kind string

const (
	Unauthenticated  Kind = "unauthenticated"
	PermissionDenied Kind = "permission-denied"
	InvalidArgument  Kind = "invalid-argument"
	AlreadyExists    Kind = "already-exists"
	Internal         Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Status() int {
	switch e.Kind {
	case Unauthenticated:
		return http.StatusUnauthorized
	case PermissionDenied:
		return http.StatusForbidden
	case InvalidArgument:
		return http.StatusBadRequest
	case AlreadyExists:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func fail(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Message: msg, Err: err}
}

// KindOf devolve o Kind de um erro de provisionamento (Internal se outro).
func KindOf(err error) Kind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return Internal
}

type Store interface {
	GetUser(ctx context.Context, id string) (*models.User, error)
	CountUsers(ctx context.Context) (int64, error)
	CreateUser(ctx context.Context, u *models.User) error
}

type UserForm struct {
	Email    string          `json:"email" validate:"required,email,max=120"`
	Password string          `json:"password" validate:"required,min=6,max=72"`
	Name     string          `json:"name" validate:"required,max=100"`
	Role     models.UserRole `json:"role" validate:"omitempty,oneof=admin employee"`
}

type Service struct {
	store Store
	audit *audit.Dispatcher

	// DomainCheck, quando definido, valida o domínio do e-mail (MX/IP).
	DomainCheck func(ctx context.Context, email string) bool
}

func New(store Store, audit *audit.Dispatcher) *Service {
	return &Service{store: store, audit: audit}
}

// CreateUser exige um chamador autenticado e cadastrado como admin ativo.
func (s *Service) CreateUser(ctx context.Context, callerID string, form UserForm) (*models.User, error) {

	// --------------------------------------------------
	// 1️⃣ Chamador
	// --------------------------------------------------
	if callerID == "" {
		return nil, fail(Unauthenticated, "login required", nil)
	}

	caller, err := s.store.GetUser(ctx, callerID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fail(PermissionDenied, "caller has no profile", nil)
	}
	if err != nil {
		return nil, fail(Internal, "load caller", err)
	}
	if caller.Role != models.RoleAdmin || !caller.Active {
		return nil, fail(PermissionDenied, "admin role required", nil)
	}

	// --------------------------------------------------
	// 2️⃣ Dados
	// --------------------------------------------------
	form.Email = strings.ToLower(strings.TrimSpace(form.Email))
	form.Name = strings.TrimSpace(form.Name)
	if err := forms.Validate(form); err != nil {
		return nil, fail(InvalidArgument, "email, password and name are required", err)
	}
	if s.DomainCheck != nil && !s.DomainCheck(ctx, form.Email) {
		return nil, fail(InvalidArgument, "email domain does not resolve", nil)
	}

	if form.Role == "" {
		form.Role = models.RoleEmployee
	}

	user, err := s.create(ctx, form)
	if err != nil {
		return nil, err
	}

	s.audit.Dispatch(audit.Event{
		UserID:   &caller.ID,
		Action:   "user_created",
		Entity:   "user",
		EntityID: &user.ID,
		Metadata: map[string]string{"role": string(user.Role)},
	})

	return user, nil
}

func (s *Service) create(ctx context.Context, form UserForm) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fail(Internal, "hash password", err)
	}

	user := &models.User{
		Name:         form.Name,
		Email:        form.Email,
		PasswordHash: string(hashed),
		Role:         form.Role,
		Active:       true,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fail(AlreadyExists, "email already registered", err)
		}
		return nil, fail(Internal, "create user", err)
	}
	return user, nil
}

// EnsureAdmin cria o primeiro admin quando ainda não existe nenhum usuário.
func (s *Service) EnsureAdmin(ctx context.Context, email, password, name string) (bool, error) {
	if email == "" || password == "" {
		return false, nil
	}

	n, err := s.store.CountUsers(ctx)
	if err != nil {
		return false, fail(Internal, "count users", err)
	}
	if n > 0 {
		return false, nil
	}

	form := UserForm{
		Email:    strings.ToLower(strings.TrimSpace(email)),
		Password: password,
		Name:     strings.TrimSpace(name),
		Role:     models.RoleAdmin,
	}
	if err := forms.Validate(form); err != nil {
		return false, fail(InvalidArgument, "bootstrap admin", err)
	}

	if _, err := s.create(ctx, form); err != nil {
		return false, err
	}
	return true, nil
}
