package user

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"foodflow/domain"
	"foodflow/entities"
	"foodflow/pkg/jwt"
)

type memoryUserRepository struct {
	mu    sync.Mutex
	users map[string]*entities.User
	err   error
}

func newMemoryUserRepository() *memoryUserRepository {
	return &memoryUserRepository{users: map[string]*entities.User{}}
}

func (r *memoryUserRepository) CreateUser(ctx context.Context, user *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyRegistered
		}
	}
	copied := *user
	r.users[user.ID.String()] = &copied
	return nil
}

func (r *memoryUserRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *memoryUserRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memoryUserRepository) UpdatePassword(ctx context.Context, id string, hashed string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Password = hashed
	return nil
}

type mockMailer struct {
	SendMailFunc func(to, subject, body string) error
}

func (m *mockMailer) SendMail(to, subject, body string) error {
	if m.SendMailFunc != nil {
		return m.SendMailFunc(to, subject, body)
	}
	return nil
}

func newTestUserService(repo UserRepository, mailer *mockMailer) (UserService, jwt.JWTService) {
	jwtService := jwt.NewJWTService("test-secret")
	return NewUserService(repo, jwtService, mailer, "https://foodflow.test"), jwtService
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newMemoryUserRepository()
	svc, jwtService := newTestUserService(repo, &mockMailer{})
	ctx := context.Background()

	reg, err := svc.Register(ctx, domain.RegisterRequest{Name: "Ana", Email: " Ana@Example.com ", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	id, role, err := jwtService.GetUserIDByToken(reg.Token)
	if err != nil || id != reg.UserID || role != domain.RoleUser {
		t.Fatalf("token claims = %s %s %v", id, role, err)
	}

	if _, err := svc.Register(ctx, domain.RegisterRequest{Email: "ana@example.com", Password: "other12"}); !errors.Is(err, domain.ErrEmailAlreadyRegistered) {
		t.Errorf("second Register err = %v", err)
	}

	login, err := svc.Login(ctx, domain.LoginRequest{Email: "ana@example.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.UserID != reg.UserID {
		t.Errorf("login user = %s, want %s", login.UserID, reg.UserID)
	}

	if _, err := svc.Login(ctx, domain.LoginRequest{Email: "ana@example.com", Password: "wrong"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("wrong password err = %v", err)
	}
	if _, err := svc.Login(ctx, domain.LoginRequest{Email: "nobody@example.com", Password: "secret1"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v", err)
	}
}

func TestRegisterRejectsBlankCredentials(t *testing.T) {
	svc, _ := newTestUserService(newMemoryUserRepository(), &mockMailer{})

	tests := []domain.RegisterRequest{
		{Email: "", Password: "secret1"},
		{Email: "a@b.co", Password: ""},
		{Email: "   ", Password: "secret1"},
	}
	for _, req := range tests {
		if _, err := svc.Register(context.Background(), req); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("Register(%+v) err = %v, want ErrValidation", req, err)
		}
	}
}

func TestRegisterSurfacesRemoteFailure(t *testing.T) {
	repo := newMemoryUserRepository()
	repo.err = domain.NewRemoteFailure("create user", errors.New("db down"))
	svc, _ := newTestUserService(repo, &mockMailer{})

	if _, err := svc.Register(context.Background(), domain.RegisterRequest{Email: "a@b.co", Password: "secret1"}); !domain.IsRemoteFailure(err) {
		t.Errorf("err = %v, want remote failure", err)
	}
}

func TestMeDisplayName(t *testing.T) {
	repo := newMemoryUserRepository()
	svc, _ := newTestUserService(repo, &mockMailer{})
	ctx := context.Background()

	named, _ := svc.Register(ctx, domain.RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secret1"})
	unnamed, _ := svc.Register(ctx, domain.RegisterRequest{Email: "bo@example.com", Password: "secret1"})

	me, err := svc.Me(ctx, named.UserID)
	if err != nil || me.DisplayName != "Ana" {
		t.Errorf("named Me = %+v, %v", me, err)
	}
	me, err = svc.Me(ctx, unnamed.UserID)
	if err != nil || me.DisplayName != "bo@example.com" {
		t.Errorf("unnamed Me = %+v, %v", me, err)
	}

	if _, err := svc.Me(ctx, ""); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Errorf("anonymous Me err = %v", err)
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct{ name, email, want string }{
		{"Ana", "ana@example.com", "Ana"},
		{"  ", "ana@example.com", "ana@example.com"},
		{"", "", domain.DefaultDisplayName},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.name, tt.email); got != tt.want {
			t.Errorf("DisplayName(%q, %q) = %q, want %q", tt.name, tt.email, got, tt.want)
		}
	}
}

func TestForgotAndResetPassword(t *testing.T) {
	repo := newMemoryUserRepository()
	var sentTo, sentBody string
	mailer := &mockMailer{
		SendMailFunc: func(to, subject, body string) error {
			sentTo, sentBody = to, body
			return nil
		},
	}
	svc, _ := newTestUserService(repo, mailer)
	ctx := context.Background()

	if _, err := svc.Register(ctx, domain.RegisterRequest{Email: "ana@example.com", Password: "secret1"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if err := svc.ForgotPassword(ctx, domain.ForgotPasswordRequest{Email: "ana@example.com"}); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	if sentTo != "ana@example.com" {
		t.Fatalf("mail sent to %q", sentTo)
	}

	const marker = "token="
	i := strings.Index(sentBody, marker)
	if i < 0 {
		t.Fatalf("no token in body %q", sentBody)
	}
	token := sentBody[i+len(marker):]
	token = token[:strings.IndexByte(token, '"')]

	if err := svc.ResetPassword(ctx, domain.ResetPasswordRequest{Token: token, Password: "newpass1"}); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if _, err := svc.Login(ctx, domain.LoginRequest{Email: "ana@example.com", Password: "newpass1"}); err != nil {
		t.Errorf("login with new password: %v", err)
	}
	if _, err := svc.Login(ctx, domain.LoginRequest{Email: "ana@example.com", Password: "secret1"}); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("old password still accepted: %v", err)
	}
}

func TestForgotPasswordUnknownEmail(t *testing.T) {
	mailer := &mockMailer{
		SendMailFunc: func(to, subject, body string) error {
			t.Error("mail sent for unknown email")
			return nil
		},
	}
	svc, _ := newTestUserService(newMemoryUserRepository(), mailer)

	if err := svc.ForgotPassword(context.Background(), domain.ForgotPasswordRequest{Email: "ghost@example.com"}); err != nil {
		t.Errorf("err = %v", err)
	}
}

func TestResetPasswordRejectsAccessToken(t *testing.T) {
	repo := newMemoryUserRepository()
	svc, _ := newTestUserService(repo, &mockMailer{})
	ctx := context.Background()

	reg, _ := svc.Register(ctx, domain.RegisterRequest{Email: "ana@example.com", Password: "secret1"})
	if err := svc.ResetPassword(ctx, domain.ResetPasswordRequest{Token: reg.Token, Password: "newpass1"}); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("err = %v, want ErrTokenInvalid", err)
	}
}
