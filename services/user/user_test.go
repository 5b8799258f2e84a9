package user

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	userRepo "autobook/database/repository/user"
	"autobook/models"
)

type memUserRepo struct {
	byEmail map[string]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{byEmail: make(map[string]*models.User)}
}

func (r *memUserRepo) Create(ctx context.Context, u models.User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return userRepo.ErrEmailTaken
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	r.byEmail[u.Email] = &u
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, userID string) (*models.User, error) {
	for _, u := range r.byEmail {
		if u.ID == userID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, userRepo.ErrNotFound
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := r.byEmail[email]
	if !ok {
		return nil, userRepo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) SetFCMToken(ctx context.Context, userID, token string) error {
	for _, u := range r.byEmail {
		if u.ID == userID {
			u.FCMToken = token
			return nil
		}
	}
	return userRepo.ErrNotFound
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := &DefaultUserService{Repo: newMemUserRepo()}

	req := models.RegisterRequest{Email: "c@example.com", Password: "hunter2hunter2", Role: models.RoleCustomer}
	created, token, err := svc.Register(ctx, req)
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if token == "" {
		t.Error("Register returned no token")
	}
	if created.PasswordHash == req.Password {
		t.Error("password stored in the clear")
	}

	t.Run("login with the right password", func(t *testing.T) {
		u, token, err := svc.Login(ctx, models.LoginRequest{Email: req.Email, Password: req.Password})
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if token == "" || u.ID != created.ID {
			t.Errorf("login returned token %q, user %q", token, u.ID)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, models.LoginRequest{Email: req.Email, Password: "wrong-password"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("unknown email gets the same error as a wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, models.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
		if !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("err = %v, want ErrInvalidCredentials", err)
		}
	})
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := &DefaultUserService{Repo: newMemUserRepo()}
	_, _, err := svc.Register(context.Background(), models.RegisterRequest{
		Email: "x@example.com", Password: "hunter2hunter2", Role: "admin",
	})
	if err == nil {
		t.Fatal("registered with an unknown role")
	}
}
