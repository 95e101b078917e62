package service

import (
	"context"
	"testing"

	"leasebackend/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	users map[string]*model.User // keyed by email
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*model.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	for _, u := range r.users {
		if u.ID.String() == id {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func TestCreateUserAndLogin(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, CreateUserRequest{
		Username: "accountant",
		Email:    "accountant@lease.local",
		Password: "secret123",
		Role:     model.RoleStaff,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if user.Role != model.RoleStaff {
		t.Errorf("role = %s", user.Role)
	}

	token, err := svc.Login(ctx, LoginUserRequest{
		Email:    "accountant@lease.local",
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token.Token == "" {
		t.Error("empty token")
	}

	if _, err := svc.Login(ctx, LoginUserRequest{
		Email:    "accountant@lease.local",
		Password: "wrong",
	}); err == nil {
		t.Error("wrong password accepted")
	}
}

func TestCreateUserDuplicate(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	ctx := context.Background()

	req := CreateUserRequest{
		Username: "accountant",
		Email:    "accountant@lease.local",
		Password: "secret123",
		Role:     model.RoleStaff,
	}
	if _, err := svc.CreateUser(ctx, req); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateUser(ctx, req); err == nil {
		t.Error("duplicate user accepted")
	}
}
