package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserService struct {
	repo *UserRepository
}

func NewUserService(repo *UserRepository) *UserService {
	return &UserService{repo: repo}
}

func validateEmail(email string) error {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return errors.New("invalid email address")
	}
	return nil
}

func (s *UserService) RegisterUser(ctx context.Context, req RegisterRequest) error {
	if err := validateEmail(req.Email); err != nil {
		return err
	}
	if len(req.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}

	existingUser, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return err
	}
	if existingUser != nil {
		return errors.New("email already registered")
	}

	hashPassword, err := HashPassword(req.Password)
	if err != nil {
		return err
	}

	user := &User{
		ID:                 primitive.NewObjectID(),
		Email:              req.Email,
		Name:               req.Name,
		PasswordHash:       hashPassword,
		Role:               "user",
		EmailNotifications: req.EmailNotifications,
	}
	return s.repo.CreateUser(ctx, user)
}

func (s *UserService) Login(ctx context.Context, cred Credential) (string, error) {
	user, err := s.repo.FindByEmail(ctx, cred.Email)
	if err != nil {
		return "", err
	}
	if user == nil || !CheckPasswordHash(cred.Password, user.PasswordHash) {
		return "", errors.New("invalid email or password")
	}
	return GenerateJWT(user.ID.Hex(), user.Email, user.Name, user.Role, 24*time.Hour)
}
