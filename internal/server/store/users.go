package store

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/balkashynov/onboard/internal/models"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrEmailTaken   = errors.New("email already registered")
	ErrInvalidLogin = errors.New("invalid email or password")
)

// CreateUser registers an account with a bcrypt-hashed password.
func (s *Store) CreateUser(name, email, password, role, department string) (User, error) {
	var existing User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return User{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	if role == "" {
		role = models.RoleEmployee
	}
	user := User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Department:   department,
		JoinedDate:   time.Now(),
		Avatar:       models.Initials(name),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return User{}, err
	}
	return user, nil
}

// Authenticate verifies credentials. The same error covers unknown
// email and wrong password.
func (s *Store) Authenticate(email, password string) (User, error) {
	var user User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return User{}, ErrInvalidLogin
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return User{}, ErrInvalidLogin
	}
	return user, nil
}

func (s *Store) UserByID(id uint) (User, error) {
	var user User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

// Employees returns the onboarding population: employees and interns,
// not the HR/admin actors.
func (s *Store) Employees() ([]User, error) {
	var users []User
	err := s.db.
		Where("role IN ?", []string{models.RoleEmployee, models.RoleIntern}).
		Order("name").
		Find(&users).Error
	return users, err
}

// RecordActivity appends one audit-trail row. Failures are returned
// but callers treat them as non-fatal.
func (s *Store) RecordActivity(userID uint, action, detail string) error {
	return s.db.Create(&Activity{UserID: userID, Action: action, Detail: detail}).Error
}

func (s *Store) ActivityForUser(userID uint) ([]Activity, error) {
	var entries []Activity
	err := s.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(50).
		Find(&entries).Error
	return entries, err
}
