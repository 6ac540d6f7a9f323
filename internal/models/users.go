package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"voicebank/pkg/errors"
)

const bcryptCost = 12

// User is a self-registered speaker. Profile fields feed the semantic
// recording id, so FullName changes affect only future submissions.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"size:255"`
	FullName     string    `json:"full_name" gorm:"size:255"`
	Phone        string    `json:"phone" gorm:"size:32"`
	State        string    `json:"state" gorm:"size:128"`
	MotherTongue string    `json:"mother_tongue" gorm:"size:128"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// AdminUser is a separately provisioned operator account. There is no
// self-service path to one; see cmd/createadmin.
type AdminUser struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:128;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"size:255"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

type RegisterUserForm struct {
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=6"`
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	State        string `json:"state"`
	MotherTongue string `json:"mother_tongue"`
}

type ProfileForm struct {
	FullName     string `json:"full_name"`
	Phone        string `json:"phone"`
	State        string `json:"state"`
	MotherTongue string `json:"mother_tongue"`
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// RegisterUser creates a user account, refusing duplicate emails.
func RegisterUser(db *gorm.DB, form RegisterUserForm) (*User, error) {
	var count int64
	if err := db.Model(&User{}).Where("email = ?", form.Email).Count(&count).Error; err != nil {
		return nil, errors.Internal(err, "failed to check existing user")
	}
	if count > 0 {
		return nil, errors.Conflict("User already exists")
	}

	hash, err := HashPassword(form.Password)
	if err != nil {
		return nil, errors.Internal(err, "failed to hash password")
	}

	user := &User{
		Email:        form.Email,
		PasswordHash: hash,
		FullName:     form.FullName,
		Phone:        form.Phone,
		State:        form.State,
		MotherTongue: form.MotherTongue,
	}
	if err := db.Create(user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, errors.Conflict("User already exists")
		}
		return nil, errors.Internal(err, "failed to create user")
	}
	return user, nil
}

// AuthenticateUser verifies an email/password pair. The same error
// covers unknown email and wrong password.
func AuthenticateUser(db *gorm.DB, email, password string) (*User, error) {
	var user User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, errors.Unauthorized("Invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, errors.Unauthorized("Invalid credentials")
	}
	return &user, nil
}

// AuthenticateAdmin is the same contract against the admin table.
func AuthenticateAdmin(db *gorm.DB, username, password string) (*AdminUser, error) {
	var admin AdminUser
	if err := db.Where("username = ?", username).First(&admin).Error; err != nil {
		return nil, errors.Unauthorized("Invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)) != nil {
		return nil, errors.Unauthorized("Invalid credentials")
	}
	return &admin, nil
}

func GetUser(db *gorm.DB, id uint) (*User, error) {
	var user User
	if err := db.First(&user, id).Error; err != nil {
		return nil, errors.NotFound("User not found")
	}
	return &user, nil
}

func UpdateProfile(db *gorm.DB, id uint, form ProfileForm) (*User, error) {
	user, err := GetUser(db, id)
	if err != nil {
		return nil, err
	}
	user.FullName = form.FullName
	user.Phone = form.Phone
	user.State = form.State
	user.MotherTongue = form.MotherTongue
	if err := db.Save(user).Error; err != nil {
		return nil, errors.Internal(err, "failed to update profile")
	}
	return user, nil
}

// UpsertAdmin creates the admin account or rotates its password.
func UpsertAdmin(db *gorm.DB, username, password string) (*AdminUser, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, errors.Internal(err, "failed to hash password")
	}

	var admin AdminUser
	err = db.Where("username = ?", username).First(&admin).Error
	switch {
	case err == nil:
		admin.PasswordHash = hash
		if err := db.Save(&admin).Error; err != nil {
			return nil, errors.Internal(err, "failed to update admin")
		}
		return &admin, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		admin = AdminUser{Username: username, PasswordHash: hash}
		if err := db.Create(&admin).Error; err != nil {
			return nil, errors.Internal(err, "failed to create admin")
		}
		return &admin, nil
	default:
		return nil, errors.Internal(err, "failed to look up admin")
	}
}
