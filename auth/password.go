package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/bgpaten/ahyarpattani/errs"
)

const MinPasswordLength = 8

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return errs.NewInvalidFieldError("password", "must be at least 8 characters")
	}
	return nil
}
