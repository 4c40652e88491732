package services

import (
	"errors"
	"time"

	"github.com/Arg10M10/nutrisnap-health-hub-sub001/config"
	"github.com/Arg10M10/nutrisnap-health-hub-sub001/models"
	"github.com/Arg10M10/nutrisnap-health-hub-sub001/utils"
)

// mfaCodeTTL matches the expiry promised in the code mail.
const mfaCodeTTL = 10 * time.Minute

func RegisterUser(email, password, fullName string) error {
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return err
	}

	user := models.User{
		Email:    email,
		Password: hashedPassword,
		FullName: fullName,
	}
	return config.DB.Create(&user).Error
}

// AuthenticateUser checks credentials and either returns a JWT directly or,
// for MFA-enabled accounts, mails a one-time code and reports mfaPending.
func AuthenticateUser(email, password string) (token string, mfaPending bool, err error) {
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return "", false, errors.New("invalid email or password")
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return "", false, errors.New("invalid email or password")
	}

	if user.MFAEnabled {
		code := utils.GenerateNumericCode(6)
		user.MFACode = code
		user.MFACodeSentAt = time.Now()
		if err := config.DB.Save(&user).Error; err != nil {
			return "", false, err
		}
		if err := utils.SendMFACode(user.Email, code); err != nil {
			return "", false, err
		}
		return "", true, nil
	}

	token, err = utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return "", false, err
	}
	return token, false, nil
}

// VerifyMFACode exchanges a mailed code for a JWT. Codes are single use and
// expire mfaCodeTTL after they were sent.
func VerifyMFACode(email, code string) (string, error) {
	var user models.User
	if err := config.DB.Where("email = ?", email).First(&user).Error; err != nil {
		return "", errors.New("user not found")
	}
	if !user.MFAEnabled || !mfaCodeValid(user.MFACode, code, user.MFACodeSentAt, time.Now()) {
		return "", errors.New("invalid or expired verification code")
	}

	user.MFACode = "" // single use
	if err := config.DB.Save(&user).Error; err != nil {
		return "", err
	}
	return utils.GenerateJWT(user.ID, user.Email)
}

func mfaCodeValid(stored, provided string, sentAt, now time.Time) bool {
	if stored == "" || provided == "" || stored != provided {
		return false
	}
	if sentAt.IsZero() {
		return false
	}
	return now.Sub(sentAt) <= mfaCodeTTL
}
