package services

import (
	"errors"
	"fmt"
	"net/mail"
	"time"

	"taskhub/backend/internal/apperrors"
	"taskhub/backend/internal/config"
	"taskhub/backend/internal/models"

	"github.com/gofrs/uuid"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegistrationRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type AuthService interface {
	RegisterUser(db *gorm.DB, req RegistrationRequest) (*models.User, error)
	LoginUser(db *gorm.DB, email, password string) (*models.User, error)
	GenerateToken(userID uuid.UUID) (string, error)
	ResolveToken(db *gorm.DB, tokenString string) (*models.User, error)
}

type AuthServiceImpl struct {
	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int
}

func NewAuthService(cfg config.AuthConfig) *AuthServiceImpl {
	return &AuthServiceImpl{
		secret:     []byte(cfg.JWTSecret),
		tokenTTL:   cfg.AccessTokenTTL,
		bcryptCost: cfg.BCryptCost,
	}
}

func (s *AuthServiceImpl) RegisterUser(db *gorm.DB, req RegistrationRequest) (*models.User, error) {
	if err := validateRegistration(&req); err != nil {
		return nil, err
	}

	var existing models.User
	if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		return nil, apperrors.ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := db.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		return nil, apperrors.ErrUsernameTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	user := models.User{
		ID:       uuid.Must(uuid.NewV4()),
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashed),
		Role:     role,
	}
	if err := db.Create(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

func (s *AuthServiceImpl) LoginUser(db *gorm.DB, email, password string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Same error as a wrong password, so a caller cannot tell
			// whether the email is registered.
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return &user, nil
}

func (s *AuthServiceImpl) GenerateToken(userID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"exp": time.Now().Add(s.tokenTTL).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ResolveToken verifies the signature and expiry, then loads the user
// fresh so the acting role reflects the database, not the token.
func (s *AuthServiceImpl) ResolveToken(db *gorm.DB, tokenString string) (*models.User, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, apperrors.ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.FromString(sub)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, err
	}
	return &user, nil
}

func validateRegistration(req *RegistrationRequest) error {
	if n := len(req.Username); n < 3 || n > 30 {
		return fmt.Errorf("%w: username must be 3-30 characters", apperrors.ErrValidation)
	}
	for _, char := range req.Username {
		if !((char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') ||
			(char >= '0' && char <= '9')) {
			return fmt.Errorf("%w: username must be alphanumeric", apperrors.ErrValidation)
		}
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return fmt.Errorf("%w: email must be a valid email address", apperrors.ErrValidation)
	}
	if len(req.Password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", apperrors.ErrValidation)
	}
	if req.Role != "" && req.Role != models.RoleUser && req.Role != models.RoleAdmin {
		return fmt.Errorf("%w: role must be user or admin", apperrors.ErrValidation)
	}
	return nil
}
