package services_test

import (
	"fmt"
	"testing"
	"time"

	"dashboard/internal/models"
	"dashboard/internal/repositories"
	"dashboard/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

const testJWTSecret = "test_jwt_secret"

func notFoundErr(what string) error {
	return fmt.Errorf("%s: %w", what, repositories.ErrNotFound)
}

func TestAuthService_Register(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	// Successful registration with normalized identity fields
	mockRepo.On("GetByEmail", "test@example.com").Return(nil, notFoundErr("user")).Once()
	mockRepo.On("GetByUsername", "testuser").Return(nil, notFoundErr("user")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(nil).Once()

	user, err := authService.Register(" testuser ", " Test@Example.COM ", "password123")
	assert.NoError(t, err)
	assert.Equal(t, "testuser", user.Username)
	assert.Equal(t, "test@example.com", user.Email)
	// Stored password is a hash of the original, never the plaintext
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	mockRepo.AssertExpectations(t)

	// Email already registered
	mockRepo.On("GetByEmail", "test@example.com").Return(&models.User{ID: "1"}, nil).Once()
	_, err = authService.Register("testuser", "test@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrDuplicateUser)
	mockRepo.AssertExpectations(t)

	// Username already taken
	mockRepo.On("GetByEmail", "other@example.com").Return(nil, notFoundErr("user")).Once()
	mockRepo.On("GetByUsername", "testuser").Return(&models.User{ID: "1"}, nil).Once()
	_, err = authService.Register("testuser", "other@example.com", "password123")
	assert.ErrorIs(t, err, services.ErrDuplicateUser)
	mockRepo.AssertExpectations(t)

	// Store failure during create surfaces as a non-duplicate error
	mockRepo.On("GetByEmail", "test@example.com").Return(nil, notFoundErr("user")).Once()
	mockRepo.On("GetByUsername", "testuser").Return(nil, notFoundErr("user")).Once()
	mockRepo.On("Create", mock.AnythingOfType("*models.User")).Return(fmt.Errorf("database error")).Once()
	_, err = authService.Register("testuser", "test@example.com", "password123")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, services.ErrDuplicateUser)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_Login(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Email:    "test@example.com",
		Password: string(hashedPassword),
	}

	// Successful login
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	token, loggedIn, err := authService.Login("test@example.com", "password123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	// The token carries the user's identity and a one-hour expiry
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(testJWTSecret), nil
	})
	assert.NoError(t, err)
	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	assert.True(t, ok)
	assert.Equal(t, user.ID, claims["user_id"])
	assert.Equal(t, user.Username, claims["username"])
	iat := int64(claims["iat"].(float64))
	exp := int64(claims["exp"].(float64))
	assert.Equal(t, int64(time.Hour/time.Second), exp-iat)
	mockRepo.AssertExpectations(t)

	// Wrong password
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()
	_, _, errWrongPassword := authService.Login("test@example.com", "wrongpassword")
	assert.ErrorIs(t, errWrongPassword, services.ErrInvalidCredentials)

	// Unknown email
	mockRepo.On("GetByEmail", "nobody@example.com").Return(nil, notFoundErr("user")).Once()
	_, _, errUnknownEmail := authService.Login("nobody@example.com", "password123")
	assert.ErrorIs(t, errUnknownEmail, services.ErrInvalidCredentials)

	// Both failure modes produce the identical error, leaking nothing
	assert.Equal(t, errWrongPassword.Error(), errUnknownEmail.Error())
	mockRepo.AssertExpectations(t)

	// Store failure is not reported as bad credentials
	mockRepo.On("GetByEmail", user.Email).Return(nil, fmt.Errorf("database error")).Once()
	_, _, err = authService.Login("test@example.com", "password123")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, services.ErrInvalidCredentials)
	mockRepo.AssertExpectations(t)
}

func TestAuthService_ValidateToken(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	mintToken := func(exp time.Time) string {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"user_id":  "user-123",
			"username": "testuser",
			"exp":      exp.Unix(),
		})
		tokenString, _ := token.SignedString([]byte(testJWTSecret))
		return tokenString
	}

	// Valid token
	claims, err := authService.ValidateToken(mintToken(time.Now().Add(time.Hour)))
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims["user_id"])
	assert.Equal(t, "testuser", claims["username"])

	// Malformed token
	_, err = authService.ValidateToken("invalid.token.string")
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// Token signed with a different secret
	other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": "user-123"})
	forged, _ := other.SignedString([]byte("some_other_secret"))
	_, err = authService.ValidateToken(forged)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	// Expired token
	_, err = authService.ValidateToken(mintToken(time.Now().Add(-time.Hour)))
	assert.ErrorIs(t, err, services.ErrExpiredToken)
}

func TestAuthService_TokenLifetimeWindow(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
	user := &models.User{
		ID:       "user-123",
		Username: "testuser",
		Email:    "test@example.com",
		Password: string(hashedPassword),
	}
	mockRepo.On("GetByEmail", user.Email).Return(user, nil).Once()

	mintedAt := time.Now()
	token, _, err := authService.Login("test@example.com", "password123")
	assert.NoError(t, err)

	defer func() { jwt.TimeFunc = time.Now }()

	// 59 minutes after minting the token is still accepted
	jwt.TimeFunc = func() time.Time { return mintedAt.Add(59 * time.Minute) }
	claims, err := authService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "testuser", claims["username"])

	// 61 minutes after minting it is expired
	jwt.TimeFunc = func() time.Time { return mintedAt.Add(61 * time.Minute) }
	_, err = authService.ValidateToken(token)
	assert.ErrorIs(t, err, services.ErrExpiredToken)
}

func TestAuthService_CurrentUser(t *testing.T) {
	mockRepo := new(MockUserRepository)
	authService := services.NewAuthService(mockRepo, testJWTSecret)

	user := &models.User{ID: "user-123", Username: "testuser", Email: "test@example.com"}

	mockRepo.On("GetByID", "user-123").Return(user, nil).Once()
	got, err := authService.CurrentUser("user-123")
	assert.NoError(t, err)
	assert.Equal(t, user.Username, got.Username)

	mockRepo.On("GetByID", "gone").Return(nil, notFoundErr("user")).Once()
	_, err = authService.CurrentUser("gone")
	assert.ErrorIs(t, err, services.ErrInvalidToken)
	mockRepo.AssertExpectations(t)
}
