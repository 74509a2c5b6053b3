package services

import (
	"context"
	"errors"
	"net/mail"
	"plantastic/internal/models"
	"plantastic/internal/utils"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const minPasswordLength = 6

// AccountService manages users, their credentials and their favorite plants.
type AccountService struct {
	db     *gorm.DB
	tokens *TokenService
	plants *PlantCatalog
}

func NewAccountService(db *gorm.DB, tokens *TokenService, plants *PlantCatalog) *AccountService {
	return &AccountService{db: db, tokens: tokens, plants: plants}
}

type RegisterInput struct {
	Username string
	Email    string
	Phone    string
	Password string
}

// Session is what a successful login hands back to the client.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

type ProfileUpdate struct {
	Username *string
	Phone    *string
	Email    *string
	Avatar   *string
}

// normalizeEmail lower-cases the address so uniqueness is case-insensitive.
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", validationError("Invalid email address")
	}
	return email, nil
}

func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	phone := strings.TrimSpace(in.Phone)
	if username == "" || phone == "" || in.Email == "" || in.Password == "" {
		return nil, validationError("Username, email, phone and password are required")
	}
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if len(in.Password) < minPasswordLength {
		return nil, validationError("Password must be at least 6 characters")
	}

	tx := s.db.WithContext(ctx)
	var count int64
	if err := tx.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, internalError("register", err)
	}
	if count > 0 {
		return nil, validationError("User already exists")
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, internalError("register", err)
	}
	user := models.User{
		Username: username,
		Email:    email,
		Phone:    phone,
		Password: hash,
		Avatar:   utils.GetRandomEmoji(),
	}
	if err := insertUser(tx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// insertUser relies on the unique email index for registrations that race past the count check.
func insertUser(tx *gorm.DB, user *models.User) error {
	if err := tx.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return validationError("User already exists")
		}
		return internalError("register", err)
	}
	return nil
}

// Login checks the credentials and issues a bearer token.
func (s *AccountService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, validationError("Email and password are required")
	}

	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("User not found")
		}
		return nil, internalError("login", err)
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, newError(ErrUnauthenticated, "Invalid password")
	}

	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, internalError("login", err)
	}
	return &Session{Token: token, ExpiresAt: expiresAt, User: &user}, nil
}

// Profile returns the user with their favorites loaded.
func (s *AccountService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Preload("Favorites", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound("User not found")
		}
		return nil, internalError("profile", err)
	}
	return &user, nil
}

// UpdateProfile applies the non-nil fields. Past posts and comments keep their author snapshot.
func (s *AccountService) UpdateProfile(ctx context.Context, userID uint, upd ProfileUpdate) (*models.User, error) {
	tx := s.db.WithContext(ctx)
	user, err := findUser(tx, userID)
	if err != nil {
		return nil, err
	}

	if upd.Username != nil {
		v := strings.TrimSpace(*upd.Username)
		if v == "" {
			return nil, validationError("Username cannot be empty")
		}
		user.Username = v
	}
	if upd.Phone != nil {
		v := strings.TrimSpace(*upd.Phone)
		if v == "" {
			return nil, validationError("Phone cannot be empty")
		}
		user.Phone = v
	}
	if upd.Avatar != nil {
		user.Avatar = strings.TrimSpace(*upd.Avatar)
	}
	if upd.Email != nil {
		email, err := normalizeEmail(*upd.Email)
		if err != nil {
			return nil, err
		}
		if email != user.Email {
			var count int64
			if err := tx.Model(&models.User{}).Where("email = ? AND id <> ?", email, user.ID).Count(&count).Error; err != nil {
				return nil, internalError("update profile", err)
			}
			if count > 0 {
				return nil, validationError("Email is already in use")
			}
			user.Email = email
		}
	}

	if err := tx.Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, validationError("Email is already in use")
		}
		return nil, internalError("update profile", err)
	}
	return s.Profile(ctx, userID)
}

// Favorites returns the user's favorite plant names in the order they were added.
func (s *AccountService) Favorites(ctx context.Context, userID uint) ([]string, error) {
	names := []string{}
	err := s.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Pluck("plant_name", &names).Error
	if err != nil {
		return nil, internalError("favorites", err)
	}
	return names, nil
}

// AddFavorite adds a catalog plant to the user's favorites. Adding twice is a no-op.
func (s *AccountService) AddFavorite(ctx context.Context, userID uint, plantName string) ([]string, error) {
	plantName = strings.TrimSpace(plantName)
	if plantName == "" {
		return nil, validationError("Plant name is required")
	}
	plant, err := s.plants.ByName(plantName)
	if err != nil {
		return nil, err
	}

	tx := s.db.WithContext(ctx)
	if _, err := findUser(tx, userID); err != nil {
		return nil, err
	}
	fav := models.Favorite{UserID: userID, PlantName: plant.Name}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&fav).Error; err != nil {
		return nil, internalError("add favorite", err)
	}
	return s.Favorites(ctx, userID)
}

func (s *AccountService) RemoveFavorite(ctx context.Context, userID uint, plantName string) ([]string, error) {
	plantName = strings.TrimSpace(plantName)
	if plantName == "" {
		return nil, validationError("Plant name is required")
	}

	res := s.db.WithContext(ctx).
		Where("user_id = ? AND LOWER(plant_name) = ?", userID, strings.ToLower(plantName)).
		Delete(&models.Favorite{})
	if res.Error != nil {
		return nil, internalError("remove favorite", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, notFound("Plant is not in your favorites")
	}
	return s.Favorites(ctx, userID)
}
