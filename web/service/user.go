package service

import (
	"strings"

	"melodix/database"
	"melodix/database/model"
	"melodix/logger"
	"melodix/util/apperr"
	"melodix/util/crypto"
	"melodix/util/token"
	"melodix/web/policy"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService manages account records and credential verification.
type UserService struct{}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new regular account. A duplicate email fails without
// creating a second record.
func (s *UserService) Register(email, password string) (*model.User, error) {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperr.Validation("a valid email is required")
	}
	if len(password) < 6 {
		return nil, apperr.Validation("password must be at least 6 characters")
	}

	db := database.GetDB()

	var count int64
	if err := db.Model(&model.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.ErrEmailTaken
	}

	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Id:       uuid.NewString(),
		Email:    email,
		Password: hash,
		Role:     model.RoleRegular,
	}
	if err := db.Create(user).Error; err != nil {
		// The unique index backstops the check above under concurrent registration.
		if isUniqueViolation(err) {
			return nil, apperr.ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and issues a bearer token. The failure is
// uniform so callers cannot probe which part was wrong.
func (s *UserService) Login(email, password string) (string, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Where("email = ?", normalizeEmail(email)).First(user).Error
	if database.IsNotFound(err) {
		return "", apperr.ErrInvalidCredentials
	} else if err != nil {
		return "", err
	}

	if !crypto.CheckPasswordHash(user.Password, password) {
		return "", apperr.ErrInvalidCredentials
	}

	logger.Debugf("user %s logged in", user.Id)
	return token.Issue(user.Id, user.Role)
}

func (s *UserService) GetAll() ([]model.User, error) {
	db := database.GetDB()

	var users []model.User
	if err := db.Order("created_at").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserService) Get(id string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Where("id = ?", id).First(user).Error
	if database.IsNotFound(err) {
		return nil, apperr.ErrUserNotFound
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

// Update overwrites the email and/or password of a user. Regular users may
// only update themselves; admins may update anyone.
func (s *UserService) Update(actor policy.Identity, id, email, password string) (*model.User, error) {
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := policy.Allow(actor, policy.UpdateUser, user); err != nil {
		return nil, err
	}

	db := database.GetDB()

	if email != "" {
		email = normalizeEmail(email)
		if !strings.Contains(email, "@") {
			return nil, apperr.Validation("a valid email is required")
		}
		var count int64
		if err := db.Model(&model.User{}).Where("email = ? AND id <> ?", email, id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, apperr.ErrEmailTaken
		}
		user.Email = email
	}
	if password != "" {
		if len(password) < 6 {
			return nil, apperr.Validation("password must be at least 6 characters")
		}
		hash, err := crypto.HashPasswordAsBcrypt(password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}

	if err := db.Save(user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// SetAdmin creates an admin account with the given credentials, or promotes
// the existing account and resets its password. Used by the CLI only.
func (s *UserService) SetAdmin(email, password string) error {
	email = normalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return apperr.Validation("a valid email is required")
	}
	if password == "" {
		return apperr.Validation("password can not be empty")
	}
	hash, err := crypto.HashPasswordAsBcrypt(password)
	if err != nil {
		return err
	}

	db := database.GetDB()

	user := &model.User{}
	err = db.Where("email = ?", email).First(user).Error
	if database.IsNotFound(err) {
		user = &model.User{
			Id:       uuid.NewString(),
			Email:    email,
			Password: hash,
			Role:     model.RoleAdmin,
		}
		return db.Create(user).Error
	} else if err != nil {
		return err
	}

	user.Password = hash
	user.Role = model.RoleAdmin
	return db.Save(user).Error
}

// Delete removes a user together with their likes, playlists and playlist
// membership rows in one transaction.
func (s *UserService) Delete(id string) error {
	user, err := s.Get(id)
	if err != nil {
		return err
	}

	db := database.GetDB()
	return db.Transaction(func(tx *gorm.DB) error {
		var owned []string
		if err := tx.Model(&model.Playlist{}).Where("owner_id = ?", user.Id).Pluck("id", &owned).Error; err != nil {
			return err
		}
		if len(owned) > 0 {
			if err := tx.Where("playlist_id IN ?", owned).Delete(&model.PlaylistSong{}).Error; err != nil {
				return err
			}
			if err := tx.Where("owner_id = ?", user.Id).Delete(&model.Playlist{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", user.Id).Delete(&model.LikedSong{}).Error; err != nil {
			return err
		}
		return tx.Delete(user).Error
	})
}
