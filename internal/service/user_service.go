package service

import (
	"errors"
	"fmt"

	"github.com/assessly-hq/assessly/internal/dto"
	"github.com/assessly-hq/assessly/internal/model"
	"github.com/assessly-hq/assessly/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService interface {
	CreateUser(req dto.UserCreateDTO) (*dto.UserResponseDTO, error)
	UpdateUser(id uint, req dto.UserUpdateDTO) (*dto.UserResponseDTO, error)
	// DeleteUser refuses to remove the caller's own account.
	DeleteUser(callerID, id uint) error
	GetUser(id uint) (*dto.UserResponseDTO, error)
	ListUsers() ([]dto.UserResponseDTO, error)
}

type userService struct {
	userRepo repository.UserRepository
	db       *gorm.DB
}

func NewUserService(userRepo repository.UserRepository, db *gorm.DB) UserService {
	return &userService{userRepo: userRepo, db: db}
}

func (s *userService) CreateUser(req dto.UserCreateDTO) (*dto.UserResponseDTO, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hash),
		Role:     req.Role,
	}
	if err := s.userRepo.Create(&user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		log.Error().Err(err).Str("email", req.Email).Msg("CreateUser failed")
		return nil, err
	}

	resp := toUserDTO(&user)
	return &resp, nil
}

func (s *userService) UpdateUser(id uint, req dto.UserUpdateDTO) (*dto.UserResponseDTO, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	user.Name = req.Name
	user.Email = req.Email
	user.Role = req.Role
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		user.Password = string(hash)
	}

	if err := s.userRepo.Update(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		log.Error().Err(err).Uint("user_id", id).Msg("UpdateUser failed")
		return nil, err
	}

	resp := toUserDTO(user)
	return &resp, nil
}

// DeleteUser removes the account. Evaluations the user produced survive with
// a nulled evaluator reference.
func (s *userService) DeleteUser(callerID, id uint) error {
	if callerID == id {
		return ErrSelfDelete
	}
	if _, err := s.userRepo.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.ResponseEvaluation{}).
			Where("evaluator_id = ?", id).
			Update("evaluator_id", nil).Error; err != nil {
			return fmt.Errorf("detaching evaluations: %w", err)
		}
		if err := tx.Delete(&model.User{}, id).Error; err != nil {
			return fmt.Errorf("deleting user: %w", err)
		}
		return nil
	})
}

func (s *userService) GetUser(id uint) (*dto.UserResponseDTO, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	resp := toUserDTO(user)
	return &resp, nil
}

func (s *userService) ListUsers() ([]dto.UserResponseDTO, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponseDTO, len(users))
	for i := range users {
		out[i] = toUserDTO(&users[i])
	}
	return out, nil
}

func toUserDTO(user *model.User) dto.UserResponseDTO {
	var resp dto.UserResponseDTO
	copier.Copy(&resp, user)
	return resp
}
