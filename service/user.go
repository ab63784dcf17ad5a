package service

import (
	"errors"
	"fmt"

	"hostelhub/model"
	"hostelhub/platform"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
}

type User struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
	Phone    string `json:"phone"`
	Role     model.Role
}

// Register creates an account. Only an admin caller may pick the role;
// everyone else gets a student account.
func (service *UserService) Register(user *User, caller *AccessDetails) error {

	role := model.RoleStudent
	if user.Role != "" {
		if caller == nil || caller.Role != model.RoleAdmin {
			return fmt.Errorf("%w: only admins can assign roles", ErrForbidden)
		}
		role = user.Role
	}

	// 唯一性检查
	if model.UserExists(user.Username, user.Email) {
		return fmt.Errorf("%w: user already exists", ErrConflict)
	}

	// 密码加密
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return errors.New("internal server error")
	}

	newUser := &model.User{
		Username: user.Username,
		Email:    user.Email,
		Password: string(hashedPassword),
		Nickname: user.Nickname,
		Phone:    user.Phone,
		Role:     role,
	}
	if err := model.CreateUser(newUser); err != nil {
		return errors.New("internal server error")
	}
	return nil
}

func (service *UserService) Login(username, password string) (string, error) {
	registeredUser, err := model.GetUserByUsername(username)
	if err != nil {
		return "", errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(registeredUser.Password), []byte(password)); err != nil {
		return "", errors.New("invalid credentials")
	}

	ts := &TokenService{}
	token, err := ts.CreateToken(registeredUser.ID, registeredUser.Username, registeredUser.Role)
	if err != nil {
		logger.Warnf("Error generating token for %s: %v", username, err)
		return "", errors.New("failed to generate token")
	}

	return token.AccessToken, nil
}

func (service *UserService) ListByRole(role model.Role) ([]model.User, error) {
	var users []model.User
	if err := platform.DB.Where("role = ?", role).Order("username ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// AssignRoom places a student into a room, bumping the room's occupancy.
func (service *UserService) AssignRoom(userID, roomID uint) error {
	user, err := model.GetUserByID(userID)
	if err != nil {
		return fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}
	if user.Role != model.RoleStudent {
		return fmt.Errorf("%w: only students are assigned rooms", ErrValidation)
	}

	var room model.Room
	if err := platform.DB.First(&room, roomID).Error; err != nil {
		return fmt.Errorf("%w: room %d", ErrNotFound, roomID)
	}
	if user.RoomID != nil && *user.RoomID == roomID {
		return nil
	}
	if room.Occupied >= room.Capacity {
		return fmt.Errorf("%w: room %s is full", ErrConflict, room.Number)
	}
	if user.RoomID != nil {
		platform.DB.Model(&model.Room{}).Where("id = ? AND occupied > 0", *user.RoomID).
			UpdateColumn("occupied", gorm.Expr("occupied - 1"))
	}

	if err := platform.DB.Model(&model.User{}).Where("id = ?", userID).
		Update("room_id", roomID).Error; err != nil {
		return err
	}
	return platform.DB.Model(&model.Room{}).Where("id = ?", roomID).
		UpdateColumn("occupied", gorm.Expr("occupied + 1")).Error
}
