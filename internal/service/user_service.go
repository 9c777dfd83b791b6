package service

import (
	"Huntboard/internal/api/dto"
	"Huntboard/internal/model"
	"Huntboard/internal/pkg/consts"
	"Huntboard/internal/pkg/minio"
	"Huntboard/internal/pkg/redis"
	"Huntboard/internal/pkg/security"
	"Huntboard/internal/repository"
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type UserService interface {
	Register(ctx context.Context, regDTO *dto.RegisterDTO) error
	Login(ctx context.Context, credDTO *dto.CredentialDTO, ip, userAgent string) (*dto.LoginResultDTO, error)
	Logout(ctx context.Context, userID uint64, token string) error
	GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error)
	UpdateUserInfo(ctx context.Context, id uint64, userDTO *dto.UserDTO) error
	UpdatePassword(ctx context.Context, id uint64, pwdDTO *dto.ChangePasswordDTO) error
	UpdateAvatar(ctx context.Context, id uint64, objectName string) error
	GetRecentSessions(ctx context.Context, id uint64, limit int) ([]*dto.SessionDTO, error)

	UpdateTier(ctx context.Context, id uint64, tier string) error
	RemoveUser(ctx context.Context, id uint64) error
}

type UserServiceImpl struct {
	userRepo    repository.UserRepo
	sessionRepo repository.UserSessionRepo
}

func NewUserService(userRepo repository.UserRepo, sessionRepo repository.UserSessionRepo) UserService {
	return &UserServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, regDTO *dto.RegisterDTO) error {
	findUser, err := s.userRepo.GetUserByUsername(ctx, *regDTO.Username)
	if err != nil {
		return err
	}
	if findUser != nil {
		return ErrUserUsernameExist
	}

	findUser, err = s.userRepo.GetUserByEmail(ctx, *regDTO.Email)
	if err != nil {
		return err
	}
	if findUser != nil {
		return ErrUserEmailExist
	}

	user := &model.User{}
	if err := copier.Copy(user, regDTO); err != nil {
		return err
	}
	user.Tier = consts.TierFree

	passwordHash, err := security.HashPassword(*regDTO.Password)
	if err != nil {
		return err
	}
	user.Password = &passwordHash

	detail := &model.UserDetail{}
	if err := copier.Copy(detail, regDTO); err != nil {
		return err
	}
	if detail.Nickname == "" {
		detail.Nickname = *regDTO.Username
	}
	if detail.AvatarURL == "" {
		detail.AvatarURL = consts.DefaultAvatarURL
	}

	role := model.UserRole{RoleID: 1}
	roles := []*model.UserRole{&role}

	// 存在性检查到插入之间可能并发注册同名账号，靠唯一索引兜底
	if err := s.userRepo.CreateUser(ctx, user, detail, &roles); err != nil {
		if isDuplicateError(err) {
			return ErrUserUsernameExist
		}
		return err
	}
	return nil
}

func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return false
}

func (s *UserServiceImpl) Login(ctx context.Context, credDTO *dto.CredentialDTO, ip, userAgent string) (*dto.LoginResultDTO, error) {
	user, err := s.findUserByLoginCredentials(ctx, credDTO)
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsDelete {
		return nil, ErrUserNotFound
	}
	if user.IsBan {
		return nil, ErrUserBan
	}
	if credDTO.Password == nil || user.Password == nil {
		return nil, ErrPasswordIncorrect
	}
	if err = security.CheckPasswordHash(*credDTO.Password, *user.Password); err != nil {
		return nil, ErrPasswordIncorrect
	}

	roleNames := make([]string, 0, len(user.UserRoles))
	for _, ur := range user.UserRoles {
		roleNames = append(roleNames, ur.Role.Name)
	}

	token, err := security.GenerateToken(user.ID, roleNames, user.Tier)
	if err != nil {
		return nil, err
	}

	session := &model.UserSession{
		UserID:    user.ID,
		LoginAt:   time.Now(),
		IP:        ip,
		UserAgent: userAgent,
		Country:   user.UserDetail.Country,
		City:      user.UserDetail.City,
		IsActive:  true,
	}
	if err = s.sessionRepo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	userDTO, err := s.toUserDTO(user)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResultDTO{Token: token, User: userDTO}, nil
}

// Logout 拉黑 token 签名并关闭当前会话
func (s *UserServiceImpl) Logout(ctx context.Context, userID uint64, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return err
	}
	err = redis.SetWithExpiration(ctx, consts.TokenDenyKey+signature, true, security.JWTExpirationTime)
	if err != nil {
		return err
	}
	return s.sessionRepo.CloseLatestSession(ctx, userID)
}

func (s *UserServiceImpl) GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return s.toUserDTO(user)
}

func (s *UserServiceImpl) UpdateUserInfo(ctx context.Context, id uint64, userDTO *dto.UserDTO) error {
	newUUID, err := uuid.NewUUID()
	if err != nil {
		return err
	}
	lockKey := consts.UserProfileKey + "lock:" + strconv.FormatUint(id, 10)
	lock, err := redis.TryLock(ctx, lockKey, newUUID.String(), time.Second*5, 3)
	if err != nil {
		return err
	}
	if !lock {
		return UnExpectedError
	}
	defer redis.UnLock(ctx, lockKey, newUUID.String())

	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	err = copier.CopyWithOption(&user.UserDetail, userDTO, copier.Option{IgnoreEmpty: true})
	if err != nil {
		return err
	}
	return s.userRepo.UpdateUserDetail(ctx, &user.UserDetail)
}

func (s *UserServiceImpl) UpdatePassword(ctx context.Context, id uint64, pwdDTO *dto.ChangePasswordDTO) error {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if err = security.CheckPasswordHash(*pwdDTO.OldPassword, *user.Password); err != nil {
		return ErrPasswordIncorrect
	}
	passwordHash, err := security.HashPassword(*pwdDTO.NewPassword)
	if err != nil {
		return err
	}
	user.Password = &passwordHash
	return s.userRepo.UpdateUser(ctx, user)
}

func (s *UserServiceImpl) UpdateAvatar(ctx context.Context, id uint64, objectName string) error {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	user.UserDetail.AvatarURL = objectName
	return s.userRepo.UpdateUserDetail(ctx, &user.UserDetail)
}

func (s *UserServiceImpl) GetRecentSessions(ctx context.Context, id uint64, limit int) ([]*dto.SessionDTO, error) {
	if limit <= 0 || limit > 50 {
		limit = 10
	}
	sessions, err := s.sessionRepo.GetRecentSessions(ctx, id, limit)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.SessionDTO, 0, len(sessions))
	for _, session := range sessions {
		item := &dto.SessionDTO{}
		if err := copier.Copy(item, session); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	return result, nil
}

// UpdateTier 管理端调整订阅档位，下次登录签发的 token 才会携带新档位
func (s *UserServiceImpl) UpdateTier(ctx context.Context, id uint64, tier string) error {
	if tier != consts.TierFree && tier != consts.TierPro {
		return ErrParamInvalid
	}
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return err
	}
	if user == nil || user.IsDelete {
		return ErrUserNotFound
	}
	return s.userRepo.UpdateUserTier(ctx, id, tier)
}

// RemoveUser 软删除账号，历史报表数据保留
func (s *UserServiceImpl) RemoveUser(ctx context.Context, id uint64) error {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return err
	}
	if user == nil || user.IsDelete {
		return ErrUserNotFound
	}
	return s.userRepo.DeleteUser(ctx, id)
}

func (s *UserServiceImpl) findUserByLoginCredentials(ctx context.Context, credDTO *dto.CredentialDTO) (*model.User, error) {
	if credDTO.Username != nil && *credDTO.Username != "" {
		return s.userRepo.GetUserByUsername(ctx, *credDTO.Username)
	}
	if credDTO.Email != nil && *credDTO.Email != "" {
		return s.userRepo.GetUserByEmail(ctx, *credDTO.Email)
	}
	return nil, ErrMissingLoginCredentials
}

func (s *UserServiceImpl) toUserDTO(user *model.User) (*dto.UserDTO, error) {
	userDTO := &dto.UserDTO{}
	if err := copier.Copy(userDTO, user); err != nil {
		return nil, err
	}
	if err := copier.Copy(userDTO, &user.UserDetail); err != nil {
		return nil, err
	}
	userDTO.UserID = &user.ID
	url := minio.GetPublicURL(user.UserDetail.AvatarURL)
	userDTO.AvatarURL = &url
	return userDTO, nil
}
