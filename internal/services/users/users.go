package users

import (
	"context"
	"errors"
	"log/slog"

	"filmorate/proj/internal/domain/models"
	"filmorate/proj/internal/storage"
)

type UsersStorage interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Get(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id int64) error
	AddFriend(ctx context.Context, userID, friendID int64) error
	ConfirmFriend(ctx context.Context, userID, friendID int64) error
	DeleteFriend(ctx context.Context, userID, friendID int64) error
	ListFriends(ctx context.Context, userID int64) ([]models.FriendInfo, error)
	ListCommonFriends(ctx context.Context, userID, otherID int64) ([]models.FriendInfo, error)
	HasRelationship(ctx context.Context, userID, friendID int64) (bool, error)
}

type UserService struct {
	log     *slog.Logger
	storage UsersStorage
}

func New(log *slog.Logger, storage UsersStorage) *UserService {
	return &UserService{
		log:     log,
		storage: storage,
	}
}

func (s *UserService) Create(ctx context.Context, user *models.User) (*models.User, error) {
	const op = "users.UserService.Create"
	log := s.log.With("op", op, "email", user.Email, "login", user.Login)
	created, err := s.storage.Create(ctx, user)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			log.Info("email already registered")
			return nil, ErrEmailAlreadyTaken
		}
		log.Error(err.Error())
		return nil, err
	}
	log.Info("user created", "id", created.ID)
	return created, nil
}

func (s *UserService) Update(ctx context.Context, user *models.User) (*models.User, error) {
	const op = "users.UserService.Update"
	log := s.log.With("op", op, "id", user.ID)
	updated, err := s.storage.Update(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			log.Info("user not found")
			return nil, ErrUserNotFound
		case errors.Is(err, storage.ErrAlreadyExists):
			log.Info("email already registered")
			return nil, ErrEmailAlreadyTaken
		}
		log.Error(err.Error())
		return nil, err
	}
	return updated, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	const op = "users.UserService.Get"
	log := s.log.With("op", op, "id", id)
	user, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			return nil, ErrUserNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "users.UserService.GetByEmail"
	log := s.log.With("op", op, "email", email)
	user, err := s.storage.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			return nil, ErrUserNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	const op = "users.UserService.List"
	users, err := s.storage.List(ctx)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, err
	}
	return users, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	const op = "users.UserService.Delete"
	log := s.log.With("op", op, "id", id)
	if err := s.storage.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			return ErrUserNotFound
		}
		log.Error(err.Error())
		return err
	}
	log.Info("user deleted")
	return nil
}

func (s *UserService) AddFriend(ctx context.Context, userID, friendID int64) error {
	const op = "users.UserService.AddFriend"
	log := s.log.With("op", op, "user_id", userID, "friend_id", friendID)
	if _, err := s.Get(ctx, userID); err != nil {
		return err
	}
	if _, err := s.Get(ctx, friendID); err != nil {
		return err
	}
	if err := s.storage.AddFriend(ctx, userID, friendID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrUserNotFound
		}
		log.Error(err.Error())
		return err
	}
	log.Info("friend request sent")
	return nil
}

func (s *UserService) ConfirmFriend(ctx context.Context, userID, friendID int64) error {
	const op = "users.UserService.ConfirmFriend"
	log := s.log.With("op", op, "user_id", userID, "friend_id", friendID)
	if err := s.storage.ConfirmFriend(ctx, userID, friendID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("no pending request in both directions")
			return ErrNoPendingRequest
		}
		log.Error(err.Error())
		return err
	}
	log.Info("friendship confirmed")
	return nil
}

func (s *UserService) DeleteFriend(ctx context.Context, userID, friendID int64) error {
	const op = "users.UserService.DeleteFriend"
	log := s.log.With("op", op, "user_id", userID, "friend_id", friendID)
	if _, err := s.Get(ctx, userID); err != nil {
		return err
	}
	if _, err := s.Get(ctx, friendID); err != nil {
		return err
	}
	// absence of an edge is not an error; the storage guards with the
	// symmetric relationship predicate before deleting
	if err := s.storage.DeleteFriend(ctx, userID, friendID); err != nil {
		log.Error(err.Error())
		return err
	}
	log.Info("friendship deleted")
	return nil
}

func (s *UserService) HasRelationship(ctx context.Context, userID, friendID int64) (bool, error) {
	const op = "users.UserService.HasRelationship"
	has, err := s.storage.HasRelationship(ctx, userID, friendID)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return false, err
	}
	return has, nil
}

func (s *UserService) GetFriends(ctx context.Context, userID int64) ([]models.FriendInfo, error) {
	const op = "users.UserService.GetFriends"
	log := s.log.With("op", op, "user_id", userID)
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}
	friends, err := s.storage.ListFriends(ctx, userID)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return friends, nil
}

func (s *UserService) GetCommonFriends(ctx context.Context, userID, otherID int64) ([]models.FriendInfo, error) {
	const op = "users.UserService.GetCommonFriends"
	log := s.log.With("op", op, "user_id", userID, "other_id", otherID)
	if _, err := s.Get(ctx, userID); err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, otherID); err != nil {
		return nil, err
	}
	common, err := s.storage.ListCommonFriends(ctx, userID, otherID)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return common, nil
}
