package memory

import (
	"context"
	"slices"
	"sync"

	"filmorate/proj/internal/domain/models"
	"filmorate/proj/internal/storage"
)

type userRecord struct {
	user  models.User
	edges map[int64]models.FriendStatus
	order []int64 // friend ids in insertion order, keeps listings stable
}

// Users is the in-memory user storage variant, including the friendship
// edge set. Each edge is directed; a mutual friendship is two edges.
type Users struct {
	mu        sync.RWMutex
	users     map[int64]*userRecord
	emailToID map[string]int64
	nextID    int64
}

func NewUsers() *Users {
	return &Users{
		users:     make(map[int64]*userRecord),
		emailToID: make(map[string]int64),
		nextID:    1,
	}
}

func (s *Users) Create(ctx context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.emailToID[user.Email]; ok {
		return nil, storage.ErrAlreadyExists
	}
	if user.Name == "" {
		user.Name = user.Login
	}
	user.ID = s.nextID
	s.nextID++
	s.users[user.ID] = &userRecord{
		user:  cloneUser(user),
		edges: make(map[int64]models.FriendStatus),
	}
	s.emailToID[user.Email] = user.ID
	return s.materialize(s.users[user.ID]), nil
}

func (s *Users) Update(ctx context.Context, user *models.User) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[user.ID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if user.Email != rec.user.Email {
		if _, taken := s.emailToID[user.Email]; taken {
			return nil, storage.ErrAlreadyExists
		}
		delete(s.emailToID, rec.user.Email)
		s.emailToID[user.Email] = user.ID
	}
	rec.user = cloneUser(user)
	return s.materialize(rec), nil
}

func (s *Users) Get(ctx context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return s.materialize(rec), nil
}

func (s *Users) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.emailToID[email]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return s.materialize(s.users[id]), nil
}

func (s *Users) List(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]models.User, 0, len(s.users))
	for _, rec := range s.users {
		users = append(users, *s.materialize(rec))
	}
	return users, nil
}

func (s *Users) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	// cascade: drop edges pointing at the deleted user as well
	for _, other := range s.users {
		if _, ok := other.edges[id]; ok {
			delete(other.edges, id)
			other.order = slices.DeleteFunc(other.order, func(fid int64) bool { return fid == id })
		}
	}
	delete(s.emailToID, rec.user.Email)
	delete(s.users, id)
	return nil
}

func (s *Users) AddFriend(ctx context.Context, userID, friendID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[userID]
	if !ok {
		return storage.ErrNotFound
	}
	if _, ok := s.users[friendID]; !ok {
		return storage.ErrNotFound
	}
	if _, ok := rec.edges[friendID]; ok {
		return nil
	}
	rec.edges[friendID] = models.FriendStatusRequested
	rec.order = append(rec.order, friendID)
	return nil
}

func (s *Users) ConfirmFriend(ctx context.Context, userID, friendID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	forward, ok := s.users[userID]
	if !ok {
		return storage.ErrNotFound
	}
	reverse, ok := s.users[friendID]
	if !ok {
		return storage.ErrNotFound
	}
	// confirmation requires a request from each side
	if _, ok := forward.edges[friendID]; !ok {
		return storage.ErrNotFound
	}
	if _, ok := reverse.edges[userID]; !ok {
		return storage.ErrNotFound
	}
	forward.edges[friendID] = models.FriendStatusConfirmed
	reverse.edges[userID] = models.FriendStatusConfirmed
	return nil
}

func (s *Users) DeleteFriend(ctx context.Context, userID, friendID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.hasRelationship(userID, friendID) {
		return nil
	}
	rec, ok := s.users[userID]
	if !ok {
		return nil
	}
	if _, ok := rec.edges[friendID]; ok {
		delete(rec.edges, friendID)
		rec.order = slices.DeleteFunc(rec.order, func(fid int64) bool { return fid == friendID })
	}
	return nil
}

func (s *Users) ListFriends(ctx context.Context, userID int64) ([]models.FriendInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[userID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	friends := make([]models.FriendInfo, 0, len(rec.order))
	for _, friendID := range rec.order {
		friend, ok := s.users[friendID]
		if !ok {
			continue
		}
		friends = append(friends, friendInfo(&friend.user))
	}
	return friends, nil
}

func (s *Users) ListCommonFriends(ctx context.Context, userID, otherID int64) ([]models.FriendInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.users[userID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	other, ok := s.users[otherID]
	if !ok {
		return nil, storage.ErrNotFound
	}
	common := make([]models.FriendInfo, 0)
	for _, friendID := range rec.order {
		if _, shared := other.edges[friendID]; !shared {
			continue
		}
		if friend, ok := s.users[friendID]; ok {
			common = append(common, friendInfo(&friend.user))
		}
	}
	return common, nil
}

func (s *Users) HasRelationship(ctx context.Context, userID, friendID int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasRelationship(userID, friendID), nil
}

func (s *Users) hasRelationship(userID, friendID int64) bool {
	if rec, ok := s.users[userID]; ok {
		if _, ok := rec.edges[friendID]; ok {
			return true
		}
	}
	if rec, ok := s.users[friendID]; ok {
		if _, ok := rec.edges[userID]; ok {
			return true
		}
	}
	return false
}

func (s *Users) materialize(rec *userRecord) *models.User {
	user := cloneUser(&rec.user)
	user.Friends = make(map[int64]models.FriendStatus, len(rec.edges))
	for friendID, status := range rec.edges {
		user.Friends[friendID] = status
	}
	return &user
}

func cloneUser(user *models.User) models.User {
	clone := *user
	clone.Friends = nil
	return clone
}

func friendInfo(user *models.User) models.FriendInfo {
	return models.FriendInfo{
		ID:    user.ID,
		Email: user.Email,
		Login: user.Login,
		Name:  user.Name,
	}
}
