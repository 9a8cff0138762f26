package models

import (
	"context"
	"time"

	"filmorate/proj/internal/domain/fields"
	"filmorate/proj/internal/domain/models"
	"filmorate/proj/internal/storage"
	"filmorate/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserModel struct {
	DB *pgxpool.Pool
}

const userBaseSelect = `
	SELECT
		u.id AS user_id,
		u.email AS user_email,
		u.login AS user_login,
		u.name AS user_name,
		u.birthday AS user_birthday,
		f.friend_id AS friend_id,
		f.status AS friend_status
	FROM users u
	LEFT JOIN friends f ON u.id = f.user_id`

func (m *UserModel) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.Name == "" {
		user.Name = user.Login
	}
	err := m.DB.QueryRow(
		ctx,
		"INSERT INTO users (email, login, name, birthday) VALUES ($1, $2, $3, $4) RETURNING id",
		user.Email, user.Login, user.Name, user.Birthday.Time,
	).Scan(&user.ID)
	if err != nil {
		return nil, postgres.MapError(err)
	}
	return m.Get(ctx, user.ID)
}

func (m *UserModel) Update(ctx context.Context, user *models.User) (*models.User, error) {
	status, err := m.DB.Exec(
		ctx,
		"UPDATE users SET email = $1, login = $2, name = $3, birthday = $4 WHERE id = $5",
		user.Email, user.Login, user.Name, user.Birthday.Time, user.ID,
	)
	if err != nil {
		return nil, postgres.MapError(err)
	}
	if status.RowsAffected() == 0 {
		return nil, storage.ErrNotFound
	}
	return m.Get(ctx, user.ID)
}

func (m *UserModel) Get(ctx context.Context, id int64) (*models.User, error) {
	rows, err := m.DB.Query(ctx, userBaseSelect+" WHERE u.id = $1", id)
	if err != nil {
		return nil, err
	}
	users, err := collectUsers(rows)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, storage.ErrNotFound
	}
	return &users[0], nil
}

func (m *UserModel) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	rows, err := m.DB.Query(ctx, userBaseSelect+" WHERE u.email = $1", email)
	if err != nil {
		return nil, err
	}
	users, err := collectUsers(rows)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, storage.ErrNotFound
	}
	return &users[0], nil
}

func (m *UserModel) List(ctx context.Context) ([]models.User, error) {
	rows, err := m.DB.Query(ctx, userBaseSelect)
	if err != nil {
		return nil, err
	}
	return collectUsers(rows)
}

func (m *UserModel) Delete(ctx context.Context, id int64) error {
	// both edge directions go before the user row
	if _, err := m.DB.Exec(ctx, "DELETE FROM friends WHERE user_id = $1 OR friend_id = $1", id); err != nil {
		return postgres.MapError(err)
	}
	if _, err := m.DB.Exec(ctx, "DELETE FROM film_likes WHERE user_id = $1", id); err != nil {
		return postgres.MapError(err)
	}
	status, err := m.DB.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return postgres.MapError(err)
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (m *UserModel) AddFriend(ctx context.Context, userID, friendID int64) error {
	// a repeated request leaves the existing edge untouched
	_, err := m.DB.Exec(
		ctx,
		`INSERT INTO friends (user_id, friend_id, status) VALUES ($1, $2, $3)
		ON CONFLICT (user_id, friend_id) DO NOTHING`,
		userID, friendID, models.FriendStatusRequested,
	)
	if err != nil {
		err = postgres.MapError(err)
		if err == storage.ErrReferenceNotFound {
			return storage.ErrNotFound
		}
		return err
	}
	return nil
}

func (m *UserModel) ConfirmFriend(ctx context.Context, userID, friendID int64) error {
	var edges int
	err := m.DB.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM friends
		WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1)`,
		userID, friendID,
	).Scan(&edges)
	if err != nil {
		return err
	}
	if edges < 2 {
		// confirmation needs a request from each side
		return storage.ErrNotFound
	}
	status, err := m.DB.Exec(
		ctx,
		`UPDATE friends SET status = $1
		WHERE (user_id = $2 AND friend_id = $3) OR (user_id = $3 AND friend_id = $2)`,
		models.FriendStatusConfirmed, userID, friendID,
	)
	if err != nil {
		return postgres.MapError(err)
	}
	if status.RowsAffected() == 0 {
		return storage.ErrInternal
	}
	return nil
}

func (m *UserModel) DeleteFriend(ctx context.Context, userID, friendID int64) error {
	has, err := m.HasRelationship(ctx, userID, friendID)
	if err != nil {
		return err
	}
	if !has {
		return nil
	}
	_, err = m.DB.Exec(
		ctx,
		"DELETE FROM friends WHERE user_id = $1 AND friend_id = $2",
		userID, friendID,
	)
	if err != nil {
		return postgres.MapError(err)
	}
	return nil
}

func (m *UserModel) HasRelationship(ctx context.Context, userID, friendID int64) (bool, error) {
	var exists bool
	err := m.DB.QueryRow(
		ctx,
		`SELECT EXISTS (
			SELECT 1 FROM friends
			WHERE (user_id = $1 AND friend_id = $2) OR (user_id = $2 AND friend_id = $1)
		)`,
		userID, friendID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (m *UserModel) ListFriends(ctx context.Context, userID int64) ([]models.FriendInfo, error) {
	rows, err := m.DB.Query(ctx, `
	SELECT
		u2.id AS friend_id,
		u2.email AS friend_email,
		u2.login AS friend_login,
		u2.name AS friend_name
	FROM users u1
	JOIN friends f ON u1.id = f.user_id
	JOIN users u2 ON f.friend_id = u2.id
	WHERE u1.id = $1
	ORDER BY u2.id ASC`, userID)
	if err != nil {
		return nil, err
	}
	return collectFriendInfos(rows)
}

func (m *UserModel) ListCommonFriends(ctx context.Context, userID, otherID int64) ([]models.FriendInfo, error) {
	rows, err := m.DB.Query(ctx, `
	SELECT
		u.id AS user_id,
		u.email AS user_email,
		u.login AS user_login,
		u.name AS user_name
	FROM users u
	INNER JOIN friends f1 ON u.id = f1.friend_id
	INNER JOIN friends f2 ON u.id = f2.friend_id
	WHERE f1.user_id = $1 AND f2.user_id = $2
	ORDER BY u.id ASC`, userID, otherID)
	if err != nil {
		return nil, err
	}
	return collectFriendInfos(rows)
}

// collectUsers folds flattened join rows (one per user x friend edge) into
// user entities with their outgoing edge maps.
func collectUsers(rows pgx.Rows) ([]models.User, error) {
	defer rows.Close()

	byID := make(map[int64]*models.User)
	var order []int64

	for rows.Next() {
		var (
			userID       int64
			email        string
			login        string
			name         *string
			birthday     time.Time
			friendID     *int64
			friendStatus *string
		)
		err := rows.Scan(&userID, &email, &login, &name, &birthday, &friendID, &friendStatus)
		if err != nil {
			return nil, err
		}

		user, ok := byID[userID]
		if !ok {
			user = &models.User{
				ID:       userID,
				Email:    email,
				Login:    login,
				Birthday: fields.DateOf(birthday),
				Friends:  make(map[int64]models.FriendStatus),
			}
			if name != nil {
				user.Name = *name
			}
			byID[userID] = user
			order = append(order, userID)
		}
		if friendID != nil {
			status := models.FriendStatusRequested
			if friendStatus != nil {
				status = models.FriendStatus(*friendStatus)
			}
			user.Friends[*friendID] = status
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(order))
	for _, id := range order {
		users = append(users, *byID[id])
	}
	return users, nil
}

func collectFriendInfos(rows pgx.Rows) ([]models.FriendInfo, error) {
	defer rows.Close()
	friends := make([]models.FriendInfo, 0)
	for rows.Next() {
		var info models.FriendInfo
		var name *string
		if err := rows.Scan(&info.ID, &info.Email, &info.Login, &name); err != nil {
			return nil, err
		}
		if name != nil {
			info.Name = *name
		}
		friends = append(friends, info)
	}
	return friends, rows.Err()
}
