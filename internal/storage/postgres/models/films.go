package models

import (
	"context"
	"errors"
	"time"

	"filmorate/proj/internal/domain/fields"
	"filmorate/proj/internal/domain/models"
	"filmorate/proj/internal/storage"
	"filmorate/proj/internal/storage/postgres"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FilmModel struct {
	DB *pgxpool.Pool
}

const filmBaseSelect = `
	SELECT
		f.id AS film_id,
		f.name AS film_name,
		f.description AS film_description,
		f.release_date AS film_release_date,
		f.duration AS film_duration,
		m.id AS mpa_id,
		m.name AS mpa_name,
		g.id AS genre_id,
		g.name AS genre_name,
		fl.user_id AS like_user_id
	FROM films f
	JOIN mpa m ON f.mpa_id = m.id
	LEFT JOIN film_genres fg ON f.id = fg.film_id
	LEFT JOIN genres g ON fg.genre_id = g.id
	LEFT JOIN film_likes fl ON f.id = fl.film_id`

func (m *FilmModel) Create(ctx context.Context, film *models.Film) (*models.Film, error) {
	err := m.DB.QueryRow(
		ctx,
		`INSERT INTO films (name, description, release_date, duration, mpa_id)
		VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		film.Name, film.Description, film.ReleaseDate.Time, film.Duration, film.Mpa.ID,
	).Scan(&film.ID)
	if err != nil {
		return nil, postgres.MapError(err)
	}
	if err := m.insertGenres(ctx, film.ID, film.Genres); err != nil {
		return nil, err
	}
	return m.Get(ctx, film.ID)
}

func (m *FilmModel) Update(ctx context.Context, film *models.Film) (*models.Film, error) {
	status, err := m.DB.Exec(
		ctx,
		`UPDATE films SET name = $1, description = $2, release_date = $3, duration = $4, mpa_id = $5
		WHERE id = $6`,
		film.Name, film.Description, film.ReleaseDate.Time, film.Duration, film.Mpa.ID, film.ID,
	)
	if err != nil {
		return nil, postgres.MapError(err)
	}
	if status.RowsAffected() == 0 {
		return nil, storage.ErrNotFound
	}
	// the genre set is replaced wholesale; accumulated likes are untouched
	if _, err := m.DB.Exec(ctx, "DELETE FROM film_genres WHERE film_id = $1", film.ID); err != nil {
		return nil, postgres.MapError(err)
	}
	if err := m.insertGenres(ctx, film.ID, film.Genres); err != nil {
		return nil, err
	}
	return m.Get(ctx, film.ID)
}

func (m *FilmModel) Get(ctx context.Context, id int64) (*models.Film, error) {
	rows, err := m.DB.Query(ctx, filmBaseSelect+" WHERE f.id = $1", id)
	if err != nil {
		return nil, err
	}
	films, _, err := collectFilms(rows, false)
	if err != nil {
		return nil, err
	}
	if len(films) == 0 {
		return nil, storage.ErrNotFound
	}
	return &films[0], nil
}

func (m *FilmModel) List(ctx context.Context) ([]models.Film, error) {
	rows, err := m.DB.Query(ctx, filmBaseSelect)
	if err != nil {
		return nil, err
	}
	films, _, err := collectFilms(rows, false)
	return films, err
}

func (m *FilmModel) Delete(ctx context.Context, id int64) error {
	// association rows first, then the film row itself
	if _, err := m.DB.Exec(ctx, "DELETE FROM film_likes WHERE film_id = $1", id); err != nil {
		return postgres.MapError(err)
	}
	if _, err := m.DB.Exec(ctx, "DELETE FROM film_genres WHERE film_id = $1", id); err != nil {
		return postgres.MapError(err)
	}
	status, err := m.DB.Exec(ctx, "DELETE FROM films WHERE id = $1", id)
	if err != nil {
		return postgres.MapError(err)
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (m *FilmModel) AddLike(ctx context.Context, filmID, userID int64) error {
	// duplicate likes are ignored rather than rejected
	_, err := m.DB.Exec(
		ctx,
		"INSERT INTO film_likes (film_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		filmID, userID,
	)
	if err != nil {
		return postgres.MapError(err)
	}
	return nil
}

func (m *FilmModel) RemoveLike(ctx context.Context, filmID, userID int64) error {
	_, err := m.DB.Exec(
		ctx,
		"DELETE FROM film_likes WHERE film_id = $1 AND user_id = $2",
		filmID, userID,
	)
	if err != nil {
		return postgres.MapError(err)
	}
	return nil
}

func (m *FilmModel) ListPopular(ctx context.Context, count int) ([]models.PopularFilm, error) {
	rows, err := m.DB.Query(ctx, `
	SELECT
		f.id AS film_id,
		f.name AS film_name,
		f.description AS film_description,
		f.release_date AS film_release_date,
		f.duration AS film_duration,
		m.id AS mpa_id,
		m.name AS mpa_name,
		g.id AS genre_id,
		g.name AS genre_name,
		fl.user_id AS like_user_id,
		l.like_count
	FROM (
		SELECT f.id AS film_id, COUNT(fl.user_id) AS like_count
		FROM films f
		LEFT JOIN film_likes fl ON f.id = fl.film_id
		GROUP BY f.id
		ORDER BY like_count DESC, f.id ASC
		LIMIT $1
	) AS l
	JOIN films f ON l.film_id = f.id
	JOIN mpa m ON f.mpa_id = m.id
	LEFT JOIN film_genres fg ON f.id = fg.film_id
	LEFT JOIN genres g ON fg.genre_id = g.id
	LEFT JOIN film_likes fl ON f.id = fl.film_id
	ORDER BY l.like_count DESC, f.id ASC`, count)
	if err != nil {
		return nil, err
	}
	_, popular, err := collectFilms(rows, true)
	return popular, err
}

func (m *FilmModel) insertGenres(ctx context.Context, filmID int64, genres []models.Genre) error {
	if len(genres) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, genre := range genres {
		batch.Queue("INSERT INTO film_genres (film_id, genre_id) VALUES ($1, $2)", filmID, genre.ID)
	}
	if err := m.DB.SendBatch(ctx, batch).Close(); err != nil {
		return postgres.MapError(err)
	}
	return nil
}

// collectFilms folds flattened join rows (one per film x genre x like) into
// film entities, preserving the order films first appear in.
func collectFilms(rows pgx.Rows, withCount bool) ([]models.Film, []models.PopularFilm, error) {
	defer rows.Close()

	type accumulated struct {
		film   *models.Film
		count  int64
		genres map[int64]struct{}
		likes  map[int64]struct{}
	}
	byID := make(map[int64]*accumulated)
	var order []int64

	for rows.Next() {
		var (
			filmID      int64
			name        string
			description *string
			releaseDate time.Time
			duration    int32
			mpaID       int64
			mpaName     string
			genreID     *int64
			genreName   *string
			likeUserID  *int64
			likeCount   *int64
		)
		dest := []any{
			&filmID, &name, &description, &releaseDate, &duration,
			&mpaID, &mpaName, &genreID, &genreName, &likeUserID,
		}
		if withCount {
			dest = append(dest, &likeCount)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, nil, err
		}

		acc, ok := byID[filmID]
		if !ok {
			film := &models.Film{
				ID:          filmID,
				Name:        name,
				ReleaseDate: fields.DateOf(releaseDate),
				Duration:    duration,
				Mpa:         models.Mpa{ID: mpaID, Name: mpaName},
				Genres:      []models.Genre{},
				Likes:       []int64{},
			}
			if description != nil {
				film.Description = *description
			}
			acc = &accumulated{
				film:   film,
				genres: make(map[int64]struct{}),
				likes:  make(map[int64]struct{}),
			}
			byID[filmID] = acc
			order = append(order, filmID)
		}
		if genreID != nil {
			if _, dup := acc.genres[*genreID]; !dup {
				acc.genres[*genreID] = struct{}{}
				acc.film.Genres = append(acc.film.Genres, models.Genre{ID: *genreID, Name: *genreName})
			}
		}
		if likeUserID != nil {
			if _, dup := acc.likes[*likeUserID]; !dup {
				acc.likes[*likeUserID] = struct{}{}
				acc.film.Likes = append(acc.film.Likes, *likeUserID)
			}
		}
		if likeCount != nil {
			acc.count = *likeCount
		}
	}
	if err := rows.Err(); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, storage.ErrNotFound
		}
		return nil, nil, err
	}

	if withCount {
		popular := make([]models.PopularFilm, 0, len(order))
		for _, id := range order {
			acc := byID[id]
			popular = append(popular, models.PopularFilm{Film: *acc.film, LikesCount: acc.count})
		}
		return nil, popular, nil
	}
	films := make([]models.Film, 0, len(order))
	for _, id := range order {
		films = append(films, *byID[id].film)
	}
	return films, nil, nil
}
