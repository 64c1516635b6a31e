package main

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// movieRow is one parsed CSV line before it is split across the
// normalized tables.
type movieRow struct {
	Title           string
	OriginalTitle   string
	ReleaseDate     time.Time
	HasReleaseDate  bool
	RuntimeMinutes  int
	Overview        string
	Budget          int64
	Revenue         int64
	MPARating       string
	Collection      string
	PosterURL       string
	BackdropURL     string
	Genres          []string
	Studios         []string
	StudioLogos     []string
	StudioCountries []string
	Directors       []string
	Producers       []string
	Cast            []castEntry
}

type castEntry struct {
	Name       string
	Character  string
	ProfileURL string
	Order      int
}

// importer keeps per-run get-or-create caches so repeated names resolve
// without a round trip per row.
type importer struct {
	logger *zap.Logger

	collections map[string]int64
	genres      map[string]int64
	studios     map[string]int64
	directors   map[string]int64
	producers   map[string]int64
	actors      map[string]int64
}

func newImporter(logger *zap.Logger) *importer {
	return &importer{
		logger:      logger,
		collections: make(map[string]int64),
		genres:      make(map[string]int64),
		studios:     make(map[string]int64),
		directors:   make(map[string]int64),
		producers:   make(map[string]int64),
		actors:      make(map[string]int64),
	}
}

func main() {
	csvPath := "movies_last30years.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		logger.Fatal("Unable to connect to database", zap.Error(err))
	}
	defer pool.Close()

	logger.Info("Connected to database")

	imp := newImporter(logger)
	imported, err := imp.run(ctx, pool, csvPath)
	if err != nil {
		logger.Fatal("Import failed", zap.Error(err))
	}

	logger.Info("Import completed", zap.Int("movies", imported))
}

func (imp *importer) run(ctx context.Context, pool *pgxpool.Pool, csvPath string) (int, error) {
	file, err := os.Open(csvPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.Comma = '\t'
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read CSV header: %w", err)
	}
	headerMap := make(map[string]int, len(headers))
	for i, h := range headers {
		headerMap[h] = i
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	imported := 0
	rowNum := 0

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			imp.logger.Warn("Skipping unreadable row", zap.Int("row", rowNum+1), zap.Error(err))
			continue
		}
		rowNum++

		row, err := parseRow(record, headerMap)
		if err != nil {
			imp.logger.Warn("Skipping unparsable row",
				zap.Int("row", rowNum),
				zap.String("title", fieldValue(record, headerMap, "Title")),
				zap.Error(err),
			)
			continue
		}

		if err := imp.insertMovie(ctx, tx, row); err != nil {
			imp.logger.Warn("Skipping row after insert failure",
				zap.Int("row", rowNum),
				zap.String("title", row.Title),
				zap.Error(err),
			)
			continue
		}
		imported++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return imported, nil
}

func parseRow(record []string, headerMap map[string]int) (*movieRow, error) {
	row := &movieRow{
		Title:         fieldValue(record, headerMap, "Title"),
		OriginalTitle: fieldValue(record, headerMap, "Original Title"),
		Overview:      fieldValue(record, headerMap, "Overview"),
		MPARating:     fieldValue(record, headerMap, "MPA Rating"),
		Collection:    fieldValue(record, headerMap, "Collection"),
		PosterURL:     fieldValue(record, headerMap, "Poster URL"),
		BackdropURL:   fieldValue(record, headerMap, "Backdrop URL"),
	}
	if row.Title == "" {
		return nil, errors.New("missing title")
	}

	if v := fieldValue(record, headerMap, "Release Date"); v != "" {
		releaseDate, err := time.Parse("1/2/06", v)
		if err != nil {
			return nil, fmt.Errorf("failed to parse release date %q: %w", v, err)
		}
		row.ReleaseDate = releaseDate
		row.HasReleaseDate = true
	}
	if v := fieldValue(record, headerMap, "Runtime (min)"); v != "" {
		if runtime, err := strconv.Atoi(v); err == nil {
			row.RuntimeMinutes = runtime
		}
	}
	if v := fieldValue(record, headerMap, "Budget"); v != "" {
		if budget, err := strconv.ParseInt(v, 10, 64); err == nil {
			row.Budget = budget
		}
	}
	if v := fieldValue(record, headerMap, "Revenue"); v != "" {
		if revenue, err := strconv.ParseInt(v, 10, 64); err == nil {
			row.Revenue = revenue
		}
	}

	row.Genres = splitAndTrim(fieldValue(record, headerMap, "Genres"))
	row.Studios = splitAndTrim(fieldValue(record, headerMap, "Studios"))
	row.StudioLogos = splitAndTrim(fieldValue(record, headerMap, "Studio Logos"))
	row.StudioCountries = splitAndTrim(fieldValue(record, headerMap, "Studio Countries"))
	row.Directors = splitAndTrim(fieldValue(record, headerMap, "Directors"))
	row.Producers = splitAndTrim(fieldValue(record, headerMap, "Producers"))

	for i := 1; i <= 10; i++ {
		name := fieldValue(record, headerMap, fmt.Sprintf("Actor %d Name", i))
		if name == "" {
			continue
		}
		row.Cast = append(row.Cast, castEntry{
			Name:       name,
			Character:  fieldValue(record, headerMap, fmt.Sprintf("Actor %d Character", i)),
			ProfileURL: fieldValue(record, headerMap, fmt.Sprintf("Actor %d Profile", i)),
			Order:      i,
		})
	}

	return row, nil
}

func (imp *importer) insertMovie(ctx context.Context, tx pgx.Tx, row *movieRow) error {
	var collectionID *int64
	if row.Collection != "" {
		id, err := imp.getOrCreate(ctx, tx, imp.collections, `
            INSERT INTO collections (collection_name) VALUES ($1)
            ON CONFLICT (collection_name) DO UPDATE SET collection_name = EXCLUDED.collection_name
            RETURNING collection_id`, row.Collection)
		if err != nil {
			return fmt.Errorf("failed to get/create collection: %w", err)
		}
		collectionID = &id
	}

	var releaseDate *time.Time
	if row.HasReleaseDate {
		releaseDate = &row.ReleaseDate
	}

	var movieID int64
	err := tx.QueryRow(ctx, `
        INSERT INTO movies (title, original_title, release_date, runtime_minutes, overview,
            budget, revenue, mpa_rating, collection_id, poster_url, backdrop_url)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING movie_id`,
		row.Title, nullString(row.OriginalTitle), releaseDate, nullInt(row.RuntimeMinutes),
		nullString(row.Overview), nullInt64(row.Budget), nullInt64(row.Revenue),
		nullString(row.MPARating), collectionID, nullString(row.PosterURL), nullString(row.BackdropURL),
	).Scan(&movieID)
	if err != nil {
		return fmt.Errorf("failed to insert movie: %w", err)
	}

	for _, genre := range row.Genres {
		genreID, err := imp.getOrCreate(ctx, tx, imp.genres, `
            INSERT INTO genres (genre_name) VALUES ($1)
            ON CONFLICT (genre_name) DO UPDATE SET genre_name = EXCLUDED.genre_name
            RETURNING genre_id`, genre)
		if err != nil {
			return fmt.Errorf("failed to get/create genre: %w", err)
		}
		if err := linkMovie(ctx, tx, `INSERT INTO movie_genres (movie_id, genre_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, movieID, genreID); err != nil {
			return err
		}
	}

	for i, studio := range row.Studios {
		logoURL := ""
		if i < len(row.StudioLogos) {
			logoURL = row.StudioLogos[i]
		}
		country := ""
		if i < len(row.StudioCountries) {
			country = row.StudioCountries[i]
		}

		studioID, err := imp.getOrCreateStudio(ctx, tx, studio, logoURL, country)
		if err != nil {
			return fmt.Errorf("failed to get/create studio: %w", err)
		}
		if err := linkMovie(ctx, tx, `INSERT INTO movie_studios (movie_id, studio_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, movieID, studioID); err != nil {
			return err
		}
	}

	for _, director := range row.Directors {
		directorID, err := imp.getOrCreate(ctx, tx, imp.directors, `
            INSERT INTO directors (director_name) VALUES ($1)
            ON CONFLICT (director_name) DO UPDATE SET director_name = EXCLUDED.director_name
            RETURNING director_id`, director)
		if err != nil {
			return fmt.Errorf("failed to get/create director: %w", err)
		}
		if err := linkMovie(ctx, tx, `INSERT INTO movie_directors (movie_id, director_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, movieID, directorID); err != nil {
			return err
		}
	}

	for _, producer := range row.Producers {
		producerID, err := imp.getOrCreate(ctx, tx, imp.producers, `
            INSERT INTO producers (producer_name) VALUES ($1)
            ON CONFLICT (producer_name) DO UPDATE SET producer_name = EXCLUDED.producer_name
            RETURNING producer_id`, producer)
		if err != nil {
			return fmt.Errorf("failed to get/create producer: %w", err)
		}
		if err := linkMovie(ctx, tx, `INSERT INTO movie_producers (movie_id, producer_id) VALUES ($1, $2) ON CONFLICT DO NOTHING`, movieID, producerID); err != nil {
			return err
		}
	}

	for _, member := range row.Cast {
		actorID, err := imp.getOrCreateActor(ctx, tx, member.Name, member.ProfileURL)
		if err != nil {
			return fmt.Errorf("failed to get/create actor: %w", err)
		}
		_, err = tx.Exec(ctx, `
            INSERT INTO movie_actors (movie_id, actor_id, character_name, actor_order)
            VALUES ($1, $2, $3, $4)
            ON CONFLICT DO NOTHING`, movieID, actorID, nullString(member.Character), member.Order)
		if err != nil {
			return fmt.Errorf("failed to insert movie_actor: %w", err)
		}
	}

	return nil
}

func (imp *importer) getOrCreate(ctx context.Context, tx pgx.Tx, cache map[string]int64, query, name string) (int64, error) {
	if id, ok := cache[name]; ok {
		return id, nil
	}
	var id int64
	if err := tx.QueryRow(ctx, query, name).Scan(&id); err != nil {
		return 0, err
	}
	cache[name] = id
	return id, nil
}

func (imp *importer) getOrCreateStudio(ctx context.Context, tx pgx.Tx, name, logoURL, country string) (int64, error) {
	if id, ok := imp.studios[name]; ok {
		return id, nil
	}
	var id int64
	err := tx.QueryRow(ctx, `
        INSERT INTO studios (studio_name, logo_url, country) VALUES ($1, $2, $3)
        ON CONFLICT (studio_name) DO UPDATE SET logo_url = EXCLUDED.logo_url, country = EXCLUDED.country
        RETURNING studio_id`, name, nullString(logoURL), nullString(country)).Scan(&id)
	if err != nil {
		return 0, err
	}
	imp.studios[name] = id
	return id, nil
}

func (imp *importer) getOrCreateActor(ctx context.Context, tx pgx.Tx, name, profileURL string) (int64, error) {
	if id, ok := imp.actors[name]; ok {
		return id, nil
	}
	var id int64
	err := tx.QueryRow(ctx, `
        INSERT INTO actors (actor_name, profile_url) VALUES ($1, $2)
        ON CONFLICT (actor_name) DO UPDATE SET profile_url = EXCLUDED.profile_url
        RETURNING actor_id`, name, nullString(profileURL)).Scan(&id)
	if err != nil {
		return 0, err
	}
	imp.actors[name] = id
	return id, nil
}

func linkMovie(ctx context.Context, tx pgx.Tx, query string, movieID, relatedID int64) error {
	if _, err := tx.Exec(ctx, query, movieID, relatedID); err != nil {
		return fmt.Errorf("failed to link movie relation: %w", err)
	}
	return nil
}

func fieldValue(record []string, headerMap map[string]int, key string) string {
	if idx, ok := headerMap[key]; ok && idx < len(record) {
		return strings.TrimSpace(record[idx])
	}
	return ""
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ";")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func nullInt(v int) *int {
	if v == 0 {
		return nil
	}
	return &v
}

func nullInt64(v int64) *int64 {
	if v == 0 {
		return nil
	}
	return &v
}
