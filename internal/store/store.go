// Package store persists analyzed lyrics through gorm, on SQLite for local
// runs and Postgres in deployment.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormLogger "gorm.io/gorm/logger"

	"github.com/yungbote/rimas-backend/internal/lyrics"
	"github.com/yungbote/rimas-backend/internal/platform/logger"
)

var ErrNotFound = errors.New("store: lyric not found")

// LyricRecord is one analyzed song. ArtistKey and TitleKey hold the
// lowercased identity the upsert conflicts on.
type LyricRecord struct {
	ID                uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Artist            string         `gorm:"column:artist;not null" json:"artist"`
	Title             string         `gorm:"column:title;not null" json:"title"`
	ArtistKey         string         `gorm:"column:artist_key;not null;uniqueIndex:idx_lyric_identity" json:"-"`
	TitleKey          string         `gorm:"column:title_key;not null;uniqueIndex:idx_lyric_identity" json:"-"`
	Text              string         `gorm:"column:text;not null" json:"text"`
	LineCount         int            `gorm:"column:line_count" json:"line_count"`
	WordCount         int            `gorm:"column:word_count" json:"word_count"`
	RhymesPerLine     float64        `gorm:"column:rhymes_per_line" json:"rhymes_per_line"`
	RhymeDensity      float64        `gorm:"column:rhyme_density" json:"rhyme_density"`
	VocabularyVariety float64        `gorm:"column:vocabulary_variety" json:"vocabulary_variety"`
	QualityScore      float64        `gorm:"column:quality_score;index" json:"quality_score"`
	Rhymes            datatypes.JSON `gorm:"column:rhymes" json:"rhymes"`
	EndWords          datatypes.JSON `gorm:"column:end_words" json:"end_words"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

func (LyricRecord) TableName() string { return "lyric_records" }

func (r *LyricRecord) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// NewRecord snapshots an analysis into a storable row.
func NewRecord(artist, title, text string, m lyrics.Metrics, endWords []string) (*LyricRecord, error) {
	rhymes, err := json.Marshal(m.Rhymes)
	if err != nil {
		return nil, fmt.Errorf("marshal rhymes: %w", err)
	}
	if endWords == nil {
		endWords = []string{}
	}
	words, err := json.Marshal(endWords)
	if err != nil {
		return nil, fmt.Errorf("marshal end words: %w", err)
	}
	return &LyricRecord{
		Artist:            strings.TrimSpace(artist),
		Title:             strings.TrimSpace(title),
		Text:              text,
		LineCount:         m.LineCount,
		WordCount:         m.WordCount,
		RhymesPerLine:     m.RhymesPerLine,
		RhymeDensity:      m.RhymeDensity,
		VocabularyVariety: m.VocabularyVariety,
		QualityScore:      m.QualityScore,
		Rhymes:            datatypes.JSON(rhymes),
		EndWords:          datatypes.JSON(words),
	}, nil
}

func identity(artist, title string) (string, string) {
	return strings.ToLower(strings.TrimSpace(artist)), strings.ToLower(strings.TrimSpace(title))
}

// Open connects to driver ("sqlite" or "postgres") and migrates the schema.
func Open(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		if dsn == "" {
			dsn = "file::memory:?cache=shared"
		}
		if !strings.HasPrefix(dsn, "file:") && dsn != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		dialector = sqlite.Open(dsn)
	case "postgres":
		if dsn == "" {
			return nil, errors.New("store: postgres requires a dsn")
		}
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("store: unknown driver %q", driver)
	}

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLog})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", driver, err)
	}
	if err := db.AutoMigrate(&LyricRecord{}); err != nil {
		return nil, fmt.Errorf("migrate lyric_records: %w", err)
	}
	return db, nil
}

type LyricRepo interface {
	Save(ctx context.Context, rec *LyricRecord) (*LyricRecord, error)
	Get(ctx context.Context, artist, title string) (*LyricRecord, error)
	List(ctx context.Context, limit int, minQuality float64) ([]LyricRecord, error)
	EndWordVocabulary(ctx context.Context, limit int) ([]string, error)
}

type lyricRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLyricRepo(db *gorm.DB, baseLog *logger.Logger) LyricRepo {
	return &lyricRepo{db: db, log: baseLog.With("repo", "LyricRepo")}
}

// Save inserts rec or, when the artist/title pair already exists, replaces
// its analysis. The stored row is returned.
func (r *lyricRepo) Save(ctx context.Context, rec *LyricRecord) (*LyricRecord, error) {
	if rec == nil {
		return nil, errors.New("store: nil record")
	}
	rec.ArtistKey, rec.TitleKey = identity(rec.Artist, rec.Title)
	if rec.ArtistKey == "" || rec.TitleKey == "" {
		return nil, errors.New("store: artist and title are required")
	}
	rec.UpdatedAt = time.Now().UTC()

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "artist_key"}, {Name: "title_key"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"artist", "title", "text", "line_count", "word_count",
				"rhymes_per_line", "rhyme_density", "vocabulary_variety",
				"quality_score", "rhymes", "end_words", "updated_at",
			}),
		}).
		Create(rec).Error
	if err != nil {
		return nil, fmt.Errorf("save lyric %q/%q: %w", rec.Artist, rec.Title, err)
	}
	return r.Get(ctx, rec.Artist, rec.Title)
}

func (r *lyricRepo) Get(ctx context.Context, artist, title string) (*LyricRecord, error) {
	ak, tk := identity(artist, title)
	var row LyricRecord
	err := r.db.WithContext(ctx).
		Where("artist_key = ? AND title_key = ?", ak, tk).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &row, nil
}

// List returns records at or above minQuality, best first.
func (r *lyricRepo) List(ctx context.Context, limit int, minQuality float64) ([]LyricRecord, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	var rows []LyricRecord
	err := r.db.WithContext(ctx).
		Where("quality_score >= ?", minQuality).
		Order("quality_score DESC").
		Order("created_at ASC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// EndWordVocabulary returns the distinct line-ending words across all stored
// lyrics, most frequent first. It feeds rhyme suggestions.
func (r *lyricRepo) EndWordVocabulary(ctx context.Context, limit int) ([]string, error) {
	var blobs []datatypes.JSON
	if err := r.db.WithContext(ctx).Model(&LyricRecord{}).Pluck("end_words", &blobs).Error; err != nil {
		return nil, err
	}

	freq := map[string]int{}
	for _, b := range blobs {
		var words []string
		if len(b) == 0 {
			continue
		}
		if err := json.Unmarshal(b, &words); err != nil {
			r.log.Warn("skipping malformed end_words", "error", err)
			continue
		}
		for _, w := range words {
			if w != "" {
				freq[w]++
			}
		}
	}

	out := make([]string, 0, len(freq))
	for w := range freq {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool {
		if freq[out[i]] != freq[out[j]] {
			return freq[out[i]] > freq[out[j]]
		}
		return out[i] < out[j]
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
