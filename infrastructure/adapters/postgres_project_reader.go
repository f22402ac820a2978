package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"faceless-timeline/application/ports/outbound"
	"faceless-timeline/domain"
	"fmt"
	"gorm.io/gorm"
	"time"
)

type pgProject struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"index"`
	Title     string
	Caption   []byte `gorm:"type:jsonb"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (pgProject) TableName() string {
	return "projects"
}

type pgSegment struct {
	ID          string `gorm:"primaryKey"`
	ProjectID   string `gorm:"not null;index"`
	Text        string `gorm:"type:text"`
	ImagePrompt string `gorm:"type:text"`
	ImageURL    string
	AudioURL    string
	Duration    *float64
	Order       int    `gorm:"column:order;not null"`
	WordTimings []byte `gorm:"type:jsonb"`
	Effect      string
	UpdatedAt   time.Time
}

func (pgSegment) TableName() string {
	return "segments"
}

type postgresProjectReader struct {
	logger outbound.LoggerPort
	db     *gorm.DB
}

func NewPostgresProjectReader(logger outbound.LoggerPort, db *gorm.DB) outbound.ProjectReaderPort {
	return &postgresProjectReader{
		logger: logger,
		db:     db,
	}
}

func (r *postgresProjectReader) Read(ctx context.Context, projectID string) (*domain.Project, error) {
	var project pgProject
	if err := r.db.WithContext(ctx).First(&project, "id = ?", projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProjectNotFound
		}
		r.logger.ErrorWithFields(err, "Failed to load project", map[string]interface{}{
			"project_id": projectID,
		})
		return nil, err
	}

	var segments []pgSegment
	if err := r.db.WithContext(ctx).Where("project_id = ?", projectID).Order(`"order" asc`).Find(&segments).Error; err != nil {
		r.logger.ErrorWithFields(err, "Failed to load project segments", map[string]interface{}{
			"project_id": projectID,
		})
		return nil, err
	}

	out := &domain.Project{
		ID:       project.ID,
		UserID:   project.UserID,
		Title:    project.Title,
		Segments: make([]domain.Segment, 0, len(segments)),
	}
	if len(project.Caption) > 0 {
		if err := json.Unmarshal(project.Caption, &out.Caption); err != nil {
			return nil, fmt.Errorf("decode caption config of project %s: %w", projectID, err)
		}
	}

	for _, s := range segments {
		segment, err := pgSegmentToDomain(s)
		if err != nil {
			r.logger.ErrorWithFields(err, "Failed to decode segment", map[string]interface{}{
				"project_id": projectID,
				"segment_id": s.ID,
			})
			return nil, err
		}
		out.Segments = append(out.Segments, segment)
	}

	return out, nil
}

func pgSegmentToDomain(s pgSegment) (domain.Segment, error) {
	segment := domain.Segment{
		ID:          s.ID,
		Version:     s.UpdatedAt.UnixNano(),
		Text:        s.Text,
		ImagePrompt: s.ImagePrompt,
		ImageURL:    s.ImageURL,
		AudioURL:    s.AudioURL,
		Order:       s.Order,
		Effect:      domain.ParseEffect(s.Effect),
	}
	if s.Duration != nil {
		segment.Duration = *s.Duration
	}
	if len(s.WordTimings) > 0 {
		if err := json.Unmarshal(s.WordTimings, &segment.WordTimingGroups); err != nil {
			return domain.Segment{}, fmt.Errorf("decode word timings of segment %s: %w", s.ID, err)
		}
	}
	return segment, nil
}
