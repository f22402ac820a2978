package services

import (
	"context"
	"faceless-timeline/application/ports/inbound"
	"faceless-timeline/application/ports/outbound"
	"faceless-timeline/domain"
)

type projectTimelineLoader struct {
	logger           outbound.LoggerPort
	projectReader    outbound.ProjectReaderPort
	durationResolver inbound.SegmentDurationResolverPort
	captionPreset    domain.CaptionConfig
}

// NewProjectTimelineLoader wires the project store to the duration policy.
// captionPreset fills caption fields a project leaves unset.
func NewProjectTimelineLoader(logger outbound.LoggerPort, projectReader outbound.ProjectReaderPort,
	durationResolver inbound.SegmentDurationResolverPort, captionPreset domain.CaptionConfig) inbound.ProjectTimelineLoaderPort {
	return &projectTimelineLoader{
		logger:           logger,
		projectReader:    projectReader,
		durationResolver: durationResolver,
		captionPreset:    captionPreset,
	}
}

func (l *projectTimelineLoader) Load(ctx context.Context, projectID string) (*domain.Project, error) {
	project, err := l.projectReader.Read(ctx, projectID)
	if err != nil {
		l.logger.ErrorWithFields(err, "failed to read project", map[string]interface{}{
			"project_id": projectID,
		})
		return nil, err
	}

	segments, err := l.durationResolver.Resolve(ctx, project.Segments)
	if err != nil {
		l.logger.ErrorWithFields(err, "failed to resolve segment durations", map[string]interface{}{
			"project_id": projectID,
		})
		return nil, err
	}
	project.Segments = segments

	return l.finish(*project), nil
}

// Prepare readies a caller-supplied project. Its audio URLs are never probed:
// missing durations get domain.DefaultSegmentDuration directly.
func (l *projectTimelineLoader) Prepare(_ context.Context, project domain.Project) (*domain.Project, error) {
	project.Segments = withDurationFloor(project.Segments)
	return l.finish(project), nil
}

func (l *projectTimelineLoader) finish(project domain.Project) *domain.Project {
	project.Caption = withCaptionDefaults(project.Caption, l.captionPreset)

	l.logger.DebugWithFields("project ready for rendering", map[string]interface{}{
		"project_id":      project.ID,
		"segments":        len(project.Segments),
		"words_per_batch": project.Caption.WordsPerBatch,
	})

	return &project
}

func withDurationFloor(segments []domain.Segment) []domain.Segment {
	out := make([]domain.Segment, len(segments))
	copy(out, segments)
	for i := range out {
		if !hasResolvedDuration(out[i].Duration) {
			out[i].Duration = domain.DefaultSegmentDuration
		}
	}
	return out
}

func withCaptionDefaults(c domain.CaptionConfig, preset domain.CaptionConfig) domain.CaptionConfig {
	if c.WordsPerBatch <= 0 {
		c.WordsPerBatch = preset.WordsPerBatch
	}
	if c.WordsPerBatch <= 0 {
		c.WordsPerBatch = domain.DefaultWordsPerBatch
	}
	if c.FontSize == 0 {
		c.FontSize = preset.FontSize
	}
	if c.FontFamily == "" {
		c.FontFamily = preset.FontFamily
	}
	if c.ActiveWordColor == "" {
		c.ActiveWordColor = preset.ActiveWordColor
	}
	if c.InactiveWordColor == "" {
		c.InactiveWordColor = preset.InactiveWordColor
	}
	if c.BackgroundColor == "" {
		c.BackgroundColor = preset.BackgroundColor
	}
	if c.FontWeight == "" {
		c.FontWeight = preset.FontWeight
	}
	if c.TextTransform == "" {
		c.TextTransform = preset.TextTransform
	}
	if c.FromBottom == 0 {
		c.FromBottom = preset.FromBottom
	}
	return c
}
