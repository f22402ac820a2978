package adapters

import (
	"context"
	"faceless-timeline/application/ports/outbound"
	"faceless-timeline/config"
	"faceless-timeline/domain"
	"fmt"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/dynamodb/dynamodbattribute"
)

// projectHeaderSortKey marks the item holding project-level fields; every
// other item under a project_id is a segment.
const projectHeaderSortKey = "#project"

type dynamoWordItem struct {
	Text  string  `dynamodbav:"text"`
	Start float64 `dynamodbav:"start"`
	End   float64 `dynamodbav:"end"`
}

type dynamoTimingGroupItem struct {
	Text  string           `dynamodbav:"text"`
	Start float64          `dynamodbav:"start"`
	End   float64          `dynamodbav:"end"`
	Words []dynamoWordItem `dynamodbav:"words,omitempty"`
}

type dynamoCaptionItem struct {
	FontSize          int    `dynamodbav:"font_size,omitempty"`
	FontFamily        string `dynamodbav:"font_family,omitempty"`
	ActiveWordColor   string `dynamodbav:"active_word_color,omitempty"`
	InactiveWordColor string `dynamodbav:"inactive_word_color,omitempty"`
	BackgroundColor   string `dynamodbav:"background_color,omitempty"`
	FontWeight        string `dynamodbav:"font_weight,omitempty"`
	TextTransform     string `dynamodbav:"text_transform,omitempty"`
	WordsPerBatch     int    `dynamodbav:"words_per_batch,omitempty"`
	FromBottom        int    `dynamodbav:"from_bottom,omitempty"`
}

type dynamoProjectItem struct {
	ProjectID   string                  `dynamodbav:"project_id"`
	SegmentID   string                  `dynamodbav:"segment_id"`
	UserID      string                  `dynamodbav:"user_id,omitempty"`
	Title       string                  `dynamodbav:"title,omitempty"`
	Caption     *dynamoCaptionItem      `dynamodbav:"caption,omitempty"`
	Text        string                  `dynamodbav:"text"`
	ImagePrompt string                  `dynamodbav:"image_prompt"`
	ImageURL    string                  `dynamodbav:"image_url"`
	AudioURL    string                  `dynamodbav:"audio_url"`
	Duration    float64                 `dynamodbav:"duration"`
	Order       int                     `dynamodbav:"segment_order"`
	Version     int64                   `dynamodbav:"version"`
	Effect      string                  `dynamodbav:"effect"`
	WordTimings []dynamoTimingGroupItem `dynamodbav:"word_timings"`
}

type dynamoProjectReader struct {
	logger       outbound.LoggerPort
	dynamoSvc    *dynamodb.DynamoDB
	dynamoConfig *config.DynamoConfig
}

func NewDynamoProjectReader(logger outbound.LoggerPort, dynamoSvc *dynamodb.DynamoDB, dynamoConfig *config.DynamoConfig) outbound.ProjectReaderPort {
	return &dynamoProjectReader{
		logger:       logger,
		dynamoSvc:    dynamoSvc,
		dynamoConfig: dynamoConfig,
	}
}

func (r *dynamoProjectReader) Read(ctx context.Context, projectID string) (*domain.Project, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(r.dynamoConfig.TableName),
		KeyConditionExpression: aws.String("project_id = :pid"),
		ExpressionAttributeValues: map[string]*dynamodb.AttributeValue{
			":pid": {S: aws.String(projectID)},
		},
		ConsistentRead: aws.Bool(r.dynamoConfig.ConsistentRead),
	}

	items := make([]dynamoProjectItem, 0)
	var unmarshalErr error
	err := r.dynamoSvc.QueryPagesWithContext(ctx, input, func(page *dynamodb.QueryOutput, lastPage bool) bool {
		pageItems, err := unmarshalProjectItems(page.Items)
		if err != nil {
			unmarshalErr = err
			return false
		}
		items = append(items, pageItems...)
		return true
	})
	if err != nil {
		r.logger.ErrorWithFields(err, "Failed to query project items", map[string]interface{}{
			"project_id": projectID,
			"table":      r.dynamoConfig.TableName,
		})
		return nil, err
	}
	if unmarshalErr != nil {
		r.logger.ErrorWithFields(unmarshalErr, "Failed to unmarshal project items", map[string]interface{}{
			"project_id": projectID,
		})
		return nil, fmt.Errorf("unmarshal project %s: %w", projectID, unmarshalErr)
	}
	if len(items) == 0 {
		return nil, domain.ErrProjectNotFound
	}

	return itemsToProject(projectID, items), nil
}

func unmarshalProjectItems(raw []map[string]*dynamodb.AttributeValue) ([]dynamoProjectItem, error) {
	var items []dynamoProjectItem
	if err := dynamodbattribute.UnmarshalListOfMaps(raw, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func itemsToProject(projectID string, items []dynamoProjectItem) *domain.Project {
	project := &domain.Project{ID: projectID, Segments: make([]domain.Segment, 0, len(items))}
	for _, item := range items {
		if item.SegmentID == projectHeaderSortKey {
			project.UserID = item.UserID
			project.Title = item.Title
			if item.Caption != nil {
				project.Caption = dynamoCaptionToDomain(*item.Caption)
			}
			continue
		}
		project.Segments = append(project.Segments, domain.Segment{
			ID:               item.SegmentID,
			Version:          item.Version,
			Text:             item.Text,
			ImagePrompt:      item.ImagePrompt,
			ImageURL:         item.ImageURL,
			AudioURL:         item.AudioURL,
			Duration:         item.Duration,
			Order:            item.Order,
			Effect:           domain.ParseEffect(item.Effect),
			WordTimingGroups: dynamoTimingsToDomain(item.WordTimings),
		})
	}
	return project
}

func dynamoCaptionToDomain(c dynamoCaptionItem) domain.CaptionConfig {
	return domain.CaptionConfig{
		FontSize:          c.FontSize,
		FontFamily:        c.FontFamily,
		ActiveWordColor:   c.ActiveWordColor,
		InactiveWordColor: c.InactiveWordColor,
		BackgroundColor:   c.BackgroundColor,
		FontWeight:        c.FontWeight,
		TextTransform:     c.TextTransform,
		WordsPerBatch:     c.WordsPerBatch,
		FromBottom:        c.FromBottom,
	}
}

func dynamoTimingsToDomain(groups []dynamoTimingGroupItem) []domain.TimingGroup {
	out := make([]domain.TimingGroup, len(groups))
	for i, g := range groups {
		out[i] = domain.TimingGroup{Text: g.Text, Start: g.Start, End: g.End}
		if len(g.Words) > 0 {
			out[i].Words = make([]domain.Word, len(g.Words))
			for j, w := range g.Words {
				out[i].Words[j] = domain.Word{Text: w.Text, Start: w.Start, End: w.End}
			}
		}
	}
	return out
}
