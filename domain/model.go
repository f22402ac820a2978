package domain

type Effect string

const (
	EffectNone           Effect = "none"
	EffectBlur           Effect = "blur"
	EffectPanZoom        Effect = "panZoom"
	EffectSlideRight     Effect = "slideRight"
	EffectBounceAndFlash Effect = "bounceAndFlash"
)

// DefaultSegmentDuration is the floor substituted by the project layer for
// segments stored without a usable duration. The core never applies it.
const DefaultSegmentDuration = 5.0

type Word struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// TimingGroup is a phrase-level timing entry. Words may be empty, in which
// case the group is treated as a single word.
type TimingGroup struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Words []Word  `json:"words,omitempty"`
}

type Segment struct {
	ID               string        `json:"id"`
	Version          int64         `json:"version"`
	Text             string        `json:"text"`
	ImagePrompt      string        `json:"imagePrompt"`
	ImageURL         string        `json:"imageUrl,omitempty"`
	AudioURL         string        `json:"audioUrl,omitempty"`
	Duration         float64       `json:"duration"`
	Order            int           `json:"order"`
	WordTimingGroups []TimingGroup `json:"wordTimings"`
	Effect           Effect        `json:"effect"`
}

// CaptionConfig is the caption layer record. Only WordsPerBatch is read by
// the timeline core; everything else is passed through to the presentation layer.
type CaptionConfig struct {
	FontSize          int    `json:"fontSize,omitempty" yaml:"font_size"`
	FontFamily        string `json:"fontFamily,omitempty" yaml:"font_family"`
	ActiveWordColor   string `json:"activeWordColor,omitempty" yaml:"active_word_color"`
	InactiveWordColor string `json:"inactiveWordColor,omitempty" yaml:"inactive_word_color"`
	BackgroundColor   string `json:"backgroundColor,omitempty" yaml:"background_color"`
	FontWeight        string `json:"fontWeight,omitempty" yaml:"font_weight"`
	TextTransform     string `json:"textTransform,omitempty" yaml:"text_transform"`
	WordsPerBatch     int    `json:"wordsPerBatch,omitempty" yaml:"words_per_batch"`
	FromBottom        int    `json:"fromBottom,omitempty" yaml:"from_bottom"`
}

type Project struct {
	ID       string        `json:"id"`
	UserID   string        `json:"userId,omitempty"`
	Title    string        `json:"title,omitempty"`
	Segments []Segment     `json:"segments"`
	Caption  CaptionConfig `json:"caption"`
}

type ExportStatus string

const (
	ExportQueued  ExportStatus = "queued"
	ExportRunning ExportStatus = "running"
	ExportDone    ExportStatus = "done"
	ExportFailed  ExportStatus = "failed"
)

type ExportJob struct {
	ExportID  string  `json:"export_id"`
	ProjectID string  `json:"project_id"`
	UserID    string  `json:"user_id"`
	FPS       float64 `json:"fps"`
}

type ExportState struct {
	ExportID    string       `json:"export_id"`
	ProjectID   string       `json:"project_id"`
	Status      ExportStatus `json:"status"`
	ManifestKey string       `json:"manifest_key,omitempty"`
	Region      string       `json:"region,omitempty"`
	TotalFrames int          `json:"total_frames,omitempty"`
	Error       string       `json:"error,omitempty"`
}
