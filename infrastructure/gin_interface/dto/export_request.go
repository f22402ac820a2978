package dto

type CreateExportRequest struct {
	FPS float64 `json:"fps" binding:"omitempty,gt=0"`
}
