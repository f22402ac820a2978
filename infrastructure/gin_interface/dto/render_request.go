package dto

import "faceless-timeline/domain"

// RenderRequest carries an inline project. Exactly one of Time and Frame
// must be set; FPS defaults to the server's render rate.
type RenderRequest struct {
	Project domain.Project `json:"project"`
	Time    *float64       `json:"time"`
	Frame   *int           `json:"frame"`
	FPS     float64        `json:"fps"`
}

type TimelineRequest struct {
	Project domain.Project `json:"project"`
	FPS     float64        `json:"fps"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
