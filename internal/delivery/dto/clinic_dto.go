package dto

import "time"

type UpdateWaitTimeRequest struct {
	Text string `json:"text" validate:"required,max=50"`
}

type WaitTimeResponse struct {
	Text      string    `json:"text"`
	UpdatedAt time.Time `json:"updated_at"`
}
