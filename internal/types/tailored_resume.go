package types

import "time"

// TailoredResume is the final artifact of a tailoring request. It is never
// mutated; a later request for the same resume produces a new one.
type TailoredResume struct {
	ID                 string       `json:"id"`
	ResumeID           string       `json:"resume_id,omitempty"`
	JobDescriptionHash string       `json:"job_description_hash"`
	Text               string       `json:"text"`
	Report             *ScoreReport `json:"report"`
	PlanID             string       `json:"plan_id"`
	Plan               *RewritePlan `json:"plan,omitempty"`
	Attempts           int          `json:"attempts"`
	MetTarget          bool         `json:"met_target"`
	CreatedAt          time.Time    `json:"created_at"`
}

// Resume is a stored source resume
type Resume struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ContentHash string    `json:"content_hash"`
	CreatedAt   time.Time `json:"created_at"`
}
