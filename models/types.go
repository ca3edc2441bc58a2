package models

import "time"

// Request types

// Either field names the candidate; vote_option_id is what older clients send.
type SubmitVoteRequest struct {
	VoteOptionID string `json:"vote_option_id"`
	Candidate    string `json:"candidate"`
}

type EventSyncRequest struct {
	EventID   string `json:"eventId"`
	RequestID string `json:"requestId"`
}

// Response types

type SubmitVoteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	VoteID  string `json:"voteId,omitempty"`
}

type EventSyncResponse struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	Status            string `json:"status"`
	ConfirmationCount int    `json:"confirmationCount"`
	Replayed          bool   `json:"replayed"`
}

type ResultsResponse struct {
	Success    bool             `json:"success"`
	TotalVotes int              `json:"totalVotes"`
	Results    []CandidateCount `json:"results"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Database  string    `json:"database"`
	Driver    string    `json:"driver"`
	Timestamp time.Time `json:"timestamp"`
	Uptime    string    `json:"uptime"`
	Message   string    `json:"message,omitempty"`
}

// TransientErrorResponse is returned with 503 and a Retry-After header.
type TransientErrorResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ErrorType string `json:"error_type"`
}

// Error response

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
