package models

import "time"

// ===== LIST PARAMS =====

type ListUsersParams struct {
	Role   UserRole `json:"role"`
	Limit  int      `json:"limit" validate:"omitempty,min=1,max=100"`
	Offset int      `json:"offset" validate:"omitempty,min=0"`
}

type VolunteerSearchParams struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Subject string `json:"subject"`
}

// ===== STATISTICS =====

type UserStatistics struct {
	Total              int64 `json:"total"`
	Students           int64 `json:"students"`
	Volunteers         int64 `json:"volunteers"`
	VerifiedVolunteers int64 `json:"verified_volunteers"`
}

type RequestStatistics struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Accepted  int64 `json:"accepted"`
	Completed int64 `json:"completed"`
	Rejected  int64 `json:"rejected"`
	Cancelled int64 `json:"cancelled"`
}

type PlatformStatistics struct {
	Users    UserStatistics    `json:"users"`
	Requests RequestStatistics `json:"requests"`
}

// ===== RESPONSE ENVELOPES =====

type ErrorResponse struct {
	Success       bool        `json:"success"`
	Message       string      `json:"message"`
	Details       interface{} `json:"details,omitempty"`
	UserRole      UserRole    `json:"user_role,omitempty"`
	RequiredRoles []UserRole  `json:"required_roles,omitempty"`
	Timestamp     time.Time   `json:"timestamp"`
}

type SuccessResponse struct {
	Success bool        `json:"success"`
	Count   *int        `json:"count,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}
