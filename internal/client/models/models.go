// Package models holds the API payloads as the client sees them.
package models

import "time"

// User is the redacted account view returned by the server.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Session is the outcome of a successful register or login.
type Session struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Fund is a watched fund.
type Fund struct {
	ID               string    `json:"id"`
	FundCode         string    `json:"fundCode"`
	FundName         string    `json:"fundName"`
	FundType         string    `json:"fundType"`
	Style            string    `json:"style"`
	FocusBoards      []string  `json:"focusBoards"`
	ScheduleEnabled  bool      `json:"scheduleEnabled"`
	ScheduleTime     string    `json:"scheduleTime"`
	ScheduleInterval string    `json:"scheduleInterval"`
	CreatedAt        time.Time `json:"createdAt"`
}

// NewFund is the payload for adding a fund.
type NewFund struct {
	FundCode string `json:"fundCode"`
	FundName string `json:"fundName"`
	FundType string `json:"fundType,omitempty"`
}

// Health is the server's /health report.
type Health struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Time     string `json:"time"`
}
