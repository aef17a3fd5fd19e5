package models

import "time"

// DefaultScheduleInterval is used when a fund is added without one.
const DefaultScheduleInterval = "24H"

// Fund is a fund on a user's watch list. The schedule fields are stored for
// the data service; nothing in this process acts on them.
type Fund struct {
	ID               string    `json:"id"`
	UserID           string    `json:"-"`
	FundCode         string    `json:"fundCode"`
	FundName         string    `json:"fundName"`
	FundType         string    `json:"fundType"`
	Style            string    `json:"style"`
	FocusBoards      []string  `json:"focusBoards"`
	ScheduleEnabled  bool      `json:"scheduleEnabled"`
	ScheduleTime     string    `json:"scheduleTime"`
	ScheduleInterval string    `json:"scheduleInterval"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// FundPatch carries the mutable fields of a Fund. Nil means unchanged.
type FundPatch struct {
	Style            *string   `json:"style"`
	FocusBoards      *[]string `json:"focusBoards"`
	ScheduleEnabled  *bool     `json:"scheduleEnabled"`
	ScheduleTime     *string   `json:"scheduleTime"`
	ScheduleInterval *string   `json:"scheduleInterval"`
}

// Apply copies the non-nil fields of p onto f.
func (p FundPatch) Apply(f *Fund) {
	if p.Style != nil {
		f.Style = *p.Style
	}
	if p.FocusBoards != nil {
		f.FocusBoards = append([]string{}, (*p.FocusBoards)...)
	}
	if p.ScheduleEnabled != nil {
		f.ScheduleEnabled = *p.ScheduleEnabled
	}
	if p.ScheduleTime != nil {
		f.ScheduleTime = *p.ScheduleTime
	}
	if p.ScheduleInterval != nil {
		f.ScheduleInterval = *p.ScheduleInterval
	}
}
