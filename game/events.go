package game

import "github.com/habeshabingo/rounds-backend/models"

// Broadcaster fans an event out to every connected client. The websocket
// hub implements it.
type Broadcaster interface {
	Broadcast(event interface{})
}

const (
	EventRoundStarted    = "round_started"
	EventNumberCalled    = "number_called"
	EventRoundStopped    = "round_stopped"
	EventWinnerAnnounced = "winner_announced"
	EventRoundEnded      = "round_ended"
	EventTimerStates     = "timer_states"
	EventSessionsUpdated = "sessions_updated"
	EventRoundState      = "round_state"
)

type RoundStartedEvent struct {
	Type         string  `json:"type"`
	Stake        int     `json:"stake"`
	PrizePool    float64 `json:"prizePool"`
	Participants int     `json:"participants"`
}

type NumberCalledEvent struct {
	Type   string   `json:"type"`
	Stake  int      `json:"stake"`
	Label  string   `json:"label"`
	Called []string `json:"calledNumbers"`
}

type RoundStoppedEvent struct {
	Type        string `json:"type"`
	Stake       int    `json:"stake"`
	FirstWinner *uint  `json:"firstWinner,omitempty"`
}

type WinnerAnnouncedEvent struct {
	Type   string `json:"type"`
	Stake  int    `json:"stake"`
	UserID uint   `json:"user_id"`
	CardID int    `json:"card_id"`
	Count  int    `json:"count"`
}

type RoundEndedEvent struct {
	Type           string     `json:"type"`
	Stake          int        `json:"stake"`
	Winners        []WinClaim `json:"winners"`
	PrizePool      float64    `json:"prizePool"`
	SplitPerWinner float64    `json:"splitPerWinner"`
	TotalWinners   int        `json:"totalWinners"`
}

type TimerStatesEvent struct {
	Type   string                `json:"type"`
	Timers map[int]TimerSnapshot `json:"timers"`
}

type SessionsUpdatedEvent struct {
	Type     string               `json:"type"`
	Sessions []models.GameSession `json:"sessions"`
}

// RoundSnapshot is the unicast reply to a round_state query.
type RoundSnapshot struct {
	Type        string   `json:"type"`
	Stake       int      `json:"stake"`
	Called      []string `json:"calledNumbers"`
	LastCalled  string   `json:"lastCalled"`
	Drawing     bool     `json:"drawing"`
	GraceActive bool     `json:"graceActive"`
}
