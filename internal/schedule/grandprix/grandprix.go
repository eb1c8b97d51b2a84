package grandprix

import "time"

// GrandPrix is a single race weekend on the championship calendar.
type GrandPrix struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Country     string    `json:"country"`
	Circuit     string    `json:"circuit"`
	RaceDate    time.Time `json:"race_date"`
	Year        int       `json:"year"`
	Round       string    `json:"round"`
	IsCompleted bool      `json:"is_completed"`
}

const (
	NameMaxLength    = 45
	CountryMaxLength = 45
	CircuitMaxLength = 45
	RoundMaxLength   = 45
)
