package models

const (
	CategoryFocus   = "focus"
	CategoryEnergy  = "energy"
	CategoryCalm    = "calm"
	CategoryClarity = "clarity"
	CategoryReset   = "reset"
)

// ProtocolImpact is the declared effect of a protocol per dimension,
// in percent. Display data only; scoring never reads it.
type ProtocolImpact struct {
	Calm    int `json:"calm"`
	Clarity int `json:"clarity"`
	Energy  int `json:"energy"`
}

// Protocol is a static catalog entry. The catalog is build-time data;
// nothing mutates it at runtime.
type Protocol struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Tagline     string         `json:"tagline"`
	Duration    int            `json:"duration"` // minutes
	Category    string         `json:"category"`
	WhenToUse   string         `json:"when_to_use"`
	Impact      ProtocolImpact `json:"impact"`
}
