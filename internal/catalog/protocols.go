package catalog

import "reconnect-backend/internal/models"

// Protocols is the static protocol library. It is reference data loaded
// at build time; handlers and engines read it, nothing writes it.
var Protocols = []models.Protocol{
	{
		ID:          "presence-drop",
		Title:       "Presence Drop",
		Description: "A fast reset using breath and posture to bring you back to calm and clarity before your next task.",
		Tagline:     "Cut stress instantly.",
		Duration:    3,
		Category:    models.CategoryReset,
		WhenToUse:   "Before a tense call, after a tough exchange, or between tasks",
		Impact:      models.ProtocolImpact{Calm: 80, Clarity: 40, Energy: 20},
	},
	{
		ID:          "peak-focus",
		Title:       "Peak Focus",
		Description: "Breathing + visual drills that steady your nerves and boost clarity before deep work or key meetings.",
		Tagline:     "Lock in sharp concentration.",
		Duration:    5,
		Category:    models.CategoryFocus,
		WhenToUse:   "Just before a high-stakes meeting, presentation, or deep work block",
		Impact:      models.ProtocolImpact{Calm: 50, Clarity: 80, Energy: 40},
	},
	{
		ID:          "reset-recharge",
		Title:       "Reset & Recharge",
		Description: "Energizing breath and light movement to clear fatigue and restore sustainable energy without caffeine.",
		Tagline:     "Beat the afternoon slump.",
		Duration:    6,
		Category:    models.CategoryEnergy,
		WhenToUse:   "Early afternoon, low-energy moments, or before starting a new block",
		Impact:      models.ProtocolImpact{Calm: 50, Clarity: 40, Energy: 80},
	},
	{
		ID:          "unplug-recover",
		Title:       "Unplug & Recover",
		Description: "Slow breathing and guided body release to let go of tension and shift fully into recovery mode.",
		Tagline:     "Switch off and release.",
		Duration:    8,
		Category:    models.CategoryCalm,
		WhenToUse:   "At the end of the workday, after multiple calls, or before personal time",
		Impact:      models.ProtocolImpact{Calm: 80, Clarity: 30, Energy: 60},
	},
	{
		ID:          "back-to-baseline",
		Title:       "Back to Baseline",
		Description: "A complete reset protocol blending breath and relaxation to restore balance across calm, clarity, and energy.",
		Tagline:     "Full system reset.",
		Duration:    10,
		Category:    models.CategoryReset,
		WhenToUse:   "End of a demanding week, after acute stress, or during mental saturation",
		Impact:      models.ProtocolImpact{Calm: 70, Clarity: 70, Energy: 70},
	},
}

// ProtocolByID returns the catalog entry for id, or nil.
func ProtocolByID(id string) *models.Protocol {
	for i := range Protocols {
		if Protocols[i].ID == id {
			return &Protocols[i]
		}
	}
	return nil
}
