package engine

import "time"

// maxNoteLen caps free-text notes stored on apartments and rooms.
const maxNoteLen = 500

// Config carries the documented behavior switches of the core.
type Config struct {
	// OutOfServiceCascade controls what taking an apartment out of
	// service does to its rooms. When false (the default) the rooms keep
	// their own status and the override is applied only when aggregating
	// palace statistics. When true the rooms are transitioned to
	// maintenance and their assignments evicted.
	OutOfServiceCascade bool
}

// Engine applies occupancy operations against tenant datasets. It is
// stateless apart from its configuration and safe for concurrent use; the
// tenant store serializes access to any single dataset.
type Engine struct {
	cfg Config
	now func() time.Time
}

// New constructs an Engine with the given configuration.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg, now: time.Now}
}

// truncateNote caps a note's length without splitting a rune.
func truncateNote(s string) string {
	if len(s) <= maxNoteLen {
		return s
	}
	runes := []rune(s)
	if len(runes) > maxNoteLen {
		runes = runes[:maxNoteLen]
	}
	return string(runes)
}
