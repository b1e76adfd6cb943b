package domain

import "time"

type DiagnosticCheck struct {
	Name     string        `json:"name"`
	OK       bool          `json:"ok"`
	Detail   string        `json:"detail"`
	Duration time.Duration `json:"duration_ns"`
}

type DiagnosticsReport struct {
	StartedAt time.Time         `json:"started_at"`
	Checks    []DiagnosticCheck `json:"checks"`
}

func (r DiagnosticsReport) Healthy() bool {
	for _, c := range r.Checks {
		if !c.OK {
			return false
		}
	}
	return true
}
