package replay

import "triage/internal/app/ports"

type Request struct {
	RunID string
	Limit int
}

type Response struct {
	Run       ports.RunRecord        `json:"run"`
	Decisions []ports.DecisionRecord `json:"decisions"`
}
