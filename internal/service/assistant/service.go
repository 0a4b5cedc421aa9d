// Package assistant backs the AI-assisted panels: free-form chat and a
// structured dental symptom check.
package assistant

import (
	"context"
	"time"

	"github.com/dentassist/dentsync/internal/ai"
	"github.com/dentassist/dentsync/pkg/errors"
	"github.com/dentassist/dentsync/pkg/logger"
	"github.com/dentassist/dentsync/pkg/metrics"
)

const chatSystemPrompt = "You are a knowledgeable dental practice assistant. " +
	"Answer questions about dental procedures, oral health and practice " +
	"management concisely. You are not a substitute for a clinical examination."

const symptomSystemPrompt = "You are a dental triage assistant. Given a " +
	"patient's described symptoms, reply with a JSON object with fields: " +
	`"summary" (string), "conditions" (array of {"name","likelihood","advice"}` +
	` with likelihood one of "low","medium","high") and "urgency" (one of ` +
	`"routine","soon","urgent"). Reply with JSON only.`

// Assessment is the structured symptom-check result. Error carries the
// sentinel message when the model reply could not be used; UI layers render a
// fallback instead of the assessment.
type Assessment struct {
	Summary    string      `json:"summary"`
	Conditions []Condition `json:"conditions"`
	Urgency    string      `json:"urgency"`
	Error      string      `json:"error,omitempty"`
}

type Condition struct {
	Name       string `json:"name"`
	Likelihood string `json:"likelihood"`
	Advice     string `json:"advice"`
}

type Service struct {
	client  ai.Client
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewService(client ai.Client, log *logger.Logger, m *metrics.Metrics) *Service {
	return &Service{client: client, logger: log, metrics: m}
}

func (s *Service) observe(op string, start time.Time, err error) {
	if s.metrics == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	s.metrics.AssistantRequests.WithLabelValues(op, status).Inc()
	s.metrics.AssistantLatency.Observe(time.Since(start).Seconds())
}

// Chat returns the model's free-text reply. Configuration and request
// failures propagate as distinct error values.
func (s *Service) Chat(ctx context.Context, message string) (string, error) {
	start := time.Now()
	reply, err := s.client.GenerateText(ctx, chatSystemPrompt, message)
	s.observe("chat", start, err)
	if err != nil {
		return "", err
	}
	return reply, nil
}

// SymptomCheck returns a structured assessment. A malformed model reply is
// converted into an error-shaped Assessment rather than propagated, so the
// caller can always render something.
func (s *Service) SymptomCheck(ctx context.Context, symptoms string) (*Assessment, error) {
	start := time.Now()
	var out Assessment
	err := s.client.GenerateJSON(ctx, symptomSystemPrompt, symptoms, &out)
	s.observe("symptom_check", start, err)
	if err != nil {
		if errors.Is(err, errors.ErrMalformedResponse) {
			s.logger.Error(err, "assistant returned a malformed assessment")
			return &Assessment{Error: "the assistant reply could not be interpreted"}, nil
		}
		return nil, err
	}
	return &out, nil
}
