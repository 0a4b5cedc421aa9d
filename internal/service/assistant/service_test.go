package assistant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dentassist/dentsync/internal/ai"
	apperrors "github.com/dentassist/dentsync/pkg/errors"
	"github.com/dentassist/dentsync/pkg/logger"
)

type fakeClient struct {
	text    string
	textErr error
	jsonRaw string
	jsonErr error
}

func (f *fakeClient) GenerateText(context.Context, string, string) (string, error) {
	return f.text, f.textErr
}

func (f *fakeClient) GenerateJSON(_ context.Context, _, _ string, out interface{}) error {
	if f.jsonErr != nil {
		return f.jsonErr
	}
	return ai.DecodeStructured(f.jsonRaw, out)
}

func newTestService(client ai.Client) *Service {
	return NewService(client, logger.NewLogger(&logger.Config{Level: logger.FatalLevel}), nil)
}

func TestChat(t *testing.T) {
	svc := newTestService(&fakeClient{text: "Brush twice daily."})

	reply, err := svc.Chat(context.Background(), "How often should patients brush?")
	require.NoError(t, err)
	assert.Equal(t, "Brush twice daily.", reply)
}

func TestChatNotConfigured(t *testing.T) {
	svc := newTestService(&fakeClient{textErr: ai.ErrNotConfigured})

	_, err := svc.Chat(context.Background(), "hello")
	assert.True(t, apperrors.Is(err, apperrors.ErrConfiguration))
}

func TestSymptomCheckStructured(t *testing.T) {
	svc := newTestService(&fakeClient{jsonRaw: `{
		"summary": "Likely irreversible pulpitis",
		"conditions": [{"name": "Pulpitis", "likelihood": "high", "advice": "Book an endodontic evaluation."}],
		"urgency": "soon"
	}`})

	got, err := svc.SymptomCheck(context.Background(), "throbbing pain, worse at night")
	require.NoError(t, err)
	assert.Equal(t, "Likely irreversible pulpitis", got.Summary)
	require.Len(t, got.Conditions, 1)
	assert.Equal(t, "high", got.Conditions[0].Likelihood)
	assert.Empty(t, got.Error)
}

func TestSymptomCheckMalformedReplyBecomesErrorValue(t *testing.T) {
	svc := newTestService(&fakeClient{jsonRaw: "I think it's probably caries."})

	got, err := svc.SymptomCheck(context.Background(), "sensitivity to sweets")
	require.NoError(t, err, "malformed replies must not propagate as errors")
	assert.NotEmpty(t, got.Error)
	assert.Empty(t, got.Summary)
}

func TestSymptomCheckUpstreamFailurePropagates(t *testing.T) {
	svc := newTestService(&fakeClient{jsonErr: apperrors.Upstream("assistant request failed", nil)})

	_, err := svc.SymptomCheck(context.Background(), "swelling")
	assert.True(t, apperrors.Is(err, apperrors.ErrUpstream))
}
