package triage_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"campusroom/config"
	genaiMocks "campusroom/infras/genai/mocks"
	"campusroom/internal/domains/report/model"
	"campusroom/internal/domains/report/triage"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func classifierConfig(perMinute int) *config.Config {
	cfg := &config.Config{}
	cfg.External.GenAI.RequestsPerMinute = perMinute
	cfg.External.GenAI.TimeoutSeconds = 1

	return cfg
}

func TestClassify(t *testing.T) {
	input := triage.Input{Category: model.CategoryLighting, RoomCode: "Safra 102", Description: "half the lights are out"}

	tests := []struct {
		name     string
		response string
		err      error
		want     triage.Result
	}{
		{
			name:     "classifier answer is kept",
			response: `{"severity_rank": 2, "confidence": 0.8, "rationale": "room is unusable for evening classes"}`,
			want:     triage.Result{SeverityRank: 2, Confidence: 0.8, Rationale: "room is unusable for evening classes", Source: model.SourceClassifier},
		},
		{
			name:     "rank outside range falls back to category rank",
			response: `{"severity_rank": 9, "confidence": 0.7, "rationale": "urgent"}`,
			want:     triage.Result{SeverityRank: 3, Confidence: 0.7, Rationale: "urgent", Source: model.SourceClassifier},
		},
		{
			name:     "confidence outside range defaults",
			response: `{"severity_rank": 3, "confidence": 1.7, "rationale": "ok"}`,
			want:     triage.Result{SeverityRank: 3, Confidence: 0.5, Rationale: "ok", Source: model.SourceClassifier},
		},
		{
			name:     "blank rationale gets default text",
			response: `{"severity_rank": 4, "confidence": 0.9, "rationale": "  "}`,
			want:     triage.Result{SeverityRank: 4, Confidence: 0.9, Rationale: "Ranked by the selected category.", Source: model.SourceClassifier},
		},
		{
			name:     "malformed JSON uses fallback",
			response: `severity: high`,
			want:     triage.Fallback(model.CategoryLighting),
		},
		{
			name: "classifier error uses fallback",
			err:  errors.New("deadline exceeded"),
			want: triage.Fallback(model.CategoryLighting),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			client := genaiMocks.NewMockClient(ctrl)

			client.EXPECT().
				GenerateJSON(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(ctx context.Context, prompt string, _ any) (string, error) {
					deadline, ok := ctx.Deadline()
					assert.True(t, ok)
					assert.WithinDuration(t, time.Now().Add(time.Second), deadline, time.Second)
					assert.True(t, strings.Contains(prompt, "half the lights are out"))

					return tt.response, tt.err
				})

			got := triage.New(client, classifierConfig(60)).Classify(context.Background(), input)

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyLongRationaleIsTruncated(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := genaiMocks.NewMockClient(ctrl)

	client.EXPECT().
		GenerateJSON(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(`{"severity_rank": 1, "confidence": 1, "rationale": "`+strings.Repeat("x", 300)+`"}`, nil)

	got := triage.New(client, classifierConfig(60)).Classify(context.Background(), triage.Input{Category: model.CategoryProjector})

	assert.Len(t, got.Rationale, 220)
}

func TestClassifyRespectsRequestBudget(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := genaiMocks.NewMockClient(ctrl)

	client.EXPECT().
		GenerateJSON(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(`{"severity_rank": 1, "confidence": 0.9, "rationale": "smoke from projector"}`, nil).
		Times(1)

	classifier := triage.New(client, classifierConfig(1))
	input := triage.Input{Category: model.CategoryComputer}

	first := classifier.Classify(context.Background(), input)
	second := classifier.Classify(context.Background(), input)

	assert.Equal(t, model.SourceClassifier, first.Source)
	assert.Equal(t, triage.Fallback(model.CategoryComputer), second)
	assert.Equal(t, 2, second.SeverityRank)
}
