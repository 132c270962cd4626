package triage

//go:generate go run go.uber.org/mock/mockgen -source=./triage.go -destination=./mocks/triage_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"campusroom/config"
	"campusroom/infras/genai"
	"campusroom/internal/domains/report/model"

	generativeai "github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	defaultConfidence  = 0.5
	defaultRationale   = "Ranked by the selected category."
	fallbackRationale  = "Ranked automatically by category."
	maxRationaleLength = 220
)

// Result is the outcome of triaging a fault report. Source tells whether the
// rank came from the classifier or from the category fallback.
type Result struct {
	SeverityRank int
	Confidence   float64
	Rationale    string
	Source       string
}

type Input struct {
	Category    string
	RoomCode    string
	Description string
}

// Classifier ranks a fault report. It never fails: any classifier problem
// yields the category fallback.
type Classifier interface {
	Classify(ctx context.Context, input Input) Result
}

type classifierImpl struct {
	client  genai.Client
	limiter *rate.Limiter
	timeout time.Duration
}

func New(client genai.Client, cfg *config.Config) Classifier {
	perMinute := max(cfg.External.GenAI.RequestsPerMinute, 1)

	return &classifierImpl{
		client:  client,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute),
		timeout: time.Duration(max(cfg.External.GenAI.TimeoutSeconds, 1)) * time.Second,
	}
}

var responseSchema = &generativeai.Schema{
	Type: generativeai.TypeObject,
	Properties: map[string]*generativeai.Schema{
		"severity_rank": {Type: generativeai.TypeInteger, Description: "1 is the most severe, 5 the least"},
		"confidence":    {Type: generativeai.TypeNumber, Description: "between 0 and 1"},
		"rationale":     {Type: generativeai.TypeString, Description: "at most 220 characters"},
	},
	Required: []string{"severity_rank", "confidence", "rationale"},
}

type response struct {
	SeverityRank *int     `json:"severity_rank"`
	Confidence   *float64 `json:"confidence"`
	Rationale    string   `json:"rationale"`
}

func (c *classifierImpl) Classify(ctx context.Context, input Input) Result {
	fallback := Fallback(input.Category)

	if !c.limiter.Allow() {
		log.Warn().Str("room", input.RoomCode).Msg("triage request budget exhausted, using category rank")

		return fallback
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	text, err := c.client.GenerateJSON(ctx, prompt(input), responseSchema)
	if err != nil {
		log.Warn().Err(err).Str("room", input.RoomCode).Msg("triage classifier failed, using category rank")

		return fallback
	}

	var resp response
	if err := json.Unmarshal([]byte(text), &resp); err != nil {
		log.Warn().Err(err).Str("room", input.RoomCode).Msg("triage classifier returned malformed JSON, using category rank")

		return fallback
	}

	return normalize(resp, fallback.SeverityRank)
}

// Fallback ranks by category alone.
func Fallback(category string) Result {
	return Result{
		SeverityRank: model.FallbackRank(category),
		Confidence:   0,
		Rationale:    fallbackRationale,
		Source:       model.SourceFallback,
	}
}

func normalize(resp response, fallbackRank int) Result {
	result := Result{
		SeverityRank: fallbackRank,
		Confidence:   defaultConfidence,
		Rationale:    strings.TrimSpace(resp.Rationale),
		Source:       model.SourceClassifier,
	}

	if resp.SeverityRank != nil && *resp.SeverityRank >= model.MostSevere && *resp.SeverityRank <= model.LeastSevere {
		result.SeverityRank = *resp.SeverityRank
	}

	if resp.Confidence != nil && *resp.Confidence >= 0 && *resp.Confidence <= 1 {
		result.Confidence = *resp.Confidence
	}

	if result.Rationale == "" {
		result.Rationale = defaultRationale
	}

	if runes := []rune(result.Rationale); len(runes) > maxRationaleLength {
		result.Rationale = string(runes[:maxRationaleLength])
	}

	return result
}

func prompt(input Input) string {
	return fmt.Sprintf(`You triage classroom fault reports.
Severity scale (1 most severe, 5 least severe) by category:
projector=1, computer=2, lighting=3, air_conditioning=4, other=5.

Rules:
- Default to the rank of the selected category.
- Move at most one step (+/-1) when the description shows unusual impact.
- Never leave the range 1..5.

Report:
Category: %s
Room: %s
Description: %s

Answer with JSON only.`, input.Category, input.RoomCode, input.Description)
}
