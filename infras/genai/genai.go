package genai

//go:generate go run go.uber.org/mock/mockgen -source=./genai.go -destination=./mocks/genai_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"campusroom/config"
	"campusroom/infras/otel"
	"campusroom/shared/constant"

	generativeai "github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

var (
	ErrDisabled      = errors.New("generative model is not configured")
	ErrEmptyResponse = errors.New("generative model returned no content")
)

// Client sends a prompt to a generative model that answers with JSON.
type Client interface {
	GenerateJSON(ctx context.Context, prompt string, schema *generativeai.Schema) (string, error)
	Close() error
}

type geminiClientImpl struct {
	client    *generativeai.Client
	modelName string
	otel      otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Client {
	if cfg.External.GenAI.APIKey == constant.Empty {
		log.Warn().Msg("No generative model API key configured, triage falls back to categories")

		return &geminiClientImpl{otel: otel}
	}

	client, err := generativeai.NewClient(context.Background(), option.WithAPIKey(cfg.External.GenAI.APIKey))
	if err != nil {
		log.Error().Err(err).Msg("Failed to create generative model client, triage falls back to categories")

		return &geminiClientImpl{otel: otel}
	}

	log.Info().Str("model", cfg.External.GenAI.Model).Msg("Generative model client created")

	return &geminiClientImpl{
		client:    client,
		modelName: cfg.External.GenAI.Model,
		otel:      otel,
	}
}

func (g *geminiClientImpl) GenerateJSON(ctx context.Context, prompt string, schema *generativeai.Schema) (text string, err error) {
	ctx, scope := g.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".genai.GenerateJSON")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if g.client == nil {
		return constant.Empty, ErrDisabled
	}

	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(0)
	model.ResponseMIMEType = constant.ContentTypeJSON
	model.ResponseSchema = schema

	resp, err := model.GenerateContent(ctx, generativeai.Text(prompt))
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return constant.Empty, ErrEmptyResponse
	}

	var sb strings.Builder

	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(generativeai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}

	if sb.Len() == 0 {
		return constant.Empty, ErrEmptyResponse
	}

	return sb.String(), nil
}

func (g *geminiClientImpl) Close() error {
	if g.client == nil {
		return nil
	}

	return g.client.Close() //nolint:wrapcheck
}
