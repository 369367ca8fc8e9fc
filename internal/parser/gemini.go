package parser

import (
	"context"
	"fmt"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/api/option"

	"fable/internal/debug"
	"fable/internal/game"
)

const apiParseTimeout = 20 * time.Second

// APIBackend parses input through the hosted Gemini API. Availability
// is gated on the API key; failures fall through to the next tier.
type APIBackend struct {
	client *genai.Client
	model  *genai.GenerativeModel
	dbg    *debug.Logger
	tracer trace.Tracer
}

func NewAPIBackend(ctx context.Context, apiKey, model string, dbg *debug.Logger) (*APIBackend, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}
	return &APIBackend{
		client: client,
		model:  client.GenerativeModel(model),
		dbg:    dbg,
		tracer: otel.Tracer("parser-api"),
	}, nil
}

func (b *APIBackend) Close() {
	b.client.Close()
}

func (b *APIBackend) Name() string { return "api" }

func (b *APIBackend) Parse(ctx context.Context, input string, scene *game.Scene, player *game.Player) (Command, error) {
	ctx, cancel := context.WithTimeout(ctx, apiParseTimeout)
	defer cancel()

	ctx, span := b.tracer.Start(ctx, "parser.api",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("game.scene", scene.ID)),
	)
	defer span.End()

	prompt := BuildPrompt(input, scene, player)
	resp, err := b.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		span.RecordError(err)
		return Command{}, fmt.Errorf("api completion: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		err := fmt.Errorf("no content returned")
		span.RecordError(err)
		return Command{}, err
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		err := fmt.Errorf("unexpected response part type")
		span.RecordError(err)
		return Command{}, err
	}
	b.dbg.Printf("api parser raw output: %q", string(text))

	cmd, err := ExtractCommand(string(text))
	if err != nil {
		span.RecordError(err)
		return Command{}, err
	}
	span.SetAttributes(attribute.String("parser.action", string(cmd.Action)))
	return cmd, nil
}
