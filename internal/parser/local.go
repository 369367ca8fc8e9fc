package parser

import (
	"context"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"fable/internal/debug"
	"fable/internal/game"
)

const localParseTimeout = 20 * time.Second

// LocalBackend parses input through an OpenAI-compatible completion
// endpoint, typically a local llama.cpp or Ollama server. Failures of
// any kind fall through to the next tier.
type LocalBackend struct {
	client *openai.Client
	model  string
	dbg    *debug.Logger
	tracer trace.Tracer
}

func NewLocalBackend(baseURL, apiKey, model string, dbg *debug.Logger) *LocalBackend {
	opts := []option.RequestOption{option.WithBaseURL(baseURL)}
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	client := openai.NewClient(opts...)
	return &LocalBackend{
		client: &client,
		model:  model,
		dbg:    dbg,
		tracer: otel.Tracer("parser-local"),
	}
}

func (b *LocalBackend) Name() string { return "local" }

func (b *LocalBackend) Parse(ctx context.Context, input string, scene *game.Scene, player *game.Player) (Command, error) {
	ctx, cancel := context.WithTimeout(ctx, localParseTimeout)
	defer cancel()

	ctx, span := b.tracer.Start(ctx, "parser.local",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("gen_ai.request.model", b.model),
			attribute.String("game.scene", scene.ID),
		),
	)
	defer span.End()

	prompt := BuildPrompt(input, scene, player)
	resp, err := b.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: shared.ChatModel(b.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("You are a command parser that only outputs valid JSON."),
			openai.UserMessage(prompt),
		},
		MaxCompletionTokens: openai.Int(150),
	})
	if err != nil {
		span.RecordError(err)
		return Command{}, fmt.Errorf("local completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no completion choices returned")
		span.RecordError(err)
		return Command{}, err
	}

	content := resp.Choices[0].Message.Content
	b.dbg.Printf("local parser raw output: %q", content)

	cmd, err := ExtractCommand(content)
	if err != nil {
		span.RecordError(err)
		return Command{}, err
	}
	span.SetAttributes(attribute.String("parser.action", string(cmd.Action)))
	return cmd, nil
}
