package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/fbarbosa/granavoz/internal/models"
)

type Client struct {
	client             *openai.Client
	transcriptionModel string
	extractionModel    string
}

func New(apiKey, baseURL, transcriptionModel, extractionModel string) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}

	return &Client{
		client:             openai.NewClientWithConfig(config),
		transcriptionModel: transcriptionModel,
		extractionModel:    extractionModel,
	}
}

// Transcribe sends raw audio bytes to the speech-to-text endpoint and returns
// the plain transcript. An empty transcript is a failure.
func (c *Client) Transcribe(ctx context.Context, audio []byte, mimeType, fileName string) (string, error) {
	resp, err := c.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    c.transcriptionModel,
		Reader:   bytes.NewReader(audio),
		FilePath: fileName,
	})
	if err != nil {
		return "", fmt.Errorf("failed to call transcription API: %w", err)
	}

	if resp.Text == "" {
		return "", fmt.Errorf("transcription returned empty text for %s (%s)", fileName, mimeType)
	}

	return resp.Text, nil
}

const extractionSystemPrompt = `Você é um extrator de dados financeiros. Receberá a transcrição de uma mensagem de voz e deve identificar transações, contas e metas financeiras mencionadas.

Regras:
- amount é sempre um número positivo; o sinal é dado pelo campo type (income, expense ou transfer).
- category deve ser uma palavra curta em minúsculas (ex: alimentação, transporte, salário, lazer).
- date, quando mencionada, no formato YYYY-MM-DD. Se não houver data, omita o campo.
- accounts só quando o usuário citar uma conta bancária pelo nome (ex: "conta do Nubank").
- goals só quando o usuário falar de uma meta de poupança ou objetivo financeiro.
- notes lista observações que não se encaixam nos outros campos.
- confidence é sua certeza (0 a 1) de que os dados extraídos estão corretos.
- Se o texto não contiver nada financeiro, devolva listas vazias e confidence baixa.`

// Schema for structured output. Strict mode rejects anything outside it.
var extractionSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"transactions": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"amount": {"type": "number", "description": "Positive amount"},
					"description": {"type": "string"},
					"category": {"type": "string"},
					"type": {"type": "string", "enum": ["income", "expense", "transfer"]},
					"date": {"type": ["string", "null"], "description": "YYYY-MM-DD"},
					"account": {"type": ["string", "null"]},
					"tags": {"type": "array", "items": {"type": "string"}}
				},
				"required": ["amount", "description", "category", "type", "date", "account", "tags"],
				"additionalProperties": false
			}
		},
		"accounts": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"name": {"type": "string"},
					"type": {"type": "string", "enum": ["checking", "savings", "credit", "investment", "cash"]},
					"bank": {"type": ["string", "null"]},
					"balance": {"type": ["number", "null"]}
				},
				"required": ["name", "type", "bank", "balance"],
				"additionalProperties": false
			}
		},
		"goals": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"title": {"type": "string"},
					"targetAmount": {"type": "number"},
					"currentAmount": {"type": "number"},
					"description": {"type": ["string", "null"]},
					"targetDate": {"type": ["string", "null"], "description": "YYYY-MM-DD"},
					"category": {"type": "string"}
				},
				"required": ["title", "targetAmount", "currentAmount", "description", "targetDate", "category"],
				"additionalProperties": false
			}
		},
		"notes": {
			"type": "array",
			"items": {"type": "string"}
		},
		"confidence": {
			"type": "number",
			"minimum": 0,
			"maximum": 1
		}
	},
	"required": ["transactions", "accounts", "goals", "notes", "confidence"],
	"additionalProperties": false
}`)

// Extract asks the model for structured financial data found in the text.
// Malformed JSON from the model is a hard failure.
func (c *Client) Extract(ctx context.Context, text string) (*models.RawExtraction, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.extractionModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: extractionSystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: text,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "financial_extraction",
				Schema: extractionSchema,
				Strict: true,
			},
		},
		Temperature: 0.1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call extraction API: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response from AI")
	}

	content := resp.Choices[0].Message.Content
	extraction := &models.RawExtraction{}
	if err := json.Unmarshal([]byte(content), extraction); err != nil {
		return nil, fmt.Errorf("failed to parse extraction response: %w", err)
	}

	return extraction, nil
}
