package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/GregMSThompson/expense-tracker/internal/dto"
	"github.com/GregMSThompson/expense-tracker/internal/errs"
	"github.com/GregMSThompson/expense-tracker/internal/taxonomy"
	"github.com/GregMSThompson/expense-tracker/pkg/helpers"
	"github.com/GregMSThompson/expense-tracker/pkg/logger"
)

type vertexClient interface {
	GenerateContent(ctx context.Context, req dto.VertexGenerateRequest) (dto.VertexGenerateResponse, error)
}

type extractionService struct {
	vertex vertexClient
}

func NewExtractionService(vertex vertexClient) *extractionService {
	return &extractionService{vertex: vertex}
}

// Extract asks the model to pull an expense out of free text. The result is
// the decoded JSON object, unvalidated.
func (s *extractionService) Extract(ctx context.Context, text string, ref time.Time) (any, error) {
	log := logger.FromContext(ctx)

	resp, err := s.vertex.GenerateContent(ctx, dto.VertexGenerateRequest{
		System:           extractionSystemPrompt(),
		UserMessage:      extractionPrompt(text, ref),
		Temperature:      helpers.Ptr(float32(0)),
		ResponseMIMEType: "application/json",
		ResponseSchema:   expenseSchema(),
	})
	if err != nil {
		log.Error("expense extraction failed", "error", err)
		return nil, errs.NewExtractionError(err.Error(), err)
	}

	payload := stripCodeFence(resp.Text)
	if payload == "" {
		return nil, errs.NewExtractionError("empty model response", nil)
	}

	var out any
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		log.Warn("model returned invalid json", "error", err, "text", resp.Text)
		return nil, errs.NewExtractionError(err.Error(), err)
	}

	// Some models wrap a single object in an array.
	if list, ok := out.([]any); ok && len(list) > 0 {
		out = list[0]
	}

	log.Debug("expense extracted", "raw", out)
	return out, nil
}

func extractionSystemPrompt() string {
	return "You extract a single expense from a short note written by a student. " +
		"Respond only with JSON that matches the schema. Amounts are plain numbers without currency symbols."
}

func extractionPrompt(text string, ref time.Time) string {
	ref = ref.UTC()
	today := ref.Format(dayLayout)
	yesterday := ref.AddDate(0, 0, -1).Format(dayLayout)
	categories := strings.Join(taxonomy.CategoryList, ", ")

	var b strings.Builder
	fmt.Fprintf(&b, "Extract expense information from: %q\n\n", text)
	b.WriteString("Return a JSON object with these exact fields:\n")
	b.WriteString("{\"amount\": <number>, \"category\": \"<one of: " + categories + ">\", " +
		"\"date\": \"<YYYY-MM-DD format>\", \"description\": \"<short text>\"}\n\n")
	b.WriteString("Date parsing rules:\n")
	b.WriteString("- \"today\" or no date mentioned: use " + today + "\n")
	b.WriteString("- \"yesterday\": use " + yesterday + "\n")
	fmt.Fprintf(&b, "- A day and month without a year like \"14 Dec\": use the year %d\n", ref.Year())
	b.WriteString("- If unclear: use " + today + "\n\n")
	b.WriteString("Example: \"lunch 150 yesterday\" should return:\n")
	b.WriteString("{\"amount\": 150, \"category\": \"Food\", \"date\": \"" + yesterday + "\", \"description\": \"lunch\"}\n")
	return b.String()
}

func expenseSchema() *dto.VertexSchema {
	return &dto.VertexSchema{
		Type: "object",
		Properties: map[string]*dto.VertexSchema{
			"amount":      {Type: "number", Description: "Amount spent, positive"},
			"category":    {Type: "string", Enum: taxonomy.CategoryList},
			"date":        {Type: "string", Description: "YYYY-MM-DD"},
			"description": {Type: "string", Description: "Short description of the purchase"},
		},
		Required: []string{"amount", "category", "date", "description"},
	}
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
