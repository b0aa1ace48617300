package vertexclient

import (
	"errors"
	"fmt"
	"testing"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/expense-tracker/internal/dto"
	"github.com/GregMSThompson/expense-tracker/internal/errs"
)

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		transient bool
	}{
		{"grpc resource exhausted", status.Error(codes.ResourceExhausted, "quota"), true},
		{"grpc unavailable", status.Error(codes.Unavailable, "overloaded"), true},
		{"grpc invalid argument", status.Error(codes.InvalidArgument, "bad"), false},
		{"http 429", &googleapi.Error{Code: 429}, true},
		{"http 503", fmt.Errorf("wrapped: %w", &googleapi.Error{Code: 503}), true},
		{"http 400", &googleapi.Error{Code: 400}, false},
		{"plain", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyError(tt.err)
			var ext *errs.ExternalServiceError
			if !errors.As(err, &ext) {
				t.Fatalf("expected ExternalServiceError, got %T", err)
			}
			if ext.Transient != tt.transient {
				t.Fatalf("transient = %v, want %v", ext.Transient, tt.transient)
			}
			if !errors.Is(err, tt.err) {
				t.Fatal("expected upstream error to be wrapped")
			}
		})
	}
}

func TestParseContentResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: nil},
			{Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"amount":`), genai.Text(`5}`)}}},
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("ignored")}}},
		},
	}
	if got := parseContentResponse(resp); got != `{"amount":5}` {
		t.Fatalf("unexpected text %q", got)
	}
	if got := parseContentResponse(nil); got != "" {
		t.Fatalf("expected empty text, got %q", got)
	}
}

func TestToGenaiSchema(t *testing.T) {
	schema := toGenaiSchema(&dto.VertexSchema{
		Type: "object",
		Properties: map[string]*dto.VertexSchema{
			"amount":   {Type: "number"},
			"category": {Type: "string", Enum: []string{"Food", "Others"}},
		},
		Required: []string{"amount"},
	})
	if schema.Type != genai.TypeObject {
		t.Fatalf("unexpected type %v", schema.Type)
	}
	if schema.Properties["amount"].Type != genai.TypeNumber {
		t.Fatal("amount should be a number")
	}
	if len(schema.Properties["category"].Enum) != 2 {
		t.Fatal("category enum not carried over")
	}
	if toGenaiSchema(nil) != nil {
		t.Fatal("nil schema should stay nil")
	}
}
