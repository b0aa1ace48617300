package dto

type VertexGenerateRequest struct {
	Model            string
	System           string
	UserMessage      string
	Temperature      *float32
	MaxOutputTokens  *int32
	ResponseMIMEType string
	ResponseSchema   *VertexSchema
}

type VertexGenerateResponse struct {
	Text string
	Raw  any
}

type VertexSchema struct {
	Type        string
	Description string
	Enum        []string
	Properties  map[string]*VertexSchema
	Required    []string
	Items       *VertexSchema
}
