package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the query to match against knowledge source titles"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Results      []SearchResultOutput `json:"results"`
	Count        int                  `json:"count"`
	FallbackUsed bool                 `json:"fallback_used"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	RecordID   string `json:"record_id"`
	SourceName string `json:"source_name"`
	Title      string `json:"title"`
	Content    string `json:"content,omitempty"`
	Link       string `json:"link,omitempty"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Query string `json:"query" jsonschema:"the question to answer from the knowledge sources"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Answer       string               `json:"answer"`
	Sources      []SearchResultOutput `json:"sources"`
	FallbackUsed bool                 `json:"fallback_used"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search the registered knowledge sources by title, with keyword fallback",
	}, s.handleSearch)

	if s.ports.Answer != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ask",
			Description: "Answer a question grounded on the knowledge sources and web search",
		}, s.handleAsk)
	}
}

// handleSearch handles the search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	resp, err := s.ports.Search.Search(ctx, input.Query)
	if err != nil {
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results:      make([]SearchResultOutput, len(resp.Results)),
		Count:        len(resp.Results),
		FallbackUsed: resp.FallbackUsed,
	}

	for i := range resp.Results {
		output.Results[i] = SearchResultOutput{
			RecordID:   resp.Results[i].RecordID,
			SourceName: resp.Results[i].SourceName,
			Title:      resp.Results[i].Title,
			Content:    resp.Results[i].Content,
			Link:       resp.Results[i].Link,
		}
	}

	return nil, output, nil
}

// handleAsk handles the ask tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Answer.Answer(ctx, input.Query)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:       answer.Text,
		Sources:      make([]SearchResultOutput, len(answer.Knowledge)),
		FallbackUsed: answer.FallbackUsed,
	}

	for i := range answer.Knowledge {
		output.Sources[i] = SearchResultOutput{
			RecordID:   answer.Knowledge[i].RecordID,
			SourceName: answer.Knowledge[i].SourceName,
			Title:      answer.Knowledge[i].Title,
			Link:       answer.Knowledge[i].Link,
		}
	}

	return nil, output, nil
}
