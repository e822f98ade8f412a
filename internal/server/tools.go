package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ScanInput is the input for the scan-event-website tool.
type ScanInput struct {
	URL string `json:"url" jsonschema:"event website URL"`
}

// ScanResult reports the companies found by a scan.
type ScanResult struct {
	Count     int      `json:"count" jsonschema:"number of companies found"`
	Companies []string `json:"companies" jsonschema:"company names found on the page"`
}

// EnrichInput is the input for the enrich-contacts tool.
type EnrichInput struct {
	SequenceID string `json:"sequence_id" jsonschema:"sequence ID to add contacts to"`
}

// EnrichResult reports how many new contacts an enrichment run merged.
type EnrichResult struct {
	Added int `json:"added" jsonschema:"number of new contacts added"`
}

// ChangesInput is the (empty) input for the get-changes tool.
type ChangesInput struct{}

// ChangesResult reports company membership changes since the last scan.
type ChangesResult struct {
	Added       []string `json:"added" jsonschema:"companies that appeared since the last scan"`
	Removed     []string `json:"removed" jsonschema:"companies that disappeared since the last scan"`
	NoPriorData bool     `json:"no_prior_data,omitempty" jsonschema:"set when no previous scan exists"`
}

func registerTools(s *mcp.Server, deps Deps) {
	mcp.AddTool(s, scanTool(), scanHandler(deps))
	mcp.AddTool(s, enrichTool(), enrichHandler(deps))
	mcp.AddTool(s, changesTool(), changesHandler(deps))
}

func scanTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "scan-event-website",
		Description: "Scan a website for event sponsors and attendees",
	}
}

func enrichTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "enrich-contacts",
		Description: "Find key decision makers at tracked companies and add them to a sequence",
	}
}

func changesTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get-changes",
		Description: "Get changes in sponsors and attendees since the last check",
	}
}

// scanHandler validates the URL argument before any state is touched,
// so a missing argument never mutates or persists anything.
func scanHandler(deps Deps) mcp.ToolHandlerFor[ScanInput, ScanResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input ScanInput) (*mcp.CallToolResult, ScanResult, error) {
		if strings.TrimSpace(input.URL) == "" {
			return nil, ScanResult{}, fmt.Errorf("url is required")
		}

		report, err := deps.Tracker.Scan(ctx, input.URL)
		if err != nil {
			return nil, ScanResult{}, err
		}

		result := ScanResult{Count: len(report.Names), Companies: report.Names}
		return textResult(report.Summary()), result, nil
	}
}

func enrichHandler(deps Deps) mcp.ToolHandlerFor[EnrichInput, EnrichResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input EnrichInput) (*mcp.CallToolResult, EnrichResult, error) {
		if strings.TrimSpace(input.SequenceID) == "" {
			return nil, EnrichResult{}, fmt.Errorf("sequence_id is required")
		}

		report, err := deps.Tracker.Enrich(ctx, input.SequenceID)
		if err != nil {
			return nil, EnrichResult{}, err
		}

		return textResult(report.Summary()), EnrichResult{Added: report.Added}, nil
	}
}

func changesHandler(deps Deps) mcp.ToolHandlerFor[ChangesInput, ChangesResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ ChangesInput) (*mcp.CallToolResult, ChangesResult, error) {
		report, err := deps.Tracker.Changes(ctx)
		if err != nil {
			return nil, ChangesResult{}, err
		}

		result := ChangesResult{
			Added:       report.Added,
			Removed:     report.Removed,
			NoPriorData: report.NoPrior,
		}
		return textResult(report.Summary()), result, nil
	}
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
