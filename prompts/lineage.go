package prompts

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ABHISHEKSUNDARAMOORTHI/Data-Lineage-Mapper/pkg/lineage"
)

func RegisterLineagePrompts(s *server.MCPServer) {
	prompt := mcp.NewPrompt("lineage_review",
		mcp.WithPromptDescription("Review ETL code and describe its column-level data lineage"),
		mcp.WithArgument("code", mcp.ArgumentDescription("The ETL code or SQL script to review")),
	)
	s.AddPrompt(prompt, lineageReviewHandler)
}

func lineageReviewHandler(arguments map[string]string) (*mcp.GetPromptResult, error) {
	code := arguments["code"]

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Column-level lineage review of %d bytes of ETL code", len(code)),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: lineage.BuildReportPrompt(code),
				},
			},
		},
	}, nil
}
