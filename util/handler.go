package util

import (
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// ToolHandlerFunc is the handler signature used by the MCP server.
type ToolHandlerFunc func(arguments map[string]interface{}) (*mcp.CallToolResult, error)

// ErrorGuard wraps a tool handler so that panics are recovered and reported
// as tool errors instead of tearing down the server.
func ErrorGuard(handler ToolHandlerFunc) ToolHandlerFunc {
	return func(arguments map[string]interface{}) (result *mcp.CallToolResult, err error) {
		defer func() {
			if r := recover(); r != nil {
				result = mcp.NewToolResultError(fmt.Sprintf("tool handler panicked: %v", r))
				err = nil
			}
		}()
		return handler(arguments)
	}
}
