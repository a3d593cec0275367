package tools

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/ABHISHEKSUNDARAMOORTHI/Data-Lineage-Mapper/pkg/lineage"
	"github.com/ABHISHEKSUNDARAMOORTHI/Data-Lineage-Mapper/pkg/lineage/storage"
	"github.com/ABHISHEKSUNDARAMOORTHI/Data-Lineage-Mapper/services"
	"github.com/ABHISHEKSUNDARAMOORTHI/Data-Lineage-Mapper/util"
)

// lineageSession keeps the last mapped result so lineage_trace can walk it.
type lineageSession struct {
	mutex sync.RWMutex
	last  *lineage.Result
}

var session lineageSession

func RegisterLineageTools(s *server.MCPServer) {
	mapTool := mcp.NewTool("map_lineage",
		mcp.WithDescription("Analyze ETL code or SQL and return a Markdown report of column-level data lineage"),
		mcp.WithString("code", mcp.Required(), mcp.Description("The ETL code or SQL script to analyze")),
	)

	mapGraphTool := mcp.NewTool("map_lineage_graph",
		mcp.WithDescription("Analyze ETL code or SQL and return the structured lineage graph as JSON (nodes and edges)"),
		mcp.WithString("code", mcp.Required(), mcp.Description("The ETL code or SQL script to analyze")),
	)

	traceTool := mcp.NewTool("lineage_trace",
		mcp.WithDescription("Trace upstream or downstream lineage from a node of the last mapped graph"),
		mcp.WithString("node_id", mcp.Required(), mcp.Description("Node id to start from, e.g. schema.table.column")),
		mcp.WithString("direction", mcp.Description("upstream or downstream (default: upstream)")),
		mcp.WithString("depth", mcp.Description("Maximum number of hops (default: 5)")),
	)

	s.AddTool(mapTool, server.ToolHandlerFunc(util.ErrorGuard(mapLineageHandler)))
	s.AddTool(mapGraphTool, server.ToolHandlerFunc(util.ErrorGuard(mapLineageGraphHandler)))
	s.AddTool(traceTool, server.ToolHandlerFunc(util.ErrorGuard(lineageTraceHandler)))
}

func runMapper(arguments map[string]interface{}) (*lineage.Result, *mcp.CallToolResult) {
	code, ok := arguments["code"].(string)
	if !ok {
		return nil, mcp.NewToolResultError("code must be a string")
	}

	gateway, err := services.DefaultGateway()
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("AI service error: %v", err))
	}

	result, err := lineage.NewMapper(gateway).Map(context.Background(), code)
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}

	session.mutex.Lock()
	session.last = result
	session.mutex.Unlock()

	return result, nil
}

func mapLineageHandler(arguments map[string]interface{}) (*mcp.CallToolResult, error) {
	result, errResult := runMapper(arguments)
	if errResult != nil {
		return errResult, nil
	}
	return mcp.NewToolResultText(result.Report), nil
}

func mapLineageGraphHandler(arguments map[string]interface{}) (*mcp.CallToolResult, error) {
	result, errResult := runMapper(arguments)
	if errResult != nil {
		return errResult, nil
	}

	if result.Graph == nil {
		diag := "structured lineage unavailable"
		if result.Raw != nil && result.Raw.Error != "" {
			diag = result.Raw.Error
		}
		return mcp.NewToolResultError(diag), nil
	}

	data, err := storage.MarshalGraph(result.Graph)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode graph: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func lineageTraceHandler(arguments map[string]interface{}) (*mcp.CallToolResult, error) {
	nodeID, ok := arguments["node_id"].(string)
	if !ok || nodeID == "" {
		return mcp.NewToolResultError("node_id must be a non-empty string"), nil
	}

	dir := lineage.Upstream
	if s, ok := arguments["direction"].(string); ok && s != "" {
		dir = lineage.Direction(s)
	}

	depth := 5
	if s, ok := arguments["depth"].(string); ok && s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			return mcp.NewToolResultError("depth must be a positive integer"), nil
		}
		depth = n
	}

	session.mutex.RLock()
	last := session.last
	session.mutex.RUnlock()

	if last == nil || last.Graph == nil {
		return mcp.NewToolResultError("no lineage graph mapped yet; run map_lineage_graph first"), nil
	}

	nodes, err := last.Graph.Trace(nodeID, dir, depth)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	response := fmt.Sprintf("%s trace from %s (%d nodes):\n", dir, nodeID, len(nodes))
	for _, node := range nodes {
		response += fmt.Sprintf("- %s (%s) [%s]\n", node.Label, node.ID, node.Group)
	}
	return mcp.NewToolResultText(response), nil
}
