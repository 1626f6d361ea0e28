package mcp

import (
	"context"
	"fmt"
	"strings"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olivermillard/mention/internal/directory"
	"github.com/olivermillard/mention/internal/mention"
	"github.com/olivermillard/mention/internal/types"
	"go.uber.org/zap"
)

type ToolContext struct {
	Provider directory.Provider
	Logger   *zap.Logger
}

type locateArgs struct {
	Text  string `json:"text" jsonschema:"The draft text containing an @-mention query."`
	Caret *int   `json:"caret,omitempty" jsonschema:"Caret position as a character offset (default: end of text)"`
}

type completeArgs struct {
	Text   string `json:"text" jsonschema:"The draft text containing an @-mention query."`
	Caret  *int   `json:"caret,omitempty" jsonschema:"Caret position as a character offset (default: end of text)"`
	Handle string `json:"handle" jsonschema:"Handle of the directory entry to insert, with or without the @."`
}

// RegisterTools registers the mention tools.
func RegisterTools(server *mcp.Server, ctx *ToolContext) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "mention_locate",
		Description: "Find the @-mention query at the caret and list the directory entries it matches.",
	}, func(reqCtx context.Context, _ *mcp.CallToolRequest, args locateArgs) (*mcp.CallToolResult, any, error) {
		return handleLocate(reqCtx, *ctx, args), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "mention_complete",
		Description: "Replace the @-mention query at the caret with the display name of the given handle.",
	}, func(reqCtx context.Context, _ *mcp.CallToolRequest, args completeArgs) (*mcp.CallToolResult, any, error) {
		return handleComplete(reqCtx, *ctx, args), nil, nil
	})
}

func handleLocate(reqCtx context.Context, ctx ToolContext, args locateArgs) *mcp.CallToolResult {
	res, err := mention.Resolve(reqCtx, ctx.Provider, args.Text, caretArg(args.Caret))
	if err != nil {
		ctx.logger().Warn("mention_locate failed", zap.Error(err))
		return toolError(fmt.Sprintf("Error: %v", err))
	}
	if !res.Active() {
		return toolResult("No mention query at caret", false)
	}
	header := fmt.Sprintf("Query %s at [%d,%d)", res.Query, res.Span.Start, res.Span.End)
	if len(res.Candidates) == 0 {
		return toolResult(header+"\n\nNo Users Found", false)
	}
	return toolResult(fmt.Sprintf("%s, %d match(es):\n\n%s", header, len(res.Candidates), formatEntries(res.Candidates)), false)
}

func handleComplete(reqCtx context.Context, ctx ToolContext, args completeArgs) *mcp.CallToolResult {
	if strings.TrimSpace(args.Handle) == "" {
		return toolError("Error: handle cannot be empty")
	}
	edit, err := mention.Complete(reqCtx, ctx.Provider, args.Text, caretArg(args.Caret), args.Handle)
	if err != nil {
		ctx.logger().Warn("mention_complete failed", zap.String("handle", args.Handle), zap.Error(err))
		return toolError(fmt.Sprintf("Error: %v", err))
	}
	return toolResult(fmt.Sprintf("%s\n\ncaret: %d", edit.Buffer, edit.Caret), false)
}

func formatEntries(entries []types.DirectoryEntry) string {
	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		line := fmt.Sprintf("- %s (@%s)", entry.DisplayName, entry.Handle)
		if entry.AvatarRef != "" {
			line += " " + entry.AvatarRef
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func caretArg(caret *int) int {
	if caret == nil {
		return -1
	}
	return *caret
}

func (ctx ToolContext) logger() *zap.Logger {
	if ctx.Logger == nil {
		return zap.NewNop()
	}
	return ctx.Logger
}

func toolResult(text string, isError bool) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: isError,
	}
}

func toolError(text string) *mcp.CallToolResult {
	return toolResult(text, true)
}
