package mcp

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// storeGuardMiddleware fails every tool call while no document store is
// configured. The condition only clears on restart.
func storeGuardMiddleware(available func() bool) sdkmcp.Middleware {
	return func(next sdkmcp.MethodHandler) sdkmcp.MethodHandler {
		return func(ctx context.Context, method string, req sdkmcp.Request) (sdkmcp.Result, error) {
			if method != "tools/call" || available == nil || available() {
				return next(ctx, method, req)
			}
			return &sdkmcp.CallToolResult{
				IsError: true,
				Content: []sdkmcp.Content{&sdkmcp.TextContent{Text: errStoreUnavailable.Error()}},
			}, nil
		}
	}
}
