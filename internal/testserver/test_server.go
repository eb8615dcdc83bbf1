// Package testserver runs the whole planner stack behind an HTTP MCP endpoint
// for tests.
package testserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/wanderlist/internal/dispatch"
	"github.com/rpggio/wanderlist/internal/docstore"
	"github.com/rpggio/wanderlist/internal/domain/expense"
	"github.com/rpggio/wanderlist/internal/domain/user"
	"github.com/rpggio/wanderlist/internal/mcp"
	"github.com/rpggio/wanderlist/internal/planner"
	"github.com/rpggio/wanderlist/internal/sqlite"
	"github.com/rpggio/wanderlist/internal/state"
	"github.com/rpggio/wanderlist/internal/transport"
	"github.com/stretchr/testify/require"
)

// PollInterval is short so writes from another TestServer on the same
// database show up quickly.
const PollInterval = 20 * time.Millisecond

// Options configures a TestServer.
type Options struct {
	UserID string
	// DBPath shares a database file with another TestServer. Empty creates a
	// fresh one.
	DBPath    string
	Now       func() time.Time
	Suggester planner.Suggester
	Weather   planner.WeatherSource
}

type TestServer struct {
	Server  *httptest.Server
	DB      *sqlite.DB
	DBPath  string
	Store   *sqlite.DocumentStore
	Cache   *state.Cache
	Planner *planner.Service
	UserID  string
}

// New starts a server acting as opts.UserID.
func New(t *testing.T, opts Options) *TestServer {
	t.Helper()
	ctx := context.Background()

	if opts.UserID == "" {
		opts.UserID = "user-1-testserver"
	}
	if opts.DBPath == "" {
		opts.DBPath = filepath.Join(t.TempDir(), "wanderlist.db")
	}

	db, err := sqlite.New(opts.DBPath)
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())

	store := sqlite.NewDocumentStore(db, PollInterval, nil)
	cache := state.New(store, nil)
	require.NoError(t, cache.Start(ctx))

	waitCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	require.NoError(t, cache.WaitReady(waitCtx, docstore.Trips))
	require.NoError(t, cache.WaitReady(waitCtx, docstore.Users))

	_, err = user.NewService(store, nil).Ensure(ctx, opts.UserID)
	require.NoError(t, err)

	svc := planner.NewService(cache, dispatch.New(store, nil), opts.UserID, planner.Options{
		Suggester: opts.Suggester,
		Weather:   opts.Weather,
		Converter: expense.NewConverter("TWD", "CNY", 4.5),
		Now:       opts.Now,
	}, nil)

	mcpServer := mcp.NewServer(mcp.Config{
		Planner:        svc,
		StoreAvailable: cache.Available,
		TransportMode:  "http",
	})
	handler := sdkmcp.NewStreamableHTTPHandler(
		func(*http.Request) *sdkmcp.Server { return mcpServer },
		&sdkmcp.StreamableHTTPOptions{SessionTimeout: time.Minute},
	)
	server := httptest.NewServer(transport.NewRouter(handler, cache.Available, nil))

	t.Cleanup(func() {
		server.Close()
		cache.Close()
		store.Close()
		_ = db.Close()
	})

	return &TestServer{
		Server:  server,
		DB:      db,
		DBPath:  opts.DBPath,
		Store:   store,
		Cache:   cache,
		Planner: svc,
		UserID:  opts.UserID,
	}
}

// Connect opens an MCP client session against the server.
func (ts *TestServer) Connect(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()
	client := sdkmcp.NewClient(&sdkmcp.Implementation{Name: "testserver-client", Version: "0.0.1"}, nil)
	cs, err := client.Connect(context.Background(), &sdkmcp.StreamableClientTransport{Endpoint: ts.Server.URL + "/mcp"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { cs.Close() })
	return cs
}

// Call invokes a tool, fails the test on a tool error and decodes the result
// into out when out is not nil.
func Call(t *testing.T, cs *sdkmcp.ClientSession, name string, args map[string]any, out any) {
	t.Helper()
	if args == nil {
		args = map[string]any{}
	}
	res, err := cs.CallTool(context.Background(), &sdkmcp.CallToolParams{Name: name, Arguments: args})
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)
	text := res.Content[0].(*sdkmcp.TextContent).Text
	require.False(t, res.IsError, "%s failed: %s", name, text)
	if out != nil {
		require.NoError(t, json.Unmarshal([]byte(text), out))
	}
}
