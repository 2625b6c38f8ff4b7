// ABOUTME: MCP server setup for the ndl training log.
// ABOUTME: Wraps the MCP server with storage and the analytics service.
package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/sirupsen/logrus"

	"github.com/agranty/no-days-lost-sub000/internal/analytics"
	"github.com/agranty/no-days-lost-sub000/internal/storage"
)

// Version is reported to MCP clients during initialization.
const Version = "1.0.0"

// errNoUser is returned by tools when neither the call nor the server names a user.
var errNoUser = errors.New("no user: pass user or configure a default")

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	svc       *analytics.Service
	user      string
	log       *logrus.Entry
}

// NewServer creates a new MCP server. user is the default identity for tools
// called without one and may be empty.
func NewServer(repo storage.Repository, svc *analytics.Service, user string, log *logrus.Logger) (*Server, error) {
	if repo == nil || svc == nil {
		return nil, errors.New("mcp server requires storage and analytics")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "ndl",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		svc:       svc,
		user:      user,
		log:       log.WithField("component", "mcp"),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.log.WithField("default_user", s.user).Info("mcp server listening on stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// resolveUser picks the call's user, falling back to the server default.
func (s *Server) resolveUser(user string) (string, error) {
	if user != "" {
		return user, nil
	}
	if s.user != "" {
		return s.user, nil
	}
	return "", errNoUser
}
