// ABOUTME: MCP resource implementations for the training log.
// ABOUTME: Provides ndl://sessions/recent and ndl://summary for the default user.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/agranty/no-days-lost-sub000/internal/analytics"
	"github.com/agranty/no-days-lost-sub000/internal/models"
)

const (
	recentURI  = "ndl://sessions/recent"
	summaryURI = "ndl://summary"

	recentSessions = 10
)

func (s *Server) registerResources() {
	// ndl://sessions/recent - last 10 sessions with their sets
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         recentURI,
		Name:        "Recent Sessions",
		Description: "Last 10 workout sessions with their sets",
		MIMEType:    "application/json",
	}, s.handleRecentResource)

	// ndl://summary - streaks, this week, and latest body weight
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         summaryURI,
		Name:        "Training Summary",
		Description: "Streaks, this week's training, and the latest body weight",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)
}

// Resource handlers

func (s *Server) handleRecentResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	// an empty default user lists every user's sessions
	sessions, err := s.repo.ListSessions(ctx, s.user, models.DateRange{})
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(sessions) > recentSessions {
		sessions = sessions[:recentSessions]
	}

	full := make([]*models.WorkoutSession, 0, len(sessions))
	for _, sess := range sessions {
		withSets, err := s.repo.GetSessionWithSets(sess.ID.String())
		if err != nil {
			s.log.WithError(err).WithField("session", sess.ID).Warn("skipping session in recent resource")
			continue
		}
		full = append(full, withSets)
	}

	return jsonResource(recentURI, map[string]interface{}{
		"sessions": full,
		"count":    len(full),
	})
}

func (s *Server) handleSummaryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	if s.user == "" {
		return jsonResource(summaryURI, map[string]interface{}{
			"message": "No default user configured.",
		})
	}

	streaks, err := s.svc.Streaks(ctx, s.user)
	if err != nil {
		return nil, err
	}
	trend, err := s.svc.BodyWeightTrend(ctx, s.user)
	if err != nil {
		return nil, err
	}

	weekStart := analytics.WeekStart(s.svc.Today())
	thisWeek, err := s.repo.ListSessions(ctx, s.user, models.DateRange{From: &weekStart})
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	result := map[string]interface{}{
		"user":    s.user,
		"today":   analytics.FormatDay(s.svc.Today()),
		"streaks": streaks,
		"this_week": map[string]interface{}{
			"week_start": analytics.FormatDay(weekStart),
			"sessions":   len(thisWeek),
		},
	}
	if trend.Latest != nil {
		result["body_weight"] = map[string]interface{}{
			"latest":          trend.Latest.Weight,
			"rolling_average": trend.Latest.RollingAverage,
			"unit":            trend.Unit,
			"date":            analytics.FormatDay(trend.Latest.Date),
		}
	}

	return jsonResource(summaryURI, result)
}

func jsonResource(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
