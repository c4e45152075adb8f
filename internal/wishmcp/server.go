// Package wishmcp exposes the wishbook over the Model Context Protocol:
// wish CRUD, calendar-window projection and greeting generation as tools
// on a stdio server.
package wishmcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/thakurabhinav006-eng/wishbook-app-sub000/internal/calendar"
	"github.com/thakurabhinav006-eng/wishbook-app-sub000/internal/greeting"
	"github.com/thakurabhinav006-eng/wishbook-app-sub000/internal/store"
	"github.com/thakurabhinav006-eng/wishbook-app-sub000/internal/wish"
)

const (
	serverName    = "wishbook"
	serverVersion = "1.0.0"
)

// Server is the MCP server for wish management.
type Server struct {
	mcpServer *server.MCPServer
	store     *store.Store
	view      *calendar.View
	gen       greeting.Provider // may be nil; generate_greeting then reports unavailable
}

// NewServer creates the wishbook MCP server over the given collaborators.
func NewServer(st *store.Store, view *calendar.View, gen greeting.Provider) *Server {
	s := &Server{
		store: st,
		view:  view,
		gen:   gen,
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
	)

	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server for serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) registerTools() {
	// create_wish
	s.mcpServer.AddTool(
		mcp.NewTool("create_wish",
			mcp.WithDescription("Create a scheduled wish. The scheduled time is a wall-clock value with no timezone."),
			mcp.WithString("recipient_name", mcp.Required(), mcp.Description("Recipient name")),
			mcp.WithString("event_type", mcp.Required(), mcp.Description("Event type: birthday, anniversary, festival, custom")),
			mcp.WithString("event_name", mcp.Required(), mcp.Description("Event name, e.g. \"Ana's Birthday\"")),
			mcp.WithString("scheduled_time", mcp.Required(), mcp.Description("Wall-clock time, format 2006-01-02T15:04")),
			mcp.WithString("recurrence", mcp.Description("none, daily, weekly, monthly, yearly; legacy ordinals (1-4) and day intervals (1/7/30/365) are accepted")),
			mcp.WithString("platform", mcp.Description("Delivery platform: none, email, telegram (default: none)")),
			mcp.WithString("recipient_contact", mcp.Description("Recipient address, required for email and telegram")),
			mcp.WithNumber("reminder_days_before", mcp.Description("Reminder lead time in days: 0, 1 or 2")),
			mcp.WithBoolean("auto_send", mcp.Description("Send without manual approval")),
			mcp.WithString("content", mcp.Description("Greeting text to attach")),
		),
		s.handleCreateWish,
	)

	// list_wishes
	s.mcpServer.AddTool(
		mcp.NewTool("list_wishes",
			mcp.WithDescription("List stored wishes (base records only, never projected occurrences)"),
			mcp.WithString("status", mcp.Description("Filter by status: scheduled, sent, failed, or empty for all")),
		),
		s.handleListWishes,
	)

	// get_wish
	s.mcpServer.AddTool(
		mcp.NewTool("get_wish",
			mcp.WithDescription("Get a single wish by ID"),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Wish ID")),
		),
		s.handleGetWish,
	)

	// delete_wish
	s.mcpServer.AddTool(
		mcp.NewTool("delete_wish",
			mcp.WithDescription("Delete a wish permanently"),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Wish ID")),
		),
		s.handleDeleteWish,
	)

	// set_wish_status
	s.mcpServer.AddTool(
		mcp.NewTool("set_wish_status",
			mcp.WithDescription("Set a wish's lifecycle status (scheduled, sent, failed)"),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Wish ID")),
			mcp.WithString("status", mcp.Required(), mcp.Description("New status")),
		),
		s.handleSetStatus,
	)

	// calendar_window
	s.mcpServer.AddTool(
		mcp.NewTool("calendar_window",
			mcp.WithDescription("Project all wishes into a wall-clock window, expanding recurring wishes into their occurrences"),
			mcp.WithString("start", mcp.Required(), mcp.Description("Window start, 2006-01-02T15:04 or 2006-01-02")),
			mcp.WithString("end", mcp.Required(), mcp.Description("Window end, inclusive")),
		),
		s.handleCalendarWindow,
	)

	// generate_greeting
	s.mcpServer.AddTool(
		mcp.NewTool("generate_greeting",
			mcp.WithDescription("Generate greeting text for an occasion"),
			mcp.WithString("occasion", mcp.Required(), mcp.Description("Occasion, e.g. birthday")),
			mcp.WithString("recipient_name", mcp.Required(), mcp.Description("Recipient name")),
			mcp.WithString("tone", mcp.Description("Tone, e.g. warm, funny, formal")),
			mcp.WithString("extra_details", mcp.Description("Details to work into the greeting")),
			mcp.WithString("length", mcp.Description("short, medium or long")),
		),
		s.handleGenerateGreeting,
	)
}

func (s *Server) handleCreateWish(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scheduledStr := req.GetString("scheduled_time", "")
	scheduled, err := wish.ParseWallTime(scheduledStr)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Raw recurrence values are normalized here, at the boundary.
	rawRec := req.GetString("recurrence", "none")
	rec, known := wish.NormalizeRecurrence(rawRec)
	if !known {
		fmt.Fprintf(os.Stderr, "Warning: unrecognized recurrence %q, treating as non-repeating\n", rawRec)
	}

	platform := wish.Platform(req.GetString("platform", string(wish.PlatformNone)))

	w := wish.ScheduledWish{
		RecipientName:    req.GetString("recipient_name", ""),
		RecipientContact: req.GetString("recipient_contact", ""),
		Platform:         platform,
		EventType:        wish.EventType(req.GetString("event_type", "")),
		EventName:        req.GetString("event_name", ""),
		Scheduled:        scheduled,
		Recurrence:       rec,
		ReminderDays:     int(req.GetFloat("reminder_days_before", 0)),
		AutoSend:         req.GetBool("auto_send", false),
		Content:          req.GetString("content", ""),
		Status:           wish.StatusDraft,
	}

	created, err := s.store.CreateWish(ctx, w)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create wish: %v", err)), nil
	}

	output, _ := json.MarshalIndent(created, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleListWishes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	status := wish.Status(req.GetString("status", ""))

	wishes, err := s.store.ListWishes(ctx, status)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list wishes: %v", err)), nil
	}

	if len(wishes) == 0 {
		return mcp.NewToolResultText("No wishes found."), nil
	}

	output, _ := json.MarshalIndent(wishes, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleGetWish(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := toolID(req)
	if !ok {
		return mcp.NewToolResultError("id is required and must be a positive number"), nil
	}

	w, err := s.store.GetWish(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get wish: %v", err)), nil
	}

	output, _ := json.MarshalIndent(w, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleDeleteWish(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := toolID(req)
	if !ok {
		return mcp.NewToolResultError("id is required and must be a positive number"), nil
	}

	if err := s.store.DeleteWish(ctx, id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete wish: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Wish %d deleted.", id)), nil
}

func (s *Server) handleSetStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := toolID(req)
	if !ok {
		return mcp.NewToolResultError("id is required and must be a positive number"), nil
	}

	status := wish.Status(req.GetString("status", ""))
	switch status {
	case wish.StatusScheduled, wish.StatusSent, wish.StatusFailed:
	default:
		return mcp.NewToolResultError(fmt.Sprintf("invalid status %q (use scheduled, sent or failed)", status)), nil
	}

	if err := s.store.UpdateStatus(ctx, id, status); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to update status: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Wish %d is now %s.", id, status)), nil
}

func (s *Server) handleCalendarWindow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, err := wish.ParseWallTime(req.GetString("start", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid start: %v", err)), nil
	}
	end, err := wish.ParseWallTime(req.GetString("end", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid end: %v", err)), nil
	}

	occurrences, err := s.view.Range(ctx, start, end)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to project window: %v", err)), nil
	}

	if len(occurrences) == 0 {
		return mcp.NewToolResultText("No occurrences in this window."), nil
	}

	output, _ := json.MarshalIndent(occurrences, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleGenerateGreeting(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.gen == nil {
		return mcp.NewToolResultError("no greeting provider configured"), nil
	}

	resp, err := s.gen.Generate(ctx, greeting.Request{
		Occasion:      req.GetString("occasion", ""),
		RecipientName: req.GetString("recipient_name", ""),
		Tone:          req.GetString("tone", ""),
		ExtraDetails:  req.GetString("extra_details", ""),
		Length:        greeting.Length(req.GetString("length", "")),
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("greeting generation failed: %v", err)), nil
	}

	return mcp.NewToolResultText(resp.Text), nil
}

func toolID(req mcp.CallToolRequest) (int64, bool) {
	idFloat := req.GetFloat("id", -1)
	if idFloat < 0 {
		return 0, false
	}
	return int64(idFloat), true
}
