package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/ursazoo/compdoc/pkg/catalog"
	"github.com/ursazoo/compdoc/pkg/discovery"
	"github.com/ursazoo/compdoc/pkg/pipeline"
)

// --- response types ---

type fileResponse struct {
	Path      string   `json:"path"`
	Component string   `json:"component,omitempty"`
	Output    string   `json:"output,omitempty"`
	Success   bool     `json:"success"`
	Error     string   `json:"error,omitempty"`
	Warnings  []string `json:"warnings,omitempty"`
}

type runResponse struct {
	Success    bool           `json:"success"`
	Message    string         `json:"message"`
	Processed  int            `json:"processed"`
	Failed     int            `json:"failed"`
	IndexError string         `json:"index_error,omitempty"`
	StageError string         `json:"stage_error,omitempty"`
	Files      []fileResponse `json:"files"`
}

type searchResponse struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	MatchReason string `json:"match_reason"`
}

// --- generation ---

func (s *Server) handleGenerateAll(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := s.gen.All()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return reportResult(report, fmt.Sprintf("processed %d component files", len(report.Files)))
}

func (s *Server) handleGenerateComponent(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("componentName")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	report, err := s.gen.Component(name)
	if err != nil {
		if errors.Is(err, discovery.ErrComponentNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("component not found: %s", name)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return reportResult(report, fmt.Sprintf("generated documentation for %s", name))
}

func (s *Server) handleGenerateStaged(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	report, err := s.gen.Staged()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	msg := fmt.Sprintf("processed %d staged component files", len(report.Files))
	if len(report.Files) == 0 {
		msg = "no staged component files, index regenerated"
	}
	return reportResult(report, msg)
}

// --- lookup ---

func (s *Server) handleGetComponentDoc(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("componentName")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	doc, err := s.gen.Document(name)
	if err != nil {
		if errors.Is(err, discovery.ErrComponentNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("no documentation for component %q; generate it first", name)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(doc), nil
}

func (s *Server) handleListComponents(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	qs, err := s.gen.Query()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	category := req.GetString("category", "")
	if category != "" && !knownCategory(category) {
		return mcp.NewToolResultError(fmt.Sprintf("unknown category: %s", category)), nil
	}
	entries := qs.ListEntries(catalog.Category(category), req.GetString("keyword", ""))
	if entries == nil {
		entries = []catalog.Entry{}
	}
	return jsonResult(entries)
}

func (s *Server) handleSearchComponents(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	qs, err := s.gen.Query()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results := []searchResponse{}
	for _, r := range qs.Search(query) {
		results = append(results, searchResponse{
			Name:        r.Entry.Name,
			Category:    string(r.Entry.Category),
			Description: r.Entry.Summary(),
			MatchReason: r.MatchReason,
		})
	}
	return jsonResult(results)
}

// --- helpers ---

func knownCategory(name string) bool {
	for _, c := range catalog.Order {
		if string(c) == name {
			return true
		}
	}
	return false
}

// reportResult converts a run report into a tool result. A failed run is
// reported with IsError set and the full report as content.
func reportResult(report *pipeline.Report, message string) (*mcp.CallToolResult, error) {
	resp := runResponse{
		Success:   report.Success(),
		Message:   message,
		Processed: report.Processed,
		Failed:    report.Failed,
		Files:     make([]fileResponse, 0, len(report.Files)),
	}
	if report.IndexErr != nil {
		resp.IndexError = report.IndexErr.Error()
	}
	if report.StageErr != nil {
		resp.StageError = report.StageErr.Error()
	}
	for _, f := range report.Files {
		fr := fileResponse{
			Path:      f.Path,
			Component: f.Component,
			Output:    f.Output,
			Success:   f.Success,
			Warnings:  f.Warnings,
		}
		if f.Err != nil {
			fr.Error = f.Err.Error()
		}
		resp.Files = append(resp.Files, fr)
	}

	result, err := jsonResult(resp)
	if err != nil {
		return nil, err
	}
	result.IsError = !resp.Success
	return result, nil
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
