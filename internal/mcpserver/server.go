// Package mcpserver exposes job search, eligibility and the curated catalog
// as MCP tools over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/internai/internai/internal/catalog"
	"github.com/internai/internai/internal/filter"
	"github.com/internai/internai/internal/linkcheck"
	"github.com/internai/internai/internal/model"
	"github.com/internai/internai/internal/search"
)

// Searcher answers live keyword searches.
type Searcher interface {
	LiveJobs(ctx context.Context, q model.SearchQuery) (search.Result, error)
}

// Evaluator scores a candidate's skills against a posting.
type Evaluator interface {
	Evaluate(ctx context.Context, skills []string, job model.JobPosting) (*model.EligibilityReport, error)
}

// Server wires the tools onto an MCP server.
type Server struct {
	mcp       *server.MCPServer
	searcher  Searcher
	evaluator Evaluator
}

// New registers every tool. version is reported during the MCP handshake.
func New(searcher Searcher, evaluator Evaluator, version string) *Server {
	s := &Server{
		mcp:       server.NewMCPServer("internai", version),
		searcher:  searcher,
		evaluator: evaluator,
	}
	s.registerLiveJobs()
	s.registerCheckEligibility()
	s.registerResourcesForRole()
	s.registerInterviewQuestions()
	s.registerSanitizeLink()
	return s
}

// ServeStdio blocks serving requests on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) registerLiveJobs() {
	tool := mcp.NewTool("live_jobs",
		mcp.WithDescription("Search live internship and job listings, optionally narrowed to an Indian state (remote postings always match)"),
	)
	tool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"keyword":  map[string]interface{}{"type": "string", "description": "Search keyword (default: internship)"},
			"location": map[string]interface{}{"type": "string", "description": "Location passed to the upstream search"},
			"state":    map[string]interface{}{"type": "string", "description": "Indian state to filter by"},
			"page":     map[string]interface{}{"type": "integer", "description": "Result page, starting at 1"},
		},
	}
	s.mcp.AddTool(tool, s.liveJobs)
}

func (s *Server) liveJobs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := arguments(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}

	q := model.SearchQuery{
		Keyword:  stringArg(args, "keyword"),
		Location: stringArg(args, "location"),
		Page:     1,
	}
	if v, ok := args["page"].(float64); ok {
		if v < 1 {
			return mcp.NewToolResultError("page must be a positive integer"), nil
		}
		q.Page = int(v)
	}
	state := stringArg(args, "state")
	if state != "" && !filter.ValidState(state) {
		return mcp.NewToolResultError(fmt.Sprintf("unknown state %q", state)), nil
	}

	res, err := s.searcher.LiveJobs(ctx, q)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to search jobs: %v", err)), nil
	}
	jobs := filter.Apply(filter.NewRegionFilter(state), res.Jobs)
	if len(jobs) == 0 {
		return mcp.NewToolResultText("No jobs found."), nil
	}
	return jsonResult(struct {
		Source string             `json:"source"`
		Cached bool               `json:"cached"`
		Jobs   []model.JobPosting `json:"jobs"`
	}{res.Source, res.Cached, jobs})
}

func (s *Server) registerCheckEligibility() {
	tool := mcp.NewTool("check_eligibility",
		mcp.WithDescription("Score a candidate's skills against a job and suggest a learning roadmap"),
	)
	tool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"skills":          map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}, "description": "The candidate's skills"},
			"title":           map[string]interface{}{"type": "string", "description": "Job title"},
			"company":         map[string]interface{}{"type": "string", "description": "Company name"},
			"description":     map[string]interface{}{"type": "string", "description": "Job description"},
			"required_skills": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}, "description": "Skills the job requires"},
		},
		Required: []string{"skills", "title"},
	}
	s.mcp.AddTool(tool, s.checkEligibility)
}

func (s *Server) checkEligibility(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := arguments(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}
	job := model.JobPosting{
		Title:          stringArg(args, "title"),
		Company:        stringArg(args, "company"),
		Description:    stringArg(args, "description"),
		RequiredSkills: stringsArg(args, "required_skills"),
	}
	if job.Title == "" {
		return mcp.NewToolResultError("missing required field: title"), nil
	}

	report, err := s.evaluator.Evaluate(ctx, stringsArg(args, "skills"), job)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to evaluate eligibility: %v", err)), nil
	}
	return jsonResult(report)
}

func (s *Server) registerResourcesForRole() {
	tool := mcp.NewTool("resources_for_role",
		mcp.WithDescription("Curated videos, courses, certifications and docs for a career role"),
	)
	tool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"role": map[string]interface{}{"type": "string", "description": "Career role, e.g. Data Scientist"},
		},
	}
	s.mcp.AddTool(tool, s.resourcesForRole)
}

func (s *Server) resourcesForRole(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := arguments(request)
	role := stringArg(args, "role")
	return jsonResult(struct {
		Role      string               `json:"role"`
		Resources model.ResourceBundle `json:"resources"`
	}{catalog.MatchRole(role), catalog.ForRole(role)})
}

func (s *Server) registerInterviewQuestions() {
	tool := mcp.NewTool("interview_questions",
		mcp.WithDescription("Practice interview questions for a role, grouped by round"),
	)
	tool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"role": map[string]interface{}{"type": "string", "description": "Career role"},
		},
		Required: []string{"role"},
	}
	s.mcp.AddTool(tool, s.interviewQuestions)
}

func (s *Server) interviewQuestions(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := arguments(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}
	role := stringArg(args, "role")
	if role == "" {
		return mcp.NewToolResultError("missing required field: role"), nil
	}
	rounds := catalog.QuestionsByRound(role)
	return jsonResult(struct {
		Role           string                 `json:"role"`
		Rounds         []model.InterviewRound `json:"questionsByRound"`
		TotalQuestions int                    `json:"totalQuestions"`
	}{role, rounds, catalog.CountQuestions(rounds)})
}

func (s *Server) registerSanitizeLink() {
	tool := mcp.NewTool("sanitize_link",
		mcp.WithDescription("Rewrite a placeholder or unsafe learning link into a working https URL"),
	)
	tool.InputSchema = mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"name": map[string]interface{}{"type": "string", "description": "Resource name, used for the fallback search"},
			"url":  map[string]interface{}{"type": "string", "description": "Link to check"},
			"kind": map[string]interface{}{"type": "string", "description": "youtube, certification or resource (default)"},
		},
		Required: []string{"name"},
	}
	s.mcp.AddTool(tool, s.sanitizeLink)
}

func (s *Server) sanitizeLink(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := arguments(request)
	if !ok {
		return mcp.NewToolResultError("invalid arguments format"), nil
	}
	res := model.Resource{Name: stringArg(args, "name"), URL: stringArg(args, "url")}
	if res.Name == "" {
		return mcp.NewToolResultError("missing required field: name"), nil
	}
	return mcp.NewToolResultText(linkcheck.Sanitize(res, linkcheck.ParseKind(stringArg(args, "kind"))).URL), nil
}

func arguments(request mcp.CallToolRequest) (map[string]interface{}, bool) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	return args, ok
}

func stringArg(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return strings.TrimSpace(v)
}

// stringsArg reads a JSON array of strings, skipping blanks and non-strings.
func stringsArg(args map[string]interface{}, key string) []string {
	raw, _ := args[key].([]interface{})
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
			out = append(out, strings.TrimSpace(s))
		}
	}
	return out
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
