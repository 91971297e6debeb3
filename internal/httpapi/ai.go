package httpapi

import (
	"net/http"
	"strings"

	"github.com/internai/internai/internal/catalog"
	"github.com/internai/internai/internal/model"
)

type eligibilityInput struct {
	Job struct {
		Title       string `json:"title"`
		Company     string `json:"company"`
		Location    string `json:"location"`
		Description string `json:"description"`
	} `json:"job"`
	// UserSkills overrides the caller's profile skills when present.
	UserSkills *[]string `json:"userSkills"`
}

func (s *Server) eligibility(w http.ResponseWriter, r *http.Request) {
	var in eligibilityInput
	if err := decodeBody(r, eligibilitySchema, &in); err != nil {
		s.fail(w, r, "Job details are required", err)
		return
	}

	skills := s.callerSkills(r.Context())
	if in.UserSkills != nil {
		skills = *in.UserSkills
	}
	job := model.JobPosting{
		Title:       in.Job.Title,
		Company:     in.Job.Company,
		Location:    in.Job.Location,
		Description: in.Job.Description,
	}

	id, _ := identityFrom(r.Context())
	s.logger.Info("checking eligibility", "user", id.UserID, "job", job.Title, "skills", len(skills))

	report, err := s.advisor.Evaluate(r.Context(), skills, job)
	if err != nil {
		s.fail(w, r, "AI eligibility check error", err)
		return
	}
	jsonOK(w, report)
}

func (s *Server) roadmap(w http.ResponseWriter, r *http.Request) {
	var in struct {
		DreamJob string `json:"dreamJob"`
	}
	if err := decodeBody(r, roadmapSchema, &in); err != nil {
		s.fail(w, r, "Dream job title is required", err)
		return
	}

	out, err := s.advisor.Roadmap(r.Context(), s.callerSkills(r.Context()), in.DreamJob)
	if err != nil {
		s.fail(w, r, "AI roadmap generation error", err)
		return
	}
	jsonOK(w, out)
}

func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	var in struct {
		JDText string `json:"jdText"`
	}
	if err := decodeBody(r, analyzeSchema, &in); err != nil {
		s.fail(w, r, "JD text is required", err)
		return
	}

	out, err := s.advisor.AnalyzeJD(r.Context(), s.callerSkills(r.Context()), in.JDText)
	if err != nil {
		s.fail(w, r, "AI analysis error", err)
		return
	}
	jsonOK(w, out)
}

// questionsResponse is the interview question bank answer for one role.
type questionsResponse struct {
	Role             string                 `json:"role"`
	QuestionsByRound []model.InterviewRound `json:"questionsByRound"`
	TotalQuestions   int                    `json:"totalQuestions"`
}

func (s *Server) interviewQuestions(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Role string `json:"role"`
	}
	if err := decodeBody(r, questionSchema, &in); err != nil {
		s.fail(w, r, "Role is required", err)
		return
	}

	rounds := catalog.QuestionsByRound(in.Role)
	jsonOK(w, questionsResponse{
		Role:             strings.TrimSpace(in.Role),
		QuestionsByRound: rounds,
		TotalQuestions:   catalog.CountQuestions(rounds),
	})
}

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Message     string              `json:"message"`
		ChatHistory []model.ChatMessage `json:"chatHistory"`
	}
	if err := decodeBody(r, chatSchema, &in); err != nil {
		s.fail(w, r, "Message is required", err)
		return
	}

	reply, err := s.advisor.Chat(r.Context(), in.Message, in.ChatHistory)
	if err != nil {
		s.fail(w, r, "AI chat error", err)
		return
	}
	jsonOK(w, map[string]string{"text": reply})
}

// resourcesResponse is the curated bundle resolved for a requested role.
type resourcesResponse struct {
	Role      string               `json:"role"`
	Resources model.ResourceBundle `json:"resources"`
	Roles     []string             `json:"roles"`
}

func (s *Server) resources(w http.ResponseWriter, r *http.Request) {
	role := r.URL.Query().Get("role")
	jsonOK(w, resourcesResponse{
		Role:      catalog.MatchRole(role),
		Resources: catalog.ForRole(role),
		Roles:     catalog.Roles(),
	})
}
