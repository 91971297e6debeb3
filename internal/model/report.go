package model

// EligibilityThreshold is the minimum score at which a candidate is eligible.
const EligibilityThreshold = 70

// Resource is a named learning link.
type Resource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Certification is a credential suggested inside a roadmap phase.
type Certification struct {
	Name     string `json:"name"`
	Provider string `json:"provider,omitempty"`
	URL      string `json:"url"`
	IsFree   bool   `json:"isFree"`
}

// ResourceBundle is the curated set of links for one career role.
type ResourceBundle struct {
	YouTube        []Resource `json:"youtube"`
	Courses        []Resource `json:"courses"`
	Certifications []Resource `json:"certifications"`
	Documentation  []Resource `json:"documentation"`
}

// Phase is one ordered step of a learning roadmap.
type Phase struct {
	Title          string          `json:"phase"`
	Skills         []string        `json:"skills"`
	Tasks          []string        `json:"tasks"`
	Playlist       *Resource       `json:"youtubePlaylist,omitempty"`
	Resources      []Resource      `json:"resources"`
	Certifications []Certification `json:"certifications"`
}

// Roadmap is advisory LLM output merged with the curated bundle for the role.
type Roadmap struct {
	Title    string          `json:"title"`
	Duration string          `json:"duration"`
	Phases   []Phase         `json:"steps"`
	Curated  *ResourceBundle `json:"curatedResources,omitempty"`
}

// InterviewTip is a practice question suggested alongside an eligibility report.
type InterviewTip struct {
	Question   string `json:"question"`
	Category   string `json:"category"`
	Difficulty string `json:"difficulty"`
	Tips       string `json:"tips"`
}

// EligibilityReport compares a candidate's skills against a posting. It is
// derived per request and never persisted.
type EligibilityReport struct {
	Score              int            `json:"eligibilityScore"`
	IsEligible         bool           `json:"isEligible"`
	MatchedSkills      []string       `json:"matchedSkills"`
	MissingSkills      []string       `json:"missingSkills"`
	RequiredSkills     []string       `json:"requiredSkills"`
	Summary            string         `json:"summary"`
	InterviewQuestions []InterviewTip `json:"interviewQuestions,omitempty"`
	Roadmap            *Roadmap       `json:"roadmap,omitempty"`
}

// MonthPlan is one stage of a dream-job roadmap.
type MonthPlan struct {
	Month       string   `json:"month"`
	Topics      []string `json:"topics"`
	ActionItems []string `json:"actionItems"`
}

// CareerRoadmap is the multi-month plan toward a target role.
type CareerRoadmap struct {
	DreamJob             string      `json:"dreamJob"`
	Phases               []MonthPlan `json:"phases"`
	RecommendedResources []Resource  `json:"recommendedResources"`
}

// JDAnalysis is the result of matching a pasted job description.
type JDAnalysis struct {
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	Location        string   `json:"location"`
	MatchPercentage int      `json:"matchPercentage"`
	MatchedSkills   []string `json:"matchedSkills"`
	MissingSkills   []string `json:"missingSkills"`
	IsEligible      bool     `json:"isEligible"`
	Advice          string   `json:"advice"`
}

// InterviewQuestion is an entry of the static interview question bank.
type InterviewQuestion struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Difficulty string `json:"difficulty"`
	Round      string `json:"round"`
	Type       string `json:"type"`
}

// InterviewRound groups bank questions by interview stage.
type InterviewRound struct {
	Name      string              `json:"round"`
	Questions []InterviewQuestion `json:"questions"`
}

// ChatMessage is one turn of a career-coach conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
