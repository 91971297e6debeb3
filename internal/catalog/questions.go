package catalog

import "github.com/internai/internai/internal/model"

// Interview rounds in presentation order.
const (
	RoundHR         = "HR Round"
	RoundBehavioral = "Behavioral"
	RoundTech1      = "Technical Round 1"
	RoundTech2      = "Technical Round 2"
	RoundTech3      = "Technical Round 3"
	RoundFinal      = "Final Round"
	roundGeneral    = "General"
)

var roundOrder = []string{RoundHR, RoundBehavioral, RoundTech1, RoundTech2, RoundTech3, RoundFinal}

// Question categories.
const (
	TypeHR         = "hr"
	TypeBehavioral = "behavioral"
	TypeTechnical  = "technical"
)

type question struct {
	text, answer, difficulty, round string
}

type questionBank struct {
	hr, behavioral, technical []question
}

type roleQuestions struct {
	role string
	bank questionBank
}

var commonHR = []question{
	{"Tell us about yourself.", "Give a two-minute story: what you study, the projects you are proudest of, and why this role is the natural next step.", "Easy", RoundHR},
	{"Why do you want to intern with us?", "Name something specific about the product or team, connect it to what you want to learn, and show you researched the company.", "Easy", RoundHR},
}

// Declaration order matters: fuzzy lookups return the first overlapping role.
var questionBanks = []roleQuestions{
	{"Visual Designer", questionBank{
		hr: append(commonHR[:len(commonHR):len(commonHR)],
			question{"What are your salary expectations?", "Quote a researched range for entry-level design roles in the city and say you are flexible for the right learning opportunity.", "Medium", RoundHR},
		),
		behavioral: []question{
			{"Describe a time a stakeholder rejected your design.", "Use STAR. Show that you listened for the underlying goal, proposed alternatives, and shipped something both sides accepted.", "Hard", RoundBehavioral},
			{"How do you keep up with design trends?", "Mention the communities, newsletters and courses you follow, and one recent trend you tried in a project.", "Medium", RoundBehavioral},
		},
		technical: []question{
			{"Walk us through your design process.", "Research, define, ideate, prototype, test, iterate. Tie each step to an artifact from your portfolio.", "Medium", RoundTech1},
			{"How do you build an accessible color palette?", "Check WCAG contrast ratios, avoid color as the only signal, and test with simulators for color blindness.", "Medium", RoundTech2},
			{"How do you hand off designs to developers?", "Shared components, tokens, annotated specs in Figma, and a review session before implementation starts.", "Medium", RoundTech3},
			{"Present one portfolio piece end to end.", "Frame the problem, constraints, options you discarded, the final design and the measured outcome.", "Hard", RoundFinal},
		},
	}},
	{"Full Stack Developer", questionBank{
		hr: commonHR,
		behavioral: []question{
			{"Tell us about a bug that took you the longest to fix.", "Explain how you narrowed it down, what tools you used, and what you changed so it would not happen again.", "Medium", RoundBehavioral},
			{"How do you handle a deadline you cannot meet?", "Flag it early, propose a reduced scope, and agree on what ships first.", "Medium", RoundBehavioral},
		},
		technical: []question{
			{"What happens when you type a URL into the browser?", "DNS lookup, TCP and TLS handshakes, HTTP request, server processing, response, parsing, rendering.", "Medium", RoundTech1},
			{"REST versus GraphQL: when would you pick each?", "REST for simple resource-oriented APIs and caching, GraphQL when clients need flexible shapes and fewer round trips.", "Medium", RoundTech1},
			{"How would you store sessions for a horizontally scaled app?", "Stateless signed tokens or a shared store such as Redis; never process-local memory.", "Hard", RoundTech2},
			{"Design a URL shortener.", "Key generation, storage choice, redirects with caching, analytics, and rate limiting against abuse.", "Hard", RoundTech3},
			{"Where do you see your stack skills in two years?", "Pick a depth area on top of breadth, and name how this internship helps you get there.", "Easy", RoundFinal},
		},
	}},
	{"Frontend Developer", questionBank{
		hr: commonHR,
		behavioral: []question{
			{"Describe a UI you rebuilt after user feedback.", "Say what the feedback was, how you validated it, and the metric that improved.", "Medium", RoundBehavioral},
		},
		technical: []question{
			{"Explain the virtual DOM and reconciliation.", "React builds a tree in memory, diffs it against the previous render, and applies the minimal set of DOM changes.", "Medium", RoundTech1},
			{"How do you debounce a search input?", "Delay the request until typing pauses, and drop responses that belong to an older query.", "Medium", RoundTech2},
			{"How would you improve a slow page load?", "Measure first, then split bundles, lazy-load below the fold, compress images, and cache static assets.", "Hard", RoundTech3},
		},
	}},
	{"Backend Developer", questionBank{
		hr: commonHR,
		behavioral: []question{
			{"Tell us about an outage you were involved in.", "Cover detection, mitigation, root cause and the follow-up that prevents a repeat.", "Hard", RoundBehavioral},
		},
		technical: []question{
			{"What is database indexing and what does it cost?", "Indexes speed up reads by keeping sorted structures, at the price of slower writes and extra storage.", "Medium", RoundTech1},
			{"How would you cache an expensive third-party API?", "Key on normalized parameters, set a TTL that matches data freshness, and collapse concurrent misses.", "Medium", RoundTech2},
			{"How do you make a payment endpoint idempotent?", "Require an idempotency key, store the first result, and return it for retries.", "Hard", RoundTech3},
		},
	}},
	{"Data Scientist", questionBank{
		hr: commonHR,
		behavioral: []question{
			{"Explain a model result to a non-technical audience.", "Lead with the decision it supports, use one chart, and state the uncertainty plainly.", "Medium", RoundBehavioral},
		},
		technical: []question{
			{"What is the bias-variance tradeoff?", "Simple models underfit with high bias; complex models overfit with high variance; validation picks the balance.", "Medium", RoundTech1},
			{"How do you handle missing values?", "Understand why they are missing, then drop, impute, or model missingness explicitly.", "Easy", RoundTech1},
			{"Precision or recall for fraud detection?", "Usually recall, since missed fraud is costly, tuned against the operational cost of false alarms.", "Hard", RoundTech2},
		},
	}},
	{"Product Manager", questionBank{
		hr: commonHR,
		behavioral: []question{
			{"Tell us about a time you said no to a feature request.", "Explain the evidence you used, how you communicated it, and what you offered instead.", "Medium", RoundBehavioral},
		},
		technical: []question{
			{"How would you prioritize a backlog?", "Score by impact, confidence and effort, align with the quarter's goal, and revisit as data arrives.", "Medium", RoundTech1},
			{"Which metrics would you track for a job board?", "Activation, searches per session, apply rate, and retention of students who applied.", "Medium", RoundTech2},
			{"Pitch one improvement to our product.", "Name the user problem, the smallest experiment that tests it, and how you would measure success.", "Hard", RoundFinal},
		},
	}},
}

// QuestionsByRound returns the bank for role grouped into interview rounds in
// fixed order, omitting empty rounds. The role lookup follows ForRole.
func QuestionsByRound(role string) []model.InterviewRound {
	i := lookup(role, len(questionBanks), func(i int) string { return questionBanks[i].role })
	if i < 0 {
		for j, q := range questionBanks {
			if q.role == DefaultRole {
				i = j
			}
		}
	}
	bank := questionBanks[i].bank

	grouped := make(map[string][]model.InterviewQuestion)
	var extra []string
	add := func(qs []question, typ string) {
		for _, q := range qs {
			round := q.round
			if round == "" {
				round = roundGeneral
			}
			if !isKnownRound(round) && len(grouped[round]) == 0 {
				extra = append(extra, round)
			}
			grouped[round] = append(grouped[round], model.InterviewQuestion{
				Question:   q.text,
				Answer:     q.answer,
				Difficulty: q.difficulty,
				Round:      round,
				Type:       typ,
			})
		}
	}
	add(bank.hr, TypeHR)
	add(bank.behavioral, TypeBehavioral)
	add(bank.technical, TypeTechnical)

	var rounds []model.InterviewRound
	for _, name := range append(append([]string(nil), roundOrder...), extra...) {
		if qs := grouped[name]; len(qs) > 0 {
			rounds = append(rounds, model.InterviewRound{Name: name, Questions: qs})
		}
	}
	return rounds
}

// CountQuestions totals the questions across rounds.
func CountQuestions(rounds []model.InterviewRound) int {
	n := 0
	for _, r := range rounds {
		n += len(r.Questions)
	}
	return n
}

func isKnownRound(name string) bool {
	for _, r := range roundOrder {
		if r == name {
			return true
		}
	}
	return false
}
