// Package browse is the terminal job browser: a role picker, a spinner for
// the first fetch and a split-pane list of live listings with a debounced
// keyword box, eligibility checks and curated resources.
package browse

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/internai/internai/internal/catalog"
	"github.com/internai/internai/internal/filter"
	"github.com/internai/internai/internal/model"
	"github.com/internai/internai/internal/search"
)

// DefaultDebounce is how long typing must pause before a search is issued.
const DefaultDebounce = 800 * time.Millisecond

const (
	searchTimeout = 60 * time.Second
	keywordField  = "keyword"
)

// Lines per job item in the list view (title + subtitle + blank separator).
const jobItemHeight = 3

type viewState int

const (
	viewList viewState = iota
	viewDetail
)

var (
	activeBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("39"))

	inactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	activeHeaderStyle = headerStyle.
				Foreground(lipgloss.Color("39"))

	inactiveHeaderStyle = headerStyle.
				Foreground(lipgloss.Color("240"))

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	jobTitleStyle = lipgloss.NewStyle().
			Bold(true)

	jobSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	selectedJobTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("24"))

	selectedJobSubtitleStyle = lipgloss.NewStyle().
					Foreground(lipgloss.Color("252")).
					Background(lipgloss.Color("24"))

	detailLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Width(16)

	detailValueStyle = lipgloss.NewStyle()

	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				MarginBottom(1)

	dividerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	bodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	goodStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	badStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// Searcher answers live keyword searches.
type Searcher interface {
	LiveJobs(ctx context.Context, q model.SearchQuery) (search.Result, error)
}

// Evaluator scores a candidate's skills against a posting.
type Evaluator interface {
	Evaluate(ctx context.Context, skills []string, job model.JobPosting) (*model.EligibilityReport, error)
}

// Options configures a browsing session.
type Options struct {
	Searcher  Searcher
	Evaluator Evaluator // nil disables eligibility checks
	Skills    []string
	Region    string // Indian state for the right pane; empty shows everything
	Location  string // passed through to the upstream search
	Debounce  time.Duration
}

// debounceMsg fires once typing has paused; it carries the token issued for
// the keystroke that scheduled it.
type debounceMsg struct {
	token   uint64
	keyword string
}

// resultsMsg is sent when an async search completes.
type resultsMsg struct {
	token  uint64
	result search.Result
	err    error
}

// eligibilityMsg is sent when an async eligibility check completes.
type eligibilityMsg struct {
	jobID  string
	report *model.EligibilityReport
	err    error
}

// pane is one scrollable job list.
type pane struct {
	jobs   []model.JobPosting
	cursor int
	vp     viewport.Model
}

func (p *pane) reset(jobs []model.JobPosting) {
	p.jobs = jobs
	p.cursor = 0
	p.vp.SetYOffset(0)
}

func (p *pane) move(delta int) {
	p.cursor = clamp(p.cursor+delta, 0, max(len(p.jobs)-1, 0))
}

// scrollToCursor keeps the selected item inside the viewport.
func (p *pane) scrollToCursor() {
	top := p.cursor * jobItemHeight
	bottom := top + jobItemHeight - 1
	switch {
	case top < p.vp.YOffset:
		p.vp.SetYOffset(top)
	case bottom >= p.vp.YOffset+p.vp.Height:
		p.vp.SetYOffset(bottom - p.vp.Height + 1)
	}
}

func (p *pane) selected() (model.JobPosting, bool) {
	if len(p.jobs) == 0 {
		return model.JobPosting{}, false
	}
	return p.jobs[p.cursor], true
}

const (
	paneAll = iota
	paneRegion
)

type browseModel struct {
	opts   Options
	seq    *search.Sequencer
	region *filter.RegionFilter

	query     textinput.Model
	searching bool
	searchErr string
	source    string
	cached    bool

	panes  [2]pane
	active int
	width  int
	height int
	ready  bool

	view            viewState
	detailJob       model.JobPosting
	detailViewport  viewport.Model
	showDescription bool
	showResources   bool

	evalLoading bool
	evalError   string
	reports     map[string]*model.EligibilityReport

	wantQuit bool
}

func newBrowseModel(initial search.Result, keyword string, opts Options) browseModel {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	ti := textinput.New()
	ti.Placeholder = search.DefaultKeyword
	ti.Prompt = "Search: "
	ti.CharLimit = 120
	ti.SetValue(keyword)

	m := browseModel{
		opts:    opts,
		seq:     search.NewSequencer(),
		region:  filter.NewRegionFilter(opts.Region),
		query:   ti,
		reports: make(map[string]*model.EligibilityReport),
	}
	m.setResult(initial)
	return m
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		if m.view == viewDetail {
			m.detailViewport.Width = m.width - 4
			m.detailViewport.Height = m.height - 4
			m.detailViewport.SetContent(m.renderDetail())
		}
		return m, nil

	case debounceMsg:
		if !m.seq.IsLatest(keywordField, msg.token) {
			return m, nil
		}
		m.searching = true
		m.searchErr = ""
		return m, m.searchCmd(msg.token, msg.keyword)

	case resultsMsg:
		// Only the newest keyword may replace what is on screen.
		if !m.seq.IsLatest(keywordField, msg.token) {
			return m, nil
		}
		m.searching = false
		if msg.err != nil {
			m.searchErr = fmt.Sprintf("search failed: %v", msg.err)
			return m, nil
		}
		m.searchErr = ""
		m.setResult(msg.result)
		m.recalcContent()
		return m, nil

	case eligibilityMsg:
		m.evalLoading = false
		if msg.err != nil {
			m.evalError = fmt.Sprintf("eligibility check failed: %v", msg.err)
		} else {
			m.evalError = ""
			m.reports[msg.jobID] = msg.report
		}
		m.detailViewport.SetContent(m.renderDetail())
		return m, nil

	case tea.KeyMsg:
		if m.view == viewDetail {
			return m.updateDetailView(msg)
		}
		if m.query.Focused() {
			return m.updateSearchInput(msg)
		}
		return m.updateListView(msg)
	}

	return m, nil
}

func (m browseModel) updateSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.wantQuit = true
		return m, tea.Quit
	case "enter", "esc", "tab":
		m.query.Blur()
		return m, nil
	}

	before := m.query.Value()
	var cmd tea.Cmd
	m.query, cmd = m.query.Update(msg)
	if m.query.Value() == before {
		return m, cmd
	}
	token := m.seq.Next(keywordField)
	return m, tea.Batch(cmd, debounceCmd(token, m.query.Value(), m.opts.Debounce))
}

func debounceCmd(token uint64, keyword string, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return debounceMsg{token: token, keyword: keyword}
	})
}

func (m browseModel) searchCmd(token uint64, keyword string) tea.Cmd {
	searcher := m.opts.Searcher
	q := model.SearchQuery{Keyword: keyword, Location: m.opts.Location, Page: 1}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()
		res, err := searcher.LiveJobs(ctx, q)
		return resultsMsg{token: token, result: res, err: err}
	}
}

func (m *browseModel) setResult(res search.Result) {
	all := append([]model.JobPosting(nil), res.Jobs...)
	sortJobsByDate(all)
	m.panes[paneAll].reset(all)
	m.panes[paneRegion].reset(filter.Apply(m.region, all))
	m.source = res.Source
	m.cached = res.Cached
}

func (m browseModel) updateListView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.wantQuit = true
		return m, tea.Quit
	case "esc", "b":
		m.wantQuit = false
		return m, tea.Quit
	case "/":
		return m, m.query.Focus()
	case "tab", "left", "right":
		m.active = 1 - m.active
		m.recalcContent()
		return m, nil
	case "up", "k", "down", "j":
		delta := 1
		if k := msg.String(); k == "up" || k == "k" {
			delta = -1
		}
		p := &m.panes[m.active]
		p.move(delta)
		m.recalcContent()
		p.scrollToCursor()
		return m, nil
	case "enter":
		return m.openDetailView()
	}

	// pgup/pgdn/home/end scroll the active pane.
	var cmd tea.Cmd
	m.panes[m.active].vp, cmd = m.panes[m.active].vp.Update(msg)
	return m, cmd
}

func (m browseModel) updateDetailView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.wantQuit = true
		return m, tea.Quit
	case "esc", "backspace":
		m.view = viewList
		return m, nil
	case "o":
		if m.detailJob.Link != "" {
			openURL(m.detailJob.Link)
		}
		return m, nil
	case "d":
		if m.detailJob.Description != "" {
			m.showDescription = !m.showDescription
			m.detailViewport.SetContent(m.renderDetail())
			m.detailViewport.SetYOffset(0)
		}
		return m, nil
	case "r":
		m.showResources = !m.showResources
		m.detailViewport.SetContent(m.renderDetail())
		return m, nil
	case "e":
		if m.opts.Evaluator != nil && !m.evalLoading && m.reports[m.detailJob.ID] == nil {
			m.evalLoading = true
			m.evalError = ""
			m.detailViewport.SetContent(m.renderDetail())
			return m, m.evaluateCmd(m.detailJob)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

func (m browseModel) evaluateCmd(job model.JobPosting) tea.Cmd {
	evaluator := m.opts.Evaluator
	skills := m.opts.Skills
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
		defer cancel()
		report, err := evaluator.Evaluate(ctx, skills, job)
		return eligibilityMsg{jobID: job.ID, report: report, err: err}
	}
}

func (m browseModel) openDetailView() (tea.Model, tea.Cmd) {
	job, ok := m.panes[m.active].selected()
	if !ok {
		return m, nil
	}

	m.view = viewDetail
	m.detailJob = job
	m.evalError = ""
	m.showDescription = false
	m.showResources = false
	m.detailViewport = viewport.New(m.width-4, m.height-4)
	m.detailViewport.SetContent(m.renderDetail())
	return m, nil
}

func (m *browseModel) recalcLayout() {
	// 2 border chars per pane + 1 gap between panes.
	paneWidth := max((m.width-5)/2, 20)

	// Search box (1) + header (1) + border top/bottom (2) + status bar (1).
	paneHeight := max(m.height-5, 5)

	for i := range m.panes {
		if !m.ready {
			m.panes[i].vp = viewport.New(paneWidth, paneHeight)
			continue
		}
		m.panes[i].vp.Width = paneWidth
		m.panes[i].vp.Height = paneHeight
	}
	m.ready = true
	m.query.Width = max(m.width-12, 10)

	m.recalcContent()
}

func (m *browseModel) recalcContent() {
	for i := range m.panes {
		p := &m.panes[i]
		p.vp.SetContent(renderJobs(p.jobs, p.cursor, m.active == i))
	}
}

func (m browseModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.view == viewDetail {
		return m.viewDetail()
	}
	return m.viewList()
}

func (m browseModel) viewList() string {
	paneWidth := m.panes[paneAll].vp.Width

	regionLabel := "All regions"
	if m.opts.Region != "" {
		regionLabel = "In " + m.opts.Region
	}
	titles := [2]string{
		fmt.Sprintf(" Live Jobs (%d)", len(m.panes[paneAll].jobs)),
		fmt.Sprintf(" %s (%d)", regionLabel, len(m.panes[paneRegion].jobs)),
	}

	var headers, bodies [2]string
	for i := range m.panes {
		hs, bs := inactiveHeaderStyle, inactiveBorderStyle
		if i == m.active {
			hs, bs = activeHeaderStyle, activeBorderStyle
		}
		headers[i] = lipgloss.NewStyle().Width(paneWidth + 2).Render(hs.Render(titles[i]))
		bodies[i] = bs.Width(paneWidth).Render(m.panes[i].vp.View())
	}

	searchRow := m.query.View()
	switch {
	case m.searching:
		searchRow += hintStyle.Render("  searching...")
	case m.searchErr != "":
		searchRow += "  " + badStyle.Render("⚠ "+m.searchErr)
	}

	origin := m.source
	if m.cached {
		origin += " (cached)"
	}
	statusText := fmt.Sprintf(" source: %s    / search  ←/→/Tab switch  ↑/↓ cursor  Enter detail  Esc back  q quit", origin)

	return strings.Join([]string{
		searchRow,
		lipgloss.JoinHorizontal(lipgloss.Top, headers[0], " ", headers[1]),
		lipgloss.JoinHorizontal(lipgloss.Top, bodies[0], " ", bodies[1]),
		statusBarStyle.Width(m.width).Render(statusText),
	}, "\n")
}

func (m browseModel) viewDetail() string {
	title := detailTitleStyle.Render("Job Details")
	if m.evalLoading {
		title += "  (checking eligibility...)"
	}

	content := activeBorderStyle.Width(m.width - 2).Render(m.detailViewport.View())

	keys := []string{"o open link"}
	if m.detailJob.Description != "" {
		keys = append(keys, "d description")
	}
	if m.opts.Evaluator != nil && m.reports[m.detailJob.ID] == nil {
		keys = append(keys, "e eligibility")
	}
	keys = append(keys, "r resources", "esc back", "↑/↓ scroll", "q quit")
	statusBar := statusBarStyle.Width(m.width).Render(" " + strings.Join(keys, "  "))

	return title + "\n" + content + "\n" + statusBar
}

func (m browseModel) renderDetail() string {
	j := m.detailJob
	var b strings.Builder

	addField := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(detailLabelStyle.Render(label))
		b.WriteString(detailValueStyle.Render(value))
		b.WriteByte('\n')
	}

	addField("Title", j.Title)
	addField("Company", j.Company)
	addField("Location", j.Location)
	addField("Work mode", string(j.WorkMode))
	addField("Type", j.Type)
	addField("Stipend", j.Compensation)
	addField("Apply by", j.ApplyBy)
	if !j.SourceAt.IsZero() {
		addField("Posted", j.SourceAt.Format("02 Jan 2006"))
	}
	addField("Source", j.Source)
	if len(j.RequiredSkills) > 0 {
		addField("Skills", strings.Join(j.RequiredSkills, ", "))
	}
	b.WriteByte('\n')
	addField("Link", j.Link)

	wrapWidth := max(m.width-8, 20)
	divider := func(label string) string {
		fill := strings.Repeat("─", max(wrapWidth-len(label), 3))
		return dividerStyle.Render(label + fill)
	}

	if r := m.reports[j.ID]; r != nil {
		b.WriteByte('\n')
		b.WriteString(divider("── Eligibility ") + "\n\n")
		verdict := badStyle.Render("not yet eligible")
		if r.IsEligible {
			verdict = goodStyle.Render("eligible ✓")
		}
		addField("Score", fmt.Sprintf("%d/100  %s", r.Score, verdict))
		addField("Matched", strings.Join(r.MatchedSkills, ", "))
		addField("Missing", strings.Join(r.MissingSkills, ", "))
		if r.Summary != "" {
			b.WriteString("\n" + bodyStyle.Render(wordWrap(r.Summary, wrapWidth)) + "\n")
		}
		if r.Roadmap != nil && len(r.Roadmap.Phases) > 0 {
			b.WriteString("\n" + detailLabelStyle.Render("Roadmap") + r.Roadmap.Duration + "\n")
			for _, p := range r.Roadmap.Phases {
				b.WriteString(detailValueStyle.Render("  • "+p.Title) + "\n")
			}
		}
	} else if m.evalLoading {
		b.WriteString("\n" + hintStyle.Render("  comparing your skills with this posting...") + "\n")
	} else if m.evalError != "" {
		b.WriteString("\n" + badStyle.Render("⚠ "+m.evalError) + "\n")
	} else if m.opts.Evaluator != nil {
		b.WriteString("\n" + hintStyle.Render("  press e to check your eligibility") + "\n")
	}

	if m.showResources {
		role := catalog.MatchRole(j.Title)
		b.WriteByte('\n')
		b.WriteString(divider("── Resources for "+role+" ") + "\n\n")
		for _, res := range catalog.Flatten(catalog.ForRole(j.Title)) {
			b.WriteString(detailValueStyle.Render("  • "+res.Name) + "\n")
			b.WriteString(hintStyle.Render("    "+res.URL) + "\n")
		}
	}

	if j.Description != "" {
		b.WriteByte('\n')
		if m.showDescription {
			b.WriteString(divider("── Job Description ") + "\n\n")
			b.WriteString(bodyStyle.Render(wordWrap(j.Description, wrapWidth)) + "\n")
		} else {
			b.WriteString(hintStyle.Render("  press d to read job description") + "\n")
		}
	}

	return b.String()
}

func renderJobs(jobs []model.JobPosting, cursor int, isActive bool) string {
	if len(jobs) == 0 {
		return "  (no jobs)"
	}

	var b strings.Builder
	for i, j := range jobs {
		isSelected := isActive && i == cursor

		titleSt := jobTitleStyle
		subtitleSt := jobSubtitleStyle
		prefix := "  "
		if isSelected {
			titleSt = selectedJobTitleStyle
			subtitleSt = selectedJobSubtitleStyle
			prefix = "> "
		}

		b.WriteString(prefix)
		b.WriteString(titleSt.Render(j.Title))
		b.WriteByte('\n')

		parts := []string{j.Company}
		if j.Location != "" {
			parts = append(parts, j.Location)
		}
		if j.WorkMode != "" {
			parts = append(parts, string(j.WorkMode))
		}
		b.WriteString(prefix)
		b.WriteString(subtitleSt.Render(strings.Join(parts, " · ")))
		b.WriteByte('\n')

		if i < len(jobs)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// sortJobsByDate orders newest first; undated postings keep their order at the end.
func sortJobsByDate(jobs []model.JobPosting) {
	sort.SliceStable(jobs, func(i, j int) bool {
		if jobs[i].SourceAt.IsZero() {
			return false
		}
		if jobs[j].SourceAt.IsZero() {
			return true
		}
		return jobs[i].SourceAt.After(jobs[j].SourceAt)
	})
}

func wordWrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) <= width {
			line += " " + w
		} else {
			lines = append(lines, line)
			line = w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// openURL opens url in the default system browser, fire-and-forget.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return
	}
	_ = cmd.Start()
}

// Run launches the split-pane browser seeded with an initial result for keyword.
// Returns wantQuit=true if the user pressed q/ctrl+c, false if they pressed esc
// to return to the role picker.
func Run(initial search.Result, keyword string, opts Options) (bool, error) {
	m := newBrowseModel(initial, keyword, opts)

	p := tea.NewProgram(m, tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return false, err
	}
	return result.(browseModel).wantQuit, nil
}
