package notifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/internai/internai/internal/model"
)

var _ model.Notifier = (*SlackNotifier)(nil)

const (
	// announceGap spaces consecutive webhook posts under Slack's 1/s limit.
	announceGap = 500 * time.Millisecond
	// maxRetryAfter caps how long a 429 may pause an announcement.
	maxRetryAfter = 30 * time.Second
)

// SlackNotifier announces admin-posted internships to a Slack channel through
// an Incoming Webhook, one Block Kit message per posting.
type SlackNotifier struct {
	webhookURL string
	httpClient *http.Client
	logger     *slog.Logger
	sleep      func(time.Duration)
}

// NewSlackNotifier returns a notifier posting to webhookURL.
func NewSlackNotifier(webhookURL string, httpClient *http.Client, logger *slog.Logger) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		httpClient: httpClient,
		logger:     logger,
		sleep:      time.Sleep,
	}
}

// Notify announces each posting. It fails only when no posting could be
// announced; the IDs of the ones that failed are logged.
func (s *SlackNotifier) Notify(jobs []model.JobPosting) error {
	if len(jobs) == 0 {
		return nil
	}

	var failed []string
	for i, j := range jobs {
		if i > 0 {
			s.sleep(announceGap)
		}
		if err := s.announce(j); err != nil {
			s.logger.Error("posting announcement failed",
				"posting_id", j.ID,
				"company", j.Company,
				"work_mode", j.WorkMode,
				"error", err,
			)
			failed = append(failed, j.ID)
		}
	}

	if len(failed) == len(jobs) {
		return fmt.Errorf("announce %d postings to slack: all failed", len(jobs))
	}
	s.logger.Info("postings announced to slack", "announced", len(jobs)-len(failed), "failed_ids", failed)
	return nil
}

// announce posts one posting, waiting out a single 429 before giving up.
func (s *SlackNotifier) announce(j model.JobPosting) error {
	body, err := json.Marshal(buildPayload(j))
	if err != nil {
		return fmt.Errorf("encode posting %s: %w", j.ID, err)
	}

	err = s.post(body)
	var httpErr *model.HTTPError
	if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusTooManyRequests {
		wait := min(max(httpErr.RetryAfter, time.Second), maxRetryAfter)
		s.logger.Warn("slack throttled announcement", "posting_id", j.ID, "wait", wait)
		s.sleep(wait)
		err = s.post(body)
	}
	if err != nil {
		return err
	}
	s.logger.Info("posting announced", "posting_id", j.ID, "title", j.Title, "work_mode", j.WorkMode)
	return nil
}

func (s *SlackNotifier) post(body []byte) error {
	resp, err := s.httpClient.Post(s.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("post to slack webhook: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		secs, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: time.Duration(secs) * time.Second,
			Err:        errors.New("slack webhook rejected announcement"),
		}
	}
	return nil
}

// Block Kit payload types.

type slackPayload struct {
	Blocks []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type     string         `json:"type"`
	Text     *slackText     `json:"text,omitempty"`
	Fields   []slackText    `json:"fields,omitempty"`
	Elements []slackElement `json:"elements,omitempty"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type slackElement struct {
	Type  string    `json:"type"`
	Text  slackText `json:"text"`
	URL   string    `json:"url"`
	Style string    `json:"style"`
}

// SendTestMessage sends a dummy posting to verify the integration works.
func SendTestMessage(n model.Notifier) error {
	testJob := model.JobPosting{
		ID:             "test-001",
		Company:        "InternAI",
		Title:          "Test Notification (integration verified)",
		Location:       "Remote",
		WorkMode:       model.WorkModeRemote,
		Compensation:   "Paid",
		RequiredSkills: []string{"Go", "Slack"},
		Link:           "https://api.slack.com/messaging/webhooks",
		SourceAt:       time.Now(),
		Source:         "test",
	}
	return n.Notify([]model.JobPosting{testJob})
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func buildPayload(j model.JobPosting) slackPayload {
	postedText := "Just published"
	if !j.SourceAt.IsZero() {
		ist, err := time.LoadLocation("Asia/Kolkata")
		if err == nil {
			postedText = j.SourceAt.In(ist).Format(time.RFC1123)
		} else {
			postedText = j.SourceAt.Format(time.RFC1123)
		}
	}

	company := capitalize(j.Company)

	blocks := []slackBlock{
		{
			Type: "header",
			Text: &slackText{Type: "plain_text", Text: "🆕 " + company + ": " + j.Title},
		},
		{
			Type: "section",
			Fields: []slackText{
				{Type: "mrkdwn", Text: "*Company:*\n" + company},
				{Type: "mrkdwn", Text: "*Location:*\n" + orDash(j.Location)},
			},
		},
		{
			Type: "section",
			Fields: []slackText{
				{Type: "mrkdwn", Text: "*Work mode:*\n" + orDash(string(j.WorkMode))},
				{Type: "mrkdwn", Text: "*Posted:*\n" + postedText},
			},
		},
	}

	if len(j.RequiredSkills) > 0 {
		text := "*Skills:* " + strings.Join(j.RequiredSkills, ", ")
		if j.Compensation != "" {
			text += "   *Stipend:* " + j.Compensation
		}
		blocks = append(blocks, slackBlock{
			Type: "section",
			Text: &slackText{Type: "mrkdwn", Text: text},
		})
	}

	if j.Link != "" {
		blocks = append(blocks, slackBlock{
			Type: "actions",
			Elements: []slackElement{
				{
					Type:  "button",
					Text:  slackText{Type: "plain_text", Text: "View Posting"},
					URL:   j.Link,
					Style: "primary",
				},
			},
		})
	}
	blocks = append(blocks, slackBlock{Type: "divider"})

	return slackPayload{Blocks: blocks}
}
