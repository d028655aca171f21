package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"learnrag/internal/contextbuilder"
	"learnrag/internal/domain"
	"learnrag/internal/tfidf"
)

// ResultLimit is the number of results fetched per query.
const ResultLimit = 10

// ContextBuilder assembles reference context for a query.
type ContextBuilder interface {
	Build(queryDocument string) contextbuilder.Result
}

// Model is the Bubble Tea model for the search UI.
type Model struct {
	searcher    domain.Searcher
	contexts    ContextBuilder
	input       textinput.Model
	viewport    viewport.Model
	results     []domain.ScoredResult
	assembled   contextbuilder.Result
	showContext bool
	summary     string
	status      string
	cursor      int
	ready       bool
	lastQuery   string
}

// New creates a model. summary is shown under the title.
func New(searcher domain.Searcher, contexts ContextBuilder, summary string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type query and press Enter (tab: context view)"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{searcher: searcher, contexts: contexts, input: ti, viewport: vp, summary: summary, status: "Loaded. Type to search."}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + 1 + qh + 1 // header+summary, status, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.render())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				m = m.runQuery(q)
				m.viewport.SetContent(m.render())
				return m, nil
			}
		case "tab":
			m.showContext = !m.showContext
			m.viewport.SetContent(m.render())
			m.viewport.GotoTop()
			return m, nil
		case "down":
			if len(m.results) > 0 && !m.showContext {
				m.cursor = (m.cursor + 1) % len(m.results)
				m.viewport.SetContent(m.render())
				return m, nil
			}
		case "up":
			if len(m.results) > 0 && !m.showContext {
				m.cursor = (m.cursor - 1 + len(m.results)) % len(m.results)
				m.viewport.SetContent(m.render())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) runQuery(q string) Model {
	res, err := m.searcher.Search(q, ResultLimit)
	if err != nil {
		m.status = "Error: " + err.Error()
		m.results = nil
		return m
	}
	m.results = res
	m.cursor = 0
	m.lastQuery = q
	m.status = fmt.Sprintf("Results for %q", q)
	if m.contexts != nil {
		m.assembled = m.contexts.Build(q)
		if m.assembled.Fallback() {
			m.status += " (context: fallback)"
		}
	}
	return m
}

// View renders the layout.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	title := "Knowledge Search"
	if m.showContext {
		title += " · context"
	}
	header := lipgloss.NewStyle().Bold(true).Render(title)
	summary := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.summary)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + summary + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) render() string {
	if m.showContext {
		if m.assembled.Text == "" {
			return "No context assembled yet."
		}
		return m.assembled.Text
	}
	return m.renderCurrentResult()
}

func (m Model) renderCurrentResult() string {
	if len(m.results) == 0 {
		return "No results yet."
	}
	r := m.results[m.cursor]
	title := fmt.Sprintf("Result %d/%d  [%s]  score=%.3f", m.cursor+1, len(m.results), r.Category, r.Score)
	return title + "\n\n" + highlightBestSentence(r.Content, m.lastQuery)
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	highlightStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	sentenceRe     = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)
)

// highlightBestSentence emphasises the sentence sharing the most distinct
// terms with the query.
func highlightBestSentence(text, query string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	sentences := sentenceRe.FindAllString(text, -1)
	if len(sentences) == 0 {
		sentences = []string{strings.TrimSpace(text)}
	}
	qTerms := tfidf.TermSet(query)
	if len(qTerms) == 0 {
		return strings.Join(sentences, " ")
	}
	want := make(map[string]struct{}, len(qTerms))
	for _, t := range qTerms {
		want[t] = struct{}{}
	}
	bestIdx, bestScore := 0, -1
	for i, s := range sentences {
		score := 0
		for _, t := range tfidf.TermSet(s) {
			if _, ok := want[t]; ok {
				score++
			}
		}
		if score > bestScore {
			bestScore, bestIdx = score, i
		}
	}
	for i := range sentences {
		sent := strings.TrimSpace(sentences[i])
		if i == bestIdx {
			sentences[i] = highlightStyle.Render(sent)
		} else {
			sentences[i] = sent
		}
	}
	return strings.Join(sentences, " ")
}
