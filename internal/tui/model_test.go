package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"learnrag/internal/contextbuilder"
	"learnrag/internal/knowledge"
	"learnrag/internal/retriever"
)

func newModel() Model {
	r := retriever.New(knowledge.Default())
	m := New(r, contextbuilder.New(r, contextbuilder.DefaultOptions()), "digest")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 30})
	return next.(Model)
}

func typeQuery(m Model, q string) Model {
	m.input.SetValue(q)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	return next.(Model)
}

func TestEnterRunsSearch(t *testing.T) {
	m := typeQuery(newModel(), "ats keywords")
	if len(m.results) == 0 || len(m.results) > ResultLimit {
		t.Fatalf("unexpected result count %d", len(m.results))
	}
	if m.lastQuery != "ats keywords" {
		t.Errorf("lastQuery = %q", m.lastQuery)
	}
	if m.assembled.Fallback() {
		t.Error("expected assembled context")
	}
	if !strings.Contains(m.View(), "Result 1/") {
		t.Error("view should show the first result")
	}
}

func TestCursorWraps(t *testing.T) {
	m := typeQuery(newModel(), "ats keywords")
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(Model)
	if m.cursor != len(m.results)-1 {
		t.Errorf("cursor = %d, want %d", m.cursor, len(m.results)-1)
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if next.(Model).cursor != 0 {
		t.Error("down from last result should wrap to 0")
	}
}

func TestTabTogglesContext(t *testing.T) {
	m := typeQuery(newModel(), "ats keywords")
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(Model)
	if !m.showContext {
		t.Fatal("tab should switch to the context view")
	}
	if !strings.HasPrefix(m.render(), "## Retrieved Market Standards:") {
		t.Errorf("unexpected context view: %.60q", m.render())
	}
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if next.(Model).showContext {
		t.Error("second tab should return to results")
	}
}

func TestHighlightBestSentence(t *testing.T) {
	out := highlightBestSentence("Use clear headings. Quantify results with metrics.", "metrics results")
	if !strings.Contains(out, "Use clear headings.") {
		t.Errorf("non-matching sentence should be kept: %q", out)
	}
	if highlightBestSentence("", "x") != "" {
		t.Error("empty text should be returned unchanged")
	}
}
