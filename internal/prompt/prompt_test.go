package prompt

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func typeKeys(m inputModel, s string) inputModel {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return next.(inputModel)
}

func press(m inputModel, k tea.KeyType) (inputModel, tea.Cmd) {
	next, cmd := m.Update(tea.KeyMsg{Type: k})
	return next.(inputModel), cmd
}

func TestInputModel_EnterSubmitsTypedValue(t *testing.T) {
	m := newInputModel("Cluster name", "kind-dev", false)
	m = typeKeys(m, "  prod-eu ")
	m, cmd := press(m, tea.KeyEnter)

	assert.True(t, m.done)
	assert.False(t, m.cancelled)
	assert.NotNil(t, cmd)
	assert.Equal(t, "prod-eu", m.Value())
	assert.Contains(t, m.View(), "prod-eu")
}

func TestInputModel_EmptyAnswerUsesDefault(t *testing.T) {
	m := newInputModel("Cluster name", "kind-dev", false)
	m, _ = press(m, tea.KeyEnter)
	assert.Equal(t, "kind-dev", m.Value())
}

func TestInputModel_Cancel(t *testing.T) {
	for _, k := range []tea.KeyType{tea.KeyCtrlC, tea.KeyEsc} {
		m := newInputModel("Token", "", true)
		m, _ = press(m, k)
		assert.True(t, m.cancelled)
		assert.False(t, m.done)
	}
}

func TestInputModel_SecretIsMaskedInView(t *testing.T) {
	m := newInputModel("Slack API key", "", true)
	m = typeKeys(m, "xoxb-secret")
	assert.NotContains(t, m.View(), "xoxb-secret")

	m, _ = press(m, tea.KeyEnter)
	assert.Equal(t, "xoxb-secret", m.Value())
	assert.NotContains(t, m.View(), "xoxb-secret")
}

func TestParseYesNo(t *testing.T) {
	assert.True(t, ParseYesNo("y", false))
	assert.True(t, ParseYesNo(" YES ", false))
	assert.False(t, ParseYesNo("n", true))
	assert.True(t, ParseYesNo("", true))
	assert.False(t, ParseYesNo("maybe", false))
}

func TestDefaults(t *testing.T) {
	var p Prompter = Defaults{}
	v, err := p.Ask("q", "d", false)
	assert.NoError(t, err)
	assert.Equal(t, "d", v)

	ok, err := p.Confirm("q", true)
	assert.NoError(t, err)
	assert.True(t, ok)
}
