package tui

import (
	"fmt"
	"strings"

	"sisregip-service/internal/app/desk/board"
	"sisregip-service/internal/app/desk/gate"
	"sisregip-service/internal/app/desk/reportfilter"

	"github.com/charmbracelet/lipgloss"
)

const barWidth = 30

func (m *Model) View() string {
	switch {
	case len(m.alerts) > 0:
		return m.center(alertStyle.Render(m.alerts[0].text + "\n\n" + helpStyle.Render("[enter] OK")))
	case m.confirm != nil:
		return m.center(alertStyle.Render(m.confirm.text + "\n\n" + helpStyle.Render("[s] sim  [n] não")))
	case m.prompt != nil:
		return m.center(modalStyle.Render(m.prompt.text + "\n\n" + m.promptInput.View() + "\n\n" + helpStyle.Render("[enter] abrir  [esc] cancelar")))
	}

	switch m.screen {
	case ScreenLogin:
		return m.center(m.loginView())
	case ScreenMerge:
		return m.mergeView()
	}

	switch {
	case m.formOpen:
		return m.formView()
	case m.reportOpen:
		return m.center(m.reportView())
	case m.secretariaOpen:
		return m.secretariaView()
	}
	return m.boardView()
}

func (m *Model) center(content string) string {
	if m.width == 0 || m.height == 0 {
		return content
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

func (m *Model) loginView() string {
	state := m.deps.Gate.State()
	if state.Phase != gate.PhaseLogin {
		return modalStyle.Render(fmt.Sprintf("Bem-vindo(a), %s!\n\nRedirecionando em %d...", state.Name, state.Counter))
	}

	button := helpStyle.Render("[ " + state.ButtonLabel + " ]")
	if state.Enabled {
		button = selectedStyle.Render("[ " + state.ButtonLabel + " ]")
	}
	return modalStyle.Render(
		titleStyle.Render("SISREG IP") + "\n\n" +
			"Nome do operador:\n" + m.login.View() + "\n\n" + button,
	)
}

func (m *Model) boardView() string {
	state := m.deps.Board.State()

	var b strings.Builder
	b.WriteString(titleStyle.Render("SISREG IP · Protocolos"))
	b.WriteString("\n\n")
	b.WriteString(chartView(state.Chart))
	b.WriteString("\n\n")
	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")
	if state.HasSelection {
		b.WriteString(headerStyle.Render(state.Form.Header))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("[enter] abrir  [n] novo  [d] excluir  [/] buscar  [r] atualizar  [p] relatório  [s] secretaria  [m] unir PDFs  [q] sair"))
	return b.String()
}

func chartView(chart board.Chart) string {
	delivered, pending := 0, 0
	if chart.Total > 0 {
		delivered = chart.Delivered * barWidth / chart.Total
		pending = barWidth - delivered
	}
	bar := deliveredStyle.Render(strings.Repeat("█", delivered)) + pendingStyle.Render(strings.Repeat("█", pending))
	legend := fmt.Sprintf("%s %d  %s %d  Total %d",
		deliveredStyle.Render("Entregues"), chart.Delivered,
		pendingStyle.Render("Pendentes"), chart.Pending,
		chart.Total,
	)
	return bar + "\n" + legend
}

func (m *Model) formView() string {
	form := m.deps.Board.State().Form

	var b strings.Builder
	b.WriteString(headerStyle.Render(form.Header))
	b.WriteString("\n\n")
	for i, label := range formLabels {
		line := fmt.Sprintf("%-12s %s", label, m.form[i].View())
		if i == 0 && form.ProtReadOnly {
			line = fmt.Sprintf("%-12s %s", label, helpStyle.Render(m.form[i].Value()))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	help := "[tab] próximo  [ctrl+s] salvar  [esc] limpar"
	if form.DeleteEnabled {
		help += "  [ctrl+d] excluir"
	}
	b.WriteString(helpStyle.Render(help))
	return modalStyle.Render(b.String())
}

func (m *Model) reportView() string {
	state := m.deps.Report.State()

	scopes := make([]string, 0, len(reportScopes))
	for _, scope := range reportScopes {
		label := scopeLabel(scope)
		if scope == state.Scope {
			label = selectedStyle.Render("(" + label + ")")
		}
		scopes = append(scopes, label)
	}

	month, year := "--", "--"
	if state.Month > 0 {
		month = fmt.Sprintf("%02d", state.Month)
	}
	if state.Year > 0 {
		year = fmt.Sprintf("%d", state.Year)
	}

	fields := []string{
		"Período: " + strings.Join(scopes, " "),
		"Mês:     " + month,
		"Ano:     " + year,
	}
	fields[m.reportField] = selectedStyle.Render("> ") + fields[m.reportField]

	return modalStyle.Render(
		headerStyle.Render("Imprimir relatório") + "\n\n" +
			strings.Join(fields, "\n") + "\n\n" +
			helpStyle.Render("[tab] campo  [←/→] alterar  [enter] gerar  [esc] fechar"),
	)
}

func scopeLabel(scope reportfilter.Scope) string {
	switch scope {
	case reportfilter.ScopeMonth:
		return "Mês"
	case reportfilter.ScopeYear:
		return "Ano"
	default:
		return "Todos"
	}
}

func (m *Model) secretariaView() string {
	state := m.deps.Secretaria.State()

	var b strings.Builder
	b.WriteString(titleStyle.Render("Secretaria"))
	b.WriteString("\n\n")
	if state.Placeholder != "" {
		b.WriteString(state.Placeholder)
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("[esc] voltar"))
		return b.String()
	}

	peak := 0
	for _, bucket := range state.Buckets {
		if bucket.Count > peak {
			peak = bucket.Count
		}
	}
	for _, bucket := range state.Buckets {
		width := 0
		if peak > 0 {
			width = bucket.Count * barWidth / peak
		}
		fmt.Fprintf(&b, "%-7s %s %d\n", bucket.Label, deliveredStyle.Render(strings.Repeat("█", width)), bucket.Count)
	}
	fmt.Fprintf(&b, "\nTotal: %d | Filtrados: %d\n", state.Stats.Total, state.Stats.Filtered)
	b.WriteString(m.secretariaSearch.View())
	b.WriteString("\n")
	b.WriteString(m.secretariaTable.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("[↑/↓] rolar  [esc] voltar"))
	return b.String()
}

func (m *Model) mergeView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Unir PDFs"))
	b.WriteString("\n\n")
	if m.merge == nil {
		return b.String()
	}

	state := m.merge.State()
	if state.Folder != "" {
		b.WriteString("Pasta: " + state.Folder + "\n\n")
	}
	if state.Placeholder != "" {
		b.WriteString(state.Placeholder + "\n")
	}
	for i, file := range state.Files {
		cursor := "  "
		if i == m.mergeCursor {
			cursor = selectedStyle.Render("> ")
		}
		check := "[ ]"
		if file.Checked {
			check = "[x]"
		}
		b.WriteString(cursor + check + " " + file.Name + "\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("[espaço] marcar  [a] todos  [enter] unir  [b] unir sem páginas em branco  [f] outra pasta  [esc] fechar"))
	return b.String()
}
