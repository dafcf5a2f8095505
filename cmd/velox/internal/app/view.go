// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2026 Jared Redh. All rights reserved.

package app

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/jredh-dev/velox/internal/catalog"
	"github.com/jredh-dev/velox/internal/countdown"
)

// --- Styles ---

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F5B700"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#000000")).
			Background(lipgloss.Color("#F5B700"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF4444")).
			Bold(true)

	okStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00FF88"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F5B700")).
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)
)

const brand = "  VELOX LEILÕES"

// View renders the full-screen TUI.
func (m Model) View() tea.View {
	if m.width == 0 {
		v := tea.NewView("carregando...")
		v.AltScreen = true
		return v
	}

	var s string
	switch m.state {
	case stateCatalog, stateSearch:
		s = m.viewCatalog()
	case stateDetail:
		s = m.viewDetail()
	}

	v := tea.NewView(s)
	v.AltScreen = true
	return v
}

// --- Catalog ---

func (m Model) viewCatalog() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(brand))
	b.WriteString("\n\n  ")

	for i, c := range catalog.Categories {
		if i == m.tab {
			b.WriteString(selectedStyle.Render(" " + string(c) + " "))
		} else {
			b.WriteString(dimStyle.Render(" " + string(c) + " "))
		}
		b.WriteString(" ")
	}
	b.WriteString("\n\n")

	switch {
	case m.state == stateSearch:
		b.WriteString(promptStyle.Render("  Buscar: "))
		b.WriteString(m.searchInput)
		b.WriteString("█\n")
	case m.session.Query() != "":
		b.WriteString("  Buscar: " + valueStyle.Render(m.session.Query()) + "\n")
	default:
		b.WriteString(dimStyle.Render("  Buscar por lote, título ou descrição: [/]") + "\n")
	}
	b.WriteString("\n")

	items := m.items()
	if len(items) == 0 {
		b.WriteString("  Nenhum lote encontrado\n")
		b.WriteString(dimStyle.Render("  Tente ajustar seus filtros ou buscar por outro termo.  [c] limpar filtros"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(dimStyle.Render("  " + foundLabel(len(items))))
	b.WriteString("\n\n")

	now := m.now()
	titleW := m.titleWidth()
	for i, it := range items {
		row := fmt.Sprintf("%s  %-*s  %-20s  %18s  %s",
			it.LotLabel(),
			titleW, truncate(it.Title, titleW),
			truncate(it.Location, 20),
			it.CurrentBid.String(),
			countdown.Label(now, it.EndsAt, countdown.Coarse))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + row))
		} else {
			b.WriteString("  " + row)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  [↑/↓] navegar  [←/→] categoria  [/] buscar  [c] limpar  [enter] detalhes  [q] sair"))
	return b.String()
}

func (m Model) titleWidth() int {
	w := m.width - 80
	if w < 20 {
		return 20
	}
	if w > 48 {
		return 48
	}
	return w
}

func foundLabel(n int) string {
	if n == 1 {
		return "1 lote encontrado"
	}
	return fmt.Sprintf("%d lotes encontrados", n)
}

// --- Detail ---

func (m Model) viewDetail() string {
	it, ok := m.session.Selected()
	if !ok {
		return titleStyle.Render(brand) + "\n\n" + errStyle.Render("  Lote não encontrado.")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(brand))
	b.WriteString(dimStyle.Render("  ›  " + it.LotLabel()))
	b.WriteString("\n\n")
	b.WriteString(promptStyle.Render("  " + it.Title))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s · %s", it.Category, it.Location)))
	b.WriteString("\n\n")
	b.WriteString(m.wrap(it.Description))
	b.WriteString("\n\n")

	insight := m.insightText
	if m.insightLoading {
		insight = dimStyle.Render("Gerando análise...")
	}
	panelW := max(m.width-6, 20)
	b.WriteString(panelStyle.Width(panelW).Render("Análise do especialista\n" + insight))
	b.WriteString("\n\n")

	now := m.now()
	b.WriteString("  Encerra em: ")
	if left := countdown.Remaining(now, it.EndsAt); left.Ended || it.Status != catalog.StatusOpen {
		b.WriteString(errStyle.Render(countdown.Ended))
	} else {
		b.WriteString(valueStyle.Render(left.Label(countdown.Fine)))
	}
	b.WriteString("\n")
	b.WriteString("  Lance atual: " + valueStyle.Render(it.CurrentBid.String()) + "\n")
	b.WriteString(dimStyle.Render("  Incremento mínimo de " + it.Increment.String()))
	b.WriteString("\n\n")

	if it.Biddable(now) {
		b.WriteString(promptStyle.Render("  Seu lance: R$ "))
		b.WriteString(m.bidInput)
		b.WriteString("█\n")
		b.WriteString(dimStyle.Render("  Lance mínimo: " + it.Floor().String()))
		b.WriteString("\n")
	} else {
		b.WriteString(errStyle.Render("  Este lote não está aberto para lances."))
		b.WriteString("\n")
	}
	if m.status != "" {
		if m.statusErr {
			b.WriteString(errStyle.Render("  " + m.status))
		} else {
			b.WriteString(okStyle.Render("  " + m.status))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("  Histórico de lances"))
	b.WriteString("\n")
	bids := it.LastBids(recentBids)
	if len(bids) == 0 {
		b.WriteString(dimStyle.Render("  Seja o primeiro a dar um lance!"))
		b.WriteString("\n")
	}
	for _, bid := range bids {
		b.WriteString(fmt.Sprintf("  %-24s  %18s  %s\n",
			truncate(bid.BidderName, 24),
			bid.Amount.String(),
			dimStyle.Render(bid.Timestamp.In(m.loc).Format("02/01 15:04"))))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  [0-9] valor  [+/-] incremento  [enter] dar lance  [esc] voltar"))
	return b.String()
}

// wrap breaks text into indented lines that fit the terminal.
func (m Model) wrap(text string) string {
	width := max(m.width-4, 20)
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && lipgloss.Width(line.String())+1+lipgloss.Width(word) > width {
			lines = append(lines, "  "+line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteString(" ")
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, "  "+line.String())
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
