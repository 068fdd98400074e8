package report

import (
	"github.com/Veraticus/walletscore/internal/cli"
	"github.com/Veraticus/walletscore/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// Styles contains the styling used by console reports.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Subtle   lipgloss.Style
	Header   lipgloss.Style
	Cell     lipgloss.Style
	Border   lipgloss.Style
	Label    lipgloss.Style
	Positive lipgloss.Style
	Negative lipgloss.Style
	LowRisk  lipgloss.Style
	Medium   lipgloss.Style
	HighRisk lipgloss.Style
	Bot      lipgloss.Style
	Human    lipgloss.Style
}

// NewStyles creates the default report styles.
func NewStyles() *Styles {
	return &Styles{
		Title:    cli.TitleStyle,
		Subtitle: cli.SubtitleStyle,
		Subtle:   cli.SubtleStyle,
		Header:   cli.TableHeaderStyle,
		Cell:     cli.TableCellStyle,
		Border:   lipgloss.NewStyle().Foreground(cli.SubtleColor),
		Label:    lipgloss.NewStyle().Foreground(cli.InfoColor),
		Positive: lipgloss.NewStyle().Bold(true).Foreground(cli.SuccessColor),
		Negative: lipgloss.NewStyle().Bold(true).Foreground(cli.ErrorColor),
		LowRisk:  cli.SuccessStyle,
		Medium:   cli.WarningStyle,
		HighRisk: cli.ErrorStyle,
		Bot:      lipgloss.NewStyle().Bold(true).Foreground(cli.ErrorColor),
		Human:    cli.SubtleStyle,
	}
}

// Risk returns the style for a risk tier.
func (s *Styles) Risk(r model.RiskCategory) lipgloss.Style {
	switch r {
	case model.LowRisk:
		return s.LowRisk
	case model.MediumRisk:
		return s.Medium
	default:
		return s.HighRisk
	}
}

// BotLabel returns the style for a bot label.
func (s *Styles) BotLabel(l model.BotLabel) lipgloss.Style {
	if l == model.LabelBot {
		return s.Bot
	}
	return s.Human
}
