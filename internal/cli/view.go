package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/thoree/pedtools/pkg/marker"
	"github.com/thoree/pedtools/pkg/pedio"
	"github.com/thoree/pedtools/pkg/pedigree"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// viewCommand creates the interactive member browser.
func (c *CLI) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view [file]",
		Short: "Browse pedigree members interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ped, set, err := pedio.ReadFile(args[0])
			if err != nil {
				return err
			}
			model := NewMemberListModel(ped, set)
			_, err = tea.NewProgram(model).Run()
			return err
		},
	}
}

// MemberListModel is the bubbletea model for browsing pedigree members.
type MemberListModel struct {
	Ped     *pedigree.Ped
	Markers *marker.Set
	Cursor  int
	Height  int
	Offset  int
}

// NewMemberListModel creates a member browser for ped and its markers.
func NewMemberListModel(ped *pedigree.Ped, set *marker.Set) MemberListModel {
	return MemberListModel{
		Ped:     ped,
		Markers: set,
		Cursor:  0,
		Height:  15,
		Offset:  0,
	}
}

func (m MemberListModel) Init() tea.Cmd {
	return nil
}

func (m MemberListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < m.Ped.Size()-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m MemberListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Pedigree Members"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > m.Ped.Size() {
		end = m.Ped.Size()
	}

	headers := []string{"", "ID", "Father", "Mother", "Sex"}
	for _, mk := range m.Markers.Markers() {
		name := mk.Name()
		if name == "" {
			name = "m?"
		}
		headers = append(headers, name)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		pos := i + 1
		mem := m.Ped.Member(pos)

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		row := []string{cursor, mem.Label,
			parentName(m.Ped, mem.Father), parentName(m.Ped, mem.Mother),
			mem.Sex.String()}
		for _, mk := range m.Markers.Markers() {
			row = append(row, mk.GenotypeString(pos))
		}
		rows = append(rows, row)
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return listSelectedStyle
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, m.Ped.Size())))

	return b.String()
}

func parentName(ped *pedigree.Ped, pos int) string {
	if pos == 0 {
		return "—"
	}
	return ped.Member(pos).Label
}
