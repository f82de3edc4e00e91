package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/framewm/internal/ipc"
)

type outputFormat int

const (
	formatText outputFormat = iota
	formatJSON
	formatYAML
)

func parseFormat(asJSON, asYAML bool) (outputFormat, error) {
	switch {
	case asJSON && asYAML:
		return formatText, fmt.Errorf("--json and --yaml are mutually exclusive")
	case asJSON:
		return formatJSON, nil
	case asYAML:
		return formatYAML, nil
	default:
		return formatText, nil
	}
}

// stdoutIsTerminal decides whether tables get borders and colors.
func stdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	focusStyle   = lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("42"))
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	headerPadded = headerStyle.Padding(0, 1)
)

func encode(w io.Writer, format outputFormat, v interface{}) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	}
	return fmt.Errorf("unsupported format %d", format)
}

func renderStatus(w io.Writer, format outputFormat, st *ipc.StatusData) error {
	if format != formatText {
		return encode(w, format, st)
	}
	fmt.Fprintf(w, "running:        %v\n", st.Running)
	fmt.Fprintf(w, "pid:            %d\n", st.PID)
	fmt.Fprintf(w, "uptime_seconds: %d\n", st.UptimeSeconds)
	fmt.Fprintf(w, "client_count:   %d\n", st.ClientCount)
	if st.Focused != 0 {
		fmt.Fprintf(w, "focused:        0x%x\n", st.Focused)
	} else {
		fmt.Fprintln(w, "focused:        none")
	}
	return nil
}

func renderClients(w io.Writer, format outputFormat, styled bool, data *ipc.ClientsData) error {
	if format != formatText {
		return encode(w, format, data)
	}
	if len(data.Clients) == 0 {
		fmt.Fprintln(w, "no managed windows")
		return nil
	}

	headers := []string{"WINDOW", "FRAME", "GEOMETRY", "STATE", "TITLE"}
	rows := make([][]string, 0, len(data.Clients))
	focusedRow := -1
	for i, c := range data.Clients {
		if c.Focused {
			focusedRow = i
		}
		rows = append(rows, []string{
			fmt.Sprintf("0x%x", c.Window),
			fmt.Sprintf("0x%x", c.Frame),
			fmt.Sprintf("%dx%d+%d+%d", c.Width, c.Height, c.X, c.Y),
			c.Interaction,
			c.Title,
		})
	}
	writeTable(w, styled, headers, rows, focusedRow)
	return nil
}

func renderScreens(w io.Writer, format outputFormat, styled bool, data *ipc.ScreensData) error {
	if format != formatText {
		return encode(w, format, data)
	}
	headers := []string{"ID", "NAME", "GEOMETRY"}
	rows := make([][]string, 0, len(data.Screens))
	for _, s := range data.Screens {
		rows = append(rows, []string{
			strconv.Itoa(s.ID),
			s.Name,
			fmt.Sprintf("%dx%d+%d+%d", s.Width, s.Height, s.X, s.Y),
		})
	}
	writeTable(w, styled, headers, rows, -1)
	return nil
}

// writeTable prints a bordered lipgloss table on terminals and a plain
// tab-separated listing otherwise. highlight is a row index or -1.
func writeTable(w io.Writer, styled bool, headers []string, rows [][]string, highlight int) {
	if !styled {
		fmt.Fprintln(w, strings.Join(headers, "\t"))
		for _, r := range rows {
			fmt.Fprintln(w, strings.Join(r, "\t"))
		}
		return
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerPadded
			case row == highlight:
				return focusStyle
			default:
				return cellStyle
			}
		})
	fmt.Fprintln(w, t.Render())
}
