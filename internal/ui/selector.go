package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// SelectorOption represents a single option in the selector.
type SelectorOption struct {
	Label       string
	Description string
}

// Selector is an arrow-key navigable single-choice menu, used by the
// wizard for event types, contacts and recurrence choices. It falls back
// to numbered input when stdin is not a terminal.
type Selector struct {
	question string
	options  []SelectorOption
	selected int
	colored  bool

	cursorStyle   lipgloss.Style
	selectedStyle lipgloss.Style
	optionStyle   lipgloss.Style
	dimStyle      lipgloss.Style
	questionStyle lipgloss.Style
	hintStyle     lipgloss.Style
}

// NewSelector creates a selector over the given options.
func NewSelector(question string, options []SelectorOption, colored bool) *Selector {
	return &Selector{
		question: question,
		options:  options,
		colored:  colored,

		cursorStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true),
		selectedStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("114")).Bold(true),
		optionStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		dimStyle:      lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		questionStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("81")).Bold(true),
		hintStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
	}
}

// Run displays the selector and returns the chosen option index.
func (s *Selector) Run() (int, error) {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return s.runSimple()
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return s.runSimple()
	}

	cleanup := func() {
		term.Restore(fd, oldState)
		fmt.Print("\033[?25h") // Show cursor
	}
	defer cleanup()

	fmt.Print("\033[?25l") // Hide cursor

	totalLines := len(s.options) + 3
	s.printMenu()

	reader := bufio.NewReader(os.Stdin)
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return 0, err
		}

		done := false

		switch b {
		case 13, 10: // Enter
			done = true
		case 3: // Ctrl+C
			s.clearMenu(totalLines)
			return 0, fmt.Errorf("cancelled")
		case 'j':
			s.moveDown()
		case 'k':
			s.moveUp()
		case 27: // Escape sequence
			b2, _ := reader.ReadByte()
			if b2 == '[' {
				b3, _ := reader.ReadByte()
				switch b3 {
				case 'A':
					s.moveUp()
				case 'B':
					s.moveDown()
				}
			}
		default:
			if b >= '1' && b <= '9' {
				idx := int(b - '1')
				if idx < len(s.options) {
					s.selected = idx
					done = true
				}
			}
		}

		if done {
			s.clearMenu(totalLines)
			return s.selected, nil
		}

		s.clearMenu(totalLines)
		s.printMenu()
	}
}

func (s *Selector) printMenu() {
	var sb strings.Builder

	if s.colored {
		sb.WriteString(s.questionStyle.Render(s.question))
	} else {
		sb.WriteString(s.question)
	}
	sb.WriteString("\r\n")

	hint := "[j/k or arrows] move  [enter] select"
	if s.colored {
		sb.WriteString(s.hintStyle.Render(hint))
	} else {
		sb.WriteString(hint)
	}
	sb.WriteString("\r\n\r\n")

	for i, opt := range s.options {
		cursor := "  "
		if i == s.selected {
			cursor = "> "
		}

		label := opt.Label
		if opt.Description != "" {
			label += " - " + opt.Description
		}

		if s.colored {
			if i == s.selected {
				sb.WriteString(s.cursorStyle.Render(cursor))
				sb.WriteString(s.selectedStyle.Render(label))
			} else {
				sb.WriteString(s.dimStyle.Render(cursor))
				sb.WriteString(s.optionStyle.Render(label))
			}
		} else {
			sb.WriteString(cursor + label)
		}
		sb.WriteString("\r\n")
	}

	fmt.Print(sb.String())
	os.Stdout.Sync()
}

func (s *Selector) clearMenu(lines int) {
	for i := 0; i < lines; i++ {
		fmt.Print("\033[A\033[2K\r")
	}
	os.Stdout.Sync()
}

func (s *Selector) runSimple() (int, error) {
	fmt.Println(s.question)
	for i, opt := range s.options {
		label := opt.Label
		if opt.Description != "" {
			label += " - " + opt.Description
		}
		fmt.Printf("  [%d] %s\n", i+1, label)
	}
	fmt.Print("Enter number: ")

	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)

	if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(s.options) {
		return n - 1, nil
	}
	return 0, nil
}

func (s *Selector) moveUp() {
	if s.selected > 0 {
		s.selected--
	} else {
		s.selected = len(s.options) - 1
	}
}

func (s *Selector) moveDown() {
	if s.selected < len(s.options)-1 {
		s.selected++
	} else {
		s.selected = 0
	}
}
