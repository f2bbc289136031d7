package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/kirillkom/library-searchbox/internal/core/domain"
	"github.com/kirillkom/library-searchbox/internal/core/usecase"
)

const helpText = `type text to update suggestions
  :n / :p        highlight next / previous suggestion
  :enter         press Enter (an empty line does the same)
  :go            click the search button
  :submit TEXT   submit TEXT directly
  :focus :blur   focus or blur the input
  :kb            open or close the keyboard panel
  :q             quit`

// Session reads search box commands line by line.
type Session struct {
	box      *usecase.SearchBox
	keyboard *Keyboard
	out      io.Writer
}

func NewSession(box *usecase.SearchBox, keyboard *Keyboard, out io.Writer) *Session {
	return &Session{box: box, keyboard: keyboard, out: out}
}

func (s *Session) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	s.prompt()
	for scanner.Scan() {
		if ctx.Err() != nil {
			return nil
		}
		if quit := s.Handle(ctx, scanner.Text()); quit {
			return nil
		}
		s.prompt()
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

// Handle runs one input line and reports whether the session should end.
func (s *Session) Handle(ctx context.Context, line string) bool {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	if !strings.HasPrefix(cmd, ":") && cmd != "" {
		s.box.SetInput(ctx, line)
		s.render()
		return false
	}

	switch cmd {
	case ":q", ":quit":
		return true
	case ":help":
		fmt.Fprintln(s.out, helpText)
	case ":n":
		s.box.HighlightNext()
		s.render()
	case ":p":
		s.box.HighlightPrev()
		s.render()
	case "", ":enter":
		s.report(s.box.Enter(ctx))
	case ":go":
		s.report(s.box.ClickSearchButton(ctx))
	case ":submit":
		s.report(s.box.Submit(ctx, arg))
	case ":focus":
		s.box.Focus()
	case ":blur":
		s.box.Blur(false)
	case ":kb":
		if s.keyboard != nil {
			s.keyboard.TogglePanel()
		}
	default:
		fmt.Fprintf(s.out, "unknown command %s, try :help\n", cmd)
	}
	return false
}

func (s *Session) prompt() {
	marker := ""
	if s.keyboard != nil && s.keyboard.Visible() {
		marker = "[kb] "
	}
	fmt.Fprintf(s.out, "%ssearch> ", marker)
}

func (s *Session) render() {
	if len(s.box.Suggestions()) == 0 {
		return
	}
	highlighted := s.box.Highlighted()
	index := 0
	for _, group := range s.box.Groups() {
		fmt.Fprintf(s.out, "%s\n", group.Kind)
		for _, item := range group.Items {
			cursor := "  "
			if index == highlighted {
				cursor = "> "
			}
			fmt.Fprintf(s.out, "%s%s\n", cursor, describe(item))
			index++
		}
	}
}

func (s *Session) report(_ domain.Navigation, ok bool) {
	if !ok {
		fmt.Fprintln(s.out, "(nothing to do)")
	}
}

func describe(item domain.Suggestion) string {
	if item.URL == "" {
		return item.Label
	}
	return fmt.Sprintf("%s  %s", item.Label, item.URL)
}
