package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/robalobadob/numguess/internal/game"
	"github.com/robalobadob/numguess/internal/i18n"
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("62")).Bold(true)
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	wonStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	lostStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

func newPlayCmd() *cobra.Command {
	var lang string
	var strict bool
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, ok := i18n.ParseTag(lang)
			if !ok {
				return fmt.Errorf("unsupported language %q", lang)
			}
			eng := game.NewEngine(
				game.WithPrinter(i18n.Printer(tag)),
				game.WithStrictParsing(strict),
			)
			return play(cmd.InOrStdin(), cmd.OutOrStdout(), eng)
		},
	}
	cmd.Flags().StringVar(&lang, "lang", "en", "message language (en, fr)")
	cmd.Flags().BoolVar(&strict, "strict", false, "reject guesses with trailing non-digits")
	return cmd
}

// play runs rounds until the input ends or the player declines a new round.
func play(in io.Reader, out io.Writer, eng *game.Engine) error {
	sc := bufio.NewScanner(in)
	p := eng.Printer()
	s := eng.NewSession("")

	fmt.Fprintln(out, titleStyle.Render(p.Sprintf(i18n.KeyTitle)))
	for {
		fmt.Fprintln(out, styleFor(s.Status).Render(s.Message))

		if s.Status.Over() {
			fmt.Fprint(out, p.Sprintf(i18n.KeyPlayAgain))
			if !sc.Scan() {
				fmt.Fprintln(out)
				return sc.Err()
			}
			if !affirmative(sc.Text()) {
				return nil
			}
			s = eng.Restart(s)
			continue
		}

		fmt.Fprint(out, mutedStyle.Render(fmt.Sprintf("%s %d/%d", p.Sprintf(i18n.KeyAttempts), s.Attempts, game.MaxAttempts))+" > ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		s = eng.SubmitGuess(eng.ChangeInput(s, sc.Text()))
	}
}

func styleFor(st game.Status) lipgloss.Style {
	switch st {
	case game.StatusWon:
		return wonStyle
	case game.StatusLost:
		return lostStyle
	default:
		return messageStyle
	}
}

// affirmative accepts yes in either supported language.
func affirmative(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes", "o", "oui":
		return true
	}
	return false
}
