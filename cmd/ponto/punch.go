package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"ponto.app/ponto/core"
	"ponto.app/ponto/infrastructure/communication"
	"ponto.app/ponto/model"
)

var (
	aboveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	belowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

func (a *app) punchCmd() *cobra.Command {
	var (
		other       bool
		description string
	)

	cmd := &cobra.Command{
		Use:   "punch",
		Short: "Record a punch now",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}

			label := model.LabelUnset
			if other {
				label = model.Other
			}
			ev, err := e.AddPunch(cmd.Context(), label, description)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n", ev.Timestamp.Format("15:04:05"), ev.Label, ev.Description)
			return nil
		},
	}

	cmd.Flags().BoolVar(&other, "other", false, "Record a free-form punch outside the sequence")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Punch description")
	return cmd
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List today's punches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			events, err := e.ListTodayEvents(cmd.Context())
			if err != nil {
				return err
			}
			next, err := e.NextLabel(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(out, dimStyle.Render("Nenhum registro hoje"))
			}
			printEvents(out, events)
			fmt.Fprintf(out, "Próximo: %s\n", next)
			return nil
		},
	}
}

func printEvents(out io.Writer, events []model.PunchEvent) {
	for i, ev := range events {
		fmt.Fprintf(out, "%3d  %s  %-16s  %s\n", i, ev.Timestamp.Format("15:04:05"), ev.Label, ev.Description)
	}
}

func parseIndex(s string) (int, error) {
	idx, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", core.ErrInvalidIndex, s)
	}
	return idx, nil
}

func (a *app) editCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "edit <index> <timestamp> <description>",
		Short:   "Change the time and description of a punch",
		Example: `  ponto edit 0 "2026-10-18 08:05" "Primeira Entrada"`,
		Args:    cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			if err := e.EditPunch(cmd.Context(), idx, args[1], strings.Join(args[2:], " ")); err != nil {
				return err
			}
			events, err := e.ListTodayEvents(cmd.Context())
			if err != nil {
				return err
			}
			printEvents(cmd.OutOrStdout(), events)
			return nil
		},
	}
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <index>",
		Short: "Remove a punch",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			if err := e.DeletePunch(cmd.Context(), idx); err != nil {
				return err
			}
			events, err := e.ListTodayEvents(cmd.Context())
			if err != nil {
				return err
			}
			printEvents(cmd.OutOrStdout(), events)
			return nil
		},
	}
}

func formatSummary(s core.WorkSummary) string {
	balance := core.FormatBalance(s.Balance)
	if s.Balance >= 0 {
		balance = aboveStyle.Render(balance)
	} else {
		balance = belowStyle.Render(balance)
	}

	line := fmt.Sprintf("Trabalhado: %s  Saldo: %s  %s 8 horas diárias",
		core.FormatHoursMinutes(s.Worked), balance, s.Status())
	if hint := core.CheckoutHint(s); hint != "" {
		line += "\n" + dimStyle.Render(hint)
	}
	return line
}

func (a *app) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show worked time and balance for today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			s, err := e.Summary(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatSummary(s))
			return nil
		},
	}
}

// writeOutput writes text to path, or to out when path is empty.
func writeOutput(out io.Writer, path string, text string) error {
	if path == "" {
		_, err := fmt.Fprintln(out, text)
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func (a *app) exportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export today's punches as text",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			text, err := e.ExportToday(cmd.Context())
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, text)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}

func (a *app) watchCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Refresh the summary until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := a.open(ctx)
			if err != nil {
				return err
			}

			notifier := a.notifier()
			watcher := &core.TargetWatcher{
				OnReached: func(day model.DayKey, s core.WorkSummary) {
					msg := fmt.Sprintf("%s: 8 horas completas", day.Display())
					if err := notifier.Info(ctx, msg); err != nil {
						a.logger.Error("failed to notify", "err", err)
					}
				},
			}

			out := cmd.OutOrStdout()
			err = core.RunTicker(ctx, interval, func(time.Time) {
				day, err := e.Today(ctx)
				if err != nil {
					a.logger.Error("failed to sync day", "err", err)
					return
				}
				s, err := e.Summary(ctx)
				if err != nil {
					a.logger.Error("failed to compute summary", "err", err)
					return
				}
				fmt.Fprintln(out, formatSummary(s))
				watcher.Observe(day, s)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", time.Second, "Refresh interval")
	return cmd
}

func (a *app) notifier() communication.Notifier {
	if a.cfg.Slack.Token == "" {
		return communication.Nop{}
	}
	return communication.NewSlack(a.cfg.Slack.Token, communication.SlackOption{
		InfoChannelID:  a.cfg.Slack.InfoChannelID,
		ErrorChannelID: a.cfg.Slack.ErrorChannelID,
	})
}
