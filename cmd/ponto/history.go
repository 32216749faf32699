package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"ponto.app/ponto/core"
	"ponto.app/ponto/model"
)

func (a *app) historyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse and manage past days",
	}

	cmd.AddCommand(
		a.historyListCmd(),
		a.historyExportCmd(),
		a.historyDeleteCmd(),
		a.historyClearCmd(),
		a.historyWorkbookCmd(),
	)
	return cmd
}

func (a *app) historyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored days, most recent first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			overview, err := e.HistoryOverview(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(overview) == 0 {
				fmt.Fprintln(out, dimStyle.Render("Nenhum histórico"))
				return nil
			}
			for _, d := range overview {
				fmt.Fprintf(out, "%s  %s  %s  %v\n", d.Date, core.FormatHoursMinutes(d.Worked), core.FormatBalance(d.Balance), d.Times)
			}
			return nil
		},
	}
}

func (a *app) historyExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <YYYY-MM-DD>",
		Short: "Export a stored day as text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := model.ParseDayKey(args[0])
			if err != nil {
				return err
			}
			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			text, err := e.ExportHistoryDay(cmd.Context(), day)
			if err != nil {
				return err
			}
			return writeOutput(cmd.OutOrStdout(), output, text)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}

func (a *app) historyDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <YYYY-MM-DD>...",
		Short: "Delete stored days",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			days := make([]model.DayKey, len(args))
			for i, arg := range args {
				day, err := model.ParseDayKey(arg)
				if err != nil {
					return err
				}
				days[i] = day
			}

			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			if err := e.DeleteHistoryDays(cmd.Context(), days); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d dia(s) removido(s)\n", len(days))
			return nil
		},
	}
}

func (a *app) historyClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every stored day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to clear history without --yes")
			}
			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			if err := e.ClearHistory(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Histórico apagado")
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion")
	return cmd
}

func (a *app) historyWorkbookCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "workbook [YYYY-MM-DD...]",
		Short: "Write stored days to a spreadsheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			days := make([]model.DayKey, 0, len(args))
			for _, arg := range args {
				day, err := model.ParseDayKey(arg)
				if err != nil {
					return err
				}
				days = append(days, day)
			}

			e, err := a.open(cmd.Context())
			if err != nil {
				return err
			}
			f, err := e.Workbook(cmd.Context(), days)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := f.SaveAs(output); err != nil {
				return fmt.Errorf("failed to save %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Planilha salva em %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "ponto_eletronico.xlsx", "Spreadsheet file")
	return cmd
}
