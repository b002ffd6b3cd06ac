package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rocketdigital/taskpilot/internal/clickup"
	"github.com/rocketdigital/taskpilot/internal/ui"
	"github.com/spf13/cobra"
)

var (
	clickupWorkspaceID string
	clickupSpaceID     string
)

var clickupCmd = &cobra.Command{
	Use:   "clickup",
	Short: "Inspect the ClickUp hierarchy the task form offers",
}

var clickupWorkspaceCmd = &cobra.Command{
	Use:   "workspace",
	Short: "Show the configured workspace",
	RunE: withClickUp(func(ctx context.Context, cmd *cobra.Command, svc *clickup.Service) error {
		ws, err := svc.FindWorkspace(ctx)
		if err != nil {
			return err
		}
		return printRows(cmd, "Workspace", ws, []string{"ID", "Nombre"}, [][]string{{ws.ID, ws.Name}})
	}),
}

var clickupSpacesCmd = &cobra.Command{
	Use:   "spaces",
	Short: "List the projects (spaces) of the workspace",
	RunE: withClickUp(func(ctx context.Context, cmd *cobra.Command, svc *clickup.Service) error {
		id, err := workspaceID(ctx, svc)
		if err != nil {
			return err
		}
		spaces, err := svc.ListSpaces(ctx, id)
		if err != nil {
			return err
		}
		rows := make([][]string, len(spaces))
		for i, s := range spaces {
			rows[i] = []string{s.ID, s.Name}
		}
		return printRows(cmd, "Proyectos", spaces, []string{"ID", "Nombre"}, rows)
	}),
}

var clickupSprintsCmd = &cobra.Command{
	Use:   "sprints",
	Short: "List the sprints of the sprint folder",
	RunE: withClickUp(func(ctx context.Context, cmd *cobra.Command, svc *clickup.Service) error {
		id, err := workspaceID(ctx, svc)
		if err != nil {
			return err
		}
		sprints := svc.ListSprints(ctx, id)
		rows := make([][]string, len(sprints))
		for i, s := range sprints {
			rows[i] = []string{s.ID, s.Name}
		}
		return printRows(cmd, "Sprints", sprints, []string{"ID", "Nombre"}, rows)
	}),
}

var clickupMembersCmd = &cobra.Command{
	Use:   "members",
	Short: "List the workspace members",
	RunE: withClickUp(func(ctx context.Context, cmd *cobra.Command, svc *clickup.Service) error {
		id, err := workspaceID(ctx, svc)
		if err != nil {
			return err
		}
		members := svc.ListMembers(ctx, id)
		rows := make([][]string, len(members))
		for i, m := range members {
			rows[i] = []string{strconv.FormatInt(m.ID, 10), m.Username, m.Email}
		}
		return printRows(cmd, "Miembros", members, []string{"ID", "Usuario", "Email"}, rows)
	}),
}

var clickupEpicsCmd = &cobra.Command{
	Use:   "epics",
	Short: "List the epics (lists) of a space",
	RunE: withClickUp(func(ctx context.Context, cmd *cobra.Command, svc *clickup.Service) error {
		epics := svc.ListEpics(ctx, clickupSpaceID)
		rows := make([][]string, len(epics))
		for i, e := range epics {
			rows[i] = []string{e.ID, e.Name}
		}
		return printRows(cmd, "Épicas", epics, []string{"ID", "Nombre"}, rows)
	}),
}

var clickupStatusesCmd = &cobra.Command{
	Use:   "statuses",
	Short: "List the statuses of a space",
	RunE: withClickUp(func(ctx context.Context, cmd *cobra.Command, svc *clickup.Service) error {
		statuses := svc.ListStatuses(ctx, clickupSpaceID)
		rows := make([][]string, len(statuses))
		for i, s := range statuses {
			rows[i] = []string{s.ID, s.Status, s.Type}
		}
		return printRows(cmd, "Estados", statuses, []string{"ID", "Estado", "Tipo"}, rows)
	}),
}

func init() {
	rootCmd.AddCommand(clickupCmd)
	clickupCmd.AddCommand(clickupWorkspaceCmd, clickupSpacesCmd, clickupSprintsCmd, clickupMembersCmd, clickupEpicsCmd, clickupStatusesCmd)

	for _, c := range []*cobra.Command{clickupSpacesCmd, clickupSprintsCmd, clickupMembersCmd} {
		c.Flags().StringVar(&clickupWorkspaceID, "workspace-id", "", "workspace id (default: the configured workspace)")
	}
	for _, c := range []*cobra.Command{clickupEpicsCmd, clickupStatusesCmd} {
		c.Flags().StringVar(&clickupSpaceID, "space-id", "", "space id (required)")
		_ = c.MarkFlagRequired("space-id")
	}
}

// withClickUp adapts a handler that needs the ClickUp service to RunE.
func withClickUp(run func(ctx context.Context, cmd *cobra.Command, svc *clickup.Service) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		cfg, err := loadAppConfig()
		if err != nil {
			return err
		}
		svc, err := newClickUpService(cfg, nil)
		if err != nil {
			return err
		}
		return run(cmd.Context(), cmd, svc)
	}
}

func workspaceID(ctx context.Context, svc *clickup.Service) (string, error) {
	if clickupWorkspaceID != "" {
		return clickupWorkspaceID, nil
	}
	ws, err := svc.FindWorkspace(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve workspace: %w", err)
	}
	return ws.ID, nil
}

// printRows writes v in the structured format, or rows as a table.
func printRows(cmd *cobra.Command, title string, v any, headers []string, rows [][]string) error {
	out := cmd.OutOrStdout()
	if done, err := writeStructured(out, outputFormat, v); done {
		return err
	}
	ui.RenderList(out, title, headers, rows)
	return nil
}
