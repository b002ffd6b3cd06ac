package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rocketdigital/taskpilot/internal/attachment"
	"github.com/rocketdigital/taskpilot/internal/clickup"
	"github.com/rocketdigital/taskpilot/internal/logger"
	"github.com/rocketdigital/taskpilot/internal/suggest"
	"github.com/rocketdigital/taskpilot/internal/ui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var (
	suggestAttachments []string
	suggestWorkspaceID string
	suggestSpaceID     string
	suggestNoContext   bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest [description]",
	Short: "Ask the AI for a structured task suggestion",
	Long: `Generate a task suggestion from a free-text description.

The description is taken from the arguments, or from stdin when it is piped.
Unless --no-context is given, spaces, members and sprints of the configured
ClickUp workspace (and epics and statuses of --space-id) are offered to the
AI so it can pick ids from them.

Examples:
  taskpilot suggest "El botón de pago no responde en móvil"
  cat brief.md | taskpilot suggest --attach mockup.png --space-id 90123 -o json`,
	RunE: runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)
	suggestCmd.Flags().StringSliceVarP(&suggestAttachments, "attach", "a", nil, "file to attach (repeatable)")
	suggestCmd.Flags().StringVar(&suggestWorkspaceID, "workspace-id", "", "workspace to read context from (default: the configured workspace)")
	suggestCmd.Flags().StringVar(&suggestSpaceID, "space-id", "", "space whose epics and statuses are offered")
	suggestCmd.Flags().BoolVar(&suggestNoContext, "no-context", false, "do not read context lists from ClickUp")
}

func runSuggest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}

	description, err := readDescription(args, cmd.InOrStdin(), stdinIsPiped())
	if err != nil {
		return err
	}
	files, err := attachment.Load(afero.NewOsFs(), suggestAttachments)
	if err != nil {
		return err
	}
	if strings.TrimSpace(description) == "" && len(files) == 0 {
		return fmt.Errorf("describe the task as an argument or on stdin, or attach files with --attach")
	}

	engine, err := newEngine(ctx, cfg)
	if err != nil {
		return err
	}

	data := suggest.TaskFormData{Description: attachment.AppendToDescription(description, files)}
	if !suggestNoContext {
		if err := cfg.RequireClickUpToken(); err == nil {
			svc, err := newClickUpService(cfg, nil)
			if err != nil {
				return err
			}
			if err := loadContext(ctx, svc, suggestWorkspaceID, suggestSpaceID, &data); err != nil {
				return err
			}
		}
	}
	logger.SetLastDescription(data.Description)

	suggestion, err := engine.Suggest(ctx, data)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if done, err := writeStructured(out, outputFormat, suggestion); done {
		return err
	}
	ui.RenderSuggestion(out, suggestion, data)
	return nil
}

// readDescription joins args, or reads stdin when nothing was passed and
// stdin is not a terminal.
func readDescription(args []string, stdin io.Reader, piped bool) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if !piped {
		return "", nil
	}
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read description from stdin: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}

func stdinIsPiped() bool {
	return !term.IsTerminal(int(os.Stdin.Fd()))
}

// contextSource is the hierarchy surface loadContext reads from.
type contextSource interface {
	FindWorkspace(ctx context.Context) (*clickup.Workspace, error)
	ListSpaces(ctx context.Context, workspaceID string) ([]clickup.Space, error)
	ListSprints(ctx context.Context, workspaceID string) []clickup.Sprint
	ListMembers(ctx context.Context, workspaceID string) []clickup.Member
	ListEpics(ctx context.Context, spaceID string) []clickup.Epic
	ListStatuses(ctx context.Context, spaceID string) []clickup.Status
}

// loadContext fills the available* lists of data the way the task form does:
// workspace-level lists always, space-level lists when spaceID is set.
func loadContext(ctx context.Context, src contextSource, workspaceID, spaceID string, data *suggest.TaskFormData) error {
	if workspaceID == "" {
		ws, err := src.FindWorkspace(ctx)
		if err != nil {
			return err
		}
		workspaceID = ws.ID
	}

	spaces, err := src.ListSpaces(ctx, workspaceID)
	if err != nil {
		return err
	}
	for _, s := range spaces {
		data.AvailableSpaces = append(data.AvailableSpaces, suggest.SpaceRef{ID: s.ID, Name: s.Name})
	}
	for _, m := range src.ListMembers(ctx, workspaceID) {
		data.AvailableMembers = append(data.AvailableMembers, suggest.MemberRef{ID: m.ID, Username: m.Username, Email: m.Email})
	}
	for _, s := range src.ListSprints(ctx, workspaceID) {
		data.AvailableSprints = append(data.AvailableSprints, suggest.SprintRef{ID: s.ID, Name: s.Name})
	}

	if spaceID == "" {
		return nil
	}
	for _, e := range src.ListEpics(ctx, spaceID) {
		data.AvailableEpics = append(data.AvailableEpics, suggest.EpicRef{ID: e.ID, Name: e.Name})
	}
	for _, s := range src.ListStatuses(ctx, spaceID) {
		data.AvailableStatuses = append(data.AvailableStatuses, suggest.StatusRef{ID: s.ID, Status: s.Status})
	}
	return nil
}
