package cmd

import (
	"context"
	"fmt"
	"os"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rocketdigital/taskpilot/internal/clickup"
	"github.com/rocketdigital/taskpilot/internal/config"
	mcppresenter "github.com/rocketdigital/taskpilot/internal/mcp"
	"github.com/rocketdigital/taskpilot/internal/suggest"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start an MCP server exposing task suggestion and creation",
	Long: `Start a Model Context Protocol (MCP) server on stdio so AI assistants can
call two tools:

  suggest_task  description (+ context lists, attachments) -> task suggestion
  create_task   {spaceId, taskData} -> created ClickUp task

The server runs until the client disconnects.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMCPServer(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

// mcpJSONResponse wraps tool output in an MCP tool result.
func mcpJSONResponse(text string) (*mcpsdk.CallToolResultFor[any], error) {
	return &mcpsdk.CallToolResultFor[any]{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: text}},
	}, nil
}

// mcpErrorResponse wraps an error in an MCP tool result with IsError=true.
// Tool errors go in the result, not the protocol, so the model can see them.
func mcpErrorResponse(text string) (*mcpsdk.CallToolResultFor[any], error) {
	return &mcpsdk.CallToolResultFor[any]{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: text}},
		IsError: true,
	}, nil
}

func mcpToolResponse(result *mcppresenter.ToolResult, err error) (*mcpsdk.CallToolResultFor[any], error) {
	if err != nil {
		return mcpErrorResponse(mcppresenter.FormatError(err.Error()))
	}
	if result.Error != "" {
		return mcpErrorResponse(result.Error)
	}
	return mcpJSONResponse(result.Content)
}

func runMCPServer(ctx context.Context) error {
	// stdout carries JSON-RPC; status output goes to stderr only.
	fmt.Fprintln(os.Stderr, "taskpilot MCP server starting...")

	cfg, err := loadAppConfig()
	if err != nil {
		return err
	}
	tel := newTelemetry(cfg)
	defer func() { _ = tel.Close() }()

	server := newMCPServer(cfg,
		&lazy[*suggest.Engine]{build: func(ctx context.Context) (*suggest.Engine, error) { return newEngine(ctx, cfg) }},
		&lazy[*clickup.Service]{build: func(context.Context) (*clickup.Service, error) { return newClickUpService(cfg, tel) }},
	)

	if err := server.Run(ctx, mcpsdk.NewStdioTransport()); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}

func newMCPServer(cfg *config.AppConfig, engine *lazy[*suggest.Engine], cu *lazy[*clickup.Service]) *mcpsdk.Server {
	impl := &mcpsdk.Implementation{
		Name:    "taskpilot-mcp",
		Version: version,
	}
	serverOpts := &mcpsdk.ServerOptions{
		InitializedHandler: func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.InitializedParams) {
			fmt.Fprintln(os.Stderr, "MCP connection established")
			if verbose {
				fmt.Fprintf(os.Stderr, "[DEBUG] provider=%s model=%s workspace=%q\n", cfg.LLM.Provider, cfg.LLM.Model, cfg.ClickUp.WorkspaceName)
			}
		},
	}
	server := mcpsdk.NewServer(impl, serverOpts)

	suggestTool := &mcpsdk.Tool{
		Name: mcppresenter.ToolSuggestTask,
		Description: `Propose a structured ClickUp task (name, markdown description, type, priority,
estimate in minutes, tags and suggested space/assignees/sprint/epic/status ids) from a
free-text description. Pass the available* lists so the suggestion only uses real ids.`,
	}
	mcpsdk.AddTool(server, suggestTool, func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[mcppresenter.SuggestTaskParams]) (*mcpsdk.CallToolResultFor[any], error) {
		e, err := engine.get(ctx)
		if err != nil {
			return mcpErrorResponse(mcppresenter.FormatError(err.Error()))
		}
		return mcpToolResponse(mcppresenter.HandleSuggestTask(ctx, e, params.Arguments))
	})

	createTool := &mcpsdk.Tool{
		Name: mcppresenter.ToolCreateTask,
		Description: `Create a task in a ClickUp space. taskData.timeEstimate is in minutes. The task is
created in the epic list when taskData.epicId is set, otherwise in the first list of the
space, and moved into taskData.sprintId afterwards.`,
	}
	mcpsdk.AddTool(server, createTool, func(ctx context.Context, session *mcpsdk.ServerSession, params *mcpsdk.CallToolParamsFor[mcppresenter.CreateTaskParams]) (*mcpsdk.CallToolResultFor[any], error) {
		svc, err := cu.get(ctx)
		if err != nil {
			return mcpErrorResponse(mcppresenter.FormatError(err.Error()))
		}
		return mcpToolResponse(mcppresenter.HandleCreateTask(ctx, svc, params.Arguments))
	})

	return server
}
