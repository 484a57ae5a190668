package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func registerTools(srv *server.MCPServer, svc *Service) {
	registerCurrentStatusTool(srv, svc)
	registerForecastTool(srv, svc)
	registerExportForecastTool(srv, svc)
}

func diseaseOption(svc *Service) []mcp.PropertyOption {
	opts := []mcp.PropertyOption{
		mcp.Required(),
		mcp.Description("Disease to forecast."),
	}
	if len(svc.Diseases) > 0 {
		opts = append(opts, mcp.Enum(svc.Diseases...))
	}
	return opts
}

func registerCurrentStatusTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"current_status",
		mcp.WithDescription("Current case counts per disease and the overall alert banner."),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		dto, err := svc.CurrentStatus(ctx)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerForecastTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"forecast",
		mcp.WithDescription("Forecast for one disease with alert, stats, trend table and chart layers."),
		mcp.WithString("disease", diseaseOption(svc)...),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		disease, err := request.RequireString("disease")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		dto, err := svc.Forecast(ctx, disease)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func registerExportForecastTool(srv *server.MCPServer, svc *Service) {
	tool := mcp.NewTool(
		"export_forecast_csv",
		mcp.WithDescription("Encode a disease forecast as CSV, optionally saving it to the download directory."),
		mcp.WithString("disease", diseaseOption(svc)...),
		mcp.WithBoolean("save",
			mcp.Description("Also write the file to the download directory."),
		),
	)

	srv.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Disease string `json:"disease"`
			Save    bool   `json:"save"`
		}
		if err := request.BindArguments(&args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
		}
		dto, err := svc.ExportCSV(ctx, args.Disease, args.Save)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return toJSONResult(dto)
	})
}

func toJSONResult(data any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(data)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("marshal error: %v", err)), nil
	}
	return result, nil
}
