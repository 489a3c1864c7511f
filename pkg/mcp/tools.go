package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool names.
const (
	ToolGenerateAll       = "generate_all_component_docs"
	ToolGenerateComponent = "generate_component_doc"
	ToolGenerateStaged    = "generate_staged_component_docs"
	ToolGetComponentDoc   = "get_component_doc"
	ToolListComponents    = "list_components"
	ToolSearchComponents  = "search_components"
)

// ToolNames lists every registered tool in registration order.
var ToolNames = []string{
	ToolGenerateAll,
	ToolGenerateComponent,
	ToolGenerateStaged,
	ToolGetComponentDoc,
	ToolListComponents,
	ToolSearchComponents,
}

func generateAllTool() mcp.Tool {
	return mcp.NewTool(ToolGenerateAll,
		mcp.WithDescription("Generate documentation pages for every component and regenerate the component index."),
	)
}

func generateComponentTool() mcp.Tool {
	return mcp.NewTool(ToolGenerateComponent,
		mcp.WithDescription("Generate the documentation page of one component and regenerate the component index."),
		mcp.WithString("componentName",
			mcp.Required(),
			mcp.Description("Component file name without extension, e.g. 'Button'"),
		),
	)
}

func generateStagedTool() mcp.Tool {
	return mcp.NewTool(ToolGenerateStaged,
		mcp.WithDescription("Generate documentation pages for component files staged in git."),
	)
}

func getComponentDocTool() mcp.Tool {
	return mcp.NewTool(ToolGetComponentDoc,
		mcp.WithDescription("Return the generated Markdown page of a component."),
		mcp.WithString("componentName",
			mcp.Required(),
			mcp.Description("Component name, e.g. 'Button'"),
		),
	)
}

func listComponentsTool() mcp.Tool {
	return mcp.NewTool(ToolListComponents,
		mcp.WithDescription("List documented components, optionally filtered by index category or keyword."),
		mcp.WithString("category",
			mcp.Description("Index category: Base, Navigation, Form, DataDisplay, Feedback, Layout or Example"),
		),
		mcp.WithString("keyword",
			mcp.Description("Case-insensitive match against name and description"),
		),
	)
}

func searchComponentsTool() mcp.Tool {
	return mcp.NewTool(ToolSearchComponents,
		mcp.WithDescription("Search documented components by name first, then description."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search text"),
		),
	)
}
