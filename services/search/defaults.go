package search

import "github.com/samber/lo"

// DefaultDocuments is the corpus an Index starts with when none is supplied.
func DefaultDocuments() []Document {
	return []Document{
		{
			Title:    "Getting Started",
			URL:      "/docs/quick-start",
			Content:  lo.ToPtr("Learn how to get started with Everything Claude Code. Installation and setup guide."),
			Category: lo.ToPtr("Quick Start"),
		},
		{
			Title:    "Commands Overview",
			URL:      "/docs/core-concepts/commands",
			Content:  lo.ToPtr("All available slash commands in ECC. Plan, TDD, E2E, Code Review, and more."),
			Category: lo.ToPtr("Core Concepts"),
		},
		{
			Title:    "TDD Guide",
			URL:      "/docs/tutorials/tdd-masterclass",
			Content:  lo.ToPtr("Test-Driven Development masterclass. Red, green, refactor cycle explained."),
			Category: lo.ToPtr("Tutorials"),
		},
		{
			Title:    "Agents",
			URL:      "/docs/core-concepts/agents",
			Content:  lo.ToPtr("Understanding agents in ECC. Planner, TDD guide, E2E runner, and custom agents."),
			Category: lo.ToPtr("Core Concepts"),
		},
		{
			Title:    "Hooks",
			URL:      "/docs/core-concepts/hooks",
			Content:  lo.ToPtr("Automation hooks for pre and post tool execution. Custom workflow automation."),
			Category: lo.ToPtr("Core Concepts"),
		},
	}
}
