// Package plan declares the fixed step sequence of one conversational
// turn. It is data, not logic: the chat use case walks the steps and
// binds each name to a handler, which keeps the turn structure visible
// in one place and in trace output.
package plan

// Step names bound by the orchestration loop.
const (
	StepFetchContent = "fetch_content"
	StepRecallMemory = "recall_memory"
	StepBuildPrompt  = "build_prompt"
	StepGenerate     = "generate_response"
	StepPersist      = "persist_exchange"
)

type Step struct {
	Name        string
	Description string
	Tool        string
}

// Conversation is the plan for a single turn, in execution order.
var Conversation = []Step{
	{
		Name:        StepFetchContent,
		Description: "Retrieve video title, channel, duration and transcript",
		Tool:        "youtube",
	},
	{
		Name:        StepRecallMemory,
		Description: "Load the stored conversation and select the recent context window",
		Tool:        "session_store",
	},
	{
		Name:        StepBuildPrompt,
		Description: "Assemble the prompt from transcript, context window and query",
		Tool:        "prompt",
	},
	{
		Name:        StepGenerate,
		Description: "Generate the assistant response",
		Tool:        "llm",
	},
	{
		Name:        StepPersist,
		Description: "Append the exchange and persist the session",
		Tool:        "session_store",
	},
}
