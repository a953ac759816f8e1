package intelligence

import (
	"strings"

	"github.com/progdeck/progdeck/internal/domain"
)

// buildAskSystemPrompt embeds the full program state so the model can answer
// questions grounded only in the provided data.
func buildAskSystemPrompt(data *domain.ProgramData) string {
	var b strings.Builder

	b.WriteString("You are an expert Program Management AI Assistant.\n")
	b.WriteString("Below is the current state of a Program consisting of Projects, Resources, Milestones, and Deliverables.\n\n")

	b.WriteString("PROJECTS:\n")
	b.WriteString(mustJSON(projectPayloads(data.Projects)))
	b.WriteString("\n\nRESOURCES:\n")
	b.WriteString(mustJSON(resourcePayloads(data.Resources)))
	b.WriteString("\n\nMILESTONES (Important Events):\n")
	b.WriteString(mustJSON(milestonePayloads(data.Milestones)))
	b.WriteString("\n\nDELIVERABLES:\n")
	b.WriteString(mustJSON(deliverablePayloads(data.Deliverables)))

	b.WriteString(`

Answer user questions based ONLY on the provided data.
Use the following relationships:
- Projects are identified by P## (e.g., P01).
- Deliverables are identified by D## and relate to a project via projectCode.
- Milestones are identified by M## and relate to a project via projectCode.
- Resources are assigned to projects via projectAssignments (list of P##).

CRITICAL: ALWAYS format all dates as MM/DD/YY (e.g., 12/25/26). Do not use any other date format.

Be concise, helpful, and professional. If you don't know the answer, say you don't have enough data.`)

	return b.String()
}

// buildAskUserPrompt prepends the chat history so follow-up questions can
// reference earlier turns.
func buildAskUserPrompt(history []domain.ChatMessage, question string) string {
	if len(history) == 0 {
		return question
	}

	var b strings.Builder
	b.WriteString("Previous conversation:\n")
	for _, msg := range history {
		switch msg.Role {
		case domain.ChatUser:
			b.WriteString("User: ")
		default:
			b.WriteString("Assistant: ")
		}
		b.WriteString(msg.Text)
		b.WriteString("\n\n")
	}
	b.WriteString("Current question:\n")
	b.WriteString(question)
	return b.String()
}

// buildPlanCheckPrompt asks the model to flag projects whose status details
// lack a clear recovery plan.
func buildPlanCheckPrompt(projects []planCheckPayload) string {
	var b strings.Builder

	b.WriteString(`Analyze the following projects that are currently AT RISK or BLOCKED.
Determine if the "details" field provides a clear, actionable "Path to Green" (a plan to get back on track).
If a clear recovery plan is NOT obvious, list the Project Code.

You must output ONLY a JSON object with this exact shape:
{"needsPlan": ["P01", ...]}
where needsPlan is the array of Project Codes that lack an obvious recovery plan.
Output an empty array if every project has a clear plan.

PROJECTS TO ANALYZE:
`)
	b.WriteString(mustJSON(projects))

	return b.String()
}

// buildSummaryPrompt builds the scoped executive-summary request. The scope
// rules are strict: the model must treat the selection as the whole program.
func buildSummaryPrompt(
	projects []summaryProjectPayload,
	resources []summaryResourcePayload,
	milestones []milestonePayload,
	deliverables []deliverablePayload,
	planContext string,
) string {
	var b strings.Builder

	b.WriteString(`Based on the following data, generate a high-level "Executive Summary" in rich Markdown format.

STRICT SCOPE REQUIREMENT:
You are generating a summary ONLY for the specific projects listed in the "PROJECTS TO SUMMARIZE" section.
1. The "OVERALL PROGRAM HEALTH" section MUST be calculated and described based solely on the statuses, risks, and health of these specific projects. If all selected projects are on track, the program health is healthy, regardless of other projects in the database.
2. DO NOT include, mention, or count any projects that are not in the "PROJECTS TO SUMMARIZE" list.
3. The summary must be a self-contained report as if the rest of the program doesn't exist.

IMPORTANT FORMATTING RULES:
- Do NOT include a top-level title or header. Start directly with the content.
- DO NOT use the ">" sign for blockquotes or indentation.
- CRITICAL: Use FULL NAMES for Projects (e.g., "Mobile App Redesign" instead of "P01").
- CRITICAL: Use FULL NAMES for Resources followed by their ROLE CODE in parentheses.
  Example: "Alice Johnson (UXD01)".
- CRITICAL: ALWAYS format all dates as MM/DD/YY (e.g., 12/25/26).
- STYLE: Every time you mention the phrase "Path to Green", you MUST bold it as **Path to Green**.

Structure the response with:
1. Overall Program Health bolded (reflecting only the selected subset).
2. Summary of progress per project.
3. Major upcoming deliverables and MILESTONES (important events like reviews or handoffs).
4. Risks/Blockers with the **Path to Green**.

Keep it professional and concise (max 250 words).

PROJECTS TO SUMMARIZE (Strictly limit to these):
`)
	b.WriteString(mustJSON(projects))
	b.WriteString("\n\nRESOURCES (Filtered to those on selected projects):\n")
	b.WriteString(mustJSON(resources))
	b.WriteString("\n\nMILESTONES (filtered):\n")
	b.WriteString(mustJSON(milestones))
	b.WriteString("\n\nDELIVERABLES (filtered):\n")
	b.WriteString(mustJSON(deliverables))
	if planContext != "" {
		b.WriteString("\n\nADDITIONAL PATH TO GREEN CONTEXT PROVIDED BY USER:\n")
		b.WriteString(planContext)
	}

	return b.String()
}
