package crew

import "fmt"

const (
	RoleStoryWriter       = "Story Writer"
	RoleTitleGenerator    = "Title Generator"
	RoleCharacterDesigner = "Character Designer"
	RoleSceneDesigner     = "Scene Designer"
	RoleMusicDesigner     = "Music Designer"
	RoleNarrator          = "Narrator"
)

// Agent is the persona a task is performed as.
type Agent struct {
	Role      string
	Goal      string
	Backstory string
}

// SystemPrompt renders the persona for the generator.
func (a Agent) SystemPrompt() string {
	return fmt.Sprintf(
		"You are the %s. %s\nYour personal goal is: %s",
		a.Role,
		a.Backstory,
		a.Goal,
	)
}

// DefaultAgents returns the six members of the film crew keyed by role.
func DefaultAgents(spec MovieSpec) map[string]Agent {
	return map[string]Agent{
		RoleStoryWriter: {
			Role: RoleStoryWriter,
			Goal: "Write a compelling short movie script with clear scenes and characters",
			Backstory: "You are an experienced screenwriter who specializes in engaging short films. " +
				"You focus on clear, vivid scenes and memorable characters.",
		},
		RoleTitleGenerator: {
			Role: RoleTitleGenerator,
			Goal: "Generate a compelling and concise movie title",
			Backstory: "You are a title specialist who crafts memorable, marketable titles " +
				"that capture the essence of a story.",
		},
		RoleCharacterDesigner: {
			Role: RoleCharacterDesigner,
			Goal: "Create exactly one image generation prompt per character",
			Backstory: "You turn character descriptions into precise prompts for image models. " +
				"Each prompt produces a consistent, high-quality character portrait.",
		},
		RoleSceneDesigner: {
			Role: RoleSceneDesigner,
			Goal: "Create exactly one image generation prompt per scene with strictly one character per scene",
			Backstory: "You are a visual storyteller who writes detailed scene prompts for image models. " +
				"Every scene you describe features exactly one character, keeping the visual narrative simple.",
		},
		RoleMusicDesigner: {
			Role: RoleMusicDesigner,
			Goal: "Create music generation prompts for the movie",
			Backstory: "You are a composer who writes prompts for AI music generation, " +
				"matching mood and theme while keeping the score consistent across scenes.",
		},
		RoleNarrator: {
			Role: RoleNarrator,
			Goal: fmt.Sprintf(
				"Write narration for every scene that fits within %d seconds",
				spec.SceneSeconds,
			),
			Backstory: "You are a narrator who writes precisely timed, concise narration. " +
				"You never let a line run past the time its scene is on screen.",
		},
	}
}
