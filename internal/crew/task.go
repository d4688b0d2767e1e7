package crew

import (
	"fmt"
	"strings"
)

// MovieSpec is the shape of the film the crew is asked to produce.
type MovieSpec struct {
	Scenes        int
	SceneSeconds  int
	MaxCharacters int
}

func DefaultMovieSpec() MovieSpec {
	return MovieSpec{
		Scenes:        5,
		SceneSeconds:  5,
		MaxCharacters: 2,
	}
}

// Task is one step of the pipeline, performed by Agent.
type Task struct {
	Name           string
	Agent          Agent
	Description    string
	ExpectedOutput string
}

const (
	TaskScript           = "write_script"
	TaskCharacterPrompts = "create_character_prompts"
	TaskScenePrompts     = "create_scene_prompts"
	TaskMusicPrompt      = "create_music_prompt"
	TaskNarration        = "create_narration"
	TaskTitle            = "generate_title"
)

// DefaultTasks returns the pipeline in execution order: script, character
// prompts, scene prompts, music prompt, narration, title.
func DefaultTasks(spec MovieSpec) []Task {
	agents := DefaultAgents(spec)

	return []Task{
		{
			Name:  TaskScript,
			Agent: agents[RoleStoryWriter],
			Description: lines(
				fmt.Sprintf("Write a short movie script (%d scenes, each scene at most %d seconds).", spec.Scenes, spec.SceneSeconds),
				"Requirements:",
				fmt.Sprintf("1. At most %d unique characters across all scenes", spec.MaxCharacters),
				"2. Exactly one character per scene, no exceptions",
				"3. At least one character appears in more than one scene",
				"4. A clear beginning, middle, and end",
				"5. Scene descriptions with actions and monologues",
			),
			ExpectedOutput: lines(
				"A well-structured movie script containing:",
				"- Title",
				fmt.Sprintf("- Character list with descriptions (at most %d characters)", spec.MaxCharacters),
				fmt.Sprintf("- %d scenes with clear descriptions", spec.Scenes),
				"- Exactly one character and their actions or monologue per scene",
			),
		},
		{
			Name:  TaskCharacterPrompts,
			Agent: agents[RoleCharacterDesigner],
			Description: lines(
				"Based on the script, create exactly one image generation prompt per character.",
				"Each prompt should:",
				"1. Be detailed and consistent with the script",
				"2. Include physical appearance, clothing, and expression",
				"3. Specify artistic style and quality parameters",
			),
			ExpectedOutput: "A list of image generation prompts, one per character, " +
				"covering physical description, clothing, expression, and artistic style.",
		},
		{
			Name:  TaskScenePrompts,
			Agent: agents[RoleSceneDesigner],
			Description: lines(
				"Create one image generation prompt for each scene in the movie.",
				"Each prompt should:",
				`1. Start with "Characters in scene: [the characters present]"`,
				"2. Focus on the single character in that scene",
				"3. Stay consistent with the character prompts",
				"4. Include setting, lighting, and camera angle",
				"5. Specify artistic style and quality parameters",
			),
			ExpectedOutput: fmt.Sprintf(
				"%d image generation prompts, one per scene, each naming the character present "+
					"and detailing action and setting.",
				spec.Scenes,
			),
		},
		{
			Name:  TaskMusicPrompt,
			Agent: agents[RoleMusicDesigner],
			Description: lines(
				"Create music generation prompts for the movie.",
				"The prompts should:",
				"1. Match the overall mood and theme",
				fmt.Sprintf("2. Specify style and era for a total runtime of %d seconds", spec.Scenes*spec.SceneSeconds),
				"3. Consider scene transitions",
			),
			ExpectedOutput: "Music generation prompts that match the mood, specify duration and style, " +
				"and account for transitions.",
		},
		{
			Name:  TaskNarration,
			Agent: agents[RoleNarrator],
			Description: lines(
				fmt.Sprintf("Write the narration for all %d scenes, in scene order.", spec.Scenes),
				fmt.Sprintf("Scene N is on screen from second (N-1)*%d for at most %d seconds.", spec.SceneSeconds, spec.SceneSeconds),
				"For each scene give:",
				fmt.Sprintf(`- "duration": how many seconds the narration is shown, greater than 0 and at most %d`, spec.SceneSeconds),
				`- "text": clear, concise narration that can be read within that duration`,
				"Respond with a JSON array only, for example:",
				fmt.Sprintf(`[{"duration": %d, "text": "The city sleeps."}]`, spec.SceneSeconds),
				"Do not add explanation or markdown formatting.",
			),
			ExpectedOutput: fmt.Sprintf(
				"A JSON array of exactly %d objects with \"duration\" and \"text\" fields.",
				spec.Scenes,
			),
		},
		{
			Name:  TaskTitle,
			Agent: agents[RoleTitleGenerator],
			Description: lines(
				"Based on the script, generate a compelling and concise movie title.",
				"The title should be memorable, appropriate, and capture the essence of the story.",
				"Provide ONLY the title, without any additional explanation or formatting.",
			),
			ExpectedOutput: "A concise and compelling movie title",
		},
	}
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n")
}
