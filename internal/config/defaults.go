package config

const (
	defaultProvider      = "gemini"
	defaultMaxTokens     = 4096
	defaultScenes        = 5
	defaultSceneSeconds  = 5
	defaultMaxCharacters = 2
	defaultOutputDir     = "files"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		LLM: LLM{
			Provider:  defaultProvider,
			MaxTokens: defaultMaxTokens,
		},
		Movie: Movie{
			Scenes:        defaultScenes,
			SceneSeconds:  defaultSceneSeconds,
			MaxCharacters: defaultMaxCharacters,
		},
		Paths: Paths{
			OutputDir: defaultOutputDir,
		},
	}
}
