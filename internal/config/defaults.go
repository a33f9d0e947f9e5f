package config

const (
	defaultConfigPath           = "~/.config/deckwright/config.toml"
	defaultStateDir             = "~/.local/share/deckwright"
	defaultLogDir               = "~/.local/share/deckwright/logs"
	defaultOutputDir            = "."
	defaultTheme                = "LIGHT_PROFESSIONAL"
	defaultScriptFormat         = "html"
	defaultLogFormat            = "console"
	defaultLogLevel             = "info"
	defaultProvider             = ProviderOpenAI
	defaultOpenAIBaseURL        = "https://api.openai.com/v1"
	defaultOpenRouterBaseURL    = "https://openrouter.ai/api/v1/chat/completions"
	defaultReferer              = "https://github.com/deckwright/deckwright"
	defaultTitle                = "deckwright"
	defaultGenerationTimeout    = 120
	defaultGenerationAttempts   = 3
	defaultModel                = "gpt-4o"
	defaultOutlineModel         = "gpt-4o"
	defaultManuscriptModel      = "gpt-5"
	defaultReviewEvaluateModel  = "gpt-5-mini"
	defaultReviewRewriteModel   = "gpt-5"
	defaultSlidesModel          = "gpt-4o"
	defaultNotesModel           = "gpt-5-mini"
	defaultVisionModel          = "gpt-4o"
	defaultUnsplashBaseURL      = "https://api.unsplash.com"
	defaultImagesPerPage        = 3
	defaultSearchTimeout        = 15
	defaultVisionTimeout        = 45
	defaultFetchTimeout         = 20
	defaultNotifyRequestTimeout = 10
)

// Supported generation providers.
const (
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderGemini     = "gemini"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Generation: Generation{
			Provider:            defaultProvider,
			Referer:             defaultReferer,
			Title:               defaultTitle,
			TimeoutSeconds:      defaultGenerationTimeout,
			MaxAttempts:         defaultGenerationAttempts,
			Model:               defaultModel,
			OutlineModel:        defaultOutlineModel,
			ManuscriptModel:     defaultManuscriptModel,
			ReviewEvaluateModel: defaultReviewEvaluateModel,
			ReviewRewriteModel:  defaultReviewRewriteModel,
			SlidesModel:         defaultSlidesModel,
			NotesModel:          defaultNotesModel,
			VisionModel:         defaultVisionModel,
		},
		Images: Images{
			Enabled:              true,
			VisionEnabled:        true,
			UnsplashBaseURL:      defaultUnsplashBaseURL,
			PerPage:              defaultImagesPerPage,
			SearchTimeoutSeconds: defaultSearchTimeout,
			VisionTimeoutSeconds: defaultVisionTimeout,
			FetchTimeoutSeconds:  defaultFetchTimeout,
		},
		Output: Output{
			Dir:          defaultOutputDir,
			DefaultTheme: defaultTheme,
			ScriptFormat: defaultScriptFormat,
		},
		Paths: Paths{
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
		Notifications: Notifications{
			RequestTimeout: defaultNotifyRequestTimeout,
		},
	}
}
