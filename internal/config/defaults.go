package config

const (
	defaultStagingDir         = "~/.local/share/storyreel/staging"
	defaultDataDir            = "~/.local/share/storyreel"
	defaultLogDir             = "~/.local/share/storyreel/logs"
	defaultSubreddit          = "AITAH"
	defaultFeedBaseURL        = "https://www.reddit.com"
	defaultFeedUserAgent      = "storyreel/0.1"
	defaultListingLimit       = 50
	defaultFeedTimeoutSeconds = 15
	defaultForbiddenWordsPath = "~/.config/storyreel/forbidden_words.txt"
	defaultMinChars           = 1000
	defaultMaxWords           = 300
	defaultGrammarBaseURL     = "https://api.languagetoolplus.com/v2/check"
	defaultGrammarLanguage    = "en-US"
	defaultGrammarTimeout     = 10
	defaultTTSBinary          = "piper"
	defaultTTSModelPath       = "./tts/en_US-hfc_male-medium.onnx"
	defaultChunkChars         = 250
	defaultTTSWorkers         = 4
	defaultCommaPauseMs       = 200
	defaultSentencePauseMs    = 400
	defaultGroupWords         = 5
	defaultFFmpegBinary       = "ffmpeg"
	defaultBackgroundPath     = "./res/bg.mp4"
	defaultOutputPath         = "out.mp4"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			StagingDir: defaultStagingDir,
			DataDir:    defaultDataDir,
			LogDir:     defaultLogDir,
		},
		Feed: Feed{
			Subreddit:      defaultSubreddit,
			BaseURL:        defaultFeedBaseURL,
			UserAgent:      defaultFeedUserAgent,
			ListingLimit:   defaultListingLimit,
			RequestTimeout: defaultFeedTimeoutSeconds,
			AttemptBudget:  0,
		},
		Filter: Filter{
			ForbiddenWordsPath: defaultForbiddenWordsPath,
			MinChars:           defaultMinChars,
			MaxWords:           defaultMaxWords,
		},
		Grammar: Grammar{
			Enabled:        true,
			BaseURL:        defaultGrammarBaseURL,
			Language:       defaultGrammarLanguage,
			TimeoutSeconds: defaultGrammarTimeout,
		},
		TTS: TTS{
			Binary:     defaultTTSBinary,
			ModelPath:  defaultTTSModelPath,
			ChunkChars: defaultChunkChars,
			Workers:    defaultTTSWorkers,
		},
		Timeline: Timeline{
			CommaPauseMs:    defaultCommaPauseMs,
			SentencePauseMs: defaultSentencePauseMs,
			GroupWords:      defaultGroupWords,
		},
		Assembly: Assembly{
			FFmpegBinary:   defaultFFmpegBinary,
			BackgroundPath: defaultBackgroundPath,
			OutputPath:     defaultOutputPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
