package setup

const (
	EnvApiIpPort        = "PROMPTER_API_IP_PORT"
	EnvOpenAiModel      = "OPENAI_MODEL"
	EnvOpenAiBaseUrl    = "OPENAI_BASE_URL"
	EnvBatchConcurrency = "PROMPTER_BATCH_CONCURRENCY"
	EnvHistorySize      = "PROMPTER_HISTORY_SIZE"
	EnvHistoryTTL       = "PROMPTER_HISTORY_TTL"
)
