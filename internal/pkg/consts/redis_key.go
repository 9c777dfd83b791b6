package consts

const (
	TokenDenyKey        = "auth:token:deny:"
	UserProfileKey      = "user:profile:"
	ApplicationDirtyKey = "application:dirty"
	AlertCooldownKey    = "automation:alert:cooldown:"
	ImportResultKey     = "importer:result:"
	CompanySuggestKey   = "search:company:suggest:"
)

const (
	DailyMetricLock = "lock:metric:daily:"
)
