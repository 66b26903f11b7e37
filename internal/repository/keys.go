package repository

const (
	gameKeyPrefix        = "game"
	preferencesKeyPrefix = "preferences"
)

// redisKey - "<prefix>:<id>", the layout both redis repositories store under.
func redisKey(prefix, id string) string {
	return prefix + ":" + id
}
