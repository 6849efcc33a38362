package common

const (
	RedisStreamRefreshTaskExecution = "refresh.task.execution"

	RedisStreamGroup    = "refresher-group"
	RedisStreamConsumer = "refresher-consumer"
)
