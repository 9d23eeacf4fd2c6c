package wsrouter

import "context"

type ctxKey string

const (
	commandKey ctxKey = "command"
)

func GetCommandFromCtx(ctx context.Context) string {
	command, _ := ctx.Value(commandKey).(string)
	return command
}
