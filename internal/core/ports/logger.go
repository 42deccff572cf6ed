package ports

//go:generate mockgen -source=logger.go -destination=mocks/logger_mock.go -package=mocks

// Logger is the minimal logging surface used across the engine and adapters.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(err error)
}
