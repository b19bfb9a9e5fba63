package ports

// Logger receives progress, verdict and failure messages. Per-entry scan
// problems that do not change a verdict go to Warn.
//
//go:generate mockgen -source=logger.go -destination=mocks/mock_logger.go -package=mocks
type Logger interface {
	Info(msg string)
	Warn(msg string)
	Error(err error)
}
