package metrics

// Config names the service for meter scoping.
type Config struct {
	ServiceName string
}
