package takgo

const (
	// Service is the name of this service. Hosts name their loggers with it.
	Service = "takgo"
)
