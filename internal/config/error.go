package config

// ConfigInitError signals that setup is incomplete rather than broken.
type ConfigInitError struct {
	msg string
}

func (e *ConfigInitError) Error() string {
	return e.msg
}
