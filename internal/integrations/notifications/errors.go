package notifications

import "errors"

var (
	// ErrConnect возвращается, когда не удалось подключиться к брокеру или объявить exchange
	ErrConnect = errors.New("notifications: failed to connect to broker")

	// ErrEncode возвращается при ошибке сериализации события
	ErrEncode = errors.New("notifications: failed to encode event")

	// ErrPublish возвращается при ошибке публикации события
	ErrPublish = errors.New("notifications: failed to publish event")
)
