package conflict

import "errors"

var (
	// ErrScopeNotFound возвращается, когда локация или оператор интервала не существуют
	ErrScopeNotFound = errors.New("conflict.repository: scope not found")

	// ErrInvalidInterval возвращается, когда БД отклонила интервал
	ErrInvalidInterval = errors.New("conflict.repository: invalid interval")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("conflict.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("conflict.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("conflict.repository: failed to scan row")
)
