package site

import "errors"

var (
	// ErrSiteNotFound возвращается, когда комплекс не найден
	ErrSiteNotFound = errors.New("site.repository: site not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("site.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("site.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("site.repository: failed to scan row")
)
