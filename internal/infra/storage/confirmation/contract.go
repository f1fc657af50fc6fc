package confirmation

import "github.com/m04kA/SMC-TourBookingService/pkg/dbmetrics"

// Поддерживает *sql.DB и *dbmetrics.DB
type DBExecutor = dbmetrics.DBExecutor

// scanner общий интерфейс *sql.Row и *sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}
