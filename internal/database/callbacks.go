package database

import (
	"time"

	"gorm.io/gorm"
)

// MetricsRecorder is an interface for recording database metrics
type MetricsRecorder interface {
	RecordDBQuery(operation, table string, duration time.Duration, err error)
	UpdateDBStats(stats interface{})
}

// RegisterMetricsCallbacks registers GORM callbacks that time every query,
// create, update and delete and report them to the recorder
func RegisterMetricsCallbacks(db *gorm.DB, recorder MetricsRecorder) {
	before := func(db *gorm.DB) {
		db.InstanceSet("query_start_time", time.Now())
	}
	after := func(operation string) func(*gorm.DB) {
		return func(db *gorm.DB) {
			startTime, ok := db.InstanceGet("query_start_time")
			if !ok {
				return
			}
			duration := time.Since(startTime.(time.Time))
			table := db.Statement.Table
			if table == "" {
				table = "unknown"
			}
			recorder.RecordDBQuery(operation, table, duration, db.Error)
		}
	}

	db.Callback().Query().Before("gorm:query").Register("metrics:query_before", before)
	db.Callback().Query().After("gorm:query").Register("metrics:query_after", after("select"))

	db.Callback().Create().Before("gorm:create").Register("metrics:create_before", before)
	db.Callback().Create().After("gorm:create").Register("metrics:create_after", after("insert"))

	db.Callback().Update().Before("gorm:update").Register("metrics:update_before", before)
	db.Callback().Update().After("gorm:update").Register("metrics:update_after", after("update"))

	db.Callback().Delete().Before("gorm:delete").Register("metrics:delete_before", before)
	db.Callback().Delete().After("gorm:delete").Register("metrics:delete_after", after("delete"))
}

// StartDBStatsCollector starts periodic DB connection pool stats collection
func StartDBStatsCollector(db *gorm.DB, recorder MetricsRecorder) chan struct{} {
	done := make(chan struct{})

	go func() {
		ticker := time.NewTicker(15 * time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				sqlDB, err := db.DB()
				if err != nil {
					continue
				}
				recorder.UpdateDBStats(sqlDB.Stats())
			case <-done:
				return
			}
		}
	}()

	return done
}
