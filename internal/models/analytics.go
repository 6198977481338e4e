package models

// CategoryShare is one category's slice of a day or week, as a
// percentage of the full window rather than of scheduled time.
type CategoryShare struct {
	Category   string  `json:"category"`
	Percentage float64 `json:"percentage"`
}

// ScheduleAnalytics aggregates committed events by category over a
// fixed window. TotalMinutes is the window length (1440 for a day,
// 1440x7 for a week), not the sum of scheduled minutes: percentages
// answer "share of the week", not "share of scheduled time".
// Categories absent from the window produce no entry.
type ScheduleAnalytics struct {
	TotalMinutes        int64            `json:"total_minutes"`
	CategoryMinutes     map[string]int64 `json:"category_minutes"`
	CategoryPercentages []CategoryShare  `json:"category_percentages"`
}

// SystemMetrics is a lightweight instrumentation snapshot exposed next
// to the schedule analytics.
type SystemMetrics struct {
	CacheHitRatio        float64 `json:"cache_hit_ratio"`
	RequestCount         uint64  `json:"request_count"`
	AvgRequestDurationMs float64 `json:"avg_request_duration_ms"`
	DBQueryCount         uint64  `json:"db_query_count"`
	AvgDBQueryDurationMs float64 `json:"avg_db_query_duration_ms"`
	GoroutineCount       int     `json:"goroutine_count"`
}
