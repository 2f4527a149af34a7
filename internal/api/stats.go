package api

import "context"

// TotalStats are the all-time platform counters.
type TotalStats struct {
	TotalPhotos        int64 `json:"total_photos"`
	PhotoDownloads     int64 `json:"photo_downloads"`
	Photos             int64 `json:"photos"`
	Downloads          int64 `json:"downloads"`
	Views              int64 `json:"views"`
	Likes              int64 `json:"likes"`
	Photographers      int64 `json:"photographers"`
	Pixels             int64 `json:"pixels"`
	DownloadsPerSecond int64 `json:"downloads_per_second"`
	ViewsPerSecond     int64 `json:"views_per_second"`
	Developers         int64 `json:"developers"`
	Applications       int64 `json:"applications"`
	Requests           int64 `json:"requests"`
}

// MonthStats are the platform counters for the past 30 days.
type MonthStats struct {
	Downloads        int64 `json:"downloads"`
	Views            int64 `json:"views"`
	NewPhotos        int64 `json:"new_photos"`
	NewPhotographers int64 `json:"new_photographers"`
	NewPixels        int64 `json:"new_pixels"`
	NewDevelopers    int64 `json:"new_developers"`
	NewApplications  int64 `json:"new_applications"`
	NewRequests      int64 `json:"new_requests"`
}

// Total retrieves the all-time platform counters.
func (s StatsService) Total(ctx context.Context) (*TotalStats, error) {
	result, err := fetch[TotalStats](ctx, s, NewEndpoint(EndpointTotalStats, ""), noParameters{})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Month retrieves the platform counters for the past 30 days.
func (s StatsService) Month(ctx context.Context) (*MonthStats, error) {
	result, err := fetch[MonthStats](ctx, s, NewEndpoint(EndpointMonthStats, ""), noParameters{})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
