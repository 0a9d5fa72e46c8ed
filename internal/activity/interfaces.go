package activity

import "authflow/internal/models"

// IActivityLogger records auth attempts and answers queries over them.
// Search criteria map a field (operation, email, outcome) to accepted values.
type IActivityLogger interface {
	Send(activity models.Activity) error
	Search(searchCriteria map[string][]string) ([]models.Activity, error)
	CountByDay(searchCriteria map[string][]string, days int) ([]models.TimeSeriesPoint, error)
	Close() error
}
