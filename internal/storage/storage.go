package storage

import "tokenLauncher/internal/model"

// Storage defines a sink for launch plans and salt search results.
type Storage interface {
	PutPlans(plans []model.LaunchPlan) error
	PutSalts(records []model.SaltRecord) error
}
