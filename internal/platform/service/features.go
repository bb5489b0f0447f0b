package service

import "github.com/verysecretivesoftware/platform/pkg/platformsdk"

// FeatureService serves the rollout flags surfaced on /api/status. Flags
// are static for the life of the process; there is no runtime toggle.
type FeatureService struct {
	flags map[string]platformsdk.FeatureFlag
}

// NewFeatureService returns the service with the platform's current
// rollout configuration.
func NewFeatureService() *FeatureService {
	return &FeatureService{
		flags: map[string]platformsdk.FeatureFlag{
			"newDashboard": {
				Enabled:           true,
				Version:           "2.1",
				RolloutPercentage: 75,
			},
			"userOnboarding": {
				Enabled: true,
				Steps:   5,
			},
			"complexFeatureX": {
				Enabled:           true,
				Variant:           "A",
				Users:             []string{"user123", "admin456"},
				RolloutPercentage: 75,
			},
		},
	}
}

// Flags returns the full flag set.
func (s *FeatureService) Flags() map[string]platformsdk.FeatureFlag {
	return s.flags
}
