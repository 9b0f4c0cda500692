package instance

import "github.com/angelmondragon/ssbcompass-backend/pkg/env"

// GetID returns the process instance identifier used in startup logs.
func GetID() string {
	return env.First("local", "SSBCOMPASS_INSTANCE_ID", "DYNO", "HOSTNAME")
}
