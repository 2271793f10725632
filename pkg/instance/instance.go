package instance

import "github.com/angelmondragon/storefront-checkout/pkg/env"

// GetID identifies the running process in logs. Heroku dynos expose DYNO.
func GetID() string {
	if id := env.Get("STOREFRONT_INSTANCE_ID", ""); id != "" {
		return id
	}
	return env.Get("DYNO", "local")
}
