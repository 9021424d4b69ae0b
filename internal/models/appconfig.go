package models

// AppConfig is the process-wide singleton configuration mutated only through
// the admin surface. FirebaseConfigRaw is injected verbatim into the builder
// system prompt when backend code is requested. SecretKeys are the invite
// tokens accepted at signup; UsedKeys is carried for bookkeeping but keys are
// reusable and membership in UsedKeys is never enforced.
type AppConfig struct {
	DailyFreeCredits  int      `json:"dailyFreeCredits"`
	FirebaseConfigRaw string   `json:"firebaseConfigRaw"`
	SecretKeys        []string `json:"secretKeys"`
	UsedKeys          []string `json:"usedKeys"`
}

// HasSecretKey reports whether key is currently accepted for signup.
func (c *AppConfig) HasSecretKey(key string) bool {
	for _, k := range c.SecretKeys {
		if k == key {
			return true
		}
	}
	return false
}
