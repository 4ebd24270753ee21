package config

import (
	"os"
	"strconv"
	"strings"
	"sync"
)

// FeatureFlags holds runtime feature toggles. Flags let the studio
// turn risky pieces off in production without a redeploy.
type FeatureFlags struct {
	mu       sync.RWMutex
	features map[string]bool
}

// Predefined feature flag names.
const (
	// FeatureLessonReminders - Telegram digests of upcoming lessons.
	FeatureLessonReminders = "worker.lesson_reminders"

	// FeatureRentPosting - automatic monthly rent expense.
	FeatureRentPosting = "worker.rent_posting"

	// FeatureSummaryCache - Redis caching of monthly summaries.
	FeatureSummaryCache = "finance.summary_cache"

	// FeatureEmbedStudents - embed student records in lesson lists.
	FeatureEmbedStudents = "api.embed_students"
)

// defaultFlags are the flags and their out-of-the-box state.
var defaultFlags = map[string]bool{
	FeatureLessonReminders: true,
	FeatureRentPosting:     true,
	FeatureSummaryCache:    true,
	FeatureEmbedStudents:   true,
}

// LoadFeatureFlags reads flag overrides from the environment. A flag
// named "worker.rent_posting" is overridden by FEATURE_WORKER_RENT_POSTING.
func LoadFeatureFlags() *FeatureFlags {
	ff := &FeatureFlags{features: make(map[string]bool, len(defaultFlags))}

	for name, enabled := range defaultFlags {
		envKey := "FEATURE_" + strings.ToUpper(strings.NewReplacer(".", "_").Replace(name))
		if val := os.Getenv(envKey); val != "" {
			if b, err := strconv.ParseBool(val); err == nil {
				enabled = b
			}
		}
		ff.features[name] = enabled
	}

	return ff
}

// IsEnabled reports whether a feature is on. Unknown flags are off.
func (f *FeatureFlags) IsEnabled(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.features[name]
}

// Set overrides a flag at runtime.
func (f *FeatureFlags) Set(name string, enabled bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.features[name] = enabled
}
