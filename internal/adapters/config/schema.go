package config

// Dupefile represents the structure of the dupe.yaml configuration file.
// Pointer fields distinguish an omitted value from an explicit zero.
type Dupefile struct {
	Corpus      string     `yaml:"corpus"`
	Extensions  []string   `yaml:"extensions"`
	Threshold   *int       `yaml:"threshold"`
	Concurrency *int       `yaml:"concurrency"`
	Policy      string     `yaml:"policy"`
	TaskTimeout string     `yaml:"task_timeout"`
	Palette     string     `yaml:"palette"`
	Cache       CacheDTO   `yaml:"cache"`
	Publish     PublishDTO `yaml:"publish"`
	Watch       WatchDTO   `yaml:"watch"`
}

// CacheDTO represents the cache section.
type CacheDTO struct {
	Dir    string `yaml:"dir"`
	Layout string `yaml:"layout"`
	Verify string `yaml:"verify"`
}

// PublishDTO represents the publish section.
type PublishDTO struct {
	Enabled *bool  `yaml:"enabled"`
	Prefix  string `yaml:"prefix"`
}

// WatchDTO represents the watch section.
type WatchDTO struct {
	Debounce string `yaml:"debounce"`
}
