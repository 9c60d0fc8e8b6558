package catalog

import "time"

// document is the root of a catalog YAML file
type document struct {
	Items []itemDTO `yaml:"items"`
}

// itemDTO mirrors one catalog entry as written in YAML
type itemDTO struct {
	ID              string       `yaml:"id"`
	Title           string       `yaml:"title"`
	Description     string       `yaml:"description"`
	Poster          string       `yaml:"poster"`
	Backdrop        string       `yaml:"backdrop"`
	Year            int          `yaml:"year"`
	Genres          []string     `yaml:"genres"`
	Rating          float64      `yaml:"rating"`
	DurationMinutes int          `yaml:"duration_minutes"`
	Video           string       `yaml:"video"`
	Trailer         string       `yaml:"trailer,omitempty"`
	Cast            []string     `yaml:"cast"`
	Director        string       `yaml:"director"`
	Language        string       `yaml:"language"`
	Subtitles       []string     `yaml:"subtitles"`
	Quality         []string     `yaml:"quality"`
	Trending        bool         `yaml:"trending"`
	New             bool         `yaml:"new"`
	Continue        *progressDTO `yaml:"continue_watching,omitempty"`
}

type progressDTO struct {
	Progress  float64   `yaml:"progress"`
	Timestamp time.Time `yaml:"timestamp"`
}
