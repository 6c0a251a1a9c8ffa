package domain

import (
	"errors"
	"time"
)

var (
	ErrProjectExists  = errors.New("a project with this name already exists in the chosen folder")
	ErrNoConnectivity = errors.New("internet connection is required to create a project")
	ErrRunInProgress  = errors.New("a project is already being created")
	ErrRunFailed      = errors.New("project creation failed")
	ErrTemplateLayout = errors.New("template archive does not contain the expected project folder")
)

// Stage is a step of a project creation run.
type Stage int

const (
	StageIdle Stage = iota
	StageValidatingInput
	StageCheckingConnectivity
	StageDownloading
	StageExtracting
	StageMaterializing
	StagePatching
	StageInitializingRepository
	StageCleaningUp
	StageSucceeded
	StageFailed
)

var stageNames = map[Stage]string{
	StageIdle:                   "idle",
	StageValidatingInput:        "validating input",
	StageCheckingConnectivity:   "checking connectivity",
	StageDownloading:            "downloading",
	StageExtracting:             "extracting",
	StageMaterializing:          "copying project files",
	StagePatching:               "patching build file",
	StageInitializingRepository: "initializing repository",
	StageCleaningUp:             "cleaning up",
	StageSucceeded:              "succeeded",
	StageFailed:                 "failed",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return "unknown"
}

// Terminal reports whether no further transition follows s.
func (s Stage) Terminal() bool {
	return s == StageSucceeded || s == StageFailed
}

// Result summarizes a successful run.
type Result struct {
	RunID           string
	ProjectPath     string
	BytesDownloaded int64
	Duration        time.Duration
	// CleanupErr holds failures to remove transient files. It never changes the outcome.
	CleanupErr error
}
