package config

import "time"

// Base application details
const AppName = "forma"
const ConfigDirName = "forma"
const DefaultConfigFileName = "config.toml" // Main config file
const DefaultLogFileName = "forma.log"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

// Editing defaults. These could be moved to NewDefaultConfig(), keeping here
// so hosts embedding the core can reference them directly.
const DefaultMaxHistory = 50
const DefaultMergeWindowMS = 1000
const DefaultDragThresholdPx = 3
const DefaultNudgeStepPx = 1
const SystemClipboard = true
